// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package embedweave

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/z5labs/embedweave/config"
	"github.com/z5labs/embedweave/internal/try"
	"github.com/z5labs/embedweave/weaving"
	"github.com/z5labs/embedweave/xmltree"
)

// DefaultWeaverName is the element Load looks for unless told otherwise.
const DefaultWeaverName = "Costura"

type loadOptions struct {
	weaverName string
}

// LoadOption configures Load and LoadFile.
type LoadOption func(*loadOptions)

// WeaverName sets the tag of the element holding the configuration.
func WeaverName(name string) LoadOption {
	return func(lo *loadOptions) {
		lo.weaverName = name
	}
}

func newLoadOptions(opts []LoadOption) loadOptions {
	lo := loadOptions{
		weaverName: DefaultWeaverName,
	}
	for _, opt := range opts {
		opt(&lo)
	}
	return lo
}

// Load parses the document read from r, locates the weaver element and
// decodes its configuration. ctx is unused; decoding never blocks.
func Load(ctx context.Context, r io.Reader, opts ...LoadOption) (weaving.Configuration, error) {
	lo := newLoadOptions(opts)

	root, err := xmltree.Parse(r)
	if err != nil {
		return weaving.Configuration{}, DocumentParseError{Cause: err}
	}

	elem, err := FindWeaver(root, lo.weaverName)
	if err != nil {
		return weaving.Configuration{}, err
	}

	cfg, err := weaving.NewConfiguration(elem)
	if err != nil {
		return weaving.Configuration{}, ConfigurationError{Weaver: lo.weaverName, Cause: err}
	}
	return cfg, nil
}

// LoadFile is Load for the document stored at path.
func LoadFile(ctx context.Context, path string, opts ...LoadOption) (_ weaving.Configuration, err error) {
	f, err := config.Read(ctx, config.ReadFile(path))
	if errors.Is(err, config.ErrValueNotSet) {
		return weaving.Configuration{}, FileNotFoundError{Path: path}
	}
	if err != nil {
		return weaving.Configuration{}, err
	}
	defer try.Close(&err, f)

	return Load(ctx, f, opts...)
}

// FindWeaver returns root itself when it is named name, otherwise the
// first child of root with that name. This accepts both a bare weaver
// element and the usual <Weavers> wrapper.
func FindWeaver(root *xmltree.Element, name string) (*xmltree.Element, error) {
	if root == nil {
		return nil, WeaverNotFoundError{Name: name}
	}
	if root.Name == name {
		return root, nil
	}
	if elem := root.Child(name); elem != nil {
		return elem, nil
	}
	return nil, WeaverNotFoundError{Name: name, Root: root.Name}
}

// FileNotFoundError is returned by LoadFile when no file exists at Path.
type FileNotFoundError struct {
	Path string
}

// Error implements the [builtin.error] interface.
func (e FileNotFoundError) Error() string {
	return fmt.Sprintf("weaver config file not found: %s", e.Path)
}

// DocumentParseError wraps a failure to read or parse the weavers document.
type DocumentParseError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e DocumentParseError) Error() string {
	return fmt.Sprintf("failed to parse weaver document: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e DocumentParseError) Unwrap() error {
	return e.Cause
}

// WeaverNotFoundError occurs when the document has no element for the
// requested weaver.
type WeaverNotFoundError struct {
	Name string
	Root string
}

// Error implements the [builtin.error] interface.
func (e WeaverNotFoundError) Error() string {
	if e.Root == "" {
		return fmt.Sprintf("weaver element not found: %s", e.Name)
	}
	return fmt.Sprintf("weaver element not found: %s (root element is %s)", e.Name, e.Root)
}

// ConfigurationError wraps a failure to decode the weaver element. The
// message of Cause is kept intact.
type ConfigurationError struct {
	Weaver string
	Cause  error
}

// Error implements the [builtin.error] interface.
func (e ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s configuration: %s", e.Weaver, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e ConfigurationError) Unwrap() error {
	return e.Cause
}
