// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package weaving

import (
	"context"
	"fmt"
	"strings"

	"github.com/z5labs/embedweave/config"
	"github.com/z5labs/embedweave/xmltree"
)

// ListSeparator separates entries of a list attribute.
const ListSeparator = "|"

// ParseBoolError is returned when a boolean attribute holds anything
// other than true or false.
type ParseBoolError struct {
	Name  string
	Value string
}

// Error implements the [builtin.error] interface.
func (e ParseBoolError) Error() string {
	return fmt.Sprintf("Could not parse '%s' from '%s'.", e.Name, e.Value)
}

// ReadBool decodes the boolean attribute name of elem. An absent attribute
// yields def. Literals are matched case-insensitively after trimming.
func ReadBool(elem *xmltree.Element, name string, def bool) (bool, error) {
	r := config.Default(def, config.Map(attribute(elem, name), parseBool(name)))
	return config.Read(context.Background(), r)
}

// ReadList collects the entries of the list setting name from both the
// attribute and the first child element of that name, attribute entries
// first. It never returns nil.
func ReadList(elem *xmltree.Element, name string) []string {
	list := []string{}
	if v, ok := elem.Attr(name); ok {
		list = appendEntries(list, strings.Split(v, ListSeparator))
	}
	if child := elem.Child(name); child != nil {
		list = appendEntries(list, splitLines(child.Text()))
	}
	return list
}

func attribute(elem *xmltree.Element, name string) config.Reader[string] {
	return config.ReaderFunc[string](func(ctx context.Context) (config.Value[string], error) {
		v, ok := elem.Attr(name)
		if !ok {
			return config.Value[string]{}, nil
		}
		return config.ValueOf(v), nil
	})
}

func parseBool(name string) func(context.Context, string) (bool, error) {
	return func(ctx context.Context, s string) (bool, error) {
		switch {
		case strings.EqualFold(strings.TrimSpace(s), "true"):
			return true, nil
		case strings.EqualFold(strings.TrimSpace(s), "false"):
			return false, nil
		}
		return false, ParseBoolError{Name: name, Value: s}
	}
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

func appendEntries(list []string, tokens []string) []string {
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		list = append(list, token)
	}
	return list
}
