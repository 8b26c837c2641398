// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package xmltree holds a parsed markup document as a small element tree:
// a tag name, an attribute map, ordered child elements and character data.
package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Element is a single node of a parsed document.
type Element struct {
	// Name is the local tag name.
	Name string

	// Attrs maps local attribute names to their values.
	// Namespace declarations are not included.
	Attrs map[string]string

	// Children are the child elements in document order.
	Children []*Element

	content []content
}

// content is either a run of character data or a child element,
// kept in document order so Text can rebuild the element value.
type content struct {
	text  string
	child *Element
}

// NewElement returns an Element with no attributes or children.
func NewElement(name string) *Element {
	return &Element{
		Name:  name,
		Attrs: make(map[string]string),
	}
}

// SetAttr sets the attribute name to value and returns e.
func (e *Element) SetAttr(name, value string) *Element {
	e.Attrs[name] = value
	return e
}

// AppendText appends character data to e and returns e.
func (e *Element) AppendText(s string) *Element {
	e.content = append(e.content, content{text: s})
	return e
}

// AppendChild appends child to e and returns e.
func (e *Element) AppendChild(child *Element) *Element {
	e.Children = append(e.Children, child)
	e.content = append(e.content, content{child: child})
	return e
}

// Attr looks up the attribute with the given local name.
func (e *Element) Attr(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	v, ok := e.Attrs[name]
	return v, ok
}

// Child returns the first child element named name, or nil.
func (e *Element) Child(name string) *Element {
	if e == nil {
		return nil
	}
	for _, child := range e.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// Text returns the concatenated character data of e and all of its
// descendants, in document order.
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	var sb strings.Builder
	e.writeText(&sb)
	return sb.String()
}

func (e *Element) writeText(sb *strings.Builder) {
	for _, c := range e.content {
		if c.child != nil {
			c.child.writeText(sb)
			continue
		}
		sb.WriteString(c.text)
	}
}

var (
	// ErrNoRootElement is returned when a document contains no element at all.
	ErrNoRootElement = errors.New("xmltree: document has no root element")

	// ErrMultipleRootElements is returned when a second element follows the root.
	ErrMultipleRootElements = errors.New("xmltree: document has more than one root element")
)

// ParseError wraps a failure of the underlying XML decoder.
type ParseError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e ParseError) Error() string {
	return fmt.Sprintf("xmltree: failed to parse document: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e ParseError) Unwrap() error {
	return e.Cause
}

// Parse reads a whole document from r and returns its root element.
func Parse(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)

	var (
		root  *Element
		stack []*Element
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ParseError{Cause: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			elem := newElementFromStart(t)
			if len(stack) == 0 {
				if root != nil {
					return nil, ErrMultipleRootElements
				}
				root = elem
			} else {
				stack[len(stack)-1].AppendChild(elem)
			}
			stack = append(stack, elem)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			stack[len(stack)-1].AppendText(string(t))
		}
	}
	if root == nil {
		return nil, ErrNoRootElement
	}
	return root, nil
}

func newElementFromStart(start xml.StartElement) *Element {
	elem := NewElement(start.Name.Local)
	for _, attr := range start.Attr {
		if isNamespaceDecl(attr.Name) {
			continue
		}
		elem.SetAttr(attr.Name.Local, attr.Value)
	}
	return elem
}

func isNamespaceDecl(name xml.Name) bool {
	return name.Space == "xmlns" || (name.Space == "" && name.Local == "xmlns")
}
