// Package xmldoc parses the platform's XML responses into a generic node
// tree. Payvment responses are flat documents whose fields are element
// children of a single root, so lookup is by direct child name. The parse
// capability is injectable: anything matching ParseFunc can replace the
// default encoding/xml implementation.
package xmldoc

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ErrEmptyDocument indicates the response body held no XML element.
var ErrEmptyDocument = errors.New("empty xml document")

// ParseFunc parses an XML document from raw bytes.
type ParseFunc func(data []byte) (*Document, error)

// Node is a single XML element: its name, accumulated character data, and
// child elements in document order.
type Node struct {
	Name     string
	Text     string
	Children []*Node
}

// Child returns the first direct child element with the given name.
func (n *Node) Child(name string) (*Node, bool) {
	for _, child := range n.Children {
		if child.Name == name {
			return child, true
		}
	}
	return nil, false
}

// Document is a parsed XML response.
type Document struct {
	Root *Node
}

// Text returns the character data of the named direct child of the root.
func (d *Document) Text(name string) (string, bool) {
	if d.Root == nil {
		return "", false
	}
	child, ok := d.Root.Child(name)
	if !ok {
		return "", false
	}
	return child.Text, true
}

// Parse is the default ParseFunc, built on encoding/xml.
func Parse(data []byte) (*Document, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	var stack []*Node
	var root *Node

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "[xmldoc.Parse] decoder.Token")
		}

		switch t := token.(type) {
		case xml.StartElement:
			node := &Node{Name: t.Name.Local}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("[xmldoc.Parse] multiple root elements")
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, errors.New("[xmldoc.Parse] unbalanced end element")
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				current := stack[len(stack)-1]
				current.Text += strings.TrimSpace(string(t))
			}
		}
	}

	if root == nil {
		return nil, ErrEmptyDocument
	}
	return &Document{Root: root}, nil
}
