package cnxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// element is a decoded markup element. Text and child elements are kept
// interleaved in segs so inline content can be walked in document order
// without losing tail text after a closing tag.
type element struct {
	name   string // local name, e.g. "para"
	space  string // namespace URI (or prefix when undeclared)
	attrs  map[string]string
	segs   []segment
	offset int64 // byte offset in the source, for diagnostics
}

// segment is either a text fragment (el == nil) or a child element.
type segment struct {
	text string
	el   *element
}

func (e *element) attr(name string) string {
	return e.attrs[name]
}

// children returns the child elements in document order.
func (e *element) children() []*element {
	var out []*element
	for _, s := range e.segs {
		if s.el != nil {
			out = append(out, s.el)
		}
	}
	return out
}

// child returns the first direct child with the given local name, or nil.
func (e *element) child(name string) *element {
	for _, s := range e.segs {
		if s.el != nil && s.el.name == name {
			return s.el
		}
	}
	return nil
}

// find returns the first descendant with the given local name, depth-first.
func (e *element) find(name string) *element {
	for _, s := range e.segs {
		if s.el == nil {
			continue
		}
		if s.el.name == name {
			return s.el
		}
		if m := s.el.find(name); m != nil {
			return m
		}
	}
	return nil
}

// findAll returns all descendants with the given local name, depth-first,
// without descending into matches.
func (e *element) findAll(name string) []*element {
	var out []*element
	for _, s := range e.segs {
		if s.el == nil {
			continue
		}
		if s.el.name == name {
			out = append(out, s.el)
			continue
		}
		out = append(out, s.el.findAll(name)...)
	}
	return out
}

// text returns the whitespace-normalized text of the whole subtree.
func (e *element) text() string {
	var parts []string
	var walk func(*element)
	walk = func(el *element) {
		for _, s := range el.segs {
			if s.el != nil {
				walk(s.el)
				continue
			}
			if t := collapseSpace(s.text); t != "" {
				parts = append(parts, t)
			}
		}
	}
	walk(e)
	return strings.Join(parts, " ")
}

// collapseSpace trims and collapses all runs of whitespace to single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// decodeTree parses markup into an element tree rooted at the document
// element. Decoding is tolerant: unknown entities and charsets are handled,
// and namespace prefixes are resolved to local names only, since source
// documents are externally authored and not guaranteed clean.
func decodeTree(r io.Reader) (*element, error) {
	d := xml.NewDecoder(r)
	d.Strict = false
	d.Entity = xml.HTMLEntity
	d.CharsetReader = charset.NewReaderLabel

	var root *element
	var stack []*element
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode markup: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{
				name:   t.Name.Local,
				space:  t.Name.Space,
				offset: d.InputOffset(),
			}
			if len(t.Attr) > 0 {
				el.attrs = make(map[string]string, len(t.Attr))
				for _, a := range t.Attr {
					el.attrs[a.Name.Local] = a.Value
				}
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.segs = append(parent.segs, segment{el: el})
			} else if root == nil {
				root = el
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				top.segs = append(top.segs, segment{text: string(t)})
			}
		}
	}
	if root == nil {
		return nil, errors.New("decode markup: empty document")
	}
	return root, nil
}
