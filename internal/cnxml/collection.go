package cnxml

import (
	"fmt"
	"io"
)

// Collection is the hierarchical table of contents of a textbook: chapters,
// nested sections, and the module ids they reference.
type Collection struct {
	Title    string            `json:"title"`
	Chapters []*CollectionNode `json:"chapters"`
}

// CollectionNode is one chapter or section in the collection hierarchy.
type CollectionNode struct {
	Title    string            `json:"title"`
	Sections []*CollectionNode `json:"sections,omitempty"`
	Modules  []string          `json:"modules,omitempty"`
}

// ModuleIDs returns every module id referenced anywhere in the collection,
// depth-first, in document order.
func (c *Collection) ModuleIDs() []string {
	var ids []string
	var walk func(*CollectionNode)
	walk = func(n *CollectionNode) {
		ids = append(ids, n.Modules...)
		for _, s := range n.Sections {
			walk(s)
		}
	}
	for _, ch := range c.Chapters {
		walk(ch)
	}
	return ids
}

// ParseCollection reads a collection document describing how modules are
// organized into chapters and sections.
func ParseCollection(r io.Reader) (*Collection, error) {
	root, err := decodeTree(r)
	if err != nil {
		return nil, err
	}

	col := &Collection{Title: "Untitled Collection"}
	if titleEl := root.find("title"); titleEl != nil {
		if t := titleEl.text(); t != "" {
			col.Title = t
		}
	}

	contentEl := root.child("content")
	if contentEl == nil {
		return nil, fmt.Errorf("collection %q has no content element", col.Title)
	}
	for _, subEl := range contentEl.children() {
		if subEl.name != "subcollection" {
			continue
		}
		node, err := parseSubcollection(subEl, 1)
		if err != nil {
			return nil, err
		}
		if node != nil {
			col.Chapters = append(col.Chapters, node)
		}
	}
	return col, nil
}

func parseSubcollection(el *element, depth int) (*CollectionNode, error) {
	if depth > DefaultMaxDepth {
		return nil, fmt.Errorf("subcollection at depth %d: %w", depth, ErrDepthExceeded)
	}
	node := &CollectionNode{}
	if titleEl := el.find("title"); titleEl != nil {
		node.Title = titleEl.text()
	}
	if node.Title == "" {
		return nil, nil
	}

	contentEl := el.child("content")
	if contentEl == nil {
		return node, nil
	}
	for _, child := range contentEl.children() {
		switch child.name {
		case "subcollection":
			sub, err := parseSubcollection(child, depth+1)
			if err != nil {
				return nil, err
			}
			if sub != nil {
				node.Sections = append(node.Sections, sub)
			}
		case "module":
			if id := child.attr("document"); id != "" {
				node.Modules = append(node.Modules, id)
			}
		}
	}
	return node, nil
}
