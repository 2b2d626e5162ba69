package cnxml

import "encoding/json"

// Module is one complete educational content unit. It is built in a single
// parse pass and never mutated after Parse returns it.
type Module struct {
	ContentID          string       // stable external identifier, "m" + digits
	UUID               string       // globally unique identifier
	Title              string
	LearningObjectives []string
	Sections           []*Section
	Glossary           *Glossary
	Diagnostics        []Diagnostic
}

// Definitions returns the glossary entries under their second name. The
// source populates definitions and glossary terms from the same terminal
// block, so this is one artifact with two accessors, not two collections.
func (m *Module) Definitions() []GlossaryEntry {
	return m.Glossary.Entries()
}

// MarshalJSON emits the serializable tree shape: title, nested metadata,
// learning objectives, sections, and the glossary object.
func (m *Module) MarshalJSON() ([]byte, error) {
	type metadata struct {
		ContentID string `json:"content_id"`
		UUID      string `json:"uuid"`
		Title     string `json:"title"`
	}
	return json.Marshal(struct {
		Title              string       `json:"title"`
		Metadata           metadata     `json:"metadata"`
		LearningObjectives []string     `json:"learning_objectives"`
		Sections           []*Section   `json:"sections"`
		Glossary           *Glossary    `json:"glossary"`
		Diagnostics        []Diagnostic `json:"diagnostics,omitempty"`
	}{
		Title:              m.Title,
		Metadata:           metadata{ContentID: m.ContentID, UUID: m.UUID, Title: m.Title},
		LearningObjectives: m.LearningObjectives,
		Sections:           m.Sections,
		Glossary:           m.Glossary,
		Diagnostics:        m.Diagnostics,
	})
}

// walkSections visits every section depth-first, pre-order.
func (m *Module) walkSections(fn func(*Section)) {
	var walk func(*Section)
	walk = func(s *Section) {
		fn(s)
		for _, sub := range s.Subsections() {
			walk(sub)
		}
	}
	for _, s := range m.Sections {
		walk(s)
	}
}

// walkInlines visits every inline fragment in a node list, including nested
// list items and exercise solution/commentary blocks. Nested sections are
// not descended into; walkSections already visits them.
func walkInlines(nodes []ContentNode, fn func(*Inline)) {
	var walkList func(*ListBlock)
	walkList = func(l *ListBlock) {
		for i := range l.Items {
			fn(&l.Items[i].Content)
			if l.Items[i].Nested != nil {
				walkList(l.Items[i].Nested)
			}
		}
	}
	for _, n := range nodes {
		switch node := n.(type) {
		case *Paragraph:
			fn(&node.Content)
		case *Figure:
			fn(&node.Caption)
		case *Table:
			fn(&node.Title)
		case *ListBlock:
			walkList(node)
		case *Note:
			fn(&node.Content)
		case *Exercise:
			fn(&node.Problem)
			if node.Options != nil {
				walkList(node.Options)
			}
			if node.Solution != nil {
				fn(node.Solution)
			}
			if node.Commentary != nil {
				fn(node.Commentary)
			}
		}
	}
}
