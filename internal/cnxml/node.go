package cnxml

import "encoding/json"

// NodeKind tags the closed set of content node variants.
type NodeKind string

const (
	KindParagraph NodeKind = "paragraph"
	KindFigure    NodeKind = "figure"
	KindTable     NodeKind = "table"
	KindList      NodeKind = "list"
	KindNote      NodeKind = "note"
	KindExercise  NodeKind = "exercise"
	KindSection   NodeKind = "section"
)

// ContentNode is one typed unit of section content. The concrete types form
// a closed set: Paragraph, Figure, Table, ListBlock, Note, Exercise, and
// Section itself, so a nested section keeps its place among the prose that
// surrounds it.
type ContentNode interface {
	NodeKind() NodeKind
}

// Paragraph is a run of prose.
type Paragraph struct {
	ID      string `json:"id,omitempty"`
	Content Inline `json:"content"`
}

func (*Paragraph) NodeKind() NodeKind { return KindParagraph }

// MediaRef points at an external media file by relative path. The file is
// never opened.
type MediaRef struct {
	Src      string `json:"src"`
	MIMEType string `json:"mime_type,omitempty"`
	Alt      string `json:"alt,omitempty"`
}

// Figure is an image block with a caption.
type Figure struct {
	ID      string     `json:"id,omitempty"`
	Class   string     `json:"class,omitempty"` // e.g. "splash" for chapter openers
	Caption Inline     `json:"caption"`
	Media   []MediaRef `json:"media"`
}

func (*Figure) NodeKind() NodeKind { return KindFigure }

// Table tracks a data table's presence. Cell content is carried as opaque
// strings; only the title and summary are modeled as inline content.
type Table struct {
	ID      string     `json:"id,omitempty"`
	Class   string     `json:"class,omitempty"`
	Summary string     `json:"summary,omitempty"`
	Title   Inline     `json:"title"`
	Headers []string   `json:"headers,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`
}

func (*Table) NodeKind() NodeKind { return KindTable }

// ListItem is one entry of a ListBlock; an item may carry a nested list.
type ListItem struct {
	Content Inline     `json:"content"`
	Nested  *ListBlock `json:"nested,omitempty"`
}

// ListBlock is a bulleted or enumerated list.
type ListBlock struct {
	ID          string     `json:"id,omitempty"`
	ListType    string     `json:"list_type"` // "bulleted", "enumerated", ...
	NumberStyle string     `json:"number_style,omitempty"`
	Items       []ListItem `json:"items"`
}

func (*ListBlock) NodeKind() NodeKind { return KindList }

// Note is a callout block, e.g. a "Visual Connection" or career sidebar.
type Note struct {
	ID      string `json:"id,omitempty"`
	Class   string `json:"class,omitempty"`
	Label   string `json:"label,omitempty"`
	Content Inline `json:"content"`
}

func (*Note) NodeKind() NodeKind { return KindNote }

// Exercise is a problem with an optional solution and commentary. For
// multiple-choice problems the option list is carried in Options; the correct
// answer is not derivable from structure alone and is not extracted.
type Exercise struct {
	ID         string     `json:"id,omitempty"`
	Problem    Inline     `json:"problem"`
	Options    *ListBlock `json:"options,omitempty"`
	Solution   *Inline    `json:"solution,omitempty"`
	Commentary *Inline    `json:"commentary,omitempty"`
}

func (*Exercise) NodeKind() NodeKind { return KindExercise }

// HasSolution reports whether a solution block was present in the source.
// Computed from content presence so it cannot drift from it.
func (e *Exercise) HasSolution() bool {
	return e.Solution != nil && !e.Solution.IsEmpty()
}

// HasCommentary reports whether a commentary block was present in the source.
func (e *Exercise) HasCommentary() bool {
	return e.Commentary != nil && !e.Commentary.IsEmpty()
}

// JSON marshaling adds the variant tag so serialized nodes stay
// distinguishable in the flat content_nodes array.

func (p *Paragraph) MarshalJSON() ([]byte, error) {
	type alias Paragraph
	return json.Marshal(struct {
		Kind NodeKind `json:"kind"`
		*alias
	}{p.NodeKind(), (*alias)(p)})
}

func (f *Figure) MarshalJSON() ([]byte, error) {
	type alias Figure
	return json.Marshal(struct {
		Kind NodeKind `json:"kind"`
		*alias
	}{f.NodeKind(), (*alias)(f)})
}

func (t *Table) MarshalJSON() ([]byte, error) {
	type alias Table
	return json.Marshal(struct {
		Kind NodeKind `json:"kind"`
		*alias
	}{t.NodeKind(), (*alias)(t)})
}

func (l *ListBlock) MarshalJSON() ([]byte, error) {
	type alias ListBlock
	return json.Marshal(struct {
		Kind NodeKind `json:"kind"`
		*alias
	}{l.NodeKind(), (*alias)(l)})
}

func (n *Note) MarshalJSON() ([]byte, error) {
	type alias Note
	return json.Marshal(struct {
		Kind NodeKind `json:"kind"`
		*alias
	}{n.NodeKind(), (*alias)(n)})
}

func (e *Exercise) MarshalJSON() ([]byte, error) {
	type alias Exercise
	return json.Marshal(struct {
		Kind          NodeKind `json:"kind"`
		HasSolution   bool     `json:"has_solution"`
		HasCommentary bool     `json:"has_commentary"`
		*alias
	}{e.NodeKind(), e.HasSolution(), e.HasCommentary(), (*alias)(e)})
}
