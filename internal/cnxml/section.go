package cnxml

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SectionKind classifies a section. The kind is fixed at construction from
// the class attribute or, failing that, title keywords, and is never
// recomputed.
type SectionKind string

const (
	SectionRegular          SectionKind = "regular"
	SectionSummary          SectionKind = "summary"
	SectionVisualExercise   SectionKind = "visual-exercise"
	SectionMultipleChoice   SectionKind = "multiple-choice"
	SectionCriticalThinking SectionKind = "critical-thinking"
	SectionOther            SectionKind = "other"
)

// MainContentTitle is the sentinel title for untitled lead-in material that
// sits before the first explicit section.
const MainContentTitle = "Main Content"

// Section is a titled block of content, nestable to arbitrary depth.
// Nodes holds paragraphs, figures, tables, lists, notes, exercises, and
// nested sections interleaved in document order; content that follows a
// nested section in the source stays after it here. Flattening depends on
// that order.
type Section struct {
	ID    string
	Title string
	Kind  SectionKind
	Nodes []ContentNode
}

func (*Section) NodeKind() NodeKind { return KindSection }

func (s *Section) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		NodeKind    NodeKind      `json:"kind"`
		ID          string        `json:"id,omitempty"`
		Title       string        `json:"title"`
		SectionKind SectionKind   `json:"section_kind"`
		Nodes       []ContentNode `json:"content_nodes"`
	}{s.NodeKind(), s.ID, s.Title, s.Kind, s.Nodes})
}

// Per-kind views over the interleaved node list.

// Subsections returns the nested sections at their positions in the node
// stream, in document order.
func (s *Section) Subsections() []*Section {
	var out []*Section
	for _, n := range s.Nodes {
		if sub, ok := n.(*Section); ok {
			out = append(out, sub)
		}
	}
	return out
}

func (s *Section) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, n := range s.Nodes {
		if p, ok := n.(*Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

func (s *Section) Figures() []*Figure {
	var out []*Figure
	for _, n := range s.Nodes {
		if f, ok := n.(*Figure); ok {
			out = append(out, f)
		}
	}
	return out
}

func (s *Section) Exercises() []*Exercise {
	var out []*Exercise
	for _, n := range s.Nodes {
		if e, ok := n.(*Exercise); ok {
			out = append(out, e)
		}
	}
	return out
}

// builder carries per-parse state for the recursive descent.
type builder struct {
	maxDepth int
	diags    []Diagnostic
	ids      map[string]struct{} // section and figure ids, for link resolution
}

func newBuilder(maxDepth int) *builder {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &builder{maxDepth: maxDepth, ids: make(map[string]struct{})}
}

func (b *builder) diag(code DiagnosticCode, node string, offset int64, msg string) {
	b.diags = append(b.diags, Diagnostic{Code: code, Node: node, Offset: offset, Message: msg})
}

// buildSections walks the module content element. Content sitting directly
// under it, outside any section marker, becomes a synthetic lead-in section
// titled "Main Content"; explicit sections follow in document order.
func (b *builder) buildSections(content *element) ([]*Section, error) {
	var lead []ContentNode
	var sections []*Section

	for _, child := range content.children() {
		if child.name == "section" {
			sec, err := b.buildSection(child, 1)
			if err != nil {
				return nil, err
			}
			sections = append(sections, sec)
			continue
		}
		if child.name == "title" {
			continue
		}
		nodes, err := b.classify(child, 1)
		if err != nil {
			return nil, err
		}
		lead = append(lead, nodes...)
	}

	if len(lead) > 0 {
		main := &Section{
			ID:    "main",
			Title: MainContentTitle,
			Kind:  SectionRegular,
			Nodes: lead,
		}
		sections = append([]*Section{main}, sections...)
	}
	return sections, nil
}

// buildSection parses one section element, recursing into nested section
// markers. depth counts section nesting from 1; breaching the configured
// bound fails the whole module parse.
func (b *builder) buildSection(el *element, depth int) (*Section, error) {
	if depth > b.maxDepth {
		return nil, fmt.Errorf("section %q at depth %d: %w", el.attr("id"), depth, ErrDepthExceeded)
	}

	title := "Untitled Section"
	if titleEl := el.child("title"); titleEl != nil {
		if t := titleEl.text(); t != "" {
			title = t
		}
	}

	sec := &Section{
		ID:    el.attr("id"),
		Title: title,
		Kind:  sectionKind(el.attr("class"), title),
	}
	if sec.ID != "" {
		b.ids[sec.ID] = struct{}{}
	}

	for _, child := range el.children() {
		switch child.name {
		case "title":
			// Consumed above.
		case "section":
			sub, err := b.buildSection(child, depth+1)
			if err != nil {
				return nil, err
			}
			sec.Nodes = append(sec.Nodes, sub)
		default:
			nodes, err := b.classify(child, depth)
			if err != nil {
				return nil, err
			}
			sec.Nodes = append(sec.Nodes, nodes...)
		}
	}
	return sec, nil
}

// classify turns one markup element into content nodes. Unclassifiable
// elements are skipped with a diagnostic; the builder favors partial
// extraction over total failure. Only a breached depth bound is fatal.
func (b *builder) classify(el *element, depth int) ([]ContentNode, error) {
	switch el.name {
	case "para":
		in := parseInline(el)
		if in.IsEmpty() {
			return nil, nil
		}
		return []ContentNode{&Paragraph{ID: el.attr("id"), Content: in}}, nil
	case "figure":
		fig := b.parseFigure(el)
		if fig == nil {
			return nil, nil
		}
		return []ContentNode{fig}, nil
	case "table":
		return []ContentNode{b.parseTable(el)}, nil
	case "list":
		list, err := b.parseList(el, depth)
		if err != nil {
			return nil, err
		}
		if list == nil {
			return nil, nil
		}
		return []ContentNode{list}, nil
	case "note":
		return b.parseNote(el, depth)
	case "exercise":
		return b.parseExercise(el, depth)
	default:
		b.diag(DiagMalformedStructure, el.name, el.offset,
			"unclassifiable element skipped")
		return nil, nil
	}
}

func (b *builder) parseFigure(el *element) *Figure {
	fig := &Figure{
		ID:    el.attr("id"),
		Class: el.attr("class"),
	}
	if captionEl := el.find("caption"); captionEl != nil {
		fig.Caption = parseInline(captionEl)
	}
	for _, mediaEl := range el.findAll("media") {
		for _, imageEl := range mediaEl.findAll("image") {
			fig.Media = append(fig.Media, MediaRef{
				Src:      imageEl.attr("src"),
				MIMEType: imageEl.attr("mime-type"),
				Alt:      mediaEl.attr("alt"),
			})
		}
	}
	if len(fig.Media) == 0 {
		b.diag(DiagMalformedStructure, "figure "+fig.ID, el.offset,
			"figure without media skipped")
		return nil
	}
	if fig.ID != "" {
		b.ids[fig.ID] = struct{}{}
	}
	return fig
}

func (b *builder) parseTable(el *element) *Table {
	tbl := &Table{
		ID:      el.attr("id"),
		Class:   el.attr("class"),
		Summary: el.attr("summary"),
	}
	if titleEl := el.find("title"); titleEl != nil {
		tbl.Title = parseInline(titleEl)
	}
	if tbl.ID != "" {
		b.ids[tbl.ID] = struct{}{}
	}
	tgroup := el.find("tgroup")
	if tgroup == nil {
		return tbl
	}
	if thead := tgroup.find("thead"); thead != nil {
		for _, rowEl := range thead.findAll("row") {
			var header []string
			for _, entryEl := range rowEl.findAll("entry") {
				header = append(header, entryEl.text())
			}
			if len(header) > 0 {
				tbl.Headers = header
				break
			}
		}
	}
	if tbody := tgroup.find("tbody"); tbody != nil {
		for _, rowEl := range tbody.findAll("row") {
			var row []string
			for _, entryEl := range rowEl.findAll("entry") {
				row = append(row, entryEl.text())
			}
			if len(row) > 0 {
				tbl.Rows = append(tbl.Rows, row)
			}
		}
	}
	return tbl
}

// parseList parses a list and its nested lists. List nesting shares the
// section depth bound.
func (b *builder) parseList(el *element, depth int) (*ListBlock, error) {
	if depth > b.maxDepth {
		return nil, fmt.Errorf("list %q at depth %d: %w", el.attr("id"), depth, ErrDepthExceeded)
	}
	listType := el.attr("list-type")
	if listType == "" {
		listType = "bulleted"
	}
	list := &ListBlock{
		ID:          el.attr("id"),
		ListType:    listType,
		NumberStyle: el.attr("number-style"),
	}
	for _, itemEl := range el.children() {
		if itemEl.name != "item" {
			continue
		}
		item := ListItem{Content: parseInline(itemEl)}
		if nestedEl := itemEl.child("list"); nestedEl != nil {
			nested, err := b.parseList(nestedEl, depth+1)
			if err != nil {
				return nil, err
			}
			item.Nested = nested
		}
		if item.Content.IsEmpty() && item.Nested == nil {
			continue
		}
		list.Items = append(list.Items, item)
	}
	if len(list.Items) == 0 {
		b.diag(DiagMalformedStructure, "list "+list.ID, el.offset, "empty list skipped")
		return nil, nil
	}
	return list, nil
}

// parseNote builds a note node. OpenStax callouts like "Visual Connection"
// embed figures, exercises, lists, and tables inside the note element; those
// are hoisted to section level immediately after the note, in encounter
// order, so no block content is dropped.
func (b *builder) parseNote(el *element, depth int) ([]ContentNode, error) {
	class := el.attr("class")
	if class == "" {
		class = "general"
	}
	note := &Note{
		ID:      el.attr("id"),
		Class:   class,
		Content: parseInline(el),
	}
	if labelEl := el.child("label"); labelEl != nil {
		note.Label = labelEl.text()
	} else if titleEl := el.child("title"); titleEl != nil {
		note.Label = titleEl.text()
	}

	nodes := []ContentNode{note}
	hoisted, err := b.hoistEmbedded(el, depth)
	if err != nil {
		return nil, err
	}
	return append(nodes, hoisted...), nil
}

// hoistEmbedded collects figures, tables, lists, and exercises nested
// anywhere inside a block subtree, without descending into the matched
// elements themselves.
func (b *builder) hoistEmbedded(el *element, depth int) ([]ContentNode, error) {
	var nodes []ContentNode
	for _, child := range el.children() {
		switch child.name {
		case "figure":
			if fig := b.parseFigure(child); fig != nil {
				nodes = append(nodes, fig)
			}
		case "table":
			nodes = append(nodes, b.parseTable(child))
		case "list":
			list, err := b.parseList(child, depth)
			if err != nil {
				return nil, err
			}
			if list != nil {
				nodes = append(nodes, list)
			}
		case "exercise":
			ex, err := b.parseExercise(child, depth)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, ex...)
		default:
			sub, err := b.hoistEmbedded(child, depth)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, sub...)
		}
	}
	return nodes, nil
}

// parseExercise requires a problem marker; a block without one is not an
// exercise and is skipped with a diagnostic. The first problem list becomes
// Options; block content inside the solution or commentary is hoisted to
// section level after the exercise.
func (b *builder) parseExercise(el *element, depth int) ([]ContentNode, error) {
	problemEl := el.child("problem")
	if problemEl == nil {
		b.diag(DiagMalformedStructure, "exercise "+el.attr("id"), el.offset,
			"exercise without problem skipped")
		return nil, nil
	}
	ex := &Exercise{
		ID:      el.attr("id"),
		Problem: parseInline(problemEl),
	}
	if listEl := problemEl.find("list"); listEl != nil {
		options, err := b.parseList(listEl, depth)
		if err != nil {
			return nil, err
		}
		ex.Options = options
	}
	nodes := []ContentNode{ex}
	if solutionEl := el.child("solution"); solutionEl != nil {
		in := parseInline(solutionEl)
		ex.Solution = &in
		hoisted, err := b.hoistEmbedded(solutionEl, depth)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, hoisted...)
	}
	if commentaryEl := el.child("commentary"); commentaryEl != nil {
		in := parseInline(commentaryEl)
		ex.Commentary = &in
		hoisted, err := b.hoistEmbedded(commentaryEl, depth)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, hoisted...)
	}
	return nodes, nil
}

// sectionKind maps the class attribute, or failing that title keywords, to a
// section kind.
func sectionKind(class, title string) SectionKind {
	switch class {
	case "summary", "section-summary":
		return SectionSummary
	case "multiple-choice":
		return SectionMultipleChoice
	case "critical-thinking":
		return SectionCriticalThinking
	case "visual-exercise":
		return SectionVisualExercise
	case "", "regular":
		// Fall through to title inference.
	default:
		return SectionOther
	}

	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "summary"):
		return SectionSummary
	case strings.Contains(t, "review questions"), strings.Contains(t, "multiple choice"):
		return SectionMultipleChoice
	case strings.Contains(t, "critical thinking"):
		return SectionCriticalThinking
	case strings.Contains(t, "visual connection"):
		return SectionVisualExercise
	default:
		return SectionRegular
	}
}
