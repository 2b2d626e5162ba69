package cnxml

import "strings"

// RunKind tags one inline unit variant.
type RunKind string

const (
	RunText     RunKind = "text"
	RunEmphasis RunKind = "emphasis"
	RunTerm     RunKind = "term"
	RunLink     RunKind = "link"
)

// Run is one inline unit: plain text, an emphasis span, a glossary-term
// reference, or a cross-reference link.
type Run struct {
	Kind RunKind `json:"kind"`
	Text string  `json:"text"`

	// Emphasis only.
	Style string `json:"style,omitempty"`

	// Term only. Empty until resolved against the glossary; it stays empty
	// when no matching entry exists (the run is retained, not dropped).
	TermKey string `json:"term_key,omitempty"`

	// Link only.
	Target string `json:"target,omitempty"`
	URL    string `json:"url,omitempty"`
}

// Inline is an ordered run sequence for one fragment of mixed inline markup.
type Inline struct {
	Runs []Run `json:"runs"`
}

func (in Inline) IsEmpty() bool {
	return len(in.Runs) == 0
}

// PlainText renders the runs with markup stripped. A link with empty display
// text contributes nothing here but stays addressable through the run list,
// so figures can be referenced from prose without identifiers leaking into
// flattened text.
func (in Inline) PlainText() string {
	parts := make([]string, 0, len(in.Runs))
	for _, r := range in.Runs {
		if r.Kind == RunLink && r.Text == "" {
			continue
		}
		if r.Text != "" {
			parts = append(parts, r.Text)
		}
	}
	return strings.Join(parts, " ")
}

// Terms returns the surface text of every term reference, in order.
func (in Inline) Terms() []string {
	var out []string
	for _, r := range in.Runs {
		if r.Kind == RunTerm {
			out = append(out, r.Text)
		}
	}
	return out
}

// Links returns every link run, in order.
func (in Inline) Links() []Run {
	var out []Run
	for _, r := range in.Runs {
		if r.Kind == RunLink {
			out = append(out, r)
		}
	}
	return out
}

// parseInline extracts the ordered run sequence of an element's inline
// content. Structural children (lists, figures, tables, notes, exercises,
// media) are skipped; they are modeled as content nodes by the section
// builder, not as runs.
func parseInline(el *element) Inline {
	var runs []Run
	collectRuns(el, &runs)
	return Inline{Runs: runs}
}

func collectRuns(el *element, runs *[]Run) {
	for _, seg := range el.segs {
		if seg.el == nil {
			appendText(runs, seg.text)
			continue
		}
		child := seg.el
		switch child.name {
		case "emphasis":
			style := child.attr("effect")
			if style == "" {
				style = "italics"
			}
			*runs = append(*runs, Run{Kind: RunEmphasis, Text: child.text(), Style: style})
		case "term":
			*runs = append(*runs, Run{Kind: RunTerm, Text: child.text()})
		case "link":
			*runs = append(*runs, Run{
				Kind:   RunLink,
				Text:   child.text(),
				Target: child.attr("target-id"),
				URL:    child.attr("url"),
			})
		case "title", "label", "list", "figure", "table", "note", "exercise", "media", "image":
			// Structural, handled elsewhere.
		default:
			collectRuns(child, runs)
		}
	}
}

// appendText adds whitespace-normalized text, merging with a preceding text
// run so element tails do not fragment plain prose.
func appendText(runs *[]Run, raw string) {
	t := collapseSpace(raw)
	if t == "" {
		return
	}
	if n := len(*runs); n > 0 && (*runs)[n-1].Kind == RunText {
		(*runs)[n-1].Text += " " + t
		return
	}
	*runs = append(*runs, Run{Kind: RunText, Text: t})
}
