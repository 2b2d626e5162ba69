// Package cnxml parses CNXML textbook modules into a typed, immutable
// document tree: sections nesting to arbitrary depth, content nodes in
// document order, inline runs, and a terminal glossary. Parsing favors
// partial extraction with diagnostics over hard failure; only missing
// metadata and a breached nesting bound abort a parse.
package cnxml

import (
	"fmt"
	"io"
	"regexp"

	"github.com/google/uuid"
)

// DefaultMaxDepth bounds section and list nesting. Source documents are
// externally authored; the bound turns runaway recursion into a clean error.
const DefaultMaxDepth = 64

var contentIDPattern = regexp.MustCompile(`^m\d+$`)

// Parser converts a CNXML module document into a Module.
type Parser struct {
	// MaxDepth overrides DefaultMaxDepth when positive.
	MaxDepth int
}

func NewParser() *Parser {
	return &Parser{MaxDepth: DefaultMaxDepth}
}

// Parse reads one module document and builds its Module in a single pass.
// A returned Module may carry diagnostics; callers decide whether to treat
// them as warnings or escalate.
func Parse(r io.Reader) (*Module, error) {
	return NewParser().Parse(r)
}

func (p *Parser) Parse(r io.Reader) (*Module, error) {
	root, err := decodeTree(r)
	if err != nil {
		return nil, err
	}

	b := newBuilder(p.MaxDepth)

	title, contentID, moduleUUID, err := parseMetadata(root, b)
	if err != nil {
		return nil, err
	}

	contentEl := root.child("content")
	if contentEl == nil {
		return nil, fmt.Errorf("module %s has no content element", contentID)
	}
	sections, err := b.buildSections(contentEl)
	if err != nil {
		return nil, fmt.Errorf("module %s: %w", contentID, err)
	}
	if len(sections) == 0 {
		return nil, fmt.Errorf("module %s has no sections", contentID)
	}

	glossary := b.collectGlossary(root)

	m := &Module{
		ContentID:          contentID,
		UUID:               moduleUUID,
		Title:              title,
		LearningObjectives: parseObjectives(root),
		Sections:           sections,
		Glossary:           glossary,
	}
	b.resolveReferences(m)
	m.Diagnostics = b.diags
	return m, nil
}

// parseMetadata extracts the required title, content-id, and uuid fields.
// Any of them missing is fatal; a present-but-malformed content id or uuid
// is only a diagnostic.
func parseMetadata(root *element, b *builder) (title, contentID, moduleUUID string, err error) {
	metaEl := root.child("metadata")

	// Document title wins; metadata title is the fallback.
	if titleEl := root.child("title"); titleEl != nil {
		title = titleEl.text()
	}
	if metaEl != nil {
		if title == "" {
			if titleEl := metaEl.find("title"); titleEl != nil {
				title = titleEl.text()
			}
		}
		if el := metaEl.find("content-id"); el != nil {
			contentID = el.text()
		}
		if el := metaEl.find("uuid"); el != nil {
			moduleUUID = el.text()
		}
	}

	switch {
	case title == "":
		return "", "", "", fmt.Errorf("%w: title", ErrMissingMetadata)
	case contentID == "":
		return "", "", "", fmt.Errorf("%w: content-id", ErrMissingMetadata)
	case moduleUUID == "":
		return "", "", "", fmt.Errorf("%w: uuid", ErrMissingMetadata)
	}

	if !contentIDPattern.MatchString(contentID) {
		b.diag(DiagMalformedStructure, "content-id", 0,
			fmt.Sprintf("content id %q does not match m<digits>", contentID))
	}
	if _, parseErr := uuid.Parse(moduleUUID); parseErr != nil {
		b.diag(DiagMalformedStructure, "uuid", 0,
			fmt.Sprintf("uuid %q is not a valid UUID", moduleUUID))
	}
	return title, contentID, moduleUUID, nil
}

// parseObjectives reads learning objectives from the mdml abstract list. When
// the abstract has none, paragraphs classed learning-objectives in the body
// are the fallback.
func parseObjectives(root *element) []string {
	var objectives []string

	if metaEl := root.child("metadata"); metaEl != nil {
		if abstractEl := metaEl.find("abstract"); abstractEl != nil {
			for _, itemEl := range abstractEl.findAll("item") {
				if t := itemEl.text(); t != "" {
					objectives = append(objectives, t)
				}
			}
		}
	}
	if len(objectives) > 0 {
		return objectives
	}

	if contentEl := root.child("content"); contentEl != nil {
		for _, paraEl := range contentEl.findAll("para") {
			if paraEl.attr("class") != "learning-objectives" {
				continue
			}
			if t := paraEl.text(); t != "" {
				objectives = append(objectives, t)
			}
		}
	}
	return objectives
}

// resolveReferences is the post-build pass linking term runs to glossary keys
// and checking link targets against collected section/figure/table ids.
// Unresolved references are retained with an empty resolution and reported.
func (b *builder) resolveReferences(m *Module) {
	m.walkSections(func(s *Section) {
		walkInlines(s.Nodes, func(in *Inline) {
			for i := range in.Runs {
				run := &in.Runs[i]
				switch run.Kind {
				case RunTerm:
					if entry, ok := m.Glossary.Lookup(run.Text); ok {
						run.TermKey = entry.Term
					} else {
						b.diag(DiagUnresolvedReference, "term", 0,
							fmt.Sprintf("term %q has no glossary entry", run.Text))
					}
				case RunLink:
					if run.Target == "" {
						continue
					}
					if _, ok := b.ids[run.Target]; !ok {
						b.diag(DiagUnresolvedReference, "link", 0,
							fmt.Sprintf("link target %q not found in module", run.Target))
					}
				}
			}
		})
	})
}
