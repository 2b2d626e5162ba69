// Package flatten renders a parsed module as a single linear plain-text
// document. It is a pure function of the module tree: re-flattening an
// unchanged module yields byte-identical output.
package flatten

import (
	"fmt"
	"strings"

	"github.com/studylink/cnxparse/internal/cnxml"
)

// Flatten produces the plain-text rendering: title line, learning objectives
// block, each section depth-first pre-order with its nodes at their point of
// occurrence, then the glossary definitions. Blocks are blank-line separated.
func Flatten(m *cnxml.Module) string {
	var blocks []string

	blocks = append(blocks, "Title: "+m.Title)

	if len(m.LearningObjectives) > 0 {
		var b strings.Builder
		b.WriteString("Learning Objectives:")
		for _, obj := range m.LearningObjectives {
			b.WriteString("\n- ")
			b.WriteString(obj)
		}
		blocks = append(blocks, b.String())
	}

	for _, s := range m.Sections {
		flattenSection(s, &blocks)
	}

	for _, def := range m.Definitions() {
		blocks = append(blocks, fmt.Sprintf("Definition - %s: %s", def.Term, def.Meaning))
	}

	return strings.Join(blocks, "\n\n") + "\n"
}

// flattenSection emits one section header, then its nodes in document order.
// Nested sections sit in the node stream, so content that follows a
// subsection in the source renders after it.
func flattenSection(s *cnxml.Section, blocks *[]string) {
	*blocks = append(*blocks, "Section: "+s.Title)

	for _, n := range s.Nodes {
		switch node := n.(type) {
		case *cnxml.Paragraph:
			if text := node.Content.PlainText(); text != "" {
				*blocks = append(*blocks, text)
			}
		case *cnxml.Figure:
			*blocks = append(*blocks, fmt.Sprintf("Figure %s: %s", node.ID, node.Caption.PlainText()))
		case *cnxml.Table:
			block := fmt.Sprintf("Table %s: %s", node.ID, node.Title.PlainText())
			if node.Summary != "" {
				block += "\nSummary: " + node.Summary
			}
			*blocks = append(*blocks, block)
		case *cnxml.ListBlock:
			*blocks = append(*blocks, flattenList(node, 0))
		case *cnxml.Note:
			*blocks = append(*blocks, fmt.Sprintf("Note (%s): %s", node.Class, node.Content.PlainText()))
		case *cnxml.Exercise:
			*blocks = append(*blocks, flattenExercise(node))
		case *cnxml.Section:
			flattenSection(node, blocks)
		}
	}
}

func flattenList(l *cnxml.ListBlock, indent int) string {
	pad := strings.Repeat("  ", indent)
	var b strings.Builder
	if indent == 0 {
		b.WriteString(fmt.Sprintf("List (%s):", l.ListType))
	}
	for _, item := range l.Items {
		if text := item.Content.PlainText(); text != "" {
			b.WriteString("\n")
			b.WriteString(pad)
			b.WriteString("- ")
			b.WriteString(text)
		}
		if item.Nested != nil {
			b.WriteString(flattenList(item.Nested, indent+1))
		}
	}
	return b.String()
}

func flattenExercise(e *cnxml.Exercise) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Exercise %s: %s", e.ID, e.Problem.PlainText()))
	if e.Options != nil {
		for _, item := range e.Options.Items {
			if text := item.Content.PlainText(); text != "" {
				b.WriteString("\n- ")
				b.WriteString(text)
			}
		}
	}
	if e.HasSolution() {
		b.WriteString("\nSolution: ")
		b.WriteString(e.Solution.PlainText())
	}
	return b.String()
}
