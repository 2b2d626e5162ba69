package cnxml

// Counts are aggregate node totals. They are computed on demand by walking
// the immutable tree, never stored, so they cannot drift from the content.
type Counts struct {
	Sections    int `json:"sections"`
	Paragraphs  int `json:"paragraphs"`
	Figures     int `json:"figures"`
	Tables      int `json:"tables"`
	Lists       int `json:"lists"`
	Notes       int `json:"notes"`
	Exercises   int `json:"exercises"`
	Definitions int `json:"definitions"`
}

// Counts walks the full tree and tallies every node kind.
func (m *Module) Counts() Counts {
	var c Counts
	m.walkSections(func(s *Section) {
		c.Sections++
		for _, n := range s.Nodes {
			switch n.NodeKind() {
			case KindParagraph:
				c.Paragraphs++
			case KindFigure:
				c.Figures++
			case KindTable:
				c.Tables++
			case KindList:
				c.Lists++
			case KindNote:
				c.Notes++
			case KindExercise:
				c.Exercises++
			}
		}
	})
	c.Definitions = m.Glossary.Len()
	return c
}

func (m *Module) TotalFigures() int   { return m.Counts().Figures }
func (m *Module) TotalExercises() int { return m.Counts().Exercises }

// AllFigures collects every figure across all sections and subsections,
// depth-first, in document order.
func (m *Module) AllFigures() []*Figure {
	var out []*Figure
	m.walkSections(func(s *Section) {
		out = append(out, s.Figures()...)
	})
	return out
}

// AllExercises collects every exercise across all sections and subsections.
func (m *Module) AllExercises() []*Exercise {
	var out []*Exercise
	m.walkSections(func(s *Section) {
		out = append(out, s.Exercises()...)
	})
	return out
}
