package stats

import (
	"testing"

	"github.com/studylink/cnxparse/internal/cnxml"
)

func TestSummarize(t *testing.T) {
	counts := []cnxml.Counts{
		{Sections: 4, Paragraphs: 10, Figures: 2, Tables: 1, Lists: 3, Notes: 1, Exercises: 6, Definitions: 8},
		{Sections: 2, Paragraphs: 6, Figures: 0, Tables: 1, Lists: 1, Notes: 0, Exercises: 2, Definitions: 4},
	}
	s := Summarize(counts)

	if s.Modules != 2 {
		t.Errorf("modules = %d", s.Modules)
	}
	if s.Totals.Paragraphs != 16 {
		t.Errorf("total paragraphs = %d", s.Totals.Paragraphs)
	}
	if s.Totals.Figures != 2 || s.Totals.Exercises != 8 || s.Totals.Definitions != 12 {
		t.Errorf("totals = %+v", s.Totals)
	}
	if s.Averages.Paragraphs != 8 {
		t.Errorf("avg paragraphs = %v", s.Averages.Paragraphs)
	}
	if s.Averages.Figures != 1 || s.Averages.Exercises != 4 {
		t.Errorf("averages = %+v", s.Averages)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.Modules != 0 {
		t.Errorf("modules = %d", s.Modules)
	}
	if s.Averages != (Averages{}) {
		t.Errorf("averages = %+v, want zero", s.Averages)
	}
}

func TestSummarize_SingleModule(t *testing.T) {
	c := cnxml.Counts{Sections: 3, Paragraphs: 5, Definitions: 2}
	s := Summarize([]cnxml.Counts{c})
	if s.Totals != c {
		t.Errorf("totals = %+v, want %+v", s.Totals, c)
	}
	if s.Averages.Sections != 3 || s.Averages.Definitions != 2 {
		t.Errorf("averages = %+v", s.Averages)
	}
}
