// Package stats reduces per-module aggregate counts into batch totals and
// per-module averages. It is a pure read-only consumer of parsed modules:
// an explicit reducer over count snapshots, never a process-wide counter.
package stats

import "github.com/studylink/cnxparse/internal/cnxml"

// Averages holds per-module means across a batch.
type Averages struct {
	Sections    float64 `json:"sections"`
	Paragraphs  float64 `json:"paragraphs"`
	Figures     float64 `json:"figures"`
	Tables      float64 `json:"tables"`
	Lists       float64 `json:"lists"`
	Notes       float64 `json:"notes"`
	Exercises   float64 `json:"exercises"`
	Definitions float64 `json:"definitions"`
}

// Summary aggregates a batch of module counts.
type Summary struct {
	Modules  int          `json:"modules"`
	Totals   cnxml.Counts `json:"totals"`
	Averages Averages     `json:"averages"`
}

// Summarize reduces a sequence of per-module counts to totals and averages.
func Summarize(counts []cnxml.Counts) Summary {
	s := Summary{Modules: len(counts)}
	for _, c := range counts {
		s.Totals.Sections += c.Sections
		s.Totals.Paragraphs += c.Paragraphs
		s.Totals.Figures += c.Figures
		s.Totals.Tables += c.Tables
		s.Totals.Lists += c.Lists
		s.Totals.Notes += c.Notes
		s.Totals.Exercises += c.Exercises
		s.Totals.Definitions += c.Definitions
	}
	if s.Modules == 0 {
		return s
	}
	n := float64(s.Modules)
	s.Averages = Averages{
		Sections:    float64(s.Totals.Sections) / n,
		Paragraphs:  float64(s.Totals.Paragraphs) / n,
		Figures:     float64(s.Totals.Figures) / n,
		Tables:      float64(s.Totals.Tables) / n,
		Lists:       float64(s.Totals.Lists) / n,
		Notes:       float64(s.Totals.Notes) / n,
		Exercises:   float64(s.Totals.Exercises) / n,
		Definitions: float64(s.Totals.Definitions) / n,
	}
	return s
}
