package cnxml

import (
	"bytes"
	"encoding/json"
	"strings"
)

// GlossaryEntry maps one term to its meaning.
type GlossaryEntry struct {
	ID      string `json:"id,omitempty"`
	Term    string `json:"term"`
	Meaning string `json:"meaning"`
}

// Glossary is the module's term->meaning mapping. Insertion order is
// preserved, terms are case-preserving, and exact-term collisions keep the
// first occurrence.
type Glossary struct {
	entries []GlossaryEntry
	index   map[string]int
}

func NewGlossary() *Glossary {
	return &Glossary{index: make(map[string]int)}
}

// Add inserts an entry, reporting false when the term (compared
// case-insensitively with whitespace collapsed) is already present.
func (g *Glossary) Add(e GlossaryEntry) bool {
	key := normalizeTerm(e.Term)
	if key == "" {
		return false
	}
	if _, dup := g.index[key]; dup {
		return false
	}
	g.index[key] = len(g.entries)
	g.entries = append(g.entries, e)
	return true
}

// Lookup finds the entry for a term surface form, tolerating casing and
// whitespace differences from the stored key.
func (g *Glossary) Lookup(term string) (GlossaryEntry, bool) {
	i, ok := g.index[normalizeTerm(term)]
	if !ok {
		return GlossaryEntry{}, false
	}
	return g.entries[i], true
}

// Entries returns the entries in first-seen order.
func (g *Glossary) Entries() []GlossaryEntry {
	return g.entries
}

// Terms returns the term keys in first-seen order.
func (g *Glossary) Terms() []string {
	out := make([]string, len(g.entries))
	for i, e := range g.entries {
		out[i] = e.Term
	}
	return out
}

func (g *Glossary) Len() int {
	return len(g.entries)
}

// MarshalJSON emits the glossary as a term->meaning object with keys in
// insertion order.
func (g *Glossary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range g.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Term)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Meaning)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func normalizeTerm(s string) string {
	return strings.ToLower(collapseSpace(s))
}

// collectGlossary reads the module's terminal glossary block. Duplicate terms
// are flagged and entries missing a term or meaning are skipped with a
// diagnostic.
func (b *builder) collectGlossary(root *element) *Glossary {
	g := NewGlossary()
	glossaryEl := root.child("glossary")
	if glossaryEl == nil {
		return g
	}
	for _, defEl := range glossaryEl.findAll("definition") {
		termEl := defEl.child("term")
		meaningEl := defEl.child("meaning")
		var term, meaning string
		if termEl != nil {
			term = termEl.text()
		}
		if meaningEl != nil {
			meaning = meaningEl.text()
		}
		if term == "" || meaning == "" {
			b.diag(DiagMalformedStructure, "definition", defEl.offset,
				"definition missing term or meaning")
			continue
		}
		entry := GlossaryEntry{ID: defEl.attr("id"), Term: term, Meaning: meaning}
		if !g.Add(entry) {
			b.diag(DiagDuplicateTerm, "definition", defEl.offset,
				"duplicate glossary term "+term)
		}
	}
	return g
}
