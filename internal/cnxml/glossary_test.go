package cnxml

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestGlossary_AddAndLookup(t *testing.T) {
	g := NewGlossary()
	if !g.Add(GlossaryEntry{Term: "Homeostasis", Meaning: "steady internal state"}) {
		t.Fatal("first add rejected")
	}
	if g.Add(GlossaryEntry{Term: "homeostasis", Meaning: "duplicate"}) {
		t.Error("case-variant duplicate accepted")
	}
	if g.Add(GlossaryEntry{Term: "  homeostasis  ", Meaning: "whitespace duplicate"}) {
		t.Error("whitespace-variant duplicate accepted")
	}

	entry, ok := g.Lookup("HOMEOSTASIS")
	if !ok {
		t.Fatal("lookup failed")
	}
	// Case-preserving: the stored surface form is the first occurrence.
	if entry.Term != "Homeostasis" || entry.Meaning != "steady internal state" {
		t.Errorf("entry = %+v", entry)
	}
}

func TestGlossary_InsertionOrder(t *testing.T) {
	g := NewGlossary()
	for _, term := range []string{"zygote", "atom", "meiosis"} {
		g.Add(GlossaryEntry{Term: term, Meaning: "def of " + term})
	}
	terms := g.Terms()
	if len(terms) != 3 || terms[0] != "zygote" || terms[1] != "atom" || terms[2] != "meiosis" {
		t.Errorf("terms = %v, want first-seen order", terms)
	}
}

func TestGlossary_MarshalJSON(t *testing.T) {
	g := NewGlossary()
	g.Add(GlossaryEntry{Term: "zygote", Meaning: "a fertilized egg"})
	g.Add(GlossaryEntry{Term: "atom", Meaning: "smallest unit of an element"})

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	if !strings.HasPrefix(s, `{"zygote":`) {
		t.Errorf("insertion order not preserved in output: %s", s)
	}

	var decoded map[string]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not a valid object: %v", err)
	}
	if decoded["atom"] != "smallest unit of an element" {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestGlossary_EmptyTermRejected(t *testing.T) {
	g := NewGlossary()
	if g.Add(GlossaryEntry{Term: "   ", Meaning: "blank"}) {
		t.Error("blank term accepted")
	}
	if g.Len() != 0 {
		t.Errorf("len = %d", g.Len())
	}
}
