package cnxml

import (
	"strings"
	"testing"
)

const sampleCollection = `<col:collection xmlns:col="http://cnx.rice.edu/collxml" xmlns:md="http://cnx.rice.edu/mdml">
  <col:metadata>
    <md:title>Biology 2e</md:title>
  </col:metadata>
  <col:content>
    <col:subcollection>
      <md:title>The Study of Life</md:title>
      <col:content>
        <col:module document="m66426"/>
        <col:subcollection>
          <md:title>The Science of Biology</md:title>
          <col:content>
            <col:module document="m66427"/>
            <col:module document="m66428"/>
          </col:content>
        </col:subcollection>
      </col:content>
    </col:subcollection>
    <col:subcollection>
      <md:title>The Chemistry of Life</md:title>
      <col:content>
        <col:module document="m66429"/>
      </col:content>
    </col:subcollection>
  </col:content>
</col:collection>`

func TestParseCollection(t *testing.T) {
	col, err := ParseCollection(strings.NewReader(sampleCollection))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if col.Title != "Biology 2e" {
		t.Errorf("title = %q", col.Title)
	}
	if len(col.Chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(col.Chapters))
	}

	ch1 := col.Chapters[0]
	if ch1.Title != "The Study of Life" {
		t.Errorf("chapter title = %q", ch1.Title)
	}
	if len(ch1.Modules) != 1 || ch1.Modules[0] != "m66426" {
		t.Errorf("chapter modules = %v", ch1.Modules)
	}
	if len(ch1.Sections) != 1 || ch1.Sections[0].Title != "The Science of Biology" {
		t.Fatalf("chapter sections = %+v", ch1.Sections)
	}
	if len(ch1.Sections[0].Modules) != 2 {
		t.Errorf("section modules = %v", ch1.Sections[0].Modules)
	}

	ids := col.ModuleIDs()
	want := []string{"m66426", "m66427", "m66428", "m66429"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v", ids)
	}
	for i, id := range want {
		if ids[i] != id {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], id)
		}
	}
}
