package cnxml

import (
	"strings"
	"testing"
)

func parseFragment(t *testing.T, fragment string) Inline {
	t.Helper()
	root, err := decodeTree(strings.NewReader(fragment))
	if err != nil {
		t.Fatalf("decode fragment: %v", err)
	}
	return parseInline(root)
}

func TestParseInline_RunOrder(t *testing.T) {
	in := parseFragment(t, `<para>The bacterium <emphasis effect="italics">E. coli</emphasis> is a <term>prokaryote</term>; see <link target-id="fig-1">the figure</link>.</para>`)

	want := []struct {
		kind RunKind
		text string
	}{
		{RunText, "The bacterium"},
		{RunEmphasis, "E. coli"},
		{RunText, "is a"},
		{RunTerm, "prokaryote"},
		{RunText, "; see"},
		{RunLink, "the figure"},
		{RunText, "."},
	}
	if len(in.Runs) != len(want) {
		t.Fatalf("got %d runs, want %d: %+v", len(in.Runs), len(want), in.Runs)
	}
	for i, w := range want {
		if in.Runs[i].Kind != w.kind || in.Runs[i].Text != w.text {
			t.Errorf("runs[%d] = {%s %q}, want {%s %q}", i, in.Runs[i].Kind, in.Runs[i].Text, w.kind, w.text)
		}
	}
}

func TestParseInline_EmphasisStyleDefault(t *testing.T) {
	in := parseFragment(t, `<para><emphasis>plain default</emphasis> and <emphasis effect="bold">heavy</emphasis></para>`)

	var styles []string
	for _, r := range in.Runs {
		if r.Kind == RunEmphasis {
			styles = append(styles, r.Style)
		}
	}
	if len(styles) != 2 || styles[0] != "italics" || styles[1] != "bold" {
		t.Errorf("styles = %v", styles)
	}
}

func TestPlainText_OmitsEmptyLinks(t *testing.T) {
	in := parseFragment(t, `<para>Compare <link target-id="fig-a"/> with <link target-id="fig-b"/> carefully.</para>`)

	got := in.PlainText()
	if strings.Contains(got, "fig-") {
		t.Errorf("identifiers leaked into plain text: %q", got)
	}
	if got != "Compare with carefully." {
		t.Errorf("plain text = %q", got)
	}
	if len(in.Links()) != 2 {
		t.Errorf("expected both links retained, got %d", len(in.Links()))
	}
}

func TestParseInline_WhitespaceNormalized(t *testing.T) {
	in := parseFragment(t, "<para>spread\n      across\n      lines</para>")
	if got := in.PlainText(); got != "spread across lines" {
		t.Errorf("plain text = %q", got)
	}
}

func TestParseInline_SkipsStructuralChildren(t *testing.T) {
	in := parseFragment(t, `<problem><para>Pick one:</para><list><item>a</item><item>b</item></list></problem>`)
	if got := in.PlainText(); got != "Pick one:" {
		t.Errorf("plain text = %q, list content must not leak into inline runs", got)
	}
}

func TestInline_Terms(t *testing.T) {
	in := parseFragment(t, `<para>Both <term>osmosis</term> and <term>diffusion</term> move molecules.</para>`)
	terms := in.Terms()
	if len(terms) != 2 || terms[0] != "osmosis" || terms[1] != "diffusion" {
		t.Errorf("terms = %v", terms)
	}
}
