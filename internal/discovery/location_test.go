package discovery

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"casing and trim", "  New York  ", "new york"},
		{"punctuation stripped", "St. Louis!", "st louis"},
		{"whitespace collapsed", "new    york   city", "new york city"},
		{"comma spacing", "paris ,france", "paris, france"},
		{"comma spacing tight", "paris,france", "paris, france"},
		{"empty", "", ""},
		{"garbage", "!!!", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Fargo, ND, USA",
		"  San   Francisco , CA ",
		"london",
		"",
		"a,,b",
		"trailing,",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestExpandAbbreviations(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"state code", "Fargo, ND", "fargo, north dakota"},
		{"maine keeps its state code", "Portland, ME", "portland, maine"},
		{"state and country", "Fargo, ND, USA", "fargo, north dakota, united states"},
		{"dotted codes", "Austin, T.X., U.S.", "austin, texas, united states"},
		{"unknown passes through", "Springfield, Oz", "springfield, oz"},
		{"country wins shared code", "San Diego, CA", "san diego, canada"},
		{"plain country", "UK", "united kingdom"},
		{"no segments", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExpandAbbreviations(tc.in); got != tc.want {
				t.Fatalf("ExpandAbbreviations(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSegments(t *testing.T) {
	got := Segments("fargo, north dakota, united states")
	if len(got) != 3 || got[0] != "fargo" || got[2] != "united states" {
		t.Fatalf("unexpected segments: %v", got)
	}
	if got := Segments(""); len(got) != 0 {
		t.Fatalf("expected no segments for empty input, got %v", got)
	}
	if got := Segments("a, , b"); len(got) != 2 {
		t.Fatalf("expected empty segment to be dropped, got %v", got)
	}
}
