package discovery

import "testing"

func TestScoreRules(t *testing.T) {
	cases := []struct {
		name      string
		search    string
		candidate string
		want      int
	}{
		{"exact", "Paris, France", "paris, france", 100},
		{"exact after expansion", "Fargo, North Dakota, United States", "fargo, nd, usa", 100},
		{"city only", "Paris, France", "Paris, Texas, United States", 80},
		{"region", "Austin, Texas, United States", "Dallas, Texas, United States", 60},
		{"region via shared country segment", "Lyon, France", "Nice, France", 60},
		{"country", "Lyon, France", "France", 40},
		{"substring", "York", "New York, United States", 20},
		{"no match", "Tokyo, Japan", "Berlin, Germany", 0},
		{"empty candidate", "Paris, France", "", 0},
		{"garbage candidate", "Paris, France", "!!!", 0},
		{"empty search", "", "Paris, France", 0},
		{"both empty", "", "", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Score(tc.search, tc.candidate); got != tc.want {
				t.Fatalf("Score(%q, %q) = %d, want %d", tc.search, tc.candidate, got, tc.want)
			}
		})
	}
}

func TestScoreExactCeiling(t *testing.T) {
	for _, loc := range []string{"london", "Fargo, ND, USA", "a, b, c"} {
		if got := Score(loc, loc); got != 100 {
			t.Errorf("Score(%q, %q) = %d, want 100", loc, loc, got)
		}
	}
}

func TestScoreMonotonicity(t *testing.T) {
	search := "Austin, Texas, United States"
	city := "Austin, Georgia"
	region := "Dallas, Texas"
	country := "United States"

	cityScore := Score(search, city)
	regionScore := Score(search, region)
	countryScore := Score(search, country)

	if !(cityScore > regionScore && regionScore > countryScore && countryScore > 0) {
		t.Fatalf("expected strictly decreasing scores, got city=%d region=%d country=%d",
			cityScore, regionScore, countryScore)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		score int
		want  MatchLevel
	}{
		{100, MatchExact},
		{80, MatchExact},
		{60, MatchState},
		{40, MatchCountry},
		{20, MatchPartial},
		{0, MatchNone},
	}
	for _, tc := range cases {
		if got := Classify(tc.score); got != tc.want {
			t.Errorf("Classify(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
