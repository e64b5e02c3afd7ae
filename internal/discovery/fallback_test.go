package discovery

import (
	"reflect"
	"testing"
)

func TestFallbacks(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"three segments", "Fargo, North Dakota, United States", []string{"north dakota, united states", "united states"}},
		{"abbreviated", "Fargo, ND, USA", []string{"north dakota, united states", "united states"}},
		{"two segments", "Paris, France", []string{"france"}},
		{"single segment", "France", nil},
		{"empty", "", nil},
		{"duplicate segments deduped", "Singapore, Singapore", []string{"singapore"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Fallbacks(tc.in)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Fallbacks(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestFallbacksOrder(t *testing.T) {
	got := Fallbacks("City, Region, Country")
	if len(got) != 2 {
		t.Fatalf("expected 2 fallbacks, got %v", got)
	}
	if got[0] != "region, country" || got[1] != "country" {
		t.Fatalf("wrong fallback order: %v", got)
	}
}
