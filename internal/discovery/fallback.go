package discovery

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Fallbacks derives broader alternative searches from a location query:
// "City, Region, Country" yields ["Region, Country", "Country"]. Queries with
// fewer than two segments have nothing broader to offer.
func Fallbacks(searchLocation string) []string {
	parts := Segments(Normalize(ExpandAbbreviations(searchLocation)))

	fallbacks := make([]string, 0, 2)
	if len(parts) >= 3 {
		fallbacks = append(fallbacks, strings.Join(parts[1:], ", "))
	}
	if len(parts) >= 2 {
		last := parts[len(parts)-1]
		if !slices.Contains(fallbacks, last) {
			fallbacks = append(fallbacks, last)
		}
	}
	return fallbacks
}
