package discovery

import (
	"strings"
)

// MatchLevel is the coarse bucket a result set falls into. It drives
// user-facing feedback text only, never the sort order.
type MatchLevel string

const (
	MatchExact   MatchLevel = "exact"
	MatchState   MatchLevel = "state"
	MatchCountry MatchLevel = "country"
	MatchPartial MatchLevel = "partial"
	MatchNone    MatchLevel = "none"
)

// Match scores, one per hierarchy rule. Precision strictly decreases down the
// list, so no combination of weaker signals can outscore a stronger one.
const (
	scoreExact     = 100
	scoreCity      = 80
	scoreRegion    = 60
	scoreCountry   = 40
	scoreSubstring = 20
)

// Score computes a hierarchical match score between a search location and a
// candidate location. Both sides are abbreviation-expanded and normalized,
// then split into hierarchy segments (segment 0 = most specific). The first
// applicable rule wins. A candidate with an empty location always scores 0.
func Score(searchLocation, candidateLocation string) int {
	if strings.TrimSpace(candidateLocation) == "" {
		return 0
	}

	searchNorm := Normalize(ExpandAbbreviations(searchLocation))
	candidateNorm := Normalize(ExpandAbbreviations(candidateLocation))

	searchParts := Segments(searchNorm)
	candidateParts := Segments(candidateNorm)

	if searchNorm != "" && searchNorm == candidateNorm {
		return scoreExact
	}

	// City: most specific segment on both sides.
	if len(searchParts) > 0 && len(candidateParts) > 0 && searchParts[0] == candidateParts[0] {
		return scoreCity
	}

	// Region: any non-first segment of the search against any non-first
	// segment of the candidate.
	for i := 1; i < len(searchParts); i++ {
		for j := 1; j < len(candidateParts); j++ {
			if searchParts[i] == candidateParts[j] {
				return scoreRegion
			}
		}
	}

	// Country: least specific segment on both sides.
	if len(searchParts) > 0 && len(candidateParts) > 0 &&
		searchParts[len(searchParts)-1] == candidateParts[len(candidateParts)-1] {
		return scoreCountry
	}

	// Substring in either direction.
	for _, sp := range searchParts {
		for _, cp := range candidateParts {
			if strings.Contains(cp, sp) || strings.Contains(sp, cp) {
				return scoreSubstring
			}
		}
	}

	return 0
}

// Classify maps the best score observed across all candidates to a match
// level.
func Classify(bestScore int) MatchLevel {
	switch {
	case bestScore >= scoreCity:
		return MatchExact
	case bestScore >= scoreRegion:
		return MatchState
	case bestScore >= scoreCountry:
		return MatchCountry
	case bestScore > 0:
		return MatchPartial
	default:
		return MatchNone
	}
}
