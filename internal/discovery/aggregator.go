package discovery

import (
	"math"
	"sort"

	"lumeaBack/internal/models"
)

// SortKey selects the secondary ordering applied within the promoted and
// organic partitions.
type SortKey string

const (
	SortRecent    SortKey = "recent"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
)

// ParseSortKey maps a request parameter to a sort key, defaulting to recency.
func ParseSortKey(raw string) SortKey {
	switch SortKey(raw) {
	case SortPriceLow:
		return SortPriceLow
	case SortPriceHigh:
		return SortPriceHigh
	default:
		return SortRecent
	}
}

// Aggregate orders a mixed result set in place: every promoted item sorts
// strictly before every organic item regardless of the sort key, the sort key
// applies within each partition, and ties keep their original relative order.
// Missing timestamps count as the epoch origin; missing prices sort last
// under both price orderings.
func Aggregate(results []models.SearchResult, key SortKey) {
	if len(results) < 2 {
		return
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.IsPromoted != b.IsPromoted {
			return a.IsPromoted
		}
		switch key {
		case SortPriceLow:
			return incallOr(a, math.Inf(1)) < incallOr(b, math.Inf(1))
		case SortPriceHigh:
			return incallOr(a, 0) > incallOr(b, 0)
		default:
			return a.Listing.UpdatedOrZero().After(b.Listing.UpdatedOrZero())
		}
	})
}

func incallOr(r models.SearchResult, missing float64) float64 {
	if r.Listing.IncallPrice == nil {
		return missing
	}
	return *r.Listing.IncallPrice
}
