package discovery

import (
	"testing"
	"time"

	"lumeaBack/internal/models"
)

func resultFor(id string, promoted bool, updated *time.Time, incall *float64) models.SearchResult {
	return models.SearchResult{
		Listing: models.Listing{
			ID:            id,
			Location:      "paris, france",
			Active:        true,
			Verified:      true,
			LastUpdatedAt: updated,
			IncallPrice:   incall,
		},
		IsPromoted: promoted,
	}
}

func ptrTime(t time.Time) *time.Time { return &t }
func ptrFloat(f float64) *float64    { return &f }

func ids(results []models.SearchResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Listing.ID
	}
	return out
}

func TestAggregatePromotionDominance(t *testing.T) {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	for _, key := range []SortKey{SortRecent, SortPriceLow, SortPriceHigh} {
		results := []models.SearchResult{
			resultFor("organic-new", false, ptrTime(base.Add(48*time.Hour)), ptrFloat(10)),
			resultFor("promoted-old", true, ptrTime(base.Add(-48*time.Hour)), ptrFloat(500)),
			resultFor("organic-cheap", false, ptrTime(base), ptrFloat(1)),
			resultFor("promoted-new", true, ptrTime(base), ptrFloat(50)),
		}
		Aggregate(results, key)

		for i, r := range results[:2] {
			if !r.IsPromoted {
				t.Fatalf("sortKey %q: expected promoted item at position %d, got %v", key, i, ids(results))
			}
		}
		for i, r := range results[2:] {
			if r.IsPromoted {
				t.Fatalf("sortKey %q: expected organic item at position %d, got %v", key, i+2, ids(results))
			}
		}
	}
}

func TestAggregateRecent(t *testing.T) {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	results := []models.SearchResult{
		resultFor("older", false, ptrTime(base.Add(-time.Hour)), nil),
		resultFor("newer", false, ptrTime(base), nil),
		resultFor("never-updated", false, nil, nil),
	}
	Aggregate(results, SortRecent)

	got := ids(results)
	want := []string{"newer", "older", "never-updated"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("recent ordering wrong: got %v, want %v", got, want)
		}
	}
}

func TestAggregatePriceLow(t *testing.T) {
	results := []models.SearchResult{
		resultFor("pricey", false, nil, ptrFloat(300)),
		resultFor("no-price", false, nil, nil),
		resultFor("cheap", false, nil, ptrFloat(50)),
	}
	Aggregate(results, SortPriceLow)

	got := ids(results)
	want := []string{"cheap", "pricey", "no-price"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("price-low ordering wrong: got %v, want %v", got, want)
		}
	}
}

func TestAggregatePriceHigh(t *testing.T) {
	results := []models.SearchResult{
		resultFor("no-price", false, nil, nil),
		resultFor("cheap", false, nil, ptrFloat(50)),
		resultFor("pricey", false, nil, ptrFloat(300)),
	}
	Aggregate(results, SortPriceHigh)

	got := ids(results)
	want := []string{"pricey", "cheap", "no-price"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("price-high ordering wrong: got %v, want %v", got, want)
		}
	}
}

func TestAggregateStableTies(t *testing.T) {
	when := ptrTime(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC))
	results := []models.SearchResult{
		resultFor("first", false, when, ptrFloat(100)),
		resultFor("second", false, when, ptrFloat(100)),
		resultFor("third", false, when, ptrFloat(100)),
	}
	for _, key := range []SortKey{SortRecent, SortPriceLow, SortPriceHigh} {
		Aggregate(results, key)
		got := ids(results)
		if got[0] != "first" || got[1] != "second" || got[2] != "third" {
			t.Fatalf("sortKey %q broke tie stability: %v", key, got)
		}
	}
}

func TestParseSortKey(t *testing.T) {
	if ParseSortKey("price-low") != SortPriceLow {
		t.Error("expected price-low")
	}
	if ParseSortKey("price-high") != SortPriceHigh {
		t.Error("expected price-high")
	}
	if ParseSortKey("") != SortRecent || ParseSortKey("bogus") != SortRecent {
		t.Error("expected recent default")
	}
}
