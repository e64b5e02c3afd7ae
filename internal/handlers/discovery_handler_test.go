package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"lumeaBack/internal/discovery"
	"lumeaBack/internal/models"
	"lumeaBack/internal/services"
)

type stubListingSource struct {
	listings []models.Listing
}

func (s *stubListingSource) FetchPage(_ context.Context, cursor *models.ListingCursor, limit int) (models.ListingPage, error) {
	start := 0
	if cursor != nil {
		for i, l := range s.listings {
			if l.ID == cursor.ID {
				start = i + 1
				break
			}
		}
	}
	end := start + limit
	if end > len(s.listings) {
		end = len(s.listings)
	}
	items := s.listings[start:end]

	page := models.ListingPage{Items: items}
	if len(items) > 0 {
		last := items[len(items)-1]
		page.Next = &models.ListingCursor{LastUpdatedAt: last.UpdatedOrZero(), ID: last.ID}
	}
	return page, nil
}

type stubPromotionSource struct{}

func (stubPromotionSource) ActivePromotions(context.Context, int) ([]models.Promotion, error) {
	return nil, nil
}

func newTestDiscoveryHandler(total, poolSize, pageSize int) *DiscoveryHandler {
	base := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	listings := make([]models.Listing, total)
	for i := range listings {
		updated := base.Add(-time.Duration(i) * time.Minute)
		listings[i] = models.Listing{
			ID:            fmt.Sprintf("listing-%03d", i),
			Location:      "Lyon, France",
			Active:        true,
			Verified:      true,
			LastUpdatedAt: &updated,
		}
	}
	svc := services.NewDiscoveryService(&stubListingSource{listings: listings}, stubPromotionSource{}, discovery.Config{
		InitialPoolSize: poolSize,
		PageSize:        pageSize,
	})
	return NewDiscoveryHandler(svc)
}

func TestDiscoveryHandlerSessionRoundTrip(t *testing.T) {
	h := newTestDiscoveryHandler(5, 3, 2)

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest("GET", "/discover/search?location=Lyon", nil))

	var resp models.SearchResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding search response: %v", err)
	}
	if resp.Session == "" {
		t.Fatal("search response carries no session token")
	}
	if !resp.HasMore {
		t.Fatal("expected more pages after the initial pool")
	}

	rec = httptest.NewRecorder()
	h.LoadMore(rec, httptest.NewRequest("GET", "/discover/more?session="+resp.Session, nil))
	var more models.LoadMoreResponse
	if err := json.NewDecoder(rec.Body).Decode(&more); err != nil {
		t.Fatalf("decoding load more response: %v", err)
	}
	if len(more.NewResults) != 2 {
		t.Fatalf("expected 2 new results, got %d", len(more.NewResults))
	}
}

func TestDiscoveryHandlerUnknownSession(t *testing.T) {
	h := newTestDiscoveryHandler(1, 1, 1)
	rec := httptest.NewRecorder()
	h.LoadMore(rec, httptest.NewRequest("GET", "/discover/more?session=gone", nil))
	if rec.Code != 404 {
		t.Fatalf("status = %d; want 404", rec.Code)
	}
}

// Requests sharing one session token must serialize over the engine: pages
// stay duplicate-free no matter how callers interleave.
func TestDiscoveryHandlerConcurrentSameSession(t *testing.T) {
	h := newTestDiscoveryHandler(40, 4, 2)

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest("GET", "/discover/search?location=Lyon", nil))
	var resp models.SearchResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding search response: %v", err)
	}
	token := resp.Session

	var (
		mu   sync.Mutex
		seen = make(map[string]int)
	)
	for _, r := range resp.Results {
		seen[r.Listing.ID]++
	}

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 5; i++ {
				rec := httptest.NewRecorder()
				h.LoadMore(rec, httptest.NewRequest("GET", "/discover/more?session="+token, nil))
				var more models.LoadMoreResponse
				if err := json.NewDecoder(rec.Body).Decode(&more); err != nil {
					t.Errorf("decoding load more response: %v", err)
					return
				}
				mu.Lock()
				for _, r := range more.NewResults {
					seen[r.Listing.ID]++
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	for id, n := range seen {
		if n > 1 {
			t.Errorf("listing %q delivered %d times across concurrent pages", id, n)
		}
	}
}

func TestDiscoveryHandlerEvictStale(t *testing.T) {
	h := newTestDiscoveryHandler(2, 2, 2)

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest("GET", "/discover/search?location=Lyon", nil))
	var resp models.SearchResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding search response: %v", err)
	}

	if n := h.EvictStale(time.Now()); n != 0 {
		t.Fatalf("fresh session evicted (%d)", n)
	}
	if n := h.EvictStale(time.Now().Add(SessionTTL + time.Minute)); n != 1 {
		t.Fatalf("expected 1 eviction, got %d", n)
	}

	rec = httptest.NewRecorder()
	h.LoadMore(rec, httptest.NewRequest("GET", "/discover/more?session="+resp.Session, nil))
	if rec.Code != 404 {
		t.Fatalf("status after eviction = %d; want 404", rec.Code)
	}
}
