package discovery

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"lumeaBack/internal/models"
)

// ErrNoSearch is returned when load-more is called on a session that has not
// run a search yet.
var ErrNoSearch = errors.New("discovery: load more before first search")

// ListingSource provides pages of organic candidates in the canonical
// ordering (last_updated_at desc, id desc) with keyset continuation.
type ListingSource interface {
	FetchPage(ctx context.Context, cursor *models.ListingCursor, limit int) (models.ListingPage, error)
}

// PromotionSource lists promotions whose stored status is active.
type PromotionSource interface {
	ActivePromotions(ctx context.Context, limit int) ([]models.Promotion, error)
}

// Config tunes one discovery session.
type Config struct {
	InitialPoolSize int
	PageSize        int
	PromotedLimit   int
}

func (c Config) withDefaults() Config {
	if c.InitialPoolSize <= 0 {
		c.InitialPoolSize = 100
	}
	if c.PageSize <= 0 {
		c.PageSize = 12
	}
	if c.PromotedLimit <= 0 {
		c.PromotedLimit = 15
	}
	return c
}

// SearchState is the per-query bundle: it is created fresh for every distinct
// query string and discarded when the query changes.
type SearchState struct {
	Query     string
	SortKey   SortKey
	BestScore int
	Level     MatchLevel
	Fallbacks []string
}

// Session owns the mutable state of one discovery conversation: the candidate
// pool, the page cursor and the current search state. It is designed for a
// single logical caller; concurrent sessions each get their own instance and
// never share state.
type Session struct {
	source ListingSource
	promos PromotionSource
	cfg    Config
	now    func() time.Time

	pool    *Pool
	cursor  *models.ListingCursor
	hasMore bool
	loaded  bool

	promosByListing map[string]models.Promotion

	state *SearchState

	gen    uint64
	cancel context.CancelFunc
}

func NewSession(source ListingSource, promos PromotionSource, cfg Config) *Session {
	return &Session{
		source:  source,
		promos:  promos,
		cfg:     cfg.withDefaults(),
		now:     time.Now,
		pool:    NewPool(),
		hasMore: true,
	}
}

// Search evaluates a location query against the candidate pool, loading the
// initial pool and the promoted set on first use. A newer Search supersedes
// any in-flight one: the stale cycle's fetch context is canceled and its
// results are never applied. A transient store failure is retried once; after
// that the session degrades to whatever pool it already holds rather than
// failing the query.
func (s *Session) Search(ctx context.Context, query string, key SortKey) (models.SearchResponse, error) {
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.gen++
	gen := s.gen

	degraded := false
	if !s.loaded {
		page, err := s.fetchPage(ctx, nil, s.cfg.InitialPoolSize)
		if err != nil {
			if ctx.Err() != nil {
				return models.SearchResponse{}, ctx.Err()
			}
			degraded = true
		} else {
			s.pool.Append(page.Items)
			s.cursor = page.Next
			s.hasMore = len(page.Items) == s.cfg.InitialPoolSize
			s.loaded = true
		}
	}

	if s.promosByListing == nil && s.promos != nil {
		// A failing promoted-set query never fails the search itself.
		if promos, err := s.promos.ActivePromotions(ctx, s.cfg.PromotedLimit); err == nil {
			byListing := make(map[string]models.Promotion, len(promos))
			for _, p := range promos {
				byListing[p.ListingID] = p
			}
			s.promosByListing = byListing
		}
	}

	if s.gen != gen {
		// Superseded while fetching; drop this cycle.
		return models.SearchResponse{}, context.Canceled
	}

	state := &SearchState{
		Query:     query,
		SortKey:   key,
		Level:     MatchNone,
		Fallbacks: Fallbacks(query),
	}
	s.state = state

	results := s.scoreSlice(s.pool.Items(), state)
	Aggregate(results, key)

	return models.SearchResponse{
		Results:    results,
		MatchLevel: string(state.Level),
		Fallbacks:  state.Fallbacks,
		HasMore:    s.hasMore,
		Degraded:   degraded,
	}, nil
}

// LoadMore fetches the next organic slice strictly after the cursor, appends
// it to the pool and scores only the new slice against the current search
// state. A short page marks the end of the data. If the store fails twice the
// session reports a soft degraded flag and keeps serving what it has.
func (s *Session) LoadMore(ctx context.Context) (models.LoadMoreResponse, error) {
	if s.state == nil {
		return models.LoadMoreResponse{}, ErrNoSearch
	}
	if !s.hasMore {
		return models.LoadMoreResponse{HasMore: false}, nil
	}

	page, err := s.fetchPage(ctx, s.cursor, s.cfg.PageSize)
	if err != nil {
		if ctx.Err() != nil {
			return models.LoadMoreResponse{}, ctx.Err()
		}
		return models.LoadMoreResponse{HasMore: s.hasMore, Degraded: true}, nil
	}

	added := s.pool.Append(page.Items)
	s.cursor = page.Next
	if len(page.Items) < s.cfg.PageSize {
		s.hasMore = false
	}

	results := s.scoreSlice(added, s.state)
	Aggregate(results, s.state.SortKey)

	return models.LoadMoreResponse{NewResults: results, HasMore: s.hasMore}, nil
}

// State returns the current per-query state, nil before the first search.
func (s *Session) State() *SearchState {
	return s.state
}

// PoolSize reports how many organic candidates the session has accumulated.
func (s *Session) PoolSize() int {
	return s.pool.Len()
}

// scoreSlice runs the matcher over one slice of candidates. An empty query is
// browse mode: every candidate passes unscored. Already-scored items are never
// re-scored; callers pass only the new slice.
func (s *Session) scoreSlice(items []models.Listing, state *SearchState) []models.SearchResult {
	browse := strings.TrimSpace(state.Query) == ""
	now := s.now().UTC()

	results := make([]models.SearchResult, 0, len(items))
	for _, l := range items {
		if !l.Discoverable() {
			continue
		}
		score := 0
		if !browse {
			score = Score(state.Query, l.Location)
			if score == 0 {
				continue
			}
		}
		r := models.SearchResult{Listing: l, MatchScore: score}
		if p, ok := s.promosByListing[l.ID]; ok && p.Boosted(now) {
			r.IsPromoted = true
			display := p.Display(now)
			r.Promotion = &display
		}
		results = append(results, r)
		if score > state.BestScore {
			state.BestScore = score
		}
	}

	if !browse {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].MatchScore > results[j].MatchScore
		})
		if len(results) > 0 {
			state.Level = Classify(state.BestScore)
		} else {
			state.Level = MatchNone
		}
	}
	return results
}

// fetchPage asks the source for one page, retrying exactly once on a
// transient failure before giving up.
func (s *Session) fetchPage(ctx context.Context, cursor *models.ListingCursor, limit int) (models.ListingPage, error) {
	page, err := s.source.FetchPage(ctx, cursor, limit)
	if err == nil {
		return page, nil
	}
	if ctx.Err() != nil {
		return models.ListingPage{}, ctx.Err()
	}
	page, err = s.source.FetchPage(ctx, cursor, limit)
	if err == nil {
		return page, nil
	}
	if ctx.Err() != nil {
		return models.ListingPage{}, ctx.Err()
	}
	return models.ListingPage{}, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
}
