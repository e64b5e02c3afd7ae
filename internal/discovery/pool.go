package discovery

import (
	"lumeaBack/internal/models"
)

// Pool is an append-only accumulator of fetched organic candidates. Each
// session owns exactly one pool; it grows as the user scrolls and is never
// truncated or shared between sessions.
type Pool struct {
	items []models.Listing
	seen  map[string]struct{}
}

func NewPool() *Pool {
	return &Pool{seen: make(map[string]struct{})}
}

// Append adds the listings that were not already in the pool and returns the
// newly added slice in fetch order.
func (p *Pool) Append(items []models.Listing) []models.Listing {
	added := make([]models.Listing, 0, len(items))
	for _, item := range items {
		if _, ok := p.seen[item.ID]; ok {
			continue
		}
		p.seen[item.ID] = struct{}{}
		p.items = append(p.items, item)
		added = append(added, item)
	}
	return added
}

// Items returns the accumulated candidates in insertion order. The returned
// slice is the pool's backing storage; callers must not mutate it.
func (p *Pool) Items() []models.Listing {
	return p.items
}

func (p *Pool) Len() int {
	return len(p.items)
}
