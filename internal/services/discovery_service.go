package services

import (
	"context"

	"lumeaBack/internal/discovery"
	"lumeaBack/internal/models"
)

// DiscoveryService owns session construction for location search. Each
// connected client gets its own session so pagination state never leaks
// between users.
type DiscoveryService struct {
	Listings discovery.ListingSource
	Promos   discovery.PromotionSource
	Config   discovery.Config
}

func NewDiscoveryService(listings discovery.ListingSource, promos discovery.PromotionSource, cfg discovery.Config) *DiscoveryService {
	return &DiscoveryService{Listings: listings, Promos: promos, Config: cfg}
}

func (s *DiscoveryService) NewSession() *discovery.Session {
	return discovery.NewSession(s.Listings, s.Promos, s.Config)
}

// Search is the one-shot variant for stateless callers: a fresh session,
// one search, no pagination state kept.
func (s *DiscoveryService) Search(ctx context.Context, query string, key discovery.SortKey) (models.SearchResponse, error) {
	return s.NewSession().Search(ctx, query, key)
}
