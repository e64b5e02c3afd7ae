package models

// SearchResult is one scored entry in a discovery response. MatchScore is
// ephemeral, computed per query, and never persisted.
type SearchResult struct {
	Listing    Listing           `json:"listing"`
	MatchScore int               `json:"match_score"`
	IsPromoted bool              `json:"is_promoted"`
	Promotion  *PromotionDisplay `json:"promotion,omitempty"`
}

// SearchResponse is what the discovery engine returns for one query.
// Degraded is set when the backing store failed and the engine fell back to
// the candidate pool it already held.
type SearchResponse struct {
	Session    string         `json:"session,omitempty"`
	Results    []SearchResult `json:"results"`
	MatchLevel string         `json:"match_level"`
	Fallbacks  []string       `json:"fallbacks"`
	HasMore    bool           `json:"has_more"`
	Degraded   bool           `json:"degraded,omitempty"`
}

// LoadMoreResponse carries only the newly fetched and scored slice; items
// already delivered are never re-sent or re-scored.
type LoadMoreResponse struct {
	NewResults []SearchResult `json:"new_results"`
	HasMore    bool           `json:"has_more"`
	Degraded   bool           `json:"degraded,omitempty"`
}
