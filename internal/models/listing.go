package models

import (
	"time"
)

// Listing is a provider's published, discoverable record. A listing is
// visible to discovery only while it is both active and verified.
type Listing struct {
	ID            string     `json:"id"`
	UserID        int        `json:"user_id"`
	Title         string     `json:"title"`
	Bio           string     `json:"bio"`
	Location      string     `json:"location"`
	IncallPrice   *float64   `json:"incall_price,omitempty"`
	OutcallPrice  *float64   `json:"outcall_price,omitempty"`
	Active        bool       `json:"active"`
	Verified      bool       `json:"verified"`
	LastUpdatedAt *time.Time `json:"last_updated_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Discoverable reports whether the listing may appear in search results.
func (l Listing) Discoverable() bool {
	return l.Active && l.Verified
}

// UpdatedOrZero returns the last update timestamp, or the zero time when the
// listing never recorded one. Missing timestamps sort after everything else
// under the recency ordering.
func (l Listing) UpdatedOrZero() time.Time {
	if l.LastUpdatedAt == nil {
		return time.Time{}
	}
	return *l.LastUpdatedAt
}

// ListingCursor is a keyset continuation token for the canonical organic
// ordering (last_updated_at desc, id desc). A nil cursor means the first page.
type ListingCursor struct {
	LastUpdatedAt time.Time `json:"last_updated_at"`
	ID            string    `json:"id"`
}

// ListingPage is one slice of the organic candidate set.
type ListingPage struct {
	Items []Listing
	Next  *ListingCursor
}
