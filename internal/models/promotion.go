package models

import (
	"math"
	"time"
)

// Promotion statuses stored in the database. "expired" is written only by the
// optional background sweep; reads always go through Display, which projects
// a lapsed boost window as expired regardless of the stored value.
const (
	PromotionStatusActive  = "active"
	PromotionStatusPaused  = "paused"
	PromotionStatusExpired = "expired"
)

// BoostWindow is how long a paid boost keeps a listing promoted.
const BoostWindow = 7 * 24 * time.Hour

// Promotion is a paid boost attached to exactly one listing. Priority is a
// timestamp-derived counter used purely for ordering between repeatedly
// boosted promotions, not for wall-clock semantics.
type Promotion struct {
	ID         string     `json:"id"`
	ListingID  string     `json:"listing_id"`
	UserID     int        `json:"user_id"`
	Status     string     `json:"status"`
	BoostUntil time.Time  `json:"boost_until"`
	Priority   int64      `json:"priority"`
	AmountPaid float64    `json:"amount_paid"`
	Views      int64      `json:"views"`
	Clicks     int64      `json:"clicks"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// Boosted reports whether the promotion should outrank organic results at the
// given instant: stored status must be active and the boost window not lapsed.
func (p Promotion) Boosted(now time.Time) bool {
	return p.Status == PromotionStatusActive && !now.UTC().After(p.BoostUntil)
}

// PromotionDisplay is the read-time projection of a promotion's state. It is
// never stored: a promotion whose window lapsed still reads "active" in the
// database but projects as expired here.
type PromotionDisplay struct {
	State    string `json:"state"`
	DaysLeft int    `json:"days_left,omitempty"`
}

// Display projects (status, boostUntil, now) into what the owner sees.
func (p Promotion) Display(now time.Time) PromotionDisplay {
	switch p.Status {
	case PromotionStatusPaused:
		return PromotionDisplay{State: PromotionStatusPaused}
	case PromotionStatusExpired:
		return PromotionDisplay{State: PromotionStatusExpired}
	}
	now = now.UTC()
	if now.After(p.BoostUntil) {
		return PromotionDisplay{State: PromotionStatusExpired}
	}
	days := int(math.Ceil(p.BoostUntil.Sub(now).Hours() / 24))
	return PromotionDisplay{State: PromotionStatusActive, DaysLeft: days}
}

// NextPriority derives the priority for a fresh boost. The value only ever
// increases, so re-boosting outranks a stale boost even if the clock reads
// the same second twice.
func NextPriority(current int64, now time.Time) int64 {
	next := now.UTC().Unix()
	if next < current {
		return current
	}
	return next
}

// PromotionDraft is the payload for creating a promotion.
type PromotionDraft struct {
	ListingID string `json:"listing_id"`
}

// PromotionSummary is what owners see when listing their promotions: the raw
// record plus its display projection.
type PromotionSummary struct {
	Promotion
	Display PromotionDisplay `json:"display"`
}
