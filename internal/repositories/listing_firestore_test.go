package repositories

import (
	"testing"
	"time"
)

func TestFirestoreListingMapping(t *testing.T) {
	updated := time.Date(2025, time.April, 2, 10, 0, 0, 0, time.UTC)
	created := time.Date(2025, time.January, 5, 8, 30, 0, 0, time.UTC)
	price := 120.0

	raw := firestoreListing{
		UserID:      7,
		Title:       "Masseuse",
		Location:    "Lyon, France",
		IncallPrice: &price,
		Active:      true,
		Verified:    true,
		LastUpdated: &updated,
		CreatedAt:   &created,
	}

	l := raw.toListing("doc-1")
	if l.ID != "doc-1" || l.UserID != 7 {
		t.Errorf("identity fields = (%q, %d); want (doc-1, 7)", l.ID, l.UserID)
	}
	if !l.CreatedAt.Equal(created) {
		t.Errorf("created at = %v; want %v", l.CreatedAt, created)
	}
	if l.LastUpdatedAt == nil || !l.LastUpdatedAt.Equal(updated) {
		t.Errorf("last updated = %v; want %v", l.LastUpdatedAt, updated)
	}
	if l.IncallPrice == nil || *l.IncallPrice != price {
		t.Errorf("incall price = %v; want %v", l.IncallPrice, price)
	}
	if !l.Discoverable() {
		t.Error("active verified listing should be discoverable")
	}
}

func TestFirestoreListingMappingMissingTimestamps(t *testing.T) {
	l := firestoreListing{UserID: 1, Active: true, Verified: true}.toListing("doc-2")
	if !l.CreatedAt.IsZero() {
		t.Errorf("missing created at should map to the zero time, got %v", l.CreatedAt)
	}
	if l.LastUpdatedAt != nil {
		t.Errorf("missing last update should stay nil, got %v", l.LastUpdatedAt)
	}
	if !l.UpdatedOrZero().IsZero() {
		t.Error("listing without updates should sort as the epoch origin")
	}
}
