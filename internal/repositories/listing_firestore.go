package repositories

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"lumeaBack/internal/models"
)

// FirestoreListingSource serves the discovery engine from a Firestore
// collection of provider profiles. It is an alternative to the SQL-backed
// ListingRepository for deployments that keep profiles in the document store.
type FirestoreListingSource struct {
	Client     *firestore.Client
	Collection string
}

type firestoreListing struct {
	UserID       int        `firestore:"userId"`
	Title        string     `firestore:"title"`
	Bio          string     `firestore:"bio"`
	Location     string     `firestore:"location"`
	IncallPrice  *float64   `firestore:"incallPrice"`
	OutcallPrice *float64   `firestore:"outcallPrice"`
	Active       bool       `firestore:"profileActive"`
	Verified     bool       `firestore:"verified"`
	LastUpdated  *time.Time `firestore:"lastUpdated"`
	CreatedAt    *time.Time `firestore:"createdAt"`
}

func (raw firestoreListing) toListing(docID string) models.Listing {
	l := models.Listing{
		ID:            docID,
		UserID:        raw.UserID,
		Title:         raw.Title,
		Bio:           raw.Bio,
		Location:      raw.Location,
		IncallPrice:   raw.IncallPrice,
		OutcallPrice:  raw.OutcallPrice,
		Active:        raw.Active,
		Verified:      raw.Verified,
		LastUpdatedAt: raw.LastUpdated,
	}
	if raw.CreatedAt != nil {
		l.CreatedAt = raw.CreatedAt.UTC()
	}
	return l
}

func (s *FirestoreListingSource) FetchPage(ctx context.Context, cursor *models.ListingCursor, limit int) (models.ListingPage, error) {
	query := s.Client.Collection(s.Collection).
		Where("profileActive", "==", true).
		Where("verified", "==", true).
		OrderBy("lastUpdated", firestore.Desc).
		OrderBy(firestore.DocumentID, firestore.Desc).
		Limit(limit)
	if cursor != nil {
		query = query.StartAfter(cursor.LastUpdatedAt, cursor.ID)
	}

	var page models.ListingPage
	iter := query.Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return models.ListingPage{}, err
		}

		var raw firestoreListing
		if err := doc.DataTo(&raw); err != nil {
			return models.ListingPage{}, err
		}
		page.Items = append(page.Items, raw.toListing(doc.Ref.ID))
	}

	if len(page.Items) == limit {
		last := page.Items[len(page.Items)-1]
		page.Next = &models.ListingCursor{LastUpdatedAt: last.UpdatedOrZero(), ID: last.ID}
	}
	return page, nil
}
