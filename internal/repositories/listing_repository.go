package repositories

import (
	"context"
	"database/sql"
	"errors"

	"lumeaBack/internal/models"
)

// ListingRepository reads provider listings from the relational store.
// Discovery pulls pages in the canonical organic ordering: last update
// descending, id descending as the tie-break, continued by keyset cursor so
// scrolling never returns a row twice.
type ListingRepository struct {
	DB *sql.DB
}

const listingColumns = `id, user_id, title, bio, location, incall_price, outcall_price, active, verified, last_updated_at, created_at`

// FetchPage returns up to limit discoverable listings strictly after the
// cursor. Rows without a last update sort as the epoch origin.
func (r *ListingRepository) FetchPage(ctx context.Context, cursor *models.ListingCursor, limit int) (models.ListingPage, error) {
	query := `SELECT ` + listingColumns + `
              FROM listings
              WHERE active = 1 AND verified = 1`
	args := make([]any, 0, 4)
	if cursor != nil {
		query += `
              AND (COALESCE(last_updated_at, FROM_UNIXTIME(0)) < ?
                   OR (COALESCE(last_updated_at, FROM_UNIXTIME(0)) = ? AND id < ?))`
		args = append(args, cursor.LastUpdatedAt, cursor.LastUpdatedAt, cursor.ID)
	}
	query += `
              ORDER BY COALESCE(last_updated_at, FROM_UNIXTIME(0)) DESC, id DESC
              LIMIT ?`
	args = append(args, limit)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return models.ListingPage{}, err
	}
	defer rows.Close()

	var items []models.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return models.ListingPage{}, err
		}
		items = append(items, l)
	}
	if err := rows.Err(); err != nil {
		return models.ListingPage{}, err
	}

	page := models.ListingPage{Items: items}
	if len(items) > 0 {
		last := items[len(items)-1]
		page.Next = &models.ListingCursor{LastUpdatedAt: last.UpdatedOrZero(), ID: last.ID}
	}
	return page, nil
}

func (r *ListingRepository) GetListingByID(ctx context.Context, id string) (models.Listing, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = ?`, id)
	l, err := scanListing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Listing{}, models.ErrListingNotFound
	}
	if err != nil {
		return models.Listing{}, err
	}
	return l, nil
}

// GetOwnerID returns the provider that owns the listing.
func (r *ListingRepository) GetOwnerID(ctx context.Context, id string) (int, error) {
	var ownerID int
	err := r.DB.QueryRowContext(ctx, `SELECT user_id FROM listings WHERE id = ?`, id).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, models.ErrListingNotFound
	}
	if err != nil {
		return 0, err
	}
	return ownerID, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner) (models.Listing, error) {
	var (
		l           models.Listing
		incall      sql.NullFloat64
		outcall     sql.NullFloat64
		lastUpdated sql.NullTime
	)
	err := row.Scan(&l.ID, &l.UserID, &l.Title, &l.Bio, &l.Location,
		&incall, &outcall, &l.Active, &l.Verified, &lastUpdated, &l.CreatedAt)
	if err != nil {
		return models.Listing{}, err
	}
	if incall.Valid {
		l.IncallPrice = &incall.Float64
	}
	if outcall.Valid {
		l.OutcallPrice = &outcall.Float64
	}
	if lastUpdated.Valid {
		ts := lastUpdated.Time.UTC()
		l.LastUpdatedAt = &ts
	}
	l.CreatedAt = l.CreatedAt.UTC()
	return l, nil
}
