package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lumeaBack/internal/models"
)

type PromotionRepository struct {
	DB *sql.DB
}

const promotionColumns = `id, listing_id, user_id, status, boost_until, priority, amount_paid, views, clicks, created_at, updated_at`

func (r *PromotionRepository) CreatePromotion(ctx context.Context, p models.Promotion) error {
	_, err := r.DB.ExecContext(ctx, `
        INSERT INTO promotions (id, listing_id, user_id, status, boost_until, priority, amount_paid, views, clicks, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.ListingID, p.UserID, p.Status, p.BoostUntil, p.Priority,
		p.AmountPaid, p.Views, p.Clicks, p.CreatedAt)
	return err
}

func (r *PromotionRepository) GetPromotionByID(ctx context.Context, id string) (models.Promotion, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+promotionColumns+` FROM promotions WHERE id = ?`, id)
	p, err := scanPromotion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Promotion{}, models.ErrPromotionNotFound
	}
	if err != nil {
		return models.Promotion{}, err
	}
	return p, nil
}

// ActivePromotions returns promotions whose stored status is active, freshest
// boost first. Lapsed boost windows are filtered at read time by the engine,
// not here; the stored status stays active until the optional sweep runs.
func (r *PromotionRepository) ActivePromotions(ctx context.Context, limit int) ([]models.Promotion, error) {
	rows, err := r.DB.QueryContext(ctx, `
        SELECT `+promotionColumns+`
        FROM promotions
        WHERE status = ?
        ORDER BY priority DESC
        LIMIT ?`, models.PromotionStatusActive, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPromotions(rows)
}

func (r *PromotionRepository) GetPromotionsByUser(ctx context.Context, userID int) ([]models.Promotion, error) {
	rows, err := r.DB.QueryContext(ctx, `
        SELECT `+promotionColumns+`
        FROM promotions
        WHERE user_id = ?
        ORDER BY priority DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPromotions(rows)
}

// UpdateBoost opens a fresh boost window. The status field is left untouched:
// a boost never resumes a paused promotion.
func (r *PromotionRepository) UpdateBoost(ctx context.Context, id string, boostUntil time.Time, priority int64, amountPaid float64) error {
	result, err := r.DB.ExecContext(ctx, `
        UPDATE promotions
        SET boost_until = ?, priority = ?, amount_paid = amount_paid + ?, updated_at = NOW()
        WHERE id = ?`, boostUntil, priority, amountPaid, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (r *PromotionRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.DB.ExecContext(ctx, `
        UPDATE promotions SET status = ?, updated_at = NOW() WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (r *PromotionRepository) DeletePromotion(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM promotions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// AddCounters folds accumulated view/click deltas into the stored totals.
func (r *PromotionRepository) AddCounters(ctx context.Context, id string, views, clicks int64) error {
	if views == 0 && clicks == 0 {
		return nil
	}
	_, err := r.DB.ExecContext(ctx, `
        UPDATE promotions SET views = views + ?, clicks = clicks + ? WHERE id = ?`,
		views, clicks, id)
	return err
}

// ExpireLapsed transitions active promotions whose boost window lapsed to a
// stored expired status. Only the optional background sweep calls this; reads
// never depend on it.
func (r *PromotionRepository) ExpireLapsed(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `
        UPDATE promotions SET status = ?, updated_at = NOW()
        WHERE status = ? AND boost_until < ?`,
		models.PromotionStatusExpired, models.PromotionStatusActive, now.UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func collectPromotions(rows *sql.Rows) ([]models.Promotion, error) {
	var promos []models.Promotion
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, err
		}
		promos = append(promos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return promos, nil
}

func scanPromotion(row rowScanner) (models.Promotion, error) {
	var (
		p       models.Promotion
		updated sql.NullTime
	)
	err := row.Scan(&p.ID, &p.ListingID, &p.UserID, &p.Status, &p.BoostUntil,
		&p.Priority, &p.AmountPaid, &p.Views, &p.Clicks, &p.CreatedAt, &updated)
	if err != nil {
		return models.Promotion{}, err
	}
	p.BoostUntil = p.BoostUntil.UTC()
	p.CreatedAt = p.CreatedAt.UTC()
	if updated.Valid {
		ts := updated.Time.UTC()
		p.UpdatedAt = &ts
	}
	return p, nil
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrPromotionNotFound
	}
	return nil
}
