package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"lumeaBack/internal/models"
)

type WalletRepository struct {
	DB *sql.DB
}

func (r *WalletRepository) GetWallet(ctx context.Context, userID int) (models.Wallet, error) {
	var (
		w       models.Wallet
		updated sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, `
        SELECT user_id, balance, total_deposited, created_at, updated_at
        FROM wallets WHERE user_id = ?`, userID).
		Scan(&w.UserID, &w.Balance, &w.TotalDeposited, &w.CreatedAt, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Wallet{}, models.ErrWalletNotFound
	}
	if err != nil {
		return models.Wallet{}, err
	}
	if updated.Valid {
		ts := updated.Time.UTC()
		w.UpdatedAt = &ts
	}
	return w, nil
}

// Debit withdraws amount from the user's balance and records a transaction,
// all inside one database transaction. When the balance does not cover the
// amount nothing is written and ErrInsufficientFunds is returned, so a failed
// debit can never leave a half-finished promotion behind.
func (r *WalletRepository) Debit(ctx context.Context, userID int, amount float64, txType string, metadata json.RawMessage) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var balance float64
	err = tx.QueryRowContext(ctx, `
        SELECT balance FROM wallets WHERE user_id = ? FOR UPDATE`, userID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrWalletNotFound
	}
	if err != nil {
		return err
	}
	if balance < amount {
		return models.ErrInsufficientFunds
	}

	if _, err = tx.ExecContext(ctx, `
        UPDATE wallets SET balance = balance - ?, updated_at = NOW() WHERE user_id = ?`,
		amount, userID); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `
        INSERT INTO transactions (id, user_id, type, amount, metadata, status, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), userID, txType, amount, []byte(metadata), "completed", time.Now().UTC()); err != nil {
		return err
	}

	return tx.Commit()
}
