package services

import (
	"context"
	"encoding/json"

	"lumeaBack/internal/models"
	"lumeaBack/internal/repositories"
)

type WalletService struct {
	Repo *repositories.WalletRepository
}

func NewWalletService(repo *repositories.WalletRepository) *WalletService {
	return &WalletService{Repo: repo}
}

func (s *WalletService) Balance(ctx context.Context, userID int) (models.Wallet, error) {
	return s.Repo.GetWallet(ctx, userID)
}

// Debit charges the user's wallet and records a transaction. The whole
// operation happens inside one database transaction, so an insufficient
// balance leaves no trace.
func (s *WalletService) Debit(ctx context.Context, userID int, amount float64, txType string, metadata json.RawMessage) error {
	if amount <= 0 {
		return models.ErrInvalidAmount
	}
	return s.Repo.Debit(ctx, userID, amount, txType, metadata)
}
