package models

import (
	"encoding/json"
	"time"
)

// Wallet tracks a provider's prepaid balance. Deposits are credited by an
// external payment-webhook flow; this core only debits.
type Wallet struct {
	UserID         int        `json:"user_id"`
	Balance        float64    `json:"balance"`
	TotalDeposited float64    `json:"total_deposited"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// Transaction types recorded against a wallet.
const (
	TransactionAdPayment = "ad_payment"
	TransactionAdBoost   = "ad_boost"
)

// Transaction is one wallet movement. Metadata carries the promotion context
// that caused the debit.
type Transaction struct {
	ID        string          `json:"id"`
	UserID    int             `json:"user_id"`
	Type      string          `json:"type"`
	Amount    float64         `json:"amount"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}
