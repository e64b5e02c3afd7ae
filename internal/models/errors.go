package models

import (
	"errors"
)

var (
	ErrNoRecord           = errors.New("models: no matching record found")
	ErrListingNotFound    = errors.New("models: listing not found")
	ErrPromotionNotFound  = errors.New("models: promotion not found")
	ErrPromotionForbidden = errors.New("models: user is not allowed to manage this promotion")
	ErrWalletNotFound     = errors.New("models: wallet not found")
	ErrInsufficientFunds  = errors.New("models: insufficient funds")
	ErrInvalidListingID   = errors.New("models: invalid listing id")
	ErrInvalidAmount      = errors.New("models: invalid amount")

	// ErrStoreUnavailable wraps transient backing-store failures. Callers
	// retry the fetch once before surfacing it.
	ErrStoreUnavailable = errors.New("models: backing store unavailable")
)
