package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"lumeaBack/internal/models"
	"lumeaBack/internal/repositories"
)

// DefaultPromotionCost is the flat fee, in wallet currency, for creating or
// re-boosting a promotion.
const DefaultPromotionCost = 3.0

// PromotionStore is the subset of the promotion repository the service needs.
type PromotionStore interface {
	CreatePromotion(ctx context.Context, p models.Promotion) error
	GetPromotionByID(ctx context.Context, id string) (models.Promotion, error)
	GetPromotionsByUser(ctx context.Context, userID int) ([]models.Promotion, error)
	UpdateBoost(ctx context.Context, id string, boostUntil time.Time, priority int64, amountPaid float64) error
	UpdateStatus(ctx context.Context, id, status string) error
	DeletePromotion(ctx context.Context, id string) error
	AddCounters(ctx context.Context, id string, views, clicks int64) error
	ExpireLapsed(ctx context.Context, now time.Time) (int64, error)
}

// ListingOwnerStore resolves which user owns a listing.
type ListingOwnerStore interface {
	GetOwnerID(ctx context.Context, id string) (int, error)
}

// WalletDebitor charges a user's wallet.
type WalletDebitor interface {
	Debit(ctx context.Context, userID int, amount float64, txType string, metadata json.RawMessage) error
}

// CounterStore buffers view/click counters outside the relational store.
type CounterStore interface {
	IncrementViews(ctx context.Context, promotionID string) error
	IncrementClicks(ctx context.Context, promotionID string) error
	Pending(ctx context.Context, promotionIDs []string) (map[string]repositories.CounterDelta, error)
	Drain(ctx context.Context) (map[string]repositories.CounterDelta, error)
}

type PromotionService struct {
	Repo     PromotionStore
	Listings ListingOwnerStore
	Wallet   WalletDebitor
	Counters CounterStore
	Cost     float64
	Now      func() time.Time
}

func NewPromotionService(repo PromotionStore, listings ListingOwnerStore, wallet WalletDebitor, counters CounterStore) *PromotionService {
	return &PromotionService{
		Repo:     repo,
		Listings: listings,
		Wallet:   wallet,
		Counters: counters,
		Cost:     DefaultPromotionCost,
		Now:      time.Now,
	}
}

func (s *PromotionService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Create charges the flat promotion fee and activates a fresh boost for the
// listing. The wallet is debited before anything is written, so an
// insufficient balance creates no promotion.
func (s *PromotionService) Create(ctx context.Context, userID int, draft models.PromotionDraft) (models.Promotion, error) {
	if draft.ListingID == "" {
		return models.Promotion{}, models.ErrInvalidListingID
	}
	ownerID, err := s.Listings.GetOwnerID(ctx, draft.ListingID)
	if err != nil {
		return models.Promotion{}, err
	}
	if ownerID != userID {
		return models.Promotion{}, models.ErrPromotionForbidden
	}

	meta, _ := json.Marshal(map[string]string{"listing_id": draft.ListingID})
	if err := s.Wallet.Debit(ctx, userID, s.Cost, models.TransactionAdPayment, meta); err != nil {
		return models.Promotion{}, err
	}

	now := s.now()
	promo := models.Promotion{
		ID:         uuid.NewString(),
		ListingID:  draft.ListingID,
		UserID:     userID,
		Status:     models.PromotionStatusActive,
		BoostUntil: now.Add(models.BoostWindow),
		Priority:   models.NextPriority(0, now),
		AmountPaid: s.Cost,
		CreatedAt:  now,
	}
	if err := s.Repo.CreatePromotion(ctx, promo); err != nil {
		return models.Promotion{}, err
	}
	return promo, nil
}

// Boost re-charges the fee and restarts the boost window. Priority never
// decreases, so a re-boosted promotion always outranks its previous self.
// The stored status is left alone: boosting a paused promotion extends the
// window without resuming it.
func (s *PromotionService) Boost(ctx context.Context, userID int, promotionID string) (models.Promotion, error) {
	promo, err := s.requireOwner(ctx, userID, promotionID)
	if err != nil {
		return models.Promotion{}, err
	}

	meta, _ := json.Marshal(map[string]string{"promotion_id": promotionID, "listing_id": promo.ListingID})
	if err := s.Wallet.Debit(ctx, userID, s.Cost, models.TransactionAdBoost, meta); err != nil {
		return models.Promotion{}, err
	}

	now := s.now()
	promo.BoostUntil = now.Add(models.BoostWindow)
	promo.Priority = models.NextPriority(promo.Priority, now)
	promo.AmountPaid += s.Cost
	if err := s.Repo.UpdateBoost(ctx, promotionID, promo.BoostUntil, promo.Priority, s.Cost); err != nil {
		return models.Promotion{}, err
	}
	return promo, nil
}

func (s *PromotionService) Pause(ctx context.Context, userID int, promotionID string) error {
	if _, err := s.requireOwner(ctx, userID, promotionID); err != nil {
		return err
	}
	return s.Repo.UpdateStatus(ctx, promotionID, models.PromotionStatusPaused)
}

// Resume restores the stored status to active. If the boost window lapsed
// while paused the promotion still reads as expired until re-boosted.
func (s *PromotionService) Resume(ctx context.Context, userID int, promotionID string) error {
	if _, err := s.requireOwner(ctx, userID, promotionID); err != nil {
		return err
	}
	return s.Repo.UpdateStatus(ctx, promotionID, models.PromotionStatusActive)
}

func (s *PromotionService) Delete(ctx context.Context, userID int, promotionID string) error {
	if _, err := s.requireOwner(ctx, userID, promotionID); err != nil {
		return err
	}
	return s.Repo.DeletePromotion(ctx, promotionID)
}

// ListByUser returns the owner's promotions with display projections and any
// counter activity still sitting in the buffer merged in.
func (s *PromotionService) ListByUser(ctx context.Context, userID int) ([]models.PromotionSummary, error) {
	promos, err := s.Repo.GetPromotionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var pending map[string]repositories.CounterDelta
	if s.Counters != nil && len(promos) > 0 {
		ids := make([]string, len(promos))
		for i, p := range promos {
			ids[i] = p.ID
		}
		pending, err = s.Counters.Pending(ctx, ids)
		if err != nil {
			// Stale counters are acceptable; the next flush catches up.
			pending = nil
		}
	}

	now := s.now()
	summaries := make([]models.PromotionSummary, 0, len(promos))
	for _, p := range promos {
		if delta, ok := pending[p.ID]; ok {
			p.Views += delta.Views
			p.Clicks += delta.Clicks
		}
		summaries = append(summaries, models.PromotionSummary{Promotion: p, Display: p.Display(now)})
	}
	return summaries, nil
}

func (s *PromotionService) RecordView(ctx context.Context, promotionID string) error {
	if s.Counters != nil {
		return s.Counters.IncrementViews(ctx, promotionID)
	}
	return s.Repo.AddCounters(ctx, promotionID, 1, 0)
}

func (s *PromotionService) RecordClick(ctx context.Context, promotionID string) error {
	if s.Counters != nil {
		return s.Counters.IncrementClicks(ctx, promotionID)
	}
	return s.Repo.AddCounters(ctx, promotionID, 0, 1)
}

// FlushCounters drains buffered view/click deltas into the promotions table.
func (s *PromotionService) FlushCounters(ctx context.Context) error {
	if s.Counters == nil {
		return nil
	}
	deltas, err := s.Counters.Drain(ctx)
	if err != nil {
		return err
	}
	for id, delta := range deltas {
		if err := s.Repo.AddCounters(ctx, id, delta.Views, delta.Clicks); err != nil {
			return fmt.Errorf("flush counters for promotion %s: %w", id, err)
		}
	}
	return nil
}

// ExpireLapsed writes the stored "expired" status for promotions whose boost
// window has passed. Purely cosmetic for the stored rows; ranking and display
// already treat lapsed windows as expired.
func (s *PromotionService) ExpireLapsed(ctx context.Context) (int64, error) {
	return s.Repo.ExpireLapsed(ctx, s.now())
}

func (s *PromotionService) requireOwner(ctx context.Context, userID int, promotionID string) (models.Promotion, error) {
	promo, err := s.Repo.GetPromotionByID(ctx, promotionID)
	if err != nil {
		return models.Promotion{}, err
	}
	if promo.UserID != userID {
		return models.Promotion{}, models.ErrPromotionForbidden
	}
	return promo, nil
}
