package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"lumeaBack/internal/models"
	"lumeaBack/internal/services"
)

type PromotionHandler struct {
	Service *services.PromotionService
}

func (h *PromotionHandler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok || userID == 0 {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var draft models.PromotionDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	promo, err := h.Service.Create(r.Context(), userID, draft)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(promo)
}

func (h *PromotionHandler) BoostPromotion(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok || userID == 0 {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	promo, err := h.Service.Boost(r.Context(), userID, r.URL.Query().Get(":id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(promo)
}

func (h *PromotionHandler) PausePromotion(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, h.Service.Pause)
}

func (h *PromotionHandler) ResumePromotion(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, h.Service.Resume)
}

func (h *PromotionHandler) DeletePromotion(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, h.Service.Delete)
}

func (h *PromotionHandler) GetMyPromotions(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok || userID == 0 {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	summaries, err := h.Service.ListByUser(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"promotions": summaries})
}

func (h *PromotionHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	h.recordCounter(w, r, h.Service.RecordView)
}

func (h *PromotionHandler) RecordClick(w http.ResponseWriter, r *http.Request) {
	h.recordCounter(w, r, h.Service.RecordClick)
}

func (h *PromotionHandler) updateStatus(w http.ResponseWriter, r *http.Request, call func(ctx context.Context, userID int, id string) error) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok || userID == 0 {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id := r.URL.Query().Get(":id")
	if id == "" {
		http.Error(w, "promotion id required", http.StatusBadRequest)
		return
	}
	if err := call(r.Context(), userID, id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PromotionHandler) recordCounter(w http.ResponseWriter, r *http.Request, call func(ctx context.Context, id string) error) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		http.Error(w, "promotion id required", http.StatusBadRequest)
		return
	}
	if err := call(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PromotionHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidListingID), errors.Is(err, models.ErrInvalidAmount):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrListingNotFound), errors.Is(err, models.ErrPromotionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrPromotionForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, models.ErrInsufficientFunds):
		http.Error(w, err.Error(), http.StatusPaymentRequired)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
