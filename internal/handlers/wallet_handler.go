package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"lumeaBack/internal/models"
	"lumeaBack/internal/services"
)

type WalletHandler struct {
	Service *services.WalletService
}

func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok || userID == 0 {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	wallet, err := h.Service.Balance(r.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrWalletNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(wallet)
}
