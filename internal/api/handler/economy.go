package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/cardroom/blackjack-go/internal/api/request"
	"github.com/cardroom/blackjack-go/internal/api/response"
	"github.com/cardroom/blackjack-go/internal/model"
	"github.com/cardroom/blackjack-go/internal/services/economy"
)

const defaultLeaderboardSize = 10

// EconomyHandler handles ledger endpoints
type EconomyHandler struct {
	economy *economy.Service
}

// NewEconomyHandler creates a new economy handler
func NewEconomyHandler(economyService *economy.Service) *EconomyHandler {
	return &EconomyHandler{economy: economyService}
}

// Balance handles GET /api/v1/players/{id}/balance
func (h *EconomyHandler) Balance(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	balance, err := h.economy.GetBalance(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Balance{
		PlayerID: string(id),
		Balance:  balance,
	})
}

// Claim handles POST /api/v1/players/{id}/claim
func (h *EconomyHandler) Claim(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	amount, balance, err := h.economy.Claim(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Claim{
		PlayerID: string(id),
		Amount:   amount,
		Balance:  balance,
	})
}

// Leaderboard handles GET /api/v1/leaderboard
func (h *EconomyHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := defaultLeaderboardSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			WriteError(w, NewInvalidRequestError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	entries, err := h.economy.TopEntries(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromEntries(entries))
}

// SetBalance handles PUT /api/v1/admin/players/{id}/balance
func (h *EconomyHandler) SetBalance(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	var req request.SetBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.economy.SetMoney(r.Context(), id, req.Amount); err != nil {
		WriteError(w, err)
		return
	}

	entry, err := h.economy.GetEntry(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.EntryFromModel(entry))
}

// SetCredits handles PUT /api/v1/admin/players/{id}/credits
func (h *EconomyHandler) SetCredits(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	var req request.SetCreditsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.economy.SetCredits(r.Context(), id, req.Amount); err != nil {
		WriteError(w, err)
		return
	}

	entry, err := h.economy.GetEntry(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.EntryFromModel(entry))
}
