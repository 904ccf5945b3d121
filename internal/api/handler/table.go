package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cardroom/blackjack-go/internal/api/request"
	"github.com/cardroom/blackjack-go/internal/api/response"
	"github.com/cardroom/blackjack-go/internal/model"
	"github.com/cardroom/blackjack-go/internal/services/table"
)

// TableHandler handles blackjack session endpoints
type TableHandler struct {
	controller *table.Controller
}

// NewTableHandler creates a new table handler
func NewTableHandler(controller *table.Controller) *TableHandler {
	return &TableHandler{controller: controller}
}

// Start handles POST /api/v1/tables
func (h *TableHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req request.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	session, err := h.controller.StartSession(r.Context(), model.PlayerID(req.PlayerID), req.Wager)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(session))
}

// Get handles GET /api/v1/tables/{id}
func (h *TableHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	session, err := h.controller.GetSession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// Prompt handles GET /api/v1/tables/{id}/prompt
func (h *TableHandler) Prompt(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	prompt, err := h.controller.NextPrompt(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PromptFromModel(prompt))
}

// Hit handles POST /api/v1/tables/{id}/hit
func (h *TableHandler) Hit(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, model.DecisionHit)
}

// Stand handles POST /api/v1/tables/{id}/stand
func (h *TableHandler) Stand(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, model.DecisionStand)
}

func (h *TableHandler) decide(w http.ResponseWriter, r *http.Request, decision model.Decision) {
	id := model.SessionID(mux.Vars(r)["id"])

	session, err := h.controller.SubmitDecision(r.Context(), id, decision)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// Abandon handles DELETE /api/v1/tables/{id}
func (h *TableHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	if err := h.controller.OnTimeout(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Result handles GET /api/v1/tables/{id}/result
func (h *TableHandler) Result(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	result, err := h.controller.GetResult(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ResultFromModel(result))
}
