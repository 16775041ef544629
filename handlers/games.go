// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/secret-santa/cliparse"
	"github.com/danielhkuo/secret-santa/db"
	"github.com/danielhkuo/secret-santa/middleware"
	"github.com/danielhkuo/secret-santa/models"
	"github.com/danielhkuo/secret-santa/santa"
)

type GameHandler struct {
	store *db.Store
	svc   *santa.Service
	cfg   cliparse.Config
}

func NewGameHandler(store *db.Store, svc *santa.Service, cfg cliparse.Config) *GameHandler {
	return &GameHandler{store: store, svc: svc, cfg: cfg}
}

// CreateGame handles POST /games
func (h *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireSession(w, r, h.store, h.cfg)
	if !ok {
		return
	}

	var req models.CreateGameRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	game, err := h.svc.CreateGame(r.Context(), ownerID, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	slog.Info("game created", "code", game.Code, "owner_id", ownerID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateGameResponse{
		Code: game.Code,
		Name: game.Name,
	})
}

// GetGame handles GET /games/{code}
// Public lookup: name and state only, the internal id never leaves the server.
func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "code is required")
		return
	}

	game, err := h.store.GameByCode(r.Context(), code)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "game not found")
		return
	}
	if err != nil {
		slog.Error("failed to query game", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PublicGameResponse{
		Name:  game.Name,
		State: int(game.State),
	})
}

// ChangeState handles POST /games/{code}/state
func (h *GameHandler) ChangeState(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "code is required")
		return
	}

	ownerID, ok := requireSession(w, r, h.store, h.cfg)
	if !ok {
		return
	}

	var req models.ChangeStateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.svc.ChangeState(r.Context(), code, ownerID, models.GameState(req.State)); err != nil {
		writeServiceError(w, err)
		return
	}

	slog.Info("game state changed", "code", code, "state", req.State)

	middleware.JSONResponse(w, http.StatusOK, map[string]int{"state": req.State})
}

// GetSummary handles GET /games/{code}/summary
// Owner-authenticated counts; doubles as the owner credential check.
func (h *GameHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "code is required")
		return
	}

	ownerID, ok := requireSession(w, r, h.store, h.cfg)
	if !ok {
		return
	}

	summary, err := h.svc.Summary(r.Context(), code, ownerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, summary)
}

// ListParticipants handles GET /games/{code}/participants
// Owner-authenticated list of joined names.
func (h *GameHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "code is required")
		return
	}

	ownerID, ok := requireSession(w, r, h.store, h.cfg)
	if !ok {
		return
	}

	game, err := h.store.GameByCode(r.Context(), code)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "game not found")
		return
	}
	if err != nil {
		slog.Error("failed to query game", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if game.OwnerID != ownerID {
		middleware.ErrorResponse(w, http.StatusNotFound, "game not found")
		return
	}

	participants, err := h.store.Participants(r.Context(), game.ID)
	if err != nil {
		slog.Error("failed to query participants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	names := make([]string, len(participants))
	for i, p := range participants {
		names[i] = p.Name
	}

	middleware.JSONResponse(w, http.StatusOK, models.ParticipantListResponse{
		Participants: names,
	})
}
