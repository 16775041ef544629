// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/secret-santa/cliparse"
	"github.com/danielhkuo/secret-santa/db"
	"github.com/danielhkuo/secret-santa/middleware"
	"github.com/danielhkuo/secret-santa/models"
	"github.com/danielhkuo/secret-santa/santa"
)

type ParticipantHandler struct {
	store *db.Store
	svc   *santa.Service
	cfg   cliparse.Config
}

func NewParticipantHandler(store *db.Store, svc *santa.Service, cfg cliparse.Config) *ParticipantHandler {
	return &ParticipantHandler{store: store, svc: svc, cfg: cfg}
}

// Join handles POST /games/{code}/join
// Joining is open to anyone with the code; a session links the participant
// to an account so results can be fetched without re-typing the name.
func (h *ParticipantHandler) Join(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "code is required")
		return
	}

	accountID, err := optionalAccount(r.Context(), h.store, h.cfg, r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "invalid session")
		return
	}

	var req models.JoinGameRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.svc.Join(r.Context(), code, req.Name, accountID); err != nil {
		writeServiceError(w, err)
		return
	}

	slog.Info("participant joined", "code", code)

	middleware.JSONResponse(w, http.StatusCreated, map[string]string{"status": "ok"})
}

// GetResult handles GET /games/{code}/result
// Returns the caller's assigned recipient and ideas once the game has run.
// Identity comes from the session when one is presented, otherwise from the
// name query parameter.
func (h *ParticipantHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "code is required")
		return
	}

	accountID, err := optionalAccount(r.Context(), h.store, h.cfg, r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "invalid session")
		return
	}
	name := r.URL.Query().Get("name")
	if accountID == nil && name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session or name is required")
		return
	}

	result, err := h.svc.ParticipantResult(r.Context(), code, accountID, name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}
