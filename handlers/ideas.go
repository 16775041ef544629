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

type IdeaHandler struct {
	store *db.Store
	svc   *santa.Service
	cfg   cliparse.Config
}

func NewIdeaHandler(store *db.Store, svc *santa.Service, cfg cliparse.Config) *IdeaHandler {
	return &IdeaHandler{store: store, svc: svc, cfg: cfg}
}

// AddIdea handles POST /games/{code}/ideas
func (h *IdeaHandler) AddIdea(w http.ResponseWriter, r *http.Request) {
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

	var req models.AddIdeaRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.svc.AddIdea(r.Context(), code, req.Idea, accountID); err != nil {
		writeServiceError(w, err)
		return
	}

	slog.Info("idea added", "code", code)

	middleware.JSONResponse(w, http.StatusCreated, map[string]string{"status": "ok"})
}

// GetLeftovers handles GET /games/{code}/ideas/leftover
// The pooled ideas nobody was dealt, available once the game has run.
func (h *IdeaHandler) GetLeftovers(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "code is required")
		return
	}

	ideas, err := h.svc.LeftoverIdeas(r.Context(), code)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LeftoverIdeasResponse{Ideas: ideas})
}
