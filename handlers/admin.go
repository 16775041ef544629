// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"

	"github.com/danielhkuo/secret-santa/auth"
	"github.com/danielhkuo/secret-santa/cliparse"
	"github.com/danielhkuo/secret-santa/db"
	"github.com/danielhkuo/secret-santa/middleware"
	"github.com/danielhkuo/secret-santa/models"
)

// Admin key header.
const HeaderAdminKey = "X-Admin-Key"

// resetGuardValue must be set in ALLOW_TABLE_RESET for destructive admin
// operations to run at all. A second switch on top of the admin secret.
const resetGuardValue = "AllowResets"

type AdminHandler struct {
	store *db.Store
	conn  *sql.DB
	cfg   cliparse.Config
}

func NewAdminHandler(store *db.Store, conn *sql.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{store: store, conn: conn, cfg: cfg}
}

// checkAdmin validates the admin key header, writing the response on failure.
func (h *AdminHandler) checkAdmin(w http.ResponseWriter, r *http.Request) bool {
	err := auth.CheckAdminSecret(h.cfg.AdminSecret, r.Header.Get(HeaderAdminKey))
	if err == auth.ErrNotAuthorized {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authorized")
		return false
	}
	if err != nil {
		// Misconfiguration, not a bad caller. Log the real reason.
		slog.Error("admin surface disabled", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "admin functions are disabled")
		return false
	}
	return true
}

// ListGames handles POST /admin/games
// Lists every game, optionally filtered by view: open, complete, or closed.
func (h *AdminHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	if !h.checkAdmin(w, r) {
		return
	}

	var req models.AdminGamesRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var state *models.GameState
	switch req.View {
	case "":
		// all games
	case "open":
		s := models.StateOpen
		state = &s
	case "complete":
		s := models.StateRunning
		state = &s
	case "closed":
		s := models.StateClosed
		state = &s
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "unknown view: "+req.View)
		return
	}

	games, err := h.store.GamesByState(r.Context(), state)
	if err != nil {
		slog.Error("failed to list games", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	list := make([]models.AdminGame, len(games))
	for i, g := range games {
		list[i] = models.AdminGame{Name: g.Name, Code: g.Code, State: int(g.State)}
	}

	middleware.JSONResponse(w, http.StatusOK, models.AdminGameListResponse{Games: list})
}

// ResetTables handles POST /admin/reset
// Empties every table. Requires the admin key plus the reset guard env var.
func (h *AdminHandler) ResetTables(w http.ResponseWriter, r *http.Request) {
	if !h.checkAdmin(w, r) {
		return
	}
	if os.Getenv("ALLOW_TABLE_RESET") != resetGuardValue {
		slog.Warn("table reset refused, guard not set")
		middleware.ErrorResponse(w, http.StatusForbidden, "table resets are disabled")
		return
	}

	if err := h.store.ResetTables(r.Context()); err != nil {
		slog.Error("failed to reset tables", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "reset failed")
		return
	}

	slog.Info("all tables reset")

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"resetstatus": "ok"})
}

// InitTables handles POST /admin/init
// Creates or updates the schema. Idempotent.
func (h *AdminHandler) InitTables(w http.ResponseWriter, r *http.Request) {
	if !h.checkAdmin(w, r) {
		return
	}

	if err := db.CreateSchema(h.conn, h.cfg.DatabaseType); err != nil {
		slog.Error("failed to init tables", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "init failed")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"initstatus": "ok"})
}
