// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/secret-santa/auth"
	"github.com/danielhkuo/secret-santa/cliparse"
	"github.com/danielhkuo/secret-santa/db"
	"github.com/danielhkuo/secret-santa/middleware"
	"github.com/danielhkuo/secret-santa/models"
)

// Session credential headers.
const (
	HeaderSessionID     = "X-Session-ID"
	HeaderSessionSecret = "X-Session-Secret"
)

var errInvalidSession = errors.New("invalid session")

type SessionHandler struct {
	store *db.Store
	cfg   cliparse.Config
}

func NewSessionHandler(store *db.Store, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{store: store, cfg: cfg}
}

// Register handles POST /auth/register
func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email := strings.TrimSpace(req.Email)
	name := strings.TrimSpace(req.Name)
	if email == "" || name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email and name are required")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid email address")
		return
	}

	ident, err := h.store.CreateIdentity(r.Context(), email, name)
	if errors.Is(err, db.ErrDuplicate) {
		middleware.ErrorResponse(w, http.StatusConflict, "email already registered")
		return
	}
	if err != nil {
		slog.Error("failed to create identity", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Unable to register")
		return
	}

	slog.Info("identity registered", "identity_id", ident.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		Email: ident.Email,
		Name:  ident.Name,
	})
}

// NewSession handles POST /auth/session
// Issues a fresh two-part credential for a registered email. The secret is
// returned exactly once; only its hash is stored.
func (h *SessionHandler) NewSession(w http.ResponseWriter, r *http.Request) {
	var req models.NewSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email is required")
		return
	}

	ident, err := h.store.IdentityByEmail(r.Context(), email)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "email not registered")
		return
	}
	if err != nil {
		slog.Error("failed to query identity", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Unable to sign in")
		return
	}

	sessionID := uuid.NewString()
	secret, err := auth.GenerateSessionSecret()
	if err != nil {
		slog.Error("failed to generate session secret", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Unable to sign in")
		return
	}

	if err := h.store.CreateSession(r.Context(), sessionID, auth.HashSecret(secret, h.cfg.SessionSalt), ident.ID); err != nil {
		slog.Error("failed to create session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Unable to sign in")
		return
	}

	slog.Info("session created", "identity_id", ident.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.NewSessionResponse{
		SessionID:     sessionID,
		SessionSecret: secret,
	})
}

// authenticate resolves the session credential headers to an account id.
func authenticate(ctx context.Context, store *db.Store, cfg cliparse.Config, r *http.Request) (int64, error) {
	sessionID := r.Header.Get(HeaderSessionID)
	secret := r.Header.Get(HeaderSessionSecret)
	if sessionID == "" || secret == "" {
		return 0, errInvalidSession
	}

	hash, identityID, err := store.SessionSecretHash(ctx, sessionID)
	if errors.Is(err, db.ErrNotFound) {
		return 0, errInvalidSession
	}
	if err != nil {
		return 0, err
	}
	if !auth.VerifySecret(hash, secret, cfg.SessionSalt) {
		return 0, errInvalidSession
	}
	return identityID, nil
}

// optionalAccount resolves the session headers when present. A request with
// no credential headers is anonymous, not an error; a bad credential is.
func optionalAccount(ctx context.Context, store *db.Store, cfg cliparse.Config, r *http.Request) (*int64, error) {
	if r.Header.Get(HeaderSessionID) == "" && r.Header.Get(HeaderSessionSecret) == "" {
		return nil, nil
	}
	id, err := authenticate(ctx, store, cfg, r)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// requireSession authenticates or writes the 401 itself. Returns ok=false
// when the response has been written.
func requireSession(w http.ResponseWriter, r *http.Request, store *db.Store, cfg cliparse.Config) (int64, bool) {
	accountID, err := authenticate(r.Context(), store, cfg, r)
	if errors.Is(err, errInvalidSession) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "valid session required")
		return 0, false
	}
	if err != nil {
		slog.Error("failed to authenticate session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
		return 0, false
	}
	return accountID, true
}
