// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/secret-santa/middleware"
	"github.com/danielhkuo/secret-santa/santa"
)

// writeServiceError maps a game core error onto the HTTP response. Public
// errors go to the client verbatim; everything else is logged and replaced
// with a generic message.
func writeServiceError(w http.ResponseWriter, err error) {
	var e *santa.Error
	if errors.As(err, &e) && e.Kind == santa.KindPublic {
		middleware.ErrorResponse(w, http.StatusBadRequest, e.Message)
		return
	}
	slog.Error("internal error", "error", err)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
}
