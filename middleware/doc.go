// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and request/response helpers.

# Logging

WithLogging wraps handlers with structured request logging (method, path,
client ip, user agent, duration):

	mux.HandleFunc("POST /games", middleware.WithLogging(handler.CreateGame))

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	err := middleware.ParseJSONBody(r, &req)

# CORS

CORS allows cross-origin requests and handles preflight. The session and
admin credential headers are whitelisted.

# Client IP

GetClientIP resolves the caller address through X-Forwarded-For and
X-Real-IP before falling back to RemoteAddr.
*/
package middleware
