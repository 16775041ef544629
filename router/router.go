// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/secret-santa/cliparse"
	"github.com/danielhkuo/secret-santa/db"
	"github.com/danielhkuo/secret-santa/handlers"
	"github.com/danielhkuo/secret-santa/middleware"
	"github.com/danielhkuo/secret-santa/santa"
)

func NewRouter(conn *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	store := db.New(conn)
	svc := santa.NewService(store)

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(store, cfg)
	gameHandler := handlers.NewGameHandler(store, svc, cfg)
	participantHandler := handlers.NewParticipantHandler(store, svc, cfg)
	ideaHandler := handlers.NewIdeaHandler(store, svc, cfg)
	adminHandler := handlers.NewAdminHandler(store, conn, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts and sessions
	mux.HandleFunc("POST /auth/register", middleware.WithLogging(sessionHandler.Register))
	mux.HandleFunc("POST /auth/session", middleware.WithLogging(sessionHandler.NewSession))

	// Game management (owner operations)
	mux.HandleFunc("POST /games", middleware.WithLogging(gameHandler.CreateGame))
	mux.HandleFunc("POST /games/{code}/state", middleware.WithLogging(gameHandler.ChangeState))
	mux.HandleFunc("GET /games/{code}/summary", middleware.WithLogging(gameHandler.GetSummary))
	mux.HandleFunc("GET /games/{code}/participants", middleware.WithLogging(gameHandler.ListParticipants))

	// Participant operations (public, code is the capability)
	mux.HandleFunc("GET /games/{code}", middleware.WithLogging(gameHandler.GetGame))
	mux.HandleFunc("POST /games/{code}/join", middleware.WithLogging(participantHandler.Join))
	mux.HandleFunc("GET /games/{code}/result", middleware.WithLogging(participantHandler.GetResult))
	mux.HandleFunc("POST /games/{code}/ideas", middleware.WithLogging(ideaHandler.AddIdea))
	mux.HandleFunc("GET /games/{code}/ideas/leftover", middleware.WithLogging(ideaHandler.GetLeftovers))

	// Admin surface
	mux.HandleFunc("POST /admin/games", middleware.WithLogging(adminHandler.ListGames))
	mux.HandleFunc("POST /admin/reset", middleware.WithLogging(adminHandler.ResetTables))
	mux.HandleFunc("POST /admin/init", middleware.WithLogging(adminHandler.InitTables))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("secret-santa API v1"))
	})

	return mux
}
