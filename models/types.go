// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// GameState is the lifecycle state of a game. States only move forward:
// Open is the only state Running is reachable from, Closed is terminal.
type GameState int

const (
	StateOpen    GameState = 0
	StateRunning GameState = 1
	StateClosed  GameState = 2
)

// Unassigned is the sentinel recipient/owner id for participants and ideas
// before a game has been run.
const Unassigned int64 = -1

func (s GameState) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateRunning:
		return "running"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the three known states.
func (s GameState) Valid() bool {
	return s == StateOpen || s == StateRunning || s == StateClosed
}

// Request types

type RegisterRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type NewSessionRequest struct {
	Email string `json:"email"`
}

type CreateGameRequest struct {
	Name string `json:"name"`
}

type ChangeStateRequest struct {
	State int `json:"state"`
}

type JoinGameRequest struct {
	Name string `json:"name"`
}

type AddIdeaRequest struct {
	Idea string `json:"idea"`
}

type AdminGamesRequest struct {
	View string `json:"view,omitempty"`
}

// Response types

type RegisterResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type NewSessionResponse struct {
	SessionID     string `json:"session_id"`
	SessionSecret string `json:"session_secret"`
}

type CreateGameResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type PublicGameResponse struct {
	Name  string `json:"name"`
	State int    `json:"state"`
}

type GameSummaryResponse struct {
	Name   string `json:"name"`
	State  int    `json:"state"`
	Santas int    `json:"santas"`
	Ideas  int    `json:"ideas"`
}

type ParticipantListResponse struct {
	Participants []string `json:"participants"`
}

type ParticipantResultResponse struct {
	Name   string   `json:"name"`
	Giftee string   `json:"giftee"`
	Ideas  []string `json:"ideas"`
}

type LeftoverIdeasResponse struct {
	Ideas []string `json:"ideas"`
}

type AdminGameListResponse struct {
	Games []AdminGame `json:"games"`
}

type AdminGame struct {
	Name  string `json:"name"`
	Code  string `json:"code"`
	State int    `json:"state"`
}

// Domain types
//
// Constructed at the storage gateway boundary so nothing above the db package
// depends on column names or row shapes.

type Game struct {
	ID      int64 // internal key, never exposed
	Code    string
	OwnerID int64
	Name    string
	State   GameState
}

type Participant struct {
	ID          int64
	GameID      int64
	AccountID   *int64 // nil for sessionless joiners
	Name        string
	RecipientID int64 // Unassigned until the game is run
}

type Idea struct {
	ID          int64
	GameID      int64
	Text        string
	SubmitterID *int64
	AssignedTo  int64 // participant id, Unassigned until run
}

type Identity struct {
	ID         int64
	Email      string
	Name       string
	Registered time.Time
}

type Session struct {
	ID         string
	IdentityID int64
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
