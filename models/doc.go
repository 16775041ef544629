// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest: email, name
  - NewSessionRequest: email
  - CreateGameRequest: name
  - ChangeStateRequest: state (0=open, 1=running, 2=closed)
  - JoinGameRequest: name
  - AddIdeaRequest: idea
  - AdminGamesRequest: view ("open", "complete", "closed")

# Response Types

Types for JSON responses:

  - NewSessionResponse: session_id, session_secret (secret is shown once)
  - CreateGameResponse: code, name
  - GameSummaryResponse: name, state, santas, ideas
  - ParticipantResultResponse: name, giftee, ideas
  - LeftoverIdeasResponse: ideas
  - ErrorResponse: error, message

# Domain Types

Typed records built at the storage boundary:

  - Game: one gift exchange with a public code, owner, and lifecycle state
  - Participant: a joined player, with recipient assignment after the run
  - Idea: a gift suggestion, assigned to a participant after the run
  - Identity, Session: account and credential records

# Constants

Game states are small integers on the wire:

	StateOpen    = 0
	StateRunning = 1
	StateClosed  = 2

Unassigned (-1) is the sentinel recipient/owner before a game is run.
*/
package models
