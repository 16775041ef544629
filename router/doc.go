// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP route table.

NewRouter wires the storage gateway, the game service, and all handler groups
into an http.ServeMux using Go 1.22+ method routing:

	mux := router.NewRouter(conn, cfg)

# Routes

Accounts:

	POST /auth/register
	POST /auth/session

Owner operations (session headers required):

	POST /games
	POST /games/{code}/state
	GET  /games/{code}/summary
	GET  /games/{code}/participants

Participant operations (the code is the capability):

	GET  /games/{code}
	POST /games/{code}/join
	GET  /games/{code}/result
	POST /games/{code}/ideas
	GET  /games/{code}/ideas/leftover

Admin (X-Admin-Key required):

	POST /admin/games
	POST /admin/reset
	POST /admin/init
*/
package router
