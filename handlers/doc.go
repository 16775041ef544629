// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP request handlers.

# Handler Groups

  - SessionHandler: account registration and session issuance
  - GameHandler: game creation, public lookup, state changes, owner summary
  - ParticipantHandler: joining a game, retrieving a participant's result
  - IdeaHandler: idea submission and the leftover pool
  - AdminHandler: game listing, table reset/init behind the admin secret

# Authentication

Owner operations require the session credential headers (X-Session-ID and
X-Session-Secret); joining and idea submission accept them optionally to link
the row to an account. Admin operations require X-Admin-Key.

# Error Mapping

Game core errors are tagged public or private. Public errors are returned
verbatim with a 400; private errors are logged in full and returned as a
generic 500. Plain request-shape problems (missing fields, bad JSON) are
handled locally with specific statuses.
*/
package handlers
