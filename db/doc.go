// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db is the storage gateway: schema creation plus a typed Store that
owns every SQL statement in the application.

# Schema Creation

CreateSchema initializes all required tables for the selected driver:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
Both postgres and sqlite dialects are provided.

# Store

Store is constructed around an open *sql.DB and injected into whatever needs
storage access; there is no package-level connection state.

	store := db.New(conn)
	game, err := store.GameByCode(ctx, code)

Reads return typed records (models.Game, models.Participant, models.Idea) and
ErrNotFound when nothing matched. Inserts that can collide with a unique key
return ErrDuplicate.

# Transactions

The Running transition's writes are a single unit of work:

	err := store.WithTx(ctx, func(tx *db.Tx) error {
		n, err := tx.UpdateParticipantRecipient(ctx, pid, rid, gameID)
		...
		n, err = tx.UpdateGameState(ctx, gameID, ownerID, expected, next)
		...
	})

The update methods return rows-affected so callers can enforce the
exactly-one-row contract; any error from fn rolls the whole transaction back.

# Tables

  - identity: account records
  - session: two-part credentials (uuid id + hashed secret)
  - game: game metadata, public code, owner, lifecycle state
  - participant: joined players, santa = assigned recipient (-1 before run)
  - idea: gift suggestions, userid = assigned participant (-1 before run)

Game children cascade on delete.
*/
package db
