// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, driver string) error {
	ddl := schemaPostgres
	if driver == "sqlite" {
		ddl = schemaSQLite
	}

	_, err := db.Exec(ddl)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schemaPostgres = `
-- Identities (account records)
CREATE TABLE IF NOT EXISTS identity (
    id SERIAL PRIMARY KEY,
    email VARCHAR(255) NOT NULL UNIQUE,
    name VARCHAR(30) NOT NULL,
    register_date TIMESTAMP NOT NULL DEFAULT NOW()
);

-- Sessions (two-part credential: uuid id + secret, stored hashed)
CREATE TABLE IF NOT EXISTS session (
    id TEXT PRIMARY KEY,
    secret_hash TEXT NOT NULL,
    identity_id INT NOT NULL REFERENCES identity(id) ON DELETE CASCADE,
    last_date TIMESTAMP NOT NULL DEFAULT NOW()
);

-- Games
CREATE TABLE IF NOT EXISTS game (
    id SERIAL PRIMARY KEY,
    code VARCHAR(8) NOT NULL UNIQUE,
    owner_id INT NOT NULL REFERENCES identity(id),
    name VARCHAR(200) NOT NULL,
    state INT NOT NULL DEFAULT 0 CHECK (state IN (0, 1, 2))
);

CREATE INDEX IF NOT EXISTS idx_game_code ON game(code);
CREATE INDEX IF NOT EXISTS idx_game_state ON game(state);

-- Participants; santa is the assigned recipient, -1 until the game is run
CREATE TABLE IF NOT EXISTS participant (
    id SERIAL PRIMARY KEY,
    game INT NOT NULL REFERENCES game(id) ON DELETE CASCADE,
    account_id INT REFERENCES identity(id),
    name VARCHAR(30) NOT NULL,
    santa INT NOT NULL DEFAULT -1,
    UNIQUE (game, name),
    UNIQUE (game, account_id)
);

CREATE INDEX IF NOT EXISTS idx_participant_game ON participant(game);

-- Ideas; userid is the assigned participant, -1 until the game is run
CREATE TABLE IF NOT EXISTS idea (
    id SERIAL PRIMARY KEY,
    game INT NOT NULL REFERENCES game(id) ON DELETE CASCADE,
    idea VARCHAR(260) NOT NULL,
    submitter INT REFERENCES identity(id),
    userid INT NOT NULL DEFAULT -1
);

CREATE INDEX IF NOT EXISTS idx_idea_game ON idea(game);
CREATE INDEX IF NOT EXISTS idx_idea_userid ON idea(game, userid);
`

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS identity (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    register_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS session (
    id TEXT PRIMARY KEY,
    secret_hash TEXT NOT NULL,
    identity_id INTEGER NOT NULL REFERENCES identity(id) ON DELETE CASCADE,
    last_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS game (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    code TEXT NOT NULL UNIQUE,
    owner_id INTEGER NOT NULL REFERENCES identity(id),
    name TEXT NOT NULL,
    state INTEGER NOT NULL DEFAULT 0 CHECK (state IN (0, 1, 2))
);

CREATE INDEX IF NOT EXISTS idx_game_code ON game(code);
CREATE INDEX IF NOT EXISTS idx_game_state ON game(state);

CREATE TABLE IF NOT EXISTS participant (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    game INTEGER NOT NULL REFERENCES game(id) ON DELETE CASCADE,
    account_id INTEGER REFERENCES identity(id),
    name TEXT NOT NULL,
    santa INTEGER NOT NULL DEFAULT -1,
    UNIQUE (game, name),
    UNIQUE (game, account_id)
);

CREATE INDEX IF NOT EXISTS idx_participant_game ON participant(game);

CREATE TABLE IF NOT EXISTS idea (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    game INTEGER NOT NULL REFERENCES game(id) ON DELETE CASCADE,
    idea TEXT NOT NULL,
    submitter INTEGER REFERENCES identity(id),
    userid INTEGER NOT NULL DEFAULT -1
);

CREATE INDEX IF NOT EXISTS idx_idea_game ON idea(game);
CREATE INDEX IF NOT EXISTS idx_idea_userid ON idea(game, userid);
`
