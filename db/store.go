// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/secret-santa/models"
)

var (
	// ErrNotFound means no row matched the lookup.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate means an insert hit a unique constraint.
	ErrDuplicate = errors.New("already exists")
)

// Store is the storage gateway. It owns all SQL and returns typed records,
// so callers never touch column names or row shapes.
type Store struct {
	db *sql.DB
}

// New constructs a Store around an open connection. The caller owns the
// connection lifecycle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// isUniqueViolation matches the driver-specific unique constraint errors
// for both supported backends.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// Games

// GameByCode looks a game up by its public code.
func (s *Store) GameByCode(ctx context.Context, code string) (models.Game, error) {
	var g models.Game
	var state int
	err := s.db.QueryRowContext(ctx, `
		SELECT id, code, owner_id, name, state FROM game WHERE code = $1
	`, code).Scan(&g.ID, &g.Code, &g.OwnerID, &g.Name, &state)
	if err == sql.ErrNoRows {
		return models.Game{}, ErrNotFound
	}
	if err != nil {
		return models.Game{}, fmt.Errorf("failed to query game: %w", err)
	}
	g.State = models.GameState(state)
	return g, nil
}

// CreateGame inserts a new game in the Open state. Returns ErrDuplicate if
// the code is already taken.
func (s *Store) CreateGame(ctx context.Context, code, name string, ownerID int64) (models.Game, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO game (code, owner_id, name, state)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, code, ownerID, name, int(models.StateOpen)).Scan(&id)
	if isUniqueViolation(err) {
		return models.Game{}, ErrDuplicate
	}
	if err != nil {
		return models.Game{}, fmt.Errorf("failed to insert game: %w", err)
	}
	return models.Game{ID: id, Code: code, OwnerID: ownerID, Name: name, State: models.StateOpen}, nil
}

// GameSummary returns the game plus participant and idea counts, scoped to
// the owner. ErrNotFound covers both a missing game and a non-owner caller.
func (s *Store) GameSummary(ctx context.Context, code string, ownerID int64) (models.Game, int, int, error) {
	var g models.Game
	var state, santas, ideas int
	err := s.db.QueryRowContext(ctx, `
		SELECT g.id, g.code, g.owner_id, g.name, g.state,
		       (SELECT COUNT(*) FROM participant p WHERE p.game = g.id),
		       (SELECT COUNT(*) FROM idea i WHERE i.game = g.id)
		FROM game g
		WHERE g.code = $1 AND g.owner_id = $2
	`, code, ownerID).Scan(&g.ID, &g.Code, &g.OwnerID, &g.Name, &state, &santas, &ideas)
	if err == sql.ErrNoRows {
		return models.Game{}, 0, 0, ErrNotFound
	}
	if err != nil {
		return models.Game{}, 0, 0, fmt.Errorf("failed to query game summary: %w", err)
	}
	g.State = models.GameState(state)
	return g, santas, ideas, nil
}

// GamesByState lists games, optionally filtered to one state. Admin use only.
func (s *Store) GamesByState(ctx context.Context, state *models.GameState) ([]models.Game, error) {
	query := `SELECT id, code, owner_id, name, state FROM game ORDER BY id`
	args := []any{}
	if state != nil {
		query = `SELECT id, code, owner_id, name, state FROM game WHERE state = $1 ORDER BY id`
		args = append(args, int(*state))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	games := []models.Game{}
	for rows.Next() {
		var g models.Game
		var st int
		if err := rows.Scan(&g.ID, &g.Code, &g.OwnerID, &g.Name, &st); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		g.State = models.GameState(st)
		games = append(games, g)
	}
	return games, rows.Err()
}

// Participants

// Participants lists every participant of a game in insertion order.
func (s *Store) Participants(ctx context.Context, gameID int64) ([]models.Participant, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, game, account_id, name, santa
		FROM participant
		WHERE game = $1
		ORDER BY id
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	participants := []models.Participant{}
	for rows.Next() {
		var p models.Participant
		var account sql.NullInt64
		if err := rows.Scan(&p.ID, &p.GameID, &account, &p.Name, &p.RecipientID); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		if account.Valid {
			p.AccountID = &account.Int64
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// AddParticipant joins a name to a game. Returns ErrDuplicate when the name
// (or the account) is already registered in that game.
func (s *Store) AddParticipant(ctx context.Context, gameID int64, name string, accountID *int64) (models.Participant, error) {
	var account sql.NullInt64
	if accountID != nil {
		account = sql.NullInt64{Int64: *accountID, Valid: true}
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO participant (game, account_id, name)
		VALUES ($1, $2, $3)
		RETURNING id
	`, gameID, account, name).Scan(&id)
	if isUniqueViolation(err) {
		return models.Participant{}, ErrDuplicate
	}
	if err != nil {
		return models.Participant{}, fmt.Errorf("failed to insert participant: %w", err)
	}
	return models.Participant{
		ID:          id,
		GameID:      gameID,
		AccountID:   accountID,
		Name:        name,
		RecipientID: models.Unassigned,
	}, nil
}

// ParticipantByID fetches one participant of a game.
func (s *Store) ParticipantByID(ctx context.Context, gameID, participantID int64) (models.Participant, error) {
	return s.participantWhere(ctx, `id = $2 AND game = $1`, gameID, participantID)
}

// ParticipantByAccount finds the participant row an account joined a game as.
func (s *Store) ParticipantByAccount(ctx context.Context, gameID, accountID int64) (models.Participant, error) {
	return s.participantWhere(ctx, `game = $1 AND account_id = $2`, gameID, accountID)
}

// ParticipantByName finds a participant by display name. Names are compared
// trimmed, matching the join path.
func (s *Store) ParticipantByName(ctx context.Context, gameID int64, name string) (models.Participant, error) {
	return s.participantWhere(ctx, `game = $1 AND name = $2`, gameID, strings.TrimSpace(name))
}

func (s *Store) participantWhere(ctx context.Context, where string, args ...any) (models.Participant, error) {
	var p models.Participant
	var account sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT id, game, account_id, name, santa FROM participant WHERE `+where,
		args...).Scan(&p.ID, &p.GameID, &account, &p.Name, &p.RecipientID)
	if err == sql.ErrNoRows {
		return models.Participant{}, ErrNotFound
	}
	if err != nil {
		return models.Participant{}, fmt.Errorf("failed to query participant: %w", err)
	}
	if account.Valid {
		p.AccountID = &account.Int64
	}
	return p, nil
}

// Ideas

// Ideas lists every idea submitted to a game in insertion order.
func (s *Store) Ideas(ctx context.Context, gameID int64) ([]models.Idea, error) {
	return s.ideasWhere(ctx, `game = $1`, gameID)
}

// LeftoverIdeas lists ideas that were not assigned to any participant.
func (s *Store) LeftoverIdeas(ctx context.Context, gameID int64) ([]models.Idea, error) {
	return s.ideasWhere(ctx, `game = $1 AND userid = -1`, gameID)
}

// IdeasForParticipant lists the ideas assigned to one participant after a run.
func (s *Store) IdeasForParticipant(ctx context.Context, gameID, participantID int64) ([]models.Idea, error) {
	return s.ideasWhere(ctx, `game = $1 AND userid = $2`, gameID, participantID)
}

func (s *Store) ideasWhere(ctx context.Context, where string, args ...any) ([]models.Idea, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, game, idea, submitter, userid FROM idea WHERE `+where+` ORDER BY id`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ideas: %w", err)
	}
	defer rows.Close()

	ideas := []models.Idea{}
	for rows.Next() {
		var i models.Idea
		var submitter sql.NullInt64
		if err := rows.Scan(&i.ID, &i.GameID, &i.Text, &submitter, &i.AssignedTo); err != nil {
			return nil, fmt.Errorf("failed to scan idea: %w", err)
		}
		if submitter.Valid {
			i.SubmitterID = &submitter.Int64
		}
		ideas = append(ideas, i)
	}
	return ideas, rows.Err()
}

// AddIdea submits an idea to a game.
func (s *Store) AddIdea(ctx context.Context, gameID int64, text string, submitterID *int64) (models.Idea, error) {
	var submitter sql.NullInt64
	if submitterID != nil {
		submitter = sql.NullInt64{Int64: *submitterID, Valid: true}
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO idea (game, idea, submitter)
		VALUES ($1, $2, $3)
		RETURNING id
	`, gameID, text, submitter).Scan(&id)
	if err != nil {
		return models.Idea{}, fmt.Errorf("failed to insert idea: %w", err)
	}
	return models.Idea{
		ID:          id,
		GameID:      gameID,
		Text:        text,
		SubmitterID: submitterID,
		AssignedTo:  models.Unassigned,
	}, nil
}

// Identities and sessions

// CreateIdentity registers an account. Returns ErrDuplicate for a taken email.
func (s *Store) CreateIdentity(ctx context.Context, email, name string) (models.Identity, error) {
	var id int64
	var registered time.Time
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO identity (email, name)
		VALUES ($1, $2)
		RETURNING id, register_date
	`, email, name).Scan(&id, &registered)
	if isUniqueViolation(err) {
		return models.Identity{}, ErrDuplicate
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("failed to insert identity: %w", err)
	}
	return models.Identity{ID: id, Email: email, Name: name, Registered: registered}, nil
}

// IdentityByEmail looks an account up by email.
func (s *Store) IdentityByEmail(ctx context.Context, email string) (models.Identity, error) {
	var ident models.Identity
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, name, register_date FROM identity WHERE email = $1
	`, email).Scan(&ident.ID, &ident.Email, &ident.Name, &ident.Registered)
	if err == sql.ErrNoRows {
		return models.Identity{}, ErrNotFound
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("failed to query identity: %w", err)
	}
	return ident, nil
}

// CreateSession stores a session credential. Only the secret hash is kept.
func (s *Store) CreateSession(ctx context.Context, sessionID, secretHash string, identityID int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session (id, secret_hash, identity_id)
		VALUES ($1, $2, $3)
	`, sessionID, secretHash, identityID)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// SessionSecretHash fetches the stored secret hash and account id for a
// session. ErrNotFound if the session id is unknown.
func (s *Store) SessionSecretHash(ctx context.Context, sessionID string) (string, int64, error) {
	var hash string
	var identityID int64
	err := s.db.QueryRowContext(ctx, `
		SELECT secret_hash, identity_id FROM session WHERE id = $1
	`, sessionID).Scan(&hash, &identityID)
	if err == sql.ErrNoRows {
		return "", 0, ErrNotFound
	}
	if err != nil {
		return "", 0, fmt.Errorf("failed to query session: %w", err)
	}
	return hash, identityID, nil
}

// Admin

// ResetTables empties every table. Destructive; callers gate this behind the
// admin configuration checks.
func (s *Store) ResetTables(ctx context.Context) error {
	// Deletion order respects foreign keys on both backends.
	for _, table := range []string{"idea", "participant", "game", "session", "identity"} {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("failed to reset table %s: %w", table, err)
		}
	}
	return nil
}

// Transactions

// Tx is the unit of work for the Running transition: all assignment writes
// plus the final state flip commit or roll back together.
type Tx struct {
	tx *sql.Tx
}

// WithTx runs fn inside a transaction, committing on nil and rolling back on
// error.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&Tx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateParticipantRecipient sets one participant's assigned recipient and
// reports the rows affected. The game scope keeps a stale id from touching
// another game's rows.
func (t *Tx) UpdateParticipantRecipient(ctx context.Context, participantID, recipientID, gameID int64) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE participant SET santa = $1 WHERE id = $2 AND game = $3
	`, recipientID, participantID, gameID)
	if err != nil {
		return 0, fmt.Errorf("failed to update participant recipient: %w", err)
	}
	return res.RowsAffected()
}

// UpdateIdeaOwner assigns one idea to a participant and reports the rows
// affected.
func (t *Tx) UpdateIdeaOwner(ctx context.Context, ideaID, participantID, gameID int64) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE idea SET userid = $1 WHERE id = $2 AND game = $3
	`, participantID, ideaID, gameID)
	if err != nil {
		return 0, fmt.Errorf("failed to update idea owner: %w", err)
	}
	return res.RowsAffected()
}

// UpdateGameState flips a game's state, conditioned on the owner and on the
// state still being expected at write time. Rows affected is the caller's
// signal: 0 means the game changed or was never theirs, more than 1 means a
// broken unique key.
func (t *Tx) UpdateGameState(ctx context.Context, gameID, ownerID int64, expected, next models.GameState) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE game SET state = $1 WHERE id = $2 AND owner_id = $3 AND state = $4
	`, int(next), gameID, ownerID, int(expected))
	if err != nil {
		return 0, fmt.Errorf("failed to update game state: %w", err)
	}
	return res.RowsAffected()
}
