// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package santa

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/danielhkuo/secret-santa/auth"
	"github.com/danielhkuo/secret-santa/db"
	"github.com/danielhkuo/secret-santa/models"
)

// codeAttempts bounds the retry loop when allocating a public game code.
// With a 62^8 code space exhaustion means something is badly wrong.
const codeAttempts = 6

// Service is the game facade: it combines the state table, the assignment
// engine, and the storage gateway. All operations are synchronous and
// request-scoped; there are no background workers.
type Service struct {
	store *db.Store
}

func NewService(store *db.Store) *Service {
	return &Service{store: store}
}

// CreateGame allocates a unique public code and inserts a new game in the
// Open state owned by the caller.
func (s *Service) CreateGame(ctx context.Context, ownerID int64, name string) (models.Game, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Game{}, Public("game name must not be empty")
	}

	for attempt := 0; attempt < codeAttempts; attempt++ {
		code, err := auth.GenerateGameCode()
		if err != nil {
			return models.Game{}, Private("failed to generate game code", err)
		}

		game, err := s.store.CreateGame(ctx, code, name, ownerID)
		if errors.Is(err, db.ErrDuplicate) {
			slog.Warn("game code collision, retrying", "attempt", attempt+1)
			continue
		}
		if err != nil {
			return models.Game{}, Private("failed to create game", err)
		}
		return game, nil
	}

	return models.Game{}, Private("unable to allocate a unique game code", nil)
}

// ChangeState applies a requested lifecycle transition to the game with the
// given code. The caller must own the game. The Open to Running transition
// runs the assignment engine; everything else is a conditional metadata
// write. On any failure the prior state is retained and no partial
// assignment is committed.
func (s *Service) ChangeState(ctx context.Context, code string, ownerID int64, requested models.GameState) error {
	game, err := s.store.GameByCode(ctx, code)
	if errors.Is(err, db.ErrNotFound) {
		return Public("game not found")
	}
	if err != nil {
		return Private("failed to load game", err)
	}
	if game.OwnerID != ownerID {
		return Public("not authorized")
	}

	if err := Transition(game.State, requested); err != nil {
		return err
	}

	if game.State == models.StateOpen && requested == models.StateRunning {
		return s.runAssignment(ctx, game, ownerID)
	}

	return s.store.WithTx(ctx, func(tx *db.Tx) error {
		n, err := tx.UpdateGameState(ctx, game.ID, ownerID, game.State, requested)
		if err != nil {
			return Private("failed to update game state", err)
		}
		switch {
		case n == 0:
			// State moved under us between read and write.
			return Public("game not found, or its state has already changed")
		case n > 1:
			return Private(fmt.Sprintf("state update matched %d rows for one game", n), nil)
		}
		return nil
	})
}

// runAssignment performs the Open to Running transition: compute a plan over
// the current participant and idea snapshots, then apply every write plus the
// state flip as one transaction. The flip is conditioned on the state still
// being Open, so a concurrent run loses cleanly instead of double-assigning.
func (s *Service) runAssignment(ctx context.Context, game models.Game, ownerID int64) error {
	participants, err := s.store.Participants(ctx, game.ID)
	if err != nil {
		return Private("failed to load participants", err)
	}
	ideas, err := s.store.Ideas(ctx, game.ID)
	if err != nil {
		return Private("failed to load ideas", err)
	}

	participantIDs := make([]int64, len(participants))
	for i, p := range participants {
		participantIDs[i] = p.ID
	}
	ideaIDs := make([]int64, len(ideas))
	for i, idea := range ideas {
		ideaIDs[i] = idea.ID
	}

	plan, err := BuildPlan(participantIDs, ideaIDs)
	if err != nil {
		return err
	}

	// Write in id order so concurrent runs take row locks in the same
	// sequence instead of deadlocking.
	recipients := slices.Clone(plan.Recipients)
	slices.SortFunc(recipients, func(a, b RecipientAssignment) int {
		return cmp.Compare(a.ParticipantID, b.ParticipantID)
	})
	ideaWrites := slices.Clone(plan.Ideas)
	slices.SortFunc(ideaWrites, func(a, b IdeaAssignment) int {
		return cmp.Compare(a.IdeaID, b.IdeaID)
	})

	err = s.store.WithTx(ctx, func(tx *db.Tx) error {
		// Recipient writes before idea writes; each must hit exactly one row.
		for _, a := range recipients {
			n, err := tx.UpdateParticipantRecipient(ctx, a.ParticipantID, a.RecipientID, game.ID)
			if err != nil {
				return Private("unable to assign santas", err)
			}
			if n != 1 {
				return Private(fmt.Sprintf("unable to assign santas: update matched %d rows", n), nil)
			}
		}

		for _, a := range ideaWrites {
			n, err := tx.UpdateIdeaOwner(ctx, a.IdeaID, a.ParticipantID, game.ID)
			if err != nil {
				return Private("unable to assign ideas", err)
			}
			if n != 1 {
				return Private(fmt.Sprintf("unable to assign ideas: update matched %d rows", n), nil)
			}
		}

		n, err := tx.UpdateGameState(ctx, game.ID, ownerID, models.StateOpen, models.StateRunning)
		if err != nil {
			return Private("failed to update game state", err)
		}
		switch {
		case n == 0:
			return Public("game already run")
		case n > 1:
			return Private(fmt.Sprintf("state update matched %d rows for one game", n), nil)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("game assignment complete",
		"code", game.Code,
		"participants", len(plan.Recipients),
		"ideas_assigned", len(plan.Ideas),
		"ideas_leftover", len(plan.Leftover),
	)
	return nil
}

// Summary returns owner-facing game details with participant and idea counts.
func (s *Service) Summary(ctx context.Context, code string, ownerID int64) (models.GameSummaryResponse, error) {
	game, santas, ideas, err := s.store.GameSummary(ctx, code, ownerID)
	if errors.Is(err, db.ErrNotFound) {
		return models.GameSummaryResponse{}, Public("game not found, or not authorized")
	}
	if err != nil {
		return models.GameSummaryResponse{}, Private("failed to load game summary", err)
	}
	return models.GameSummaryResponse{
		Name:   game.Name,
		State:  int(game.State),
		Santas: santas,
		Ideas:  ideas,
	}, nil
}

// Join registers a display name into an open game, optionally linked to an
// account.
func (s *Service) Join(ctx context.Context, code, name string, accountID *int64) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return Public("name must not be empty")
	}

	game, err := s.store.GameByCode(ctx, code)
	if errors.Is(err, db.ErrNotFound) {
		return Public("game not found")
	}
	if err != nil {
		return Private("failed to load game", err)
	}
	if game.State != models.StateOpen {
		return Public("game is not open for joining")
	}

	_, err = s.store.AddParticipant(ctx, game.ID, name, accountID)
	if errors.Is(err, db.ErrDuplicate) {
		return Public("name already registered")
	}
	if err != nil {
		return Private("failed to register participant", err)
	}
	return nil
}

// AddIdea submits a gift idea to an open game.
func (s *Service) AddIdea(ctx context.Context, code, text string, submitterID *int64) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return Public("idea must not be empty")
	}

	game, err := s.store.GameByCode(ctx, code)
	if errors.Is(err, db.ErrNotFound) {
		return Public("game not found")
	}
	if err != nil {
		return Private("failed to load game", err)
	}
	if game.State != models.StateOpen {
		return Public("game is no longer accepting ideas")
	}

	if _, err := s.store.AddIdea(ctx, game.ID, text, submitterID); err != nil {
		return Private("failed to add idea", err)
	}
	return nil
}

// ParticipantResult returns a participant's recipient and assigned ideas.
// Valid only once the game is Running. The participant is resolved by
// account when a session is presented, otherwise by display name.
func (s *Service) ParticipantResult(ctx context.Context, code string, accountID *int64, name string) (models.ParticipantResultResponse, error) {
	game, err := s.store.GameByCode(ctx, code)
	if errors.Is(err, db.ErrNotFound) {
		return models.ParticipantResultResponse{}, Public("game not found")
	}
	if err != nil {
		return models.ParticipantResultResponse{}, Private("failed to load game", err)
	}

	switch game.State {
	case models.StateOpen:
		return models.ParticipantResultResponse{}, Public("santas not yet assigned")
	case models.StateClosed:
		return models.ParticipantResultResponse{}, Public("group is closed")
	case models.StateRunning:
		// fall through
	default:
		return models.ParticipantResultResponse{}, Private(fmt.Sprintf("game record in unknown state %d", int(game.State)), nil)
	}

	participant, err := s.resolveParticipant(ctx, game.ID, accountID, name)
	if errors.Is(err, db.ErrNotFound) {
		return models.ParticipantResultResponse{}, Public("name or giftee not found")
	}
	if err != nil {
		return models.ParticipantResultResponse{}, Private("failed to load participant", err)
	}

	recipient, err := s.store.ParticipantByID(ctx, game.ID, participant.RecipientID)
	if err != nil {
		// A running game without a recipient row is corrupt data.
		return models.ParticipantResultResponse{}, Private("recipient missing for assigned participant", err)
	}

	ideas, err := s.store.IdeasForParticipant(ctx, game.ID, participant.ID)
	if err != nil {
		return models.ParticipantResultResponse{}, Private("failed to load ideas", err)
	}
	if len(ideas) == 0 {
		return models.ParticipantResultResponse{}, Public("name or ideas not found")
	}

	texts := make([]string, len(ideas))
	for i, idea := range ideas {
		texts[i] = idea.Text
	}
	return models.ParticipantResultResponse{
		Name:   participant.Name,
		Giftee: recipient.Name,
		Ideas:  texts,
	}, nil
}

func (s *Service) resolveParticipant(ctx context.Context, gameID int64, accountID *int64, name string) (models.Participant, error) {
	if accountID != nil {
		p, err := s.store.ParticipantByAccount(ctx, gameID, *accountID)
		if err == nil || !errors.Is(err, db.ErrNotFound) {
			return p, err
		}
		// Account never joined under a session; fall back to name lookup.
	}
	if strings.TrimSpace(name) == "" {
		return models.Participant{}, db.ErrNotFound
	}
	return s.store.ParticipantByName(ctx, gameID, name)
}

// LeftoverIdeas returns the pooled unassigned ideas of a run game.
func (s *Service) LeftoverIdeas(ctx context.Context, code string) ([]string, error) {
	game, err := s.store.GameByCode(ctx, code)
	if errors.Is(err, db.ErrNotFound) {
		return nil, Public("game not found")
	}
	if err != nil {
		return nil, Private("failed to load game", err)
	}
	if game.State != models.StateRunning {
		return nil, Public("group has not been rolled yet, nothing to get")
	}

	ideas, err := s.store.LeftoverIdeas(ctx, game.ID)
	if err != nil {
		return nil, Private("failed to load leftover ideas", err)
	}
	texts := make([]string, len(ideas))
	for i, idea := range ideas {
		texts[i] = idea.Text
	}
	return texts, nil
}
