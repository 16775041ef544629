// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package santa

import (
	"fmt"

	"github.com/danielhkuo/secret-santa/models"
)

// Transition validates a requested state change against the current state.
// It is the full decision table for the game lifecycle; it has no side
// effects. A nil return means the transition is allowed - the Open to Running
// case additionally requires the assignment engine to succeed before the new
// state may be persisted.
func Transition(current, requested models.GameState) error {
	if !requested.Valid() {
		return Public(fmt.Sprintf("unknown game state %d", int(requested)))
	}

	switch current {
	case models.StateClosed:
		if requested == models.StateClosed {
			return Public("game is already closed")
		}
		return Public("cannot reopen a closed game")

	case models.StateRunning:
		switch requested {
		case models.StateClosed:
			return nil
		case models.StateRunning:
			return Public("game already run")
		default: // StateOpen
			return Public("cannot un-run a game")
		}

	case models.StateOpen:
		switch requested {
		case models.StateOpen:
			return Public("game is already open")
		case models.StateClosed, models.StateRunning:
			// Closing an open game skips the draw entirely. Running is
			// allowed here and only here.
			return nil
		}
	}

	// A stored state outside the enum means a corrupt game record.
	return Private(fmt.Sprintf("game record in unknown state %d", int(current)), nil)
}
