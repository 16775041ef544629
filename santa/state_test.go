// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package santa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/secret-santa/models"
)

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		name      string
		current   models.GameState
		requested models.GameState
		wantErr   string
	}{
		{"open to open", models.StateOpen, models.StateOpen, "game is already open"},
		{"open to running", models.StateOpen, models.StateRunning, ""},
		{"open to closed", models.StateOpen, models.StateClosed, ""},
		{"running to open", models.StateRunning, models.StateOpen, "cannot un-run a game"},
		{"running to running", models.StateRunning, models.StateRunning, "game already run"},
		{"running to closed", models.StateRunning, models.StateClosed, ""},
		{"closed to open", models.StateClosed, models.StateOpen, "cannot reopen a closed game"},
		{"closed to running", models.StateClosed, models.StateRunning, "cannot reopen a closed game"},
		{"closed to closed", models.StateClosed, models.StateClosed, "game is already closed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Transition(tt.current, tt.requested)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			assert.True(t, IsPublic(err), "transition rejections are shown to the caller")
		})
	}
}

func TestTransitionInvalidRequested(t *testing.T) {
	err := Transition(models.StateOpen, models.GameState(7))
	require.Error(t, err)
	assert.True(t, IsPublic(err))
	assert.Contains(t, err.Error(), "unknown game state")
}

func TestTransitionCorruptCurrent(t *testing.T) {
	err := Transition(models.GameState(42), models.StateClosed)
	require.Error(t, err)
	assert.False(t, IsPublic(err), "corrupt stored state is an internal fault")
}
