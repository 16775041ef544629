// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package santa

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idRange(start, n int64) []int64 {
	ids := make([]int64, 0, n)
	for i := int64(0); i < n; i++ {
		ids = append(ids, start+i)
	}
	return ids
}

func TestBuildPlanRecipientsFormSingleCycle(t *testing.T) {
	participants := idRange(1, 5)
	ideas := idRange(100, 10)

	// The shuffle makes each plan different, so check the structural
	// properties over many runs instead of a fixed expected output.
	for run := 0; run < 50; run++ {
		plan, err := BuildPlan(participants, ideas)
		require.NoError(t, err)
		require.Len(t, plan.Recipients, len(participants))

		next := make(map[int64]int64, len(participants))
		for _, a := range plan.Recipients {
			assert.NotEqual(t, a.ParticipantID, a.RecipientID, "a participant must never draw themselves")
			_, seen := next[a.ParticipantID]
			assert.False(t, seen, "each participant gives exactly once")
			next[a.ParticipantID] = a.RecipientID
		}

		// Follow the chain from the first participant; a single cycle
		// visits everyone exactly once before returning to the start.
		visited := make(map[int64]bool, len(participants))
		at := participants[0]
		for i := 0; i < len(participants); i++ {
			require.False(t, visited[at], "cycle revisited %d early", at)
			visited[at] = true
			at = next[at]
		}
		assert.Equal(t, participants[0], at, "cycle must close back on its start")
		assert.Len(t, visited, len(participants))
	}
}

func TestBuildPlanDealsTwoDistinctIdeasEach(t *testing.T) {
	participants := idRange(1, 3)
	ideas := idRange(100, 6)

	plan, err := BuildPlan(participants, ideas)
	require.NoError(t, err)
	require.Len(t, plan.Ideas, 6)
	assert.Empty(t, plan.Leftover)

	perParticipant := make(map[int64][]int64)
	seenIdeas := make(map[int64]bool)
	for _, a := range plan.Ideas {
		assert.False(t, seenIdeas[a.IdeaID], "idea %d dealt twice", a.IdeaID)
		seenIdeas[a.IdeaID] = true
		perParticipant[a.ParticipantID] = append(perParticipant[a.ParticipantID], a.IdeaID)
	}

	require.Len(t, perParticipant, 3)
	for id, got := range perParticipant {
		assert.Len(t, got, IdeasPerParticipant, "participant %d", id)
	}
}

func TestBuildPlanLeftoverIdeas(t *testing.T) {
	participants := idRange(1, 4)
	ideas := idRange(100, 11)

	plan, err := BuildPlan(participants, ideas)
	require.NoError(t, err)
	assert.Len(t, plan.Ideas, 8)
	assert.Len(t, plan.Leftover, 3)

	dealt := make(map[int64]bool)
	for _, a := range plan.Ideas {
		dealt[a.IdeaID] = true
	}
	for _, id := range plan.Leftover {
		assert.False(t, dealt[id], "leftover idea %d was also dealt", id)
	}
}

func TestBuildPlanTooFewParticipants(t *testing.T) {
	_, err := BuildPlan([]int64{1}, idRange(100, 10))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientParticipants))
	assert.True(t, IsPublic(err))
}

func TestBuildPlanTooFewIdeas(t *testing.T) {
	_, err := BuildPlan(idRange(1, 3), idRange(100, 5))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientIdeas))
	assert.True(t, IsPublic(err))
}

func TestBuildPlanLeavesInputsAlone(t *testing.T) {
	participants := idRange(1, 4)
	ideas := idRange(100, 8)
	wantParticipants := append([]int64(nil), participants...)
	wantIdeas := append([]int64(nil), ideas...)

	_, err := BuildPlan(participants, ideas)
	require.NoError(t, err)
	assert.Equal(t, wantParticipants, participants)
	assert.Equal(t, wantIdeas, ideas)
}

func TestBuildPlanTwoParticipantsSwap(t *testing.T) {
	plan, err := BuildPlan([]int64{7, 8}, idRange(100, 4))
	require.NoError(t, err)
	require.Len(t, plan.Recipients, 2)

	// With exactly two people the only derangement is a swap.
	for _, a := range plan.Recipients {
		if a.ParticipantID == 7 {
			assert.Equal(t, int64(8), a.RecipientID)
		} else {
			assert.Equal(t, int64(7), a.RecipientID)
		}
	}
}
