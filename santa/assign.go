// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package santa

import (
	"math/rand/v2"
	"slices"
)

// IdeasPerParticipant is the fixed allocation each participant receives from
// the idea pool.
const IdeasPerParticipant = 2

// RecipientAssignment pairs a gift giver with their assigned recipient.
type RecipientAssignment struct {
	ParticipantID int64
	RecipientID   int64
}

// IdeaAssignment pairs an idea with the participant it was dealt to.
type IdeaAssignment struct {
	IdeaID        int64
	ParticipantID int64
}

// Plan is the pure output of the assignment engine: a recipient cycle over
// all participants and a disjoint two-idea allocation per participant.
// Leftover holds the ideas beyond the full pairs, which keep their
// unassigned sentinel.
type Plan struct {
	Recipients []RecipientAssignment
	Ideas      []IdeaAssignment
	Leftover   []int64
}

// BuildPlan computes a santa assignment over the given participant and idea
// ids. The recipient mapping is a single random cycle covering every
// participant, so nobody is assigned themselves. Ideas are shuffled and dealt
// in consecutive pairs.
//
// The shuffle is the only source of randomness; repeated calls produce
// different plans. The input slices are not modified.
func BuildPlan(participants, ideas []int64) (Plan, error) {
	if len(participants) < 2 {
		return Plan{}, ErrInsufficientParticipants
	}
	if len(ideas) < IdeasPerParticipant*len(participants) {
		return Plan{}, ErrInsufficientIdeas
	}

	shuffled := slices.Clone(participants)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	// Walk the shuffled list as a ring: each participant gives to the next
	// one, the last wraps around to the first. Consecutive positions in a
	// cycle are always distinct, so there are no fixed points.
	plan := Plan{
		Recipients: make([]RecipientAssignment, 0, len(shuffled)),
		Ideas:      make([]IdeaAssignment, 0, IdeasPerParticipant*len(shuffled)),
	}
	previous := shuffled[len(shuffled)-1]
	for _, current := range shuffled {
		plan.Recipients = append(plan.Recipients, RecipientAssignment{
			ParticipantID: previous,
			RecipientID:   current,
		})
		previous = current
	}

	shuffledIdeas := slices.Clone(ideas)
	rand.Shuffle(len(shuffledIdeas), func(i, j int) {
		shuffledIdeas[i], shuffledIdeas[j] = shuffledIdeas[j], shuffledIdeas[i]
	})

	for i, participant := range shuffled {
		for k := 0; k < IdeasPerParticipant; k++ {
			plan.Ideas = append(plan.Ideas, IdeaAssignment{
				IdeaID:        shuffledIdeas[IdeasPerParticipant*i+k],
				ParticipantID: participant,
			})
		}
	}

	plan.Leftover = shuffledIdeas[IdeasPerParticipant*len(shuffled):]
	return plan, nil
}
