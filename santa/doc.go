// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package santa is the game core: the lifecycle state machine, the assignment
engine, and the service facade that ties them to storage.

# Lifecycle

A game is Open, Running, or Closed. Transition is the full decision table:

	Open    -> Running   runs the assignment engine
	Open    -> Closed    closes without a draw
	Running -> Closed    closes
	everything else      fails with a user-visible reason

Closed is terminal. Running is reachable only from Open, exactly once.

# Assignment Engine

BuildPlan is a pure function over participant and idea id snapshots:

	plan, err := santa.BuildPlan(participantIDs, ideaIDs)

It shuffles the participants and walks the result as a ring, so the recipient
mapping is a single cycle covering everyone with no self-assignments. Ideas
are shuffled and dealt in pairs of two per participant; anything beyond the
full allocation stays unassigned as the leftover pool.

Preconditions: at least 2 participants and at least 2 ideas per participant.

# Service

Service applies plans transactionally through the db gateway. The Running
state flip is conditioned on the state still being Open at write time, so a
concurrent double run loses with "game already run" instead of silently
reassigning. Every assignment write must affect exactly one row; the first
failure aborts the whole transaction and the game stays Open.

# Errors

All failures are *Error values tagged KindPublic or KindPrivate. Public
messages are shown to users verbatim; private detail is logged and replaced
with a generic message at the HTTP boundary.
*/
package santa
