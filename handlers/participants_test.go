// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/secret-santa/db"
	"github.com/danielhkuo/secret-santa/models"
	"github.com/danielhkuo/secret-santa/router"
	"github.com/danielhkuo/secret-santa/testutil"
)

func TestJoinGame(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	mux := router.NewRouter(conn, testutil.GetTestConfig())
	store := db.New(conn)
	ownerID, _ := newOwner(t, conn, "owner@example.com")
	game := testutil.CreateTestGame(t, store, ownerID, models.StateOpen)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/games/"+game.Code+"/join", models.JoinGameRequest{
		Name: "Alice",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	// Same name twice is rejected.
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/games/"+game.Code+"/join", models.JoinGameRequest{
		Name: "Alice",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestJoinClosedGame(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	mux := router.NewRouter(conn, testutil.GetTestConfig())
	store := db.New(conn)
	ownerID, _ := newOwner(t, conn, "owner@example.com")
	game := testutil.CreateTestGame(t, store, ownerID, models.StateClosed)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/games/"+game.Code+"/join", models.JoinGameRequest{
		Name: "Alice",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestGetResultRequiresIdentity(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	mux := router.NewRouter(conn, testutil.GetTestConfig())
	store := db.New(conn)
	ownerID, _ := newOwner(t, conn, "owner@example.com")
	game := testutil.CreateTestGame(t, store, ownerID, models.StateOpen)

	// Neither session headers nor a name parameter.
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/games/"+game.Code+"/result", nil, nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestGetResultByName(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	cfg := testutil.GetTestConfig()
	mux := router.NewRouter(conn, cfg)
	store := db.New(conn)
	ownerID, headers := newOwner(t, conn, "owner@example.com")
	game := testutil.CreateTestGame(t, store, ownerID, models.StateOpen)

	testutil.AddTestParticipant(t, store, game.ID, "Alice", nil)
	testutil.AddTestParticipant(t, store, game.ID, "Bob", nil)
	for i := 0; i < 4; i++ {
		testutil.AddTestIdea(t, store, game.ID, "idea")
	}

	// Before the run: rejected.
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/games/"+game.Code+"/result?name=Alice", nil, nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/games/"+game.Code+"/state", models.ChangeStateRequest{
		State: int(models.StateRunning),
	}, headers))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/games/"+game.Code+"/result?name=Alice", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ParticipantResultResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Name != "Alice" {
		t.Errorf("Expected name Alice, got %q", resp.Name)
	}
	if resp.Giftee != "Bob" {
		t.Errorf("Expected giftee Bob, got %q", resp.Giftee)
	}
	if len(resp.Ideas) != 2 {
		t.Errorf("Expected 2 ideas, got %d", len(resp.Ideas))
	}
}

func TestGetResultBySession(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	mux := router.NewRouter(conn, testutil.GetTestConfig())
	store := db.New(conn)
	ownerID, ownerHeaders := newOwner(t, conn, "owner@example.com")
	game := testutil.CreateTestGame(t, store, ownerID, models.StateOpen)

	playerID := testutil.CreateTestIdentity(t, store, "alice@example.com", "Alice")
	sessionID, secret := testutil.CreateTestSession(t, store, playerID)
	playerHeaders := testutil.SessionHeaders(sessionID, secret)

	// Join with the session so the participant is linked to the account.
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/games/"+game.Code+"/join", models.JoinGameRequest{
		Name: "Alice",
	}, playerHeaders))
	testutil.AssertStatus(t, w, http.StatusCreated)

	testutil.AddTestParticipant(t, store, game.ID, "Bob", nil)
	for i := 0; i < 4; i++ {
		testutil.AddTestIdea(t, store, game.ID, "idea")
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/games/"+game.Code+"/state", models.ChangeStateRequest{
		State: int(models.StateRunning),
	}, ownerHeaders))
	testutil.AssertStatus(t, w, http.StatusOK)

	// No name parameter needed with a session.
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/games/"+game.Code+"/result", nil, playerHeaders))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ParticipantResultResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Name != "Alice" {
		t.Errorf("Expected name Alice, got %q", resp.Name)
	}
}
