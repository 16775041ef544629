// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/secret-santa/db"
	"github.com/danielhkuo/secret-santa/models"
	"github.com/danielhkuo/secret-santa/router"
	"github.com/danielhkuo/secret-santa/testutil"
)

// newOwner registers an account with a live session and returns its headers.
func newOwner(t *testing.T, conn *sql.DB, email string) (int64, map[string]string) {
	t.Helper()
	store := db.New(conn)
	id := testutil.CreateTestIdentity(t, store, email, "Owner")
	sessionID, secret := testutil.CreateTestSession(t, store, id)
	return id, testutil.SessionHeaders(sessionID, secret)
}

func TestCreateGameEndpoint(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	mux := router.NewRouter(conn, testutil.GetTestConfig())
	_, headers := newOwner(t, conn, "owner@example.com")

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/games", models.CreateGameRequest{
		Name: "Office Exchange",
	}, headers))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.CreateGameResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Code) != 8 {
		t.Errorf("Expected 8-char game code, got %q", resp.Code)
	}
	if resp.Name != "Office Exchange" {
		t.Errorf("Expected name Office Exchange, got %q", resp.Name)
	}
}

func TestCreateGameRequiresSession(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	mux := router.NewRouter(conn, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/games", models.CreateGameRequest{Name: "x"}, nil))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestGetGamePublic(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	mux := router.NewRouter(conn, testutil.GetTestConfig())
	store := db.New(conn)
	ownerID, _ := newOwner(t, conn, "owner@example.com")
	game := testutil.CreateTestGame(t, store, ownerID, models.StateOpen)

	// No session needed, the code is the capability.
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/games/"+game.Code, nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.PublicGameResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Name != "Test Game" {
		t.Errorf("Expected name Test Game, got %q", resp.Name)
	}
	if resp.State != int(models.StateOpen) {
		t.Errorf("Expected state %d, got %d", models.StateOpen, resp.State)
	}
}

func TestGetGameNotFound(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	mux := router.NewRouter(conn, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/games/NOSUCHCD", nil, nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestChangeStateEndpoint(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	mux := router.NewRouter(conn, testutil.GetTestConfig())
	store := db.New(conn)
	ownerID, headers := newOwner(t, conn, "owner@example.com")
	game := testutil.CreateTestGame(t, store, ownerID, models.StateOpen)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/games/"+game.Code+"/state", models.ChangeStateRequest{
		State: int(models.StateClosed),
	}, headers))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp map[string]int
	testutil.AssertJSON(t, w, &resp)
	if resp["state"] != int(models.StateClosed) {
		t.Errorf("Expected state %d, got %d", models.StateClosed, resp["state"])
	}
}

func TestChangeStateRejectionIsBadRequest(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	mux := router.NewRouter(conn, testutil.GetTestConfig())
	store := db.New(conn)
	ownerID, headers := newOwner(t, conn, "owner@example.com")
	game := testutil.CreateTestGame(t, store, ownerID, models.StateClosed)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/games/"+game.Code+"/state", models.ChangeStateRequest{
		State: int(models.StateOpen),
	}, headers))
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message != "cannot reopen a closed game" {
		t.Errorf("Expected reopen rejection, got %q", resp.Message)
	}
}

func TestChangeStateOtherOwner(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	mux := router.NewRouter(conn, testutil.GetTestConfig())
	store := db.New(conn)
	ownerID, _ := newOwner(t, conn, "owner@example.com")
	_, otherHeaders := newOwner(t, conn, "other@example.com")
	game := testutil.CreateTestGame(t, store, ownerID, models.StateOpen)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/games/"+game.Code+"/state", models.ChangeStateRequest{
		State: int(models.StateClosed),
	}, otherHeaders))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestGetSummary(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	mux := router.NewRouter(conn, testutil.GetTestConfig())
	store := db.New(conn)
	ownerID, headers := newOwner(t, conn, "owner@example.com")
	game := testutil.CreateTestGame(t, store, ownerID, models.StateOpen)
	testutil.AddTestParticipant(t, store, game.ID, "Alice", nil)
	testutil.AddTestParticipant(t, store, game.ID, "Bob", nil)
	testutil.AddTestIdea(t, store, game.ID, "socks")

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/games/"+game.Code+"/summary", nil, headers))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.GameSummaryResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Santas != 2 {
		t.Errorf("Expected 2 santas, got %d", resp.Santas)
	}
	if resp.Ideas != 1 {
		t.Errorf("Expected 1 idea, got %d", resp.Ideas)
	}
}

func TestListParticipantsOwnerOnly(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	mux := router.NewRouter(conn, testutil.GetTestConfig())
	store := db.New(conn)
	ownerID, headers := newOwner(t, conn, "owner@example.com")
	_, otherHeaders := newOwner(t, conn, "other@example.com")
	game := testutil.CreateTestGame(t, store, ownerID, models.StateOpen)
	testutil.AddTestParticipant(t, store, game.ID, "Alice", nil)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/games/"+game.Code+"/participants", nil, headers))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ParticipantListResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Participants) != 1 || resp.Participants[0] != "Alice" {
		t.Errorf("Expected [Alice], got %v", resp.Participants)
	}

	// Non-owners get the same response as a missing game.
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/games/"+game.Code+"/participants", nil, otherHeaders))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
