package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lgbarn/ascii-chess-go/internal/config"
	"github.com/lgbarn/ascii-chess-go/internal/errors"
	"github.com/lgbarn/ascii-chess-go/internal/output"
	"github.com/lgbarn/ascii-chess-go/internal/storage"
	"github.com/lgbarn/ascii-chess-go/internal/testutil"
)

func testConfig() *config.Config {
	return config.NewConfigBuilder().
		WithVerbosity(config.Quiet).
		WithLog(io.Discard).
		Build()
}

// do sends a request to app and decodes a JSON response into out when out
// is not nil.
func do(t *testing.T, app *fiber.App, method, path, body string, out any) int {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s %s response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func createGame(t *testing.T, app *fiber.App) *output.JSONGame {
	t.Helper()
	var jg output.JSONGame
	status := do(t, app, http.MethodPost, "/api/games", "", &jg)
	testutil.AssertEqual(t, status, http.StatusCreated)
	return &jg
}

func TestCreateGame(t *testing.T) {
	app := New(testConfig(), nil)
	jg := createGame(t, app)

	testutil.AssertTrue(t, jg.ID != "", "session id assigned")
	testutil.AssertEqual(t, jg.ToMove, "White")
	testutil.AssertEqual(t, jg.Ply, 1)
	testutil.AssertEqual(t, jg.Board[0], "rnbqkbnr")
	testutil.AssertEqual(t, len(jg.Moves), 0)
}

func TestCreateGame_FromFEN(t *testing.T) {
	app := New(testConfig(), nil)

	var jg output.JSONGame
	status := do(t, app, http.MethodPost, "/api/games", `{"fen":"4k3/8/8/8/8/8/4P3/4K3 b - - 0 7"}`, &jg)
	testutil.AssertEqual(t, status, http.StatusCreated)
	testutil.AssertEqual(t, jg.ToMove, "Black")
	testutil.AssertEqual(t, jg.MoveNumber, 7)

	var body map[string]string
	status = do(t, app, http.MethodPost, "/api/games", `{"fen":"rubbish"}`, &body)
	testutil.AssertEqual(t, status, http.StatusBadRequest)
	testutil.AssertContains(t, body["error"], "FEN")
}

func TestGetGame(t *testing.T) {
	app := New(testConfig(), nil)
	jg := createGame(t, app)

	var got output.JSONGame
	testutil.AssertEqual(t, do(t, app, http.MethodGet, "/api/games/"+jg.ID, "", &got), http.StatusOK)
	testutil.AssertEqual(t, got.ID, jg.ID)

	testutil.AssertEqual(t, do(t, app, http.MethodGet, "/api/games/unknown", "", nil), http.StatusNotFound)
}

func TestPlayMove(t *testing.T) {
	app := New(testConfig(), nil)
	jg := createGame(t, app)
	path := "/api/games/" + jg.ID + "/moves"

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantPly    int
	}{
		{"legal move", `{"move":"e4"}`, http.StatusOK, 2},
		{"reply", `{"move":"e5"}`, http.StatusOK, 3},
		{"parse error", `{"move":"zz"}`, http.StatusBadRequest, 3},
		{"unrecognised notation", `{"move":"e2e"}`, http.StatusBadRequest, 3},
		{"trailing characters", `{"move":"e2e4x"}`, http.StatusBadRequest, 3},
		{"invalid move", `{"move":"e5"}`, http.StatusUnprocessableEntity, 3},
		{"illegal move", `{"move":"e4-e5"}`, http.StatusUnprocessableEntity, 3},
		{"missing move", `{}`, http.StatusBadRequest, 3},
		{"malformed body", `{"move":`, http.StatusBadRequest, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, do(t, app, http.MethodPost, path, tt.body, nil), tt.wantStatus)

			var got output.JSONGame
			do(t, app, http.MethodGet, "/api/games/"+jg.ID, "", &got)
			testutil.AssertEqual(t, got.Ply, tt.wantPly)
		})
	}

	testutil.AssertEqual(t, do(t, app, http.MethodPost, "/api/games/unknown/moves", `{"move":"e4"}`, nil), http.StatusNotFound)
}

func TestDeleteGame(t *testing.T) {
	app := New(testConfig(), nil)
	jg := createGame(t, app)

	testutil.AssertEqual(t, do(t, app, http.MethodDelete, "/api/games/"+jg.ID, "", nil), http.StatusNoContent)
	testutil.AssertEqual(t, do(t, app, http.MethodGet, "/api/games/"+jg.ID, "", nil), http.StatusNotFound)
	testutil.AssertEqual(t, do(t, app, http.MethodDelete, "/api/games/"+jg.ID, "", nil), http.StatusNotFound)
}

func TestArchive_Unconfigured(t *testing.T) {
	app := New(testConfig(), nil)
	jg := createGame(t, app)

	testutil.AssertEqual(t, do(t, app, http.MethodPost, "/api/games/"+jg.ID+"/archive", "", nil), http.StatusServiceUnavailable)
	testutil.AssertEqual(t, do(t, app, http.MethodGet, "/api/archive", "", nil), http.StatusServiceUnavailable)
	testutil.AssertEqual(t, do(t, app, http.MethodDelete, "/api/archive/any", "", nil), http.StatusServiceUnavailable)
}

func TestArchive_SaveAndRestore(t *testing.T) {
	store, err := storage.Open(storage.Options{InMemory: true})
	testutil.AssertNoError(t, err)
	t.Cleanup(func() { store.Close() })

	app := New(testConfig(), store)
	jg := createGame(t, app)
	for _, move := range []string{"d4", "d5", "c4"} {
		do(t, app, http.MethodPost, "/api/games/"+jg.ID+"/moves", `{"move":"`+move+`"}`, nil)
	}

	var archived map[string]string
	testutil.AssertEqual(t, do(t, app, http.MethodPost, "/api/games/"+jg.ID+"/archive", "", &archived), http.StatusOK)
	archiveID := archived["id"]
	testutil.AssertTrue(t, archiveID != "", "archive id returned")

	var again map[string]string
	do(t, app, http.MethodPost, "/api/games/"+jg.ID+"/archive", "", &again)
	testutil.AssertEqual(t, again["id"], archiveID, "re-archiving updates the same record")

	var list struct {
		Games []storage.GameRecord `json:"games"`
	}
	testutil.AssertEqual(t, do(t, app, http.MethodGet, "/api/archive", "", &list), http.StatusOK)
	testutil.AssertEqual(t, len(list.Games), 1)

	var restored output.JSONGame
	status := do(t, app, http.MethodPost, "/api/games", `{"archiveId":"`+archiveID+`"}`, &restored)
	testutil.AssertEqual(t, status, http.StatusCreated)
	testutil.AssertEqual(t, restored.Moves, [][]string{{"d4", "d5"}, {"c4"}})
	testutil.AssertTrue(t, restored.ID != jg.ID, "restore starts a new session")

	status = do(t, app, http.MethodPost, "/api/games", `{"archiveId":"missing"}`, nil)
	testutil.AssertEqual(t, status, http.StatusNotFound)

	testutil.AssertEqual(t, do(t, app, http.MethodDelete, "/api/archive/"+archiveID, "", nil), http.StatusNoContent)
	testutil.AssertEqual(t, do(t, app, http.MethodDelete, "/api/archive/"+archiveID, "", nil), http.StatusNotFound)
	do(t, app, http.MethodGet, "/api/archive", "", &list)
	testutil.AssertEqual(t, len(list.Games), 0)
}

func TestManager_MaxGames(t *testing.T) {
	m := NewManager(testConfig(), 2, nil)

	var ids []string
	for i := 0; i < 2; i++ {
		jg, err := m.Create("")
		testutil.AssertNoError(t, err)
		ids = append(ids, jg.ID)
	}
	_, err := m.Create("")
	testutil.AssertErrorIs(t, err, ErrTooManyGames)

	// Deleting a session frees its slot.
	testutil.AssertNoError(t, m.Delete(ids[0]))
	_, err = m.Create("")
	testutil.AssertNoError(t, err)
}

func TestManager_ConcurrentPlay(t *testing.T) {
	m := NewManager(nil, 0, nil)
	jg, err := m.Create("")
	testutil.AssertNoError(t, err)

	// Only one of the racing requests can play White's first move.
	var wg sync.WaitGroup
	results := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Play(jg.ID, "e4")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	accepted := 0
	for err := range results {
		if err == nil {
			accepted++
		}
	}
	testutil.AssertEqual(t, accepted, 1)

	got, err := m.Get(jg.ID)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got.Moves, [][]string{{"e4"}})
}

func TestWatch_RequiresUpgrade(t *testing.T) {
	app := New(testConfig(), nil)
	jg := createGame(t, app)

	var body map[string]string
	status := do(t, app, http.MethodGet, "/api/games/"+jg.ID+"/ws", "", &body)
	testutil.AssertEqual(t, status, http.StatusUpgradeRequired)
	testutil.AssertTrue(t, body["error"] != "", "error message returned")
}

// next receives from updates or fails the test after a second.
func next(t *testing.T, updates <-chan *output.JSONGame) (*output.JSONGame, bool) {
	t.Helper()
	select {
	case snap, ok := <-updates:
		return snap, ok
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for an update")
		return nil, false
	}
}

func TestManager_Watch(t *testing.T) {
	m := NewManager(testConfig(), 0, nil)
	jg, err := m.Create("")
	testutil.AssertNoError(t, err)

	updates, stop, err := m.Watch(jg.ID)
	testutil.AssertNoError(t, err)
	defer stop()

	snap, ok := next(t, updates)
	testutil.AssertTrue(t, ok, "initial snapshot")
	testutil.AssertEqual(t, snap.Ply, 1)

	_, err = m.Play(jg.ID, "e4")
	testutil.AssertNoError(t, err)
	snap, _ = next(t, updates)
	testutil.AssertEqual(t, snap.Moves, [][]string{{"e4"}})

	// A rejected move changes nothing, so nothing is sent.
	_, err = m.Play(jg.ID, "e4")
	testutil.AssertErrorIs(t, err, errors.ErrInvalidMove)
	_, err = m.Play(jg.ID, "e5")
	testutil.AssertNoError(t, err)
	snap, _ = next(t, updates)
	testutil.AssertEqual(t, snap.Ply, 3)
}

func TestManager_WatchStop(t *testing.T) {
	m := NewManager(testConfig(), 0, nil)
	jg, err := m.Create("")
	testutil.AssertNoError(t, err)

	updates, stop, err := m.Watch(jg.ID)
	testutil.AssertNoError(t, err)
	next(t, updates)

	stop()
	stop()
	_, ok := next(t, updates)
	testutil.AssertFalse(t, ok, "channel closed by stop")

	// Play carries on without the watcher.
	_, err = m.Play(jg.ID, "d4")
	testutil.AssertNoError(t, err)
}

func TestManager_WatchDelete(t *testing.T) {
	m := NewManager(testConfig(), 0, nil)
	jg, err := m.Create("")
	testutil.AssertNoError(t, err)

	updates, stop, err := m.Watch(jg.ID)
	testutil.AssertNoError(t, err)
	next(t, updates)

	testutil.AssertNoError(t, m.Delete(jg.ID))
	_, ok := next(t, updates)
	testutil.AssertFalse(t, ok, "channel closed by delete")
	stop()

	_, _, err = m.Watch(jg.ID)
	testutil.AssertErrorIs(t, err, ErrSessionNotFound)
	_, _, err = m.Watch("unknown")
	testutil.AssertErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_WatchSlowReader(t *testing.T) {
	m := NewManager(testConfig(), 0, nil)
	jg, err := m.Create("")
	testutil.AssertNoError(t, err)

	updates, stop, err := m.Watch(jg.ID)
	testutil.AssertNoError(t, err)
	defer stop()

	// Nobody reads, yet play never blocks.
	knights := []string{"Nf3", "Nf6", "Ng1", "Ng8"}
	for i := range 4 * watchBuffer {
		_, err := m.Play(jg.ID, knights[i%len(knights)])
		testutil.AssertNoError(t, err)
	}
	testutil.AssertEqual(t, len(updates), watchBuffer)
}
