package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/shadow-escape/internal/games/escape"
	"github.com/vovakirdan/shadow-escape/internal/games/escape/sim"
	"github.com/vovakirdan/shadow-escape/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "escape.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestServer(t *testing.T, cfg Config) (*Server, *httptest.Server) {
	t.Helper()
	srv := NewServer(cfg)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
	})
	return srv, ts
}

// fastCrashOptions tunes a game that crashes within a fraction of a second.
func fastCrashOptions() escape.Options {
	opts := escape.DefaultOptions()
	opts.Config.Countdown.Duration = 0.05
	opts.Config.Motion.PlayerSpeed = 40
	opts.Config.Motion.PursuerSpeed = 40
	opts.Config.Obstacles.SpawnLead = 5
	opts.Config.Obstacles.MinGap = 1.5
	opts.Config.Obstacles.MaxGap = 2
	return opts
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	return resp.StatusCode
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendCommand(t *testing.T, conn *websocket.Conn, command string) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: command}))
}

type envelope struct {
	Type     string        `json:"type"`
	RunID    string        `json:"run_id"`
	Paused   bool          `json:"paused"`
	Seed     int64         `json:"seed"`
	Config   *sim.Config   `json:"config"`
	Snapshot *sim.Snapshot `json:"snapshot"`
	Error    string        `json:"error"`
}

// waitFor reads messages until match accepts one or the deadline passes.
func waitFor(t *testing.T, conn *websocket.Conn, match func(envelope) bool) envelope {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	require.NoError(t, conn.SetReadDeadline(deadline))
	for {
		var env envelope
		require.NoError(t, conn.ReadJSON(&env), "no matching message before deadline")
		if match(env) {
			return env
		}
	}
}

func isPhase(p sim.Phase) func(envelope) bool {
	return func(env envelope) bool {
		return env.Type == TypeSnapshot && env.Snapshot.Phase == p
	}
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t, DefaultConfig())

	var body map[string]string
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/healthz", &body))
	assert.Equal(t, "ok", body["status"])
}

func TestWelcomeCarriesSeedAndConfig(t *testing.T) {
	_, ts := newTestServer(t, DefaultConfig())
	conn := dial(t, ts, "?seed=42")

	env := waitFor(t, conn, func(env envelope) bool { return env.Type == TypeWelcome })
	assert.Equal(t, int64(42), env.Seed)
	require.NotNil(t, env.Config)
	assert.Equal(t, sim.DefaultConfig(), *env.Config)
}

func TestBadSeedIsRejected(t *testing.T) {
	_, ts := newTestServer(t, DefaultConfig())
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?seed=abc"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStartCommandBeginsCountdown(t *testing.T) {
	_, ts := newTestServer(t, DefaultConfig())
	conn := dial(t, ts, "?seed=1")

	idle := waitFor(t, conn, isPhase(sim.PhaseIdle))
	assert.Empty(t, idle.RunID)

	sendCommand(t, conn, CommandStart)
	env := waitFor(t, conn, isPhase(sim.PhaseCountdown))
	assert.NotEmpty(t, env.RunID)
	assert.Greater(t, env.Snapshot.Countdown, 0.0)

	sendCommand(t, conn, CommandReset)
	waitFor(t, conn, isPhase(sim.PhaseIdle))
}

func TestPauseFreezesTheRun(t *testing.T) {
	_, ts := newTestServer(t, DefaultConfig())
	conn := dial(t, ts, "?seed=3")

	sendCommand(t, conn, CommandStart)
	waitFor(t, conn, isPhase(sim.PhaseCountdown))

	sendCommand(t, conn, CommandPause)
	first := waitFor(t, conn, func(env envelope) bool { return env.Type == TypeSnapshot && env.Paused })
	next := waitFor(t, conn, func(env envelope) bool { return env.Type == TypeSnapshot })
	assert.True(t, next.Paused)
	assert.Equal(t, first.Snapshot.Tick, next.Snapshot.Tick, "paused games receive no ticks")
}

func TestUnknownAndMalformedCommands(t *testing.T) {
	_, ts := newTestServer(t, DefaultConfig())
	conn := dial(t, ts, "")

	sendCommand(t, conn, "jump")
	env := waitFor(t, conn, func(env envelope) bool { return env.Type == TypeError })
	assert.Contains(t, env.Error, `unknown command "jump"`)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	env = waitFor(t, conn, func(env envelope) bool { return env.Type == TypeError })
	assert.Contains(t, env.Error, "malformed command")

	// The connection survives both.
	waitFor(t, conn, isPhase(sim.PhaseIdle))
}

func TestCrashSavesRunAndHighScore(t *testing.T) {
	store := openStore(t)
	cfg := DefaultConfig()
	cfg.Store = store
	cfg.Game = fastCrashOptions()
	_, ts := newTestServer(t, cfg)
	conn := dial(t, ts, "?seed=11")

	sendCommand(t, conn, CommandStart)
	lost := waitFor(t, conn, isPhase(sim.PhaseLost))
	require.NotEmpty(t, lost.RunID)
	require.Positive(t, lost.Snapshot.Score.Current, "tuned to crash past the first metre")

	var high map[string]int
	require.Eventually(t, func() bool {
		getJSON(t, ts.URL+"/api/highscore", &high)
		return high["high"] == lost.Snapshot.Score.Current
	}, 5*time.Second, 20*time.Millisecond)

	var runs []RunJSON
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/runs?order=recent", &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, lost.RunID, runs[0].RunID)
	assert.Equal(t, lost.Snapshot.Score.Current, runs[0].Score)
	assert.Equal(t, int64(11), runs[0].Seed)

	var one RunJSON
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/runs/"+lost.RunID, &one))
	assert.Equal(t, runs[0], one)
}

func TestRunsAPI(t *testing.T) {
	store := openStore(t)
	for _, score := range []int{30, 90, 60} {
		_, _, err := store.SaveRun(storage.Run{Score: score, Duration: time.Duration(score) * 100 * time.Millisecond, Seed: 5})
		require.NoError(t, err)
	}
	cfg := DefaultConfig()
	cfg.Store = store
	_, ts := newTestServer(t, cfg)

	var runs []RunJSON
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/runs?limit=2", &runs))
	require.Len(t, runs, 2)
	assert.Equal(t, 90, runs[0].Score)
	assert.Equal(t, 60, runs[1].Score)
	assert.Equal(t, int64(9000), runs[0].DurationMS)

	var errBody map[string]string
	assert.Equal(t, http.StatusBadRequest, getJSON(t, ts.URL+"/api/runs?limit=0", &errBody))
	assert.Equal(t, http.StatusBadRequest, getJSON(t, ts.URL+"/api/runs?order=worst", &errBody))
	assert.Contains(t, errBody["error"], "worst")
	assert.Equal(t, http.StatusNotFound, getJSON(t, ts.URL+"/api/runs/nope", &errBody))
}

func TestAPIWithoutStore(t *testing.T) {
	_, ts := newTestServer(t, DefaultConfig())

	var high map[string]int
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/highscore", &high))
	assert.Equal(t, 0, high["high"])

	var runs []RunJSON
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/runs", &runs))
	assert.Empty(t, runs)
}
