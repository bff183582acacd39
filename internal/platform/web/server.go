// Package web serves Shadow Escape to browsers: every websocket connection
// runs its own game at a fixed tick rate and streams snapshots back, while a
// small JSON API exposes the stored runs and high score.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/shadow-escape/internal/core"
	"github.com/vovakirdan/shadow-escape/internal/games/escape"
	"github.com/vovakirdan/shadow-escape/internal/storage"
)

const (
	writeWait   = 5 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = pongWait * 9 / 10
	maxCommand  = 512
	inboxSize   = 32
	defaultRuns = 20
	maxRuns     = 100
)

// Config holds configuration for the web server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// TickRate is the simulation rate of every connection.
	TickRate int

	// Seed fixes every connection's seed when non-zero. A ?seed= query
	// parameter overrides it per connection.
	Seed int64

	// Game is the template for every connection's game. Store and OnRunEnd
	// are replaced when the server has storage.
	Game escape.Options

	// Store backs the API and run history. May be nil.
	Store *storage.Store

	// Logger receives server events. Defaults to discarding.
	Logger *log.Logger
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:  ":8080",
		TickRate: 60,
		Game:     escape.DefaultOptions(),
	}
}

// Server is the HTTP and websocket front end.
type Server struct {
	config   Config
	logger   *log.Logger
	keeper   *storage.HighScoreKeeper
	router   *mux.Router
	upgrader websocket.Upgrader
}

// NewServer builds the router. Call Close to flush pending high-score writes.
func NewServer(cfg Config) *Server {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Server{
		config: cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	if cfg.Store != nil {
		s.keeper = storage.NewHighScoreKeeper(cfg.Store, logger)
	}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleWS).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/highscore", s.handleHighScore).Methods(http.MethodGet)
	api.HandleFunc("/runs", s.handleRuns).Methods(http.MethodGet)
	api.HandleFunc("/runs/{id}", s.handleRun).Methods(http.MethodGet)
	s.router = r

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.config.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: listen: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Close flushes the high-score keeper. The store itself is the caller's.
func (s *Server) Close() error {
	if s.keeper == nil {
		return nil
	}
	return s.keeper.Close()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleHighScore(w http.ResponseWriter, _ *http.Request) {
	if s.keeper == nil {
		writeJSON(w, http.StatusOK, map[string]int{"high": 0})
		return
	}
	high, err := s.keeper.ReadHighScore()
	if err != nil {
		s.logger.Warn("high score read failed", "error", err)
		writeError(w, http.StatusInternalServerError, "high score unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"high": high})
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultRuns
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxRuns)
	}

	if s.config.Store == nil {
		writeJSON(w, http.StatusOK, []RunJSON{})
		return
	}

	var (
		runs []storage.Run
		err  error
	)
	switch order := r.URL.Query().Get("order"); order {
	case "", "top":
		runs, err = s.config.Store.TopRuns(limit)
	case "recent":
		runs, err = s.config.Store.RecentRuns(limit)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown order %q", order))
		return
	}
	if err != nil {
		s.logger.Warn("run listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "runs unavailable")
		return
	}

	out := make([]RunJSON, len(runs))
	for i, run := range runs {
		out[i] = runJSON(run)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if s.config.Store == nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	run, err := s.config.Store.RunByID(id)
	if err != nil {
		s.logger.Warn("run lookup failed", "run", id, "error", err)
		writeError(w, http.StatusInternalServerError, "runs unavailable")
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, runJSON(*run))
}

// newGame builds the game for one connection.
func (s *Server) newGame(logger *log.Logger) *escape.Game {
	opts := s.config.Game
	opts.Logger = logger
	if s.keeper != nil {
		opts.Store = s.keeper
		opts.OnRunEnd = escape.SaveRuns(s.config.Store, logger)
	}
	return escape.New(opts)
}

// connectionSeed picks the seed for a new connection.
func (s *Server) connectionSeed(r *http.Request) (int64, error) {
	if v := r.URL.Query().Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("web: bad seed %q: %w", v, err)
		}
		return seed, nil
	}
	if s.config.Seed != 0 {
		return s.config.Seed, nil
	}
	return time.Now().UnixNano(), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Client may have gone away
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// runtimeConfig is the fixed-tick config for one connection's game.
func (s *Server) runtimeConfig(seed int64) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.TickRate = s.config.TickRate
	cfg.Seed = seed
	return cfg
}
