package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/shadow-escape/internal/core"
	"github.com/vovakirdan/shadow-escape/internal/games/escape"
)

// inbound is one message read off the socket.
type inbound struct {
	command string
	err     error
}

// connection runs one game for one websocket. The run loop is the only
// goroutine that touches the game or writes to the socket.
type connection struct {
	ws     *websocket.Conn
	game   *escape.Game
	logger *log.Logger
	inbox  chan inbound
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	seed, err := s.connectionSeed(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer ws.Close()

	logger := s.logger.With("remote", ws.RemoteAddr().String())
	game := s.newGame(logger)
	game.Reset(s.runtimeConfig(seed))
	defer func() {
		if err := game.Close(); err != nil {
			logger.Warn("closing game failed", "error", err)
		}
	}()

	c := &connection{
		ws:     ws,
		game:   game,
		logger: logger,
		inbox:  make(chan inbound, inboxSize),
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go c.readLoop(cancel)

	logger.Info("connection opened", "seed", seed)
	start := time.Now()

	err = c.send(Welcome{
		Type:     TypeWelcome,
		Seed:     seed,
		TickRate: s.config.TickRate,
		Config:   game.SimConfig(),
	})
	if err == nil {
		err = c.run(ctx, s.config.TickRate)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Debug("connection ended", "error", err)
	}
	logger.Info("connection closed", "duration", time.Since(start).Round(time.Second), "best", game.Snapshot().Score.High)
}

// readLoop forwards commands to the run loop until the socket fails.
func (c *connection) readLoop(cancel context.CancelFunc) {
	defer cancel()

	c.ws.SetReadLimit(maxCommand)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read failed", "error", err)
			}
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))

		var msg ClientMessage
		in := inbound{}
		if err := json.Unmarshal(data, &msg); err != nil {
			in.err = fmt.Errorf("malformed command: %w", err)
		} else {
			in.command = msg.Type
		}

		select {
		case c.inbox <- in:
		default:
			c.logger.Debug("command dropped, inbox full", "command", in.command)
		}
	}
}

// run ticks the game at the given rate, applying queued commands to the
// next frame and sending a snapshot after every tick.
func (c *connection) run(ctx context.Context, rate int) error {
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	frame := core.NewInputFrame()
	for {
		select {
		case <-ctx.Done():
			//nolint:errcheck // Best-effort close frame
			c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return ctx.Err()

		case in := <-c.inbox:
			if in.err != nil {
				if err := c.send(ErrorMessage{Type: TypeError, Error: in.err.Error()}); err != nil {
					return err
				}
				continue
			}
			action, ok := commandActions[in.command]
			if !ok {
				if err := c.send(ErrorMessage{Type: TypeError, Error: fmt.Sprintf("unknown command %q", in.command)}); err != nil {
					return err
				}
				continue
			}
			frame.Set(action)

		case <-ping.C:
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return fmt.Errorf("web: ping: %w", err)
			}

		case <-ticker.C:
			c.game.Step(frame)
			frame = core.NewInputFrame()

			err := c.send(SnapshotMessage{
				Type:     TypeSnapshot,
				RunID:    c.game.RunID(),
				Paused:   c.game.Paused(),
				Snapshot: c.game.Snapshot(),
			})
			if err != nil {
				return err
			}
		}
	}
}

func (c *connection) send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("web: encode %T: %w", v, err)
	}
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("web: write: %w", err)
	}
	return nil
}
