// Package stream serves generated track sections over websockets. Every
// connection drives its own generator, so clients never see each other's
// sections.
package stream

import (
	"encoding/json"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"strconv"

	"github.com/gorilla/websocket"

	"ribbon/internal/track"
)

// MaxChallenge bounds what a client may ask for.
const MaxChallenge = 10_000

type HandlerConfig struct {
	Logger  *slog.Logger
	Options track.Options
	Seed    int64
}

type Handler struct {
	logger   *slog.Logger
	opts     track.Options
	seed     int64
	upgrader websocket.Upgrader
}

func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 64 * 1024,
		CheckOrigin: func(r *nethttp.Request) bool {
			return true
		},
	}

	return &Handler{
		logger:   logger,
		opts:     cfg.Options,
		seed:     cfg.Seed,
		upgrader: upgrader,
	}
}

// NewHTTPHandler mounts the websocket endpoint next to a health check.
func NewHTTPHandler(h *Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", h.Handle)
	return mux
}

// session is one connection's generator and its pending evictions.
type session struct {
	conn    *websocket.Conn
	gen     *track.Generator
	log     *slog.Logger
	evicted []int
}

func (s *session) writeJSON(payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %T: %w", payload, err)
	}
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

func (s *session) flushEvictions() error {
	for _, idx := range s.evicted {
		if err := s.writeJSON(evictMessage{Type: "evict", Section: idx}); err != nil {
			return err
		}
	}
	s.evicted = s.evicted[:0]
	return nil
}

func (s *session) fail(reason string) error {
	return s.writeJSON(errorMessage{Type: "error", Error: reason})
}

// handle applies one client message and writes the replies.
func (s *session) handle(msg clientMessage) error {
	switch msg.Op {
	case "advance":
		if msg.Challenge == nil {
			return s.fail("advance needs a challenge")
		}
		ch := *msg.Challenge
		if ch < 0 || ch > MaxChallenge {
			return s.fail(fmt.Sprintf("challenge %d out of range [0,%d]", ch, MaxChallenge))
		}
		sec := s.gen.Advance(ch)
		if err := s.flushEvictions(); err != nil {
			return err
		}
		return s.writeJSON(NewSectionPayload(sec))
	case "reset":
		if msg.Seed == nil {
			return s.fail("reset needs a seed")
		}
		s.gen.Reset(*msg.Seed)
		s.evicted = s.evicted[:0]
		return s.writeJSON(resetMessage{Type: "reset", Seed: *msg.Seed})
	case "clear":
		s.gen.Clear()
		s.evicted = s.evicted[:0]
		return s.writeJSON(resetMessage{Type: "clear", Seed: s.gen.Seed()})
	default:
		return s.fail(fmt.Sprintf("unknown op %q", msg.Op))
	}
}

func (h *Handler) Handle(w nethttp.ResponseWriter, r *nethttp.Request) {
	seed := h.seed
	if v := r.URL.Query().Get("seed"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			nethttp.Error(w, "bad seed", nethttp.StatusBadRequest)
			return
		}
		seed = parsed
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	log := h.logger.With("remote", r.RemoteAddr)
	s := &session{conn: conn, log: log}
	opts := h.opts
	opts.OnEvict = func(sec *track.Section) { s.evicted = append(s.evicted, sec.Index) }
	s.gen = track.New(opts, log)
	s.gen.Reset(seed)
	s.evicted = s.evicted[:0]

	o := s.gen.Options()
	hello := helloMessage{Type: "hello", Seed: seed, Res: o.Res, Length: o.SectionLength, Window: o.Window}
	if err := s.writeJSON(hello); err != nil {
		log.Warn("hello failed", "error", err)
		return
	}
	log.Info("stream opened", "seed", seed)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			log.Info("stream closed", "sections", s.gen.Stats().Sections, "error", err)
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			log.Debug("discarding malformed message", "error", err)
			if err := s.fail("malformed message"); err != nil {
				return
			}
			continue
		}
		if err := s.handle(msg); err != nil {
			log.Warn("write failed", "error", err)
			return
		}
	}
}
