package network

import (
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/tomz197/handninja/internal/config"
	"github.com/tomz197/handninja/internal/game"
	"github.com/tomz197/handninja/internal/highscore"
	"github.com/tomz197/handninja/internal/loop"
)

// Server upgrades requests to websocket sessions, each running its own
// game loop. Every session shares the high-score store.
type Server struct {
	Tuning      config.Tuning
	Scores      highscore.Store
	Hub         *loop.Hub
	FPS         int // Game loop rate
	BroadcastHz int // State messages per second between events
	Logger      *log.Logger

	upgrader websocket.Upgrader
}

// NewServer creates a server. A nil hub gets a private one.
func NewServer(t config.Tuning, scores highscore.Store, hub *loop.Hub, logger *log.Logger) *Server {
	if hub == nil {
		hub = loop.NewHub()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		Tuning:      t,
		Scores:      scores,
		Hub:         hub,
		FPS:         t.FPS,
		BroadcastHz: 30,
		Logger:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 16 * 1024,
			// The page is served by the same binary; any origin may play.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) every() int {
	fps := s.FPS
	if fps <= 0 {
		fps = loop.DefaultFPS
	}
	if s.BroadcastHz <= 0 || s.BroadcastHz >= fps {
		return 1
	}
	return fps / s.BroadcastHz
}

// ServeHTTP runs one game session for the lifetime of the websocket.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.Logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	sess := s.Hub.Register(r.Context(), r.RemoteAddr)
	defer s.Hub.Unregister(sess.ID)
	logger := s.Logger.With("session", sess.ID, "remote", r.RemoteAddr)
	logger.Info("session started", "active", s.Hub.Count())

	conn := NewConn(ws, ConnOptions{
		Every: s.every(),
		Welcome: Welcome{
			V:      ProtocolVersion,
			FieldW: s.Tuning.FieldWidth,
			FieldH: s.Tuning.FieldHeight,
			FPS:    s.FPS,
		},
		Logger: logger,
	})

	go func() {
		if err := conn.Serve(sess.Context()); err != nil {
			logger.Debug("read loop ended", "err", err)
		}
	}()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	ctrl := game.NewController(s.Tuning, s.Scores, rng, logger)
	err = loop.Run(sess.Context(), ctrl, loop.Options{
		Sensor:   conn,
		Commands: conn,
		Renderer: conn,
		FPS:      s.FPS,
		Logger:   logger,
	})
	if err != nil {
		logger.Warn("session ended with error", "err", err)
		return
	}
	logger.Info("session ended", "score", ctrl.Round().Score)
}
