package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/handninja/internal/config"
	"github.com/tomz197/handninja/internal/draw"
	"github.com/tomz197/handninja/internal/game"
	"github.com/tomz197/handninja/internal/highscore"
	"github.com/tomz197/handninja/internal/input"
	"github.com/tomz197/handninja/internal/loop"
	"github.com/tomz197/handninja/internal/screen"
)

const (
	defaultHost          = "::"
	defaultPort          = "2222"
	defaultHostKeyPath   = "/app/keys/host_key"
	defaultHighScoreFile = "/app/data/highscore.txt"
	sessionDrainTimeout  = 15 * time.Second
)

// Shared by every session.
var (
	hub    = loop.NewHub()
	scores *highscore.FileStore
	tuning config.Tuning
	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "ssh", ReportTimestamp: true})
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		logger.Warn("Failed to load .env", "err", err)
	}
	if lvl, err := log.ParseLevel(config.GetEnv("LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(lvl)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)

	var err error
	tuning, err = config.LoadTuning(config.GetEnv("TUNING_FILE", ""))
	if err != nil {
		logger.Fatal("Invalid tuning", "err", err)
	}
	scores = highscore.NewFileStore(config.GetEnv("HIGHSCORE_FILE", defaultHighScoreFile))
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "highscore", scores.Path())

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for pointer input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("Failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("Server error", "err", err)
		}
	}()

	<-done
	logger.Info("Shutting down server...")

	// End every running game and wait for the sessions to drain
	if !hub.Shutdown(sessionDrainTimeout) {
		logger.Warn("Sessions still running after drain timeout", "active", hub.Count())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error", "err", err)
	}
}

// gameMiddleware runs one game per SSH session.
func gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		gs := hub.Register(sess.Context(), sess.User())
		defer hub.Unregister(gs.ID)
		sessLogger := logger.With("user", sess.User(), "session", gs.ID)
		sessLogger.Info("New game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		renderer := screen.New(sess, sizeTracker.getSize, tuning.FieldWidth, tuning.FieldHeight, nil)
		renderer.Open()
		terminal := input.NewTerminal(bufio.NewReader(sess), sizeTracker.getSize, renderer.Aspect(), nil)

		ctrl := game.NewController(tuning, scores, rand.New(rand.NewSource(time.Now().UnixNano())), sessLogger)
		err := loop.Run(gs.Context(), ctrl, loop.Options{
			Sensor:   terminal,
			Commands: terminal,
			Renderer: renderer,
			FPS:      tuning.FPS,
			Logger:   sessLogger,
		})
		renderer.Close()
		if err != nil {
			sessLogger.Error("Game error", "err", err)
		}
		if gs.Context().Err() != nil && sess.Context().Err() == nil {
			fmt.Fprintln(sess, "Server is shutting down. Thanks for playing!")
		}

		sessLogger.Info("Session ended", "highscore", ctrl.HighScore())
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
