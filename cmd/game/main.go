package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/tomz197/handninja/internal/audio"
	"github.com/tomz197/handninja/internal/config"
	"github.com/tomz197/handninja/internal/draw"
	"github.com/tomz197/handninja/internal/game"
	"github.com/tomz197/handninja/internal/highscore"
	"github.com/tomz197/handninja/internal/input"
	"github.com/tomz197/handninja/internal/loop"
	"github.com/tomz197/handninja/internal/screen"
	"github.com/tomz197/handninja/internal/sensor"
	"github.com/tomz197/handninja/internal/tui"
)

const defaultHighScoreFile = "highscore.txt"

func main() {
	os.Exit(run())
}

func run() int {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	logger, closeLog, err := newLogger(config.GetEnv("LOG_FILE", ""), config.GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		return 1
	}
	defer closeLog()

	tuning, err := config.LoadTuning(config.GetEnv("TUNING_FILE", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid tuning: %v\n", err)
		return 1
	}

	scores := highscore.NewFileStore(config.GetEnv("HIGHSCORE_FILE", defaultHighScoreFile))
	ctrl := game.NewController(tuning, scores, rand.New(rand.NewSource(time.Now().UnixNano())), logger)

	var sinks []loop.EventSink
	if config.GetEnvBool("AUDIO", true) {
		volume := float64(config.GetEnvInt("AUDIO_VOLUME", 60)) / 100
		sink, err := audio.Open(volume)
		if err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer sink.Close()
			sinks = append(sinks, sink)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := loop.Options{Sinks: sinks, FPS: tuning.FPS, Logger: logger}
	frontend := config.GetEnv("FRONTEND", "ansi")
	logger.Info("starting", "frontend", frontend, "highscore", scores.Path())

	switch frontend {
	case "tcell":
		err = runTcell(ctx, ctrl, tuning, opts)
	default:
		err = runANSI(ctx, ctrl, tuning, opts)
	}
	if errors.Is(err, sensor.ErrUnavailable) {
		fmt.Fprintf(os.Stderr, "cannot start hand input: %v\n", err)
		return 1
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		return 1
	}
	return 0
}

// runANSI draws with escape sequences on stdout and reads keys and mouse
// reports from a raw stdin.
func runANSI(ctx context.Context, ctrl *game.Controller, t config.Tuning, opts loop.Options) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("%w: raw mode: %v", sensor.ErrUnavailable, err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	renderer := screen.New(os.Stdout, draw.DefaultTermSizeFunc, t.FieldWidth, t.FieldHeight, nil)
	renderer.Open()
	defer renderer.Close()

	terminal := input.NewTerminal(bufio.NewReader(os.Stdin), draw.DefaultTermSizeFunc, renderer.Aspect(), nil)
	opts.Sensor = terminal
	opts.Commands = terminal
	opts.Renderer = renderer
	return loop.Run(ctx, ctrl, opts)
}

func runTcell(ctx context.Context, ctrl *game.Controller, t config.Tuning, opts loop.Options) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("%w: create screen: %v", sensor.ErrUnavailable, err)
	}
	ui, err := tui.New(s, t.FieldWidth, t.FieldHeight, nil)
	if err != nil {
		return fmt.Errorf("%w: init screen: %v", sensor.ErrUnavailable, err)
	}
	defer ui.Close()

	opts.Sensor = ui
	opts.Commands = ui
	opts.Renderer = ui
	return loop.Run(ctx, ctrl, opts)
}

// newLogger writes to path, or nowhere when path is empty: the terminal
// belongs to the game.
func newLogger(path, level string) (*log.Logger, func(), error) {
	var w io.Writer = io.Discard
	closer := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closer = func() { f.Close() }
	}
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "handninja",
		ReportTimestamp: true,
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger, closer, nil
}
