// Package loop drives a game.Controller at a fixed frame rate, wiring a
// sensor, a command source, a renderer and event sinks around it.
package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/handninja/internal/clock"
	"github.com/tomz197/handninja/internal/game"
	"github.com/tomz197/handninja/internal/sensor"
)

// DefaultFPS is the target tick rate when Options.FPS is unset.
const DefaultFPS = 60

// Renderer draws one snapshot per tick. An error ends the loop.
type Renderer interface {
	Render(snap game.Snapshot) error
}

// CommandSource yields the player commands received since the last call.
type CommandSource interface {
	Commands() []game.Command
}

// EventSink receives the events of every tick that produced any.
type EventSink interface {
	Handle(events []game.Event)
}

// Options configures Run.
type Options struct {
	Sensor   sensor.Sensor
	Commands CommandSource // Optional
	Renderer Renderer
	Sinks    []EventSink
	Clock    clock.Source        // Defaults to the system clock
	Sleep    func(time.Duration) // Defaults to time.Sleep
	FPS      int                 // Defaults to DefaultFPS
	Logger   *log.Logger
}

// Run starts the main loop with the Input → Update → Draw cycle. It returns
// nil when the player quits, the sensor closes, or ctx is cancelled, and an
// error when rendering fails. The sensor is closed on return.
func Run(ctx context.Context, c *game.Controller, opts Options) error {
	if opts.Sensor == nil || opts.Renderer == nil {
		return errors.New("loop: sensor and renderer are required")
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.System{}
	}
	sleep := opts.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	frameTime := time.Second / time.Duration(fps)
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	defer func() {
		if err := opts.Sensor.Close(); err != nil {
			logger.Warn("closing sensor", "err", err)
		}
	}()

	lastTime := clk.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		frameStart := clk.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		// ===== INPUT PHASE =====
		var cmds []game.Command
		if opts.Commands != nil {
			cmds = opts.Commands.Commands()
		}
		sample, err := opts.Sensor.Read()
		if err != nil {
			if errors.Is(err, sensor.ErrClosed) {
				logger.Debug("sensor closed")
				return nil
			}
			if !errors.Is(err, sensor.ErrNoFrame) {
				logger.Debug("sensor read", "err", err)
			}
			sample = sensor.Sample{}
		}

		// ===== UPDATE PHASE =====
		snap := c.Tick(game.Frame{
			Now:      frameStart,
			Delta:    delta,
			Sample:   sample,
			Commands: cmds,
		})
		if len(snap.Events) > 0 {
			for _, s := range opts.Sinks {
				s.Handle(snap.Events)
			}
		}

		// ===== DRAW PHASE =====
		if err := opts.Renderer.Render(snap); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		if snap.Quit {
			return nil
		}

		// ===== FRAME TIMING =====
		elapsed := clk.Now().Sub(frameStart)
		if elapsed < frameTime {
			sleep(frameTime - elapsed)
		}
	}
}
