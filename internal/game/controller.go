package game

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/handninja/internal/config"
	"github.com/tomz197/handninja/internal/gesture"
	"github.com/tomz197/handninja/internal/highscore"
	"github.com/tomz197/handninja/internal/object"
	"github.com/tomz197/handninja/internal/physics"
	"github.com/tomz197/handninja/internal/sensor"
	"github.com/tomz197/handninja/internal/swipe"
)

// Frame is the input for one tick.
type Frame struct {
	Now      time.Time     // Wall clock, drives swipe speed and gesture debouncing
	Delta    time.Duration // Time since the previous tick, drives the round
	Sample   sensor.Sample // Hand tracking in the sensor's native resolution
	Commands []Command     // Player commands received since the previous tick
}

// Controller runs the game one tick at a time. It owns all round state and is
// not safe for concurrent use.
type Controller struct {
	tuning config.Tuning

	machine   Machine
	round     Round
	store     *object.Store
	spawner   *object.Spawner
	tracker   *swipe.Tracker
	debouncer *gesture.Debouncer
	scaler    sensor.Scaler

	scores    highscore.Store
	highScore int

	logger *log.Logger

	tip    *physics.Point // Smoothed fingertip this tick, nil when no hand
	events []Event        // Reused per tick
	ended  bool           // A GameOver transition happened this tick
	quit   bool
}

// NewController creates a controller in the menu. The high score is read from
// scores once. A nil rng is time-seeded; a nil logger discards output.
func NewController(t config.Tuning, scores highscore.Store, rng *rand.Rand, logger *log.Logger) *Controller {
	if scores == nil {
		scores = &highscore.Memory{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := &Controller{
		tuning:  t,
		machine: NewMachine(),
		store:   object.NewStore(t.FieldHeight+t.MissMargin, t.FreezeRate),
		spawner: object.NewSpawner(object.SpawnConfigFromTuning(t), rng),
		tracker: swipe.NewTracker(t.SmoothAlpha, t.MinSwipeSpeed, t.TrailLength),
		debouncer: gesture.NewDebouncer(gesture.Timing{
			Hold:     config.Seconds(t.GestureHoldSeconds),
			Cooldown: config.Seconds(t.GestureCooldownSeconds),
		}),
		scaler: sensor.Scaler{
			FieldW: t.FieldWidth,
			FieldH: t.FieldHeight,
			TrackW: t.TrackWidth,
			TrackH: t.TrackHeight,
		},
		scores:    scores,
		highScore: scores.Load(),
		logger:    logger,
	}
	c.round = newRound(t, c.machine.Mode, c.machine.Difficulty.Profile(t))
	return c
}

// State returns the current game state.
func (c *Controller) State() GameState {
	return c.machine.State
}

// Round returns a copy of the current round state.
func (c *Controller) Round() Round {
	return c.round
}

// HighScore returns the best score seen by this controller.
func (c *Controller) HighScore() int {
	return c.highScore
}

// Tick advances the game by one frame and returns what to draw.
func (c *Controller) Tick(f Frame) Snapshot {
	c.events = c.events[:0]
	c.ended = false

	for _, cmd := range f.Commands {
		c.Apply(cmd)
	}

	var sw swipe.Sample
	c.tip = nil
	if tip := c.scaler.Scale(f.Sample); tip != nil {
		sw = c.tracker.Update(f.Now, *tip)
		c.tip = &sw.Pos
	}

	if action := c.debouncer.Update(f.Now, f.Sample.Fingers); action != gesture.ActionNone {
		c.logger.Debug("gesture", "action", action, "state", c.machine.State)
		c.Apply(CommandForAction(action))
	}

	if c.machine.Playing() {
		c.update(f.Delta, sw, c.tip != nil)
	}

	if c.ended {
		c.finishRound()
	}
	return c.snapshot()
}

// Apply executes a player command if it is legal in the current state.
// It reports whether the command had an effect.
func (c *Controller) Apply(cmd Command) bool {
	if cmd == CmdQuit {
		c.quit = true
		return true
	}
	from, to, ok := c.machine.Apply(cmd)
	if !ok {
		return false
	}

	switch cmd {
	case CmdStart:
		c.startRound()
	case CmdPause:
		c.emit(Event{Kind: EventPause})
	case CmdResume:
		c.emit(Event{Kind: EventResume})
	case CmdMenu:
		c.emit(Event{Kind: EventMenu})
	}
	if from != to {
		c.logger.Debug("state change", "from", from, "to", to, "cmd", cmd)
	}
	return true
}

func (c *Controller) startRound() {
	profile := c.machine.Difficulty.Profile(c.tuning)
	c.round = newRound(c.tuning, c.machine.Mode, profile)
	c.store.Reset()
	c.tracker.Reset()
	c.tip = nil
	c.emit(Event{Kind: EventStart})
	c.logger.Info("round started", "mode", c.machine.Mode, "difficulty", c.machine.Difficulty)
}

// update runs the gameplay phases in order: countdown, spawn, physics and
// misses, slices, prune.
func (c *Controller) update(dt time.Duration, sw swipe.Sample, hasTip bool) {
	r := &c.round
	r.Clock += dt
	now := r.Clock

	if r.Mode == ModeTime {
		r.TimeLeft -= dt
		if r.TimeLeft <= 0 {
			r.TimeLeft = 0
			c.endRound(EndTime)
		}
	}

	if now-r.LastSpawn >= r.Profile.Interval() {
		c.store.Add(c.spawner.Spawn(now, r.Profile, c.store.AliveCount())...)
		r.LastSpawn = now
	}

	for _, e := range c.store.Step(dt, r.Profile.Gravity, r.Frozen()) {
		if e.Kind != object.KindFruit || r.Mode != ModeClassic {
			continue
		}
		if r.Lives > 0 {
			r.Lives--
		}
		c.emit(Event{Kind: EventMiss, Entity: e.Kind, X: e.X, Y: e.Y})
		if r.Lives == 0 {
			c.endRound(EndLives)
		}
	}

	if hasTip && sw.Active {
		c.slice(sw.Pos)
	}

	c.store.Prune(now, config.Seconds(c.tuning.EntityLifetime))
}

// slice hit-tests every live entity against the fingertip and applies the
// effect of each hit until an effect stops the pass.
func (c *Controller) slice(tip physics.Point) {
	tolerance := c.tuning.HitTolerance
	c.store.Each(func(e *object.Entity) bool {
		if !physics.PointInCircle(tip.X, tip.Y, e.X, e.Y, e.GetRadius()+tolerance) {
			return true
		}
		e.MarkDestroyed()
		return effects[e.Kind](c, e)
	})
}

// endRound moves the game to GameOver at most once per tick. A bomb always
// becomes the recorded reason.
func (c *Controller) endRound(reason EndReason) {
	if c.ended {
		if reason == EndBomb {
			c.round.End = EndBomb
		}
		return
	}
	if _, _, ok := c.machine.Apply(cmdEnd); !ok {
		return
	}
	c.ended = true
	c.round.End = reason
}

// finishRound reports the end of the round and persists the high score.
func (c *Controller) finishRound() {
	score := c.round.Score
	c.emit(Event{Kind: EventGameOver, Points: score})
	c.logger.Info("round over", "reason", c.round.End, "score", score)

	best, saved, err := highscore.SubmitIfHigher(c.scores, score)
	if err != nil {
		c.logger.Warn("could not save high score", "score", score, "err", err)
		best = score
	}
	if best > c.highScore {
		c.highScore = best
	}
	if saved {
		c.emit(Event{Kind: EventHighScore, Points: score})
		c.logger.Info("new high score", "score", score)
	}
}

func (c *Controller) emit(e Event) {
	c.events = append(c.events, e)
}
