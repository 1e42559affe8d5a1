package game

import (
	"time"

	"github.com/tomz197/handninja/internal/clock"
	"github.com/tomz197/handninja/internal/config"
	"github.com/tomz197/handninja/internal/object"
)

// Round is the mutable state of one match. It is owned by the Controller and
// only changed inside Tick.
type Round struct {
	Score     int
	Lives     int           // 0..MaxLives, Classic mode only
	TimeLeft  time.Duration // Time mode only
	Freeze    clock.Window
	Double    clock.Window
	Clock     time.Duration // Play time elapsed; stops while paused
	LastSpawn time.Duration // Round clock of the last spawn attempt
	Mode      Mode
	Profile   config.Profile // Fixed when the round starts
	End       EndReason
}

func newRound(t config.Tuning, mode Mode, profile config.Profile) Round {
	return Round{
		Lives:    t.StartLives,
		TimeLeft: config.Seconds(t.TimeModeSeconds),
		Mode:     mode,
		Profile:  profile,
	}
}

// Multiplier returns the current score multiplier.
func (r Round) Multiplier() int {
	if r.Double.Active(r.Clock) {
		return 2
	}
	return 1
}

// Frozen reports whether a freeze is slowing entities down.
func (r Round) Frozen() bool {
	return r.Freeze.Active(r.Clock)
}

// effect applies the consequence of slicing e. It returns false to stop the
// rest of the collision pass.
type effect func(c *Controller, e *object.Entity) bool

var effects = [object.KindCount]effect{
	object.KindFruit:  sliceFruit,
	object.KindBomb:   sliceBomb,
	object.KindFreeze: sliceFreeze,
	object.KindDouble: sliceDouble,
	object.KindHeart:  sliceHeart,
}

func sliceFruit(c *Controller, e *object.Entity) bool {
	points := c.round.Multiplier()
	c.round.Score += points
	c.emit(Event{Kind: EventSlice, Entity: e.Kind, X: e.X, Y: e.Y, Points: points})
	return true
}

func sliceBomb(c *Controller, e *object.Entity) bool {
	c.emit(Event{Kind: EventBomb, Entity: e.Kind, X: e.X, Y: e.Y})
	c.endRound(EndBomb)
	return false
}

func sliceFreeze(c *Controller, e *object.Entity) bool {
	c.round.Freeze.Extend(c.round.Clock, config.Seconds(c.tuning.FreezeSeconds))
	c.emit(Event{Kind: EventPowerUp, Entity: e.Kind, X: e.X, Y: e.Y})
	return true
}

func sliceDouble(c *Controller, e *object.Entity) bool {
	c.round.Double.Extend(c.round.Clock, config.Seconds(c.tuning.DoubleSeconds))
	c.emit(Event{Kind: EventPowerUp, Entity: e.Kind, X: e.X, Y: e.Y})
	return true
}

func sliceHeart(c *Controller, e *object.Entity) bool {
	if c.round.Lives < c.tuning.MaxLives {
		c.round.Lives++
	}
	c.emit(Event{Kind: EventPowerUp, Entity: e.Kind, X: e.X, Y: e.Y})
	return true
}
