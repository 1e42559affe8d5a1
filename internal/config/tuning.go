package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"
)

// Profile is the per-difficulty spawn and physics triple.
// Durations are in seconds so the TOML file stays readable.
type Profile struct {
	Gravity       float64 `toml:"gravity"`        // Downward acceleration (field units/s²)
	SpawnInterval float64 `toml:"spawn_interval"` // Seconds between spawn attempts
	BombChance    float64 `toml:"bomb_chance"`    // Probability that a spawned entity is a bomb
	Pairs         bool    `toml:"pairs"`          // Allow a 50% chance of spawning two entities
}

// Interval returns the spawn interval as a duration.
func (p Profile) Interval() time.Duration {
	return Seconds(p.SpawnInterval)
}

// Tuning centralizes all tunable game parameters.
type Tuning struct {
	// Field resolution - all entity and fingertip coordinates use these units.
	FieldWidth  float64 `toml:"field_width"`
	FieldHeight float64 `toml:"field_height"`
	FPS         int     `toml:"fps"`

	// Native resolution of the hand tracker when a sample does not carry its own.
	TrackWidth  float64 `toml:"track_width"`
	TrackHeight float64 `toml:"track_height"`

	// Swipe
	SmoothAlpha   float64 `toml:"smooth_alpha"`
	MinSwipeSpeed float64 `toml:"min_swipe_speed"`
	HitTolerance  float64 `toml:"hit_tolerance"`
	TrailLength   int     `toml:"trail_length"`

	// Spawning
	PowerUpBudget  float64 `toml:"powerup_budget"`
	AliveCap       int     `toml:"alive_cap"`
	SpawnMargin    float64 `toml:"spawn_margin"`
	SpawnY         float64 `toml:"spawn_y"`
	SpawnVXMax     float64 `toml:"spawn_vx_max"`
	SpawnVYMin     float64 `toml:"spawn_vy_min"`
	SpawnVYMax     float64 `toml:"spawn_vy_max"`
	FruitRadius    int     `toml:"fruit_radius"`
	PowerUpRadius  int     `toml:"powerup_radius"`
	EntityLifetime float64 `toml:"entity_lifetime"`
	MissMargin     float64 `toml:"miss_margin"`
	FreezeRate     float64 `toml:"freeze_rate"`

	// Effects
	FreezeSeconds float64 `toml:"freeze_seconds"`
	DoubleSeconds float64 `toml:"double_seconds"`

	// Rounds
	TimeModeSeconds float64 `toml:"time_mode_seconds"`
	MaxLives        int     `toml:"max_lives"`
	StartLives      int     `toml:"start_lives"`

	// Gestures
	GestureHoldSeconds     float64 `toml:"gesture_hold_seconds"`
	GestureCooldownSeconds float64 `toml:"gesture_cooldown_seconds"`

	Easy   Profile `toml:"easy"`
	Medium Profile `toml:"medium"`
	Hard   Profile `toml:"hard"`
}

// DefaultTuning returns the stock game balance.
func DefaultTuning() Tuning {
	return Tuning{
		FieldWidth:  960,
		FieldHeight: 540,
		FPS:         60,

		TrackWidth:  640,
		TrackHeight: 360,

		SmoothAlpha:   0.97,
		MinSwipeSpeed: 70,
		HitTolerance:  40,
		TrailLength:   3,

		PowerUpBudget:  0.16,
		AliveCap:       6,
		SpawnMargin:    100,
		SpawnY:         -60,
		SpawnVXMax:     120,
		SpawnVYMin:     80,
		SpawnVYMax:     220,
		FruitRadius:    32,
		PowerUpRadius:  30,
		EntityLifetime: 8,
		MissMargin:     90,
		FreezeRate:     0.1,

		FreezeSeconds: 3,
		DoubleSeconds: 5,

		TimeModeSeconds: 60,
		MaxLives:        5,
		StartLives:      3,

		GestureHoldSeconds:     0.35,
		GestureCooldownSeconds: 0.70,

		Easy:   Profile{Gravity: 480, SpawnInterval: 1.8, BombChance: 0.04},
		Medium: Profile{Gravity: 650, SpawnInterval: 1.15, BombChance: 0.10, Pairs: true},
		Hard:   Profile{Gravity: 820, SpawnInterval: 0.95, BombChance: 0.16, Pairs: true},
	}
}

// LoadTuning returns the default tuning overlaid with the TOML file at path.
// An empty path or a missing file yields the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}
	if _, err := toml.DecodeFile(path, &t); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultTuning(), nil
		}
		return Tuning{}, fmt.Errorf("decode tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

// Validate rejects settings the simulation cannot run with.
func (t Tuning) Validate() error {
	switch {
	case t.FieldWidth <= 0 || t.FieldHeight <= 0:
		return errors.New("field size must be positive")
	case t.FieldWidth <= 2*t.SpawnMargin:
		return errors.New("spawn margin leaves no room on the field")
	case t.FPS <= 0:
		return errors.New("fps must be positive")
	case t.SmoothAlpha <= 0 || t.SmoothAlpha > 1:
		return errors.New("smooth_alpha must be in (0, 1]")
	case t.AliveCap < 1:
		return errors.New("alive_cap must be at least 1")
	case t.StartLives < 1 || t.MaxLives < t.StartLives:
		return errors.New("lives: need 1 <= start_lives <= max_lives")
	case t.SpawnVYMax < t.SpawnVYMin:
		return errors.New("spawn_vy_max below spawn_vy_min")
	case t.TimeModeSeconds <= 0:
		return errors.New("time_mode_seconds must be positive")
	case t.EntityLifetime <= 0:
		return errors.New("entity_lifetime must be positive")
	case t.FreezeRate < 0 || t.FreezeRate > 1:
		return errors.New("freeze_rate must be in [0, 1]")
	case t.MinSwipeSpeed < 0:
		return errors.New("min_swipe_speed must not be negative")
	case t.HitTolerance < 0:
		return errors.New("hit_tolerance must not be negative")
	case t.TrailLength < 0:
		return errors.New("trail_length must not be negative")
	case t.FruitRadius <= 0 || t.PowerUpRadius <= 0:
		return errors.New("fruit_radius and powerup_radius must be positive")
	case t.FreezeSeconds < 0 || t.DoubleSeconds < 0:
		return errors.New("effect durations must not be negative")
	case t.GestureHoldSeconds < 0 || t.GestureCooldownSeconds < 0:
		return errors.New("gesture timings must not be negative")
	}
	for name, p := range map[string]Profile{"easy": t.Easy, "medium": t.Medium, "hard": t.Hard} {
		if p.SpawnInterval <= 0 {
			return fmt.Errorf("%s: spawn_interval must be positive", name)
		}
		if p.BombChance < 0 || p.BombChance+t.PowerUpBudget > 1 {
			return fmt.Errorf("%s: bomb_chance plus powerup_budget must stay within [0, 1]", name)
		}
	}
	return nil
}

// Seconds converts a float second count into a duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
