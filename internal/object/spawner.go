package object

import (
	"math/rand"
	"time"

	"github.com/tomz197/handninja/internal/config"
)

// SpawnConfig holds the fixed parameters of the spawn policy.
type SpawnConfig struct {
	FieldWidth    float64 // Field width in field units
	Margin        float64 // Horizontal keep-out on both sides
	SpawnY        float64 // Start height (negative is above the visible area)
	VXMax         float64 // Horizontal speed range is [-VXMax, VXMax]
	VYMin, VYMax  float64 // Initial downward speed range
	PowerUpBudget float64 // Total probability shared by the power-up bands
	Cap           int     // Alive entities at or above this skip spawning
	FruitRadius   int
	PowerUpRadius int
}

// SpawnConfigFromTuning extracts the spawn parameters from the tuning.
func SpawnConfigFromTuning(t config.Tuning) SpawnConfig {
	return SpawnConfig{
		FieldWidth:    t.FieldWidth,
		Margin:        t.SpawnMargin,
		SpawnY:        t.SpawnY,
		VXMax:         t.SpawnVXMax,
		VYMin:         t.SpawnVYMin,
		VYMax:         t.SpawnVYMax,
		PowerUpBudget: t.PowerUpBudget,
		Cap:           t.AliveCap,
		FruitRadius:   t.FruitRadius,
		PowerUpRadius: t.PowerUpRadius,
	}
}

// Spawner creates new entities above the field.
type Spawner struct {
	cfg SpawnConfig
	rng *rand.Rand
}

// NewSpawner creates a spawner. A nil rng uses a time-seeded source.
func NewSpawner(cfg SpawnConfig, rng *rand.Rand) *Spawner {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Spawner{cfg: cfg, rng: rng}
}

// Spawn creates one entity, or two with 50% chance when the profile allows
// pairs. alive is the current live entity count: nothing is created when it is
// at or above the cap, and a pair is trimmed so the cap is never exceeded.
func (s *Spawner) Spawn(now time.Duration, p config.Profile, alive int) []*Entity {
	room := s.cfg.Cap - alive
	if room <= 0 {
		return nil
	}

	count := 1
	if p.Pairs && s.rng.Float64() < 0.5 {
		count = 2
	}
	if count > room {
		count = room
	}

	spawned := make([]*Entity, 0, count)
	for i := 0; i < count; i++ {
		spawned = append(spawned, s.newEntity(now, p.BombChance))
	}
	return spawned
}

func (s *Spawner) newEntity(now time.Duration, bombChance float64) *Entity {
	c := s.cfg
	e := &Entity{
		X:     s.uniform(c.Margin, c.FieldWidth-c.Margin),
		Y:     c.SpawnY,
		VX:    s.uniform(-c.VXMax, c.VXMax),
		VY:    s.uniform(c.VYMin, c.VYMax),
		Alive: true,
		Born:  now,
	}

	e.Kind = KindForRoll(s.rng.Float64(), bombChance, c.PowerUpBudget)
	if e.Kind == KindFruit {
		e.Radius = c.FruitRadius
		e.Variant = fruitVariants[s.rng.Intn(len(fruitVariants))]
	} else {
		e.Radius = c.PowerUpRadius
	}
	return e
}

func (s *Spawner) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// KindForRoll maps a uniform roll in [0, 1) to a kind using cumulative bands
// in a fixed order: bomb, freeze, double, heart, then fruit.
func KindForRoll(roll, bombChance, budget float64) Kind {
	switch {
	case roll < bombChance:
		return KindBomb
	case roll < bombChance+budget/4:
		return KindFreeze
	case roll < bombChance+budget/2:
		return KindDouble
	case roll < bombChance+budget*0.75:
		return KindHeart
	default:
		return KindFruit
	}
}
