package object

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/handninja/internal/config"
)

const frame = time.Second / 60

func TestEntityStepEuler(t *testing.T) {
	e := &Entity{X: 100, Y: 0, VX: 60, VY: 100, Alive: true}
	e.Step(0.5, 400, false, 0.1)

	if e.VY != 300 {
		t.Errorf("VY = %f, want 300", e.VY)
	}
	if e.X != 130 {
		t.Errorf("X = %f, want 130", e.X)
	}
	if e.Y != 150 {
		t.Errorf("Y = %f, want 150 (velocity updated before position)", e.Y)
	}
}

func TestFrozenDisplacementIsTenPercent(t *testing.T) {
	normal := &Entity{VX: 90, VY: 120, Alive: true}
	frozen := &Entity{VX: 90, VY: 120, Alive: true}
	dt := frame.Seconds()

	// Unfrozen displacement with gravity switched off isolates the velocity term.
	normal.Step(dt, 0, false, 0.1)
	frozen.Step(dt, 650, true, 0.1)

	if math.Abs(frozen.X-normal.X*0.1) > 1e-9 || math.Abs(frozen.Y-normal.Y*0.1) > 1e-9 {
		t.Fatalf("frozen displacement (%f,%f), want 10%% of (%f,%f)", frozen.X, frozen.Y, normal.X, normal.Y)
	}
	if frozen.VY != 120 {
		t.Fatalf("gravity applied while frozen: VY = %f", frozen.VY)
	}
}

func TestStoreStepMarksMisses(t *testing.T) {
	s := NewStore(630, 0.1)
	low := &Entity{Y: 629, VY: 120, Kind: KindFruit, Alive: true}
	high := &Entity{Y: 0, VY: 100, Kind: KindBomb, Alive: true}
	dead := &Entity{Y: 700, Alive: false}
	s.Add(low, high, dead)

	missed := s.Step(frame, 0, false)
	if len(missed) != 1 || missed[0] != low {
		t.Fatalf("missed = %v, want only the low fruit", missed)
	}
	if low.Alive {
		t.Errorf("missed entity should be dead")
	}
	if !high.Alive {
		t.Errorf("entity inside the field should stay alive")
	}
	if dead.Y != 700 {
		t.Errorf("dead entity should not move")
	}
	if got := s.AliveCount(); got != 1 {
		t.Errorf("AliveCount = %d, want 1", got)
	}
}

func TestStorePrune(t *testing.T) {
	s := NewStore(630, 0.1)
	fresh := &Entity{Alive: true, Born: 5 * time.Second}
	old := &Entity{Alive: true, Born: 0}
	dead := &Entity{Alive: false, Born: 5 * time.Second}
	s.Add(fresh, old, dead)

	removed := s.Prune(8*time.Second, 8*time.Second)
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
	s.Each(func(e *Entity) bool {
		if e != fresh {
			t.Errorf("unexpected survivor %+v", e)
		}
		return true
	})
}

func TestStoreEachStopsEarly(t *testing.T) {
	s := NewStore(630, 0.1)
	s.Add(&Entity{Alive: true}, &Entity{Alive: true}, &Entity{Alive: true})
	n := 0
	s.Each(func(*Entity) bool {
		n++
		return n < 2
	})
	if n != 2 {
		t.Fatalf("visited %d entities, want 2", n)
	}
}

func TestKindForRollBands(t *testing.T) {
	const bomb, budget = 0.10, 0.16
	tests := []struct {
		roll float64
		want Kind
	}{
		{0.0, KindBomb},
		{0.0999, KindBomb},
		{0.1001, KindFreeze},
		{0.1399, KindFreeze},
		{0.1401, KindDouble},
		{0.1799, KindDouble},
		{0.1801, KindHeart},
		{0.2199, KindHeart},
		{0.2201, KindFruit},
		{0.99, KindFruit},
	}
	for _, tt := range tests {
		if got := KindForRoll(tt.roll, bomb, budget); got != tt.want {
			t.Errorf("KindForRoll(%v) = %v, want %v", tt.roll, got, tt.want)
		}
	}
}

func TestSpawnerRespectsCap(t *testing.T) {
	tuning := config.DefaultTuning()
	sp := NewSpawner(SpawnConfigFromTuning(tuning), rand.New(rand.NewSource(1)))

	if got := sp.Spawn(0, tuning.Hard, tuning.AliveCap); got != nil {
		t.Fatalf("spawn at cap created %d entities", len(got))
	}
	for i := 0; i < 200; i++ {
		got := sp.Spawn(0, tuning.Hard, tuning.AliveCap-1)
		if len(got) != 1 {
			t.Fatalf("spawn one below cap created %d entities, want 1", len(got))
		}
	}
}

func TestSpawnerEasyNeverPairs(t *testing.T) {
	tuning := config.DefaultTuning()
	sp := NewSpawner(SpawnConfigFromTuning(tuning), rand.New(rand.NewSource(7)))
	for i := 0; i < 500; i++ {
		if got := sp.Spawn(0, tuning.Easy, 0); len(got) != 1 {
			t.Fatalf("easy spawn created %d entities", len(got))
		}
	}
}

func TestSpawnerHardSometimesPairs(t *testing.T) {
	tuning := config.DefaultTuning()
	sp := NewSpawner(SpawnConfigFromTuning(tuning), rand.New(rand.NewSource(7)))
	pairs := 0
	for i := 0; i < 500; i++ {
		if len(sp.Spawn(0, tuning.Hard, 0)) == 2 {
			pairs++
		}
	}
	if pairs < 150 || pairs > 350 {
		t.Fatalf("pairs = %d of 500, want roughly half", pairs)
	}
}

func TestSpawnedEntityRanges(t *testing.T) {
	tuning := config.DefaultTuning()
	cfg := SpawnConfigFromTuning(tuning)
	sp := NewSpawner(cfg, rand.New(rand.NewSource(3)))
	for i := 0; i < 1000; i++ {
		for _, e := range sp.Spawn(2*time.Second, tuning.Medium, 0) {
			if e.X < cfg.Margin || e.X > cfg.FieldWidth-cfg.Margin {
				t.Fatalf("x = %f outside margins", e.X)
			}
			if e.Y != cfg.SpawnY {
				t.Fatalf("y = %f, want %f", e.Y, cfg.SpawnY)
			}
			if e.VX < -cfg.VXMax || e.VX > cfg.VXMax || e.VY < cfg.VYMin || e.VY > cfg.VYMax {
				t.Fatalf("velocity (%f,%f) out of range", e.VX, e.VY)
			}
			if !e.Alive || e.Born != 2*time.Second {
				t.Fatalf("new entity not alive or wrong birth: %+v", e)
			}
			if e.Kind == KindFruit {
				if e.Variant == VariantNone || e.Radius != cfg.FruitRadius {
					t.Fatalf("fruit without variant or wrong radius: %+v", e)
				}
			} else if e.Variant != VariantNone || e.Radius != cfg.PowerUpRadius {
				t.Fatalf("%v with variant or wrong radius: %+v", e.Kind, e)
			}
		}
	}
}

func TestKindStrings(t *testing.T) {
	for k := Kind(0); k < KindCount; k++ {
		if k.String() == "unknown" || k.String() == "" {
			t.Errorf("kind %d has no name", k)
		}
	}
	if KindBomb.IsPowerUp() || KindFruit.IsPowerUp() || !KindHeart.IsPowerUp() {
		t.Errorf("IsPowerUp classification wrong")
	}
}
