package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultTuningIsValid(t *testing.T) {
	if err := DefaultTuning().Validate(); err != nil {
		t.Fatalf("default tuning invalid: %v", err)
	}
}

func TestLoadTuningMissingFileUsesDefaults(t *testing.T) {
	got, err := LoadTuning(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	if got != DefaultTuning() {
		t.Fatalf("expected defaults for missing file")
	}
}

func TestLoadTuningOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.toml")
	data := "alive_cap = 4\n\n[hard]\ngravity = 900.0\nspawn_interval = 0.5\nbomb_chance = 0.2\npairs = true\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	if got.AliveCap != 4 {
		t.Errorf("AliveCap = %d, want 4", got.AliveCap)
	}
	if got.Hard.Gravity != 900 || got.Hard.Interval() != 500*time.Millisecond {
		t.Errorf("hard profile = %+v", got.Hard)
	}
	if got.Easy != DefaultTuning().Easy {
		t.Errorf("easy profile should keep defaults, got %+v", got.Easy)
	}
}

func TestLoadTuningRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("max_lives = 1\nstart_lives = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTuning(path); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestValidateRejectsBrokenSimulation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Tuning)
	}{
		{"zero lifetime", func(t *Tuning) { t.EntityLifetime = 0 }},
		{"negative lifetime", func(t *Tuning) { t.EntityLifetime = -1 }},
		{"freeze rate above one", func(t *Tuning) { t.FreezeRate = 1.5 }},
		{"negative freeze rate", func(t *Tuning) { t.FreezeRate = -0.1 }},
		{"negative swipe speed", func(t *Tuning) { t.MinSwipeSpeed = -1 }},
		{"negative hit tolerance", func(t *Tuning) { t.HitTolerance = -5 }},
		{"negative trail", func(t *Tuning) { t.TrailLength = -1 }},
		{"zero fruit radius", func(t *Tuning) { t.FruitRadius = 0 }},
		{"negative powerup radius", func(t *Tuning) { t.PowerUpRadius = -3 }},
		{"negative freeze duration", func(t *Tuning) { t.FreezeSeconds = -1 }},
		{"negative gesture hold", func(t *Tuning) { t.GestureHoldSeconds = -0.1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tun := DefaultTuning()
			tc.mutate(&tun)
			if err := tun.Validate(); err == nil {
				t.Fatal("Validate() = nil, want error")
			}
		})
	}
}

func TestLoadTuningRejectsZeroLifetime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("entity_lifetime = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTuning(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("HN_INT", "42")
	t.Setenv("HN_BAD_INT", "x")
	t.Setenv("HN_BOOL", "true")

	if got := GetEnvInt("HN_INT", 1); got != 42 {
		t.Errorf("GetEnvInt = %d, want 42", got)
	}
	if got := GetEnvInt("HN_BAD_INT", 7); got != 7 {
		t.Errorf("GetEnvInt fallback = %d, want 7", got)
	}
	if got := GetEnvBool("HN_BOOL", false); !got {
		t.Errorf("GetEnvBool = false, want true")
	}
	if got := GetEnv("HN_UNSET_KEY", "fb"); got != "fb" {
		t.Errorf("GetEnv = %q, want fb", got)
	}
}
