package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != DefaultRunSettings() {
		t.Errorf("embedded YAML and DefaultRunSettings() differ:\n%+v\n%+v", cfg, DefaultRunSettings())
	}
}

func TestDefaultsValidate(t *testing.T) {
	cfg := DefaultRunSettings()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v", err)
	}
	if err := cfg.Spawning.Obstacles.Validate(); err != nil {
		t.Errorf("obstacles Validate() = %v", err)
	}
	if err := cfg.Spawning.Enemies.Validate(); err != nil {
		t.Errorf("enemies Validate() = %v", err)
	}
	if err := cfg.Spawning.Collectibles.Validate(); err != nil {
		t.Errorf("collectibles Validate() = %v", err)
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	cfg := DefaultRunSettings()
	cfg.Player.RunSpeed = 0
	cfg.Track.ChunkLength = -1

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("Validate() = %v, expected ErrInvalidSettings", err)
	}
	msg := err.Error()
	for _, field := range []string{"player.run_speed", "track.chunk_length"} {
		if !strings.Contains(msg, field) {
			t.Errorf("error %q does not mention %s", msg, field)
		}
	}
}

func TestSpawnValidation(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"obstacle gap inverted", ObstacleSpawn{AheadDistance: 10, MinGap: 5, MaxGap: 2, MaxChance: 0.5}.Validate()},
		{"enemy chances over 1", EnemySpawn{AheadDistance: 10, Gap: 5, GroundChance: 0.7, AirChance: 0.4}.Validate()},
		{"coin range empty", CollectibleSpawn{AheadDistance: 10, CoinGap: 1, MinCoins: 0, MaxCoins: 0, PowerUpStep: 1}.Validate()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !errors.Is(tc.err, ErrInvalidSettings) {
				t.Errorf("expected ErrInvalidSettings, got %v", tc.err)
			}
		})
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	data := []byte("player:\n  run_speed: 25\ntrack:\n  chunks_ahead: 5\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Player.RunSpeed != 25 {
		t.Errorf("RunSpeed = %v, expected 25", cfg.Player.RunSpeed)
	}
	if cfg.Track.ChunksAhead != 5 {
		t.Errorf("ChunksAhead = %v, expected 5", cfg.Track.ChunksAhead)
	}
	if cfg.Player.MaxRunSpeed != 40 {
		t.Errorf("MaxRunSpeed should keep default 40, got %v", cfg.Player.MaxRunSpeed)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() with missing custom path should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("player: [not a map"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() with malformed YAML should fail")
	}
}

func TestCurve(t *testing.T) {
	c := Curve{Base: 0.3, Max: 0.7, Rate: 0.001}
	tests := []struct {
		distance, expected float64
	}{
		{0, 0.3},
		{500, 0.5},
		{1000, 0.7},
		{5000, 0.7},
	}
	for _, tc := range tests {
		if got := c.At(tc.distance); !approx(got, tc.expected) {
			t.Errorf("At(%v) = %v, expected %v", tc.distance, got, tc.expected)
		}
	}
}

func TestBaseSpeed(t *testing.T) {
	p := PlayerSettings{RunSpeed: 20, SpeedIncreaseRate: 0.5, MaxRunSpeed: 40}
	if got := p.BaseSpeed(1000); got != 25 {
		t.Errorf("BaseSpeed(1000) = %v, expected 25", got)
	}
	if got := p.BaseSpeed(1e6); got != 40 {
		t.Errorf("BaseSpeed(1e6) = %v, expected clamp to 40", got)
	}
}

func TestApplyPresetFixed(t *testing.T) {
	cfg := DefaultRunSettings()
	ApplyPreset(&cfg, DifficultyFixed)
	c := cfg.Spawning.Obstacles.ObstacleCurve()
	if c.At(0) != c.At(100000) {
		t.Error("fixed preset should not ramp obstacle chance")
	}
	if cfg.Player.SpeedIncreaseRate != 0 {
		t.Error("fixed preset should not ramp speed")
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("ParsePreset(hard)")
	}
	if ParsePreset("nightmare") != "" {
		t.Error("unknown presets should map to empty")
	}
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
