package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultBrickBossConfig()
	if err := yaml.Unmarshal(defaultBrickBossYAML, &cfg); err != nil {
		t.Fatalf("embedded brickboss.yaml does not parse: %v", err)
	}

	want := DefaultBrickBossConfig()
	if cfg.Paddle != want.Paddle || cfg.Ball != want.Ball || cfg.Effects != want.Effects {
		t.Errorf("embedded defaults drifted from DefaultBrickBossConfig:\n got %+v\nwant %+v", cfg, want)
	}
	if len(cfg.Bosses) != want.Gameplay.Stages {
		t.Errorf("expected %d boss entries, got %d", want.Gameplay.Stages, len(cfg.Bosses))
	}
	for i := range want.Bosses {
		if cfg.Bosses[i] != want.Bosses[i] {
			t.Errorf("boss %d: got %+v, want %+v", i+1, cfg.Bosses[i], want.Bosses[i])
		}
	}
}

func TestLoadBrickBossCustomPathPartial(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("gameplay:\n  lives: 9\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBrickBoss(path)
	if err != nil {
		t.Fatalf("LoadBrickBoss() failed: %v", err)
	}
	if cfg.Gameplay.Lives != 9 {
		t.Errorf("lives = %d, expected 9", cfg.Gameplay.Lives)
	}
	// Keys not in the file keep their defaults
	if cfg.Paddle.Width != DefaultBrickBossConfig().Paddle.Width {
		t.Errorf("paddle width = %v, expected default", cfg.Paddle.Width)
	}
}

func TestLoadBrickBossMissingCustomPath(t *testing.T) {
	_, err := LoadBrickBoss(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestLoadSoulTrialDefaults(t *testing.T) {
	cfg, err := LoadSoulTrial("")
	if err != nil {
		t.Fatalf("LoadSoulTrial() failed: %v", err)
	}
	if cfg.Player.MaxHP <= 0 || cfg.Battle.Duration <= 0 {
		t.Errorf("defaults not loaded: %+v", cfg)
	}
}

func TestBossLookupClamps(t *testing.T) {
	cfg := DefaultBrickBossConfig()
	if cfg.Boss(0) != cfg.Bosses[0] {
		t.Error("stage 0 should map to first boss")
	}
	if cfg.Boss(99) != cfg.Bosses[len(cfg.Bosses)-1] {
		t.Error("stage past the end should map to last boss")
	}
	if !cfg.Boss(6).Invincibility {
		t.Error("final boss should have invincibility windows")
	}
}

func TestApplyPresets(t *testing.T) {
	cfg := DefaultBrickBossConfig()
	ApplyBrickBossPreset(&cfg, DifficultyEasy)
	if cfg.Gameplay.Lives != 5 {
		t.Errorf("easy lives = %d, expected 5", cfg.Gameplay.Lives)
	}

	soul := DefaultSoulTrialConfig()
	ApplySoulTrialPreset(&soul, DifficultyFixed)
	if soul.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	if ParsePreset("nightmare") != "" {
		t.Error("unknown preset should parse to empty")
	}
}

func TestDifficultyManagerTimeProgression(t *testing.T) {
	dm := NewDifficultyManager(DefaultSoulTrialConfig().Difficulty)
	if dm.Level(0, 0) != 0 {
		t.Errorf("level at start = %v, expected 0", dm.Level(0, 0))
	}
	if dm.Level(0, 3600) != 1 {
		t.Errorf("level at max_at = %v, expected 1", dm.Level(0, 3600))
	}
	if got := dm.Speed(2, 0, 3600); math.Abs(got-3.6) > 1e-9 {
		t.Errorf("speed at max = %v, expected 3.6", got)
	}
}
