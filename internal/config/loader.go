package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBrickBoss loads Brick Boss configuration.
// Search order: customPath -> ~/.arcade/configs/brickboss.yaml -> ./configs/brickboss.yaml -> embedded default
func LoadBrickBoss(customPath string) (BrickBossConfig, error) {
	return load("brickboss.yaml", customPath, defaultBrickBossYAML, DefaultBrickBossConfig)
}

// LoadSoulTrial loads Soul Trial configuration.
// Search order: customPath -> ~/.arcade/configs/soultrial.yaml -> ./configs/soultrial.yaml -> embedded default
func LoadSoulTrial(customPath string) (SoulTrialConfig, error) {
	return load("soultrial.yaml", customPath, defaultSoulTrialYAML, DefaultSoulTrialConfig)
}

// load resolves a config file. Files found on the search path are decoded
// on top of the hardcoded defaults, so a partial file only overrides the
// keys it sets. A custom path that cannot be read or parsed is an error;
// unreadable files on the implicit search path are skipped.
func load[T any](filename, customPath string, embedded []byte, fallback func() T) (T, error) {
	if customPath != "" {
		cfg := fallback()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{
		userConfigPath(filename),
		filepath.Join("configs", filename),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := fallback()
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	cfg := fallback()
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyBrickBossPreset modifies the config based on a difficulty preset.
func ApplyBrickBossPreset(cfg *BrickBossConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Paddle.Width = 130
		cfg.Ball.BaseSpeed = 4
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Paddle.Width = 80
		cfg.Ball.BaseSpeed = 6
	}
}

// ApplySoulTrialPreset modifies the config based on a difficulty preset.
func ApplySoulTrialPreset(cfg *SoulTrialConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Player.MaxHP = 30
	case DifficultyHard:
		cfg.Player.MaxHP = 12
		cfg.Battle.Damage = 5
	}
}
