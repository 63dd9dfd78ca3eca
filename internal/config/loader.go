package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads runner settings.
// Search order: customPath -> ~/.runner/configs/runner.yaml -> ./configs/runner.yaml -> embedded default.
// Files are overlaid on the defaults, so a partial file only overrides the keys it names.
func Load(customPath string) (RunSettings, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RunSettings{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return RunSettings{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("runner.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "runner.yaml")); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultRunnerYAML)
	if err != nil {
		return DefaultRunSettings(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of DefaultRunSettings.
func Parse(data []byte) (RunSettings, error) {
	cfg := DefaultRunSettings()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunSettings{}, err
	}
	return cfg, nil
}

// Marshal encodes settings as YAML.
func Marshal(cfg RunSettings) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".runner", "configs", filename)
}

// ApplyPreset modifies the settings based on a difficulty preset.
// Empty presets leave the settings untouched.
func ApplyPreset(cfg *RunSettings, preset DifficultyPreset) {
	obs := &cfg.Spawning.Obstacles
	switch preset {
	case DifficultyEasy:
		obs.BaseChance = 0.2
		obs.MaxChance = 0.5
		cfg.Player.SpeedIncreaseRate = 0.3
		cfg.Spawning.Enemies.GroundChance = 0.1
		cfg.Spawning.Enemies.AirChance = 0.05
	case DifficultyHard:
		obs.BaseChance = 0.45
		obs.MaxChance = 0.85
		obs.DifficultyPerMeter = 0.002
		cfg.Player.SpeedIncreaseRate = 0.8
		cfg.Spawning.Enemies.GroundChance = 0.2
		cfg.Spawning.Enemies.AirChance = 0.15
	case DifficultyFixed:
		// No progression: obstacle chance stays at base and speed never ramps.
		obs.DifficultyPerMeter = 0
		obs.MaxChance = obs.BaseChance
		cfg.Player.SpeedIncreaseRate = 0
	}
}
