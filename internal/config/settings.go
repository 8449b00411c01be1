package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings are the user-adjustable bridge options. Formatting house
// style is deliberately not configurable.
type Settings struct {
	// NoSyntaxValidation disables the syntactic diagnostics pass
	NoSyntaxValidation bool `yaml:"noSyntaxValidation"`
	// NoSemanticValidation disables the semantic diagnostics pass
	NoSemanticValidation bool `yaml:"noSemanticValidation"`
	// QuietPeriodMS is the diagnostics debounce window in milliseconds
	QuietPeriodMS int `yaml:"quietPeriodMs"`
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() Settings {
	return Settings{QuietPeriodMS: 500}
}

// QuietPeriod returns the debounce window as a duration.
func (s Settings) QuietPeriod() time.Duration {
	if s.QuietPeriodMS <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(s.QuietPeriodMS) * time.Millisecond
}

// Load reads settings from a YAML file. A missing file yields the
// defaults without error.
func Load(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	return settings, nil
}
