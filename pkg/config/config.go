// Package config parses the watchdog's YAML configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Destination is one initial destination entry in the configuration
// file.
type Destination struct {
	Address string  `yaml:"address"`
	Weight  float64 `yaml:"weight"`
}

// Duration parses the same way time.ParseDuration does ("200ms", "1.5s"),
// since yaml.v3 has no built-in support for time.Duration.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// File is the watchdog's configuration, matching the "Consumed:
// configuration" options: a backend selector, the router's own tick
// interval, and the initial destination list.
type File struct {
	// Watchdog is the backend selector, "<name>[:<spec>]"; empty selects
	// the null backend.
	Watchdog string `yaml:"watchdog"`

	// Interval is the router's own tick interval, e.g. "200ms". The
	// watchdog ticks at 1.5x this value.
	Interval Duration `yaml:"interval"`

	Destinations []Destination `yaml:"destinations"`
}

// Load reads and parses the configuration file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if f.Interval <= 0 {
		return nil, fmt.Errorf("config: interval must be positive, got %s", time.Duration(f.Interval))
	}

	return &f, nil
}
