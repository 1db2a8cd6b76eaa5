package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/priplot/priplot/internal/date"
)

const fileMode = 0o600

// Sentinel errors.
var (
	ErrNotFound = errors.New("no priplot config found")
	ErrInvalid  = errors.New("invalid config")
)

// Config holds the application configuration.
type Config struct {
	Version   int    `yaml:"version"`
	ExportDir string `yaml:"export_dir,omitempty"`
	WeekStart string `yaml:"week_start,omitempty"`

	// DayStart is the first scheduling slot proposed by dialogs, HH:MM.
	DayStart string `yaml:"day_start,omitempty"`

	Plot PlotConfig `yaml:"plot,omitempty"`

	// dir is the absolute path to the priplot config directory (not serialized).
	dir string `yaml:"-"`
}

// PlotConfig holds plot display settings.
type PlotConfig struct {
	ScoreThresholds []ScoreThreshold `yaml:"score_thresholds,omitempty"`
}

// ScoreThreshold maps a priority-score floor to an ANSI color code.
// Tasks scoring above the threshold render in this color.
type ScoreThreshold struct {
	Above float64 `yaml:"above" json:"above"`
	Color string  `yaml:"color" json:"color"` // ANSI 256 color code, e.g. "34", "226", "196"
}

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	return &Config{
		Version:   CurrentVersion,
		WeekStart: DefaultWeekStart,
		DayStart:  DefaultStartTime,
		Plot: PlotConfig{
			ScoreThresholds: append([]ScoreThreshold{}, DefaultScoreThresholds...),
		},
	}
}

// Dir returns the absolute path to the priplot config directory.
func (c *Config) Dir() string {
	return c.dir
}

// SetDir sets the config directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// SessionPath returns the default session file path.
func (c *Config) SessionPath() string {
	return filepath.Join(c.dir, SessionFileName)
}

// DayStartClock returns the parsed day start, falling back to 09:00 on
// an unparseable value.
func (c *Config) DayStartClock() date.Clock {
	clock, err := date.ParseClock(c.DayStart)
	if err != nil {
		clock, _ = date.ParseClock(DefaultStartTime)
	}
	return clock
}

// SortedThresholds returns the score thresholds in ascending order.
func (c *Config) SortedThresholds() []ScoreThreshold {
	out := append([]ScoreThreshold{}, c.Plot.ScoreThresholds...)
	sort.Slice(out, func(i, j int) bool { return out[i].Above < out[j].Above })
	return out
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if c.WeekStart != "" && c.WeekStart != "monday" && c.WeekStart != "sunday" {
		return fmt.Errorf("%w: week_start must be monday or sunday, got %q", ErrInvalid, c.WeekStart)
	}
	if c.DayStart != "" {
		if _, err := date.ParseClock(c.DayStart); err != nil {
			return fmt.Errorf("%w: invalid day_start: %v", ErrInvalid, err)
		}
	}
	for _, th := range c.Plot.ScoreThresholds {
		if th.Above < 0 {
			return fmt.Errorf("%w: score threshold must be >= 0, got %v", ErrInvalid, th.Above)
		}
		if th.Color == "" {
			return fmt.Errorf("%w: score threshold color is required", ErrInvalid)
		}
	}
	return nil
}

// DefaultDir returns the path to ~/.config/priplot.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config/priplot"), nil
}

// Load reads and validates the config from the given directory.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	cfg.dir = dir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrInit loads the config from dir, creating it with defaults when
// it does not exist yet.
func LoadOrInit(dir string) (*Config, error) {
	cfg, err := Load(dir)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	cfg = NewDefault()
	cfg.dir = dir
	if err := cfg.Save(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to its directory, creating the directory if
// needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(c.ConfigPath(), data, fileMode); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
