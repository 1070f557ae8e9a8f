// Package config handles configuration file loading and parsing for
// marqueed.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/marqueekit/marquee/internal/entry"
)

// Duration is a time.Duration that can be unmarshaled from human-readable
// strings like "5s", "1m30s", or integer milliseconds. A value of "0" or 0
// means never.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '5s', '1m30s' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Position represents a banner position on screen.
type Position string

const (
	PositionTopLeft      Position = "top-left"
	PositionTopRight     Position = "top-right"
	PositionTopCenter    Position = "top-center"
	PositionBottomLeft   Position = "bottom-left"
	PositionBottomRight  Position = "bottom-right"
	PositionBottomCenter Position = "bottom-center"
)

// ValidPositions returns all valid position values.
func ValidPositions() []Position {
	return []Position{
		PositionTopLeft,
		PositionTopRight,
		PositionTopCenter,
		PositionBottomLeft,
		PositionBottomRight,
		PositionBottomCenter,
	}
}

// DaemonConfig is the configuration for marqueed.
// Loaded from ~/.config/marquee/marqueed.toml
type DaemonConfig struct {
	Display  DisplayConfig `toml:"display"`
	Timeouts TimeoutConfig `toml:"timeouts"`
	Audio    AudioConfig   `toml:"audio"`
}

// DisplayConfig contains banner surface settings.
type DisplayConfig struct {
	Position  string `toml:"position"`   // "top-center", "top-right", etc.
	OffsetX   int    `toml:"offset_x"`   // Pixels from screen edge
	OffsetY   int    `toml:"offset_y"`   // Pixels from screen edge
	Width     int    `toml:"width"`      // Banner width in pixels
	MaxHeight int    `toml:"max_height"` // Maximum banner height

	// ExitFade is how long the exit animation takes. 0 disables fading
	// and the exit completes immediately.
	ExitFade Duration `toml:"exit_fade"`
}

// TimeoutConfig holds the auto-dismiss timeout per priority band.
// A value of "0" or 0 means the banner stays until dismissed.
type TimeoutConfig struct {
	Min    Duration `toml:"min"`
	Low    Duration `toml:"low"`
	Normal Duration `toml:"normal"`
	High   Duration `toml:"high"`
	Max    Duration `toml:"max"`
}

// AudioConfig contains chime settings.
type AudioConfig struct {
	Enabled bool        `toml:"enabled"`
	Volume  int         `toml:"volume"` // 0-100
	Sounds  SoundConfig `toml:"sounds"`
}

// SoundConfig contains per-band sound file paths.
type SoundConfig struct {
	Low    string `toml:"low"`
	Normal string `toml:"normal"`
	High   string `toml:"high"`
	Max    string `toml:"max"`
}

// DefaultDaemonConfig returns a new DaemonConfig with default values.
func DefaultDaemonConfig() *DaemonConfig {
	return &DaemonConfig{
		Display: DisplayConfig{
			Position:  string(PositionTopCenter),
			OffsetX:   0,
			OffsetY:   10,
			Width:     400,
			MaxHeight: 160,
			ExitFade:  Duration(200 * time.Millisecond),
		},
		Timeouts: TimeoutConfig{
			Min:    Duration(5 * time.Second),
			Low:    Duration(5 * time.Second),
			Normal: Duration(10 * time.Second),
			High:   Duration(20 * time.Second),
			Max:    Duration(0), // Sticks until dismissed
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  80,
			Sounds:  SoundConfig{},
		},
	}
}

// DaemonConfigPath returns the path to the daemon config file.
func DaemonConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "marquee", "marqueed.toml"), nil
}

// LoadDaemonConfig loads the daemon configuration from path. An empty path
// uses the default location. A missing file yields the defaults.
func LoadDaemonConfig(path string) (*DaemonConfig, error) {
	if path == "" {
		var err error
		path, err = DaemonConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultDaemonConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay with file contents
	cfg := DefaultDaemonConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// SaveDaemonConfig saves the daemon configuration to its default path.
func SaveDaemonConfig(cfg *DaemonConfig) error {
	path, err := DaemonConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *DaemonConfig) Validate() error {
	validPos := false
	for _, p := range ValidPositions() {
		if c.Display.Position == string(p) {
			validPos = true
			break
		}
	}
	if !validPos {
		return fmt.Errorf("invalid position %q, must be one of: %v", c.Display.Position, ValidPositions())
	}

	if c.Display.Width < 100 || c.Display.Width > 1200 {
		return fmt.Errorf("width must be between 100 and 1200, got %d", c.Display.Width)
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Audio.Volume)
	}

	return nil
}

// TimeoutForPriority returns the auto-dismiss timeout for the priority's
// band. Zero means never.
func (c *DaemonConfig) TimeoutForPriority(p entry.Priority) time.Duration {
	switch p.Band() {
	case "min":
		return c.Timeouts.Min.Duration()
	case "low":
		return c.Timeouts.Low.Duration()
	case "high":
		return c.Timeouts.High.Duration()
	case "max":
		return c.Timeouts.Max.Duration()
	default:
		return c.Timeouts.Normal.Duration()
	}
}

// SoundForPriority returns the chime file path for the priority's band.
// Expands ~ to the home directory.
func (c *DaemonConfig) SoundForPriority(p entry.Priority) string {
	var path string
	switch p.Band() {
	case "min", "low":
		path = c.Audio.Sounds.Low
	case "high":
		path = c.Audio.Sounds.High
	case "max":
		path = c.Audio.Sounds.Max
	default:
		path = c.Audio.Sounds.Normal
	}
	return expandPath(path)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
