// Package settings loads and stores the player's preferences. Game state and scores
// are never persisted.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDir   = "dinotris"
	fileName = "config.json"

	MinScale = 1
	MaxScale = 3
)

type Config struct {
	Theme      string `json:"theme"`
	Sound      bool   `json:"sound"`
	Music      bool   `json:"music"`
	Volume     int    `json:"volume"`
	Scale      int    `json:"scale"`
	Animations bool   `json:"animations"`
	MusicFile  string `json:"music_file,omitempty"`
}

func Default() Config {
	return Config{
		Sound:      true,
		Music:      true,
		Volume:     70,
		Scale:      1,
		Animations: true,
	}
}

// ErrMusicFile reports a configured music file that is unusable.
var ErrMusicFile = errors.New("music file")

// Normalize clamps out-of-range values back into their legal range.
func (c Config) Normalize() Config {
	c.Scale = ClampScale(c.Scale)
	c.Volume = ClampVolume(c.Volume)
	return c
}

// Validate checks references to external resources.
func (c Config) Validate() error {
	if c.MusicFile == "" {
		return nil
	}
	info, err := os.Stat(c.MusicFile)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrMusicFile, c.MusicFile, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w %q: is a directory", ErrMusicFile, c.MusicFile)
	}
	return nil
}

func ClampScale(value int) int {
	if value < MinScale {
		return MinScale
	}
	if value > MaxScale {
		return MaxScale
	}
	return value
}

func ClampVolume(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}

// VolumeFraction maps a 0..100 volume to 0..1.
func (c Config) VolumeFraction() float64 {
	return float64(ClampVolume(c.Volume)) / 100
}

// Path returns the config file location, creating its directory.
func Path() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	dir := filepath.Join(root, appDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the config from Path. A missing file yields the defaults.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

func LoadFrom(path string) (Config, error) {
	config := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return config.Normalize(), nil
}

func Save(config Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(path, config)
}

func SaveTo(path string, config Config) error {
	data, err := json.MarshalIndent(config.Normalize(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
