// Package config loads game settings from a YAML file, an optional .env file
// and ONEIRON_* environment variables, in increasing order of precedence.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the file settings.
const (
	EnvCatalog       = "ONEIRON_CATALOG"
	EnvScreenshotDir = "ONEIRON_SCREENSHOT_DIR"
	EnvSnapshot      = "ONEIRON_SNAPSHOT"
	EnvBaseMass      = "ONEIRON_BASE_MASS"
	EnvThrustScale   = "ONEIRON_THRUST_SCALE"
)

type Config struct {
	Window WindowConfig `yaml:"window"`

	TilePixels    float64 `yaml:"tile_pixels"`    // screen pixels per tile at zoom 1
	BaseMass      float64 `yaml:"base_mass"`      // mass of a platform without tiles
	ThrustScale   float64 `yaml:"thrust_scale"`   // multiplier on building thrust
	SteeringForce float64 `yaml:"steering_force"` // force towards a move target
	Damping       float64 `yaml:"damping"`        // velocity kept per second, 0..1

	ScreenshotDir string `yaml:"screenshot_dir"`
	SnapshotPath  string `yaml:"snapshot_path"`
	CatalogPath   string `yaml:"catalog_path"` // empty = built-in catalog
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  1600,
			Height: 900,
			Title:  "Oneiron",
		},
		TilePixels:    32,
		BaseMass:      1,
		ThrustScale:   1,
		SteeringForce: 60,
		Damping:       0.4,
		ScreenshotDir: "Screenshots",
		SnapshotPath:  "oneiron.snap",
	}
}

// Load reads path over the defaults (an empty path keeps them), then applies
// variables from the given .env files and finally the process environment.
// Missing .env files are skipped and empty variables count as unset.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrap(err, "read config")
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "%s", path)
		}
	}

	dotenv, err := readDotEnv(envFiles)
	if err != nil {
		return cfg, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func readDotEnv(files []string) (map[string]string, error) {
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil, nil
	}
	env, err := godotenv.Read(present...)
	if err != nil {
		return nil, errors.Wrap(err, "read .env")
	}
	return env, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := []struct {
		key string
		dst *string
	}{
		{EnvCatalog, &c.CatalogPath},
		{EnvScreenshotDir, &c.ScreenshotDir},
		{EnvSnapshot, &c.SnapshotPath},
	}
	for _, s := range strs {
		if v, ok := lookup(s.key); ok && v != "" {
			*s.dst = v
		}
	}
	floats := []struct {
		key string
		dst *float64
	}{
		{EnvBaseMass, &c.BaseMass},
		{EnvThrustScale, &c.ThrustScale},
	}
	for _, f := range floats {
		v, ok := lookup(f.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrapf(err, "%s", f.key)
		}
		*f.dst = n
	}
	return nil
}

// Validate rejects settings the game cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return errors.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.TilePixels <= 0:
		return errors.Errorf("tile_pixels %v must be positive", c.TilePixels)
	case c.BaseMass <= 0:
		return errors.Errorf("base_mass %v must be positive", c.BaseMass)
	case c.ThrustScale <= 0:
		return errors.Errorf("thrust_scale %v must be positive", c.ThrustScale)
	case c.Damping < 0 || c.Damping > 1:
		return errors.Errorf("damping %v must be within 0..1", c.Damping)
	}
	return nil
}
