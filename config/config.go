// Package config loads the wallpaper settings from WALLPAPER_* environment
// variables, optionally seeded from a dotenv file.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is shared by the environment variables and dotenv file keys,
// e.g. WALLPAPER_LAT, WALLPAPER_NIGHT_COUNT.
const EnvPrefix = "WALLPAPER_"

// DefaultEnvFile is loaded when present and no explicit path is given.
const DefaultEnvFile = ".env"

var ErrLocation = errors.New("no location configured")

type Config struct {
	Lat        float64 `koanf:"lat" validate:"gte=-90,lte=90"`
	Lon        float64 `koanf:"lon" validate:"gte=-180,lte=180"`
	Now        string  `koanf:"now"`
	DayCount   int     `koanf:"day_count" validate:"min=1"`
	NightCount int     `koanf:"night_count" validate:"min=1"`
	Debug      bool    `koanf:"debug"`
}

// defaultConfig seeds the counts of the stock 16-image sequence; the
// coordinate has no sensible default and must be supplied.
func defaultConfig() Config {
	return Config{
		Lat:        math.NaN(),
		Lon:        math.NaN(),
		DayCount:   13,
		NightCount: 3,
	}
}

func envTransform(key string) string {
	return strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
}

// Load builds the configuration from defaults, then the dotenv file at
// envFile (or ./.env if it exists), then the process environment. Later
// sources win.
func Load(envFile string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("loading defaults: %w", err)
	}

	path := envFile
	if path == "" {
		if _, err := os.Stat(DefaultEnvFile); err == nil {
			path = DefaultEnvFile
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), dotenv.ParserEnv(EnvPrefix, ".", envTransform)); err != nil {
			return Config{}, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return Config{}, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// Check validates the assembled configuration. It is separate from Load so
// the caller can layer flag overrides in first.
func (c Config) Check() error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) {
		return fmt.Errorf("%w: set %sLAT and %sLON or pass -lat/-lon", ErrLocation, EnvPrefix, EnvPrefix)
	}
	if c.Now != "" {
		if _, err := time.Parse(time.RFC3339, c.Now); err != nil {
			return fmt.Errorf("%sNOW: %w", EnvPrefix, err)
		}
	}
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Time resolves the query instant: the WALLPAPER_NOW override when set,
// otherwise the wall clock. Check has already vetted the format.
func (c Config) Time() time.Time {
	if c.Now == "" {
		return time.Now()
	}
	t, err := time.Parse(time.RFC3339, c.Now)
	if err != nil {
		return time.Now()
	}
	return t
}

// Overridden reports whether the instant comes from WALLPAPER_NOW rather
// than the clock.
func (c Config) Overridden() bool { return c.Now != "" }
