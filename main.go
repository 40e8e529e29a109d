package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/echoflaresat/sunpaper/config"
	"github.com/echoflaresat/sunpaper/solar"
	"github.com/echoflaresat/sunpaper/wallpaper"
)

type cliFlags struct {
	lat, lon             *float64
	dayCount, nightCount *int
	timeStr, envFile     *string
	debug, showHelp      *bool
}

func defineFlags() cliFlags {
	return cliFlags{
		lat: flag.Float64("lat", 0.0, "Latitude in degrees, north positive"),
		lon: flag.Float64("lon", 0.0, "Longitude in degrees, east positive"),

		dayCount:   flag.Int("day-count", 0, "Number of images covering sunrise to sunset"),
		nightCount: flag.Int("night-count", 0, "Number of images covering sunset to sunrise"),

		timeStr: flag.String("time", "", "Time in RFC3339 format (e.g., 2025-08-02T15:04:05Z); defaults to now"),
		envFile: flag.String("env", "", "Path to a dotenv file (default ./.env if present)"),

		debug:    flag.Bool("debug", false, "Verbose logging to stderr"),
		showHelp: flag.Bool("h", false, "Show this help message"),
	}
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `Sunpaper - Solar Wallpaper Index Picker

Prints the number of the day/night sequence image matching the sun's
position at the given location and time.

Usage:
  %[1]s [options]

`, os.Args[0])

	printGroup("Location", []string{"lat", "lon"})
	printGroup("Images", []string{"day-count", "night-count"})
	printGroup("Time", []string{"time"})
	printGroup("Misc", []string{"env", "debug", "h"})
}

func printGroup(title string, keys []string) {
	fmt.Fprintf(os.Stderr, "%s:\n", title)
	for _, name := range keys {
		if f := flag.Lookup(name); f != nil {
			fmt.Fprintf(os.Stderr, "  -%-12s %s (default %q)\n", f.Name, f.Usage, f.DefValue)
		}
	}
	fmt.Fprintln(os.Stderr)
}

func main() {
	f := defineFlags()
	flag.Usage = printHelp
	flag.Parse()

	if *f.showHelp {
		printHelp()
		return
	}

	cfg, err := config.Load(*f.envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	applyOverrides(&cfg, f)
	if err := cfg.Check(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Debug || *f.debug)
	defer logger.Sync()
	sugar := logger.Sugar()

	now := cfg.Time()
	if cfg.Overridden() && *f.timeStr == "" {
		sugar.Warnw("using configured time override instead of the clock", "now", now)
	}

	coord := solar.Coord{Lat: cfg.Lat, Lon: cfg.Lon}
	provider := wallpaper.Provider(func(t time.Time) (solar.Day, error) {
		return solar.Compute(coord, t)
	})

	logSun(sugar, provider, now)

	idx, err := wallpaper.Index(provider, now, wallpaper.Range{
		DayCount:   cfg.DayCount,
		NightCount: cfg.NightCount,
	})
	if err != nil {
		sugar.Error(err)
		os.Exit(1)
	}

	// The index is the only stdout output so an external background setter
	// can consume it directly.
	fmt.Println(idx)
}

// applyOverrides copies values for flags that were set on the command line
// over the environment-sourced configuration.
func applyOverrides(cfg *config.Config, f cliFlags) {
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "lat":
			cfg.Lat = *f.lat
		case "lon":
			cfg.Lon = *f.lon
		case "day-count":
			cfg.DayCount = *f.dayCount
		case "night-count":
			cfg.NightCount = *f.nightCount
		case "time":
			cfg.Now = *f.timeStr
		case "debug":
			cfg.Debug = *f.debug
		}
	})
}

func newLogger(debug bool) *zap.Logger {
	var logger *zap.Logger
	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(fmt.Sprintf("can't initialize zap logger: %v", err))
	}
	return logger
}

func logSun(sugar *zap.SugaredLogger, provider wallpaper.Provider, now time.Time) {
	d, err := provider(now)
	if err != nil {
		return
	}
	if d.Polar != solar.PolarNone {
		sugar.Infow("sun", "condition", d.Polar.String())
		return
	}
	sugar.Debugw("sun",
		"sunrise", d.Sunrise.Format(time.RFC3339),
		"sunset", d.Sunset.Format(time.RFC3339),
	)
	sugar.Infof("%s", wallpaper.PeriodOf(now, d))
}
