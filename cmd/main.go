// Command sunsched prints one day's sunrise/sunset and the times at which
// the wallpaper index changes, to help pick an external timer interval.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/echoflaresat/sunpaper/solar"
	"github.com/echoflaresat/sunpaper/wallpaper"
)

const step = time.Minute

func main() {
	lat := flag.Float64("lat", 0.0, "Latitude in degrees, north positive")
	lon := flag.Float64("lon", 0.0, "Longitude in degrees, east positive")
	dayCount := flag.Int("day-count", 13, "Number of images covering sunrise to sunset")
	nightCount := flag.Int("night-count", 3, "Number of images covering sunset to sunrise")
	timeStr := flag.String("time", "", "Any instant of the day to chart, RFC3339; defaults to now")
	flag.Parse()

	t := time.Now()
	if *timeStr != "" {
		var err error
		t, err = time.Parse(time.RFC3339, *timeStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing time: %v\n", err)
			os.Exit(1)
		}
	}

	coord := solar.Coord{Lat: *lat, Lon: *lon}
	r := wallpaper.Range{DayCount: *dayCount, NightCount: *nightCount}

	provider := wallpaper.CachedProvider(func(t time.Time) (solar.Day, error) {
		return solar.Compute(coord, t)
	}, 8)

	d, err := provider(t)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	year, month, day := t.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, t.Location())

	fmt.Printf("Schedule for %s at (%.4f, %.4f)\n", midnight.Format("2006-01-02"), coord.Lat, coord.Lon)
	switch d.Polar {
	case solar.PolarDay:
		fmt.Printf("  Polar day: the sun does not set; index stays at %d\n", r.DayCount)
	case solar.PolarNight:
		fmt.Printf("  Polar night: the sun does not rise; index stays at %d\n", r.Total())
	default:
		fmt.Printf("  Sunrise: %s\n", d.Sunrise.Format("15:04:05"))
		fmt.Printf("  Sunset:  %s\n", d.Sunset.Format("15:04:05"))
	}
	fmt.Println()

	indices, err := chart(provider, midnight, r)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	last := 0
	for i, idx := range indices {
		if idx == last {
			continue
		}
		fmt.Printf("  %s  image %d\n", midnight.Add(time.Duration(i)*step).Format("15:04"), idx)
		last = idx
	}
}

// chart computes the index for every minute of the day. Slots are
// independent pure computations, so they are batched concurrently over the
// shared date cache.
func chart(provider wallpaper.Provider, midnight time.Time, r wallpaper.Range) ([]int, error) {
	slots := int(24 * time.Hour / step)
	indices := make([]int, slots)

	var g errgroup.Group
	g.SetLimit(8)
	for i := 0; i < slots; i++ {
		i := i
		g.Go(func() error {
			idx, err := wallpaper.Index(provider, midnight.Add(time.Duration(i)*step), r)
			if err != nil {
				return err
			}
			indices[i] = idx
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return indices, nil
}
