package wallpaper

import (
	"errors"
	"testing"
	"time"

	"github.com/echoflaresat/sunpaper/solar"
)

// fixedSun returns a provider whose every day runs from riseHour to setHour
// local time on the requested date.
func fixedSun(riseHour, setHour int) Provider {
	return func(t time.Time) (solar.Day, error) {
		y, m, d := t.Date()
		loc := t.Location()
		return solar.Day{
			Sunrise: time.Date(y, m, d, riseHour, 0, 0, 0, loc),
			Sunset:  time.Date(y, m, d, setHour, 0, 0, 0, loc),
		}, nil
	}
}

func polarSun(p solar.Polar) Provider {
	return func(time.Time) (solar.Day, error) {
		return solar.Day{Polar: p}, nil
	}
}

var testRange = Range{DayCount: 13, NightCount: 3}

func at(hour, min int) time.Time {
	return time.Date(2018, time.July, 10, hour, min, 0, 0, time.UTC)
}

func TestIndexDaytime(t *testing.T) {
	// 06:00 - 18:00 day, 12 hours across 13 images.
	sun := fixedSun(6, 18)

	cases := []struct {
		name string
		now  time.Time
		want int
	}{
		{"exact sunrise", at(6, 0), 1},
		{"just after sunrise", at(6, 30), 1},
		{"quarter day", at(9, 0), 4},      // 1 + floor(0.25*13)
		{"midday", at(12, 0), 7},          // 1 + floor(0.5*13)
		{"three quarters", at(15, 0), 10}, // 1 + floor(0.75*13)
		{"last daylight minute", at(17, 59), 13},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Index(sun, c.now, testRange)
			if err != nil {
				t.Fatalf("Index failed: %v", err)
			}
			if got != c.want {
				t.Errorf("got %d, want %d", got, c.want)
			}
		})
	}
}

func TestIndexNight(t *testing.T) {
	sun := fixedSun(6, 18)

	cases := []struct {
		name string
		now  time.Time
		want int
	}{
		{"exact sunset", at(18, 0), 14},
		{"mid evening", at(21, 0), 14}, // 3h into a 12h night, floor(0.25*3)=0
		{"midnight", at(0, 0), 15},     // 6h into the window started yesterday 18:00
		{"before dawn", at(5, 0), 16},  // 11h of 12h, floor(0.9166*3)=2
		{"last night minute", at(5, 59), 16},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Index(sun, c.now, testRange)
			if err != nil {
				t.Fatalf("Index failed: %v", err)
			}
			if got != c.want {
				t.Errorf("got %d, want %d", got, c.want)
			}
		})
	}
}

func TestIndexMonotonic(t *testing.T) {
	sun := fixedSun(6, 18)

	prev := 0
	wrapped := false
	start := at(6, 0)
	for m := 0; m < 24*60; m += 7 {
		now := start.Add(time.Duration(m) * time.Minute)
		got, err := Index(sun, now, testRange)
		if err != nil {
			t.Fatalf("Index failed at %v: %v", now, err)
		}
		if got < 1 || got > testRange.Total() {
			t.Fatalf("index %d out of range at %v", got, now)
		}
		// One wrap back to 1 at the next sunrise is the only allowed decrease.
		if got < prev {
			if wrapped || got != 1 {
				t.Fatalf("index decreased from %d to %d at %v", prev, got, now)
			}
			wrapped = true
		}
		prev = got
	}
}

func TestIndexPolar(t *testing.T) {
	cases := []struct {
		name string
		sun  Provider
		want int
	}{
		{"polar day", polarSun(solar.PolarDay), 13},
		{"polar night", polarSun(solar.PolarNight), 16},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Index(c.sun, at(12, 0), testRange)
			if err != nil {
				t.Fatalf("Index failed: %v", err)
			}
			if got != c.want {
				t.Errorf("got %d, want %d", got, c.want)
			}
		})
	}
}

func TestIndexAdjacentPolarFallsBack(t *testing.T) {
	// Today has a sunset but tomorrow the sun no longer rises; the night
	// window end falls back to today's sunrise plus 24h.
	sun := func(t time.Time) (solar.Day, error) {
		if t.Day() > 10 {
			return solar.Day{Polar: solar.PolarNight}, nil
		}
		return fixedSun(10, 14)(t)
	}

	got, err := Index(sun, at(20, 0), testRange)
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	// Window 14:00 today to 10:00 tomorrow; 6h of 20h elapsed.
	if got != 14 {
		t.Errorf("got %d, want 14", got)
	}
}

func TestIndexDegenerateDay(t *testing.T) {
	sun := func(t time.Time) (solar.Day, error) {
		noon := at(12, 0)
		return solar.Day{Sunrise: noon, Sunset: noon}, nil
	}

	got, err := Index(sun, at(12, 0), testRange)
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	if got != 1 {
		t.Errorf("got %d, want 1", got)
	}
}

func TestIndexRangeCheck(t *testing.T) {
	cases := []struct {
		name string
		r    Range
	}{
		{"zero day count", Range{DayCount: 0, NightCount: 3}},
		{"zero night count", Range{DayCount: 13, NightCount: 0}},
		{"negative", Range{DayCount: -1, NightCount: -1}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Index(fixedSun(6, 18), at(12, 0), c.r)
			if !errors.Is(err, ErrRange) {
				t.Errorf("got %v, want ErrRange", err)
			}
		})
	}
}

func TestIndexProviderError(t *testing.T) {
	boom := errors.New("boom")
	sun := func(time.Time) (solar.Day, error) { return solar.Day{}, boom }

	if _, err := Index(sun, at(12, 0), testRange); !errors.Is(err, boom) {
		t.Errorf("got %v, want provider error", err)
	}
}

func TestPeriodOf(t *testing.T) {
	d := solar.Day{Sunrise: at(6, 0), Sunset: at(18, 0)}

	cases := []struct {
		name string
		now  time.Time
		want Period
	}{
		{"night before", at(3, 0), BeforeSunrise},
		{"exact sunrise", at(6, 0), Daytime},
		{"midday", at(12, 0), Daytime},
		{"exact sunset", at(18, 0), AfterSunset},
		{"evening", at(22, 0), AfterSunset},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := PeriodOf(c.now, d); got != c.want {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}
