// Package wallpaper maps an instant onto a numbered day/night image
// sequence using the sunrise and sunset of the surrounding days.
package wallpaper

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/echoflaresat/sunpaper/solar"
)

var ErrRange = errors.New("image counts must be at least 1")

// Range configures how many images cover the day segment and how many cover
// the night segment. Indices run from 1 to DayCount+NightCount.
type Range struct {
	DayCount   int
	NightCount int
}

func (r Range) Check() error {
	if r.DayCount < 1 || r.NightCount < 1 {
		return fmt.Errorf("%w: day %d, night %d", ErrRange, r.DayCount, r.NightCount)
	}
	return nil
}

func (r Range) Total() int { return r.DayCount + r.NightCount }

// Provider returns the solar day containing the given instant. The mapper
// queries it for adjacent dates when the night window spans midnight.
type Provider func(t time.Time) (solar.Day, error)

// Period classifies an instant against its day's sunrise and sunset.
type Period int

const (
	BeforeSunrise Period = iota
	Daytime
	AfterSunset
)

func (p Period) String() string {
	switch p {
	case BeforeSunrise:
		return "before sunrise"
	case Daytime:
		return "daytime"
	default:
		return "after sunset"
	}
}

// PeriodOf places now within d. The day segment is closed at sunrise and
// open at sunset, so a boundary instant belongs to exactly one segment.
func PeriodOf(now time.Time, d solar.Day) Period {
	switch {
	case now.Before(d.Sunrise):
		return BeforeSunrise
	case now.Before(d.Sunset):
		return Daytime
	default:
		return AfterSunset
	}
}

// Index returns the image to display at now. During polar day it is the last
// day image, during polar night the last night image. Otherwise the position
// of now within the governing day or night window is scaled linearly onto
// that segment of r.
func Index(day Provider, now time.Time, r Range) (int, error) {
	if err := r.Check(); err != nil {
		return 0, err
	}

	today, err := day(now)
	if err != nil {
		return 0, err
	}

	switch today.Polar {
	case solar.PolarDay:
		return r.DayCount, nil
	case solar.PolarNight:
		return r.Total(), nil
	}

	// A zero-length day cannot come out of the hour-angle formula, but a
	// caller-supplied provider may hand one over.
	if !today.Sunset.After(today.Sunrise) {
		return 1, nil
	}

	switch PeriodOf(now, today) {
	case Daytime:
		return scale(now, today.Sunrise, today.Sunset, 1, r.DayCount), nil

	case AfterSunset:
		end := today.Sunrise.Add(24 * time.Hour)
		tomorrow, err := day(now.AddDate(0, 0, 1))
		if err != nil {
			return 0, err
		}
		if tomorrow.Polar == solar.PolarNone {
			end = tomorrow.Sunrise
		}
		return scale(now, today.Sunset, end, r.DayCount+1, r.NightCount), nil

	default: // BeforeSunrise
		start := today.Sunset.Add(-24 * time.Hour)
		yesterday, err := day(now.AddDate(0, 0, -1))
		if err != nil {
			return 0, err
		}
		if yesterday.Polar == solar.PolarNone {
			start = yesterday.Sunset
		}
		return scale(now, start, today.Sunrise, r.DayCount+1, r.NightCount), nil
	}
}

// scale maps now's position within [start, end) onto count indices beginning
// at first. A degenerate window yields the first index of the segment.
func scale(now, start, end time.Time, first, count int) int {
	span := end.Sub(start)
	if span <= 0 {
		return first
	}

	frac := float64(now.Sub(start)) / float64(span)
	idx := first + int(math.Floor(frac*float64(count)))

	if idx < first {
		idx = first
	}
	if last := first + count - 1; idx > last {
		idx = last
	}
	return idx
}
