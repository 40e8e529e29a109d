// Package solar computes sunrise and sunset instants for a coordinate and
// date using the NOAA low-precision solar series. Results agree with the
// published NOAA tables to within about a minute for non-polar latitudes.
package solar

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// riseSetZenithDeg is 90° plus atmospheric refraction and the sun's
// apparent radius.
const riseSetZenithDeg = 90.833

var (
	ErrLatitude  = errors.New("latitude out of range [-90, 90]")
	ErrLongitude = errors.New("longitude out of range [-180, 180]")
)

// Coord is a geographic coordinate in degrees, east and north positive.
type Coord struct {
	Lat float64
	Lon float64
}

func (c Coord) Check() error {
	if c.Lat < -90 || c.Lat > 90 || math.IsNaN(c.Lat) {
		return fmt.Errorf("%w: %v", ErrLatitude, c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 || math.IsNaN(c.Lon) {
		return fmt.Errorf("%w: %v", ErrLongitude, c.Lon)
	}
	return nil
}

// Polar tags days on which the sun never rises or never sets.
type Polar int

const (
	PolarNone Polar = iota
	PolarDay
	PolarNight
)

func (p Polar) String() string {
	switch p {
	case PolarDay:
		return "polar day"
	case PolarNight:
		return "polar night"
	default:
		return "none"
	}
}

// Day holds the sunrise and sunset instants of one calendar day. When Polar
// is not PolarNone the instants are zero: a polar day or night is a normal
// outcome at high latitudes, not an error.
type Day struct {
	Polar   Polar
	Sunrise time.Time
	Sunset  time.Time
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }
func radToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }
func fixAngle(a float64) float64   { return a - 360.0*math.Floor(a/360.0) }

func geomMeanLong(T float64) float64 {
	return fixAngle(280.46646 + T*(36000.76983+T*0.0003032))
}

func geomMeanAnomaly(T float64) float64 {
	return 357.52911 + T*(35999.05029-0.0001537*T)
}

func eccentricity(T float64) float64 {
	return 0.016708634 - T*(0.000042037+0.0000001267*T)
}

func equationOfCenter(T float64) float64 {
	M := degToRad(geomMeanAnomaly(T))
	return math.Sin(M)*(1.914602-T*(0.004817+0.000014*T)) +
		math.Sin(2*M)*(0.019993-0.000101*T) +
		math.Sin(3*M)*0.000289
}

// apparentLong is the sun's true longitude corrected for nutation.
func apparentLong(T float64) float64 {
	Ω := 125.04 - 1934.136*T
	return geomMeanLong(T) + equationOfCenter(T) - 0.00569 - 0.00478*math.Sin(degToRad(Ω))
}

func meanObliquity(T float64) float64 {
	seconds := 21.448 - T*(46.8150+T*(0.00059-T*0.001813))
	return 23.0 + (26.0+seconds/60.0)/60.0
}

func obliquityCorrection(T float64) float64 {
	Ω := 125.04 - 1934.136*T
	return meanObliquity(T) + 0.00256*math.Cos(degToRad(Ω))
}

// declination returns the sun's declination in degrees.
func declination(T float64) float64 {
	ε := degToRad(obliquityCorrection(T))
	λ := degToRad(apparentLong(T))
	return radToDeg(math.Asin(math.Sin(ε) * math.Sin(λ)))
}

// equationOfTime returns apparent minus mean solar time in minutes.
func equationOfTime(T float64) float64 {
	ε := degToRad(obliquityCorrection(T))
	l0 := degToRad(geomMeanLong(T))
	m := degToRad(geomMeanAnomaly(T))
	e := eccentricity(T)

	y := math.Tan(ε / 2)
	y *= y
	sinM := math.Sin(m)

	et := y*math.Sin(2*l0) -
		2*e*sinM +
		4*e*y*sinM*math.Cos(2*l0) -
		0.5*y*y*math.Sin(4*l0) -
		1.25*e*e*math.Sin(2*m)

	return 4 * radToDeg(et)
}

// Compute returns the solar day containing t at coordinate c. The series is
// evaluated at local solar noon of t's calendar day, so every instant within
// one day sees the same sunrise and sunset. The returned instants carry t's
// UTC offset.
func Compute(c Coord, t time.Time) (Day, error) {
	if err := c.Check(); err != nil {
		return Day{}, err
	}

	year, month, day := t.Date()
	loc := t.Location()

	noon := time.Date(year, month, day, 12, 0, 0, 0, loc)
	jd := julian.TimeToJD(noon.UTC())
	T := (jd - 2451545.0) / 36525.0

	δ := degToRad(declination(T))
	φ := degToRad(c.Lat)

	cosHA := math.Cos(degToRad(riseSetZenithDeg))/(math.Cos(φ)*math.Cos(δ)) -
		math.Tan(φ)*math.Tan(δ)
	switch {
	case cosHA < -1:
		return Day{Polar: PolarDay}, nil
	case cosHA > 1:
		return Day{Polar: PolarNight}, nil
	}

	haMinutes := 4 * radToDeg(math.Acos(cosHA))
	noonMinutes := 720 - 4*c.Lon - equationOfTime(T)

	midnight := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Day{
		Sunrise: midnight.Add(minutes(noonMinutes - haMinutes)).In(loc),
		Sunset:  midnight.Add(minutes(noonMinutes + haMinutes)).In(loc),
	}, nil
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}
