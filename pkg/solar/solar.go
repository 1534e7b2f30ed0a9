// Package solar computes the sun's position for a latitude and a local
// solar time. The editor uses it to aim the shadow-preview light; no
// radiation or energy math lives here.
package solar

import (
	"math"
	"time"
)

// Position is the sun's direction in the sky. Altitude is elevation
// above the horizon, azimuth is measured clockwise from north, both in
// degrees. A negative altitude means the sun is below the horizon.
type Position struct {
	Altitude float64
	Azimuth  float64
}

const degToRad = math.Pi / 180.0

// declination returns the solar declination in radians for a day of
// the year (Cooper's approximation).
func declination(dayOfYear int) float64 {
	return 23.45 * degToRad * math.Sin(2*math.Pi*float64(284+dayOfYear)/365.0)
}

// PositionAt computes the sun position for a latitude (degrees) at the
// given date and local solar hour (0..24, 12 = solar noon).
func PositionAt(latitude float64, date time.Time, solarHour float64) Position {
	lat := latitude * degToRad
	decl := declination(date.YearDay())
	hourAngle := (solarHour - 12.0) * 15.0 * degToRad

	sinAlt := math.Sin(lat)*math.Sin(decl) + math.Cos(lat)*math.Cos(decl)*math.Cos(hourAngle)
	altitude := math.Asin(sinAlt)

	// Azimuth from north, clockwise.
	cosAz := (math.Sin(decl) - math.Sin(lat)*sinAlt) / (math.Cos(lat) * math.Cos(altitude))
	cosAz = math.Max(-1, math.Min(1, cosAz))
	azimuth := math.Acos(cosAz)
	if hourAngle > 0 {
		azimuth = 2*math.Pi - azimuth
	}

	return Position{
		Altitude: altitude / degToRad,
		Azimuth:  azimuth / degToRad,
	}
}

// LightDirection converts the position into a unit vector pointing
// from the sun toward the ground, in the editor's axes (x east, y up,
// z south). Below the horizon the direction is straight down so the
// scene never goes fully unlit.
func (p Position) LightDirection() (x, y, z float64) {
	if p.Altitude <= 0 {
		return 0, -1, 0
	}
	alt := p.Altitude * degToRad
	az := p.Azimuth * degToRad
	x = -math.Sin(az) * math.Cos(alt)
	z = math.Cos(az) * math.Cos(alt)
	y = -math.Sin(alt)
	return x, y, z
}
