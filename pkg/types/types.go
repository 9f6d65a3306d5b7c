package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type LatLng struct {
	Lat float64 `json:"lat" msgpack:"lat"`
	Lng float64 `json:"lng" msgpack:"lng"`
}

func NewLatLng(lat, lng float64) LatLng {
	return LatLng{lat, lng}
}

// ParseLatLng reads "lat lng" or "lat,lng" in decimal degrees.
func ParseLatLng(text string) (LatLng, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 2 {
		return LatLng{}, fmt.Errorf("expected \"<lat> <lng>\", got %q", text)
	}

	lat, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return LatLng{}, fmt.Errorf("invalid latitude %q: %w", fields[0], err)
	}
	lng, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return LatLng{}, fmt.Errorf("invalid longitude %q: %w", fields[1], err)
	}

	p := NewLatLng(lat, lng)
	if !p.Valid() {
		return LatLng{}, fmt.Errorf("coordinates out of range: %.6f, %.6f", lat, lng)
	}
	return p, nil
}

// Valid reports whether the point is finite and within lat [-90,90],
// lng [-180,180].
func (a LatLng) Valid() bool {
	return a.Lat >= -90 && a.Lat <= 90 && a.Lng >= -180 && a.Lng <= 180
}

// DistanceDeg is the planar distance in degrees of latitude, with the
// longitude difference scaled by cos(lat). It takes the short way across
// the antimeridian.
func (a LatLng) DistanceDeg(b LatLng) float64 {
	dLat := b.Lat - a.Lat
	dLng := lngDelta(a.Lng, b.Lng) * math.Cos(a.Lat*math.Pi/180.0)
	return math.Sqrt(dLat*dLat + dLng*dLng)
}

// BearingTo returns the course from a to b in radians, 0=north, clockwise.
func (a LatLng) BearingTo(b LatLng) float64 {
	dLat := b.Lat - a.Lat
	dLng := lngDelta(a.Lng, b.Lng) * math.Cos(a.Lat*math.Pi/180.0)
	return math.Atan2(dLng, dLat)
}

// lngDelta is b-a reduced into (-180, 180].
func lngDelta(a, b float64) float64 {
	d := math.Mod(b-a, 360)
	if d <= -180 {
		d += 360
	} else if d > 180 {
		d -= 360
	}
	return d
}

type Vec2 struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

func NewVec2(x, y float64) Vec2 {
	return Vec2{x, y}
}

func (v1 Vec2) DistanceTo(v2 Vec2) float64 {
	dx := v1.X - v2.X
	dy := v1.Y - v2.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func (v1 Vec2) Length() float64 {
	return math.Sqrt(v1.X*v1.X + v1.Y*v1.Y)
}

func (v1 Vec2) Add(v2 Vec2) Vec2 {
	return Vec2{v1.X + v2.X, v1.Y + v2.Y}
}

func (v1 Vec2) Sub(v2 Vec2) Vec2 {
	return Vec2{v1.X - v2.X, v1.Y - v2.Y}
}

func (v1 Vec2) Scale(k float64) Vec2 {
	return Vec2{v1.X * k, v1.Y * k}
}

// Rotate turns v by theta radians, counter-clockwise in a y-up frame.
func (v1 Vec2) Rotate(theta float64) Vec2 {
	sin, cos := math.Sincos(theta)
	return Vec2{v1.X*cos - v1.Y*sin, v1.X*sin + v1.Y*cos}
}

// Lerp moves from v1 toward v2 by t.
func (v1 Vec2) Lerp(v2 Vec2, t float64) Vec2 {
	return Vec2{v1.X + (v2.X-v1.X)*t, v1.Y + (v2.Y-v1.Y)*t}
}

type FlightMode int

const (
	MANUAL FlightMode = iota
	NAVIGATE
	ORBIT
)

var FlightModeStringMap = map[FlightMode]string{
	MANUAL:   "MANUAL",
	NAVIGATE: "NAVIGATE",
	ORBIT:    "ORBIT",
}

func (m FlightMode) String() string {
	if s, ok := FlightModeStringMap[m]; ok {
		return s
	}
	return "UNKNOWN"
}

// Targeted reports whether the mode carries a target.
func (m FlightMode) Targeted() bool {
	return m == NAVIGATE || m == ORBIT
}

type Projection int

const (
	FLAT Projection = iota
	GLOBE
)

var ProjectionStringMap = map[Projection]string{
	FLAT:  "flat",
	GLOBE: "globe",
}

func (p Projection) String() string {
	if s, ok := ProjectionStringMap[p]; ok {
		return s
	}
	return "unknown"
}

func ProjectionFor(globe bool) Projection {
	if globe {
		return GLOBE
	}
	return FLAT
}
