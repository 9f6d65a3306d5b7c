// Package airspace holds the named places a target can be entered by:
// airports by ICAO code and a handful of waypoints.
package airspace

import (
	"math"
	"sort"
	"strings"

	"flight-simulator/pkg/types"
)

type Waypoint struct {
	Name     string
	Position types.LatLng
}

type Airspace struct {
	Waypoints map[string]*Waypoint
	Airports  map[string]*Airport
}

func NewAirspace() *Airspace {
	ap := &Airspace{
		Waypoints: make(map[string]*Waypoint),
		Airports:  make(map[string]*Airport),
	}

	ap.AddAirport("LLBG", "Ben Gurion", types.NewLatLng(32.0114, 34.8867))
	ap.AddAirport("EGLL", "London Heathrow", types.NewLatLng(51.4700, -0.4543))
	ap.AddAirport("KJFK", "New York JFK", types.NewLatLng(40.6413, -73.7781))
	ap.AddAirport("KLAX", "Los Angeles", types.NewLatLng(33.9416, -118.4085))
	ap.AddAirport("OMDB", "Dubai", types.NewLatLng(25.2532, 55.3657))
	ap.AddAirport("RJTT", "Tokyo Haneda", types.NewLatLng(35.5494, 139.7798))
	ap.AddAirport("YSSY", "Sydney", types.NewLatLng(-33.9399, 151.1753))
	ap.AddAirport("FAOR", "Johannesburg", types.NewLatLng(-26.1337, 28.2420))
	ap.AddAirport("SBGR", "Sao Paulo Guarulhos", types.NewLatLng(-23.4356, -46.4731))

	ap.AddWaypoint("APIPO", types.NewLatLng(32.40, 34.60))
	ap.AddWaypoint("BISKET", types.NewLatLng(32.30, 35.10))
	ap.AddWaypoint("CIPKA", types.NewLatLng(32.05, 34.75))
	ap.AddWaypoint("EMETI", types.NewLatLng(31.70, 34.55))
	ap.AddWaypoint("FILKA", types.NewLatLng(31.85, 35.05))

	return ap
}

func (ap *Airspace) AddWaypoint(name string, pos types.LatLng) {
	ap.Waypoints[name] = &Waypoint{Name: name, Position: pos}
}

// Lookup resolves an airport code or waypoint name, case-insensitively.
// Airports win over waypoints of the same name.
func (ap *Airspace) Lookup(name string) (types.LatLng, bool) {
	key := strings.ToUpper(strings.TrimSpace(name))
	if a, ok := ap.Airports[key]; ok {
		return a.Position, true
	}
	if wp, ok := ap.Waypoints[key]; ok {
		return wp.Position, true
	}
	return types.LatLng{}, false
}

// Nearest returns the airport closest to p, by planar degree distance.
func (ap *Airspace) Nearest(p types.LatLng) (*Airport, float64) {
	var best *Airport
	bestDist := math.Inf(1)
	for _, id := range ap.AirportIDs() {
		a := ap.Airports[id]
		if d := p.DistanceDeg(a.Position); d < bestDist {
			best, bestDist = a, d
		}
	}
	return best, bestDist
}

// AirportIDs returns the airport codes in sorted order.
func (ap *Airspace) AirportIDs() []string {
	ids := make([]string, 0, len(ap.Airports))
	for id := range ap.Airports {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ResolveTarget accepts "<lat> <lng>", a place name, or the "D <name>"
// direct-to form.
func (ap *Airspace) ResolveTarget(text string) (types.LatLng, error) {
	fields := strings.Fields(text)
	if len(fields) == 2 && strings.EqualFold(fields[0], "D") {
		text = fields[1]
	}
	if p, ok := ap.Lookup(text); ok {
		return p, nil
	}
	return types.ParseLatLng(text)
}
