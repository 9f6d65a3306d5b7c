package airspace

import "flight-simulator/pkg/types"

type Airport struct {
	ID       string
	Name     string
	Position types.LatLng
}

func (ap *Airspace) AddAirport(airportID, name string, pos types.LatLng) {
	ap.Airports[airportID] = &Airport{
		ID:       airportID,
		Name:     name,
		Position: pos,
	}
}
