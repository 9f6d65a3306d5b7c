package render

import (
	"math"

	"flight-simulator/pkg/types"

	"github.com/wroge/wgs84"
)

const (
	TILE_SIZE        = 512.0
	MAX_MERCATOR_LAT = 85.05112878

	// Half the EPSG:3857 world width in meters.
	MERCATOR_EXTENT = 20_037_508.342789244
)

var (
	toMercator   = wgs84.EPSG().Transform(4326, 3857)
	fromMercator = wgs84.EPSG().Transform(3857, 4326)
)

// Mercator converts between lat/lng, EPSG:3857 meters and world pixels at
// a fractional zoom level (TILE_SIZE pixels for the whole world at zoom 0).
type Mercator struct{}

func (Mercator) ToMeters(p types.LatLng) types.Vec2 {
	lat := math.Max(-MAX_MERCATOR_LAT, math.Min(MAX_MERCATOR_LAT, p.Lat))
	x, y, _ := toMercator(p.Lng, lat, 0)
	return types.NewVec2(x, y)
}

func (Mercator) FromMeters(v types.Vec2) types.LatLng {
	lng, lat, _ := fromMercator(v.X, v.Y, 0)
	return types.NewLatLng(lat, lng)
}

// WorldSize is the pixel width of the whole map at zoom.
func (Mercator) WorldSize(zoom float64) float64 {
	return TILE_SIZE * math.Pow(2, zoom)
}

// ToPixels returns world pixel coordinates, origin top-left, y down.
func (m Mercator) ToPixels(p types.LatLng, zoom float64) types.Vec2 {
	meters := m.ToMeters(p)
	size := m.WorldSize(zoom)
	return types.NewVec2(
		(meters.X+MERCATOR_EXTENT)/(2*MERCATOR_EXTENT)*size,
		(MERCATOR_EXTENT-meters.Y)/(2*MERCATOR_EXTENT)*size,
	)
}

func (m Mercator) FromPixels(px types.Vec2, zoom float64) types.LatLng {
	size := m.WorldSize(zoom)
	meters := types.NewVec2(
		px.X/size*2*MERCATOR_EXTENT-MERCATOR_EXTENT,
		MERCATOR_EXTENT-px.Y/size*2*MERCATOR_EXTENT,
	)
	return m.FromMeters(meters)
}
