package simulation

import "flight-simulator/pkg/types"

type TrailPoint struct {
	Position types.LatLng
	Clock    float64
}

// Trail is the ephemeral in-memory track of recent positions. It is never
// written anywhere.
type Trail struct {
	Points  []TrailPoint
	maxSize int
}

func NewTrail(maxSize int) *Trail {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &Trail{maxSize: maxSize}
}

func (t *Trail) Add(pos types.LatLng, clock float64) {
	t.Points = append(t.Points, TrailPoint{Position: pos, Clock: clock})

	if len(t.Points) > t.maxSize {
		t.Points = t.Points[len(t.Points)-t.maxSize:]
	}
}

func (t *Trail) Len() int {
	return len(t.Points)
}

// Last returns the most recent point, if any.
func (t *Trail) Last() (TrailPoint, bool) {
	if len(t.Points) == 0 {
		return TrailPoint{}, false
	}
	return t.Points[len(t.Points)-1], true
}

func (t *Trail) Clear() {
	t.Points = nil
}
