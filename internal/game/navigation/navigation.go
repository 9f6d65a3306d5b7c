// Package navigation runs the click-to-target state machine
// (MANUAL -> NAVIGATE -> ORBIT) on top of the integrated flight state.
package navigation

import (
	"math"

	"flight-simulator/internal/game/aircraft"
	"flight-simulator/internal/game/controls"
	"flight-simulator/internal/game/easing"
	"flight-simulator/pkg/types"

	"github.com/labstack/gommon/log"
)

const (
	METERS_PER_DEG = 111_320.0

	MIN_ARRIVAL_RADIUS_DEG = 0.002
	ARRIVAL_DEG_PER_FT     = 2e-7
	ARRIVAL_LOOKAHEAD_SEC  = 0.5

	// ARRIVAL_TURN_MARGIN scales the tightest turn radius into an arrival
	// floor. Pursuit at MAX_YAW_RATE can circle a target at exactly that
	// radius, so arrival must lie outside it.
	ARRIVAL_TURN_MARGIN = 1.2

	MIN_ORBIT_RADIUS_M = 500.0
	ORBIT_RADIUS_SCALE = 4.0

	ORBIT_BANK_MIN = 25 * math.Pi / 180
	ORBIT_BANK_MAX = 35 * math.Pi / 180

	// STEER_GAIN converts heading error (rad) into an autopilot yaw rate.
	STEER_GAIN = 1.5
)

type Marker struct {
	ID       int
	Position types.LatLng
}

// MarkerSink is told when the single target marker is placed or removed,
// so a map layer can mirror it.
type MarkerSink interface {
	PlaceMarker(m Marker)
	RemoveMarker(id int)
}

type Navigator struct {
	Sink MarkerSink

	marker       *Marker
	nextMarkerID int
}

func NewNavigator(sink MarkerSink) *Navigator {
	return &Navigator{Sink: sink, nextMarkerID: 1}
}

// Marker returns the live marker, or nil when no target is set.
func (n *Navigator) Marker() *Marker {
	if n.marker == nil {
		return nil
	}
	m := *n.marker
	return &m
}

// Acquire handles a click target. Whatever the current mode, the aircraft
// heads for the new point; the previous marker is disposed.
func (n *Navigator) Acquire(s aircraft.FlightState, target types.LatLng) aircraft.FlightState {
	n.removeMarker()

	n.marker = &Marker{ID: n.nextMarkerID, Position: target}
	n.nextMarkerID++
	if n.Sink != nil {
		n.Sink.PlaceMarker(*n.marker)
	}

	t := target
	if s.Mode != types.NAVIGATE {
		log.Infof("navigation: %s -> NAVIGATE (%.5f, %.5f)", s.Mode, t.Lat, t.Lng)
	}
	s.Target = &t
	s.Mode = types.NAVIGATE
	return s
}

// Cancel clears the target and returns to MANUAL.
func (n *Navigator) Cancel(s aircraft.FlightState) aircraft.FlightState {
	n.removeMarker()
	if s.Mode != types.MANUAL {
		log.Infof("navigation: %s -> MANUAL", s.Mode)
	}
	s.Mode = types.MANUAL
	s.Target = nil
	s.Yaw = 0
	return s
}

// Evaluate runs after integration each tick. Arrival is checked before the
// cancel flag so a same-tick cancel always wins.
func (n *Navigator) Evaluate(s aircraft.FlightState, in controls.ControlFrameInput) aircraft.FlightState {
	if s.Target == nil && s.Mode != types.MANUAL {
		// Unreachable through Acquire/Cancel; repair rather than carry a
		// targeted mode without a target.
		s.Mode = types.MANUAL
	}

	switch s.Mode {
	case types.NAVIGATE:
		pos := s.Position()
		if pos.DistanceDeg(*s.Target) < ArrivalRadiusDeg(s.AltitudeFt, s.SpeedMps) {
			log.Infof("navigation: NAVIGATE -> ORBIT at (%.5f, %.5f)", s.Lat, s.Lng)
			s.Mode = types.ORBIT
			s = n.orbit(s, in)
		} else {
			s = n.steer(s, in)
		}
	case types.ORBIT:
		s = n.orbit(s, in)
	}

	if in.CancelTarget {
		s = n.Cancel(s)
	}
	return s
}

func (n *Navigator) steer(s aircraft.FlightState, in controls.ControlFrameInput) aircraft.FlightState {
	if in.YawInput != 0 {
		return s
	}
	want := s.Position().BearingTo(*s.Target)
	s.Yaw = turnRate(s.Heading, want)
	return s
}

// orbit keeps the aircraft on a circle around the target: heading is held
// tangent to the circle with a radial correction, which at steady state is
// a constant angular velocity of speed/radius.
func (n *Navigator) orbit(s aircraft.FlightState, in controls.ControlFrameInput) aircraft.FlightState {
	radius := OrbitRadiusM(s.AltitudeFt, s.SpeedMps)
	center := *s.Target
	pos := s.Position()

	if in.YawInput == 0 {
		dist := center.DistanceDeg(pos) * METERS_PER_DEG
		outward := center.BearingTo(pos)
		// Clockwise tangent, pulled in when outside the circle and pushed
		// out when inside.
		correction := easing.Clamp((dist-radius)/radius, -1, 1) * (math.Pi / 3)
		want := outward + math.Pi/2 + correction
		if dist < 1e-3 {
			want = s.Heading
		}
		omega := s.SpeedMps / radius
		s.Yaw = easing.Clamp(omega+turnRate(s.Heading, want), -aircraft.MAX_YAW_RATE, aircraft.MAX_YAW_RATE)
	}

	bank := math.Abs(s.Roll)
	sign := 1.0
	if s.Yaw < 0 {
		sign = -1
	}
	s.Roll = sign * easing.Clamp(bank, ORBIT_BANK_MIN, ORBIT_BANK_MAX)
	return s
}

func (n *Navigator) removeMarker() {
	if n.marker == nil {
		return
	}
	if n.Sink != nil {
		n.Sink.RemoveMarker(n.marker.ID)
	}
	n.marker = nil
}

// ArrivalRadiusDeg grows with altitude and with how far one half second of
// flight carries the aircraft at the current speed. It never drops below the
// turn circle at MAX_YAW_RATE, which keeps every target reachable.
func ArrivalRadiusDeg(altitudeFt, speedMps float64) float64 {
	r := MIN_ARRIVAL_RADIUS_DEG
	r = math.Max(r, altitudeFt*ARRIVAL_DEG_PER_FT)
	r = math.Max(r, speedMps*ARRIVAL_LOOKAHEAD_SEC/METERS_PER_DEG)
	r = math.Max(r, TurnRadiusM(speedMps)*ARRIVAL_TURN_MARGIN/METERS_PER_DEG)
	return r
}

// TurnRadiusM is the radius of the tightest turn at speedMps.
func TurnRadiusM(speedMps float64) float64 {
	return speedMps / aircraft.MAX_YAW_RATE
}

// OrbitRadiusM scales with altitude, floored so the circle stays flyable
// within MAX_YAW_RATE at the current speed.
func OrbitRadiusM(altitudeFt, speedMps float64) float64 {
	r := math.Max(MIN_ORBIT_RADIUS_M, altitudeFt*0.3048*ORBIT_RADIUS_SCALE)
	return math.Max(r, TurnRadiusM(speedMps)/0.8)
}

// OrbitAngularVelocity is the steady-state turn rate while orbiting.
func OrbitAngularVelocity(s aircraft.FlightState) float64 {
	return s.SpeedMps / OrbitRadiusM(s.AltitudeFt, s.SpeedMps)
}

func turnRate(heading, want float64) float64 {
	diff := easing.Radians(easing.WrapDegrees(easing.Degrees(want - heading)))
	return easing.Clamp(diff*STEER_GAIN, -aircraft.MAX_YAW_RATE, aircraft.MAX_YAW_RATE)
}
