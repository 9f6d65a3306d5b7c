package aircraft

import (
	"math"

	"flight-simulator/internal/game/controls"
	"flight-simulator/internal/game/easing"
	"flight-simulator/pkg/types"
)

// Per-tick constants tuned at 60Hz. Step rescales them by dt so the same
// laws hold at any achieved frame rate.
const (
	REFERENCE_HZ = 60.0

	PITCH_RATE    = 0.02 // rad per reference tick at full input
	PITCH_DECAY   = 0.96
	ROLL_COUPLING = 0.03 // rad per reference tick at full turn
	ROLL_DECAY    = 0.92
	MAX_YAW_RATE  = 0.6 // rad/s

	EARTH_RADIUS_M = 6_371_000.0

	// MAX_DELTA bounds a single integration step after a stall.
	MAX_DELTA = 0.1
)

// FlightState is the canonical aircraft record. Only Step and the
// navigation package produce new values.
type FlightState struct {
	Lat        float64 `msgpack:"lat"`
	Lng        float64 `msgpack:"lng"`
	AltitudeFt float64 `msgpack:"alt"`
	SpeedMps   float64 `msgpack:"speed"`

	Pitch   float64 `msgpack:"pitch"`
	Roll    float64 `msgpack:"roll"`
	Yaw     float64 `msgpack:"yaw"` // rad/s
	Heading float64 `msgpack:"heading"`

	Mode      types.FlightMode `msgpack:"mode"`
	Target    *types.LatLng    `msgpack:"target"`
	SpeedTier int              `msgpack:"tier"`
	Globe     bool             `msgpack:"globe"`
}

func NewFlightState(lat, lng, altitudeFt float64, tier int, heading float64) FlightState {
	tier = ClampTier(tier)
	t := Tiers[tier]
	return FlightState{
		Lat:        lat,
		Lng:        lng,
		AltitudeFt: easing.Clamp(altitudeFt, 0, t.MaxAltitudeFt),
		SpeedMps:   t.SpeedMps,
		Heading:    easing.WrapRadians(heading),
		Mode:       types.MANUAL,
		SpeedTier:  tier,
	}
}

func (s FlightState) Position() types.LatLng {
	return types.NewLatLng(s.Lat, s.Lng)
}

func (s FlightState) Tier() SpeedTier {
	return TierAt(s.SpeedTier)
}

// Step integrates one tick. dt is in seconds; NaN or negative dt returns s
// unchanged and dt above MAX_DELTA is treated as MAX_DELTA.
func Step(s FlightState, in controls.ControlFrameInput, dt float64) FlightState {
	dt = easing.SanitizeDelta(dt, MAX_DELTA)
	if dt == 0 {
		return s
	}
	ticks := dt * REFERENCE_HZ

	// Pitch
	if in.PitchInput != 0 {
		s.Pitch += in.PitchInput * PITCH_RATE * ticks
	} else {
		s.Pitch *= math.Pow(PITCH_DECAY, ticks)
	}

	// Yaw is a rate. Outside MANUAL the autopilot owns it unless the pilot
	// is actively turning.
	if in.YawInput != 0 || s.Mode == types.MANUAL {
		s.Yaw = easing.Clamp(in.YawInput, -1, 1) * MAX_YAW_RATE
	}
	turn := s.Yaw / MAX_YAW_RATE

	// Roll
	s.Roll += turn * ROLL_COUPLING * ticks
	s.Roll *= math.Pow(ROLL_DECAY, ticks)

	// Heading
	s.Heading = easing.WrapRadians(s.Heading + s.Yaw*dt)

	// Speed tier; speed and ceiling move together.
	if in.SpeedTierDelta != 0 {
		s.SpeedTier = ClampTier(s.SpeedTier + in.SpeedTierDelta)
	}
	tier := Tiers[ClampTier(s.SpeedTier)]
	s.SpeedMps = tier.SpeedMps

	// Altitude, hard clamped. Any easing is the camera's business.
	s.AltitudeFt = easing.Clamp(s.AltitudeFt+in.AltitudeDelta, 0, tier.MaxAltitudeFt)

	if in.ToggleGlobe {
		s.Globe = !s.Globe
	}

	// Position: small-angle planar approximation along the heading.
	distance := s.SpeedMps * dt
	dDeg := (distance / EARTH_RADIUS_M) * (180.0 / math.Pi)
	s.Lat += dDeg * math.Cos(s.Heading)
	cosLat := math.Cos(s.Lat * math.Pi / 180.0)
	if math.Abs(cosLat) > 1e-6 {
		s.Lng += dDeg * math.Sin(s.Heading) / cosLat
	}
	s.Lat = easing.Clamp(s.Lat, -89.9, 89.9)
	s.Lng = wrapLongitude(s.Lng)

	return s
}

func wrapLongitude(lng float64) float64 {
	if lng > -180 && lng <= 180 {
		return lng
	}
	return easing.WrapDegrees(lng)
}
