package camera

import (
	"math"

	"flight-simulator/internal/game/aircraft"
	"flight-simulator/internal/game/easing"
	"flight-simulator/pkg/types"
)

const (
	// MAX_DELTA caps the camera's own wall-clock delta so a stalled frame
	// cannot jump the smoothing state.
	MAX_DELTA = 0.1

	PROJECTION_DURATION = 0.9

	MIN_PITCH = 45.0
	MAX_PITCH = 88.0
	MIN_ZOOM  = 3.2
	MAX_ZOOM  = 12.0

	BASE_OFFSET_PX  = 40.0
	ALT_OFFSET_PX   = 160.0
	GLOBE_OFFSET_PX = 80.0
)

type CameraState struct {
	Focus   types.LatLng `msgpack:"focus"`
	Center  types.Vec2   `msgpack:"center"` // viewport pixels
	Pitch   float64      `msgpack:"pitch"`  // degrees
	Bearing float64      `msgpack:"bearing"`
	Zoom    float64      `msgpack:"zoom"`
	Offset  types.Vec2   `msgpack:"offset"` // pixels, forward of center

	Projection          types.Projection `msgpack:"projection"`
	TargetProjection    types.Projection `msgpack:"targetProjection"`
	ProjectionStartedAt float64          `msgpack:"projectionStartedAt"`
	GlobeBlend          float64          `msgpack:"globeBlend"`
	// ProjectionDuration overrides PROJECTION_DURATION when positive.
	ProjectionDuration  float64          `msgpack:"projectionDuration"`

	LastUpdate float64 `msgpack:"lastUpdate"`
}

// New builds the session camera already settled on the aircraft, so the
// first frames do not sweep in from a zero pose.
func New(flight aircraft.FlightState, viewport types.Vec2, now float64) CameraState {
	proj := types.ProjectionFor(flight.Globe)
	blend := 0.0
	if proj == types.GLOBE {
		blend = 1
	}
	c := CameraState{
		Focus:               flight.Position(),
		Center:              types.NewVec2(viewport.X/2, viewport.Y/2),
		Projection:          proj,
		TargetProjection:    proj,
		ProjectionStartedAt: now,
		GlobeBlend:          blend,
		LastUpdate:          now,
	}
	t := targetsFor(flight, blend)
	c.Pitch, c.Zoom, c.Bearing, c.Offset = t.pitch, t.zoom, t.bearing, t.offset
	return c
}

type targets struct {
	pitch, zoom, bearing float64
	offset               types.Vec2
}

func targetsFor(flight aircraft.FlightState, blend float64) targets {
	altFactor := easing.Clamp(flight.AltitudeFt/aircraft.TopAltitudeFt(), 0, 1)
	speedFactor := easing.Clamp(flight.SpeedMps/aircraft.TopSpeedMps(), 0, 1)

	mag := BASE_OFFSET_PX + altFactor*ALT_OFFSET_PX + blend*GLOBE_OFFSET_PX
	return targets{
		pitch:   easing.Clamp(55+altFactor*25+speedFactor*8+blend*6, MIN_PITCH, MAX_PITCH),
		zoom:    easing.Clamp(12-altFactor*7-speedFactor*2-blend*1.8, MIN_ZOOM, MAX_ZOOM),
		bearing: easing.WrapDegrees(easing.Degrees(flight.Heading)),
		offset:  types.NewVec2(mag*math.Sin(flight.Heading), mag*math.Cos(flight.Heading)),
	}
}

// Step advances the camera toward targets derived from the post-integration
// flight state. now is the simulation clock in seconds. The returned bool is
// true on the one tick where the engine projection should switch; Step
// itself never touches the engine.
func Step(c CameraState, flight aircraft.FlightState, now float64, viewport types.Vec2) (CameraState, bool) {
	dt := easing.SanitizeDelta(now-c.LastUpdate, MAX_DELTA)
	if !math.IsNaN(now) && now > c.LastUpdate {
		c.LastUpdate = now
	}
	if viewport.X > 0 && viewport.Y > 0 {
		c.Center = types.NewVec2(viewport.X/2, viewport.Y/2)
	}

	// Projection retarget restarts the timer only on an actual flip.
	desired := types.ProjectionFor(flight.Globe)
	if desired != c.TargetProjection {
		c.TargetProjection = desired
		c.ProjectionStartedAt = c.LastUpdate
	}
	goal := 0.0
	if c.TargetProjection == types.GLOBE {
		goal = 1
	}
	c.GlobeBlend = easing.Clamp(SmoothScalar(c.GlobeBlend, goal, dt), 0, 1)

	switched := false
	if c.Projection != c.TargetProjection && c.LastUpdate-c.ProjectionStartedAt >= c.projectionDuration() {
		c.Projection = c.TargetProjection
		switched = true
	}

	focus := flight.Position()
	if flight.Mode == types.ORBIT && flight.Target != nil {
		focus = *flight.Target
	}
	c.Focus.Lat = SmoothScalar(c.Focus.Lat, focus.Lat, dt)
	c.Focus.Lng = SmoothAngle(c.Focus.Lng, focus.Lng, dt)

	t := targetsFor(flight, c.GlobeBlend)
	c.Pitch = SmoothScalar(c.Pitch, t.pitch, dt)
	c.Zoom = SmoothScalar(c.Zoom, t.zoom, dt)
	c.Bearing = SmoothAngle(c.Bearing, t.bearing, dt)
	c.Offset = SmoothVec(c.Offset, t.offset, dt)

	return c, switched
}

func (c CameraState) projectionDuration() float64 {
	if c.ProjectionDuration > 0 {
		return c.ProjectionDuration
	}
	return PROJECTION_DURATION
}

// blendWeight is 0 for a zero-length tick and otherwise eases from 0.12
// toward 0.48 as more time has elapsed.
func blendWeight(dt float64) float64 {
	if !(dt > 0) {
		return 0
	}
	return 0.12 + 0.36*easing.EaseInOutCubic(easing.Clamp(dt*4, 0, 1))
}

func SmoothScalar(current, target, dt float64) float64 {
	w := blendWeight(dt)
	if w == 0 {
		return current
	}
	return current + (target-current)*w
}

// SmoothAngle blends in degrees along the short way round and returns a
// result in (-180, 180].
func SmoothAngle(current, target, dt float64) float64 {
	w := blendWeight(dt)
	if w == 0 {
		return current
	}
	diff := easing.WrapDegrees(target - current)
	return easing.WrapDegrees(current + diff*w)
}

func SmoothVec(current, target types.Vec2, dt float64) types.Vec2 {
	return types.NewVec2(
		SmoothScalar(current.X, target.X, dt),
		SmoothScalar(current.Y, target.Y, dt),
	)
}
