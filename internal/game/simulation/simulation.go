package simulation

import (
	"flight-simulator/internal/game/aircraft"
	"flight-simulator/internal/game/camera"
	"flight-simulator/internal/game/controls"
	"flight-simulator/internal/game/easing"
	"flight-simulator/internal/game/navigation"
	"flight-simulator/internal/game/render"
	"flight-simulator/pkg/types"

	"github.com/labstack/gommon/log"
)

type Config struct {
	TickRate      float64
	MaxDelta      float64
	TrailPoints   int
	ClimbFraction float64
	Viewport      types.Vec2

	ProjectionDuration float64

	Start      types.LatLng
	AltitudeFt float64
	SpeedTier  int
	HeadingDeg float64
	Globe      bool
}

func DefaultConfig() Config {
	return Config{
		TickRate:      60,
		MaxDelta:      aircraft.MAX_DELTA,
		TrailPoints:   600,
		ClimbFraction: 0.1,
		Viewport:      types.NewVec2(1024, 768),

		ProjectionDuration: camera.PROJECTION_DURATION,

		Start:      types.NewLatLng(32.0853, 34.7818),
		AltitudeFt: 400,
		SpeedTier:  0,
	}
}

// TickObserver sees every applied tick input and every click target, in the
// order the simulation consumes them.
type TickObserver interface {
	Target(t types.LatLng)
	Record(dt float64, in controls.ControlFrameInput)
}

// Simulation owns the per-session state and runs one tick in a fixed order:
// input sampling, integration, navigation, camera, trail, render push.
type Simulation struct {
	Flight   aircraft.FlightState
	Camera   camera.CameraState
	Nav      *navigation.Navigator
	Controls *controls.Aggregator
	Trail    *Trail
	Adapter  *render.Adapter
	Observer TickObserver

	TickRate float64
	MaxDelta float64
	Viewport types.Vec2

	// Clock is simulation time in seconds, advanced by clamped deltas.
	Clock float64
	Ticks int
}

func NewSimulation(cfg Config) *Simulation {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if cfg.MaxDelta <= 0 || cfg.MaxDelta > aircraft.MAX_DELTA {
		cfg.MaxDelta = aircraft.MAX_DELTA
	}

	flight := aircraft.NewFlightState(cfg.Start.Lat, cfg.Start.Lng, cfg.AltitudeFt, cfg.SpeedTier, easing.Radians(cfg.HeadingDeg))
	flight.Globe = cfg.Globe

	cam := camera.New(flight, cfg.Viewport, 0)
	cam.ProjectionDuration = cfg.ProjectionDuration

	s := &Simulation{
		Flight:   flight,
		Camera:   cam,
		Nav:      navigation.NewNavigator(nil),
		Controls: controls.NewAggregator(cfg.ClimbFraction),
		Trail:    NewTrail(cfg.TrailPoints),
		TickRate: cfg.TickRate,
		MaxDelta: cfg.MaxDelta,
		Viewport: cfg.Viewport,
	}
	s.Trail.Add(flight.Position(), s.Clock)

	log.Infof("Simulation started at (%.4f, %.4f), %s, %.0f ft",
		flight.Lat, flight.Lng, flight.Tier().Label, flight.AltitudeFt)
	return s
}

// Attach wires the render side and pushes the current state once, so the
// engine starts on the session's projection. The navigator's marker sink is
// attached separately through Nav.Sink.
func (s *Simulation) Attach(a *render.Adapter) {
	s.Adapter = a
	s.Adapter.Push(s.Camera, s.Flight, true)
}

// Update is the host's per-frame entry point. dt is clamped before any
// integration runs. A zero-length frame is a no-op and keeps pending
// presses for the next tick.
func (s *Simulation) Update(dt float64) {
	dt = s.clampDelta(dt)
	if dt == 0 {
		return
	}
	// The climb rate follows the tier this tick ends on.
	tier := s.Flight.SpeedTier + s.Controls.PendingTierSteps()
	in := s.Controls.Sample(dt, aircraft.Ceiling(tier))
	s.step(dt, in)
}

// Step runs one tick with an explicit input, bypassing the aggregator. An
// invalid delta drops the tick entirely.
func (s *Simulation) Step(dt float64, in controls.ControlFrameInput) {
	dt = s.clampDelta(dt)
	if dt == 0 {
		return
	}
	s.step(dt, in)
}

func (s *Simulation) clampDelta(dt float64) float64 {
	clamped := easing.SanitizeDelta(dt, s.MaxDelta)
	if clamped != dt {
		log.Debugf("frame delta %.3fs clamped to %.3fs", dt, clamped)
	}
	return clamped
}

func (s *Simulation) step(dt float64, in controls.ControlFrameInput) {
	if s.Observer != nil {
		s.Observer.Record(dt, in)
	}
	s.Clock += dt
	s.Ticks++

	prevTier := s.Flight.SpeedTier
	prevGlobe := s.Flight.Globe

	s.Flight = aircraft.Step(s.Flight, in, dt)
	s.Flight = s.Nav.Evaluate(s.Flight, in)

	var switched bool
	s.Camera, switched = camera.Step(s.Camera, s.Flight, s.Clock, s.Viewport)

	if s.Flight.SpeedTier != prevTier {
		log.Infof("Speed tier %s, ceiling %.0f ft", s.Flight.Tier().Label, s.Flight.Tier().MaxAltitudeFt)
	}
	if s.Flight.Globe != prevGlobe {
		log.Infof("Projection requested: %s", types.ProjectionFor(s.Flight.Globe))
	}
	if switched {
		log.Infof("Projection applied: %s", s.Camera.Projection)
	}

	if dt > 0 {
		s.Trail.Add(s.Flight.Position(), s.Clock)
	}
	s.Adapter.Push(s.Camera, s.Flight, switched)
}

// AcquireTarget handles a click/tap on the map.
func (s *Simulation) AcquireTarget(target types.LatLng) {
	if s.Observer != nil {
		s.Observer.Target(target)
	}
	s.Flight = s.Nav.Acquire(s.Flight, target)
}

// Resize updates the viewport the camera centers on.
func (s *Simulation) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.Viewport = types.NewVec2(float64(width), float64(height))
}

// FixedDelta is the nominal tick length for the configured rate.
func (s *Simulation) FixedDelta() float64 {
	return 1.0 / s.TickRate
}
