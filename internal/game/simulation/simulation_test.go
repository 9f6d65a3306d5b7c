package simulation

import (
	"math"
	"testing"

	"flight-simulator/internal/game/aircraft"
	"flight-simulator/internal/game/controls"
	"flight-simulator/internal/game/render"
	"flight-simulator/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	projections []types.Projection
	jumps       int
}

func (f *fakeEngine) SetProjection(p types.Projection) { f.projections = append(f.projections, p) }
func (f *fakeEngine) JumpTo(render.Pose)               { f.jumps++ }

type countingObserver struct {
	frames int
}

func (c *countingObserver) Target(types.LatLng)                        {}
func (c *countingObserver) Record(float64, controls.ControlFrameInput) { c.frames++ }

func newTestSimulation(t *testing.T) *Simulation {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Start = types.NewLatLng(10, 20)
	return NewSimulation(cfg)
}

func TestUpdate_StalledFrameIsClamped(t *testing.T) {
	sim := newTestSimulation(t)
	start := sim.Flight.Position()

	sim.Update(5)

	assert.InDelta(t, aircraft.MAX_DELTA, sim.Clock, 1e-12)
	want := sim.Flight.SpeedMps * aircraft.MAX_DELTA / aircraft.EARTH_RADIUS_M * 180 / math.Pi
	assert.InDelta(t, want, start.DistanceDeg(sim.Flight.Position()), 1e-9)
}

func TestUpdate_ZeroDeltaKeepsPendingPresses(t *testing.T) {
	sim := newTestSimulation(t)
	sim.Controls.Press(controls.SPEED_UP)

	sim.Update(0)
	sim.Update(math.NaN())
	assert.Equal(t, 0, sim.Flight.SpeedTier)
	assert.Zero(t, sim.Ticks)

	sim.Update(1.0 / 60)
	assert.Equal(t, 1, sim.Flight.SpeedTier)
	assert.Equal(t, aircraft.Tiers[1].SpeedMps, sim.Flight.SpeedMps)
}

func TestStep_InvalidDeltaDropsTick(t *testing.T) {
	sim := newTestSimulation(t)
	obs := &countingObserver{}
	sim.Observer = obs
	sim.AcquireTarget(types.NewLatLng(11, 21))
	before := sim.Flight

	in := controls.ControlFrameInput{CancelTarget: true, SpeedTierDelta: 1, ToggleGlobe: true}
	for _, dt := range []float64{math.NaN(), -1, 0, math.Inf(-1)} {
		sim.Step(dt, in)
	}

	assert.Zero(t, obs.frames)
	assert.Zero(t, sim.Ticks)
	assert.Zero(t, sim.Clock)
	assert.Equal(t, before, sim.Flight)
	assert.Equal(t, types.NAVIGATE, sim.Flight.Mode)
	assert.NotNil(t, sim.Nav.Marker())
}

func TestUpdate_ClimbUsesCeilingOfNewTier(t *testing.T) {
	sim := newTestSimulation(t)
	start := sim.Flight.AltitudeFt
	sim.Controls.Press(controls.SPEED_UP)
	sim.Controls.Press(controls.CLIMB)

	sim.Update(1.0 / 60)

	require.Equal(t, 1, sim.Flight.SpeedTier)
	want := start + aircraft.Ceiling(1)*sim.Controls.ClimbFraction/60
	assert.InDelta(t, want, sim.Flight.AltitudeFt, 1e-9)
}

func TestAcquireThenCancel(t *testing.T) {
	sim := newTestSimulation(t)

	sim.AcquireTarget(types.NewLatLng(11, 21))
	sim.Update(1.0 / 60)
	require.Equal(t, types.NAVIGATE, sim.Flight.Mode)
	require.NotNil(t, sim.Flight.Target)
	require.NotNil(t, sim.Nav.Marker())

	sim.Controls.Press(controls.CANCEL_TARGET)
	sim.Update(1.0 / 60)
	assert.Equal(t, types.MANUAL, sim.Flight.Mode)
	assert.Nil(t, sim.Flight.Target)
	assert.Nil(t, sim.Nav.Marker())
}

func TestAcquireAtPositionEntersOrbit(t *testing.T) {
	sim := newTestSimulation(t)

	sim.AcquireTarget(sim.Flight.Position())
	sim.Update(1.0 / 60)

	assert.Equal(t, types.ORBIT, sim.Flight.Mode)
	require.NotNil(t, sim.Flight.Target)

	for i := 0; i < 120; i++ {
		sim.Update(1.0 / 60)
		require.Equal(t, types.ORBIT, sim.Flight.Mode)
		require.NotNil(t, sim.Flight.Target)
	}
}

func TestUpdate_ProjectionSwitchPushedOnce(t *testing.T) {
	sim := newTestSimulation(t)
	eng := &fakeEngine{}
	sim.Attach(render.NewAdapter(eng, nil))

	sim.Controls.Press(controls.TOGGLE_GLOBE)
	for i := 0; i < 90; i++ {
		sim.Update(1.0 / 60)
	}

	assert.True(t, sim.Flight.Globe)
	assert.Equal(t, types.GLOBE, sim.Camera.Projection)
	assert.Equal(t, []types.Projection{types.FLAT, types.GLOBE}, eng.projections)
	assert.Equal(t, 91, eng.jumps)
}

func TestUpdate_TrailIsBounded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TrailPoints = 5
	sim := NewSimulation(cfg)

	for i := 0; i < 20; i++ {
		sim.Update(1.0 / 60)
	}

	assert.Equal(t, 5, sim.Trail.Len())
	last, ok := sim.Trail.Last()
	require.True(t, ok)
	assert.Equal(t, sim.Clock, last.Clock)
	assert.Equal(t, sim.Flight.Position(), last.Position)
}

func TestNewSimulation_ClampsConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TickRate = 0
	cfg.MaxDelta = 3
	cfg.SpeedTier = 99
	cfg.AltitudeFt = 1e9

	sim := NewSimulation(cfg)

	assert.Equal(t, 60.0, sim.TickRate)
	assert.Equal(t, aircraft.MAX_DELTA, sim.MaxDelta)
	assert.Equal(t, aircraft.MAX_TIER, sim.Flight.SpeedTier)
	assert.LessOrEqual(t, sim.Flight.AltitudeFt, aircraft.Ceiling(sim.Flight.SpeedTier))
}

func TestTrail_MinimumCapacity(t *testing.T) {
	tr := NewTrail(0)
	tr.Add(types.NewLatLng(1, 1), 1)
	tr.Add(types.NewLatLng(2, 2), 2)

	assert.Equal(t, 1, tr.Len())
	last, _ := tr.Last()
	assert.Equal(t, 2.0, last.Clock)

	tr.Clear()
	_, ok := tr.Last()
	assert.False(t, ok)
}
