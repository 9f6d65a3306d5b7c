package aircraft

import (
	"math"
	"testing"

	"flight-simulator/internal/game/controls"
	"flight-simulator/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = 1.0 / 60

func TestTiers(t *testing.T) {
	require.Len(t, Tiers, 7)
	assert.Equal(t, 100.0, TierAt(-5).SpeedMps)
	assert.Equal(t, 17_150.0, TierAt(42).SpeedMps)
	assert.Equal(t, 45_000.0, Ceiling(3))
	assert.Equal(t, 17_150.0, TopSpeedMps())
	assert.Equal(t, 100_000.0, TopAltitudeFt())

	i, ok := TierIndex("MACH20")
	require.True(t, ok)
	assert.Equal(t, 5, i)
	_, ok = TierIndex("warp")
	assert.False(t, ok)
}

func TestNewFlightState_ClampsAltitude(t *testing.T) {
	s := NewFlightState(10, 20, 9_000, 1, -math.Pi/2)
	assert.Equal(t, 5_000.0, s.AltitudeFt)
	assert.Equal(t, 500.0, s.SpeedMps)
	assert.Equal(t, types.MANUAL, s.Mode)
	assert.Nil(t, s.Target)
	assert.InDelta(t, 3*math.Pi/2, s.Heading, 1e-12)
}

func TestStep_TierChangeClampsAltitudeSameTick(t *testing.T) {
	s := NewFlightState(0, 0, 40_000, 3, 0)
	require.Equal(t, "5000", s.Tier().ID)

	s = Step(s, controls.ControlFrameInput{SpeedTierDelta: -1}, tick)

	assert.Equal(t, "1000", s.Tier().ID)
	assert.Equal(t, 1_000.0, s.SpeedMps)
	assert.Equal(t, 15_000.0, s.AltitudeFt)
}

func TestStep_TierDeltaClampsAtEnds(t *testing.T) {
	s := NewFlightState(0, 0, 0, 0, 0)
	s = Step(s, controls.ControlFrameInput{SpeedTierDelta: -3}, tick)
	assert.Equal(t, 0, s.SpeedTier)

	s = Step(s, controls.ControlFrameInput{SpeedTierDelta: 100}, tick)
	assert.Equal(t, MAX_TIER, s.SpeedTier)
	assert.Equal(t, 17_150.0, s.SpeedMps)
}

func TestStep_AltitudeInvariant(t *testing.T) {
	s := NewFlightState(0, 0, 0, 2, 0)
	inputs := []controls.ControlFrameInput{
		{AltitudeDelta: 1e6},
		{AltitudeDelta: -1e6},
		{AltitudeDelta: 20_000, SpeedTierDelta: 2},
		{SpeedTierDelta: -4},
		{AltitudeDelta: 300, SpeedTierDelta: 6},
		{AltitudeDelta: 1e5},
		{SpeedTierDelta: -1},
	}
	for i, in := range inputs {
		s = Step(s, in, tick)
		assert.GreaterOrEqual(t, s.AltitudeFt, 0.0, "step %d", i)
		assert.LessOrEqual(t, s.AltitudeFt, Ceiling(s.SpeedTier), "step %d", i)
		assert.Equal(t, TierAt(s.SpeedTier).SpeedMps, s.SpeedMps, "step %d", i)
	}
}

func TestStep_RollDecayLaw(t *testing.T) {
	s := NewFlightState(0, 0, 0, 0, 0)
	s.Roll = 0.4
	roll0 := s.Roll

	for n := 1; n <= 30; n++ {
		s = Step(s, controls.ControlFrameInput{}, tick)
		assert.InDelta(t, roll0*math.Pow(0.92, float64(n)), s.Roll, 1e-9, "tick %d", n)
	}
}

func TestStep_RollDecayIsFrameRateIndependent(t *testing.T) {
	a := NewFlightState(0, 0, 0, 0, 0)
	a.Roll = 0.4
	b := a

	for i := 0; i < 60; i++ {
		a = Step(a, controls.ControlFrameInput{}, 1.0/60)
	}
	for i := 0; i < 30; i++ {
		b = Step(b, controls.ControlFrameInput{}, 1.0/30)
	}
	assert.InDelta(t, a.Roll, b.Roll, 1e-9)
}

func TestStep_PitchAutoLevel(t *testing.T) {
	s := NewFlightState(0, 0, 0, 0, 0)
	s.Pitch = -0.3

	prev := math.Abs(s.Pitch)
	for i := 0; i < 200; i++ {
		s = Step(s, controls.ControlFrameInput{}, tick)
		cur := math.Abs(s.Pitch)
		assert.Less(t, cur, prev)
		prev = cur
	}
	assert.Less(t, prev, 0.3*0.001)
	assert.Negative(t, s.Pitch)
}

func TestStep_PitchInputAccumulates(t *testing.T) {
	s := NewFlightState(0, 0, 0, 0, 0)
	s = Step(s, controls.ControlFrameInput{PitchInput: 1}, tick)
	s = Step(s, controls.ControlFrameInput{PitchInput: 1}, tick)
	assert.InDelta(t, 2*PITCH_RATE, s.Pitch, 1e-12)
}

func TestStep_YawIsRateAndBanks(t *testing.T) {
	s := NewFlightState(0, 0, 0, 0, 0)
	s = Step(s, controls.ControlFrameInput{YawInput: 1}, 0.05)

	assert.Equal(t, MAX_YAW_RATE, s.Yaw)
	assert.InDelta(t, MAX_YAW_RATE*0.05, s.Heading, 1e-12)
	assert.Positive(t, s.Roll)

	s = Step(s, controls.ControlFrameInput{}, 0.05)
	assert.Equal(t, 0.0, s.Yaw)
	assert.InDelta(t, MAX_YAW_RATE*0.05, s.Heading, 1e-12)
}

func TestStep_HeadingWraps(t *testing.T) {
	s := NewFlightState(0, 0, 0, 0, 2*math.Pi-0.01)
	s = Step(s, controls.ControlFrameInput{YawInput: 1}, 0.1)
	assert.GreaterOrEqual(t, s.Heading, 0.0)
	assert.Less(t, s.Heading, 0.06)
}

func TestStep_AutopilotYawKeptOutsideManual(t *testing.T) {
	s := NewFlightState(0, 0, 0, 0, 0)
	s.Mode = types.NAVIGATE
	s.Target = &types.LatLng{Lat: 1, Lng: 1}
	s.Yaw = 0.25

	s = Step(s, controls.ControlFrameInput{}, tick)
	assert.Equal(t, 0.25, s.Yaw)

	s = Step(s, controls.ControlFrameInput{YawInput: -1}, tick)
	assert.Equal(t, -MAX_YAW_RATE, s.Yaw)
}

func TestStep_PositionSmallAngle(t *testing.T) {
	// Due north at 1000 m/s for 0.1 s.
	s := NewFlightState(0, 0, 0, 2, 0)
	s = Step(s, controls.ControlFrameInput{}, 0.1)
	want := (100.0 / EARTH_RADIUS_M) * (180 / math.Pi)
	assert.InDelta(t, want, s.Lat, 1e-12)
	assert.InDelta(t, 0, s.Lng, 1e-12)

	// Due east at 60 degrees latitude covers twice the longitude.
	e := NewFlightState(60, 0, 0, 2, math.Pi/2)
	e = Step(e, controls.ControlFrameInput{}, 0.1)
	assert.InDelta(t, 2*want, e.Lng, 1e-9)
}

func TestStep_StalledFrameIsBounded(t *testing.T) {
	s := NewFlightState(0, 0, 0, MAX_TIER, math.Pi/2)
	s = Step(s, controls.ControlFrameInput{}, 5)

	maxDeg := (17_150.0 * MAX_DELTA / EARTH_RADIUS_M) * (180 / math.Pi)
	assert.InDelta(t, maxDeg, s.Lng, 1e-9)
}

func TestStep_InvalidDeltaIsNoOp(t *testing.T) {
	s := NewFlightState(5, 5, 100, 1, 1)
	s.Roll = 0.3
	in := controls.ControlFrameInput{PitchInput: 1, YawInput: 1, AltitudeDelta: 50, SpeedTierDelta: 1}

	assert.Equal(t, s, Step(s, in, math.NaN()))
	assert.Equal(t, s, Step(s, in, -0.5))
	assert.Equal(t, s, Step(s, in, 0))
}

func TestStep_ToggleGlobe(t *testing.T) {
	s := NewFlightState(0, 0, 0, 0, 0)
	s = Step(s, controls.ControlFrameInput{ToggleGlobe: true}, tick)
	assert.True(t, s.Globe)
	s = Step(s, controls.ControlFrameInput{}, tick)
	assert.True(t, s.Globe)
	s = Step(s, controls.ControlFrameInput{ToggleGlobe: true}, tick)
	assert.False(t, s.Globe)
}
