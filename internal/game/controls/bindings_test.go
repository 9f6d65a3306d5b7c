package controls

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyTracker_EdgesOnly(t *testing.T) {
	agg := NewAggregator(0.1)
	kt := NewKeyTracker(map[string]Action{
		"w":  PITCH_UP,
		"up": PITCH_UP,
		"g":  TOGGLE_GLOBE,
	})

	keys := map[string]bool{"w": true, "g": true}
	isDown := func(k string) bool { return keys[k] }

	// Held across several polls: one press for the edge action.
	kt.Poll(agg, isDown)
	kt.Poll(agg, isDown)
	kt.Poll(agg, isDown)
	in := agg.Sample(1.0/60, 500)
	assert.Equal(t, 1.0, in.PitchInput)
	assert.True(t, in.ToggleGlobe)

	// Second key for the same action keeps it held after the first lifts.
	keys["up"] = true
	kt.Poll(agg, isDown)
	keys["w"] = false
	kt.Poll(agg, isDown)
	assert.True(t, agg.Held(PITCH_UP))

	keys["up"] = false
	kt.Poll(agg, isDown)
	assert.False(t, agg.Held(PITCH_UP))
	assert.True(t, agg.Held(TOGGLE_GLOBE))
}

func TestKeyTracker_ReleaseAll(t *testing.T) {
	agg := NewAggregator(0.1)
	kt := NewKeyTracker(map[int]Action{1: YAW_LEFT, 2: CLIMB})

	kt.Poll(agg, func(int) bool { return true })
	assert.True(t, agg.Held(YAW_LEFT))
	assert.True(t, agg.Held(CLIMB))

	kt.ReleaseAll(agg)
	assert.False(t, agg.Held(YAW_LEFT))
	assert.False(t, agg.Held(CLIMB))

	in := agg.Sample(1.0/60, 500)
	assert.Equal(t, -1.0, in.YawInput, "tap before release still counts for one sample")
	in = agg.Sample(1.0/60, 500)
	assert.Zero(t, in.YawInput)
}
