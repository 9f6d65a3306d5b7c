package replay

import (
	"bytes"
	"path/filepath"
	"testing"

	"flight-simulator/internal/game/controls"
	"flight-simulator/internal/game/simulation"
	"flight-simulator/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func recordSession(t *testing.T) (*simulation.Simulation, Recording) {
	t.Helper()
	cfg := simulation.DefaultConfig()
	cfg.Start = types.NewLatLng(40.6413, -73.7781)

	sim := simulation.NewSimulation(cfg)
	rec := NewRecorder(cfg)
	sim.Observer = rec

	sim.Controls.Press(controls.SPEED_UP)
	sim.Controls.Press(controls.CLIMB)
	for i := 0; i < 30; i++ {
		sim.Update(1.0 / 60)
	}
	sim.Controls.Release(controls.CLIMB)
	sim.Controls.Release(controls.SPEED_UP)

	sim.AcquireTarget(types.NewLatLng(40.70, -73.70))
	sim.Update(0.5) // stall
	for i := 0; i < 45; i++ {
		sim.Update(1.0 / 30)
	}

	sim.Controls.Press(controls.YAW_LEFT)
	sim.Controls.Press(controls.TOGGLE_GLOBE)
	for i := 0; i < 20; i++ {
		sim.Update(1.0 / 60)
	}
	sim.Controls.Press(controls.CANCEL_TARGET)
	sim.Update(1.0 / 60)

	return sim, rec.Recording()
}

func TestRecorder_AttachesTargetToNextFrame(t *testing.T) {
	rec := NewRecorder(simulation.DefaultConfig())
	rec.Record(0.1, controls.ControlFrameInput{})
	rec.Target(types.NewLatLng(1, 2))
	rec.Record(0.1, controls.ControlFrameInput{YawInput: 1})
	rec.Record(0.1, controls.ControlFrameInput{})

	frames := rec.Recording().Frames
	require.Len(t, frames, 3)
	assert.Nil(t, frames[0].Target)
	require.NotNil(t, frames[1].Target)
	assert.Equal(t, types.NewLatLng(1, 2), *frames[1].Target)
	assert.Nil(t, frames[2].Target)
}

func TestRecorder_StallIsRecordedClamped(t *testing.T) {
	_, rec := recordSession(t)
	for _, f := range rec.Frames {
		assert.LessOrEqual(t, f.Dt, rec.Config.MaxDelta)
	}
}

func TestEncodeDecode_PlaybackMatchesLiveSession(t *testing.T) {
	live, rec := recordSession(t)
	require.Equal(t, live.Ticks, len(rec.Frames))

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, rec))

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	require.Len(t, decoded.Frames, len(rec.Frames))

	replayed := Play(decoded)
	assert.Equal(t, live.Flight, replayed.Flight)
	assert.Equal(t, live.Camera, replayed.Camera)
	assert.Equal(t, live.Clock, replayed.Clock)
	assert.Equal(t, types.MANUAL, replayed.Flight.Mode)
	assert.True(t, replayed.Flight.Globe)
}

func TestDecode_RejectsUnknownVersion(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, msgpack.NewEncoder(&buf).Encode(header{Version: 99}))

	_, err := Decode(&buf)
	assert.ErrorContains(t, err, "unsupported replay version")
}

func TestDecode_Truncated(t *testing.T) {
	_, err := Decode(bytes.NewReader(nil))
	assert.Error(t, err)
}

func TestPlayer_StepsOneFramePerCall(t *testing.T) {
	live, rec := recordSession(t)

	sim := simulation.NewSimulation(rec.Config)
	p := NewPlayer(rec)
	n := 0
	for p.Next(sim) {
		n++
	}

	assert.Equal(t, len(rec.Frames), n)
	assert.True(t, p.Done())
	assert.Equal(t, 1.0, p.Progress())
	assert.False(t, p.Next(sim))
	assert.Equal(t, live.Flight, sim.Flight)
}

func TestSaveLoad(t *testing.T) {
	live, rec := recordSession(t)
	path := filepath.Join(t.TempDir(), "session.replay")

	require.NoError(t, Save(path, rec))
	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, rec.Config, loaded.Config)
	assert.Equal(t, live.Flight, Play(loaded).Flight)

	_, err = Load(filepath.Join(t.TempDir(), "missing.replay"))
	assert.ErrorContains(t, err, "failed to open replay file")
}
