// Package replay records the per-tick inputs of a session and plays them
// back through a fresh simulation. Frames are msgpack encoded; files on disk
// are additionally zstd compressed.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"

	"flight-simulator/internal/game/controls"
	"flight-simulator/internal/game/simulation"
	"flight-simulator/pkg/types"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

const FORMAT_VERSION = 1

type Frame struct {
	Dt     float64                    `msgpack:"dt"`
	Input  controls.ControlFrameInput `msgpack:"in"`
	Target *types.LatLng              `msgpack:"target,omitempty"`
}

type header struct {
	Version int               `msgpack:"version"`
	Config  simulation.Config `msgpack:"config"`
}

type Recording struct {
	Config simulation.Config
	Frames []Frame
}

type Recorder struct {
	rec     Recording
	pending *types.LatLng
}

func NewRecorder(cfg simulation.Config) *Recorder {
	return &Recorder{rec: Recording{Config: cfg}}
}

// Target notes a click target; it is attached to the next recorded frame.
func (r *Recorder) Target(t types.LatLng) {
	r.pending = &t
}

func (r *Recorder) Record(dt float64, in controls.ControlFrameInput) {
	r.rec.Frames = append(r.rec.Frames, Frame{Dt: dt, Input: in, Target: r.pending})
	r.pending = nil
}

func (r *Recorder) Recording() Recording {
	return r.rec
}

func (r *Recorder) Len() int {
	return len(r.rec.Frames)
}

// Encode writes the header then one msgpack value per frame.
func Encode(w io.Writer, rec Recording) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(header{Version: FORMAT_VERSION, Config: rec.Config}); err != nil {
		return fmt.Errorf("failed to encode replay header: %w", err)
	}
	for i, f := range rec.Frames {
		if err := enc.Encode(&f); err != nil {
			return fmt.Errorf("failed to encode replay frame %d: %w", i, err)
		}
	}
	return nil
}

func Decode(r io.Reader) (Recording, error) {
	dec := msgpack.NewDecoder(r)

	var h header
	if err := dec.Decode(&h); err != nil {
		return Recording{}, fmt.Errorf("failed to decode replay header: %w", err)
	}
	if h.Version != FORMAT_VERSION {
		return Recording{}, fmt.Errorf("unsupported replay version %d", h.Version)
	}

	rec := Recording{Config: h.Config}
	for {
		var f Frame
		err := dec.Decode(&f)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Recording{}, fmt.Errorf("failed to decode replay frame %d: %w", len(rec.Frames), err)
		}
		rec.Frames = append(rec.Frames, f)
	}
	return rec, nil
}

func Save(path string, rec Recording) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create replay file: %w", err)
	}
	defer f.Close()

	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}
	defer zw.Close()

	if err := Encode(zw, rec); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to close zstd writer: %w", err)
	}
	return f.Close()
}

func Load(path string) (Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return Recording{}, fmt.Errorf("failed to open replay file: %w", err)
	}
	defer f.Close()

	zr, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return Recording{}, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer zr.Close()

	return Decode(zr)
}

// Run applies every frame to sim in order: target first, then the tick.
func Run(sim *simulation.Simulation, frames []Frame) {
	for _, f := range frames {
		if f.Target != nil {
			sim.AcquireTarget(*f.Target)
		}
		sim.Step(f.Dt, f.Input)
	}
}

// Play builds a fresh simulation from the recording's config and runs it.
func Play(rec Recording) *simulation.Simulation {
	sim := simulation.NewSimulation(rec.Config)
	Run(sim, rec.Frames)
	return sim
}

// Player feeds a recording into a simulation one frame per host tick.
type Player struct {
	frames []Frame
	pos    int
}

func NewPlayer(rec Recording) *Player {
	return &Player{frames: rec.Frames}
}

// Next applies the next frame and reports false once the recording ends.
func (p *Player) Next(sim *simulation.Simulation) bool {
	if p.Done() {
		return false
	}
	Run(sim, p.frames[p.pos:p.pos+1])
	p.pos++
	return true
}

func (p *Player) Done() bool {
	return p.pos >= len(p.frames)
}

// Progress is the fraction of frames already played.
func (p *Player) Progress() float64 {
	if len(p.frames) == 0 {
		return 1
	}
	return float64(p.pos) / float64(len(p.frames))
}
