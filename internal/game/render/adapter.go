package render

import (
	"flight-simulator/internal/game/aircraft"
	"flight-simulator/internal/game/camera"
	"flight-simulator/pkg/types"
)

// Pose is what the map engine's jump-to primitive accepts each tick.
type Pose struct {
	Center  types.LatLng
	Anchor  types.Vec2 // viewport pixel the center is pinned to
	Pitch   float64
	Bearing float64
	Zoom    float64
	Offset  types.Vec2
	Blend   float64
}

// ModelPose orients and places the 3D aircraft mesh.
type ModelPose struct {
	Position   types.LatLng
	AltitudeFt float64
	Pitch      float64
	Roll       float64
	Heading    float64
}

type MapEngine interface {
	SetProjection(p types.Projection)
	JumpTo(p Pose)
}

type ModelLayer interface {
	SetAircraft(p ModelPose)
}

// Adapter is the last step of a tick: it pushes already-derived state to
// the engine and model layer. Either may be nil.
type Adapter struct {
	Map   MapEngine
	Model ModelLayer
}

func NewAdapter(m MapEngine, model ModelLayer) *Adapter {
	return &Adapter{Map: m, Model: model}
}

func (a *Adapter) Push(cam camera.CameraState, flight aircraft.FlightState, switched bool) {
	if a == nil {
		return
	}
	if a.Map != nil {
		if switched {
			a.Map.SetProjection(cam.Projection)
		}
		a.Map.JumpTo(PoseFor(cam))
	}
	if a.Model != nil {
		a.Model.SetAircraft(ModelPoseFor(flight))
	}
}

func PoseFor(cam camera.CameraState) Pose {
	return Pose{
		Center:  cam.Focus,
		Anchor:  cam.Center,
		Pitch:   cam.Pitch,
		Bearing: cam.Bearing,
		Zoom:    cam.Zoom,
		Offset:  cam.Offset,
		Blend:   cam.GlobeBlend,
	}
}

func ModelPoseFor(flight aircraft.FlightState) ModelPose {
	return ModelPose{
		Position:   flight.Position(),
		AltitudeFt: flight.AltitudeFt,
		Pitch:      flight.Pitch,
		Roll:       flight.Roll,
		Heading:    flight.Heading,
	}
}
