package controls

type Action int

const (
	PITCH_UP Action = iota
	PITCH_DOWN
	YAW_LEFT
	YAW_RIGHT
	CLIMB
	DESCEND
	SPEED_UP
	SPEED_DOWN
	TOGGLE_GLOBE
	CANCEL_TARGET

	numActions
)

var ActionStringMap = map[Action]string{
	PITCH_UP:      "PITCH_UP",
	PITCH_DOWN:    "PITCH_DOWN",
	YAW_LEFT:      "YAW_LEFT",
	YAW_RIGHT:     "YAW_RIGHT",
	CLIMB:         "CLIMB",
	DESCEND:       "DESCEND",
	SPEED_UP:      "SPEED_UP",
	SPEED_DOWN:    "SPEED_DOWN",
	TOGGLE_GLOBE:  "TOGGLE_GLOBE",
	CANCEL_TARGET: "CANCEL_TARGET",
}

// ControlFrameInput is one tick's worth of input. It is built by Sample and
// consumed once by the integrator and navigation.
type ControlFrameInput struct {
	PitchInput     float64 `msgpack:"pitch"`
	YawInput       float64 `msgpack:"yaw"`
	AltitudeDelta  float64 `msgpack:"alt"` // feet
	SpeedTierDelta int     `msgpack:"tier"`
	ToggleGlobe    bool    `msgpack:"globe"`
	CancelTarget   bool    `msgpack:"cancel"`
}

// Aggregator collects raw press/release events between ticks. Held actions
// read as +-1 while down; edge actions latch until the next Sample.
type Aggregator struct {
	// ClimbFraction is the share of the current altitude ceiling covered per
	// second of held climb/descend.
	ClimbFraction float64

	held [numActions]bool
	// pressed since the previous Sample, so a tap shorter than a tick is
	// not lost
	tapped [numActions]bool

	tierSteps    int
	globePresses int
	cancel       bool
}

func NewAggregator(climbFraction float64) *Aggregator {
	if climbFraction <= 0 {
		climbFraction = 0.1
	}
	return &Aggregator{ClimbFraction: climbFraction}
}

func (a *Aggregator) Press(act Action) {
	if act < 0 || act >= numActions {
		return
	}
	if a.held[act] {
		// key repeat
		return
	}
	a.held[act] = true
	a.tapped[act] = true

	switch act {
	case SPEED_UP:
		a.tierSteps++
	case SPEED_DOWN:
		a.tierSteps--
	case TOGGLE_GLOBE:
		a.globePresses++
	case CANCEL_TARGET:
		a.cancel = true
	}
}

func (a *Aggregator) Release(act Action) {
	if act < 0 || act >= numActions {
		return
	}
	a.held[act] = false
}

// Held reports whether act is currently down.
func (a *Aggregator) Held(act Action) bool {
	if act < 0 || act >= numActions {
		return false
	}
	return a.held[act]
}

// PendingTierSteps is the signed tier change the next Sample will carry.
func (a *Aggregator) PendingTierSteps() int {
	return a.tierSteps
}

// Sample emits the input for one tick of length dt and resets the latches.
// ceilingFt scales the altitude rate so every tier climbs through its band
// in the same time.
func (a *Aggregator) Sample(dt, ceilingFt float64) ControlFrameInput {
	in := ControlFrameInput{
		PitchInput:     a.axis(PITCH_UP, PITCH_DOWN),
		YawInput:       a.axis(YAW_RIGHT, YAW_LEFT),
		SpeedTierDelta: a.tierSteps,
		ToggleGlobe:    a.globePresses%2 == 1,
		CancelTarget:   a.cancel,
	}
	if dt > 0 {
		in.AltitudeDelta = a.axis(CLIMB, DESCEND) * ceilingFt * a.ClimbFraction * dt
	}

	a.tapped = [numActions]bool{}
	a.tierSteps = 0
	a.globePresses = 0
	a.cancel = false
	return in
}

func (a *Aggregator) axis(pos, neg Action) float64 {
	v := 0.0
	if a.held[pos] || a.tapped[pos] {
		v++
	}
	if a.held[neg] || a.tapped[neg] {
		v--
	}
	return v
}
