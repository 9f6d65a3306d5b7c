package ui

import (
	"image/color"
	"math"

	"flight-simulator/internal/game/airspace"
	"flight-simulator/internal/game/easing"
	"flight-simulator/internal/game/navigation"
	"flight-simulator/internal/game/render"
	"flight-simulator/internal/game/simulation"
	"flight-simulator/pkg/types"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/labstack/gommon/log"
)

const (
	GRATICULE_LINES   = 12
	GRATICULE_SAMPLES = 24
	AIRCRAFT_SIZE_PX  = 14.0
)

var (
	flatBackground  = color.RGBA{12, 24, 40, 255}
	globeBackground = color.RGBA{0, 0, 0, 255}
	globeDisc       = color.RGBA{14, 30, 52, 255}
	graticuleColor  = color.RGBA{40, 70, 100, 255}
	trailColor      = color.RGBA{255, 200, 0, 180}
	markerColor     = color.RGBA{255, 60, 60, 255}
	aircraftColor   = color.RGBA{255, 255, 255, 255}
	airportColor    = color.RGBA{0, 255, 255, 255}
	waypointColor   = color.RGBA{0, 160, 160, 255}
)

// MapView is a minimal map engine: it keeps the last pose it was told to
// jump to and draws a graticule, the trail, the target marker and the
// aircraft from it. Right-drag pans the view without touching navigation.
type MapView struct {
	Airspace *airspace.Airspace

	pose       render.Pose
	projection types.Projection
	aircraft   render.ModelPose
	marker     *navigation.Marker

	pan                  types.Vec2
	panStartX, panStartY int
}

func NewMapView(as *airspace.Airspace) *MapView {
	return &MapView{Airspace: as}
}

func (v *MapView) SetProjection(p types.Projection) {
	v.projection = p
	log.Debugf("map projection set to %s", p)
}

func (v *MapView) JumpTo(p render.Pose) {
	v.pose = p
}

func (v *MapView) SetAircraft(p render.ModelPose) {
	v.aircraft = p
}

func (v *MapView) PlaceMarker(m navigation.Marker) {
	v.marker = &m
}

func (v *MapView) RemoveMarker(id int) {
	if v.marker != nil && v.marker.ID == id {
		v.marker = nil
	}
}

func (v *MapView) Projection() types.Projection {
	return v.projection
}

func (v *MapView) viewPose() render.Pose {
	p := v.pose
	p.Anchor = p.Anchor.Add(v.pan)
	return p
}

// HandlePan applies right-button drag and resets the pan on middle click.
func (v *MapView) HandlePan() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		v.pan = types.Vec2{}
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		return
	}

	x, y := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		v.panStartX, v.panStartY = x, y
		return
	}
	v.pan = v.pan.Add(types.NewVec2(float64(x-v.panStartX), float64(y-v.panStartY)))
	v.panStartX, v.panStartY = x, y
}

// ScreenToLatLng converts a cursor position into a click target. Points off
// the map are rejected here and never reach navigation.
func (v *MapView) ScreenToLatLng(x, y int) (types.LatLng, bool) {
	p, ok := render.Unproject(v.viewPose(), types.NewVec2(float64(x), float64(y)))
	if !ok || !p.Valid() {
		return types.LatLng{}, false
	}
	return p, true
}

func (v *MapView) Draw(screen *ebiten.Image, trail []simulation.TrailPoint) {
	pose := v.viewPose()

	if pose.Blend > 0 {
		screen.Fill(globeBackground)
		r := float32(render.GlobeRadius(pose.Zoom) * pose.Blend)
		c := pose.Anchor.Add(pose.Offset)
		vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), r, globeDisc, true)
	} else {
		screen.Fill(flatBackground)
	}

	v.drawGraticule(screen, pose)
	v.drawAirspace(screen, pose)
	v.drawTrail(screen, pose, trail)

	if v.marker != nil {
		if px, ok := render.Project(pose, v.marker.Position); ok {
			vector.StrokeCircle(screen, float32(px.X), float32(px.Y), 8, 2, markerColor, true)
			vector.DrawFilledCircle(screen, float32(px.X), float32(px.Y), 2, markerColor, true)
		}
	}

	v.drawAircraft(screen, pose)
}

func (v *MapView) drawGraticule(screen *ebiten.Image, pose render.Pose) {
	step := graticuleStep(pose.Zoom)
	lat0 := math.Round(pose.Center.Lat/step) * step
	lng0 := math.Round(pose.Center.Lng/step) * step
	span := step * GRATICULE_LINES

	for i := -GRATICULE_LINES; i <= GRATICULE_LINES; i++ {
		lat := lat0 + float64(i)*step
		if lat >= -85 && lat <= 85 {
			v.polyline(screen, pose, func(t float64) types.LatLng {
				return types.NewLatLng(lat, lng0-span+2*span*t)
			}, graticuleColor)
		}
		lng := lng0 + float64(i)*step
		v.polyline(screen, pose, func(t float64) types.LatLng {
			return types.NewLatLng(easing.Clamp(lat0-span+2*span*t, -85, 85), lng)
		}, graticuleColor)
	}
}

func (v *MapView) polyline(screen *ebiten.Image, pose render.Pose, at func(t float64) types.LatLng, clr color.Color) {
	prev, prevOK := render.Project(pose, at(0))
	for s := 1; s <= GRATICULE_SAMPLES; s++ {
		cur, ok := render.Project(pose, at(float64(s)/GRATICULE_SAMPLES))
		if ok && prevOK {
			vector.StrokeLine(screen, float32(prev.X), float32(prev.Y), float32(cur.X), float32(cur.Y), 1, clr, false)
		}
		prev, prevOK = cur, ok
	}
}

func (v *MapView) drawAirspace(screen *ebiten.Image, pose render.Pose) {
	if v.Airspace == nil {
		return
	}
	for _, wp := range v.Airspace.Waypoints {
		if px, ok := render.Project(pose, wp.Position); ok {
			vector.DrawFilledCircle(screen, float32(px.X), float32(px.Y), 2, waypointColor, false)
			ebitenutil.DebugPrintAt(screen, wp.Name, int(px.X)+5, int(px.Y)+5)
		}
	}
	for _, ap := range v.Airspace.Airports {
		if px, ok := render.Project(pose, ap.Position); ok {
			vector.StrokeRect(screen, float32(px.X)-3, float32(px.Y)-3, 6, 6, 1, airportColor, false)
			ebitenutil.DebugPrintAt(screen, ap.ID, int(px.X)+5, int(px.Y)+5)
		}
	}
}

func (v *MapView) drawTrail(screen *ebiten.Image, pose render.Pose, trail []simulation.TrailPoint) {
	if len(trail) < 2 {
		return
	}
	prev, prevOK := render.Project(pose, trail[0].Position)
	for _, tp := range trail[1:] {
		cur, ok := render.Project(pose, tp.Position)
		// Skip segments that jump across the screen at the antimeridian.
		if ok && prevOK && prev.DistanceTo(cur) < 200 {
			vector.StrokeLine(screen, float32(prev.X), float32(prev.Y), float32(cur.X), float32(cur.Y), 2, trailColor, true)
		}
		prev, prevOK = cur, ok
	}
}

// drawAircraft draws a simple arrow: nose along heading relative to the map
// bearing, wings foreshortened by roll.
func (v *MapView) drawAircraft(screen *ebiten.Image, pose render.Pose) {
	pos, ok := render.Project(pose, v.aircraft.Position)
	if !ok {
		return
	}

	size := AIRCRAFT_SIZE_PX * (1 + 0.5*math.Min(1, v.aircraft.AltitudeFt/100_000))
	angle := v.aircraft.Heading - easing.Radians(pose.Bearing)
	nose := types.NewVec2(math.Sin(angle), -math.Cos(angle))
	right := types.NewVec2(math.Cos(angle), math.Sin(angle))

	span := size * 0.7 * math.Max(0.2, math.Cos(v.aircraft.Roll))
	tip := pos.Add(nose.Scale(size))
	tail := pos.Sub(nose.Scale(size * 0.5))
	left := tail.Sub(right.Scale(span))
	rightWing := tail.Add(right.Scale(span))

	for _, seg := range [][2]types.Vec2{{tip, left}, {left, pos}, {pos, rightWing}, {rightWing, tip}} {
		vector.StrokeLine(screen, float32(seg[0].X), float32(seg[0].Y), float32(seg[1].X), float32(seg[1].Y), 2, aircraftColor, true)
	}
}

func graticuleStep(zoom float64) float64 {
	switch {
	case zoom < 4:
		return 10
	case zoom < 6:
		return 2
	case zoom < 8:
		return 0.5
	case zoom < 10:
		return 0.1
	default:
		return 0.02
	}
}
