package render

import (
	"math"

	"flight-simulator/internal/game/easing"
	"flight-simulator/pkg/types"
)

// Project maps p to viewport pixels for a pose. Flat uses web mercator,
// globe an orthographic view centered on the pose; Blend interpolates the
// two. The bool is false when p is on the far side of the globe.
func Project(pose Pose, p types.LatLng) (types.Vec2, bool) {
	flat := flatDelta(pose, p)
	if pose.Blend <= 0 {
		return toScreen(pose, flat), true
	}

	globe, visible := globeDelta(pose, p)
	if pose.Blend >= 1 {
		return toScreen(pose, globe), visible
	}
	return toScreen(pose, flat.Lerp(globe, pose.Blend)), visible || pose.Blend < 0.5
}

// Unproject is the inverse of Project for whichever projection dominates
// the blend. The bool is false off the globe disc.
func Unproject(pose Pose, px types.Vec2) (types.LatLng, bool) {
	d := px.Sub(pose.Anchor).Sub(pose.Offset).Rotate(easing.Radians(pose.Bearing))

	if pose.Blend < 0.5 {
		m := Mercator{}
		world := m.ToPixels(pose.Center, pose.Zoom).Add(d)
		p := m.FromPixels(world, pose.Zoom)
		p.Lng = easing.WrapDegrees(p.Lng)
		return p, true
	}

	r := GlobeRadius(pose.Zoom)
	x, y := d.X, -d.Y
	rho := math.Hypot(x, y)
	if rho > r {
		return types.LatLng{}, false
	}
	if rho == 0 {
		return pose.Center, true
	}

	phi0 := easing.Radians(pose.Center.Lat)
	lam0 := easing.Radians(pose.Center.Lng)
	sinC, cosC := math.Sincos(math.Asin(rho / r))
	sinPhi0, cosPhi0 := math.Sincos(phi0)

	phi := math.Asin(cosC*sinPhi0 + y*sinC*cosPhi0/rho)
	lam := lam0 + math.Atan2(x*sinC, rho*cosPhi0*cosC-y*sinPhi0*sinC)
	return types.NewLatLng(easing.Degrees(phi), easing.WrapDegrees(easing.Degrees(lam))), true
}

func flatDelta(pose Pose, p types.LatLng) types.Vec2 {
	m := Mercator{}
	size := m.WorldSize(pose.Zoom)
	d := m.ToPixels(p, pose.Zoom).Sub(m.ToPixels(pose.Center, pose.Zoom))
	// Shortest way around the antimeridian.
	if d.X > size/2 {
		d.X -= size
	} else if d.X < -size/2 {
		d.X += size
	}
	return d
}

func globeDelta(pose Pose, p types.LatLng) (types.Vec2, bool) {
	r := GlobeRadius(pose.Zoom)
	phi := easing.Radians(p.Lat)
	phi0 := easing.Radians(pose.Center.Lat)
	dLam := easing.Radians(p.Lng - pose.Center.Lng)

	sinPhi, cosPhi := math.Sincos(phi)
	sinPhi0, cosPhi0 := math.Sincos(phi0)
	sinDLam, cosDLam := math.Sincos(dLam)

	cosC := sinPhi0*sinPhi + cosPhi0*cosPhi*cosDLam
	x := r * cosPhi * sinDLam
	y := r * (cosPhi0*sinPhi - sinPhi0*cosPhi*cosDLam)
	return types.NewVec2(x, -y), cosC >= 0
}

// GlobeRadius matches the globe's scale to mercator at the equator.
func GlobeRadius(zoom float64) float64 {
	return Mercator{}.WorldSize(zoom) / (2 * math.Pi)
}

func toScreen(pose Pose, d types.Vec2) types.Vec2 {
	return pose.Anchor.Add(d.Rotate(-easing.Radians(pose.Bearing))).Add(pose.Offset)
}
