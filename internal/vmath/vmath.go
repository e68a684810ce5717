// Package vmath holds the small float32 vector and easing helpers shared by
// the locomotion components.
package vmath

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var Up = mgl32.Vec3{0, 1, 0}

// Flatten zeroes the Y component and renormalizes. A vector with no
// horizontal part flattens to zero.
func Flatten(v mgl32.Vec3) mgl32.Vec3 {
	flat := mgl32.Vec3{v.X(), 0, v.Z()}
	l := flat.Len()
	if l <= 1e-6 {
		return mgl32.Vec3{}
	}
	return flat.Mul(1 / l)
}

// Horizontal zeroes the Y component without renormalizing.
func Horizontal(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X(), 0, v.Z()}
}

// HorizontalLen returns the length of the XZ part of v.
func HorizontalLen(v mgl32.Vec3) float32 {
	return math32.Hypot(v.X(), v.Z())
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates from a to b by t.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Damp moves current toward target with a frame-rate independent
// exponential approach. rate <= 0 snaps to target.
func Damp(current, target, rate, dt float32) float32 {
	if rate <= 0 {
		return target
	}
	return Lerp(current, target, 1-math32.Exp(-rate*dt))
}

// BlendNormal blends a smoothed surface normal toward a raw sample and
// renormalizes. t is clamped to [0, 1]; a degenerate result falls back to Up.
func BlendNormal(prev, raw mgl32.Vec3, t float32) mgl32.Vec3 {
	t = Clamp(t, 0, 1)
	blended := prev.Add(raw.Sub(prev).Mul(t))
	l := blended.Len()
	if l <= 1e-6 {
		return Up
	}
	return blended.Mul(1 / l)
}

// SmoothStep is the Hermite ease 3t^2 - 2t^3 with t clamped to [0, 1].
func SmoothStep(t float32) float32 {
	t = Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}

// VaultArc is the normalized rise-and-fall parabola -4(t-0.5)^2 + 1.
// It is 0 at both endpoints and 1 at t = 0.5.
func VaultArc(t float32) float32 {
	d := t - 0.5
	return -4*d*d + 1
}

// ProjectOnPlane projects v onto the plane with unit normal n, preserving
// the magnitude of v. A degenerate projection returns v unchanged.
func ProjectOnPlane(v, n mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l <= 1e-6 {
		return v
	}
	proj := v.Sub(n.Mul(v.Dot(n)))
	pl := proj.Len()
	if pl <= 1e-6 {
		return v
	}
	return proj.Mul(l / pl)
}

// YawOf returns the yaw in degrees of the XZ direction of v, with 0 facing
// +Z and positive yaw turning toward +X.
func YawOf(v mgl32.Vec3) float32 {
	return mgl32.RadToDeg(math32.Atan2(v.X(), v.Z()))
}

// YawDir returns the horizontal unit vector facing the given yaw in degrees.
func YawDir(yaw float32) mgl32.Vec3 {
	r := mgl32.DegToRad(yaw)
	return mgl32.Vec3{math32.Sin(r), 0, math32.Cos(r)}
}

// LerpAngle steps a degree angle toward target by at most maxStep,
// taking the shortest way around. maxStep <= 0 snaps to target.
func LerpAngle(current, target, maxStep float32) float32 {
	if maxStep <= 0 {
		return NormalizeAngle(target)
	}
	delta := SignedAngleDelta(current, target)
	if delta > maxStep {
		delta = maxStep
	} else if delta < -maxStep {
		delta = -maxStep
	}
	return NormalizeAngle(current + delta)
}

// SignedAngleDelta returns the shortest signed delta from one angle to
// another, in (-180, 180].
func SignedAngleDelta(from, to float32) float32 {
	return NormalizeAngle(to - from)
}

// NormalizeAngle wraps a degree angle into (-180, 180].
func NormalizeAngle(v float32) float32 {
	for v <= -180 {
		v += 360
	}
	for v > 180 {
		v -= 360
	}
	return v
}
