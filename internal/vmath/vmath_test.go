package vmath

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func approxEqual(t *testing.T, got, want, tol float32, field string) {
	t.Helper()
	if math32.Abs(got-want) > tol {
		t.Fatalf("%s = %.6f, want %.6f (tol=%.6f)", field, got, want, tol)
	}
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name string
		in   mgl32.Vec3
		want mgl32.Vec3
	}{
		{"already_flat", mgl32.Vec3{1, 0, 0}, mgl32.Vec3{1, 0, 0}},
		{"tilted", mgl32.Vec3{0, 5, 0.0001}, mgl32.Vec3{0, 0, 1}},
		{"vertical_only", mgl32.Vec3{0, 3, 0}, mgl32.Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Flatten(tt.in)
			approxEqual(t, got.X(), tt.want.X(), 1e-4, "x")
			approxEqual(t, got.Y(), tt.want.Y(), 1e-4, "y")
			approxEqual(t, got.Z(), tt.want.Z(), 1e-4, "z")
		})
	}
}

func TestDamp(t *testing.T) {
	// Two half-steps must land closer to the target than one never does,
	// and the result must stay between current and target.
	got := Damp(0, 10, 8, 0.1)
	if got <= 0 || got >= 10 {
		t.Fatalf("Damp(0,10,8,0.1) = %.4f, want in (0, 10)", got)
	}
	// rate <= 0 snaps.
	approxEqual(t, Damp(3, 10, 0, 0.1), 10, 1e-6, "snap")
	// Frame-rate independence: one 0.2s step equals two 0.1s steps.
	one := Damp(0, 10, 5, 0.2)
	two := Damp(Damp(0, 10, 5, 0.1), 10, 5, 0.1)
	approxEqual(t, one, two, 1e-4, "composability")
}

func TestSmoothStepEndpointsAndMidpoint(t *testing.T) {
	approxEqual(t, SmoothStep(0), 0, 1e-6, "t=0")
	approxEqual(t, SmoothStep(1), 1, 1e-6, "t=1")
	approxEqual(t, SmoothStep(0.5), 0.5, 1e-6, "t=0.5")
	approxEqual(t, SmoothStep(-2), 0, 1e-6, "clamp_low")
	approxEqual(t, SmoothStep(2), 1, 1e-6, "clamp_high")
}

func TestVaultArc(t *testing.T) {
	approxEqual(t, VaultArc(0), 0, 1e-6, "t=0")
	approxEqual(t, VaultArc(1), 0, 1e-6, "t=1")
	approxEqual(t, VaultArc(0.5), 1, 1e-6, "apex")
}

func TestProjectOnPlanePreservesMagnitude(t *testing.T) {
	v := mgl32.Vec3{3, 0, 4}
	n := mgl32.Vec3{0.1, 1, 0}.Normalize()
	got := ProjectOnPlane(v, n)
	approxEqual(t, got.Len(), v.Len(), 1e-4, "magnitude")
	approxEqual(t, got.Dot(n), 0, 1e-4, "in_plane")
}

func TestProjectOnPlaneDegenerate(t *testing.T) {
	// A vector parallel to the normal cannot be projected; it is returned as-is.
	v := mgl32.Vec3{0, 2, 0}
	got := ProjectOnPlane(v, Up)
	approxEqual(t, got.Y(), 2, 1e-6, "unchanged")
}

func TestYawRoundTrip(t *testing.T) {
	for _, yaw := range []float32{0, 45, -90, 135, 180} {
		dir := YawDir(yaw)
		approxEqual(t, NormalizeAngle(YawOf(dir)-yaw), 0, 1e-3, "yaw")
	}
}

func TestLerpAngleWrapsShortestWay(t *testing.T) {
	// 170 -> -170 should go through 180, not back through 0.
	got := LerpAngle(170, -170, 5)
	approxEqual(t, got, 175, 1e-4, "step")
	got = LerpAngle(175, -170, 10)
	approxEqual(t, got, -175, 1e-4, "wrap")
	// Snap when maxStep <= 0.
	approxEqual(t, LerpAngle(10, 50, 0), 50, 1e-6, "snap")
}

func TestBlendNormalStaysUnit(t *testing.T) {
	prev := Up
	raw := mgl32.Vec3{1, 1, 0}.Normalize()
	got := BlendNormal(prev, raw, 0.25)
	approxEqual(t, got.Len(), 1, 1e-4, "unit_length")
	if got.X() <= 0 {
		t.Fatalf("blended normal should lean toward raw sample, got %v", got)
	}
	// t clamped: full blend returns the raw direction.
	full := BlendNormal(prev, raw, 5)
	approxEqual(t, full.Dot(raw), 1, 1e-4, "full_blend")
}
