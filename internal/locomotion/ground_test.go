package locomotion

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// tiltedNormal returns a unit normal leaning degrees away from vertical,
// toward +X.
func tiltedNormal(degrees float32) mgl32.Vec3 {
	rad := mgl32.DegToRad(degrees)
	return mgl32.Vec3{math32.Sin(rad), math32.Cos(rad), 0}
}

func settleNormal(g *GroundChecker, ticks int) {
	for i := 0; i < ticks; i++ {
		g.Update(float32(i)*tick, tick, 0)
	}
}

func TestGroundCheckerLandingTransition(t *testing.T) {
	cfg := testConfig()
	m := newMockMover()
	g := NewGroundChecker(&cfg, m)

	g.Update(0, tick, 0)
	if g.Grounded() || g.JustLanded() {
		t.Fatal("airborne checker reported ground contact")
	}

	m.grounded = true
	g.Update(tick, tick, 0)
	if !g.Grounded() || g.WasGrounded() {
		t.Fatal("landing tick should be grounded with wasGrounded still false")
	}
	if !g.JustLanded() {
		t.Fatal("landing tick should report JustLanded")
	}

	g.Update(2*tick, tick, 0)
	if !g.WasGrounded() {
		t.Fatal("wasGrounded must follow grounded by one tick")
	}
	if g.JustLanded() {
		t.Fatal("JustLanded must only hold for the transition tick")
	}
}

func TestGroundCheckerProbeSupplementsContact(t *testing.T) {
	cfg := testConfig()
	m := newMockMover()
	m.grounded = false
	m.probeHit = true
	g := NewGroundChecker(&cfg, m)

	g.Update(0, tick, 0)
	if !g.Grounded() {
		t.Fatal("probe hit should count as grounded even without move contact")
	}
}

func TestGroundCheckerCoyoteWindow(t *testing.T) {
	cfg := testConfig()
	m := newMockMover()
	m.grounded = true
	g := NewGroundChecker(&cfg, m)
	g.Update(1.0, tick, 0)

	m.grounded = false
	g.Update(1.0+tick, tick, 0)

	if !g.WithinCoyoteTime(1.0 + cfg.CoyoteTime) {
		t.Fatal("jump should still be allowed at the coyote boundary")
	}
	if g.WithinCoyoteTime(1.0 + cfg.CoyoteTime + 0.01) {
		t.Fatal("jump must not be allowed past the coyote window")
	}
}

func TestGroundCheckerSlopeSmoothing(t *testing.T) {
	cfg := testConfig()
	m := newMockMover()
	m.probeHit = true
	m.probeNormal = tiltedNormal(30)
	g := NewGroundChecker(&cfg, m)

	g.Update(0, tick, 0)
	if g.SlopeAngle() >= 30 {
		t.Fatalf("one tick of smoothing should not reach the raw angle, got %.2f", g.SlopeAngle())
	}

	settleNormal(g, 300)
	approxEqual(t, g.SlopeAngle(), 30, 0.1, "settled slope angle")
	if !g.OnMeaningfulSlope() {
		t.Fatal("a settled 30 degree slope is meaningful")
	}
	if g.TooSteep() {
		t.Fatal("30 degrees is within the walkable limit")
	}
}

func TestGroundCheckerSlopeThresholds(t *testing.T) {
	cfg := testConfig()

	cases := []struct {
		name       string
		angle      float32
		meaningful bool
		tooSteep   bool
	}{
		{"terrain noise", 3, false, false},
		{"gentle slope", 20, true, false},
		{"over the limit", 60, true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newMockMover()
			m.probeHit = true
			m.probeNormal = tiltedNormal(tc.angle)
			g := NewGroundChecker(&cfg, m)
			settleNormal(g, 300)

			if got := g.OnMeaningfulSlope(); got != tc.meaningful {
				t.Fatalf("OnMeaningfulSlope = %v, want %v (angle %.1f)", got, tc.meaningful, g.SlopeAngle())
			}
			if got := g.TooSteep(); got != tc.tooSteep {
				t.Fatalf("TooSteep = %v, want %v (angle %.1f)", got, tc.tooSteep, g.SlopeAngle())
			}
		})
	}
}

func TestGroundCheckerNilMover(t *testing.T) {
	cfg := testConfig()
	g := NewGroundChecker(&cfg, nil)
	g.Update(0, tick, 0)

	if g.Grounded() {
		t.Fatal("checker without a mover must not report ground")
	}
	if got := g.SlopeNormal(); got.Y() != 1 {
		t.Fatalf("checker without a mover must report a flat normal, got %v", got)
	}
}
