package locomotion

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Versifine/strider/internal/vmath"
)

// GroundChecker resolves grounded state, the smoothed slope normal and
// coyote-time eligibility once per tick, before any component that reads
// them runs.
type GroundChecker struct {
	cfg   *Config
	mover Mover

	grounded       bool
	wasGrounded    bool
	lastGroundedAt float32

	slopeNormal mgl32.Vec3
	slopeAngle  float32
}

func NewGroundChecker(cfg *Config, mover Mover) *GroundChecker {
	return &GroundChecker{
		cfg:            cfg,
		mover:          mover,
		lastGroundedAt: math32.Inf(-1),
		slopeNormal:    vmath.Up,
	}
}

// Update re-evaluates ground state. The mover's post-move contact flag is
// authoritative; a short downward probe only catches ground fractionally
// before contact and samples the surface normal. The probe is skipped while
// verticalVelocity is positive: the feet are still within probe range on the
// tick after a jump impulse, and re-grounding there would hand back a fresh
// jump mid-ascent. The normal is blended over time so jittery per-tick
// samples from noisy terrain never reach direction projection directly.
func (g *GroundChecker) Update(now, dt, verticalVelocity float32) {
	if g == nil {
		return
	}
	g.wasGrounded = g.grounded

	if g.mover == nil || g.cfg == nil {
		g.grounded = false
		g.slopeNormal = vmath.Up
		g.slopeAngle = 0
		return
	}

	grounded := g.mover.GroundedAfterMove()
	raw := vmath.Up
	if verticalVelocity <= 0 {
		if n, ok := g.mover.ProbeGround(g.cfg.GroundCheckDistance); ok {
			grounded = true
			raw = n
		}
	}
	g.grounded = grounded
	if grounded {
		g.lastGroundedAt = now
	}

	g.slopeNormal = vmath.BlendNormal(g.slopeNormal, raw, g.cfg.SlopeSmoothing*dt)
	g.slopeAngle = mgl32.RadToDeg(math32.Acos(vmath.Clamp(g.slopeNormal.Dot(vmath.Up), -1, 1)))
}

func (g *GroundChecker) Grounded() bool {
	return g != nil && g.grounded
}

func (g *GroundChecker) WasGrounded() bool {
	return g != nil && g.wasGrounded
}

// JustLanded reports a false->true grounded transition this tick.
func (g *GroundChecker) JustLanded() bool {
	return g != nil && g.grounded && !g.wasGrounded
}

func (g *GroundChecker) SlopeNormal() mgl32.Vec3 {
	if g == nil {
		return vmath.Up
	}
	return g.slopeNormal
}

func (g *GroundChecker) SlopeAngle() float32 {
	if g == nil {
		return 0
	}
	return g.slopeAngle
}

// OnMeaningfulSlope reports whether the slope is steep enough to adjust the
// move direction. Sub-threshold terrain noise must not read as a slope.
func (g *GroundChecker) OnMeaningfulSlope() bool {
	return g != nil && g.cfg != nil && g.slopeAngle >= g.cfg.SlopeMinAngle
}

// TooSteep reports whether the stood-on surface exceeds the walkable limit.
func (g *GroundChecker) TooSteep() bool {
	return g != nil && g.cfg != nil && g.grounded && g.slopeAngle > g.cfg.MaxSlopeAngle
}

// WithinCoyoteTime reports whether a jump is still permitted after leaving
// the ground.
func (g *GroundChecker) WithinCoyoteTime(now float32) bool {
	if g == nil || g.cfg == nil {
		return false
	}
	return now-g.lastGroundedAt <= g.cfg.CoyoteTime
}
