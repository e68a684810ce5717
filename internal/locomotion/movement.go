package locomotion

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Versifine/strider/internal/vmath"
)

// MovementHandler computes the horizontal velocity: a state-dependent target
// speed approached with separate acceleration/deceleration rates, projected
// along the camera-relative input direction and, on meaningful slopes, onto
// the smoothed slope plane. It also exposes the normalized-speed signal the
// animation layer consumes.
type MovementHandler struct {
	cfg    *Config
	ground *GroundChecker
	camera Rig

	speed     float32
	velocity  mgl32.Vec3
	sprinting bool
}

func NewMovementHandler(cfg *Config, ground *GroundChecker, camera Rig) *MovementHandler {
	return &MovementHandler{cfg: cfg, ground: ground, camera: camera}
}

func (m *MovementHandler) Update(dt float32, in Snapshot, crouching bool) {
	if m == nil || m.cfg == nil || m.ground == nil {
		return
	}

	moveX, moveY := in.MoveX, in.MoveY
	if math32.Hypot(moveX, moveY) < m.cfg.MoveDeadzone {
		moveX, moveY = 0, 0
	}

	target, hardCap := m.targetSpeed(in, moveX, moveY, crouching)
	if moveX == 0 && moveY == 0 {
		// Released input is plain deceleration; the hard cap is the aim or
		// hip-fire speed itself, never zero.
		target, hardCap = 0, false
	}

	if hardCap && target < m.speed {
		// Aim and hip-fire caps are gameplay constraints, not momentum.
		m.speed = target
	} else {
		rate := m.cfg.Acceleration
		if target < m.speed {
			rate = m.cfg.Deceleration
		}
		if !m.ground.Grounded() {
			rate *= m.cfg.AirControl
		}
		m.speed = vmath.Damp(m.speed, target, rate, dt)
	}

	wish := m.wishDirection(moveX, moveY)
	vel := wish.Mul(m.speed)
	if l := vel.Len(); l > m.cfg.MaxHorizontalSpeed {
		vel = vel.Mul(m.cfg.MaxHorizontalSpeed / l)
	}
	if m.ground.Grounded() && m.ground.OnMeaningfulSlope() {
		vel = vmath.ProjectOnPlane(vel, m.ground.SlopeNormal())
	}
	m.velocity = vel
}

// targetSpeed resolves the priority-ordered speed policy. The second return
// marks targets applied instantly rather than smoothed.
func (m *MovementHandler) targetSpeed(in Snapshot, moveX, moveY float32, crouching bool) (float32, bool) {
	aiming := in.AimHeld || (m.camera != nil && m.camera.Aiming())
	m.sprinting = false

	var target float32
	var hardCap bool
	switch {
	case crouching:
		target = m.cfg.CrouchSpeed
	case aiming:
		target, hardCap = m.cfg.AimSpeed, true
	case in.FireHeld || in.FirePressed:
		target, hardCap = m.cfg.HipfireSpeed, true
	case in.SprintHeld && moveY > m.cfg.SprintForwardThreshold:
		target = m.cfg.SprintSpeed
		m.sprinting = true
	case in.SprintHeld:
		// Sprinting sideways or backward only earns run speed.
		target = m.cfg.RunSpeed
	default:
		target = m.cfg.WalkSpeed
	}

	// Pure lateral strafing while aiming is additionally capped.
	if aiming && math32.Abs(moveX) > m.cfg.StrafeThreshold && math32.Abs(moveY) < m.cfg.MoveDeadzone {
		if m.cfg.StrafeSpeed < target {
			target = m.cfg.StrafeSpeed
		}
	}
	return target, hardCap
}

// wishDirection projects the 2D input axes onto the camera's flattened
// forward/right vectors. Without a camera the world axes serve as a neutral
// fallback.
func (m *MovementHandler) wishDirection(moveX, moveY float32) mgl32.Vec3 {
	forward := mgl32.Vec3{0, 0, 1}
	right := mgl32.Vec3{1, 0, 0}
	if m.camera != nil {
		if f := vmath.Flatten(m.camera.Forward()); f.Len() > 0 {
			forward = f
		}
		if r := vmath.Flatten(m.camera.Right()); r.Len() > 0 {
			right = r
		}
	}
	wish := forward.Mul(moveY).Add(right.Mul(moveX))
	if l := wish.Len(); l > 1 {
		wish = wish.Mul(1 / l)
	}
	return wish
}

// Velocity is the horizontal velocity vector for this tick.
func (m *MovementHandler) Velocity() mgl32.Vec3 {
	if m == nil {
		return mgl32.Vec3{}
	}
	return m.velocity
}

// Speed is the current scalar speed before direction scaling.
func (m *MovementHandler) Speed() float32 {
	if m == nil {
		return 0
	}
	return m.speed
}

// Sprinting reports whether the last resolved target was sprint speed.
func (m *MovementHandler) Sprinting() bool {
	return m != nil && m.sprinting
}

// NormalizedSpeed maps a scalar speed into [0, 1] through the animation
// thresholds: idle at 0, the walk threshold at 0.5 and the run threshold at
// 1 (sprint shares the run tier). Crouched movement is capped at the walk
// tier. It is a pure function of its inputs and never feeds back into
// physical speed.
func (m *MovementHandler) NormalizedSpeed(speed float32, crouching bool) float32 {
	if m == nil || m.cfg == nil {
		return 0
	}
	walk, run := m.cfg.WalkAnimThreshold, m.cfg.RunAnimThreshold
	if walk <= 0 || run <= walk {
		// Fall back to a direct walk-tier mapping on degenerate thresholds.
		if speed <= 0 {
			return 0
		}
		return vmath.Clamp(speed/m.cfg.WalkSpeed, 0, 1)
	}

	var n float32
	switch {
	case speed <= 0:
		n = 0
	case speed <= walk:
		n = 0.5 * speed / walk
	default:
		n = 0.5 + 0.5*vmath.Clamp((speed-walk)/(run-walk), 0, 1)
	}
	if crouching && n > 0.5 {
		n = 0.5
	}
	return n
}
