package locomotion

import (
	"log/slog"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Versifine/strider/internal/event"
)

// groundStickVelocity keeps a grounded capsule pressed onto uneven terrain
// instead of repeatedly micro-launching off it.
const groundStickVelocity = -2.0

// JumpEvent is published on the bus when a jump impulse fires.
type JumpEvent struct {
	Velocity float32
	Coyote   bool
}

// JumpController owns vertical velocity: gravity integration, the jump
// impulse, variable jump height, apex hang and terminal velocity. Jump
// presses are buffered so an early press still fires on landing, and coyote
// time allows exactly one jump shortly after walking off a ledge.
type JumpController struct {
	cfg    *Config
	ground *GroundChecker
	bus    *event.Bus

	velocity     float32
	bufferTimer  float32
	jumpConsumed bool
	jumping      bool
}

func NewJumpController(cfg *Config, ground *GroundChecker, bus *event.Bus) *JumpController {
	return &JumpController{cfg: cfg, ground: ground, bus: bus}
}

func (j *JumpController) Update(dt, now float32, in Snapshot) {
	if j == nil || j.cfg == nil || j.ground == nil {
		return
	}

	if in.JumpPressed {
		j.bufferTimer = j.cfg.JumpBufferTime
	} else if j.bufferTimer > 0 {
		j.bufferTimer -= dt
	}

	grounded := j.ground.Grounded()
	if grounded {
		j.jumpConsumed = false
	}

	jumped := false
	coyote := !grounded && j.ground.WithinCoyoteTime(now) && !j.jumpConsumed
	if j.bufferTimer > 0 && (grounded || coyote) {
		j.velocity = j.cfg.JumpForce
		j.bufferTimer = 0
		j.jumpConsumed = true
		j.jumping = true
		jumped = true
		j.bus.Publish(event.Jump, JumpEvent{Velocity: j.velocity, Coyote: coyote})
		slog.Debug("jump impulse", "velocity", j.velocity, "coyote", coyote)
	}

	if grounded && !jumped {
		j.jumping = false
		if j.velocity < 0 {
			// Clamp to the stick value; no further integration this tick.
			j.velocity = groundStickVelocity
			return
		}
	}

	j.velocity += j.cfg.Gravity * j.gravityMultiplier(in) * dt
	if j.velocity < -j.cfg.TerminalVelocity {
		j.velocity = -j.cfg.TerminalVelocity
	}
}

func (j *JumpController) gravityMultiplier(in Snapshot) float32 {
	if j.ground.Grounded() {
		return 1
	}
	if j.jumping && math32.Abs(j.velocity) <= j.cfg.ApexThreshold {
		return j.cfg.ApexMultiplier
	}
	if j.velocity < 0 {
		return j.cfg.FallMultiplier
	}
	if j.jumping && !in.JumpHeld {
		return j.cfg.LowJumpMultiplier
	}
	return 1
}

func (j *JumpController) Velocity() float32 {
	if j == nil {
		return 0
	}
	return j.velocity
}

// Displacement is this tick's vertical contribution to the total movement.
func (j *JumpController) Displacement(dt float32) mgl32.Vec3 {
	return mgl32.Vec3{0, j.Velocity() * dt, 0}
}

// IsJumping reports a rising state caused by a jump impulse.
func (j *JumpController) IsJumping() bool {
	return j != nil && j.jumping && j.velocity > 0
}

func (j *JumpController) IsFalling() bool {
	return j != nil && j.ground != nil && !j.ground.Grounded() && j.velocity < 0
}

// ResetVertical zeroes vertical motion, used when movement authority is
// transferred away (vault) or the controller is suspended.
func (j *JumpController) ResetVertical() {
	if j == nil {
		return
	}
	j.velocity = 0
	j.jumping = false
}
