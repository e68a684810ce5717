package locomotion

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Versifine/strider/internal/event"
	"github.com/Versifine/strider/internal/vmath"
)

const (
	// slideJumpGrace keeps the jump press that started a movement chain from
	// canceling the slide on the very same frames. Presses inside the window
	// are consumed, not forwarded.
	slideJumpGrace = 0.1
	// slideStopSpeed ends a slide that has decayed to a crawl before the
	// timer runs out.
	slideStopSpeed = 0.25
)

// SlideHandler owns the timed slide: a speed boost in a direction frozen at
// slide start, decaying linearly until the timer, the speed floor, a jump
// press or loss of ground ends it.
type SlideHandler struct {
	cfg    *Config
	ground *GroundChecker
	bus    *event.Bus

	sliding   bool
	timer     float32
	elapsed   float32
	cooldown  float32
	direction mgl32.Vec3
	speed     float32
}

func NewSlideHandler(cfg *Config, ground *GroundChecker, bus *event.Bus) *SlideHandler {
	return &SlideHandler{cfg: cfg, ground: ground, bus: bus}
}

// Update advances the slide and reports whether it consumed the tick's jump
// press (a jump that cancels a slide does not also fire the jump
// controller). moveVelocity and currentSpeed come from the movement handler's
// previous tick, which is the precondition source for starting a slide.
func (s *SlideHandler) Update(dt float32, in Snapshot, moveVelocity mgl32.Vec3, currentSpeed float32, crouching bool) (consumedJump bool) {
	if s == nil || s.cfg == nil || s.ground == nil {
		return false
	}

	if s.cooldown > 0 {
		s.cooldown -= dt
	}

	if !s.sliding {
		s.tryStart(in, moveVelocity, currentSpeed, crouching)
		return false
	}

	s.elapsed += dt
	s.timer -= dt
	s.speed -= s.cfg.SlideDeceleration * dt
	if s.speed < 0 {
		s.speed = 0
	}

	if in.JumpPressed {
		if s.elapsed < slideJumpGrace {
			// Swallow the press entirely so the jump controller cannot fire
			// mid-slide off a press the slide chose to ignore.
			consumedJump = true
		} else {
			s.finish("jump")
			return true
		}
	}

	switch {
	case s.timer <= 0:
		s.finish("timer")
	case s.speed < slideStopSpeed:
		s.finish("speed")
	case !s.ground.Grounded():
		s.finish("airborne")
	}
	return consumedJump
}

func (s *SlideHandler) tryStart(in Snapshot, moveVelocity mgl32.Vec3, currentSpeed float32, crouching bool) {
	if !in.SlidePressed || s.cooldown > 0 || crouching || !s.ground.Grounded() {
		return
	}
	if currentSpeed < s.cfg.MinSlideSpeed {
		return
	}
	dir := vmath.Flatten(moveVelocity)
	if dir.Len() <= 1e-6 {
		return
	}

	s.sliding = true
	s.direction = dir.Normalize()
	s.speed = currentSpeed * s.cfg.SlideSpeedBoost
	s.timer = s.cfg.SlideDuration
	s.elapsed = 0
	s.bus.Publish(event.SlideStart, nil)
	slog.Debug("slide started", "speed", s.speed)
}

func (s *SlideHandler) finish(reason string) {
	if !s.sliding {
		return
	}
	s.sliding = false
	s.speed = 0
	s.cooldown = s.cfg.SlideCooldown
	s.bus.Publish(event.SlideEnd, nil)
	slog.Debug("slide ended", "reason", reason)
}

// Cancel force-ends an active slide, e.g. on damage or a mode switch. State
// is fully reset before returning.
func (s *SlideHandler) Cancel() {
	if s == nil {
		return
	}
	s.finish("canceled")
}

func (s *SlideHandler) IsSliding() bool {
	return s != nil && s.sliding
}

// Velocity is the slide's horizontal velocity, which supersedes the movement
// handler's output while the slide is active.
func (s *SlideHandler) Velocity() mgl32.Vec3 {
	if s == nil || !s.sliding {
		return mgl32.Vec3{}
	}
	return s.direction.Mul(s.speed)
}

// TargetHeight is the capsule height the slide wants while active, zero
// otherwise.
func (s *SlideHandler) TargetHeight() float32 {
	if s == nil || !s.sliding || s.cfg == nil {
		return 0
	}
	return s.cfg.SlideHeight
}
