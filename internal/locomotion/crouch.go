package locomotion

import (
	"github.com/Versifine/strider/internal/event"
	"github.com/Versifine/strider/internal/vmath"
)

// CrouchHandler owns the standing/crouched toggle and the smooth capsule
// height transition. Crouching is always allowed; standing back up requires
// head clearance at full standing height, re-checked every tick while the
// intent is to stand. The capsule center offset tracks half the current
// height so the feet stay anchored as the capsule shrinks and grows.
type CrouchHandler struct {
	cfg   *Config
	mover Mover
	bus   *event.Bus

	wantsToCrouch bool
	crouching     bool
	currentHeight float32
}

func NewCrouchHandler(cfg *Config, mover Mover, bus *event.Bus) *CrouchHandler {
	h := &CrouchHandler{cfg: cfg, mover: mover, bus: bus}
	if cfg != nil {
		h.currentHeight = cfg.StandingHeight
	}
	return h
}

// Update resolves crouch state and advances the height interpolation.
// heightOverride, when positive, replaces the resolved target height; the
// slide action uses it to drive the capsule low without toggling crouch.
func (c *CrouchHandler) Update(dt float32, crouchPressed bool, heightOverride float32) {
	if c == nil || c.cfg == nil || c.mover == nil {
		return
	}

	if crouchPressed {
		c.wantsToCrouch = !c.wantsToCrouch
	}

	was := c.crouching
	if c.wantsToCrouch {
		c.crouching = true
	} else if c.crouching && c.mover.HasClearance(c.cfg.StandingHeight) {
		c.crouching = false
	}
	if c.crouching != was {
		if c.crouching {
			c.bus.Publish(event.CrouchStart, nil)
		} else {
			c.bus.Publish(event.CrouchEnd, nil)
		}
	}

	target := c.cfg.StandingHeight
	if c.crouching {
		target = c.cfg.CrouchHeight
	}
	if heightOverride > 0 {
		target = heightOverride
	}

	c.currentHeight = vmath.Damp(c.currentHeight, target, c.cfg.CrouchTransitionSpeed, dt)
	c.mover.SetHeight(c.currentHeight)
	c.mover.SetCenterOffset(c.currentHeight / 2)
}

func (c *CrouchHandler) IsCrouching() bool {
	return c != nil && c.crouching
}

func (c *CrouchHandler) WantsToCrouch() bool {
	return c != nil && c.wantsToCrouch
}

func (c *CrouchHandler) Height() float32 {
	if c == nil {
		return 0
	}
	return c.currentHeight
}
