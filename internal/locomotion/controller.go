package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Versifine/strider/internal/event"
	"github.com/Versifine/strider/internal/vmath"
)

// LandEvent is published when the character regains ground contact.
type LandEvent struct {
	Velocity float32
	Position mgl32.Vec3
}

// Controller composes the locomotion components in a fixed per-tick order,
// owns the capsule mover, and applies the final displacement. All
// collaborators are injected at construction; there is no global lookup.
//
// Tick order is significant: ground state is resolved before anything that
// reads it, and vault then slide get first refusal on the jump input before
// the jump controller runs.
type Controller struct {
	cfg    *Config
	mover  Mover
	input  Source
	camera Rig
	bus    *event.Bus

	ground   *GroundChecker
	jump     *JumpController
	crouch   *CrouchHandler
	slide    *SlideHandler
	movement *MovementHandler
	vault    *VaultHandler

	moveEnabled bool
	yaw         float32
	clock       float32
}

func New(cfg *Config, mover Mover, input Source, camera Rig) *Controller {
	bus := event.NewBus()
	var owned *Config
	if cfg != nil {
		copied := *cfg
		owned = &copied
	}
	ground := NewGroundChecker(owned, mover)
	c := &Controller{
		cfg:         owned,
		mover:       mover,
		input:       input,
		camera:      camera,
		bus:         bus,
		ground:      ground,
		jump:        NewJumpController(owned, ground, bus),
		crouch:      NewCrouchHandler(owned, mover, bus),
		slide:       NewSlideHandler(owned, ground, bus),
		movement:    NewMovementHandler(owned, ground, camera),
		vault:       NewVaultHandler(owned, mover, ground, bus),
		moveEnabled: true,
	}
	return c
}

// Update advances the simulation by one tick. A missing mover or config
// makes the tick a no-op rather than an error; those are startup wiring
// problems, not per-tick failures.
func (c *Controller) Update(dt float32) {
	if c == nil || dt <= 0 {
		return
	}
	c.clock += dt
	if !c.moveEnabled || c.mover == nil || c.cfg == nil {
		return
	}

	var snap Snapshot
	if c.input != nil {
		snap = c.input.Snapshot()
	}

	c.ground.Update(c.clock, dt, c.jump.Velocity())
	if c.ground.JustLanded() {
		c.bus.Publish(event.Land, LandEvent{Velocity: c.jump.Velocity(), Position: c.mover.Position()})
	}

	wasVaulting := c.vault.IsVaulting()
	if c.vault.Update(dt, snap, c.forward()) {
		snap.JumpPressed = false
	}
	if wasVaulting || c.vault.IsVaulting() {
		// Movement authority belongs to the vault for every tick it touches,
		// including the one that completes it; running a normal tick from
		// the landing point would integrate a second displacement. The
		// character faces the traversal direction during the first half.
		if c.vault.IsVaulting() && c.vault.Progress() < 0.5 {
			c.turnToward(c.vault.Direction(), dt)
		}
		c.jump.ResetVertical()
		return
	}

	if c.slide.Update(dt, snap, c.movement.Velocity(), c.movement.Speed(), c.crouch.IsCrouching()) {
		snap.JumpPressed = false
	}
	c.jump.Update(dt, c.clock, snap)
	c.crouch.Update(dt, snap.CrouchPressed, c.slide.TargetHeight())
	c.movement.Update(dt, snap, c.crouch.IsCrouching())

	horizontal := c.movement.Velocity()
	if c.slide.IsSliding() {
		horizontal = c.slide.Velocity()
	}

	displacement := horizontal.Mul(dt).Add(c.jump.Displacement(dt))
	if c.ground.TooSteep() {
		displacement = displacement.Add(c.downslope().Mul(c.cfg.SlopeSlideSpeed * dt))
	}
	c.mover.Move(displacement)

	if vmath.HorizontalLen(horizontal) > 1e-3 {
		c.turnToward(horizontal, dt)
	}
}

func (c *Controller) forward() mgl32.Vec3 {
	if c.camera != nil {
		if f := vmath.Flatten(c.camera.Forward()); f.Len() > 0 {
			return f
		}
	}
	return vmath.YawDir(c.yaw)
}

func (c *Controller) turnToward(dir mgl32.Vec3, dt float32) {
	flat := vmath.Flatten(dir)
	if flat.Len() <= 1e-6 {
		return
	}
	c.yaw = vmath.LerpAngle(c.yaw, vmath.YawOf(flat), c.cfg.RotationSpeed*dt)
}

// downslope is the fall line of the stood-on surface.
func (c *Controller) downslope() mgl32.Vec3 {
	n := c.ground.SlopeNormal()
	d := vmath.Flatten(mgl32.Vec3{n.X(), 0, n.Z()})
	if d.Len() <= 1e-6 {
		return mgl32.Vec3{}
	}
	return vmath.ProjectOnPlane(d, n)
}

// Bus exposes the locomotion event stream.
func (c *Controller) Bus() *event.Bus {
	if c == nil {
		return nil
	}
	return c.bus
}

// SetConfig swaps the movement tuning. It must only be called between
// ticks; component config pointers alias the controller's copy.
func (c *Controller) SetConfig(cfg Config) {
	if c == nil || c.cfg == nil {
		return
	}
	*c.cfg = cfg
}

// SetMoveEnabled suspends or resumes all movement, e.g. for a free-fly
// debug mode. Suspending cancels in-flight vault and slide actions so the
// mover is never left disabled.
func (c *Controller) SetMoveEnabled(enabled bool) {
	if c == nil {
		return
	}
	if !enabled {
		c.vault.Cancel()
		c.slide.Cancel()
		c.jump.ResetVertical()
	}
	c.moveEnabled = enabled
}

func (c *Controller) MoveEnabled() bool {
	return c != nil && c.moveEnabled
}

// EnterVaultZone and ExitVaultZone plumb trigger-volume transitions from the
// hosting world to the vault handler.
func (c *Controller) EnterVaultZone(obj Vaultable) { c.vault.EnterZone(obj) }

func (c *Controller) ExitVaultZone(obj Vaultable) { c.vault.ExitZone(obj) }

// CancelVault force-ends an active vault, restoring the mover.
func (c *Controller) CancelVault() { c.vault.Cancel() }

// CancelSlide force-ends an active slide.
func (c *Controller) CancelSlide() { c.slide.Cancel() }

func (c *Controller) Grounded() bool {
	return c != nil && c.ground.Grounded()
}

func (c *Controller) Sprinting() bool {
	return c != nil && c.movement.Sprinting()
}

func (c *Controller) Crouching() bool {
	return c != nil && c.crouch.IsCrouching()
}

func (c *Controller) Sliding() bool {
	return c != nil && c.slide.IsSliding()
}

func (c *Controller) Vaulting() bool {
	return c != nil && c.vault.IsVaulting()
}

// Speed is the current raw horizontal speed.
func (c *Controller) Speed() float32 {
	if c == nil {
		return 0
	}
	if c.slide.IsSliding() {
		return c.slide.Velocity().Len()
	}
	return c.movement.Speed()
}

// NormalizedSpeed is the [0, 1] animation signal.
func (c *Controller) NormalizedSpeed() float32 {
	if c == nil {
		return 0
	}
	return c.movement.NormalizedSpeed(c.Speed(), c.crouch.IsCrouching())
}

func (c *Controller) Yaw() float32 {
	if c == nil {
		return 0
	}
	return c.yaw
}

func (c *Controller) Position() mgl32.Vec3 {
	if c == nil || c.mover == nil {
		return mgl32.Vec3{}
	}
	return c.mover.Position()
}
