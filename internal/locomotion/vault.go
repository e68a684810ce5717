package locomotion

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Versifine/strider/internal/event"
	"github.com/Versifine/strider/internal/vmath"
)

// VaultEvent is published on vault start and end.
type VaultEvent struct {
	Start   mgl32.Vec3
	Landing mgl32.Vec3
	// Canceled is set on the end event when the vault was interrupted.
	Canceled bool
}

// VaultHandler drives the timed traversal over a vaultable obstacle. While a
// vault runs, the capsule mover is disabled and this handler owns the
// position outright: horizontal motion eases start to landing with a
// smoothstep, vertical motion follows a parabolic arc over the obstacle. The
// disable/enable pair around the vault is strictly balanced, including on
// forced cancellation.
type VaultHandler struct {
	cfg    *Config
	mover  Mover
	ground *GroundChecker
	bus    *event.Bus

	candidate Vaultable

	vaulting       bool
	progress       float32
	duration       float32
	startPos       mgl32.Vec3
	landingPos     mgl32.Vec3
	direction      mgl32.Vec3
	obstacleHeight float32
	cooldown       float32
}

func NewVaultHandler(cfg *Config, mover Mover, ground *GroundChecker, bus *event.Bus) *VaultHandler {
	return &VaultHandler{cfg: cfg, mover: mover, ground: ground, bus: bus}
}

// EnterZone records an overlapped vaultable as the current candidate.
func (v *VaultHandler) EnterZone(obj Vaultable) {
	if v == nil || obj == nil {
		return
	}
	v.candidate = obj
}

// ExitZone clears the candidate only if it is the tracked object, so a stale
// exit from an overlapping zone cannot clear a fresher candidate.
func (v *VaultHandler) ExitZone(obj Vaultable) {
	if v == nil {
		return
	}
	if v.candidate == obj {
		v.candidate = nil
	}
}

// Update advances an active vault or starts one on a qualifying jump press.
// It reports whether it consumed the tick's jump input; while a vault is
// active every jump press is consumed so the jump controller cannot act on
// the same input.
func (v *VaultHandler) Update(dt float32, in Snapshot, forward mgl32.Vec3) (consumedJump bool) {
	if v == nil || v.cfg == nil || v.mover == nil {
		return false
	}
	if v.cooldown > 0 {
		v.cooldown -= dt
	}

	if v.vaulting {
		v.advance(dt)
		return in.JumpPressed
	}

	if !in.JumpPressed || v.candidate == nil || v.cooldown > 0 {
		return false
	}
	if v.ground == nil || !v.ground.Grounded() {
		return false
	}
	pos := v.mover.Position()
	if !v.candidate.CanVaultFrom(pos, forward) {
		return false
	}

	v.begin(pos)
	return true
}

func (v *VaultHandler) begin(pos mgl32.Vec3) {
	obj := v.candidate
	v.vaulting = true
	v.progress = 0
	v.duration = obj.Duration()
	if v.duration <= 0 {
		v.duration = 0.5
	}
	v.startPos = pos
	v.landingPos = obj.LandingPosition(pos)
	v.direction = obj.VaultDirection(pos)
	v.obstacleHeight = obj.ObstacleHeight()

	v.mover.SetEnabled(false)
	v.bus.Publish(event.VaultStart, VaultEvent{Start: v.startPos, Landing: v.landingPos})
	slog.Debug("vault started", "landing", v.landingPos, "duration", v.duration)
}

func (v *VaultHandler) advance(dt float32) {
	v.progress += dt / v.duration
	t := vmath.Clamp(v.progress, 0, 1)

	s := vmath.SmoothStep(t)
	x := vmath.Lerp(v.startPos.X(), v.landingPos.X(), s)
	z := vmath.Lerp(v.startPos.Z(), v.landingPos.Z(), s)
	y := v.startPos.Y() + (v.obstacleHeight+v.cfg.VaultArcHeight)*vmath.VaultArc(t)
	v.mover.SetPosition(mgl32.Vec3{x, y, z})

	if t >= 1 {
		v.mover.SetPosition(v.landingPos)
		v.finish(false)
	}
}

// finish re-enables the mover exactly once per vault.
func (v *VaultHandler) finish(canceled bool) {
	if !v.vaulting {
		return
	}
	v.vaulting = false
	v.mover.SetEnabled(true)
	v.cooldown = v.cfg.VaultCooldown
	v.bus.Publish(event.VaultEnd, VaultEvent{Start: v.startPos, Landing: v.landingPos, Canceled: canceled})
	slog.Debug("vault ended", "canceled", canceled)
}

// Cancel force-ends an active vault (damage, mode switch). The mover is
// restored before Cancel returns.
func (v *VaultHandler) Cancel() {
	if v == nil {
		return
	}
	v.finish(true)
}

func (v *VaultHandler) IsVaulting() bool {
	return v != nil && v.vaulting
}

// Progress is the interpolation parameter in [0, 1] of the active vault.
func (v *VaultHandler) Progress() float32 {
	if v == nil {
		return 0
	}
	return vmath.Clamp(v.progress, 0, 1)
}

// Direction is the horizontal traversal direction of the active vault; the
// controller turns the character toward it during the first half.
func (v *VaultHandler) Direction() mgl32.Vec3 {
	if v == nil {
		return mgl32.Vec3{}
	}
	return v.direction
}
