// Package locomotion converts directional input into collision-aware
// displacement per simulation tick, layering grounded movement, crouch,
// slide, jump/fall and vault on top of a single capsule mover.
package locomotion

import "github.com/go-gl/mathgl/mgl32"

// Snapshot is one tick's worth of input. Pressed fields are single-tick
// edges; Held fields are level signals.
type Snapshot struct {
	MoveX float32
	MoveY float32
	LookX float32
	LookY float32

	JumpPressed   bool
	JumpHeld      bool
	SprintHeld    bool
	CrouchPressed bool
	FirePressed   bool
	FireHeld      bool
	AimHeld       bool
	SlidePressed  bool
}

// Source supplies one input snapshot per tick. A nil Source degrades to a
// neutral snapshot.
type Source interface {
	Snapshot() Snapshot
}

// Rig is the camera/aim collaborator. Forward and Right are used flattened
// onto the horizontal plane.
type Rig interface {
	Forward() mgl32.Vec3
	Right() mgl32.Vec3
	Aiming() bool
}

// Mover is the capsule-mover primitive this core drives but does not
// implement. Move performs a collision-aware translation; whether that
// translation ended with ground contact is reported by GroundedAfterMove.
// SetPosition bypasses collision and works while the mover is disabled,
// which is how the vault path drives it.
type Mover interface {
	Move(delta mgl32.Vec3)
	GroundedAfterMove() bool

	Position() mgl32.Vec3
	SetPosition(pos mgl32.Vec3)

	Height() float32
	SetHeight(h float32)
	CenterOffset() float32
	SetCenterOffset(off float32)
	Radius() float32

	Enabled() bool
	SetEnabled(enabled bool)

	ProbeGround(maxDist float32) (normal mgl32.Vec3, ok bool)
	HasClearance(height float32) bool
}

// Vaultable describes an obstacle the character may vault over.
type Vaultable interface {
	ObstacleHeight() float32
	Duration() float32
	LandingPosition(from mgl32.Vec3) mgl32.Vec3
	VaultDirection(from mgl32.Vec3) mgl32.Vec3
	CanVaultFrom(pos, forward mgl32.Vec3) bool
}
