package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Versifine/strider/internal/vmath"
)

// Obstacle describes a vaultable blocker: where it sits, how tall it is, how
// long the traversal takes, and how far past its center the character lands.
// It satisfies the locomotion core's Vaultable interface.
type Obstacle struct {
	Center         mgl32.Vec3
	Height         float32
	VaultDuration  float32
	TravelDistance float32
	// MinApproachDot rejects vaults from shallow angles; it is the minimum
	// dot product between the approach forward vector and the cross
	// direction. Zero means any frontal approach is accepted.
	MinApproachDot float32
}

func (o *Obstacle) ObstacleHeight() float32 {
	if o == nil {
		return 0
	}
	return o.Height
}

func (o *Obstacle) Duration() float32 {
	if o == nil {
		return 0
	}
	return o.VaultDuration
}

// VaultDirection is the flattened direction from the approach position
// toward the obstacle center.
func (o *Obstacle) VaultDirection(from mgl32.Vec3) mgl32.Vec3 {
	if o == nil {
		return mgl32.Vec3{}
	}
	return vmath.Flatten(o.Center.Sub(from))
}

// LandingPosition is the point TravelDistance past the approach position
// along the vault direction, at the approach height.
func (o *Obstacle) LandingPosition(from mgl32.Vec3) mgl32.Vec3 {
	if o == nil {
		return from
	}
	end := from.Add(o.VaultDirection(from).Mul(o.TravelDistance))
	return mgl32.Vec3{end.X(), from.Y(), end.Z()}
}

// CanVaultFrom accepts an approach when the mover is facing the obstacle
// closely enough.
func (o *Obstacle) CanVaultFrom(pos, forward mgl32.Vec3) bool {
	if o == nil {
		return false
	}
	dir := o.VaultDirection(pos)
	if dir.Len() <= 1e-6 {
		return false
	}
	min := o.MinApproachDot
	if min <= 0 {
		min = 0.5
	}
	return vmath.Flatten(forward).Dot(dir) >= min
}
