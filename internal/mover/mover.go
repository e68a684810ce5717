// Package mover provides BoxMover, the reference capsule-mover primitive.
// The capsule is approximated by an axis-aligned box swept against a block
// grid one axis at a time. The locomotion core only sees the Mover interface,
// so any engine-backed implementation can replace this one.
package mover

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Versifine/strider/internal/vmath"
)

// BlockSource answers solidity queries for unit cells.
type BlockSource interface {
	IsSolid(x, y, z int) bool
}

const (
	axisTolerance      = 1e-5
	groundContactDepth = 0.003
	clearanceEpsilon   = 0.01
)

// BoxMover is a collision-aware translation primitive over a block grid.
// Its position is the character's feet; the collision box spans
// [pos.Y + centerOffset - height/2, pos.Y + centerOffset + height/2]
// vertically and pos ± radius horizontally.
type BoxMover struct {
	blocks BlockSource

	pos          mgl32.Vec3
	height       float32
	radius       float32
	centerOffset float32

	enabled  bool
	grounded bool
}

func New(blocks BlockSource, pos mgl32.Vec3, height, radius float32) *BoxMover {
	return &BoxMover{
		blocks:       blocks,
		pos:          pos,
		height:       height,
		radius:       radius,
		centerOffset: height / 2,
		enabled:      true,
	}
}

func (m *BoxMover) Position() mgl32.Vec3 { return m.pos }

func (m *BoxMover) SetPosition(pos mgl32.Vec3) { m.pos = pos }

func (m *BoxMover) Height() float32 { return m.height }

func (m *BoxMover) SetHeight(h float32) {
	if h > 0 {
		m.height = h
	}
}

func (m *BoxMover) CenterOffset() float32 { return m.centerOffset }

func (m *BoxMover) SetCenterOffset(off float32) { m.centerOffset = off }

func (m *BoxMover) Radius() float32 { return m.radius }

func (m *BoxMover) Enabled() bool { return m.enabled }

func (m *BoxMover) SetEnabled(enabled bool) { m.enabled = enabled }

// GroundedAfterMove reports whether the last Move ended with ground contact.
func (m *BoxMover) GroundedAfterMove() bool { return m.grounded }

// Bounds returns the current collision box.
func (m *BoxMover) Bounds() (min, max mgl32.Vec3) {
	return m.boundsAt(m.pos, m.height, m.centerOffset)
}

func (m *BoxMover) boundsAt(pos mgl32.Vec3, height, centerOffset float32) (mgl32.Vec3, mgl32.Vec3) {
	bottom := pos.Y() + centerOffset - height/2
	min := mgl32.Vec3{pos.X() - m.radius, bottom, pos.Z() - m.radius}
	max := mgl32.Vec3{pos.X() + m.radius, bottom + height, pos.Z() + m.radius}
	return min, max
}

// Move translates the box by delta, resolving collisions per axis in
// Y, X, Z order, and refreshes the grounded-after-move flag. A disabled
// mover ignores the call.
func (m *BoxMover) Move(delta mgl32.Vec3) {
	if m == nil || !m.enabled {
		return
	}
	pos := m.pos
	pos[1] += m.sweep(pos, delta.Y(), 1)
	pos[0] += m.sweep(pos, delta.X(), 0)
	pos[2] += m.sweep(pos, delta.Z(), 2)
	m.pos = pos
	m.grounded = m.contactBelow(groundContactDepth)
}

// ProbeGround casts the box down by maxDist and reports the surface normal
// of the first contact. A block grid only yields flat normals.
func (m *BoxMover) ProbeGround(maxDist float32) (mgl32.Vec3, bool) {
	if m == nil || maxDist <= 0 {
		return vmath.Up, false
	}
	if m.contactBelow(maxDist) {
		return vmath.Up, true
	}
	return vmath.Up, false
}

// HasClearance reports whether the box could extend to the given height at
// the current position without intersecting solids. The bottom face is
// lifted slightly so the floor under the feet does not count.
func (m *BoxMover) HasClearance(height float32) bool {
	if m == nil {
		return false
	}
	min, max := m.boundsAt(m.pos, height, height/2)
	min[1] += clearanceEpsilon
	return !m.collides(min, max)
}

func (m *BoxMover) contactBelow(depth float32) bool {
	min, max := m.Bounds()
	max[1] = min.Y()
	min[1] -= depth
	return m.collides(min, max)
}

// sweep returns the allowed portion of a delta along one axis, shrinking it
// to the first solid cell in the way.
func (m *BoxMover) sweep(pos mgl32.Vec3, delta float32, axis int) float32 {
	if m.blocks == nil || math32.Abs(delta) <= axisTolerance {
		return delta
	}
	min, max := m.boundsAt(pos, m.height, m.centerOffset)
	allowed := delta

	lo, hi := min, max
	if delta > 0 {
		lo[axis] = max[axis]
		hi[axis] = max[axis] + delta
	} else {
		lo[axis] = min[axis] + delta
		hi[axis] = min[axis]
	}

	for _, cell := range m.solidCellsIn(lo, hi) {
		var candidate float32
		if delta > 0 {
			candidate = float32(cell[axis]) - max[axis]
		} else {
			candidate = float32(cell[axis]+1) - min[axis]
		}
		if delta > 0 && candidate < allowed {
			allowed = candidate
		} else if delta < 0 && candidate > allowed {
			allowed = candidate
		}
	}
	if allowed > 0 && delta > 0 {
		return vmath.Clamp(allowed, 0, delta)
	}
	if allowed < 0 && delta < 0 {
		return vmath.Clamp(allowed, delta, 0)
	}
	return 0
}

func (m *BoxMover) collides(min, max mgl32.Vec3) bool {
	return len(m.solidCellsIn(min, max)) > 0
}

func (m *BoxMover) solidCellsIn(min, max mgl32.Vec3) [][3]int {
	if m.blocks == nil {
		return nil
	}
	minX, maxX := cellRange(min.X(), max.X())
	minY, maxY := cellRange(min.Y(), max.Y())
	minZ, maxZ := cellRange(min.Z(), max.Z())

	var cells [][3]int
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			for z := minZ; z <= maxZ; z++ {
				if m.blocks.IsSolid(x, y, z) {
					cells = append(cells, [3]int{x, y, z})
				}
			}
		}
	}
	return cells
}

func cellRange(lo, hi float32) (int, int) {
	return int(math32.Floor(lo + axisTolerance)), int(math32.Floor(hi - axisTolerance))
}
