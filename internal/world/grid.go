// Package world provides the sandbox collision environment: a block grid the
// reference mover sweeps against, and trigger zones for vaultable obstacles.
package world

import "sync"

type Pos struct {
	X int
	Y int
	Z int
}

// Grid is an in-memory block grid. Every solid cell is a unit cube with its
// minimum corner at the cell coordinates.
type Grid struct {
	mu    sync.RWMutex
	solid map[Pos]struct{}
}

func NewGrid() *Grid {
	return &Grid{solid: make(map[Pos]struct{})}
}

func (g *Grid) SetSolid(x, y, z int) {
	if g == nil {
		return
	}
	g.mu.Lock()
	g.solid[Pos{x, y, z}] = struct{}{}
	g.mu.Unlock()
}

func (g *Grid) ClearSolid(x, y, z int) {
	if g == nil {
		return
	}
	g.mu.Lock()
	delete(g.solid, Pos{x, y, z})
	g.mu.Unlock()
}

func (g *Grid) IsSolid(x, y, z int) bool {
	if g == nil {
		return false
	}
	g.mu.RLock()
	_, ok := g.solid[Pos{x, y, z}]
	g.mu.RUnlock()
	return ok
}

// FillBox marks every cell in the inclusive range [min, max] solid.
func (g *Grid) FillBox(min, max Pos) {
	if g == nil {
		return
	}
	g.mu.Lock()
	for y := min.Y; y <= max.Y; y++ {
		for x := min.X; x <= max.X; x++ {
			for z := min.Z; z <= max.Z; z++ {
				g.solid[Pos{x, y, z}] = struct{}{}
			}
		}
	}
	g.mu.Unlock()
}

// FillFloor lays a one-cell-thick floor at height y.
func (g *Grid) FillFloor(minX, maxX, minZ, maxZ, y int) {
	g.FillBox(Pos{minX, y, minZ}, Pos{maxX, y, maxZ})
}
