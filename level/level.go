// Package level defines the grid layout the simulation runs on: wall
// occupancy, start cells, and placed objects. Layouts are either generated
// randomly or loaded from JSON exports.
package level

import "math/rand"

// CellSize is the world-space size of one grid cell.
const CellSize float32 = 25

// GridVec is a cell coordinate.
type GridVec struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Layout holds one level: a row-major wall grid plus placement data.
type Layout struct {
	Walls []bool
	Size  int

	KeyPos       *GridVec
	DoorPos      *GridVec
	PlayerStart  *GridVec
	PursuerStart *GridVec
	Objects      []GridVec
}

// Wall reports whether the cell at (x, y) is a wall. Out-of-bounds cells
// count as walls.
func (l *Layout) Wall(x, y int) bool {
	if x < 0 || x >= l.Size || y < 0 || y >= l.Size {
		return true
	}
	return l.Walls[y*l.Size+x]
}

// CellToWorld returns the world-space origin of a grid cell. Entities placed
// "at" a cell sit on its origin; the observation encoder adds the half-cell
// offset when normalizing.
func CellToWorld(v GridVec) (x, y float32) {
	return float32(v.X) * CellSize, float32(v.Y) * CellSize
}

// Random generates a layout with independent per-cell wall probability and
// numObjects toggleable objects on free cells. Start cells for both agents
// and all object cells are guaranteed clear. The borders stay open; the
// visibility mesh generator treats the level edge as occluding anyway.
func Random(rng *rand.Rand, size int, wallProb float64, numObjects int) *Layout {
	l := &Layout{
		Walls: make([]bool, size*size),
		Size:  size,
	}
	for i := range l.Walls {
		l.Walls[i] = rng.Float64() < wallProb
	}

	playerStart := l.randomFreeCell(rng)
	pursuerStart := l.randomFreeCell(rng)
	l.PlayerStart = &playerStart
	l.PursuerStart = &pursuerStart

	for i := 0; i < numObjects; i++ {
		l.Objects = append(l.Objects, l.randomFreeCell(rng))
	}
	return l
}

// randomFreeCell picks a random cell, clearing it if it was a wall. This
// matches the generator's contract that placements are always reachable
// cells, at the cost of slightly lowering the effective wall density.
func (l *Layout) randomFreeCell(rng *rand.Rand) GridVec {
	v := GridVec{X: rng.Intn(l.Size), Y: rng.Intn(l.Size)}
	l.Walls[v.Y*l.Size+v.X] = false
	return v
}
