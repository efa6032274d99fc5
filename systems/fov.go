package systems

import (
	"math"

	"github.com/torvend/pursuit/level"
	"github.com/torvend/pursuit/perception"
)

// FOVConfig holds the vision-cone parameters for mesh generation.
type FOVConfig struct {
	Rays    int     // rays cast across the cone
	Angle   float32 // cone width in radians; 2*pi for omnidirectional
	Range   float32 // maximum sight distance in world units
	RayStep float32 // march step along each ray
}

// VisibilityMesh casts a fan of rays from pos against the wall grid and
// returns the visible region as a triangle fan. The mesh is what the
// perception engine rasterizes; it is regenerated every tick and never
// cached. A zero facing direction falls back to +X so the cone is always
// well defined.
func VisibilityMesh(pos, dir perception.Vec2, lay *level.Layout, cfg FOVConfig) []perception.Triangle {
	if dir.X == 0 && dir.Y == 0 {
		dir = perception.Vec2{X: 1}
	}
	heading := float32(math.Atan2(float64(dir.Y), float64(dir.X)))

	full := cfg.Angle >= 2*math.Pi-1e-4
	rays := cfg.Rays
	if rays < 3 {
		rays = 3
	}

	// A cone needs rays+1 fence posts; a full circle wraps the last ray
	// back onto the first.
	posts := rays + 1
	ends := make([]perception.Vec2, posts)
	for i := 0; i < posts; i++ {
		t := float32(i) / float32(rays)
		angle := heading + (t-0.5)*cfg.Angle
		ends[i] = castRay(pos, angle, lay, cfg)
	}
	if full {
		ends[posts-1] = ends[0]
	}

	tris := make([]perception.Triangle, 0, rays)
	for i := 0; i < rays; i++ {
		tris = append(tris, perception.Triangle{pos, ends[i], ends[i+1]})
	}
	return tris
}

// castRay marches from pos along angle until it enters a wall cell or
// exhausts the range, returning the last open point.
func castRay(pos perception.Vec2, angle float32, lay *level.Layout, cfg FOVConfig) perception.Vec2 {
	dx := float32(math.Cos(float64(angle)))
	dy := float32(math.Sin(float64(angle)))

	step := cfg.RayStep
	if step <= 0 {
		step = level.CellSize / 4
	}

	last := pos
	for d := step; d <= cfg.Range; d += step {
		p := perception.Vec2{X: pos.X + dx*d, Y: pos.Y + dy*d}
		cx := int(p.X / level.CellSize)
		cy := int(p.Y / level.CellSize)
		if lay.Wall(cx, cy) {
			return last
		}
		last = p
	}
	return last
}

// ObservedIn reports whether a world point lies inside the visibility mesh.
// This is the line-of-sight test that decides which entities an agent is
// currently observing.
func ObservedIn(mesh []perception.Triangle, p perception.Vec2) bool {
	for _, tri := range mesh {
		if tri.Contains(p) {
			return true
		}
	}
	return false
}
