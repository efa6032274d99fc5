// Package perception implements the partial-observability engine: field-of-view
// rasterization, hearing checks, per-entity visual memory, and the fixed-shape
// observation encoding consumed by a learning controller.
//
// The package operates on plain data only. The simulation substrate (ECS,
// physics, level generation) extracts these structures and calls in once per
// tick; nothing here blocks, allocates global state, or spawns goroutines.
package perception

import "math"

// Vec2 is a 2D point or direction in world units.
type Vec2 struct {
	X, Y float32
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// LengthSq returns the squared length of v.
func (v Vec2) LengthSq() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Length returns the length of v.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.LengthSq())))
}

// Normalize returns v scaled to unit length. The zero vector normalizes to
// the zero vector rather than NaN, since NaNs in a direction would corrupt
// every tensor built from it downstream.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Triangle is one piece of an agent's visible region. Vertex order is not
// significant; the rasterizer sorts vertices itself.
type Triangle [3]Vec2

// Contains reports whether p lies inside the triangle (inclusive of edges).
// Uses the sign of the three edge cross products.
func (t Triangle) Contains(p Vec2) bool {
	d1 := edgeSign(p, t[0], t[1])
	d2 := edgeSign(p, t[1], t[2])
	d3 := edgeSign(p, t[2], t[0])

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func edgeSign(p, a, b Vec2) float32 {
	return (p.X-b.X)*(a.Y-b.Y) - (a.X-b.X)*(p.Y-b.Y)
}
