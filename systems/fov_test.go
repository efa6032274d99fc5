package systems

import (
	"math"
	"testing"

	"github.com/torvend/pursuit/level"
	"github.com/torvend/pursuit/perception"
)

func openLayout(size int) *level.Layout {
	return &level.Layout{Walls: make([]bool, size*size), Size: size}
}

func coneConfig() FOVConfig {
	return FOVConfig{Rays: 64, Angle: math.Pi / 2, Range: 150}
}

func TestVisibilityMeshCone(t *testing.T) {
	lay := openLayout(10)
	pos := perception.Vec2{X: 137.5, Y: 137.5}
	dir := perception.Vec2{X: 1, Y: 0}

	mesh := VisibilityMesh(pos, dir, lay, coneConfig())

	if len(mesh) != 64 {
		t.Fatalf("mesh has %d triangles, want 64", len(mesh))
	}

	tests := []struct {
		name string
		p    perception.Vec2
		want bool
	}{
		{"directly ahead", perception.Vec2{X: 200, Y: 137.5}, true},
		{"behind", perception.Vec2{X: 62.5, Y: 137.5}, false},
		{"beyond range", perception.Vec2{X: 300, Y: 137.5}, false},
		{"ahead and above within cone", perception.Vec2{X: 200, Y: 160}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ObservedIn(mesh, tt.p); got != tt.want {
				t.Errorf("ObservedIn(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestVisibilityMeshWallOcclusion(t *testing.T) {
	lay := openLayout(10)
	lay.Walls[5*10+7] = true // wall directly ahead of the agent

	pos := perception.Vec2{X: 137.5, Y: 137.5}
	dir := perception.Vec2{X: 1, Y: 0}
	mesh := VisibilityMesh(pos, dir, lay, coneConfig())

	before := perception.Vec2{X: 162.5, Y: 137.5}
	behind := perception.Vec2{X: 212.5, Y: 137.5}

	if !ObservedIn(mesh, before) {
		t.Errorf("point %v in front of the wall should be visible", before)
	}
	if ObservedIn(mesh, behind) {
		t.Errorf("point %v behind the wall should be occluded", behind)
	}
}

func TestVisibilityMeshFullCircle(t *testing.T) {
	lay := openLayout(10)
	pos := perception.Vec2{X: 137.5, Y: 137.5}
	cfg := FOVConfig{Rays: 64, Angle: 2 * math.Pi, Range: 150}

	mesh := VisibilityMesh(pos, perception.Vec2{X: 1}, lay, cfg)

	behind := perception.Vec2{X: 62.5, Y: 137.5}
	if !ObservedIn(mesh, behind) {
		t.Errorf("omnidirectional mesh should cover point %v behind the agent", behind)
	}
}

// TestVisibilityMeshZeroDirection checks the +X fallback for an agent that
// has not moved yet.
func TestVisibilityMeshZeroDirection(t *testing.T) {
	lay := openLayout(10)
	pos := perception.Vec2{X: 137.5, Y: 137.5}

	mesh := VisibilityMesh(pos, perception.Vec2{}, lay, coneConfig())

	if !ObservedIn(mesh, perception.Vec2{X: 200, Y: 137.5}) {
		t.Error("zero direction should default to facing +X")
	}
	if ObservedIn(mesh, perception.Vec2{X: 62.5, Y: 137.5}) {
		t.Error("zero direction cone should not cover the point behind")
	}
}
