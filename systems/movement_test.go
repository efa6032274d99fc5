package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/torvend/pursuit/components"
	"github.com/torvend/pursuit/perception"
)

func TestMoveAgent(t *testing.T) {
	lay := openLayout(10)

	tests := []struct {
		name      string
		start     components.Position
		dir       perception.Vec2
		wantMoved bool
		wantPos   components.Position
	}{
		{
			name:      "moves right",
			start:     components.Position{X: 100, Y: 100},
			dir:       perception.Vec2{X: 1, Y: 0},
			wantMoved: true,
			wantPos:   components.Position{X: 125, Y: 100},
		},
		{
			name:      "zero direction is a no-op",
			start:     components.Position{X: 100, Y: 100},
			dir:       perception.Vec2{},
			wantMoved: false,
			wantPos:   components.Position{X: 100, Y: 100},
		},
		{
			name:      "clamps at the level edge",
			start:     components.Position{X: 240, Y: 100},
			dir:       perception.Vec2{X: 1, Y: 0},
			wantMoved: true,
			wantPos:   components.Position{X: 249, Y: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := tt.start
			moved := MoveAgent(&pos, tt.dir, 50, 0.5, lay)
			if moved != tt.wantMoved {
				t.Errorf("moved = %v, want %v", moved, tt.wantMoved)
			}
			if pos != tt.wantPos {
				t.Errorf("pos = %+v, want %+v", pos, tt.wantPos)
			}
		})
	}
}

func TestMoveAgentBlockedByWall(t *testing.T) {
	lay := openLayout(10)
	lay.Walls[4*10+5] = true // cell (5, 4)

	pos := components.Position{X: 100, Y: 110}
	moved := MoveAgent(&pos, perception.Vec2{X: 1, Y: 0}, 50, 0.5, lay)

	if moved {
		t.Error("agent moved into a wall")
	}
	if pos.X != 100 || pos.Y != 110 {
		t.Errorf("pos = %+v, want unchanged", pos)
	}
}

// TestMoveAgentSlidesAlongWall blocks one axis and expects the other to
// still advance.
func TestMoveAgentSlidesAlongWall(t *testing.T) {
	lay := openLayout(10)
	lay.Walls[4*10+5] = true // cell (5, 4) blocks the X axis

	pos := components.Position{X: 100, Y: 110}
	dir := perception.Vec2{X: 1, Y: 1}.Normalize()
	moved := MoveAgent(&pos, dir, 50, 0.5, lay)

	if !moved {
		t.Fatal("agent should slide along the wall")
	}
	if pos.X != 100 {
		t.Errorf("pos.X = %f, want 100 (blocked)", pos.X)
	}
	if pos.Y <= 110 {
		t.Errorf("pos.Y = %f, want > 110 (free axis)", pos.Y)
	}
}

func TestPushNeighbors(t *testing.T) {
	lay := openLayout(10)
	world := ecs.NewWorld()
	agentMapper := ecs.NewMap1[components.Position](world)
	objMapper := ecs.NewMap2[components.Position, components.Pushable](world)
	posMap := ecs.NewMap1[components.Position](world)
	pushMap := ecs.NewMap1[components.Pushable](world)

	self := agentMapper.NewEntity(&components.Position{X: 100, Y: 100})
	obj := objMapper.NewEntity(
		&components.Position{X: 105, Y: 100},
		&components.Pushable{},
	)

	grid := NewSpatialGrid(250, 250, 25)
	grid.Insert(obj, 105, 100)

	PushNeighbors(grid, self, 7, components.Position{X: 100, Y: 100}, 12, lay, posMap, pushMap)

	got := posMap.Get(obj)
	if got.X != 112 || got.Y != 100 {
		t.Errorf("object at (%f, %f), want (112, 100)", got.X, got.Y)
	}
	if push := pushMap.Get(obj); push.LastPusher != 7 {
		t.Errorf("LastPusher = %d, want 7", push.LastPusher)
	}
}

func TestPushNeighborsBlockedByWall(t *testing.T) {
	lay := openLayout(10)
	lay.Walls[4*10+4] = true // cell (4, 4) holds the push target

	world := ecs.NewWorld()
	agentMapper := ecs.NewMap1[components.Position](world)
	objMapper := ecs.NewMap2[components.Position, components.Pushable](world)
	posMap := ecs.NewMap1[components.Position](world)
	pushMap := ecs.NewMap1[components.Pushable](world)

	self := agentMapper.NewEntity(&components.Position{X: 100, Y: 100})
	obj := objMapper.NewEntity(
		&components.Position{X: 105, Y: 100},
		&components.Pushable{},
	)

	grid := NewSpatialGrid(250, 250, 25)
	grid.Insert(obj, 105, 100)

	PushNeighbors(grid, self, 7, components.Position{X: 100, Y: 100}, 12, lay, posMap, pushMap)

	got := posMap.Get(obj)
	if got.X != 105 || got.Y != 100 {
		t.Errorf("object moved to (%f, %f), want unchanged", got.X, got.Y)
	}
	if push := pushMap.Get(obj); push.LastPusher != 0 {
		t.Errorf("LastPusher = %d, want 0 for a blocked push", push.LastPusher)
	}
}

func TestPushNeighborsIgnoresNonPushable(t *testing.T) {
	lay := openLayout(10)
	world := ecs.NewWorld()
	mapper := ecs.NewMap1[components.Position](world)
	posMap := ecs.NewMap1[components.Position](world)
	pushMap := ecs.NewMap1[components.Pushable](world)

	self := mapper.NewEntity(&components.Position{X: 100, Y: 100})
	other := mapper.NewEntity(&components.Position{X: 105, Y: 100})

	grid := NewSpatialGrid(250, 250, 25)
	grid.Insert(other, 105, 100)

	PushNeighbors(grid, self, 7, components.Position{X: 100, Y: 100}, 12, lay, posMap, pushMap)

	got := posMap.Get(other)
	if got.X != 105 || got.Y != 100 {
		t.Errorf("non-pushable entity moved to (%f, %f)", got.X, got.Y)
	}
}
