package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/torvend/pursuit/components"
	"github.com/torvend/pursuit/level"
	"github.com/torvend/pursuit/perception"
)

// MoveAgent integrates an agent's position along a unit direction at the
// given speed, blocking against wall cells per axis so agents slide along
// walls instead of sticking to them. Returns whether the position changed.
func MoveAgent(pos *components.Position, dir perception.Vec2, speed, dt float32, lay *level.Layout) bool {
	if dir.X == 0 && dir.Y == 0 {
		return false
	}

	span := float32(lay.Size) * level.CellSize
	moved := false

	nx := clampf(pos.X+dir.X*speed*dt, 0, span-1)
	if !lay.Wall(int(nx/level.CellSize), int(pos.Y/level.CellSize)) && nx != pos.X {
		pos.X = nx
		moved = true
	}

	ny := clampf(pos.Y+dir.Y*speed*dt, 0, span-1)
	if !lay.Wall(int(pos.X/level.CellSize), int(ny/level.CellSize)) && ny != pos.Y {
		pos.Y = ny
		moved = true
	}

	return moved
}

// PushNeighbors displaces pushable entities the agent has walked into,
// moving each one radially out to the contact radius and recording the
// pusher. Objects never get pushed into walls or out of the level.
func PushNeighbors(
	grid *SpatialGrid,
	self ecs.Entity,
	selfID uint32,
	pos components.Position,
	radius float32,
	lay *level.Layout,
	posMap *ecs.Map1[components.Position],
	pushMap *ecs.Map1[components.Pushable],
) {
	neighbors := grid.QueryRadiusInto(nil, pos.X, pos.Y, radius, self, posMap)
	for _, n := range neighbors {
		if !pushMap.HasAll(n.E) {
			continue
		}
		push := pushMap.Get(n.E)

		away := perception.Vec2{X: n.DX, Y: n.DY}.Normalize()
		if away.X == 0 && away.Y == 0 {
			away = perception.Vec2{X: 1}
		}

		target := perception.Vec2{
			X: pos.X + away.X*radius,
			Y: pos.Y + away.Y*radius,
		}
		span := float32(lay.Size) * level.CellSize
		target.X = clampf(target.X, 0, span-1)
		target.Y = clampf(target.Y, 0, span-1)
		if lay.Wall(int(target.X/level.CellSize), int(target.Y/level.CellSize)) {
			continue
		}

		nPos := posMap.Get(n.E)
		nPos.X = target.X
		nPos.Y = target.Y
		push.LastPusher = selfID
	}
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
