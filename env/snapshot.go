package env

import (
	"github.com/torvend/pursuit/perception"
)

// Vec2JSON is the wire form of a 2D point.
type Vec2JSON struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// MemoryJSON is the wire form of one visual-memory entry.
type MemoryJSON struct {
	LastSeen        float32  `json:"last_seen"`
	LastSeenElapsed float32  `json:"last_seen_elapsed"`
	LastPos         Vec2JSON `json:"last_pos"`
	PushedBySelf    bool     `json:"pushed_by_self"`
}

// ObjectJSON is the wire form of an observable object record.
type ObjectJSON struct {
	Pos Vec2JSON `json:"pos"`
}

// NoiseSourceJSON is the wire form of a noise source record.
type NoiseSourceJSON struct {
	Pos          Vec2JSON `json:"pos"`
	ActiveRadius float32  `json:"active_radius"`
}

// AgentSnapshot holds the raw perception facts for one agent on one tick:
// structured rather than tensor-encoded, for consumers (such as a
// cross-language binding) that re-export identities as opaque handles.
type AgentSnapshot struct {
	Pos          Vec2JSON              `json:"pos"`
	Dir          Vec2JSON              `json:"dir"`
	Observing    []uint32              `json:"observing"`
	Listening    []uint32              `json:"listening"`
	Memory       map[uint32]MemoryJSON `json:"vm_data"`
	VisibleCells []float32             `json:"visible_cells"`
}

// GameState is the full serializable state of one tick.
type GameState struct {
	Tick         int32                      `json:"tick"`
	Player       AgentSnapshot              `json:"player"`
	Pursuer      AgentSnapshot              `json:"pursuer"`
	Walls        []bool                     `json:"walls"`
	LevelSize    int                        `json:"level_size"`
	Objects      map[uint32]ObjectJSON      `json:"objects"`
	NoiseSources map[uint32]NoiseSourceJSON `json:"noise_sources"`
}

// snapshot builds the tick's GameState from the current perception states.
func (e *Env) snapshot() *GameState {
	objects := make(map[uint32]ObjectJSON, len(e.view.Objects))
	for id, obj := range e.view.Objects {
		objects[id] = ObjectJSON{Pos: Vec2JSON{obj.Pos.X, obj.Pos.Y}}
	}
	sources := make(map[uint32]NoiseSourceJSON, len(e.view.Noise))
	for id, src := range e.view.Noise {
		sources[id] = NoiseSourceJSON{
			Pos:          Vec2JSON{src.Pos.X, src.Pos.Y},
			ActiveRadius: src.ActiveRadius,
		}
	}

	return &GameState{
		Tick:         e.tick,
		Player:       agentSnapshot(&e.playerState),
		Pursuer:      agentSnapshot(&e.pursuerState),
		Walls:        e.layout.Walls,
		LevelSize:    e.layout.Size,
		Objects:      objects,
		NoiseSources: sources,
	}
}

func agentSnapshot(state *perception.AgentState) AgentSnapshot {
	memory := make(map[uint32]MemoryJSON, len(state.Memory))
	for id, mem := range state.Memory {
		memory[id] = MemoryJSON{
			LastSeen:        mem.LastSeen,
			LastSeenElapsed: mem.LastSeenElapsed,
			LastPos:         Vec2JSON{mem.LastPos.X, mem.LastPos.Y},
			PushedBySelf:    mem.PushedBySelf,
		}
	}
	return AgentSnapshot{
		Pos:          Vec2JSON{state.Pos.X, state.Pos.Y},
		Dir:          Vec2JSON{state.Dir.X, state.Dir.Y},
		Observing:    state.Observing,
		Listening:    state.Listening,
		Memory:       memory,
		VisibleCells: state.VisibleCells,
	}
}
