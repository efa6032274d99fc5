package perception

// ObservableObject is the world-position record for a trackable entity.
type ObservableObject struct {
	Pos Vec2
}

// NoiseSourceObject is the feature record for a noise source.
type NoiseSourceObject struct {
	Pos          Vec2
	ActiveRadius float32
}

// WorldView is the plain-data slice of world state the engine consumes each
// tick. The substrate adapter fills it from whatever entity store it uses;
// no ECS types cross this boundary.
type WorldView struct {
	Size     int
	CellSize float32
	Walls    []bool // row-major, Size*Size, true = wall

	Objects map[uint32]ObservableObject
	Noise   map[uint32]NoiseSourceObject
}

// AgentState is one agent's perceptual snapshot for a single tick. It is
// rebuilt in full every step from current world state plus the agent's
// persisted Tracker; only the memory map carries state across ticks.
type AgentState struct {
	Pos Vec2
	Dir Vec2

	Observing []uint32 // entities currently in view, sorted by id
	Listening []uint32 // emitters currently heard, in emitter order

	Memory       map[uint32]SeenMemory
	VisibleCells []float32 // coverage fractions, Size*Size
}

// BuildAgentState assembles the per-tick snapshot: rasterizes the agent's
// visibility mesh, runs the hearing check, and attaches the current memory
// table. observed must already be sorted by id; the encoder assigns
// observation rows in this order and the assignment must be reproducible.
func BuildAgentState(pos, dir Vec2, tris []Triangle, observed []uint32, emitters []NoiseEmitter, tracker *Tracker, view *WorldView) AgentState {
	return AgentState{
		Pos:          pos,
		Dir:          dir,
		Observing:    observed,
		Listening:    HeardBy(pos, emitters),
		Memory:       tracker.Snapshot(),
		VisibleCells: RasterizeVisibility(tris, view.Size, view.CellSize),
	}
}
