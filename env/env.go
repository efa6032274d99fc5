package env

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/torvend/pursuit/components"
	"github.com/torvend/pursuit/config"
	"github.com/torvend/pursuit/level"
	"github.com/torvend/pursuit/perception"
	"github.com/torvend/pursuit/systems"
)

// Env is a deterministic, single-threaded pursuit-evasion environment.
// Each Step advances the world by one fixed timestep, updates both agents'
// perception, and returns the serializable game state. Observation tensors
// for the current tick are available via Observations.
type Env struct {
	cfg *config.Config
	rng *rand.Rand

	world       *ecs.World
	agentMapper *ecs.Map3[components.Position, components.Agent, components.Observable]
	objMapper   *ecs.Map4[components.Position, components.NoiseSource, components.Observable, components.Pushable]

	posMap     *ecs.Map1[components.Position]
	agentMap   *ecs.Map1[components.Agent]
	noiseMap   *ecs.Map1[components.NoiseSource]
	pushMap    *ecs.Map1[components.Pushable]
	obsFilter  *ecs.Filter2[components.Position, components.Observable]
	srcFilter  *ecs.Filter2[components.Position, components.NoiseSource]

	spatial *systems.SpatialGrid
	layout  *level.Layout
	fixed   *level.Layout // externally loaded level reused on every reset

	player  ecs.Entity
	pursuer ecs.Entity
	started bool

	playerTracker  *perception.Tracker
	pursuerTracker *perception.Tracker

	playerState  perception.AgentState
	pursuerState perception.AgentState
	view         perception.WorldView

	pursuerFilter []float32 // externally supplied belief grid
	now           float32
	tick          int32
	entities      []ecs.Entity
}

// Options configures a new environment.
type Options struct {
	Seed  int64
	Level *level.Layout // nil = random level per episode
}

// New creates an environment. Call Reset before the first Step.
func New(cfg *config.Config, opts Options) *Env {
	world := ecs.NewWorld()
	size := float32(cfg.Level.Size) * level.CellSize

	e := &Env{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		world: world,
		agentMapper: ecs.NewMap3[
			components.Position,
			components.Agent,
			components.Observable,
		](world),
		objMapper: ecs.NewMap4[
			components.Position,
			components.NoiseSource,
			components.Observable,
			components.Pushable,
		](world),
		posMap:    ecs.NewMap1[components.Position](world),
		agentMap:  ecs.NewMap1[components.Agent](world),
		noiseMap:  ecs.NewMap1[components.NoiseSource](world),
		pushMap:   ecs.NewMap1[components.Pushable](world),
		obsFilter: ecs.NewFilter2[components.Position, components.Observable](world),
		srcFilter: ecs.NewFilter2[components.Position, components.NoiseSource](world),
		spatial:   systems.NewSpatialGrid(size, size, level.CellSize),
		fixed:     opts.Level,
	}
	return e
}

// Reset starts a new episode: rebuilds the level, respawns both agents and
// all objects, and clears perception memory. Returns the initial state.
func (e *Env) Reset() *GameState {
	for _, ent := range e.entities {
		e.world.RemoveEntity(ent)
	}
	e.entities = e.entities[:0]

	if e.fixed != nil {
		e.layout = e.fixed
	} else {
		e.layout = level.Random(e.rng, e.cfg.Level.Size, e.cfg.Level.WallProb, e.cfg.Level.Objects)
	}

	e.player = e.spawnAgent(e.layout.PlayerStart, components.KindPlayer)
	e.pursuer = e.spawnAgent(e.layout.PursuerStart, components.KindPursuer)
	for _, cell := range e.layout.Objects {
		e.spawnObject(cell)
	}

	e.playerTracker = perception.NewTracker()
	e.pursuerTracker = perception.NewTracker()
	e.now = 0
	e.tick = 0
	e.started = true

	cells := e.cfg.Level.Size * e.cfg.Level.Size
	e.pursuerFilter = uniformGrid(cells)

	e.perceive()
	return e.snapshot()
}

// Step advances the simulation by one fixed timestep with the given agent
// actions and returns the resulting state. Panics if Reset was never
// called; a scene without both agents is a caller contract violation.
func (e *Env) Step(playerAction, pursuerAction AgentAction) *GameState {
	if !e.started {
		panic("env: Step called before Reset")
	}

	e.applyAction(e.player, playerAction)
	e.applyAction(e.pursuer, pursuerAction)

	e.now += e.cfg.Derived.DT32
	e.tick++

	e.perceive()
	return e.snapshot()
}

// SetFilter installs the pursuer's belief grid for subsequent encodings.
// The engine consumes this grid; it never computes one.
func (e *Env) SetFilter(probs []float32) error {
	cells := e.cfg.Level.Size * e.cfg.Level.Size
	if len(probs) != cells {
		return fmt.Errorf("filter grid has %d cells, want %d", len(probs), cells)
	}
	copy(e.pursuerFilter, probs)
	return nil
}

// Observations encodes the current tick's observation tensors for both
// agents. The player's belief channel is uniform; the pursuer's carries
// the externally supplied filter grid.
func (e *Env) Observations() (player, pursuer perception.Observation, err error) {
	uniform := uniformGrid(e.cfg.Level.Size * e.cfg.Level.Size)
	player, err = perception.EncodeObservation(&e.playerState, &e.view, uniform)
	if err != nil {
		return
	}
	pursuer, err = perception.EncodeObservation(&e.pursuerState, &e.view, e.pursuerFilter)
	return
}

// Tick returns the current tick count within the episode.
func (e *Env) Tick() int32 { return e.tick }

// PlayerID returns the player's entity handle for the current episode.
func (e *Env) PlayerID() uint32 { return e.player.ID() }

// PursuerID returns the pursuer's entity handle for the current episode.
func (e *Env) PursuerID() uint32 { return e.pursuer.ID() }

// PursuerMemory returns the pursuer's tracked-entity count.
func (e *Env) PursuerMemory() int { return e.pursuerTracker.Len() }

// Layout returns the active level layout.
func (e *Env) Layout() *level.Layout { return e.layout }

func (e *Env) spawnAgent(start *level.GridVec, kind components.Kind) ecs.Entity {
	cell := level.GridVec{}
	if start != nil {
		cell = *start
	}
	x, y := level.CellToWorld(cell)
	pos := components.Position{X: x, Y: y}
	agent := components.Agent{DirX: 1, Kind: kind}
	ent := e.agentMapper.NewEntity(&pos, &agent, &components.Observable{})
	e.entities = append(e.entities, ent)
	return ent
}

func (e *Env) spawnObject(cell level.GridVec) ecs.Entity {
	x, y := level.CellToWorld(cell)
	pos := components.Position{X: x, Y: y}
	src := components.NoiseSource{
		NoiseRadius:  float32(e.cfg.Noise.Radius),
		ActiveRadius: float32(e.cfg.Noise.ActiveRadius),
	}
	ent := e.objMapper.NewEntity(&pos, &src, &components.Observable{}, &components.Pushable{})
	e.entities = append(e.entities, ent)
	return ent
}

// applyAction moves or toggles for one agent and refreshes its facing.
func (e *Env) applyAction(ent ecs.Entity, action AgentAction) {
	pos := e.posMap.Get(ent)
	agent := e.agentMap.Get(ent)
	dt := e.cfg.Derived.DT32

	if dir := action.Dir(); dir.X != 0 || dir.Y != 0 {
		agent.DirX = dir.X
		agent.DirY = dir.Y
		if systems.MoveAgent(pos, dir, float32(e.cfg.Physics.MoveSpeed), dt, e.layout) {
			e.rebuildSpatial()
			systems.PushNeighbors(
				e.spatial, ent, ent.ID(), *pos,
				float32(e.cfg.Noise.PushRadius),
				e.layout, e.posMap, e.pushMap,
			)
		}
	}

	if action.Toggles() && agent.Kind == components.KindPlayer {
		e.rebuildSpatial()
		systems.ToggleNearby(e.spatial, ent, *pos, float32(e.cfg.Noise.ToggleRange), e.posMap, e.noiseMap)
	}
}

func (e *Env) rebuildSpatial() {
	e.spatial.Clear()
	query := e.obsFilter.Query()
	for query.Next() {
		pos, _ := query.Get()
		e.spatial.Insert(query.Entity(), pos.X, pos.Y)
	}
}

// perceive rebuilds the world view and both agents' perceptual state for
// the current tick. Agents are processed sequentially without interleaving;
// each tracker is owned exclusively by its agent.
func (e *Env) perceive() {
	e.view = perception.WorldView{
		Size:     e.layout.Size,
		CellSize: level.CellSize,
		Walls:    e.layout.Walls,
		Objects:  make(map[uint32]perception.ObservableObject),
		Noise:    make(map[uint32]perception.NoiseSourceObject),
	}

	query := e.obsFilter.Query()
	for query.Next() {
		pos, _ := query.Get()
		e.view.Objects[query.Entity().ID()] = perception.ObservableObject{
			Pos: perception.Vec2{X: pos.X, Y: pos.Y},
		}
	}

	var emitters []perception.NoiseEmitter
	srcQuery := e.srcFilter.Query()
	for srcQuery.Next() {
		pos, src := srcQuery.Get()
		emitters = append(emitters, perception.NoiseEmitter{
			ID:           srcQuery.Entity().ID(),
			Pos:          perception.Vec2{X: pos.X, Y: pos.Y},
			NoiseRadius:  src.NoiseRadius,
			ActiveRadius: src.ActiveRadius,
			Activated:    src.Activated,
		})
		e.view.Noise[srcQuery.Entity().ID()] = perception.NoiseSourceObject{
			Pos:          perception.Vec2{X: pos.X, Y: pos.Y},
			ActiveRadius: src.ActiveRadius,
		}
	}
	sort.Slice(emitters, func(i, j int) bool { return emitters[i].ID < emitters[j].ID })

	e.playerState = e.perceiveAgent(e.player, e.playerTracker, emitters)
	e.pursuerState = e.perceiveAgent(e.pursuer, e.pursuerTracker, emitters)
}

func (e *Env) perceiveAgent(ent ecs.Entity, tracker *perception.Tracker, emitters []perception.NoiseEmitter) perception.AgentState {
	if !e.posMap.HasAll(ent) || !e.agentMap.HasAll(ent) {
		panic(fmt.Sprintf("env: agent entity %d missing required components", ent.ID()))
	}
	pos := e.posMap.Get(ent)
	agent := e.agentMap.Get(ent)

	p := perception.Vec2{X: pos.X, Y: pos.Y}
	dir := perception.Vec2{X: agent.DirX, Y: agent.DirY}

	mesh := systems.VisibilityMesh(p, dir, e.layout, systems.FOVConfig{
		Rays:  e.cfg.Vision.Rays,
		Angle: e.cfg.Derived.FOVRadians,
		Range: float32(e.cfg.Vision.Range),
	})

	// Entities in view, sorted by id so observation rows are reproducible.
	var observed []uint32
	positions := make(map[uint32]perception.Vec2)
	pushed := make(map[uint32]bool)
	for id, obj := range e.view.Objects {
		if id == ent.ID() {
			continue
		}
		if systems.ObservedIn(mesh, obj.Pos) {
			observed = append(observed, id)
			positions[id] = obj.Pos
		}
	}
	sort.Slice(observed, func(i, j int) bool { return observed[i] < observed[j] })

	for _, id := range observed {
		pushed[id] = e.lastPusher(id) == ent.ID()
	}

	tracker.Update(e.cfg.Derived.DT32, e.now, observed, positions, pushed)
	return perception.BuildAgentState(p, dir, mesh, observed, emitters, tracker, &e.view)
}

// lastPusher resolves the entity id that last displaced the given pushable,
// or 0 for agents and never-pushed objects.
func (e *Env) lastPusher(id uint32) uint32 {
	for _, ent := range e.entities {
		if ent.ID() != id {
			continue
		}
		if e.pushMap.HasAll(ent) {
			return e.pushMap.Get(ent).LastPusher
		}
		return 0
	}
	return 0
}

func uniformGrid(cells int) []float32 {
	grid := make([]float32, cells)
	v := 1 / float32(cells)
	for i := range grid {
		grid[i] = v
	}
	return grid
}
