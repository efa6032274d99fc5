package perception

// SeenMemory records what an agent remembers about one tracked entity.
// While the entity is visible the record is refreshed every tick and
// LastSeenElapsed stays 0; once it leaves view the position and push flag
// freeze and only the elapsed time advances.
type SeenMemory struct {
	LastSeen        float32 // sim time of the most recent sighting
	LastSeenElapsed float32 // seconds since last visible, 0 while visible
	LastPos         Vec2    // position at last sighting
	PushedBySelf    bool    // last displacement was caused by the observing agent
}

// Tracker holds one agent's visual memory. Each agent owns exactly one
// Tracker; entries are created on first sighting and never evicted, so the
// table stays stable-shaped for encoding. Episodes are short enough that
// stale-entry growth is bounded in practice.
type Tracker struct {
	seen map[uint32]SeenMemory
}

// NewTracker returns an empty memory table.
func NewTracker() *Tracker {
	return &Tracker{seen: make(map[uint32]SeenMemory)}
}

// Update advances the memory table by one tick. Entities in observed are
// refreshed (elapsed reset to 0, position and push flag recorded); every
// other tracked entity ages by dt. now is the simulation clock supplied by
// the caller, never wall time, so re-running with the same inputs yields
// the same table.
func (t *Tracker) Update(dt, now float32, observed []uint32, positions map[uint32]Vec2, pushed map[uint32]bool) {
	visible := make(map[uint32]bool, len(observed))
	for _, id := range observed {
		pos, ok := positions[id]
		if !ok {
			continue
		}
		visible[id] = true
		t.seen[id] = SeenMemory{
			LastSeen:        now,
			LastSeenElapsed: 0,
			LastPos:         pos,
			PushedBySelf:    pushed[id],
		}
	}

	for id, mem := range t.seen {
		if visible[id] {
			continue
		}
		mem.LastSeenElapsed += dt
		t.seen[id] = mem
	}
}

// Get returns the memory entry for id, if one exists.
func (t *Tracker) Get(id uint32) (SeenMemory, bool) {
	mem, ok := t.seen[id]
	return mem, ok
}

// Len returns the number of tracked entities.
func (t *Tracker) Len() int {
	return len(t.seen)
}

// Snapshot returns a copy of the memory table for serialization.
func (t *Tracker) Snapshot() map[uint32]SeenMemory {
	out := make(map[uint32]SeenMemory, len(t.seen))
	for id, mem := range t.seen {
		out[id] = mem
	}
	return out
}
