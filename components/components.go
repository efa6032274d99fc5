// Package components defines ECS components for the simulation.
package components

// Kind distinguishes the two agents.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindPursuer
)

// String returns the display name for a Kind.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindPursuer:
		return "pursuer"
	default:
		return "unknown"
	}
}

// Position represents an entity's world position.
type Position struct {
	X, Y float32
}

// Agent holds agent-specific state: facing direction and role.
type Agent struct {
	DirX, DirY float32 // unit facing direction, +X at spawn
	Kind       Kind
}

// NoiseSource marks an entity that emits sound when activated.
// NoiseRadius bounds how far agents can hear it; ActiveRadius is exported
// as an observation feature.
type NoiseSource struct {
	NoiseRadius  float32
	ActiveRadius float32
	Activated    bool // set while the player has the source toggled on
}

// Observable tags entities that agents can see and track visually.
type Observable struct{}

// Pushable marks an entity that agents displace by walking into it.
// LastPusher records which agent caused the most recent displacement
// (0 = never pushed), feeding the pushed-by-self memory flag.
type Pushable struct {
	LastPusher uint32
}
