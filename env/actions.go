// Package env wraps the simulation in a gym-style reset/step interface and
// drives the perception engine once per tick for both agents.
package env

import (
	"math"

	"github.com/torvend/pursuit/perception"
)

// AgentAction is one discrete action an agent can take per tick.
type AgentAction uint8

const (
	ActionNone AgentAction = iota
	ActionMoveUp
	ActionMoveUpRight
	ActionMoveRight
	ActionMoveDownRight
	ActionMoveDown
	ActionMoveDownLeft
	ActionMoveLeft
	ActionMoveUpLeft
	ActionToggleObj

	// NumActions is the size of the discrete action space.
	NumActions = 10
)

var diag = float32(1 / math.Sqrt2)

// Dir returns the unit movement direction for the action. Non-movement
// actions return the zero vector.
func (a AgentAction) Dir() perception.Vec2 {
	switch a {
	case ActionMoveUp:
		return perception.Vec2{Y: 1}
	case ActionMoveUpRight:
		return perception.Vec2{X: diag, Y: diag}
	case ActionMoveRight:
		return perception.Vec2{X: 1}
	case ActionMoveDownRight:
		return perception.Vec2{X: diag, Y: -diag}
	case ActionMoveDown:
		return perception.Vec2{Y: -1}
	case ActionMoveDownLeft:
		return perception.Vec2{X: -diag, Y: -diag}
	case ActionMoveLeft:
		return perception.Vec2{X: -1}
	case ActionMoveUpLeft:
		return perception.Vec2{X: -diag, Y: diag}
	default:
		return perception.Vec2{}
	}
}

// Toggles reports whether the action toggles nearby objects.
func (a AgentAction) Toggles() bool {
	return a == ActionToggleObj
}
