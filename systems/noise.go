package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/torvend/pursuit/components"
)

// ToggleNearby flips the activation flag on every noise source within
// toggle range of the acting agent. Only the player toggles objects, so an
// activated source is always evidence of player activity.
func ToggleNearby(
	grid *SpatialGrid,
	self ecs.Entity,
	pos components.Position,
	toggleRange float32,
	posMap *ecs.Map1[components.Position],
	noiseMap *ecs.Map1[components.NoiseSource],
) int {
	toggled := 0
	neighbors := grid.QueryRadiusInto(nil, pos.X, pos.Y, toggleRange, self, posMap)
	for _, n := range neighbors {
		if !noiseMap.HasAll(n.E) {
			continue
		}
		src := noiseMap.Get(n.E)
		src.Activated = !src.Activated
		toggled++
	}
	return toggled
}
