package perception

// NoiseEmitter is a noise-producing entity tested against an agent's
// position. NoiseRadius bounds how far the sound carries; ActiveRadius is
// the radius reported to the encoder as a feature, not a detection bound.
type NoiseEmitter struct {
	ID           uint32
	Pos          Vec2
	NoiseRadius  float32
	ActiveRadius float32
	Activated    bool
}

// HeardBy returns the ids of emitters the agent at pos can hear: activated
// and within NoiseRadius. Comparison is on squared distance. Inclusion is
// binary and the input order is preserved, so callers that supply emitters
// sorted by id get deterministic observation rows.
func HeardBy(pos Vec2, emitters []NoiseEmitter) []uint32 {
	var heard []uint32
	for _, e := range emitters {
		if !e.Activated {
			continue
		}
		if e.Pos.Sub(pos).LengthSq() <= e.NoiseRadius*e.NoiseRadius {
			heard = append(heard, e.ID)
		}
	}
	return heard
}
