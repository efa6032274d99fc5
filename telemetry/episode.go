// Package telemetry collects per-episode statistics, writes CSV logs, and
// saves game-state snapshots for offline inspection.
package telemetry

// EpisodeRecord holds one episode's aggregate statistics.
type EpisodeRecord struct {
	Episode       int     `csv:"episode"`
	Seed          int64   `csv:"seed"`
	Ticks         int     `csv:"ticks"`
	PlayerSeen    int     `csv:"player_seen"`    // ticks the pursuer had the player in view
	PlayerHeard   int     `csv:"player_heard"`   // ticks the pursuer heard an active source
	TrackedCount  int     `csv:"tracked"`        // pursuer memory entries at episode end
	MeanCoverage  float64 `csv:"mean_coverage"`  // mean pursuer visibility coverage per tick
	FinalDistance float64 `csv:"final_distance"` // pursuer-player distance at episode end
}

// Collector accumulates step facts into an EpisodeRecord.
type Collector struct {
	record      EpisodeRecord
	coverageSum float64
}

// NewCollector starts collection for one episode.
func NewCollector(episode int, seed int64) *Collector {
	return &Collector{record: EpisodeRecord{Episode: episode, Seed: seed}}
}

// RecordStep folds one tick's perception facts into the episode record.
func (c *Collector) RecordStep(sawPlayer, heardAny bool, meanCoverage float64) {
	c.record.Ticks++
	if sawPlayer {
		c.record.PlayerSeen++
	}
	if heardAny {
		c.record.PlayerHeard++
	}
	c.coverageSum += meanCoverage
}

// Finish closes out the episode and returns the record.
func (c *Collector) Finish(trackedCount int, finalDistance float64) EpisodeRecord {
	c.record.TrackedCount = trackedCount
	c.record.FinalDistance = finalDistance
	if c.record.Ticks > 0 {
		c.record.MeanCoverage = c.coverageSum / float64(c.record.Ticks)
	}
	return c.record
}
