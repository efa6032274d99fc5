package telemetry

import (
	"math"
	"testing"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCollector(t *testing.T) {
	c := NewCollector(3, 99)

	c.RecordStep(true, false, 0.2)
	c.RecordStep(true, true, 0.4)
	c.RecordStep(false, false, 0.6)
	c.RecordStep(false, true, 0.8)

	rec := c.Finish(5, 42.5)

	if rec.Episode != 3 || rec.Seed != 99 {
		t.Errorf("identity = (%d, %d), want (3, 99)", rec.Episode, rec.Seed)
	}
	if rec.Ticks != 4 {
		t.Errorf("Ticks = %d, want 4", rec.Ticks)
	}
	if rec.PlayerSeen != 2 {
		t.Errorf("PlayerSeen = %d, want 2", rec.PlayerSeen)
	}
	if rec.PlayerHeard != 2 {
		t.Errorf("PlayerHeard = %d, want 2", rec.PlayerHeard)
	}
	if rec.TrackedCount != 5 {
		t.Errorf("TrackedCount = %d, want 5", rec.TrackedCount)
	}
	if rec.FinalDistance != 42.5 {
		t.Errorf("FinalDistance = %f, want 42.5", rec.FinalDistance)
	}
	if !near(rec.MeanCoverage, 0.5) {
		t.Errorf("MeanCoverage = %f, want 0.5", rec.MeanCoverage)
	}
}

func TestCollectorEmptyEpisode(t *testing.T) {
	rec := NewCollector(0, 1).Finish(0, 0)
	if rec.MeanCoverage != 0 {
		t.Errorf("MeanCoverage = %f, want 0 for a zero-tick episode", rec.MeanCoverage)
	}
}

func TestAggregate(t *testing.T) {
	records := []EpisodeRecord{
		{Ticks: 100, PlayerSeen: 10, PlayerHeard: 4, MeanCoverage: 0.2},
		{Ticks: 200, PlayerSeen: 30, PlayerHeard: 6, MeanCoverage: 0.4},
	}

	s := Aggregate(records)

	if s.Episodes != 2 {
		t.Errorf("Episodes = %d, want 2", s.Episodes)
	}
	if s.TicksMean != 150 {
		t.Errorf("TicksMean = %f, want 150", s.TicksMean)
	}
	if s.SeenMean != 20 {
		t.Errorf("SeenMean = %f, want 20", s.SeenMean)
	}
	if s.HeardMean != 5 {
		t.Errorf("HeardMean = %f, want 5", s.HeardMean)
	}
	if !near(s.CoverageMean, 0.3) {
		t.Errorf("CoverageMean = %f, want 0.3", s.CoverageMean)
	}
}

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(nil)
	if s.Episodes != 0 || s.TicksMean != 0 {
		t.Errorf("Aggregate(nil) = %+v, want zero stats", s)
	}
}
