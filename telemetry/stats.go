package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// RunStats holds aggregate statistics across a batch of episodes.
type RunStats struct {
	Episodes int

	TicksMean float64
	TicksStd  float64

	SeenMean float64
	SeenStd  float64

	HeardMean float64

	CoverageMean float64
	CoverageStd  float64
}

// Aggregate computes run-level statistics from episode records.
func Aggregate(records []EpisodeRecord) RunStats {
	n := len(records)
	if n == 0 {
		return RunStats{}
	}

	ticks := make([]float64, n)
	seen := make([]float64, n)
	heard := make([]float64, n)
	coverage := make([]float64, n)
	for i, r := range records {
		ticks[i] = float64(r.Ticks)
		seen[i] = float64(r.PlayerSeen)
		heard[i] = float64(r.PlayerHeard)
		coverage[i] = r.MeanCoverage
	}

	return RunStats{
		Episodes:     n,
		TicksMean:    stat.Mean(ticks, nil),
		TicksStd:     stat.StdDev(ticks, nil),
		SeenMean:     stat.Mean(seen, nil),
		SeenStd:      stat.StdDev(seen, nil),
		HeardMean:    stat.Mean(heard, nil),
		CoverageMean: stat.Mean(coverage, nil),
		CoverageStd:  stat.StdDev(coverage, nil),
	}
}

// Log emits the run statistics as a structured log record.
func (s RunStats) Log() {
	slog.Info("run complete",
		"episodes", s.Episodes,
		"ticks_mean", s.TicksMean,
		"ticks_std", s.TicksStd,
		"seen_mean", s.SeenMean,
		"seen_std", s.SeenStd,
		"heard_mean", s.HeardMean,
		"coverage_mean", s.CoverageMean,
		"coverage_std", s.CoverageStd,
	)
}
