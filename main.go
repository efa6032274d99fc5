package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/torvend/pursuit/config"
	"github.com/torvend/pursuit/env"
	"github.com/torvend/pursuit/level"
	"github.com/torvend/pursuit/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	levelPath := flag.String("level", "", "Path to a JSON level file (empty = random levels)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	episodes := flag.Int("episodes", 10, "Number of episodes to run")
	maxTicks := flag.Int("max-ticks", 100, "Ticks per episode")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for end-of-episode state snapshots")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	var fixed *level.Layout
	if *levelPath != "" {
		lay, err := level.Load(*levelPath)
		if err != nil {
			slog.Error("failed to load level", "path", *levelPath, "error", err)
			os.Exit(1)
		}
		fixed = lay
	}

	if err := run(cfg, fixed, rngSeed, *episodes, *maxTicks, *outputDir, *snapshotDir); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// run owns the output manager so its Close (and the episodes.csv flush)
// happens on every exit path.
func run(cfg *config.Config, fixed *level.Layout, rngSeed int64, episodes, maxTicks int, outputDir, snapshotDir string) error {
	output, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return fmt.Errorf("create output manager: %w", err)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		return fmt.Errorf("write config snapshot: %w", err)
	}

	slog.Info("starting run",
		"seed", rngSeed,
		"episodes", episodes,
		"max_ticks", maxTicks,
		"level_size", cfg.Level.Size,
	)

	e := env.New(cfg, env.Options{Seed: rngSeed, Level: fixed})
	policy := rand.New(rand.NewSource(rngSeed + 1))

	var records []telemetry.EpisodeRecord
	for ep := 0; ep < episodes; ep++ {
		state := e.Reset()
		collector := telemetry.NewCollector(ep, rngSeed)

		for t := 0; t < maxTicks; t++ {
			playerAction := env.AgentAction(policy.Intn(env.NumActions))
			pursuerAction := env.AgentAction(policy.Intn(env.NumActions))
			state = e.Step(playerAction, pursuerAction)

			collector.RecordStep(
				containsID(state.Pursuer.Observing, e.PlayerID()),
				len(state.Pursuer.Listening) > 0,
				meanCoverage(state.Pursuer.VisibleCells),
			)

			if cfg.Telemetry.LogEverySteps > 0 && t%cfg.Telemetry.LogEverySteps == 0 {
				slog.Info("step",
					"episode", ep,
					"tick", state.Tick,
					"pursuer_observing", len(state.Pursuer.Observing),
					"pursuer_listening", len(state.Pursuer.Listening),
				)
			}
		}

		record := collector.Finish(e.PursuerMemory(), agentDistance(state))
		records = append(records, record)
		if err := output.WriteEpisode(record); err != nil {
			return fmt.Errorf("write episode record: %w", err)
		}

		if snapshotDir != "" {
			path, err := telemetry.SaveSnapshot(state, snapshotDir, ep)
			if err != nil {
				return fmt.Errorf("save snapshot: %w", err)
			}
			slog.Info("snapshot saved", "episode", ep, "path", path)
		}

		slog.Info("episode complete",
			"episode", ep,
			"ticks", record.Ticks,
			"player_seen", record.PlayerSeen,
			"player_heard", record.PlayerHeard,
			"tracked", record.TrackedCount,
		)
	}

	telemetry.Aggregate(records).Log()
	return nil
}

func containsID(ids []uint32, id uint32) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func meanCoverage(cells []float32) float64 {
	if len(cells) == 0 {
		return 0
	}
	var sum float64
	for _, c := range cells {
		sum += float64(c)
	}
	return sum / float64(len(cells))
}

func agentDistance(state *env.GameState) float64 {
	dx := float64(state.Player.Pos.X - state.Pursuer.Pos.X)
	dy := float64(state.Player.Pos.Y - state.Pursuer.Pos.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
