package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/autopilot"
	"github.com/vovakirdan/tui-runner/internal/runner"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	flagSimRuns       int
	flagSimMaxSeconds float64
	flagSimCoins      bool
	flagSimSave       bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play headless runs with the autopilot",
	Long: `Run the simulation without a terminal UI, steered by the autopilot.

Run i uses seed --seed+i, so a batch is reproducible. Each run stops at
game over or after --max-seconds of simulated time.

Examples:
  runner simulate
  runner simulate --runs 50 --seed 7
  runner simulate --difficulty hard --coins --save
  runner simulate --log-level debug --runs 1`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimRuns, "runs", 10, "Number of runs")
	simulateCmd.Flags().Float64Var(&flagSimMaxSeconds, "max-seconds", 300, "Simulated time limit per run")
	simulateCmd.Flags().BoolVar(&flagSimCoins, "coins", false, "Let the autopilot chase coins")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record runs and the high score in the database")
}

func runSimulate(_ *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, "simulate")
	if err != nil {
		return err
	}
	if flagSimRuns <= 0 {
		return fmt.Errorf("--runs must be positive")
	}

	var store *storage.Store
	if flagSimSave {
		store = openStore()
		if store != nil {
			defer store.Close()
		}
	}

	baseSeed := flagSeed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	var pilotOpts []autopilot.Option
	if flagSimCoins {
		pilotOpts = append(pilotOpts, autopilot.WithCoinHunting())
	}
	pilot := autopilot.New(pilotOpts...)

	dt := runtimeConfig(0, 0).TickDuration()
	maxTicks := int(flagSimMaxSeconds / dt)

	var best, total int
	for i := 0; i < flagSimRuns; i++ {
		seed := baseSeed + int64(i)
		opts := []runner.Option{
			runner.WithSeed(seed),
			runner.WithLogger(logger.With("run", i+1)),
		}
		if store != nil {
			opts = append(opts, runner.WithHighScores(store.Game(storage.DefaultGameID)))
		}
		sim, err := runner.New(settings, opts...)
		if err != nil {
			return err
		}
		if err := sim.Start(); err != nil {
			return err
		}

		pilot.Reset()
		res := runner.StepResult{Phase: sim.Phase()}
		ticks := 0
		for ; ticks < maxTicks && res.Phase == runner.PhasePlaying; ticks++ {
			res = sim.Step(dt, pilot.Decide(sim.Snapshot()))
		}

		score := sim.Score()
		logger.Info("run finished",
			"run", i+1,
			"seed", seed,
			"score", score.Current,
			"distance", fmt.Sprintf("%.1f", res.Distance),
			"coins", score.Coins,
			"seconds", fmt.Sprintf("%.1f", float64(ticks)*dt),
			"died", res.Phase == runner.PhaseGameOver,
		)

		if store != nil && res.Phase == runner.PhaseGameOver {
			if _, err := store.SaveRun(storage.RunRecord{
				Seed:     seed,
				Score:    score.Current,
				Distance: res.Distance,
				Coins:    score.Coins,
			}); err != nil {
				logger.Warn("could not save run", "error", err)
			}
		}

		total += score.Current
		best = max(best, score.Current)
	}

	fmt.Printf("%d runs  best %d  avg %.0f\n", flagSimRuns, best, float64(total)/float64(flagSimRuns))
	return nil
}
