package main

import (
	"encoding/json"
	"fmt"
	"os"

	app "github.com/rocketscienceinc/tictactoe-env/internal"
	"github.com/spf13/cobra"
)

var (
	flagEpisodes    int
	flagWorkers     int
	flagTrainSeed   uint64
	flagPolicy      string
	flagSave        bool
	flagRandomFirst bool
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Run a self-play trial",
	Long: `Run a batch of self-play episodes with the reward shaping from the config and print
the trial summary as JSON. Flags override the config file.

Examples:
  tictactoe-env train
  tictactoe-env train --episodes 10000 --workers 8 --seed 42
  tictactoe-env train --policy uniform --random-first
  tictactoe-env train --save             # store the summary in redis`,
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().IntVar(&flagEpisodes, "episodes", 0, "Number of episodes (0 = from config)")
	trainCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Parallel workers (0 = from config)")
	trainCmd.Flags().Uint64Var(&flagTrainSeed, "seed", 0, "RNG seed (0 = from config)")
	trainCmd.Flags().StringVar(&flagPolicy, "policy", "", "Sampler for both agents: masked or uniform")
	trainCmd.Flags().BoolVar(&flagSave, "save", false, "Save the trial summary to redis")
	trainCmd.Flags().BoolVar(&flagRandomFirst, "random-first", false, "Open every episode with a random O move")
}

func runTrain(cmd *cobra.Command, _ []string) error {
	conf := initConfig()
	logger := initLogger(conf)

	if flagEpisodes > 0 {
		conf.Trial.Episodes = flagEpisodes
	}
	if flagWorkers > 0 {
		conf.Trial.Workers = flagWorkers
	}
	if flagTrainSeed > 0 {
		conf.Trial.Seed = flagTrainSeed
	}
	if flagPolicy != "" {
		conf.Trial.Policy = flagPolicy
	}
	if cmd.Flags().Changed("save") {
		conf.Trial.Save = flagSave
	}
	if cmd.Flags().Changed("random-first") {
		conf.Environment.RandomFirst = flagRandomFirst
	}

	ctx, cancel := app.NotifyContext(logger)
	defer cancel()

	trial, err := app.RunTrial(ctx, logger, conf)
	if err != nil {
		return fmt.Errorf("app run failed: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	return encoder.Encode(trial)
}
