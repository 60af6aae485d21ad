package main

import (
	"fmt"
	"time"

	app "github.com/rocketscienceinc/tictactoe-env/internal"
	"github.com/spf13/cobra"
)

var flagPlaySeed uint64

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play one episode and log every board",
	RunE: func(_ *cobra.Command, _ []string) error {
		conf := initConfig()
		logger := initLogger(conf)

		seed := flagPlaySeed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}

		ctx, cancel := app.NotifyContext(logger)
		defer cancel()

		if err := app.PlayEpisode(ctx, logger, conf, seed); err != nil {
			return fmt.Errorf("app run failed: %w", err)
		}

		return nil
	},
}

func init() {
	playCmd.Flags().Uint64Var(&flagPlaySeed, "seed", 0, "RNG seed (0 = random based on time)")
}
