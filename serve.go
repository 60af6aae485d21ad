package main

import (
	"fmt"

	app "github.com/rocketscienceinc/tictactoe-env/internal"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve saved trial summaries over HTTP",
	Long: `Start the HTTP server on the configured port. Trials saved with "train --save"
are available at GET /trials/{id}; GET /ping answers "pong".`,
	RunE: func(_ *cobra.Command, _ []string) error {
		conf := initConfig()
		logger := initLogger(conf)

		ctx, cancel := app.NotifyContext(logger)
		defer cancel()

		if err := app.RunServer(ctx, logger, conf); err != nil {
			return fmt.Errorf("app run failed: %w", err)
		}

		return nil
	},
}
