// tictactoe-env runs self-play trials on the two-agent tic-tac-toe environment.
//
// Usage:
//
//	tictactoe-env train   - Run a trial and print its outcome metrics
//	tictactoe-env play    - Play one episode and log every board
//	tictactoe-env serve   - Serve saved trial summaries over HTTP
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rocketscienceinc/tictactoe-env/internal/config"
	"github.com/spf13/cobra"
)

var (
	flagConfigPath string
	flagLogLevel   string
)

// main - is the entry point of the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tictactoe-env",
	Short: "Two-agent tic-tac-toe environment for self-play training",
	Long: `tictactoe-env hosts the tic-tac-toe environment used to train agent X and agent O
against one another and reports the WinX, WinO and Tie rates of a trial.

Examples:
  tictactoe-env train --episodes 5000 --workers 4
  tictactoe-env play --seed 7
  tictactoe-env serve`,
	SilenceUsage: true,
}

func init() {
	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", filepath.Join(baseDir, "config.yml"), "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info), overrides the config")

	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
}

// initialize config.
func initConfig() *config.Config {
	conf := config.MustLoad(flagConfigPath)
	if flagLogLevel != "" {
		conf.LogLevel = flagLogLevel
	}

	return conf
}

// initialize logger.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
