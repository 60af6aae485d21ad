package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-env/internal/config"
	"github.com/rocketscienceinc/tictactoe-env/internal/entity"
	"github.com/rocketscienceinc/tictactoe-env/internal/environment"
	"github.com/rocketscienceinc/tictactoe-env/internal/policy"
	"github.com/rocketscienceinc/tictactoe-env/internal/repository"
	"github.com/rocketscienceinc/tictactoe-env/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-env/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-env/transport/rest"
)

var ErrAddrNotFound = errors.New("redis host is empty")

// NotifyContext returns a context canceled on SIGINT or SIGTERM.
func NotifyContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigs)
	}()

	return ctx, cancel
}

// RunTrial - runs one self-play trial and saves it to redis when enabled.
func RunTrial(ctx context.Context, logger *slog.Logger, conf *config.Config) (*entity.Trial, error) {
	log := logger.With("component", "app")

	var runner *usecase.TrialRunner
	if conf.Trial.Save {
		redisStorage, err := connectRedis(ctx, conf)
		if err != nil {
			return nil, err
		}
		defer closeRedis(log, redisStorage)

		runner = usecase.NewTrialRunner(logger, repository.NewTrialRepository(redisStorage))
	} else {
		runner = usecase.NewTrialRunner(logger, nil)
	}

	trial, err := runner.Run(ctx, conf.TrialParams())
	if err != nil {
		return trial, fmt.Errorf("trial failed: %w", err)
	}

	return trial, nil
}

// RunServer - serves saved trial summaries over HTTP until ctx is done.
func RunServer(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	redisStorage, err := connectRedis(ctx, conf)
	if err != nil {
		return err
	}
	defer closeRedis(log, redisStorage)

	runner := usecase.NewTrialRunner(logger, repository.NewTrialRepository(redisStorage))

	log.Info("Starting HTTP server", "port", conf.HTTPPort)
	if err = rest.Start(ctx, logger, conf.HTTPPort, rest.NewHandlers(logger, runner)); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// PlayEpisode - plays one masked self-play episode and logs the board after every step.
func PlayEpisode(ctx context.Context, logger *slog.Logger, conf *config.Config, seed uint64) error {
	log := logger.With("component", "app", "method", "PlayEpisode")

	env := environment.New(conf.Environment.EpisodeConfig(), environment.WithSeed(seed), environment.WithLogger(logger))

	policies := make(map[string]policy.Policy, 2)
	for i, agent := range env.PossibleAgents() {
		p, err := policy.New(policy.NameMasked, seed+uint64(i)+1)
		if err != nil {
			return fmt.Errorf("failed to create policy: %w", err)
		}
		policies[agent] = &loggingPolicy{Policy: p, env: env, log: log.With("agent", agent)}
	}

	episode, err := usecase.PlayEpisode(ctx, env, policies, conf.Trial.MaxEpisodeSteps)
	if err != nil {
		return fmt.Errorf("episode failed: %w", err)
	}

	log.Info("episode finished", "winner", episode.Winner, "moves", episode.Length, "returns", episode.Returns, "board", env.Render())

	return nil
}

// loggingPolicy logs the board before the active agent acts.
type loggingPolicy struct {
	policy.Policy
	env *environment.Environment
	log *slog.Logger
}

func (that *loggingPolicy) Act(observation environment.Observation) int {
	action := that.Policy.Act(observation)
	if observation.CanMove() {
		that.log.Info("move", "number", that.env.NumMoves(), "action", action, "board", that.env.Render())
	}

	return action
}

func connectRedis(ctx context.Context, conf *config.Config) (*redis.Client, error) {
	if conf.Redis.Host == "" {
		return nil, ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return redisStorage, nil
}

func closeRedis(log *slog.Logger, client *redis.Client) {
	if err := client.Close(); err != nil {
		log.Error("could not close redis storage", "error", err)
	}
}
