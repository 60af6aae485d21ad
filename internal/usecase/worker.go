package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/rocketscienceinc/tictactoe-env/internal/entity"
	"github.com/rocketscienceinc/tictactoe-env/internal/environment"
	"github.com/rocketscienceinc/tictactoe-env/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-env/internal/policy"
)

type worker struct {
	logger   *slog.Logger
	env      *environment.Environment
	policies map[string]policy.Policy
	maxSteps int
}

func (that *worker) run(ctx context.Context, jobs <-chan int, outcomes *metrics.Outcomes, aborted *atomic.Int64) {
	log := that.logger.With("method", "run")

	for episode := range jobs {
		result, err := PlayEpisode(ctx, that.env, that.policies, that.maxSteps)
		if ctx.Err() != nil {
			return
		}

		if err != nil {
			// the episode is lost, the next one starts from a fresh reset
			log.Warn("episode aborted", "episode", episode, "error", err)
			aborted.Add(1)
			continue
		}

		outcomes.Record(result)
	}
}

// PlayEpisode resets env and steps it until termination, asking each agent's policy for an action
// every step.
func PlayEpisode(ctx context.Context, env *environment.Environment, policies map[string]policy.Policy, maxSteps int) (metrics.Episode, error) {
	observations, _, err := env.Reset(nil, nil)
	if err != nil {
		return metrics.Episode{}, fmt.Errorf("failed to reset environment: %w", err)
	}

	returns := map[string]float64{entity.PlayerX: 0, entity.PlayerO: 0}

	for step := 0; step < maxSteps; step++ {
		if err = ctx.Err(); err != nil {
			return metrics.Episode{}, err
		}

		actions := make(map[string]int, len(policies))
		for _, agent := range env.PossibleAgents() {
			actions[agent] = policies[agent].Act(observations[agent])
		}

		result, err := env.Step(actions)
		if err != nil {
			return metrics.Episode{}, fmt.Errorf("failed to step environment: %w", err)
		}

		for agent, reward := range result.Rewards {
			returns[agent] += reward
		}

		if result.Terminations[environment.AllAgents] {
			outcome, _ := result.Infos[entity.PlayerX][environment.InfoOutcome].(string)

			return metrics.Episode{
				Winner:  metrics.WinnerFromInfos(outcome),
				Length:  env.NumMoves(),
				Returns: returns,
			}, nil
		}

		observations = result.Observations
	}

	return metrics.Episode{}, fmt.Errorf("%w: %d", ErrEpisodeTooLong, maxSteps)
}
