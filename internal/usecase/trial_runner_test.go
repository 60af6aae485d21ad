package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-env/internal/entity"
	"github.com/rocketscienceinc/tictactoe-env/internal/environment"
	"github.com/rocketscienceinc/tictactoe-env/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-env/internal/policy"
	mockedUseCase "github.com/rocketscienceinc/tictactoe-env/mocks/usecase"
)

var errRedisDown = errors.New("redis down")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTrialRunner_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("Plays every episode and saves the summary", func(t *testing.T) {
		// Given: a runner with a trial repository that accepts the summary
		mockTrialRepo := mockedUseCase.NewMocktrialRepo(t)
		runner := NewTrialRunner(discardLogger(), mockTrialRepo)

		var saved *entity.Trial
		mockTrialRepo.EXPECT().
			CreateOrUpdate(mock.Anything, mock.AnythingOfType("*entity.Trial")).
			Run(func(_ context.Context, trial *entity.Trial) { saved = trial }).
			Return(nil).
			Once()

		// When: a masked self-play trial runs on two workers
		trial, err := runner.Run(ctx, TrialParams{
			Env:      environment.DefaultEpisodeConfig(),
			Policy:   policy.NameMasked,
			Episodes: 60,
			Workers:  2,
			Seed:     11,
		})

		// Then: every episode finished and the outcome rates add up to one
		require.NoError(t, err)
		assert.NotEmpty(t, trial.ID)
		assert.Equal(t, 60, trial.Episodes)
		assert.Zero(t, trial.Aborted)
		assert.True(t, trial.IsFinished())
		assert.Same(t, trial, saved)

		sum := trial.Metrics[metrics.KeyWinX] + trial.Metrics[metrics.KeyWinO] + trial.Metrics[metrics.KeyTie]
		assert.InDelta(t, 1, sum, 1e-9)
		assert.GreaterOrEqual(t, trial.Metrics[metrics.KeyEpisodeLenMean], 5.0)
		assert.LessOrEqual(t, trial.Metrics[metrics.KeyEpisodeLenMean], 9.0)
		assert.Equal(t, 0.25, trial.EnvConfig["x_tie_penalty"])
	})

	t.Run("Works without a repository", func(t *testing.T) {
		runner := NewTrialRunner(discardLogger(), nil)

		config := environment.DefaultEpisodeConfig()
		config.RandomFirst = true
		trial, err := runner.Run(ctx, TrialParams{Env: config, Episodes: 20, Seed: 5})

		require.NoError(t, err)
		assert.Equal(t, 20, trial.Episodes)
		assert.Equal(t, policy.NameMasked, trial.Policy)
	})

	t.Run("Uniform sampler aborts episodes instead of failing the trial", func(t *testing.T) {
		// Given: a sampler that ignores the mask
		runner := NewTrialRunner(discardLogger(), nil)

		// When: the trial runs
		trial, err := runner.Run(ctx, TrialParams{
			Env:      environment.DefaultEpisodeConfig(),
			Policy:   policy.NameUniform,
			Episodes: 100,
			Workers:  3,
			Seed:     17,
		})

		// Then: illegal moves abort episodes but every episode is accounted for
		require.NoError(t, err)
		assert.Positive(t, trial.Aborted)
		assert.Equal(t, 100, trial.Episodes+trial.Aborted)
	})

	t.Run("Unknown policy", func(t *testing.T) {
		runner := NewTrialRunner(discardLogger(), nil)

		_, err := runner.Run(ctx, TrialParams{Policy: "minimax", Episodes: 1})

		require.ErrorIs(t, err, policy.ErrUnknownPolicy)
	})

	t.Run("Returns error if the repository fails", func(t *testing.T) {
		mockTrialRepo := mockedUseCase.NewMocktrialRepo(t)
		runner := NewTrialRunner(discardLogger(), mockTrialRepo)

		mockTrialRepo.EXPECT().
			CreateOrUpdate(mock.Anything, mock.AnythingOfType("*entity.Trial")).
			Return(errRedisDown).
			Once()

		trial, err := runner.Run(ctx, TrialParams{Env: environment.DefaultEpisodeConfig(), Episodes: 5, Seed: 1})

		require.ErrorIs(t, err, errRedisDown)
		assert.Equal(t, 5, trial.Episodes)
	})

	t.Run("Canceled context stops the trial", func(t *testing.T) {
		runner := NewTrialRunner(discardLogger(), nil)

		canceled, cancel := context.WithCancel(ctx)
		cancel()

		trial, err := runner.Run(canceled, TrialParams{Env: environment.DefaultEpisodeConfig(), Episodes: 1000})

		require.ErrorIs(t, err, context.Canceled)
		assert.Less(t, trial.Episodes, 1000)
	})
}

func TestTrialRunner_GetTrial(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns the saved trial", func(t *testing.T) {
		mockTrialRepo := mockedUseCase.NewMocktrialRepo(t)
		runner := NewTrialRunner(discardLogger(), mockTrialRepo)

		expected := &entity.Trial{ID: "trial123"}
		mockTrialRepo.EXPECT().
			GetByID(mock.Anything, "trial123").
			Return(expected, nil).
			Once()

		trial, err := runner.GetTrial(ctx, "trial123")

		require.NoError(t, err)
		assert.Equal(t, expected, trial)
	})

	t.Run("Returns error if the repository fails", func(t *testing.T) {
		mockTrialRepo := mockedUseCase.NewMocktrialRepo(t)
		runner := NewTrialRunner(discardLogger(), mockTrialRepo)

		mockTrialRepo.EXPECT().
			GetByID(mock.Anything, "trialErr").
			Return((*entity.Trial)(nil), errRedisDown).
			Once()

		trial, err := runner.GetTrial(ctx, "trialErr")

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, trial)
	})

	t.Run("Without storage", func(t *testing.T) {
		runner := NewTrialRunner(discardLogger(), nil)

		_, err := runner.GetTrial(ctx, "trial123")

		require.ErrorIs(t, err, ErrNoTrialStorage)
	})
}

func TestPlayEpisode(t *testing.T) {
	ctx := context.Background()

	newPolicies := func(t *testing.T, name string) map[string]policy.Policy {
		t.Helper()

		policies := map[string]policy.Policy{}
		for i, agent := range []string{entity.PlayerX, entity.PlayerO} {
			p, err := policy.New(name, uint64(i+1))
			require.NoError(t, err)
			policies[agent] = p
		}

		return policies
	}

	t.Run("Masked play reaches a terminal state", func(t *testing.T) {
		env := environment.New(environment.DefaultEpisodeConfig(), environment.WithSeed(1))

		episode, err := PlayEpisode(ctx, env, newPolicies(t, policy.NameMasked), DefaultMaxEpisodeSteps)

		require.NoError(t, err)
		assert.Contains(t, []string{entity.PlayerX, entity.PlayerO, entity.PlayerTie}, episode.Winner)
		assert.Equal(t, env.NumMoves(), episode.Length)
		assert.Len(t, episode.Returns, 2)
	})

	t.Run("Step limit", func(t *testing.T) {
		env := environment.New(environment.DefaultEpisodeConfig())

		_, err := PlayEpisode(ctx, env, newPolicies(t, policy.NameMasked), 2)

		require.ErrorIs(t, err, ErrEpisodeTooLong)
	})
}
