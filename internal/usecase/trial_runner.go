package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-env/internal/entity"
	"github.com/rocketscienceinc/tictactoe-env/internal/environment"
	"github.com/rocketscienceinc/tictactoe-env/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-env/internal/policy"
)

var (
	ErrEpisodeTooLong = errors.New("episode exceeded the step limit")
	ErrNoTrialStorage = errors.New("trial storage is not configured")
)

const DefaultMaxEpisodeSteps = 100

type trialRepo interface {
	CreateOrUpdate(ctx context.Context, trial *entity.Trial) error
	GetByID(ctx context.Context, id string) (*entity.Trial, error)
}

// TrialParams describes one batch of self-play episodes.
type TrialParams struct {
	Env             environment.EpisodeConfig
	Policy          string
	Episodes        int
	Workers         int
	Window          int
	MaxEpisodeSteps int
	// Seed makes the trial reproducible per worker; zero draws a seed from the clock.
	Seed uint64
}

type TrialRunner struct {
	logger    *slog.Logger
	trialRepo trialRepo
}

// NewTrialRunner creates a runner. trialRepo may be nil, in which case trials are not saved.
func NewTrialRunner(logger *slog.Logger, trialRepo trialRepo) *TrialRunner {
	return &TrialRunner{
		logger:    logger,
		trialRepo: trialRepo,
	}
}

// Run plays params.Episodes episodes split over params.Workers workers. Every worker owns its
// environment; an episode that fails is counted as aborted and the worker resets.
func (that *TrialRunner) Run(ctx context.Context, params TrialParams) (*entity.Trial, error) {
	params = withDefaults(params)

	trial := &entity.Trial{
		ID:        uuid.NewString(),
		Policy:    params.Policy,
		EnvConfig: params.Env.Map(),
		StartedAt: time.Now().UTC(),
	}

	log := that.logger.With("method", "Run", "trialID", trial.ID)
	log.Info("trial started", "episodes", params.Episodes, "workers", params.Workers, "policy", params.Policy)

	outcomes := metrics.NewOutcomes(params.Window)
	var aborted atomic.Int64

	workers := make([]*worker, 0, params.Workers)
	for id := 0; id < params.Workers; id++ {
		w, err := that.newWorker(id, params)
		if err != nil {
			return nil, fmt.Errorf("failed to create worker: %w", err)
		}
		workers = append(workers, w)
	}

	jobs := make(chan int)

	var wg sync.WaitGroup
	for _, w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.run(ctx, jobs, outcomes, &aborted)
		}()
	}

	go func() {
		defer close(jobs)
		for episode := 0; episode < params.Episodes; episode++ {
			select {
			case jobs <- episode:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()

	trial.Episodes = outcomes.Total()
	trial.Aborted = int(aborted.Load())
	trial.Metrics = outcomes.Metrics()
	trial.FinishedAt = time.Now().UTC()

	if err := ctx.Err(); err != nil {
		log.Warn("trial interrupted", "episodes", trial.Episodes)
		return trial, fmt.Errorf("trial interrupted: %w", err)
	}

	if that.trialRepo != nil {
		if err := that.trialRepo.CreateOrUpdate(ctx, trial); err != nil {
			return trial, fmt.Errorf("failed to save trial: %w", err)
		}
	}

	log.Info("trial finished",
		"episodes", trial.Episodes,
		"aborted", trial.Aborted,
		metrics.KeyTie, trial.Metrics[metrics.KeyTie],
		metrics.KeyWinX, trial.Metrics[metrics.KeyWinX],
		metrics.KeyWinO, trial.Metrics[metrics.KeyWinO],
	)

	return trial, nil
}

// GetTrial returns a saved trial summary.
func (that *TrialRunner) GetTrial(ctx context.Context, id string) (*entity.Trial, error) {
	if that.trialRepo == nil {
		return nil, ErrNoTrialStorage
	}

	trial, err := that.trialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get trial: %w", err)
	}

	return trial, nil
}

func (that *TrialRunner) newWorker(id int, params TrialParams) (*worker, error) {
	seed := params.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	// distinct streams per worker and per agent
	seed += uint64(id) * 3

	policies := make(map[string]policy.Policy, 2)
	for i, agent := range []string{entity.PlayerX, entity.PlayerO} {
		p, err := policy.New(params.Policy, seed+uint64(i)+1)
		if err != nil {
			return nil, err
		}
		policies[agent] = p
	}

	logger := that.logger.With("worker", id)

	return &worker{
		logger:   logger,
		env:      environment.New(params.Env, environment.WithSeed(seed), environment.WithLogger(logger)),
		policies: policies,
		maxSteps: params.MaxEpisodeSteps,
	}, nil
}

func withDefaults(params TrialParams) TrialParams {
	if params.Workers <= 0 {
		params.Workers = 1
	}

	if params.Window <= 0 {
		params.Window = metrics.DefaultWindow
	}

	if params.MaxEpisodeSteps <= 0 {
		params.MaxEpisodeSteps = DefaultMaxEpisodeSteps
	}

	if params.Policy == "" {
		params.Policy = policy.NameMasked
	}

	return params
}
