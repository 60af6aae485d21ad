package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-env/internal/entity"
)

var ErrTrialNotFound = errors.New("trial not found")

type TrialRepository interface {
	CreateOrUpdate(ctx context.Context, trial *entity.Trial) error
	GetByID(ctx context.Context, id string) (*entity.Trial, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbTrial struct {
	client *redis.Client
}

func NewTrialRepository(client *redis.Client) TrialRepository {
	return &dbTrial{
		client: client,
	}
}

func trialKey(id string) string {
	return "trial:" + id
}

func (that *dbTrial) CreateOrUpdate(ctx context.Context, trial *entity.Trial) error {
	trialJSON, err := json.Marshal(trial)
	if err != nil {
		return fmt.Errorf("could not marshal trial: %w", err)
	}

	err = that.client.Set(ctx, trialKey(trial.ID), trialJSON, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to set trial: %w", err)
	}

	return nil
}

func (that *dbTrial) GetByID(ctx context.Context, id string) (*entity.Trial, error) {
	response, err := that.client.Get(ctx, trialKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return &entity.Trial{}, ErrTrialNotFound
	}

	if err != nil {
		return &entity.Trial{}, fmt.Errorf("failed to get trial by id: %w", err)
	}

	var existingTrial entity.Trial
	if err = json.Unmarshal([]byte(response), &existingTrial); err != nil {
		return &entity.Trial{}, fmt.Errorf("failed to unmarshal trial: %w", err)
	}

	return &existingTrial, nil
}

func (that *dbTrial) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, trialKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete trial by id: %w", err)
	}

	if deleted == 0 {
		return ErrTrialNotFound
	}

	return nil
}
