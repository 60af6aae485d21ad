package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-env/internal/entity"
	"github.com/rocketscienceinc/tictactoe-env/internal/repository"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)
	TrialHandler(w http.ResponseWriter, r *http.Request)
}

type trialGetter interface {
	GetTrial(ctx context.Context, id string) (*entity.Trial, error)
}

type handlers struct {
	logger *slog.Logger
	trials trialGetter
}

func NewHandlers(logger *slog.Logger, trials trialGetter) Handlers {
	return &handlers{
		logger: logger,
		trials: trials,
	}
}

// TrialHandler returns the summary of a saved trial.
func (that *handlers) TrialHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "TrialHandler")

	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Trial id is required", http.StatusBadRequest)
		return
	}

	trial, err := that.trials.GetTrial(r.Context(), id)
	if errors.Is(err, repository.ErrTrialNotFound) {
		http.Error(w, "Trial not found", http.StatusNotFound)
		return
	}

	if err != nil {
		log.Error("failed to get trial", "trialID", id, "error", err)
		http.Error(w, "Failed to get trial", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(trial); err != nil {
		log.Error("failed to encode trial", "trialID", id, "error", err)
	}
}
