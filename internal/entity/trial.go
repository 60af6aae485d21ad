package entity

import "time"

// Trial is the summary of a batch of self-play episodes run with one environment config.
type Trial struct {
	ID         string             `json:"id"`
	Policy     string             `json:"policy"`
	EnvConfig  map[string]any     `json:"env_config"`
	Episodes   int                `json:"episodes"`
	Aborted    int                `json:"aborted"`
	Metrics    map[string]float64 `json:"metrics"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
}

func (that *Trial) IsFinished() bool {
	return !that.FinishedAt.IsZero()
}
