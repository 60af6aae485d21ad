package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrEpisodeNotStarted = errors.New("episode is not started")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrInvalidAction     = errors.New("action out of range")
	ErrMissingAction     = errors.New("missing action for agent")
	ErrUnknownAgent      = errors.New("unknown agent")
	ErrConfigImmutable   = errors.New("environment config can't change between episodes")
	ErrInvalidEnvOptions = errors.New("invalid environment options")
)
