package environment

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-env/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-env/internal/entity"
)

// Box is a continuous space of Shape values in [Low, High].
type Box struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Shape int     `json:"shape"`
}

// Discrete is the integer space [0, N).
type Discrete struct {
	N int `json:"n"`
}

type ObservationSpace struct {
	Observations Box `json:"observations"`
	ActionMask   Box `json:"action_mask"`
}

// The spaces are the same for both agents and never change.
var (
	observationSpace = ObservationSpace{
		Observations: Box{Low: -1, High: 1, Shape: BoardSize},
		ActionMask:   Box{Low: 0, High: 1, Shape: NumActions},
	}
	actionSpace = Discrete{N: NumActions}
)

func (that *Environment) ObservationSpace(agent string) (ObservationSpace, error) {
	if !entity.IsMark(agent) {
		return ObservationSpace{}, fmt.Errorf("%w: %q", apperror.ErrUnknownAgent, agent)
	}

	return observationSpace, nil
}

func (that *Environment) ActionSpace(agent string) (Discrete, error) {
	if !entity.IsMark(agent) {
		return Discrete{}, fmt.Errorf("%w: %q", apperror.ErrUnknownAgent, agent)
	}

	return actionSpace, nil
}
