package policy

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-env/internal/environment"
	"golang.org/x/exp/rand"
)

const (
	NameMasked  = "masked"
	NameUniform = "uniform"
)

var ErrUnknownPolicy = errors.New("unknown policy")

// Policy picks an action for one agent from its observation.
type Policy interface {
	Act(observation environment.Observation) int
}

// New returns the policy registered under name, drawing from its own source seeded with seed.
func New(name string, seed uint64) (Policy, error) {
	rnd := rand.New(rand.NewSource(seed))

	switch name {
	case NameMasked:
		return &masked{rnd: rnd}, nil
	case NameUniform:
		return &uniform{rnd: rnd}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// masked samples uniformly among the actions the mask allows.
type masked struct {
	rnd *rand.Rand
}

func (that *masked) Act(observation environment.Observation) int {
	available := make([]int, 0, environment.NumActions)
	for action, legal := range observation.ActionMask {
		if legal > 0 {
			available = append(available, action)
		}
	}

	if len(available) == 0 {
		return environment.ActionPass
	}

	return available[that.rnd.Intn(len(available))]
}

// uniform ignores the mask and samples over the whole action space, pass slot included.
type uniform struct {
	rnd *rand.Rand
}

func (that *uniform) Act(_ environment.Observation) int {
	return that.rnd.Intn(environment.NumActions)
}
