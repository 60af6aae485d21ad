package environment

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-env/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-env/internal/entity"
	"github.com/rocketscienceinc/tictactoe-env/internal/tictactoe"
	"golang.org/x/exp/rand"
)

const (
	BoardSize  = tictactoe.Cells
	NumActions = BoardSize + 1

	// ActionPass is the no-op every agent submits when it is not its turn.
	ActionPass = BoardSize

	// AllAgents is the aggregate key of terminations and truncations.
	AllAgents = "__all__"

	InfoOutcome = "outcome"

	// NonActivePenalty is added to the reward of the waiting agent when it does not pass.
	NonActivePenalty = -0.1
)

// Observation is what one agent sees after a reset or a step.
type Observation struct {
	Observations [BoardSize]float64  `json:"observations"`
	ActionMask   [NumActions]float64 `json:"action_mask"`
}

// CanMove reports whether the mask allows at least one board cell.
func (that Observation) CanMove() bool {
	for _, legal := range that.ActionMask[:BoardSize] {
		if legal > 0 {
			return true
		}
	}

	return false
}

type (
	Observations map[string]Observation
	Rewards      map[string]float64
	Flags        map[string]bool
	Info         map[string]any
	Infos        map[string]Info
)

type StepResult struct {
	Observations Observations
	Rewards      Rewards
	Terminations Flags
	Truncations  Flags
	Infos        Infos
}

type Option func(*Environment)

// WithSeed seeds the environment's own random source.
func WithSeed(seed uint64) Option {
	return func(env *Environment) {
		env.rnd.Seed(seed)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(env *Environment) {
		env.logger = logger
	}
}

// Environment adapts the tic-tac-toe engine to a two-agent, simultaneous-action contract:
// both agents submit an action every step and only the agent whose turn it is gets applied.
// It is not safe for concurrent use; parallel workers each own an instance.
type Environment struct {
	logger *slog.Logger
	config EpisodeConfig
	rnd    *rand.Rand

	engine   *tictactoe.Engine
	turn     string
	numMoves int
}

func New(config EpisodeConfig, opts ...Option) *Environment {
	env := &Environment{
		logger: slog.Default(),
		config: config,
		rnd:    rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}

	for _, opt := range opts {
		opt(env)
	}

	env.logger = env.logger.With("component", "environment")

	return env
}

// NewFromOptions builds an environment from an env_config mapping; missing keys keep their defaults.
func NewFromOptions(options map[string]any, opts ...Option) (*Environment, error) {
	config, err := DecodeEpisodeConfig(options, DefaultEpisodeConfig())
	if err != nil {
		return nil, err
	}

	return New(config, opts...), nil
}

func (that *Environment) PossibleAgents() []string {
	return []string{entity.PlayerX, entity.PlayerO}
}

func (that *Environment) Config() EpisodeConfig {
	return that.config
}

// Turn returns the agent whose action the next step applies.
func (that *Environment) Turn() string {
	return that.turn
}

// NumMoves counts steps since the last reset, no-op steps included.
func (that *Environment) NumMoves() int {
	return that.numMoves
}

func (that *Environment) Board() entity.Board {
	if that.engine == nil {
		return entity.Board{}
	}

	return that.engine.Board()
}

// Reset starts a new episode. A non-nil seed reseeds the random source. Options may only restate
// the values the environment was built with.
func (that *Environment) Reset(seed *uint64, options map[string]any) (Observations, Infos, error) {
	if len(options) > 0 {
		config, err := DecodeEpisodeConfig(options, that.config)
		if err != nil {
			return nil, nil, err
		}

		if config != that.config {
			return nil, nil, fmt.Errorf("%w: have %+v, got %+v", apperror.ErrConfigImmutable, that.config, config)
		}
	}

	if seed != nil {
		that.rnd.Seed(*seed)
	}

	that.engine = tictactoe.NewEngine()
	that.numMoves = 0
	that.turn = entity.PlayerX

	if that.config.RandomFirst {
		// O opens on a uniformly random cell and X moves next
		cell := that.rnd.Intn(BoardSize)
		if err := that.engine.MoveIndex(entity.PlayerO, cell); err != nil {
			return nil, nil, fmt.Errorf("failed to play random first move: %w", err)
		}
	}

	return that.observe(that.turn), that.emptyInfos(), nil
}

// Step applies the active agent's action. Errors leave the episode exactly as it was; the caller
// is expected to reset after any of them.
func (that *Environment) Step(actions map[string]int) (*StepResult, error) {
	if that.engine == nil {
		return nil, apperror.ErrEpisodeNotStarted
	}

	if that.engine.IsOver() {
		return nil, apperror.ErrGameFinished
	}

	if err := validateActions(actions); err != nil {
		return nil, err
	}

	log := that.logger.With("method", "Step", "turn", that.turn, "move", that.numMoves)

	active, waiting := that.turn, entity.Opponent(that.turn)
	rewards := Rewards{entity.PlayerX: 0, entity.PlayerO: 0}

	if action := actions[waiting]; action != ActionPass {
		log.Debug("waiting agent did not pass", "agent", waiting, "action", action)
		rewards[waiting] += NonActivePenalty
	}

	if action := actions[active]; action != ActionPass {
		if err := that.engine.MoveIndex(active, action); err != nil {
			return nil, fmt.Errorf("agent %s failed to play action %d: %w", active, action, err)
		}
	}
	that.numMoves++

	result := &StepResult{
		Observations: that.observe(waiting),
		Rewards:      rewards,
		Terminations: that.flags(false),
		Truncations:  that.flags(false),
		Infos:        that.emptyInfos(),
	}

	if that.engine.IsOver() {
		result.Terminations = that.flags(true)
		that.assignOutcome(result.Rewards, result.Infos)
		log.Debug("episode finished", "x", result.Infos[entity.PlayerX][InfoOutcome])
	}

	that.turn = waiting

	return result, nil
}

// Render returns the board as text. It has no side effects.
func (that *Environment) Render() string {
	if that.engine == nil {
		return ""
	}

	return that.engine.Board().String()
}

func validateActions(actions map[string]int) error {
	for agent := range actions {
		if !entity.IsMark(agent) {
			return fmt.Errorf("%w: %q", apperror.ErrUnknownAgent, agent)
		}
	}

	for _, agent := range []string{entity.PlayerX, entity.PlayerO} {
		action, ok := actions[agent]
		if !ok {
			return fmt.Errorf("%w: %s", apperror.ErrMissingAction, agent)
		}

		if action < 0 || action >= NumActions {
			return fmt.Errorf("%w: agent %s sent %d, want [0, %d]", apperror.ErrInvalidAction, agent, action, ActionPass)
		}
	}

	return nil
}

func (that *Environment) assignOutcome(rewards Rewards, infos Infos) {
	winner, ok := that.engine.Winner()
	if !ok {
		for _, agent := range that.PossibleAgents() {
			rewards[agent] += that.config.TieReward(agent)
			infos[agent][InfoOutcome] = entity.OutcomeTie
		}
		return
	}

	loser := entity.Opponent(winner)

	rewards[winner] += that.config.WinReward(winner)
	infos[winner][InfoOutcome] = entity.OutcomeWin

	rewards[loser] += that.config.LoseReward(loser)
	infos[loser][InfoOutcome] = entity.OutcomeLose
}

// observe builds both observations; only next gets the legal cells, the other agent may only pass.
func (that *Environment) observe(next string) Observations {
	board := that.engine.Board()
	values := board.Values()

	observations := make(Observations, 2)
	for _, agent := range that.PossibleAgents() {
		observations[agent] = Observation{
			Observations: values,
			ActionMask:   createMask(board, agent == next),
		}
	}

	return observations
}

func createMask(board entity.Board, toMoveNext bool) [NumActions]float64 {
	var mask [NumActions]float64
	if !toMoveNext {
		mask[ActionPass] = 1
		return mask
	}

	for i, cell := range board {
		if cell == entity.EmptyCell {
			mask[i] = 1
		}
	}

	return mask
}

func (that *Environment) flags(value bool) Flags {
	return Flags{entity.PlayerX: value, entity.PlayerO: value, AllAgents: value}
}

func (that *Environment) emptyInfos() Infos {
	return Infos{entity.PlayerX: Info{}, entity.PlayerO: Info{}}
}
