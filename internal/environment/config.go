package environment

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/rocketscienceinc/tictactoe-env/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-env/internal/entity"
)

// EpisodeConfig holds the reward shaping of an environment. It is fixed for the lifetime of
// the environment; a search over rewards builds a new environment per candidate.
type EpisodeConfig struct {
	RandomFirst bool `mapstructure:"random_first"`

	XWinReward  float64 `mapstructure:"x_win_reward"`
	XLoseReward float64 `mapstructure:"x_lose_reward"`
	XTiePenalty float64 `mapstructure:"x_tie_penalty"`

	OWinReward  float64 `mapstructure:"o_win_reward"`
	OLoseReward float64 `mapstructure:"o_lose_reward"`
	OTiePenalty float64 `mapstructure:"o_tie_penalty"`
}

func DefaultEpisodeConfig() EpisodeConfig {
	return EpisodeConfig{
		XWinReward:  1,
		XLoseReward: -1,
		XTiePenalty: 0.25,
		OWinReward:  1,
		OLoseReward: -1,
		OTiePenalty: 0.25,
	}
}

func (that EpisodeConfig) WinReward(mark string) float64 {
	if mark == entity.PlayerX {
		return that.XWinReward
	}
	return that.OWinReward
}

func (that EpisodeConfig) LoseReward(mark string) float64 {
	if mark == entity.PlayerX {
		return that.XLoseReward
	}
	return that.OLoseReward
}

// TieReward is paid to mark on a tie. Despite the option name it is not necessarily negative.
func (that EpisodeConfig) TieReward(mark string) float64 {
	if mark == entity.PlayerX {
		return that.XTiePenalty
	}
	return that.OTiePenalty
}

// Map returns the config as an env_config mapping with the option keys.
func (that EpisodeConfig) Map() map[string]any {
	options := make(map[string]any)
	if err := mapstructure.Decode(that, &options); err != nil {
		// a flat struct of bools and floats always decodes
		panic(fmt.Errorf("failed to encode episode config: %w", err))
	}

	return options
}

// DecodeEpisodeConfig reads an env_config mapping on top of base. Unknown keys are rejected.
func DecodeEpisodeConfig(options map[string]any, base EpisodeConfig) (EpisodeConfig, error) {
	config := base

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &config,
	})
	if err != nil {
		return base, fmt.Errorf("failed to create options decoder: %w", err)
	}

	if err = decoder.Decode(options); err != nil {
		return base, fmt.Errorf("%w: %w", apperror.ErrInvalidEnvOptions, err)
	}

	return config, nil
}
