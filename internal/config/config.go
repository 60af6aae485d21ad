package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rocketscienceinc/tictactoe-env/internal/environment"
	"github.com/rocketscienceinc/tictactoe-env/internal/usecase"
)

type Config struct {
	LogLevel    string      `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort    string      `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis       Redis       `yaml:"redis"`
	Environment Environment `yaml:"environment"`
	Trial       Trial       `yaml:"trial"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Environment is the reward shaping handed to every environment of a trial.
type Environment struct {
	RandomFirst bool    `yaml:"random-first" env:"ENV_RANDOM_FIRST" env-default:"false"`
	XWinReward  float64 `yaml:"x-win-reward" env:"ENV_X_WIN_REWARD" env-default:"1"`
	XLoseReward float64 `yaml:"x-lose-reward" env:"ENV_X_LOSE_REWARD" env-default:"-1"`
	XTiePenalty float64 `yaml:"x-tie-penalty" env:"ENV_X_TIE_PENALTY" env-default:"0.25"`
	OWinReward  float64 `yaml:"o-win-reward" env:"ENV_O_WIN_REWARD" env-default:"1"`
	OLoseReward float64 `yaml:"o-lose-reward" env:"ENV_O_LOSE_REWARD" env-default:"-1"`
	OTiePenalty float64 `yaml:"o-tie-penalty" env:"ENV_O_TIE_PENALTY" env-default:"0.25"`
}

type Trial struct {
	Episodes        int    `yaml:"episodes" env:"TRIAL_EPISODES" env-default:"1000"`
	Workers         int    `yaml:"workers" env:"TRIAL_WORKERS" env-default:"2"`
	SmoothingWindow int    `yaml:"smoothing-window" env-default:"1000"`
	MaxEpisodeSteps int    `yaml:"max-episode-steps" env-default:"100"`
	Seed            uint64 `yaml:"seed" env:"TRIAL_SEED" env-default:"0"`
	Policy          string `yaml:"policy" env:"TRIAL_POLICY" env-default:"masked"`
	Save            bool   `yaml:"save" env:"TRIAL_SAVE" env-default:"false"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load reads the yaml file at path and the environment on top of it. A missing file leaves
// the environment and the defaults.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}

		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that *Environment) EpisodeConfig() environment.EpisodeConfig {
	return environment.EpisodeConfig{
		RandomFirst: that.RandomFirst,
		XWinReward:  that.XWinReward,
		XLoseReward: that.XLoseReward,
		XTiePenalty: that.XTiePenalty,
		OWinReward:  that.OWinReward,
		OLoseReward: that.OLoseReward,
		OTiePenalty: that.OTiePenalty,
	}
}

func (that *Config) TrialParams() usecase.TrialParams {
	return usecase.TrialParams{
		Env:             that.Environment.EpisodeConfig(),
		Policy:          that.Trial.Policy,
		Episodes:        that.Trial.Episodes,
		Workers:         that.Trial.Workers,
		Window:          that.Trial.SmoothingWindow,
		MaxEpisodeSteps: that.Trial.MaxEpisodeSteps,
		Seed:            that.Trial.Seed,
	}
}
