package config

import (
	"fmt"

	"quixo/experiments"
	"quixo/experiments/metrics"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"QUIXO_LOG_LEVEL" env-default:"info"`
	Experiment string `yaml:"experiment" env:"QUIXO_EXPERIMENT"` // Named experiment; empty runs the matchup below
	Games      int    `yaml:"games" env:"QUIXO_GAMES" env-default:"100"`
	Workers    int    `yaml:"workers" env:"QUIXO_WORKERS" env-default:"4"`
	Seed       uint64 `yaml:"seed" env:"QUIXO_SEED" env-default:"1"`
	Retries    int    `yaml:"retries" env:"QUIXO_RETRIES" env-default:"0"`
	MaxMoves   int    `yaml:"max-moves" env:"QUIXO_MAX_MOVES" env-default:"300"`
	OutputDir  string `yaml:"output-dir" env:"QUIXO_OUTPUT_DIR"`

	PlayerZero metrics.AgentConfig `yaml:"player-zero" env-prefix:"QUIXO_PLAYER_ZERO_"`
	PlayerOne  metrics.AgentConfig `yaml:"player-one" env-prefix:"QUIXO_PLAYER_ONE_"`
}

// Load reads the YAML file at path and applies environment overrides. An
// empty path reads the environment only.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(config)
	} else {
		err = cleanenv.ReadConfig(path, config)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if config.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", config.Games)
	}
	return config, nil
}

// MustLoad is Load that panics on error.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}
	return config
}

func (c *Config) Settings() experiments.Settings {
	return experiments.Settings{
		Games:     c.Games,
		Workers:   c.Workers,
		Seed:      c.Seed,
		Retries:   c.Retries,
		MoveCap:   c.MaxMoves,
		OutputDir: c.OutputDir,
	}
}
