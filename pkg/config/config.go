// Package config loads the engine, evaluator and arena settings from a yaml
// file, with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/IlikeChooros/go-uttt/pkg/eval"
	"github.com/IlikeChooros/go-uttt/pkg/search"
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

type Config struct {
	LogLevel    string       `yaml:"log-level" env:"UTTT_LOG_LEVEL" env-default:"info"`
	FirstPlayer string       `yaml:"first-player" env:"UTTT_FIRST_PLAYER" env-default:"x"`
	Search      Search       `yaml:"search"`
	Eval        eval.Weights `yaml:"eval"`
	Arena       Arena        `yaml:"arena"`
}

type Search struct {
	MovetimeMs    int    `yaml:"movetime-ms" env:"UTTT_SEARCH_MOVETIME_MS" env-default:"1000"`
	MaxDepth      int    `yaml:"max-depth" env:"UTTT_SEARCH_MAX_DEPTH" env-default:"81"`
	Threads       int    `yaml:"threads" env:"UTTT_SEARCH_THREADS" env-default:"1"`
	CheckInterval uint64 `yaml:"check-interval" env:"UTTT_SEARCH_CHECK_INTERVAL" env-default:"1024"`
}

type Arena struct {
	Games   int `yaml:"games" env:"UTTT_ARENA_GAMES" env-default:"100"`
	Workers int `yaml:"workers" env:"UTTT_ARENA_WORKERS" env-default:"2"`
}

// Load the configuration from given yaml file, environment variables take precedence
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return config, nil
}

// MustLoad - load all configurations in the config file, panics on failure.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}
	return config
}

// Load given file if it exists, otherwise read only the environment
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Default()
	}
	return Load(path)
}

// Configuration read only from the environment (and the defaults)
func Default() (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("unable to read environment: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log-level: %w", err)
	}
	if _, err := c.Player(); err != nil {
		return err
	}
	if c.Search.MovetimeMs < 0 {
		return fmt.Errorf("search.movetime-ms must be non-negative, got %d", c.Search.MovetimeMs)
	}
	if c.Search.MaxDepth < 1 || c.Search.Threads < 1 {
		return fmt.Errorf("search.max-depth and search.threads must be positive, got %d and %d",
			c.Search.MaxDepth, c.Search.Threads)
	}
	if c.Arena.Games < 0 || c.Arena.Workers < 1 {
		return fmt.Errorf("arena.games must be non-negative and arena.workers positive, got %d and %d",
			c.Arena.Games, c.Arena.Workers)
	}
	return c.Eval.Validate()
}

// The player moving first, 'x' or 'o'
func (c *Config) Player() (uttt.Player, error) {
	switch c.FirstPlayer {
	case "x", "X":
		return uttt.PlayerA, nil
	case "o", "O":
		return uttt.PlayerB, nil
	}
	return 0, fmt.Errorf("first-player must be 'x' or 'o', got %q", c.FirstPlayer)
}

func (c *Config) Budget() time.Duration {
	return time.Duration(c.Search.MovetimeMs) * time.Millisecond
}

// Search limits, without the movetime, which is given per move as the budget
func (s Search) Limits() *search.Limits {
	return search.DefaultLimits().
		SetDepth(s.MaxDepth).
		SetThreads(s.Threads).
		SetCheckInterval(s.CheckInterval)
}

// Engine options built from the search and eval sections
func (c *Config) EngineOptions(logger zerolog.Logger) []search.Option {
	return []search.Option{
		search.WithLimits(c.Search.Limits()),
		search.WithEvaluator(eval.NewHeuristic(c.Eval)),
		search.WithLogger(logger),
	}
}

// Logger with the configured level, human readable if 'w' is a terminal
func (c *Config) Logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		w = zerolog.ConsoleWriter{Out: f, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
