// Package config loads koko's settings from defaults, a YAML file, a .env
// file, KOKO_* environment variables and command-line flags, in that order
// of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/kokostudy/koko/internal/llm"
	"github.com/kokostudy/koko/internal/spacedrep"
	"github.com/kokostudy/koko/internal/store"
	"github.com/kokostudy/koko/internal/validate"
)

// EnvPrefix marks environment variables read into the config.
// A double underscore separates nesting levels: KOKO_DATABASE__DSN is database.dsn.
const EnvPrefix = "KOKO_"

type Config struct {
	User     UserConfig     `koanf:"user"`
	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
	Review   ReviewConfig   `koanf:"review"`
	Reminder ReminderConfig `koanf:"reminder"`
	Study    StudyConfig    `koanf:"study"`
	Quiz     QuizConfig     `koanf:"quiz"`
}

type UserConfig struct {
	ID string `koanf:"id" validate:"required,notblank"`
}

type DatabaseConfig struct {
	Driver       string `koanf:"driver" validate:"oneof=sqlite postgres"`
	DSN          string `koanf:"dsn" validate:"required_if=Driver postgres"`
	MaxOpenConns int    `koanf:"max_open_conns" validate:"min=0,max=100"`
}

type LogConfig struct {
	Level       string `koanf:"level" validate:"oneof=debug info warn error"`
	Development bool   `koanf:"development"`
	File        string `koanf:"file"`
}

type ReviewConfig struct {
	Strategy        string  `koanf:"strategy" validate:"oneof=fixed expanding"`
	Growth          float64 `koanf:"growth" validate:"gte=1,lte=10"`
	MaxIntervalDays int     `koanf:"max_interval_days" validate:"min=1,max=3650"`
}

type ReminderConfig struct {
	Enabled bool   `koanf:"enabled"`
	At      string `koanf:"at" validate:"clock"`
}

type StudyConfig struct {
	FocusMinutes int `koanf:"focus_minutes" validate:"min=1,max=180"`
	BreakMinutes int `koanf:"break_minutes" validate:"min=1,max=60"`
}

// QuizConfig picks where quiz questions come from. "local" never leaves
// the machine.
type QuizConfig struct {
	Provider  string        `koanf:"provider" validate:"oneof=local anthropic openai gemini openrouter"`
	Model     string        `koanf:"model"`
	APIKey    string        `koanf:"api_key"`
	BaseURL   string        `koanf:"base_url" validate:"omitempty,url"`
	Questions int           `koanf:"questions" validate:"min=1,max=20"`
	Timeout   time.Duration `koanf:"timeout" validate:"min=0"`
}

// Default returns the compiled-in settings.
func Default() Config {
	return Config{
		User:     UserConfig{ID: "local"},
		Database: DatabaseConfig{Driver: store.DriverSQLite, MaxOpenConns: 10},
		Log:      LogConfig{Level: "info"},
		Review: ReviewConfig{
			Strategy:        "fixed",
			Growth:          spacedrep.DefaultGrowth,
			MaxIntervalDays: spacedrep.DefaultMaxIntervalDays,
		},
		Reminder: ReminderConfig{Enabled: true, At: "18:00"},
		Study:    StudyConfig{FocusMinutes: 25, BreakMinutes: 5},
		Quiz:     QuizConfig{Provider: "local", Questions: 5, Timeout: 30 * time.Second},
	}
}

// flagKeys maps command-line flag names onto config keys. Other flags are ignored.
var flagKeys = map[string]string{
	"user":      "user.id",
	"db":        "database.dsn",
	"driver":    "database.driver",
	"log-level": "log.level",
	"provider":  "quiz.provider",
	"model":     "quiz.model",
}

// Options says where Load looks for its sources.
type Options struct {
	// ConfigFile is an explicit YAML path. It must exist when set.
	// When empty, DefaultPath is used if present.
	ConfigFile string
	// EnvFile is loaded into the process environment if it exists.
	EnvFile string
	// Flags contributes the flags the user changed.
	Flags *pflag.FlagSet
}

// Load builds the config from every source and validates it.
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")

	path, explicit := opts.ConfigFile, opts.ConfigFile != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load config file %s: %w", path, err)
			}
		} else if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file: %w", err)
		}
	}

	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", opts.EnvFile, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if opts.Flags != nil {
		p := posflag.ProviderWithFlag(opts.Flags, ".", nil, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(opts.Flags, f)
		})
		if err := k.Load(p, nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// envKey turns KOKO_DATABASE__MAX_OPEN_CONNS into database.max_open_conns.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// DefaultPath returns $XDG_CONFIG_HOME/koko/config.yaml, falling back to
// ~/.config/koko/config.yaml. It returns "" when neither can be resolved.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "koko", "config.yaml")
}

// ResolveDSN returns the configured DSN, or the default database file for SQLite.
func (c DatabaseConfig) ResolveDSN() (string, error) {
	if c.DSN != "" || c.Driver != store.DriverSQLite {
		return c.DSN, nil
	}
	return store.DefaultDBPath()
}

// IntervalStrategy builds the interval strategy the scheduler should use.
func (c ReviewConfig) IntervalStrategy() spacedrep.IntervalStrategy {
	if c.Strategy == "expanding" {
		return spacedrep.NewExpandingStrategy(c.Growth, c.MaxIntervalDays)
	}
	return spacedrep.FixedStrategy{}
}

// providerKeyEnv names the variable each provider's own tools read the key from.
var providerKeyEnv = map[string]string{
	llm.ProviderAnthropic:  "ANTHROPIC_API_KEY",
	llm.ProviderOpenAI:     "OPENAI_API_KEY",
	llm.ProviderGemini:     "GEMINI_API_KEY",
	llm.ProviderOpenRouter: "OPENROUTER_API_KEY",
}

// Remote reports whether quizzes should be written by a model.
func (c QuizConfig) Remote() bool {
	return c.Provider != "" && c.Provider != "local"
}

// LLM returns the model settings. Without quiz.api_key the provider's
// usual environment variable is used.
func (c QuizConfig) LLM() llm.Config {
	key := c.APIKey
	if key == "" {
		key = os.Getenv(providerKeyEnv[c.Provider])
	}
	return llm.Config{
		Provider: c.Provider,
		Model:    c.Model,
		APIKey:   key,
		BaseURL:  c.BaseURL,
		Retry:    llm.DefaultRetry,
	}
}
