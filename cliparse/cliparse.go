package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port          int    `env:"PORT" envDefault:"3318"`
	DatabaseURL   string `env:"DATABASE_URL"`
	DatabaseType  string `env:"DATABASE_TYPE"`
	UserTokenSalt string `env:"USER_TOKEN_SALT"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"LOG_FORMAT" envDefault:"text"`
	Seed          bool   `env:"SEED"`
}

// ParseFlags builds the config from .env, the environment, and CLI args.
// CLI flags win over environment variables, which win over .env entries.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	// godotenv.Load never overrides variables already set in the process
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	flags := flag.NewFlagSet("classengage", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	flags.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	flags.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL")
	flags.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	flags.StringVar(&cfg.UserTokenSalt, "token-salt", cfg.UserTokenSalt, "User token salt (prefer env)")

	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text or json)")
	flags.BoolVar(&cfg.Seed, "seed", cfg.Seed, "Seed sample sessions on startup")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, errors.New("invalid port")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	// Secrets - MUST be provided
	if cfg.UserTokenSalt == "" {
		return Config{}, errors.New("USER_TOKEN_SALT required")
	}

	return cfg, nil
}
