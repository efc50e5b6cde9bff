package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/ckchivatsi/opinion-court/models"
)

const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	AdminKeySalt string
	AdminToken   string
	IndexLimit   int
	RecentWindow time.Duration
}

// ParseFlags validates flags and fills the rest from the environment.
// A .env file in the working directory is loaded first if present.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	fs := flag.NewFlagSet("opinion-court", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")
	fs.StringVar(&cfg.AdminToken, "admin-token", "", "Bearer token for creating questions (prefer env)")

	// Poll display
	fs.IntVar(&cfg.IndexLimit, "n", 0, "Number of questions on the index page")
	fs.DurationVar(&cfg.RecentWindow, "recent-window", 0, "Window for 'published recently'")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType != DatabaseSQLite {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "polls.db"
	}

	if cfg.IndexLimit == 0 {
		if limitStr := os.Getenv("INDEX_LIMIT"); limitStr != "" {
			limit, err := strconv.Atoi(limitStr)
			if err != nil {
				return Config{}, errors.New("invalid INDEX_LIMIT env variable")
			}
			cfg.IndexLimit = limit
		} else {
			cfg.IndexLimit = models.DefaultIndexLimit
		}
	}
	if cfg.IndexLimit < 1 {
		return Config{}, errors.New("index limit must be positive")
	}

	if cfg.RecentWindow == 0 {
		if windowStr := os.Getenv("RECENT_WINDOW"); windowStr != "" {
			window, err := time.ParseDuration(windowStr)
			if err != nil {
				return Config{}, errors.New("invalid RECENT_WINDOW env variable")
			}
			cfg.RecentWindow = window
		} else {
			cfg.RecentWindow = models.DefaultRecentWindow
		}
	}
	if cfg.RecentWindow < 0 {
		return Config{}, errors.New("recent window must not be negative")
	}

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}

	// Optional: without it nobody can create questions
	if cfg.AdminToken == "" {
		cfg.AdminToken = os.Getenv("ADMIN_TOKEN")
	}

	return cfg, nil
}
