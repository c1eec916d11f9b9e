package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"tapebot/internal/constants"
)

type Config struct {
	RankingsURL  string
	BaseURL      string
	OutputFile   string
	DBPath       string
	ServerPort   string
	LogLevel     string
	RequestDelay time.Duration
	FetchTimeout time.Duration
	HistoryLimit int
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		RankingsURL:  getEnv("RANKINGS_URL", "https://www.ufc.com/rankings"),
		BaseURL:      getEnv("BASE_URL", "https://www.ufc.com"),
		OutputFile:   getEnv("OUTPUT_FILE", "game_data.json"),
		DBPath:       getEnv("DB_PATH", "tapebot.db"),
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		RequestDelay: getDurationEnv("REQUEST_DELAY", constants.RequestDelay),
		FetchTimeout: getDurationEnv("FETCH_TIMEOUT", constants.FetchTimeout),
		HistoryLimit: getIntEnv("HISTORY_LIMIT", constants.PastFightersLimit),
	}

	if cfg.BaseURL == "" || cfg.RankingsURL == "" {
		return nil, fmt.Errorf("RANKINGS_URL and BASE_URL must not be empty")
	}
	if cfg.HistoryLimit < 1 {
		return nil, fmt.Errorf("HISTORY_LIMIT must be at least 1, got %d", cfg.HistoryLimit)
	}

	logger.Info().
		Str("rankings_url", cfg.RankingsURL).
		Str("output_file", cfg.OutputFile).
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Dur("request_delay", cfg.RequestDelay).
		Int("history_limit", cfg.HistoryLimit).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

var Module = fx.Provide(Load)
