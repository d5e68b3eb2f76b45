package config

import (
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/league-engine/internal/planner"
	"github.com/mauv0809/league-engine/internal/rating"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	cfg := Config{
		DBName:        getEnv("DB_NAME"),
		MigrationsDir: "./migrations",
		Slack: SlackConfig{
			Token:         getEnv("SLACK_BOT_TOKEN"),
			ChannelID:     getEnv("SLACK_CHANNEL_ID"),
			SigningSecret: getEnv("SLACK_SIGNING_SECRET"),
		},
		SeasonID: getEnv("SEASON_ID"),
		Port:     getEnv("PORT"),
		Turso: TursoConfig{
			PrimaryURL: getEnv("TURSO_PRIMARY_URL"),
			AuthToken:  getEnv("TURSO_AUTH_TOKEN"),
		},
		ProjectID: getEnv("GCP_PROJECT"),
		Rating:    loadRating(),
		Planner:   loadPlanner(),
	}
	return cfg
}

// loadRating starts from the rating defaults and overrides the numeric knobs
// from the environment where set.
func loadRating() rating.Config {
	cfg := rating.DefaultConfig()
	cfg.DefaultSkill = getEnvFloat("RATING_DEFAULT_SKILL", cfg.DefaultSkill)
	cfg.HalfLifeDays = getEnvFloat("RATING_HALF_LIFE_DAYS", cfg.HalfLifeDays)
	cfg.HistoryCap = getEnvInt("RATING_HISTORY_CAP", cfg.HistoryCap)
	cfg.ProvisionalMatches = getEnvInt("RATING_PROVISIONAL_MATCHES", cfg.ProvisionalMatches)
	return cfg
}

func loadPlanner() planner.Config {
	cfg := planner.DefaultConfig()
	cfg.TargetSmall = getEnvInt("PLANNER_TARGET_SMALL", cfg.TargetSmall)
	cfg.TargetLarge = getEnvInt("PLANNER_TARGET_LARGE", cfg.TargetLarge)
	if v, ok := os.LookupEnv("PLANNER_WAITLIST_POLICY"); ok {
		cfg.Waitlist = planner.WaitlistPolicy(v)
	}
	return cfg
}

func getEnvFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Fatalf("Error: environment variable %s is not a valid number: %v", key, err)
	}
	return f
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Error: environment variable %s is not a valid integer: %v", key, err)
	}
	return i
}
