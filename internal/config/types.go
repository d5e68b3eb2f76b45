package config

import (
	"github.com/mauv0809/league-engine/internal/planner"
	"github.com/mauv0809/league-engine/internal/rating"
)

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Slack         SlackConfig
	SeasonID      string
	Turso         TursoConfig
	ProjectID     string
	Rating        rating.Config
	Planner       planner.Config
}
type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
