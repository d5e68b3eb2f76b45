package rating

import "github.com/mauv0809/league-engine/internal/league"

// Config carries the rating model's tuning values.
type Config struct {
	DefaultSkill       float64 // assumed skill when a player declared none
	SkillSlope         float64 // strength gained per skill point above 1.0
	MinStrength        float64
	MaxStrength        float64
	HistoryCap         int     // most recent completed matches considered
	HalfLifeDays       float64 // time decay half-life for match weights
	ProvisionalMatches int     // below this count, blend with declared skill
	GameSwing          float64 // rating swing across the full game-share range
	ResultNudge        float64 // rating offset when only win/loss is known
	UnknownOpponent    float64 // strength assumed for opponents not on file
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		DefaultSkill:       3.0,
		SkillSlope:         2.5,
		MinStrength:        1.0,
		MaxStrength:        16.5,
		HistoryCap:         30,
		HalfLifeDays:       180,
		ProvisionalMatches: 5,
		GameSwing:          3.0,
		ResultNudge:        0.5,
		UnknownOpponent:    5.0,
	}
}

// PlayedMatch pairs a completed match with its recorded result.
type PlayedMatch struct {
	Match  league.Match
	Result league.MatchResult
}

// HistoryProvider supplies the data Recalculate reads: a player's completed
// matches sorted newest-first, and player records for strength lookups.
type HistoryProvider interface {
	CompletedMatches(playerID string, limit int) ([]PlayedMatch, error)
	GetPlayers(playerIDs []string) ([]league.Player, error)
}
