package store

import (
	"time"

	"github.com/mauv0809/league-engine/internal/league"
	"github.com/mauv0809/league-engine/internal/planner"
	"github.com/mauv0809/league-engine/internal/rating"
)

// LeagueStore defines the interface for the engine's persistence layer. It
// also satisfies rating.HistoryProvider so the rating model can read match
// history straight from the store.
type LeagueStore interface {
	// Players
	UpsertPlayers(players []league.Player) error
	GetPlayers(playerIDs []string) ([]league.Player, error)
	GetAllPlayers() ([]league.Player, error)
	UpdateStrength(playerID string, strength float64, updatedAt time.Time) error

	// Signups / roster
	UpsertSignup(eventID string, entry league.RosterEntry) error
	GetRoster(eventID string) ([]league.RosterEntry, error)

	// Matches and results
	SaveMatches(eventID, seasonID string, planned []planner.PlannedMatch) ([]league.Match, error)
	GetMatch(matchID string) (*league.Match, error)
	UpdateMatchStatus(matchID string, status league.MatchStatus) error
	RecordResult(result league.MatchResult) error
	GetEventMatches(eventID string) ([]league.Match, error)
	GetEventResults(eventID string) (map[string]league.MatchResult, error)
	CompletedMatches(playerID string, limit int) ([]rating.PlayedMatch, error)

	// Events, leaderboards, waitlists
	EnsureEvent(eventID, seasonID string) error
	IsLeaderboardComputed(eventID string) (bool, error)
	SaveLeaderboard(eventID string, entries []league.RankingEntry) error
	ReopenLeaderboard(eventID string) error
	GetLeaderboard(eventID string) ([]league.RankingEntry, error)
	GetSeasonPoints(seasonID string) (map[string]int, error)
	SaveWaitlist(eventID string, playerIDs []string) error
	GetWaitlist(eventID string) ([]string, error)

	Clear()
}
