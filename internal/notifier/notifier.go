package notifier

import (
	"github.com/mauv0809/league-engine/internal/league"
	"github.com/mauv0809/league-engine/internal/scoring"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For a freshly planned event
	SendMatchesPlanned(eventID string, matches []league.Match, playerNames map[string]string, waitlist []string, dryRun bool) error
	// For a locked leaderboard
	SendLeaderboard(eventID string, entries []league.RankingEntry, dryRun bool) error
	// For a scoring run that needs an external first-place decision
	SendTieBreakPrompt(eventID string, tied []scoring.TiedPlayer, dryRun bool) error

	// For formatting a command response
	FormatLeaderboardResponse(entries []league.RankingEntry) (any, error)
}
