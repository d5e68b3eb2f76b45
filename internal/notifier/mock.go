package notifier

import (
	"sync"

	"github.com/mauv0809/league-engine/internal/league"
	"github.com/mauv0809/league-engine/internal/scoring"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendMatchesPlannedCalls []struct {
		EventID  string
		Matches  []league.Match
		Waitlist []string
	}
	SendLeaderboardCalls []struct {
		EventID string
		Entries []league.RankingEntry
	}
	SendTieBreakPromptCalls []struct {
		EventID string
		Tied    []scoring.TiedPlayer
	}

	// Spies
	SendMatchesPlannedFunc        func(eventID string, matches []league.Match, playerNames map[string]string, waitlist []string, dryRun bool) error
	SendLeaderboardFunc           func(eventID string, entries []league.RankingEntry, dryRun bool) error
	SendTieBreakPromptFunc        func(eventID string, tied []scoring.TiedPlayer, dryRun bool) error
	FormatLeaderboardResponseFunc func(entries []league.RankingEntry) (any, error)
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchesPlannedCalls = nil
	m.SendLeaderboardCalls = nil
	m.SendTieBreakPromptCalls = nil
}

func (m *Mock) SendMatchesPlanned(eventID string, matches []league.Match, playerNames map[string]string, waitlist []string, dryRun bool) error {
	m.mu.Lock()
	m.SendMatchesPlannedCalls = append(m.SendMatchesPlannedCalls, struct {
		EventID  string
		Matches  []league.Match
		Waitlist []string
	}{eventID, matches, waitlist})
	m.mu.Unlock()
	if m.SendMatchesPlannedFunc != nil {
		return m.SendMatchesPlannedFunc(eventID, matches, playerNames, waitlist, dryRun)
	}
	return nil
}

func (m *Mock) SendLeaderboard(eventID string, entries []league.RankingEntry, dryRun bool) error {
	m.mu.Lock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, struct {
		EventID string
		Entries []league.RankingEntry
	}{eventID, entries})
	m.mu.Unlock()
	if m.SendLeaderboardFunc != nil {
		return m.SendLeaderboardFunc(eventID, entries, dryRun)
	}
	return nil
}

func (m *Mock) SendTieBreakPrompt(eventID string, tied []scoring.TiedPlayer, dryRun bool) error {
	m.mu.Lock()
	m.SendTieBreakPromptCalls = append(m.SendTieBreakPromptCalls, struct {
		EventID string
		Tied    []scoring.TiedPlayer
	}{eventID, tied})
	m.mu.Unlock()
	if m.SendTieBreakPromptFunc != nil {
		return m.SendTieBreakPromptFunc(eventID, tied, dryRun)
	}
	return nil
}

func (m *Mock) FormatLeaderboardResponse(entries []league.RankingEntry) (any, error) {
	if m.FormatLeaderboardResponseFunc != nil {
		return m.FormatLeaderboardResponseFunc(entries)
	}
	return entries, nil
}
