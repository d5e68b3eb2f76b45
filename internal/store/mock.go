package store

import (
	"sync"
	"time"

	"github.com/mauv0809/league-engine/internal/league"
	"github.com/mauv0809/league-engine/internal/planner"
	"github.com/mauv0809/league-engine/internal/rating"
)

// MockStore is a mock implementation of the LeagueStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertPlayersFunc         func(players []league.Player) error
	GetPlayersFunc            func(playerIDs []string) ([]league.Player, error)
	GetAllPlayersFunc         func() ([]league.Player, error)
	UpdateStrengthFunc        func(playerID string, strength float64, updatedAt time.Time) error
	UpsertSignupFunc          func(eventID string, entry league.RosterEntry) error
	GetRosterFunc             func(eventID string) ([]league.RosterEntry, error)
	SaveMatchesFunc           func(eventID, seasonID string, planned []planner.PlannedMatch) ([]league.Match, error)
	GetMatchFunc              func(matchID string) (*league.Match, error)
	UpdateMatchStatusFunc     func(matchID string, status league.MatchStatus) error
	RecordResultFunc          func(result league.MatchResult) error
	GetEventMatchesFunc       func(eventID string) ([]league.Match, error)
	GetEventResultsFunc       func(eventID string) (map[string]league.MatchResult, error)
	CompletedMatchesFunc      func(playerID string, limit int) ([]rating.PlayedMatch, error)
	EnsureEventFunc           func(eventID, seasonID string) error
	IsLeaderboardComputedFunc func(eventID string) (bool, error)
	SaveLeaderboardFunc       func(eventID string, entries []league.RankingEntry) error
	ReopenLeaderboardFunc     func(eventID string) error
	GetLeaderboardFunc        func(eventID string) ([]league.RankingEntry, error)
	GetSeasonPointsFunc       func(seasonID string) (map[string]int, error)
	SaveWaitlistFunc          func(eventID string, playerIDs []string) error
	GetWaitlistFunc           func(eventID string) ([]string, error)

	// Call records
	UpdateStrengthCalls []struct {
		PlayerID string
		Strength float64
	}
	RecordResultCalls   []league.MatchResult
	SaveMatchesCalls    []string
	SaveWaitlistCalls   []struct {
		EventID   string
		PlayerIDs []string
	}
	SaveLeaderboardCalls []struct {
		EventID string
		Entries []league.RankingEntry
	}
	ReopenLeaderboardCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateStrengthCalls = nil
	m.RecordResultCalls = nil
	m.SaveMatchesCalls = nil
	m.SaveWaitlistCalls = nil
	m.SaveLeaderboardCalls = nil
	m.ReopenLeaderboardCalls = nil
}

func (m *MockStore) UpsertPlayers(players []league.Player) error {
	if m.UpsertPlayersFunc != nil {
		return m.UpsertPlayersFunc(players)
	}
	return nil
}

func (m *MockStore) GetPlayers(playerIDs []string) ([]league.Player, error) {
	if m.GetPlayersFunc != nil {
		return m.GetPlayersFunc(playerIDs)
	}
	return nil, nil
}

func (m *MockStore) GetAllPlayers() ([]league.Player, error) {
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) UpdateStrength(playerID string, strength float64, updatedAt time.Time) error {
	m.mu.Lock()
	m.UpdateStrengthCalls = append(m.UpdateStrengthCalls, struct {
		PlayerID string
		Strength float64
	}{playerID, strength})
	m.mu.Unlock()
	if m.UpdateStrengthFunc != nil {
		return m.UpdateStrengthFunc(playerID, strength, updatedAt)
	}
	return nil
}

func (m *MockStore) UpsertSignup(eventID string, entry league.RosterEntry) error {
	if m.UpsertSignupFunc != nil {
		return m.UpsertSignupFunc(eventID, entry)
	}
	return nil
}

func (m *MockStore) GetRoster(eventID string) ([]league.RosterEntry, error) {
	if m.GetRosterFunc != nil {
		return m.GetRosterFunc(eventID)
	}
	return nil, nil
}

func (m *MockStore) SaveMatches(eventID, seasonID string, planned []planner.PlannedMatch) ([]league.Match, error) {
	m.mu.Lock()
	m.SaveMatchesCalls = append(m.SaveMatchesCalls, eventID)
	m.mu.Unlock()
	if m.SaveMatchesFunc != nil {
		return m.SaveMatchesFunc(eventID, seasonID, planned)
	}
	return nil, nil
}

func (m *MockStore) GetMatch(matchID string) (*league.Match, error) {
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(matchID)
	}
	return nil, nil
}

func (m *MockStore) UpdateMatchStatus(matchID string, status league.MatchStatus) error {
	if m.UpdateMatchStatusFunc != nil {
		return m.UpdateMatchStatusFunc(matchID, status)
	}
	return nil
}

func (m *MockStore) RecordResult(result league.MatchResult) error {
	m.mu.Lock()
	m.RecordResultCalls = append(m.RecordResultCalls, result)
	m.mu.Unlock()
	if m.RecordResultFunc != nil {
		return m.RecordResultFunc(result)
	}
	return nil
}

func (m *MockStore) GetEventMatches(eventID string) ([]league.Match, error) {
	if m.GetEventMatchesFunc != nil {
		return m.GetEventMatchesFunc(eventID)
	}
	return nil, nil
}

func (m *MockStore) GetEventResults(eventID string) (map[string]league.MatchResult, error) {
	if m.GetEventResultsFunc != nil {
		return m.GetEventResultsFunc(eventID)
	}
	return nil, nil
}

func (m *MockStore) CompletedMatches(playerID string, limit int) ([]rating.PlayedMatch, error) {
	if m.CompletedMatchesFunc != nil {
		return m.CompletedMatchesFunc(playerID, limit)
	}
	return nil, nil
}

func (m *MockStore) EnsureEvent(eventID, seasonID string) error {
	if m.EnsureEventFunc != nil {
		return m.EnsureEventFunc(eventID, seasonID)
	}
	return nil
}

func (m *MockStore) IsLeaderboardComputed(eventID string) (bool, error) {
	if m.IsLeaderboardComputedFunc != nil {
		return m.IsLeaderboardComputedFunc(eventID)
	}
	return false, nil
}

func (m *MockStore) SaveLeaderboard(eventID string, entries []league.RankingEntry) error {
	m.mu.Lock()
	m.SaveLeaderboardCalls = append(m.SaveLeaderboardCalls, struct {
		EventID string
		Entries []league.RankingEntry
	}{eventID, entries})
	m.mu.Unlock()
	if m.SaveLeaderboardFunc != nil {
		return m.SaveLeaderboardFunc(eventID, entries)
	}
	return nil
}

func (m *MockStore) ReopenLeaderboard(eventID string) error {
	m.mu.Lock()
	m.ReopenLeaderboardCalls = append(m.ReopenLeaderboardCalls, eventID)
	m.mu.Unlock()
	if m.ReopenLeaderboardFunc != nil {
		return m.ReopenLeaderboardFunc(eventID)
	}
	return nil
}

func (m *MockStore) GetLeaderboard(eventID string) ([]league.RankingEntry, error) {
	if m.GetLeaderboardFunc != nil {
		return m.GetLeaderboardFunc(eventID)
	}
	return nil, nil
}

func (m *MockStore) GetSeasonPoints(seasonID string) (map[string]int, error) {
	if m.GetSeasonPointsFunc != nil {
		return m.GetSeasonPointsFunc(seasonID)
	}
	return nil, nil
}

func (m *MockStore) SaveWaitlist(eventID string, playerIDs []string) error {
	m.mu.Lock()
	m.SaveWaitlistCalls = append(m.SaveWaitlistCalls, struct {
		EventID   string
		PlayerIDs []string
	}{eventID, playerIDs})
	m.mu.Unlock()
	if m.SaveWaitlistFunc != nil {
		return m.SaveWaitlistFunc(eventID, playerIDs)
	}
	return nil
}

func (m *MockStore) GetWaitlist(eventID string) ([]string, error) {
	if m.GetWaitlistFunc != nil {
		return m.GetWaitlistFunc(eventID)
	}
	return nil, nil
}

func (m *MockStore) Clear() {}
