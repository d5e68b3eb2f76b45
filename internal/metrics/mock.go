package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                   sync.Mutex
	ratingsRecalculated  int
	matchesPlanned       int
	planningDurations    []float64
	scoringDurations     []float64
	leaderboardsComputed int
	tieBreaksRequired    int
	notifSent            int
	notifFailed          int
	startupTime          float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) IncRatingsRecalculated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ratingsRecalculated++
}

func (m *Mock) IncMatchesPlanned(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesPlanned += count
}

func (m *Mock) ObservePlanningDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.planningDurations = append(m.planningDurations, duration)
}

func (m *Mock) ObserveScoringDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scoringDurations = append(m.scoringDurations, duration)
}

func (m *Mock) IncLeaderboardsComputed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaderboardsComputed++
}

func (m *Mock) IncTieBreaksRequired() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tieBreaksRequired++
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// RatingsRecalculated returns the number of times IncRatingsRecalculated was called.
func (m *Mock) RatingsRecalculated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ratingsRecalculated
}

// MatchesPlanned returns the accumulated planned-match count.
func (m *Mock) MatchesPlanned() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesPlanned
}

// LeaderboardsComputed returns the number of times IncLeaderboardsComputed was called.
func (m *Mock) LeaderboardsComputed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leaderboardsComputed
}

// TieBreaksRequired returns the number of times IncTieBreaksRequired was called.
func (m *Mock) TieBreaksRequired() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tieBreaksRequired
}

// NotifSent returns the number of times IncNotifSent was called.
func (m *Mock) NotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent
}

// NotifFailed returns the number of times IncNotifFailed was called.
func (m *Mock) NotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed
}
