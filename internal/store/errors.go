package store

import "errors"

// Named store conditions, checked by callers with errors.Is.
var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrMatchNotFound  = errors.New("match not found")
	ErrEventNotFound  = errors.New("event not found")
	// ErrResultExists guards the one-result-per-match invariant.
	ErrResultExists = errors.New("match already has a result")
	// ErrLeaderboardLocked means the event leaderboard was already computed
	// and must be explicitly reopened before it can be written again.
	ErrLeaderboardLocked = errors.New("leaderboard already computed for event")
)
