package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventMatchesPlanned      EventType = "matches-planned"
	EventRatingUpdated       EventType = "rating-updated"
	EventLeaderboardComputed EventType = "leaderboard-computed"
	EventTieBreakRequired    EventType = "tie-break-required"
)

// MatchesPlannedPayload is published when an event's matches have been generated.
type MatchesPlannedPayload struct {
	EventID      string   `msgpack:"event_id"`
	MatchIDs     []string `msgpack:"match_ids"`
	WaitlistSize int      `msgpack:"waitlist_size"`
}

// RatingUpdatedPayload is published after a player's strength has been recalculated.
type RatingUpdatedPayload struct {
	PlayerID string  `msgpack:"player_id"`
	Strength float64 `msgpack:"strength"`
}

// LeaderboardComputedPayload is published when an event's leaderboard has been locked.
type LeaderboardComputedPayload struct {
	EventID    string `msgpack:"event_id"`
	ChampionID string `msgpack:"champion_id"`
}

// TieBreakRequiredPayload is published when first place is tied and a champion
// decision is needed before the leaderboard can be locked.
type TieBreakRequiredPayload struct {
	EventID   string   `msgpack:"event_id"`
	PlayerIDs []string `msgpack:"player_ids"`
}
