package planner

import "github.com/mauv0809/league-engine/internal/league"

// WaitlistPolicy selects which unassigned players end up on the waitlist.
type WaitlistPolicy string

const (
	// WaitlistZeroMatchOnly flags only players with no match at all. This is
	// the default.
	WaitlistZeroMatchOnly WaitlistPolicy = "ZERO_MATCH_ONLY"
	// WaitlistStrict flags every player below their target match count.
	WaitlistStrict WaitlistPolicy = "STRICT"
)

// Config carries the planner's tuning values.
type Config struct {
	TargetSmall    int // matches per player on small rosters
	TargetLarge    int // matches per player otherwise
	SmallRosterMax int // rosters up to this size use TargetSmall
	Waitlist       WaitlistPolicy
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		TargetSmall:    3,
		TargetLarge:    4,
		SmallRosterMax: 6,
		Waitlist:       WaitlistZeroMatchOnly,
	}
}

// Distribution holds the per-category doubles quotas for one event. Quotas
// are targets, not guarantees; generation may fall short when the partner
// constraints cannot be satisfied.
type Distribution struct {
	MensDoubles   int `json:"mens_doubles"`
	MixedDoubles  int `json:"mixed_doubles"`
	WomensDoubles int `json:"womens_doubles"`
}

// PlannedMatch is a generated pairing, not yet persisted.
type PlannedMatch struct {
	Category league.Category `json:"category"`
	TeamA    []string        `json:"team_a"`
	TeamB    []string        `json:"team_b"`
}

// Plan is the outcome of one generation run.
type Plan struct {
	Matches     []PlannedMatch `json:"matches"`
	Waitlist    []string       `json:"waitlist"`
	MatchCounts map[string]int `json:"match_counts"`
}
