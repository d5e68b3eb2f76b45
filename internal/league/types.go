package league

import "time"

// Gender identifies a player's roster gender.
type Gender string

const (
	Male   Gender = "M"
	Female Gender = "F"
)

// Category represents a match format.
type Category string

const (
	CategorySingles       Category = "SINGLES"
	CategoryMensSingles   Category = "MENS_SINGLES"
	CategoryWomensSingles Category = "WOMENS_SINGLES"
	CategoryMensDoubles   Category = "MENS_DOUBLES"
	CategoryWomensDoubles Category = "WOMENS_DOUBLES"
	CategoryMixedDoubles  Category = "MIXED_DOUBLES"
)

// MatchStatus defines the lifecycle state of a match.
type MatchStatus string

const (
	StatusDraft     MatchStatus = "DRAFT"
	StatusApproved  MatchStatus = "APPROVED"
	StatusCompleted MatchStatus = "COMPLETED"
)

// Winner identifies which side of a match won.
type Winner string

const (
	WinnerTeamA Winner = "A"
	WinnerTeamB Winner = "B"
)

// Player represents a league player. Skill is the self-declared level
// (1.0-7.0); Strength is the computed rating (1.0-16.5) and is nil until
// first computed.
type Player struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Gender            Gender     `json:"gender"`
	Skill             *float64   `json:"skill,omitempty"`
	Strength          *float64   `json:"strength,omitempty"`
	StrengthUpdatedAt *time.Time `json:"strength_updated_at,omitempty"`
}

// Match represents a single league match.
type Match struct {
	ID        string      `json:"id"`
	EventID   string      `json:"event_id"`
	SeasonID  string      `json:"season_id"`
	Category  Category    `json:"category"`
	TeamA     []string    `json:"team_a"`
	TeamB     []string    `json:"team_b"`
	Status    MatchStatus `json:"status"`
	CreatedAt int64       `json:"created_at"`
}

// SetScore holds the game counts of one set, plus an optional tiebreak.
type SetScore struct {
	GamesA    int  `json:"games_a"`
	GamesB    int  `json:"games_b"`
	TiebreakA *int `json:"tiebreak_a,omitempty"`
	TiebreakB *int `json:"tiebreak_b,omitempty"`
}

// MatchResult is the recorded outcome of a completed match. Exactly one
// result exists per completed match. WinnerIDs lists every player on the
// winning team.
type MatchResult struct {
	MatchID   string     `json:"match_id"`
	Sets      []SetScore `json:"sets,omitempty"`
	Winner    Winner     `json:"winner"`
	WinnerIDs []string   `json:"winner_ids"`
	EnteredAt int64      `json:"entered_at"`
}

// RankingEntry is one row of an event leaderboard.
type RankingEntry struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name,omitempty"`
	Wins       int    `json:"wins"`
	GameDiff   int    `json:"game_diff"`
	Bonus      int    `json:"bonus"`
	Points     int    `json:"points"`
	Rank       int    `json:"rank"`
	Remark     string `json:"remark,omitempty"`
}

// RosterEntry is a signed-up player, optionally restricted to one category.
type RosterEntry struct {
	Player  Player    `json:"player"`
	Prefers *Category `json:"prefers,omitempty"`
}

// Participants returns the union of both teams.
func (m *Match) Participants() []string {
	ids := make([]string, 0, len(m.TeamA)+len(m.TeamB))
	ids = append(ids, m.TeamA...)
	ids = append(ids, m.TeamB...)
	return ids
}

// OnTeamA reports whether the player is on team A.
func (m *Match) OnTeamA(playerID string) bool {
	for _, id := range m.TeamA {
		if id == playerID {
			return true
		}
	}
	return false
}

// HasParticipant reports whether the player appears on either team.
func (m *Match) HasParticipant(playerID string) bool {
	if m.OnTeamA(playerID) {
		return true
	}
	for _, id := range m.TeamB {
		if id == playerID {
			return true
		}
	}
	return false
}

// TeamSize returns the number of players per team for the category.
func (c Category) TeamSize() int {
	switch c {
	case CategoryMensDoubles, CategoryWomensDoubles, CategoryMixedDoubles:
		return 2
	}
	return 1
}

// IsDoubles reports whether the category is a doubles format.
func (c Category) IsDoubles() bool {
	return c.TeamSize() == 2
}

// Admits reports whether a player of the given gender may enter the category.
func (c Category) Admits(g Gender) bool {
	switch c {
	case CategoryMensSingles, CategoryMensDoubles:
		return g == Male
	case CategoryWomensSingles, CategoryWomensDoubles:
		return g == Female
	}
	return true
}
