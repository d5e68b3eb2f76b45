package scoring

import (
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/league-engine/internal/league"
)

// Domain conditions reported by Compute. Callers check these with errors.Is
// before persisting anything.
var (
	// ErrAlreadyComputed means the event's leaderboard is locked; reopening it
	// is an event-lifecycle capability, not a scoring one.
	ErrAlreadyComputed = errors.New("event leaderboard already computed")
	// ErrInvalidChampion means the supplied tie-break winner is not one of the
	// tied players.
	ErrInvalidChampion = errors.New("champion is not among the tied players")
	// ErrResultMissing means a completed match has no recorded result.
	ErrResultMissing = errors.New("completed match has no result")
)

// Bonus points awarded to the top two ranks.
const (
	firstPlaceBonus  = 4
	secondPlaceBonus = 2
)

// Input is everything one scoring run reads. Results is keyed by match ID.
// ChampionID, when set, resolves a first-place tie externally.
type Input struct {
	Matches         []league.Match
	Results         map[string]league.MatchResult
	PlayerNames     map[string]string
	ChampionID      string
	AlreadyComputed bool
}

// TiedPlayer is one of the entries blocking automatic first-place assignment.
type TiedPlayer struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Wins       int    `json:"wins"`
	GameDiff   int    `json:"game_diff"`
}

// Outcome is the result of a scoring run. When RequiresTieBreak is set the
// leaderboard is empty and nothing may be persisted until a champion is
// supplied.
type Outcome struct {
	Entries          []league.RankingEntry `json:"entries"`
	Points           map[string]int        `json:"points"`
	RequiresTieBreak bool                  `json:"requires_tie_break"`
	TiedPlayers      []TiedPlayer          `json:"tied_players,omitempty"`
}

// Engine converts an event's completed matches into a ranked leaderboard.
type Engine struct{}

// New creates a score engine.
func New() *Engine {
	return &Engine{}
}

// Compute tallies wins and game differentials over the event's completed
// matches, ranks the players, and awards rank bonuses. A first-place tie on
// both keys halts the run for an external decision unless a champion is
// supplied.
func (e *Engine) Compute(in Input) (*Outcome, error) {
	if in.AlreadyComputed {
		return nil, ErrAlreadyComputed
	}

	type tally struct {
		playerID  string
		wins      int
		gamesWon  int
		gamesLost int
		order     int
	}
	tallies := make(map[string]*tally)
	next := 0
	get := func(id string) *tally {
		t, ok := tallies[id]
		if !ok {
			t = &tally{playerID: id, order: next}
			next++
			tallies[id] = t
		}
		return t
	}

	for _, m := range in.Matches {
		if m.Status != league.StatusCompleted {
			continue
		}
		res, ok := in.Results[m.ID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrResultMissing, m.ID)
		}
		for _, id := range res.WinnerIDs {
			get(id).wins++
		}
		for _, set := range res.Sets {
			for _, id := range m.TeamA {
				t := get(id)
				t.gamesWon += set.GamesA
				t.gamesLost += set.GamesB
			}
			for _, id := range m.TeamB {
				t := get(id)
				t.gamesWon += set.GamesB
				t.gamesLost += set.GamesA
			}
		}
		// Participants with no sets and no win still get an entry.
		for _, id := range m.Participants() {
			get(id)
		}
	}

	entries := make([]league.RankingEntry, 0, len(tallies))
	for _, t := range tallies {
		entries = append(entries, league.RankingEntry{
			PlayerID:   t.playerID,
			PlayerName: in.PlayerNames[t.playerID],
			Wins:       t.wins,
			GameDiff:   t.gamesWon - t.gamesLost,
			Rank:       t.order, // input order, used for a stable sort below
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Wins != entries[j].Wins {
			return entries[i].Wins > entries[j].Wins
		}
		if entries[i].GameDiff != entries[j].GameDiff {
			return entries[i].GameDiff > entries[j].GameDiff
		}
		return entries[i].Rank < entries[j].Rank
	})

	if len(entries) >= 2 && tied(entries[0], entries[1]) {
		resolved, err := resolveTie(entries, in.ChampionID)
		if err != nil {
			return nil, err
		}
		if resolved == nil {
			out := &Outcome{RequiresTieBreak: true, TiedPlayers: tiedPlayers(entries, in.PlayerNames)}
			log.Info("Scoring halted, first place is tied", "tied", len(out.TiedPlayers))
			return out, nil
		}
		entries = resolved
	}

	points := make(map[string]int, len(entries))
	for i := range entries {
		entries[i].Rank = i + 1
		switch i {
		case 0:
			entries[i].Bonus = firstPlaceBonus
			entries[i].Remark = "1st"
		case 1:
			entries[i].Bonus = secondPlaceBonus
			entries[i].Remark = "2nd"
		}
		entries[i].Points = entries[i].Wins + entries[i].Bonus
		points[entries[i].PlayerID] = entries[i].Points
	}

	log.Info("Computed event leaderboard", "players", len(entries))
	return &Outcome{Entries: entries, Points: points}, nil
}

func tied(a, b league.RankingEntry) bool {
	return a.Wins == b.Wins && a.GameDiff == b.GameDiff
}

// tiedPlayers collects every entry matching the leader on both tie keys.
func tiedPlayers(entries []league.RankingEntry, names map[string]string) []TiedPlayer {
	var out []TiedPlayer
	for _, e := range entries {
		if !tied(e, entries[0]) {
			break
		}
		out = append(out, TiedPlayer{
			PlayerID:   e.PlayerID,
			PlayerName: names[e.PlayerID],
			Wins:       e.Wins,
			GameDiff:   e.GameDiff,
		})
	}
	return out
}

// resolveTie moves the chosen champion to the front, keeping the relative
// order of the remaining tied entries. A nil return means no champion was
// supplied.
func resolveTie(entries []league.RankingEntry, championID string) ([]league.RankingEntry, error) {
	if championID == "" {
		return nil, nil
	}
	idx := -1
	for i, e := range entries {
		if !tied(e, entries[0]) {
			break
		}
		if e.PlayerID == championID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidChampion, championID)
	}
	resolved := make([]league.RankingEntry, 0, len(entries))
	resolved = append(resolved, entries[idx])
	for i, e := range entries {
		if i != idx {
			resolved = append(resolved, e)
		}
	}
	return resolved, nil
}
