package scoring_test

import (
	"testing"

	"github.com/mauv0809/league-engine/internal/league"
	"github.com/mauv0809/league-engine/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedSingles(id, a, b string, winner league.Winner, sets ...league.SetScore) (league.Match, league.MatchResult) {
	m := league.Match{
		ID: id, EventID: "e1", Category: league.CategorySingles,
		TeamA: []string{a}, TeamB: []string{b}, Status: league.StatusCompleted,
	}
	winnerID := a
	if winner == league.WinnerTeamB {
		winnerID = b
	}
	r := league.MatchResult{MatchID: id, Winner: winner, WinnerIDs: []string{winnerID}, Sets: sets}
	return m, r
}

func input(pairs ...func() (league.Match, league.MatchResult)) scoring.Input {
	in := scoring.Input{Results: make(map[string]league.MatchResult)}
	for _, pair := range pairs {
		m, r := pair()
		in.Matches = append(in.Matches, m)
		in.Results[m.ID] = r
	}
	return in
}

func pair(m league.Match, r league.MatchResult) func() (league.Match, league.MatchResult) {
	return func() (league.Match, league.MatchResult) { return m, r }
}

func TestComputeRanking(t *testing.T) {
	e := scoring.New()

	in := input(
		pair(completedSingles("m1", "p1", "p2", league.WinnerTeamA, league.SetScore{GamesA: 6, GamesB: 3})),
		pair(completedSingles("m2", "p1", "p3", league.WinnerTeamA, league.SetScore{GamesA: 6, GamesB: 4})),
		pair(completedSingles("m3", "p2", "p3", league.WinnerTeamA, league.SetScore{GamesA: 7, GamesB: 5})),
	)

	out, err := e.Compute(in)
	require.NoError(t, err)
	require.False(t, out.RequiresTieBreak)
	require.Len(t, out.Entries, 3)

	t.Run("ordering is wins first then game differential", func(t *testing.T) {
		for i := 0; i < len(out.Entries)-1; i++ {
			cur, next := out.Entries[i], out.Entries[i+1]
			if cur.Wins == next.Wins {
				assert.GreaterOrEqual(t, cur.GameDiff, next.GameDiff)
			} else {
				assert.Greater(t, cur.Wins, next.Wins)
			}
		}
	})

	t.Run("ranks, bonuses and points", func(t *testing.T) {
		assert.Equal(t, "p1", out.Entries[0].PlayerID)
		assert.Equal(t, 1, out.Entries[0].Rank)
		assert.Equal(t, 4, out.Entries[0].Bonus)
		assert.Equal(t, 6, out.Entries[0].Points) // 2 wins + 4
		assert.Equal(t, "1st", out.Entries[0].Remark)

		assert.Equal(t, 2, out.Entries[1].Rank)
		assert.Equal(t, 2, out.Entries[1].Bonus)
		assert.Equal(t, "2nd", out.Entries[1].Remark)

		assert.Equal(t, 3, out.Entries[2].Rank)
		assert.Equal(t, 0, out.Entries[2].Bonus)
		assert.Empty(t, out.Entries[2].Remark)
	})

	t.Run("points map mirrors the entries", func(t *testing.T) {
		require.Len(t, out.Points, 3)
		for _, entry := range out.Entries {
			assert.Equal(t, entry.Points, out.Points[entry.PlayerID])
		}
	})
}

func TestComputeDoublesCreditsBothWinners(t *testing.T) {
	e := scoring.New()

	doubles := league.Match{
		ID: "m1", EventID: "e1", Category: league.CategoryMensDoubles,
		TeamA: []string{"p1", "p2"}, TeamB: []string{"p3", "p4"},
		Status: league.StatusCompleted,
	}
	doublesResult := league.MatchResult{
		MatchID: "m1", Winner: league.WinnerTeamA, WinnerIDs: []string{"p1", "p2"},
		Sets: []league.SetScore{{GamesA: 6, GamesB: 2}},
	}

	t.Run("a lone doubles match ties the winning teammates", func(t *testing.T) {
		out, err := e.Compute(scoring.Input{
			Matches: []league.Match{doubles},
			Results: map[string]league.MatchResult{"m1": doublesResult},
		})
		require.NoError(t, err)
		assert.True(t, out.RequiresTieBreak)
		assert.Empty(t, out.Entries)
		require.Len(t, out.TiedPlayers, 2)
		assert.Equal(t, "p1", out.TiedPlayers[0].PlayerID)
		assert.Equal(t, "p2", out.TiedPlayers[1].PlayerID)
	})

	t.Run("both teammates carry the win into the ranking", func(t *testing.T) {
		// A singles match between the teammates breaks their first-place tie.
		sep, sepResult := completedSingles("m2", "p1", "p2", league.WinnerTeamA, league.SetScore{GamesA: 6, GamesB: 3})

		out, err := e.Compute(scoring.Input{
			Matches: []league.Match{doubles, sep},
			Results: map[string]league.MatchResult{"m1": doublesResult, "m2": sepResult},
		})
		require.NoError(t, err)
		require.False(t, out.RequiresTieBreak)
		require.Len(t, out.Entries, 4)

		byID := make(map[string]league.RankingEntry)
		for _, entry := range out.Entries {
			byID[entry.PlayerID] = entry
		}
		assert.Equal(t, 2, byID["p1"].Wins)
		assert.Equal(t, 1, byID["p2"].Wins)
		assert.Equal(t, 0, byID["p3"].Wins)
		assert.Equal(t, 7, byID["p1"].GameDiff)
		assert.Equal(t, 1, byID["p2"].GameDiff)
		assert.Equal(t, -4, byID["p4"].GameDiff)
	})
}

func TestComputeTieBreak(t *testing.T) {
	e := scoring.New()

	// p1 and p2 both finish on 2 wins and a zero game differential: their
	// head-to-head set scores cancel out and the wins over p3 carry no sets.
	tiedInput := func() scoring.Input {
		return input(
			pair(completedSingles("m1", "p1", "p3", league.WinnerTeamA)),
			pair(completedSingles("m2", "p2", "p3", league.WinnerTeamA)),
			pair(completedSingles("m3", "p1", "p2", league.WinnerTeamA, league.SetScore{GamesA: 6, GamesB: 4})),
			pair(completedSingles("m4", "p2", "p1", league.WinnerTeamA, league.SetScore{GamesA: 6, GamesB: 4})),
		)
	}

	t.Run("halts for an external decision when no champion is given", func(t *testing.T) {
		in := tiedInput()
		in.PlayerNames = map[string]string{"p1": "Alice", "p2": "Bob"}

		out, err := e.Compute(in)
		require.NoError(t, err)
		assert.True(t, out.RequiresTieBreak)
		assert.Empty(t, out.Entries)
		require.Len(t, out.TiedPlayers, 2)
		assert.Equal(t, "Alice", out.TiedPlayers[0].PlayerName)
		assert.Equal(t, 2, out.TiedPlayers[0].Wins)
		assert.Equal(t, 0, out.TiedPlayers[0].GameDiff)
	})

	t.Run("a supplied champion takes rank one", func(t *testing.T) {
		in := tiedInput()
		in.ChampionID = "p2"

		out, err := e.Compute(in)
		require.NoError(t, err)
		require.False(t, out.RequiresTieBreak)

		assert.Equal(t, "p2", out.Entries[0].PlayerID)
		assert.Equal(t, 1, out.Entries[0].Rank)
		assert.Equal(t, 4, out.Entries[0].Bonus)
		assert.Equal(t, "p1", out.Entries[1].PlayerID)
		assert.Equal(t, 2, out.Entries[1].Rank)
		assert.Equal(t, 2, out.Entries[1].Bonus)
	})

	t.Run("a champion outside the tie is rejected", func(t *testing.T) {
		in := tiedInput()
		in.ChampionID = "p3"

		_, err := e.Compute(in)
		assert.ErrorIs(t, err, scoring.ErrInvalidChampion)
	})
}

func TestComputeConflicts(t *testing.T) {
	e := scoring.New()

	t.Run("already computed leaderboard is a conflict", func(t *testing.T) {
		in := input(pair(completedSingles("m1", "p1", "p2", league.WinnerTeamA)))
		in.AlreadyComputed = true

		_, err := e.Compute(in)
		assert.ErrorIs(t, err, scoring.ErrAlreadyComputed)
	})

	t.Run("completed match without a result is reported", func(t *testing.T) {
		m := league.Match{ID: "m1", TeamA: []string{"p1"}, TeamB: []string{"p2"}, Status: league.StatusCompleted}
		_, err := e.Compute(scoring.Input{Matches: []league.Match{m}, Results: map[string]league.MatchResult{}})
		assert.ErrorIs(t, err, scoring.ErrResultMissing)
	})

	t.Run("non-completed matches are ignored", func(t *testing.T) {
		m := league.Match{ID: "m1", TeamA: []string{"p1"}, TeamB: []string{"p2"}, Status: league.StatusDraft}
		out, err := e.Compute(scoring.Input{Matches: []league.Match{m}, Results: map[string]league.MatchResult{}})
		require.NoError(t, err)
		assert.Empty(t, out.Entries)
	})
}
