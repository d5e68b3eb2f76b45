package planner_test

import (
	"fmt"
	"testing"

	"github.com/mauv0809/league-engine/internal/league"
	"github.com/mauv0809/league-engine/internal/planner"
	"github.com/mauv0809/league-engine/internal/rating"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlanner(cfg planner.Config) *planner.Planner {
	return planner.New(cfg, rating.DefaultConfig())
}

// roster builds a mixed roster with the given gender counts. Strengths are
// spread out so balancing has something to chew on.
func roster(males, females int) []league.RosterEntry {
	var out []league.RosterEntry
	for i := 0; i < males; i++ {
		s := 5.0 + float64(i)*0.7
		out = append(out, league.RosterEntry{Player: league.Player{
			ID: fmt.Sprintf("m%d", i+1), Name: fmt.Sprintf("Male %d", i+1),
			Gender: league.Male, Strength: &s,
		}})
	}
	for i := 0; i < females; i++ {
		s := 4.5 + float64(i)*0.8
		out = append(out, league.RosterEntry{Player: league.Player{
			ID: fmt.Sprintf("f%d", i+1), Name: fmt.Sprintf("Female %d", i+1),
			Gender: league.Female, Strength: &s,
		}})
	}
	return out
}

func genderOf(id string) league.Gender {
	if id[0] == 'm' {
		return league.Male
	}
	return league.Female
}

func TestPlanDistribution(t *testing.T) {
	p := newPlanner(planner.DefaultConfig())

	t.Run("known rosters", func(t *testing.T) {
		d := p.PlanDistribution(7, 2)
		assert.Equal(t, planner.Distribution{MensDoubles: 5, MixedDoubles: 4, WomensDoubles: 0}, d)

		d = p.PlanDistribution(5, 4)
		assert.Equal(t, planner.Distribution{MensDoubles: 3, MixedDoubles: 4, WomensDoubles: 2}, d)
	})

	t.Run("fewer than four players yields no doubles", func(t *testing.T) {
		assert.Equal(t, planner.Distribution{}, p.PlanDistribution(2, 1))
		assert.Equal(t, planner.Distribution{}, p.PlanDistribution(0, 3))
		assert.Equal(t, planner.Distribution{}, p.PlanDistribution(3, 0))
	})

	t.Run("quotas are never negative", func(t *testing.T) {
		for m := 0; m <= 12; m++ {
			for f := 0; f <= 12; f++ {
				d := p.PlanDistribution(m, f)
				assert.GreaterOrEqual(t, d.MensDoubles, 0)
				assert.GreaterOrEqual(t, d.MixedDoubles, 0)
				assert.GreaterOrEqual(t, d.WomensDoubles, 0)
			}
		}
	})
}

func TestGenerateDoubles(t *testing.T) {
	p := newPlanner(planner.DefaultConfig())
	allowed := []league.Category{
		league.CategoryMensDoubles,
		league.CategoryWomensDoubles,
		league.CategoryMixedDoubles,
	}

	plan, err := p.Generate(roster(5, 4), allowed)
	require.NoError(t, err)
	require.NotEmpty(t, plan.Matches)

	t.Run("teams are disjoint and sized for the category", func(t *testing.T) {
		for _, m := range plan.Matches {
			assert.Len(t, m.TeamA, m.Category.TeamSize())
			assert.Len(t, m.TeamB, m.Category.TeamSize())
			for _, a := range m.TeamA {
				assert.NotContains(t, m.TeamB, a)
			}
		}
	})

	t.Run("teams obey the category gender constraint", func(t *testing.T) {
		for _, m := range plan.Matches {
			switch m.Category {
			case league.CategoryMensDoubles:
				for _, id := range append(m.TeamA, m.TeamB...) {
					assert.Equal(t, league.Male, genderOf(id))
				}
			case league.CategoryWomensDoubles:
				for _, id := range append(m.TeamA, m.TeamB...) {
					assert.Equal(t, league.Female, genderOf(id))
				}
			case league.CategoryMixedDoubles:
				for _, team := range [][]string{m.TeamA, m.TeamB} {
					require.Len(t, team, 2)
					assert.NotEqual(t, genderOf(team[0]), genderOf(team[1]), "mixed team must have one of each gender")
				}
			}
		}
	})

	t.Run("no partnership repeats within a run", func(t *testing.T) {
		seen := make(map[string]bool)
		for _, m := range plan.Matches {
			for _, team := range [][]string{m.TeamA, m.TeamB} {
				a, b := team[0], team[1]
				if b < a {
					a, b = b, a
				}
				key := a + "|" + b
				assert.False(t, seen[key], "pair %s used twice as teammates", key)
				seen[key] = true
			}
		}
	})

	t.Run("match counts line up with generated matches", func(t *testing.T) {
		counts := make(map[string]int)
		for _, m := range plan.Matches {
			for _, id := range append(m.TeamA, m.TeamB...) {
				counts[id]++
			}
		}
		assert.Equal(t, counts, plan.MatchCounts)
	})
}

func TestGenerateSingles(t *testing.T) {
	p := newPlanner(planner.DefaultConfig())

	plan, err := p.Generate(roster(4, 0), []league.Category{league.CategoryMensSingles})
	require.NoError(t, err)
	require.NotEmpty(t, plan.Matches)

	t.Run("singles teams hold one player each", func(t *testing.T) {
		for _, m := range plan.Matches {
			assert.Len(t, m.TeamA, 1)
			assert.Len(t, m.TeamB, 1)
			assert.NotEqual(t, m.TeamA[0], m.TeamB[0])
		}
	})

	t.Run("no pairing plays twice", func(t *testing.T) {
		seen := make(map[string]bool)
		for _, m := range plan.Matches {
			a, b := m.TeamA[0], m.TeamB[0]
			if b < a {
				a, b = b, a
			}
			key := a + "|" + b
			assert.False(t, seen[key], "pair %s met twice", key)
			seen[key] = true
		}
	})

	t.Run("four players cap out at six distinct pairings", func(t *testing.T) {
		assert.LessOrEqual(t, len(plan.Matches), 6)
	})
}

func TestGenerateWaitlist(t *testing.T) {
	t.Run("zero-match-only flags only unassigned players", func(t *testing.T) {
		p := newPlanner(planner.DefaultConfig())
		// One lone female cannot enter men's doubles and gets no match.
		r := roster(4, 1)
		plan, err := p.Generate(r, []league.Category{league.CategoryMensDoubles})
		require.NoError(t, err)

		assert.Contains(t, plan.Waitlist, "f1")
		for _, m := range plan.Matches {
			assert.NotContains(t, append(m.TeamA, m.TeamB...), "f1")
		}
	})

	t.Run("strict policy flags everyone under target", func(t *testing.T) {
		cfg := planner.DefaultConfig()
		cfg.Waitlist = planner.WaitlistStrict
		p := newPlanner(cfg)

		plan, err := p.Generate(roster(4, 1), []league.Category{league.CategoryMensDoubles})
		require.NoError(t, err)

		target := p.Target(5)
		for _, e := range roster(4, 1) {
			if plan.MatchCounts[e.Player.ID] < target {
				assert.Contains(t, plan.Waitlist, e.Player.ID)
			} else {
				assert.NotContains(t, plan.Waitlist, e.Player.ID)
			}
		}
	})
}

func TestGenerateCategoryPreference(t *testing.T) {
	p := newPlanner(planner.DefaultConfig())
	mixed := league.CategoryMixedDoubles

	r := roster(4, 4)
	// m1 signed up for mixed only; he must not appear in men's doubles.
	r[0].Prefers = &mixed

	plan, err := p.Generate(r, []league.Category{league.CategoryMensDoubles, league.CategoryMixedDoubles, league.CategoryWomensDoubles})
	require.NoError(t, err)

	for _, m := range plan.Matches {
		if m.Category == league.CategoryMensDoubles {
			assert.NotContains(t, append(m.TeamA, m.TeamB...), "m1")
		}
	}
}

func TestGenerateValidation(t *testing.T) {
	p := newPlanner(planner.DefaultConfig())

	t.Run("empty roster", func(t *testing.T) {
		_, err := p.Generate(nil, []league.Category{league.CategorySingles})
		assert.ErrorIs(t, err, planner.ErrEmptyRoster)
	})

	t.Run("no categories", func(t *testing.T) {
		_, err := p.Generate(roster(2, 2), nil)
		assert.ErrorIs(t, err, planner.ErrNoCategories)
	})

	t.Run("missing gender", func(t *testing.T) {
		r := roster(2, 2)
		r[0].Player.Gender = ""
		_, err := p.Generate(r, []league.Category{league.CategorySingles})
		assert.ErrorIs(t, err, planner.ErrUnknownGender)
	})
}
