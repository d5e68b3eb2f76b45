package planner

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/league-engine/internal/league"
	"github.com/mauv0809/league-engine/internal/rating"
)

// Validation errors reported by Generate.
var (
	ErrEmptyRoster   = errors.New("roster is empty")
	ErrNoCategories  = errors.New("no allowed categories given")
	ErrUnknownGender = errors.New("roster player has no gender")
)

// Planner turns a roster into balanced matches plus a waitlist. It is a pure
// computation: it reads nothing and persists nothing.
type Planner struct {
	cfg       Config
	ratingCfg rating.Config
}

// New creates a planner.
func New(cfg Config, ratingCfg rating.Config) *Planner {
	return &Planner{cfg: cfg, ratingCfg: ratingCfg}
}

// Target returns the per-player match target for a roster of the given size.
func (p *Planner) Target(rosterSize int) int {
	if rosterSize <= p.cfg.SmallRosterMax {
		return p.cfg.TargetSmall
	}
	return p.cfg.TargetLarge
}

// PlanDistribution allocates doubles quotas by filling gender slots: women's
// doubles first, mixed doubles from the remaining female demand, men's
// doubles from the remaining male demand. Quotas are targets, not guarantees.
func (p *Planner) PlanDistribution(maleCount, femaleCount int) Distribution {
	var d Distribution
	total := maleCount + femaleCount
	if total < 4 {
		return d
	}
	target := p.Target(total)

	if femaleCount >= 4 {
		d.WomensDoubles = femaleCount / 2
	}
	if maleCount >= 2 && femaleCount >= 2 {
		d.MixedDoubles = max(0, (femaleCount*target-d.WomensDoubles*4)/2)
	}
	if maleCount >= 4 {
		d.MensDoubles = max(0, (maleCount*target-d.MixedDoubles*2)/4)
	}
	return d
}

// Generate produces matches and a waitlist for the roster under the allowed
// categories. Doubles categories take precedence; singles generation runs
// only when no doubles category is allowed.
func (p *Planner) Generate(roster []league.RosterEntry, allowed []league.Category) (*Plan, error) {
	if len(roster) == 0 {
		return nil, ErrEmptyRoster
	}
	if len(allowed) == 0 {
		return nil, ErrNoCategories
	}
	for _, e := range roster {
		if e.Player.Gender != league.Male && e.Player.Gender != league.Female {
			return nil, fmt.Errorf("%w: %s", ErrUnknownGender, e.Player.ID)
		}
	}

	allowedSet := make(map[league.Category]bool, len(allowed))
	doubles := false
	for _, c := range allowed {
		allowedSet[c] = true
		if c.IsDoubles() {
			doubles = true
		}
	}

	g := &generation{
		planner:  p,
		roster:   roster,
		target:   p.Target(len(roster)),
		counts:   make(map[string]int, len(roster)),
		partners: newPairSet(),
		rivals:   newPairSet(),
	}

	if doubles {
		males, females := g.classify()
		dist := p.PlanDistribution(len(males), len(females))
		log.Debug("Planned doubles distribution", "mens", dist.MensDoubles, "mixed", dist.MixedDoubles, "womens", dist.WomensDoubles)

		if allowedSet[league.CategoryWomensDoubles] {
			g.sameGenderDoubles(league.CategoryWomensDoubles, dist.WomensDoubles)
		}
		if allowedSet[league.CategoryMixedDoubles] {
			g.mixedDoubles(dist.MixedDoubles)
		}
		if allowedSet[league.CategoryMensDoubles] {
			g.sameGenderDoubles(league.CategoryMensDoubles, dist.MensDoubles)
		}
	} else {
		for _, c := range []league.Category{league.CategorySingles, league.CategoryMensSingles, league.CategoryWomensSingles} {
			if allowedSet[c] {
				g.singles(c)
			}
		}
	}

	plan := &Plan{
		Matches:     g.matches,
		Waitlist:    g.waitlist(p.cfg.Waitlist),
		MatchCounts: g.counts,
	}
	log.Info("Generated matches", "matches", len(plan.Matches), "waitlist", len(plan.Waitlist), "roster", len(roster))
	return plan, nil
}

// generation holds the mutable state of a single Generate run.
type generation struct {
	planner  *Planner
	roster   []league.RosterEntry
	target   int
	counts   map[string]int
	partners *pairSet
	rivals   *pairSet
	matches  []PlannedMatch
}

func (g *generation) strength(p league.Player) float64 {
	return rating.CurrentStrength(g.planner.ratingCfg, p)
}

// classify splits the roster by gender, each side sorted by strength
// descending.
func (g *generation) classify() (males, females []league.RosterEntry) {
	for _, e := range g.roster {
		if e.Player.Gender == league.Male {
			males = append(males, e)
		} else {
			females = append(females, e)
		}
	}
	byStrength := func(entries []league.RosterEntry) {
		sort.SliceStable(entries, func(i, j int) bool {
			return g.strength(entries[i].Player) > g.strength(entries[j].Player)
		})
	}
	byStrength(males)
	byStrength(females)
	return males, females
}

// eligible returns the roster players admissible to the category and still
// under their target, sorted by current match count ascending (strength
// descending as tie-break) so the least-used players are picked first.
func (g *generation) eligible(c league.Category) []league.RosterEntry {
	var out []league.RosterEntry
	for _, e := range g.roster {
		if !c.Admits(e.Player.Gender) {
			continue
		}
		if e.Prefers != nil && *e.Prefers != c {
			continue
		}
		if g.counts[e.Player.ID] >= g.target {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ci, cj := g.counts[out[i].Player.ID], g.counts[out[j].Player.ID]
		if ci != cj {
			return ci < cj
		}
		return g.strength(out[i].Player) > g.strength(out[j].Player)
	})
	return out
}

// sameGenderDoubles fills the quota for men's or women's doubles. Each
// attempt takes the four least-used eligible players and picks the most
// balanced of the three splits that repeats no partnership; an attempt with
// no valid split is skipped without a match.
func (g *generation) sameGenderDoubles(c league.Category, quota int) {
	for i := 0; i < quota; i++ {
		elig := g.eligible(c)
		if len(elig) < 4 {
			return
		}
		four := elig[:4]

		splits := [3][2][2]int{
			{{0, 1}, {2, 3}},
			{{0, 2}, {1, 3}},
			{{0, 3}, {1, 2}},
		}
		bestDiff := math.MaxFloat64
		var best *PlannedMatch
		for _, s := range splits {
			a1, a2 := four[s[0][0]].Player, four[s[0][1]].Player
			b1, b2 := four[s[1][0]].Player, four[s[1][1]].Player
			if g.partners.has(a1.ID, a2.ID) || g.partners.has(b1.ID, b2.ID) {
				continue
			}
			diff := math.Abs((g.strength(a1) + g.strength(a2)) - (g.strength(b1) + g.strength(b2)))
			if diff < bestDiff {
				bestDiff = diff
				best = &PlannedMatch{
					Category: c,
					TeamA:    []string{a1.ID, a2.ID},
					TeamB:    []string{b1.ID, b2.ID},
				}
			}
		}
		if best == nil {
			log.Debug("No partner-valid split, skipping attempt", "category", c)
			continue
		}
		g.emit(*best)
	}
}

// mixedDoubles fills the mixed quota from the two least-used eligible players
// of each gender, choosing the more balanced of the two cross-pairings that
// avoids repeated partnerships.
func (g *generation) mixedDoubles(quota int) {
	c := league.CategoryMixedDoubles
	for i := 0; i < quota; i++ {
		var males, females []league.RosterEntry
		for _, e := range g.eligible(c) {
			if e.Player.Gender == league.Male {
				males = append(males, e)
			} else {
				females = append(females, e)
			}
		}
		if len(males) < 2 || len(females) < 2 {
			return
		}
		m1, m2 := males[0].Player, males[1].Player
		f1, f2 := females[0].Player, females[1].Player

		options := [2][2][2]league.Player{
			{{m1, f1}, {m2, f2}},
			{{m1, f2}, {m2, f1}},
		}
		bestDiff := math.MaxFloat64
		var best *PlannedMatch
		for _, o := range options {
			if g.partners.has(o[0][0].ID, o[0][1].ID) || g.partners.has(o[1][0].ID, o[1][1].ID) {
				continue
			}
			diff := math.Abs((g.strength(o[0][0]) + g.strength(o[0][1])) - (g.strength(o[1][0]) + g.strength(o[1][1])))
			if diff < bestDiff {
				bestDiff = diff
				best = &PlannedMatch{
					Category: c,
					TeamA:    []string{o[0][0].ID, o[0][1].ID},
					TeamB:    []string{o[1][0].ID, o[1][1].ID},
				}
			}
		}
		if best == nil {
			log.Debug("Both mixed pairings repeat a partnership, skipping attempt")
			continue
		}
		g.emit(*best)
	}
}

// singles pairs players by strength proximity, always searching the
// lowest-match-count cohort before widening, and never repeating an opponent.
func (g *generation) singles(c league.Category) {
	pool := 0
	for _, e := range g.roster {
		if c.Admits(e.Player.Gender) && (e.Prefers == nil || *e.Prefers == c) {
			pool++
		}
	}
	rounds := pool * g.target / 2
	for r := 0; r < rounds; r++ {
		elig := g.eligible(c)
		if len(elig) < 2 {
			return
		}
		pair := g.closestPair(elig)
		if pair == nil {
			// No unplayed pairing left anywhere; stop early.
			return
		}
		g.emit(PlannedMatch{
			Category: c,
			TeamA:    []string{pair[0].ID},
			TeamB:    []string{pair[1].ID},
		})
		g.rivals.record(pair[0].ID, pair[1].ID)
	}
}

// closestPair finds the valid pair with the smallest strength difference,
// restricting the first seat to the lowest-match-count players and widening
// only when that cohort yields no unplayed pairing.
func (g *generation) closestPair(elig []league.RosterEntry) *[2]league.Player {
	minCount := g.counts[elig[0].Player.ID]
	cohort := elig
	for i, e := range elig {
		if g.counts[e.Player.ID] > minCount {
			cohort = elig[:i]
			break
		}
	}

	phases := [][2][]league.RosterEntry{
		{cohort, cohort},
		{cohort, elig},
		{elig, elig},
	}
	for _, ph := range phases {
		bestDiff := math.MaxFloat64
		var best *[2]league.Player
		for _, a := range ph[0] {
			for _, b := range ph[1] {
				if a.Player.ID == b.Player.ID || g.rivals.has(a.Player.ID, b.Player.ID) {
					continue
				}
				diff := math.Abs(g.strength(a.Player) - g.strength(b.Player))
				if diff < bestDiff {
					bestDiff = diff
					best = &[2]league.Player{a.Player, b.Player}
				}
			}
		}
		if best != nil {
			return best
		}
	}
	return nil
}

// emit records the match, its partnerships, and the participants' counts.
func (g *generation) emit(m PlannedMatch) {
	if len(m.TeamA) == 2 {
		g.partners.record(m.TeamA[0], m.TeamA[1])
		g.partners.record(m.TeamB[0], m.TeamB[1])
	}
	for _, id := range m.TeamA {
		g.counts[id]++
	}
	for _, id := range m.TeamB {
		g.counts[id]++
	}
	g.matches = append(g.matches, m)
}

// waitlist applies the configured policy over the final match counts.
func (g *generation) waitlist(policy WaitlistPolicy) []string {
	var out []string
	for _, e := range g.roster {
		n := g.counts[e.Player.ID]
		switch policy {
		case WaitlistStrict:
			if n < g.target {
				out = append(out, e.Player.ID)
			}
		default:
			if n == 0 {
				out = append(out, e.Player.ID)
			}
		}
	}
	return out
}
