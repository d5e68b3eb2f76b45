package rating

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/league-engine/internal/league"
)

// Model computes and refreshes player strength ratings.
type Model struct {
	cfg     Config
	history HistoryProvider
	now     func() time.Time
}

// New creates a rating model over the given history provider.
func New(cfg Config, history HistoryProvider) *Model {
	return &Model{
		cfg:     cfg,
		history: history,
		now:     time.Now,
	}
}

// NewWithClock creates a model with a fixed clock. Useful for tests.
func NewWithClock(cfg Config, history HistoryProvider, now func() time.Time) *Model {
	m := New(cfg, history)
	m.now = now
	return m
}

// SkillToStrength maps a self-declared skill level onto the strength scale.
// A nil skill is treated as the default declared level.
func SkillToStrength(cfg Config, skill *float64) float64 {
	s := cfg.DefaultSkill
	if skill != nil {
		s = *skill
	}
	return 1.0 + (s-1.0)*cfg.SkillSlope
}

// CurrentStrength returns the player's computed strength, falling back to the
// skill-derived value when none has been computed yet.
func CurrentStrength(cfg Config, p league.Player) float64 {
	if p.Strength != nil {
		return *p.Strength
	}
	return SkillToStrength(cfg, p.Skill)
}

// Recalculate derives a fresh strength for the player from their recent
// completed matches. It returns updated=false when the player has no
// qualifying history; that is a defined no-op, not an error.
func (m *Model) Recalculate(playerID string) (strength float64, updated bool, err error) {
	played, err := m.history.CompletedMatches(playerID, m.cfg.HistoryCap)
	if err != nil {
		return 0, false, fmt.Errorf("failed to load match history for %s: %w", playerID, err)
	}
	if len(played) == 0 {
		log.Debug("No qualifying matches, skipping rating update", "playerID", playerID)
		return 0, false, nil
	}

	players, err := m.playersByID(playerID, played)
	if err != nil {
		return 0, false, err
	}

	self, ok := players[playerID]
	if !ok {
		return 0, false, fmt.Errorf("player %s not found", playerID)
	}

	var weightSum, ratingSum float64
	total := len(played)
	for i, pm := range played {
		matchRating := m.matchRating(playerID, pm, players)

		days := float64(m.now().Unix()-pm.Result.EnteredAt) / 86400
		if days < 0 {
			days = 0
		}
		decay := math.Exp2(-days / m.cfg.HalfLifeDays)
		position := float64(total-i) / float64(total)
		w := decay * position

		weightSum += w
		ratingSum += w * matchRating
	}
	if weightSum == 0 {
		return 0, false, nil
	}

	raw := ratingSum / weightSum

	// Provisional blending: anchor new players to their declared skill until
	// enough matches have been played.
	if total < m.cfg.ProvisionalMatches {
		share := float64(total) / float64(m.cfg.ProvisionalMatches)
		raw = raw*share + SkillToStrength(m.cfg, self.Skill)*(1-share)
	}

	raw = math.Min(math.Max(raw, m.cfg.MinStrength), m.cfg.MaxStrength)
	raw = math.Round(raw*100) / 100

	log.Debug("Recalculated strength", "playerID", playerID, "strength", raw, "matches", total)
	return raw, true, nil
}

// matchRating scores a single played match from the player's perspective:
// the average opposing strength adjusted by how lopsided the result was.
func (m *Model) matchRating(playerID string, pm PlayedMatch, players map[string]league.Player) float64 {
	onA := pm.Match.OnTeamA(playerID)

	opponents := pm.Match.TeamB
	if !onA {
		opponents = pm.Match.TeamA
	}
	oppAvg := m.cfg.UnknownOpponent
	if len(opponents) > 0 {
		var sum float64
		for _, id := range opponents {
			if p, ok := players[id]; ok {
				sum += CurrentStrength(m.cfg, p)
			} else {
				sum += m.cfg.UnknownOpponent
			}
		}
		oppAvg = sum / float64(len(opponents))
	}

	if len(pm.Result.Sets) > 0 {
		var mine, total int
		for _, set := range pm.Result.Sets {
			total += set.GamesA + set.GamesB
			if onA {
				mine += set.GamesA
			} else {
				mine += set.GamesB
			}
		}
		if total > 0 {
			gamePct := float64(mine) / float64(total)
			return oppAvg + (gamePct-0.5)*m.cfg.GameSwing
		}
	}

	won := (onA && pm.Result.Winner == league.WinnerTeamA) ||
		(!onA && pm.Result.Winner == league.WinnerTeamB)
	if won {
		return oppAvg + m.cfg.ResultNudge
	}
	return oppAvg - m.cfg.ResultNudge
}

// playersByID fetches the player and every opponent appearing in the history.
func (m *Model) playersByID(playerID string, played []PlayedMatch) (map[string]league.Player, error) {
	seen := map[string]bool{playerID: true}
	ids := []string{playerID}
	for _, pm := range played {
		for _, id := range pm.Match.Participants() {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	players, err := m.history.GetPlayers(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load players for rating: %w", err)
	}
	byID := make(map[string]league.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	return byID, nil
}
