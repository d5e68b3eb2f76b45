package processor

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/league-engine/internal/league"
	"github.com/mauv0809/league-engine/internal/metrics"
	"github.com/mauv0809/league-engine/internal/planner"
	"github.com/mauv0809/league-engine/internal/pubsub"
	"github.com/mauv0809/league-engine/internal/rating"
	"github.com/mauv0809/league-engine/internal/scoring"
	"github.com/mauv0809/league-engine/internal/store"
)

// ErrWinnerMismatch means a recorded result names winners that are not exactly
// one of the match's teams.
var ErrWinnerMismatch = errors.New("winner ids do not match a team")

// New creates a new Processor.
func New(st store.LeagueStore, model *rating.Model, pl *planner.Planner, scorer *scoring.Engine, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient, seasonID string) *Processor {
	return &Processor{
		store:    st,
		model:    model,
		planner:  pl,
		scorer:   scorer,
		notifier: notifier,
		metrics:  metrics,
		pubsub:   pubsub,
		seasonID: seasonID,
	}
}

// PlanEvent generates matches for an event from its current roster and
// persists them. In dry-run mode nothing is written and the notification is
// logged instead of sent.
func (p *Processor) PlanEvent(eventID string, allowed []league.Category, dryRun bool) (*planner.Plan, []league.Match, error) {
	log.Info("Planning event", "eventID", eventID, "categories", allowed, "dryRun", dryRun)

	if err := p.store.EnsureEvent(eventID, p.seasonID); err != nil {
		return nil, nil, fmt.Errorf("failed to ensure event: %w", err)
	}
	roster, err := p.store.GetRoster(eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load roster: %w", err)
	}

	startTime := time.Now()
	plan, err := p.planner.Generate(roster, allowed)
	if err != nil {
		return nil, nil, err
	}
	p.metrics.ObservePlanningDuration(time.Since(startTime).Seconds())

	var matches []league.Match
	if dryRun {
		matches = draftMatches(eventID, p.seasonID, plan.Matches)
		log.Info("[Dry Run] Would save planned matches", "eventID", eventID, "count", len(matches), "waitlist", len(plan.Waitlist))
	} else {
		matches, err = p.store.SaveMatches(eventID, p.seasonID, plan.Matches)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to save matches: %w", err)
		}
		if err := p.store.SaveWaitlist(eventID, plan.Waitlist); err != nil {
			return nil, nil, fmt.Errorf("failed to save waitlist: %w", err)
		}
	}
	p.metrics.IncMatchesPlanned(len(matches))

	names := make(map[string]string, len(roster))
	for _, entry := range roster {
		names[entry.Player.ID] = entry.Player.Name
	}
	if err := p.notifier.SendMatchesPlanned(eventID, matches, names, plan.Waitlist, dryRun); err != nil {
		log.Error("Failed to send planned-matches notification", "error", err, "eventID", eventID)
	}

	if !dryRun {
		matchIDs := make([]string, 0, len(matches))
		for _, m := range matches {
			matchIDs = append(matchIDs, m.ID)
		}
		p.pubsub.SendMessage(pubsub.EventMatchesPlanned, pubsub.MatchesPlannedPayload{
			EventID:      eventID,
			MatchIDs:     matchIDs,
			WaitlistSize: len(plan.Waitlist),
		})
	}

	log.Info("Event planned", "eventID", eventID, "matches", len(matches), "waitlist", len(plan.Waitlist))
	return plan, matches, nil
}

// RecordResult validates and stores a match result, then recalculates the
// strength of every participant.
func (p *Processor) RecordResult(result league.MatchResult, dryRun bool) error {
	match, err := p.store.GetMatch(result.MatchID)
	if err != nil {
		return err
	}
	if err := validateWinners(match, result.WinnerIDs); err != nil {
		return err
	}
	if result.EnteredAt == 0 {
		result.EnteredAt = time.Now().Unix()
	}

	if dryRun {
		log.Info("[Dry Run] Would record result", "matchID", result.MatchID, "winners", result.WinnerIDs)
		return nil
	}
	if err := p.store.RecordResult(result); err != nil {
		return err
	}
	log.Info("Recorded result", "matchID", result.MatchID, "winners", result.WinnerIDs, "sets", len(result.Sets))

	for _, playerID := range match.Participants() {
		if err := p.recalculate(playerID); err != nil {
			log.Error("Failed to recalculate strength", "error", err, "playerID", playerID)
		}
	}
	return nil
}

// Recalculate recomputes strengths for the given players, or for every known
// player when no ids are given.
func (p *Processor) Recalculate(playerIDs []string, dryRun bool) error {
	if len(playerIDs) == 0 {
		players, err := p.store.GetAllPlayers()
		if err != nil {
			return fmt.Errorf("failed to list players: %w", err)
		}
		for _, pl := range players {
			playerIDs = append(playerIDs, pl.ID)
		}
	}
	if dryRun {
		log.Info("[Dry Run] Would recalculate strengths", "players", len(playerIDs))
		return nil
	}
	for _, playerID := range playerIDs {
		if err := p.recalculate(playerID); err != nil {
			log.Error("Failed to recalculate strength", "error", err, "playerID", playerID)
		}
	}
	return nil
}

func (p *Processor) recalculate(playerID string) error {
	strength, updated, err := p.model.Recalculate(playerID)
	if err != nil {
		return err
	}
	if !updated {
		log.Debug("No completed matches, strength unchanged", "playerID", playerID)
		return nil
	}
	if err := p.store.UpdateStrength(playerID, strength, time.Now()); err != nil {
		return err
	}
	p.metrics.IncRatingsRecalculated()
	p.pubsub.SendMessage(pubsub.EventRatingUpdated, pubsub.RatingUpdatedPayload{
		PlayerID: playerID,
		Strength: strength,
	})
	log.Info("Updated player strength", "playerID", playerID, "strength", strength)
	return nil
}

// CloseEvent scores an event's completed matches into a leaderboard and locks
// it. A first-place tie halts the close until a champion is supplied; the
// returned outcome carries the tied players.
func (p *Processor) CloseEvent(eventID, championID string, dryRun bool) (*scoring.Outcome, error) {
	computed, err := p.store.IsLeaderboardComputed(eventID)
	if err != nil {
		return nil, err
	}
	matches, err := p.store.GetEventMatches(eventID)
	if err != nil {
		return nil, err
	}
	results, err := p.store.GetEventResults(eventID)
	if err != nil {
		return nil, err
	}
	names, err := p.participantNames(matches)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	outcome, err := p.scorer.Compute(scoring.Input{
		Matches:         matches,
		Results:         results,
		PlayerNames:     names,
		ChampionID:      championID,
		AlreadyComputed: computed,
	})
	if err != nil {
		return nil, err
	}
	p.metrics.ObserveScoringDuration(time.Since(startTime).Seconds())

	if outcome.RequiresTieBreak {
		p.metrics.IncTieBreaksRequired()
		if err := p.notifier.SendTieBreakPrompt(eventID, outcome.TiedPlayers, dryRun); err != nil {
			log.Error("Failed to send tie-break prompt", "error", err, "eventID", eventID)
		}
		if !dryRun {
			tiedIDs := make([]string, 0, len(outcome.TiedPlayers))
			for _, t := range outcome.TiedPlayers {
				tiedIDs = append(tiedIDs, t.PlayerID)
			}
			p.pubsub.SendMessage(pubsub.EventTieBreakRequired, pubsub.TieBreakRequiredPayload{
				EventID:   eventID,
				PlayerIDs: tiedIDs,
			})
		}
		log.Info("Event close halted, first place is tied", "eventID", eventID, "tied", len(outcome.TiedPlayers))
		return outcome, nil
	}

	if dryRun {
		log.Info("[Dry Run] Would save leaderboard", "eventID", eventID, "entries", len(outcome.Entries))
	} else {
		if err := p.store.SaveLeaderboard(eventID, outcome.Entries); err != nil {
			return nil, err
		}
	}
	p.metrics.IncLeaderboardsComputed()

	if err := p.notifier.SendLeaderboard(eventID, outcome.Entries, dryRun); err != nil {
		log.Error("Failed to send leaderboard notification", "error", err, "eventID", eventID)
	}
	if !dryRun {
		p.pubsub.SendMessage(pubsub.EventLeaderboardComputed, pubsub.LeaderboardComputedPayload{
			EventID:    eventID,
			ChampionID: championID,
		})
	}

	log.Info("Event closed", "eventID", eventID, "entries", len(outcome.Entries))
	return outcome, nil
}

// ReopenLeaderboard unlocks a computed leaderboard so the event can be scored
// again after a correction.
func (p *Processor) ReopenLeaderboard(eventID string, dryRun bool) error {
	if dryRun {
		log.Info("[Dry Run] Would reopen leaderboard", "eventID", eventID)
		return nil
	}
	if err := p.store.ReopenLeaderboard(eventID); err != nil {
		return err
	}
	log.Info("Reopened leaderboard", "eventID", eventID)
	return nil
}

// participantNames resolves display names for everyone appearing in the
// given matches.
func (p *Processor) participantNames(matches []league.Match) (map[string]string, error) {
	seen := make(map[string]bool)
	var ids []string
	for i := range matches {
		for _, id := range matches[i].Participants() {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	players, err := p.store.GetPlayers(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}
	for _, pl := range players {
		names[pl.ID] = pl.Name
	}
	return names, nil
}

// validateWinners checks that the winner ids are exactly one full team.
func validateWinners(match *league.Match, winnerIDs []string) error {
	if len(winnerIDs) == 0 {
		return fmt.Errorf("%w: %s", ErrWinnerMismatch, match.ID)
	}
	onA := 0
	for _, id := range winnerIDs {
		if !match.HasParticipant(id) {
			return fmt.Errorf("%w: %s is not a participant of %s", ErrWinnerMismatch, id, match.ID)
		}
		if match.OnTeamA(id) {
			onA++
		}
	}
	if onA == len(winnerIDs) && len(winnerIDs) == len(match.TeamA) {
		return nil
	}
	if onA == 0 && len(winnerIDs) == len(match.TeamB) {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrWinnerMismatch, match.ID)
}

// draftMatches builds the in-memory matches a dry-run plan would have saved.
func draftMatches(eventID, seasonID string, planned []planner.PlannedMatch) []league.Match {
	matches := make([]league.Match, 0, len(planned))
	for _, pm := range planned {
		matches = append(matches, league.Match{
			EventID:   eventID,
			SeasonID:  seasonID,
			Category:  pm.Category,
			TeamA:     pm.TeamA,
			TeamB:     pm.TeamB,
			Status:    league.StatusDraft,
			CreatedAt: time.Now().Unix(),
		})
	}
	return matches
}
