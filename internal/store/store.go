package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/league-engine/internal/league"
	"github.com/mauv0809/league-engine/internal/planner"
	"github.com/mauv0809/league-engine/internal/rating"
)

// store handles all database operations for the league.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ rating.HistoryProvider = (LeagueStore)(nil)

// New creates a new LeagueStore.
func New(db *sql.DB) LeagueStore {
	return &store{db: db}
}

// UpsertPlayers inserts or updates player records. Computed strength is left
// untouched on conflict; it only changes through UpdateStrength.
func (s *store) UpsertPlayers(players []league.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO players (id, name, gender, skill, strength, strength_updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			gender = excluded.gender,
			skill = excluded.skill;
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare player upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range players {
		var updatedAt *int64
		if p.StrengthUpdatedAt != nil {
			ts := p.StrengthUpdatedAt.Unix()
			updatedAt = &ts
		}
		if _, err := stmt.Exec(p.ID, p.Name, string(p.Gender), p.Skill, p.Strength, updatedAt); err != nil {
			return fmt.Errorf("failed to upsert player %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// GetPlayers retrieves the given players. Unknown IDs are silently absent
// from the result.
func (s *store) GetPlayers(playerIDs []string) ([]league.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(playerIDs) == 0 {
		return []league.Player{}, nil
	}

	query := `SELECT id, name, gender, skill, strength, strength_updated_at FROM players WHERE id IN (?` +
		repeat(",?", len(playerIDs)-1) + `)`
	args := make([]any, len(playerIDs))
	for i, id := range playerIDs {
		args[i] = id
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	return scanPlayers(rows)
}

// GetAllPlayers returns every player on file.
func (s *store) GetAllPlayers() ([]league.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, name, gender, skill, strength, strength_updated_at FROM players ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	return scanPlayers(rows)
}

// UpdateStrength writes a freshly computed strength and its timestamp.
func (s *store) UpdateStrength(playerID string, strength float64, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE players SET strength = ?, strength_updated_at = ? WHERE id = ?`,
		strength, updatedAt.Unix(), playerID)
	if err != nil {
		return fmt.Errorf("failed to update strength for %s: %w", playerID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}

	log.Debug("Updated player strength", "playerID", playerID, "strength", strength)
	return nil
}

// UpsertSignup registers a player on an event's roster.
func (s *store) UpsertSignup(eventID string, entry league.RosterEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var prefers *string
	if entry.Prefers != nil {
		p := string(*entry.Prefers)
		prefers = &p
	}
	_, err := s.db.Exec(`
		INSERT INTO signups (event_id, player_id, prefers)
		VALUES (?, ?, ?)
		ON CONFLICT(event_id, player_id) DO UPDATE SET prefers = excluded.prefers;
	`, eventID, entry.Player.ID, prefers)
	if err != nil {
		return fmt.Errorf("failed to upsert signup: %w", err)
	}
	return nil
}

// GetRoster returns the signed-up players for an event, joined with their
// player records.
func (s *store) GetRoster(eventID string) ([]league.RosterEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT p.id, p.name, p.gender, p.skill, p.strength, p.strength_updated_at, s.prefers
		FROM signups s
		JOIN players p ON p.id = s.player_id
		WHERE s.event_id = ?
		ORDER BY p.name
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster: %w", err)
	}
	defer rows.Close()

	var roster []league.RosterEntry
	for rows.Next() {
		var entry league.RosterEntry
		var prefers *string
		p, err := scanPlayer(rows, &prefers)
		if err != nil {
			return nil, fmt.Errorf("failed to scan roster row: %w", err)
		}
		entry.Player = p
		if prefers != nil {
			c := league.Category(*prefers)
			entry.Prefers = &c
		}
		roster = append(roster, entry)
	}
	return roster, rows.Err()
}

// SaveMatches persists a generated plan as draft matches for the event.
func (s *store) SaveMatches(eventID, seasonID string, planned []planner.PlannedMatch) ([]league.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO matches (id, event_id, season_id, category, team_a_json, team_b_json, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare match insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	matches := make([]league.Match, 0, len(planned))
	for _, pm := range planned {
		m := league.Match{
			ID:        uuid.New().String(),
			EventID:   eventID,
			SeasonID:  seasonID,
			Category:  pm.Category,
			TeamA:     pm.TeamA,
			TeamB:     pm.TeamB,
			Status:    league.StatusDraft,
			CreatedAt: now,
		}
		teamA, err := json.Marshal(m.TeamA)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal team A: %w", err)
		}
		teamB, err := json.Marshal(m.TeamB)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal team B: %w", err)
		}
		if _, err := stmt.Exec(m.ID, m.EventID, m.SeasonID, string(m.Category), teamA, teamB, string(m.Status), m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to insert match: %w", err)
		}
		matches = append(matches, m)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	log.Info("Saved planned matches", "eventID", eventID, "count", len(matches))
	return matches, nil
}

// GetMatch retrieves one match.
func (s *store) GetMatch(matchID string) (*league.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, event_id, season_id, category, team_a_json, team_b_json, status, created_at
		FROM matches WHERE id = ?
	`, matchID)

	m, err := scanMatch(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return m, nil
}

// UpdateMatchStatus transitions a match to a new lifecycle state.
func (s *store) UpdateMatchStatus(matchID string, status league.MatchStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE matches SET status = ? WHERE id = ?`, string(status), matchID)
	if err != nil {
		return fmt.Errorf("failed to update match status: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}
	return nil
}

// RecordResult stores the one result of a match and marks the match
// completed. A second result for the same match is a conflict.
func (s *store) RecordResult(result league.MatchResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow(`SELECT COUNT(1) FROM matches WHERE id = ?`, result.MatchID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check match: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("%w: %s", ErrMatchNotFound, result.MatchID)
	}

	err = tx.QueryRow(`SELECT COUNT(1) FROM results WHERE match_id = ?`, result.MatchID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check existing result: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("%w: %s", ErrResultExists, result.MatchID)
	}

	sets, err := json.Marshal(result.Sets)
	if err != nil {
		return fmt.Errorf("failed to marshal sets: %w", err)
	}
	winners, err := json.Marshal(result.WinnerIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal winners: %w", err)
	}
	if result.EnteredAt == 0 {
		result.EnteredAt = time.Now().Unix()
	}

	_, err = tx.Exec(`
		INSERT INTO results (match_id, sets_json, winner, winner_ids_json, entered_at)
		VALUES (?, ?, ?, ?, ?)
	`, result.MatchID, sets, string(result.Winner), winners, result.EnteredAt)
	if err != nil {
		return fmt.Errorf("failed to insert result: %w", err)
	}

	_, err = tx.Exec(`UPDATE matches SET status = ? WHERE id = ?`, string(league.StatusCompleted), result.MatchID)
	if err != nil {
		return fmt.Errorf("failed to complete match: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info("Recorded match result", "matchID", result.MatchID, "winner", result.Winner)
	return nil
}

// GetEventMatches returns all matches of an event.
func (s *store) GetEventMatches(eventID string) ([]league.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, event_id, season_id, category, team_a_json, team_b_json, status, created_at
		FROM matches WHERE event_id = ? ORDER BY created_at, id
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query event matches: %w", err)
	}
	defer rows.Close()

	var matches []league.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, *m)
	}
	return matches, rows.Err()
}

// GetEventResults returns the event's results keyed by match ID.
func (s *store) GetEventResults(eventID string) (map[string]league.MatchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT r.match_id, r.sets_json, r.winner, r.winner_ids_json, r.entered_at
		FROM results r
		JOIN matches m ON m.id = r.match_id
		WHERE m.event_id = ?
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query event results: %w", err)
	}
	defer rows.Close()

	results := make(map[string]league.MatchResult)
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		results[r.MatchID] = *r
	}
	return results, rows.Err()
}

// CompletedMatches returns the player's completed matches with results,
// newest-first, capped at limit. Satisfies rating.HistoryProvider.
func (s *store) CompletedMatches(playerID string, limit int) ([]rating.PlayedMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Team membership lives in JSON blobs, so filter on the quoted JSON
	// token. Matching the bare id would let "p1" claim "p10"'s matches and
	// burn LIMIT slots on them.
	rows, err := s.db.Query(`
		SELECT m.id, m.event_id, m.season_id, m.category, m.team_a_json, m.team_b_json, m.status, m.created_at,
		       r.match_id, r.sets_json, r.winner, r.winner_ids_json, r.entered_at
		FROM matches m
		JOIN results r ON r.match_id = m.id
		WHERE m.status = ? AND (m.team_a_json LIKE '%"' || ? || '"%' OR m.team_b_json LIKE '%"' || ? || '"%')
		ORDER BY r.entered_at DESC
		LIMIT ?
	`, string(league.StatusCompleted), playerID, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed matches: %w", err)
	}
	defer rows.Close()

	var played []rating.PlayedMatch
	for rows.Next() {
		var (
			m                league.Match
			r                league.MatchResult
			category, status string
			teamA, teamB     []byte
			winner           string
			sets, winnerIDs  []byte
		)
		err := rows.Scan(&m.ID, &m.EventID, &m.SeasonID, &category, &teamA, &teamB, &status, &m.CreatedAt,
			&r.MatchID, &sets, &winner, &winnerIDs, &r.EnteredAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan played match: %w", err)
		}
		m.Category = league.Category(category)
		m.Status = league.MatchStatus(status)
		if err := json.Unmarshal(teamA, &m.TeamA); err != nil {
			return nil, fmt.Errorf("failed to unmarshal team A: %w", err)
		}
		if err := json.Unmarshal(teamB, &m.TeamB); err != nil {
			return nil, fmt.Errorf("failed to unmarshal team B: %w", err)
		}
		r.Winner = league.Winner(winner)
		if err := json.Unmarshal(sets, &r.Sets); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sets: %w", err)
		}
		if err := json.Unmarshal(winnerIDs, &r.WinnerIDs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal winners: %w", err)
		}
		if !m.HasParticipant(playerID) {
			continue
		}
		played = append(played, rating.PlayedMatch{Match: m, Result: r})
	}
	return played, rows.Err()
}

// EnsureEvent creates the event row if it does not exist yet.
func (s *store) EnsureEvent(eventID, seasonID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO events (id, season_id, leaderboard_computed)
		VALUES (?, ?, 0)
		ON CONFLICT(id) DO NOTHING;
	`, eventID, seasonID)
	if err != nil {
		return fmt.Errorf("failed to ensure event: %w", err)
	}
	return nil
}

// IsLeaderboardComputed reports whether the event leaderboard is locked.
func (s *store) IsLeaderboardComputed(eventID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var computed int
	err := s.db.QueryRow(`SELECT leaderboard_computed FROM events WHERE id = ?`, eventID).Scan(&computed)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, fmt.Errorf("%w: %s", ErrEventNotFound, eventID)
		}
		return false, fmt.Errorf("failed to check leaderboard flag: %w", err)
	}
	return computed != 0, nil
}

// SaveLeaderboard writes the entries and locks the event in one transaction.
// Writing an already-locked leaderboard is a conflict.
func (s *store) SaveLeaderboard(eventID string, entries []league.RankingEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE events SET leaderboard_computed = 1 WHERE id = ? AND leaderboard_computed = 0`, eventID)
	if err != nil {
		return fmt.Errorf("failed to lock leaderboard: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		var exists int
		if err := tx.QueryRow(`SELECT COUNT(1) FROM events WHERE id = ?`, eventID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check event: %w", err)
		}
		if exists == 0 {
			return fmt.Errorf("%w: %s", ErrEventNotFound, eventID)
		}
		return fmt.Errorf("%w: %s", ErrLeaderboardLocked, eventID)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO leaderboard_entries (event_id, player_id, wins, game_diff, bonus, points, rank, remark)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare leaderboard insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(eventID, e.PlayerID, e.Wins, e.GameDiff, e.Bonus, e.Points, e.Rank, e.Remark); err != nil {
			return fmt.Errorf("failed to insert leaderboard entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info("Saved event leaderboard", "eventID", eventID, "entries", len(entries))
	return nil
}

// ReopenLeaderboard clears the computed flag and drops the stored entries.
// This is the event-lifecycle escape hatch; scoring itself never calls it.
func (s *store) ReopenLeaderboard(eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE events SET leaderboard_computed = 0 WHERE id = ?`, eventID)
	if err != nil {
		return fmt.Errorf("failed to reopen leaderboard: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrEventNotFound, eventID)
	}
	if _, err := tx.Exec(`DELETE FROM leaderboard_entries WHERE event_id = ?`, eventID); err != nil {
		return fmt.Errorf("failed to clear leaderboard entries: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info("Reopened event leaderboard", "eventID", eventID)
	return nil
}

// GetLeaderboard returns the stored entries ordered by rank.
func (s *store) GetLeaderboard(eventID string) ([]league.RankingEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT l.player_id, p.name, l.wins, l.game_diff, l.bonus, l.points, l.rank, l.remark
		FROM leaderboard_entries l
		LEFT JOIN players p ON p.id = l.player_id
		WHERE l.event_id = ?
		ORDER BY l.rank
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []league.RankingEntry
	for rows.Next() {
		var e league.RankingEntry
		var name sql.NullString
		if err := rows.Scan(&e.PlayerID, &name, &e.Wins, &e.GameDiff, &e.Bonus, &e.Points, &e.Rank, &e.Remark); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		e.PlayerName = name.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetSeasonPoints aggregates each player's leaderboard points across all
// locked events of a season.
func (s *store) GetSeasonPoints(seasonID string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT l.player_id, SUM(l.points)
		FROM leaderboard_entries l
		JOIN events e ON e.id = l.event_id
		WHERE e.season_id = ? AND e.leaderboard_computed = 1
		GROUP BY l.player_id
	`, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query season points: %w", err)
	}
	defer rows.Close()

	points := make(map[string]int)
	for rows.Next() {
		var playerID string
		var total int
		if err := rows.Scan(&playerID, &total); err != nil {
			return nil, fmt.Errorf("failed to scan season points row: %w", err)
		}
		points[playerID] = total
	}
	return points, rows.Err()
}

// SaveWaitlist replaces the event's waitlist.
func (s *store) SaveWaitlist(eventID string, playerIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM waitlist WHERE event_id = ?`, eventID); err != nil {
		return fmt.Errorf("failed to clear waitlist: %w", err)
	}
	for i, id := range playerIDs {
		if _, err := tx.Exec(`INSERT INTO waitlist (event_id, player_id, position) VALUES (?, ?, ?)`, eventID, id, i); err != nil {
			return fmt.Errorf("failed to insert waitlist entry: %w", err)
		}
	}

	return tx.Commit()
}

// GetWaitlist returns the event's waitlisted players in order.
func (s *store) GetWaitlist(eventID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT player_id FROM waitlist WHERE event_id = ? ORDER BY position`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query waitlist: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan waitlist row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Clear wipes every table. Test helper.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"waitlist", "leaderboard_entries", "results", "matches", "signups", "events", "players"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
		}
	}
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}

// scanPlayer scans one player row; extra receives trailing columns.
func scanPlayer(scanner interface{ Scan(...any) error }, extra ...any) (league.Player, error) {
	var p league.Player
	var gender string
	var skill, strength sql.NullFloat64
	var updatedAt sql.NullInt64

	dest := []any{&p.ID, &p.Name, &gender, &skill, &strength, &updatedAt}
	dest = append(dest, extra...)
	if err := scanner.Scan(dest...); err != nil {
		return p, err
	}

	p.Gender = league.Gender(gender)
	if skill.Valid {
		p.Skill = &skill.Float64
	}
	if strength.Valid {
		p.Strength = &strength.Float64
	}
	if updatedAt.Valid {
		ts := time.Unix(updatedAt.Int64, 0)
		p.StrengthUpdatedAt = &ts
	}
	return p, nil
}

func scanPlayers(rows *sql.Rows) ([]league.Player, error) {
	var players []league.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func scanMatch(scanner interface{ Scan(...any) error }) (*league.Match, error) {
	var m league.Match
	var category, status string
	var teamA, teamB []byte

	err := scanner.Scan(&m.ID, &m.EventID, &m.SeasonID, &category, &teamA, &teamB, &status, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.Category = league.Category(category)
	m.Status = league.MatchStatus(status)
	if err := json.Unmarshal(teamA, &m.TeamA); err != nil {
		return nil, fmt.Errorf("failed to unmarshal team A: %w", err)
	}
	if err := json.Unmarshal(teamB, &m.TeamB); err != nil {
		return nil, fmt.Errorf("failed to unmarshal team B: %w", err)
	}
	return &m, nil
}

func scanResult(scanner interface{ Scan(...any) error }) (*league.MatchResult, error) {
	var r league.MatchResult
	var winner string
	var sets, winnerIDs []byte

	err := scanner.Scan(&r.MatchID, &sets, &winner, &winnerIDs, &r.EnteredAt)
	if err != nil {
		return nil, err
	}
	r.Winner = league.Winner(winner)
	if err := json.Unmarshal(sets, &r.Sets); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sets: %w", err)
	}
	if err := json.Unmarshal(winnerIDs, &r.WinnerIDs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal winners: %w", err)
	}
	return &r, nil
}
