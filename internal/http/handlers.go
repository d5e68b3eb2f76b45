package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/league-engine/internal/league"
	"github.com/mauv0809/league-engine/internal/planner"
	"github.com/mauv0809/league-engine/internal/processor"
	"github.com/mauv0809/league-engine/internal/pubsub"
	"github.com/mauv0809/league-engine/internal/scoring"
	"github.com/mauv0809/league-engine/internal/store"
	"github.com/slack-go/slack"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear entire store")
		s.Store.Clear()
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Store.GetAllPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}
		writeJSON(w, players)
	}
}

func (s *Server) UpsertPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var players []league.Player
		if err := json.NewDecoder(r.Body).Decode(&players); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would upsert players", "count", len(players))
			w.WriteHeader(http.StatusOK)
			return
		}
		if err := s.Store.UpsertPlayers(players); err != nil {
			http.Error(w, "Failed to upsert players", http.StatusInternalServerError)
			log.Error("Failed to upsert players", "error", err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Upserted %d players", len(players))
	}
}

func (s *Server) SignupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		eventID := r.URL.Query().Get("eventID")
		if eventID == "" {
			http.Error(w, "eventID is required", http.StatusBadRequest)
			return
		}
		var entry league.RosterEntry
		if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if entry.Player.ID == "" {
			http.Error(w, "player id is required", http.StatusBadRequest)
			return
		}
		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would sign up player", "eventID", eventID, "playerID", entry.Player.ID)
			w.WriteHeader(http.StatusOK)
			return
		}
		if err := s.Store.EnsureEvent(eventID, s.Cfg.SeasonID); err != nil {
			http.Error(w, "Failed to ensure event", http.StatusInternalServerError)
			log.Error("Failed to ensure event", "error", err, "eventID", eventID)
			return
		}
		if err := s.Store.UpsertSignup(eventID, entry); err != nil {
			http.Error(w, "Failed to sign up player", http.StatusInternalServerError)
			log.Error("Failed to sign up player", "error", err, "eventID", eventID, "playerID", entry.Player.ID)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func (s *Server) RosterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := r.URL.Query().Get("eventID")
		if eventID == "" {
			http.Error(w, "eventID is required", http.StatusBadRequest)
			return
		}
		roster, err := s.Store.GetRoster(eventID)
		if err != nil {
			http.Error(w, "Failed to get roster", http.StatusInternalServerError)
			log.Error("Failed to get roster from store", "error", err, "eventID", eventID)
			return
		}
		writeJSON(w, roster)
	}
}

func (s *Server) EventMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := r.URL.Query().Get("eventID")
		if eventID == "" {
			http.Error(w, "eventID is required", http.StatusBadRequest)
			return
		}
		matches, err := s.Store.GetEventMatches(eventID)
		if err != nil {
			http.Error(w, "Failed to get matches", http.StatusInternalServerError)
			log.Error("Failed to get matches from store", "error", err, "eventID", eventID)
			return
		}
		writeJSON(w, matches)
	}
}

// PlanEventHandler generates and persists matches for an event's roster.
// Categories are passed as a comma-separated list, e.g.
// categories=MENS_DOUBLES,MIXED_DOUBLES.
func (s *Server) PlanEventHandler() http.HandlerFunc {
	type response struct {
		Matches  []league.Match `json:"matches"`
		Waitlist []string       `json:"waitlist"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := r.URL.Query().Get("eventID")
		if eventID == "" {
			http.Error(w, "eventID is required", http.StatusBadRequest)
			return
		}
		var categories []league.Category
		for _, c := range strings.Split(r.URL.Query().Get("categories"), ",") {
			if c = strings.TrimSpace(c); c != "" {
				categories = append(categories, league.Category(strings.ToUpper(c)))
			}
		}

		plan, matches, err := s.Processor.PlanEvent(eventID, categories, isDryRunFromContext(r))
		if err != nil {
			switch {
			case errors.Is(err, planner.ErrEmptyRoster),
				errors.Is(err, planner.ErrNoCategories),
				errors.Is(err, planner.ErrUnknownGender):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "Failed to plan event", http.StatusInternalServerError)
				log.Error("Failed to plan event", "error", err, "eventID", eventID)
			}
			return
		}
		writeJSON(w, response{Matches: matches, Waitlist: plan.Waitlist})
	}
}

func (s *Server) RecordResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var result league.MatchResult
		if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if result.MatchID == "" {
			http.Error(w, "matchID is required", http.StatusBadRequest)
			return
		}

		err := s.Processor.RecordResult(result, isDryRunFromContext(r))
		if err != nil {
			switch {
			case errors.Is(err, store.ErrMatchNotFound):
				http.Error(w, err.Error(), http.StatusNotFound)
			case errors.Is(err, store.ErrResultExists):
				http.Error(w, err.Error(), http.StatusConflict)
			case errors.Is(err, processor.ErrWinnerMismatch):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "Failed to record result", http.StatusInternalServerError)
				log.Error("Failed to record result", "error", err, "matchID", result.MatchID)
			}
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func (s *Server) CloseEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := r.URL.Query().Get("eventID")
		if eventID == "" {
			http.Error(w, "eventID is required", http.StatusBadRequest)
			return
		}
		championID := r.URL.Query().Get("championID")

		outcome, err := s.Processor.CloseEvent(eventID, championID, isDryRunFromContext(r))
		if err != nil {
			switch {
			case errors.Is(err, scoring.ErrAlreadyComputed):
				http.Error(w, err.Error(), http.StatusConflict)
			case errors.Is(err, scoring.ErrInvalidChampion), errors.Is(err, scoring.ErrResultMissing):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, store.ErrEventNotFound):
				http.Error(w, err.Error(), http.StatusNotFound)
			default:
				http.Error(w, "Failed to close event", http.StatusInternalServerError)
				log.Error("Failed to close event", "error", err, "eventID", eventID)
			}
			return
		}
		if outcome.RequiresTieBreak {
			// The caller must resolve the tie and retry with championID.
			w.WriteHeader(http.StatusConflict)
		}
		writeJSON(w, outcome)
	}
}

func (s *Server) ReopenLeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := r.URL.Query().Get("eventID")
		if eventID == "" {
			http.Error(w, "eventID is required", http.StatusBadRequest)
			return
		}
		err := s.Processor.ReopenLeaderboard(eventID, isDryRunFromContext(r))
		if err != nil {
			if errors.Is(err, store.ErrEventNotFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, "Failed to reopen leaderboard", http.StatusInternalServerError)
			log.Error("Failed to reopen leaderboard", "error", err, "eventID", eventID)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

// RecalcHandler recomputes strengths for the players given in the 'players'
// query parameter, or for everyone when it is empty.
func (s *Server) RecalcHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var playerIDs []string
		for _, id := range strings.Split(r.URL.Query().Get("players"), ",") {
			if id = strings.TrimSpace(id); id != "" {
				playerIDs = append(playerIDs, id)
			}
		}
		if err := s.Processor.Recalculate(playerIDs, isDryRunFromContext(r)); err != nil {
			http.Error(w, "Failed to recalculate strengths", http.StatusInternalServerError)
			log.Error("Failed to recalculate strengths", "error", err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Recalculation completed.")
	}
}

func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := r.URL.Query().Get("eventID")
		if eventID == "" {
			http.Error(w, "eventID is required", http.StatusBadRequest)
			return
		}
		entries, err := s.Store.GetLeaderboard(eventID)
		if err != nil {
			http.Error(w, "Failed to get leaderboard", http.StatusInternalServerError)
			log.Error("Failed to get leaderboard from store", "error", err, "eventID", eventID)
			return
		}
		writeJSON(w, entries)
	}
}

func (s *Server) SeasonPointsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seasonID := r.URL.Query().Get("seasonID")
		if seasonID == "" {
			seasonID = s.Cfg.SeasonID
		}
		points, err := s.Store.GetSeasonPoints(seasonID)
		if err != nil {
			http.Error(w, "Failed to get season points", http.StatusInternalServerError)
			log.Error("Failed to get season points from store", "error", err, "seasonID", seasonID)
			return
		}
		writeJSON(w, points)
	}
}

func (s *Server) WaitlistHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := r.URL.Query().Get("eventID")
		if eventID == "" {
			http.Error(w, "eventID is required", http.StatusBadRequest)
			return
		}
		waitlist, err := s.Store.GetWaitlist(eventID)
		if err != nil {
			http.Error(w, "Failed to get waitlist", http.StatusInternalServerError)
			log.Error("Failed to get waitlist from store", "error", err, "eventID", eventID)
			return
		}
		writeJSON(w, waitlist)
	}
}

// CountersHandler exposes the persistent event counters.
func (s *Server) CountersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := s.Counters.GetAll()
		if err != nil {
			http.Error(w, "Failed to get counters", http.StatusInternalServerError)
			log.Error("Failed to get counters from store", "error", err)
			return
		}
		writeJSON(w, counters)
	}
}

// RatingUpdatedHandler receives rating-updated events from a pubsub push
// subscription and tracks them in the persistent counter store.
func (s *Server) RatingUpdatedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received rating updated message", "body", string(bodyBytes))
		// Define a small struct to decode the incoming JSON's `data` field
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}

		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		// Decode base64 to raw MessagePack bytes
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		payload := pubsub.RatingUpdatedPayload{}
		if err := s.pubsub.ProcessMessage(rawData, &payload); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		s.Counters.Increment("rating_updated")
		log.Info("Tracked rating update", "playerID", payload.PlayerID, "strength", payload.Strength)
		w.Write([]byte("OK"))
	}
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// LeaderboardCommandHandler returns a handler for the /leaderboard Slack
// command. The command text is the event id.
func (s *Server) LeaderboardCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		eventID := strings.TrimSpace(r.FormValue("text"))
		if eventID == "" {
			http.Error(w, "Event id is required.", http.StatusBadRequest)
			return
		}

		entries, err := s.Store.GetLeaderboard(eventID)
		if err != nil {
			http.Error(w, "Failed to get leaderboard", http.StatusInternalServerError)
			log.Error("Failed to get leaderboard from store", "error", err, "eventID", eventID)
			return
		}

		msg, err := s.Notifier.FormatLeaderboardResponse(entries)
		if err != nil {
			http.Error(w, "Failed to format leaderboard", http.StatusInternalServerError)
			log.Error("Failed to format leaderboard", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}

		respondWithSlackMsg(w, slackMsg)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}
