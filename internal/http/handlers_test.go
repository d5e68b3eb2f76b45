package http

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/mauv0809/league-engine/internal/config"
	"github.com/mauv0809/league-engine/internal/database"
	"github.com/mauv0809/league-engine/internal/league"
	"github.com/mauv0809/league-engine/internal/metrics"
	"github.com/mauv0809/league-engine/internal/notifier"
	"github.com/mauv0809/league-engine/internal/planner"
	"github.com/mauv0809/league-engine/internal/processor"
	"github.com/mauv0809/league-engine/internal/pubsub"
	"github.com/mauv0809/league-engine/internal/rating"
	"github.com/mauv0809/league-engine/internal/scoring"
	"github.com/mauv0809/league-engine/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSlackSigningSecret = "test-signing-secret"

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T, notif notifier.Notifier, slackSigningSecret string) (*Server, store.LeagueStore, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	leagueStore := store.New(db)
	cfg := config.Config{SeasonID: "season-1", Slack: config.SlackConfig{SigningSecret: slackSigningSecret}}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	counters := metrics.New(db)
	ps := pubsub.NewMock("TEST")
	ratingCfg := rating.DefaultConfig()
	model := rating.New(ratingCfg, leagueStore)
	pl := planner.New(planner.DefaultConfig(), ratingCfg)
	proc := processor.New(leagueStore, model, pl, scoring.New(), notif, metricsSvc, ps, cfg.SeasonID)
	server := NewServer(leagueStore, metricsSvc, metricsHandler, counters, cfg, notif, proc, ps)

	teardown := func() {
		if dbTeardown != nil {
			dbTeardown()
		}
		db.Close()
	}
	return server, leagueStore, teardown
}

func skill(v float64) *float64 { return &v }

// seedRoster registers four male players and signs them up for the event.
func seedRoster(t *testing.T, st store.LeagueStore, eventID string) {
	t.Helper()
	players := []league.Player{
		{ID: "p1", Name: "Anna", Gender: league.Male, Skill: skill(3.0)},
		{ID: "p2", Name: "Ben", Gender: league.Male, Skill: skill(3.5)},
		{ID: "p3", Name: "Cleo", Gender: league.Male, Skill: skill(2.5)},
		{ID: "p4", Name: "Dan", Gender: league.Male, Skill: skill(4.0)},
	}
	require.NoError(t, st.UpsertPlayers(players))
	require.NoError(t, st.EnsureEvent(eventID, "season-1"))
	for _, p := range players {
		require.NoError(t, st.UpsertSignup(eventID, league.RosterEntry{Player: p}))
	}
}

func TestHealthCheckHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock(), "")
	defer teardown()

	req, err := http.NewRequest("GET", "/health", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestPlanEventHandler(t *testing.T) {
	t.Run("plans and persists singles matches", func(t *testing.T) {
		server, st, teardown := setupTestServer(t, notifier.NewMock(), "")
		defer teardown()
		seedRoster(t, st, "evt-1")

		req, _ := http.NewRequest("POST", "/plan-event?eventID=evt-1&categories=MENS_SINGLES", nil)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		var resp struct {
			Matches  []league.Match `json:"matches"`
			Waitlist []string       `json:"waitlist"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		// Four players at target three play every pairing once.
		assert.Len(t, resp.Matches, 6)
		assert.Empty(t, resp.Waitlist)

		saved, err := st.GetEventMatches("evt-1")
		require.NoError(t, err)
		assert.Len(t, saved, 6)
	})

	t.Run("dry run does not persist", func(t *testing.T) {
		server, st, teardown := setupTestServer(t, notifier.NewMock(), "")
		defer teardown()
		seedRoster(t, st, "evt-1")

		req, _ := http.NewRequest("POST", "/plan-event?eventID=evt-1&categories=MENS_SINGLES&dry_run=true", nil)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		saved, err := st.GetEventMatches("evt-1")
		require.NoError(t, err)
		assert.Empty(t, saved)
	})

	t.Run("missing eventID is a bad request", func(t *testing.T) {
		server, _, teardown := setupTestServer(t, notifier.NewMock(), "")
		defer teardown()

		req, _ := http.NewRequest("POST", "/plan-event?categories=MENS_SINGLES", nil)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("an empty roster is a bad request", func(t *testing.T) {
		server, st, teardown := setupTestServer(t, notifier.NewMock(), "")
		defer teardown()
		require.NoError(t, st.EnsureEvent("evt-empty", "season-1"))

		req, _ := http.NewRequest("POST", "/plan-event?eventID=evt-empty&categories=MENS_SINGLES", nil)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestRecordResultHandler(t *testing.T) {
	server, st, teardown := setupTestServer(t, notifier.NewMock(), "")
	defer teardown()
	seedRoster(t, st, "evt-1")

	matches, err := st.SaveMatches("evt-1", "season-1", []planner.PlannedMatch{
		{Category: league.CategoryMensSingles, TeamA: []string{"p1"}, TeamB: []string{"p2"}},
	})
	require.NoError(t, err)
	matchID := matches[0].ID

	post := func(result league.MatchResult) *httptest.ResponseRecorder {
		body, err := json.Marshal(result)
		require.NoError(t, err)
		req, _ := http.NewRequest("POST", "/record-result", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		return rr
	}

	t.Run("records a valid result", func(t *testing.T) {
		rr := post(league.MatchResult{MatchID: matchID, WinnerIDs: []string{"p1"}})
		assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		match, err := st.GetMatch(matchID)
		require.NoError(t, err)
		assert.Equal(t, league.StatusCompleted, match.Status)
	})

	t.Run("a second result is a conflict", func(t *testing.T) {
		rr := post(league.MatchResult{MatchID: matchID, WinnerIDs: []string{"p2"}})
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("an unknown match is not found", func(t *testing.T) {
		rr := post(league.MatchResult{MatchID: "nope", WinnerIDs: []string{"p1"}})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("winners spanning both teams are rejected", func(t *testing.T) {
		extra, err := st.SaveMatches("evt-1", "season-1", []planner.PlannedMatch{
			{Category: league.CategoryMensSingles, TeamA: []string{"p3"}, TeamB: []string{"p4"}},
		})
		require.NoError(t, err)
		rr := post(league.MatchResult{MatchID: extra[0].ID, WinnerIDs: []string{"p3", "p4"}})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCloseEventHandler(t *testing.T) {
	server, st, teardown := setupTestServer(t, notifier.NewMock(), "")
	defer teardown()
	seedRoster(t, st, "evt-1")

	matches, err := st.SaveMatches("evt-1", "season-1", []planner.PlannedMatch{
		{Category: league.CategoryMensSingles, TeamA: []string{"p1"}, TeamB: []string{"p2"}},
		{Category: league.CategoryMensSingles, TeamA: []string{"p1"}, TeamB: []string{"p2"}},
	})
	require.NoError(t, err)
	for _, m := range matches {
		require.NoError(t, st.RecordResult(league.MatchResult{MatchID: m.ID, WinnerIDs: []string{"p1"}}))
	}

	t.Run("closes the event and locks the leaderboard", func(t *testing.T) {
		req, _ := http.NewRequest("POST", "/close-event?eventID=evt-1", nil)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		var outcome scoring.Outcome
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &outcome))
		require.Len(t, outcome.Entries, 2)
		assert.Equal(t, "p1", outcome.Entries[0].PlayerID)
		assert.Equal(t, 6, outcome.Entries[0].Points)

		entries, err := st.GetLeaderboard("evt-1")
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("closing a locked event is a conflict", func(t *testing.T) {
		req, _ := http.NewRequest("POST", "/close-event?eventID=evt-1", nil)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("reopening allows scoring again", func(t *testing.T) {
		req, _ := http.NewRequest("POST", "/reopen-leaderboard?eventID=evt-1", nil)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		req, _ = http.NewRequest("POST", "/close-event?eventID=evt-1", nil)
		rr = httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	})
}

// createSlackCommandRequest creates an http.Request suitable for testing Slack
// slash commands, including the signature and timestamp headers.
func createSlackCommandRequest(t *testing.T, targetURL string, form url.Values, signingSecret string) *http.Request {
	t.Helper()

	body := form.Encode()
	req, err := http.NewRequest("POST", targetURL, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	timestamp := time.Now().Unix()
	req.Header.Set("X-Slack-Request-Timestamp", strconv.FormatInt(timestamp, 10))

	baseString := fmt.Sprintf("v0:%d:%s", timestamp, body)
	h := hmac.New(sha256.New, []byte(signingSecret))
	h.Write([]byte(baseString))
	req.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(h.Sum(nil)))

	return req
}

func TestLeaderboardCommandHandler(t *testing.T) {
	notif := notifier.NewMock()
	notif.FormatLeaderboardResponseFunc = func(entries []league.RankingEntry) (any, error) {
		return slackapi.NewBlockMessage(), nil
	}
	server, st, teardown := setupTestServer(t, notif, testSlackSigningSecret)
	defer teardown()

	require.NoError(t, st.EnsureEvent("evt-1", "season-1"))

	form := url.Values{}
	form.Set("text", "evt-1")

	t.Run("a signed request gets the leaderboard", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/leaderboard", form, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	})

	t.Run("a badly signed request is rejected", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/leaderboard", form, "wrong-secret")
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("an unsigned request is rejected", func(t *testing.T) {
		req, err := http.NewRequest("POST", "/slack/command/leaderboard", strings.NewReader(form.Encode()))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestRatingUpdatedHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock(), "")
	defer teardown()

	envelope := map[string]any{
		"subscription": "projects/test/subscriptions/rating-updated",
		"message": map[string]any{
			"data": "gA==", // empty msgpack map
		},
	}
	body, err := json.Marshal(envelope)
	require.NoError(t, err)

	req, _ := http.NewRequest("POST", "/pubsub/rating-updated", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	counters, err := server.Counters.GetAll()
	require.NoError(t, err)
	assert.Equal(t, 1, counters["rating_updated"])
}
