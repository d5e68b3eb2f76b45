package http

import (
	"net/http"

	"github.com/mauv0809/league-engine/internal/config"
	"github.com/mauv0809/league-engine/internal/metrics"
	"github.com/mauv0809/league-engine/internal/notifier"
	"github.com/mauv0809/league-engine/internal/processor"
	"github.com/mauv0809/league-engine/internal/pubsub"
	"github.com/mauv0809/league-engine/internal/store"
)

func NewServer(st store.LeagueStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, counters metrics.CounterStore, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          st,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Counters:       counters,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("/players/upsert", Chain(s.UpsertPlayersHandler(), paramsMiddleware))
	s.Router.Handle("/signup", Chain(s.SignupHandler(), paramsMiddleware))
	s.Router.Handle("/roster", Chain(s.RosterHandler(), paramsMiddleware))
	s.Router.Handle("/matches", Chain(s.EventMatchesHandler(), paramsMiddleware))
	s.Router.Handle("/plan-event", Chain(s.PlanEventHandler(), paramsMiddleware))
	s.Router.Handle("/record-result", Chain(s.RecordResultHandler(), paramsMiddleware))
	s.Router.Handle("/close-event", Chain(s.CloseEventHandler(), paramsMiddleware))
	s.Router.Handle("/reopen-leaderboard", Chain(s.ReopenLeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("/recalc", Chain(s.RecalcHandler(), paramsMiddleware))
	s.Router.Handle("/leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("/season-points", Chain(s.SeasonPointsHandler(), paramsMiddleware))
	s.Router.Handle("/waitlist", Chain(s.WaitlistHandler(), paramsMiddleware))
	s.Router.Handle("/counters", Chain(s.CountersHandler(), paramsMiddleware))
	s.Router.Handle("/pubsub/rating-updated", Chain(s.RatingUpdatedHandler(), paramsMiddleware))
	s.Router.Handle("/slack/command/leaderboard", Chain(s.LeaderboardCommandHandler(), paramsMiddleware, slackVerifyMiddleware(s.Cfg.Slack.SigningSecret)))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
