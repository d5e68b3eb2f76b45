package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		RatingsRecalculated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_ratings_recalculated_total",
			Help: "The total number of player strength recalculations performed.",
		}),
		MatchesPlanned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_matches_planned_total",
			Help: "The total number of matches produced by the planner.",
		}),
		PlanningDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "league_planning_duration_seconds",
			Help:    "The duration of individual match-planning runs.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		ScoringDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "league_scoring_duration_seconds",
			Help:    "The duration of individual event-scoring runs.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		LeaderboardsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_leaderboards_computed_total",
			Help: "The total number of event leaderboards computed and locked.",
		}),
		TieBreaksRequired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_tie_breaks_required_total",
			Help: "The total number of scoring runs halted for an external tie-break.",
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_notifications_sent_total",
			Help: "The total number of notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_notifications_failed_total",
			Help: "The total number of notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "league_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.RatingsRecalculated,
		s.MatchesPlanned,
		s.PlanningDuration,
		s.ScoringDuration,
		s.LeaderboardsComputed,
		s.TieBreaksRequired,
		s.NotifSent,
		s.NotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncRatingsRecalculated() {
	s.RatingsRecalculated.Inc()
}

func (s *Service) IncMatchesPlanned(count int) {
	s.MatchesPlanned.Add(float64(count))
}

func (s *Service) ObservePlanningDuration(duration float64) {
	s.PlanningDuration.Observe(duration)
}

func (s *Service) ObserveScoringDuration(duration float64) {
	s.ScoringDuration.Observe(duration)
}

func (s *Service) IncLeaderboardsComputed() {
	s.LeaderboardsComputed.Inc()
}

func (s *Service) IncTieBreaksRequired() {
	s.TieBreaksRequired.Inc()
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
