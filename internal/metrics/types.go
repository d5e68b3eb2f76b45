package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	RatingsRecalculated  prometheus.Counter
	MatchesPlanned       prometheus.Counter
	PlanningDuration     prometheus.Histogram
	ScoringDuration      prometheus.Histogram
	LeaderboardsComputed prometheus.Counter
	TieBreaksRequired    prometheus.Counter
	NotifSent            prometheus.Counter
	NotifFailed          prometheus.Counter
	StartupTimeSeconds   prometheus.Gauge
}
