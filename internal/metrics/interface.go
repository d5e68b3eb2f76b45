package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncRatingsRecalculated()
	IncMatchesPlanned(count int)
	ObservePlanningDuration(duration float64)
	ObserveScoringDuration(duration float64)
	IncLeaderboardsComputed()
	IncTieBreaksRequired()
	IncNotifSent()
	IncNotifFailed()
	SetStartupTime(duration float64)
}

// CounterStore persists coarse operation counters across restarts,
// independently of the Prometheus registry.
type CounterStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
