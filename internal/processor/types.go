package processor

import (
	"github.com/mauv0809/league-engine/internal/metrics"
	"github.com/mauv0809/league-engine/internal/planner"
	"github.com/mauv0809/league-engine/internal/pubsub"
	"github.com/mauv0809/league-engine/internal/rating"
	"github.com/mauv0809/league-engine/internal/scoring"
	"github.com/mauv0809/league-engine/internal/store"
)

// Processor drives the event lifecycle: planning matches, recording results
// with rating updates, and closing events into leaderboards.
type Processor struct {
	store    store.LeagueStore
	model    *rating.Model
	planner  *planner.Planner
	scorer   *scoring.Engine
	notifier Notifier
	metrics  metrics.Metrics
	pubsub   pubsub.PubSubClient
	seasonID string
}
