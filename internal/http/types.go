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

type Server struct {
	Store          store.LeagueStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Counters       metrics.CounterStore
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
