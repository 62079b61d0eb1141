package fetcher

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments the Coordinator's cache behavior. All methods are
// nil-safe so an uninstrumented Coordinator carries no conditionals at
// call sites.
type Metrics struct {
	cacheHits     prometheus.Counter
	sharedFlights prometheus.Counter
	fetches       *prometheus.CounterVec
}

// NewMetrics builds the Coordinator collectors and registers them with
// reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "authstate_cache_hits_total",
			Help: "Snapshot requests served from the per-context cache without network access.",
		}),
		sharedFlights: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "authstate_shared_flights_total",
			Help: "Snapshot requests that joined an already in-flight fetch for the same context.",
		}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "authstate_fetches_total",
			Help: "Network fetches of the authorization payload by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(m.cacheHits, m.sharedFlights, m.fetches)

	return m
}

func (m *Metrics) cacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) sharedFlight() {
	if m == nil {
		return
	}
	m.sharedFlights.Inc()
}

func (m *Metrics) fetch(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.fetches.WithLabelValues(result).Inc()
}
