package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Social handshake and record metrics. Defined in a standalone package to avoid
// import cycles between services and HTTP packages.

var (
	HandshakesStarted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "social_handshakes_started_total",
		Help: "Handshakes OAuth2 iniciados, por implementer",
	}, []string{"implementer"})

	HandshakesCompleted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "social_handshakes_completed_total",
		Help: "Handshakes OAuth2 terminados, por implementer y resultado",
	}, []string{"implementer", "outcome"})

	RecordMutations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "social_record_mutations_total",
		Help: "Mutaciones sobre social account records, por operación",
	}, []string{"op"})

	ProviderExchangeLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "social_provider_exchange_latency_ms",
		Help:    "Latencia del code exchange contra el provider en milisegundos",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"implementer"})
)

// RegisterSocial registers the social metrics on the given registry (or default if nil).
func RegisterSocial(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{
		HandshakesStarted,
		HandshakesCompleted,
		RecordMutations,
		ProviderExchangeLatency,
	} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
