// Package metrics exposes Prometheus collectors for this module's
// session engine: packet and trail-chunk counters, and a gauge for how
// many slots are currently READY. The engine itself does not import this
// package; cmd/peerd updates the collectors, and PacketsDropped and
// TrailChunks are registered but not incremented anywhere in the module.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry wraps the collectors a running peerd process reports.
type Registry struct {
	Slots   gaugeVec
	Packets counterVec
	Trail   counterVec
}

type gaugeVec struct {
	ReadySlots prometheus.Gauge
}

type counterVec struct {
	PacketsSent     prometheus.Counter
	PacketsReceived prometheus.Counter
	PacketsDropped  prometheus.Counter
	MessagesQueued  prometheus.Counter
	TrailChunks     prometheus.Counter
}

// NewRegistry creates and registers every collector with the default
// Prometheus registerer via promauto at construction time.
func NewRegistry() *Registry {
	return &Registry{
		Slots: gaugeVec{
			ReadySlots: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "peer_slots_ready",
				Help: "Number of slots currently in the READY state",
			}),
		},
		Packets: counterVec{
			PacketsSent: promauto.NewCounter(prometheus.CounterOpts{
				Name: "peer_packets_sent_total",
				Help: "Total number of packets handed to the transport for send",
			}),
			PacketsReceived: promauto.NewCounter(prometheus.CounterOpts{
				Name: "peer_packets_received_total",
				Help: "Total number of packets passed into Input",
			}),
			PacketsDropped: promauto.NewCounter(prometheus.CounterOpts{
				Name: "peer_packets_dropped_total",
				Help: "Total number of received packets dropped for matching no local slot",
			}),
		},
		Trail: counterVec{
			MessagesQueued: promauto.NewCounter(prometheus.CounterOpts{
				Name: "peer_messages_queued_total",
				Help: "Total number of application messages appended to a queue",
			}),
			TrailChunks: promauto.NewCounter(prometheus.CounterOpts{
				Name: "peer_trail_chunks_total",
				Help: "Total number of redundant trail chunks appended to outgoing batches",
			}),
		},
	}
}

// Handler returns an HTTP handler exposing the process's Prometheus
// metrics in the standard text exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.Handler()
}
