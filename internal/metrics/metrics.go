// Package metrics holds the Prometheus collectors for the notification path.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	EmailsEnqueued     prometheus.Counter
	EmailsRejected     prometheus.Counter
	EmailsSent         prometheus.Counter
	EmailsFailed       prometheus.Counter
	EmailQueueDepth    prometheus.Gauge
	EmailSendDuration  prometheus.Histogram
	RealtimeConns      prometheus.Gauge
	RealtimePublished  prometheus.Counter
	RealtimeDropped    prometheus.Counter
	FoundItemsReported prometheus.Counter
}

// New creates the metrics and registers them with reg. Tests pass a fresh
// prometheus.NewRegistry() so collectors never collide.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		EmailsEnqueued: f.NewCounter(prometheus.CounterOpts{
			Name: "lostfound_emails_enqueued_total",
			Help: "Total number of emails accepted into the delivery queue",
		}),
		EmailsRejected: f.NewCounter(prometheus.CounterOpts{
			Name: "lostfound_emails_rejected_total",
			Help: "Total number of emails rejected because the queue was full or closed",
		}),
		EmailsSent: f.NewCounter(prometheus.CounterOpts{
			Name: "lostfound_emails_sent_total",
			Help: "Total number of emails delivered to the transport",
		}),
		EmailsFailed: f.NewCounter(prometheus.CounterOpts{
			Name: "lostfound_emails_failed_total",
			Help: "Total number of emails whose delivery attempt failed",
		}),
		EmailQueueDepth: f.NewGauge(prometheus.GaugeOpts{
			Name: "lostfound_email_queue_depth",
			Help: "Current number of emails waiting for delivery",
		}),
		EmailSendDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "lostfound_email_send_duration_seconds",
			Help:    "Time spent in a single transport send",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		RealtimeConns: f.NewGauge(prometheus.GaugeOpts{
			Name: "lostfound_realtime_connections",
			Help: "Current number of open real-time connections",
		}),
		RealtimePublished: f.NewCounter(prometheus.CounterOpts{
			Name: "lostfound_realtime_events_published_total",
			Help: "Total number of events handed to live connections",
		}),
		RealtimeDropped: f.NewCounter(prometheus.CounterOpts{
			Name: "lostfound_realtime_events_dropped_total",
			Help: "Total number of events dropped because a connection could not keep up",
		}),
		FoundItemsReported: f.NewCounter(prometheus.CounterOpts{
			Name: "lostfound_found_items_reported_total",
			Help: "Total number of found-item reports persisted",
		}),
	}
}

// ObserveSend records the outcome of one transport send.
func (m *Metrics) ObserveSend(d time.Duration, err error) {
	m.EmailSendDuration.Observe(d.Seconds())
	if err != nil {
		m.EmailsFailed.Inc()
		return
	}
	m.EmailsSent.Inc()
}
