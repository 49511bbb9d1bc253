// Package metrics holds the Prometheus collectors for the booking service.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "guesthouse"

type Metrics struct {
	bookingsSubmitted *prometheus.CounterVec
	moderation        *prometheus.CounterVec
	emailsSent        *prometheus.CounterVec
	chatReplies       *prometheus.CounterVec
	weatherLookups    *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	liveClients       *prometheus.GaugeVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		bookingsSubmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bookings_submitted_total",
				Help:      "Booking requests written to the store",
			},
			[]string{"source"},
		),
		moderation: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "moderation_actions_total",
				Help:      "Admin moderation actions by outcome",
			},
			[]string{"action", "outcome"},
		),
		emailsSent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "emails_sent_total",
				Help:      "Notification emails by template and outcome",
			},
			[]string{"template", "outcome"},
		),
		chatReplies: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "chatbot_replies_total",
				Help:      "Chatbot replies by source",
			},
			[]string{"source"},
		),
		weatherLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "weather_lookups_total",
				Help:      "Weather lookups by outcome",
			},
			[]string{"outcome"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		liveClients: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "live_clients",
				Help:      "Connected live-stream clients by topic",
			},
			[]string{"topic"},
		),
	}

	reg.MustRegister(
		m.bookingsSubmitted,
		m.moderation,
		m.emailsSent,
		m.chatReplies,
		m.weatherLookups,
		m.httpDuration,
		m.liveClients,
	)
	return m
}

func (m *Metrics) BookingSubmitted(source string) {
	if m == nil {
		return
	}
	m.bookingsSubmitted.WithLabelValues(source).Inc()
}

func (m *Metrics) Moderation(action string, err error) {
	if m == nil {
		return
	}
	m.moderation.WithLabelValues(action, outcome(err)).Inc()
}

func (m *Metrics) EmailSent(template string, err error) {
	if m == nil {
		return
	}
	m.emailsSent.WithLabelValues(template, outcome(err)).Inc()
}

func (m *Metrics) ChatReply(source string) {
	if m == nil {
		return
	}
	m.chatReplies.WithLabelValues(source).Inc()
}

func (m *Metrics) WeatherLookup(err error) {
	if m == nil {
		return
	}
	m.weatherLookups.WithLabelValues(outcome(err)).Inc()
}

func (m *Metrics) ObserveHTTP(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, route, status).Observe(seconds)
}

func (m *Metrics) LiveClient(topic string, delta float64) {
	if m == nil {
		return
	}
	m.liveClients.WithLabelValues(topic).Add(delta)
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
