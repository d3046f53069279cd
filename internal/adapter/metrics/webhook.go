package metrics

import "github.com/prometheus/client_golang/prometheus"

// WebhookMetrics counts what the Twitter webhook adapter sees and does.
type WebhookMetrics struct {
	ChallengesTotal          prometheus.Counter
	EventsReceivedTotal      prometheus.Counter
	EventsFilteredTotal      prometheus.Counter
	ExtraEventsDroppedTotal  prometheus.Counter
	TranslationFailuresTotal prometheus.Counter
	MessagesSentTotal        prometheus.Counter
	SendFailuresTotal        prometheus.Counter
}

// NewWebhookMetrics creates and registers webhook adapter metrics.
func NewWebhookMetrics(reg prometheus.Registerer) *WebhookMetrics {
	m := &WebhookMetrics{
		ChallengesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "challenges_total",
			Help:      "Total CRC challenge requests answered.",
		}),
		EventsReceivedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "events_received_total",
			Help:      "Total direct message events received.",
		}),
		EventsFilteredTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "events_filtered_total",
			Help:      "Events dropped because the bot sent them itself.",
		}),
		ExtraEventsDroppedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "extra_events_dropped_total",
			Help:      "Events beyond the first in a single delivery, which are not processed.",
		}),
		TranslationFailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "translation_failures_total",
			Help:      "Inbound events whose translation reported an error.",
		}),
		MessagesSentTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "send",
			Name:      "messages_total",
			Help:      "Direct messages successfully sent.",
		}),
		SendFailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "send",
			Name:      "failures_total",
			Help:      "Direct message sends that failed.",
		}),
	}

	reg.MustRegister(
		m.ChallengesTotal,
		m.EventsReceivedTotal,
		m.EventsFilteredTotal,
		m.ExtraEventsDroppedTotal,
		m.TranslationFailuresTotal,
		m.MessagesSentTotal,
		m.SendFailuresTotal,
	)
	return m
}
