// Package metrics registers the Prometheus counters exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GroupsCreated counts groups created through the ledger service.
	GroupsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "splitease_groups_created_total",
			Help: "Total number of groups created",
		},
	)

	// ExpensesRecorded counts expenses recorded through the ledger service.
	ExpensesRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "splitease_expenses_recorded_total",
			Help: "Total number of expenses recorded",
		},
	)

	// NotificationsSent counts settlement notifications by outcome.
	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "splitease_notifications_sent_total",
			Help: "Total number of settlement notifications by outcome",
		},
		[]string{"outcome"}, // link, no_handle
	)

	// RelayMessages counts SMS relay requests by result.
	RelayMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "splitease_relay_messages_total",
			Help: "Total number of relayed SMS messages by status",
		},
		[]string{"status"}, // sent, rejected, failed
	)
)
