// Package metrics defines and registers all custom Prometheus metrics for
// the HabitFlow API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "habitflow"

// UsersRegisteredTotal counts successful account registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "failed"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// HabitsCreatedTotal counts newly created habits.
var HabitsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "habits_created_total",
		Help:      "Total number of habits created.",
	},
)

// CompletionTogglesTotal counts completion toggles.
// Label:
//   - action: "completed" (entry added) or "uncompleted" (entry removed)
var CompletionTogglesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "completion_toggles_total",
		Help:      "Total number of habit completion toggles, by action.",
	},
	[]string{"action"},
)

// FriendRequestsTotal counts friend-request outcomes.
// Label:
//   - outcome: "created", "revived", or "conflict"
var FriendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "friend_requests_total",
		Help:      "Total number of friend requests, by outcome.",
	},
	[]string{"outcome"},
)

// FriendResponsesTotal counts responses to pending requests.
// Label:
//   - status: "accepted" or "declined"
var FriendResponsesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "friend_responses_total",
		Help:      "Total number of friend request responses, by status.",
	},
	[]string{"status"},
)

// AnalyticsCacheTotal counts analytics cache lookups.
// Label:
//   - result: "hit" or "miss"
var AnalyticsCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analytics_cache_total",
		Help:      "Total number of analytics cache lookups, by result.",
	},
	[]string{"result"},
)

// AvatarUploadsTotal counts avatar upload attempts.
// Label:
//   - result: "ok" or "error"
var AvatarUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "avatar_uploads_total",
		Help:      "Total number of avatar uploads, by result.",
	},
	[]string{"result"},
)
