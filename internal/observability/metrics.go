package observability

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records database query latency by operation.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "forumverse_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// NotificationsEmitted counts notifications created, by type.
	NotificationsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forumverse_notifications_emitted_total",
		Help: "Total number of notifications emitted by type",
	}, []string{"type"})

	// NotificationsSuppressed counts self-notifications that were dropped.
	NotificationsSuppressed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forumverse_notifications_suppressed_total",
		Help: "Total number of notifications suppressed (actor notified themselves)",
	}, []string{"type"})

	// VotesCast counts votes by entity and direction.
	VotesCast = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forumverse_votes_cast_total",
		Help: "Total number of votes cast",
	}, []string{"entity", "direction"})

	// ThreadsCreated counts threads created.
	ThreadsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forumverse_threads_created_total",
		Help: "Total number of threads created",
	})

	// CommentsCreated counts comments created, split by top-level vs reply.
	CommentsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forumverse_comments_created_total",
		Help: "Total number of comments created",
	}, []string{"kind"})

	// UsersDeleted counts cascading account deletions by initiator.
	UsersDeleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forumverse_users_deleted_total",
		Help: "Total number of user accounts deleted",
	}, []string{"initiator"})
)

// ObserveQuery records the latency of a database query, labeled by the
// leading SQL verb (select, insert, update, delete, ...).
func ObserveQuery(sql string, elapsed time.Duration) {
	op := "other"
	if fields := strings.Fields(sql); len(fields) > 0 {
		op = strings.ToLower(fields[0])
	}
	DatabaseQueryLatency.WithLabelValues(op).Observe(elapsed.Seconds())
}
