package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Progression Metrics
var (
	XPAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameXPAwarded,
			Help: HelpTextXPAwarded,
		},
		[]string{LabelSource},
	)

	LevelUps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
		[]string{LabelLevel},
	)

	BadgesEarned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBadgesEarned,
			Help: HelpTextBadgesEarned,
		},
		[]string{LabelBadge},
	)

	StreaksExtended = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameStreakExtended,
			Help: HelpTextStreakExtended,
		},
	)

	QuestsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameQuestsDone,
			Help: HelpTextQuestsDone,
		},
		[]string{LabelQuest},
	)

	ProgressionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameProgressErrors,
			Help: HelpTextProgressErrors,
		},
		[]string{LabelReason},
	)
)

// Collaborator Metrics
var (
	AssistantRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAssistantRequests,
			Help: HelpTextAssistantRequests,
		},
		[]string{LabelOperation, LabelOutcome},
	)

	AssistantLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameAssistantLatency,
			Help:    HelpTextAssistantLatency,
			Buckets: AssistantLatencyBuckets,
		},
		[]string{LabelOperation},
	)

	SSEClientsConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSSEClients,
			Help: HelpTextSSEClients,
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCacheLookups,
			Help: HelpTextCacheLookups,
		},
		[]string{LabelCache, LabelResult},
	)
)

// RecordCacheLookup counts a hit or miss for the named cache
func RecordCacheLookup(cache string, hit bool) {
	result := ResultMiss
	if hit {
		result = ResultHit
	}
	CacheLookups.WithLabelValues(cache, result).Inc()
}
