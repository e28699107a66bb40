package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Progression metric names
const (
	MetricNameXPAwarded      = "xp_awarded_total"
	MetricNameLevelUps       = "level_ups_total"
	MetricNameBadgesEarned   = "badges_earned_total"
	MetricNameStreakExtended = "streaks_extended_total"
	MetricNameQuestsDone     = "quests_completed_total"
	MetricNameProgressErrors = "progression_errors_total"
)

// Collaborator metric names
const (
	MetricNameAssistantRequests = "assistant_requests_total"
	MetricNameAssistantLatency  = "assistant_request_duration_seconds"
	MetricNameSSEClients        = "sse_clients_connected"
	MetricNameCacheLookups      = "cache_lookups_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Progression metric help text
const (
	HelpTextXPAwarded      = "Total XP awarded, by source"
	HelpTextLevelUps       = "Total level-ups, by level reached"
	HelpTextBadgesEarned   = "Total badges granted, by badge"
	HelpTextStreakExtended = "Total streak extensions"
	HelpTextQuestsDone     = "Total quests completed, by quest"
	HelpTextProgressErrors = "Total failed progression events, by reason"
)

// Collaborator metric help text
const (
	HelpTextAssistantRequests = "Total AI assistant requests, by operation and outcome"
	HelpTextAssistantLatency  = "AI assistant generation latency in seconds"
	HelpTextSSEClients        = "Current number of connected notification streams"
	HelpTextCacheLookups      = "Cache lookups, by cache and result"
)

// Label names
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelSource    = "source"
	LabelLevel     = "level"
	LabelBadge     = "badge"
	LabelQuest     = "quest"
	LabelReason    = "reason"
	LabelOperation = "operation"
	LabelOutcome   = "outcome"
	LabelCache     = "cache"
	LabelResult    = "result"
)

// Label values
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	ResultHit      = "hit"
	ResultMiss     = "miss"
	PathUnmatched  = "unmatched"
)

// HTTPLatencyBuckets ranges from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// AssistantLatencyBuckets ranges from 100ms to 60s
var AssistantLatencyBuckets = []float64{.1, .25, .5, 1, 2, 5, 10, 20, 30, 60}

// Log messages
const (
	LogMsgPayloadDecodeFailed = "Failed to decode event payload for metrics"
)
