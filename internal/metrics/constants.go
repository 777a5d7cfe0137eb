package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "worldline_http_requests_total"
	MetricNameHTTPRequestDuration  = "worldline_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "worldline_http_requests_in_flight"

	MetricNamePollsTotal         = "worldline_tracker_polls_total"
	MetricNamePollErrorsTotal    = "worldline_tracker_poll_errors_total"
	MetricNameStatusChangesTotal = "worldline_tracker_status_changes_total"
	MetricNameActiveItems        = "worldline_tracker_active_items"

	MetricNameTicksTotal    = "worldline_game_ticks_total"
	MetricNameLevelUpsTotal = "worldline_game_level_ups_total"

	MetricNameClaimsTotal    = "worldline_items_claimed_total"
	MetricNamePurchasesTotal = "worldline_characters_purchased_total"
)

// Help texts
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests processed"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Number of HTTP requests currently being served"

	HelpTextPollsTotal         = "Total number of tracker poll attempts"
	HelpTextPollErrorsTotal    = "Total number of failed tracker polls by reason"
	HelpTextStatusChangesTotal = "Total number of detected item status changes by kind"
	HelpTextActiveItems        = "Number of items in the published active list"

	HelpTextTicksTotal    = "Total number of game loop ticks"
	HelpTextLevelUpsTotal = "Total number of level ups"

	HelpTextClaimsTotal    = "Total number of items moved into the claim ledger"
	HelpTextPurchasesTotal = "Total number of character purchases"
)

// Label names
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelReason = "reason"
	LabelKind   = "kind"
)

// Poll error reasons
const (
	ReasonAuth      = "auth"
	ReasonTransport = "transport"
)

// HTTPLatencyBuckets are tuned for a loopback-only API.
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}
