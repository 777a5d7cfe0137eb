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

// Tracker Metrics
var (
	PollsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePollsTotal,
			Help: HelpTextPollsTotal,
		},
	)

	PollErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePollErrorsTotal,
			Help: HelpTextPollErrorsTotal,
		},
		[]string{LabelReason},
	)

	StatusChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStatusChangesTotal,
			Help: HelpTextStatusChangesTotal,
		},
		[]string{LabelKind},
	)

	ActiveItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameActiveItems,
			Help: HelpTextActiveItems,
		},
	)
)

// Game Metrics
var (
	TicksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTicksTotal,
			Help: HelpTextTicksTotal,
		},
	)

	LevelUpsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLevelUpsTotal,
			Help: HelpTextLevelUpsTotal,
		},
	)

	ClaimsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameClaimsTotal,
			Help: HelpTextClaimsTotal,
		},
	)

	PurchasesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePurchasesTotal,
			Help: HelpTextPurchasesTotal,
		},
	)
)
