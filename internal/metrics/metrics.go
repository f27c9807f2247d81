// Package metrics counts remote calls made by ec2ctl. The counters live
// in a private registry and can be written in the node-exporter textfile
// format when the process exits.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/imamik/ec2ctl/internal/cmdlet"
	platform "github.com/imamik/ec2ctl/internal/platform/ec2"
)

// Call results used as the result label.
const (
	ResultSuccess      = "success"
	ResultDryRun       = "dry_run"
	ResultThrottled    = "throttled"
	ResultUnauthorized = "unauthorized"
	ResultNotFound     = "not_found"
	ResultEndpoint     = "endpoint"
	ResultError        = "error"
)

// Recorder implements cmdlet.Observer on top of prometheus collectors.
type Recorder struct {
	registry *prometheus.Registry
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	pages    *prometheus.CounterVec
	items    *prometheus.CounterVec
}

var _ cmdlet.Observer = (*Recorder)(nil)

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ec2ctl",
				Name:      "remote_calls_total",
				Help:      "Total number of EC2 API calls by operation and result",
			},
			[]string{"operation", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "ec2ctl",
				Name:      "remote_call_duration_seconds",
				Help:      "Duration of EC2 API calls in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
			},
			[]string{"operation"},
		),
		pages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ec2ctl",
				Name:      "pages_total",
				Help:      "Total number of result pages fetched by list operations",
			},
			[]string{"operation"},
		),
		items: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ec2ctl",
				Name:      "page_items_total",
				Help:      "Total number of items returned in result pages",
			},
			[]string{"operation"},
		),
	}
	r.registry.MustRegister(r.calls, r.duration, r.pages, r.items)
	return r
}

// ObserveCall records one remote call.
func (r *Recorder) ObserveCall(operation string, elapsed time.Duration, err error) {
	r.calls.WithLabelValues(operation, result(err)).Inc()
	r.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObservePage records one fetched page.
func (r *Recorder) ObservePage(operation string, items int) {
	r.pages.WithLabelValues(operation).Inc()
	r.items.WithLabelValues(operation).Add(float64(items))
}

func result(err error) string {
	switch {
	case err == nil:
		return ResultSuccess
	case platform.IsDryRun(err):
		return ResultDryRun
	case platform.IsThrottled(err):
		return ResultThrottled
	case platform.IsUnauthorized(err):
		return ResultUnauthorized
	case platform.IsNotFound(err):
		return ResultNotFound
	}
	if _, ok := platform.ResolveFailure(err); ok {
		return ResultEndpoint
	}
	return ResultError
}
