package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder on a Prometheus registry.
type PrometheusRecorder struct {
	buildsStarted   prometheus.Counter
	buildsSucceeded prometheus.Counter
	parseFailures   prometheus.Counter
	validationFails prometheus.Counter
	violations      prometheus.Counter
	licenseWarnings prometheus.Counter
	buildDuration   prometheus.Histogram
}

// NewPrometheusRecorder registers the technote build metrics on reg.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	r := &PrometheusRecorder{
		buildsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "technote_builds_started_total",
			Help: "Number of metadata builds started.",
		}),
		buildsSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "technote_builds_succeeded_total",
			Help: "Number of metadata builds that completed.",
		}),
		parseFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "technote_parse_failures_total",
			Help: "Number of builds aborted by a settings parse error.",
		}),
		validationFails: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "technote_validation_failures_total",
			Help: "Number of builds aborted by validation errors.",
		}),
		violations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "technote_validation_violations_total",
			Help: "Total field-level violations reported.",
		}),
		licenseWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "technote_license_warnings_total",
			Help: "Number of unknown-license warnings emitted.",
		}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "technote_build_duration_seconds",
			Help:    "Wall time of successful metadata builds.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(
		r.buildsStarted,
		r.buildsSucceeded,
		r.parseFailures,
		r.validationFails,
		r.violations,
		r.licenseWarnings,
		r.buildDuration,
	)
	return r
}

func (r *PrometheusRecorder) BuildStarted() { r.buildsStarted.Inc() }

func (r *PrometheusRecorder) BuildSucceeded(duration time.Duration) {
	r.buildsSucceeded.Inc()
	r.buildDuration.Observe(duration.Seconds())
}

func (r *PrometheusRecorder) ParseFailure() { r.parseFailures.Inc() }

func (r *PrometheusRecorder) ValidationFailure(violations int) {
	r.validationFails.Inc()
	r.violations.Add(float64(violations))
}

func (r *PrometheusRecorder) LicenseWarning() { r.licenseWarnings.Inc() }
