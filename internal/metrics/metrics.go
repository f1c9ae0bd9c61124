// Package metrics records resolution outcomes with Prometheus.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
)

// Recorder holds the resolution metrics. A nil *Recorder records nothing.
type Recorder struct {
	resolutions   *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	fieldsServed  prometheus.Counter
}

// New registers the resolution metrics on reg. Metrics already registered on
// reg by an earlier Recorder are reused.
func New(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smconfig_resolutions_total",
				Help: "Total number of secret resolutions by outcome",
			},
			[]string{"outcome"},
		),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "smconfig_fetch_duration_seconds",
			Help:    "Duration of secret store fetches in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 5},
		}),
		fieldsServed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smconfig_fields_served_total",
			Help: "Total number of configuration fields returned to the host",
		}),
	}

	var err error
	if r.resolutions, err = register(reg, r.resolutions); err != nil {
		return nil, err
	}
	if r.fetchDuration, err = register(reg, r.fetchDuration); err != nil {
		return nil, err
	}
	if r.fieldsServed, err = register(reg, r.fieldsServed); err != nil {
		return nil, err
	}
	return r, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// ObserveFetch records how long a store fetch took.
func (r *Recorder) ObserveFetch(d time.Duration) {
	if r == nil {
		return
	}
	r.fetchDuration.Observe(d.Seconds())
}

// Resolved records a resolution outcome. outcome is OutcomeSuccess or an
// error kind name.
func (r *Recorder) Resolved(outcome string, fields int) {
	if r == nil {
		return
	}
	r.resolutions.WithLabelValues(outcome).Inc()
	if fields > 0 {
		r.fieldsServed.Add(float64(fields))
	}
}
