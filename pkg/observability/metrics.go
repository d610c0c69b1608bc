package observability

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/robertdigital/ml4ir/pkg/catalog"
	"github.com/robertdigital/ml4ir/pkg/domain"
	"github.com/robertdigital/ml4ir/pkg/validator"
)

// Reload results.
const (
	ReloadSuccess     = "success"
	ReloadConfigError = "config_error"
	ReloadNotFound    = "not_found"
	ReloadError       = "error"
)

// Metrics holds the gate collectors. A nil *Metrics records nothing.
type Metrics struct {
	validations *prometheus.CounterVec
	violations  *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	reloads     *prometheus.CounterVec
	fields      *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ml4ir_validations_total",
				Help: "Total number of payload validations",
			},
			[]string{"model", "outcome"},
		),
		violations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ml4ir_violations_total",
				Help: "Total number of contract violations found in payloads",
			},
			[]string{"model", "kind"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ml4ir_validation_duration_seconds",
				Help:    "Duration of payload validations",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
			[]string{"model"},
		),
		reloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ml4ir_signature_reloads_total",
				Help: "Total number of signature load attempts",
			},
			[]string{"model", "result"},
		),
		fields: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ml4ir_signature_fields",
				Help: "Number of fields declared by the published signature",
			},
			[]string{"model", "required"},
		),
	}

	for _, c := range []prometheus.Collector{m.validations, m.violations, m.duration, m.reloads, m.fields} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}
	return m, nil
}

// ObserveValidation records one validation outcome.
func (m *Metrics) ObserveValidation(model string, res validator.Result, elapsed time.Duration) {
	if m == nil {
		return
	}

	outcome := "accepted"
	if !res.OK() {
		outcome = "rejected"
	}
	m.validations.WithLabelValues(model, outcome).Inc()
	m.duration.WithLabelValues(model).Observe(elapsed.Seconds())

	for _, v := range res.Violations() {
		m.violations.WithLabelValues(model, string(v.Kind)).Inc()
	}
}

// ObserveReload records a signature load attempt. Its signature matches
// catalog.ReloadHook.
func (m *Metrics) ObserveReload(model string, snap *catalog.Snapshot, err error) {
	if m == nil {
		return
	}

	m.reloads.WithLabelValues(model, reloadResult(err)).Inc()
	if err != nil || snap == nil {
		return
	}

	required := snap.Registry.RequiredCount()
	m.fields.WithLabelValues(model, strconv.FormatBool(true)).Set(float64(required))
	m.fields.WithLabelValues(model, strconv.FormatBool(false)).Set(float64(snap.Registry.Len() - required))
}

func reloadResult(err error) string {
	switch {
	case err == nil:
		return ReloadSuccess
	case errors.Is(err, domain.ErrSignatureNotFound):
		return ReloadNotFound
	case domain.IsConfigError(err):
		return ReloadConfigError
	default:
		return ReloadError
	}
}

// Dump writes every family gathered from g in the Prometheus text format.
func Dump(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
