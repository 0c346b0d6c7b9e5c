// Package metrics provides Prometheus instrumentation for slip39 tool
// operations. Each run records into a private registry that can be written
// out for the node-exporter textfile collector.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/shamirbackup/go-slip39"
)

const (
	// Namespace is the Prometheus namespace for all slip39 metrics
	Namespace = "slip39"

	// Label names
	LabelOperation = "operation"
	LabelStatus    = "status"
	LabelErrorType = "error_type"

	// Status values
	StatusSuccess = "success"
	StatusError   = "error"

	// Operation names
	OpGenerate = "generate"
	OpCombine  = "combine"
	OpInfo     = "info"
)

// Collector owns the metrics of one tool invocation.
type Collector struct {
	registry *prometheus.Registry

	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	ErrorsTotal       *prometheus.CounterVec
	SharesGenerated   prometheus.Counter
}

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		OperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "operations_total",
				Help:      "Total number of slip39 operations by type and status",
			},
			[]string{LabelOperation, LabelStatus},
		),
		// PBKDF2 dominates, so buckets span the iteration exponents in use.
		OperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of slip39 operations in seconds",
				Buckets:   []float64{.001, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{LabelOperation},
		),
		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "errors_total",
				Help:      "Total number of errors by operation and error type",
			},
			[]string{LabelOperation, LabelErrorType},
		),
		SharesGenerated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "shares_generated_total",
				Help:      "Total number of mnemonic shares generated",
			},
		),
	}
	c.registry.MustRegister(c.OperationsTotal, c.OperationDuration, c.ErrorsTotal, c.SharesGenerated)
	return c
}

// Registry exposes the collector's registry, e.g. for promhttp.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordOperation records the outcome and duration of an operation. A
// non-nil err is also counted under its error type.
func (c *Collector) RecordOperation(operation string, started time.Time, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
		c.ErrorsTotal.WithLabelValues(operation, ErrorType(err)).Inc()
	}
	c.OperationsTotal.WithLabelValues(operation, status).Inc()
	c.OperationDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// RecordShares counts generated mnemonics.
func (c *Collector) RecordShares(n int) {
	c.SharesGenerated.Add(float64(n))
}

// WriteTextfile writes the registry in Prometheus text format for the
// node-exporter textfile collector. The file is replaced atomically.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

var errorTypes = []struct {
	err  error
	name string
}{
	{slip39.ErrInvalidChecksum, "checksum"},
	{slip39.ErrInvalidDigest, "digest"},
	{slip39.ErrInvalidWord, "word"},
	{slip39.ErrInvalidPadding, "padding"},
	{slip39.ErrMnemonicTooShort, "length"},
	{slip39.ErrInvalidMnemonicLength, "length"},
	{slip39.ErrInsufficientShares, "insufficient_shares"},
	{slip39.ErrInsufficientGroups, "insufficient_groups"},
	{slip39.ErrNoMnemonics, "insufficient_shares"},
	{slip39.ErrDuplicateMemberIndex, "duplicate_share"},
	{slip39.ErrMismatchedIdentifier, "mismatched_parameters"},
	{slip39.ErrMismatchedGroupThreshold, "mismatched_parameters"},
	{slip39.ErrMismatchedGroupCount, "mismatched_parameters"},
	{slip39.ErrMismatchedMemberThreshold, "mismatched_parameters"},
	{slip39.ErrMismatchedShareLength, "mismatched_parameters"},
	{slip39.ErrGroupThresholdExceedsCount, "mismatched_parameters"},
	{slip39.ErrPassphraseInvalid, "passphrase"},
	{slip39.ErrInvalidConfiguration, "configuration"},
	{slip39.ErrInvalidMnemonic, "mnemonic"},
}

// ErrorType maps an error to the error_type label value.
func ErrorType(err error) string {
	for _, t := range errorTypes {
		if errors.Is(err, t.err) {
			return t.name
		}
	}
	return "other"
}
