//go:generate mockgen -source=metrics.go -destination=mocks/mock_recorder.go -package=mocks

// Package metrics counts evaluations by operation, operand type and outcome
// and exposes the counters in the Prometheus text format.
package metrics

import (
	"errors"
	"net/http"

	"github.com/agbru/checked"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels the result of one evaluation.
type Outcome string

// Outcome values. The arithmetic ones mirror the text form of checked.Kind.
const (
	OutcomeOK           Outcome = "ok"
	OutcomeOverflow     Outcome = "overflow"
	OutcomeUnderflow    Outcome = "underflow"
	OutcomeDivideByZero Outcome = "divide_by_zero"
	OutcomeCast         Outcome = "cast"
	OutcomeError        Outcome = "error"
)

// OutcomeFor classifies err for the outcome label.
func OutcomeFor(err error) Outcome {
	if err == nil {
		return OutcomeOK
	}
	if kind, ok := checked.KindOf(err); ok {
		text, _ := kind.MarshalText()
		return Outcome(text)
	}
	if errors.Is(err, checked.ErrCast) {
		return OutcomeCast
	}
	return OutcomeError
}

// Recorder receives one observation per evaluation.
type Recorder interface {
	// Observe counts one evaluation of op on operands of type typ.
	Observe(op, typ string, outcome Outcome)
}

// Prometheus is a Recorder backed by a dedicated Prometheus registry.
type Prometheus struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	handler    http.Handler
}

// NewPrometheus creates a registry holding the operation counter and the Go
// runtime collectors.
func NewPrometheus() *Prometheus {
	registry := prometheus.NewRegistry()
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkedcalc_operations_total",
		Help: "Checked operations evaluated, by operation, operand type and outcome.",
	}, []string{"op", "type", "outcome"})

	registry.MustRegister(
		operations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Prometheus{
		registry:   registry,
		operations: operations,
		handler:    promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
	}
}

// Observe implements Recorder.
func (p *Prometheus) Observe(op, typ string, outcome Outcome) {
	p.operations.WithLabelValues(op, typ, string(outcome)).Inc()
}

// Registry returns the underlying registry.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// ServeHTTP writes the metrics in the Prometheus exposition format. Only GET
// and HEAD are allowed.
func (p *Prometheus) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	p.handler.ServeHTTP(w, r)
}

// Nop is a Recorder that drops every observation.
type Nop struct{}

// Observe implements Recorder.
func (Nop) Observe(string, string, Outcome) {}
