package metrics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agbru/checked"
	"github.com/agbru/checked/internal/logging"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestOutcomeFor(t *testing.T) {
	_, overflow := checked.Add[int8](127, 1)
	_, underflow := checked.Sub[uint8](0, 1)
	_, divZero := checked.Div[int32](1, 0)
	_, castErr := checked.Cast[uint8](-1.0)

	tests := []struct {
		name string
		err  error
		want Outcome
	}{
		{"nil", nil, OutcomeOK},
		{"overflow", overflow, OutcomeOverflow},
		{"underflow", underflow, OutcomeUnderflow},
		{"divide by zero", divZero, OutcomeDivideByZero},
		{"cast", castErr, OutcomeCast},
		{"wrapped overflow", fmt.Errorf("evaluate: %w", overflow), OutcomeOverflow},
		{"other", errors.New("boom"), OutcomeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutcomeFor(tt.err); got != tt.want {
				t.Errorf("OutcomeFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrometheus_Observe(t *testing.T) {
	p := NewPrometheus()

	p.Observe("add", "i8", OutcomeOK)
	p.Observe("add", "i8", OutcomeOK)
	p.Observe("add", "i8", OutcomeOverflow)

	if got := testutil.ToFloat64(p.operations.WithLabelValues("add", "i8", "ok")); got != 2 {
		t.Errorf("ok counter = %v, want 2", got)
	}
	if got := testutil.ToFloat64(p.operations.WithLabelValues("add", "i8", "overflow")); got != 1 {
		t.Errorf("overflow counter = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(p.operations); got != 2 {
		t.Errorf("series = %d, want 2", got)
	}
}

func TestPrometheus_ServeHTTP(t *testing.T) {
	p := NewPrometheus()
	p.Observe("div", "u32", OutcomeDivideByZero)

	t.Run("GET returns metrics", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
		rec := httptest.NewRecorder()
		p.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		body := rec.Body.String()
		if !strings.Contains(body, `checkedcalc_operations_total{op="div",outcome="divide_by_zero",type="u32"} 1`) {
			t.Errorf("operation counter missing from output:\n%s", body)
		}
		if !strings.Contains(body, "go_") {
			t.Error("metrics output should contain Go runtime metrics")
		}
	})

	t.Run("POST returns method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/metrics", http.NoBody)
		rec := httptest.NewRecorder()
		p.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
		}
	})
}

func TestServer_Start(t *testing.T) {
	p := NewPrometheus()
	p.Observe("cast", "f64", OutcomeCast)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewServer("127.0.0.1:0", p, logging.Nop())
	addr, err := s.Start(ctx)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	resp, err := http.Get("http://" + addr + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if got := resp.Header.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "checkedcalc_operations_total") {
		t.Error("response should contain the operation counter")
	}
}

func TestServer_StartListenError(t *testing.T) {
	s := NewServer("127.0.0.1:-1", NewPrometheus(), logging.Nop())
	addr, err := s.Start(context.Background())
	if err == nil {
		t.Fatalf("Start() = %q, want an error", addr)
	}
	if !strings.HasPrefix(err.Error(), "metrics server: ") {
		t.Errorf("Start() error = %q, want the metrics server prefix", err)
	}
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		t.Errorf("Start() error should wrap the listen error, got %T", errors.Unwrap(err))
	}
}

func TestNop(t *testing.T) {
	var r Recorder = Nop{}
	r.Observe("add", "i8", OutcomeOK)
}
