package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type flakyProvider struct {
	name     string
	failures int32 // fail this many calls before succeeding
	err      error
	items    []string
	calls    atomic.Int32
}

func (p *flakyProvider) Name() string { return p.name }

func (p *flakyProvider) Search(_ context.Context, _ keyedReq) ([]string, error) {
	n := p.calls.Add(1)
	if n <= atomic.LoadInt32(&p.failures) {
		return nil, p.err
	}
	return p.items, nil
}

func retryEngine(cfg Config) *Engine[keyedReq, string] {
	return New[keyedReq, string](cfg, stringDomain{}, nil, nil)
}

func retryConfig() Config {
	return Config{
		Domain:          "test",
		MaxRetries:      2,
		ProviderTimeout: 200 * time.Millisecond,
		RoundTimeout:    1 * time.Second,
		InitialBackoff:  1 * time.Millisecond,
		Tolerated:       []string{"NO INVENTORY"},
	}
}

func TestCallWithRetry_FirstAttemptSuccess(t *testing.T) {
	e := retryEngine(retryConfig())
	p := &flakyProvider{name: "fast", items: []string{"a", "b"}}

	items, oc := e.callWithRetry(context.Background(), p, keyedReq{})
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if oc.Status != OutcomeSuccess {
		t.Errorf("expected success outcome, got %s", oc.Status)
	}
	if oc.Attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", oc.Attempts)
	}
	if got := p.calls.Load(); got != 1 {
		t.Errorf("expected 1 call, got %d", got)
	}
}

func TestCallWithRetry_TransientFailureRecovers(t *testing.T) {
	e := retryEngine(retryConfig())
	p := &flakyProvider{
		name:     "flaky",
		failures: 2,
		err:      errors.New("connection reset"),
		items:    []string{"a"},
	}

	items, oc := e.callWithRetry(context.Background(), p, keyedReq{})
	if len(items) != 1 {
		t.Fatalf("expected recovery after retries, got %d items", len(items))
	}
	if oc.Status != OutcomeSuccess {
		t.Errorf("expected success outcome, got %s", oc.Status)
	}
	if oc.Attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", oc.Attempts)
	}
}

func TestCallWithRetry_ExhaustedRetriesSuppressed(t *testing.T) {
	e := retryEngine(retryConfig())
	p := &flakyProvider{
		name:     "broken",
		failures: 100,
		err:      errors.New("internal server error"),
	}

	items, oc := e.callWithRetry(context.Background(), p, keyedReq{})
	if items != nil {
		t.Fatalf("expected nil items, got %v", items)
	}
	if oc.Status != OutcomeSuppressed {
		t.Errorf("expected suppressed outcome, got %s", oc.Status)
	}
	// Initial call plus MaxRetries retries.
	if got := p.calls.Load(); got != 3 {
		t.Errorf("expected 3 calls, got %d", got)
	}
	if oc.Error == "" {
		t.Error("expected outcome to carry the last error text")
	}
}

func TestCallWithRetry_ToleratedErrorIsEmptyNotRetried(t *testing.T) {
	e := retryEngine(retryConfig())
	p := &flakyProvider{
		name:     "empty",
		failures: 100,
		err:      errors.New("422: no inventory for requested dates"),
	}

	items, oc := e.callWithRetry(context.Background(), p, keyedReq{})
	if items != nil {
		t.Fatalf("expected nil items for tolerated error, got %v", items)
	}
	if oc.Status != OutcomeEmpty {
		t.Errorf("expected empty outcome, got %s", oc.Status)
	}
	if got := p.calls.Load(); got != 1 {
		t.Errorf("tolerated error must not be retried, got %d calls", got)
	}
}

func TestCallWithRetry_CanceledContextStopsRetrying(t *testing.T) {
	cfg := retryConfig()
	cfg.MaxRetries = 5
	e := retryEngine(cfg)
	p := &flakyProvider{
		name:     "doomed",
		failures: 100,
		err:      errors.New("boom"),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, oc := e.callWithRetry(ctx, p, keyedReq{})
	if oc.Status != OutcomeSuppressed {
		t.Errorf("expected suppressed outcome, got %s", oc.Status)
	}
	if got := p.calls.Load(); got > 1 {
		t.Errorf("expected no retries against a dead context, got %d calls", got)
	}
}

func TestIsTolerated(t *testing.T) {
	patterns := []string{"NO ROOMS AVAILABLE", "INVALID PROPERTY"}

	cases := []struct {
		err  string
		want bool
	}{
		{"amadeus: 400: No Rooms Available at this date", true},
		{"invalid property code XYZ", true},
		{"connection refused", false},
		{"", false},
	}
	for _, tc := range cases {
		var err error
		if tc.err != "" {
			err = errors.New(tc.err)
		}
		if got := isTolerated(err, patterns); got != tc.want {
			t.Errorf("isTolerated(%q) = %v, want %v", tc.err, got, tc.want)
		}
	}

	if isTolerated(errors.New("anything"), nil) {
		t.Error("no patterns should tolerate nothing")
	}
}
