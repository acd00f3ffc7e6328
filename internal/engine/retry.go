package engine

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// callWithRetry runs one provider under the per-call timeout with bounded
// retries and exponential backoff. Failures never escape this layer: a
// tolerated business error short-circuits to an empty result, and exhausted
// retries are absorbed the same way, so one misbehaving provider can never
// block or fail the aggregate.
func (e *Engine[R, T]) callWithRetry(ctx context.Context, p Provider[R, T], req R) ([]T, Outcome) {
	log := e.log.With(zap.String("provider", p.Name()))
	start := time.Now()

	oc := Outcome{Provider: p.Name()}
	backoff := e.cfg.InitialBackoff

	var lastErr error
	for attempt := 0; attempt <= e.cfg.MaxRetries; attempt++ {
		oc.Attempts = attempt + 1

		callCtx, cancel := context.WithTimeout(ctx, e.cfg.ProviderTimeout)
		items, err := p.Search(callCtx, req)
		cancel()

		if err == nil {
			oc.Status = OutcomeSuccess
			oc.Items = len(items)
			oc.Elapsed = time.Since(start)
			return items, oc
		}
		lastErr = err

		if isTolerated(err, e.cfg.Tolerated) {
			log.Info("provider reported no inventory, treating as empty",
				zap.Error(err),
			)
			oc.Status = OutcomeEmpty
			oc.Error = err.Error()
			oc.Elapsed = time.Since(start)
			return nil, oc
		}

		// Round abandoned; don't burn retries against a dead context.
		if ctx.Err() != nil {
			break
		}

		if attempt < e.cfg.MaxRetries {
			log.Warn("provider call failed, retrying",
				zap.Int("attempt", attempt+1),
				zap.Duration("backoff", backoff),
				zap.Error(err),
			)
			timer := time.NewTimer(backoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				oc.Status = OutcomeSuppressed
				oc.Error = lastErr.Error()
				oc.Elapsed = time.Since(start)
				return nil, oc
			case <-timer.C:
			}
			backoff *= 2
		}
	}

	log.Warn("provider retries exhausted, contributing nothing this round",
		zap.Int("attempts", oc.Attempts),
		zap.Error(lastErr),
	)
	oc.Status = OutcomeSuppressed
	if lastErr != nil {
		oc.Error = lastErr.Error()
	}
	oc.Elapsed = time.Since(start)
	return nil, oc
}

// isTolerated reports whether the error text contains any tolerated
// business-error substring, case-insensitively. This distinguishes
// "provider correctly reports nothing available" from "provider is broken".
func isTolerated(err error, patterns []string) bool {
	if err == nil || len(patterns) == 0 {
		return false
	}
	msg := strings.ToUpper(err.Error())
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if strings.Contains(msg, strings.ToUpper(p)) {
			return true
		}
	}
	return false
}
