package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tripdeck/travelsearch/internal/model"
)

// Engine aggregates one domain's providers. It is safe for concurrent use;
// each Search call owns an ephemeral session that is destroyed on return.
type Engine[R Request, T any] struct {
	cfg       Config
	domain    Domain[T]
	providers []Provider[R, T]
	cache     *resultCache[T]
	recorder  Recorder
	log       *zap.Logger
}

// New creates an engine over the given providers. A nil or empty provider
// set is valid and trivially yields empty results. Recorder may be nil.
func New[R Request, T any](cfg Config, domain Domain[T], providers []Provider[R, T], recorder Recorder) *Engine[R, T] {
	cfg = cfg.withDefaults()
	e := &Engine[R, T]{
		cfg:       cfg,
		domain:    domain,
		providers: providers,
		recorder:  recorder,
		log:       zap.L().With(zap.String("component", "engine"), zap.String("domain", cfg.Domain)),
	}
	if cfg.CacheTTL > 0 {
		e.cache = newResultCache[T](cfg.CacheTTL)
	}
	return e
}

type providerDone[T any] struct {
	items   []T
	outcome Outcome
}

// Search runs one aggregation round and returns the final deduplicated,
// ranked, limit-capped list. It never returns an error: provider failures
// and timeouts degrade to partial or empty results. If onPartial is
// non-nil it is invoked at most twice, once with a tentative snapshot (when
// achievable before completion) and once with the final snapshot (only when
// non-empty).
func (e *Engine[R, T]) Search(ctx context.Context, req R, onPartial PartialFunc[T]) []T {
	start := time.Now()
	limit := clampLimit(req.ResultLimit(), e.cfg.MaxResults)
	pref := req.Pref().Normalize()

	rec := RoundRecord{
		SessionID: uuid.New().String(),
		Domain:    e.cfg.Domain,
		CacheKey:  req.CacheKey(),
	}
	log := e.log.With(zap.String("session_id", rec.SessionID))

	if e.cache != nil {
		if items, ok := e.cache.get(rec.CacheKey); ok {
			final := truncate(items, limit)
			log.Info("cache hit", zap.Int("items", len(final)))
			// Cached data is already final-quality; no tentative step.
			if onPartial != nil && len(final) > 0 {
				onPartial(Snapshot[T]{Status: model.StatusFinal, Items: final})
			}
			rec.CacheHit = true
			rec.Items = len(final)
			rec.Elapsed = time.Since(start)
			e.record(ctx, rec)
			return final
		}
	}

	pool := e.fanOut(ctx, req, pref, limit, onPartial, &rec)

	final := e.postprocess(pool, pref, limit)

	if e.cache != nil && len(final) > 0 {
		e.cache.put(rec.CacheKey, final)
	}

	if onPartial != nil && len(final) > 0 {
		onPartial(Snapshot[T]{Status: model.StatusFinal, Items: final})
	}

	rec.Items = len(final)
	rec.Elapsed = time.Since(start)
	e.record(ctx, rec)

	log.Info("round complete",
		zap.Int("pool", len(pool)),
		zap.Int("final", len(final)),
		zap.Duration("elapsed", rec.Elapsed),
	)
	return final
}

// fanOut runs every provider concurrently under the round deadline and
// folds results into the pool in completion order, so fast providers
// contribute before slow ones. The tentative snapshot is emitted exactly
// once, as soon as the pool first postprocesses to something non-empty.
func (e *Engine[R, T]) fanOut(ctx context.Context, req R, pref model.Preference, limit int, onPartial PartialFunc[T], rec *RoundRecord) []T {
	if len(e.providers) == 0 {
		return nil
	}

	roundCtx, cancel := context.WithTimeout(ctx, e.cfg.RoundTimeout)
	defer cancel()

	// Buffered so tasks still in flight when the round deadline fires can
	// complete their send and exit; their results are simply never read.
	done := make(chan providerDone[T], len(e.providers))
	for _, p := range e.providers {
		p := p
		go func() {
			items, oc := e.callWithRetry(roundCtx, p, req)
			done <- providerDone[T]{items: items, outcome: oc}
		}()
	}

	var pool []T
	tentativeSent := false

	for remaining := len(e.providers); remaining > 0; remaining-- {
		select {
		case d := <-done:
			rec.Outcomes = append(rec.Outcomes, d.outcome)
			pool = append(pool, d.items...)

			if onPartial != nil && !tentativeSent && len(pool) > 0 {
				tentative := e.postprocess(pool, pref, min(3, limit))
				if len(tentative) > 0 {
					tentativeSent = true
					onPartial(Snapshot[T]{Status: model.StatusTentative, Items: tentative})
				}
			}

		case <-roundCtx.Done():
			e.log.Warn("round deadline expired, abandoning outstanding providers",
				zap.Int("outstanding", remaining),
				zap.Int("pooled", len(pool)),
			)
			return pool
		}
	}

	return pool
}

// postprocess is the dedupe → rank → cap pipeline shared by tentative and
// final emissions.
func (e *Engine[R, T]) postprocess(pool []T, pref model.Preference, limit int) []T {
	if len(pool) == 0 {
		return nil
	}
	return truncate(rank(e.domain, dedupe(e.domain, pool), pref), limit)
}

func (e *Engine[R, T]) record(ctx context.Context, rec RoundRecord) {
	if e.recorder == nil {
		return
	}
	if err := e.recorder.RecordRound(ctx, rec); err != nil {
		e.log.Warn("search log write failed", zap.Error(err))
	}
}

func truncate[T any](items []T, limit int) []T {
	if len(items) <= limit {
		return items
	}
	return items[:limit]
}
