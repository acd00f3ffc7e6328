// Package engine implements the generic provider aggregation round: the
// concurrent fan-out over registered providers, retry absorption, identity
// deduplication, preference-biased ranking and optional TTL caching of the
// final result set. It is parameterized by a request and a result-item type;
// the flights and hotels packages supply the domain adapters.
package engine

import (
	"context"
	"time"

	"github.com/tripdeck/travelsearch/internal/model"
)

// Request is the domain-agnostic view the engine needs of a search request.
type Request interface {
	// ResultLimit is the caller-requested limit, before server-side clamping.
	ResultLimit() int
	// Pref is the user preference tag biasing the ranking.
	Pref() model.Preference
	// CacheKey is a normalized, order-independent serialization of every
	// request field that affects results. Requests that differ only in
	// fields the engine ignores must produce the same key.
	CacheKey() string
}

// Provider is a single external data source for one domain. Implementations
// must return an empty slice, not an error, when the query is valid but has
// no inventory. Errors are absorbed by the retry wrapper and never reach
// the engine's callers.
type Provider[R Request, T any] interface {
	Name() string
	Search(ctx context.Context, req R) ([]T, error)
}

// Domain supplies the item-type hooks that concretize the engine for a
// result type: real-world identity, the dedup tie-break and composite
// scoring.
type Domain[T any] interface {
	// Key returns the identity key grouping listings of the same real-world
	// item. Missing identity fields still participate as absent so items
	// with incomplete data degrade to coarser, but deterministic, grouping.
	Key(item T) string

	// Prefer reports whether candidate should replace incumbent when both
	// share an identity key.
	Prefer(candidate, incumbent T) bool

	// Score returns the composite desirability score of item under pref:
	// the domain-neutral base score plus the preference bias. An absent or
	// unrecognized preference leaves the base score unmodified.
	Score(item T, pref model.Preference) float64

	// Annotate returns item with score attached. The score is a
	// per-ranking-pass annotation, never serialized and never supplied by
	// a provider.
	Annotate(item T, score float64) T
}

// Snapshot is one emission to the caller's partial sink.
type Snapshot[T any] struct {
	Status model.ResultStatus `json:"status"`
	Items  []T                `json:"items"`
}

// PartialFunc receives at most two snapshots per Search call: one tentative
// (if achievable before round completion) and one final.
type PartialFunc[T any] func(Snapshot[T])

// OutcomeStatus classifies a provider's contribution to one round. The
// external contract never raises, but the cause of every silent absorption
// stays observable here and in logs.
type OutcomeStatus string

const (
	// OutcomeSuccess means the provider returned (possibly zero) items.
	OutcomeSuccess OutcomeStatus = "success"
	// OutcomeEmpty means the provider signalled a tolerated business error
	// ("no inventory"), treated as empty success without retrying.
	OutcomeEmpty OutcomeStatus = "empty"
	// OutcomeSuppressed means retries were exhausted or the round deadline
	// expired; the provider contributed nothing this round.
	OutcomeSuppressed OutcomeStatus = "suppressed"
)

// Outcome is the per-provider result of one fan-out round.
type Outcome struct {
	Provider string        `json:"provider"`
	Status   OutcomeStatus `json:"status"`
	Items    int           `json:"items"`
	Attempts int           `json:"attempts"`
	Error    string        `json:"error,omitempty"`
	Elapsed  time.Duration `json:"elapsed"`
}

// RoundRecord summarizes one aggregation round for the search log.
type RoundRecord struct {
	SessionID string        `json:"session_id"`
	Domain    string        `json:"domain"`
	CacheKey  string        `json:"cache_key"`
	CacheHit  bool          `json:"cache_hit"`
	Items     int           `json:"items"`
	Elapsed   time.Duration `json:"elapsed"`
	Outcomes  []Outcome     `json:"outcomes,omitempty"`
}

// Recorder persists round records. Implementations must tolerate being
// called concurrently; recording failures are logged, never surfaced.
type Recorder interface {
	RecordRound(ctx context.Context, rec RoundRecord) error
}
