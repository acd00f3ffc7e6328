package model

import "strings"

// Preference is a user hint that biases ranking toward one axis.
// Kept as a plain string to avoid serialization headaches across services.
type Preference string

const (
	PrefCheapest   Preference = "cheapest"
	PrefNonStop    Preference = "non-stop"
	PrefComfort    Preference = "comfort"
	PrefLuxury     Preference = "luxury"
	PrefHighRating Preference = "high-rating"
	PrefBalanced   Preference = "balanced"
)

// Normalize lowercases the tag. An absent or unrecognized preference is
// equivalent to PrefBalanced; callers compare against the constants above
// and fall through to no bias for anything else.
func (p Preference) Normalize() Preference {
	return Preference(strings.ToLower(strings.TrimSpace(string(p))))
}

// ResultStatus tags a snapshot emitted to the caller.
type ResultStatus string

const (
	// StatusTentative is an early, best-effort, size-capped snapshot emitted
	// before all providers finish.
	StatusTentative ResultStatus = "tentative"
	// StatusFinal is the authoritative snapshot returned at round completion.
	StatusFinal ResultStatus = "final"
)
