// Package planner implements the deterministic recommendation engine: the
// workload-to-utilization model, the billing-aware monthly cost model, and
// the cost-plus-penalty ranking of catalog options.
package planner

import (
	"sort"
	"strings"
)

// TrafficProfile holds the coefficients of one named traffic shape.
type TrafficProfile struct {
	Name        string  `json:"name"`
	ActiveRatio float64 `json:"active_ratio"` // Fraction of time with active traffic
	Efficiency  float64 `json:"efficiency"`   // GPU batching/scheduling efficiency (0-1)
	BurstFactor float64 `json:"burst_factor"` // Peak-to-average traffic multiplier
	BatchMult   float64 `json:"batch_mult"`   // Batching throughput gain under load
}

// Fixed pattern table. business_hours active ratio is 40 active hours out of
// a 168 hour week.
var trafficPatterns = map[string]TrafficProfile{
	"steady": {
		Name:        "steady",
		ActiveRatio: 1.0,
		Efficiency:  0.80,
		BurstFactor: 1.0,
		BatchMult:   1.25,
	},
	"business_hours": {
		Name:        "business_hours",
		ActiveRatio: 0.238,
		Efficiency:  0.75,
		BurstFactor: 1.0,
		BatchMult:   1.15,
	},
	"bursty": {
		Name:        "bursty",
		ActiveRatio: 0.40,
		Efficiency:  0.60,
		BurstFactor: 3.0,
		BatchMult:   1.10,
	},
}

// TrafficPatternNames returns all pattern names in sorted order.
func TrafficPatternNames() []string {
	names := make([]string, 0, len(trafficPatterns))
	for name := range trafficPatterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NormalizePattern lowercases a pattern label and replaces spaces with
// underscores, so "Business Hours" resolves the same as "business_hours".
func NormalizePattern(pattern string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(pattern)), " ", "_")
}

// ResolveTrafficProfile maps a pattern label to its coefficients. It fails
// closed with an UnknownKeyError for unrecognized names and with a
// ValidationError when any resolved coefficient is non-positive.
func ResolveTrafficProfile(pattern string) (TrafficProfile, error) {
	normalized := NormalizePattern(pattern)
	profile, ok := trafficPatterns[normalized]
	if !ok {
		return TrafficProfile{}, &UnknownKeyError{
			Kind:  "pattern",
			Key:   pattern,
			Valid: TrafficPatternNames(),
		}
	}

	// Defensive validation against malformed pattern table entries.
	if profile.ActiveRatio <= 0 {
		return TrafficProfile{}, newValidationError(
			"traffic pattern '%s' has invalid active_ratio=%v. active_ratio must be > 0",
			pattern, profile.ActiveRatio)
	}
	if profile.Efficiency <= 0 {
		return TrafficProfile{}, newValidationError(
			"traffic pattern '%s' has invalid efficiency=%v. efficiency must be > 0",
			pattern, profile.Efficiency)
	}
	if profile.BurstFactor <= 0 {
		return TrafficProfile{}, newValidationError(
			"traffic pattern '%s' has invalid burst_factor=%v. burst_factor must be > 0",
			pattern, profile.BurstFactor)
	}
	if profile.BatchMult <= 0 {
		return TrafficProfile{}, newValidationError(
			"traffic pattern '%s' has invalid batch_mult=%v. batch_mult must be > 0",
			pattern, profile.BatchMult)
	}

	return profile, nil
}
