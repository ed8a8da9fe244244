// Package parse turns free-form workload descriptions into validated
// WorkloadSpec records using LLM providers, with primary/fallback routing,
// bounded retry, and a fail-closed degradation to manually entered specs.
// It is fully decoupled from the deterministic planner: only the validated
// WorkloadSpec crosses the boundary.
package parse

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/inferenceatlas/atlas/internal/planner"
)

// WorkloadSpec is a validated workload extracted from natural-language input.
// It has the same shape as the workload input contract consumed by the
// recommendation API.
type WorkloadSpec struct {
	TokensPerDay         float64  `json:"tokens_per_day"`
	Pattern              string   `json:"pattern"`
	ModelKey             string   `json:"model_key"`
	LatencyRequirementMS *float64 `json:"latency_requirement_ms,omitempty"`
}

// ValidateWorkloadPayload coerces a raw provider payload into a WorkloadSpec.
//
// Required keys: tokens_per_day (> 0), pattern (known traffic pattern),
// model_key (non-empty). Optional: latency_requirement_ms (> 0); zero, empty,
// or missing means no latency requirement.
func ValidateWorkloadPayload(payload map[string]any) (WorkloadSpec, error) {
	rawTokens, ok := payload["tokens_per_day"]
	if !ok {
		return WorkloadSpec{}, fmt.Errorf("missing required field: tokens_per_day")
	}
	tokensPerDay, err := toFloat(rawTokens)
	if err != nil {
		return WorkloadSpec{}, fmt.Errorf("invalid tokens_per_day: %w", err)
	}
	if tokensPerDay <= 0 {
		return WorkloadSpec{}, fmt.Errorf("tokens_per_day must be > 0, got %v", tokensPerDay)
	}

	rawPattern, ok := payload["pattern"]
	if !ok {
		return WorkloadSpec{}, fmt.Errorf("missing required field: pattern")
	}
	pattern := planner.NormalizePattern(fmt.Sprintf("%v", rawPattern))
	if _, err := planner.ResolveTrafficProfile(pattern); err != nil {
		return WorkloadSpec{}, err
	}

	rawModel, ok := payload["model_key"]
	if !ok {
		return WorkloadSpec{}, fmt.Errorf("missing required field: model_key")
	}
	modelKey := strings.TrimSpace(fmt.Sprintf("%v", rawModel))
	if modelKey == "" {
		return WorkloadSpec{}, fmt.Errorf("model_key must be a non-empty string")
	}

	var latency *float64
	if rawLatency, present := payload["latency_requirement_ms"]; present && rawLatency != nil {
		value, err := toFloat(rawLatency)
		if err != nil {
			return WorkloadSpec{}, fmt.Errorf("invalid latency_requirement_ms: %w", err)
		}
		if value < 0 {
			return WorkloadSpec{}, fmt.Errorf(
				"latency_requirement_ms must be > 0 when provided, got %v", value)
		}
		if value > 0 {
			latency = &value
		}
	}

	return WorkloadSpec{
		TokensPerDay:         tokensPerDay,
		Pattern:              pattern,
		ModelKey:             modelKey,
		LatencyRequirementMS: latency,
	}, nil
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("expected a number, got %T", value)
	}
}
