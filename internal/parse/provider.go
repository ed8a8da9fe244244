package parse

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Provider is any LLM backend able to extract workload fields from text.
type Provider interface {
	// ParseWorkload returns the structured payload extracted from
	// free-form user text. The payload is validated by the caller.
	ParseWorkload(ctx context.Context, userText string) (map[string]any, error)

	// Explain returns a plain-language explanation of a deterministic
	// recommendation summary.
	Explain(ctx context.Context, summary string, workload WorkloadSpec) (string, error)

	// Name returns the provider identifier.
	Name() string
}

// ExtractJSONObject pulls a JSON object out of model output text. It first
// tries the whole text, then the outermost brace-delimited slice, since
// models occasionally wrap the object in prose or code fences.
func ExtractJSONObject(text string) (map[string]any, error) {
	candidate := strings.TrimSpace(text)

	var payload map[string]any
	if err := json.Unmarshal([]byte(candidate), &payload); err == nil {
		return payload, nil
	}

	start := strings.Index(candidate, "{")
	end := strings.LastIndex(candidate, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(candidate[start:end+1]), &payload); err == nil {
			return payload, nil
		}
	}

	return nil, fmt.Errorf("provider response was not a valid JSON object")
}

// ParseSystemPrompt instructs providers to emit exactly the payload shape
// ValidateWorkloadPayload accepts.
const ParseSystemPrompt = "Extract workload fields from user text. " +
	"Return only a valid JSON object with keys: tokens_per_day (number), " +
	"pattern (steady|business_hours|bursty), model_key (string), " +
	"latency_requirement_ms (number or null)."

// ExplainSystemPrompt keeps explanation output grounded in computed numbers.
const ExplainSystemPrompt = "You are an infra assistant. " +
	"Keep explanations precise and grounded. Do not fabricate metrics."
