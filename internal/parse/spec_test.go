package parse_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inferenceatlas/atlas/internal/parse"
)

func TestValidateWorkloadPayload(t *testing.T) {
	t.Run("complete payload", func(t *testing.T) {
		spec, err := parse.ValidateWorkloadPayload(map[string]any{
			"tokens_per_day":         5_000_000.0,
			"pattern":                "bursty",
			"model_key":              "llama_70b",
			"latency_requirement_ms": 200.0,
		})

		require.NoError(t, err)
		require.InDelta(t, 5_000_000.0, spec.TokensPerDay, 0.0001)
		require.Equal(t, "bursty", spec.Pattern)
		require.Equal(t, "llama_70b", spec.ModelKey)
		require.NotNil(t, spec.LatencyRequirementMS)
		require.InDelta(t, 200.0, *spec.LatencyRequirementMS, 0.0001)
	})

	t.Run("latency omitted means no requirement", func(t *testing.T) {
		spec, err := parse.ValidateWorkloadPayload(map[string]any{
			"tokens_per_day": 1000.0,
			"pattern":        "steady",
			"model_key":      "llama_8b",
		})

		require.NoError(t, err)
		require.Nil(t, spec.LatencyRequirementMS)
	})

	t.Run("latency zero or null means no requirement", func(t *testing.T) {
		for _, rawLatency := range []any{0.0, nil} {
			spec, err := parse.ValidateWorkloadPayload(map[string]any{
				"tokens_per_day":         1000.0,
				"pattern":                "steady",
				"model_key":              "llama_8b",
				"latency_requirement_ms": rawLatency,
			})

			require.NoError(t, err)
			require.Nil(t, spec.LatencyRequirementMS)
		}
	})

	t.Run("pattern label is normalized", func(t *testing.T) {
		spec, err := parse.ValidateWorkloadPayload(map[string]any{
			"tokens_per_day": 1000.0,
			"pattern":        "Business Hours",
			"model_key":      "llama_8b",
		})

		require.NoError(t, err)
		require.Equal(t, "business_hours", spec.Pattern)
	})

	t.Run("numbers arrive in many shapes", func(t *testing.T) {
		for _, rawTokens := range []any{1000, int64(1000), float32(1000), "1000", " 1000 "} {
			spec, err := parse.ValidateWorkloadPayload(map[string]any{
				"tokens_per_day": rawTokens,
				"pattern":        "steady",
				"model_key":      "llama_8b",
			})

			require.NoError(t, err)
			require.InDelta(t, 1000.0, spec.TokensPerDay, 0.0001)
		}
	})
}

func TestValidateWorkloadPayload_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		wantErr string
	}{
		{
			name: "missing tokens_per_day",
			payload: map[string]any{
				"pattern": "steady", "model_key": "llama_8b",
			},
			wantErr: "missing required field: tokens_per_day",
		},
		{
			name: "non-numeric tokens_per_day",
			payload: map[string]any{
				"tokens_per_day": []any{1.0}, "pattern": "steady", "model_key": "llama_8b",
			},
			wantErr: "invalid tokens_per_day",
		},
		{
			name: "non-positive tokens_per_day",
			payload: map[string]any{
				"tokens_per_day": 0.0, "pattern": "steady", "model_key": "llama_8b",
			},
			wantErr: "tokens_per_day must be > 0",
		},
		{
			name: "missing pattern",
			payload: map[string]any{
				"tokens_per_day": 1000.0, "model_key": "llama_8b",
			},
			wantErr: "missing required field: pattern",
		},
		{
			name: "unknown pattern",
			payload: map[string]any{
				"tokens_per_day": 1000.0, "pattern": "diurnal", "model_key": "llama_8b",
			},
			wantErr: "unknown pattern",
		},
		{
			name: "missing model_key",
			payload: map[string]any{
				"tokens_per_day": 1000.0, "pattern": "steady",
			},
			wantErr: "missing required field: model_key",
		},
		{
			name: "blank model_key",
			payload: map[string]any{
				"tokens_per_day": 1000.0, "pattern": "steady", "model_key": "  ",
			},
			wantErr: "model_key must be a non-empty string",
		},
		{
			name: "negative latency",
			payload: map[string]any{
				"tokens_per_day": 1000.0, "pattern": "steady", "model_key": "llama_8b",
				"latency_requirement_ms": -5.0,
			},
			wantErr: "latency_requirement_ms must be > 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse.ValidateWorkloadPayload(tt.payload)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	t.Run("bare object", func(t *testing.T) {
		payload, err := parse.ExtractJSONObject(`{"tokens_per_day": 1000}`)
		require.NoError(t, err)
		require.InDelta(t, 1000.0, payload["tokens_per_day"].(float64), 0.0001)
	})

	t.Run("object wrapped in prose and fences", func(t *testing.T) {
		payload, err := parse.ExtractJSONObject(
			"Here is the extraction:\n```json\n{\"model_key\": \"llama_70b\"}\n```\nDone.")
		require.NoError(t, err)
		require.Equal(t, "llama_70b", payload["model_key"])
	})

	t.Run("no object at all", func(t *testing.T) {
		_, err := parse.ExtractJSONObject("I could not determine the workload.")
		require.Error(t, err)
	})
}
