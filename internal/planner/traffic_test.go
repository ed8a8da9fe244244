package planner_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inferenceatlas/atlas/internal/planner"
)

func TestResolveTrafficProfile(t *testing.T) {
	tests := []struct {
		name                string
		pattern             string
		expectedName        string
		expectedActiveRatio float64
		expectError         bool
	}{
		{
			name:                "steady pattern",
			pattern:             "steady",
			expectedName:        "steady",
			expectedActiveRatio: 1.0,
		},
		{
			name:                "business hours pattern",
			pattern:             "business_hours",
			expectedName:        "business_hours",
			expectedActiveRatio: 0.238,
		},
		{
			name:                "bursty pattern",
			pattern:             "bursty",
			expectedName:        "bursty",
			expectedActiveRatio: 0.40,
		},
		{
			name:                "label with spaces and mixed case",
			pattern:             "Business Hours",
			expectedName:        "business_hours",
			expectedActiveRatio: 0.238,
		},
		{
			name:                "label with surrounding whitespace",
			pattern:             "  STEADY  ",
			expectedName:        "steady",
			expectedActiveRatio: 1.0,
		},
		{
			name:        "unknown pattern",
			pattern:     "weekend_spike",
			expectError: true,
		},
		{
			name:        "empty pattern",
			pattern:     "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := planner.ResolveTrafficProfile(tt.pattern)

			if tt.expectError {
				require.Error(t, err)
				var unknownErr *planner.UnknownKeyError
				require.True(t, errors.As(err, &unknownErr))
				require.Equal(t, "pattern", unknownErr.Kind)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.expectedName, profile.Name)
			require.InDelta(t, tt.expectedActiveRatio, profile.ActiveRatio, 0.0001)
			require.Greater(t, profile.Efficiency, 0.0)
			require.Greater(t, profile.BurstFactor, 0.0)
			require.Greater(t, profile.BatchMult, 0.0)
		})
	}
}

func TestResolveTrafficProfile_UnknownListsValidOptions(t *testing.T) {
	_, err := planner.ResolveTrafficProfile("diurnal")

	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown pattern 'diurnal'")
	require.Contains(t, err.Error(), "bursty")
	require.Contains(t, err.Error(), "business_hours")
	require.Contains(t, err.Error(), "steady")
}

func TestTrafficPatternNames(t *testing.T) {
	names := planner.TrafficPatternNames()
	require.Equal(t, []string{"bursty", "business_hours", "steady"}, names)
}

func TestNormalizePattern(t *testing.T) {
	require.Equal(t, "business_hours", planner.NormalizePattern("Business Hours"))
	require.Equal(t, "steady", planner.NormalizePattern(" steady "))
	require.Equal(t, "bursty", planner.NormalizePattern("BURSTY"))
}
