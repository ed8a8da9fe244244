package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inferenceatlas/atlas/internal/catalog"
)

func TestPlatformRows_StableOrder(t *testing.T) {
	cat, err := catalog.New(
		map[string]catalog.Platform{
			"tokenfarm": {
				Type:    "model_based",
				Billing: catalog.BillingPerToken,
				Models: map[string]catalog.PerTokenPrice{
					"model_c": {PricePerMillionTokens: 3.0},
					"model_a": {PricePerMillionTokens: 1.0},
					"model_b": {PricePerMillionTokens: 2.0},
				},
			},
		},
		nil,
	)
	require.NoError(t, err)

	rows := platformRows(cat)

	require.Len(t, rows, 3)
	require.Equal(t, "model_a", rows[0][2])
	require.Equal(t, "model_b", rows[1][2])
	require.Equal(t, "model_c", rows[2][2])

	// Repeated runs must not reshuffle.
	require.Equal(t, rows, platformRows(cat))
}

func TestPlatformRows_DefaultCatalog(t *testing.T) {
	rows := platformRows(catalog.Default())

	// 8 GPU options plus one per-token model.
	require.Len(t, rows, 9)
	require.Equal(t, "fireworks", rows[0][0])
	require.Equal(t, rows, platformRows(catalog.Default()))
}
