package catalog

// Default returns the built-in hosting catalog. Rates are list prices as of
// the last manual refresh; vast_ai uses an average marketplace price.
func Default() Catalog {
	return Catalog{
		platforms: map[string]Platform{
			"fireworks": {
				Type:    "serverless",
				Billing: BillingAutoscaling,
				GPUs: map[string]GPUSpec{
					"a100_80gb": {
						Name:            "NVIDIA A100 80GB",
						HourlyRate:      2.9,
						MemoryGB:        80,
						TokensPerSecond: 8000,
						ThroughputByModel: map[string]float64{
							"llama_8b":     20000,
							"llama_70b":    8000,
							"llama_405b":   1500,
							"mixtral_8x7b": 7000,
							"mistral_7b":   22000,
						},
					},
					"h100_80gb": {
						Name:            "NVIDIA H100 80GB",
						HourlyRate:      4.0,
						MemoryGB:        80,
						TokensPerSecond: 15000,
						ThroughputByModel: map[string]float64{
							"llama_8b":     35000,
							"llama_70b":    15000,
							"llama_405b":   2800,
							"mixtral_8x7b": 13000,
							"mistral_7b":   38000,
						},
					},
					"h200_141gb": {
						Name:            "NVIDIA H200 141GB",
						HourlyRate:      6.0,
						MemoryGB:        141,
						TokensPerSecond: 18000,
						ThroughputByModel: map[string]float64{
							"llama_8b":     42000,
							"llama_70b":    18000,
							"llama_405b":   3500,
							"mixtral_8x7b": 16000,
							"mistral_7b":   45000,
						},
					},
					"b200_180gb": {
						Name:            "NVIDIA B200 180GB",
						HourlyRate:      9.0,
						MemoryGB:        180,
						TokensPerSecond: 25000,
						ThroughputByModel: map[string]float64{
							"llama_8b":     60000,
							"llama_70b":    25000,
							"llama_405b":   5000,
							"mixtral_8x7b": 22000,
							"mistral_7b":   65000,
						},
					},
				},
			},
			"replicate": {
				Type:    "dedicated",
				Billing: BillingPerSecond,
				GPUs: map[string]GPUSpec{
					"a100_80gb": {
						Name:            "NVIDIA A100 80GB",
						HourlyRate:      10.08,
						MemoryGB:        80,
						TokensPerSecond: 8000,
						ThroughputByModel: map[string]float64{
							"llama_8b":     20000,
							"llama_70b":    8000,
							"llama_405b":   1500,
							"mixtral_8x7b": 7000,
							"mistral_7b":   22000,
						},
					},
				},
			},
			"modal": {
				Type:    "dedicated",
				Billing: BillingHourly,
				GPUs: map[string]GPUSpec{
					"a100_40gb": {
						Name:            "NVIDIA A100",
						HourlyRate:      3.67,
						MemoryGB:        40,
						TokensPerSecond: 6000,
						ThroughputByModel: map[string]float64{
							"llama_8b":     15000,
							"llama_70b":    6000,
							"mixtral_8x7b": 5500,
							"mistral_7b":   18000,
						},
					},
				},
			},
			"runpod": {
				Type:    "dedicated",
				Billing: BillingHourly,
				GPUs: map[string]GPUSpec{
					"a100_80gb": {
						Name:            "NVIDIA A100 80GB",
						HourlyRate:      1.89,
						MemoryGB:        80,
						TokensPerSecond: 8000,
						ThroughputByModel: map[string]float64{
							"llama_8b":     20000,
							"llama_70b":    8000,
							"llama_405b":   1500,
							"mixtral_8x7b": 7000,
							"mistral_7b":   22000,
						},
					},
				},
			},
			"vast_ai": {
				Type:    "marketplace",
				Billing: BillingHourlyVariable,
				GPUs: map[string]GPUSpec{
					"a100_80gb": {
						Name:            "NVIDIA A100 80GB",
						HourlyRate:      1.75,
						MemoryGB:        80,
						TokensPerSecond: 8000,
						ThroughputByModel: map[string]float64{
							"llama_8b":     20000,
							"llama_70b":    8000,
							"llama_405b":   1500,
							"mixtral_8x7b": 7000,
							"mistral_7b":   22000,
						},
					},
				},
			},
			"together": {
				Type:    "model_based",
				Billing: BillingPerToken,
				Models: map[string]PerTokenPrice{
					"llama_70b": {PricePerMillionTokens: 0.88},
				},
			},
		},
		models: map[string]ModelRequirement{
			"llama_8b": {
				DisplayName:         "Llama 3.1 8B",
				RecommendedMemoryGB: 16,
				ParameterCount:      8_000_000_000,
			},
			"llama_70b": {
				DisplayName:         "Llama 3.1 70B",
				RecommendedMemoryGB: 80,
				ParameterCount:      70_000_000_000,
			},
			"llama_405b": {
				DisplayName:         "Llama 3.1 405B",
				RecommendedMemoryGB: 400,
				ParameterCount:      405_000_000_000,
			},
			"mixtral_8x7b": {
				DisplayName:         "Mixtral 8x7B",
				RecommendedMemoryGB: 90,
				ParameterCount:      47_000_000_000,
			},
			"mistral_7b": {
				DisplayName:         "Mistral 7B",
				RecommendedMemoryGB: 16,
				ParameterCount:      7_000_000_000,
			},
		},
	}
}
