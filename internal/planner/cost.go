package planner

import (
	"sort"

	"github.com/inferenceatlas/atlas/internal/catalog"
)

const tokensPerMillion = 1_000_000.0

// CostBreakdown holds the monthly cost details for one platform option.
type CostBreakdown struct {
	Platform             string              `json:"platform"`
	OptionKey            string              `json:"option_key"`
	OptionName           string              `json:"option_name"`
	BillingType          catalog.BillingMode `json:"billing_type"`
	MonthlyCostUSD       float64             `json:"monthly_cost_usd"`
	ActiveHoursPerMonth  float64             `json:"active_hours_per_month"`
	IdleWasteUSD         float64             `json:"idle_waste_usd"`
	CostPerMillionTokens float64             `json:"cost_per_million_tokens"`
	IdleWastePct         float64             `json:"idle_waste_pct"`
}

// GPUMonthlyCost computes the monthly cost of serving a workload on one
// GPU-backed platform option.
//
// Billing rules:
//   - autoscaling: active_hours × hourly_rate × gpu_count, no idle waste
//   - dedicated/per_second/hourly/hourly_variable: 720 × hourly_rate × gpu_count,
//     idle waste covers the provisioned-but-inactive hours
//
// A model that does not fit the GPU's memory yields a *MemoryError, which is
// the only error the ranker treats as a per-candidate filter. Pass a non-nil
// utilization to reuse a previously computed estimate.
func GPUMonthlyCost(
	cat catalog.Catalog,
	platformKey string,
	gpuKey string,
	tokensPerDay float64,
	pattern string,
	modelKey string,
	utilization *UtilizationEstimate,
) (CostBreakdown, error) {
	if tokensPerDay <= 0 {
		return CostBreakdown{}, newValidationError(
			"tokens_per_day must be > 0, got %v", tokensPerDay)
	}
	if modelKey == "" {
		return CostBreakdown{}, newValidationError(
			"model_key must be a non-empty string")
	}

	platform, ok := cat.Platform(platformKey)
	if !ok {
		return CostBreakdown{}, &UnknownKeyError{
			Kind:  "platform",
			Key:   platformKey,
			Valid: cat.PlatformKeys(),
		}
	}
	if len(platform.GPUs) == 0 {
		return CostBreakdown{}, newValidationError(
			"platform '%s' does not define GPU options", platformKey)
	}
	gpu, ok := platform.GPUs[gpuKey]
	if !ok {
		return CostBreakdown{}, &UnknownKeyError{
			Kind:  "gpu",
			Key:   gpuKey,
			Valid: platform.GPUKeys(),
		}
	}

	gpuTPS := gpu.ThroughputFor(modelKey)

	// Memory fit: a model larger than one GPU's memory is rejected outright,
	// never split across GPUs.
	if model, known := cat.Model(modelKey); known {
		if model.RecommendedMemoryGB > gpu.MemoryGB {
			return CostBreakdown{}, &MemoryError{
				ModelKey:    modelKey,
				GPUName:     gpu.Name,
				RequiredGB:  model.RecommendedMemoryGB,
				AvailableGB: gpu.MemoryGB,
			}
		}
	}

	if gpu.HourlyRate <= 0 {
		return CostBreakdown{}, newValidationError(
			"hourly_rate must be > 0 for %s/%s, got %v", platformKey, gpuKey, gpu.HourlyRate)
	}

	if utilization == nil {
		estimate, err := EstimateUtilization(tokensPerDay, pattern, gpuTPS, modelKey)
		if err != nil {
			return CostBreakdown{}, err
		}
		utilization = &estimate
	}

	gpuCount := utilization.GPUCount
	if gpuCount < 1 {
		gpuCount = 1
	}

	var monthlyCost, idleWaste, idleWastePct float64
	if platform.Billing == catalog.BillingAutoscaling {
		// Pay only for active hours.
		monthlyCost = utilization.ActiveHoursPerMonth * gpu.HourlyRate * float64(gpuCount)
	} else {
		// Provisioned for the full month regardless of load.
		monthlyCost = HoursPerMonth * gpu.HourlyRate * float64(gpuCount)
		idleHours := HoursPerMonth - utilization.ActiveHoursPerMonth
		if idleHours < 0 {
			idleHours = 0
		}
		idleWaste = idleHours * gpu.HourlyRate * float64(gpuCount)
		if monthlyCost > 0 {
			idleWastePct = idleWaste / monthlyCost * 100
		}
	}

	monthlyTokens := tokensPerDay * DaysPerMonth
	var costPerMillion float64
	if monthlyTokens > 0 {
		costPerMillion = monthlyCost / monthlyTokens * tokensPerMillion
	}

	return CostBreakdown{
		Platform:             platformKey,
		OptionKey:            gpuKey,
		OptionName:           gpu.Name,
		BillingType:          platform.Billing,
		MonthlyCostUSD:       monthlyCost,
		ActiveHoursPerMonth:  utilization.ActiveHoursPerMonth,
		IdleWasteUSD:         idleWaste,
		CostPerMillionTokens: costPerMillion,
		IdleWastePct:         idleWastePct,
	}, nil
}

// PerTokenMonthlyCost computes the monthly cost on a flat per-token platform.
// There is no GPU provisioning, so no utilization and no idle waste.
func PerTokenMonthlyCost(
	cat catalog.Catalog,
	platformKey string,
	modelKey string,
	tokensPerDay float64,
) (CostBreakdown, error) {
	if tokensPerDay <= 0 {
		return CostBreakdown{}, newValidationError(
			"tokens_per_day must be > 0, got %v", tokensPerDay)
	}

	platform, ok := cat.Platform(platformKey)
	if !ok {
		return CostBreakdown{}, &UnknownKeyError{
			Kind:  "platform",
			Key:   platformKey,
			Valid: cat.PlatformKeys(),
		}
	}
	if len(platform.Models) == 0 {
		return CostBreakdown{}, newValidationError(
			"platform '%s' does not define per-token model options", platformKey)
	}
	price, ok := platform.Models[modelKey]
	if !ok {
		valid := make([]string, 0, len(platform.Models))
		for key := range platform.Models {
			valid = append(valid, key)
		}
		sort.Strings(valid)
		return CostBreakdown{}, &UnknownKeyError{Kind: "model", Key: modelKey, Valid: valid}
	}
	if price.PricePerMillionTokens <= 0 {
		return CostBreakdown{}, newValidationError(
			"price_per_m_tokens must be > 0 for %s/%s, got %v",
			platformKey, modelKey, price.PricePerMillionTokens)
	}

	monthlyTokens := tokensPerDay * DaysPerMonth
	monthlyCost := monthlyTokens / tokensPerMillion * price.PricePerMillionTokens
	var costPerMillion float64
	if monthlyTokens > 0 {
		costPerMillion = monthlyCost / monthlyTokens * tokensPerMillion
	}

	return CostBreakdown{
		Platform:             platformKey,
		OptionKey:            modelKey,
		OptionName:           modelKey,
		BillingType:          platform.Billing,
		MonthlyCostUSD:       monthlyCost,
		ActiveHoursPerMonth:  0,
		IdleWasteUSD:         0,
		CostPerMillionTokens: costPerMillion,
		IdleWastePct:         0,
	}, nil
}
