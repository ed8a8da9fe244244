package planner

import "math"

const (
	// SecondsPerDay converts daily token volume to average tokens/second.
	SecondsPerDay = 86400

	// HoursPerMonth is the billing month used throughout the cost model,
	// consistent with DaysPerMonth.
	HoursPerMonth = 720.0

	// DaysPerMonth converts daily token volume to monthly tokens.
	DaysPerMonth = 30.0

	// TargetUtilization is the post-scaling utilization ceiling used to
	// size the GPU count.
	TargetUtilization = 0.75
)

// UtilizationEstimate holds the derived capacity metrics for one
// (workload, GPU) pair.
type UtilizationEstimate struct {
	ActiveHoursPerMonth       float64 `json:"active_hours_per_month"`
	AvgTokensPerSecondGlobal  float64 `json:"avg_tokens_per_second_global"`
	RequiredPeakTokensPerSec  float64 `json:"required_peak_tokens_per_second"`
	EffectiveGPUTokensPerSec  float64 `json:"effective_gpu_tokens_per_second"`
	UtilizationRatio          float64 `json:"utilization_ratio"` // single GPU, pre-scaling
	GPUCount                  int     `json:"gpu_count"`
	UtilizationAfter          float64 `json:"utilization_after"`
}

// EstimateUtilization converts a daily token volume, traffic shape, and raw
// GPU throughput into required capacity and GPU count.
//
// The steps, in order:
//  1. avg_tps = tokens_per_day / 86400
//  2. required_peak_tps = avg_tps / active_ratio * burst_factor
//  3. effective_gpu_tps = raw_tps * efficiency * batch_mult
//  4. utilization_ratio = required_peak_tps / effective_gpu_tps
//  5. gpu_count = max(1, ceil(utilization_ratio / 0.75))
//  6. utilization_after = utilization_ratio / gpu_count
//
// utilization_after lands at or below the 0.75 target except when a single
// GPU already runs under the target knee: one GPU cannot be subdivided.
func EstimateUtilization(
	tokensPerDay float64,
	pattern string,
	gpuTokensPerSecond float64,
	modelKey string,
) (UtilizationEstimate, error) {
	if tokensPerDay <= 0 {
		return UtilizationEstimate{}, newValidationError(
			"tokens_per_day must be > 0, got %v", tokensPerDay)
	}
	if gpuTokensPerSecond <= 0 {
		return UtilizationEstimate{}, newValidationError(
			"gpu_tokens_per_second must be > 0, got %v", gpuTokensPerSecond)
	}
	if modelKey == "" {
		return UtilizationEstimate{}, newValidationError(
			"model_key must be a non-empty string")
	}

	profile, err := ResolveTrafficProfile(pattern)
	if err != nil {
		return UtilizationEstimate{}, err
	}

	avgTPSGlobal := tokensPerDay / SecondsPerDay
	requiredPeakTPS := avgTPSGlobal / profile.ActiveRatio * profile.BurstFactor
	effectiveGPUTPS := gpuTokensPerSecond * profile.Efficiency * profile.BatchMult
	utilizationRatio := requiredPeakTPS / effectiveGPUTPS

	gpuCount := int(math.Ceil(utilizationRatio / TargetUtilization))
	if gpuCount < 1 {
		gpuCount = 1
	}

	return UtilizationEstimate{
		ActiveHoursPerMonth:      HoursPerMonth * profile.ActiveRatio,
		AvgTokensPerSecondGlobal: avgTPSGlobal,
		RequiredPeakTokensPerSec: requiredPeakTPS,
		EffectiveGPUTokensPerSec: effectiveGPUTPS,
		UtilizationRatio:         utilizationRatio,
		GPUCount:                 gpuCount,
		UtilizationAfter:         utilizationRatio / float64(gpuCount),
	}, nil
}
