package planner

// RiskBand categorizes latency risk from post-scaling utilization.
type RiskBand string

const (
	RiskLow    RiskBand = "low"
	RiskMedium RiskBand = "medium"
	RiskHigh   RiskBand = "high"
)

const (
	// MaxGPUs is the GPU-count ceiling above which the over-scaling
	// penalty applies.
	MaxGPUs = 8

	// StrictLatencyThresholdMS marks a latency requirement as strict.
	StrictLatencyThresholdMS = 300.0

	overloadKneeUtilization = 0.90
	overloadRampWidth       = 0.10
	overloadPenaltyUSD      = 20_000.0
	overScalePenaltyPerGPU  = 50_000.0
	strictLatencyPenaltyUSD = 30_000.0
)

// LatencyRiskBand is a pure step function of post-scaling utilization:
// low at or below 50%, medium at or below 75%, high above.
func LatencyRiskBand(utilizationAfter float64) RiskBand {
	if utilizationAfter <= 0.50 {
		return RiskLow
	}
	if utilizationAfter <= TargetUtilization {
		return RiskMedium
	}
	return RiskHigh
}

// Penalty converts utilization, GPU count, and latency risk into a synthetic
// monetary term used purely as a ranking signal, never a real cost. The three
// components are additive and trigger independently:
//
//   - Overload: $0 at 90% post-scaling utilization, ramping linearly to $20k
//     at 100% (and beyond, above 100%).
//   - Over-scaling: $50k per GPU beyond the 8-GPU ceiling.
//   - Strict latency: flat $30k when the caller requires <300ms and the risk
//     band is high.
func Penalty(
	utilizationAfter float64,
	gpuCount int,
	latencyRisk RiskBand,
	strictLatencyRequired bool,
) float64 {
	penalty := 0.0

	if utilizationAfter > overloadKneeUtilization {
		penalty += overloadPenaltyUSD * (utilizationAfter - overloadKneeUtilization) / overloadRampWidth
	}

	if gpuCount > MaxGPUs {
		penalty += overScalePenaltyPerGPU * float64(gpuCount-MaxGPUs)
	}

	if latencyRisk == RiskHigh && strictLatencyRequired {
		penalty += strictLatencyPenaltyUSD
	}

	return penalty
}
