package planner

import (
	"errors"
	"fmt"
	"sort"

	"github.com/inferenceatlas/atlas/internal/catalog"
)

// WorkloadRequest is the validated workload input consumed by Recommend.
type WorkloadRequest struct {
	TokensPerDay         float64  `json:"tokens_per_day"`
	Pattern              string   `json:"pattern"`
	ModelKey             string   `json:"model_key"`
	LatencyRequirementMS *float64 `json:"latency_requirement_ms,omitempty"`
	TopK                 int      `json:"top_k"`
}

// Recommendation is one ranked output entry. Rank is dense and 1-based
// within a single ranking run.
type Recommendation struct {
	Rank                 int     `json:"rank"`
	Platform             string  `json:"platform"`
	Option               string  `json:"option"`
	MonthlyCostUSD       float64 `json:"monthly_cost_usd"`
	Reasoning            string  `json:"reasoning"`
	UtilizationPct       float64 `json:"utilization_pct"`
	CostPerMillionTokens float64 `json:"cost_per_million_tokens"`
	IdleWastePct         float64 `json:"idle_waste_pct"`
}

type candidate struct {
	score          float64
	platform       string
	option         string
	cost           CostBreakdown
	reasoning      string
	utilizationPct float64
}

const perTokenReasoning = "Per-token billing; no dedicated idle waste"

// Recommend enumerates every platform/option combination in the catalog,
// filters out GPUs the model cannot fit, scores each surviving candidate as
// monthly cost plus penalty, and returns the top-K ascending by score.
//
// Enumeration is deterministic (sorted platform and GPU keys, GPU-backed
// platforms before per-token ones), so ties break reproducibly. A memory-fit
// failure skips only that GPU; any other error aborts the whole call, since
// it reflects a caller or catalog bug rather than an expected mismatch.
func Recommend(cat catalog.Catalog, req WorkloadRequest) ([]Recommendation, error) {
	if req.TopK < 1 {
		return nil, newValidationError("top_k must be >= 1, got %d", req.TopK)
	}
	if req.LatencyRequirementMS != nil && *req.LatencyRequirementMS <= 0 {
		return nil, newValidationError(
			"latency_requirement_ms must be > 0 when provided, got %v", *req.LatencyRequirementMS)
	}

	strictLatencyRequired := req.LatencyRequirementMS != nil &&
		*req.LatencyRequirementMS < StrictLatencyThresholdMS

	var candidates []candidate

	// GPU-backed platforms.
	for _, platformKey := range cat.PlatformKeys() {
		platform, _ := cat.Platform(platformKey)
		if len(platform.GPUs) == 0 {
			continue
		}
		for _, gpuKey := range platform.GPUKeys() {
			gpu := platform.GPUs[gpuKey]
			gpuTPS := gpu.ThroughputFor(req.ModelKey)

			utilization, err := EstimateUtilization(
				req.TokensPerDay, req.Pattern, gpuTPS, req.ModelKey)
			if err != nil {
				return nil, err
			}

			cost, err := GPUMonthlyCost(
				cat, platformKey, gpuKey,
				req.TokensPerDay, req.Pattern, req.ModelKey, &utilization)
			if err != nil {
				var memErr *MemoryError
				if errors.As(err, &memErr) {
					continue
				}
				return nil, err
			}

			utilizationPct := utilization.UtilizationAfter * 100
			latencyRisk := LatencyRiskBand(utilization.UtilizationAfter)
			penalty := Penalty(
				utilization.UtilizationAfter, utilization.GPUCount,
				latencyRisk, strictLatencyRequired)

			reasoning := fmt.Sprintf(
				"%s billing; %d GPU(s); utilization %.0f%%; latency risk %s; idle waste %.0f%%",
				cost.BillingType, utilization.GPUCount, utilizationPct,
				latencyRisk, cost.IdleWastePct)

			candidates = append(candidates, candidate{
				score:          cost.MonthlyCostUSD + penalty,
				platform:       platformKey,
				option:         gpu.Name,
				cost:           cost,
				reasoning:      reasoning,
				utilizationPct: utilizationPct,
			})
		}
	}

	// Per-token platforms offering the requested model. No utilization or
	// GPU-count dimension exists here, so no penalty terms apply.
	for _, platformKey := range cat.PlatformKeys() {
		platform, _ := cat.Platform(platformKey)
		if !platform.Billing.IsPerToken() {
			continue
		}
		if _, ok := platform.Models[req.ModelKey]; !ok {
			continue
		}

		cost, err := PerTokenMonthlyCost(cat, platformKey, req.ModelKey, req.TokensPerDay)
		if err != nil {
			return nil, err
		}

		candidates = append(candidates, candidate{
			score:          cost.MonthlyCostUSD,
			platform:       platformKey,
			option:         req.ModelKey,
			cost:           cost,
			reasoning:      perTokenReasoning,
			utilizationPct: 0,
		})
	}

	if len(candidates) == 0 {
		return nil, ErrNoFeasiblePlatform
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score < candidates[j].score
	})

	if len(candidates) > req.TopK {
		candidates = candidates[:req.TopK]
	}

	recommendations := make([]Recommendation, 0, len(candidates))
	for idx, cand := range candidates {
		recommendations = append(recommendations, Recommendation{
			Rank:                 idx + 1,
			Platform:             cand.platform,
			Option:               cand.option,
			MonthlyCostUSD:       cand.cost.MonthlyCostUSD,
			Reasoning:            cand.reasoning,
			UtilizationPct:       cand.utilizationPct,
			CostPerMillionTokens: cand.cost.CostPerMillionTokens,
			IdleWastePct:         cand.cost.IdleWastePct,
		})
	}

	return recommendations, nil
}
