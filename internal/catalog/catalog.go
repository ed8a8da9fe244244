// Package catalog holds the read-only platform, GPU, and model pricing data
// consumed by the recommendation engine. A Catalog is built once and never
// mutated; every planner call receives it explicitly.
package catalog

import (
	"fmt"
	"sort"
)

// BillingMode describes how a platform charges for capacity.
type BillingMode string

const (
	BillingAutoscaling    BillingMode = "autoscaling"
	BillingPerSecond      BillingMode = "per_second"
	BillingHourly         BillingMode = "hourly"
	BillingHourlyVariable BillingMode = "hourly_variable"
	BillingPerToken       BillingMode = "per_token"
)

// IsPerToken reports whether the mode bills per consumed token with no
// GPU provisioning.
func (b BillingMode) IsPerToken() bool {
	return b == BillingPerToken
}

// Valid reports whether the billing mode is one of the known modes.
func (b BillingMode) Valid() bool {
	switch b {
	case BillingAutoscaling, BillingPerSecond, BillingHourly, BillingHourlyVariable, BillingPerToken:
		return true
	}
	return false
}

// GPUSpec describes one GPU offering on a platform.
type GPUSpec struct {
	Name              string             `json:"name"`
	HourlyRate        float64            `json:"hourly_rate"`
	MemoryGB          int                `json:"memory_gb"`
	TokensPerSecond   float64            `json:"tokens_per_second"`
	ThroughputByModel map[string]float64 `json:"throughput_by_model,omitempty"`
}

// ThroughputFor returns the model-specific throughput when a benchmark entry
// exists, falling back to the GPU's baseline throughput otherwise.
func (g GPUSpec) ThroughputFor(modelKey string) float64 {
	if tps, ok := g.ThroughputByModel[modelKey]; ok {
		return tps
	}
	return g.TokensPerSecond
}

// PerTokenPrice describes one model priced per million tokens.
type PerTokenPrice struct {
	PricePerMillionTokens float64 `json:"price_per_m_tokens"`
}

// Platform is a hosting platform entry. The billing mode selects the variant:
// per-token platforms carry Models, every other mode carries GPUs.
type Platform struct {
	Type    string                   `json:"type"` // serverless, dedicated, marketplace, model_based
	Billing BillingMode              `json:"billing"`
	GPUs    map[string]GPUSpec       `json:"gpus,omitempty"`
	Models  map[string]PerTokenPrice `json:"models,omitempty"`
}

// ModelRequirement holds deployment requirements for one model.
type ModelRequirement struct {
	DisplayName         string `json:"display_name"`
	RecommendedMemoryGB int    `json:"recommended_memory_gb"`
	ParameterCount      int64  `json:"parameter_count"`
}

// Catalog is an immutable snapshot of platforms and model requirements.
type Catalog struct {
	platforms map[string]Platform
	models    map[string]ModelRequirement
}

// New builds a validated catalog from platform and model tables.
func New(platforms map[string]Platform, models map[string]ModelRequirement) (Catalog, error) {
	c := Catalog{platforms: platforms, models: models}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// Validate checks the catalog for malformed entries: unknown billing modes,
// mismatched variant shapes, and non-positive rates, memory, or throughput.
func (c Catalog) Validate() error {
	for key, platform := range c.platforms {
		if !platform.Billing.Valid() {
			return fmt.Errorf("platform %q has unknown billing mode %q", key, platform.Billing)
		}
		if platform.Billing.IsPerToken() {
			if len(platform.Models) == 0 {
				return fmt.Errorf("per-token platform %q defines no model prices", key)
			}
			if len(platform.GPUs) > 0 {
				return fmt.Errorf("per-token platform %q must not define GPU options", key)
			}
			for modelKey, price := range platform.Models {
				if price.PricePerMillionTokens <= 0 {
					return fmt.Errorf("platform %q model %q has non-positive price %v",
						key, modelKey, price.PricePerMillionTokens)
				}
			}
			continue
		}
		if len(platform.GPUs) == 0 {
			return fmt.Errorf("GPU-backed platform %q defines no GPU options", key)
		}
		if len(platform.Models) > 0 {
			return fmt.Errorf("GPU-backed platform %q must not define per-token prices", key)
		}
		for gpuKey, gpu := range platform.GPUs {
			if gpu.HourlyRate <= 0 {
				return fmt.Errorf("platform %q GPU %q has non-positive hourly rate %v",
					key, gpuKey, gpu.HourlyRate)
			}
			if gpu.MemoryGB <= 0 {
				return fmt.Errorf("platform %q GPU %q has non-positive memory %d",
					key, gpuKey, gpu.MemoryGB)
			}
			if gpu.TokensPerSecond <= 0 {
				return fmt.Errorf("platform %q GPU %q has non-positive throughput %v",
					key, gpuKey, gpu.TokensPerSecond)
			}
		}
	}

	for key, model := range c.models {
		if model.RecommendedMemoryGB <= 0 {
			return fmt.Errorf("model %q has non-positive memory requirement %d",
				key, model.RecommendedMemoryGB)
		}
	}

	return nil
}

// Platform returns the platform for a key.
func (c Catalog) Platform(key string) (Platform, bool) {
	platform, ok := c.platforms[key]
	return platform, ok
}

// Model returns the requirement record for a model key.
func (c Catalog) Model(key string) (ModelRequirement, bool) {
	model, ok := c.models[key]
	return model, ok
}

// PlatformKeys returns all platform keys in sorted order.
func (c Catalog) PlatformKeys() []string {
	keys := make([]string, 0, len(c.platforms))
	for key := range c.platforms {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ModelKeys returns all model keys in sorted order.
func (c Catalog) ModelKeys() []string {
	keys := make([]string, 0, len(c.models))
	for key := range c.models {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// GPUKeys returns sorted GPU keys for one platform.
func (p Platform) GPUKeys() []string {
	keys := make([]string, 0, len(p.GPUs))
	for key := range p.GPUs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ModelDisplayName returns the human-readable name for a model key.
func (c Catalog) ModelDisplayName(key string) (string, error) {
	model, ok := c.models[key]
	if !ok {
		return "", fmt.Errorf("unknown model %q. Valid options: %v", key, c.ModelKeys())
	}
	return model.DisplayName, nil
}
