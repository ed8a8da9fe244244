package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/inferenceatlas/atlas/internal/catalog"
	"github.com/inferenceatlas/atlas/internal/observability"
	"github.com/inferenceatlas/atlas/internal/parse"
	"github.com/inferenceatlas/atlas/internal/planner"
)

const defaultTopK = 3

// Handler handles HTTP requests.
type Handler struct {
	catalog catalog.Catalog
	parser  *parse.Service
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(cat catalog.Catalog, parser *parse.Service) *Handler {
	return &Handler{
		catalog: cat,
		parser:  parser,
	}
}

// RecommendationRequest is the workload input contract for POST /v1/recommendations.
type RecommendationRequest struct {
	TokensPerDay         float64  `json:"tokens_per_day"`
	Pattern              string   `json:"pattern"`
	ModelKey             string   `json:"model_key"`
	LatencyRequirementMS *float64 `json:"latency_requirement_ms,omitempty"`
	TopK                 int      `json:"top_k,omitempty"`
}

// RecommendationResponse wraps the ranked recommendation list.
type RecommendationResponse struct {
	Recommendations []planner.Recommendation `json:"recommendations"`
}

// HandleRecommendations processes ranking requests.
func (h *Handler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.TopK == 0 {
		req.TopK = defaultTopK
	}

	ctx = observability.WithModel(ctx, req.ModelKey)
	ctx = observability.WithPattern(ctx, req.Pattern)

	logger := observability.FromContext(ctx)
	logger.Info("recommendation request received",
		observability.Float64("tokens_per_day", req.TokensPerDay),
		observability.Int("top_k", req.TopK),
	)

	recommendations, err := planner.Recommend(h.catalog, planner.WorkloadRequest{
		TokensPerDay:         req.TokensPerDay,
		Pattern:              req.Pattern,
		ModelKey:             req.ModelKey,
		LatencyRequirementMS: req.LatencyRequirementMS,
		TopK:                 req.TopK,
	})
	if err != nil {
		h.writeRankingError(ctx, w, err)
		return
	}

	logger.Info("recommendation request succeeded",
		observability.Int("candidates_returned", len(recommendations)),
		observability.String("top_platform", recommendations[0].Platform),
	)

	writeJSON(ctx, w, http.StatusOK, RecommendationResponse{Recommendations: recommendations})
}

// writeRankingError maps planner errors onto HTTP statuses: malformed input
// and unknown identifiers are caller errors, an infeasible workload is not.
func (h *Handler) writeRankingError(ctx context.Context, w http.ResponseWriter, err error) {
	logger := observability.FromContext(ctx)

	var validationErr *planner.ValidationError
	var unknownKeyErr *planner.UnknownKeyError

	switch {
	case errors.As(err, &validationErr), errors.As(err, &unknownKeyErr):
		logger.Warn("recommendation request rejected", observability.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, planner.ErrNoFeasiblePlatform):
		logger.Info("no feasible candidate for workload")
		http.Error(w, "this workload cannot be served by any cataloged option",
			http.StatusUnprocessableEntity)
	default:
		logger.Error("recommendation request failed", observability.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ParseRequest is the input contract for POST /v1/parse.
type ParseRequest struct {
	Text     string              `json:"text"`
	Fallback *parse.WorkloadSpec `json:"fallback,omitempty"`
}

// HandleParse processes natural-language workload parsing requests.
func (h *Handler) HandleParse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.parser == nil {
		http.Error(w, "natural-language parsing is not configured", http.StatusNotImplemented)
		return
	}

	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}

	logger := observability.FromContext(ctx)
	logger.Info("parse request received",
		observability.Int("text_length", len(req.Text)),
		observability.Bool("has_fallback", req.Fallback != nil),
	)

	result, err := h.parser.ParseWorkloadText(ctx, req.Text, req.Fallback)
	if err != nil {
		logger.Error("parse request failed", observability.Error(err))
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	logger.Info("parse request succeeded",
		observability.String("provider_used", result.ProviderUsed),
		observability.Bool("used_fallback", result.UsedFallback),
	)

	writeJSON(ctx, w, http.StatusOK, result)
}

// ExplainRequest is the input contract for POST /v1/explain.
type ExplainRequest struct {
	Workload        parse.WorkloadSpec       `json:"workload"`
	Recommendations []planner.Recommendation `json:"recommendations"`
}

// HandleExplain narrates a ranked recommendation list in plain language. The
// numbers all come from the deterministic ranking; the provider only phrases
// them.
func (h *Handler) HandleExplain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.parser == nil {
		http.Error(w, "natural-language explanations are not configured", http.StatusNotImplemented)
		return
	}

	var req ExplainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if len(req.Recommendations) == 0 {
		http.Error(w, "recommendations are required", http.StatusBadRequest)
		return
	}

	logger := observability.FromContext(ctx)

	result, err := h.parser.ExplainRecommendation(
		ctx, summarizeRecommendations(req.Recommendations), req.Workload)
	if err != nil {
		logger.Error("explain request failed", observability.Error(err))
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	logger.Info("explain request succeeded",
		observability.String("provider_used", result.ProviderUsed))

	writeJSON(ctx, w, http.StatusOK, result)
}

func summarizeRecommendations(recommendations []planner.Recommendation) string {
	var sb strings.Builder
	for _, rec := range recommendations {
		fmt.Fprintf(&sb, "%d. %s / %s: $%.2f/month ($%.2f per 1M tokens). %s\n",
			rec.Rank, rec.Platform, rec.Option,
			rec.MonthlyCostUSD, rec.CostPerMillionTokens, rec.Reasoning)
	}
	return sb.String()
}

// HandlePlatforms serves the read-only platform catalog.
func (h *Handler) HandlePlatforms(w http.ResponseWriter, r *http.Request) {
	platforms := make(map[string]catalog.Platform, len(h.catalog.PlatformKeys()))
	for _, key := range h.catalog.PlatformKeys() {
		platform, _ := h.catalog.Platform(key)
		platforms[key] = platform
	}
	writeJSON(r.Context(), w, http.StatusOK, platforms)
}

// HandleModels serves the read-only model requirement catalog.
func (h *Handler) HandleModels(w http.ResponseWriter, r *http.Request) {
	models := make(map[string]catalog.ModelRequirement, len(h.catalog.ModelKeys()))
	for _, key := range h.catalog.ModelKeys() {
		model, _ := h.catalog.Model(key)
		models[key] = model
	}
	writeJSON(r.Context(), w, http.StatusOK, models)
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	}); err != nil {
		// Already written status, can't change it, just log.
		return
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		observability.FromContext(ctx).Error("failed to encode response",
			observability.Error(err))
	}
}
