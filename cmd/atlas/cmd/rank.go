package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inferenceatlas/atlas/cmd/atlas/format"
	"github.com/inferenceatlas/atlas/internal/catalog"
	"github.com/inferenceatlas/atlas/internal/planner"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank hosting platforms by monthly cost for a workload",
	Long: `Rank every platform and GPU option in the built-in catalog for a workload,
cheapest risk-adjusted option first.

Examples:
  atlas rank --tokens-per-day 50000000 --pattern business_hours --model llama_70b
  atlas rank --tokens-per-day 50000000 --pattern bursty --model llama_8b --latency-ms 200 -o json`,
	RunE: runRank,
}

var (
	rankTokensPerDay float64
	rankPattern      string
	rankModel        string
	rankLatencyMS    float64
	rankTopK         int
)

func init() {
	rankCmd.Flags().Float64Var(&rankTokensPerDay, "tokens-per-day", 0, "Tokens processed per day (required)")
	rankCmd.Flags().StringVar(&rankPattern, "pattern", "steady", "Traffic pattern: "+strings.Join(planner.TrafficPatternNames(), ", "))
	rankCmd.Flags().StringVar(&rankModel, "model", "", "Model key, e.g. llama_70b (required)")
	rankCmd.Flags().Float64Var(&rankLatencyMS, "latency-ms", 0, "Latency requirement in milliseconds (0 = none)")
	rankCmd.Flags().IntVar(&rankTopK, "top-k", 3, "Number of recommendations to return")
	_ = rankCmd.MarkFlagRequired("tokens-per-day")
	_ = rankCmd.MarkFlagRequired("model")
	RootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	req := planner.WorkloadRequest{
		TokensPerDay: rankTokensPerDay,
		Pattern:      rankPattern,
		ModelKey:     rankModel,
		TopK:         rankTopK,
	}
	if rankLatencyMS > 0 {
		req.LatencyRequirementMS = &rankLatencyMS
	}

	recommendations, err := planner.Recommend(catalog.Default(), req)
	if err != nil {
		return err
	}

	if getFormat() == format.FormatJSON {
		return format.JSON(recommendations)
	}

	format.Table(rankHeaders(), rankRows(recommendations))
	fmt.Fprintf(os.Stderr, "\n%d option(s) ranked\n", len(recommendations))
	return nil
}

func rankHeaders() []string {
	return []string{"Rank", "Platform", "Option", "Monthly Cost", "$/M tokens", "Util%", "Idle%", "Reasoning"}
}

func rankRows(recommendations []planner.Recommendation) [][]string {
	rows := make([][]string, len(recommendations))
	for i, rec := range recommendations {
		rows[i] = []string{
			fmt.Sprintf("%d", rec.Rank),
			rec.Platform,
			rec.Option,
			fmt.Sprintf("$%.2f", rec.MonthlyCostUSD),
			fmt.Sprintf("$%.2f", rec.CostPerMillionTokens),
			fmt.Sprintf("%.0f", rec.UtilizationPct),
			fmt.Sprintf("%.0f", rec.IdleWastePct),
			rec.Reasoning,
		}
	}
	return rows
}
