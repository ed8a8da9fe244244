package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/inferenceatlas/atlas/cmd/atlas/format"
	"github.com/inferenceatlas/atlas/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the built-in platform and model catalog",
}

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List cataloged hosting platforms and their options",
	RunE:  runPlatforms,
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List cataloged models and their memory requirements",
	RunE:  runModels,
}

func init() {
	catalogCmd.AddCommand(platformsCmd)
	catalogCmd.AddCommand(modelsCmd)
	RootCmd.AddCommand(catalogCmd)
}

func runPlatforms(cmd *cobra.Command, args []string) error {
	cat := catalog.Default()

	if getFormat() == format.FormatJSON {
		platforms := make(map[string]catalog.Platform, len(cat.PlatformKeys()))
		for _, key := range cat.PlatformKeys() {
			platform, _ := cat.Platform(key)
			platforms[key] = platform
		}
		return format.JSON(platforms)
	}

	format.Table([]string{"Platform", "Billing", "Option", "Rate", "Memory"}, platformRows(cat))
	return nil
}

// platformRows flattens the catalog into table rows in a stable order:
// sorted platform keys, then sorted option keys within each platform.
func platformRows(cat catalog.Catalog) [][]string {
	var rows [][]string
	for _, key := range cat.PlatformKeys() {
		platform, _ := cat.Platform(key)

		if platform.Billing.IsPerToken() {
			modelKeys := make([]string, 0, len(platform.Models))
			for modelKey := range platform.Models {
				modelKeys = append(modelKeys, modelKey)
			}
			sort.Strings(modelKeys)
			for _, modelKey := range modelKeys {
				rows = append(rows, []string{
					key, string(platform.Billing), modelKey,
					fmt.Sprintf("$%.2f/M tokens", platform.Models[modelKey].PricePerMillionTokens), "-",
				})
			}
			continue
		}

		for _, gpuKey := range platform.GPUKeys() {
			gpu := platform.GPUs[gpuKey]
			rows = append(rows, []string{
				key, string(platform.Billing), gpu.Name,
				fmt.Sprintf("$%.2f/hr", gpu.HourlyRate),
				fmt.Sprintf("%dGB", gpu.MemoryGB),
			})
		}
	}
	return rows
}

func runModels(cmd *cobra.Command, args []string) error {
	cat := catalog.Default()

	if getFormat() == format.FormatJSON {
		models := make(map[string]catalog.ModelRequirement, len(cat.ModelKeys()))
		for _, key := range cat.ModelKeys() {
			model, _ := cat.Model(key)
			models[key] = model
		}
		return format.JSON(models)
	}

	var rows [][]string
	for _, key := range cat.ModelKeys() {
		model, _ := cat.Model(key)
		rows = append(rows, []string{
			key,
			model.DisplayName,
			fmt.Sprintf("%.0fB", float64(model.ParameterCount)/1e9),
			fmt.Sprintf("%dGB", model.RecommendedMemoryGB),
		})
	}

	format.Table([]string{"Key", "Model", "Params", "Recommended Memory"}, rows)
	return nil
}
