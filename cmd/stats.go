package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/roundtutor/internal/config"
	"github.com/abhisek/roundtutor/internal/llm"
	"github.com/abhisek/roundtutor/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics and LLM usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		repo := s.EventRepo()

		if err := printStageStats(ctx, repo); err != nil {
			return err
		}
		if err := printMisconceptions(ctx, repo); err != nil {
			return err
		}
		return printLLMUsage(ctx, repo)
	},
}

func printStageStats(ctx context.Context, repo store.EventRepo) error {
	stats, err := repo.StageAccuracy(ctx)
	if err != nil {
		return fmt.Errorf("query stage accuracy: %w", err)
	}
	if len(stats) == 0 {
		fmt.Println("No practice recorded yet.")
		return nil
	}

	fmt.Println("Accuracy by Stage")
	fmt.Println(strings.Repeat("─", 56))
	fmt.Printf("%-10s  %10s  %10s  %8s  %8s\n", "Stage", "Attempted", "Correct", "Rate", "Avg s")
	fmt.Println(strings.Repeat("─", 56))

	var attempted, correct int
	for _, st := range stats {
		rate := 0.0
		if st.Attempted > 0 {
			rate = float64(st.Correct) / float64(st.Attempted) * 100
		}
		fmt.Printf("%-10s  %10d  %10d  %7.0f%%  %8.1f\n",
			st.Stage, st.Attempted, st.Correct, rate, st.AvgResponseSeconds)
		attempted += st.Attempted
		correct += st.Correct
	}

	fmt.Println(strings.Repeat("─", 56))
	fmt.Printf("%-10s  %10d  %10d\n", "TOTAL", attempted, correct)
	return nil
}

func printMisconceptions(ctx context.Context, repo store.EventRepo) error {
	counts, err := repo.MisconceptionCounts(ctx)
	if err != nil {
		return fmt.Errorf("query misconceptions: %w", err)
	}
	if len(counts) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("Misconceptions")
	fmt.Println(strings.Repeat("─", 44))
	for _, c := range counts {
		fmt.Printf("%-36s  %4d\n", strings.ReplaceAll(c.Misconception, "_", " "), c.Count)
	}
	return nil
}

func printLLMUsage(ctx context.Context, repo store.EventRepo) error {
	usage, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		return fmt.Errorf("query llm usage: %w", err)
	}
	if len(usage) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("LLM Usage by Purpose")
	fmt.Println(strings.Repeat("─", 64))
	fmt.Printf("%-20s  %6s  %10s  %10s  %8s\n", "Purpose", "Calls", "Input", "Output", "Avg Ms")
	fmt.Println(strings.Repeat("─", 64))
	for _, u := range usage {
		fmt.Printf("%-20s  %6d  %10d  %10d  %8d\n",
			u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
	}

	modelUsage, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		return fmt.Errorf("query model usage: %w", err)
	}

	fmt.Println()
	fmt.Println("Estimated Cost (USD)")
	fmt.Println(strings.Repeat("─", 64))

	var totalCost float64
	var unknownModels []string
	for _, mu := range modelUsage {
		cost := llm.LookupCost(mu.Model)
		if cost == nil {
			unknownModels = append(unknownModels, mu.Model)
			fmt.Printf("%-32s  %6d  %9s\n", truncate(mu.Model, 32), mu.Calls, "?")
			continue
		}
		c := cost.Cost(mu.InputTokens, mu.OutputTokens)
		totalCost += c
		fmt.Printf("%-32s  %6d  %9s\n", truncate(mu.Model, 32), mu.Calls, formatCost(c))
	}

	label := "TOTAL"
	if len(unknownModels) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Println(strings.Repeat("─", 64))
	fmt.Printf("%-32s  %6s  %9s\n", label, "", formatCost(totalCost))

	if len(unknownModels) > 0 {
		fmt.Printf("\nPricing unavailable for: %s\n", strings.Join(unknownModels, ", "))
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
