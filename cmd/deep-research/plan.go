package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/deep-research/internal/planner"
)

var planCmd = &cobra.Command{
	Use:   "plan [question]",
	Short: "Preview the query plan for a question without any network calls",
	Long: `Plan extracts concepts from the question, selects research strategies
(` + strings.Join(planner.StrategyNames(), ", ") + `), and prints the
deduplicated query sequence that research would execute. No API key is
needed and nothing is stored.`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().Int("max-queries", 0, "maximum planned queries (default 5, ceiling 20)")
	planCmd.Flags().Bool("json", false, "output the plan as JSON")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a research question")
	}
	question := strings.Join(args, " ")

	maxQueries, _ := cmd.Flags().GetInt("max-queries")
	plan := planner.Build(question, maxQueries)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	}

	fmt.Printf("Question: %s\n", plan.Question)
	if plan.Concepts.PrimaryTerm != "" {
		fmt.Printf("Primary term: %s\n", plan.Concepts.PrimaryTerm)
	}
	fmt.Printf("Strategies: %s\n\n", strings.Join(plan.Strategies, ", "))
	for i, query := range plan.Queries {
		fmt.Printf("%2d. %s\n", i+1, query)
	}
	return nil
}
