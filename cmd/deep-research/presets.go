package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/deep-research/internal/verify"
)

var presetDescriptions = map[string]string{
	"strict":    "high verification bars for claims needing strong sourcing",
	"balanced":  "default trade-off between rigor and recall",
	"lenient":   "permissive scoring for exploratory questions",
	"fast":      "fewer claims analyzed per answer, for quick passes",
	"etymology": "tuned for word-origin research against linguistic sources",
}

var presetsCmd = &cobra.Command{
	Use:   "presets [name]",
	Short: "List verification presets or show one preset's parameters",
	Long: `Presets lists the named verification presets. With a preset name it
prints that preset's full parameter set as YAML; any of those parameters
can be overridden per run with research --set path=value.`,
	RunE: runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		for _, name := range verify.PresetNames() {
			fmt.Printf("%-10s  %s\n", name, presetDescriptions[name])
		}
		return nil
	}

	cfg, err := verify.Load(strings.ToLower(args[0]))
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(cfg)
}
