package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/younwookim/neonrun/internal/application/stage"
	"github.com/younwookim/neonrun/internal/infrastructure/preview"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		index  int
		asYAML bool
		noMap  bool
		scale  float64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Preview generated stages",
		Long: `Generate the pack for --seed and print each stage as a character map
with a summary, or dump the layouts as YAML.

Examples:
  neonrun generate --seed 7
  neonrun generate --seed 7 --stage 5 --scale 10
  neonrun generate --seed 7 --yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if scale <= 0 {
				return fmt.Errorf("--scale must be positive, got %v", scale)
			}
			pack := a.generatePack(a.seed, a.stages)
			if index >= len(pack) {
				return fmt.Errorf("--stage %d out of range: the pack has %d stages", index, len(pack))
			}
			if index >= 0 {
				pack = pack[index : index+1]
			}

			out := cmd.OutOrStdout()
			if asYAML {
				return dumpYAML(cmd, a.seed, pack)
			}

			for _, bp := range pack {
				fmt.Fprintln(out, preview.Summary(bp))
				if !noMap {
					fmt.Fprintln(out, preview.Render(preview.Rasterize(bp, scale)))
				}
				fmt.Fprintln(out)
			}
			if !noMap {
				fmt.Fprintln(out, preview.Legend())
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&index, "stage", -1, "Only this stage index (-1 = all)")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Dump the layouts as YAML")
	cmd.Flags().BoolVar(&noMap, "no-map", false, "Print summaries only")
	cmd.Flags().Float64Var(&scale, "scale", preview.DefaultScale, "World pixels per character")
	return cmd
}

// packDump is the YAML document written by generate --yaml.
type packDump struct {
	Seed   int64          `yaml:"seed"`
	Stages []stage.Layout `yaml:"stages"`
}

func dumpYAML(cmd *cobra.Command, seed int64, pack []*stage.Blueprint) error {
	doc := packDump{Seed: seed, Stages: make([]stage.Layout, 0, len(pack))}
	for _, bp := range pack {
		doc.Stages = append(doc.Stages, bp.Layout())
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode layouts: %w", err)
	}
	return enc.Close()
}
