// neonrun is a 2D platformer with procedurally generated stages.
//
// Usage:
//
//	neonrun play                 - Play a generated run in a window
//	neonrun generate             - Preview generated stages in the terminal
//	neonrun replay <file>        - Replay a recording headlessly
//
// Global flags:
//
//	--seed <value>      - Seed for stage generation (0 = random based on time)
//	--stages <n>        - Stages per run (0 = tuning default)
//	--config <dir>      - Directory holding a tuning.yaml override
//	--log-level <level> - debug, info, warn or error
package main

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/younwookim/neonrun/internal/application/levelgen"
	"github.com/younwookim/neonrun/internal/application/stage"
	"github.com/younwookim/neonrun/internal/infrastructure/config"
)

//go:embed configs/tuning.yaml
var configFS embed.FS

// app holds the global flags and what the root command builds from them.
type app struct {
	seed     int64
	stages   int
	config   string
	logLevel string

	tuning *config.Tuning
	logger *log.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "neonrun",
		Short: "Neon Run - a procedurally generated platformer",
		Long: `Neon Run strings generated stages into a run: normal stages with a
guaranteed route, a boss arena and a planar secret room.

Examples:
  neonrun play --seed 42
  neonrun play --record run.json
  neonrun generate --seed 42 --stage 5
  neonrun generate --seed 42 --yaml > pack.yaml
  neonrun replay run.json`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().Int64Var(&a.seed, "seed", 0, "Generation seed (0 = random based on time)")
	root.PersistentFlags().IntVar(&a.stages, "stages", 0, "Stages per run (0 = tuning default)")
	root.PersistentFlags().StringVar(&a.config, "config", "", "Directory with a tuning.yaml override (default: built-in)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	root.AddCommand(newPlayCmd(a))
	root.AddCommand(newGenerateCmd(a))
	root.AddCommand(newReplayCmd(a))
	return root
}

// setup builds the logger and tuning shared by every subcommand.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(a.logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	a.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		ReportTimestamp: true,
		Prefix:          "neonrun",
		Level:           level,
	})

	a.tuning, err = loadTuning(a.config)
	if err != nil {
		return err
	}
	if a.seed == 0 {
		a.seed = time.Now().UnixNano()
	}
	if a.stages <= 0 {
		a.stages = a.tuning.Run.StageCount
	}
	a.logger.Debug("configured", "seed", a.seed, "stages", a.stages, "config", a.configSource())
	return nil
}

func (a *app) configSource() string {
	if a.config == "" {
		return "built-in"
	}
	return a.config
}

// loadTuning reads dir/tuning.yaml, or the embedded copy when dir is empty.
func loadTuning(dir string) (*config.Tuning, error) {
	if dir != "" {
		return config.NewLoader(dir).LoadTuning()
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs").LoadTuning()
}

// generatePack builds the pack for seed with the app's tuning.
func (a *app) generatePack(seed int64, stages int) []*stage.Blueprint {
	return levelgen.New(a.tuning, a.logger).GeneratePack(seed, stages)
}
