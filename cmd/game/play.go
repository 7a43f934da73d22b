package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/younwookim/neonrun/internal/application/game"
	"github.com/younwookim/neonrun/internal/application/replay"
	"github.com/younwookim/neonrun/internal/application/scene/playing"
)

func newPlayCmd(a *app) *cobra.Command {
	var record string
	var scale int

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a generated run",
		Long: `Open a window and play a run generated from --seed.

Controls:
  A/D, Left/Right  - Move
  Space/W/Up/Z     - Jump (again in the air for a double jump)
  J/X              - Fire a sword beam
  K/C              - Raise the shield
  W/S              - Walk in depth (secret room)
  F5               - Save the recording so far
  Esc              - Pause
  Enter            - Restart (after game over or victory)
  Q                - Quit (paused or finished)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if record == "-" {
				record = replay.GenerateFilename()
			}

			pack := a.generatePack(a.seed, a.stages)
			scene, err := playing.New(a.tuning, pack, a.seed, playing.Options{
				RecordPath: record,
				Logger:     a.logger,
			})
			if err != nil {
				return fmt.Errorf("failed to start run: %w", err)
			}

			d := a.tuning.Display
			ebiten.SetWindowSize(d.ScreenWidth*scale, d.ScreenHeight*scale)
			ebiten.SetWindowTitle(d.Title)
			ebiten.SetTPS(d.TPS)

			a.logger.Info("starting", "seed", a.seed, "stages", len(pack))
			if err := ebiten.RunGame(game.New(scene, d, a.logger)); err != nil {
				return fmt.Errorf("game loop: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&record, "record", "", `Record input to this file ("-" = timestamped name)`)
	cmd.Flags().IntVar(&scale, "scale", 1, "Window scale factor")
	return cmd
}
