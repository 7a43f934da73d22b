package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/younwookim/neonrun/internal/application/replay"
	"github.com/younwookim/neonrun/internal/application/run"
	"github.com/younwookim/neonrun/internal/domain/entity"
	"github.com/younwookim/neonrun/internal/domain/event"
)

// loggedEvents are the events replay reports while playing back.
var loggedEvents = map[event.Kind]bool{
	event.LifeLost:     true,
	event.StageCleared: true,
	event.BossDefeated: true,
	event.GameOver:     true,
	event.Victory:      true,
}

func newReplayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <file>",
		Short: "Replay a recording headlessly",
		Long: `Regenerate the pack a recording was made on and feed it the recorded
input, then print the outcome. The tuning must match the one used while
recording; --seed and --stages are ignored in favor of the recording's.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := replay.LoadReplay(args[0])
			if err != nil {
				return err
			}

			pack := a.generatePack(data.Seed, data.Stages)
			r, err := run.New(pack, a.tuning, data.Seed)
			if err != nil {
				return fmt.Errorf("failed to start run: %w", err)
			}

			a.logger.Info("replaying", "file", args[0], "seed", data.Seed, "stages", data.Stages, "frames", len(data.Frames))
			coins := 0
			sum := replay.Play(r, replay.NewReplayer(*data), func(frame int, e event.Event) {
				if e.Kind == event.Collected && e.Item == entity.PickupCoin.String() {
					coins++
				}
				if loggedEvents[e.Kind] {
					a.logger.Info(e.Kind.String(), "frame", frame, "stage", r.StageIndex(), "amount", e.Amount)
				}
			})

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "result: %s\n", outcome(r))
			fmt.Fprintf(out, "frames: %d/%d\n", sum.Frames, len(data.Frames))
			fmt.Fprintf(out, "stage: %d/%d\n", r.StageIndex()+1, r.StageCount())
			fmt.Fprintf(out, "score: %d\n", r.Score())
			fmt.Fprintf(out, "lives: %d\n", r.Lives())
			fmt.Fprintf(out, "deaths: %d\n", r.Deaths())
			fmt.Fprintf(out, "jumps: %d\n", sum.Events[event.Jumped]+sum.Events[event.DoubleJumped])
			fmt.Fprintf(out, "coins: %d\n", coins)
			return nil
		},
	}
}

func outcome(r *run.Run) string {
	switch {
	case r.Won():
		return "victory"
	case r.GameOver():
		return "game over"
	default:
		return "unfinished"
	}
}
