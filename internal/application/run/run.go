// Package run strings a pack of stages into one playthrough with lives and score.
package run

import (
	"errors"

	"github.com/younwookim/neonrun/internal/application/levelgen"
	"github.com/younwookim/neonrun/internal/application/stage"
	"github.com/younwookim/neonrun/internal/application/system"
	"github.com/younwookim/neonrun/internal/domain/event"
	"github.com/younwookim/neonrun/internal/infrastructure/config"
)

// ErrEmptyPack is returned when a run is started without stages.
var ErrEmptyPack = errors.New("run needs at least one stage")

// Run owns the current stage instance and the run-wide counters.
// Score deltas arrive already multiplied by the combo and, for the goal,
// including the time bonus.
type Run struct {
	config *config.Tuning
	pack   []*stage.Blueprint
	seed   int64

	current *stage.Instance
	index   int
	lives   int
	score   int
	deaths  int

	over bool
	won  bool
}

// New starts a run at the first stage of pack.
func New(pack []*stage.Blueprint, cfg *config.Tuning, seed int64) (*Run, error) {
	if len(pack) == 0 {
		return nil, ErrEmptyPack
	}
	r := &Run{
		config: cfg,
		pack:   pack,
		seed:   seed,
		lives:  cfg.Run.Lives,
	}
	r.current = stage.NewInstance(pack[0], cfg, levelgen.StageSeed(seed, 0))
	return r, nil
}

// Tick advances the current stage and applies its outcomes to the run.
// The returned slice holds the stage events followed by any run events
// (LifeLost, GameOver, Victory) they caused.
func (r *Run) Tick(intent system.Intent, dt float64) []event.Event {
	if r.Finished() {
		return nil
	}

	events := r.current.Tick(intent, dt)
	n := len(events)
	for i := 0; i < n; i++ {
		e := events[i]
		switch e.Kind {
		case event.ScoreDelta:
			r.score += e.Amount
		case event.PlayerDied:
			events = append(events, r.loseLife(e)...)
		case event.StageCleared:
			if r.index == len(r.pack)-1 {
				events[i].Final = true
				r.won = true
				events = append(events, event.Event{Kind: event.Victory, Amount: r.score, Pos: e.Pos})
			} else {
				r.advance()
			}
		}
	}
	return events
}

func (r *Run) loseLife(died event.Event) []event.Event {
	r.lives--
	r.deaths++
	out := []event.Event{{Kind: event.LifeLost, Amount: r.lives, Cause: died.Cause, Pos: died.Pos}}
	if r.lives <= 0 {
		r.over = true
		return append(out, event.Event{Kind: event.GameOver, Amount: r.score, Pos: died.Pos})
	}
	r.current.Reset()
	return out
}

// advance moves to the next stage, carrying the player's charges over.
func (r *Run) advance() {
	charges := r.current.Charges()
	r.index++
	r.current = stage.NewInstance(r.pack[r.index], r.config, levelgen.StageSeed(r.seed, r.index))
	r.current.SetCharges(charges)
}

// Finished reports whether the run ended in game over or victory.
func (r *Run) Finished() bool {
	return r.over || r.won
}

func (r *Run) GameOver() bool { return r.over }
func (r *Run) Won() bool { return r.won }
func (r *Run) Score() int { return r.score }
func (r *Run) Lives() int { return r.lives }
func (r *Run) Deaths() int { return r.deaths }
func (r *Run) StageIndex() int { return r.index }
func (r *Run) StageCount() int { return len(r.pack) }

// Stage returns the live instance of the current stage.
func (r *Run) Stage() *stage.Instance {
	return r.current
}

// Snapshot returns the drawable state of the current stage.
func (r *Run) Snapshot() stage.Snapshot {
	return r.current.Snapshot()
}
