package run

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/neonrun/internal/application/stage"
	"github.com/younwookim/neonrun/internal/application/system"
	"github.com/younwookim/neonrun/internal/domain/entity"
	"github.com/younwookim/neonrun/internal/domain/event"
	"github.com/younwookim/neonrun/internal/domain/geom"
	"github.com/younwookim/neonrun/internal/infrastructure/config"
)

const frame = 1.0 / 60

// createGoalStage is a stage whose spawn already touches an active goal.
func createGoalStage(t *testing.T, index int) *stage.Blueprint {
	t.Helper()
	bp, err := stage.Freeze(stage.Layout{
		Index:      index,
		Platforms:  []stage.PlatformSpec{{Rect: geom.NewRect(0, 500, 400, 24), Spine: true}},
		Goal:       geom.NewRect(60, 380, 40, 120),
		Spawn:      geom.Vec{X: 40, Y: 456},
		KillPlaneY: 724,
		Length:     600,
	})
	require.NoError(t, err)
	return bp
}

// createPitStage drops the player straight onto the kill plane.
func createPitStage(t *testing.T) *stage.Blueprint {
	t.Helper()
	bp, err := stage.Freeze(stage.Layout{
		Platforms:  []stage.PlatformSpec{{Rect: geom.NewRect(800, 500, 200, 24), Spine: true}},
		Goal:       geom.NewRect(900, 380, 40, 120),
		Spawn:      geom.Vec{X: 40, Y: 400},
		KillPlaneY: 520,
		Length:     1200,
	})
	require.NoError(t, err)
	return bp
}

func tickUntil(r *Run, limit int, kind event.Kind) ([]event.Event, bool) {
	for range limit {
		events := r.Tick(system.Intent{}, frame)
		if event.Has(events, kind) {
			return events, true
		}
	}
	return nil, false
}

func TestNew_EmptyPack(t *testing.T) {
	r, err := New(nil, config.Default(), 1)
	assert.ErrorIs(t, err, ErrEmptyPack)
	assert.Nil(t, r)
}

func TestRun_LivesAndGameOver(t *testing.T) {
	cfg := config.Default()
	r, err := New([]*stage.Blueprint{createPitStage(t)}, cfg, 1)
	require.NoError(t, err)

	for want := cfg.Run.Lives - 1; want >= 0; want-- {
		events, ok := tickUntil(r, 200, event.LifeLost)
		require.True(t, ok)

		var lost event.Event
		for _, e := range events {
			if e.Kind == event.LifeLost {
				lost = e
			}
		}
		assert.Equal(t, want, lost.Amount)
		assert.Equal(t, event.CauseFall, lost.Cause)
		assert.Equal(t, want, r.Lives())

		if want > 0 {
			assert.False(t, r.Finished())
			assert.False(t, r.Stage().Done(), "stage re-cloned after a death")
		} else {
			assert.True(t, event.Has(events, event.GameOver))
		}
	}

	assert.True(t, r.GameOver())
	assert.True(t, r.Finished())
	assert.Equal(t, cfg.Run.Lives, r.Deaths())
	assert.Nil(t, r.Tick(system.Intent{}, frame))
}

func TestRun_AdvanceAndVictory(t *testing.T) {
	cfg := config.Default()
	pack := []*stage.Blueprint{createGoalStage(t, 0), createGoalStage(t, 1)}
	r, err := New(pack, cfg, 1)
	require.NoError(t, err)
	r.Stage().SetCharges(stage.Charges{Sword: 2})

	bonus := int(cfg.Scoring.TimeBonusBase - frame*cfg.Scoring.TimeBonusRate)
	stageScore := cfg.Scoring.Goal + bonus

	events := r.Tick(system.Intent{}, frame)
	require.True(t, event.Has(events, event.StageCleared))
	assert.False(t, event.Has(events, event.Victory))
	assert.Equal(t, 1, r.StageIndex())
	assert.Equal(t, stageScore, r.Score())
	assert.Equal(t, 2, r.Stage().Charges().Sword, "charges carried into the next stage")

	events = r.Tick(system.Intent{}, frame)
	require.True(t, event.Has(events, event.Victory))
	for _, e := range events {
		if e.Kind == event.StageCleared {
			assert.True(t, e.Final)
		}
	}
	assert.True(t, r.Won())
	assert.False(t, r.GameOver())
	assert.Equal(t, 2*stageScore, r.Score())
	assert.Equal(t, 2, r.StageCount())
}

func TestRun_ScoreFromPickups(t *testing.T) {
	cfg := config.Default()
	l := createGoalStage(t, 0).Layout()
	l.Goal = geom.NewRect(300, 380, 40, 120)
	l.Pickups = []stage.PickupSpec{{Kind: entity.PickupCoin, Rect: geom.NewRect(60, 460, 24, 24)}}
	bp, err := stage.Freeze(l)
	require.NoError(t, err)

	r, err := New([]*stage.Blueprint{bp}, cfg, 1)
	require.NoError(t, err)

	r.Tick(system.Intent{}, frame)
	assert.Equal(t, cfg.Scoring.Coin, r.Score())
	assert.Equal(t, 0, r.Snapshot().RemainingCoins)
}
