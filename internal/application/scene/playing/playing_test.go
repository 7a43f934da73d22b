package playing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/neonrun/internal/application/replay"
	"github.com/younwookim/neonrun/internal/application/run"
	"github.com/younwookim/neonrun/internal/application/scene"
	"github.com/younwookim/neonrun/internal/application/stage"
	"github.com/younwookim/neonrun/internal/application/state"
	"github.com/younwookim/neonrun/internal/domain/geom"
	"github.com/younwookim/neonrun/internal/infrastructure/config"
)

const frame = 1.0 / 60

// fakeKeys is a scripted keyboard.
type fakeKeys struct {
	held map[ebiten.Key]bool
	just map[ebiten.Key]bool
}

func newFakeKeys() *fakeKeys {
	return &fakeKeys{held: map[ebiten.Key]bool{}, just: map[ebiten.Key]bool{}}
}

func (k *fakeKeys) Pressed(key ebiten.Key) bool     { return k.held[key] }
func (k *fakeKeys) JustPressed(key ebiten.Key) bool { return k.just[key] }

// tap reports key as just pressed for the next update only.
func (k *fakeKeys) tap(p *Playing, key ebiten.Key) (scene.Scene, error) {
	k.just[key] = true
	defer delete(k.just, key)
	return p.Update(frame)
}

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

// createFloorStage is a long floor with the goal far away.
func createFloorStage(t *testing.T) *stage.Blueprint {
	t.Helper()
	bp, err := stage.Freeze(stage.Layout{
		Platforms:  []stage.PlatformSpec{{Rect: geom.NewRect(0, 500, 3000, 24), Spine: true}},
		Goal:       geom.NewRect(2800, 380, 40, 120),
		Spawn:      geom.Vec{X: 40, Y: 456},
		KillPlaneY: 724,
		Length:     3000,
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

func createPlaying(t *testing.T, pack []*stage.Blueprint, opts Options) (*Playing, *fakeKeys) {
	t.Helper()
	keys := newFakeKeys()
	opts.Keys = keys
	p, err := New(config.Default(), pack, 11, opts)
	require.NoError(t, err)
	return p, keys
}

func TestPlaying_ImplementsScene(t *testing.T) {
	var _ scene.Scene = (*Playing)(nil)
}

func TestNew_EmptyPack(t *testing.T) {
	p, err := New(config.Default(), nil, 1, Options{Keys: newFakeKeys()})
	assert.ErrorIs(t, err, run.ErrEmptyPack)
	assert.Nil(t, p)
}

func TestPlaying_UpdateTicksRun(t *testing.T) {
	p, keys := createPlaying(t, []*stage.Blueprint{createFloorStage(t)}, Options{})
	keys.held[ebiten.KeyD] = true

	for range 30 {
		next, err := p.Update(frame)
		require.NoError(t, err)
		assert.Nil(t, next, "Should return nil when continuing to play")
	}

	assert.Equal(t, state.StatePlaying, p.State())
	assert.InDelta(t, 30*frame, p.Run().Stage().Elapsed(), 1e-9)
	assert.Greater(t, p.Run().Snapshot().Player.Rect.X, 40.0)
}

func TestPlaying_Pause(t *testing.T) {
	p, keys := createPlaying(t, []*stage.Blueprint{createFloorStage(t)}, Options{})

	_, err := p.Update(frame)
	require.NoError(t, err)
	elapsed := p.Run().Stage().Elapsed()

	_, err = keys.tap(p, ebiten.KeyEscape)
	require.NoError(t, err)
	assert.Equal(t, state.StatePaused, p.State())

	for range 10 {
		_, err = p.Update(frame)
		require.NoError(t, err)
	}
	assert.Equal(t, elapsed, p.Run().Stage().Elapsed(), "paused scene does not tick")

	_, err = keys.tap(p, ebiten.KeyEscape)
	require.NoError(t, err)
	assert.Equal(t, state.StatePlaying, p.State())

	_, err = keys.tap(p, ebiten.KeyEscape)
	require.NoError(t, err)
	_, err = keys.tap(p, ebiten.KeyQ)
	assert.ErrorIs(t, err, scene.ErrQuit)
}

func TestPlaying_StageClearBanner(t *testing.T) {
	p, _ := createPlaying(t, []*stage.Blueprint{createGoalStage(t, 0), createGoalStage(t, 1)}, Options{})

	_, err := p.Update(frame)
	require.NoError(t, err)
	assert.Equal(t, state.StateStageClear, p.State())
	assert.Equal(t, 1, p.Run().StageIndex())

	for i := 0; i < int(bannerDuration/frame)+2 && p.State() == state.StateStageClear; i++ {
		_, err = p.Update(frame)
		require.NoError(t, err)
	}
	assert.Equal(t, state.StatePlaying, p.State())

	_, err = p.Update(frame)
	require.NoError(t, err)
	assert.Equal(t, state.StateVictory, p.State())
	assert.True(t, p.Run().Won())
}

func TestPlaying_GameOverAndRestart(t *testing.T) {
	p, keys := createPlaying(t, []*stage.Blueprint{createPitStage(t)}, Options{})

	for i := 0; i < 2000 && p.State() != state.StateGameOver; i++ {
		_, err := p.Update(frame)
		require.NoError(t, err)
	}
	require.Equal(t, state.StateGameOver, p.State())
	assert.Zero(t, p.Run().Lives())

	_, err := keys.tap(p, ebiten.KeyEnter)
	require.NoError(t, err)
	assert.Equal(t, state.StatePlaying, p.State())
	assert.Equal(t, config.Default().Run.Lives, p.Run().Lives())
	assert.Zero(t, p.Run().Deaths())
}

func TestPlaying_Recording(t *testing.T) {
	path := filepath.Join(t.TempDir(), "play.json")
	p, keys := createPlaying(t, []*stage.Blueprint{createFloorStage(t)}, Options{RecordPath: path})
	require.NotNil(t, p.recorder)

	keys.held[ebiten.KeyD] = true
	for range 3 {
		_, err := p.Update(frame)
		require.NoError(t, err)
	}
	_, err := keys.tap(p, ebiten.KeyEscape)
	require.NoError(t, err)
	assert.Equal(t, 3, p.recorder.FrameCount(), "paused frames are not recorded")

	p.OnExit()
	assert.False(t, p.recorder.IsRecording())

	data, err := replay.LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, int64(11), data.Seed)
	assert.Equal(t, 1, data.Stages)
	require.Len(t, data.Frames, 3)
	assert.True(t, data.Frames[0].R)
}

func TestPlaying_OnExitWithoutFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	p, _ := createPlaying(t, []*stage.Blueprint{createFloorStage(t)}, Options{RecordPath: path})

	assert.NotPanics(t, p.OnEnter)
	assert.NotPanics(t, p.OnExit)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "nothing written without frames")
}

func TestCamera(t *testing.T) {
	snapAt := func(x, y float64) stage.Snapshot {
		return stage.Snapshot{
			Player:     stage.PlayerView{Rect: geom.NewRect(x, y, 20, 40)},
			Length:     2000,
			KillPlaneY: 800,
		}
	}

	tests := []struct {
		name string
		snap stage.Snapshot
		want geom.Vec
	}{
		{"clamped at the left edge", snapAt(40, 400), geom.Vec{X: 0, Y: 120}},
		{"centered mid-stage", snapAt(990, 280), geom.Vec{X: 600, Y: 0}},
		{"clamped at the right edge", snapAt(1950, 280), geom.Vec{X: 1200, Y: 0}},
		{"never below the kill plane", snapAt(990, 700), geom.Vec{X: 600, Y: 200}},
		{"follows upward", snapAt(990, -100), geom.Vec{X: 600, Y: -380}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Camera(tt.snap, 800, 600)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
		})
	}
}

func TestCamera_ShortStage(t *testing.T) {
	snap := stage.Snapshot{
		Player:     stage.PlayerView{Rect: geom.NewRect(300, 200, 20, 40)},
		Length:     500,
		KillPlaneY: 900,
	}
	assert.Zero(t, Camera(snap, 800, 600).X)
}
