package preview

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/neonrun/internal/application/levelgen"
	"github.com/younwookim/neonrun/internal/application/stage"
	"github.com/younwookim/neonrun/internal/domain/entity"
	"github.com/younwookim/neonrun/internal/domain/geom"
	"github.com/younwookim/neonrun/internal/infrastructure/config"
)

// createTestBlueprint lays everything out on a 20px grid so cells are exact.
func createTestBlueprint(t *testing.T) *stage.Blueprint {
	t.Helper()
	bp, err := stage.Freeze(stage.Layout{
		Platforms: []stage.PlatformSpec{
			{Rect: geom.NewRect(0, 500, 400, 20), Style: entity.StyleStone, Spine: true},
			{Rect: geom.NewRect(200, 400, 80, 20), Style: entity.StyleBrick, Bouncy: true, BounceVelocity: -20},
		},
		Movers: []stage.MoverSpec{
			{Rect: geom.NewRect(100, 300, 60, 20), MinX: 100, MaxX: 160, MinY: 300, MaxY: 300, SpeedX: 2},
		},
		Walkers: []stage.WalkerSpec{
			{Rect: geom.NewRect(300, 476, 24, 24), PatrolLeft: 280, PatrolRight: 380, Health: 1},
		},
		Pickups: []stage.PickupSpec{
			{Kind: entity.PickupCoin, Rect: geom.NewRect(150, 460, 20, 20)},
			{Kind: entity.PickupShield, Rect: geom.NewRect(60, 360, 20, 20)},
		},
		Goal:       geom.NewRect(360, 380, 40, 120),
		Spawn:      geom.Vec{X: 20, Y: 456},
		KillPlaneY: 600,
		Length:     400,
	})
	require.NoError(t, err)
	return bp
}

func TestBounds(t *testing.T) {
	b := Bounds(createTestBlueprint(t))
	assert.Equal(t, geom.NewRect(0, 300, 400, 301), b)
}

func TestRasterize(t *testing.T) {
	c := Rasterize(createTestBlueprint(t), DefaultScale)
	require.Equal(t, 20, c.Width())
	require.Equal(t, 16, c.Height())

	tests := []struct {
		name string
		x, y int
		want rune
	}{
		{"floor", 0, 10, '='},
		{"floor under goal", 19, 10, '='},
		{"bounce pad strip", 10, 5, '^'},
		{"mover body", 5, 0, '~'},
		{"mover path", 10, 0, '.'},
		{"walker", 15, 9, 'w'},
		{"coin", 8, 8, 'o'},
		{"shield", 3, 3, ')'},
		{"goal", 18, 4, 'G'},
		{"spawn", 1, 7, '@'},
		{"kill plane", 0, 15, '_'},
		{"empty air", 0, 2, ' '},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, string(tt.want), string(c.Get(tt.x, tt.y).Rune))
		})
	}
}

func TestCanvas_Bounds(t *testing.T) {
	c := NewCanvas(geom.NewRect(0, 0, 100, 40), 20)
	assert.Equal(t, 5, c.Width())
	assert.Equal(t, 2, c.Height())

	c.Set(-1, 0, Cell{Rune: 'x'})
	c.Set(5, 0, Cell{Rune: 'x'})
	assert.Equal(t, ' ', c.Get(-1, 0).Rune)
	assert.Equal(t, "     \n     ", c.Plain())

	// A rect smaller than a cell still paints one.
	c.FillRect(geom.NewRect(41, 21, 2, 2), Cell{Rune: 'x'})
	assert.Equal(t, "     \n  x  ", c.Plain())
}

func TestRender_PreservesLayout(t *testing.T) {
	c := Rasterize(createTestBlueprint(t), DefaultScale)
	lines := strings.Split(Render(c), "\n")
	require.Len(t, lines, c.Height())
	for _, line := range lines {
		assert.Equal(t, c.Width(), lipgloss.Width(line))
	}
}

func TestCountAndSummary(t *testing.T) {
	bp := createTestBlueprint(t)
	n := Count(bp)
	assert.Equal(t, Counts{Platforms: 2, Spine: 1, Bouncy: 1, Movers: 1, Walkers: 1, Coins: 1, PowerUps: 1}, n)

	s := Summary(bp)
	assert.Contains(t, s, "Stage 0")
	assert.Contains(t, s, "normal")
	assert.Contains(t, s, "(spine 1, bouncy 1)")
	assert.NotContains(t, s, "boss")
}

func TestRasterize_GeneratedPack(t *testing.T) {
	cfg := config.Default()
	pack := levelgen.New(cfg, nil).GeneratePack(77, cfg.Run.StageCount)

	for _, bp := range pack {
		t.Run(bp.Kind().String(), func(t *testing.T) {
			plain := Rasterize(bp, DefaultScale).Plain()
			assert.Equal(t, 1, strings.Count(plain, "@"), "stage %d", bp.Index())
			assert.Contains(t, plain, "G")
			if bp.Kind() == entity.LevelBoss {
				assert.Contains(t, plain, "B")
				assert.Contains(t, Summary(bp), "hp")
			}
		})
	}
}

func TestLegend(t *testing.T) {
	l := Legend()
	for _, name := range []string{"platform", "bounce pad", "walker", "coin", "goal", "kill plane"} {
		assert.Contains(t, l, name)
	}
}
