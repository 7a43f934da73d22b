// Package preview draws stage blueprints as terminal text for the generate
// command: a character map of the layout and a styled summary box.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/younwookim/neonrun/internal/application/stage"
	"github.com/younwookim/neonrun/internal/domain/entity"
	"github.com/younwookim/neonrun/internal/domain/geom"
)

// DefaultScale is the number of world pixels per character.
const DefaultScale = 20

var styleCells = map[entity.Style]Cell{
	entity.StyleBrick:   {'#', ToneBrick},
	entity.StyleStone:   {'=', ToneStone},
	entity.StyleNeon:    {'%', ToneNeon},
	entity.StyleCrystal: {'*', ToneCrystal},
	entity.StyleArena:   {'X', ToneArena},
}

var pickupCells = map[entity.PickupKind]Cell{
	entity.PickupCoin:       {'o', ToneCoin},
	entity.PickupDoubleJump: {'J', TonePowerUp},
	entity.PickupSword:      {'/', TonePowerUp},
	entity.PickupShield:     {')', TonePowerUp},
}

var (
	bouncyCell    = Cell{'^', ToneBouncy}
	moverCell     = Cell{'~', ToneMover}
	envelopeCell  = Cell{'.', ToneMover}
	walkerCell    = Cell{'w', ToneEnemy}
	shooterCell   = Cell{'S', ToneEnemy}
	bossCell      = Cell{'B', ToneBoss}
	regionCell    = Cell{',', ToneBoss}
	goalCell      = Cell{'G', ToneGoal}
	spawnCell     = Cell{'@', ToneSpawn}
	killPlaneCell = Cell{'_', ToneKillPlane}
)

// toneStyles maps tones to lipgloss styles.
var toneStyles = map[Tone]lipgloss.Style{
	ToneNone:      lipgloss.NewStyle(),
	ToneBrick:     lipgloss.NewStyle().Foreground(lipgloss.Color("166")),
	ToneStone:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	ToneNeon:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	ToneCrystal:   lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
	ToneArena:     lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
	ToneBouncy:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	ToneMover:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	ToneEnemy:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	ToneBoss:      lipgloss.NewStyle().Foreground(lipgloss.Color("197")).Bold(true),
	ToneCoin:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	TonePowerUp:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
	ToneGoal:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	ToneSpawn:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
	ToneKillPlane: lipgloss.NewStyle().Foreground(lipgloss.Color("52")),
}

// Bounds returns the world area a preview of bp covers: the whole stage
// length and everything from the highest object down to the kill plane.
func Bounds(bp *stage.Blueprint) geom.Rect {
	top := bp.Spawn().Y
	grow := func(r geom.Rect) { top = min(top, r.Y) }
	for _, p := range bp.Platforms() {
		grow(p.Rect)
	}
	for _, m := range bp.Movers() {
		grow(m.Envelope())
	}
	for _, s := range bp.Shooters() {
		grow(s.Rect)
	}
	for _, p := range bp.Pickups() {
		grow(p.Rect)
	}
	if b, ok := bp.Boss(); ok {
		grow(b.Region)
	}
	grow(bp.Goal())

	bottom := bp.KillPlaneY() + 1
	return geom.NewRect(0, top, bp.Length(), bottom-top)
}

// Rasterize draws bp onto a new canvas. Later layers overwrite earlier ones:
// boss region, mover envelopes, platforms, actors, pickups, goal, spawn.
func Rasterize(bp *stage.Blueprint, scale float64) *Canvas {
	c := NewCanvas(Bounds(bp), scale)

	if b, ok := bp.Boss(); ok {
		c.FillRect(b.Region, regionCell)
	}
	for _, m := range bp.Movers() {
		c.FillRect(m.Envelope(), envelopeCell)
	}
	for _, p := range bp.Platforms() {
		c.FillRect(p.Rect, styleCells[p.Style])
		if p.Bouncy {
			c.FillRect(geom.NewRect(p.Rect.X, p.Rect.Y, p.Rect.W, 1), bouncyCell)
		}
	}
	for _, m := range bp.Movers() {
		c.FillRect(m.Rect, moverCell)
	}
	for _, w := range bp.Walkers() {
		c.Mark(w.Rect, walkerCell)
	}
	for _, s := range bp.Shooters() {
		c.Mark(s.Rect, shooterCell)
	}
	if b, ok := bp.Boss(); ok {
		c.FillRect(b.Rect, bossCell)
	}
	for _, p := range bp.Pickups() {
		c.Mark(p.Rect, pickupCells[p.Kind])
	}
	c.FillRect(bp.Goal(), goalCell)

	x, y := c.CellOf(bp.Spawn())
	c.Set(x, y, spawnCell)
	c.HLine(bp.KillPlaneY(), killPlaneCell)
	return c
}

// Render converts a canvas to a styled string.
// Groups adjacent cells with the same tone to minimize ANSI escape sequences.
func Render(c *Canvas) string {
	var sb strings.Builder
	sb.Grow(c.Width()*c.Height()*2 + c.Height())

	for y := range c.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < c.Width() {
			tone := c.Get(x, y).Tone

			var run strings.Builder
			for x < c.Width() {
				cell := c.Get(x, y)
				if cell.Tone != tone {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := toneStyles[tone]
			if !ok {
				style = toneStyles[ToneNone]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Counts tallies the contents of a blueprint.
type Counts struct {
	Platforms int
	Spine     int
	Bouncy    int
	Movers    int
	Walkers   int
	Shooters  int
	Coins     int
	PowerUps  int
}

// Count tallies bp.
func Count(bp *stage.Blueprint) Counts {
	var n Counts
	for _, p := range bp.Platforms() {
		n.Platforms++
		if p.Spine {
			n.Spine++
		}
		if p.Bouncy {
			n.Bouncy++
		}
	}
	n.Movers = len(bp.Movers())
	n.Walkers = len(bp.Walkers())
	n.Shooters = len(bp.Shooters())
	n.Coins = bp.CoinCount()
	n.PowerUps = len(bp.Pickups()) - n.Coins
	return n
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("60")).Padding(0, 1)
)

// Summary returns a bordered box describing bp.
func Summary(bp *stage.Blueprint) string {
	n := Count(bp)
	row := func(label string, value any) string {
		return labelStyle.Render(fmt.Sprintf("%-10s", label)) + fmt.Sprint(value)
	}

	lines := []string{
		titleStyle.Render(fmt.Sprintf("Stage %d  %s", bp.Index(), bp.Kind())),
		row("theme", bp.Theme()),
		row("length", fmt.Sprintf("%.0f", bp.Length())),
		row("platforms", fmt.Sprintf("%d (spine %d, bouncy %d)", n.Platforms, n.Spine, n.Bouncy)),
		row("movers", n.Movers),
		row("walkers", n.Walkers),
		row("shooters", n.Shooters),
		row("coins", n.Coins),
		row("power-ups", n.PowerUps),
	}
	if b, ok := bp.Boss(); ok {
		lines = append(lines, row("boss", fmt.Sprintf("%d hp", b.Health)))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Legend explains the characters used by Rasterize.
func Legend() string {
	entries := []struct {
		cell Cell
		name string
	}{
		{styleCells[entity.StyleBrick], "platform"},
		{bouncyCell, "bounce pad"},
		{moverCell, "mover"},
		{envelopeCell, "mover path"},
		{walkerCell, "walker"},
		{shooterCell, "shooter"},
		{bossCell, "boss"},
		{pickupCells[entity.PickupCoin], "coin"},
		{pickupCells[entity.PickupDoubleJump], "double jump"},
		{pickupCells[entity.PickupSword], "sword"},
		{pickupCells[entity.PickupShield], "shield"},
		{goalCell, "goal"},
		{spawnCell, "spawn"},
		{killPlaneCell, "kill plane"},
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, toneStyles[e.cell.Tone].Render(string(e.cell.Rune))+" "+labelStyle.Render(e.name))
	}
	return strings.Join(parts, "  ")
}
