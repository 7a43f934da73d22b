package preview

import (
	"math"
	"strings"

	"github.com/younwookim/neonrun/internal/domain/geom"
)

// Tone is the color class of a cell.
type Tone uint8

const (
	ToneNone Tone = iota
	ToneBrick
	ToneStone
	ToneNeon
	ToneCrystal
	ToneArena
	ToneBouncy
	ToneMover
	ToneEnemy
	ToneBoss
	ToneCoin
	TonePowerUp
	ToneGoal
	ToneSpawn
	ToneKillPlane
)

// Cell is one character of the preview.
type Cell struct {
	Rune rune
	Tone Tone
}

// Canvas is a character grid covering a world rectangle at a fixed scale:
// each cell stands for Scale x Scale world pixels.
type Canvas struct {
	width  int
	height int
	origin geom.Vec
	scale  float64
	cells  [][]Cell
}

// NewCanvas creates a canvas covering world at scale pixels per cell.
func NewCanvas(world geom.Rect, scale float64) *Canvas {
	c := &Canvas{
		width:  max(1, int(math.Ceil(world.W/scale))),
		height: max(1, int(math.Ceil(world.H/scale))),
		origin: geom.Vec{X: world.X, Y: world.Y},
		scale:  scale,
	}
	c.cells = make([][]Cell, c.height)
	for y := range c.cells {
		c.cells[y] = make([]Cell, c.width)
		for x := range c.cells[y] {
			c.cells[y][x] = Cell{Rune: ' '}
		}
	}
	return c
}

// Width returns the canvas width in characters.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in characters.
func (c *Canvas) Height() int {
	return c.height
}

// Set places a cell. Out-of-bounds coordinates are silently ignored.
func (c *Canvas) Set(x, y int, cell Cell) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y][x] = cell
}

// Get returns the cell at the given position, a blank for out-of-bounds.
func (c *Canvas) Get(x, y int) Cell {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Cell{Rune: ' '}
	}
	return c.cells[y][x]
}

// CellOf maps a world point to its cell.
func (c *Canvas) CellOf(p geom.Vec) (int, int) {
	return int(math.Floor((p.X - c.origin.X) / c.scale)), int(math.Floor((p.Y - c.origin.Y) / c.scale))
}

// FillRect covers every cell the world rect touches; a rect smaller than a
// cell still paints one.
func (c *Canvas) FillRect(r geom.Rect, cell Cell) {
	x0, y0 := c.CellOf(geom.Vec{X: r.X, Y: r.Y})
	x1 := int(math.Ceil((r.Right() - c.origin.X) / c.scale))
	y1 := int(math.Ceil((r.Bottom() - c.origin.Y) / c.scale))
	x1 = max(x1, x0+1)
	y1 = max(y1, y0+1)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.Set(x, y, cell)
		}
	}
}

// Mark places a single cell at the center of r.
func (c *Canvas) Mark(r geom.Rect, cell Cell) {
	x, y := c.CellOf(r.Center())
	c.Set(x, y, cell)
}

// HLine paints a full-width row at world height y.
func (c *Canvas) HLine(y float64, cell Cell) {
	_, row := c.CellOf(geom.Vec{X: c.origin.X, Y: y})
	for x := range c.width {
		if c.Get(x, row).Tone == ToneNone {
			c.Set(x, row, cell)
		}
	}
}

// Plain returns the canvas as unstyled text.
func (c *Canvas) Plain() string {
	var sb strings.Builder
	sb.Grow((c.width + 1) * c.height)
	for y := range c.height {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := range c.width {
			sb.WriteRune(c.cells[y][x].Rune)
		}
	}
	return sb.String()
}
