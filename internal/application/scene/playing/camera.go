package playing

import (
	"github.com/younwookim/neonrun/internal/application/stage"
	"github.com/younwookim/neonrun/internal/domain/geom"
)

// Camera returns the world position of the screen's top-left corner.
// It centers on the player and clamps to the stage: horizontally to
// [0, Length-screenW], vertically so the kill plane is the lowest visible row.
func Camera(snap stage.Snapshot, screenW, screenH int) geom.Vec {
	w, h := float64(screenW), float64(screenH)
	c := snap.Player.Rect.Center()

	x := geom.Clamp(c.X-w/2, 0, max(0, snap.Length-w))
	y := min(c.Y-h/2, snap.KillPlaneY-h)
	return geom.Vec{X: x, Y: y}
}
