package entity

import "github.com/younwookim/neonrun/internal/domain/geom"

// Style is a cosmetic tag the presentation layer maps to colors.
type Style uint8

const (
	StyleBrick Style = iota
	StyleStone
	StyleNeon
	StyleCrystal
	StyleArena
)

// Solid is anything the player body collides with.
// Static platforms report a zero displacement; kinematic ones report the
// distance they travelled during their last update so riders can be carried.
type Solid interface {
	Bounds() geom.Rect
	Displacement() geom.Vec
	// Bounce returns the (negative) launch velocity for bounce pads.
	Bounce() (velocity float64, ok bool)
}

// Platform is a static solid rectangle.
type Platform struct {
	Rect           geom.Rect
	Bouncy         bool
	BounceVelocity float64
	Style          Style
}

// NewPlatform creates a static platform.
func NewPlatform(x, y, w, h float64, style Style) *Platform {
	return &Platform{Rect: geom.NewRect(x, y, w, h), Style: style}
}

// Bounds returns the platform rectangle.
func (p *Platform) Bounds() geom.Rect {
	return p.Rect
}

// Displacement is always zero for a static platform.
func (p *Platform) Displacement() geom.Vec {
	return geom.Vec{}
}

// Bounce reports the launch velocity if this platform is a bounce pad.
func (p *Platform) Bounce() (float64, bool) {
	return p.BounceVelocity, p.Bouncy
}

// MakeBouncy turns the platform into a bounce pad.
func (p *Platform) MakeBouncy(velocity float64) {
	p.Bouncy = true
	p.BounceVelocity = velocity
}

// KinematicPlatform patrols along closed intervals on one or both axes.
// MinX/MaxX and MinY/MaxY bound the top-left corner.
type KinematicPlatform struct {
	Platform

	MinX, MaxX float64
	MinY, MaxY float64
	SpeedX     float64 // pixels per frame, 0 = axis inactive
	SpeedY     float64
	DirX, DirY float64 // -1 or +1

	LastMove geom.Vec // Realized displacement of the last update
}

// NewHorizontalMover creates a platform patrolling x in [minX, maxX].
func NewHorizontalMover(x, y, w, h, minX, maxX, speed float64, style Style) *KinematicPlatform {
	return &KinematicPlatform{
		Platform: Platform{Rect: geom.NewRect(x, y, w, h), Style: style},
		MinX:     minX,
		MaxX:     maxX,
		MinY:     y,
		MaxY:     y,
		SpeedX:   speed,
		DirX:     1,
		DirY:     1,
	}
}

// NewVerticalMover creates a platform patrolling y in [minY, maxY].
func NewVerticalMover(x, y, w, h, minY, maxY, speed float64, style Style) *KinematicPlatform {
	return &KinematicPlatform{
		Platform: Platform{Rect: geom.NewRect(x, y, w, h), Style: style},
		MinX:     x,
		MaxX:     x,
		MinY:     minY,
		MaxY:     maxY,
		SpeedY:   speed,
		DirX:     1,
		DirY:     -1,
	}
}

// Displacement returns the movement realized by the last Update.
func (k *KinematicPlatform) Displacement() geom.Vec {
	return k.LastMove
}

// Envelope returns the area swept by the platform over its whole patrol.
func (k *KinematicPlatform) Envelope() geom.Rect {
	lo := geom.NewRect(k.MinX, k.MinY, k.Rect.W, k.Rect.H)
	hi := geom.NewRect(k.MaxX, k.MaxY, k.Rect.W, k.Rect.H)
	return lo.Union(hi)
}

// Update advances the platform by speed*dir*scale on each active axis.
// Reaching a bound clamps the position there and flips that axis.
// If the candidate position overlaps any obstacle the platform stays put,
// reverses both active axes and reports a zero displacement.
func (k *KinematicPlatform) Update(scale float64, obstacles []Solid) {
	k.LastMove = geom.Vec{}

	cand := k.Rect
	dirX, dirY := k.DirX, k.DirY

	if k.SpeedX != 0 {
		cand.X += k.SpeedX * dirX * scale
		if cand.X <= k.MinX {
			cand.X = k.MinX
			dirX = 1
		} else if cand.X >= k.MaxX {
			cand.X = k.MaxX
			dirX = -1
		}
	}
	if k.SpeedY != 0 {
		cand.Y += k.SpeedY * dirY * scale
		if cand.Y <= k.MinY {
			cand.Y = k.MinY
			dirY = 1
		} else if cand.Y >= k.MaxY {
			cand.Y = k.MaxY
			dirY = -1
		}
	}

	for _, o := range obstacles {
		if o == Solid(k) {
			continue
		}
		if cand.Intersects(o.Bounds()) {
			if k.SpeedX != 0 {
				k.DirX = -k.DirX
			}
			if k.SpeedY != 0 {
				k.DirY = -k.DirY
			}
			return
		}
	}

	k.LastMove = cand.Pos().Sub(k.Rect.Pos())
	k.Rect = cand
	k.DirX, k.DirY = dirX, dirY
}
