package entity

import (
	"math"

	"github.com/younwookim/neonrun/internal/domain/geom"
)

// Owner identifies who fired a projectile
type Owner int

const (
	OwnerHostile Owner = iota // Shooter or boss shot, hurts the player
	OwnerPlayer               // Sword beam, hurts shooters and the boss
)

// Projectile is a round shot travelling in a straight line.
type Projectile struct {
	Pos    geom.Vec
	Vel    geom.Vec // pixels per frame
	Radius float64
	Life   float64 // seconds left
	Owner  Owner
	Active bool
}

// NewProjectile creates an active projectile centered at pos.
func NewProjectile(pos, vel geom.Vec, radius, life float64, owner Owner) *Projectile {
	return &Projectile{
		Pos:    pos,
		Vel:    vel,
		Radius: radius,
		Life:   life,
		Owner:  owner,
		Active: true,
	}
}

// NewAimedProjectile creates a projectile flying from pos toward target at speed.
func NewAimedProjectile(pos, target geom.Vec, speed, radius, life float64, owner Owner) *Projectile {
	dx := target.X - pos.X
	dy := target.Y - pos.Y
	dist := math.Hypot(dx, dy)
	if dist < 1 {
		dist = 1
	}
	vel := geom.Vec{X: dx / dist * speed, Y: dy / dist * speed}
	return NewProjectile(pos, vel, radius, life, owner)
}

// Update moves the projectile and burns its lifetime.
func (p *Projectile) Update(scale, dt float64) {
	if !p.Active {
		return
	}
	p.Pos = p.Pos.Add(p.Vel.Scale(scale))
	p.Life -= dt
	if p.Life <= 0 {
		p.Life = 0
		p.Active = false
	}
}

// Bounds returns the square hitbox around the projectile.
func (p *Projectile) Bounds() geom.Rect {
	return geom.NewRect(p.Pos.X-p.Radius, p.Pos.Y-p.Radius, p.Radius*2, p.Radius*2)
}

// Rotation returns the rotation angle based on velocity vector
func (p *Projectile) Rotation() float64 {
	return math.Atan2(p.Vel.Y, p.Vel.X)
}

// Deactivate marks the projectile as inactive
func (p *Projectile) Deactivate() {
	p.Active = false
}
