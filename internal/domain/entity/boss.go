package entity

import (
	"math"

	"github.com/younwookim/neonrun/internal/domain/geom"
)

// Boss roams an arena, fires volleys and can only be hurt by the sword beam.
type Boss struct {
	Rect   geom.Rect
	Region geom.Rect // Roam area for the top-left corner
	Target geom.Vec
	Speed  float64 // pixels per frame

	Health         int
	MaxHealth      int
	InvulnTimer    float64
	InvulnDuration float64

	AttackCooldown float64
	AttackInterval float64
	VolleySize     int
	VolleySpread   float64 // radians between shots
	ShotSpeed      float64
	ShotRadius     float64
	ShotLife       float64

	Defeated         bool
	CelebrationTimer float64
	CelebrationTime  float64
}

// Active reports whether the boss still takes part in collision checks.
func (b *Boss) Active() bool {
	return !b.Defeated || b.CelebrationTimer > 0
}

// Inert reports whether the boss is defeated and its celebration has ended.
func (b *Boss) Inert() bool {
	return b.Defeated && b.CelebrationTimer <= 0
}

// Update roams toward the current waypoint and fires a volley at target on cooldown.
// rnd returns values in [0, 1) and drives waypoint selection.
func (b *Boss) Update(scale, dt float64, target geom.Vec, rnd func() float64) []*Projectile {
	if b.Defeated {
		b.CelebrationTimer = max(0, b.CelebrationTimer-dt)
		return nil
	}
	b.InvulnTimer = max(0, b.InvulnTimer-dt)

	step := b.Speed * scale
	b.Rect.X = geom.Approach(b.Rect.X, b.Target.X, step)
	b.Rect.Y = geom.Approach(b.Rect.Y, b.Target.Y, step)
	if b.Rect.X == b.Target.X && b.Rect.Y == b.Target.Y {
		b.PickWaypoint(rnd)
	}

	b.AttackCooldown = max(0, b.AttackCooldown-dt)
	if b.AttackCooldown > 0 {
		return nil
	}
	b.AttackCooldown = b.AttackInterval
	return b.volley(target)
}

// PickWaypoint chooses a new roam target inside Region.
func (b *Boss) PickWaypoint(rnd func() float64) {
	maxX := max(b.Region.X, b.Region.Right()-b.Rect.W)
	maxY := max(b.Region.Y, b.Region.Bottom()-b.Rect.H)
	b.Target = geom.Vec{
		X: geom.Lerp(b.Region.X, maxX, rnd()),
		Y: geom.Lerp(b.Region.Y, maxY, rnd()),
	}
}

func (b *Boss) volley(target geom.Vec) []*Projectile {
	n := max(1, b.VolleySize)
	origin := b.Rect.Center()
	base := math.Atan2(target.Y-origin.Y, target.X-origin.X)
	shots := make([]*Projectile, 0, n)
	for i := range n {
		angle := base + (float64(i)-float64(n-1)/2)*b.VolleySpread
		vel := geom.Vec{X: math.Cos(angle) * b.ShotSpeed, Y: math.Sin(angle) * b.ShotSpeed}
		shots = append(shots, NewProjectile(origin, vel, b.ShotRadius, b.ShotLife, OwnerHostile))
	}
	return shots
}

// TakeBeamHit applies a sword-beam hit.
func (b *Boss) TakeBeamHit() HitResult {
	if b.Defeated || b.InvulnTimer > 0 {
		return HitIgnored
	}
	b.Health--
	if b.Health > 0 {
		b.InvulnTimer = b.InvulnDuration
		return HitDamaged
	}
	b.Health = 0
	b.Defeated = true
	b.CelebrationTimer = b.CelebrationTime
	return HitKilled
}

// TakeStomp always returns HitIgnored.
func (b *Boss) TakeStomp() HitResult {
	return HitIgnored
}
