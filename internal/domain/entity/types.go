package entity

import "github.com/younwookim/neonrun/internal/domain/geom"

// EntityID is a unique identifier for an entity
type EntityID uint32

// LevelKind selects the stage variant
type LevelKind int

const (
	LevelNormal LevelKind = iota
	LevelBoss
	LevelSecret
)

// String returns the string representation of the level kind
func (k LevelKind) String() string {
	switch k {
	case LevelNormal:
		return "normal"
	case LevelBoss:
		return "boss"
	case LevelSecret:
		return "secret"
	default:
		return "unknown"
	}
}

// Level holds the live entities of one stage instance
type Level struct {
	Index int
	Kind  LevelKind
	Theme int

	Platforms   []*Platform
	Movers      []*KinematicPlatform
	Walkers     []*Walker
	Shooters    []*Shooter
	Projectiles []*Projectile
	Pickups     []*Pickup
	Goal        Goal
	Boss        *Boss

	Spawn      geom.Vec
	KillPlaneY float64
	Length     float64
}

// Solids returns every platform the player collides with, static first.
func (l *Level) Solids() []Solid {
	out := make([]Solid, 0, len(l.Platforms)+len(l.Movers))
	for _, p := range l.Platforms {
		out = append(out, p)
	}
	for _, m := range l.Movers {
		out = append(out, m)
	}
	return out
}

// RemainingCoins returns the number of uncollected coins
func (l *Level) RemainingCoins() int {
	n := 0
	for _, p := range l.Pickups {
		if p.Kind == PickupCoin && !p.Collected {
			n++
		}
	}
	return n
}

// BossDefeated reports whether the stage has no boss or its boss is defeated.
func (l *Level) BossDefeated() bool {
	return l.Boss == nil || l.Boss.Defeated
}

// GoalActive reports whether touching the goal clears the stage.
func (l *Level) GoalActive() bool {
	return l.RemainingCoins() == 0 && l.BossDefeated()
}
