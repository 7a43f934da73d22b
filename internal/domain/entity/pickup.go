package entity

import (
	"math"

	"github.com/younwookim/neonrun/internal/domain/geom"
)

// PickupKind represents the kind of collectible
type PickupKind int

const (
	PickupCoin PickupKind = iota
	PickupDoubleJump
	PickupSword
	PickupShield
)

// String returns the string representation of the pickup kind
func (k PickupKind) String() string {
	switch k {
	case PickupCoin:
		return "coin"
	case PickupDoubleJump:
		return "double_jump"
	case PickupSword:
		return "sword"
	case PickupShield:
		return "shield"
	default:
		return "unknown"
	}
}

// Pickup is a coin or power-up. A collected pickup is inert for the rest of
// the stage instance unless it respawns (boss-arena sword).
type Pickup struct {
	Kind      PickupKind
	Rect      geom.Rect
	Collected bool
	Pulse     float64 // cosmetic phase

	Respawn      bool
	RespawnDelay float64
	RespawnTimer float64
}

// NewPickup creates an uncollected pickup.
func NewPickup(kind PickupKind, rect geom.Rect) *Pickup {
	return &Pickup{Kind: kind, Rect: rect}
}

// Update advances the pulse phase and the respawn timer.
func (p *Pickup) Update(dt float64) {
	p.Pulse = math.Mod(p.Pulse+dt*4, 2*math.Pi)
	if !p.Collected || !p.Respawn {
		return
	}
	p.RespawnTimer = max(0, p.RespawnTimer-dt)
	if p.RespawnTimer == 0 {
		p.Collected = false
	}
}

// Collect marks the pickup as collected. Returns false if it was already collected.
func (p *Pickup) Collect() bool {
	if p.Collected {
		return false
	}
	p.Collected = true
	if p.Respawn {
		p.RespawnTimer = p.RespawnDelay
	}
	return true
}

// Goal is the stage exit.
type Goal struct {
	Rect    geom.Rect
	Flutter float64 // cosmetic phase
}
