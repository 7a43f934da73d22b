package entity

import "github.com/younwookim/neonrun/internal/domain/geom"

// Locomotion selects how the player body interprets vertical motion.
type Locomotion int

const (
	// ModePlatformer applies gravity and supports jumping.
	ModePlatformer Locomotion = iota
	// ModePlanar has no gravity; the vertical axis is a second walking axis (depth).
	ModePlanar
)

// ChargeCaps holds the upper bounds for the player's consumable charges.
type ChargeCaps struct {
	DoubleJumps int
	Sword       int
	Shield      int
}

// Player represents the player body and its run-local resources.
// Vel is in pixels per frame at the target frame rate.
type Player struct {
	Rect     geom.Rect
	Vel      geom.Vec
	OnGround bool
	Facing   float64 // -1 left, +1 right
	Mode     Locomotion

	// Ground is the solid currently supporting the player, nil when airborne.
	// It is only used to carry the player along with moving platforms.
	Ground Solid

	Combo      int
	ComboTimer float64

	// Timers (seconds)
	InvincibleTimer float64
	ShieldTimer     float64
	SwordCooldown   float64
	AnimTime        float64

	// Charges
	DoubleJumps   int
	SwordCharges  int
	ShieldCharges int
	Caps          ChargeCaps
}

// NewPlayer creates a player whose top-left corner is at (x, y).
func NewPlayer(x, y, w, h float64, caps ChargeCaps) *Player {
	return &Player{
		Rect:   geom.NewRect(x, y, w, h),
		Facing: 1,
		Caps:   caps,
	}
}

// IsInvincible returns true while hits are ignored (post-hit window or shield).
func (p *Player) IsInvincible() bool {
	return p.InvincibleTimer > 0 || p.ShieldTimer > 0
}

// Respawn places the player at pos and clears motion state.
func (p *Player) Respawn(pos geom.Vec) {
	p.Rect.X = pos.X
	p.Rect.Y = pos.Y
	p.Vel = geom.Vec{}
	p.OnGround = false
	p.Ground = nil
}

// UseDoubleJump consumes one double-jump charge, returning false if none remain.
func (p *Player) UseDoubleJump() bool {
	if p.DoubleJumps <= 0 {
		return false
	}
	p.DoubleJumps--
	return true
}

// AddDoubleJump adds n charges, capped.
func (p *Player) AddDoubleJump(n int) {
	p.DoubleJumps = addCapped(p.DoubleJumps, n, p.Caps.DoubleJumps)
}

// UseSwordCharge consumes one sword charge, returning false if none remain.
func (p *Player) UseSwordCharge() bool {
	if p.SwordCharges <= 0 {
		return false
	}
	p.SwordCharges--
	return true
}

// AddSwordCharge adds n charges, capped.
func (p *Player) AddSwordCharge(n int) {
	p.SwordCharges = addCapped(p.SwordCharges, n, p.Caps.Sword)
}

// UseShieldCharge consumes one shield charge, returning false if none remain.
func (p *Player) UseShieldCharge() bool {
	if p.ShieldCharges <= 0 {
		return false
	}
	p.ShieldCharges--
	return true
}

// AddShieldCharge adds n charges, capped.
func (p *Player) AddShieldCharge(n int) {
	p.ShieldCharges = addCapped(p.ShieldCharges, n, p.Caps.Shield)
}

func addCapped(v, n, limit int) int {
	v += n
	if v > limit {
		v = limit
	}
	if v < 0 {
		v = 0
	}
	return v
}
