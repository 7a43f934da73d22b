package entity

import "github.com/younwookim/neonrun/internal/domain/geom"

// HitResult is the outcome of a damage attempt.
type HitResult int

const (
	HitIgnored HitResult = iota // Invulnerable, already dead, or immune to the attack
	HitDamaged
	HitKilled
)

// String returns the string representation of the hit result
func (h HitResult) String() string {
	switch h {
	case HitIgnored:
		return "ignored"
	case HitDamaged:
		return "damaged"
	case HitKilled:
		return "killed"
	default:
		return "unknown"
	}
}

// Walker is a patrolling enemy that can be stomped.
type Walker struct {
	ID   EntityID
	Rect geom.Rect

	PatrolLeft  float64
	PatrolRight float64
	Speed       float64 // pixels per frame
	Dir         float64 // -1 or +1

	Health    int
	MaxHealth int

	InvulnTimer    float64
	InvulnDuration float64

	Stomped       bool
	DeathTimer    float64
	DeathDuration float64
}

// NewWalker creates a walker standing on top of a surface at y=top,
// patrolling within [left, right].
func NewWalker(id EntityID, x, top, w, h, left, right, speed float64, health int) *Walker {
	return &Walker{
		ID:          id,
		Rect:        geom.NewRect(x, top-h, w, h),
		PatrolLeft:  left,
		PatrolRight: right,
		Speed:       speed,
		Dir:         1,
		Health:      health,
		MaxHealth:   health,
	}
}

// Update advances patrol and timers.
func (w *Walker) Update(scale, dt float64) {
	if w.Stomped {
		w.DeathTimer = max(0, w.DeathTimer-dt)
		return
	}
	w.InvulnTimer = max(0, w.InvulnTimer-dt)

	w.Rect.X += w.Speed * w.Dir * scale
	if w.Rect.X <= w.PatrolLeft {
		w.Rect.X = w.PatrolLeft
		w.Dir = 1
	} else if w.Rect.Right() >= w.PatrolRight {
		w.Rect.X = w.PatrolRight - w.Rect.W
		w.Dir = -1
	}
}

// TakeHit is the single damage entry point for walkers.
func (w *Walker) TakeHit() HitResult {
	if w.Stomped || w.InvulnTimer > 0 {
		return HitIgnored
	}
	w.Health--
	if w.Health <= 0 {
		w.Health = 0
		w.Stomped = true
		w.DeathTimer = w.DeathDuration
		return HitKilled
	}
	w.InvulnTimer = w.InvulnDuration
	return HitDamaged
}

// IsAlive returns true until the walker is killed
func (w *Walker) IsAlive() bool {
	return !w.Stomped
}

// Removed returns true once the death animation has finished.
func (w *Walker) Removed() bool {
	return w.Stomped && w.DeathTimer <= 0
}

// Shooter is a stationary hazard that fires at the player on a cooldown.
// Stomping does not hurt it; only the sword beam does.
type Shooter struct {
	ID     EntityID
	Rect   geom.Rect
	Facing float64

	Cooldown     float64
	BaseCooldown float64
	Jitter       float64 // Cooldown reset adds [0, Jitter)
	Range        float64 // Horizontal distance at which it fires, 0 = unlimited

	ProjectileSpeed  float64
	ProjectileRadius float64
	ProjectileLife   float64

	Health        int
	Stomped       bool
	DeathTimer    float64
	DeathDuration float64
}

// Update faces the target and fires a projectile when the cooldown expires.
// rnd returns a value in [0, 1) and is only consulted when firing.
func (s *Shooter) Update(dt float64, target geom.Vec, rnd func() float64) *Projectile {
	if s.Stomped {
		s.DeathTimer = max(0, s.DeathTimer-dt)
		return nil
	}

	c := s.Rect.Center()
	if target.X < c.X {
		s.Facing = -1
	} else {
		s.Facing = 1
	}

	s.Cooldown = max(0, s.Cooldown-dt)
	if s.Cooldown > 0 {
		return nil
	}
	if s.Range > 0 && geom.Abs(target.X-c.X) > s.Range {
		return nil
	}

	s.Cooldown = s.BaseCooldown + s.Jitter*rnd()
	origin := geom.Vec{X: c.X + s.Facing*s.Rect.W/2, Y: c.Y - s.Rect.H/4}
	return NewProjectile(origin, geom.Vec{X: s.Facing * s.ProjectileSpeed}, s.ProjectileRadius, s.ProjectileLife, OwnerHostile)
}

// TakeBeamHit applies a sword-beam hit.
func (s *Shooter) TakeBeamHit() HitResult {
	if s.Stomped {
		return HitIgnored
	}
	s.Health--
	if s.Health > 0 {
		return HitDamaged
	}
	s.Health = 0
	s.Stomped = true
	s.DeathTimer = s.DeathDuration
	return HitKilled
}

// TakeStomp always returns HitIgnored: shooters are weapon-gated.
func (s *Shooter) TakeStomp() HitResult {
	return HitIgnored
}

// IsAlive returns true until the shooter is destroyed
func (s *Shooter) IsAlive() bool {
	return !s.Stomped
}

// Removed returns true once the death animation has finished.
func (s *Shooter) Removed() bool {
	return s.Stomped && s.DeathTimer <= 0
}
