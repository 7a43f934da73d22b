package system

import (
	"math"

	"github.com/younwookim/neonrun/internal/domain/entity"
	"github.com/younwookim/neonrun/internal/domain/geom"
	"github.com/younwookim/neonrun/internal/infrastructure/config"
)

// contactEpsilon absorbs float error when testing whether a body starts a
// sweep on the near side of an edge.
const contactEpsilon = 1e-6

// StepResult reports the one-shot effects of a physics update
type StepResult struct {
	Landed   bool
	Bounced  bool
	HeadBump bool
	HitWall  bool
	Ground   entity.Solid // Platform landed or bounced on
}

// PhysicsSystem moves the player body against the level's solids.
// Tuning constants are per frame at TargetFPS and scaled by FrameScale.
type PhysicsSystem struct {
	config *config.PhysicsConfig
}

// NewPhysicsSystem creates a new physics system
func NewPhysicsSystem(cfg *config.PhysicsConfig) *PhysicsSystem {
	return &PhysicsSystem{config: cfg}
}

// FrameScale normalizes a wall-clock delta to frames at the target rate.
func (s *PhysicsSystem) FrameScale(dt float64) float64 {
	return geom.Clamp(dt*s.config.TargetFPS, 0, s.config.FrameScaleCap)
}

// ApplyGravity accelerates the player downward, clamped to the max fall speed.
// It does nothing in planar mode.
func (s *PhysicsSystem) ApplyGravity(p *entity.Player, dt float64) {
	if p.Mode == entity.ModePlanar {
		return
	}
	p.Vel.Y += s.config.Gravity * s.FrameScale(dt)
	if p.Vel.Y > s.config.MaxFallSpeed {
		p.Vel.Y = s.config.MaxFallSpeed
	}
}

// Move eases horizontal velocity toward direction*MoveSpeed.
func (s *PhysicsSystem) Move(p *entity.Player, direction int, dt float64) {
	target := float64(direction) * s.config.MoveSpeed
	p.Vel.X = s.ease(p.Vel.X, target, dt)
	if direction != 0 {
		p.Facing = float64(direction)
	}
}

// MoveDepth eases vertical velocity toward direction*PlanarSpeed. Only used in planar mode.
func (s *PhysicsSystem) MoveDepth(p *entity.Player, direction int, dt float64) {
	if p.Mode != entity.ModePlanar {
		return
	}
	p.Vel.Y = s.ease(p.Vel.Y, float64(direction)*s.config.PlanarSpeed, dt)
}

// ease blends v toward target with a frame-rate independent exponential factor.
func (s *PhysicsSystem) ease(v, target, dt float64) float64 {
	blend := 1 - math.Pow(1-s.config.Smoothing, s.FrameScale(dt))
	v += (target - v) * blend
	if math.Abs(v) < s.config.VelocityEpsilon {
		v = 0
	}
	return v
}

// Jump performs a ground jump, or a double jump if a charge remains.
// Returns whether a jump occurred.
func (s *PhysicsSystem) Jump(p *entity.Player) bool {
	if p.Mode == entity.ModePlanar {
		return false
	}
	if p.OnGround {
		p.Vel.Y = s.config.JumpVelocity
		p.OnGround = false
		p.Ground = nil
		return true
	}
	if !p.UseDoubleJump() {
		return false
	}
	p.Vel.Y = s.config.JumpVelocity * s.config.DoubleJumpFactor
	return true
}

// Update resolves one tick of motion. The order matters:
// carry by ground, push out of overlaps, sweep X, sweep Y, landing check, timers.
func (s *PhysicsSystem) Update(p *entity.Player, solids []entity.Solid, dt float64) StepResult {
	var res StepResult
	scale := s.FrameScale(dt)

	// Ride the platform we stood on last tick
	if p.Ground != nil {
		p.Rect = p.Rect.Move(p.Ground.Displacement())
	}
	wasAirborne := !p.OnGround
	prevBottom := p.Rect.Bottom()

	s.resolveOverlap(p, solids)

	p.OnGround = false
	p.Ground = nil

	res.HitWall = s.moveX(p, solids, p.Vel.X*scale)
	s.moveY(p, solids, p.Vel.Y*scale, &res)

	if wasAirborne && p.OnGround && prevBottom <= p.Ground.Bounds().Y+s.config.LandingEpsilon {
		res.Landed = true
	}

	s.updateTimers(p, dt)
	return res
}

// moveX sweeps horizontally and stops at the nearest blocking edge.
func (s *PhysicsSystem) moveX(p *entity.Player, solids []entity.Solid, dx float64) bool {
	if dx == 0 {
		return false
	}

	r := p.Rect
	hit := false
	best := dx
	for _, solid := range solids {
		b := solid.Bounds()
		if !r.OverlapsY(b) {
			continue
		}
		if dx > 0 && r.Right() <= b.X+contactEpsilon && r.Right()+dx > b.X {
			if d := b.X - r.Right(); d < best {
				best, hit = d, true
			}
		} else if dx < 0 && r.X >= b.Right()-contactEpsilon && r.X+dx < b.Right() {
			if d := b.Right() - r.X; d > best {
				best, hit = d, true
			}
		}
	}

	p.Rect.X += best
	if hit {
		p.Vel.X = 0
	}
	return hit
}

// moveY sweeps vertically and applies landing, bounce and head-bump reactions.
func (s *PhysicsSystem) moveY(p *entity.Player, solids []entity.Solid, dy float64, res *StepResult) {
	if dy == 0 {
		return
	}

	r := p.Rect
	var blocker entity.Solid
	best := dy
	for _, solid := range solids {
		b := solid.Bounds()
		if !r.OverlapsX(b) {
			continue
		}
		if dy > 0 && r.Bottom() <= b.Y+contactEpsilon && r.Bottom()+dy >= b.Y {
			if d := b.Y - r.Bottom(); d < best || blocker == nil {
				best, blocker = d, solid
			}
		} else if dy < 0 && r.Y >= b.Bottom()-contactEpsilon && r.Y+dy < b.Bottom() {
			if d := b.Bottom() - r.Y; d > best || blocker == nil {
				best, blocker = d, solid
			}
		}
	}

	if blocker == nil {
		p.Rect.Y += dy
		return
	}

	b := blocker.Bounds()
	if dy < 0 {
		p.Rect.Y = b.Bottom()
		p.Vel.Y = 0
		res.HeadBump = true
		return
	}

	p.Rect.Y = b.Y - p.Rect.H
	if p.Mode == entity.ModePlanar {
		p.Vel.Y = 0
		return
	}
	if v, ok := blocker.Bounce(); ok {
		p.Vel.Y = v
		res.Bounced = true
		res.Ground = blocker
		return
	}
	p.Vel.Y = 0
	p.OnGround = true
	p.Ground = blocker
	res.Ground = blocker
}

// resolveOverlap pushes the player out of any solid it already overlaps,
// along the axis of smallest penetration.
func (s *PhysicsSystem) resolveOverlap(p *entity.Player, solids []entity.Solid) {
	type pushOption struct {
		dx, dy   float64
		distance float64
	}

	for _, solid := range solids {
		b := solid.Bounds()
		r := p.Rect
		if !r.Intersects(b) {
			continue
		}

		options := [4]pushOption{
			{dx: b.X - r.Right(), distance: r.Right() - b.X},
			{dx: b.Right() - r.X, distance: b.Right() - r.X},
			{dy: b.Y - r.Bottom(), distance: r.Bottom() - b.Y},
			{dy: b.Bottom() - r.Y, distance: b.Bottom() - r.Y},
		}
		best := options[0]
		for _, opt := range options[1:] {
			if opt.distance < best.distance {
				best = opt
			}
		}

		p.Rect = p.Rect.Move(geom.Vec{X: best.dx, Y: best.dy})
		if best.dx*p.Vel.X < 0 {
			p.Vel.X = 0
		}
		if best.dy > 0 && p.Vel.Y < 0 {
			p.Vel.Y = 0
		}
	}
}

// updateTimers decrements player timers, clamped at zero
func (s *PhysicsSystem) updateTimers(p *entity.Player, dt float64) {
	p.InvincibleTimer = max(0, p.InvincibleTimer-dt)
	p.ShieldTimer = max(0, p.ShieldTimer-dt)
	p.SwordCooldown = max(0, p.SwordCooldown-dt)
	p.AnimTime += dt
}
