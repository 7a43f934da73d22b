package stage

import (
	"math/rand"

	"github.com/younwookim/neonrun/internal/application/system"
	"github.com/younwookim/neonrun/internal/domain/entity"
	"github.com/younwookim/neonrun/internal/domain/event"
	"github.com/younwookim/neonrun/internal/domain/geom"
	"github.com/younwookim/neonrun/internal/infrastructure/config"
)

// Charges are the consumables a player carries from one stage into the next.
type Charges struct {
	DoubleJumps int
	Sword       int
	Shield      int
}

// Instance is a live, mutable copy of a blueprint. Ticking it never touches
// the blueprint, so Reset always returns to the generated state.
type Instance struct {
	blueprint *Blueprint
	config    *config.Tuning
	seed      int64

	physics *system.PhysicsSystem
	input   *system.InputSystem
	combat  *system.CombatSystem

	level   *entity.Level
	player  *entity.Player
	rng     *rand.Rand
	entry   Charges
	elapsed float64
	done    bool
}

// NewInstance clones bp into live entities. seed drives gameplay randomness
// (shooter jitter, boss waypoints) so that replays are exact.
func NewInstance(bp *Blueprint, cfg *config.Tuning, seed int64) *Instance {
	physics := system.NewPhysicsSystem(&cfg.Physics)
	in := &Instance{
		blueprint: bp,
		config:    cfg,
		seed:      seed,
		physics:   physics,
		input:     system.NewInputSystem(physics, &cfg.Player),
		combat:    system.NewCombatSystem(cfg),
	}
	in.Reset()
	return in
}

// Reset discards all live state and re-clones the blueprint. The player keeps
// the charges it entered the stage with.
func (in *Instance) Reset() {
	in.rng = rand.New(rand.NewSource(in.seed))
	in.level = in.build()
	in.player = in.spawnPlayer()
	in.applyCharges(in.entry)
	in.elapsed = 0
	in.done = false
}

// SetCharges replaces the player's consumables and makes them the entry state for Reset.
func (in *Instance) SetCharges(c Charges) {
	in.entry = c
	in.applyCharges(c)
}

// Charges returns the player's current consumables.
func (in *Instance) Charges() Charges {
	return Charges{
		DoubleJumps: in.player.DoubleJumps,
		Sword:       in.player.SwordCharges,
		Shield:      in.player.ShieldCharges,
	}
}

func (in *Instance) applyCharges(c Charges) {
	p := in.player
	p.DoubleJumps, p.SwordCharges, p.ShieldCharges = 0, 0, 0
	p.AddDoubleJump(c.DoubleJumps)
	p.AddSwordCharge(c.Sword)
	p.AddShieldCharge(c.Shield)
}

func (in *Instance) spawnPlayer() *entity.Player {
	pc := in.config.Player
	spawn := in.blueprint.Spawn()
	p := entity.NewPlayer(spawn.X, spawn.Y, pc.Width, pc.Height, entity.ChargeCaps{
		DoubleJumps: pc.MaxDoubleJumps,
		Sword:       pc.MaxSword,
		Shield:      pc.MaxShield,
	})
	if in.blueprint.Kind() == entity.LevelSecret {
		p.Mode = entity.ModePlanar
	}
	return p
}

func (in *Instance) build() *entity.Level {
	bp := in.blueprint
	ec := in.config.Enemies

	level := &entity.Level{
		Index:      bp.Index(),
		Kind:       bp.Kind(),
		Theme:      bp.Theme(),
		Goal:       entity.Goal{Rect: bp.Goal()},
		Spawn:      bp.Spawn(),
		KillPlaneY: bp.KillPlaneY(),
		Length:     bp.Length(),
	}

	for _, ps := range bp.Platforms() {
		p := entity.NewPlatform(ps.Rect.X, ps.Rect.Y, ps.Rect.W, ps.Rect.H, ps.Style)
		if ps.Bouncy {
			p.MakeBouncy(ps.BounceVelocity)
		}
		level.Platforms = append(level.Platforms, p)
	}

	for _, ms := range bp.Movers() {
		m := &entity.KinematicPlatform{
			Platform: entity.Platform{Rect: ms.Rect, Style: ms.Style},
			MinX:     ms.MinX,
			MaxX:     ms.MaxX,
			MinY:     ms.MinY,
			MaxY:     ms.MaxY,
			SpeedX:   ms.SpeedX,
			SpeedY:   ms.SpeedY,
			DirX:     1,
			DirY:     -1,
		}
		if ms.Bouncy {
			m.MakeBouncy(ms.BounceVelocity)
		}
		level.Movers = append(level.Movers, m)
	}

	var id entity.EntityID
	for _, ws := range bp.Walkers() {
		id++
		w := entity.NewWalker(id, ws.Rect.X, ws.Rect.Bottom(), ws.Rect.W, ws.Rect.H,
			ws.PatrolLeft, ws.PatrolRight, ec.WalkerSpeed, ws.Health)
		w.InvulnDuration = ec.InvulnTime
		w.DeathDuration = ec.DeathTime
		level.Walkers = append(level.Walkers, w)
	}

	for _, ss := range bp.Shooters() {
		id++
		level.Shooters = append(level.Shooters, &entity.Shooter{
			ID:               id,
			Rect:             ss.Rect,
			Facing:           -1,
			Cooldown:         ss.Cooldown,
			BaseCooldown:     ec.ShooterCooldown,
			Jitter:           ec.ShooterJitter,
			Range:            ec.ShooterRange,
			ProjectileSpeed:  ec.ProjectileSpeed,
			ProjectileRadius: ec.ProjectileRadius,
			ProjectileLife:   ec.ProjectileLife,
			Health:           ec.ShooterHealth,
			DeathDuration:    ec.DeathTime,
		})
	}

	for _, ps := range bp.Pickups() {
		p := entity.NewPickup(ps.Kind, ps.Rect)
		if ps.Respawn {
			p.Respawn = true
			p.RespawnDelay = in.config.Boss.SwordRespawn
		}
		level.Pickups = append(level.Pickups, p)
	}

	if bs, ok := bp.Boss(); ok {
		bc := in.config.Boss
		boss := &entity.Boss{
			Rect:            bs.Rect,
			Region:          bs.Region,
			Target:          bs.Rect.Pos(),
			Speed:           bc.Speed,
			Health:          bs.Health,
			MaxHealth:       bs.Health,
			InvulnDuration:  bc.InvulnTime,
			AttackCooldown:  bc.AttackInterval,
			AttackInterval:  bc.AttackInterval,
			VolleySize:      bc.VolleySize,
			VolleySpread:    bc.VolleySpread,
			ShotSpeed:       bc.ShotSpeed,
			ShotRadius:      bc.ShotRadius,
			ShotLife:        bc.ShotLife,
			CelebrationTime: bc.CelebrationTime,
		}
		boss.PickWaypoint(in.rng.Float64)
		level.Boss = boss
	}

	return level
}

// Tick advances the stage by dt seconds and returns what happened.
// Order: platforms, player intent, gravity, body physics, hazards and
// projectiles, then contact, pickup, goal and kill-plane resolution.
// Once a tick reports PlayerDied or StageCleared the instance is done and
// further ticks return nil until Reset.
func (in *Instance) Tick(intent system.Intent, dt float64) []event.Event {
	if in.done {
		return nil
	}

	var events []event.Event
	p := in.player
	level := in.level
	scale := in.physics.FrameScale(dt)
	in.elapsed += dt

	solids := level.Solids()
	for _, m := range level.Movers {
		m.Update(scale, solids)
	}

	res := in.input.UpdatePlayer(p, intent, dt)
	if res.Jumped {
		events = append(events, event.At(event.Jumped, p.Rect.Center()))
	}
	if res.DoubleJumped {
		events = append(events, event.At(event.DoubleJumped, p.Rect.Center()))
	}
	if res.Beam != nil {
		level.Projectiles = append(level.Projectiles, res.Beam)
		events = append(events, event.At(event.SwordFired, res.Beam.Pos))
	}
	if res.Shield {
		events = append(events, event.At(event.ShieldRaised, p.Rect.Center()))
	}

	in.physics.ApplyGravity(p, dt)
	step := in.physics.Update(p, solids, dt)
	if step.Landed {
		events = append(events, event.At(event.Landed, geom.Vec{X: p.Rect.Center().X, Y: p.Rect.Bottom()}))
	}
	if step.Bounced {
		events = append(events, event.At(event.Bounced, geom.Vec{X: p.Rect.Center().X, Y: p.Rect.Bottom()}))
	}

	in.combat.Update(level, p, dt, scale, in.rng.Float64)

	outcome := in.combat.Resolve(level, p, in.elapsed)
	if event.Has(outcome, event.PlayerDied) || event.Has(outcome, event.StageCleared) {
		in.done = true
	}
	return append(events, outcome...)
}

// Done reports whether the stage ended in death or clear.
func (in *Instance) Done() bool {
	return in.done
}

// Blueprint returns the stage this instance was cloned from.
func (in *Instance) Blueprint() *Blueprint {
	return in.blueprint
}

// RemainingCollectibles returns the number of coins still on the stage.
func (in *Instance) RemainingCollectibles() int {
	return in.level.RemainingCoins()
}

// IsGoalActive reports whether touching the goal clears the stage.
func (in *Instance) IsGoalActive() bool {
	return in.level.GoalActive()
}

func (in *Instance) SpawnPoint() geom.Vec {
	return in.level.Spawn
}

func (in *Instance) KillPlaneY() float64 {
	return in.level.KillPlaneY
}

func (in *Instance) StageLength() float64 {
	return in.level.Length
}

// Elapsed returns the seconds spent on this attempt.
func (in *Instance) Elapsed() float64 {
	return in.elapsed
}
