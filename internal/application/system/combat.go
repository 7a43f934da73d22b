package system

import (
	"github.com/younwookim/neonrun/internal/domain/entity"
	"github.com/younwookim/neonrun/internal/domain/event"
	"github.com/younwookim/neonrun/internal/domain/geom"
	"github.com/younwookim/neonrun/internal/infrastructure/config"
)

// projectileMargin is how far outside the stage a projectile may fly before it is culled.
const projectileMargin = 200

// CombatSystem advances hazards and resolves player contacts with hazards,
// pickups and the goal. It reports outcomes as events instead of acting on them.
type CombatSystem struct {
	config *config.Tuning
}

// NewCombatSystem creates a new combat system
func NewCombatSystem(cfg *config.Tuning) *CombatSystem {
	return &CombatSystem{config: cfg}
}

// Update advances walkers, shooters, the boss, projectiles and pickups.
// rnd returns values in [0, 1) from the stage instance's seeded source.
func (s *CombatSystem) Update(level *entity.Level, player *entity.Player, dt float64, scale float64, rnd func() float64) {
	target := player.Rect.Center()

	for _, w := range level.Walkers {
		w.Update(scale, dt)
	}
	for _, sh := range level.Shooters {
		if shot := sh.Update(dt, target, rnd); shot != nil {
			level.Projectiles = append(level.Projectiles, shot)
		}
	}
	if level.Boss != nil {
		level.Projectiles = append(level.Projectiles, level.Boss.Update(scale, dt, target, rnd)...)
	}
	for _, p := range level.Pickups {
		p.Update(dt)
	}
	level.Goal.Flutter += dt

	s.updateProjectiles(level, dt, scale)
	s.updateCombo(player, dt)
	s.prune(level)
}

func (s *CombatSystem) updateProjectiles(level *entity.Level, dt, scale float64) {
	solids := level.Solids()
	for _, proj := range level.Projectiles {
		if !proj.Active {
			continue
		}
		proj.Update(scale, dt)

		if proj.Pos.Y > level.KillPlaneY || proj.Pos.X < -projectileMargin || proj.Pos.X > level.Length+projectileMargin {
			proj.Deactivate()
			continue
		}
		b := proj.Bounds()
		for _, solid := range solids {
			if b.Intersects(solid.Bounds()) {
				proj.Deactivate()
				break
			}
		}
	}
}

// updateCombo expires the combo once its window closes
func (s *CombatSystem) updateCombo(player *entity.Player, dt float64) {
	if player.ComboTimer <= 0 {
		return
	}
	player.ComboTimer = max(0, player.ComboTimer-dt)
	if player.ComboTimer == 0 {
		player.Combo = 0
	}
}

// prune drops finished projectiles and enemies whose death animation ended.
func (s *CombatSystem) prune(level *entity.Level) {
	level.Projectiles = filter(level.Projectiles, func(p *entity.Projectile) bool { return p.Active })
	level.Walkers = filter(level.Walkers, func(w *entity.Walker) bool { return !w.Removed() })
	level.Shooters = filter(level.Shooters, func(sh *entity.Shooter) bool { return !sh.Removed() })
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := items[:0]
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	clear(items[len(out):])
	return out
}

// Resolve checks the player against hazards, projectiles, pickups, the goal and
// the kill plane. elapsed is the time spent on the stage, used for the time bonus.
// Resolution stops at the first PlayerDied or StageCleared event.
func (s *CombatSystem) Resolve(level *entity.Level, player *entity.Player, elapsed float64) []event.Event {
	var events []event.Event

	s.resolveBeams(level, player, &events)

	if e, died := s.resolveHazards(level, player, &events); died {
		return append(events, e)
	}

	s.resolvePickups(level, player, &events)

	if s.resolveGoal(level, player, elapsed, &events) {
		return events
	}

	if player.Rect.Y > level.KillPlaneY {
		events = append(events, event.Died(event.CauseFall, player.Rect.Center()))
	}
	return events
}

// resolveBeams applies the player's sword beams to walkers, shooters and the boss.
func (s *CombatSystem) resolveBeams(level *entity.Level, player *entity.Player, events *[]event.Event) {
	sc := s.config.Scoring
	for _, proj := range level.Projectiles {
		if !proj.Active || proj.Owner != entity.OwnerPlayer {
			continue
		}
		b := proj.Bounds()

		for _, w := range level.Walkers {
			if w.IsAlive() && b.Intersects(w.Rect) {
				proj.Deactivate()
				if w.TakeHit() == entity.HitKilled {
					*events = append(*events, event.At(event.EnemyKilled, w.Rect.Center()))
					*events = append(*events, s.addScore(player, sc.Stomp, true, w.Rect.Center()))
				}
				break
			}
		}
		if !proj.Active {
			continue
		}

		for _, sh := range level.Shooters {
			if sh.IsAlive() && b.Intersects(sh.Rect) {
				proj.Deactivate()
				if sh.TakeBeamHit() == entity.HitKilled {
					*events = append(*events, event.At(event.EnemyKilled, sh.Rect.Center()))
					*events = append(*events, s.addScore(player, sc.ShooterKill, true, sh.Rect.Center()))
				}
				break
			}
		}
		if !proj.Active {
			continue
		}

		if boss := level.Boss; boss != nil && !boss.Defeated && b.Intersects(boss.Rect) {
			proj.Deactivate()
			switch boss.TakeBeamHit() {
			case entity.HitDamaged:
				*events = append(*events, event.At(event.BossHit, boss.Rect.Center()))
			case entity.HitKilled:
				*events = append(*events, event.At(event.BossDefeated, boss.Rect.Center()))
				*events = append(*events, s.addScore(player, sc.BossKill, false, boss.Rect.Center()))
			}
		}
	}
}

// resolveHazards handles stomps and lethal contacts. Returns the death event, if any.
func (s *CombatSystem) resolveHazards(level *entity.Level, player *entity.Player, events *[]event.Event) (event.Event, bool) {
	sc := s.config.Scoring

	for _, w := range level.Walkers {
		if !w.IsAlive() || !player.Rect.Intersects(w.Rect) {
			continue
		}
		if s.isStomp(player, w.Rect) {
			s.stompBounce(player)
			if w.TakeHit() == entity.HitKilled {
				*events = append(*events, event.At(event.EnemyStomped, w.Rect.Center()))
				*events = append(*events, s.addScore(player, sc.Stomp, true, w.Rect.Center()))
			}
			continue
		}
		if !player.IsInvincible() {
			return event.Died(event.CauseEnemy, player.Rect.Center()), true
		}
	}

	for _, sh := range level.Shooters {
		if !sh.IsAlive() || !player.Rect.Intersects(sh.Rect) {
			continue
		}
		if s.isStomp(player, sh.Rect) {
			// Shooters only take sword-beam damage; a stomp just bounces off.
			sh.TakeStomp()
			s.stompBounce(player)
			continue
		}
		if !player.IsInvincible() {
			return event.Died(event.CauseEnemy, player.Rect.Center()), true
		}
	}

	if boss := level.Boss; boss != nil && !boss.Defeated && player.Rect.Intersects(boss.Rect) {
		if s.isStomp(player, boss.Rect) {
			boss.TakeStomp()
			s.stompBounce(player)
		} else if !player.IsInvincible() {
			return event.Died(event.CauseBoss, player.Rect.Center()), true
		}
	}

	for _, proj := range level.Projectiles {
		if !proj.Active || proj.Owner != entity.OwnerHostile || !proj.Bounds().Intersects(player.Rect) {
			continue
		}
		proj.Deactivate()
		if !player.IsInvincible() {
			return event.Died(event.CauseProjectile, player.Rect.Center()), true
		}
	}

	return event.Event{}, false
}

// isStomp reports whether the player is falling onto the top of r.
func (s *CombatSystem) isStomp(player *entity.Player, r geom.Rect) bool {
	return player.Mode == entity.ModePlatformer &&
		player.Vel.Y > 0 &&
		player.Rect.Bottom()-r.Y < s.config.Player.StompTolerance
}

func (s *CombatSystem) stompBounce(player *entity.Player) {
	player.Vel.Y = s.config.Physics.JumpVelocity * s.config.Player.StompBounce
	player.OnGround = false
	player.Ground = nil
}

func (s *CombatSystem) resolvePickups(level *entity.Level, player *entity.Player, events *[]event.Event) {
	sc := s.config.Scoring
	for _, p := range level.Pickups {
		if p.Collected || !player.Rect.Intersects(p.Rect) {
			continue
		}
		p.Collect()
		c := p.Rect.Center()
		*events = append(*events, event.Event{Kind: event.Collected, Pos: c, Item: p.Kind.String()})

		switch p.Kind {
		case entity.PickupCoin:
			*events = append(*events, s.addScore(player, sc.Coin, true, c))
			continue
		case entity.PickupDoubleJump:
			player.AddDoubleJump(1)
		case entity.PickupSword:
			player.AddSwordCharge(s.config.Player.SwordPerPickup)
		case entity.PickupShield:
			player.AddShieldCharge(1)
		}
		*events = append(*events, s.addScore(player, sc.PowerUp, false, c))
	}
}

// resolveGoal clears the stage when the goal is touched and active.
// A locked goal briefly protects the player instead.
func (s *CombatSystem) resolveGoal(level *entity.Level, player *entity.Player, elapsed float64, events *[]event.Event) bool {
	reach := s.config.Player.GoalReach
	if !player.Rect.Intersects(level.Goal.Rect.Inflate(reach, reach)) {
		return false
	}

	pos := level.Goal.Rect.Center()
	if !level.GoalActive() {
		if player.InvincibleTimer == 0 {
			*events = append(*events, event.At(event.GoalLocked, pos))
		}
		player.InvincibleTimer = max(player.InvincibleTimer, s.config.Player.GoalLockTime)
		return false
	}

	sc := s.config.Scoring
	bonus := max(0, int(sc.TimeBonusBase-elapsed*sc.TimeBonusRate))
	*events = append(*events,
		s.addScore(player, sc.Goal+bonus, false, pos),
		event.At(event.StageCleared, pos),
	)
	return true
}

// addScore returns a ScoreDelta event. Combo scoring multiplies base by
// 1 + ComboStep*(combo-1), where the combo grows while the window is open.
func (s *CombatSystem) addScore(player *entity.Player, base int, combo bool, pos geom.Vec) event.Event {
	if !combo {
		return event.Score(base, pos)
	}
	if player.ComboTimer > 0 {
		player.Combo++
	} else {
		player.Combo = 1
	}
	player.ComboTimer = s.config.Scoring.ComboWindow
	mult := 1 + s.config.Scoring.ComboStep*float64(player.Combo-1)
	return event.Score(int(float64(base)*mult), pos)
}
