package stage

import (
	"github.com/younwookim/neonrun/internal/domain/entity"
	"github.com/younwookim/neonrun/internal/domain/geom"
)

// PlayerView is the drawable state of the player.
type PlayerView struct {
	Rect       geom.Rect
	Facing     float64
	Mode       entity.Locomotion
	OnGround   bool
	Shielded   bool
	Invincible bool
	AnimTime   float64
	Combo      int
	Charges    Charges
}

// PlatformView is a solid as the renderer sees it.
type PlatformView struct {
	Rect   geom.Rect
	Style  entity.Style
	Bouncy bool
	Moving bool
}

// ActorView covers walkers, shooters and the boss.
type ActorView struct {
	Rect      geom.Rect
	Facing    float64
	Health    int
	MaxHealth int
	Hurt      bool // Inside an invulnerability window
	Dying     bool
}

type ProjectileView struct {
	Bounds   geom.Rect
	Hostile  bool
	Rotation float64
}

type PickupView struct {
	Kind  entity.PickupKind
	Rect  geom.Rect
	Phase float64
}

type GoalView struct {
	Rect   geom.Rect
	Active bool
	Phase  float64
}

// Snapshot is a read-only copy of everything a renderer needs for one frame.
type Snapshot struct {
	Index int
	Kind  entity.LevelKind
	Theme int

	Player      PlayerView
	Platforms   []PlatformView
	Walkers     []ActorView
	Shooters    []ActorView
	Projectiles []ProjectileView
	Pickups     []PickupView // Uncollected only
	Goal        GoalView
	Boss        *ActorView

	RemainingCoins int
	Elapsed        float64
	KillPlaneY     float64
	Length         float64
}

// Snapshot copies the live state into plain values.
func (in *Instance) Snapshot() Snapshot {
	level := in.level
	p := in.player

	snap := Snapshot{
		Index: level.Index,
		Kind:  level.Kind,
		Theme: level.Theme,
		Player: PlayerView{
			Rect:       p.Rect,
			Facing:     p.Facing,
			Mode:       p.Mode,
			OnGround:   p.OnGround,
			Shielded:   p.ShieldTimer > 0,
			Invincible: p.IsInvincible(),
			AnimTime:   p.AnimTime,
			Combo:      p.Combo,
			Charges:    in.Charges(),
		},
		Goal: GoalView{
			Rect:   level.Goal.Rect,
			Active: level.GoalActive(),
			Phase:  level.Goal.Flutter,
		},
		RemainingCoins: level.RemainingCoins(),
		Elapsed:        in.elapsed,
		KillPlaneY:     level.KillPlaneY,
		Length:         level.Length,
	}

	snap.Platforms = make([]PlatformView, 0, len(level.Platforms)+len(level.Movers))
	for _, pl := range level.Platforms {
		snap.Platforms = append(snap.Platforms, PlatformView{Rect: pl.Rect, Style: pl.Style, Bouncy: pl.Bouncy})
	}
	for _, m := range level.Movers {
		snap.Platforms = append(snap.Platforms, PlatformView{Rect: m.Rect, Style: m.Style, Bouncy: m.Bouncy, Moving: true})
	}

	for _, w := range level.Walkers {
		snap.Walkers = append(snap.Walkers, ActorView{
			Rect:      w.Rect,
			Facing:    w.Dir,
			Health:    w.Health,
			MaxHealth: w.MaxHealth,
			Hurt:      w.InvulnTimer > 0,
			Dying:     w.Stomped,
		})
	}
	for _, sh := range level.Shooters {
		snap.Shooters = append(snap.Shooters, ActorView{
			Rect:      sh.Rect,
			Facing:    sh.Facing,
			Health:    sh.Health,
			MaxHealth: in.config.Enemies.ShooterHealth,
			Dying:     sh.Stomped,
		})
	}
	for _, proj := range level.Projectiles {
		snap.Projectiles = append(snap.Projectiles, ProjectileView{
			Bounds:   proj.Bounds(),
			Hostile:  proj.Owner == entity.OwnerHostile,
			Rotation: proj.Rotation(),
		})
	}
	for _, pk := range level.Pickups {
		if pk.Collected {
			continue
		}
		snap.Pickups = append(snap.Pickups, PickupView{Kind: pk.Kind, Rect: pk.Rect, Phase: pk.Pulse})
	}

	if b := level.Boss; b != nil && !b.Inert() {
		snap.Boss = &ActorView{
			Rect:      b.Rect,
			Facing:    geom.Sign(p.Rect.Center().X - b.Rect.Center().X),
			Health:    b.Health,
			MaxHealth: b.MaxHealth,
			Hurt:      b.InvulnTimer > 0,
			Dying:     b.Defeated,
		}
	}

	return snap
}
