package stage

import (
	"errors"
	"fmt"
	"slices"

	"github.com/younwookim/neonrun/internal/domain/entity"
	"github.com/younwookim/neonrun/internal/domain/geom"
)

// PlatformSpec describes a static platform.
type PlatformSpec struct {
	Rect           geom.Rect    `yaml:"rect"`
	Style          entity.Style `yaml:"style"`
	Bouncy         bool         `yaml:"bouncy,omitempty"`
	BounceVelocity float64      `yaml:"bounceVelocity,omitempty"`
	Spine          bool         `yaml:"spine,omitempty"` // Part of the guaranteed route
}

// MoverSpec describes a kinematic platform at its starting position.
type MoverSpec struct {
	Rect           geom.Rect    `yaml:"rect"`
	Style          entity.Style `yaml:"style"`
	MinX           float64      `yaml:"minX"`
	MaxX           float64      `yaml:"maxX"`
	MinY           float64      `yaml:"minY"`
	MaxY           float64      `yaml:"maxY"`
	SpeedX         float64      `yaml:"speedX,omitempty"`
	SpeedY         float64      `yaml:"speedY,omitempty"`
	Bouncy         bool         `yaml:"bouncy,omitempty"`
	BounceVelocity float64      `yaml:"bounceVelocity,omitempty"`
}

// Envelope returns the area the mover sweeps over its patrol.
func (m MoverSpec) Envelope() geom.Rect {
	lo := geom.NewRect(m.MinX, m.MinY, m.Rect.W, m.Rect.H)
	hi := geom.NewRect(m.MaxX, m.MaxY, m.Rect.W, m.Rect.H)
	return lo.Union(hi)
}

type WalkerSpec struct {
	Rect        geom.Rect `yaml:"rect"`
	PatrolLeft  float64   `yaml:"patrolLeft"`
	PatrolRight float64   `yaml:"patrolRight"`
	Health      int       `yaml:"health"`
}

type ShooterSpec struct {
	Rect     geom.Rect `yaml:"rect"`
	Cooldown float64   `yaml:"cooldown"` // Delay before the first shot
}

type PickupSpec struct {
	Kind    entity.PickupKind `yaml:"kind"`
	Rect    geom.Rect         `yaml:"rect"`
	Respawn bool              `yaml:"respawn,omitempty"`
}

type BossSpec struct {
	Rect   geom.Rect `yaml:"rect"`
	Region geom.Rect `yaml:"region"`
	Health int       `yaml:"health"`
}

// Layout is the mutable draft a generator fills in before freezing it.
type Layout struct {
	Index int              `yaml:"index"`
	Kind  entity.LevelKind `yaml:"kind"`
	Theme int              `yaml:"theme"`

	Platforms []PlatformSpec `yaml:"platforms"`
	Movers    []MoverSpec    `yaml:"movers,omitempty"`
	Walkers   []WalkerSpec   `yaml:"walkers,omitempty"`
	Shooters  []ShooterSpec  `yaml:"shooters,omitempty"`
	Pickups   []PickupSpec   `yaml:"pickups,omitempty"`
	Boss      *BossSpec      `yaml:"boss,omitempty"`

	Goal       geom.Rect `yaml:"goal"`
	Spawn      geom.Vec  `yaml:"spawn"`
	KillPlaneY float64   `yaml:"killPlaneY"`
	Length     float64   `yaml:"length"`
}

// Clone returns a deep copy of the layout.
func (l Layout) Clone() Layout {
	out := l
	out.Platforms = slices.Clone(l.Platforms)
	out.Movers = slices.Clone(l.Movers)
	out.Walkers = slices.Clone(l.Walkers)
	out.Shooters = slices.Clone(l.Shooters)
	out.Pickups = slices.Clone(l.Pickups)
	if l.Boss != nil {
		b := *l.Boss
		out.Boss = &b
	}
	return out
}

// Validate checks the structural invariants every playable stage needs.
func (l Layout) Validate() error {
	var errs []error
	if len(l.Platforms) == 0 {
		errs = append(errs, errors.New("no platforms"))
	}
	if l.Goal.W <= 0 || l.Goal.H <= 0 {
		errs = append(errs, fmt.Errorf("goal has no area: %+v", l.Goal))
	}
	if l.Kind == entity.LevelBoss && l.Boss == nil {
		errs = append(errs, errors.New("boss arena without a boss"))
	}
	if l.Kind != entity.LevelBoss && l.Boss != nil {
		errs = append(errs, fmt.Errorf("%s stage with a boss", l.Kind))
	}
	if l.KillPlaneY <= l.Spawn.Y {
		errs = append(errs, fmt.Errorf("kill plane %v above spawn %v", l.KillPlaneY, l.Spawn.Y))
	}
	for i, m := range l.Movers {
		if m.MinX > m.MaxX || m.MinY > m.MaxY {
			errs = append(errs, fmt.Errorf("mover %d has an inverted patrol range", i))
		}
	}
	for i, w := range l.Walkers {
		if w.Health <= 0 {
			errs = append(errs, fmt.Errorf("walker %d has no health", i))
		}
		if w.PatrolRight-w.PatrolLeft < w.Rect.W {
			errs = append(errs, fmt.Errorf("walker %d patrol is narrower than its body", i))
		}
	}
	return errors.Join(errs...)
}

// Blueprint is an immutable generated stage. Build one with Freeze.
type Blueprint struct {
	layout Layout
}

// Freeze validates the layout and seals a copy of it.
func Freeze(l Layout) (*Blueprint, error) {
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s stage %d: %w", l.Kind, l.Index, err)
	}
	return &Blueprint{layout: l.Clone()}, nil
}

func (b *Blueprint) Index() int { return b.layout.Index }
func (b *Blueprint) Kind() entity.LevelKind { return b.layout.Kind }
func (b *Blueprint) Theme() int { return b.layout.Theme }
func (b *Blueprint) Goal() geom.Rect { return b.layout.Goal }
func (b *Blueprint) Spawn() geom.Vec { return b.layout.Spawn }
func (b *Blueprint) KillPlaneY() float64 { return b.layout.KillPlaneY }
func (b *Blueprint) Length() float64 { return b.layout.Length }
func (b *Blueprint) Layout() Layout { return b.layout.Clone() }
func (b *Blueprint) Platforms() []PlatformSpec { return slices.Clone(b.layout.Platforms) }
func (b *Blueprint) Movers() []MoverSpec { return slices.Clone(b.layout.Movers) }
func (b *Blueprint) Walkers() []WalkerSpec { return slices.Clone(b.layout.Walkers) }
func (b *Blueprint) Shooters() []ShooterSpec { return slices.Clone(b.layout.Shooters) }
func (b *Blueprint) Pickups() []PickupSpec { return slices.Clone(b.layout.Pickups) }

// Boss returns the boss spec, if the stage has one.
func (b *Blueprint) Boss() (BossSpec, bool) {
	if b.layout.Boss == nil {
		return BossSpec{}, false
	}
	return *b.layout.Boss, true
}

// CoinCount returns the number of coins a fresh instance starts with.
func (b *Blueprint) CoinCount() int {
	n := 0
	for _, p := range b.layout.Pickups {
		if p.Kind == entity.PickupCoin {
			n++
		}
	}
	return n
}
