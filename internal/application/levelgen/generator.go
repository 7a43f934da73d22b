// Package levelgen builds stage blueprints from a seeded random source.
// Generation never fails: optional targets that cannot be met (mover count,
// power-up placement) are skipped and logged at debug level.
package levelgen

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/younwookim/neonrun/internal/application/stage"
	"github.com/younwookim/neonrun/internal/domain/entity"
	"github.com/younwookim/neonrun/internal/domain/geom"
	"github.com/younwookim/neonrun/internal/infrastructure/config"
)

const (
	spineGapCap      = 170 // Widest gap a full-speed jump clears with a RiseMax climb
	moverSlack       = 4   // Deflation applied to mover envelopes before overlap checks
	minMoverWidth    = 60
	pickupPadding    = 4
	coinSurfaceOdds  = 0.6
	fallbackInset    = 80
	fallbackStep     = 40
	spawnInset       = 40
	goalInset        = 40
	walkerPatrolEdge = 8
)

var themeStyles = []entity.Style{entity.StyleBrick, entity.StyleStone, entity.StyleNeon, entity.StyleCrystal}

var powerUps = []entity.PickupKind{entity.PickupDoubleJump, entity.PickupSword, entity.PickupShield}

// Generator produces normal stages, boss arenas and the secret planar arena.
type Generator struct {
	config *config.Tuning
	logger *log.Logger
}

// New creates a generator. A nil logger discards output.
func New(cfg *config.Tuning, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Generator{config: cfg, logger: logger}
}

// KindOf returns the stage variant at index within a pack.
func (g *Generator) KindOf(index int) entity.LevelKind {
	switch index {
	case g.config.Run.BossIndex:
		return entity.LevelBoss
	case g.config.Run.SecretIndex:
		return entity.LevelSecret
	default:
		return entity.LevelNormal
	}
}

// Generate builds stage index of the given kind. The same source state and
// index always produce the same blueprint.
func (g *Generator) Generate(index int, kind entity.LevelKind, src Source) *stage.Blueprint {
	b := newBuilder(g.config, index, kind, NewRandom(src))
	switch kind {
	case entity.LevelBoss:
		b.bossArena()
	case entity.LevelSecret:
		b.secretArena()
	default:
		b.normal()
	}

	for _, m := range b.misses {
		g.logger.Debug("generation target unmet", "stage", index, "kind", kind, "target", m.target, "placed", m.placed, "wanted", m.wanted)
	}

	bp, err := stage.Freeze(b.layout)
	if err != nil {
		panic(fmt.Sprintf("levelgen: %v", err))
	}
	return bp
}

// GeneratePack builds count stages. Stage i uses StageSeed(seed, i).
func (g *Generator) GeneratePack(seed int64, count int) []*stage.Blueprint {
	pack := make([]*stage.Blueprint, 0, count)
	for i := range count {
		pack = append(pack, g.Generate(i, g.KindOf(i), NewSource(StageSeed(seed, i))))
	}
	g.logger.Debug("generated pack", "seed", seed, "stages", count)
	return pack
}

type miss struct {
	target         string
	placed, wanted int
}

// builder accumulates one stage layout.
type builder struct {
	cfg   *config.Tuning
	gen   config.GeneratorConfig
	rnd   *Random
	index int

	layout   stage.Layout
	spine    []geom.Rect // Guaranteed route, left to right
	floaters []geom.Rect
	blocked  []geom.Rect // Static platforms and mover envelopes
	occupied []geom.Rect // Goal, shooters and pickups
	misses   []miss
}

func newBuilder(cfg *config.Tuning, index int, kind entity.LevelKind, rnd *Random) *builder {
	return &builder{
		cfg:   cfg,
		gen:   cfg.Generator,
		rnd:   rnd,
		index: index,
		layout: stage.Layout{
			Index: index,
			Kind:  kind,
			Theme: index % max(1, cfg.Generator.Themes),
		},
	}
}

func (b *builder) normal() {
	b.buildSpine()
	b.scatterFloaters()
	b.placeMovers()
	b.applyBounciness()
	b.placeWalkers()
	b.placeShooters()
	b.placeCoins(b.reachableSurfaces())
	b.placePowerUps(b.reachableSurfaces())
	b.finish()
}

func (b *builder) addPlatform(r geom.Rect, style entity.Style, spine bool) {
	b.layout.Platforms = append(b.layout.Platforms, stage.PlatformSpec{Rect: r, Style: style, Spine: spine})
	b.blocked = append(b.blocked, r)
}

func (b *builder) addMover(m stage.MoverSpec) {
	b.layout.Movers = append(b.layout.Movers, m)
	b.blocked = append(b.blocked, m.Envelope())
}

func (b *builder) addPickup(kind entity.PickupKind, r geom.Rect, respawn bool) {
	b.layout.Pickups = append(b.layout.Pickups, stage.PickupSpec{Kind: kind, Rect: r, Respawn: respawn})
	b.occupied = append(b.occupied, r)
}

func (b *builder) missed(target string, placed, wanted int) {
	b.misses = append(b.misses, miss{target: target, placed: placed, wanted: wanted})
}

// placeable reports whether a pickup fits at r without touching geometry,
// the goal, shooters or other pickups.
func (b *builder) placeable(r geom.Rect) bool {
	return Clear(r.Inflate(pickupPadding, pickupPadding), b.blocked) && Clear(r, b.occupied)
}

// hoverRect returns the pickup box centered CoinHover above x on surface s.
func (b *builder) hoverRect(x float64, s geom.Rect) geom.Rect {
	size := b.gen.CoinSize
	return geom.NewRect(x, s.Y-b.gen.CoinHover-size/2, size, size)
}

// buildSpine lays out the chain of ground segments from spawn to goal.
// Gaps and rises stay within what a single jump can clear.
func (b *builder) buildSpine() {
	g := b.gen
	n := min(g.SpineMax, g.SpineBase+int(g.SpinePerStage*float64(b.index)))
	gapMax := min(g.GapMax+g.GapPerStage*float64(b.index), spineGapCap)
	style := themeStyles[b.layout.Theme%len(themeStyles)]

	x := 0.0
	top := g.AltitudeMax - 2*g.PlatformHeight
	for i := range n {
		w := g.SegmentWidthMax
		if i > 0 && i < n-1 {
			w = b.rnd.Range(g.SegmentWidthMin, g.SegmentWidthMax)
		}
		if i > 0 {
			x += b.rnd.Range(g.GapMin, max(g.GapMin, gapMax))
			top = geom.Clamp(top+b.rnd.Range(-g.RiseMax, g.RiseMax), g.AltitudeMin, g.AltitudeMax)
		}
		r := geom.NewRect(x, top, w, g.PlatformHeight)
		b.spine = append(b.spine, r)
		b.addPlatform(r, style, true)
		x += w
	}

	first, last := b.spine[0], b.spine[n-1]
	b.layout.Spawn = geom.Vec{X: first.X + spawnInset, Y: first.Y - b.cfg.Player.Height}
	b.layout.Goal = geom.NewRect(last.Right()-g.GoalWidth-goalInset, last.Y-g.GoalHeight, g.GoalWidth, g.GoalHeight)
	b.occupied = append(b.occupied, b.layout.Goal)
}

// scatterFloaters adds optional ledges above interior spine segments,
// rejecting any that would leave less than Headroom of vertical clearance.
func (b *builder) scatterFloaters() {
	g := b.gen
	for i := 1; i < len(b.spine)-1; i++ {
		if !b.rnd.Chance(g.FloaterChance) {
			continue
		}
		seg := b.spine[i]
		w := min(b.rnd.Range(g.FloaterWidthMin, g.FloaterWidthMax), seg.W)
		rise := b.rnd.Range(g.FloaterRiseMin, g.FloaterRiseMax)
		x := seg.X + b.rnd.Range(0, seg.W-w)
		r := geom.NewRect(x, seg.Y-rise, w, g.PlatformHeight)

		if !Clear(r.Inflate(0, g.Headroom), b.blocked) {
			continue
		}
		b.floaters = append(b.floaters, r)
		b.addPlatform(r, entity.StyleNeon, false)
	}
}

// placeMovers tries to place the stage's kinematic platforms with a bounded
// number of attempts. Candidates whose deflated envelope overlaps existing
// geometry are rejected.
func (b *builder) placeMovers() {
	g := b.gen
	want := g.MoversBase + int(g.MoversPerStage*float64(b.index))
	if len(b.spine) < 3 || want <= 0 {
		return
	}

	placed := 0
	for attempt := 0; placed < want && attempt < want*g.MoverAttempts; attempt++ {
		i := b.rnd.IntRange(1, len(b.spine)-2)
		var (
			m  stage.MoverSpec
			ok bool
		)
		if b.rnd.Chance(0.5) {
			m, ok = b.horizontalMover(i)
		} else {
			m, ok = b.verticalMover(i)
		}
		if !ok || !Clear(m.Envelope().Deflate(moverSlack), b.blocked) {
			continue
		}
		b.addMover(m)
		placed++
	}
	if placed < want {
		b.missed("movers", placed, want)
	}
}

// horizontalMover patrols above spine segment i, reaching out over the next gap.
func (b *builder) horizontalMover(i int) (stage.MoverSpec, bool) {
	g := b.gen
	seg := b.spine[i]
	y := seg.Y - b.rnd.Range(g.FloaterRiseMin, g.FloaterRiseMax)
	r := geom.NewRect(seg.X, y, g.MoverWidth, g.PlatformHeight)
	return stage.MoverSpec{
		Rect:   r,
		Style:  entity.StyleCrystal,
		MinX:   seg.X,
		MaxX:   seg.X + g.MoverTravel,
		MinY:   y,
		MaxY:   y,
		SpeedX: g.MoverSpeed,
	}, true
}

// verticalMover is a lift inside the gap after spine segment i.
func (b *builder) verticalMover(i int) (stage.MoverSpec, bool) {
	g := b.gen
	seg, next := b.spine[i], b.spine[i+1]
	gap := next.X - seg.Right()
	w := min(g.MoverWidth, gap-2*moverSlack)
	if w < minMoverWidth {
		return stage.MoverSpec{}, false
	}
	x := seg.Right() + (gap-w)/2
	maxY := max(seg.Y, next.Y)
	minY := min(seg.Y, next.Y) - g.MoverTravel/2
	return stage.MoverSpec{
		Rect:   geom.NewRect(x, maxY, w, g.PlatformHeight),
		Style:  entity.StyleCrystal,
		MinX:   x,
		MaxX:   x,
		MinY:   minY,
		MaxY:   maxY,
		SpeedY: g.MoverSpeed,
	}, true
}

// applyBounciness turns some platforms into bounce pads. The spawn and goal
// segments are never bouncy.
func (b *builder) applyBounciness() {
	g := b.gen
	p := min(g.BouncyMax, g.BouncyPerStage*float64(b.index))
	last := len(b.spine) - 1
	for i := range b.layout.Platforms {
		if i == 0 || i == last {
			continue
		}
		if b.rnd.Chance(p) {
			b.layout.Platforms[i].Bouncy = true
			b.layout.Platforms[i].BounceVelocity = g.BounceVelocity
		}
	}
	for i := range b.layout.Movers {
		if b.rnd.Chance(p) {
			b.layout.Movers[i].Bouncy = true
			b.layout.Movers[i].BounceVelocity = g.BounceVelocity
		}
	}
}

// placeWalkers puts patrolling enemies on wide interior spine segments.
func (b *builder) placeWalkers() {
	g := b.gen
	ec := b.cfg.Enemies
	for i := 1; i < len(b.spine)-1; i++ {
		seg := b.spine[i]
		if seg.W < g.WalkerMinWidth || !b.rnd.Chance(g.WalkerChance) {
			continue
		}
		zone := geom.NewRect(seg.X, seg.Y-ec.WalkerHeight, seg.W, ec.WalkerHeight)
		if !Clear(zone.Deflate(1), b.blocked) {
			continue
		}
		left, right := seg.X+walkerPatrolEdge, seg.Right()-walkerPatrolEdge
		health := ec.WalkerHealth
		if b.rnd.Chance(g.ToughPerStage * float64(b.index)) {
			health = ec.ToughHealth
		}
		x := b.rnd.Range(left, right-ec.WalkerWidth)
		b.layout.Walkers = append(b.layout.Walkers, stage.WalkerSpec{
			Rect:        geom.NewRect(x, seg.Y-ec.WalkerHeight, ec.WalkerWidth, ec.WalkerHeight),
			PatrolLeft:  left,
			PatrolRight: right,
			Health:      health,
		})
	}
}

// placeShooters puts turrets at the far end of wide segments that have no
// walker and enough open space above.
func (b *builder) placeShooters() {
	g := b.gen
	ec := b.cfg.Enemies
	want := min(g.ShootersMax, (b.index+1)/2)
	if want <= 0 {
		return
	}

	var candidates []geom.Rect
	for i := 1; i < len(b.spine)-1; i++ {
		seg := b.spine[i]
		if seg.W < g.ShooterMinWidth || b.hasWalker(seg) {
			continue
		}
		candidates = append(candidates, seg)
	}
	b.rnd.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	placed := 0
	for _, seg := range candidates {
		if placed == want {
			break
		}
		r := geom.NewRect(seg.Right()-ec.ShooterWidth-walkerPatrolEdge, seg.Y-ec.ShooterHeight, ec.ShooterWidth, ec.ShooterHeight)
		above := geom.NewRect(r.X-walkerPatrolEdge, seg.Y-g.ShooterClearance, r.W+2*walkerPatrolEdge, g.ShooterClearance)
		if !Clear(above, b.blocked) {
			continue
		}
		b.layout.Shooters = append(b.layout.Shooters, stage.ShooterSpec{
			Rect:     r,
			Cooldown: b.rnd.Range(ec.ShooterCooldown/2, ec.ShooterCooldown),
		})
		b.occupied = append(b.occupied, r)
		placed++
	}
	if placed < want {
		b.missed("shooters", placed, want)
	}
}

func (b *builder) hasWalker(seg geom.Rect) bool {
	for _, w := range b.layout.Walkers {
		if w.Rect.OverlapsX(seg) && geom.Abs(w.Rect.Bottom()-seg.Y) < 1 {
			return true
		}
	}
	return false
}

// reachableSurfaces returns the spine plus every floater reachable from it,
// directly or through other reachable floaters.
func (b *builder) reachableSurfaces() []geom.Rect {
	out := append([]geom.Rect(nil), b.spine...)
	pending := append([]geom.Rect(nil), b.floaters...)
	for grew := true; grew; {
		grew = false
		rest := pending[:0]
		for _, f := range pending {
			if Reachable(f, out, b.gen.ReachRise, b.gen.ReachMargin) {
				out = append(out, f)
				grew = true
			} else {
				rest = append(rest, f)
			}
		}
		pending = rest
	}
	return out
}

// placeCoins spreads coins evenly above some reachable surfaces.
func (b *builder) placeCoins(surfaces []geom.Rect) {
	g := b.gen
	for _, s := range surfaces {
		if !b.rnd.Chance(coinSurfaceOdds) {
			continue
		}
		n := b.rnd.IntRange(1, g.CoinsPerSurface)
		for k := range n {
			x := s.X + s.W*float64(k+1)/float64(n+1) - g.CoinSize/2
			r := b.hoverRect(x, s)
			if b.placeable(r) {
				b.addPickup(entity.PickupCoin, r, false)
			}
		}
	}
}

// placePowerUps places each power-up once on a random reachable surface.
// When every attempt fails it falls back to the spawn segment.
func (b *builder) placePowerUps(surfaces []geom.Rect) {
	g := b.gen
	for _, kind := range powerUps {
		placed := false
		for range g.PowerUpAttempts {
			s := surfaces[b.rnd.IntRange(0, len(surfaces)-1)]
			r := b.hoverRect(b.rnd.Range(s.X, s.Right()-g.CoinSize), s)
			if b.placeable(r) {
				b.addPickup(kind, r, false)
				placed = true
				break
			}
		}
		if !placed && !b.placeFallback(kind) {
			b.missed(kind.String(), 0, 1)
		}
	}
}

// placeFallback walks slots along the spawn segment.
func (b *builder) placeFallback(kind entity.PickupKind) bool {
	anchor := b.spine[0]
	for x := anchor.X + fallbackInset; x+b.gen.CoinSize <= anchor.Right(); x += fallbackStep {
		r := b.hoverRect(x, anchor)
		if b.placeable(r) {
			b.addPickup(kind, r, false)
			return true
		}
	}
	return false
}

// finish sets the kill plane below the lowest geometry and the stage length
// past the rightmost.
func (b *builder) finish() {
	lowest, rightmost := 0.0, 0.0
	for _, r := range b.blocked {
		lowest = max(lowest, r.Bottom())
		rightmost = max(rightmost, r.Right())
	}
	b.layout.KillPlaneY = lowest + b.gen.KillPlaneMargin
	b.layout.Length = rightmost + b.gen.LengthMargin
}
