package levelgen

import (
	"github.com/younwookim/neonrun/internal/application/stage"
	"github.com/younwookim/neonrun/internal/domain/entity"
	"github.com/younwookim/neonrun/internal/domain/geom"
)

// Arena dimensions shared by the boss and secret variants.
const (
	arenaWidth     = 1200
	arenaHeight    = 440
	arenaWall      = 24
	arenaFloor     = 40
	bossLedges     = 3
	bossLedgeWidth = 140

	secretWidth     = 1400
	secretHeight    = 480
	secretPillarsLo = 4
	secretPillarsHi = 7
	secretCoinsLo   = 10
	secretCoinsHi   = 16
	secretAttempts  = 40
	pillarSpacing   = 60
)

// enclose adds floor, ceiling and side walls around a width x height room
// whose floor top is at floorY.
func (b *builder) enclose(width, height, floorY float64) {
	top := floorY - height
	b.addPlatform(geom.NewRect(0, floorY, width, arenaFloor), entity.StyleArena, true)
	b.addPlatform(geom.NewRect(0, top-arenaWall, width, arenaWall), entity.StyleArena, false)
	b.addPlatform(geom.NewRect(0, top, arenaWall, height), entity.StyleArena, false)
	b.addPlatform(geom.NewRect(width-arenaWall, top, arenaWall, height), entity.StyleArena, false)
}

// bossArena is a closed room with a few ledges, a respawning sword near the
// spawn and a goal that stays locked until the boss is defeated.
func (b *builder) bossArena() {
	g := b.gen
	bc := b.cfg.Boss
	floorY := g.AltitudeMax
	top := floorY - arenaHeight

	b.enclose(arenaWidth, arenaHeight, floorY)
	floor := b.layout.Platforms[0].Rect
	b.spine = append(b.spine, floor)

	b.layout.Spawn = geom.Vec{X: arenaWall + spawnInset, Y: floorY - b.cfg.Player.Height}
	b.layout.Goal = geom.NewRect(arenaWidth-arenaWall-goalInset-g.GoalWidth, floorY-g.GoalHeight, g.GoalWidth, g.GoalHeight)
	b.occupied = append(b.occupied, b.layout.Goal)

	// One tier of ledges reachable from the floor, and a crown ledge above the middle one.
	slot := (arenaWidth - 2*arenaWall) / float64(bossLedges)
	var middle geom.Rect
	for k := range bossLedges {
		w := b.rnd.Range(bossLedgeWidth, bossLedgeWidth+60)
		x := arenaWall + slot*float64(k) + (slot-w)/2 + b.rnd.Range(-30, 30)
		y := floorY - b.rnd.Range(g.FloaterRiseMin, g.FloaterRiseMin+30)
		r := geom.NewRect(x, y, w, g.PlatformHeight)
		b.floaters = append(b.floaters, r)
		b.addPlatform(r, entity.StyleNeon, false)
		if k == bossLedges/2 {
			middle = r
		}
	}
	crown := geom.NewRect(middle.X+middle.W/2-bossLedgeWidth/2, middle.Y-g.FloaterRiseMin, bossLedgeWidth, g.PlatformHeight)
	if Clear(crown.Inflate(0, g.Headroom/2), b.blocked) {
		b.floaters = append(b.floaters, crown)
		b.addPlatform(crown, entity.StyleNeon, false)
	}

	region := geom.NewRect(arenaWall*4, top+arenaWall, arenaWidth-arenaWall*8, arenaHeight/2)
	b.layout.Boss = &stage.BossSpec{
		Rect:   geom.NewRect(region.X+region.W/2-bc.Width/2, region.Y, bc.Width, bc.Height),
		Region: region,
		Health: bc.BaseHealth + b.index/max(1, bc.HealthDivisor),
	}

	sword := b.hoverRect(b.layout.Spawn.X+fallbackInset+b.cfg.Player.Width, floor)
	b.addPickup(entity.PickupSword, sword, true)

	b.placeCoins(b.reachableSurfaces()[1:])
	b.finish()
	b.layout.Length = arenaWidth
}

// secretArena is a planar bonus room: no gravity, the vertical axis is depth.
// Pillars break up the floor and coins are scattered between them.
func (b *builder) secretArena() {
	g := b.gen
	floorY := g.AltitudeMax
	top := floorY - secretHeight

	b.enclose(secretWidth, secretHeight, floorY)
	b.spine = append(b.spine, b.layout.Platforms[0].Rect)

	midY := top + secretHeight/2
	pc := b.cfg.Player
	b.layout.Spawn = geom.Vec{X: arenaWall + spawnInset, Y: midY - pc.Height/2}
	b.layout.Goal = geom.NewRect(secretWidth-arenaWall-goalInset-g.GoalWidth, midY-g.GoalHeight/2, g.GoalWidth, g.GoalHeight)

	room := geom.NewRect(arenaWall, top, secretWidth-2*arenaWall, secretHeight)
	spawnZone := geom.NewRect(b.layout.Spawn.X, b.layout.Spawn.Y, pc.Width, pc.Height).Inflate(pillarSpacing*2, pillarSpacing)
	keepOut := []geom.Rect{spawnZone, b.layout.Goal.Inflate(pillarSpacing, pillarSpacing)}

	pillars := b.rnd.IntRange(secretPillarsLo, secretPillarsHi)
	for range secretAttempts {
		if pillars == 0 {
			break
		}
		w := b.rnd.Range(60, 110)
		h := b.rnd.Range(60, 110)
		r := geom.NewRect(b.rnd.Range(room.X, room.Right()-w), b.rnd.Range(room.Y, room.Bottom()-h), w, h)
		spaced := r.Inflate(pillarSpacing, pillarSpacing)
		if !Clear(spaced, b.blocked) || !Clear(r, keepOut) {
			continue
		}
		b.addPlatform(r, entity.StyleCrystal, false)
		pillars--
	}

	b.occupied = append(b.occupied, b.layout.Goal)
	coins := b.rnd.IntRange(secretCoinsLo, secretCoinsHi)
	size := g.CoinSize
	placed := 0
	for range secretAttempts * 2 {
		if placed == coins {
			break
		}
		r := geom.NewRect(b.rnd.Range(room.X, room.Right()-size), b.rnd.Range(room.Y, room.Bottom()-size), size, size)
		if b.placeable(r) {
			b.addPickup(entity.PickupCoin, r, false)
			placed++
		}
	}
	if placed < coins {
		b.missed("coins", placed, coins)
	}

	b.finish()
	b.layout.Length = secretWidth
}
