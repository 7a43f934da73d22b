package levelgen_test

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/younwookim/neonrun/internal/application/levelgen"
	levelgenmock "github.com/younwookim/neonrun/internal/application/levelgen/mock"
	"github.com/younwookim/neonrun/internal/application/stage"
	"github.com/younwookim/neonrun/internal/domain/entity"
	"github.com/younwookim/neonrun/internal/domain/geom"
	"github.com/younwookim/neonrun/internal/infrastructure/config"
)

const seedsPerCheck = 40

type GeneratorTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockSource *levelgenmock.MockSource
	cfg        *config.Tuning
	gen        *levelgen.Generator
}

func (s *GeneratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockSource = levelgenmock.NewMockSource(s.ctrl)
	s.cfg = config.Default()
	s.gen = levelgen.New(s.cfg, log.New(io.Discard))
}

func (s *GeneratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestGeneratorTestSuite(t *testing.T) {
	suite.Run(t, new(GeneratorTestSuite))
}

func (s *GeneratorTestSuite) normal(seed int64, index int) *stage.Blueprint {
	return s.gen.Generate(index, entity.LevelNormal, levelgen.NewSource(seed))
}

func spineOf(bp *stage.Blueprint) []geom.Rect {
	var out []geom.Rect
	for _, p := range bp.Platforms() {
		if p.Spine {
			out = append(out, p.Rect)
		}
	}
	return out
}

// reachableSet returns, for every platform, whether it can be reached from
// the spine through a chain of reachable surfaces.
func (s *GeneratorTestSuite) reachableSet(plats []stage.PlatformSpec) []bool {
	g := s.cfg.Generator
	ok := make([]bool, len(plats))
	var from []geom.Rect
	for i, p := range plats {
		if p.Spine {
			ok[i] = true
			from = append(from, p.Rect)
		}
	}
	for grew := true; grew; {
		grew = false
		for i, p := range plats {
			if !ok[i] && levelgen.Reachable(p.Rect, from, g.ReachRise, g.ReachMargin) {
				ok[i] = true
				from = append(from, p.Rect)
				grew = true
			}
		}
	}
	return ok
}

func (s *GeneratorTestSuite) TestDeterminism() {
	s.Run("same seed and index give identical blueprints", func() {
		for index := range 6 {
			a := s.normal(99, index)
			b := s.normal(99, index)
			s.Equal(a.Layout(), b.Layout())
		}
	})

	s.Run("different seeds differ", func() {
		s.NotEqual(s.normal(1, 2).Layout(), s.normal(2, 2).Layout())
	})

	s.Run("packs are reproducible", func() {
		s.Equal(s.gen.GeneratePack(7, 6)[4].Layout(), s.gen.GeneratePack(7, 6)[4].Layout())
	})
}

func (s *GeneratorTestSuite) TestReachability() {
	hover := s.cfg.Generator.CoinHover
	for seed := range int64(seedsPerCheck) {
		for index := range 6 {
			bp := s.normal(seed, index)
			plats := bp.Platforms()
			rects := make([]geom.Rect, len(plats))
			for i, p := range plats {
				rects[i] = p.Rect
			}
			reach := s.reachableSet(plats)

			for _, pk := range bp.Pickups() {
				i := levelgen.SupportOf(pk.Rect, rects, hover)
				s.Require().GreaterOrEqual(i, 0, "seed %d stage %d: %s floats over nothing", seed, index, pk.Kind)
				s.True(reach[i], "seed %d stage %d: %s on an unreachable surface", seed, index, pk.Kind)
			}
		}
	}
}

func (s *GeneratorTestSuite) TestSpineLimits() {
	g := s.cfg.Generator
	for seed := range int64(seedsPerCheck) {
		for index := range 8 {
			bp := s.normal(seed, index)
			spine := spineOf(bp)
			s.Require().GreaterOrEqual(len(spine), g.SpineBase)
			s.LessOrEqual(len(spine), g.SpineMax)

			for i, seg := range spine {
				s.GreaterOrEqual(seg.Y, g.AltitudeMin)
				s.LessOrEqual(seg.Y, g.AltitudeMax)
				if i == 0 {
					continue
				}
				prev := spine[i-1]
				gap := seg.X - prev.Right()
				s.GreaterOrEqual(gap, g.GapMin)
				s.LessOrEqual(gap, 170.0)
				s.LessOrEqual(geom.Abs(seg.Y-prev.Y), g.RiseMax+1e-9)
			}

			plats := bp.Platforms()
			s.False(plats[0].Bouncy, "spawn segment is never bouncy")
			s.False(plats[len(spine)-1].Bouncy, "goal segment is never bouncy")

			last := spine[len(spine)-1]
			goal := bp.Goal()
			s.InDelta(last.Y, goal.Bottom(), 1e-6, "goal stands on the last segment")
			s.True(goal.OverlapsX(last))
			s.InDelta(spine[0].Y, bp.Spawn().Y+s.cfg.Player.Height, 1e-6)
		}
	}
}

func (s *GeneratorTestSuite) TestMoverPlacement() {
	withMovers := 0
	for seed := range int64(seedsPerCheck) {
		bp := s.normal(seed, 4)
		movers := bp.Movers()
		if len(movers) > 0 {
			withMovers++
		}
		for i, m := range movers {
			env := m.Envelope().Deflate(4)
			for _, p := range bp.Platforms() {
				s.False(env.Intersects(p.Rect), "seed %d: mover %d overlaps a platform", seed, i)
			}
			for j, o := range movers {
				if i != j {
					s.False(env.Intersects(o.Envelope()), "seed %d: movers %d and %d overlap", seed, i, j)
				}
			}
		}
	}
	s.Positive(withMovers, "some stages get movers")
}

func (s *GeneratorTestSuite) TestBounds() {
	for seed := range int64(seedsPerCheck) {
		bp := s.normal(seed, 3)
		for _, p := range bp.Platforms() {
			s.Less(p.Rect.Bottom(), bp.KillPlaneY())
			s.Less(p.Rect.Right(), bp.Length())
		}
		for _, m := range bp.Movers() {
			s.Less(m.Envelope().Bottom(), bp.KillPlaneY())
		}
	}
}

func (s *GeneratorTestSuite) TestEnemies() {
	ec := s.cfg.Enemies
	shooters := 0
	for seed := range int64(seedsPerCheck) {
		bp := s.normal(seed, 5)
		spine := spineOf(bp)
		for _, w := range bp.Walkers() {
			s.GreaterOrEqual(w.Rect.X, w.PatrolLeft)
			s.LessOrEqual(w.Rect.Right(), w.PatrolRight)
			s.Contains([]int{ec.WalkerHealth, ec.ToughHealth}, w.Health)
			standing := false
			for _, seg := range spine {
				if seg.OverlapsX(w.Rect) && geom.Abs(seg.Y-w.Rect.Bottom()) < 1e-6 {
					standing = true
				}
			}
			s.True(standing, "seed %d: walker stands on a spine segment", seed)
		}
		s.LessOrEqual(len(bp.Shooters()), s.cfg.Generator.ShootersMax)
		shooters += len(bp.Shooters())
		for _, sh := range bp.Shooters() {
			s.False(sh.Rect.Intersects(bp.Goal()))
		}
	}
	s.Positive(shooters)

	s.Empty(s.normal(1, 0).Shooters(), "no shooters on the first stage")
}

func (s *GeneratorTestSuite) TestBossArena() {
	for _, index := range []int{0, 5, 9} {
		bp := s.gen.Generate(index, entity.LevelBoss, levelgen.NewSource(3))
		boss, ok := bp.Boss()
		s.Require().True(ok)
		s.Equal(s.cfg.Boss.BaseHealth+index/s.cfg.Boss.HealthDivisor, boss.Health)
		s.True(boss.Region.Contains(boss.Rect.Pos()))

		var swords int
		for _, pk := range bp.Pickups() {
			if pk.Kind == entity.PickupSword {
				swords++
				s.True(pk.Respawn, "arena sword respawns")
			}
		}
		s.Equal(1, swords)

		inst := stage.NewInstance(bp, s.cfg, 1)
		s.False(inst.IsGoalActive(), "goal locked while the boss lives")
	}
}

func (s *GeneratorTestSuite) TestSecretArena() {
	bp := s.gen.Generate(3, entity.LevelSecret, levelgen.NewSource(11))
	s.Equal(entity.LevelSecret, bp.Kind())
	s.Positive(bp.CoinCount())

	var solids []geom.Rect
	for _, p := range bp.Platforms() {
		solids = append(solids, p.Rect)
	}
	spawn := geom.NewRect(bp.Spawn().X, bp.Spawn().Y, s.cfg.Player.Width, s.cfg.Player.Height)
	s.True(levelgen.Clear(spawn, solids), "spawn is free")
	for _, pk := range bp.Pickups() {
		s.True(levelgen.Clear(pk.Rect, solids), "coin inside a pillar")
	}

	inst := stage.NewInstance(bp, s.cfg, 1)
	s.Equal(entity.ModePlanar, inst.Snapshot().Player.Mode)
}

func (s *GeneratorTestSuite) TestGeneratePack() {
	pack := s.gen.GeneratePack(7, s.cfg.Run.StageCount)
	s.Require().Len(pack, s.cfg.Run.StageCount)
	for i, bp := range pack {
		s.Equal(i, bp.Index())
		s.Equal(s.gen.KindOf(i), bp.Kind())
		again := s.gen.Generate(i, bp.Kind(), levelgen.NewSource(levelgen.StageSeed(7, i)))
		s.Equal(again.Layout(), bp.Layout(), "stage %d uses its derived seed", i)
	}
	s.Equal(entity.LevelBoss, pack[s.cfg.Run.BossIndex].Kind())
	s.Equal(entity.LevelSecret, pack[s.cfg.Run.SecretIndex].Kind())
}

// With a source that always returns zero every power-up lands on the same
// spot, so all but the first must come from the fallback anchor.
func (s *GeneratorTestSuite) TestPowerUpFallback() {
	s.mockSource.EXPECT().Float64().Return(0.0).AnyTimes()
	s.mockSource.EXPECT().Intn(gomock.Any()).Return(0).AnyTimes()
	s.mockSource.EXPECT().Shuffle(gomock.Any(), gomock.Any()).AnyTimes()

	bp := s.gen.Generate(0, entity.LevelNormal, s.mockSource)
	spine := spineOf(bp)

	got := map[entity.PickupKind]geom.Rect{}
	for _, pk := range bp.Pickups() {
		if pk.Kind != entity.PickupCoin {
			got[pk.Kind] = pk.Rect
		}
	}
	s.Require().Len(got, 3)
	s.Equal(spine[0].X, got[entity.PickupDoubleJump].X)
	s.Equal(spine[0].X+80, got[entity.PickupSword].X)
	s.Equal(spine[0].X+120, got[entity.PickupShield].X)
	for kind, r := range got {
		s.Equal(0, levelgen.SupportOf(r, spine, s.cfg.Generator.CoinHover), "%s on the spawn segment", kind)
	}
}

func (s *GeneratorTestSuite) TestRandom() {
	r := levelgen.NewRandom(s.mockSource)

	s.Run("range scales the draw", func() {
		s.mockSource.EXPECT().Float64().Return(0.5)
		s.InDelta(15.0, r.Range(10, 20), 1e-9)
	})

	s.Run("empty range does not draw", func() {
		s.Equal(5.0, r.Range(5, 5))
		s.Equal(3, r.IntRange(3, 1))
	})

	s.Run("int range is inclusive", func() {
		s.mockSource.EXPECT().Intn(3).Return(2)
		s.Equal(3, r.IntRange(1, 3))
	})

	s.Run("chance", func() {
		s.mockSource.EXPECT().Float64().Return(0.3).Times(2)
		s.True(r.Chance(0.5))
		s.False(r.Chance(0.2))
		s.False(r.Chance(0), "zero probability does not draw")
	})

	s.Run("weighted skips empty weights", func() {
		s.mockSource.EXPECT().Float64().Return(0.5)
		s.Equal(2, r.Weighted([]float64{1, 0, 3}))
		s.Equal(-1, r.Weighted([]float64{0, -1}))
	})
}

func BenchmarkGenerate(b *testing.B) {
	gen := levelgen.New(config.Default(), nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gen.Generate(i%8, entity.LevelNormal, levelgen.NewSource(int64(i)))
	}
}
