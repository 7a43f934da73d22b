package config

import (
	"errors"
	"fmt"
)

// Default returns the built-in tuning. It matches cmd/game/configs/tuning.yaml.
func Default() *Tuning {
	return &Tuning{
		Display: DisplayConfig{
			ScreenWidth:  960,
			ScreenHeight: 600,
			TPS:          60,
			Title:        "Neon Run",
		},
		Physics: PhysicsConfig{
			TargetFPS:        60,
			FrameScaleCap:    3,
			Gravity:          0.65,
			MaxFallSpeed:     18,
			MoveSpeed:        6,
			Smoothing:        0.25,
			VelocityEpsilon:  0.05,
			JumpVelocity:     -15.5,
			DoubleJumpFactor: 0.85,
			PlanarSpeed:      4,
			LandingEpsilon:   0.5,
		},
		Player: PlayerConfig{
			Width:          28,
			Height:         44,
			MaxDoubleJumps: 3,
			MaxSword:       5,
			MaxShield:      3,
			InvincibleTime: 1.5,
			ShieldTime:     3,
			SwordCooldown:  0.35,
			BeamSpeed:      12,
			BeamRadius:     8,
			BeamLife:       1.2,
			StompTolerance: 20,
			StompBounce:    0.6,
			SwordPerPickup: 3,
			GoalReach:      20,
			GoalLockTime:   0.5,
		},
		Enemies: EnemyConfig{
			WalkerWidth:      32,
			WalkerHeight:     32,
			WalkerSpeed:      1.5,
			WalkerHealth:     1,
			ToughHealth:      2,
			InvulnTime:       0.3,
			DeathTime:        0.5,
			ShooterWidth:     32,
			ShooterHeight:    40,
			ShooterHealth:    1,
			ShooterCooldown:  2.2,
			ShooterJitter:    1,
			ShooterRange:     520,
			ProjectileSpeed:  5,
			ProjectileRadius: 6,
			ProjectileLife:   4,
		},
		Boss: BossConfig{
			Width:           96,
			Height:          96,
			BaseHealth:      5,
			HealthDivisor:   3,
			Speed:           2.2,
			InvulnTime:      0.8,
			AttackInterval:  2.4,
			VolleySize:      3,
			VolleySpread:    0.25,
			ShotSpeed:       5.5,
			ShotRadius:      9,
			ShotLife:        5,
			CelebrationTime: 2.5,
			SwordRespawn:    6,
		},
		Scoring: ScoringConfig{
			Coin:          100,
			PowerUp:       50,
			Stomp:         150,
			ShooterKill:   200,
			BossKill:      1000,
			Goal:          500,
			ComboWindow:   2.5,
			ComboStep:     0.5,
			TimeBonusBase: 2500,
			TimeBonusRate: 30,
		},
		Run: RunConfig{
			Lives:       3,
			StageCount:  6,
			BossIndex:   5,
			SecretIndex: 3,
		},
		Generator: GeneratorConfig{
			SpineBase:        8,
			SpinePerStage:    1,
			SpineMax:         16,
			SegmentWidthMin:  160,
			SegmentWidthMax:  320,
			GapMin:           60,
			GapMax:           120,
			GapPerStage:      8,
			RiseMax:          90,
			AltitudeMin:      260,
			AltitudeMax:      520,
			PlatformHeight:   24,
			FloaterChance:    0.45,
			FloaterRiseMin:   110,
			FloaterRiseMax:   150,
			FloaterWidthMin:  90,
			FloaterWidthMax:  160,
			Headroom:         70,
			MoversBase:       1,
			MoversPerStage:   0.5,
			MoverAttempts:    12,
			MoverWidth:       110,
			MoverTravel:      160,
			MoverSpeed:       1.6,
			BouncyPerStage:   0.04,
			BouncyMax:        0.25,
			BounceVelocity:   -19,
			WalkerChance:     0.5,
			WalkerMinWidth:   140,
			ToughPerStage:    0.06,
			ShootersMax:      3,
			ShooterMinWidth:  200,
			ShooterClearance: 160,
			CoinsPerSurface:  3,
			CoinSize:         24,
			CoinHover:        40,
			PowerUpAttempts:  24,
			ReachRise:        150,
			ReachMargin:      60,
			GoalWidth:        40,
			GoalHeight:       120,
			KillPlaneMargin:  200,
			LengthMargin:     200,
			Themes:           4,
		},
	}
}

// Validate reports every invalid field at once.
func (t *Tuning) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	p := t.Physics
	check(p.TargetFPS > 0, "physics.targetFPS must be positive, got %v", p.TargetFPS)
	check(p.FrameScaleCap > 0, "physics.frameScaleCap must be positive, got %v", p.FrameScaleCap)
	check(p.Gravity > 0, "physics.gravity must be positive, got %v", p.Gravity)
	check(p.MaxFallSpeed > 0, "physics.maxFallSpeed must be positive, got %v", p.MaxFallSpeed)
	check(p.Smoothing > 0 && p.Smoothing <= 1, "physics.smoothing must be in (0, 1], got %v", p.Smoothing)
	check(p.JumpVelocity < 0, "physics.jumpVelocity must be negative, got %v", p.JumpVelocity)
	check(p.DoubleJumpFactor > 0 && p.DoubleJumpFactor <= 1, "physics.doubleJumpFactor must be in (0, 1], got %v", p.DoubleJumpFactor)

	pl := t.Player
	check(pl.Width > 0 && pl.Height > 0, "player size must be positive, got %vx%v", pl.Width, pl.Height)
	check(pl.MaxDoubleJumps >= 0 && pl.MaxSword >= 0 && pl.MaxShield >= 0, "player charge caps must not be negative")

	check(t.Enemies.WalkerHealth > 0, "enemies.walkerHealth must be positive, got %d", t.Enemies.WalkerHealth)
	check(t.Enemies.ShooterHealth > 0, "enemies.shooterHealth must be positive, got %d", t.Enemies.ShooterHealth)
	check(t.Boss.BaseHealth > 0, "boss.baseHealth must be positive, got %d", t.Boss.BaseHealth)
	check(t.Boss.HealthDivisor > 0, "boss.healthDivisor must be positive, got %d", t.Boss.HealthDivisor)

	r := t.Run
	check(r.Lives > 0, "run.lives must be positive, got %d", r.Lives)
	check(r.StageCount > 0, "run.stageCount must be positive, got %d", r.StageCount)
	check(r.BossIndex < r.StageCount, "run.bossIndex %d out of range for %d stages", r.BossIndex, r.StageCount)
	check(r.SecretIndex < r.StageCount, "run.secretIndex %d out of range for %d stages", r.SecretIndex, r.StageCount)
	check(r.BossIndex < 0 || r.BossIndex != r.SecretIndex, "run.bossIndex and run.secretIndex must differ")

	g := t.Generator
	check(g.SpineBase >= 2, "generator.spineBase must be at least 2, got %d", g.SpineBase)
	check(g.SpineMax >= g.SpineBase, "generator.spineMax must be >= spineBase")
	check(g.SegmentWidthMin > 0 && g.SegmentWidthMax >= g.SegmentWidthMin, "generator segment width range is invalid")
	check(g.GapMin >= 0 && g.GapMax >= g.GapMin, "generator gap range is invalid")
	check(g.AltitudeMax > g.AltitudeMin, "generator altitude band is empty")
	check(g.PlatformHeight > 0, "generator.platformHeight must be positive")
	check(g.FloaterRiseMax >= g.FloaterRiseMin, "generator floater rise range is invalid")
	check(g.FloaterRiseMax <= g.ReachRise, "generator.floaterRiseMax %v exceeds reachRise %v", g.FloaterRiseMax, g.ReachRise)
	check(g.RiseMax <= g.ReachRise, "generator.riseMax %v exceeds reachRise %v", g.RiseMax, g.ReachRise)
	check(g.BounceVelocity < 0, "generator.bounceVelocity must be negative, got %v", g.BounceVelocity)
	check(g.CoinSize > 0, "generator.coinSize must be positive")
	check(g.Themes > 0, "generator.themes must be positive")

	return errors.Join(errs...)
}
