package system

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/neonrun/internal/domain/entity"
	"github.com/younwookim/neonrun/internal/infrastructure/config"
)

type fakeKeys struct {
	held map[ebiten.Key]bool
	down map[ebiten.Key]bool
}

func (f fakeKeys) Pressed(key ebiten.Key) bool     { return f.held[key] }
func (f fakeKeys) JustPressed(key ebiten.Key) bool { return f.down[key] }

func createTestInputSystem() (*InputSystem, *config.Tuning) {
	cfg := config.Default()
	return NewInputSystem(NewPhysicsSystem(&cfg.Physics), &cfg.Player), cfg
}

func TestReadIntent(t *testing.T) {
	tests := []struct {
		name     string
		keys     fakeKeys
		expected Intent
	}{
		{"nothing", fakeKeys{}, Intent{}},
		{
			"move and jump",
			fakeKeys{
				held: map[ebiten.Key]bool{ebiten.KeyD: true, ebiten.KeySpace: true},
				down: map[ebiten.Key]bool{ebiten.KeySpace: true},
			},
			Intent{MoveRight: true, JumpPressed: true},
		},
		{
			"held jump does not repeat",
			fakeKeys{held: map[ebiten.Key]bool{ebiten.KeySpace: true}},
			Intent{},
		},
		{
			"arrows and weapons",
			fakeKeys{
				held: map[ebiten.Key]bool{ebiten.KeyArrowLeft: true, ebiten.KeyArrowDown: true},
				down: map[ebiten.Key]bool{ebiten.KeyX: true, ebiten.KeyC: true},
			},
			Intent{MoveLeft: true, DepthBack: true, AttackPressed: true, SpecialPressed: true},
		},
		{
			"up is jump edge and depth forward",
			fakeKeys{
				held: map[ebiten.Key]bool{ebiten.KeyW: true},
				down: map[ebiten.Key]bool{ebiten.KeyW: true},
			},
			Intent{JumpPressed: true, DepthForward: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ReadIntent(tt.keys))
		})
	}
}

func TestInputSystem_Jumps(t *testing.T) {
	sys, _ := createTestInputSystem()
	p := createTestPlayer(0, 0)
	p.OnGround = true
	p.AddDoubleJump(1)

	res := sys.UpdatePlayer(p, Intent{JumpPressed: true}, frame)
	assert.True(t, res.Jumped)
	assert.False(t, res.DoubleJumped)

	res = sys.UpdatePlayer(p, Intent{JumpPressed: true}, frame)
	assert.False(t, res.Jumped)
	assert.True(t, res.DoubleJumped)
	assert.Equal(t, 0, p.DoubleJumps)

	res = sys.UpdatePlayer(p, Intent{JumpPressed: true}, frame)
	assert.False(t, res.Jumped || res.DoubleJumped)
}

func TestInputSystem_SwordBeam(t *testing.T) {
	sys, cfg := createTestInputSystem()
	p := createTestPlayer(100, 100)
	p.Facing = -1

	res := sys.UpdatePlayer(p, Intent{AttackPressed: true}, frame)
	assert.Nil(t, res.Beam, "no charges, silently rejected")

	p.AddSwordCharge(2)
	res = sys.UpdatePlayer(p, Intent{AttackPressed: true}, frame)
	require.NotNil(t, res.Beam)
	assert.Equal(t, entity.OwnerPlayer, res.Beam.Owner)
	assert.Equal(t, -cfg.Player.BeamSpeed, res.Beam.Vel.X)
	assert.Equal(t, 1, p.SwordCharges)
	assert.Equal(t, cfg.Player.SwordCooldown, p.SwordCooldown)

	res = sys.UpdatePlayer(p, Intent{AttackPressed: true}, frame)
	assert.Nil(t, res.Beam, "cooling down")
	assert.Equal(t, 1, p.SwordCharges)
}

func TestInputSystem_Shield(t *testing.T) {
	sys, cfg := createTestInputSystem()
	p := createTestPlayer(0, 0)
	p.AddShieldCharge(2)

	res := sys.UpdatePlayer(p, Intent{SpecialPressed: true}, frame)
	assert.True(t, res.Shield)
	assert.Equal(t, cfg.Player.ShieldTime, p.ShieldTimer)
	assert.True(t, p.IsInvincible())

	res = sys.UpdatePlayer(p, Intent{SpecialPressed: true}, frame)
	assert.False(t, res.Shield, "already shielded")
	assert.Equal(t, 1, p.ShieldCharges)
}

func TestInputSystem_PlanarDepth(t *testing.T) {
	sys, _ := createTestInputSystem()
	p := createTestPlayer(0, 0)
	p.Mode = entity.ModePlanar

	sys.UpdatePlayer(p, Intent{DepthForward: true, JumpPressed: true}, frame)
	assert.Less(t, p.Vel.Y, 0.0, "forward moves up the plane, jump ignored")
	assert.Greater(t, p.Vel.Y, -4.0)
}
