package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/neonrun/internal/domain/entity"
	"github.com/younwookim/neonrun/internal/domain/geom"
	"github.com/younwookim/neonrun/internal/infrastructure/config"
)

// KeyReader abstracts keyboard polling so intent mapping can be tested without a window.
type KeyReader interface {
	Pressed(key ebiten.Key) bool
	JustPressed(key ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) Pressed(key ebiten.Key) bool     { return ebiten.IsKeyPressed(key) }
func (ebitenKeys) JustPressed(key ebiten.Key) bool { return inpututil.IsKeyJustPressed(key) }

// EbitenKeys reads the live ebiten keyboard state.
var EbitenKeys KeyReader = ebitenKeys{}

var (
	leftKeys    = []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}
	rightKeys   = []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}
	jumpKeys    = []ebiten.Key{ebiten.KeySpace, ebiten.KeyW, ebiten.KeyArrowUp, ebiten.KeyZ}
	attackKeys  = []ebiten.Key{ebiten.KeyJ, ebiten.KeyX}
	specialKeys = []ebiten.Key{ebiten.KeyK, ebiten.KeyC}
	forwardKeys = []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}
	backKeys    = []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}
)

// ReadIntent builds an Intent from the keyboard.
func ReadIntent(keys KeyReader) Intent {
	return Intent{
		MoveLeft:       anyKey(keys.Pressed, leftKeys),
		MoveRight:      anyKey(keys.Pressed, rightKeys),
		JumpPressed:    anyKey(keys.JustPressed, jumpKeys),
		AttackPressed:  anyKey(keys.JustPressed, attackKeys),
		SpecialPressed: anyKey(keys.JustPressed, specialKeys),
		DepthForward:   anyKey(keys.Pressed, forwardKeys),
		DepthBack:      anyKey(keys.Pressed, backKeys),
	}
}

func anyKey(check func(ebiten.Key) bool, keys []ebiten.Key) bool {
	for _, k := range keys {
		if check(k) {
			return true
		}
	}
	return false
}

// IntentResult reports what the player did with an intent this tick
type IntentResult struct {
	Jumped       bool
	DoubleJumped bool
	Shield       bool
	Beam         *entity.Projectile // Sword beam fired, nil otherwise
}

// InputSystem applies intents to the player body
type InputSystem struct {
	physics *PhysicsSystem
	config  *config.PlayerConfig
}

// NewInputSystem creates a new input system
func NewInputSystem(physics *PhysicsSystem, cfg *config.PlayerConfig) *InputSystem {
	return &InputSystem{physics: physics, config: cfg}
}

// UpdatePlayer applies movement, jump, attack and special from intent.
// Gravity and collision are left to the physics system.
func (s *InputSystem) UpdatePlayer(p *entity.Player, in Intent, dt float64) IntentResult {
	var res IntentResult

	s.physics.Move(p, in.Direction(), dt)
	if p.Mode == entity.ModePlanar {
		s.physics.MoveDepth(p, in.Depth(), dt)
	}

	if in.JumpPressed {
		grounded := p.OnGround
		if s.physics.Jump(p) {
			res.Jumped = grounded
			res.DoubleJumped = !grounded
		}
	}

	if in.AttackPressed {
		res.Beam = s.fireBeam(p)
	}

	if in.SpecialPressed && p.ShieldTimer == 0 && p.UseShieldCharge() {
		p.ShieldTimer = s.config.ShieldTime
		res.Shield = true
	}

	return res
}

// fireBeam launches a sword beam if the cooldown is over and a charge remains.
func (s *InputSystem) fireBeam(p *entity.Player) *entity.Projectile {
	if p.SwordCooldown > 0 || !p.UseSwordCharge() {
		return nil
	}
	p.SwordCooldown = s.config.SwordCooldown

	c := p.Rect.Center()
	origin := geom.Vec{X: c.X + p.Facing*p.Rect.W/2, Y: c.Y}
	vel := geom.Vec{X: p.Facing * s.config.BeamSpeed}
	return entity.NewProjectile(origin, vel, s.config.BeamRadius, s.config.BeamLife, entity.OwnerPlayer)
}
