// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/neonrun/internal/application/replay"
	"github.com/younwookim/neonrun/internal/application/run"
	"github.com/younwookim/neonrun/internal/application/scene"
	"github.com/younwookim/neonrun/internal/application/stage"
	"github.com/younwookim/neonrun/internal/application/state"
	"github.com/younwookim/neonrun/internal/application/system"
	"github.com/younwookim/neonrun/internal/domain/entity"
	"github.com/younwookim/neonrun/internal/domain/event"
	"github.com/younwookim/neonrun/internal/domain/geom"
	"github.com/younwookim/neonrun/internal/infrastructure/config"
)

// Feedback tuning
const (
	hitstopFrames  = 3
	shakeOnHit     = 4.0
	shakeOnDeath   = 10.0
	shakeDecay     = 0.9
	bannerDuration = 1.5
)

// Colors for rendering
var (
	themeBG = []color.RGBA{
		{26, 26, 46, 255},
		{18, 30, 40, 255},
		{30, 14, 44, 255},
		{12, 32, 36, 255},
	}
	styleColors = map[entity.Style]color.RGBA{
		entity.StyleBrick:   {170, 90, 60, 255},
		entity.StyleStone:   {110, 110, 130, 255},
		entity.StyleNeon:    {40, 220, 200, 255},
		entity.StyleCrystal: {150, 120, 240, 255},
		entity.StyleArena:   {90, 70, 110, 255},
	}
	pickupColors = map[entity.PickupKind]color.RGBA{
		entity.PickupCoin:       {255, 215, 0, 255},
		entity.PickupDoubleJump: {120, 220, 255, 255},
		entity.PickupSword:      {255, 120, 220, 255},
		entity.PickupShield:     {120, 255, 140, 255},
	}
	colorBouncy      = color.RGBA{255, 160, 40, 255}
	colorMoverEdge   = color.RGBA{255, 255, 255, 160}
	colorPlayer      = color.RGBA{100, 200, 100, 255}
	colorFlash       = color.RGBA{255, 255, 255, 200}
	colorShield      = color.RGBA{120, 255, 140, 200}
	colorWalker      = color.RGBA{200, 100, 100, 255}
	colorShooter     = color.RGBA{230, 130, 60, 255}
	colorBoss        = color.RGBA{220, 40, 90, 255}
	colorHurt        = color.RGBA{255, 255, 255, 255}
	colorHostileShot = color.RGBA{255, 100, 100, 255}
	colorBeam        = color.RGBA{255, 120, 220, 255}
	colorGoalLocked  = color.RGBA{120, 120, 120, 255}
	colorGoalActive  = color.RGBA{80, 255, 160, 255}
	colorHealthBG    = color.RGBA{60, 60, 60, 255}
	colorHealthFG    = color.RGBA{220, 60, 90, 255}
)

// Options configures optional behavior of the scene.
type Options struct {
	RecordPath string           // Record input to this file when not empty
	Logger     *log.Logger      // nil discards output
	Keys       system.KeyReader // nil reads the ebiten keyboard
}

// Playing is the main gameplay scene. It owns a Run over a generated pack and
// draws its snapshot every frame.
type Playing struct {
	config  *config.Tuning
	pack    []*stage.Blueprint
	seed    int64
	run     *run.Run
	state   state.GameState
	keys    system.KeyReader
	logger  *log.Logger
	screenW int
	screenH int

	// Feedback
	hitstop int
	shake   float64
	banner  float64
	shakeRn *rand.Rand

	// Input recording
	recorder   *replay.Recorder
	recordPath string
}

// New creates a new Playing scene for pack. seed must be the seed the pack
// was generated from so recordings can regenerate it.
func New(cfg *config.Tuning, pack []*stage.Blueprint, seed int64, opts Options) (*Playing, error) {
	r, err := run.New(pack, cfg, seed)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	keys := opts.Keys
	if keys == nil {
		keys = system.EbitenKeys
	}

	p := &Playing{
		config:     cfg,
		pack:       pack,
		seed:       seed,
		run:        r,
		state:      state.StatePlaying,
		keys:       keys,
		logger:     logger,
		screenW:    cfg.Display.ScreenWidth,
		screenH:    cfg.Display.ScreenHeight,
		shakeRn:    rand.New(rand.NewSource(seed)),
		recordPath: opts.RecordPath,
	}
	p.startRecording()
	return p, nil
}

func (p *Playing) startRecording() {
	if p.recordPath == "" {
		return
	}
	p.recorder = replay.NewRecorder(p.seed, len(p.pack))
	p.logger.Info("recording enabled", "path", p.recordPath, "seed", p.seed, "stages", len(p.pack))
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	p.shake *= shakeDecay

	if p.hitstop > 0 {
		p.hitstop--
		return nil, nil
	}

	switch p.state {
	case state.StatePlaying:
		if p.keys.JustPressed(ebiten.KeyEscape) {
			p.state = state.StatePaused
			return nil, nil
		}
		if p.keys.JustPressed(ebiten.KeyF5) {
			p.saveRecording()
		}
		p.tick(dt)
	case state.StatePaused:
		if p.keys.JustPressed(ebiten.KeyEscape) {
			p.state = state.StatePlaying
		}
		if p.keys.JustPressed(ebiten.KeyQ) {
			return nil, scene.ErrQuit
		}
	case state.StateStageClear:
		p.banner -= dt
		if p.banner <= 0 {
			p.state = state.StatePlaying
		}
	case state.StateGameOver, state.StateVictory:
		if p.keys.JustPressed(ebiten.KeyEnter) || p.keys.JustPressed(ebiten.KeyZ) {
			p.restart()
		}
		if p.keys.JustPressed(ebiten.KeyQ) || p.keys.JustPressed(ebiten.KeyEscape) {
			return nil, scene.ErrQuit
		}
	}

	return nil, nil // nil = stay on this scene
}

func (p *Playing) tick(dt float64) {
	intent := system.ReadIntent(p.keys)
	if p.recorder != nil {
		p.recorder.RecordFrame(intent, dt)
	}
	p.react(p.run.Tick(intent, dt))
}

// react turns run events into screen feedback and state changes.
func (p *Playing) react(events []event.Event) {
	for _, e := range events {
		switch e.Kind {
		case event.EnemyStomped, event.BossHit:
			p.hitstop = hitstopFrames
			p.shake = max(p.shake, shakeOnHit)
		case event.BossDefeated:
			p.shake = shakeOnDeath
			p.logger.Info("boss defeated", "stage", p.run.StageIndex())
		case event.LifeLost:
			p.shake = shakeOnDeath
			p.logger.Info("life lost", "cause", e.Cause, "lives", e.Amount)
		case event.StageCleared:
			if !e.Final {
				p.state = state.StateStageClear
				p.banner = bannerDuration
				p.logger.Info("stage cleared", "next", p.run.StageIndex(), "score", p.run.Score())
			}
		case event.GameOver:
			p.state = state.StateGameOver
			p.logger.Info("game over", "score", e.Amount)
			p.finishRecording()
		case event.Victory:
			p.state = state.StateVictory
			p.logger.Info("victory", "score", e.Amount, "deaths", p.run.Deaths())
			p.finishRecording()
		}
	}
}

// saveRecording writes the frames recorded so far.
func (p *Playing) saveRecording() {
	if p.recorder == nil || !p.recorder.IsRecording() || p.recorder.FrameCount() == 0 {
		return
	}

	if err := p.recorder.Save(p.recordPath); err != nil {
		p.logger.Error("failed to save recording", "path", p.recordPath, "err", err)
		return
	}
	p.logger.Info("recording saved", "path", p.recordPath, "frames", p.recorder.FrameCount())
}

// finishRecording saves and stops the recording.
func (p *Playing) finishRecording() {
	p.saveRecording()
	if p.recorder != nil {
		p.recorder.Stop()
	}
}

func (p *Playing) restart() {
	r, err := run.New(p.pack, p.config, p.seed)
	if err != nil {
		p.logger.Error("restart failed", "err", err)
		return
	}
	p.run = r
	p.state = state.StatePlaying
	p.hitstop = 0
	p.shake = 0
	p.startRecording()
}

// State returns the current scene state.
func (p *Playing) State() state.GameState {
	return p.state
}

// Run returns the run being played.
func (p *Playing) Run() *run.Run {
	return p.run
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	snap := p.run.Snapshot()
	screen.Fill(themeBG[snap.Theme%len(themeBG)])

	cam := Camera(snap, p.screenW, p.screenH)
	if p.shake > 0.5 {
		cam.X += p.shake * (2*p.shakeRn.Float64() - 1)
		cam.Y += p.shake * (2*p.shakeRn.Float64() - 1)
	}

	p.drawPlatforms(screen, snap, cam)
	p.drawGoal(screen, snap.Goal, cam)
	p.drawPickups(screen, snap, cam)
	p.drawActors(screen, snap.Walkers, colorWalker, cam)
	p.drawActors(screen, snap.Shooters, colorShooter, cam)
	if snap.Boss != nil {
		p.drawActors(screen, []stage.ActorView{*snap.Boss}, colorBoss, cam)
		p.drawBossHealth(screen, *snap.Boss)
	}
	p.drawProjectiles(screen, snap, cam)
	p.drawPlayer(screen, snap.Player, cam)

	p.drawUI(screen, snap)

	switch p.state {
	case state.StatePaused:
		p.drawOverlay(screen, color.RGBA{0, 0, 0, 128}, "PAUSED\n\nESC: resume  Q: quit")
	case state.StateStageClear:
		p.drawOverlay(screen, color.RGBA{0, 40, 20, 96}, fmt.Sprintf("STAGE CLEAR\n\nScore: %d", p.run.Score()))
	case state.StateGameOver:
		p.drawOverlay(screen, color.RGBA{100, 0, 0, 180}, fmt.Sprintf("GAME OVER\n\nScore: %d\n\nEnter: restart  Q: quit", p.run.Score()))
	case state.StateVictory:
		p.drawOverlay(screen, color.RGBA{0, 60, 80, 180}, fmt.Sprintf("VICTORY\n\nScore: %d  Deaths: %d\n\nEnter: play again  Q: quit", p.run.Score(), p.run.Deaths()))
	}
}

func fillRect(screen *ebiten.Image, r geom.Rect, cam geom.Vec, c color.Color) {
	vector.DrawFilledRect(screen, float32(r.X-cam.X), float32(r.Y-cam.Y), float32(r.W), float32(r.H), c, false)
}

func strokeRect(screen *ebiten.Image, r geom.Rect, cam geom.Vec, width float32, c color.Color) {
	vector.StrokeRect(screen, float32(r.X-cam.X), float32(r.Y-cam.Y), float32(r.W), float32(r.H), width, c, false)
}

func (p *Playing) drawPlatforms(screen *ebiten.Image, snap stage.Snapshot, cam geom.Vec) {
	for _, pl := range snap.Platforms {
		fillRect(screen, pl.Rect, cam, styleColors[pl.Style])
		if pl.Bouncy {
			fillRect(screen, geom.NewRect(pl.Rect.X, pl.Rect.Y, pl.Rect.W, 4), cam, colorBouncy)
		}
		if pl.Moving {
			strokeRect(screen, pl.Rect, cam, 1, colorMoverEdge)
		}
	}
}

func (p *Playing) drawGoal(screen *ebiten.Image, g stage.GoalView, cam geom.Vec) {
	if !g.Active {
		strokeRect(screen, g.Rect, cam, 2, colorGoalLocked)
		return
	}
	// Pulse while open
	c := colorGoalActive
	c.A = uint8(176 + 79*math.Sin(g.Phase))
	fillRect(screen, g.Rect, cam, c)
}

func (p *Playing) drawPickups(screen *ebiten.Image, snap stage.Snapshot, cam geom.Vec) {
	for _, pk := range snap.Pickups {
		c := pk.Rect.Center()
		bob := 3 * math.Sin(pk.Phase)
		vector.DrawFilledCircle(screen, float32(c.X-cam.X), float32(c.Y-cam.Y+bob), float32(pk.Rect.W/2), pickupColors[pk.Kind], true)
	}
}

func (p *Playing) drawActors(screen *ebiten.Image, actors []stage.ActorView, base color.RGBA, cam geom.Vec) {
	for _, a := range actors {
		c := base
		if a.Hurt {
			c = colorHurt
		}
		if a.Dying {
			c.A = 96
		}
		fillRect(screen, a.Rect, cam, c)
	}
}

func (p *Playing) drawBossHealth(screen *ebiten.Image, boss stage.ActorView) {
	if boss.MaxHealth <= 0 {
		return
	}
	barW := float32(p.screenW) / 2
	x := float32(p.screenW)/2 - barW/2
	vector.DrawFilledRect(screen, x, 24, barW, 8, colorHealthBG, false)
	ratio := float32(max(0, boss.Health)) / float32(boss.MaxHealth)
	vector.DrawFilledRect(screen, x, 24, barW*ratio, 8, colorHealthFG, false)
}

func (p *Playing) drawProjectiles(screen *ebiten.Image, snap stage.Snapshot, cam geom.Vec) {
	for _, pr := range snap.Projectiles {
		c := colorBeam
		if pr.Hostile {
			c = colorHostileShot
		}
		center := pr.Bounds.Center()
		vector.DrawFilledCircle(screen, float32(center.X-cam.X), float32(center.Y-cam.Y), float32(pr.Bounds.W/2), c, true)
	}
}

func (p *Playing) drawPlayer(screen *ebiten.Image, pv stage.PlayerView, cam geom.Vec) {
	c := colorPlayer
	if pv.Invincible && int(pv.AnimTime*10)%2 == 0 {
		c = colorFlash
	}
	fillRect(screen, pv.Rect, cam, c)

	// Facing marker
	eye := geom.NewRect(pv.Rect.Center().X+pv.Facing*pv.Rect.W/4-2, pv.Rect.Y+8, 4, 4)
	fillRect(screen, eye, cam, color.Black)

	if pv.Shielded {
		center := pv.Rect.Center()
		r := max(pv.Rect.W, pv.Rect.H) * 0.7
		vector.StrokeCircle(screen, float32(center.X-cam.X), float32(center.Y-cam.Y), float32(r), 2, colorShield, true)
	}
}

func (p *Playing) drawUI(screen *ebiten.Image, snap stage.Snapshot) {
	ch := snap.Player.Charges
	hud := fmt.Sprintf("Stage %d/%d (%s)  Score %d  Lives %d  Coins left %d  Time %.1f",
		p.run.StageIndex()+1, p.run.StageCount(), snap.Kind, p.run.Score(), p.run.Lives(), snap.RemainingCoins, snap.Elapsed)
	ebitenutil.DebugPrintAt(screen, hud, 8, 4)

	charges := fmt.Sprintf("Double jumps %d  Sword %d  Shield %d", ch.DoubleJumps, ch.Sword, ch.Shield)
	if snap.Player.Combo > 1 {
		charges += fmt.Sprintf("  Combo x%d", snap.Player.Combo)
	}
	ebitenutil.DebugPrintAt(screen, charges, 8, p.screenH-36)

	controls := "A/D: Move | Space: Jump | J: Sword | K: Shield | ESC: Pause"
	if snap.Kind == entity.LevelSecret {
		controls = "WASD: Walk | J: Sword | K: Shield | ESC: Pause"
	}
	ebitenutil.DebugPrintAt(screen, controls, 8, p.screenH-20)
}

func (p *Playing) drawOverlay(screen *ebiten.Image, c color.RGBA, text string) {
	vector.DrawFilledRect(screen, 0, 0, float32(p.screenW), float32(p.screenH), c, false)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-80, p.screenH/2-30)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	p.logger.Debug("playing", "seed", p.seed, "stages", len(p.pack))
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.finishRecording()
}
