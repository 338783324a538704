// Package brickboss implements Brick Boss, a six-stage brick breaker with
// item and nerf bricks and a boss brick at the end of every stage.
package brickboss

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/vovakirdan/brick-arcade/internal/config"
	"github.com/vovakirdan/brick-arcade/internal/core"
	"github.com/vovakirdan/brick-arcade/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Recorder persists results outside the simulation.
// The game calls RecordScore once when a run ends and SaveGame when the
// player saves from the pause screen.
type Recorder interface {
	RecordScore(score int)
	SaveGame(s SavedGame) error
}

// Game implements the Brick Boss game logic.
type Game struct {
	runtime  core.RuntimeConfig
	cfg      config.BrickBossConfig
	rng      *rand.Rand
	recorder Recorder
	clampSet *bool

	canvasW, canvasH float64
	limits           AngleLimits

	s              Session
	paddle         *Paddle
	balls          []*Ball
	grid           *Grid
	boss           *Brick
	pickups        []*Pickup
	bullets        []*Bullet
	bossShots      []*BossBullet
	effects        EffectSet
	// tripleOnLaunch holds a TripleBall caught before the serve.
	tripleOnLaunch bool
	hits           *HitTracker
	cooldown       float64
	frame          int

	events core.Events

	preset config.DifficultyPreset

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a new Brick Boss game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "brickboss"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Brick Boss"
}

// SetRecorder sets where finished scores and saves go.
func (g *Game) SetRecorder(r Recorder) {
	g.recorder = r
}

// SetAngleClamp overrides the configured angle clamp, e.g. from account options.
func (g *Game) SetAngleClamp(on bool) {
	g.clampSet = &on
	g.limits.Enabled = on
}

// SetDifficulty selects the preset for this instance. It takes effect on
// the next Reset.
func (g *Game) SetDifficulty(preset string) {
	g.preset = config.ParsePreset(preset)
}

// Resize updates the terminal size without restarting the run.
func (g *Game) Resize(w, h int) {
	g.screenTooSmall = w < g.minScreenW || h < g.minScreenH
}

// Reset initializes the game and shows the start screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadBrickBoss(configPath)
	if err != nil {
		cfg = config.DefaultBrickBossConfig()
	}
	if g.preset != "" {
		config.ApplyBrickBossPreset(&cfg, g.preset)
	}
	if g.clampSet != nil {
		cfg.Physics.AngleClamp = *g.clampSet
	}
	g.cfg = cfg

	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))

	g.canvasW, g.canvasH = runtime.Canvas()
	g.limits = AngleLimits{
		Enabled: cfg.Physics.AngleClamp,
		Min:     cfg.Physics.MinAngle,
		Max:     cfg.Physics.MaxAngle,
	}
	g.hits = NewHitTracker()

	g.minScreenW = 30
	g.minScreenH = 15
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH

	g.paddle = &Paddle{
		Width:  cfg.Paddle.Width,
		Height: cfg.Paddle.Height,
		Speed:  cfg.Paddle.Speed,
		Y:      g.canvasH - cfg.Paddle.BottomOffset,
	}
	g.paddle.SetCenterX(g.canvasW/2, g.canvasW)

	g.s = Session{State: StateStart, Lives: cfg.Gameplay.Lives, Stage: 1}
	g.loadStage(1)
}

// overlayDuration is the real-time length of stage overlays.
func (g *Game) overlayDuration() time.Duration {
	return time.Duration(g.cfg.Gameplay.OverlaySeconds * float64(time.Second))
}

// newGame starts a fresh run at stage 1.
func (g *Game) newGame() {
	g.s = Session{Lives: g.cfg.Gameplay.Lives}
	g.frame = 0
	g.enterStage(1)
}

// enterStage loads stage n and shows its intro overlay.
func (g *Game) enterStage(n int) {
	g.loadStage(n)
	g.s.State = StatePlaying
	g.s.showOverlay(fmt.Sprintf("STAGE %d", n), g.overlayDuration())
	g.events.Add(core.EventStageStart, n)
}

// loadStage builds the grid for stage n and serves a fresh ball.
func (g *Game) loadStage(n int) {
	g.s.Stage = n
	g.s.BallSpeed = g.cfg.Ball.BaseSpeed + g.cfg.Ball.SpeedPerStage*float64(n-1)
	g.grid = BuildStage(n, g.canvasW, g.cfg, g.rng)
	g.boss = nil
	g.clearTransient()
	g.serve(0)
}

// clearTransient drops projectiles, pickups and effects.
func (g *Game) clearTransient() {
	g.pickups = g.pickups[:0]
	g.bullets = g.bullets[:0]
	g.bossShots = g.bossShots[:0]
	g.effects.Clear()
	g.tripleOnLaunch = false
	g.cooldown = 0
	g.recompute()
}

// serve replaces all balls with one glued to the paddle.
func (g *Game) serve(delay float64) {
	g.balls = []*Ball{{Radius: g.cfg.Ball.Radius}}
	g.s.Launched = false
	g.s.ServeDelay = delay
	g.glueBall()
}

// glueBall keeps the unlaunched ball on the paddle.
func (g *Game) glueBall() {
	ball := g.balls[0]
	ball.X = g.paddle.CenterX()
	ball.Y = g.paddle.Y - ball.Radius
	ball.DX, ball.DY = 0, 0
}

// launch sends the glued ball upward.
func (g *Game) launch() {
	side := 1.0
	if g.rng.IntN(2) == 0 {
		side = -1
	}
	ball := g.balls[0]
	ball.DX, ball.DY = LaunchVelocity(g.ballSpeed(), side)
	g.limits.ClampAngle(ball)
	g.s.Launched = true
	if g.tripleOnLaunch {
		g.tripleOnLaunch = false
		g.tripleBall()
	}
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame, elapsed time.Duration) core.StepResult {
	g.events = nil
	if g.screenTooSmall {
		return g.result()
	}

	switch g.s.State {
	case StateStart:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionLaunch) || in.Pointer.Tapped {
			g.newGame()
		}

	case StateGameOver, StateWin:
		if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) {
			g.newGame()
		}

	case StatePaused:
		switch {
		case in.Has(core.ActionPause), in.Has(core.ActionOptions), in.Has(core.ActionBack):
			g.s.State = StatePlaying
		case in.Has(core.ActionSave):
			g.save()
		}

	case StateStageClear:
		if g.s.tickOverlay(elapsed) {
			g.enterStage(g.s.Stage + 1)
		}

	case StatePlaying:
		if in.Has(core.ActionPause) || in.Has(core.ActionOptions) {
			g.s.State = StatePaused
			break
		}
		if g.s.overlayActive() {
			g.s.tickOverlay(elapsed)
			break
		}
		if dt := core.FrameMultiplier(elapsed); dt > 0 {
			g.simulate(in, dt)
		}
	}

	return g.result()
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.events}
}

// simulate runs one frame of play scaled by dt.
func (g *Game) simulate(in core.InputFrame, dt float64) {
	g.frame++
	g.hits.Reset()

	if expired := g.effects.Tick(); len(expired) > 0 {
		g.onExpired(expired)
	}

	g.movePaddle(in, dt)

	fire := in.Has(core.ActionLaunch) || in.Has(core.ActionUp) || in.Pointer.Tapped
	if !g.s.Launched {
		g.glueBall()
		g.s.ServeDelay = math.Max(0, g.s.ServeDelay-dt)
		if fire && g.s.ServeDelay == 0 {
			g.launch()
		}
	} else if fire && g.effects.Has(EffectBulletPower) {
		g.fire()
	}

	g.updateBoss(dt)
	if g.s.Launched {
		g.updateBalls(dt)
	}
	if g.s.State != StatePlaying {
		return
	}
	g.updateBullets(dt)
	g.updateBossShots(dt)
	g.updatePickups(dt)
	g.checkStageProgress()
}

// movePaddle applies keyboard movement, or pointer smoothing when no key is held.
func (g *Game) movePaddle(in core.InputFrame, dt float64) {
	if g.effects.Has(EffectPaddleFreeze) {
		return
	}
	if axis := in.HorizontalAxis(); axis != 0 {
		g.paddle.X += axis * g.paddle.Speed * dt
		g.paddle.SetCenterX(g.paddle.CenterX(), g.canvasW)
		return
	}
	if in.Pointer.Active {
		factor := g.cfg.Paddle.Smoothing * dt
		if g.effects.Has(EffectPaddleSlow) {
			factor *= 0.5
		}
		factor = math.Min(factor, 1)
		cx := g.paddle.CenterX()
		target := core.Viewport{WorldW: g.canvasW}.WorldX(in.Pointer.X)
		g.paddle.SetCenterX(cx+(target-cx)*factor, g.canvasW)
	}
}

// fire shoots a pair of bullets from the paddle edges.
func (g *Game) fire() {
	if g.cooldown > 0 {
		return
	}
	speed := g.cfg.Effects.BulletSpeed
	for _, x := range []float64{g.paddle.X + bulletW, g.paddle.X + g.paddle.Width - bulletW} {
		g.bullets = append(g.bullets, &Bullet{X: x, Y: g.paddle.Y, VY: -speed})
	}
	g.cooldown = float64(g.cfg.Effects.BulletCooldown)
}

// updateBalls moves every ball and resolves its collisions.
func (g *Game) updateBalls(dt float64) {
	alive := g.balls[:0]
	for _, ball := range g.balls {
		if g.stepBall(ball, dt) {
			alive = append(alive, ball)
		}
	}
	g.balls = alive

	if len(g.balls) == 0 {
		g.loseLife()
	}
}

// stepBall integrates one ball in sub-steps no longer than its radius.
// At most one brick collision is processed per ball per frame.
// It returns false when the ball left the bottom edge.
func (g *Game) stepBall(ball *Ball, dt float64) bool {
	steps := max(1, int(math.Ceil(ball.Speed()*dt/ball.Radius)))
	sub := dt / float64(steps)
	brickHit := false

	for range steps {
		ball.X += ball.DX * sub
		ball.Y += ball.DY * sub

		if bounceWalls(ball, g.canvasW) {
			g.limits.ClampAngle(ball)
		}
		if ball.Y-ball.Radius > g.canvasH {
			return false
		}

		if ball.DY > 0 && ball.Box().Intersects(g.paddle.Box()) {
			PaddleBounce(ball, g.paddle)
			g.limits.ClampAngle(ball)
		}

		if brickHit {
			continue
		}
		if b := g.firstBrickHit(ball.Box()); b != nil {
			reflectOffBox(ball, b.Box())
			g.limits.ClampAngle(ball)
			g.hitBrick(b, true)
			brickHit = true
		}
	}
	return true
}

// firstBrickHit returns the first visible brick overlapping box in row-major order.
func (g *Game) firstBrickHit(box core.Box) *Brick {
	if g.boss != nil && g.boss.Visible && box.Intersects(g.boss.Box()) {
		return g.boss
	}
	for _, row := range g.grid.Cells {
		for _, b := range row {
			if b != nil && b.Visible && box.Intersects(b.Box()) {
				return b
			}
		}
	}
	return nil
}

// hitBrick applies one hit to a brick. Boss hits go through the per-frame
// hit set and the boss phase; other bricks always take the hit.
func (g *Game) hitBrick(b *Brick, byBall bool) {
	if !b.Visible {
		return
	}
	if b.Boss != nil {
		if !g.hits.Begin(g.grid.ID(b)) || !b.Boss.acceptHit(byBall) {
			return
		}
		b.HP--
		g.s.Score += b.Kind().Score()
		g.events.Add(core.EventBossHit, b.HP)
		if b.HP <= 0 {
			b.HP = 0
			b.Visible = false
			g.events.Add(core.EventBrickDestroyed, g.s.Score)
		}
		return
	}

	b.HP--
	g.s.Score += b.Kind().Score()
	if b.HP <= 0 {
		g.destroyBrick(b)
	}
}

// destroyBrick hides a brick and drops its payload.
func (g *Game) destroyBrick(b *Brick) {
	b.HP = 0
	b.Visible = false
	g.events.Add(core.EventBrickDestroyed, g.s.Score)

	if b.Item == ItemNone && b.Nerf == NerfNone {
		return
	}
	box := b.Box()
	g.pickups = append(g.pickups, &Pickup{
		X:    box.CenterX(),
		Y:    box.CenterY(),
		VY:   g.cfg.Effects.PickupFallSpeed,
		Item: b.Item,
		Nerf: b.Nerf,
	})
}

// loseLife handles the last ball leaving the playfield.
func (g *Game) loseLife() {
	g.s.Lives--
	g.events.Add(core.EventLifeLost, g.s.Lives)
	if g.s.Lives <= 0 {
		g.s.Lives = 0
		g.s.State = StateGameOver
		g.events.Add(core.EventGameOver, g.s.Score)
		g.record()
		return
	}
	g.clearTransient()
	g.serve(float64(g.cfg.Physics.ServeDelay))
}

// record hands the final score to the recorder once per run.
func (g *Game) record() {
	if g.s.Recorded {
		return
	}
	g.s.Recorded = true
	if g.recorder != nil {
		g.recorder.RecordScore(g.s.Score)
	}
}

// save writes a snapshot through the recorder.
func (g *Game) save() {
	if g.recorder == nil {
		return
	}
	if err := g.recorder.SaveGame(g.Snapshot()); err == nil {
		g.events.Add(core.EventSaved, g.s.Stage)
	}
}

// updateBullets moves player shots and resolves their brick hits.
func (g *Game) updateBullets(dt float64) {
	g.cooldown = math.Max(0, g.cooldown-dt)

	kept := g.bullets[:0]
	for _, b := range g.bullets {
		b.Y += b.VY * dt
		if b.Y+bulletH/2 < 0 {
			continue
		}
		if brick := g.firstBrickHit(b.Box()); brick != nil {
			g.hitBrick(brick, false)
			continue
		}
		kept = append(kept, b)
	}
	g.bullets = kept
}

// updateBoss advances the boss phase, movement and shooting.
func (g *Game) updateBoss(dt float64) {
	if g.boss == nil || !g.boss.Visible {
		return
	}
	boss := g.boss.Boss
	boss.advancePhase(dt)
	enraged := boss.Enraged(g.boss.HP)
	if g.s.Launched {
		boss.dodge(g.boss, g.balls)
	}
	boss.move(g.boss, g.bossArena(), dt, enraged, g.rng)

	if boss.tickShoot(dt, enraged) {
		box := g.boss.Box()
		x, y := box.CenterX(), box.Bottom()
		tx, ty := g.paddle.CenterX()-x, g.paddle.Y-y
		dist := math.Hypot(tx, ty)
		if dist == 0 {
			tx, ty, dist = 0, 1, 1
		}
		g.bossShots = append(g.bossShots, &BossBullet{
			X:  x,
			Y:  y,
			DX: tx / dist * bossBulletSpeed,
			DY: math.Abs(ty/dist) * bossBulletSpeed,
		})
	}
}

// bossArena returns the area the boss brick may move in.
func (g *Game) bossArena() core.Box {
	if g.boss.Boss.Pattern == PatternLeftRight {
		return core.Box{X: 0, Y: g.boss.Y, W: g.canvasW, H: g.boss.H}
	}
	top := g.cfg.Layout.OffsetTop
	return core.Box{X: 0, Y: top, W: g.canvasW, H: g.canvasH*0.55 - top}
}

// updateBossShots moves boss bullets; a bullet reaching the paddle applies a random nerf.
func (g *Game) updateBossShots(dt float64) {
	kept := g.bossShots[:0]
	for _, s := range g.bossShots {
		s.X += s.DX * dt
		s.Y += s.DY * dt
		if s.Y-bossShotR > g.canvasH || s.X < -bossShotR || s.X > g.canvasW+bossShotR {
			continue
		}
		if s.Box().Intersects(g.paddle.Box()) {
			g.applyNerf(drawBossNerf(g.rng))
			continue
		}
		kept = append(kept, s)
	}
	g.bossShots = kept
}

// updatePickups moves falling pickups and applies the caught ones.
func (g *Game) updatePickups(dt float64) {
	magnet := g.effects.Has(EffectMagnet)
	pull := math.Min(1, g.cfg.Effects.MagnetPull*dt)

	kept := g.pickups[:0]
	for _, p := range g.pickups {
		p.Y += p.VY * dt
		if magnet {
			p.X += (g.paddle.CenterX() - p.X) * pull
		}
		if p.Box().Intersects(g.paddle.Box()) {
			if p.Nerf != NerfNone {
				g.applyNerf(p.Nerf)
			} else {
				g.applyItem(p.Item)
			}
			continue
		}
		if p.Box().Y > g.paddle.Y+g.paddle.Height {
			continue
		}
		kept = append(kept, p)
	}
	g.pickups = kept
}

// applyItem applies a beneficial pickup.
func (g *Game) applyItem(k ItemKind) {
	fx := g.cfg.Effects
	g.events.Add(core.EventPickup, int(k))

	switch k {
	case ItemExtraLife:
		g.s.Lives++
	case ItemScore100:
		g.s.Score += 100
	case ItemLaser:
		for _, b := range g.grid.TopRow() {
			g.s.Score += b.Kind().Score()
			g.destroyBrick(b)
		}
	case ItemPaddle2x:
		g.effects.Apply(EffectPaddle2x, fx.Paddle2xDuration)
		g.recompute()
	case ItemBallSlow:
		g.applyBallSpeed(EffectBallSlow, fx.BallSlowDuration)
	case ItemBulletPower:
		g.effects.Apply(EffectBulletPower, fx.BulletPowerDuration)
	case ItemMagnet:
		g.effects.Apply(EffectMagnet, fx.MagnetDuration)
	case ItemTripleBall:
		g.tripleBall()
	}
}

// applyNerf applies a detrimental pickup or boss bullet hit.
func (g *Game) applyNerf(k NerfKind) {
	fx := g.cfg.Effects
	g.events.Add(core.EventNerf, int(k))

	switch k {
	case NerfPaddleSlow:
		g.effects.Apply(EffectPaddleSlow, fx.PaddleSlowDuration)
		g.recompute()
	case NerfPaddleShrink:
		g.effects.Apply(EffectPaddleShrink, fx.PaddleShrinkDuration)
		g.recompute()
	case NerfBallFast:
		g.applyBallSpeed(EffectBallFast, fx.BallFastDuration)
	case NerfPaddleFreeze:
		g.effects.Apply(EffectPaddleFreeze, fx.FreezeDuration)
	}
}

// applyBallSpeed replaces any ball-speed effect with e. Ball speed is set
// from the stage base speed, so slow and fast never compound.
func (g *Game) applyBallSpeed(e Effect, frames int) {
	g.effects.RemoveCategory(CategoryBallSpeed)
	g.rescaleBalls(g.s.BallSpeed)
	g.effects.Apply(e, frames)
	g.rescaleBalls(g.ballSpeed())
}

// ballSpeed returns the stage base speed scaled by the active ball-speed effect.
func (g *Game) ballSpeed() float64 {
	switch {
	case g.effects.Has(EffectBallSlow):
		return g.s.BallSpeed * 0.5
	case g.effects.Has(EffectBallFast):
		return g.s.BallSpeed * 2
	default:
		return g.s.BallSpeed
	}
}

// rescaleBalls sets every launched ball to speed.
func (g *Game) rescaleBalls(speed float64) {
	if !g.s.Launched {
		return
	}
	for _, b := range g.balls {
		b.SetSpeed(speed)
		g.limits.ClampAngle(b)
	}
}

// onExpired recomputes derived values after effects ran out.
func (g *Game) onExpired(expired []Effect) {
	g.recompute()
	for _, e := range expired {
		if e.Category() == CategoryBallSpeed {
			g.rescaleBalls(g.ballSpeed())
			return
		}
	}
}

// recompute derives paddle width and speed from the active effect set.
// Shrink takes precedence over double width.
func (g *Game) recompute() {
	base := g.cfg.Paddle.Width
	width := base
	switch {
	case g.effects.Has(EffectPaddleShrink):
		width = base * 0.5
	case g.effects.Has(EffectPaddle2x):
		width = math.Min(base*2, g.canvasW*0.8)
	}
	cx := g.paddle.CenterX()
	g.paddle.Width = width
	g.paddle.SetCenterX(cx, g.canvasW)

	g.paddle.Speed = g.cfg.Paddle.Speed
	if g.effects.Has(EffectPaddleSlow) {
		g.paddle.Speed *= 0.5
	}
}

// tripleBall splits every ball into three, fanned by the configured spread.
// While the ball waits on the paddle the split happens at launch.
func (g *Game) tripleBall() {
	if !g.s.Launched {
		g.tripleOnLaunch = true
		return
	}
	spread := g.cfg.Effects.TripleBallSpread
	current := len(g.balls)
	for _, src := range g.balls[:current] {
		for _, deg := range []float64{-spread, spread} {
			dx, dy := rotate(src.DX, src.DY, deg)
			nb := &Ball{X: src.X, Y: src.Y, DX: dx, DY: dy, Radius: src.Radius}
			g.limits.ClampAngle(nb)
			g.balls = append(g.balls, nb)
		}
	}
}

// checkStageProgress promotes the last brick to boss and detects stage clear.
func (g *Game) checkStageProgress() {
	visible := g.grid.VisibleCount()
	switch {
	case visible == 0:
		g.stageCleared()
	case visible == 1 && g.boss == nil:
		b := g.grid.Visible()[0]
		promote(b, g.cfg.Boss(g.s.Stage), g.canvasW, g.rng)
		g.boss = b
		g.events.Add(core.EventBossSpawned, g.s.Stage)
	}
}

// stageCleared moves to the clear overlay or ends the run with a win.
func (g *Game) stageCleared() {
	g.events.Add(core.EventStageClear, g.s.Stage)
	if g.s.Stage >= g.cfg.Gameplay.Stages {
		g.s.State = StateWin
		g.events.Add(core.EventWin, g.s.Score)
		g.record()
		return
	}
	g.s.State = StateStageClear
	g.s.showOverlay("STAGE CLEAR", g.overlayDuration())
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.s.Score,
		Stage:    g.s.Stage,
		GameOver: g.s.Over(),
		Won:      g.s.State == StateWin,
		Paused:   g.s.State == StatePaused,
	}
}

// Register the game with the registry
func init() {
	registry.Register("brickboss", func() registry.Game {
		return New()
	})
}
