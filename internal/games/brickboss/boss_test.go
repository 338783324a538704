package brickboss

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/vovakirdan/brick-arcade/internal/config"
	"github.com/vovakirdan/brick-arcade/internal/core"
)

// bossGame returns a playing game whose only brick is a boss of the given stage.
func bossGame(t *testing.T, stage int) (*Game, *Brick) {
	t.Helper()
	g := newPlaying(t, 3)
	g.s.Stage = stage
	b := &Brick{X: 380, Y: 150, W: 40, H: 20, HP: 1}
	useBricks(g, b)
	promote(b, g.cfg.Boss(stage), g.canvasW, g.rng)
	g.boss = b
	return g, b
}

func TestBossHPMonotonic(t *testing.T) {
	g, b := bossGame(t, 5)
	start := b.HP
	if start != 6 {
		t.Fatalf("stage 5 boss hp = %d, expected 6", start)
	}

	prev := b.HP
	for i := range 20 {
		g.hits.Reset()
		g.hitBrick(b, i%2 == 0)
		if b.HP > prev {
			t.Fatalf("boss hp increased: %d -> %d", prev, b.HP)
		}
		if prev > 0 && prev-b.HP != 1 {
			t.Fatalf("hit %d: hp %d -> %d, expected a decrement of 1", i, prev, b.HP)
		}
		if b.HP < 0 {
			t.Fatal("boss hp went negative")
		}
		prev = b.HP
	}
	if b.HP != 0 || b.Visible {
		t.Errorf("boss should be dead and hidden, hp=%d visible=%v", b.HP, b.Visible)
	}
}

func TestBossOneHitPerFrame(t *testing.T) {
	g, b := bossGame(t, 5)
	g.hits.Reset()
	g.hitBrick(b, false)
	g.hitBrick(b, false)
	g.hitBrick(b, true)
	if b.HP != 5 {
		t.Errorf("hp = %d, expected 5 after one frame of overlapping hits", b.HP)
	}

	g.hits.Reset()
	g.hitBrick(b, false)
	if b.HP != 4 {
		t.Errorf("hp = %d, expected 4 on the next frame", b.HP)
	}
}

func TestFinalBossInvincibilityCycle(t *testing.T) {
	_, b := bossGame(t, 6)
	boss := b.Boss

	wantPhases := []struct {
		at    int
		phase Phase
	}{
		{1, PhaseVulnerable},
		{599, PhaseVulnerable},
		{600, PhaseInvincible},
		{899, PhaseInvincible},
		{900, PhaseVulnerable},
		{1500, PhaseInvincible},
		{1800, PhaseVulnerable},
	}

	tick := 0
	for _, w := range wantPhases {
		for tick < w.at {
			boss.advancePhase(1)
			tick++
		}
		if boss.Phase() != w.phase {
			t.Errorf("after %d ticks phase = %s, expected %s", tick, boss.Phase(), w.phase)
		}
	}
}

func TestInvincibleBossIgnoresHits(t *testing.T) {
	g, b := bossGame(t, 6)
	for range 600 {
		b.Boss.advancePhase(1)
	}
	if b.Boss.Phase() != PhaseInvincible {
		t.Fatalf("expected invincible phase, got %s", b.Boss.Phase())
	}

	hp := b.HP
	for range 5 {
		g.hits.Reset()
		g.hitBrick(b, true)
		g.hitBrick(b, false)
	}
	if b.HP != hp {
		t.Errorf("hp changed during invincibility: %d -> %d", hp, b.HP)
	}
}

func TestPostHitGrace(t *testing.T) {
	g, b := bossGame(t, 6)
	hp := b.HP

	g.hits.Reset()
	g.hitBrick(b, true)
	if b.HP != hp-1 {
		t.Fatalf("first ball hit should count, hp=%d", b.HP)
	}
	if b.Boss.Phase() != PhasePostHitGrace {
		t.Fatalf("expected grace after a ball hit, got %s", b.Boss.Phase())
	}

	for range 59 {
		b.Boss.advancePhase(1)
		g.hits.Reset()
		g.hitBrick(b, false)
	}
	if b.HP != hp-1 {
		t.Errorf("hits during grace should be ignored, hp=%d", b.HP)
	}

	b.Boss.advancePhase(1)
	if b.Boss.Phase() != PhaseVulnerable {
		t.Fatalf("grace should end after 60 ticks, got %s", b.Boss.Phase())
	}
	g.hits.Reset()
	g.hitBrick(b, false)
	if b.HP != hp-2 {
		t.Errorf("bullet hit after grace should count, hp=%d", b.HP)
	}
	if b.Boss.Phase() != PhaseVulnerable {
		t.Error("bullet hits should not start grace")
	}
}

func TestEnrage(t *testing.T) {
	multi := &Boss{StartHP: 6, ShootInterval: 120}
	single := &Boss{StartHP: 1}

	if !multi.Enraged(1) || multi.Enraged(2) {
		t.Error("multi-hit boss should enrage only at hp 1")
	}
	if single.Enraged(1) {
		t.Error("single-hit boss should never enrage")
	}

	calm, angry := 0, 0
	calmBoss := &Boss{StartHP: 6, ShootInterval: 120}
	for range 240 {
		if calmBoss.tickShoot(1, false) {
			calm++
		}
		if multi.tickShoot(1, true) {
			angry++
		}
	}
	if calm != 2 || angry != 4 {
		t.Errorf("shots in 240 ticks: calm=%d enraged=%d, expected 2 and 4", calm, angry)
	}
}

func TestBossMovementPatterns(t *testing.T) {
	arena := core.Box{X: 0, Y: 60, W: 800, H: 270}
	rng := rand.New(rand.NewPCG(9, 9))

	tests := []struct {
		pattern string
		speed   float64
	}{
		{"none", 0},
		{"left-right", 2},
		{"free-bounce", 2.5},
		{"curve", 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			boss := NewBoss(config.BossStage{HP: 1, Pattern: tt.pattern, Speed: tt.speed}, rng)
			brick := &Brick{X: 380, Y: 100, W: 60, H: 30}
			startX, startY := brick.X, brick.Y

			for range 2000 {
				boss.move(brick, arena, 1, false, rng)
				if brick.X < arena.X-1e-9 || brick.X+brick.W > arena.Right()+1e-9 {
					t.Fatalf("boss left arena horizontally: x=%v", brick.X)
				}
				if brick.Y < arena.Y-1e-9 || brick.Y+brick.H > arena.Bottom()+1e-9 {
					if tt.pattern != "left-right" && tt.pattern != "none" {
						t.Fatalf("boss left arena vertically: y=%v", brick.Y)
					}
				}
				if tt.pattern == "curve" {
					speed := math.Hypot(boss.VX, boss.VY)
					if speed < curveMinSpeed-1e-9 || speed > curveMaxSpeed+1e-9 {
						t.Fatalf("curve speed %v outside band", speed)
					}
					if math.Abs(boss.VX) < curveMinAxisRatio*speed*0.99 && math.Abs(boss.VY) < curveMinAxisRatio*speed*0.99 {
						t.Fatalf("curve velocity too axis aligned: %v,%v", boss.VX, boss.VY)
					}
				}
			}

			switch tt.pattern {
			case "none":
				if brick.X != startX || brick.Y != startY {
					t.Error("static boss moved")
				}
			case "left-right":
				if brick.Y != startY {
					t.Error("left-right boss moved vertically")
				}
				if brick.X == startX {
					t.Error("left-right boss did not move")
				}
			}
		})
	}
}

func TestBossDodge(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	boss := NewBoss(config.BossStage{HP: 10, Pattern: "curve", Speed: 3, Dodge: true}, rng)
	brick := &Brick{X: 380, Y: 100, W: 60, H: 30}

	// Ball left of the boss, heading straight at its center.
	ball := &Ball{X: 350, Y: 215, Radius: 8}
	cx, cy := brick.Box().CenterX(), brick.Box().CenterY()
	d := math.Hypot(cx-ball.X, cy-ball.Y)
	ball.DX, ball.DY = (cx-ball.X)/d*5, (cy-ball.Y)/d*5

	boss.VX = -2
	boss.dodge(brick, []*Ball{ball})
	if boss.VX <= 0 {
		t.Errorf("boss should steer right, away from the ball; VX=%v", boss.VX)
	}

	// A ball moving away is ignored.
	boss.VX = -2
	ball.DX, ball.DY = -ball.DX, -ball.DY
	boss.dodge(brick, []*Ball{ball})
	if boss.VX != -2 {
		t.Errorf("receding ball should not trigger a dodge; VX=%v", boss.VX)
	}

	// A far ball is ignored.
	far := &Ball{X: 0, Y: 590, DX: 3, DY: -4, Radius: 8}
	boss.dodge(brick, []*Ball{far})
	if boss.VX != -2 {
		t.Errorf("far ball should not trigger a dodge; VX=%v", boss.VX)
	}
}

func TestBossShootsAtPaddle(t *testing.T) {
	g, b := bossGame(t, 5)
	launchAt(g, 50, 300, 3, -4)
	interval := b.Boss.ShootInterval

	for range interval {
		g.updateBoss(1)
	}
	if len(g.bossShots) != 1 {
		t.Fatalf("expected one boss shot after %d ticks, got %d", interval, len(g.bossShots))
	}
	if g.bossShots[0].DY <= 0 {
		t.Error("boss shot should travel downward")
	}

	shot := g.bossShots[0]
	shot.X, shot.Y = g.paddle.CenterX(), g.paddle.Y
	g.updateBossShots(1)
	if len(g.bossShots) != 0 {
		t.Error("shot reaching the paddle should be consumed")
	}
	if g.effects.Len() == 0 {
		t.Error("shot reaching the paddle should apply a nerf")
	}
}

func TestHitTracker(t *testing.T) {
	tr := NewHitTracker()
	if !tr.Begin(3) {
		t.Error("first hit should begin")
	}
	if tr.Begin(3) {
		t.Error("second hit on the same id should be rejected")
	}
	if !tr.Begin(4) {
		t.Error("other ids are tracked separately")
	}
	tr.Reset()
	if !tr.Begin(3) {
		t.Error("reset should forget hits")
	}
}

func TestParsePattern(t *testing.T) {
	for _, p := range []MovePattern{PatternNone, PatternLeftRight, PatternFreeBounce, PatternCurve} {
		if got := ParsePattern(p.String()); got != p {
			t.Errorf("ParsePattern(%q) = %v", p.String(), got)
		}
	}
	if ParsePattern("zigzag") != PatternNone {
		t.Error("unknown pattern should map to none")
	}
}
