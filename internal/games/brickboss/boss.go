package brickboss

import (
	"math"
	"math/rand/v2"

	"github.com/vovakirdan/brick-arcade/internal/config"
	"github.com/vovakirdan/brick-arcade/internal/core"
)

// MovePattern is how a boss brick moves.
type MovePattern int

const (
	PatternNone MovePattern = iota
	PatternLeftRight
	PatternFreeBounce
	PatternCurve
)

// ParsePattern converts a config value to a pattern. Unknown values yield PatternNone.
func ParsePattern(s string) MovePattern {
	switch s {
	case "left-right":
		return PatternLeftRight
	case "free-bounce":
		return PatternFreeBounce
	case "curve":
		return PatternCurve
	default:
		return PatternNone
	}
}

func (p MovePattern) String() string {
	switch p {
	case PatternLeftRight:
		return "left-right"
	case PatternFreeBounce:
		return "free-bounce"
	case PatternCurve:
		return "curve"
	default:
		return "none"
	}
}

// Phase is the boss's hit acceptance state.
type Phase int

const (
	PhaseVulnerable Phase = iota
	PhaseInvincible
	PhasePostHitGrace
)

func (p Phase) String() string {
	switch p {
	case PhaseInvincible:
		return "invincible"
	case PhasePostHitGrace:
		return "grace"
	default:
		return "vulnerable"
	}
}

type phaseWindow struct {
	phase Phase
	ticks float64
}

// invincibilityCycle is the final boss's 30s cycle in 60Hz ticks.
var invincibilityCycle = []phaseWindow{
	{PhaseVulnerable, 600},
	{PhaseInvincible, 300},
	{PhaseVulnerable, 600},
	{PhaseInvincible, 300},
}

// Boss tuning constants. These are tuning data; values are in 60Hz ticks
// and world units per tick.
const (
	postHitGraceTicks = 60
	curveJitterTicks  = 30
	curveJitter       = 0.8
	curveMinAxisRatio = 0.3
	curveMinSpeed     = 1.5
	curveMaxSpeed     = 4
	dodgeDistance     = 150
	dodgeHeading      = 0.8
	enrageFactor      = 2
	bossBulletSpeed   = 4
	bossGrowW         = 1.8
	bossGrowH         = 1.5
)

// Boss is the behavior attached to the last brick of a stage.
// VX/VY are the calm velocity; enraged movement scales them at integration.
type Boss struct {
	Pattern       MovePattern
	VX, VY        float64
	Speed         float64
	StartHP       int
	ShootInterval int
	Dodge         bool
	Cycle         bool

	phase       Phase
	cycleIndex  int
	cycleLeft   float64
	graceLeft   float64
	shootTimer  float64
	jitterTimer float64
}

// NewBoss creates a boss from stage tuning with a random initial heading.
func NewBoss(t config.BossStage, rng *rand.Rand) *Boss {
	b := &Boss{
		Pattern:       ParsePattern(t.Pattern),
		Speed:         t.Speed,
		StartHP:       max(t.HP, 1),
		ShootInterval: t.ShootInterval,
		Dodge:         t.Dodge,
		Cycle:         t.Invincibility,
		phase:         PhaseVulnerable,
	}
	if b.Cycle {
		b.cycleLeft = invincibilityCycle[0].ticks
	}

	side := 1.0
	if rng.IntN(2) == 0 {
		side = -1
	}
	switch b.Pattern {
	case PatternLeftRight:
		b.VX = side * b.Speed
	case PatternFreeBounce:
		b.VX = side * b.Speed * math.Sqrt2 / 2
		b.VY = b.Speed * math.Sqrt2 / 2
	case PatternCurve:
		angle := (0.25 + rng.Float64()*0.5) * math.Pi / 2
		b.VX = side * b.Speed * math.Cos(angle)
		b.VY = b.Speed * math.Sin(angle)
		b.enforceCurveBand()
	}
	return b
}

// Phase returns the current hit acceptance phase.
func (b *Boss) Phase() Phase {
	return b.phase
}

// Vulnerable reports whether hits are accepted right now.
func (b *Boss) Vulnerable() bool {
	return b.phase == PhaseVulnerable
}

// Enraged reports whether a boss at the given hp moves and shoots faster.
// Single-hit bosses never enrage.
func (b *Boss) Enraged(hp int) bool {
	return b.StartHP > 1 && hp == 1
}

// advancePhase moves the phase state machine forward by dt ticks.
func (b *Boss) advancePhase(dt float64) {
	if b.graceLeft > 0 {
		b.graceLeft -= dt
	}
	if b.Cycle {
		b.cycleLeft -= dt
		if b.cycleLeft <= 0 {
			b.cycleIndex = (b.cycleIndex + 1) % len(invincibilityCycle)
			b.cycleLeft += invincibilityCycle[b.cycleIndex].ticks
		}
	}

	switch {
	case b.graceLeft > 0:
		b.phase = PhasePostHitGrace
	case b.Cycle:
		b.phase = invincibilityCycle[b.cycleIndex].phase
	default:
		b.phase = PhaseVulnerable
	}
}

// acceptHit reports whether a hit counts. Ball hits on a cycling boss
// start the post-hit grace window.
func (b *Boss) acceptHit(byBall bool) bool {
	if !b.Vulnerable() {
		return false
	}
	if byBall && b.Cycle {
		b.graceLeft = postHitGraceTicks
		b.phase = PhasePostHitGrace
	}
	return true
}

// move advances the boss brick inside arena.
func (b *Boss) move(brick *Brick, arena core.Box, dt float64, enraged bool, rng *rand.Rand) {
	if b.Pattern == PatternNone {
		return
	}
	factor := 1.0
	if enraged {
		factor = enrageFactor
	}

	if b.Pattern == PatternCurve {
		b.jitterTimer += dt
		if b.jitterTimer >= curveJitterTicks {
			b.jitterTimer = 0
			b.VX += (rng.Float64()*2 - 1) * curveJitter
			b.VY += (rng.Float64()*2 - 1) * curveJitter
		}
		b.enforceCurveBand()
	}

	brick.X += b.VX * factor * dt
	if b.Pattern != PatternLeftRight {
		brick.Y += b.VY * factor * dt
	}

	hitX, hitY := false, false
	if brick.X < arena.X {
		brick.X = arena.X
		b.VX = math.Abs(b.VX)
		hitX = true
	} else if brick.X+brick.W > arena.Right() {
		brick.X = arena.Right() - brick.W
		b.VX = -math.Abs(b.VX)
		hitX = true
	}
	if b.Pattern != PatternLeftRight {
		if brick.Y < arena.Y {
			brick.Y = arena.Y
			b.VY = math.Abs(b.VY)
			hitY = true
		} else if brick.Y+brick.H > arena.Bottom() {
			brick.Y = math.Max(arena.Y, arena.Bottom()-brick.H)
			b.VY = -math.Abs(b.VY)
			hitY = true
		}
	}

	if b.Pattern == PatternCurve && (hitX || hitY) {
		// Randomize the magnitude of the reflected components.
		if hitX {
			b.VX *= 0.8 + rng.Float64()*0.4
		}
		if hitY {
			b.VY *= 0.8 + rng.Float64()*0.4
		}
		b.enforceCurveBand()
	}
}

// enforceCurveBand keeps both axes above the minimum ratio and the speed
// inside [curveMinSpeed, curveMaxSpeed].
func (b *Boss) enforceCurveBand() {
	speed := math.Hypot(b.VX, b.VY)
	if speed == 0 {
		b.VX, b.VY = curveMinSpeed, curveMinSpeed
		speed = math.Hypot(b.VX, b.VY)
	}
	minAxis := curveMinAxisRatio * speed
	if math.Abs(b.VX) < minAxis {
		b.VX = signOrDefault(b.VX, 1) * minAxis
	}
	if math.Abs(b.VY) < minAxis {
		b.VY = signOrDefault(b.VY, 1) * minAxis
	}
	speed = math.Hypot(b.VX, b.VY)
	target := core.ClampF(speed, curveMinSpeed, curveMaxSpeed)
	if target != speed {
		b.VX *= target / speed
		b.VY *= target / speed
	}
}

// dodge steers the boss sideways away from a ball that is close and heading at it.
func (b *Boss) dodge(brick *Brick, balls []*Ball) {
	if !b.Dodge {
		return
	}
	cx, cy := brick.Box().CenterX(), brick.Box().CenterY()
	for _, ball := range balls {
		tx, ty := cx-ball.X, cy-ball.Y
		dist := math.Hypot(tx, ty)
		speed := ball.Speed()
		if dist == 0 || dist > dodgeDistance || speed == 0 {
			continue
		}
		heading := (ball.DX*tx + ball.DY*ty) / (dist * speed)
		if heading <= dodgeHeading {
			continue
		}
		away := signOrDefault(tx, 1)
		b.VX = away * math.Max(math.Abs(b.VX), curveMinSpeed)
		return
	}
}

// tickShoot advances the shoot timer and reports whether to fire.
func (b *Boss) tickShoot(dt float64, enraged bool) bool {
	if b.ShootInterval <= 0 {
		return false
	}
	rate := 1.0
	if enraged {
		rate = enrageFactor
	}
	b.shootTimer += dt * rate
	if b.shootTimer >= float64(b.ShootInterval) {
		b.shootTimer -= float64(b.ShootInterval)
		return true
	}
	return false
}

// HitTracker records which bricks already took a hit this frame.
type HitTracker struct {
	hits map[int]struct{}
}

// NewHitTracker creates an empty tracker.
func NewHitTracker() *HitTracker {
	return &HitTracker{hits: make(map[int]struct{})}
}

// Begin registers a hit on id and reports whether it is the first this frame.
func (t *HitTracker) Begin(id int) bool {
	if _, ok := t.hits[id]; ok {
		return false
	}
	t.hits[id] = struct{}{}
	return true
}

// Reset forgets all hits. Called at the start of every frame.
func (t *HitTracker) Reset() {
	clear(t.hits)
}

// promote turns brick into the stage boss: enlarged around its center and
// given boss hp and behavior.
func promote(brick *Brick, t config.BossStage, canvasW float64, rng *rand.Rand) *Boss {
	boss := NewBoss(t, rng)
	cx, cy := brick.Box().CenterX(), brick.Box().CenterY()
	brick.W = math.Min(brick.W*bossGrowW, canvasW/3)
	brick.H *= bossGrowH
	brick.X = core.ClampF(cx-brick.W/2, 0, canvasW-brick.W)
	brick.Y = cy - brick.H/2
	brick.HP = boss.StartHP
	brick.MaxHP = boss.StartHP
	brick.Item = ItemNone
	brick.Nerf = NerfNone
	brick.Boss = boss
	return boss
}
