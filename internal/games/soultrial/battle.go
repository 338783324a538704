package soultrial

import (
	"math"
	"math/rand/v2"

	"github.com/vovakirdan/brick-arcade/internal/config"
	"github.com/vovakirdan/brick-arcade/internal/core"
)

// Pattern is an enemy's attack pattern.
type Pattern int

const (
	PatternRain  Pattern = iota // Shots fall from the top edge
	PatternSweep                // Shots cross from one side, alternating sides
	PatternRing                 // A ring of shots closes in on the soul
)

func (p Pattern) String() string {
	switch p {
	case PatternSweep:
		return "sweep"
	case PatternRing:
		return "ring"
	default:
		return "rain"
	}
}

// Sizes in battle box units.
const (
	soulRadius = 4
	shotRadius = 4
	rainCount  = 4
	sweepCount = 3
	ringCount  = 8
)

// Shot is an enemy bullet inside the battle box.
type Shot struct {
	X, Y   float64
	DX, DY float64
	Life   float64 // Ticks until the shot is discarded
}

// Battle is one bullet-dodge encounter. Coordinates are relative to the
// top-left corner of the bullet box.
type Battle struct {
	Enemy   *NPC
	Pattern Pattern
	W, H    float64

	SoulX, SoulY float64
	Shots        []*Shot

	Elapsed    float64 // Ticks survived
	Duration   float64
	spawnTimer float64
	invuln     float64
	volleys    int
}

// newBattle places the soul at the center of a fresh box.
func newBattle(enemy *NPC, cfg config.SoulBattle) *Battle {
	return &Battle{
		Enemy:    enemy,
		Pattern:  enemy.Pattern,
		W:        cfg.BoxWidth,
		H:        cfg.BoxHeight,
		SoulX:    cfg.BoxWidth / 2,
		SoulY:    cfg.BoxHeight / 2,
		Duration: float64(cfg.Duration),
	}
}

// Box returns the bullet box in its own coordinates.
func (b *Battle) Box() core.Box {
	return core.Box{W: b.W, H: b.H}
}

// Invulnerable reports whether the soul ignores hits right now.
func (b *Battle) Invulnerable() bool {
	return b.invuln > 0
}

// Done reports whether the soul survived the full pattern.
func (b *Battle) Done() bool {
	return b.Elapsed >= b.Duration
}

// moveSoul moves the soul by the input axes, kept inside the box.
func (b *Battle) moveSoul(ax, ay, speed, dt float64) {
	b.SoulX = core.ClampF(b.SoulX+ax*speed*dt, soulRadius, b.W-soulRadius)
	b.SoulY = core.ClampF(b.SoulY+ay*speed*dt, soulRadius, b.H-soulRadius)
}

// spawn adds one volley of the battle's pattern.
func (b *Battle) spawn(speed float64, rng *rand.Rand) {
	life := (b.W + b.H) / math.Max(speed, 0.1)
	switch b.Pattern {
	case PatternRain:
		for range rainCount {
			x := shotRadius + rng.Float64()*(b.W-2*shotRadius)
			b.Shots = append(b.Shots, &Shot{X: x, Y: -shotRadius, DY: speed, Life: life})
		}

	case PatternSweep:
		x, dx := -float64(shotRadius), speed
		if b.volleys%2 == 1 {
			x, dx = b.W+shotRadius, -speed
		}
		for range sweepCount {
			y := shotRadius + rng.Float64()*(b.H-2*shotRadius)
			b.Shots = append(b.Shots, &Shot{X: x, Y: y, DX: dx, Life: life})
		}

	case PatternRing:
		radius := math.Max(b.W, b.H) / 2
		offset := rng.Float64() * 2 * math.Pi
		for i := range ringCount {
			a := offset + float64(i)*2*math.Pi/ringCount
			sin, cos := math.Sincos(a)
			b.Shots = append(b.Shots, &Shot{
				X:    b.SoulX + cos*radius,
				Y:    b.SoulY + sin*radius,
				DX:   -cos * speed,
				DY:   -sin * speed,
				Life: 2 * radius / math.Max(speed, 0.1),
			})
		}
	}
	b.volleys++
}

// update advances shots and timers by dt ticks. It returns true when the
// soul was hit this frame.
func (b *Battle) update(cfg config.SoulBattle, speed, dt float64, rng *rand.Rand) bool {
	b.Elapsed += dt
	b.invuln = math.Max(0, b.invuln-dt)

	b.spawnTimer -= dt
	if b.spawnTimer <= 0 {
		b.spawn(speed, rng)
		b.spawnTimer += float64(max(cfg.SpawnInterval, 1))
	}

	hit := false
	margin := math.Max(b.W, b.H)
	kept := b.Shots[:0]
	for _, s := range b.Shots {
		s.X += s.DX * dt
		s.Y += s.DY * dt
		s.Life -= dt
		if s.Life <= 0 || s.X < -margin || s.X > b.W+margin || s.Y < -margin || s.Y > b.H+margin {
			continue
		}
		if !hit && !b.Invulnerable() && touches(s, b.SoulX, b.SoulY) {
			hit = true
			b.invuln = float64(cfg.InvulnFrames)
			continue
		}
		kept = append(kept, s)
	}
	b.Shots = kept
	return hit
}

// touches reports whether a shot overlaps the soul.
func touches(s *Shot, x, y float64) bool {
	return math.Hypot(s.X-x, s.Y-y) < soulRadius+shotRadius
}
