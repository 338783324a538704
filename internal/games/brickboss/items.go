package brickboss

import (
	"math/rand/v2"

	"github.com/vovakirdan/brick-arcade/internal/core"
)

// Projectile sizes in world units.
const (
	pickupSize = 18
	bulletW    = 4
	bulletH    = 12
	bossShotR  = 6
)

// Pickup is a falling item or nerf dropped by a destroyed brick.
// Exactly one of Item and Nerf is set.
type Pickup struct {
	X, Y float64 // Center
	VY   float64
	Item ItemKind
	Nerf NerfKind
}

// Box returns the pickup's bounding box.
func (p *Pickup) Box() core.Box {
	return core.BoxAround(p.X, p.Y, pickupSize/2)
}

// Glyph returns the display character for the pickup.
func (p *Pickup) Glyph() rune {
	if p.Nerf != NerfNone {
		return p.Nerf.Glyph()
	}
	return p.Item.Glyph()
}

// Bullet is a player shot travelling upward.
type Bullet struct {
	X, Y float64 // Center
	VY   float64
}

// Box returns the bullet's bounding box.
func (b *Bullet) Box() core.Box {
	return core.Box{X: b.X - bulletW/2, Y: b.Y - bulletH/2, W: bulletW, H: bulletH}
}

// BossBullet is a boss shot aimed at the paddle.
type BossBullet struct {
	X, Y   float64
	DX, DY float64
}

// Box returns the boss bullet's bounding box.
func (b *BossBullet) Box() core.Box {
	return core.BoxAround(b.X, b.Y, bossShotR)
}

// nerfWeights is the boss bullet draw table: movement, size and speed
// nerfs are sampled twice as often as freeze.
var nerfWeights = []struct {
	nerf   NerfKind
	weight int
}{
	{NerfPaddleSlow, 2},
	{NerfPaddleShrink, 2},
	{NerfBallFast, 2},
	{NerfPaddleFreeze, 1},
}

// drawBossNerf picks a nerf by weight.
func drawBossNerf(rng *rand.Rand) NerfKind {
	total := 0
	for _, w := range nerfWeights {
		total += w.weight
	}
	n := rng.IntN(total)
	for _, w := range nerfWeights {
		if n < w.weight {
			return w.nerf
		}
		n -= w.weight
	}
	return NerfPaddleSlow
}
