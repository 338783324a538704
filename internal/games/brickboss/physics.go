package brickboss

import (
	"math"

	"github.com/vovakirdan/brick-arcade/internal/core"
)

// Ball is a moving ball in world units. DX/DY are units per 60Hz frame.
type Ball struct {
	X, Y   float64 // Center
	DX, DY float64
	Radius float64
}

// Box returns the ball's bounding box.
func (b *Ball) Box() core.Box {
	return core.BoxAround(b.X, b.Y, b.Radius)
}

// Speed returns the velocity magnitude.
func (b *Ball) Speed() float64 {
	return math.Hypot(b.DX, b.DY)
}

// SetSpeed rescales the velocity to the given magnitude, keeping direction.
func (b *Ball) SetSpeed(speed float64) {
	cur := b.Speed()
	if cur == 0 {
		b.DX, b.DY = 0, -speed
		return
	}
	k := speed / cur
	b.DX *= k
	b.DY *= k
}

// Paddle is the player's paddle. X/Y is the top-left corner.
type Paddle struct {
	X, Y   float64
	Width  float64
	Height float64
	Speed  float64
}

// Box returns the paddle's bounding box.
func (p *Paddle) Box() core.Box {
	return core.Box{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// CenterX returns the horizontal center of the paddle.
func (p *Paddle) CenterX() float64 {
	return p.X + p.Width/2
}

// SetCenterX moves the paddle so its center sits at cx, kept inside [0, limit].
func (p *Paddle) SetCenterX(cx, limit float64) {
	p.X = core.ClampF(cx-p.Width/2, 0, math.Max(0, limit-p.Width))
}

// AngleLimits bounds a ball's tilt from vertical, in degrees.
type AngleLimits struct {
	Enabled bool
	Min     float64
	Max     float64
}

// ClampAngle restricts the ball's tilt from vertical to [Min, Max] degrees,
// preserving speed and the signs of both components.
func (l AngleLimits) ClampAngle(b *Ball) {
	if !l.Enabled {
		return
	}
	speed := b.Speed()
	if speed == 0 {
		return
	}
	tilt := TiltDegrees(b.DX, b.DY)
	if tilt >= l.Min && tilt <= l.Max {
		return
	}
	tilt = core.ClampF(tilt, l.Min, l.Max)
	sx := signOrDefault(b.DX, 1)
	sy := signOrDefault(b.DY, -1)
	rad := tilt * math.Pi / 180
	b.DX = sx * speed * math.Sin(rad)
	b.DY = sy * speed * math.Cos(rad)
}

// TiltDegrees returns the ball's angle from vertical in degrees.
func TiltDegrees(dx, dy float64) float64 {
	return math.Atan2(math.Abs(dx), math.Abs(dy)) * 180 / math.Pi
}

// PaddleBounce sends the ball upward with the launch-angle model:
// the tilt from vertical is 20° + 50°·|h| where h is the normalized hit
// offset from the paddle center, leaning toward the side that was hit.
// Speed is preserved.
func PaddleBounce(b *Ball, p *Paddle) {
	half := p.Width / 2
	h := 0.0
	if half > 0 {
		h = core.ClampF((b.X-p.CenterX())/half, -1, 1)
	}
	speed := b.Speed()
	rad := (20 + 50*math.Abs(h)) * math.Pi / 180
	b.DX = signOrDefault(h, 1) * speed * math.Sin(rad)
	b.DY = -speed * math.Cos(rad)
	b.Y = p.Y - b.Radius
}

// LaunchVelocity returns the serve velocity for a given speed and side.
func LaunchVelocity(speed float64, side float64) (dx, dy float64) {
	rad := 20 * math.Pi / 180
	return signOrDefault(side, 1) * speed * math.Sin(rad), -speed * math.Cos(rad)
}

// bounceWalls reflects the ball off the side walls and the ceiling.
// It reports whether the velocity changed.
func bounceWalls(b *Ball, width float64) bool {
	bounced := false
	if b.X-b.Radius < 0 {
		b.X = b.Radius
		b.DX = math.Abs(b.DX)
		bounced = true
	} else if b.X+b.Radius > width {
		b.X = width - b.Radius
		b.DX = -math.Abs(b.DX)
		bounced = true
	}
	if b.Y-b.Radius < 0 {
		b.Y = b.Radius
		b.DY = math.Abs(b.DY)
		bounced = true
	}
	return bounced
}

// reflectOffBox pushes the ball out of box along the axis of minimum
// penetration and reflects the matching velocity component.
func reflectOffBox(b *Ball, box core.Box) {
	px, py := b.Box().Penetration(box)
	if px < py {
		if b.X < box.CenterX() {
			b.X = box.X - b.Radius
			b.DX = -math.Abs(b.DX)
		} else {
			b.X = box.Right() + b.Radius
			b.DX = math.Abs(b.DX)
		}
		return
	}
	if b.Y < box.CenterY() {
		b.Y = box.Y - b.Radius
		b.DY = -math.Abs(b.DY)
	} else {
		b.Y = box.Bottom() + b.Radius
		b.DY = math.Abs(b.DY)
	}
}

// rotate turns a velocity by deg degrees.
func rotate(dx, dy, deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return dx*cos - dy*sin, dx*sin + dy*cos
}

func signOrDefault(v, def float64) float64 {
	if s := core.Sign(v); s != 0 {
		return s
	}
	return def
}
