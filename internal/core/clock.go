package core

import "time"

// TargetFrame is the fixed frame interval all tuning constants assume.
const TargetFrame = time.Second / 60

// MaxFrameElapsed caps a single frame's elapsed time so that a stalled
// terminal or a backgrounded session does not produce a large jump.
const MaxFrameElapsed = 50 * time.Millisecond

// FrameMultiplier converts an elapsed duration into a multiplier against
// TargetFrame, after clamping it to [0, MaxFrameElapsed].
func FrameMultiplier(elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	if elapsed > MaxFrameElapsed {
		elapsed = MaxFrameElapsed
	}
	return float64(elapsed) / float64(TargetFrame)
}

// FrameClock tracks the last frame time and yields per-frame elapsed durations.
type FrameClock struct {
	last   time.Time
	paused bool
}

// Tick returns the clamped elapsed time since the previous tick.
// The first tick after construction or Resume returns TargetFrame.
func (c *FrameClock) Tick(now time.Time) time.Duration {
	if c.paused {
		return 0
	}
	if c.last.IsZero() {
		c.last = now
		return TargetFrame
	}
	elapsed := now.Sub(c.last)
	c.last = now
	if elapsed < 0 {
		return 0
	}
	if elapsed > MaxFrameElapsed {
		return MaxFrameElapsed
	}
	return elapsed
}

// Pause stops the clock; Tick returns zero until Resume.
func (c *FrameClock) Pause() {
	c.paused = true
}

// Resume restarts the clock and forgets the last frame time,
// so the next Tick does not catch up on the paused interval.
func (c *FrameClock) Resume() {
	c.paused = false
	c.last = time.Time{}
}

// Paused reports whether the clock is paused.
func (c *FrameClock) Paused() bool {
	return c.paused
}
