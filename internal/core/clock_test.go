package core

import (
	"math"
	"testing"
	"time"
)

func TestFrameMultiplier(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  time.Duration
		expected float64
	}{
		{"zero", 0, 0},
		{"negative", -time.Second, 0},
		{"one frame", TargetFrame, 1},
		{"two frames", 2 * TargetFrame, 2},
		{"clamped", time.Second, float64(MaxFrameElapsed) / float64(TargetFrame)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FrameMultiplier(tc.elapsed)
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("FrameMultiplier(%v) = %v, expected %v", tc.elapsed, got, tc.expected)
			}
		})
	}
}

func TestFrameClockPauseResume(t *testing.T) {
	var c FrameClock
	start := time.Unix(1000, 0)

	if got := c.Tick(start); got != TargetFrame {
		t.Errorf("first tick = %v, expected %v", got, TargetFrame)
	}
	if got := c.Tick(start.Add(20 * time.Millisecond)); got != 20*time.Millisecond {
		t.Errorf("second tick = %v, expected 20ms", got)
	}

	c.Pause()
	if got := c.Tick(start.Add(time.Minute)); got != 0 {
		t.Errorf("paused tick = %v, expected 0", got)
	}

	// Resume must not catch up on the paused minute
	c.Resume()
	if got := c.Tick(start.Add(2 * time.Minute)); got != TargetFrame {
		t.Errorf("tick after resume = %v, expected %v", got, TargetFrame)
	}
}

func TestFrameClockClampsLargeGap(t *testing.T) {
	var c FrameClock
	start := time.Unix(1000, 0)
	c.Tick(start)

	if got := c.Tick(start.Add(5 * time.Second)); got != MaxFrameElapsed {
		t.Errorf("tick after gap = %v, expected %v", got, MaxFrameElapsed)
	}
}

func TestInputFrameAxes(t *testing.T) {
	in := NewInputFrame()
	in.Set(ActionLeft)
	if in.HorizontalAxis() != -1 {
		t.Errorf("HorizontalAxis = %v, expected -1", in.HorizontalAxis())
	}
	in.Set(ActionRight)
	if in.HorizontalAxis() != 0 {
		t.Errorf("HorizontalAxis with both = %v, expected 0", in.HorizontalAxis())
	}

	in.Pointer = Pointer{X: 0.5, Tapped: true}
	in.Clear()
	if in.Has(ActionLeft) || in.Pointer.Tapped {
		t.Error("Clear should drop actions and taps")
	}
	if in.Pointer.X != 0.5 {
		t.Error("Clear should keep pointer position")
	}
}
