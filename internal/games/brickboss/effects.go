package brickboss

// ItemKind is the payload of a beneficial item brick.
type ItemKind int

const (
	ItemNone ItemKind = iota
	ItemExtraLife
	ItemScore100
	ItemLaser
	ItemPaddle2x
	ItemBallSlow
	ItemBulletPower
	ItemMagnet
	ItemTripleBall
	itemCount
)

// Glyph returns the display character for an item pickup.
func (k ItemKind) Glyph() rune {
	switch k {
	case ItemExtraLife:
		return '♥'
	case ItemScore100:
		return '$'
	case ItemLaser:
		return 'L'
	case ItemPaddle2x:
		return 'W'
	case ItemBallSlow:
		return '-'
	case ItemBulletPower:
		return '!'
	case ItemMagnet:
		return 'U'
	case ItemTripleBall:
		return '3'
	default:
		return '?'
	}
}

func (k ItemKind) String() string {
	switch k {
	case ItemNone:
		return "none"
	case ItemExtraLife:
		return "extra_life"
	case ItemScore100:
		return "score100"
	case ItemLaser:
		return "laser"
	case ItemPaddle2x:
		return "paddle2x"
	case ItemBallSlow:
		return "ball_slow"
	case ItemBulletPower:
		return "bullet_power"
	case ItemMagnet:
		return "magnet"
	case ItemTripleBall:
		return "triple_ball"
	default:
		return "unknown"
	}
}

// NerfKind is the payload of a detrimental nerf brick or boss bullet.
type NerfKind int

const (
	NerfNone NerfKind = iota
	NerfPaddleSlow
	NerfPaddleShrink
	NerfBallFast
	NerfPaddleFreeze
	nerfCount
)

// Glyph returns the display character for a nerf pickup.
func (k NerfKind) Glyph() rune {
	switch k {
	case NerfPaddleSlow:
		return 's'
	case NerfPaddleShrink:
		return 'x'
	case NerfBallFast:
		return '+'
	case NerfPaddleFreeze:
		return '#'
	default:
		return '?'
	}
}

func (k NerfKind) String() string {
	switch k {
	case NerfNone:
		return "none"
	case NerfPaddleSlow:
		return "paddle_slow"
	case NerfPaddleShrink:
		return "paddle_shrink"
	case NerfBallFast:
		return "ball_fast"
	case NerfPaddleFreeze:
		return "paddle_freeze"
	default:
		return "unknown"
	}
}

// Category groups timed effects that act on the same quantity.
type Category int

const (
	CategoryPaddleSize Category = iota
	CategoryBallSpeed
	CategoryPower
	CategoryCrowdControl
)

// Effect is a timed buff or debuff.
type Effect int

const (
	EffectPaddle2x Effect = iota
	EffectPaddleShrink
	EffectBallSlow
	EffectBallFast
	EffectBulletPower
	EffectMagnet
	EffectPaddleSlow
	EffectPaddleFreeze
)

// Category returns the group an effect belongs to.
func (e Effect) Category() Category {
	switch e {
	case EffectPaddle2x, EffectPaddleShrink:
		return CategoryPaddleSize
	case EffectBallSlow, EffectBallFast:
		return CategoryBallSpeed
	case EffectBulletPower, EffectMagnet:
		return CategoryPower
	default:
		return CategoryCrowdControl
	}
}

// String returns the short HUD label for an effect.
func (e Effect) String() string {
	switch e {
	case EffectPaddle2x:
		return "2X"
	case EffectPaddleShrink:
		return "SHRINK"
	case EffectBallSlow:
		return "SLOW"
	case EffectBallFast:
		return "FAST"
	case EffectBulletPower:
		return "GUN"
	case EffectMagnet:
		return "MAG"
	case EffectPaddleSlow:
		return "DRAG"
	case EffectPaddleFreeze:
		return "FROZEN"
	default:
		return "?"
	}
}

// ActiveEffect is an effect with its remaining duration in frames.
type ActiveEffect struct {
	Effect    Effect
	Remaining int
}

// EffectSet holds at most one entry per effect.
type EffectSet struct {
	entries []ActiveEffect
}

// Apply starts an effect, replacing any running entry of the same effect.
func (s *EffectSet) Apply(e Effect, frames int) {
	for i := range s.entries {
		if s.entries[i].Effect == e {
			s.entries[i].Remaining = frames
			return
		}
	}
	s.entries = append(s.entries, ActiveEffect{Effect: e, Remaining: frames})
}

// RemoveCategory drops every effect of a category.
func (s *EffectSet) RemoveCategory(c Category) {
	kept := s.entries[:0]
	for _, a := range s.entries {
		if a.Effect.Category() != c {
			kept = append(kept, a)
		}
	}
	s.entries = kept
}

// Has reports whether an effect is running.
func (s *EffectSet) Has(e Effect) bool {
	for _, a := range s.entries {
		if a.Effect == e {
			return true
		}
	}
	return false
}

// Remaining returns the frames left for an effect, 0 if not running.
func (s *EffectSet) Remaining(e Effect) int {
	for _, a := range s.entries {
		if a.Effect == e {
			return a.Remaining
		}
	}
	return 0
}

// Tick decrements every effect by one frame and returns the ones that ran out.
func (s *EffectSet) Tick() []Effect {
	var expired []Effect
	kept := s.entries[:0]
	for _, a := range s.entries {
		a.Remaining--
		if a.Remaining <= 0 {
			expired = append(expired, a.Effect)
			continue
		}
		kept = append(kept, a)
	}
	s.entries = kept
	return expired
}

// Clear drops every effect.
func (s *EffectSet) Clear() {
	s.entries = s.entries[:0]
}

// List returns a copy of the running effects in application order.
func (s *EffectSet) List() []ActiveEffect {
	out := make([]ActiveEffect, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of running effects.
func (s *EffectSet) Len() int {
	return len(s.entries)
}
