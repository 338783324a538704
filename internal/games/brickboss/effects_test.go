package brickboss

import "testing"

func TestEffectSetApplyReplaces(t *testing.T) {
	var s EffectSet
	s.Apply(EffectMagnet, 10)
	s.Apply(EffectPaddle2x, 5)
	s.Apply(EffectMagnet, 30)

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", s.Len())
	}
	if got := s.Remaining(EffectMagnet); got != 30 {
		t.Errorf("magnet remaining = %d, expected 30 after re-apply", got)
	}
	list := s.List()
	if list[0].Effect != EffectMagnet || list[1].Effect != EffectPaddle2x {
		t.Errorf("List() order = %v, expected application order", list)
	}
}

func TestEffectSetTick(t *testing.T) {
	var s EffectSet
	s.Apply(EffectBallSlow, 2)
	s.Apply(EffectBulletPower, 3)

	if expired := s.Tick(); len(expired) != 0 {
		t.Errorf("first tick expired %v", expired)
	}
	expired := s.Tick()
	if len(expired) != 1 || expired[0] != EffectBallSlow {
		t.Errorf("second tick expired %v, expected [SLOW]", expired)
	}
	if s.Has(EffectBallSlow) {
		t.Error("expired effect still present")
	}
	if s.Remaining(EffectBulletPower) != 1 {
		t.Errorf("bullet power remaining = %d, expected 1", s.Remaining(EffectBulletPower))
	}
	s.Tick()
	if s.Len() != 0 {
		t.Errorf("Len() = %d after all expired", s.Len())
	}
}

func TestEffectSetRemoveCategory(t *testing.T) {
	var s EffectSet
	s.Apply(EffectBallSlow, 10)
	s.Apply(EffectBallFast, 10)
	s.Apply(EffectPaddleShrink, 10)

	s.RemoveCategory(CategoryBallSpeed)
	if s.Has(EffectBallSlow) || s.Has(EffectBallFast) {
		t.Error("ball speed effects should be removed")
	}
	if !s.Has(EffectPaddleShrink) {
		t.Error("other categories should survive")
	}

	s.RemoveCategory(CategoryPaddleSize)
	if n := len(s.List()); n != 0 {
		t.Errorf("%d effects left, expected 0", n)
	}
}

func TestEffectCategories(t *testing.T) {
	tests := []struct {
		effect Effect
		want   Category
	}{
		{EffectPaddle2x, CategoryPaddleSize},
		{EffectPaddleShrink, CategoryPaddleSize},
		{EffectBallSlow, CategoryBallSpeed},
		{EffectBallFast, CategoryBallSpeed},
		{EffectBulletPower, CategoryPower},
		{EffectMagnet, CategoryPower},
		{EffectPaddleSlow, CategoryCrowdControl},
		{EffectPaddleFreeze, CategoryCrowdControl},
	}

	for _, tt := range tests {
		if got := tt.effect.Category(); got != tt.want {
			t.Errorf("%s.Category() = %d, expected %d", tt.effect, got, tt.want)
		}
	}
}

func TestPayloadGlyphs(t *testing.T) {
	seen := map[rune]string{}
	for k := ItemExtraLife; k < itemCount; k++ {
		g := k.Glyph()
		if prev, ok := seen[g]; ok {
			t.Errorf("%s shares glyph %q with %s", k, g, prev)
		}
		seen[g] = k.String()
	}
	for k := NerfPaddleSlow; k < nerfCount; k++ {
		g := k.Glyph()
		if prev, ok := seen[g]; ok {
			t.Errorf("%s shares glyph %q with %s", k, g, prev)
		}
		seen[g] = k.String()
	}
}
