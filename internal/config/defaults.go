package config

import (
	_ "embed"
)

//go:embed defaults/brickboss.yaml
var defaultBrickBossYAML []byte

//go:embed defaults/soultrial.yaml
var defaultSoulTrialYAML []byte

// DefaultBrickBossConfig returns the default Brick Boss configuration.
// It mirrors defaults/brickboss.yaml and is used when the embed cannot be parsed.
func DefaultBrickBossConfig() BrickBossConfig {
	return BrickBossConfig{
		Paddle: BrickPaddle{
			Width:        100,
			Height:       12,
			Speed:        8,
			BottomOffset: 40,
			Smoothing:    0.25,
		},
		Ball: BrickBall{
			Radius:        8,
			BaseSpeed:     5,
			SpeedPerStage: 0.5,
		},
		Physics: BrickPhysics{
			AngleClamp: true,
			MinAngle:   20,
			MaxAngle:   70,
			ServeDelay: 60,
		},
		Gameplay: BrickGameplay{
			Lives:          3,
			Stages:         6,
			OverlaySeconds: 2,
		},
		Effects: BrickEffects{
			Paddle2xDuration:     600,
			BallSlowDuration:     480,
			BulletPowerDuration:  600,
			MagnetDuration:       600,
			PaddleSlowDuration:   300,
			PaddleShrinkDuration: 300,
			BallFastDuration:     300,
			FreezeDuration:       90,
			PickupFallSpeed:      3,
			MagnetPull:           0.08,
			BulletSpeed:          10,
			BulletCooldown:       15,
			MaxSpecialBricks:     10,
			TripleBallSpread:     20,
		},
		Layout: BrickLayout{
			OffsetTop:  60,
			OffsetSide: 30,
		},
		Bosses: []BossStage{
			{HP: 1, Pattern: "none", Speed: 0},
			{HP: 1, Pattern: "left-right", Speed: 2},
			{HP: 1, Pattern: "free-bounce", Speed: 2.5},
			{HP: 1, Pattern: "curve", Speed: 2.5},
			{HP: 6, Pattern: "curve", ShootInterval: 120, Speed: 3},
			{HP: 10, Pattern: "curve", ShootInterval: 90, Speed: 3.5, Dodge: true, Invincibility: true},
		},
	}
}

// DefaultSoulTrialConfig returns the default Soul Trial configuration.
func DefaultSoulTrialConfig() SoulTrialConfig {
	return SoulTrialConfig{
		Player: SoulPlayer{
			WalkSpeed: 0.15,
			SoulSpeed: 3,
			MaxHP:     20,
		},
		Battle: SoulBattle{
			Duration:        600,
			SpawnInterval:   30,
			BulletSpeed:     2.5,
			Damage:          4,
			InvulnFrames:    30,
			BoxWidth:        240,
			BoxHeight:       160,
			SparedBonus:     100,
			SurvivalDivisor: 6,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 3600, // 1 minute of battle at 60fps
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.8,
			},
		},
	}
}
