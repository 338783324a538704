// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

// BrickBossConfig contains all configuration for the Brick Boss game.
type BrickBossConfig struct {
	Paddle   BrickPaddle   `yaml:"paddle"`
	Ball     BrickBall     `yaml:"ball"`
	Physics  BrickPhysics  `yaml:"physics"`
	Gameplay BrickGameplay `yaml:"gameplay"`
	Effects  BrickEffects  `yaml:"effects"`
	Layout   BrickLayout   `yaml:"layout"`
	Bosses   []BossStage   `yaml:"bosses"`
}

// BrickPaddle defines the paddle in world units.
type BrickPaddle struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Speed        float64 `yaml:"speed"`         // Units per frame
	BottomOffset float64 `yaml:"bottom_offset"` // Distance of paddle top from canvas bottom
	Smoothing    float64 `yaml:"smoothing"`     // Pointer tracking factor per frame (0..1)
}

// BrickBall defines the ball in world units.
type BrickBall struct {
	Radius        float64 `yaml:"radius"`
	BaseSpeed     float64 `yaml:"base_speed"`      // Stage 1 speed, units per frame
	SpeedPerStage float64 `yaml:"speed_per_stage"` // Added per stage after the first
}

// BrickPhysics defines bounce behavior.
type BrickPhysics struct {
	AngleClamp bool    `yaml:"angle_clamp"`
	MinAngle   float64 `yaml:"min_angle"` // Degrees from vertical
	MaxAngle   float64 `yaml:"max_angle"` // Degrees from vertical
	ServeDelay int     `yaml:"serve_delay"`
}

// BrickGameplay defines lives, stages and overlays.
type BrickGameplay struct {
	Lives          int     `yaml:"lives"`
	Stages         int     `yaml:"stages"`
	OverlaySeconds float64 `yaml:"overlay_seconds"`
}

// BrickEffects defines item and nerf tuning. Durations are frame counts.
type BrickEffects struct {
	Paddle2xDuration     int     `yaml:"paddle2x_duration"`
	BallSlowDuration     int     `yaml:"ball_slow_duration"`
	BulletPowerDuration  int     `yaml:"bullet_power_duration"`
	MagnetDuration       int     `yaml:"magnet_duration"`
	PaddleSlowDuration   int     `yaml:"paddle_slow_duration"`
	PaddleShrinkDuration int     `yaml:"paddle_shrink_duration"`
	BallFastDuration     int     `yaml:"ball_fast_duration"`
	FreezeDuration       int     `yaml:"freeze_duration"`
	PickupFallSpeed      float64 `yaml:"pickup_fall_speed"`
	MagnetPull           float64 `yaml:"magnet_pull"`
	BulletSpeed          float64 `yaml:"bullet_speed"`
	BulletCooldown       int     `yaml:"bullet_cooldown"`
	MaxSpecialBricks     int     `yaml:"max_special_bricks"`
	TripleBallSpread     float64 `yaml:"triple_ball_spread"` // Degrees
}

// BrickLayout defines where the brick field sits on the canvas.
type BrickLayout struct {
	OffsetTop  float64 `yaml:"offset_top"`
	OffsetSide float64 `yaml:"offset_side"`
}

// BossStage is the boss tuning for one stage.
type BossStage struct {
	HP            int     `yaml:"hp"`
	Pattern       string  `yaml:"pattern"`        // none, left-right, free-bounce, curve
	ShootInterval int     `yaml:"shoot_interval"` // Frames, 0 disables
	Speed         float64 `yaml:"speed"`
	Dodge         bool    `yaml:"dodge"`
	Invincibility bool    `yaml:"invincibility"`
}

// SoulTrialConfig contains all configuration for the Soul Trial game.
type SoulTrialConfig struct {
	Player     SoulPlayer       `yaml:"player"`
	Battle     SoulBattle       `yaml:"battle"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SoulPlayer defines the overworld walker.
type SoulPlayer struct {
	WalkSpeed float64 `yaml:"walk_speed"` // Tiles per frame
	SoulSpeed float64 `yaml:"soul_speed"` // Units per frame inside the bullet box
	MaxHP     int     `yaml:"max_hp"`
}

// SoulBattle defines the bullet-dodge encounter.
type SoulBattle struct {
	Duration        int     `yaml:"duration"`       // Frames to survive
	SpawnInterval   int     `yaml:"spawn_interval"` // Frames between volleys
	BulletSpeed     float64 `yaml:"bullet_speed"`   // Units per frame
	Damage          int     `yaml:"damage"`
	InvulnFrames    int     `yaml:"invuln_frames"`
	BoxWidth        float64 `yaml:"box_width"`
	BoxHeight       float64 `yaml:"box_height"`
	SparedBonus     int     `yaml:"spared_bonus"`
	SurvivalDivisor int     `yaml:"survival_divisor"` // Frames per survival point
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// Boss returns the boss tuning for a 1-based stage, falling back to the
// last configured entry.
func (c BrickBossConfig) Boss(stage int) BossStage {
	if len(c.Bosses) == 0 {
		return BossStage{HP: 1, Pattern: "none"}
	}
	idx := stage - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(c.Bosses) {
		idx = len(c.Bosses) - 1
	}
	return c.Bosses[idx]
}
