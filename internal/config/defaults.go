package config

import (
	_ "embed"
)

//go:embed defaults/vanguard.yaml
var defaultVanguardYAML []byte

// DefaultConfig returns the built-in simulation configuration.
// Kept in sync with defaults/vanguard.yaml, which is the canonical copy;
// this hardcoded fallback exists so a corrupted embed never takes the
// game down.
func DefaultConfig() Config {
	return Config{
		Physics: PhysicsConfig{
			Gravity:         0.05,
			MaxFallSpeed:    1.2,
			WallSlideSpeed:  0.25,
			JumpImpulse:     0.85,
			WallJumpPush:    0.7,
			CoyoteTicks:     6,
			JumpBufferTicks: 5,
			DashSpeed:       1.6,
			DashTicks:       8,
			DashCooldown:    45,
		},
		Avatar: AvatarConfig{
			Width:           2,
			Height:          3,
			MaxHealth:       100,
			Lives:           3,
			HurtFlashTicks:  12,
			RespawnShield:   120,
			SpecialCooldown: 600,
		},
		Combat: CombatConfig{
			HostileHealth:     20,
			BossHealth:        200,
			CageHealth:        10,
			HostileShotSpeed:  0.6,
			HostileShotDamage: 10,
			SpreadGap:         0.18,
			ScoreMinor:        100,
			ScoreMajor:        1000,
			DropChance:        15,
			CrateDropChance:   40,
			ExplosionTicks:    12,
			BlastRadius:       6,
			ArcingGravity:     0.09,
			BoundsMargin:      8,
		},
		Turret: TurretConfig{
			Width:     2,
			Height:    2,
			Lifespan:  600,
			Cooldown:  30,
			Range:     28,
			Damage:    8,
			ShotSpeed: 0.9,
		},
		Pickups: PickupConfig{
			Width:    2,
			Height:   1,
			Duration: 600,
		},
		Director: DirectorConfig{
			GraceTicks:      180,
			WarningTicks:    90,
			SpawnFlashTicks: 45,
			ClearDelayTicks: 120,
			AdvanceHealPct:  50,
			ShakeMinor:      1.5,
			ShakeMajor:      4,
		},
		Weapons: []WeaponConfig{
			{Name: "blaster", Damage: 10, Cooldown: 14, Speed: 1.3, Sound: "fire_blaster"},
			{Name: "repeater", Damage: 6, Cooldown: 7, Speed: 1.5, Sound: "fire_repeater"},
			{Name: "launcher", Damage: 25, Cooldown: 40, Speed: 1.0, Arcing: true, Sound: "fire_launcher"},
		},
		Squad: []Profile{
			{Name: "Raze", Weapon: "blaster", MoveSpeed: 0.55, DoubleJump: true},
			{Name: "Koda", Weapon: "repeater", MoveSpeed: 0.65},
			{Name: "Brick", Weapon: "launcher", MoveSpeed: 0.45},
		},
		Difficulty: []Tier{
			{
				Name:              TierEasy,
				HealthMult:        0.75,
				SpeedMult:         0.8,
				CooldownMult:      1.4,
				ChaseChance:       15,
				PatrolChance:      35,
				ReinforceCap:      4,
				ReinforceInterval: 900,
			},
			{
				Name:              TierNormal,
				HealthMult:        1.0,
				SpeedMult:         1.0,
				CooldownMult:      1.0,
				ChaseChance:       30,
				PatrolChance:      40,
				ReinforceCap:      6,
				ReinforceInterval: 600,
			},
			{
				Name:              TierHard,
				HealthMult:        1.5,
				SpeedMult:         1.25,
				CooldownMult:      0.7,
				ChaseChance:       50,
				PatrolChance:      35,
				ReinforceCap:      8,
				ReinforceInterval: 360,
				TripleShot:        true,
			},
		},
	}
}
