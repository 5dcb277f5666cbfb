// Package config provides YAML-based configuration loading and the
// difficulty tier table for the vanguard simulation.
package config

import "fmt"

// Config contains all tunable parameters for the vanguard simulation.
// The simulation itself never reads files; the platform loads this once
// and hands it over as plain data.
type Config struct {
	Physics    PhysicsConfig  `yaml:"physics"`
	Avatar     AvatarConfig   `yaml:"avatar"`
	Combat     CombatConfig   `yaml:"combat"`
	Turret     TurretConfig   `yaml:"turret"`
	Pickups    PickupConfig   `yaml:"pickups"`
	Director   DirectorConfig `yaml:"director"`
	Weapons    []WeaponConfig `yaml:"weapons"`
	Squad      []Profile      `yaml:"squad"`
	Difficulty []Tier         `yaml:"difficulty"`
}

// PhysicsConfig defines movement and gravity parameters.
// Distances are in world cells, velocities in cells per tick,
// durations in ticks (60 ticks = 1 second at the default tick rate).
type PhysicsConfig struct {
	Gravity         float64 `yaml:"gravity"`
	MaxFallSpeed    float64 `yaml:"max_fall_speed"`
	WallSlideSpeed  float64 `yaml:"wall_slide_speed"`
	JumpImpulse     float64 `yaml:"jump_impulse"`
	WallJumpPush    float64 `yaml:"wall_jump_push"`
	CoyoteTicks     int     `yaml:"coyote_ticks"`
	JumpBufferTicks int     `yaml:"jump_buffer_ticks"`
	DashSpeed       float64 `yaml:"dash_speed"`
	DashTicks       int     `yaml:"dash_ticks"`
	DashCooldown    int     `yaml:"dash_cooldown"`
}

// AvatarConfig defines the controlled combatant's base parameters.
type AvatarConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	MaxHealth       int     `yaml:"max_health"`
	Lives           int     `yaml:"lives"`
	HurtFlashTicks  int     `yaml:"hurt_flash_ticks"`
	RespawnShield   int     `yaml:"respawn_shield_ticks"`
	SpecialCooldown int     `yaml:"special_cooldown"`
}

// CombatConfig defines projectile and scoring parameters.
type CombatConfig struct {
	HostileHealth     int     `yaml:"hostile_health"` // base, before tier scaling
	BossHealth        int     `yaml:"boss_health"`
	CageHealth        int     `yaml:"cage_health"`
	HostileShotSpeed  float64 `yaml:"hostile_shot_speed"`
	HostileShotDamage int     `yaml:"hostile_shot_damage"`
	SpreadGap         float64 `yaml:"spread_gap"` // vertical velocity gap of the hard-tier triple shot
	ScoreMinor        int     `yaml:"score_minor"`
	ScoreMajor        int     `yaml:"score_major"`
	DropChance        int     `yaml:"drop_chance"`       // percent, hostile kill
	CrateDropChance   int     `yaml:"crate_drop_chance"` // percent, destructible terrain
	ExplosionTicks    int     `yaml:"explosion_ticks"`
	BlastRadius       float64 `yaml:"blast_radius"` // arcing-weapon ground detonation size
	ArcingGravity     float64 `yaml:"arcing_gravity"`
	BoundsMargin      float64 `yaml:"bounds_margin"` // how far past the playfield a projectile may travel
}

// TurretConfig defines the deployable turret.
type TurretConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Lifespan  int     `yaml:"lifespan"`
	Cooldown  int     `yaml:"cooldown"`
	Range     float64 `yaml:"range"`
	Damage    int     `yaml:"damage"`
	ShotSpeed float64 `yaml:"shot_speed"`
}

// PickupConfig defines timed power-up behavior.
type PickupConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Duration int     `yaml:"duration"` // effect duration in ticks
}

// DirectorConfig defines reinforcement and level-advance timing.
type DirectorConfig struct {
	GraceTicks      int     `yaml:"grace_ticks"`       // no reinforcements right after level start
	WarningTicks    int     `yaml:"warning_ticks"`     // how long the incoming warning stays up
	SpawnFlashTicks int     `yaml:"spawn_flash_ticks"` // reinforcement materialize flash
	ClearDelayTicks int     `yaml:"clear_delay_ticks"` // minimum level duration before advance
	AdvanceHealPct  int     `yaml:"advance_heal_pct"`  // missing health restored on level advance
	ShakeMinor      float64 `yaml:"shake_minor"`
	ShakeMajor      float64 `yaml:"shake_major"`
}

// WeaponConfig defines one avatar weapon.
type WeaponConfig struct {
	Name     string  `yaml:"name"`
	Damage   int     `yaml:"damage"`
	Cooldown int     `yaml:"cooldown"`
	Speed    float64 `yaml:"speed"`
	Arcing   bool    `yaml:"arcing"` // grenade-style: extra gravity, detonates on ground contact
	Sound    string  `yaml:"sound"`
}

// Profile describes one member of the avatar squad. The simulation cycles
// through the squad on rescue and respawn (profile swap).
type Profile struct {
	Name       string  `yaml:"name"`
	Weapon     string  `yaml:"weapon"`
	MoveSpeed  float64 `yaml:"move_speed"`
	DoubleJump bool    `yaml:"double_jump"`
}

// TierName identifies one of the three named difficulty tiers.
type TierName string

const (
	TierEasy   TierName = "easy"
	TierNormal TierName = "normal"
	TierHard   TierName = "hard"
)

// Tier is one row of the difficulty table. The table is config data, not
// hidden constants: every multiplier and probability the director and AI
// use per difficulty lives here.
type Tier struct {
	Name              TierName `yaml:"name"`
	HealthMult        float64  `yaml:"health_mult"`
	SpeedMult         float64  `yaml:"speed_mult"`
	CooldownMult      float64  `yaml:"cooldown_mult"` // applied to hostile fire cooldowns
	ChaseChance       int      `yaml:"chase_chance"`  // percent weight for the chase behavior
	PatrolChance      int      `yaml:"patrol_chance"` // percent weight for patrol; remainder is stationary
	ReinforceCap      int      `yaml:"reinforce_cap"`
	ReinforceInterval int      `yaml:"reinforce_interval"` // ticks between reinforcements
	TripleShot        bool     `yaml:"triple_shot"`        // hostile shots become a vertical three-spread
}

// TierByName looks up a difficulty tier in the config table.
func (c Config) TierByName(name TierName) (Tier, error) {
	for _, t := range c.Difficulty {
		if t.Name == name {
			return t, nil
		}
	}
	return Tier{}, fmt.Errorf("config: unknown difficulty tier %q", name)
}

// WeaponByName looks up a weapon definition.
func (c Config) WeaponByName(name string) (WeaponConfig, error) {
	for _, w := range c.Weapons {
		if w.Name == name {
			return w, nil
		}
	}
	return WeaponConfig{}, fmt.Errorf("config: unknown weapon %q", name)
}

// Validate checks cross-references the simulation relies on at setup time.
func (c Config) Validate() error {
	if len(c.Squad) == 0 {
		return fmt.Errorf("config: squad must have at least one profile")
	}
	for _, p := range c.Squad {
		if _, err := c.WeaponByName(p.Weapon); err != nil {
			return fmt.Errorf("config: profile %q: %w", p.Name, err)
		}
	}
	for _, name := range []TierName{TierEasy, TierNormal, TierHard} {
		if _, err := c.TierByName(name); err != nil {
			return err
		}
	}
	return nil
}
