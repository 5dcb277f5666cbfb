package sim

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-vanguard/internal/config"
	"github.com/vovakirdan/tui-vanguard/internal/core"
	"github.com/vovakirdan/tui-vanguard/internal/levels"
)

// maxTicksPerAdvance caps how many ticks a single Advance call may run so
// a long stall does not snowball into a burst of catch-up ticks.
const maxTicksPerAdvance = 5

// damageKey addresses one damage target within a tick's batch.
type damageKey struct {
	Kind EntityKind
	ID   ID
}

// World is the complete simulation state. One Advance call per frame
// drives it; everything else is plumbing around the tick pipeline.
type World struct {
	cfg      config.Config
	tier     config.Tier
	campaign []levels.Level
	rng      Rand
	tickRate int

	Tick      uint64
	LevelIdx  int
	levelTick int
	Score     int
	Lives     int
	Over      bool
	Victory   bool

	Avatar      Avatar
	Hostiles    []Hostile
	Projectiles []Projectile
	Crates      []Crate
	Cages       []Cage
	Turrets     []Turret
	Explosions  []Explosion
	Pickups     []Pickup

	// Static terrain never takes damage and never moves.
	Static []core.Rect

	hostileIDs *IDAlloc
	projIDs    *IDAlloc
	crateIDs   *IDAlloc
	cageIDs    *IDAlloc
	turretIDs  *IDAlloc
	explIDs    *IDAlloc
	pickupIDs  *IDAlloc

	reinforceTimer int
	WarningTicks   int

	// Per-tick scratch, reset every step.
	fired  []Projectile
	damage map[damageKey]int

	acc    time.Duration
	events []Event
}

// New builds a world for the given campaign and difficulty tier.
func New(cfg config.Config, tierName config.TierName, campaign []levels.Level, rng Rand, tickRate int) (*World, error) {
	tier, err := cfg.TierByName(tierName)
	if err != nil {
		return nil, err
	}
	if len(campaign) == 0 {
		return nil, fmt.Errorf("sim: campaign has no levels")
	}
	if tickRate <= 0 {
		return nil, fmt.Errorf("sim: tick rate must be positive, got %d", tickRate)
	}
	if rng == nil {
		return nil, fmt.Errorf("sim: nil random source")
	}

	w := &World{
		cfg:        cfg,
		tier:       tier,
		campaign:   campaign,
		rng:        rng,
		tickRate:   tickRate,
		Lives:      cfg.Avatar.Lives,
		hostileIDs: NewIDAlloc(),
		projIDs:    NewIDAlloc(),
		crateIDs:   NewIDAlloc(),
		cageIDs:    NewIDAlloc(),
		turretIDs:  NewIDAlloc(),
		explIDs:    NewIDAlloc(),
		pickupIDs:  NewIDAlloc(),
		damage:     make(map[damageKey]int),
	}
	w.initAvatar(0)
	w.loadLevel(0)
	return w, nil
}

// Level returns the currently loaded level definition.
func (w *World) Level() levels.Level {
	return w.campaign[w.LevelIdx]
}

// Profile returns the active squad member's configuration.
func (w *World) Profile() config.Profile {
	return w.cfg.Squad[w.Avatar.ProfileIdx]
}

// Weapon returns the active squad member's weapon configuration.
func (w *World) Weapon() config.WeaponConfig {
	wc, _ := w.cfg.WeaponByName(w.Profile().Weapon)
	return wc
}

func (w *World) emit(e Event) {
	w.events = append(w.events, e)
}

// Advance runs the simulation forward by the measured elapsed wall time,
// stepping zero or more fixed-length ticks, and returns the events those
// ticks produced. After the run ends Advance is a no-op.
func (w *World) Advance(in Input, elapsed time.Duration) []Event {
	if w.Over {
		return nil
	}
	w.acc += elapsed
	tickDur := time.Second / time.Duration(w.tickRate)
	steps := 0
	for w.acc >= tickDur && !w.Over {
		w.acc -= tickDur
		w.step(in)
		// One press arms the jump buffer once; later catch-up ticks in
		// this call see the key released.
		in.Jump = false
		steps++
		if steps >= maxTicksPerAdvance {
			w.acc = 0
			break
		}
	}
	out := w.events
	w.events = nil
	return out
}

// Step runs exactly one tick. Exported for deterministic scenario use;
// the interactive path goes through Advance.
func (w *World) Step(in Input) []Event {
	if w.Over {
		return nil
	}
	w.step(in)
	out := w.events
	w.events = nil
	return out
}

// step is the ordered tick pipeline. Each stage reads the state the
// previous stage left behind; damage is batched and applied exactly once.
func (w *World) step(in Input) {
	w.Tick++
	w.levelTick++
	w.fired = w.fired[:0]
	for k := range w.damage {
		delete(w.damage, k)
	}
	if w.WarningTicks > 0 {
		w.WarningTicks--
	}

	w.stepPhysics(in)
	w.stepAvatarCombat(in)
	w.stepAI()
	w.stepProjectiles()
	w.resolveDamage()
	w.stepPickups()
	w.stepDirector()
}

// initAvatar sets up the controlled entity for the given squad slot.
func (w *World) initAvatar(profileIdx int) {
	w.Avatar = Avatar{
		Rect:       core.NewRect(0, 0, w.cfg.Avatar.Width, w.cfg.Avatar.Height),
		Health:     w.cfg.Avatar.MaxHealth,
		MaxHealth:  w.cfg.Avatar.MaxHealth,
		Facing:     1,
		ProfileIdx: profileIdx,
	}
}

// loadLevel resets transient entities and builds the level's terrain,
// cages, and hostile roster with difficulty scaling applied.
func (w *World) loadLevel(idx int) {
	w.LevelIdx = idx
	w.levelTick = 0
	lvl := w.campaign[idx]

	for _, p := range w.Projectiles {
		w.projIDs.Free(p.ID)
	}
	for _, t := range w.Turrets {
		w.turretIDs.Free(t.ID)
	}
	for _, p := range w.Pickups {
		w.pickupIDs.Free(p.ID)
	}
	for _, h := range w.Hostiles {
		w.hostileIDs.Free(h.ID)
	}
	for _, c := range w.Crates {
		w.crateIDs.Free(c.ID)
	}
	for _, c := range w.Cages {
		w.cageIDs.Free(c.ID)
	}
	for _, e := range w.Explosions {
		w.explIDs.Free(e.ID)
	}
	w.Projectiles = nil
	w.Turrets = nil
	w.Pickups = nil
	w.Hostiles = nil
	w.Crates = nil
	w.Cages = nil
	w.Explosions = nil
	w.Static = w.Static[:0]

	for _, b := range lvl.Terrain {
		if b.Destructible {
			w.Crates = append(w.Crates, Crate{
				ID:     w.crateIDs.Alloc(),
				Rect:   b.Rect,
				Health: b.Health,
			})
			continue
		}
		w.Static = append(w.Static, b.Rect)
	}
	for _, r := range lvl.Cages {
		w.Cages = append(w.Cages, Cage{ID: w.cageIDs.Alloc(), Rect: r, Health: w.cfg.Combat.CageHealth})
	}
	for _, s := range lvl.Roster {
		w.Hostiles = append(w.Hostiles, w.buildHostile(s, w.rollBehavior()))
	}
	if lvl.Boss != nil {
		w.Hostiles = append(w.Hostiles, w.buildHostile(*lvl.Boss, BehaviorBoss))
	}

	w.Avatar.Rect.X = lvl.SpawnX
	w.Avatar.Rect.Y = lvl.SpawnY
	w.Avatar.VX = 0
	w.Avatar.VY = 0
	w.reinforceTimer = w.tier.ReinforceInterval
}

// buildHostile constructs a hostile from a spawn descriptor with the
// difficulty tier's health, speed, and cooldown multipliers applied.
func (w *World) buildHostile(s levels.Spawn, behavior Behavior) Hostile {
	baseHealth := w.cfg.Combat.HostileHealth
	if s.Major {
		baseHealth = w.cfg.Combat.BossHealth
	}
	health := int(float64(baseHealth) * w.tier.HealthMult)
	if health < 1 {
		health = 1
	}
	interval := int(float64(s.FireCooldown) * w.tier.CooldownMult)
	if interval < 1 {
		interval = 1
	}
	h := Hostile{
		ID:           w.hostileIDs.Alloc(),
		Rect:         s.Rect,
		Behavior:     behavior,
		Health:       health,
		MaxHealth:    health,
		Facing:       s.Facing,
		Speed:        s.Speed * w.tier.SpeedMult,
		FireInterval: interval,
		FireCooldown: interval,
		Major:        s.Major,
	}
	if s.Major {
		h.Behavior = BehaviorBoss
	}
	return h
}

// rollBehavior picks a weighted random behavior for a non-boss hostile.
// Chase and patrol carry tier-specific weights; the remainder is
// stationary.
func (w *World) rollBehavior() Behavior {
	roll := w.rng.Intn(100)
	if roll < w.tier.ChaseChance {
		return BehaviorChase
	}
	if roll < w.tier.ChaseChance+w.tier.PatrolChance {
		return BehaviorPatrol
	}
	return BehaviorStationary
}
