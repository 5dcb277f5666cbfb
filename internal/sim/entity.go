// Package sim implements the vanguard combat simulation: a deterministic,
// tick-driven side-scrolling world with avatar platforming, hostile AI,
// batched projectile damage, and a reinforcement director. The package is
// pure logic with no rendering or terminal concerns; callers advance it
// with Advance and drain the returned events.
package sim

import "github.com/vovakirdan/tui-vanguard/internal/core"

// ID identifies one entity within its category. The low 32 bits are a slot
// index, the high 32 bits a generation counter bumped on each reuse, so a
// stale reference to a despawned entity never aliases its replacement.
type ID uint64

// NoID is the zero, never-allocated identifier.
const NoID ID = 0

// Index returns the slot portion of the ID.
func (id ID) Index() uint32 { return uint32(id) }

// Generation returns the reuse counter portion of the ID.
func (id ID) Generation() uint32 { return uint32(id >> 32) }

func makeID(index, generation uint32) ID {
	return ID(uint64(generation)<<32 | uint64(index))
}

// IDAlloc hands out generation-tagged IDs for one entity category.
// Freed slots are recycled with a bumped generation.
type IDAlloc struct {
	next uint32
	free []uint32
	gens map[uint32]uint32
}

// NewIDAlloc creates an allocator. Index 0 is reserved so NoID stays
// distinguishable from any live entity.
func NewIDAlloc() *IDAlloc {
	return &IDAlloc{next: 1, gens: make(map[uint32]uint32)}
}

// Alloc returns a fresh ID, reusing a freed slot when one is available.
func (a *IDAlloc) Alloc() ID {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = a.next
		a.next++
	}
	a.gens[idx]++
	return makeID(idx, a.gens[idx])
}

// Free returns an ID's slot to the allocator. Freeing a stale ID is a
// no-op.
func (a *IDAlloc) Free(id ID) {
	idx := id.Index()
	if a.gens[idx] != id.Generation() {
		return
	}
	a.free = append(a.free, idx)
}

// Live reports whether the ID refers to the current occupant of its slot.
func (a *IDAlloc) Live(id ID) bool {
	return id != NoID && a.gens[id.Index()] == id.Generation()
}

// EntityKind tags the category an ID belongs to. The set is closed: damage
// resolution and rendering switch over it exhaustively.
type EntityKind uint8

const (
	KindAvatar EntityKind = iota
	KindHostile
	KindProjectile
	KindCrate
	KindCage
	KindTurret
	KindExplosion
	KindPickup
)

func (k EntityKind) String() string {
	switch k {
	case KindAvatar:
		return "avatar"
	case KindHostile:
		return "hostile"
	case KindProjectile:
		return "projectile"
	case KindCrate:
		return "crate"
	case KindCage:
		return "cage"
	case KindTurret:
		return "turret"
	case KindExplosion:
		return "explosion"
	case KindPickup:
		return "pickup"
	default:
		return "unknown"
	}
}

// Behavior selects a hostile's AI routine.
type Behavior uint8

const (
	BehaviorStationary Behavior = iota
	BehaviorPatrol
	BehaviorChase
	BehaviorBoss
)

func (b Behavior) String() string {
	switch b {
	case BehaviorStationary:
		return "stationary"
	case BehaviorPatrol:
		return "patrol"
	case BehaviorChase:
		return "chase"
	case BehaviorBoss:
		return "boss"
	default:
		return "unknown"
	}
}

// Owner marks which side fired a projectile. Friendly fire does not exist:
// avatar shots never hurt the avatar, hostile shots never hurt hostiles.
type Owner uint8

const (
	OwnerAvatar Owner = iota
	OwnerHostile
	OwnerTurret
)

// PickupKind enumerates the timed buffs a pickup grants.
type PickupKind uint8

const (
	PickupNone PickupKind = iota
	PickupRapidFire
	PickupSpreadShot
	PickupDamageBoost
)

func (p PickupKind) String() string {
	switch p {
	case PickupRapidFire:
		return "rapid_fire"
	case PickupSpreadShot:
		return "spread_shot"
	case PickupDamageBoost:
		return "damage_boost"
	default:
		return "none"
	}
}

// Avatar is the player-controlled entity.
type Avatar struct {
	Rect core.Rect
	VX   float64
	VY   float64

	Health    int
	MaxHealth int
	Facing    int // -1 left, +1 right

	// Platforming state.
	OnGround    bool
	OnWall      int // -1 wall on left, +1 wall on right, 0 none
	CoyoteTicks int
	JumpBuffer  int
	AirJumps    int // double jumps left this airtime

	// Dash state.
	DashTicks    int // remaining ticks of an active dash
	DashCooldown int
	DashDir      int

	// Decaying lateral impulse from a wall jump.
	PushVX float64

	// Combat state.
	FireCooldown    int
	SpecialCooldown int
	HurtFlash       int // ticks of post-hit invulnerability
	Shield          int // ticks of post-respawn invulnerability

	// Active squad member.
	ProfileIdx int

	// Active pickup effect. Collecting a pickup replaces any prior effect;
	// only one runs at a time.
	Effect      PickupKind
	EffectTicks int
}

// Invulnerable reports whether incoming damage is currently ignored.
func (a *Avatar) Invulnerable() bool {
	return a.HurtFlash > 0 || a.Shield > 0
}

// EffectActive reports whether the given effect is currently running.
func (a *Avatar) EffectActive(kind PickupKind) bool {
	return a.Effect == kind && a.EffectTicks > 0
}

// Hostile is one enemy combatant.
type Hostile struct {
	ID       ID
	Rect     core.Rect
	Behavior Behavior

	Health    int
	MaxHealth int
	Facing    int
	Speed     float64

	FireCooldown int // ticks until the next shot
	FireInterval int // cooldown reset value

	Major      bool
	HurtFlash  int // ticks of post-hit flash, visual only
	SpawnFlash int // ticks of spawn-in shimmer for reinforcements
}

// Projectile is a shot in flight. Arcing shots fall under their own
// gravity and detonate on impact.
type Projectile struct {
	ID     ID
	Rect   core.Rect
	VX     float64
	VY     float64
	Damage int
	Owner  Owner
	Arcing bool
}

// Crate is a destructible terrain block.
type Crate struct {
	ID     ID
	Rect   core.Rect
	Health int
}

// Cage holds a captured squad member until shot open.
type Cage struct {
	ID     ID
	Rect   core.Rect
	Health int
}

// Turret is an avatar-deployed sentry with a limited lifespan.
type Turret struct {
	ID           ID
	Rect         core.Rect
	Lifespan     int
	FireCooldown int
}

// Explosion is a transient blast. While Ticks > 0 it blocks level
// advancement; damage is dealt only on the tick it spawns.
type Explosion struct {
	ID     ID
	Rect   core.Rect
	Ticks  int
	Radius float64
}

// Pickup is a collectible buff dropped by a defeated hostile or crate.
type Pickup struct {
	ID   ID
	Rect core.Rect
	Kind PickupKind
	VY   float64
}
