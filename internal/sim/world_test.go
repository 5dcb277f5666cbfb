package sim

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-vanguard/internal/config"
	"github.com/vovakirdan/tui-vanguard/internal/core"
	"github.com/vovakirdan/tui-vanguard/internal/levels"
)

func flatLevel() levels.Level {
	return levels.Level{
		Name:   "flat",
		Width:  100,
		Height: 30,
		SpawnX: 10,
		SpawnY: 25,
		Terrain: []levels.Block{
			{Rect: core.NewRect(0, 28, 100, 2)},
		},
	}
}

func newTestWorld(t *testing.T, tier config.TierName, lvl levels.Level) *World {
	t.Helper()
	w, err := New(config.DefaultConfig(), tier, []levels.Level{lvl}, NewSimpleRNG(7), 60)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w
}

// settle lets the avatar land on the floor so movement tests start from
// a grounded state.
func settle(w *World) {
	for i := 0; i < 30; i++ {
		w.Step(Input{})
	}
}

func addHostileAt(w *World, x, y float64) ID {
	h := Hostile{
		ID:        w.hostileIDs.Alloc(),
		Rect:      core.NewRect(x, y, 2, 3),
		Behavior:  BehaviorStationary,
		Health:    20,
		MaxHealth: 20,
		Facing:    -1,
	}
	w.Hostiles = append(w.Hostiles, h)
	return h.ID
}

func addShot(w *World, x, y float64, damage int, owner Owner) {
	w.Projectiles = append(w.Projectiles, Projectile{
		ID:     w.projIDs.Alloc(),
		Rect:   core.NewRect(x, y, 1, 1),
		Damage: damage,
		Owner:  owner,
	})
}

func countSounds(events []Event, cue string) int {
	n := 0
	for _, e := range events {
		if s, ok := e.(SoundEvent); ok && s.Cue == cue {
			n++
		}
	}
	return n
}

func TestSameTickDamageAccumulates(t *testing.T) {
	w := newTestWorld(t, config.TierNormal, flatLevel())
	settle(w)
	ax, ay := w.Avatar.Rect.Center()
	addShot(w, ax, ay, 10, OwnerHostile)
	addShot(w, ax, ay, 15, OwnerHostile)

	w.Step(Input{})

	if got := w.Avatar.Health; got != 75 {
		t.Fatalf("avatar health = %d, want 75 (both hits applied in one batch)", got)
	}
	if w.Avatar.HurtFlash == 0 {
		t.Error("avatar should flash after taking damage")
	}
}

func TestInvulnerableAvatarTakesNoDamage(t *testing.T) {
	w := newTestWorld(t, config.TierNormal, flatLevel())
	settle(w)
	w.Avatar.Shield = 50
	ax, ay := w.Avatar.Rect.Center()
	addShot(w, ax, ay, 10, OwnerHostile)
	addShot(w, ax, ay, 10, OwnerHostile)

	w.Step(Input{})

	if got := w.Avatar.Health; got != w.Avatar.MaxHealth {
		t.Fatalf("avatar health = %d, want untouched %d", got, w.Avatar.MaxHealth)
	}
}

func TestHostileKillAwardsScoreAndOneExplosion(t *testing.T) {
	w := newTestWorld(t, config.TierNormal, flatLevel())
	settle(w)
	addHostileAt(w, 80, 25)
	addShot(w, 80.5, 26, 20, OwnerAvatar)

	w.Step(Input{})

	if len(w.Hostiles) != 0 {
		t.Fatalf("hostile should be removed, still have %d", len(w.Hostiles))
	}
	if got, want := w.Score, w.cfg.Combat.ScoreMinor; got != want {
		t.Errorf("score = %d, want minor bonus %d", got, want)
	}
	if got := len(w.Explosions); got != 1 {
		t.Errorf("explosions = %d, want exactly 1", got)
	}
}

func TestHitPriorityIsExclusive(t *testing.T) {
	w := newTestWorld(t, config.TierNormal, flatLevel())
	settle(w)
	addHostileAt(w, 50, 25)
	w.Crates = append(w.Crates, Crate{
		ID:     w.crateIDs.Alloc(),
		Rect:   core.NewRect(50, 25, 3, 3),
		Health: 20,
	})
	addShot(w, 50.5, 26, 5, OwnerAvatar)

	w.Step(Input{})

	if got := w.Hostiles[0].Health; got != 15 {
		t.Errorf("hostile health = %d, want 15", got)
	}
	if got := w.Crates[0].Health; got != 20 {
		t.Errorf("crate health = %d, want untouched 20 (shot consumed by hostile)", got)
	}
}

func TestHealthNeverGoesNegative(t *testing.T) {
	w := newTestWorld(t, config.TierNormal, flatLevel())
	settle(w)
	id := addHostileAt(w, 80, 25)
	addShot(w, 80.5, 26, 9999, OwnerAvatar)
	ax, ay := w.Avatar.Rect.Center()
	addShot(w, ax, ay, 9999, OwnerHostile)

	w.Step(Input{})

	for _, h := range w.Hostiles {
		if h.ID == id && h.Health < 0 {
			t.Errorf("hostile health went negative: %d", h.Health)
		}
	}
	// Overkill downs the avatar; respawn restores full health with one
	// fewer life and the next squad member.
	if w.Avatar.Health != w.Avatar.MaxHealth {
		t.Errorf("respawned avatar health = %d, want %d", w.Avatar.Health, w.Avatar.MaxHealth)
	}
	if w.Lives != 2 {
		t.Errorf("lives = %d, want 2", w.Lives)
	}
	if w.Avatar.ProfileIdx != 1 {
		t.Errorf("profile idx = %d, want rotation to 1", w.Avatar.ProfileIdx)
	}
	if w.Avatar.Shield == 0 {
		t.Error("respawned avatar should carry a shield")
	}
}

func TestCageRescueGrantsLifeAndSwapsOnce(t *testing.T) {
	lvl := flatLevel()
	lvl.Cages = []core.Rect{core.NewRect(60, 25, 3, 3)}
	w := newTestWorld(t, config.TierNormal, lvl)
	settle(w)
	addShot(w, 61, 26, w.cfg.Combat.CageHealth, OwnerAvatar)

	events := w.Step(Input{})

	if w.Lives != w.cfg.Avatar.Lives+1 {
		t.Errorf("lives = %d, want %d", w.Lives, w.cfg.Avatar.Lives+1)
	}
	swaps := 0
	for _, e := range events {
		if s, ok := e.(ProfileSwapEvent); ok {
			if !s.Rescue {
				t.Error("swap should be flagged as a rescue")
			}
			swaps++
		}
	}
	if swaps != 1 {
		t.Errorf("profile swap events = %d, want exactly 1", swaps)
	}
	if len(w.Cages) != 0 {
		t.Errorf("cage should be removed, still have %d", len(w.Cages))
	}
}

func TestDamageBoostDoublesProjectileDamage(t *testing.T) {
	w := newTestWorld(t, config.TierNormal, flatLevel())
	settle(w)
	base := w.Weapon().Damage

	w.Step(Input{Fire: true})
	plain := lastAvatarShot(t, w)

	w.Avatar.Effect = PickupDamageBoost
	w.Avatar.EffectTicks = 100
	w.Avatar.FireCooldown = 0
	w.Step(Input{Fire: true})
	boosted := lastAvatarShot(t, w)

	if plain.Damage != base {
		t.Errorf("unboosted damage = %d, want %d", plain.Damage, base)
	}
	if boosted.Damage != base*2 {
		t.Errorf("boosted damage = %d, want %d", boosted.Damage, base*2)
	}
}

func lastAvatarShot(t *testing.T, w *World) Projectile {
	t.Helper()
	for i := len(w.Projectiles) - 1; i >= 0; i-- {
		if w.Projectiles[i].Owner == OwnerAvatar {
			return w.Projectiles[i]
		}
	}
	t.Fatal("no avatar projectile in flight")
	return Projectile{}
}

func TestRapidFireHalvesCooldownRoundedUp(t *testing.T) {
	w := newTestWorld(t, config.TierNormal, flatLevel())
	settle(w)
	normal := w.Weapon().Cooldown

	w.Avatar.Effect = PickupRapidFire
	w.Avatar.EffectTicks = 100
	w.Step(Input{Fire: true})

	want := (normal + 1) / 2
	if got := w.Avatar.FireCooldown; got != want {
		t.Errorf("cooldown after rapid-fire shot = %d, want %d", got, want)
	}
}

func TestSpreadShotFiresThreeWays(t *testing.T) {
	w := newTestWorld(t, config.TierNormal, flatLevel())
	settle(w)
	w.Avatar.Effect = PickupSpreadShot
	w.Avatar.EffectTicks = 100

	w.Step(Input{Fire: true})

	shots := 0
	for _, p := range w.Projectiles {
		if p.Owner == OwnerAvatar {
			shots++
		}
	}
	if shots != 3 {
		t.Errorf("avatar projectiles = %d, want 3", shots)
	}
}

func TestNoJumpAtCoyoteExpiry(t *testing.T) {
	w := newTestWorld(t, config.TierNormal, flatLevel())
	settle(w)
	w.Avatar.ProfileIdx = 1 // squad member without double jump
	w.Avatar.Rect.Y = 10
	w.Avatar.OnGround = false
	w.Avatar.CoyoteTicks = 0
	w.Avatar.AirJumps = 0
	w.Avatar.VY = 0.2

	events := w.Step(Input{Jump: true})

	if w.Avatar.VY <= 0 {
		t.Errorf("vertical velocity = %g, jump should not fire", w.Avatar.VY)
	}
	if countSounds(events, CueJump) != 0 {
		t.Error("jump cue emitted without a legal jump")
	}
}

func TestGroundJumpAndDash(t *testing.T) {
	w := newTestWorld(t, config.TierNormal, flatLevel())
	settle(w)
	if !w.Avatar.OnGround {
		t.Fatal("avatar should have settled on the floor")
	}

	events := w.Step(Input{Jump: true})
	if w.Avatar.VY >= 0 {
		t.Errorf("vertical velocity = %g, want upward after jump", w.Avatar.VY)
	}
	if countSounds(events, CueJump) != 1 {
		t.Error("grounded jump should emit one jump cue")
	}
	if w.Avatar.JumpBuffer != 0 {
		t.Error("jump buffer should be consumed by the jump")
	}

	x := w.Avatar.Rect.X
	w.Step(Input{Dash: true})
	if w.Avatar.VY != 0 {
		t.Errorf("dash should pin vertical velocity to zero, got %g", w.Avatar.VY)
	}
	if w.Avatar.Rect.X == x {
		t.Error("dash should move the avatar horizontally")
	}
}

func TestJumpPressHonoredOncePerAdvance(t *testing.T) {
	w := newTestWorld(t, config.TierNormal, flatLevel())
	settle(w)
	if !w.Avatar.OnGround {
		t.Fatal("avatar should have settled on the floor")
	}

	// Squad slot 0 has the double jump; a stall that forces several
	// catch-up ticks must not turn one press into a ground jump plus a
	// double jump.
	tickDur := time.Second / 60
	events := w.Advance(Input{Jump: true}, 3*tickDur)

	if got := countSounds(events, CueJump); got != 1 {
		t.Errorf("jump cues = %d, want exactly 1 for a single press", got)
	}
	if w.Avatar.AirJumps != 1 {
		t.Errorf("air jumps = %d, double jump should remain available", w.Avatar.AirJumps)
	}
}

func TestArcingShotKeepsForwardMotionWhenAiming(t *testing.T) {
	w := newTestWorld(t, config.TierNormal, flatLevel())
	settle(w)
	w.Avatar.ProfileIdx = 2 // squad member with the launcher

	w.Step(Input{Fire: true, MoveUp: true})
	shot := lastAvatarShot(t, w)

	if shot.VX == 0 {
		t.Error("grenade should lob forward, not straight up")
	}
	if shot.VY != arcingLaunchVY {
		t.Errorf("grenade launch VY = %g, want %g", shot.VY, arcingLaunchVY)
	}
	if !shot.Arcing {
		t.Error("launcher shot should be tagged arcing")
	}
}

func TestReinforcementsScaleWithDifficulty(t *testing.T) {
	lvl := levels.Level{
		Name:   "arena",
		Width:  100,
		Height: 30,
		SpawnX: 35,
		SpawnY: 5,
		Terrain: []levels.Block{
			{Rect: core.NewRect(0, 28, 100, 2)},
			{Rect: core.NewRect(30, 8, 20, 1)}, // high perch out of fire bands
		},
		Roster: []levels.Spawn{
			{Rect: core.NewRect(80, 25, 2, 3), Facing: -1, Speed: 0, FireCooldown: 100},
		},
	}

	run := func(tier config.TierName) int {
		w := newTestWorld(t, tier, lvl)
		for i := 0; i < 2400; i++ {
			w.Step(Input{})
		}
		return len(w.Hostiles)
	}

	easy := run(config.TierEasy)
	hard := run(config.TierHard)
	if hard <= easy {
		t.Errorf("hard spawned %d hostiles, easy %d; hard should outpace easy", hard, easy)
	}
}

func TestPickupCollectionAndExpiry(t *testing.T) {
	w := newTestWorld(t, config.TierNormal, flatLevel())
	settle(w)
	w.Pickups = append(w.Pickups, Pickup{
		ID:   w.pickupIDs.Alloc(),
		Rect: w.Avatar.Rect,
		Kind: PickupRapidFire,
	})

	events := w.Step(Input{})

	if w.Avatar.Effect != PickupRapidFire {
		t.Fatalf("effect = %v, want rapid fire", w.Avatar.Effect)
	}
	if countSounds(events, CuePickup) != 1 {
		t.Error("collection should emit a pickup cue")
	}
	if len(w.Pickups) != 0 {
		t.Error("collected pickup should be removed")
	}

	w.Avatar.EffectTicks = 1
	w.Step(Input{})
	if w.Avatar.Effect != PickupNone {
		t.Errorf("effect = %v, want cleared after expiry", w.Avatar.Effect)
	}
}

func TestTurretDeployAndCooldown(t *testing.T) {
	w := newTestWorld(t, config.TierNormal, flatLevel())
	settle(w)

	w.Step(Input{Special: true})
	if len(w.Turrets) != 1 {
		t.Fatalf("turrets = %d, want 1", len(w.Turrets))
	}
	if w.Avatar.SpecialCooldown == 0 {
		t.Error("special cooldown should start after deploy")
	}

	w.Step(Input{Special: true})
	if len(w.Turrets) != 1 {
		t.Error("second deploy should be blocked by the cooldown")
	}
}

func TestDeterministicReplay(t *testing.T) {
	lvl := flatLevel()
	lvl.Roster = []levels.Spawn{
		{Rect: core.NewRect(60, 25, 2, 3), Facing: -1, Speed: 0.2, FireCooldown: 60},
		{Rect: core.NewRect(80, 25, 2, 3), Facing: -1, Speed: 0.25, FireCooldown: 80},
	}

	run := func() (*World, int) {
		w := newTestWorld(t, config.TierNormal, lvl)
		for i := 0; i < 400; i++ {
			in := Input{MoveRight: i%3 != 0, Fire: i%2 == 0, Jump: i%90 == 0}
			w.Step(in)
		}
		return w, w.Score
	}

	a, scoreA := run()
	b, scoreB := run()

	if scoreA != scoreB {
		t.Errorf("scores diverged: %d vs %d", scoreA, scoreB)
	}
	if a.Avatar.Rect != b.Avatar.Rect {
		t.Errorf("avatar position diverged: %+v vs %+v", a.Avatar.Rect, b.Avatar.Rect)
	}
	if len(a.Hostiles) != len(b.Hostiles) || len(a.Projectiles) != len(b.Projectiles) {
		t.Errorf("entity counts diverged: %d/%d hostiles, %d/%d projectiles",
			len(a.Hostiles), len(b.Hostiles), len(a.Projectiles), len(b.Projectiles))
	}
}

func TestLevelClearAdvancesAndHeals(t *testing.T) {
	first := flatLevel()
	second := flatLevel()
	second.Name = "flat2"
	w, err := New(config.DefaultConfig(), config.TierNormal,
		[]levels.Level{first, second}, NewSimpleRNG(7), 60)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	settle(w)
	w.Avatar.Health = 50

	var advanced *LevelAdvanceEvent
	for i := 0; i < w.cfg.Director.ClearDelayTicks+5; i++ {
		for _, e := range w.Step(Input{}) {
			if adv, ok := e.(LevelAdvanceEvent); ok {
				advanced = &adv
			}
		}
	}

	if advanced == nil {
		t.Fatal("cleared level should advance")
	}
	if advanced.LevelIndex != 1 || advanced.LevelName != "flat2" {
		t.Errorf("advance = %+v, want level 1 flat2", advanced)
	}
	// 50% of the missing 50 health is restored before the next stage.
	if got := w.Avatar.Health; got != 75 {
		t.Errorf("healed health = %d, want 75", got)
	}
}

func TestGameOverCarriesFinalScore(t *testing.T) {
	w := newTestWorld(t, config.TierNormal, flatLevel())
	settle(w)
	w.Score = 150
	w.Lives = 1
	ax, ay := w.Avatar.Rect.Center()
	addShot(w, ax, ay, 9999, OwnerHostile)

	var over *GameOverEvent
	for _, e := range w.Step(Input{}) {
		if g, ok := e.(GameOverEvent); ok {
			over = &g
		}
	}

	if over == nil {
		t.Fatal("exhausted lives should end the run")
	}
	if over.Victory {
		t.Error("defeat should not be flagged as a victory")
	}
	if over.Score != 150 {
		t.Errorf("game over score = %d, want 150", over.Score)
	}
}

func TestClearingFinalLevelWins(t *testing.T) {
	w := newTestWorld(t, config.TierNormal, flatLevel())
	w.Score = 40

	var over *GameOverEvent
	for i := 0; i < w.cfg.Director.ClearDelayTicks+5; i++ {
		for _, e := range w.Step(Input{}) {
			if g, ok := e.(GameOverEvent); ok {
				over = &g
			}
		}
	}

	if over == nil || !over.Victory {
		t.Fatalf("run should end in victory, got %+v", over)
	}
	if over.Score != 40 {
		t.Errorf("victory score = %d, want 40", over.Score)
	}
	if !w.Over || !w.Victory {
		t.Error("world should be flagged over and victorious")
	}
}

func TestIDAllocGenerations(t *testing.T) {
	a := NewIDAlloc()
	first := a.Alloc()
	a.Free(first)
	second := a.Alloc()

	if first.Index() != second.Index() {
		t.Errorf("freed slot should be reused: %d vs %d", first.Index(), second.Index())
	}
	if first.Generation() == second.Generation() {
		t.Error("reused slot must carry a new generation")
	}
	if first == second {
		t.Error("stale ID must never equal its replacement")
	}
}

func TestSimpleRNGDeterminism(t *testing.T) {
	a := NewSimpleRNG(42)
	b := NewSimpleRNG(42)
	for i := 0; i < 100; i++ {
		if a.Intn(1000) != b.Intn(1000) {
			t.Fatal("same seed must yield the same sequence")
		}
	}
	z := NewSimpleRNG(0)
	if z.Intn(100) == 0 && z.Intn(100) == 0 && z.Intn(100) == 0 {
		t.Error("zero seed should still produce a varied sequence")
	}
}
