package sim

import "github.com/vovakirdan/tui-vanguard/internal/core"

// Launch velocity given to arcing shots so they lob before falling.
const arcingLaunchVY = -0.45

// stepAvatarCombat handles the avatar's weapon and the turret special.
// Shots fired here join the world only after existing projectiles have
// advanced, so a fresh shot never moves or hits on its birth tick.
func (w *World) stepAvatarCombat(in Input) {
	a := &w.Avatar
	if a.FireCooldown > 0 {
		a.FireCooldown--
	}
	if a.SpecialCooldown > 0 {
		a.SpecialCooldown--
	}

	if in.Fire && a.FireCooldown == 0 {
		w.fireWeapon(in)
	}
	if in.Special && a.SpecialCooldown == 0 {
		w.deployTurret()
	}
}

// fireWeapon spawns the avatar's shot pattern and resets the cooldown.
// Damage boost doubles per-projectile damage; rapid fire halves the
// cooldown (rounded up); spread shot replaces the weapon's pattern with
// a fixed three-way fan.
func (w *World) fireWeapon(in Input) {
	a := &w.Avatar
	weapon := w.Weapon()

	damage := weapon.Damage
	if a.EffectActive(PickupDamageBoost) {
		damage *= 2
	}
	cooldown := weapon.Cooldown
	if a.EffectActive(PickupRapidFire) {
		cooldown = (cooldown + 1) / 2
	}
	a.FireCooldown = cooldown

	cx, cy := a.Rect.Center()
	origin := core.NewRect(cx, cy, 1, 1)
	dir := float64(a.Facing)

	if a.EffectActive(PickupSpreadShot) {
		gap := w.cfg.Combat.SpreadGap
		for _, vy := range []float64{-gap, 0, gap} {
			w.fired = append(w.fired, Projectile{
				ID:     w.projIDs.Alloc(),
				Rect:   origin,
				VX:     weapon.Speed * dir,
				VY:     vy,
				Damage: damage,
				Owner:  OwnerAvatar,
			})
		}
	} else {
		vx, vy := weapon.Speed*dir, 0.0
		if weapon.Arcing {
			// Grenades always lob forward; vertical aim does not apply.
			vy = arcingLaunchVY
		} else if in.MoveUp {
			vx, vy = 0, -weapon.Speed
		} else if in.MoveDown && !a.OnGround {
			vx, vy = 0, weapon.Speed
		}
		w.fired = append(w.fired, Projectile{
			ID:     w.projIDs.Alloc(),
			Rect:   origin,
			VX:     vx,
			VY:     vy,
			Damage: damage,
			Owner:  OwnerAvatar,
			Arcing: weapon.Arcing,
		})
	}
	w.emit(SoundEvent{Cue: weapon.Sound})
}

// deployTurret places a sentry at the avatar's feet.
func (w *World) deployTurret() {
	a := &w.Avatar
	tc := w.cfg.Turret
	a.SpecialCooldown = w.cfg.Avatar.SpecialCooldown
	w.Turrets = append(w.Turrets, Turret{
		ID:           w.turretIDs.Alloc(),
		Rect:         core.NewRect(a.Rect.X, a.Rect.Bottom()-tc.Height, tc.Width, tc.Height),
		Lifespan:     tc.Lifespan,
		FireCooldown: tc.Cooldown,
	})
	w.emit(SoundEvent{Cue: CueTurretUp})
}

// stepProjectiles advances every live projectile, resolves hits into the
// damage batch, merges this tick's fresh shots, and decays explosions.
// Hit priority per projectile is exclusive: avatar, then hostiles, then
// destructible crates, then cages; the first qualifying overlap consumes
// the shot.
func (w *World) stepProjectiles() {
	for i := range w.Explosions {
		w.Explosions[i].Ticks--
	}
	w.Explosions = w.filterExplosions()

	lvl := w.Level()
	margin := w.cfg.Combat.BoundsMargin
	kept := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		if p.Arcing {
			p.VY += w.cfg.Combat.ArcingGravity
		}
		p.Rect.X += p.VX
		p.Rect.Y += p.VY

		if p.Rect.Right() < -margin || p.Rect.X > lvl.Width+margin ||
			p.Rect.Bottom() < -margin || p.Rect.Y > lvl.Height+margin {
			w.projIDs.Free(p.ID)
			continue
		}

		// Arcing shots detonate on ground contact even without a hit.
		if p.Arcing && (p.Rect.Bottom() >= lvl.Height || w.solidOverlap(p.Rect)) {
			w.spawnBlast(p.Rect, p.Damage)
			w.projIDs.Free(p.ID)
			continue
		}

		if w.resolveHit(p) {
			w.projIDs.Free(p.ID)
			continue
		}
		kept = append(kept, p)
	}
	w.Projectiles = append(kept, w.fired...)
}

// resolveHit checks one projectile against the target categories in
// priority order and records any hit in the damage batch. It reports
// whether the projectile was consumed.
func (w *World) resolveHit(p Projectile) bool {
	// Avatar: hostile shots only, and never through invulnerability.
	if p.Owner == OwnerHostile && !w.Avatar.Invulnerable() && p.Rect.Overlaps(w.Avatar.Rect) {
		w.damage[damageKey{Kind: KindAvatar}] += p.Damage
		w.spawnImpact(p)
		return true
	}
	if p.Owner == OwnerAvatar || p.Owner == OwnerTurret {
		for _, h := range w.Hostiles {
			if p.Rect.Overlaps(h.Rect) {
				w.damage[damageKey{Kind: KindHostile, ID: h.ID}] += p.Damage
				return true
			}
		}
	}
	for _, c := range w.Crates {
		if p.Rect.Overlaps(c.Rect) {
			w.damage[damageKey{Kind: KindCrate, ID: c.ID}] += p.Damage
			return true
		}
	}
	if p.Owner == OwnerAvatar || p.Owner == OwnerTurret {
		for _, c := range w.Cages {
			if p.Rect.Overlaps(c.Rect) {
				w.damage[damageKey{Kind: KindCage, ID: c.ID}] += p.Damage
				return true
			}
		}
	}
	return false
}

// spawnImpact adds the small hit flash for a shot striking the avatar.
// Arcing shots skip it; their explosion is reserved for ground
// detonation. Hostiles and props flash on hit and explode on death, so
// they get no extra impact entity.
func (w *World) spawnImpact(p Projectile) {
	if p.Arcing {
		return
	}
	cx, cy := p.Rect.Center()
	w.Explosions = append(w.Explosions, Explosion{
		ID:    w.explIDs.Alloc(),
		Rect:  core.NewRect(cx-1, cy-1, 2, 2),
		Ticks: w.cfg.Combat.ExplosionTicks / 2,
	})
}

// spawnBlast creates the arcing weapon's ground detonation and folds its
// area damage into the batch. The blast carries the projectile's damage.
func (w *World) spawnBlast(at core.Rect, damage int) {
	radius := w.cfg.Combat.BlastRadius
	cx, cy := at.Center()
	blast := core.NewRect(cx-radius, cy-radius, radius*2, radius*2)
	w.Explosions = append(w.Explosions, Explosion{
		ID:     w.explIDs.Alloc(),
		Rect:   blast,
		Ticks:  w.cfg.Combat.ExplosionTicks,
		Radius: radius,
	})
	for _, h := range w.Hostiles {
		if blast.Overlaps(h.Rect) {
			w.damage[damageKey{Kind: KindHostile, ID: h.ID}] += damage
		}
	}
	for _, c := range w.Crates {
		if blast.Overlaps(c.Rect) {
			w.damage[damageKey{Kind: KindCrate, ID: c.ID}] += damage
		}
	}
	for _, c := range w.Cages {
		if blast.Overlaps(c.Rect) {
			w.damage[damageKey{Kind: KindCage, ID: c.ID}] += damage
		}
	}
	w.emit(SoundEvent{Cue: CueExplosion})
	w.emit(ShakeEvent{Strength: w.cfg.Director.ShakeMinor})
}

func (w *World) filterExplosions() []Explosion {
	kept := w.Explosions[:0]
	for _, e := range w.Explosions {
		if e.Ticks > 0 {
			kept = append(kept, e)
			continue
		}
		w.explIDs.Free(e.ID)
	}
	return kept
}

// resolveDamage applies the tick's accumulated damage batch exactly once
// per target, then resolves deaths: score and drops for hostiles,
// explosions for crates, rescues for cages, and respawn or game over for
// the avatar.
func (w *World) resolveDamage() {
	if total := w.damage[damageKey{Kind: KindAvatar}]; total > 0 {
		w.hurtAvatar(total)
	}

	keptHostiles := w.Hostiles[:0]
	for _, h := range w.Hostiles {
		if h.HurtFlash > 0 {
			h.HurtFlash--
		}
		if h.SpawnFlash > 0 {
			h.SpawnFlash--
		}
		if total := w.damage[damageKey{Kind: KindHostile, ID: h.ID}]; total > 0 {
			h.Health = core.Max(0, h.Health-total)
			h.HurtFlash = w.cfg.Avatar.HurtFlashTicks
		}
		if h.Health > 0 {
			keptHostiles = append(keptHostiles, h)
			continue
		}
		w.killHostile(h)
	}
	w.Hostiles = keptHostiles

	keptCrates := w.Crates[:0]
	for _, c := range w.Crates {
		if total := w.damage[damageKey{Kind: KindCrate, ID: c.ID}]; total > 0 {
			c.Health = core.Max(0, c.Health-total)
		}
		if c.Health > 0 {
			keptCrates = append(keptCrates, c)
			continue
		}
		w.spawnExplosionAt(c.Rect)
		if w.rng.Intn(100) < w.cfg.Combat.CrateDropChance {
			w.spawnPickup(c.Rect)
		}
		w.crateIDs.Free(c.ID)
	}
	w.Crates = keptCrates

	keptCages := w.Cages[:0]
	for _, c := range w.Cages {
		if total := w.damage[damageKey{Kind: KindCage, ID: c.ID}]; total > 0 {
			c.Health = core.Max(0, c.Health-total)
		}
		if c.Health > 0 {
			keptCages = append(keptCages, c)
			continue
		}
		w.rescue(c)
	}
	w.Cages = keptCages
}

// hurtAvatar applies the avatar's damage total and resolves a downed
// avatar into either a respawn with the next squad member or game over.
func (w *World) hurtAvatar(total int) {
	a := &w.Avatar
	a.Health = core.Max(0, a.Health-total)
	a.HurtFlash = w.cfg.Avatar.HurtFlashTicks
	w.emit(SoundEvent{Cue: CueAvatarHurt})
	w.emit(ShakeEvent{Strength: w.cfg.Director.ShakeMinor})
	if a.Health > 0 {
		return
	}

	w.emit(SoundEvent{Cue: CueAvatarDown})
	w.Lives--
	if w.Lives <= 0 {
		w.Over = true
		w.emit(GameOverEvent{Score: w.Score})
		return
	}

	next := (a.ProfileIdx + 1) % len(w.cfg.Squad)
	lvl := w.Level()
	w.initAvatar(next)
	a = &w.Avatar
	a.Rect.X = lvl.SpawnX
	a.Rect.Y = lvl.SpawnY
	a.Shield = w.cfg.Avatar.RespawnShield
	w.emit(ProfileSwapEvent{Name: w.cfg.Squad[next].Name})
}

// killHostile resolves one hostile death: score, explosion, shake, and
// the non-major pickup roll.
func (w *World) killHostile(h Hostile) {
	points := w.cfg.Combat.ScoreMinor
	shake := w.cfg.Director.ShakeMinor
	if h.Major {
		points = w.cfg.Combat.ScoreMajor
		shake = w.cfg.Director.ShakeMajor
	}
	w.Score += points
	cx, cy := h.Rect.Center()
	w.emit(ScoreEvent{Points: points, X: cx, Y: cy})
	w.emit(ShakeEvent{Strength: shake})
	w.spawnExplosionAt(h.Rect)
	if !h.Major && w.rng.Intn(100) < w.cfg.Combat.DropChance {
		w.spawnPickup(h.Rect)
	}
	w.hostileIDs.Free(h.ID)
}

// rescue opens a destroyed cage: one extra life and a swap to the next
// squad member.
func (w *World) rescue(c Cage) {
	w.Lives++
	next := (w.Avatar.ProfileIdx + 1) % len(w.cfg.Squad)
	w.Avatar.ProfileIdx = next
	w.emit(ProfileSwapEvent{Name: w.cfg.Squad[next].Name, Rescue: true})
	w.emit(SoundEvent{Cue: CueRescue})
	w.spawnExplosionAt(c.Rect)
	w.cageIDs.Free(c.ID)
}

// spawnExplosionAt creates a death explosion sized to the entity.
func (w *World) spawnExplosionAt(at core.Rect) {
	w.Explosions = append(w.Explosions, Explosion{
		ID:    w.explIDs.Alloc(),
		Rect:  at,
		Ticks: w.cfg.Combat.ExplosionTicks,
	})
	w.emit(SoundEvent{Cue: CueExplosion})
}

// spawnPickup drops a randomly chosen buff where an entity died.
func (w *World) spawnPickup(at core.Rect) {
	kinds := []PickupKind{PickupRapidFire, PickupSpreadShot, PickupDamageBoost}
	kind := kinds[w.rng.Intn(len(kinds))]
	cx, _ := at.Center()
	w.Pickups = append(w.Pickups, Pickup{
		ID:   w.pickupIDs.Alloc(),
		Rect: core.NewRect(cx-w.cfg.Pickups.Width/2, at.Y, w.cfg.Pickups.Width, w.cfg.Pickups.Height),
		Kind: kind,
	})
}
