package sim

import "github.com/vovakirdan/tui-vanguard/internal/core"

// Engagement bands per behavior, in world cells. Horizontal range gates
// both movement and fire; the vertical band keeps hostiles from sniping
// across the whole playfield height.
const (
	stationaryRangeX = 30.0
	stationaryRangeY = 6.0
	patrolRangeX     = 25.0
	patrolRangeY     = 6.0
	chaseBandX       = 40.0
	chaseFireX       = 20.0
	chaseRangeY      = 6.0
	bossRangeX       = 45.0
	bossRangeY       = 12.0
	chaseStandoff    = 2.0
)

// stepAI runs every hostile's behavior routine and the turret sentries.
// Hostiles move first and fire second; their shots join the world next
// tick via the fired queue.
func (w *World) stepAI() {
	for i := range w.Hostiles {
		w.stepHostile(&w.Hostiles[i])
	}
	w.stepTurrets()
}

func (w *World) stepHostile(h *Hostile) {
	ax, ay := w.Avatar.Rect.Center()
	hx, hy := h.Rect.Center()
	dx := ax - hx
	dy := ay - hy

	switch h.Behavior {
	case BehaviorStationary:
		if core.AbsF(dx) <= stationaryRangeX && core.AbsF(dy) <= stationaryRangeY {
			h.Facing = facingToward(dx)
			w.hostileFire(h, dx, dy)
		}

	case BehaviorPatrol:
		if !w.moveHostile(h, h.Speed*float64(h.Facing)) {
			h.Facing = -h.Facing
		}
		if facingToward(dx) == h.Facing && core.AbsF(dx) <= patrolRangeX && core.AbsF(dy) <= patrolRangeY {
			w.hostileFire(h, dx, dy)
		}

	case BehaviorChase:
		h.Facing = facingToward(dx)
		if core.AbsF(dx) <= chaseBandX && core.AbsF(dx) > chaseStandoff {
			w.moveHostile(h, h.Speed*float64(h.Facing))
		}
		if core.AbsF(dx) <= chaseFireX && core.AbsF(dy) <= chaseRangeY {
			w.hostileFire(h, dx, dy)
		}

	case BehaviorBoss:
		h.Facing = facingToward(dx)
		if core.AbsF(dx) > chaseStandoff {
			w.moveHostile(h, h.Speed*float64(h.Facing))
		}
		if core.AbsF(dx) <= bossRangeX && core.AbsF(dy) <= bossRangeY {
			w.hostileFire(h, dx, dy)
		}
	}

	if h.FireCooldown > 0 {
		h.FireCooldown--
	}
}

func facingToward(dx float64) int {
	if dx < 0 {
		return -1
	}
	return 1
}

// moveHostile shifts a hostile horizontally, rejecting moves that would
// cross the world bounds or overlap terrain. It reports whether the move
// succeeded.
func (w *World) moveHostile(h *Hostile, vx float64) bool {
	if vx == 0 {
		return true
	}
	moved := h.Rect
	moved.X += vx
	if moved.X < 0 || moved.Right() > w.Level().Width || w.solidOverlap(moved) {
		return false
	}
	h.Rect = moved
	return true
}

// hostileFire shoots toward the avatar once the cooldown has elapsed and
// resets it to the base interval plus jitter. On the hardest tier every
// shot becomes a vertical three-spread.
func (w *World) hostileFire(h *Hostile, dx, dy float64) {
	if h.FireCooldown > 0 {
		return
	}
	h.FireCooldown = h.FireInterval + w.rng.Intn(h.FireInterval/2+1)

	speed := w.cfg.Combat.HostileShotSpeed
	dist := core.MaxF(core.AbsF(dx), 0.001)
	vx := speed * dx / dist
	vy := speed * dy / dist
	vy = core.ClampF(vy, -speed, speed)

	hx, hy := h.Rect.Center()
	origin := core.NewRect(hx, hy, 1, 1)
	spreads := []float64{0}
	if w.tier.TripleShot {
		gap := w.cfg.Combat.SpreadGap
		spreads = []float64{-gap, 0, gap}
	}
	for _, offset := range spreads {
		w.fired = append(w.fired, Projectile{
			ID:     w.projIDs.Alloc(),
			Rect:   origin,
			VX:     vx,
			VY:     vy + offset,
			Damage: w.cfg.Combat.HostileShotDamage,
			Owner:  OwnerHostile,
		})
	}
	w.emit(SoundEvent{Cue: CueHostileShot})
}

// stepTurrets ages the deployed sentries and lets each fire at the
// nearest hostile in range on its own cooldown.
func (w *World) stepTurrets() {
	kept := w.Turrets[:0]
	for _, t := range w.Turrets {
		t.Lifespan--
		if t.Lifespan <= 0 {
			w.turretIDs.Free(t.ID)
			continue
		}
		if t.FireCooldown > 0 {
			t.FireCooldown--
		}
		if t.FireCooldown == 0 {
			if target, ok := w.nearestHostile(t.Rect, w.cfg.Turret.Range); ok {
				w.turretFire(&t, target)
			}
		}
		kept = append(kept, t)
	}
	w.Turrets = kept
}

// nearestHostile returns the closest hostile within reach of the given
// rectangle.
func (w *World) nearestHostile(from core.Rect, reach float64) (Hostile, bool) {
	best := Hostile{}
	bestDist := reach
	found := false
	for _, h := range w.Hostiles {
		d := from.CenterDistance(h.Rect)
		if d <= bestDist {
			best = h
			bestDist = d
			found = true
		}
	}
	return best, found
}

func (w *World) turretFire(t *Turret, target Hostile) {
	tc := w.cfg.Turret
	t.FireCooldown = tc.Cooldown

	tx, ty := t.Rect.Center()
	hx, hy := target.Rect.Center()
	dx, dy := hx-tx, hy-ty
	dist := core.MaxF(core.AbsF(dx)+core.AbsF(dy), 0.001)
	w.fired = append(w.fired, Projectile{
		ID:     w.projIDs.Alloc(),
		Rect:   core.NewRect(tx, ty, 1, 1),
		VX:     tc.ShotSpeed * dx / dist,
		VY:     tc.ShotSpeed * dy / dist,
		Damage: tc.Damage,
		Owner:  OwnerTurret,
	})
}
