package sim

// stepPickups drops pickups under gravity, resolves collection, and
// counts down the avatar's active effect. Collecting replaces any prior
// effect; only one runs at a time.
func (w *World) stepPickups() {
	a := &w.Avatar
	if a.EffectTicks > 0 {
		a.EffectTicks--
		if a.EffectTicks == 0 {
			a.Effect = PickupNone
		}
	}

	phys := w.cfg.Physics
	floor := w.Level().Height
	kept := w.Pickups[:0]
	for _, p := range w.Pickups {
		p.VY += phys.Gravity
		if p.VY > phys.MaxFallSpeed {
			p.VY = phys.MaxFallSpeed
		}
		oldBottom := p.Rect.Bottom()
		moved := p.Rect
		moved.Y += p.VY
		if landY, landed := w.landingY(p.Rect, oldBottom, moved.Bottom()); landed {
			moved.Y = landY - moved.H
			p.VY = 0
		} else if moved.Bottom() >= floor {
			moved.Y = floor - moved.H
			p.VY = 0
		}
		p.Rect = moved

		if p.Rect.Overlaps(a.Rect) {
			a.Effect = p.Kind
			a.EffectTicks = w.cfg.Pickups.Duration
			w.emit(SoundEvent{Cue: CuePickup})
			w.pickupIDs.Free(p.ID)
			continue
		}
		kept = append(kept, p)
	}
	w.Pickups = kept
}
