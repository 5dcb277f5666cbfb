package sim

import (
	"github.com/vovakirdan/tui-vanguard/internal/config"
	"github.com/vovakirdan/tui-vanguard/internal/core"
)

// pushDecay shrinks the wall-jump lateral impulse each tick.
const pushDecay = 0.82

// solidOverlap reports whether the rectangle overlaps any solid terrain.
// Static blocks and destructible crates both block movement; cages and
// other entities do not.
func (w *World) solidOverlap(r core.Rect) bool {
	for _, s := range w.Static {
		if r.Overlaps(s) {
			return true
		}
	}
	for _, c := range w.Crates {
		if r.Overlaps(c.Rect) {
			return true
		}
	}
	return false
}

// stepPhysics integrates the avatar: timers, dash, horizontal movement
// with wall detection, jump resolution, gravity, and vertical landing.
func (w *World) stepPhysics(in Input) {
	a := &w.Avatar
	phys := w.cfg.Physics
	profile := w.Profile()

	if a.DashCooldown > 0 {
		a.DashCooldown--
	}
	if a.HurtFlash > 0 {
		a.HurtFlash--
	}
	if a.Shield > 0 {
		a.Shield--
	}
	if a.JumpBuffer > 0 {
		a.JumpBuffer--
	}
	if in.Jump {
		a.JumpBuffer = phys.JumpBufferTicks
	}

	// Dash start. While a dash runs it owns horizontal velocity and pins
	// vertical velocity to zero.
	if in.Dash && a.DashTicks == 0 && a.DashCooldown == 0 {
		a.DashTicks = phys.DashTicks
		a.DashCooldown = phys.DashCooldown
		a.DashDir = a.Facing
		w.emit(SoundEvent{Cue: CueDash})
	}

	// Horizontal velocity.
	if a.DashTicks > 0 {
		a.DashTicks--
		a.VX = phys.DashSpeed * float64(a.DashDir)
		a.VY = 0
	} else {
		a.VX = 0
		if in.MoveLeft {
			a.VX -= profile.MoveSpeed
			a.Facing = -1
		}
		if in.MoveRight {
			a.VX += profile.MoveSpeed
			a.Facing = 1
		}
		a.VX += a.PushVX
	}
	a.PushVX *= pushDecay
	if core.AbsF(a.PushVX) < 0.01 {
		a.PushVX = 0
	}

	// Horizontal move. Rejected moves set the wall-contact flag used for
	// wall-sliding and wall jumps.
	a.OnWall = 0
	if a.VX != 0 {
		moved := a.Rect
		moved.X = core.ClampF(moved.X+a.VX, 0, w.Level().Width-moved.W)
		if w.solidOverlap(moved) {
			if a.VX > 0 {
				a.OnWall = 1
			} else {
				a.OnWall = -1
			}
			if a.DashTicks > 0 {
				a.DashTicks = 0
			}
		} else {
			a.Rect.X = moved.X
			if moved.X == 0 && a.VX < 0 {
				a.OnWall = -1
			}
			if moved.X == w.Level().Width-moved.W && a.VX > 0 {
				a.OnWall = 1
			}
		}
	}

	w.resolveJump(a, profile)

	// Gravity. Wall-sliding caps fall speed at a lower terminal velocity.
	if a.DashTicks == 0 {
		a.VY += phys.Gravity
		limit := phys.MaxFallSpeed
		if a.OnWall != 0 && !a.OnGround && a.VY > 0 {
			limit = phys.WallSlideSpeed
		}
		if a.VY > limit {
			a.VY = limit
		}
	}

	w.moveVertical(a)

	if a.OnGround {
		a.CoyoteTicks = phys.CoyoteTicks
		if profile.DoubleJump {
			a.AirJumps = 1
		} else {
			a.AirJumps = 0
		}
	} else if a.CoyoteTicks > 0 {
		a.CoyoteTicks--
	}
}

// resolveJump honors a buffered jump at most once, in priority order:
// grounded or coyote jump, then wall jump, then double jump. A successful
// jump zeroes the buffer so it can never fire twice.
func (w *World) resolveJump(a *Avatar, profile config.Profile) {
	if a.JumpBuffer <= 0 {
		return
	}
	phys := w.cfg.Physics

	switch {
	case a.OnGround || a.CoyoteTicks > 0:
		a.VY = -phys.JumpImpulse
		a.OnGround = false
		a.CoyoteTicks = 0
	case a.OnWall != 0:
		a.VY = -phys.JumpImpulse
		a.PushVX = -float64(a.OnWall) * phys.WallJumpPush
		a.Facing = -a.OnWall
	case profile.DoubleJump && a.AirJumps > 0:
		a.VY = -phys.JumpImpulse
		a.AirJumps--
	default:
		return
	}
	a.JumpBuffer = 0
	w.emit(SoundEvent{Cue: CueJump})
}

// moveVertical integrates vertical velocity and resolves terrain contact.
// Falling clamps the avatar's bottom edge to the first block top it
// crosses; rising clamps the head against block undersides.
func (w *World) moveVertical(a *Avatar) {
	oldBottom := a.Rect.Bottom()
	moved := a.Rect
	moved.Y += a.VY

	a.OnGround = false
	if a.VY >= 0 {
		// Scan blocks whose horizontal span overlaps the avatar and land on
		// the nearest top edge crossed this tick.
		landY, landed := w.landingY(a.Rect, oldBottom, moved.Bottom())
		floor := w.Level().Height
		if !landed && moved.Bottom() >= floor {
			landY, landed = floor, true
		}
		if landed {
			moved.Y = landY - moved.H
			a.VY = 0
			a.OnGround = true
		}
	} else if w.solidOverlap(moved) {
		moved.Y = a.Rect.Y
		a.VY = 0
	}
	a.Rect.Y = moved.Y
}

// landingY returns the highest block top edge crossed while falling from
// oldBottom to newBottom, considering only blocks under the avatar's
// horizontal span.
func (w *World) landingY(at core.Rect, oldBottom, newBottom float64) (float64, bool) {
	best := 0.0
	found := false
	consider := func(b core.Rect) {
		if at.X >= b.Right() || b.X >= at.Right() {
			return
		}
		if oldBottom > b.Y || newBottom < b.Y {
			return
		}
		if !found || b.Y < best {
			best = b.Y
			found = true
		}
	}
	for _, s := range w.Static {
		consider(s)
	}
	for _, c := range w.Crates {
		consider(c.Rect)
	}
	return best, found
}
