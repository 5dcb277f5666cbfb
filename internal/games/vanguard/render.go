package vanguard

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-vanguard/internal/core"
	"github.com/vovakirdan/tui-vanguard/internal/sim"
)

const hudRows = 2

// Render draws the world with a camera centered on the avatar, the HUD on
// top, and any active banner or reinforcement warning over the middle.
func (g *Game) Render(dst *core.Screen) {
	if g.world == nil {
		return
	}
	w := g.world
	lvl := w.Level()

	viewW := dst.Width()
	viewH := dst.Height() - hudRows

	ax, ay := w.Avatar.Rect.Center()
	camX := int(ax) - viewW/2
	camY := int(ay) - viewH/2
	camX = core.Clamp(camX, 0, core.Max(0, int(lvl.Width)-viewW))
	camY = core.Clamp(camY, 0, core.Max(0, int(lvl.Height)-viewH))

	// Screen shake nudges the camera while the timer runs.
	if g.shakeLeft > 0 {
		off := int(g.shakeStrength)
		if off < 1 {
			off = 1
		}
		if g.shakeLeft%2 == 0 {
			off = -off
		}
		camX += off
	}

	toScreen := func(x, y float64) (int, int) {
		return int(x) - camX, int(y) - camY + hudRows
	}

	drawRect := func(r core.Rect, fill rune, color core.Color) {
		sx, sy := toScreen(r.X, r.Y)
		dst.DrawRect(sx, sy, core.Max(1, int(r.W)), core.Max(1, int(r.H)), fill, color)
	}

	for _, s := range w.Static {
		drawRect(s, '█', core.ColorGray)
	}
	for _, c := range w.Crates {
		drawRect(c.Rect, '▓', core.ColorYellow)
	}
	for _, c := range w.Cages {
		drawRect(c.Rect, '╬', core.ColorCyan)
	}
	for _, e := range w.Explosions {
		drawRect(e.Rect, '✦', core.ColorOrange)
	}
	for _, t := range w.Turrets {
		drawRect(t.Rect, 'Ψ', core.ColorBrightBlue)
	}
	for _, p := range w.Pickups {
		sx, sy := toScreen(p.Rect.X, p.Rect.Y)
		dst.SetColored(sx, sy, pickupGlyph(p.Kind), core.ColorBrightGreen)
	}
	for _, h := range w.Hostiles {
		glyph, color := hostileGlyph(h)
		drawRect(h.Rect, glyph, color)
	}
	for _, p := range w.Projectiles {
		sx, sy := toScreen(p.Rect.X, p.Rect.Y)
		dst.SetColored(sx, sy, projectileGlyph(p), projectileColor(p))
	}

	g.renderAvatar(dst, toScreen)
	g.renderHUD(dst)
	g.renderOverlays(dst)
}

func (g *Game) renderAvatar(dst *core.Screen, toScreen func(float64, float64) (int, int)) {
	a := g.world.Avatar
	color := core.ColorBrightWhite
	if a.HurtFlash > 0 {
		color = core.ColorBrightRed
	} else if a.Shield > 0 && a.Shield%4 < 2 {
		color = core.ColorBrightCyan
	}
	sx, sy := toScreen(a.Rect.X, a.Rect.Y)
	h := core.Max(1, int(a.Rect.H))
	wdt := core.Max(1, int(a.Rect.W))
	dst.DrawRect(sx, sy, wdt, h, '║', color)
	head := '@'
	if a.Facing < 0 {
		dst.SetColored(sx, sy, head, color)
	} else {
		dst.SetColored(sx+wdt-1, sy, head, color)
	}
}

func hostileGlyph(h sim.Hostile) (rune, core.Color) {
	if h.SpawnFlash > 0 && h.SpawnFlash%4 < 2 {
		return '░', core.ColorGray
	}
	if h.HurtFlash > 0 {
		return 'M', core.ColorBrightRed
	}
	if h.Major {
		return 'W', core.ColorBrightMagenta
	}
	return 'M', core.ColorRed
}

func projectileGlyph(p sim.Projectile) rune {
	if p.Arcing {
		return 'o'
	}
	if core.AbsF(p.VY) > core.AbsF(p.VX) {
		return '|'
	}
	return '-'
}

func projectileColor(p sim.Projectile) core.Color {
	if p.Owner == sim.OwnerHostile {
		return core.ColorBrightRed
	}
	return core.ColorBrightYellow
}

func pickupGlyph(k sim.PickupKind) rune {
	switch k {
	case sim.PickupRapidFire:
		return 'R'
	case sim.PickupSpreadShot:
		return 'S'
	case sim.PickupDamageBoost:
		return 'D'
	default:
		return '?'
	}
}

// renderHUD draws squad member, health bar, lives, score, stage, and the
// active effect on the top two rows.
func (g *Game) renderHUD(dst *core.Screen) {
	w := g.world
	a := w.Avatar
	profile := w.Profile()

	bar := healthBar(a.Health, a.MaxHealth, 10)
	left := fmt.Sprintf("%s %s %d/%d", profile.Name, bar, a.Health, a.MaxHealth)
	dst.DrawTextColored(1, 0, left, core.ColorBrightWhite)

	lives := strings.Repeat("♥", core.Min(w.Lives, 10))
	dst.DrawTextColored(1, 1, lives, core.ColorBrightRed)

	score := fmt.Sprintf("SCORE %06d", w.Score)
	dst.DrawTextColored(dst.Width()-len(score)-1, 0, score, core.ColorBrightYellow)

	stage := fmt.Sprintf("STAGE %d/%d", w.LevelIdx+1, len(g.campaign))
	dst.DrawTextColored(dst.Width()-len(stage)-1, 1, stage, core.ColorCyan)

	if a.EffectTicks > 0 {
		effect := fmt.Sprintf("[%s %ds]", strings.ToUpper(a.Effect.String()), a.EffectTicks/g.runtime.TickRate+1)
		dst.DrawTextColored(len(lives)+2, 1, effect, core.ColorBrightGreen)
	}
}

func healthBar(health, max, width int) string {
	if max <= 0 {
		return strings.Repeat("░", width)
	}
	filled := health * width / max
	if health > 0 && filled == 0 {
		filled = 1
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func (g *Game) renderOverlays(dst *core.Screen) {
	mid := dst.Height() / 2

	if g.world.WarningTicks > 0 && g.world.WarningTicks%10 < 6 {
		dst.DrawTextCentered(hudRows, "!! REINFORCEMENTS INBOUND !!")
	}
	if g.bannerLeft > 0 {
		dst.DrawTextCentered(mid-2, g.banner)
	}
	if g.state.Paused {
		dst.DrawTextCentered(mid, "PAUSED")
	}
	if g.state.GameOver {
		if g.victory {
			dst.DrawTextCentered(mid, "MISSION COMPLETE")
		} else {
			dst.DrawTextCentered(mid, "SQUAD LOST")
		}
		dst.DrawTextCentered(mid+1, fmt.Sprintf("FINAL SCORE %d", g.world.Score))
		dst.DrawTextCentered(mid+2, "press R to restart, Q to quit")
	}
}
