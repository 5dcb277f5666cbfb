package sim

import (
	"github.com/vovakirdan/tui-vanguard/internal/config"
	"github.com/vovakirdan/tui-vanguard/internal/core"
	"github.com/vovakirdan/tui-vanguard/internal/levels"
)

// Reinforcement spawn parameters before tier scaling.
const (
	reinforceSpeed    = 0.25
	reinforceCooldown = 80
)

// stepDirector evaluates reinforcements and level advancement. It runs
// last in the pipeline, so the hostile count it reads reflects this
// tick's deaths before any spawn decision is made.
func (w *World) stepDirector() {
	if w.Over {
		return
	}
	w.stepReinforcement()
	w.stepLevelAdvance()
}

// stepReinforcement counts the timer down once the grace period has
// passed, while the hostile count sits below the tier cap and no major
// threat holds the field (the hardest tier reinforces regardless).
func (w *World) stepReinforcement() {
	if w.levelTick <= w.cfg.Director.GraceTicks {
		return
	}
	if len(w.Hostiles) >= w.tier.ReinforceCap {
		return
	}
	if w.majorPresent() && w.tier.Name != config.TierHard {
		return
	}

	w.reinforceTimer--
	if w.reinforceTimer > 0 {
		return
	}
	w.reinforceTimer = w.tier.ReinforceInterval
	w.WarningTicks = w.cfg.Director.WarningTicks
	w.emit(WarningEvent{Ticks: w.cfg.Director.WarningTicks})
	w.emit(SoundEvent{Cue: CueWarning})
	w.spawnReinforcement()
}

func (w *World) majorPresent() bool {
	for _, h := range w.Hostiles {
		if h.Major {
			return true
		}
	}
	return false
}

// spawnReinforcement drops one hostile at a random playfield edge with a
// weighted random behavior and a brief spawn flash.
func (w *World) spawnReinforcement() {
	lvl := w.Level()
	width := w.cfg.Avatar.Width
	height := w.cfg.Avatar.Height

	x := 1.0
	facing := 1
	if w.rng.Intn(2) == 1 {
		x = lvl.Width - 1 - width
		facing = -1
	}
	s := levels.Spawn{
		Rect:         core.NewRect(x, w.groundYAt(x, width)-height, width, height),
		Facing:       facing,
		Speed:        reinforceSpeed,
		FireCooldown: reinforceCooldown,
	}
	h := w.buildHostile(s, w.rollBehavior())
	h.SpawnFlash = w.cfg.Director.SpawnFlashTicks
	w.Hostiles = append(w.Hostiles, h)
}

// groundYAt returns the top of the highest solid block under the given
// horizontal span, or the playfield bottom when nothing is there.
func (w *World) groundYAt(x, width float64) float64 {
	ground := w.Level().Height
	consider := func(b core.Rect) {
		if x >= b.Right() || b.X >= x+width {
			return
		}
		if b.Y < ground {
			ground = b.Y
		}
	}
	for _, s := range w.Static {
		consider(s)
	}
	for _, c := range w.Crates {
		consider(c.Rect)
	}
	return ground
}

// stepLevelAdvance moves to the next stage once the field is clear, the
// minimum stage time has elapsed, and no explosions remain. Clearing the
// final stage wins the run.
func (w *World) stepLevelAdvance() {
	if len(w.Hostiles) > 0 || len(w.Explosions) > 0 {
		return
	}
	if w.levelTick <= w.cfg.Director.ClearDelayTicks {
		return
	}

	if w.LevelIdx+1 >= len(w.campaign) {
		w.Over = true
		w.Victory = true
		w.emit(GameOverEvent{Victory: true, Score: w.Score})
		return
	}

	a := &w.Avatar
	missing := a.MaxHealth - a.Health
	a.Health += missing * w.cfg.Director.AdvanceHealPct / 100

	next := w.LevelIdx + 1
	w.loadLevel(next)
	w.emit(LevelAdvanceEvent{LevelIndex: next, LevelName: w.campaign[next].Name})
}
