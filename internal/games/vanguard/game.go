// Package vanguard is the side-scrolling combat mode: one squad member at
// a time fights through a campaign of stages, rescuing caged teammates and
// holding off reinforcements. All gameplay rules live in the sim package;
// this package adapts them to the platform's game contract and draws the
// world.
package vanguard

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-vanguard/internal/config"
	"github.com/vovakirdan/tui-vanguard/internal/core"
	"github.com/vovakirdan/tui-vanguard/internal/levels"
	"github.com/vovakirdan/tui-vanguard/internal/registry"
	"github.com/vovakirdan/tui-vanguard/internal/sim"
)

const bannerTicks = 120

func init() {
	registry.Register("vanguard", func() registry.Game {
		return New()
	})
}

// Game adapts the combat simulation to the platform game contract.
type Game struct {
	cfg      config.Config
	tier     config.TierName
	campaign []levels.Level
	runtime  core.RuntimeConfig

	world *sim.World
	state core.GameState

	// Run statistics surfaced to storage by the platform.
	Rescues    int
	StartLevel int

	shakeLeft     int
	shakeStrength float64
	banner        string
	bannerLeft    int
	victory       bool
}

// New creates the mode with the embedded defaults. The CLI may override
// configuration, campaign, and difficulty before Reset is called.
func New() *Game {
	campaign, err := levels.LoadCampaign()
	if err != nil {
		// The embedded campaign ships with the binary; failing to parse it
		// is a build defect. Fall back to a bare arena so the mode still
		// starts.
		campaign = []levels.Level{fallbackLevel()}
	}
	return &Game{
		cfg:      config.DefaultConfig(),
		tier:     config.TierNormal,
		campaign: campaign,
	}
}

func fallbackLevel() levels.Level {
	return levels.Level{
		Name:   "Arena",
		Width:  120,
		Height: 28,
		SpawnX: 6,
		SpawnY: 22,
		Terrain: []levels.Block{
			{Rect: core.NewRect(0, 26, 120, 2)},
		},
		Roster: []levels.Spawn{
			{Rect: core.NewRect(100, 23, 2, 3), Facing: -1, Speed: 0.25, FireCooldown: 80},
		},
	}
}

// SetConfig replaces the simulation configuration. Takes effect on Reset.
func (g *Game) SetConfig(cfg config.Config) { g.cfg = cfg }

// SetDifficulty selects the tier used on the next Reset.
func (g *Game) SetDifficulty(tier config.TierName) { g.tier = tier }

// SetCampaign replaces the level sequence. Takes effect on Reset.
func (g *Game) SetCampaign(campaign []levels.Level) {
	if len(campaign) > 0 {
		g.campaign = campaign
	}
}

// Difficulty returns the tier the current run was started with.
func (g *Game) Difficulty() config.TierName { return g.tier }

// ID implements registry.Game.
func (g *Game) ID() string { return "vanguard" }

// Title implements registry.Game.
func (g *Game) Title() string { return "Vanguard" }

// Reset starts a fresh run.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}
	world, err := sim.New(g.cfg, g.tier, g.campaign, sim.NewSimpleRNG(seed), cfg.TickRate)
	if err != nil {
		// Config and campaign were validated at load; reaching this means a
		// programmer error in the CLI wiring.
		panic(fmt.Sprintf("vanguard: %v", err))
	}
	g.world = world
	g.state = core.GameState{}
	g.Rescues = 0
	g.StartLevel = 0
	g.shakeLeft = 0
	g.victory = false
	g.setBanner(fmt.Sprintf("STAGE 1: %s", g.campaign[0].Name))
}

// Step implements registry.Game: one platform tick in, events out.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	var cues []string

	if in.Has(core.ActionRestart) && g.state.GameOver {
		g.Reset(g.runtime)
		return core.StepResult{State: g.state}
	}
	if in.Has(core.ActionPause) {
		g.state.Paused = !g.state.Paused
	}
	if g.state.GameOver || g.state.Paused {
		return core.StepResult{State: g.state}
	}

	tickDur := time.Second / time.Duration(g.runtime.TickRate)
	events := g.world.Advance(g.simInput(in), tickDur)
	for _, e := range events {
		cues = g.consume(e, cues)
	}

	if g.shakeLeft > 0 {
		g.shakeLeft--
	}
	if g.bannerLeft > 0 {
		g.bannerLeft--
	}
	g.state.Score = g.world.Score

	return core.StepResult{State: g.state, Cues: cues}
}

func (g *Game) simInput(in core.InputFrame) sim.Input {
	return sim.Input{
		MoveLeft:  in.Has(core.ActionLeft),
		MoveRight: in.Has(core.ActionRight),
		MoveUp:    in.Has(core.ActionUp),
		MoveDown:  in.Has(core.ActionDown),
		Jump:      in.Has(core.ActionJump),
		Fire:      in.Has(core.ActionFire),
		Special:   in.Has(core.ActionSpecial),
		Dash:      in.Has(core.ActionDash),
	}
}

// consume folds one simulation event into presentation state, returning
// the updated cue list.
func (g *Game) consume(e sim.Event, cues []string) []string {
	switch ev := e.(type) {
	case sim.SoundEvent:
		cues = append(cues, ev.Cue)
	case sim.ShakeEvent:
		if ev.Strength > g.shakeStrength || g.shakeLeft == 0 {
			g.shakeStrength = ev.Strength
		}
		g.shakeLeft = 10
	case sim.WarningEvent:
		// The world tracks the warning countdown itself; nothing extra here.
	case sim.ScoreEvent:
		// Score popups render from the world score; position is cosmetic.
	case sim.LevelAdvanceEvent:
		g.setBanner(fmt.Sprintf("STAGE %d: %s", ev.LevelIndex+1, ev.LevelName))
	case sim.ProfileSwapEvent:
		if ev.Rescue {
			g.Rescues++
			g.setBanner(fmt.Sprintf("%s RESCUED", ev.Name))
		} else {
			g.setBanner(fmt.Sprintf("%s MOVES IN", ev.Name))
		}
	case sim.GameOverEvent:
		g.state.GameOver = true
		g.victory = ev.Victory
		g.state.Score = ev.Score
	}
	return cues
}

func (g *Game) setBanner(text string) {
	g.banner = text
	g.bannerLeft = bannerTicks
}

// State implements registry.Game.
func (g *Game) State() core.GameState {
	return g.state
}

// RunSummary captures the outcome of one run for persistence.
type RunSummary struct {
	Difficulty   string
	Score        int
	LevelReached int // 1-based stage index
	Rescues      int
	Victory      bool
	DurationSecs int
}

// Summary reports the current run's statistics. Meaningful once the run
// is over, but safe to call at any point.
func (g *Game) Summary() RunSummary {
	s := RunSummary{
		Difficulty: string(g.tier),
		Rescues:    g.Rescues,
		Victory:    g.victory,
	}
	if g.world != nil {
		s.Score = g.world.Score
		s.LevelReached = g.world.LevelIdx + 1
		if g.runtime.TickRate > 0 {
			s.DurationSecs = int(g.world.Tick) / g.runtime.TickRate
		}
	}
	return s
}

// World exposes the simulation for the platform's run-stats recording.
func (g *Game) World() *sim.World {
	return g.world
}
