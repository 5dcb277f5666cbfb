package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-vanguard/internal/core"
	"github.com/vovakirdan/tui-vanguard/internal/games/vanguard"
	"github.com/vovakirdan/tui-vanguard/internal/registry"
	"github.com/vovakirdan/tui-vanguard/internal/storage"
)

// holdTicks is how many simulation ticks a directional key stays pressed
// after its last key event. Terminal key repeat arrives slower than the
// tick rate; without this grace the avatar would stutter while a key is
// physically held.
const holdTicks = 6

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model that runs one game session.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	keyMapper *KeyMapper
	runtime   core.RuntimeConfig
	store     *storage.Store // nil disables persistence

	held       map[core.Action]int  // directional keys with remaining ticks
	pressed    map[core.Action]bool // one-shot actions consumed next tick
	lastState  core.GameState
	quitting   bool
	backToMenu bool
	saved      bool // results written for the current run
}

// NewModel creates a game session model. Pass a nil store to run without
// score persistence.
func NewModel(game registry.Game, store *storage.Store, runtime core.RuntimeConfig) Model {
	if runtime.Seed == 0 {
		runtime.Seed = time.Now().UnixNano()
	}
	return Model{
		game:      game,
		screen:    core.NewScreen(runtime.ScreenW, runtime.ScreenH),
		keyMapper: NewKeyMapper(),
		runtime:   runtime,
		store:     store,
		held:      make(map[core.Action]int),
		pressed:   make(map[core.Action]bool),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.runtime)
	return tickCmd(m.runtime.TickRate)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		// The camera adapts to whatever viewport it gets, so a resize only
		// needs a bigger buffer, not a game reset.
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown:
		m.held[action] = holdTicks
	case core.ActionBack:
		// Leaving mid-run would lose the run silently; only honor back
		// from a paused or finished game.
		if m.lastState.GameOver || m.lastState.Paused {
			m.backToMenu = true
		}
	case core.ActionNone:
	default:
		m.pressed[action] = true
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, tea.Quit
	}

	frame := core.NewInputFrame()
	for action, left := range m.held {
		if left <= 0 {
			delete(m.held, action)
			continue
		}
		frame.Set(action)
		m.held[action] = left - 1
	}
	for action := range m.pressed {
		frame.Set(action)
		delete(m.pressed, action)
	}

	result := m.game.Step(frame)
	m.lastState = result.State
	if result.State.GameOver {
		m.saveResults(result.State.Score)
	} else {
		m.saved = false
	}

	return m, tickCmd(m.runtime.TickRate)
}

// IsQuitting reports whether the player asked to end the session.
func (m Model) IsQuitting() bool { return m.quitting }

// BackToMenu reports whether the player asked to return to the previous
// screen instead of quitting.
func (m Model) BackToMenu() bool { return m.backToMenu }

// saveResults persists the finished run exactly once. A restart clears
// the flag so the next run saves again.
func (m *Model) saveResults(score int) {
	if m.saved || m.store == nil {
		return
	}
	m.saved = true

	if _, err := m.store.SaveScore(m.game.ID(), score); err != nil {
		log.Error("failed to save score", "game", m.game.ID(), "err", err)
	}
	if g, ok := m.game.(*vanguard.Game); ok {
		sum := g.Summary()
		_, err := m.store.SaveRun(storage.RunRecord{
			GameID:       g.ID(),
			Difficulty:   sum.Difficulty,
			Score:        sum.Score,
			LevelReached: sum.LevelReached,
			Rescues:      sum.Rescues,
			Victory:      sum.Victory,
			DurationSecs: sum.DurationSecs,
		})
		if err != nil {
			log.Error("failed to save run", "game", g.ID(), "err", err)
		}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return "Thanks for playing!\n"
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	help := "a/d move · space jump · f fire · e dash · g turret · p pause · q quit"
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(help)
}

// Run starts a local terminal session for the given game and blocks until
// the player quits.
func Run(game registry.Game, store *storage.Store, runtime core.RuntimeConfig) error {
	p := tea.NewProgram(NewModel(game, store, runtime), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: program error: %w", err)
	}
	return nil
}
