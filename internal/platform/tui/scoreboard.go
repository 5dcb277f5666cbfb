package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-vanguard/internal/storage"
)

// Scoreboard layout constants
const (
	maxScores = 100 // Max scores to load
	maxRuns   = 50  // Max runs to load
)

// scoreboardView selects which table the scoreboard shows.
type scoreboardView int

const (
	viewScores scoreboardView = iota
	viewRuns
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores/runs"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	gameID    string
	store     *storage.Store
	view      scoreboardView
	scores    []storage.ScoreEntry
	runs      []storage.RunRecord
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, gameID string, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		gameID: gameID,
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.load()
	m.table = m.createTable()
	return m
}

// load fetches scores and runs from storage.
func (m *ScoreboardModel) load() {
	m.scores = nil
	m.runs = nil
	if m.store == nil {
		return
	}
	if scores, err := m.store.TopScores(m.gameID, maxScores); err == nil {
		m.scores = scores
	}
	if runs, err := m.store.RecentRuns(m.gameID, maxRuns); err == nil {
		m.runs = runs
	}
}

// createTable builds the table for the active view.
func (m *ScoreboardModel) createTable() table.Model {
	var columns []table.Column
	var rows []table.Row

	switch m.view {
	case viewScores:
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 12},
			{Title: "Date", Width: 18},
		}
		rows = make([]table.Row, len(m.scores))
		for i, s := range m.scores {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprintf("%d", s.Score),
				s.CreatedAt.Format("Jan 02 15:04"),
			}
		}
	case viewRuns:
		columns = []table.Column{
			{Title: "Date", Width: 14},
			{Title: "Tier", Width: 8},
			{Title: "Score", Width: 10},
			{Title: "Stage", Width: 7},
			{Title: "Rescues", Width: 9},
			{Title: "Result", Width: 8},
			{Title: "Time", Width: 7},
		}
		rows = make([]table.Row, len(m.runs))
		for i, r := range m.runs {
			result := "lost"
			if r.Victory {
				result = "victory"
			}
			rows[i] = table.Row{
				r.CreatedAt.Format("Jan 02 15:04"),
				r.Difficulty,
				fmt.Sprintf("%d", r.Score),
				fmt.Sprintf("%d", r.LevelReached),
				fmt.Sprintf("%d", r.Rescues),
				result,
				formatDuration(r.DurationSecs),
			}
		}
	}

	height := m.height - 8
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func formatDuration(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Toggle):
			if m.view == viewScores {
				m.view = viewRuns
			} else {
				m.view = viewScores
			}
			m.table = m.createTable()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "HIGH SCORES"
	if m.view == viewRuns {
		title = "RECENT RUNS"
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	empty := false
	switch m.view {
	case viewScores:
		empty = len(m.scores) == 0
	case viewRuns:
		empty = len(m.runs) == 0
	}
	if empty {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("Nothing recorded yet.\nFinish a run to show up here!")
	}
	return m.table.View()
}

// IsGoingBack returns true if the user wants to go back rather than quit.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if the user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen standalone.
// Returns true if the user chose back rather than quit.
func RunScoreboard(store *storage.Store, gameID string, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, gameID, width, height)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
