package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-vanguard/internal/config"
	"github.com/vovakirdan/tui-vanguard/internal/core"
	"github.com/vovakirdan/tui-vanguard/internal/games/vanguard"
	"github.com/vovakirdan/tui-vanguard/internal/registry"
	"github.com/vovakirdan/tui-vanguard/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.vanguard/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.vanguard/scores.db",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves game sessions over SSH via Wish.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "vanguard-ssh",
	})

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".vanguard", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: 60,
		Seed:     time.Now().UnixNano(),
	}

	model := NewSessionModel(s.store, cfg, sshSession.User())
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen is the screen an SSH session currently shows.
type sessionScreen int

const (
	screenSelect sessionScreen = iota
	screenGame
	screenScores
)

// selectOption is one row of the difficulty screen.
type selectOption struct {
	label string
	tier  config.TierName // empty for the scoreboard entry
}

// SessionModel drives the SSH session flow: difficulty select, then the
// game, with the scoreboard reachable from the select screen.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	username string

	screen     sessionScreen
	options    []selectOption
	cursor     int
	gameModel  *Model
	scoreModel *ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a session model for one SSH connection.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		store:    store,
		config:   cfg,
		username: username,
		options: []selectOption{
			{label: "Recruit (easy)", tier: config.TierEasy},
			{label: "Veteran (normal)", tier: config.TierNormal},
			{label: "Elite (hard)", tier: config.TierHard},
			{label: "Scoreboard"},
		},
		cursor: 1, // normal preselected
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateSelect(msg)
	}
}

func (m SessionModel) updateSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "up", "k", "w":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j", "s":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "enter", " ":
		opt := m.options[m.cursor]
		if opt.tier == "" {
			sb := NewScoreboardModel(m.store, "vanguard", m.config.ScreenW, m.config.ScreenH)
			m.scoreModel = &sb
			m.screen = screenScores
			return m, sb.Init()
		}
		return m.startGame(opt.tier)
	}
	return m, nil
}

func (m SessionModel) startGame(tier config.TierName) (tea.Model, tea.Cmd) {
	game, err := registry.Create("vanguard")
	if err != nil {
		// Registered in this binary via init; absence is a build defect.
		m.quitting = true
		return m, tea.Quit
	}
	if vg, ok := game.(*vanguard.Game); ok {
		vg.SetDifficulty(tier)
	}

	cfg := m.config
	cfg.Seed = time.Now().UnixNano()
	gm := NewModel(game, m.store, cfg)
	m.gameModel = &gm
	m.screen = screenGame
	return m, gm.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gm, ok := newModel.(Model); ok {
		m.gameModel = &gm
	}

	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		m.screen = screenSelect
		return m, nil
	}
	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreModel.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreModel = &sb
	}

	if m.scoreModel.IsGoingBack() {
		m.scoreModel = nil
		m.screen = screenSelect
		return m, nil
	}
	if m.scoreModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		if m.gameModel != nil {
			return m.gameModel.View()
		}
	case screenScores:
		if m.scoreModel != nil {
			return m.scoreModel.View()
		}
	}
	return m.viewSelect()
}

func (m SessionModel) viewSelect() string {
	var b strings.Builder
	b.WriteString("\n")

	title := "VANGUARD"
	if m.username != "" {
		title = fmt.Sprintf("VANGUARD - welcome, %s", m.username)
	}
	b.WriteString(centerText(title, m.config.ScreenW))
	b.WriteString("\n\n")

	for i, opt := range m.options {
		line := "  " + opt.label
		if i == m.cursor {
			line = "> " + opt.label
		}
		b.WriteString(centerText(line, m.config.ScreenW))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render("up/down select · enter start · q quit"), m.config.ScreenW))
	return b.String()
}
