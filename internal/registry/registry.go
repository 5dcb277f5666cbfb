// Package registry is a global catalog of playable game modes. Modes
// register themselves from init() so the platform and CLI can list and
// instantiate them without importing each mode directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-vanguard/internal/core"
)

// Game is the contract every playable mode implements. Implementations
// hold pure simulation logic; the platform owns input mapping, timing,
// and terminal rendering.
type Game interface {
	// ID is the stable identifier used by CLI commands and score storage.
	ID() string

	// Title is the display name shown in menus and scoreboards.
	Title() string

	// Reset initializes or restarts the mode with the given runtime
	// parameters (screen size, tick rate, RNG seed).
	Reset(cfg core.RuntimeConfig)

	// Step advances the mode by one fixed tick of platform-level input.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State reports score, pause, and game-over status.
	State() core.GameState
}

// GameInfo is the listing metadata for one registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh instance of a mode.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a mode to the catalog, typically from an init() function.
// Duplicate IDs are a programmer error and panic.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f

	g := f()
	titles[id] = g.Title()
}

// List returns all registered modes sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a registered mode by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
