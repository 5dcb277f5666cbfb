// Package levels provides level definitions for the vanguard simulation.
// Levels describe the playfield terrain, objective cages, and the hostile
// roster; the simulation consumes them as read-only data. Malformed level
// data is a fatal setup error reported at load time, never during a tick.
package levels

import (
	"fmt"

	"github.com/vovakirdan/tui-vanguard/internal/core"
)

// Block is a terrain rectangle: a platforming obstacle, and for
// destructible crates also a damageable prop.
type Block struct {
	Rect         core.Rect
	Destructible bool
	Health       int // ignored for static blocks
}

// Spawn describes one hostile of the initial roster or the boss.
type Spawn struct {
	Rect         core.Rect
	Facing       int // -1 left, +1 right
	Speed        float64
	FireCooldown int
	Major        bool
}

// Level is one playable stage.
type Level struct {
	Name    string
	Width   float64
	Height  float64
	SpawnX  float64 // avatar spawn point
	SpawnY  float64
	Terrain []Block
	Cages   []core.Rect
	Roster  []Spawn
	Boss    *Spawn
}

// Validate checks the level for the conditions the simulation assumes.
func (l Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("levels: %q has non-positive dimensions %gx%g", l.Name, l.Width, l.Height)
	}
	if l.SpawnX < 0 || l.SpawnX >= l.Width || l.SpawnY < 0 || l.SpawnY >= l.Height {
		return fmt.Errorf("levels: %q spawn point (%g, %g) outside playfield", l.Name, l.SpawnX, l.SpawnY)
	}
	for i, b := range l.Terrain {
		if b.Rect.W <= 0 || b.Rect.H <= 0 {
			return fmt.Errorf("levels: %q terrain block %d has non-positive size", l.Name, i)
		}
		if b.Destructible && b.Health <= 0 {
			return fmt.Errorf("levels: %q destructible block %d needs positive health", l.Name, i)
		}
	}
	majors := 0
	for i, s := range l.Roster {
		if s.Rect.W <= 0 || s.Rect.H <= 0 {
			return fmt.Errorf("levels: %q hostile %d has non-positive size", l.Name, i)
		}
		if s.Major {
			majors++
		}
	}
	if l.Boss != nil {
		majors++
	}
	// At most one major threat may exist per level.
	if majors > 1 {
		return fmt.Errorf("levels: %q defines %d major threats, max is 1", l.Name, majors)
	}
	return nil
}
