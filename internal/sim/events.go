package sim

// Event is anything the simulation wants the presentation layer to react
// to: sounds, score popups, screen shake, banners. Events are drained once
// per Advance call and never influence the simulation itself.
type Event interface {
	simEvent()
}

// Sound cue names emitted by the simulation.
const (
	CueFireBlaster  = "fire_blaster"
	CueFireRepeater = "fire_repeater"
	CueFireLauncher = "fire_launcher"
	CueHostileShot  = "hostile_shot"
	CueExplosion    = "explosion"
	CueAvatarHurt   = "avatar_hurt"
	CueAvatarDown   = "avatar_down"
	CueJump         = "jump"
	CueDash         = "dash"
	CuePickup       = "pickup"
	CueRescue       = "rescue"
	CueTurretUp     = "turret_up"
	CueWarning      = "warning"
)

// SoundEvent asks for a sound cue.
type SoundEvent struct {
	Cue string
}

// ScoreEvent reports points awarded at a world position.
type ScoreEvent struct {
	Points int
	X, Y   float64
}

// ShakeEvent asks for screen shake with the given strength.
type ShakeEvent struct {
	Strength float64
}

// WarningEvent signals that reinforcements are inbound.
type WarningEvent struct {
	Ticks int // how long the warning should display
}

// LevelAdvanceEvent signals a cleared stage.
type LevelAdvanceEvent struct {
	LevelIndex int // index of the level just entered
	LevelName  string
}

// ProfileSwapEvent signals the active squad member changed, either by a
// respawn rotation or a cage rescue.
type ProfileSwapEvent struct {
	Name   string
	Rescue bool
}

// GameOverEvent ends the run and carries the final score.
type GameOverEvent struct {
	Victory bool
	Score   int
}

func (SoundEvent) simEvent()        {}
func (ScoreEvent) simEvent()        {}
func (ShakeEvent) simEvent()        {}
func (WarningEvent) simEvent()      {}
func (LevelAdvanceEvent) simEvent() {}
func (ProfileSwapEvent) simEvent()  {}
func (GameOverEvent) simEvent()     {}
