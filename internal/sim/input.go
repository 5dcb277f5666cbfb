package sim

// Input is the avatar's intent for one tick. The platform layer translates
// key events into this form; the simulation never sees raw keys.
type Input struct {
	MoveLeft  bool
	MoveRight bool
	MoveUp    bool // aim up while firing
	MoveDown  bool // aim down while airborne
	Jump      bool // edge-triggered jump request
	Fire      bool
	Special   bool // deploy a sentry turret
	Dash      bool
}
