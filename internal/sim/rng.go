package sim

// Rand is the source of randomness for the simulation. Injecting it keeps
// every run replayable from a seed and lets tests script exact rolls.
type Rand interface {
	// Intn returns a value in [0, n). n must be positive.
	Intn(n int) int
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// SimpleRNG is a small deterministic linear congruential generator.
// Not cryptographically secure, which is fine for gameplay rolls.
type SimpleRNG struct {
	state uint64
}

// NewSimpleRNG creates a generator from a seed. Seed 0 is remapped so the
// sequence never degenerates.
func NewSimpleRNG(seed int64) *SimpleRNG {
	if seed == 0 {
		seed = 1
	}
	return &SimpleRNG{state: uint64(seed)}
}

func (r *SimpleRNG) next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a value in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int((r.next() >> 33) % uint64(n))
}

// Float64 returns a value in [0, 1).
func (r *SimpleRNG) Float64() float64 {
	return float64(r.next()>>11) / float64(1<<53)
}
