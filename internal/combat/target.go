package combat

// DefaultTargetMaxHealth is the stock training-target health pool.
const DefaultTargetMaxHealth = 2000

// dotRecord is the single damage-over-time effect on the target. A new
// application overwrites the record; DoTs do not stack.
type dotRecord struct {
	dps       int
	remaining float64
	tickEvery float64
	accum     float64
}

// Target is the downstream consumer of damage and apply-DoT events: a single
// enemy health pool with at most one running DoT.
type Target struct {
	Current int
	Max     int

	dot *dotRecord
}

// NewTarget returns a full-health target.
func NewTarget(maxHealth int) *Target {
	return &Target{Current: maxHealth, Max: maxHealth}
}

// Reset refills the target and removes any running DoT.
func (t *Target) Reset() {
	t.Current = t.Max
	t.dot = nil
}

// ApplyDamage subtracts amount from current health, floored at zero.
func (t *Target) ApplyDamage(amount int) {
	t.Current -= amount
	if t.Current < 0 {
		t.Current = 0
	}
}

// ApplyDot installs or replaces the DoT record.
func (t *Target) ApplyDot(dps int, duration, tickEvery float64) {
	t.dot = &dotRecord{dps: dps, remaining: duration, tickEvery: tickEvery}
}

// HasDot reports whether a DoT is currently running.
func (t *Target) HasDot() bool {
	return t.dot != nil
}

// Tick ages the DoT by dt seconds and returns one damage amount per DoT tick
// that came due, in order. A long dt can yield several ticks. The record is
// removed once its duration runs out.
func (t *Target) Tick(dt float64) []int {
	if t.dot == nil || dt <= 0 {
		return nil
	}

	var amounts []int
	t.dot.remaining -= dt
	t.dot.accum += dt
	for t.dot.accum >= t.dot.tickEvery {
		t.dot.accum -= t.dot.tickEvery
		amounts = append(amounts, t.dot.dps)
	}
	if t.dot.remaining <= 0 {
		t.dot = nil
	}
	return amounts
}
