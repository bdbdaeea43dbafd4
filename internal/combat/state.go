package combat

// Tuning holds the session-wide timing constants. They are configuration,
// not per-ability data.
type Tuning struct {
	// GCDLength is how long the shared rhythm clock runs after a GCD
	// ability starts.
	GCDLength float64
	// QueueWindow is the trailing interval near the end of a cast or of the
	// GCD clock during which a GCD request is queued instead of buffered.
	QueueWindow float64
	// BufferGrace is how long a request that missed both execution and the
	// queue is held before it is dropped.
	BufferGrace float64
}

// DefaultTuning returns the stock timing constants.
func DefaultTuning() Tuning {
	return Tuning{
		GCDLength:   2.5,
		QueueWindow: 0.6,
		BufferGrace: 0.4,
	}
}

// maxWeavesPerGCD is the number of weaves allowed inside one GCD window
// before further weaves flag clipping.
const maxWeavesPerGCD = 2

// CastState is the in-progress hard cast. At most one exists at a time.
type CastState struct {
	Ability   AbilityID
	Remaining float64
	Total     float64
}

// BufferedIntent is a request held for a short grace period because it could
// neither execute nor be queued when it arrived.
type BufferedIntent struct {
	Ability   AbilityID
	Remaining float64
}

// State is the mutable timer state of one combat session. All durations are
// seconds, monotonically non-increasing between resolutions and floored at
// zero; a zero value on an optional clock means the effect is absent.
//
// Exactly one State exists per session and every component reads and writes
// it in the fixed per-tick order driven by Session.Step, so it needs no
// locking.
type State struct {
	Tuning Tuning

	GCDRemaining  float64
	WeavesThisGCD uint8
	Cast          *CastState
	Buffer        *BufferedIntent
	QueuedNext    AbilityID // empty when nothing is queued
	Cooldowns     map[AbilityID]float64

	AnimationLockRemaining float64
	Clipped                bool

	DebuffRemaining    float64
	SwiftcastRemaining float64
	RagingRemaining    float64
	HUDAlertRemaining  float64
}

// NewState returns a fresh state with the given tuning.
func NewState(tuning Tuning) *State {
	return &State{
		Tuning:    tuning,
		Cooldowns: make(map[AbilityID]float64),
	}
}

// Reset returns the state to combat-entry defaults, keeping the tuning.
func (s *State) Reset() {
	tuning := s.Tuning
	*s = State{
		Tuning:    tuning,
		Cooldowns: make(map[AbilityID]float64),
	}
}

// CooldownRemaining returns the remaining cooldown for id, zero when ready.
func (s *State) CooldownRemaining(id AbilityID) float64 {
	return s.Cooldowns[id]
}

// Casting reports whether a hard cast is in progress.
func (s *State) Casting() bool {
	return s.Cast != nil
}

// CanUseNow reports whether the ability may start this instant.
//
// A GCD ability starts only when its own cooldown, the GCD clock and the
// animation lock are all clear and nothing is casting. A weave starts only
// between GCDs: own cooldown ready, not casting, GCD clock still running,
// no animation lock, and fewer than maxWeavesPerGCD weaves so far in the
// current window.
func (s *State) CanUseNow(p Profile) bool {
	if s.Cast != nil || s.Cooldowns[p.ID] > 0 || s.AnimationLockRemaining > 0 {
		return false
	}
	if p.TriggersGCD {
		return s.GCDRemaining <= 0
	}
	return s.GCDRemaining > 0 && s.WeavesThisGCD < maxWeavesPerGCD
}
