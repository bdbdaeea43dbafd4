package combat

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionConfig carries the externally supplied data for one combat session:
// the ability catalog, the enemy script, the timing constants and the target
// health pool. Zero fields fall back to the stock values.
type SessionConfig struct {
	Catalog         *Catalog
	Timeline        []TimelineEntry
	Tuning          Tuning
	TargetMaxHealth int
}

// Session owns the single mutable timer state of a combat encounter and
// drives it one tick at a time. Everything runs on the caller's goroutine in
// a fixed phase order; ordering is achieved by sequencing, not locking.
type Session struct {
	id       uuid.UUID
	logger   *zap.Logger
	catalog  *Catalog
	state    *State
	timeline *Timeline
	target   *Target
	out      []Event
}

// NewSession creates a session ready for its first tick.
func NewSession(cfg SessionConfig, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Catalog == nil {
		cfg.Catalog = DefaultCatalog()
	}
	if cfg.Tuning == (Tuning{}) {
		cfg.Tuning = DefaultTuning()
	}
	if cfg.TargetMaxHealth <= 0 {
		cfg.TargetMaxHealth = DefaultTargetMaxHealth
	}
	timeline := DefaultTimeline()
	if len(cfg.Timeline) > 0 {
		timeline = NewTimeline(cfg.Timeline)
	}

	s := &Session{
		id:       uuid.New(),
		logger:   logger,
		catalog:  cfg.Catalog,
		state:    NewState(cfg.Tuning),
		timeline: timeline,
		target:   NewTarget(cfg.TargetMaxHealth),
	}
	s.logger.Info("combat session created",
		zap.String("session_id", s.id.String()),
		zap.Float64("gcd_length", cfg.Tuning.GCDLength),
		zap.Int("target_max_health", cfg.TargetMaxHealth),
	)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id.String()
}

// Catalog returns the session's ability catalog.
func (s *Session) Catalog() *Catalog {
	return s.catalog
}

// Reset reinitializes the timer state and the enemy script to their
// combat-entry defaults and refills the target.
func (s *Session) Reset() {
	s.state.Reset()
	s.timeline.Reset()
	s.target.Reset()
	s.out = nil
	s.logger.Info("combat session reset", zap.String("session_id", s.id.String()))
}

// Step advances the session by dt seconds, resolving the given raw intents
// (at most one per distinct ability this tick), and returns the events the
// tick produced in emission order.
//
// Phase order, fixed: age timers, resolve a completed cast, resolve raw
// intents, re-check the buffer, re-check the GCD queue, advance the enemy
// script, tick the DoT. Unknown identifiers are rejected at this boundary so
// the phases below never see one.
func (s *Session) Step(dt float64, intents []AbilityID) []Event {
	buffered := ""
	if s.state.Buffer != nil {
		buffered = string(s.state.Buffer.Ability)
	}

	s.state.Advance(dt)

	if buffered != "" && s.state.Buffer == nil {
		s.logger.Debug("buffered intent dropped", zap.String("ability", buffered))
	}

	s.completeCast()

	for _, id := range intents {
		p, ok := s.catalog.Profile(id)
		if !ok {
			s.logger.Error("unknown ability requested", zap.String("ability", string(id)))
			continue
		}
		s.emit(newAbilityEvent(EventAbilityPressed, id))
		decision := s.resolve(p)
		s.logger.Debug("intent resolved",
			zap.String("ability", string(id)),
			zap.String("decision", string(decision)),
		)
	}

	s.recheckBuffer()
	s.recheckQueue()

	for _, alert := range s.timeline.Advance(dt, s.state) {
		// The alert consumer keeps the longest pending shake.
		if s.state.HUDAlertRemaining < alert.Duration {
			s.state.HUDAlertRemaining = alert.Duration
		}
		s.emit(alert)
	}

	for _, amount := range s.target.Tick(dt) {
		s.emitDamage(AbilityBurn, amount)
	}

	events := s.out
	s.out = nil
	return events
}

// emit appends an event to this tick's output, preserving emission order.
func (s *Session) emit(evt Event) {
	s.out = append(s.out, evt)
}

// emitDamage records a damage event and applies it to the target.
func (s *Session) emitDamage(source AbilityID, amount int) {
	s.emit(newDamageEvent(source, amount))
	s.target.ApplyDamage(amount)
}

// emitDot records an apply-DoT event and installs it on the target.
func (s *Session) emitDot(source AbilityID, dps int, duration, tickEvery float64) {
	s.emit(newApplyDotEvent(source, dps, duration, tickEvery))
	s.target.ApplyDot(dps, duration, tickEvery)
}
