package combat

import "go.uber.org/zap"

// Decision is the outcome of resolving one ability request.
type Decision string

const (
	// DecisionExecuted means the ability started (instantly or as a cast)
	// this tick.
	DecisionExecuted Decision = "executed"
	// DecisionQueued means the request was parked in the one-slot GCD queue
	// and will fire when the rhythm clock clears.
	DecisionQueued Decision = "queued"
	// DecisionBuffered means the request was parked in the short grace
	// buffer and will fire if it becomes eligible before the grace expires.
	DecisionBuffered Decision = "buffered"
)

// resolve commits one ability request against the current timers: execute it
// now if eligible, otherwise queue a GCD ability near a timer boundary,
// otherwise hold it in the buffer. Both slots overwrite; a superseded request
// is dropped silently, never rejected loudly.
func (s *Session) resolve(p Profile) Decision {
	if s.state.CanUseNow(p) {
		s.startCastOrInstant(p)
		return DecisionExecuted
	}

	if p.TriggersGCD {
		// Queue the next GCD near the end of the running cast or of the
		// GCD clock itself.
		if cast := s.state.Cast; cast != nil && cast.Remaining <= s.state.Tuning.QueueWindow {
			s.state.QueuedNext = p.ID
			return DecisionQueued
		}
		if s.state.GCDRemaining > 0 && s.state.GCDRemaining <= s.state.Tuning.QueueWindow {
			s.state.QueuedNext = p.ID
			return DecisionQueued
		}
	}

	s.state.Buffer = &BufferedIntent{Ability: p.ID, Remaining: s.state.Tuning.BufferGrace}
	return DecisionBuffered
}

// startCastOrInstant begins the ability: hard casts open a cast bar unless
// swiftcast collapses them to instant, everything else resolves immediately.
func (s *Session) startCastOrInstant(p Profile) {
	castTime := p.CastTime
	if castTime > 0 && s.state.SwiftcastRemaining > 0 {
		castTime = 0
		s.state.SwiftcastRemaining = 0 // the buff is consumed
	}
	if castTime > 0 {
		s.state.Cast = &CastState{Ability: p.ID, Remaining: castTime, Total: castTime}
		s.logger.Debug("cast started",
			zap.String("ability", string(p.ID)),
			zap.Float64("cast_time", castTime),
		)
		return
	}
	s.resolveAbility(p)
}

// resolveAbility applies the ability's effects. GCD abilities re-arm the
// rhythm clock and may deal direct damage or start the DoT; weaves consume a
// slot in the current weave window and apply their unique effect.
func (s *Session) resolveAbility(p Profile) {
	s.state.Cooldowns[p.ID] = p.Cooldown

	if p.TriggersGCD {
		s.state.GCDRemaining = s.state.Tuning.GCDLength
		s.state.WeavesThisGCD = 0
		s.state.Clipped = false
		s.state.AnimationLockRemaining = p.AnimationLock

		mult := 1.0
		if s.state.RagingRemaining > 0 {
			mult = ragingMultiplier
		}
		if p.BaseDamage > 0 {
			s.emitDamage(p.ID, int(float64(p.BaseDamage)*mult))
		}
		if p.ID == AbilityBurn {
			s.emitDot(p.ID, burnDPS, burnDuration, burnTickEvery)
		}
	} else {
		if s.state.WeavesThisGCD < 255 {
			s.state.WeavesThisGCD++
		}
		if s.state.WeavesThisGCD > maxWeavesPerGCD {
			s.state.Clipped = true
		}
		s.state.AnimationLockRemaining = p.AnimationLock

		switch p.ID {
		case AbilityCleanse:
			s.state.DebuffRemaining = 0
		case AbilitySwiftcast:
			s.state.SwiftcastRemaining = swiftcastWindow
		case AbilityRaging:
			s.state.RagingRemaining = ragingWindow
		default:
			if p.BaseDamage > 0 {
				s.emitDamage(p.ID, p.BaseDamage)
			}
		}
	}

	s.emit(newAbilityEvent(EventAbilityResolved, p.ID))
}

// completeCast resolves a finished cast. It runs right after timer aging and
// before new intents so a cast that just ended can be replaced in the same
// tick.
func (s *Session) completeCast() {
	cast := s.state.Cast
	if cast == nil || cast.Remaining > 0 {
		return
	}
	p := s.catalog.mustProfile(cast.Ability)
	s.resolveAbility(p)
	s.state.Cast = nil
}

// recheckBuffer fires the buffered intent if it has become eligible. At most
// one start per tick; never while casting.
func (s *Session) recheckBuffer() {
	if s.state.Cast != nil || s.state.Buffer == nil {
		return
	}
	p := s.catalog.mustProfile(s.state.Buffer.Ability)
	if !s.state.CanUseNow(p) {
		return
	}
	s.state.Buffer = nil
	s.startCastOrInstant(p)
}

// recheckQueue fires the queued GCD ability once the rhythm clock and the
// animation lock are both clear. The queued ability's own cooldown is not
// re-tested: for GCD abilities it matches the rhythm length, so the two
// clocks coincide.
func (s *Session) recheckQueue() {
	if s.state.Cast != nil || s.state.QueuedNext == "" {
		return
	}
	p := s.catalog.mustProfile(s.state.QueuedNext)
	if !p.TriggersGCD || s.state.GCDRemaining > 0 || s.state.AnimationLockRemaining > 0 {
		return
	}
	s.state.QueuedNext = ""
	s.startCastOrInstant(p)
}

// Effect constants for the stock abilities.
const (
	ragingMultiplier = 1.2
	swiftcastWindow  = 10.0
	ragingWindow     = 15.0

	burnDPS       = 20
	burnDuration  = 12.0
	burnTickEvery = 1.0
)
