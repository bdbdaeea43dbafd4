package combat

import (
	"testing"

	"go.uber.org/zap/zaptest"
)

// sessionHarness provides utilities for setting up and stepping combat
// sessions in tests.
type sessionHarness struct {
	t       *testing.T
	session *Session
}

// newHarness creates a session with stock configuration and a test logger.
func newHarness(t *testing.T) *sessionHarness {
	return newHarnessWith(t, SessionConfig{})
}

// newHarnessWith creates a session with the given configuration.
func newHarnessWith(t *testing.T, cfg SessionConfig) *sessionHarness {
	logger := zaptest.NewLogger(t)
	return &sessionHarness{
		t:       t,
		session: NewSession(cfg, logger),
	}
}

// state exposes the session's timer state for direct inspection.
func (h *sessionHarness) state() *State {
	return h.session.state
}

// target exposes the session's target.
func (h *sessionHarness) target() *Target {
	return h.session.target
}

// press submits one intent without advancing time.
func (h *sessionHarness) press(id AbilityID) []Event {
	return h.session.Step(0, []AbilityID{id})
}

// step advances the session by dt with no new intents.
func (h *sessionHarness) step(dt float64) []Event {
	return h.session.Step(dt, nil)
}

// stepFor advances the session in fixed dt increments until total elapses,
// collecting every event produced along the way.
func (h *sessionHarness) stepFor(total, dt float64) []Event {
	var events []Event
	for elapsed := 0.0; elapsed < total; elapsed += dt {
		events = append(events, h.session.Step(dt, nil)...)
	}
	return events
}

// eventsOfType filters events by type, preserving order.
func eventsOfType(events []Event, t EventType) []Event {
	var out []Event
	for _, evt := range events {
		if evt.Type == t {
			out = append(out, evt)
		}
	}
	return out
}

// damageAmounts extracts the amounts of all damage events, in order.
func damageAmounts(events []Event) []int {
	var out []int
	for _, evt := range eventsOfType(events, EventDamage) {
		out = append(out, evt.Amount)
	}
	return out
}

// requireNonNegative fails the test if any duration field in the state has
// gone negative.
func (h *sessionHarness) requireNonNegative() {
	h.t.Helper()
	s := h.state()
	checks := map[string]float64{
		"gcd":            s.GCDRemaining,
		"animation_lock": s.AnimationLockRemaining,
		"debuff":         s.DebuffRemaining,
		"swiftcast":      s.SwiftcastRemaining,
		"raging":         s.RagingRemaining,
		"hud_alert":      s.HUDAlertRemaining,
	}
	for name, v := range checks {
		if v < 0 {
			h.t.Fatalf("%s went negative: %v", name, v)
		}
	}
	for id, cd := range s.Cooldowns {
		if cd < 0 {
			h.t.Fatalf("cooldown for %s went negative: %v", id, cd)
		}
	}
	if s.Cast != nil && s.Cast.Remaining < 0 {
		h.t.Fatalf("cast remaining went negative: %v", s.Cast.Remaining)
	}
	if s.Buffer != nil && s.Buffer.Remaining <= 0 {
		h.t.Fatalf("buffer retained with non-positive grace: %v", s.Buffer.Remaining)
	}
}
