package combat

// SessionView is the read-only snapshot presentation layers consume. It is a
// plain value: mutating it has no effect on the session.
type SessionView struct {
	SessionID string  `json:"session_id"`
	GCD       Clock   `json:"gcd"`
	Weaves    int     `json:"weaves"`
	Clipped   bool    `json:"clipped"`
	Cast      *Clock  `json:"cast,omitempty"`
	CastingAs string  `json:"casting,omitempty"`
	Queued    string  `json:"queued,omitempty"`
	Buffered  string  `json:"buffered,omitempty"`
	Debuff    float64 `json:"debuff"`
	Swiftcast float64 `json:"swiftcast"`
	Raging    float64 `json:"raging"`
	HUDAlert  float64 `json:"hud_alert"`

	Cooldowns []CooldownView `json:"cooldowns"`
	Target    TargetView     `json:"target"`
}

// Clock is a running timer as remaining/total, with the fraction precomputed
// for bar rendering.
type Clock struct {
	Remaining float64 `json:"remaining"`
	Total     float64 `json:"total"`
	Fraction  float64 `json:"fraction"`
}

// CooldownView is one hotbar slot's cooldown state.
type CooldownView struct {
	Ability     string  `json:"ability"`
	Name        string  `json:"name"`
	TriggersGCD bool    `json:"triggers_gcd"`
	Remaining   float64 `json:"remaining"`
	Fraction    float64 `json:"fraction"`
	Ready       bool    `json:"ready"`
}

// TargetView is the enemy health pool.
type TargetView struct {
	Current int  `json:"current"`
	Max     int  `json:"max"`
	HasDot  bool `json:"has_dot"`
}

func newClock(remaining, total float64) Clock {
	frac := 0.0
	if total > 0 {
		frac = clamp01(remaining / total)
	}
	return Clock{Remaining: remaining, Total: total, Fraction: frac}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// View builds the current snapshot.
func (s *Session) View() SessionView {
	view := SessionView{
		SessionID: s.id.String(),
		GCD:       newClock(s.state.GCDRemaining, s.state.Tuning.GCDLength),
		Weaves:    int(s.state.WeavesThisGCD),
		Clipped:   s.state.Clipped,
		Queued:    string(s.state.QueuedNext),
		Debuff:    s.state.DebuffRemaining,
		Swiftcast: s.state.SwiftcastRemaining,
		Raging:    s.state.RagingRemaining,
		HUDAlert:  s.state.HUDAlertRemaining,
		Target: TargetView{
			Current: s.target.Current,
			Max:     s.target.Max,
			HasDot:  s.target.HasDot(),
		},
	}

	if cast := s.state.Cast; cast != nil {
		clock := newClock(cast.Remaining, cast.Total)
		view.Cast = &clock
		view.CastingAs = string(cast.Ability)
	}
	if s.state.Buffer != nil {
		view.Buffered = string(s.state.Buffer.Ability)
	}

	for _, p := range s.catalog.Profiles() {
		remaining := s.state.CooldownRemaining(p.ID)
		frac := 0.0
		if p.Cooldown > 0 {
			frac = clamp01(remaining / p.Cooldown)
		}
		// GCD abilities also show the shared clock when it is the longer bar.
		if p.TriggersGCD && view.GCD.Fraction > frac {
			frac = view.GCD.Fraction
		}
		view.Cooldowns = append(view.Cooldowns, CooldownView{
			Ability:     string(p.ID),
			Name:        p.Name,
			TriggersGCD: p.TriggersGCD,
			Remaining:   remaining,
			Fraction:    frac,
			Ready:       remaining <= 0,
		})
	}
	return view
}
