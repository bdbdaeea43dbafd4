package combat

// TimelineEffect is the kind of scripted enemy action.
type TimelineEffect string

const (
	// TimelineDebuff applies the impair debuff for Duration seconds,
	// unconditionally overwriting any running debuff.
	TimelineDebuff TimelineEffect = "debuff"
	// TimelineAlert emits an alert event carrying Duration.
	TimelineAlert TimelineEffect = "alert"
	// TimelineEnrage forces a long debuff and HUD alert, then restarts the
	// script from the top.
	TimelineEnrage TimelineEffect = "enrage"
)

const (
	enrageAlertDuration  = 2.0
	enrageDebuffDuration = 5.0
)

// TimelineEntry is one scheduled enemy action. At is seconds from the start
// of the script cycle.
type TimelineEntry struct {
	At       float64
	Effect   TimelineEffect
	Duration float64
}

// Timeline is the deterministic, looping enemy script. Entries must be
// ordered by trigger time; the cursor only advances past an entry once the
// elapsed time has reached it.
type Timeline struct {
	entries []TimelineEntry
	elapsed float64
	next    int
}

// NewTimeline builds a timeline over the given schedule.
func NewTimeline(entries []TimelineEntry) *Timeline {
	return &Timeline{entries: entries}
}

// DefaultTimeline returns the stock enemy script.
func DefaultTimeline() *Timeline {
	return NewTimeline([]TimelineEntry{
		{At: 3.0, Effect: TimelineAlert, Duration: 1.0},
		{At: 6.0, Effect: TimelineDebuff, Duration: 8.0},
		{At: 15.0, Effect: TimelineAlert, Duration: 1.5},
		{At: 25.0, Effect: TimelineEnrage},
	})
}

// Reset rewinds the script to the start of its cycle.
func (tl *Timeline) Reset() {
	tl.elapsed = 0
	tl.next = 0
}

// Elapsed returns the time into the current script cycle.
func (tl *Timeline) Elapsed() float64 {
	return tl.elapsed
}

// Advance moves the script forward by dt seconds, applying every entry whose
// trigger time has been reached. Debuffs mutate the state directly; alerts
// are returned as events for the session to merge and fan out. An enrage
// restarts the cycle and stops the scan for this tick.
func (tl *Timeline) Advance(dt float64, state *State) []Event {
	tl.elapsed += dt

	var events []Event
	for tl.next < len(tl.entries) && tl.elapsed >= tl.entries[tl.next].At {
		entry := tl.entries[tl.next]
		switch entry.Effect {
		case TimelineDebuff:
			state.DebuffRemaining = entry.Duration
		case TimelineAlert:
			events = append(events, newAlertEvent(entry.Duration))
		case TimelineEnrage:
			if state.HUDAlertRemaining < enrageAlertDuration {
				state.HUDAlertRemaining = enrageAlertDuration
			}
			state.DebuffRemaining = enrageDebuffDuration
			tl.Reset()
			return events
		}
		tl.next++
	}
	return events
}
