package combat

import (
	"time"

	"github.com/google/uuid"
)

// EventType indicates the category of a combat output event.
type EventType string

const (
	// EventAbilityPressed fires when an intent reaches the resolver,
	// whatever its decision. Presentation uses it for press feedback.
	EventAbilityPressed EventType = "ABILITY_PRESSED"
	// EventAbilityResolved fires when an ability's effects apply, either
	// instantly or at the end of its cast.
	EventAbilityResolved EventType = "ABILITY_RESOLVED"
	// EventDamage carries a damage amount for the target.
	EventDamage EventType = "DAMAGE"
	// EventApplyDot installs or refreshes the damage-over-time record.
	EventApplyDot EventType = "APPLY_DOT"
	// EventAlert asks presentation to play a shake/alert for a duration.
	EventAlert EventType = "ALERT"
)

// Event is a single tick-output record. Events are collected in emission
// order into an explicit per-tick list; consumers that care about ordering
// (damage numbers, logs) rely on that order being preserved.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Ability   AbilityID `json:"ability,omitempty"`
	Amount    int       `json:"amount,omitempty"`
	DPS       int       `json:"dps,omitempty"`
	Duration  float64   `json:"duration,omitempty"`
	TickEvery float64   `json:"tick_every,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func newEvent(t EventType) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      t,
		Timestamp: time.Now(),
	}
}

func newAbilityEvent(t EventType, id AbilityID) Event {
	evt := newEvent(t)
	evt.Ability = id
	return evt
}

func newDamageEvent(source AbilityID, amount int) Event {
	evt := newAbilityEvent(EventDamage, source)
	evt.Amount = amount
	return evt
}

func newApplyDotEvent(source AbilityID, dps int, duration, tickEvery float64) Event {
	evt := newAbilityEvent(EventApplyDot, source)
	evt.DPS = dps
	evt.Duration = duration
	evt.TickEvery = tickEvery
	return evt
}

func newAlertEvent(duration float64) Event {
	evt := newEvent(EventAlert)
	evt.Duration = duration
	return evt
}
