package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelineWaitsForTriggerTime(t *testing.T) {
	tl := DefaultTimeline()
	s := NewState(DefaultTuning())

	events := tl.Advance(2.9, s)
	assert.Empty(t, events)
	assert.Zero(t, s.DebuffRemaining)

	events = tl.Advance(0.1, s)
	require.Len(t, events, 1)
	assert.Equal(t, EventAlert, events[0].Type)
	assert.Equal(t, 1.0, events[0].Duration)
}

func TestTimelineAppliesDebuff(t *testing.T) {
	tl := DefaultTimeline()
	s := NewState(DefaultTuning())

	tl.Advance(6.0, s)
	assert.Equal(t, 8.0, s.DebuffRemaining)
}

func TestTimelineDebuffOverwrites(t *testing.T) {
	tl := NewTimeline([]TimelineEntry{
		{At: 1.0, Effect: TimelineDebuff, Duration: 8.0},
		{At: 2.0, Effect: TimelineDebuff, Duration: 3.0},
	})
	s := NewState(DefaultTuning())

	tl.Advance(2.0, s)
	assert.Equal(t, 3.0, s.DebuffRemaining, "a later application replaces the running debuff")
}

func TestTimelineLongStepDeliversAllDueEntries(t *testing.T) {
	tl := DefaultTimeline()
	s := NewState(DefaultTuning())

	events := tl.Advance(20.0, s)
	require.Len(t, events, 2, "both alerts were due")
	assert.Equal(t, 1.0, events[0].Duration)
	assert.Equal(t, 1.5, events[1].Duration)
	assert.Equal(t, 8.0, s.DebuffRemaining)
}

// Scenario: enrage loops the script; the first entry re-triggers after the
// same additional elapsed time as originally required.
func TestEnrageRestartsScript(t *testing.T) {
	tl := DefaultTimeline()
	s := NewState(DefaultTuning())

	tl.Advance(25.0, s)
	assert.Equal(t, 2.0, s.HUDAlertRemaining)
	assert.Equal(t, 5.0, s.DebuffRemaining, "enrage forces its own debuff over the scheduled one")
	assert.Zero(t, tl.Elapsed())

	events := tl.Advance(2.9, s)
	assert.Empty(t, events)

	events = tl.Advance(0.1, s)
	require.Len(t, events, 1)
	assert.Equal(t, EventAlert, events[0].Type)
	assert.Equal(t, 1.0, events[0].Duration)
}

func TestEnrageKeepsLongerRunningAlert(t *testing.T) {
	tl := NewTimeline([]TimelineEntry{{At: 1.0, Effect: TimelineEnrage}})
	s := NewState(DefaultTuning())
	s.HUDAlertRemaining = 3.5

	tl.Advance(1.0, s)
	assert.Equal(t, 3.5, s.HUDAlertRemaining, "enrage merges with max, it does not shorten")
}

func TestEnrageStopsScanForTheTick(t *testing.T) {
	tl := NewTimeline([]TimelineEntry{
		{At: 1.0, Effect: TimelineEnrage},
		{At: 1.5, Effect: TimelineDebuff, Duration: 9.0},
	})
	s := NewState(DefaultTuning())

	tl.Advance(2.0, s)
	assert.Equal(t, 5.0, s.DebuffRemaining, "entries after the enrage wait for the next cycle")
	assert.Zero(t, tl.Elapsed())
}

func TestTimelineResetRewindsCursor(t *testing.T) {
	tl := DefaultTimeline()
	s := NewState(DefaultTuning())

	tl.Advance(10.0, s)
	tl.Reset()
	assert.Zero(t, tl.Elapsed())

	events := tl.Advance(3.0, s)
	require.Len(t, events, 1)
}
