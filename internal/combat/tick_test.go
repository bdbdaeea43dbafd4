package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func busyState() *State {
	s := NewState(DefaultTuning())
	s.GCDRemaining = 1.5
	s.WeavesThisGCD = 1
	s.Cast = &CastState{Ability: AbilityFireball, Remaining: 1.0, Total: 1.5}
	s.Buffer = &BufferedIntent{Ability: AbilityDash, Remaining: 0.3}
	s.QueuedNext = AbilityStrike
	s.Cooldowns[AbilityDash] = 12.0
	s.Cooldowns[AbilityStrike] = 0.5
	s.AnimationLockRemaining = 0.4
	s.DebuffRemaining = 6.0
	s.SwiftcastRemaining = 8.0
	s.RagingRemaining = 10.0
	s.HUDAlertRemaining = 1.0
	return s
}

func TestAdvanceAgesEveryClock(t *testing.T) {
	s := busyState()
	s.Advance(0.25)

	assert.Equal(t, 1.25, s.GCDRemaining)
	require.NotNil(t, s.Cast)
	assert.Equal(t, 0.75, s.Cast.Remaining)
	assert.Equal(t, 1.5, s.Cast.Total)
	assert.Equal(t, 11.75, s.Cooldowns[AbilityDash])
	assert.Equal(t, 0.25, s.Cooldowns[AbilityStrike])
	require.NotNil(t, s.Buffer)
	assert.InDelta(t, 0.05, s.Buffer.Remaining, 1e-9)
	assert.Equal(t, 5.75, s.DebuffRemaining)
	assert.Equal(t, 7.75, s.SwiftcastRemaining)
	assert.Equal(t, 9.75, s.RagingRemaining)
	assert.Equal(t, 0.75, s.HUDAlertRemaining)
	assert.InDelta(t, 0.15, s.AnimationLockRemaining, 1e-9)
}

func TestAdvanceFloorsAtZero(t *testing.T) {
	s := busyState()
	s.Advance(100)

	assert.Zero(t, s.GCDRemaining)
	require.NotNil(t, s.Cast) // aging never resolves a cast
	assert.Zero(t, s.Cast.Remaining)
	assert.Zero(t, s.Cooldowns[AbilityDash])
	assert.Zero(t, s.Cooldowns[AbilityStrike])
	assert.Zero(t, s.DebuffRemaining)
	assert.Zero(t, s.SwiftcastRemaining)
	assert.Zero(t, s.RagingRemaining)
	assert.Zero(t, s.HUDAlertRemaining)
	assert.Zero(t, s.AnimationLockRemaining)
}

func TestAdvanceDropsExpiredBuffer(t *testing.T) {
	s := busyState()
	s.Advance(0.3)
	assert.Nil(t, s.Buffer)
}

func TestAdvanceKeepsLiveBuffer(t *testing.T) {
	s := busyState()
	s.Advance(0.2)
	require.NotNil(t, s.Buffer)
	assert.Equal(t, AbilityDash, s.Buffer.Ability)
}

func TestAdvanceZeroDeltaIsNoOp(t *testing.T) {
	s := busyState()
	before := *s
	beforeCast := *s.Cast
	beforeBuffer := *s.Buffer
	beforeCDs := map[AbilityID]float64{}
	for id, cd := range s.Cooldowns {
		beforeCDs[id] = cd
	}

	s.Advance(0)

	assert.Equal(t, before.GCDRemaining, s.GCDRemaining)
	assert.Equal(t, beforeCast, *s.Cast)
	assert.Equal(t, beforeBuffer, *s.Buffer)
	assert.Equal(t, beforeCDs, s.Cooldowns)
	assert.Equal(t, before.DebuffRemaining, s.DebuffRemaining)
	assert.Equal(t, before.SwiftcastRemaining, s.SwiftcastRemaining)
	assert.Equal(t, before.RagingRemaining, s.RagingRemaining)
	assert.Equal(t, before.HUDAlertRemaining, s.HUDAlertRemaining)
	assert.Equal(t, before.AnimationLockRemaining, s.AnimationLockRemaining)
}

func TestAdvanceNeverGoesNegative(t *testing.T) {
	h := newHarness(t)
	h.press(AbilityStrike)
	h.step(0.7)
	h.press(AbilityRaging)

	deltas := []float64{0.05, 0.25, 1.0, 0.0, 3.0, 0.125, 10.0}
	for _, dt := range deltas {
		h.step(dt)
		h.requireNonNegative()
	}
}

func TestStateResetKeepsTuning(t *testing.T) {
	tuning := Tuning{GCDLength: 3.0, QueueWindow: 0.5, BufferGrace: 0.2}
	s := NewState(tuning)
	s.GCDRemaining = 1.0
	s.Clipped = true
	s.Cooldowns[AbilityJump] = 30

	s.Reset()

	assert.Equal(t, tuning, s.Tuning)
	assert.Zero(t, s.GCDRemaining)
	assert.False(t, s.Clipped)
	assert.Empty(t, s.Cooldowns)
	assert.Nil(t, s.Cast)
	assert.Nil(t, s.Buffer)
	assert.Empty(t, s.QueuedNext)
}
