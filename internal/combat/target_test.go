package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetDamageFloorsAtZero(t *testing.T) {
	target := NewTarget(100)
	target.ApplyDamage(60)
	assert.Equal(t, 40, target.Current)

	target.ApplyDamage(500)
	assert.Equal(t, 0, target.Current)
}

// Scenario: a 20 dps / 12s / 1s DoT applied at t=0 yields exactly 12 ticks
// over 12.4 simulated seconds and is then removed.
func TestDotTicksOutAndExpires(t *testing.T) {
	target := NewTarget(2000)
	target.ApplyDot(20, 12.0, 1.0)

	var amounts []int
	for i := 0; i < 50; i++ { // 50 × 0.25s = 12.5s
		amounts = append(amounts, target.Tick(0.25)...)
	}

	require.Len(t, amounts, 12)
	for _, a := range amounts {
		assert.Equal(t, 20, a)
	}
	assert.False(t, target.HasDot())
}

func TestDotLongTickEmitsMultiple(t *testing.T) {
	target := NewTarget(2000)
	target.ApplyDot(20, 12.0, 1.0)

	amounts := target.Tick(3.5)
	assert.Equal(t, []int{20, 20, 20}, amounts)
	assert.True(t, target.HasDot())

	amounts = target.Tick(9.0)
	assert.Len(t, amounts, 9)
	assert.False(t, target.HasDot())
}

func TestDotOverwriteReplacesExisting(t *testing.T) {
	target := NewTarget(2000)
	target.ApplyDot(20, 12.0, 1.0)
	target.Tick(4.0)

	// Reapplication restarts the record; it never stacks.
	target.ApplyDot(20, 12.0, 1.0)
	amounts := target.Tick(0.5)
	assert.Empty(t, amounts, "fresh record, no tick due yet")
	assert.True(t, target.HasDot())
}

func TestTargetResetRefillsAndClearsDot(t *testing.T) {
	target := NewTarget(2000)
	target.ApplyDamage(300)
	target.ApplyDot(20, 12.0, 1.0)

	target.Reset()
	assert.Equal(t, 2000, target.Current)
	assert.False(t, target.HasDot())
}

func TestDotZeroDeltaIsNoOp(t *testing.T) {
	target := NewTarget(2000)
	target.ApplyDot(20, 12.0, 1.0)
	assert.Empty(t, target.Tick(0))
	assert.True(t, target.HasDot())
}
