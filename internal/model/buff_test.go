package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuff_PresentForExactlyDurationTicks(t *testing.T) {
	for d := 1; d <= 5; d++ {
		s := NewBuffSet()
		s.Add(BuffBlinded, d)
		for i := 0; i < d; i++ {
			require.True(t, s.Has(BuffBlinded), "duration %d: missing before tick %d", d, i+1)
			s.tick()
		}
		assert.False(t, s.Has(BuffBlinded), "duration %d: still present after %d ticks", d, d)
		assert.Zero(t, s.Remaining(BuffBlinded))
	}
}

func TestBuff_RefreshTakesMaxNeverSums(t *testing.T) {
	tests := []struct {
		name     string
		first    int
		ticks    int
		second   int
		expected int
	}{
		{name: "longer reapply extends", first: 3, ticks: 1, second: 5, expected: 5},
		{name: "shorter reapply keeps current", first: 5, ticks: 0, second: 2, expected: 5},
		{name: "equal reapply is unchanged", first: 3, ticks: 0, second: 3, expected: 3},
		{name: "reapply after decay", first: 3, ticks: 2, second: 3, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewBuffSet()
			s.Add(BuffVulnerable, tt.first)
			for range tt.ticks {
				s.tick()
			}
			s.Add(BuffVulnerable, tt.second)
			assert.Equal(t, tt.expected, s.Remaining(BuffVulnerable))
			assert.Equal(t, 1, s.Len())
		})
	}
}

func TestBuff_ZeroDurationNeverStored(t *testing.T) {
	s := NewBuffSet()
	s.Add(BuffImmune, 0)
	s.Add(BuffImmune, -2)
	assert.False(t, s.Has(BuffImmune))
	assert.Equal(t, 0, s.Len())
}

func TestBuff_ModifierProducts(t *testing.T) {
	s := NewBuffSet()
	assert.InDelta(t, 1.0, s.DefenseMul(), 1e-9)
	assert.InDelta(t, 1.0, s.CritMul(), 1e-9)

	s.Add(BuffBlocking, 2)
	s.Add(BuffVulnerable, 2)
	s.Add(BuffBlinded, 2)
	assert.InDelta(t, 0.75, s.DefenseMul(), 1e-9)
	assert.InDelta(t, 0.5, s.CritMul(), 1e-9)
	assert.InDelta(t, 0.5, s.CritTakenMul(), 1e-9)
}

func TestBuff_KindsSorted(t *testing.T) {
	s := NewBuffSet()
	s.Add(BuffBurning, 1)
	s.Add(BuffBlocking, 1)
	s.Add(BuffImmune, 1)
	assert.Equal(t, []BuffKind{BuffBlocking, BuffImmune, BuffBurning}, s.Kinds())
}

func TestBuff_Remove(t *testing.T) {
	s := NewBuffSet()
	s.Add(BuffBlinded, 3)
	assert.True(t, s.Remove(BuffBlinded))
	assert.False(t, s.Remove(BuffBlinded))
}

func TestBuff_UnknownKindPanics(t *testing.T) {
	s := NewBuffSet()
	assert.Panics(t, func() { s.Add(BuffKind(200), 1) })
	assert.Panics(t, func() { s.Has(BuffKind(200)) })
}

func TestParseBuffKind(t *testing.T) {
	for _, k := range BuffKinds() {
		got, err := ParseBuffKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseBuffKind("hasted")
	assert.Error(t, err)
}
