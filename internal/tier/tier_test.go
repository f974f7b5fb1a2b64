package tier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFor(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		want  Tier
	}{
		{name: "zero", total: 0, want: Bronze},
		{name: "just below silver", total: 499, want: Bronze},
		{name: "silver boundary", total: 500, want: Silver},
		{name: "just below gold", total: 1999, want: Silver},
		{name: "gold boundary", total: 2000, want: Gold},
		{name: "just below platinum", total: 4999, want: Gold},
		{name: "platinum boundary", total: 5000, want: Platinum},
		{name: "just below diamond", total: 9999, want: Platinum},
		{name: "diamond boundary", total: 10000, want: Diamond},
		{name: "far above diamond", total: 1_000_000, want: Diamond},
		{name: "negative total", total: -10, want: Bronze},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, For(tt.total))
		})
	}
}

func TestNext(t *testing.T) {
	t.Run("Bronze to silver", func(t *testing.T) {
		next, remaining, ok := Next(120)
		require.True(t, ok)
		assert.Equal(t, Silver, next)
		assert.Equal(t, int64(380), remaining)
	})

	t.Run("Exactly on boundary", func(t *testing.T) {
		next, remaining, ok := Next(2000)
		require.True(t, ok)
		assert.Equal(t, Platinum, next)
		assert.Equal(t, int64(3000), remaining)
	})

	t.Run("Top tier", func(t *testing.T) {
		_, _, ok := Next(10000)
		assert.False(t, ok)
	})
}

func TestParse(t *testing.T) {
	got, err := Parse(" gold ")
	require.NoError(t, err)
	assert.Equal(t, Gold, got)

	_, err = Parse("copper")
	assert.Error(t, err)
}

func TestTier_Rank(t *testing.T) {
	assert.Equal(t, 0, Bronze.Rank())
	assert.Equal(t, 4, Diamond.Rank())
	assert.Equal(t, -1, Tier("IRON").Rank())
	assert.True(t, Platinum.Rank() > Gold.Rank())
}
