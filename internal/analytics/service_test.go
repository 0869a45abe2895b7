package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPercentChange checks the week-over-week math.
func TestPercentChange(t *testing.T) {
	cases := []struct {
		name     string
		current  int64
		previous int64
		want     float64
	}{
		{"growth", 15, 10, 50},
		{"decline", 5, 10, -50},
		{"flat", 10, 10, 0},
		{"drop to zero", 0, 4, -100},
		{"rounds to two decimals", 1, 3, -66.67},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := PercentChange(tc.current, tc.previous)
			require.NotNil(t, got)
			assert.InDelta(t, tc.want, *got, 0.001)
		})
	}
}

// TestPercentChangeNoBaseline checks that a zero previous week yields nil.
func TestPercentChangeNoBaseline(t *testing.T) {
	assert.Nil(t, PercentChange(7, 0))
	assert.Nil(t, PercentChange(0, 0))
}
