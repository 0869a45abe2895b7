package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestResolutionRate checks the whole-percent resolved share.
func TestResolutionRate(t *testing.T) {
	cases := []struct {
		resolved int64
		total    int64
		want     int
	}{
		{0, 0, 0},
		{5, 0, 0},
		{0, 10, 0},
		{85, 100, 85},
		{1, 3, 33},
		{2, 3, 67},
		{10, 10, 100},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, resolutionRate(tc.resolved, tc.total),
			"resolved=%d total=%d", tc.resolved, tc.total)
	}
}
