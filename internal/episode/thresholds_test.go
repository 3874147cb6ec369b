package episode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewThresholds(t *testing.T) {
	t.Run("should derive character bands from the speaking rate", func(t *testing.T) {
		// 3300 characters over 330 seconds is 10 characters per second.
		th := NewThresholds(3300, 330)

		assert.Equal(t, 1200, th.Min)
		assert.Equal(t, 1650, th.Target)
		assert.Equal(t, 2100, th.Max)
		assert.Equal(t, 2400, th.Split)
		assert.InDelta(t, 10.0, th.CharsPerSecond, 0.001)
	})

	t.Run("should fall back to fixed bands without a duration", func(t *testing.T) {
		th := NewThresholds(5000, 0)

		assert.Equal(t, 1500, th.Min)
		assert.Equal(t, 2000, th.Target)
		assert.Equal(t, 3000, th.Max)
		assert.Equal(t, 3500, th.Split)
		assert.Zero(t, th.CharsPerSecond)
	})

	t.Run("should fall back for empty text", func(t *testing.T) {
		th := NewThresholds(0, 300)

		assert.Equal(t, 1500, th.Min)
	})

	t.Run("should keep bands ordered", func(t *testing.T) {
		for _, tc := range []struct {
			textLen  int
			duration float64
		}{
			{3300, 330},
			{10000, 60},
			{500, 600},
			{5000, 0},
		} {
			th := NewThresholds(tc.textLen, tc.duration)

			assert.LessOrEqual(t, th.Min, th.Target)
			assert.LessOrEqual(t, th.Target, th.Max)
			assert.LessOrEqual(t, th.Max, th.Split)
		}
	})
}
