//go:build unit

package subscription_test

import (
	"testing"
	"time"

	"playa-admin/internal/domain/subscription"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestProrateFirstMonth(t *testing.T) {
	t.Run("mid-month of a 30-day month", func(t *testing.T) {
		// 30000 * 16/30 = 16000
		assert.Equal(t, int64(16000), subscription.ProrateFirstMonth(30000, day(2025, time.June, 15)))
	})

	t.Run("first of month charges the full rate", func(t *testing.T) {
		assert.Equal(t, int64(30000), subscription.ProrateFirstMonth(30000, day(2025, time.June, 1)))
		assert.Equal(t, int64(30000), subscription.ProrateFirstMonth(30000, day(2025, time.February, 1)))
	})

	t.Run("last day of month charges one day", func(t *testing.T) {
		assert.Equal(t, int64(1000), subscription.ProrateFirstMonth(31000, day(2025, time.July, 31)))
	})

	t.Run("rounds half up to whole units", func(t *testing.T) {
		// 100 * 15/31 = 48.387 -> 48; 100 * 16/31 = 51.61 -> 52
		assert.Equal(t, int64(48), subscription.ProrateFirstMonth(100, day(2025, time.July, 17)))
		assert.Equal(t, int64(52), subscription.ProrateFirstMonth(100, day(2025, time.July, 16)))
		// 101 * 15/30 = 50.5 -> 51 (half up)
		assert.Equal(t, int64(51), subscription.ProrateFirstMonth(101, day(2025, time.June, 16)))
	})

	t.Run("leap february", func(t *testing.T) {
		// 29000 * 1/29 on the 29th of Feb 2024
		assert.Equal(t, int64(1000), subscription.ProrateFirstMonth(29000, day(2024, time.February, 29)))
	})

	t.Run("non-positive rate yields zero", func(t *testing.T) {
		assert.Equal(t, int64(0), subscription.ProrateFirstMonth(0, day(2025, time.June, 15)))
		assert.Equal(t, int64(0), subscription.ProrateFirstMonth(-5, day(2025, time.June, 15)))
	})

	t.Run("bounds hold across a full month", func(t *testing.T) {
		const rate = int64(33333)
		for d := 1; d <= 31; d++ {
			p := subscription.ProrateFirstMonth(rate, day(2025, time.July, d))
			assert.GreaterOrEqual(t, p, int64(0))
			assert.LessOrEqual(t, p, rate)
		}
	})
}
