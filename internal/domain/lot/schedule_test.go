//go:build unit

package lot_test

import (
	"testing"
	"time"

	"playa-admin/internal/domain/lot"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSchedule(t *testing.T) {
	t.Run("weekday range with single block", func(t *testing.T) {
		s, err := lot.ParseSchedule("LUN-VIE 08:00-20:00")
		require.NoError(t, err)
		require.False(t, s.IsEmpty())

		for _, wd := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday} {
			blocks := s.BlocksFor(wd)
			require.Len(t, blocks, 1, "expected one block for %s", wd)
			assert.Equal(t, lot.MinuteOfDay(8*60), blocks[0].Start())
			assert.Equal(t, lot.MinuteOfDay(20*60), blocks[0].End())
		}

		assert.Empty(t, s.BlocksFor(time.Saturday))
		assert.Empty(t, s.BlocksFor(time.Sunday))
	})

	t.Run("pipe-separated blocks and comma list", func(t *testing.T) {
		s, err := lot.ParseSchedule("LUN-VIE 08:00-20:00|SAB,DOM 09:00-13:00")
		require.NoError(t, err)

		sat := s.BlocksFor(time.Saturday)
		require.Len(t, sat, 1)
		assert.Equal(t, lot.MinuteOfDay(9*60), sat[0].Start())

		sun := s.BlocksFor(time.Sunday)
		require.Len(t, sun, 1)
		assert.Equal(t, lot.MinuteOfDay(13*60), sun[0].End())
	})

	t.Run("same day in two blocks", func(t *testing.T) {
		s, err := lot.ParseSchedule("LUN 08:00-12:00|LUN 14:00-20:00")
		require.NoError(t, err)
		assert.Len(t, s.BlocksFor(time.Monday), 2)
	})

	t.Run("blank string is an empty schedule", func(t *testing.T) {
		s, err := lot.ParseSchedule("   ")
		require.NoError(t, err)
		assert.True(t, s.IsEmpty())
	})

	t.Run("malformed input fails strict parse", func(t *testing.T) {
		cases := []string{
			"LUN",
			"LUN 08:00",
			"XYZ 08:00-20:00",
			"VIE-LUN 08:00-20:00",
			"LUN 20:00-08:00",
			"LUN 25:00-26:00",
			"LUN 08:xx-20:00",
		}
		for _, raw := range cases {
			_, err := lot.ParseSchedule(raw)
			assert.ErrorIs(t, err, lot.ErrInvalidSchedule, "input %q", raw)
		}
	})

	t.Run("lenient parse degrades to empty", func(t *testing.T) {
		s := lot.ParseScheduleLenient("not a schedule")
		assert.True(t, s.IsEmpty())
	})
}

func TestNewLot(t *testing.T) {
	owner := uuid.New()

	t.Run("valid lot starts as draft", func(t *testing.T) {
		l, err := lot.NewLot(owner, "Playa Centro", "Av. Corrientes 1234", "LUN-VIE 08:00-20:00")
		require.NoError(t, err)
		assert.Equal(t, lot.StateDraft, l.State())
		assert.True(t, l.OwnedBy(owner))
		assert.False(t, l.Schedule().IsEmpty())
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := lot.NewLot(owner, "  ", "addr", "")
		assert.ErrorIs(t, err, lot.ErrEmptyName)
	})

	t.Run("bad schedule rejected at creation", func(t *testing.T) {
		_, err := lot.NewLot(owner, "Playa Norte", "addr", "LUN 99:00-10:00")
		assert.ErrorIs(t, err, lot.ErrInvalidSchedule)
	})

	t.Run("activate and suspend", func(t *testing.T) {
		l, err := lot.NewLot(owner, "Playa Sur", "addr", "")
		require.NoError(t, err)
		require.NoError(t, l.Activate())
		assert.True(t, l.IsActive())
		l.Suspend()
		assert.False(t, l.IsActive())
	})
}
