//go:build unit

package slot_test

import (
	"testing"
	"time"

	"telemed-booking/internal/domain/slot"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlot(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	doctorID := uuid.New()

	cases := []struct {
		name     string
		doctorID uuid.UUID
		start    time.Time
		end      time.Time
		errIs    error
	}{
		{name: "valid window", doctorID: doctorID, start: now.Add(time.Hour), end: now.Add(90 * time.Minute)},
		{name: "end equals start", doctorID: doctorID, start: now.Add(time.Hour), end: now.Add(time.Hour), errIs: slot.ErrInvalidWindow},
		{name: "end before start", doctorID: doctorID, start: now.Add(2 * time.Hour), end: now.Add(time.Hour), errIs: slot.ErrInvalidWindow},
		{name: "start in the past", doctorID: doctorID, start: now.Add(-time.Hour), end: now.Add(time.Hour), errIs: slot.ErrWindowInThePast},
		{name: "missing doctor", doctorID: uuid.Nil, start: now.Add(time.Hour), end: now.Add(2 * time.Hour), errIs: slot.ErrMissingDoctor},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := slot.NewSlot(c.doctorID, c.start, c.end, now)
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, slot.StatusOpen, s.Status())
			assert.False(t, s.IsBooked())
			assert.Equal(t, int64(0), s.Version())
		})
	}
}

func TestSlot_ReserveAndRelease(t *testing.T) {
	now := time.Now()

	t.Run("open slot can be reserved once", func(t *testing.T) {
		s := slot.ReconstructSlot(uuid.New(), uuid.New(), now, now.Add(time.Hour), false, slot.StatusOpen, 3, now)

		require.NoError(t, s.Reserve())
		assert.True(t, s.IsBooked())
		assert.Equal(t, slot.StatusBooked, s.Status())
		assert.Equal(t, int64(4), s.Version())

		require.ErrorIs(t, s.Reserve(), slot.ErrAlreadyBooked)
		assert.Equal(t, int64(4), s.Version())
	})

	t.Run("release reopens a booked slot", func(t *testing.T) {
		s := slot.ReconstructSlot(uuid.New(), uuid.New(), now, now.Add(time.Hour), true, slot.StatusBooked, 1, now)

		assert.True(t, s.Release())
		assert.False(t, s.IsBooked())
		assert.Equal(t, slot.StatusOpen, s.Status())
		assert.Equal(t, int64(2), s.Version())
	})

	t.Run("release on open slot is a no-op", func(t *testing.T) {
		s := slot.ReconstructSlot(uuid.New(), uuid.New(), now, now.Add(time.Hour), false, slot.StatusOpen, 1, now)

		assert.False(t, s.Release())
		assert.Equal(t, int64(1), s.Version())
	})

	t.Run("booked flag blocks reserve even when locked", func(t *testing.T) {
		s := slot.ReconstructSlot(uuid.New(), uuid.New(), now, now.Add(time.Hour), true, slot.StatusLocked, 1, now)
		require.ErrorIs(t, s.Reserve(), slot.ErrAlreadyBooked)
	})
}

func TestSlot_Overlaps(t *testing.T) {
	base := time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC)
	s := slot.ReconstructSlot(uuid.New(), uuid.New(), base, base.Add(time.Hour), false, slot.StatusOpen, 0, base)

	assert.True(t, s.Overlaps(base.Add(30*time.Minute), base.Add(90*time.Minute)))
	assert.True(t, s.Overlaps(base.Add(-30*time.Minute), base.Add(10*time.Minute)))
	assert.False(t, s.Overlaps(base.Add(time.Hour), base.Add(2*time.Hour)), "adjacent windows do not overlap")
	assert.False(t, s.Overlaps(base.Add(-time.Hour), base))
}
