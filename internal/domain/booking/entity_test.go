//go:build unit

package booking_test

import (
	"testing"
	"time"

	"telemed-booking/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	now := time.Now()

	t.Run("starts pending", func(t *testing.T) {
		b, err := booking.NewBooking(uuid.New(), uuid.New(), uuid.New(), now)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, now, b.CreatedAt())
	})

	t.Run("requires patient", func(t *testing.T) {
		_, err := booking.NewBooking(uuid.Nil, uuid.New(), uuid.New(), now)
		require.ErrorIs(t, err, booking.ErrMissingPatient)
	})

	t.Run("requires slot", func(t *testing.T) {
		_, err := booking.NewBooking(uuid.New(), uuid.New(), uuid.Nil, now)
		require.ErrorIs(t, err, booking.ErrMissingSlot)
	})
}

func TestBooking_Transitions(t *testing.T) {
	now := time.Now()

	transitions := []struct {
		name string
		move func(*booking.Booking, time.Time) error
		want booking.Status
	}{
		{name: "confirm", move: (*booking.Booking).Confirm, want: booking.StatusConfirmed},
		{name: "fail", move: (*booking.Booking).Fail, want: booking.StatusFailed},
		{name: "cancel", move: (*booking.Booking).Cancel, want: booking.StatusCancelled},
	}

	for _, tr := range transitions {
		t.Run(tr.name+" from pending", func(t *testing.T) {
			b, err := booking.NewBooking(uuid.New(), uuid.New(), uuid.New(), now)
			require.NoError(t, err)

			require.NoError(t, tr.move(b, now.Add(time.Minute)))
			assert.Equal(t, tr.want, b.Status())
			assert.True(t, b.Status().IsTerminal())
			assert.Equal(t, now.Add(time.Minute), b.UpdatedAt())
		})

		for _, from := range []booking.Status{booking.StatusConfirmed, booking.StatusCancelled, booking.StatusFailed} {
			t.Run(tr.name+" from "+from.String()+" is rejected", func(t *testing.T) {
				b := booking.ReconstructBooking(uuid.New(), uuid.New(), uuid.New(), uuid.New(), from, now, now)
				require.ErrorIs(t, tr.move(b, now), booking.ErrNotPending)
				assert.Equal(t, from, b.Status())
			})
		}
	}
}

func TestBooking_IsStale(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	window := 10 * time.Minute

	old := booking.ReconstructBooking(uuid.New(), uuid.New(), uuid.New(), uuid.New(), booking.StatusPending, now.Add(-11*time.Minute), now)
	young := booking.ReconstructBooking(uuid.New(), uuid.New(), uuid.New(), uuid.New(), booking.StatusPending, now.Add(-9*time.Minute), now)
	confirmed := booking.ReconstructBooking(uuid.New(), uuid.New(), uuid.New(), uuid.New(), booking.StatusConfirmed, now.Add(-time.Hour), now)

	assert.True(t, old.IsStale(now, window))
	assert.False(t, young.IsStale(now, window))
	assert.False(t, confirmed.IsStale(now, window))
}

func TestNewStatus(t *testing.T) {
	s, err := booking.NewStatus("pending")
	require.NoError(t, err)
	assert.Equal(t, booking.StatusPending, s)

	_, err = booking.NewStatus("PENDING")
	require.ErrorIs(t, err, booking.ErrInvalidStatus)
}
