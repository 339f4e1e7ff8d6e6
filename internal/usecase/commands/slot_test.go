//go:build unit

package commands_test

import (
	"testing"
	"time"

	"telemed-booking/internal/domain/audit"
	"telemed-booking/internal/domain/user"
	"telemed-booking/internal/pkg/errs"
	"telemed-booking/internal/usecase/commands"
	"telemed-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type SlotTestSuite struct {
	commandSuite
}

func TestSlotSuite(t *testing.T) {
	suite.Run(t, new(SlotTestSuite))
}

func (s *SlotTestSuite) TestCreateSlot() {
	start := baseTime.Add(24 * time.Hour)

	tests := []struct {
		name    string
		actor   func(doctorID uuid.UUID) user.Identity
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{
			name:  "success: doctor publishes own slot",
			actor: func(d uuid.UUID) user.Identity { return user.Identity{UserID: d, Role: user.RoleDoctor} },
			start: start, end: start.Add(30 * time.Minute),
		},
		{
			name:  "success: admin publishes for a doctor",
			actor: func(uuid.UUID) user.Identity { return user.Identity{UserID: uuid.New(), Role: user.RoleAdmin} },
			start: start, end: start.Add(30 * time.Minute),
		},
		{
			name:    "error: another doctor",
			actor:   func(uuid.UUID) user.Identity { return user.Identity{UserID: uuid.New(), Role: user.RoleDoctor} },
			start:   start,
			end:     start.Add(30 * time.Minute),
			wantErr: commands.ErrForbidden,
		},
		{
			name:    "error: patient",
			actor:   func(d uuid.UUID) user.Identity { return user.Identity{UserID: d, Role: user.RolePatient} },
			start:   start,
			end:     start.Add(30 * time.Minute),
			wantErr: commands.ErrForbidden,
		},
		{
			name:    "error: end before start",
			actor:   func(d uuid.UUID) user.Identity { return user.Identity{UserID: d, Role: user.RoleDoctor} },
			start:   start,
			end:     start.Add(-time.Minute),
			wantErr: commands.ErrInvalidSlot,
		},
		{
			name:    "error: window in the past",
			actor:   func(d uuid.UUID) user.Identity { return user.Identity{UserID: d, Role: user.RoleDoctor} },
			start:   baseTime.Add(-time.Hour),
			end:     baseTime.Add(-30 * time.Minute),
			wantErr: commands.ErrInvalidSlot,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			view, err := s.slots.CreateSlot(s.ctx, commands.CreateSlotCommand{
				Actor:     tt.actor(s.doctorID),
				DoctorID:  s.doctorID,
				StartTime: tt.start,
				EndTime:   tt.end,
			})

			if tt.wantErr != nil {
				s.True(errs.Is(err, tt.wantErr), "got %v", err)
				s.Equal(0, s.store.Commits())
				return
			}
			s.Require().NoError(err)
			s.Equal("open", view.Status)
			s.Equal(s.doctorID, view.DoctorID)
			s.NotNil(s.store.Slot(view.ID))
			s.Len(s.store.AuditByAction(audit.ActionSlotCreated), 1)
			s.Contains(s.cache.Invalidations(), shared.SlotListPattern(s.doctorID.String()))
		})
	}
}

func (s *SlotTestSuite) TestCreateSlot_Overlap() {
	s.SetupTest()
	existing := s.seedSlot(24 * time.Hour)

	_, err := s.slots.CreateSlot(s.ctx, commands.CreateSlotCommand{
		Actor:     user.Identity{UserID: s.doctorID, Role: user.RoleDoctor},
		DoctorID:  s.doctorID,
		StartTime: existing.StartTime().Add(15 * time.Minute),
		EndTime:   existing.EndTime().Add(15 * time.Minute),
	})

	s.True(errs.Is(err, commands.ErrSlotOverlap))

	adjacent, err := s.slots.CreateSlot(s.ctx, commands.CreateSlotCommand{
		Actor:     user.Identity{UserID: s.doctorID, Role: user.RoleDoctor},
		DoctorID:  s.doctorID,
		StartTime: existing.EndTime(),
		EndTime:   existing.EndTime().Add(30 * time.Minute),
	})
	s.Require().NoError(err)
	s.NotEqual(existing.ID(), adjacent.ID)
}
