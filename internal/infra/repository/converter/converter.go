// Package converter maps query rows to domain entities and back.
package converter

import (
	"fmt"

	"telemed-booking/internal/domain/audit"
	"telemed-booking/internal/domain/booking"
	"telemed-booking/internal/domain/payment"
	"telemed-booking/internal/domain/slot"
	"telemed-booking/internal/infra/query"
	"telemed-booking/internal/pkg/pgconv"
)

func SlotToDomain(row query.Slot) (*slot.Slot, error) {
	status, err := slot.NewStatus(row.Status)
	if err != nil {
		return nil, fmt.Errorf("slot %s: %w", row.ID, err)
	}
	return slot.ReconstructSlot(
		row.ID,
		row.DoctorID,
		row.StartTime,
		row.EndTime,
		row.IsBooked,
		status,
		row.Version,
		row.CreatedAt,
	), nil
}

func SlotToCreateParams(s *slot.Slot) query.CreateSlotParams {
	return query.CreateSlotParams{
		ID:        s.ID(),
		DoctorID:  s.DoctorID(),
		StartTime: s.StartTime(),
		EndTime:   s.EndTime(),
		Status:    s.Status().String(),
		CreatedAt: s.CreatedAt(),
	}
}

func BookingToDomain(row query.Booking) (*booking.Booking, error) {
	status, err := booking.NewStatus(row.Status)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", row.ID, err)
	}
	return booking.ReconstructBooking(
		row.ID,
		row.PatientID,
		row.DoctorID,
		row.SlotID,
		status,
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}

func BookingToCreateParams(b *booking.Booking) query.CreateBookingParams {
	return query.CreateBookingParams{
		ID:        b.ID(),
		PatientID: b.PatientID(),
		DoctorID:  b.DoctorID(),
		SlotID:    b.SlotID(),
		Status:    b.Status().String(),
		CreatedAt: b.CreatedAt(),
	}
}

func PaymentToDomain(row query.Payment) (*payment.Payment, error) {
	status, err := payment.NewStatus(row.Status)
	if err != nil {
		return nil, fmt.Errorf("payment %s: %w", row.ID, err)
	}
	amount, err := payment.NewMoney(row.AmountMinor, row.Currency)
	if err != nil {
		return nil, fmt.Errorf("payment %s: %w", row.ID, err)
	}
	return payment.ReconstructPayment(
		row.ID,
		row.BookingID,
		amount,
		status,
		row.TransactionID,
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}

func PaymentToCreateParams(p *payment.Payment) query.CreatePaymentParams {
	return query.CreatePaymentParams{
		ID:            p.ID(),
		BookingID:     p.BookingID(),
		AmountMinor:   p.Amount().Minor(),
		Currency:      p.Amount().Currency(),
		Status:        p.Status().String(),
		TransactionID: p.TransactionID(),
		CreatedAt:     p.CreatedAt(),
	}
}

func AuditEntryToParams(e audit.Entry) (query.InsertAuditLogParams, error) {
	details, err := e.DetailsJSON()
	if err != nil {
		return query.InsertAuditLogParams{}, fmt.Errorf("audit details: %w", err)
	}
	return query.InsertAuditLogParams{
		ID:          e.ID(),
		PerformedBy: pgconv.NullableUUID(e.PerformedBy()),
		Action:      e.Action().String(),
		TargetID:    e.TargetID(),
		Details:     details,
		CreatedAt:   e.CreatedAt(),
	}, nil
}
