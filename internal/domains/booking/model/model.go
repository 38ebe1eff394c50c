package model

import (
	"time"

	"tavolo/shared/model"
	"tavolo/shared/timeslot"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID               = "id"
	FieldRestaurantID     = "restaurant_id"
	FieldTableID          = "table_id"
	FieldBookingDate      = "booking_date"
	FieldTimeSlot         = "time_slot"
	FieldDuration         = "duration_minutes"
	FieldPartySize        = "party_size"
	FieldStatus           = "status"
	FieldConfirmationCode = "confirmation_code"
	FieldCustomerName     = "customer_name"
	FieldCustomerEmail    = "customer_email"
	FieldCustomerPhone    = "customer_phone"
	FieldSpecialRequests  = "special_requests"
	FieldNotes            = "notes"
	FieldConfirmedAt      = "confirmed_at"
	FieldCancelledAt      = "cancelled_at"
	FieldCancelReason     = "cancel_reason"
	FieldCreatedBy        = "created_by"
)

const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
	StatusCompleted = "COMPLETED"
	StatusNoShow    = "NO_SHOW"
)

type Booking struct {
	ID               string     `db:"id"`
	RestaurantID     string     `db:"restaurant_id"`
	TableID          string     `db:"table_id"`
	BookingDate      time.Time  `db:"booking_date"`
	TimeSlot         string     `db:"time_slot"`
	Duration         int        `db:"duration_minutes"`
	PartySize        int        `db:"party_size"`
	Status           string     `db:"status"`
	ConfirmationCode string     `db:"confirmation_code"`
	CustomerName     string     `db:"customer_name"`
	CustomerEmail    string     `db:"customer_email"`
	CustomerPhone    string     `db:"customer_phone"`
	SpecialRequests  *string    `db:"special_requests"`
	Notes            *string    `db:"notes"`
	ConfirmedAt      *time.Time `db:"confirmed_at"`
	CancelledAt      *time.Time `db:"cancelled_at"`
	CancelReason     *string    `db:"cancel_reason"`
	model.Metadata
}

// Interval returns the booking's occupied window as half-open minute offsets.
func (b *Booking) Interval() (start, end int, err error) {
	start, err = timeslot.ToMinutes(b.TimeSlot)
	if err != nil {
		return 0, 0, err
	}

	return start, start + b.Duration, nil
}

// IsTerminal reports whether the booking can no longer change status.
func (b *Booking) IsTerminal() bool {
	switch b.Status {
	case StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	default:
		return false
	}
}

// StartsAfter reports whether the booking's slot begins strictly after the
// given instant, comparing in the booking date's local day.
func (b *Booking) StartsAfter(now time.Time) bool {
	start, err := timeslot.ToMinutes(b.TimeSlot)
	if err != nil {
		return false
	}

	slotStart := time.Date(
		b.BookingDate.Year(), b.BookingDate.Month(), b.BookingDate.Day(),
		start/60, start%60, 0, 0, now.Location(),
	)

	return slotStart.After(now)
}
