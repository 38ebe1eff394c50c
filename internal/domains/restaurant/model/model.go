package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"tavolo/shared/model"
)

const (
	TableName  = "restaurants"
	EntityName = "restaurant"

	FieldID               = "id"
	FieldOwnerID          = "owner_id"
	FieldName             = "name"
	FieldDescription      = "description"
	FieldCuisineType      = "cuisine_type"
	FieldAddress          = "address"
	FieldCity             = "city"
	FieldPhone            = "phone"
	FieldEmail            = "email"
	FieldImage            = "image"
	FieldWorkingHours     = "working_hours"
	FieldBookingSettings  = "booking_settings"
	FieldStatus           = "status"
	FieldModerationReason = "moderation_reason"
	FieldActive           = "active"
)

// Moderation states for a listing. Only approved restaurants are visible to
// customers and accept bookings.
const (
	StatusPendingApproval = "pending_approval"
	StatusApproved        = "approved"
	StatusRejected        = "rejected"
)

var errUnexpectedJSONBValue = errors.New("unexpected value type for jsonb column")

// DayHours describes one weekday's opening window. OpenTime and CloseTime are
// venue-local "HH:MM" strings and only meaningful when IsOpen is true.
type DayHours struct {
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime,omitempty"`
	CloseTime string `json:"closeTime,omitempty"`
}

// WorkingHours maps lowercase weekday names ("monday".."sunday") to that
// day's hours. The key set and casing are shared with calendars generated
// by other consumers and must not change.
type WorkingHours map[string]DayHours

// ForDate returns the hours entry for the weekday of the given date.
func (w WorkingHours) ForDate(date time.Time) (DayHours, bool) {
	day, ok := w[strings.ToLower(date.Weekday().String())]

	return day, ok
}

func (w WorkingHours) Value() (driver.Value, error) {
	return json.Marshal(w)
}

func (w *WorkingHours) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, w)
	case string:
		return json.Unmarshal([]byte(v), w)
	case nil:
		*w = nil

		return nil
	default:
		return fmt.Errorf("%w: %T", errUnexpectedJSONBValue, src)
	}
}

// BookingSettings carries the owner-configured booking policy.
// BookingDurationMinutes overrides the service-wide seating duration when
// positive; zero means the configured default applies.
type BookingSettings struct {
	MaxAdvanceBookingDays  int    `json:"maxAdvanceBookingDays"`
	MinAdvanceBookingHours int    `json:"minAdvanceBookingHours"`
	MaxPartySize           int    `json:"maxPartySize"`
	BookingDurationMinutes int    `json:"bookingDurationMinutes,omitempty"`
	AutoConfirmBookings    bool   `json:"autoConfirmBookings"`
	EnableOnlineBooking    bool   `json:"enableOnlineBooking"`
	CancellationPolicy     string `json:"cancellationPolicy,omitempty"`
}

func (b BookingSettings) Value() (driver.Value, error) {
	return json.Marshal(b)
}

func (b *BookingSettings) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	case nil:
		*b = BookingSettings{}

		return nil
	default:
		return fmt.Errorf("%w: %T", errUnexpectedJSONBValue, src)
	}
}

type Restaurant struct {
	ID               string          `db:"id"`
	OwnerID          string          `db:"owner_id"`
	Name             string          `db:"name"`
	Description      string          `db:"description"`
	CuisineType      string          `db:"cuisine_type"`
	Address          string          `db:"address"`
	City             string          `db:"city"`
	Phone            string          `db:"phone"`
	Email            string          `db:"email"`
	Image            string          `db:"image"`
	WorkingHours     WorkingHours    `db:"working_hours"`
	BookingSettings  BookingSettings `db:"booking_settings"`
	Status           string          `db:"status"`
	ModerationReason *string         `db:"moderation_reason"`
	Active           bool            `db:"active"`
	model.Metadata
}
