package dto

import (
	"time"

	"tavolo/internal/domains/booking/model"
	"tavolo/shared"
	"tavolo/shared/constant"
	gDto "tavolo/shared/dto"
	gModel "tavolo/shared/model"
	"tavolo/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RestaurantID    string  `json:"restaurant_id"    validate:"required"`
	TableID         string  `json:"table_id"         validate:"required"`
	Date            string  `json:"date"             validate:"required,calendardate"`
	TimeSlot        string  `json:"time_slot"        validate:"required,clocktime"`
	PartySize       int     `json:"party_size"       validate:"required,min=1"`
	CustomerName    string  `json:"customer_name"    validate:"required,max=100"`
	CustomerEmail   string  `json:"customer_email"   validate:"omitempty,email,max=100"`
	CustomerPhone   string  `json:"customer_phone"   validate:"omitempty,max=20"`
	SpecialRequests *string `json:"special_requests" validate:"omitempty,max=500"`
}

func (c *CreateBookingRequest) ToModel(user, confirmationCode, status string, duration int) (model.Booking, error) {
	bookingDate, err := time.Parse(constant.CalendarFormat, c.Date)
	if err != nil {
		return model.Booking{}, err
	}

	booking := model.Booking{
		ID:               uuid.NewString(),
		RestaurantID:     c.RestaurantID,
		TableID:          c.TableID,
		BookingDate:      bookingDate,
		TimeSlot:         c.TimeSlot,
		Duration:         duration,
		PartySize:        c.PartySize,
		Status:           status,
		ConfirmationCode: confirmationCode,
		CustomerName:     c.CustomerName,
		CustomerEmail:    c.CustomerEmail,
		CustomerPhone:    c.CustomerPhone,
		SpecialRequests:  c.SpecialRequests,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if status == model.StatusConfirmed {
		now := timezone.Now()
		booking.ConfirmedAt = &now
	}

	return booking, nil
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type BookingResponse struct {
	ID               string  `json:"id"`
	RestaurantID     string  `json:"restaurant_id"`
	TableID          string  `json:"table_id"`
	Date             string  `json:"date"`
	TimeSlot         string  `json:"time_slot"`
	Duration         int     `json:"duration_minutes"`
	PartySize        int     `json:"party_size"`
	Status           string  `json:"status"`
	ConfirmationCode string  `json:"confirmation_code"`
	CustomerName     string  `json:"customer_name"`
	CustomerEmail    string  `json:"customer_email,omitempty"`
	CustomerPhone    string  `json:"customer_phone,omitempty"`
	SpecialRequests  *string `json:"special_requests,omitempty"`
	Notes            *string `json:"notes,omitempty"`
	ConfirmedAt      *string `json:"confirmed_at,omitempty"`
	CancelledAt      *string `json:"cancelled_at,omitempty"`
	CancelReason     *string `json:"cancel_reason,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RestaurantID = model.RestaurantID
	r.TableID = model.TableID
	r.Date = model.BookingDate.Format(constant.CalendarFormat)
	r.TimeSlot = model.TimeSlot
	r.Duration = model.Duration
	r.PartySize = model.PartySize
	r.Status = model.Status
	r.ConfirmationCode = model.ConfirmationCode
	r.CustomerName = model.CustomerName
	r.CustomerEmail = model.CustomerEmail
	r.CustomerPhone = model.CustomerPhone
	r.SpecialRequests = model.SpecialRequests
	r.Notes = model.Notes
	r.ConfirmedAt = formatTimestamp(model.ConfirmedAt)
	r.CancelledAt = formatTimestamp(model.CancelledAt)
	r.CancelReason = model.CancelReason
	r.Metadata.FromModel(model.Metadata)
}

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := timezone.Format(*t, constant.DateFormat)

	return &formatted
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// TimeSlotResponse is the derived per-slot availability view. It is
// recomputed on every query and never persisted.
type TimeSlotResponse struct {
	Time             string   `json:"time"`
	AvailableTables  int      `json:"available_tables"`
	TotalTables      int      `json:"total_tables"`
	IsAvailable      bool     `json:"is_available"`
	EligibleTableIDs []string `json:"eligible_table_ids,omitempty"`
}

type GetAvailabilityResponse struct {
	RestaurantID string             `json:"restaurant_id"`
	Date         string             `json:"date"`
	PartySize    int                `json:"party_size,omitempty"`
	Slots        []TimeSlotResponse `json:"slots"`
}
