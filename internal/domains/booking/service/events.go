package service

import (
	"context"

	"tavolo/infras/kafka"
	"tavolo/internal/domains/booking/model"
	"tavolo/shared/constant"
	"tavolo/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
	EventBookingCompleted = "booking.completed"
	EventBookingNoShow    = "booking.no_show"
)

// BookingEvent is the payload published to the booking events topic after
// every accepted admission or transition.
type BookingEvent struct {
	Event            string `json:"event"`
	BookingID        string `json:"booking_id"`
	RestaurantID     string `json:"restaurant_id"`
	TableID          string `json:"table_id"`
	Date             string `json:"date"`
	TimeSlot         string `json:"time_slot"`
	Status           string `json:"status"`
	ConfirmationCode string `json:"confirmation_code"`
	OccurredAt       string `json:"occurred_at"`
}

// publishEvent emits a booking event without blocking the request; delivery
// failures are logged and dropped, never surfaced to the caller.
func (s *serviceImpl) publishEvent(ctx context.Context, event string, booking model.Booking) {
	payload := BookingEvent{
		Event:            event,
		BookingID:        booking.ID,
		RestaurantID:     booking.RestaurantID,
		TableID:          booking.TableID,
		Date:             booking.BookingDate.Format(constant.CalendarFormat),
		TimeSlot:         booking.TimeSlot,
		Status:           booking.Status,
		ConfirmationCode: booking.ConfirmationCode,
		OccurredAt:       timezone.Format(timezone.Now(), constant.DateFormat),
	}

	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.Message{
			Key:   booking.ID,
			Value: payload,
		}

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.BookingEvents, message); err != nil {
			log.Error().Err(err).Str("event", event).Str("booking_id", booking.ID).Msg("failed to publish booking event")
		}
	}()
}
