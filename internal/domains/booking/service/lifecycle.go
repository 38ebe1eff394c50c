package service

import (
	"context"
	"fmt"

	"tavolo/internal/domains/booking/model"
	"tavolo/internal/domains/booking/model/dto"
	restaurantModel "tavolo/internal/domains/restaurant/model"
	"tavolo/shared"
	"tavolo/shared/constant"
	"tavolo/shared/failure"
	"tavolo/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Confirm moves a pending booking to confirmed and stamps the confirmation
// time. Restricted to restaurant staff.
func (s *serviceImpl) Confirm(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getForTransition(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.authorizeStaff(ctx, booking.RestaurantID); err != nil {
		return res, err
	}

	if booking.Status != model.StatusPending {
		return res, ErrInvalidTransition
	}

	now := timezone.Now()
	booking.Status = model.StatusConfirmed
	booking.ConfirmedAt = &now

	fields := map[string]any{
		model.FieldStatus:      booking.Status,
		model.FieldConfirmedAt: booking.ConfirmedAt,
	}

	return s.applyTransition(ctx, booking, fields, EventBookingConfirmed)
}

// Cancel releases a pending or confirmed booking. Customers may cancel their
// own bookings; staff may cancel any booking of their restaurant. A confirmed
// booking can only be cancelled while its slot is still in the future.
func (s *serviceImpl) Cancel(ctx context.Context, req dto.CancelBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getForTransition(ctx, id)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if booking.CreatedBy != user {
		if err = s.authorizeStaff(ctx, booking.RestaurantID); err != nil {
			return res, err
		}
	}

	switch booking.Status {
	case model.StatusPending:
	case model.StatusConfirmed:
		if !booking.StartsAfter(s.clock.Now()) {
			return res, ErrInvalidTransition
		}
	default:
		return res, ErrInvalidTransition
	}

	now := timezone.Now()
	booking.Status = model.StatusCancelled
	booking.CancelledAt = &now

	if req.Reason != constant.Empty {
		booking.CancelReason = &req.Reason
	}

	fields := map[string]any{
		model.FieldStatus:       booking.Status,
		model.FieldCancelledAt:  booking.CancelledAt,
		model.FieldCancelReason: booking.CancelReason,
	}

	return s.applyTransition(ctx, booking, fields, EventBookingCancelled)
}

// Complete marks a confirmed booking as honored once its slot has started.
func (s *serviceImpl) Complete(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Complete")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.settle(ctx, id, model.StatusCompleted, EventBookingCompleted)
}

// NoShow marks a confirmed booking as missed once its slot has started.
func (s *serviceImpl) NoShow(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".NoShow")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.settle(ctx, id, model.StatusNoShow, EventBookingNoShow)
}

// settle handles the two attendance outcomes, which share every rule except
// the resulting status.
func (s *serviceImpl) settle(ctx context.Context, id, status, event string) (res dto.BookingResponse, err error) {
	booking, err := s.getForTransition(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.authorizeStaff(ctx, booking.RestaurantID); err != nil {
		return res, err
	}

	if booking.Status != model.StatusConfirmed || booking.StartsAfter(s.clock.Now()) {
		return res, ErrInvalidTransition
	}

	booking.Status = status

	fields := map[string]any{
		model.FieldStatus: booking.Status,
	}

	return s.applyTransition(ctx, booking, fields, event)
}

func (s *serviceImpl) getForTransition(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found")
	}

	if booking.IsTerminal() {
		return booking, ErrInvalidTransition
	}

	return booking, nil
}

// authorizeStaff allows admins and the owner of the booking's restaurant.
func (s *serviceImpl) authorizeStaff(ctx context.Context, restaurantID string) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if role == constant.RoleAdmin {
		return nil
	}

	restaurant, err := s.restaurantRepo.Get(ctx, shared.FilterByID(restaurantID, restaurantModel.FieldID, restaurantModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get restaurant")

		return fmt.Errorf("failed to get restaurant: %w", err)
	}

	if restaurant.OwnerID != user {
		return failure.ResourceRestrictedError
	}

	return nil
}

func (s *serviceImpl) applyTransition(ctx context.Context, booking model.Booking, fields map[string]any, event string) (res dto.BookingResponse, err error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking.ModifiedAt = timezone.Now()
	booking.ModifiedBy = user

	fields[constant.FieldModifiedAt] = booking.ModifiedAt
	fields[constant.FieldModifiedBy] = booking.ModifiedBy

	err = s.repo.Update(ctx, fields, shared.FilterByID(booking.ID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return res, fmt.Errorf("failed to update booking: %w", err)
	}

	s.publishEvent(ctx, event, booking)
	s.invalidate(ctx, booking)

	res.FromModel(booking)

	return res, nil
}
