package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"tavolo/config"
	"tavolo/infras/kafka"
	"tavolo/infras/otel"
	"tavolo/internal/domains/booking/model"
	"tavolo/internal/domains/booking/model/dto"
	"tavolo/internal/domains/booking/repository"
	restaurantModel "tavolo/internal/domains/restaurant/model"
	restaurantRepo "tavolo/internal/domains/restaurant/repository"
	tableModel "tavolo/internal/domains/table/model"
	tableRepo "tavolo/internal/domains/table/repository"
	"tavolo/shared"
	"tavolo/shared/cache"
	"tavolo/shared/clock"
	"tavolo/shared/constant"
	gDto "tavolo/shared/dto"
	"tavolo/shared/failure"
	"tavolo/shared/keylock"
	"tavolo/shared/timeslot"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
	cacheAvailability  = "booking:availability"
)

type Booking interface {
	GetAvailability(ctx context.Context, restaurantID, date string, partySize int) (dto.GetAvailabilityResponse, error)
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Confirm(ctx context.Context, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, req dto.CancelBookingRequest, id string) (dto.BookingResponse, error)
	Complete(ctx context.Context, id string) (dto.BookingResponse, error)
	NoShow(ctx context.Context, id string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo           repository.Booking
	tableRepo      tableRepo.Table
	restaurantRepo restaurantRepo.Restaurant
	cfg            *config.Config
	cache          cache.RedisCache
	otel           otel.Otel
	kafka          kafka.Client
	clock          clock.Clock

	// admissions for the same restaurant and date run one at a time; the
	// exclusion constraint in storage backstops multi-instance deployments
	locks *keylock.KeyLock
}

func New(repo repository.Booking, tableRepo tableRepo.Table, restaurantRepo restaurantRepo.Restaurant, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, kafka kafka.Client, clock clock.Clock) Booking {
	return &serviceImpl{
		repo:           repo,
		tableRepo:      tableRepo,
		restaurantRepo: restaurantRepo,
		cfg:            cfg,
		cache:          cache,
		otel:           otel,
		kafka:          kafka,
		clock:          clock,
		locks:          keylock.New(),
	}
}

func (s *serviceImpl) GetAvailability(ctx context.Context, restaurantID, date string, partySize int) (res dto.GetAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	bookingDate, err := time.Parse(constant.CalendarFormat, date)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format, expected YYYY-MM-DD: %v", err))
	}

	cacheKey := shared.BuildCacheKey(cacheAvailability, restaurantID, date, strconv.Itoa(partySize))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for availability")

		return res, nil
	}

	restaurant, err := s.getBookableRestaurant(ctx, restaurantID)
	if err != nil {
		return res, err
	}

	slots, err := s.computeSlots(ctx, restaurant, bookingDate, partySize)
	if err != nil {
		return res, err
	}

	res = dto.GetAvailabilityResponse{
		RestaurantID: restaurantID,
		Date:         date,
		PartySize:    partySize,
		Slots:        make([]dto.TimeSlotResponse, 0, len(slots)),
	}

	cutoff := s.clock.Now().Add(time.Duration(restaurant.BookingSettings.MinAdvanceBookingHours) * time.Hour)
	horizon := s.clock.Now().AddDate(0, 0, restaurant.BookingSettings.MaxAdvanceBookingDays)

	for _, slot := range slots {
		entry := dto.TimeSlotResponse{
			Time:             slot.Time,
			AvailableTables:  slot.AvailableTables,
			TotalTables:      slot.TotalTables,
			IsAvailable:      slot.IsAvailable,
			EligibleTableIDs: slot.EligibleTableIDs,
		}

		// Slots outside the advance window are shown but never bookable.
		if !withinAdvanceWindow(bookingDate, slot.Time, cutoff, horizon) {
			entry.IsAvailable = false
			entry.EligibleTableIDs = nil
		}

		res.Slots = append(res.Slots, entry)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save availability to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	bookingDate, err := time.Parse(constant.CalendarFormat, req.Date)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format, expected YYYY-MM-DD: %v", err))
	}

	restaurant, err := s.getBookableRestaurant(ctx, req.RestaurantID)
	if err != nil {
		return res, err
	}

	cutoff := s.clock.Now().Add(time.Duration(restaurant.BookingSettings.MinAdvanceBookingHours) * time.Hour)
	horizon := s.clock.Now().AddDate(0, 0, restaurant.BookingSettings.MaxAdvanceBookingDays)

	if !withinAdvanceWindow(bookingDate, req.TimeSlot, cutoff, horizon) {
		return res, ErrAdvanceWindow
	}

	table, err := s.tableRepo.Get(ctx, shared.FilterByID(req.TableID, tableModel.FieldID, tableModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get table")

		return res, fmt.Errorf("failed to get table: %w", err)
	}

	if table.ID == constant.Empty || table.RestaurantID != req.RestaurantID || !table.Active {
		return res, failure.BadRequestFromString("table does not exist for this restaurant")
	}

	maxParty := table.Capacity
	if restaurant.BookingSettings.MaxPartySize > 0 && restaurant.BookingSettings.MaxPartySize < maxParty {
		maxParty = restaurant.BookingSettings.MaxPartySize
	}

	if req.PartySize < 1 || req.PartySize > maxParty {
		return res, ErrCapacity
	}

	// Serialize the recheck-then-insert against concurrent admissions for
	// the same restaurant and date.
	s.locks.Lock(req.RestaurantID, req.Date)
	defer s.locks.Unlock(req.RestaurantID, req.Date)

	free, err := s.slotStillFree(ctx, restaurant, bookingDate, req)
	if err != nil {
		return res, err
	}

	if !free {
		return res, ErrSlotNoLongerAvailable
	}

	if !restaurant.BookingSettings.EnableOnlineBooking {
		return res, ErrBookingDisabled
	}

	status := model.StatusPending
	if restaurant.BookingSettings.AutoConfirmBookings {
		status = model.StatusConfirmed
	}

	code, err := s.uniqueConfirmationCode(ctx, req.RestaurantID)
	if err != nil {
		return res, err
	}

	booking, err := req.ToModel(user, code, status, s.bookingDuration(restaurant.BookingSettings))
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid booking request: %v", err))
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrSlotConflict) {
			return res, ErrSlotNoLongerAvailable
		}

		if errors.Is(err, repository.ErrDuplicateCode) {
			return res, failure.Conflict("failed to allocate a confirmation code, please retry")
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.publishEvent(ctx, EventBookingCreated, booking)
	s.invalidate(ctx, booking)

	scope.AddEvent("Booking admitted with code " + code)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found")
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

// getBookableRestaurant loads a restaurant and hides listings that are not
// approved or active.
func (s *serviceImpl) getBookableRestaurant(ctx context.Context, id string) (restaurantModel.Restaurant, error) {
	restaurant, err := s.restaurantRepo.Get(ctx, shared.FilterByID(id, restaurantModel.FieldID, restaurantModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get restaurant")

		return restaurant, fmt.Errorf("failed to get restaurant: %w", err)
	}

	if restaurant.ID == constant.Empty || restaurant.Status != restaurantModel.StatusApproved || !restaurant.Active {
		return restaurant, failure.NotFound("restaurant not found")
	}

	return restaurant, nil
}

// computeSlots runs a full availability pass for the date: the configured
// operating window intersected with the day's working hours, laid over the
// active tables and non-cancelled bookings.
func (s *serviceImpl) computeSlots(ctx context.Context, restaurant restaurantModel.Restaurant, bookingDate time.Time, partySize int) ([]slotAvailability, error) {
	duration := s.bookingDuration(restaurant.BookingSettings)

	candidates, err := timeslot.Sequence(
		s.cfg.App.Booking.SlotWindowStart,
		s.cfg.App.Booking.SlotWindowEnd,
		s.cfg.App.Booking.SlotGranularityMinutes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate candidate slots: %w", err)
	}

	day, ok := restaurant.WorkingHours.ForDate(bookingDate)
	if !ok || !day.IsOpen {
		return []slotAvailability{}, nil
	}

	open, err := timeslot.ToMinutes(day.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("invalid working hours open time: %w", err)
	}

	close, err := timeslot.ToMinutes(day.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("invalid working hours close time: %w", err)
	}

	inWindow := make([]string, 0, len(candidates))
	for _, slot := range candidates {
		if slotFitsWindow(slot, duration, open, close) {
			inWindow = append(inWindow, slot)
		}
	}

	tables, err := s.tableRepo.GetAll(ctx, gDto.QueryParams{}, tablesOfRestaurantFilter(restaurant.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to list tables")

		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, gDto.QueryParams{}, bookingsOnDateFilter(restaurant.ID, bookingDate))
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings")

		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	slots, err := computeAvailability(tables, bookings, inWindow, duration, partySize)
	if err != nil {
		return nil, fmt.Errorf("failed to compute availability: %w", err)
	}

	return slots, nil
}

// bookingDuration returns the restaurant's seating duration, or the
// configured default when the listing does not set one.
func (s *serviceImpl) bookingDuration(settings restaurantModel.BookingSettings) int {
	if settings.BookingDurationMinutes > 0 {
		return settings.BookingDurationMinutes
	}

	return s.cfg.App.Booking.DefaultDurationMinutes
}

// slotStillFree recomputes availability from storage and checks the chosen
// slot and table; client-supplied snapshots are never trusted.
func (s *serviceImpl) slotStillFree(ctx context.Context, restaurant restaurantModel.Restaurant, bookingDate time.Time, req dto.CreateBookingRequest) (bool, error) {
	slots, err := s.computeSlots(ctx, restaurant, bookingDate, req.PartySize)
	if err != nil {
		return false, err
	}

	for _, slot := range slots {
		if slot.Time != req.TimeSlot {
			continue
		}

		for _, tableID := range slot.EligibleTableIDs {
			if tableID == req.TableID {
				return true, nil
			}
		}

		return false, nil
	}

	return false, nil
}

// uniqueConfirmationCode generates codes until one is unused within the
// restaurant, bounded by the configured attempt budget.
func (s *serviceImpl) uniqueConfirmationCode(ctx context.Context, restaurantID string) (string, error) {
	for attempt := 0; attempt < s.cfg.App.Booking.CodeMaxAttempts; attempt++ {
		code, err := generateConfirmationCode(s.cfg.App.Booking.CodeLength)
		if err != nil {
			return "", err
		}

		taken, err := s.repo.Exist(ctx, confirmationCodeFilter(restaurantID, code))
		if err != nil {
			log.Error().Err(err).Msg("failed to check confirmation code")

			return "", fmt.Errorf("failed to check confirmation code: %w", err)
		}

		if !taken {
			return code, nil
		}
	}

	return "", failure.Conflict("failed to allocate a confirmation code, please retry")
}

func (s *serviceImpl) invalidate(ctx context.Context, booking model.Booking) {
	// The availability view for the booking's restaurant and date is cleared
	// before the mutation returns; a query issued right after must not see
	// the stale cached view. List and count caches may lag behind.
	date := booking.BookingDate.Format(constant.CalendarFormat)
	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(cacheAvailability, booking.RestaurantID, date))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, booking.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

// withinAdvanceWindow reports whether the slot's venue-local start instant
// falls inside [cutoff, horizon].
func withinAdvanceWindow(bookingDate time.Time, slot string, cutoff, horizon time.Time) bool {
	start, err := timeslot.ToMinutes(slot)
	if err != nil {
		return false
	}

	slotStart := time.Date(
		bookingDate.Year(), bookingDate.Month(), bookingDate.Day(),
		start/60, start%60, 0, 0, cutoff.Location(),
	)

	return !slotStart.Before(cutoff) && !slotStart.After(horizon)
}

func tablesOfRestaurantFilter(restaurantID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    tableModel.FieldRestaurantID,
				Operator: gDto.FilterOperatorEq,
				Value:    restaurantID,
				Table:    tableModel.TableName,
			},
			gDto.Filter{
				Field:    tableModel.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    tableModel.TableName,
			},
		},
	}
}

func bookingsOnDateFilter(restaurantID string, bookingDate time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRestaurantID,
				Operator: gDto.FilterOperatorEq,
				Value:    restaurantID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldBookingDate,
				Operator: gDto.FilterOperatorEq,
				Value:    bookingDate.Format(constant.CalendarFormat),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorNotEq,
				ArgName:  "exclude_status",
				Value:    model.StatusCancelled,
				Table:    model.TableName,
			},
		},
	}
}

func confirmationCodeFilter(restaurantID, code string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRestaurantID,
				Operator: gDto.FilterOperatorEq,
				Value:    restaurantID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldConfirmationCode,
				Operator: gDto.FilterOperatorEq,
				Value:    code,
				Table:    model.TableName,
			},
		},
	}
}
