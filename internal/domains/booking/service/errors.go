package service

import "tavolo/shared/failure"

// Admission and lifecycle failure modes, surfaced verbatim to the caller.
var (
	ErrAdvanceWindow = failure.UnprocessableEntity("booking date is outside the restaurant's advance booking window")

	ErrCapacity = failure.UnprocessableEntity("party size exceeds the table or restaurant capacity")

	// ErrSlotNoLongerAvailable means a race was lost: the caller should
	// re-fetch availability and pick again, never retry the same write.
	ErrSlotNoLongerAvailable = failure.Conflict("the requested time slot is no longer available")

	ErrBookingDisabled = failure.UnprocessableEntity("online booking is disabled for this restaurant")

	ErrInvalidTransition = failure.Conflict("the booking status does not allow this transition")
)
