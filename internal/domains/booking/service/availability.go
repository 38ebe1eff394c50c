package service

import (
	"tavolo/internal/domains/booking/model"
	tableModel "tavolo/internal/domains/table/model"
	"tavolo/shared/timeslot"
)

// slotAvailability is the per-slot result of an availability pass.
type slotAvailability struct {
	Time             string
	AvailableTables  int
	TotalTables      int
	IsAvailable      bool
	EligibleTableIDs []string
}

// computeAvailability derives, for every candidate slot, how many tables
// remain free once non-cancelled bookings are laid over the inventory, and
// which specific tables can still seat the party.
//
// Intervals are half-open: a booking ending exactly when a slot starts does
// not block it. Inactive tables never count. When the data is inconsistent
// (more overlapping bookings than tables) availability clamps to zero rather
// than going negative.
func computeAvailability(tables []tableModel.Table, bookings []model.Booking, candidateSlots []string, defaultDuration, partySize int) ([]slotAvailability, error) {
	active := make([]tableModel.Table, 0, len(tables))
	for _, t := range tables {
		if t.Active {
			active = append(active, t)
		}
	}

	totalTables := len(active)

	type interval struct {
		tableID    string
		start, end int
	}

	occupied := make([]interval, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == model.StatusCancelled {
			continue
		}

		start, end, err := b.Interval()
		if err != nil {
			return nil, err
		}

		occupied = append(occupied, interval{tableID: b.TableID, start: start, end: end})
	}

	slots := make([]slotAvailability, 0, len(candidateSlots))

	for _, slot := range candidateSlots {
		slotStart, err := timeslot.ToMinutes(slot)
		if err != nil {
			return nil, err
		}
		slotEnd := slotStart + defaultDuration

		blocked := make(map[string]bool, len(occupied))
		overlapping := 0

		for _, occ := range occupied {
			if timeslot.Overlaps(slotStart, slotEnd, occ.start, occ.end) {
				overlapping++
				blocked[occ.tableID] = true
			}
		}

		available := max(0, totalTables-overlapping)

		var eligible []string
		for _, t := range active {
			if blocked[t.ID] {
				continue
			}

			if partySize > 0 && t.Capacity < partySize {
				continue
			}

			eligible = append(eligible, t.ID)
		}

		isAvailable := available > 0
		if partySize > 0 {
			// Aggregate counts are insufficient once table capacities
			// differ: the party needs one concrete table that fits.
			isAvailable = isAvailable && len(eligible) > 0
		}

		slots = append(slots, slotAvailability{
			Time:             slot,
			AvailableTables:  available,
			TotalTables:      totalTables,
			IsAvailable:      isAvailable,
			EligibleTableIDs: eligible,
		})
	}

	return slots, nil
}

// slotFitsWindow reports whether a slot plus its duration lies fully inside
// the [open, close) working window.
func slotFitsWindow(slot string, duration, open, close int) bool {
	start, err := timeslot.ToMinutes(slot)
	if err != nil {
		return false
	}

	return start >= open && start+duration <= close
}
