package services

import "github.com/mikelitos05/asistencias/internal/app/models"

// CapacityDelta describes the seat movement an enrollment change implies.
// A nil side means no seat moves there.
type CapacityDelta struct {
	ReleaseFrom *int64
	ReserveTo   *int64
}

// IsZero reports whether the change moves no seats at all.
func (d CapacityDelta) IsZero() bool {
	return d.ReleaseFrom == nil && d.ReserveTo == nil
}

// capacityDelta computes which schedules lose or gain a seat when a social
// server transitions from (oldStatus, oldSchedule) to (newStatus,
// newSchedule). Only an ACTIVE server with a schedule occupies a seat, so:
//
//   - occupying -> not occupying releases the old seat
//   - not occupying -> occupying reserves the new seat
//   - occupying -> occupying in a different schedule does both
//   - anything else moves nothing
func capacityDelta(oldStatus, newStatus models.Status, oldSchedule, newSchedule *int64) CapacityDelta {
	oldHolds := oldStatus == models.StatusActive && oldSchedule != nil
	newHolds := newStatus == models.StatusActive && newSchedule != nil

	switch {
	case oldHolds && !newHolds:
		return CapacityDelta{ReleaseFrom: oldSchedule}
	case !oldHolds && newHolds:
		return CapacityDelta{ReserveTo: newSchedule}
	case oldHolds && newHolds && *oldSchedule != *newSchedule:
		return CapacityDelta{ReleaseFrom: oldSchedule, ReserveTo: newSchedule}
	}

	return CapacityDelta{}
}
