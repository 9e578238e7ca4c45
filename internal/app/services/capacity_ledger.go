package services

import (
	"context"

	"github.com/rs/zerolog"
)

// CapacityLedger is the seat accounting authority. All capacity mutations
// flow through its store, whose statements are atomic, so concurrent
// reservations can never oversell a schedule and current capacity never
// leaves the [0, capacity] range.
type CapacityLedger struct {
	seats  SeatStore
	logger zerolog.Logger
}

// NewCapacityLedger creates a new CapacityLedger
func NewCapacityLedger(seats SeatStore, logger zerolog.Logger) *CapacityLedger {
	return &CapacityLedger{
		seats:  seats,
		logger: logger,
	}
}

// Reserve takes one free seat from the schedule. It fails with
// apperrors.ErrCapacityExhausted when no seat is free.
func (l *CapacityLedger) Reserve(ctx context.Context, scheduleID int64) error {
	return l.seats.ReserveSeat(ctx, scheduleID)
}

// Release returns one seat to the schedule. A release against an already
// full schedule is clamped and logged rather than failed, so callers
// cleaning up after deletions never abort on a bookkeeping anomaly.
func (l *CapacityLedger) Release(ctx context.Context, scheduleID int64) error {
	clamped, err := l.seats.ReleaseSeat(ctx, scheduleID)
	if err != nil {
		return err
	}
	if clamped {
		l.logger.Warn().
			Int64("schedule_id", scheduleID).
			Msg("Seat release clamped at full capacity")
	}
	return nil
}

// Resize changes a schedule's capacity while preserving its assigned
// seats. It fails with apperrors.ErrCapacityBelowAssigned when the new
// capacity cannot hold the servers already assigned.
func (l *CapacityLedger) Resize(ctx context.Context, scheduleID int64, newCapacity int) error {
	return l.seats.ResizeCapacity(ctx, scheduleID, newCapacity)
}

// Transfer moves one occupied seat between schedules atomically. When the
// destination is full nothing changes on either side.
func (l *CapacityLedger) Transfer(ctx context.Context, fromID, toID int64) error {
	return l.seats.TransferSeat(ctx, fromID, toID)
}
