package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mikelitos05/asistencias/internal/app/models"
)

func int64Ptr(v int64) *int64 { return &v }

func TestCapacityDelta(t *testing.T) {
	scheduleA := int64Ptr(1)
	scheduleB := int64Ptr(2)

	tests := []struct {
		name        string
		oldStatus   models.Status
		newStatus   models.Status
		oldSchedule *int64
		newSchedule *int64
		wantRelease *int64
		wantReserve *int64
	}{
		{
			name:      "inactive without schedule stays inactive",
			oldStatus: models.StatusInactive, newStatus: models.StatusInactive,
		},
		{
			name:      "active without schedule stays active",
			oldStatus: models.StatusActive, newStatus: models.StatusActive,
		},
		{
			name:      "active keeps the same schedule",
			oldStatus: models.StatusActive, newStatus: models.StatusActive,
			oldSchedule: scheduleA, newSchedule: scheduleA,
		},
		{
			name:      "inactive keeps its schedule reference",
			oldStatus: models.StatusInactive, newStatus: models.StatusInactive,
			oldSchedule: scheduleA, newSchedule: scheduleA,
		},
		{
			name:      "deactivation releases the seat",
			oldStatus: models.StatusActive, newStatus: models.StatusInactive,
			oldSchedule: scheduleA, newSchedule: scheduleA,
			wantRelease: scheduleA,
		},
		{
			name:      "activation reserves a seat",
			oldStatus: models.StatusInactive, newStatus: models.StatusActive,
			oldSchedule: scheduleA, newSchedule: scheduleA,
			wantReserve: scheduleA,
		},
		{
			name:      "active server loses its schedule",
			oldStatus: models.StatusActive, newStatus: models.StatusActive,
			oldSchedule: scheduleA, newSchedule: nil,
			wantRelease: scheduleA,
		},
		{
			name:      "active server gains a schedule",
			oldStatus: models.StatusActive, newStatus: models.StatusActive,
			oldSchedule: nil, newSchedule: scheduleB,
			wantReserve: scheduleB,
		},
		{
			name:      "active server moves between schedules",
			oldStatus: models.StatusActive, newStatus: models.StatusActive,
			oldSchedule: scheduleA, newSchedule: scheduleB,
			wantRelease: scheduleA, wantReserve: scheduleB,
		},
		{
			name:      "inactive server moves between schedules",
			oldStatus: models.StatusInactive, newStatus: models.StatusInactive,
			oldSchedule: scheduleA, newSchedule: scheduleB,
		},
		{
			name:      "deactivation while changing schedule releases the old seat",
			oldStatus: models.StatusActive, newStatus: models.StatusInactive,
			oldSchedule: scheduleA, newSchedule: scheduleB,
			wantRelease: scheduleA,
		},
		{
			name:      "activation while changing schedule reserves the new seat",
			oldStatus: models.StatusInactive, newStatus: models.StatusActive,
			oldSchedule: scheduleA, newSchedule: scheduleB,
			wantReserve: scheduleB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta := capacityDelta(tt.oldStatus, tt.newStatus, tt.oldSchedule, tt.newSchedule)

			assert.Equal(t, tt.wantRelease, delta.ReleaseFrom)
			assert.Equal(t, tt.wantReserve, delta.ReserveTo)
			assert.Equal(t, tt.wantRelease == nil && tt.wantReserve == nil, delta.IsZero())
		})
	}
}
