package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikelitos05/asistencias/internal/app/models"
	"github.com/mikelitos05/asistencias/internal/app/models/dto"
	"github.com/mikelitos05/asistencias/internal/pkg/apperrors"
)

type catalogFixture struct {
	store   *memStore
	service CatalogService
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()
	store := newMemStore()
	schedules := memSchedules{store}
	ledger := NewCapacityLedger(schedules, zerolog.Nop())
	service := NewCatalogService(memPrograms{store}, schedules, memParks{store}, ledger, zerolog.Nop())
	return &catalogFixture{store: store, service: service}
}

func TestCreateProgramWithParks(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	parkA := f.store.addPark("Parque Aventura", "PAA")
	parkB := f.store.addPark("Parque Norte", "PNO")

	resp, err := f.service.CreateProgram(ctx, &dto.ProgramRequest{
		Name:    "Tu Parque Consentido",
		ParkIDs: []int64{parkA.ID, parkB.ID},
	})
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Len(t, resp.Parks, 2)
	assert.Zero(t, resp.TotalCapacity)

	_, err = f.service.CreateProgram(ctx, &dto.ProgramRequest{Name: "Otro", ParkIDs: []int64{999}})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestAddSchedule(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	park := f.store.addPark("Parque Aventura", "PAA")
	orphan := f.store.addPark("Parque Norte", "PNO")
	program := f.store.addProgram("Tu Parque Consentido", park.ID)

	schedule, err := f.service.AddSchedule(ctx, program.ID, &dto.ScheduleRequest{
		ParkID:    park.ID,
		Days:      "L-V",
		StartTime: "15:00",
		EndTime:   "19:00",
		Capacity:  20,
	})
	require.NoError(t, err)
	assert.Equal(t, 20, schedule.Capacity)
	assert.Equal(t, 20, schedule.CurrentCapacity)

	t.Run("park not associated", func(t *testing.T) {
		_, err := f.service.AddSchedule(ctx, program.ID, &dto.ScheduleRequest{
			ParkID: orphan.ID, Days: "L-V", StartTime: "15:00", EndTime: "19:00", Capacity: 20,
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidAssociation)
	})

	t.Run("duplicate slot", func(t *testing.T) {
		_, err := f.service.AddSchedule(ctx, program.ID, &dto.ScheduleRequest{
			ParkID: park.ID, Days: "L-V", StartTime: "15:00", EndTime: "19:00", Capacity: 20,
		})
		assert.ErrorIs(t, err, apperrors.ErrResourceAlreadyExists)
	})

	t.Run("invalid slot", func(t *testing.T) {
		_, err := f.service.AddSchedule(ctx, program.ID, &dto.ScheduleRequest{
			ParkID: park.ID, Days: "L-V", StartTime: "19:00", EndTime: "15:00", Capacity: 20,
		})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)

		_, err = f.service.AddSchedule(ctx, program.ID, &dto.ScheduleRequest{
			ParkID: park.ID, Days: "L-V", StartTime: "25:00", EndTime: "26:00", Capacity: 20,
		})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})
}

func TestUpdateScheduleResize(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	park := f.store.addPark("Parque Aventura", "PAA")
	program := f.store.addProgram("Tu Parque Consentido", park.ID)
	association := f.store.associationOf(program.ID, park.ID)
	schedule := f.store.addSchedule(association.ID, "L-V", "15:00", "19:00", 5)

	// Three servers hold seats.
	for i := 0; i < 3; i++ {
		require.NoError(t, memSchedules{f.store}.ReserveSeat(ctx, schedule.ID))
	}

	req := &dto.ScheduleRequest{
		ParkID: park.ID, Days: "L-V", StartTime: "15:00", EndTime: "19:00", Capacity: 3,
	}
	info, err := f.service.UpdateSchedule(ctx, program.ID, schedule.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 3, info.Capacity)
	assert.Equal(t, 0, info.CurrentCapacity)

	req.Capacity = 2
	_, err = f.service.UpdateSchedule(ctx, program.ID, schedule.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrCapacityBelowAssigned)

	// A rejected shrink combined with a slot change leaves both untouched.
	req.Days = "S-D"
	req.StartTime = "09:00"
	req.EndTime = "13:00"
	_, err = f.service.UpdateSchedule(ctx, program.ID, schedule.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrCapacityBelowAssigned)
	stored := f.store.schedules[schedule.ID]
	assert.Equal(t, "L-V", stored.Days)
	assert.Equal(t, "15:00", stored.StartTime)
	assert.Equal(t, 3, stored.Capacity)

	req.Days, req.StartTime, req.EndTime = "L-V", "15:00", "19:00"
	otherProgram := f.store.addProgram("Otro Programa", park.ID)
	_, err = f.service.UpdateSchedule(ctx, otherProgram.ID, schedule.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAssociation)
}

func TestDeleteScheduleDetachesServers(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	park := f.store.addPark("Parque Aventura", "PAA")
	program := f.store.addProgram("Tu Parque Consentido", park.ID)
	association := f.store.associationOf(program.ID, park.ID)
	schedule := f.store.addSchedule(association.ID, "L-V", "15:00", "19:00", 5)

	server := &models.SocialServer{
		Email: "ana@example.com", Name: "Ana Morales",
		ParkID: park.ID, ScheduleID: &schedule.ID, Status: models.StatusActive,
	}
	require.NoError(t, memServers{f.store}.CreateWithSeat(ctx, server))

	affected, err := f.service.DeleteSchedule(ctx, program.ID, schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana Morales"}, affected)

	// The server stays enrolled but holds no schedule anymore.
	stored := f.store.server(server.ID)
	require.NotNil(t, stored)
	assert.Nil(t, stored.ScheduleID)
}

func TestDeleteProgramDetachesServers(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	park := f.store.addPark("Parque Aventura", "PAA")
	program := f.store.addProgram("Tu Parque Consentido", park.ID)
	association := f.store.associationOf(program.ID, park.ID)
	schedule := f.store.addSchedule(association.ID, "L-V", "15:00", "19:00", 5)

	server := &models.SocialServer{
		Email: "ana@example.com", Name: "Ana Morales",
		ParkID: park.ID, ScheduleID: &schedule.ID, Status: models.StatusActive,
	}
	require.NoError(t, memServers{f.store}.CreateWithSeat(ctx, server))

	affected, err := f.service.DeleteProgram(ctx, program.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana Morales"}, affected)

	_, err = f.service.GetProgramByID(ctx, program.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.Nil(t, f.store.server(server.ID).ScheduleID)
}

func TestUpdateProgramReconcilesParks(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	parkA := f.store.addPark("Parque Aventura", "PAA")
	parkB := f.store.addPark("Parque Norte", "PNO")
	program := f.store.addProgram("Tu Parque Consentido", parkA.ID)
	association := f.store.associationOf(program.ID, parkA.ID)
	schedule := f.store.addSchedule(association.ID, "L-V", "15:00", "19:00", 5)

	server := &models.SocialServer{
		Email: "ana@example.com", Name: "Ana Morales",
		ParkID: parkA.ID, ScheduleID: &schedule.ID, Status: models.StatusActive,
	}
	require.NoError(t, memServers{f.store}.CreateWithSeat(ctx, server))

	// Replace park A with park B: A's schedules go away, B gets associated.
	resp, err := f.service.UpdateProgram(ctx, program.ID, &dto.ProgramRequest{
		Name:    "Tu Parque Consentido",
		ParkIDs: []int64{parkB.ID},
	})
	require.NoError(t, err)

	require.Len(t, resp.Parks, 1)
	assert.Equal(t, parkB.ID, resp.Parks[0].ID)
	assert.Nil(t, f.store.server(server.ID).ScheduleID)
}

func TestResolveScheduleForAssociation(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	park := f.store.addPark("Parque Aventura", "PAA")
	program := f.store.addProgram("Tu Parque Consentido")

	// No association and no schedule yet: both get created.
	first, err := f.service.ResolveScheduleForAssociation(ctx, program.ID, park.ID, "L-V", "15:00", "19:00", 50)
	require.NoError(t, err)
	assert.Equal(t, 50, first.Capacity)
	require.NotNil(t, f.store.associationOf(program.ID, park.ID))

	// Resolving the same slot again yields the same schedule.
	second, err := f.service.ResolveScheduleForAssociation(ctx, program.ID, park.ID, "L-V", "15:00", "19:00", 50)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// A different slot under the same association is a new schedule.
	third, err := f.service.ResolveScheduleForAssociation(ctx, program.ID, park.ID, "S-D", "09:00", "13:00", 50)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestProgramCapacityAggregation(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	park := f.store.addPark("Parque Aventura", "PAA")
	program := f.store.addProgram("Tu Parque Consentido", park.ID)
	association := f.store.associationOf(program.ID, park.ID)

	f.store.addSchedule(association.ID, "L-V", "15:00", "19:00", 20)
	second := f.store.addSchedule(association.ID, "S-D", "09:00", "13:00", 10)
	require.NoError(t, memSchedules{f.store}.ReserveSeat(ctx, second.ID))

	resp, err := f.service.GetProgramByID(ctx, program.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, resp.TotalCapacity)
	assert.Equal(t, 29, resp.CurrentCapacity)
}
