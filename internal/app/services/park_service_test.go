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

func TestParkServiceCRUD(t *testing.T) {
	store := newMemStore()
	service := NewParkService(memParks{store}, zerolog.Nop())
	ctx := context.Background()

	park, err := service.CreatePark(ctx, &dto.ParkRequest{ParkName: "Parque Aventura", Abbreviation: "PAA"})
	require.NoError(t, err)
	assert.NotZero(t, park.ID)

	_, err = service.CreatePark(ctx, &dto.ParkRequest{ParkName: "Parque Aventura", Abbreviation: "XXX"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicatePark)

	updated, err := service.UpdatePark(ctx, park.ID, &dto.ParkRequest{ParkName: "Parque Aventura Norte", Abbreviation: "PAN"})
	require.NoError(t, err)
	assert.Equal(t, "Parque Aventura Norte", updated.ParkName)

	_, err = service.GetParkByID(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestDeleteParkWithServersIsRejected(t *testing.T) {
	store := newMemStore()
	service := NewParkService(memParks{store}, zerolog.Nop())
	ctx := context.Background()

	park := store.addPark("Parque Aventura", "PAA")
	require.NoError(t, memServers{store}.CreateWithSeat(ctx, &models.SocialServer{
		Email:  "ana@example.com",
		Name:   "Ana Morales",
		ParkID: park.ID,
		Status: models.StatusActive,
	}))

	err := service.DeletePark(ctx, park.ID)
	assert.ErrorIs(t, err, apperrors.ErrParkHasServers)

	// Once its servers are gone the park can be deleted.
	servers, _, err := memServers{store}.List(ctx, &park.ID, nil, 0, 10)
	require.NoError(t, err)
	require.Len(t, servers, 1)
	require.NoError(t, memServers{store}.DeleteWithRelease(ctx, servers[0].ID))

	assert.NoError(t, service.DeletePark(ctx, park.ID))
}
