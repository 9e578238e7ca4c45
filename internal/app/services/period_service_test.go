package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikelitos05/asistencias/internal/app/models/dto"
	"github.com/mikelitos05/asistencias/internal/pkg/apperrors"
)

func TestPeriodService(t *testing.T) {
	store := newMemStore()
	service := NewPeriodService(memPeriods{db: store}, zerolog.Nop())
	ctx := context.Background()

	created, err := service.CreatePeriod(ctx, &dto.PeriodRequest{
		Name:      "SEP-MAR 2025",
		StartDate: "2025-09-01",
		EndDate:   "2026-03-31",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := service.GetPeriodByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "SEP-MAR 2025", got.Name)

	all, err := service.GetAllPeriods(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	t.Run("rejects inverted dates", func(t *testing.T) {
		_, err := service.CreatePeriod(ctx, &dto.PeriodRequest{
			Name:      "Invertido",
			StartDate: "2026-03-31",
			EndDate:   "2025-09-01",
		})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		_, err := service.CreatePeriod(ctx, &dto.PeriodRequest{
			Name:      "Malformado",
			StartDate: "01/09/2025",
			EndDate:   "2026-03-31",
		})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("unknown id returns not found", func(t *testing.T) {
		_, err := service.GetPeriodByID(ctx, 999)
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	})
}
