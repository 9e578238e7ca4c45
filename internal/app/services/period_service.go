package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mikelitos05/asistencias/internal/app/models"
	"github.com/mikelitos05/asistencias/internal/app/models/dto"
	"github.com/mikelitos05/asistencias/internal/app/repositories"
	"github.com/mikelitos05/asistencias/internal/pkg/apperrors"
	"github.com/mikelitos05/asistencias/internal/pkg/helpers"
)

// PeriodService defines the interface for service-term operations
type PeriodService interface {
	CreatePeriod(ctx context.Context, req *dto.PeriodRequest) (*models.Period, error)
	GetPeriodByID(ctx context.Context, id int64) (*models.Period, error)
	GetAllPeriods(ctx context.Context) ([]*models.Period, error)
}

// periodServiceImpl implements PeriodService
type periodServiceImpl struct {
	periods PeriodStore
	logger  zerolog.Logger
}

// NewPeriodService creates a new PeriodService
func NewPeriodService(periods PeriodStore, logger zerolog.Logger) PeriodService {
	return &periodServiceImpl{
		periods: periods,
		logger:  logger,
	}
}

// CreatePeriod creates a new service period
func (s *periodServiceImpl) CreatePeriod(ctx context.Context, req *dto.PeriodRequest) (*models.Period, error) {
	startDate, err := helpers.ParseDate(req.StartDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	endDate, err := helpers.ParseDate(req.EndDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	if !startDate.Before(*endDate) {
		return nil, apperrors.NewBadRequestError("startDate must be before endDate")
	}

	period := &models.Period{
		Name:      req.Name,
		StartDate: *startDate,
		EndDate:   *endDate,
	}
	if err := s.periods.Create(ctx, period); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("period_id", period.ID).Str("name", period.Name).Msg("Period created")
	return period, nil
}

// GetPeriodByID retrieves a period by ID
func (s *periodServiceImpl) GetPeriodByID(ctx context.Context, id int64) (*models.Period, error) {
	period, err := s.periods.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPeriodNotFound) {
			return nil, apperrors.NewResourceNotFoundError("period not found")
		}
		return nil, err
	}
	return period, nil
}

// GetAllPeriods retrieves all periods
func (s *periodServiceImpl) GetAllPeriods(ctx context.Context) ([]*models.Period, error) {
	periods, err := s.periods.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing periods: %w", err)
	}
	return periods, nil
}
