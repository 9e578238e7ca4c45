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
)

// ParkService defines the interface for park operations
type ParkService interface {
	CreatePark(ctx context.Context, req *dto.ParkRequest) (*models.Park, error)
	GetParkByID(ctx context.Context, id int64) (*models.Park, error)
	GetAllParks(ctx context.Context) ([]*models.Park, error)
	UpdatePark(ctx context.Context, id int64, req *dto.ParkRequest) (*models.Park, error)
	DeletePark(ctx context.Context, id int64) error
}

// parkServiceImpl implements ParkService
type parkServiceImpl struct {
	parks  ParkStore
	logger zerolog.Logger
}

// NewParkService creates a new ParkService
func NewParkService(parks ParkStore, logger zerolog.Logger) ParkService {
	return &parkServiceImpl{
		parks:  parks,
		logger: logger,
	}
}

// CreatePark creates a new park
func (s *parkServiceImpl) CreatePark(ctx context.Context, req *dto.ParkRequest) (*models.Park, error) {
	park := &models.Park{
		ParkName:     req.ParkName,
		Abbreviation: req.Abbreviation,
	}

	if err := s.parks.Create(ctx, park); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("park_id", park.ID).Str("name", park.ParkName).Msg("Park created")
	return park, nil
}

// GetParkByID retrieves a park by ID
func (s *parkServiceImpl) GetParkByID(ctx context.Context, id int64) (*models.Park, error) {
	park, err := s.parks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrParkNotFound) {
			return nil, apperrors.NewResourceNotFoundError("park not found")
		}
		return nil, err
	}
	return park, nil
}

// GetAllParks retrieves all parks
func (s *parkServiceImpl) GetAllParks(ctx context.Context) ([]*models.Park, error) {
	parks, err := s.parks.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing parks: %w", err)
	}
	return parks, nil
}

// UpdatePark updates a park's name and abbreviation
func (s *parkServiceImpl) UpdatePark(ctx context.Context, id int64, req *dto.ParkRequest) (*models.Park, error) {
	park := &models.Park{
		ID:           id,
		ParkName:     req.ParkName,
		Abbreviation: req.Abbreviation,
	}

	if err := s.parks.Update(ctx, park); err != nil {
		if errors.Is(err, repositories.ErrParkNotFound) {
			return nil, apperrors.NewResourceNotFoundError("park not found")
		}
		return nil, err
	}

	return park, nil
}

// DeletePark deletes a park without social servers assigned
func (s *parkServiceImpl) DeletePark(ctx context.Context, id int64) error {
	if err := s.parks.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrParkNotFound) {
			return apperrors.NewResourceNotFoundError("park not found")
		}
		return err
	}

	s.logger.Info().Int64("park_id", id).Msg("Park deleted")
	return nil
}
