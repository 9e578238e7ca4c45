package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mikelitos05/asistencias/internal/app/models"
	"github.com/mikelitos05/asistencias/internal/app/models/dto"
	"github.com/mikelitos05/asistencias/internal/app/repositories"
	"github.com/mikelitos05/asistencias/internal/pkg/apperrors"
	"github.com/mikelitos05/asistencias/internal/pkg/filestorage"
	"github.com/mikelitos05/asistencias/internal/pkg/helpers"
)

const (
	checkInMessage  = "Entrada registrada exitosamente"
	checkOutMessage = "Salida registrada exitosamente"
)

// AttendancePolicy holds the recording policy knobs from configuration.
type AttendancePolicy struct {
	// EnforceParkMatch rejects registrations at a park the social server is
	// not assigned to.
	EnforceParkMatch bool
	// RequirePhoto rejects registrations without a photo upload.
	RequirePhoto bool
}

// AttendanceService defines the interface for attendance operations
type AttendanceService interface {
	RecordAttendance(ctx context.Context, req *dto.AttendanceRequest, photo *multipart.FileHeader) (*dto.AttendanceResponse, error)
	GetAttendances(ctx context.Context, socialServerID int64, page, size int) (*dto.PagedResponse, error)
}

// attendanceServiceImpl implements AttendanceService
type attendanceServiceImpl struct {
	attendances AttendanceStore
	servers     SocialServerStore
	parks       ParkStore
	photos      filestorage.PhotoStorage
	policy      AttendancePolicy
	logger      zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(
	attendances AttendanceStore,
	servers SocialServerStore,
	parks ParkStore,
	photos filestorage.PhotoStorage,
	policy AttendancePolicy,
	logger zerolog.Logger,
) AttendanceService {
	return &attendanceServiceImpl{
		attendances: attendances,
		servers:     servers,
		parks:       parks,
		photos:      photos,
		policy:      policy,
		logger:      logger,
	}
}

// RecordAttendance registers a check-in or check-out for a social server.
// When the request carries no explicit type, the event alternates from the
// latest recorded one: an empty history yields CHECK_IN, anything else
// yields the opposite of the latest event. The photo is stored before the
// database transaction runs, so a storage failure leaves no half-recorded
// event.
func (s *attendanceServiceImpl) RecordAttendance(ctx context.Context, req *dto.AttendanceRequest, photo *multipart.FileHeader) (*dto.AttendanceResponse, error) {
	server, err := s.servers.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrSocialServerNotFound) {
			return nil, apperrors.NewResourceNotFoundError("social server not found")
		}
		return nil, err
	}

	park, err := s.parks.GetByID(ctx, req.ParkID)
	if err != nil {
		if errors.Is(err, repositories.ErrParkNotFound) {
			return nil, apperrors.NewResourceNotFoundError("park not found")
		}
		return nil, err
	}

	if s.policy.EnforceParkMatch && server.ParkID != req.ParkID {
		return nil, apperrors.ErrParkMismatch
	}

	var explicitType models.AttendanceType
	if req.Type != "" {
		explicitType = models.AttendanceType(strings.ToUpper(req.Type))
		if !explicitType.IsValid() {
			return nil, apperrors.ErrInvalidAttendanceType
		}
	}

	if s.policy.RequirePhoto && photo == nil {
		return nil, apperrors.ErrMissingPhoto
	}

	var photoPath string
	if photo != nil {
		photoPath, err = s.photos.SavePhoto(photo, "attendance")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageFailure, err)
		}
	}

	attendance := &models.Attendance{
		SocialServerID: server.ID,
		ParkID:         req.ParkID,
		Timestamp:      time.Now(),
		Type:           explicitType,
		PhotoPath:      photoPath,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Address:        req.Address,
	}

	if err := s.attendances.Create(ctx, attendance); err != nil {
		// The event never landed; remove the orphaned photo.
		if photoPath != "" {
			if delErr := s.photos.DeletePhoto(photoPath); delErr != nil {
				s.logger.Error().Err(delErr).Str("photo_path", photoPath).Msg("Failed to remove orphaned attendance photo")
			}
		}
		if errors.Is(err, repositories.ErrSocialServerNotFound) {
			return nil, apperrors.NewResourceNotFoundError("social server not found")
		}
		return nil, err
	}

	message := checkInMessage
	if attendance.Type == models.AttendanceCheckOut {
		message = checkOutMessage
	}

	s.logger.Info().
		Int64("attendance_id", attendance.ID).
		Int64("social_server_id", server.ID).
		Str("type", string(attendance.Type)).
		Msg("Attendance recorded")

	return &dto.AttendanceResponse{
		ID:               attendance.ID,
		Email:            server.Email,
		SocialServerName: server.Name,
		ParkName:         park.ParkName,
		Timestamp:        attendance.Timestamp,
		Type:             string(attendance.Type),
		Message:          message,
	}, nil
}

// GetAttendances lists a social server's attendance events newest first
func (s *attendanceServiceImpl) GetAttendances(ctx context.Context, socialServerID int64, page, size int) (*dto.PagedResponse, error) {
	if _, err := s.servers.GetByID(ctx, socialServerID); err != nil {
		if errors.Is(err, repositories.ErrSocialServerNotFound) {
			return nil, apperrors.NewResourceNotFoundError("social server not found")
		}
		return nil, err
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	attendances, total, err := s.attendances.GetBySocialServer(ctx, socialServerID, int(offset), limit)
	if err != nil {
		return nil, fmt.Errorf("error listing attendances: %w", err)
	}

	items := make([]models.Attendance, 0, len(attendances))
	for _, a := range attendances {
		items = append(items, *a)
	}

	return &dto.PagedResponse{
		Items:      items,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, nil
}
