package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mikelitos05/asistencias/internal/app/models"
	"github.com/mikelitos05/asistencias/internal/app/models/dto"
	"github.com/mikelitos05/asistencias/internal/app/repositories"
	"github.com/mikelitos05/asistencias/internal/pkg/apperrors"
	"github.com/mikelitos05/asistencias/internal/pkg/helpers"
)

// EnrollmentService defines the interface for social server enrollment operations
type EnrollmentService interface {
	CreateSocialServer(ctx context.Context, req *dto.SocialServerRequest) (*dto.SocialServerResponse, error)
	GetSocialServerByID(ctx context.Context, id int64) (*dto.SocialServerResponse, error)
	GetAllSocialServers(ctx context.Context, parkID *int64, status string, page, size int) (*dto.PagedResponse, error)
	UpdateSocialServer(ctx context.Context, id int64, req *dto.SocialServerRequest) (*dto.SocialServerResponse, error)
	DeleteSocialServer(ctx context.Context, id int64) error
}

// enrollmentServiceImpl implements EnrollmentService
type enrollmentServiceImpl struct {
	servers   SocialServerStore
	schedules ScheduleStore
	parks     ParkStore
	logger    zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(servers SocialServerStore, schedules ScheduleStore, parks ParkStore, logger zerolog.Logger) EnrollmentService {
	return &enrollmentServiceImpl{
		servers:   servers,
		schedules: schedules,
		parks:     parks,
		logger:    logger,
	}
}

// CreateSocialServer enrolls a new social server. When the server is ACTIVE
// and has a schedule, a seat is reserved in that schedule atomically with
// the insert; an exhausted schedule fails the whole enrollment.
func (s *enrollmentServiceImpl) CreateSocialServer(ctx context.Context, req *dto.SocialServerRequest) (*dto.SocialServerResponse, error) {
	server, err := s.buildSocialServer(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.servers.CreateWithSeat(ctx, server); err != nil {
		if errors.Is(err, repositories.ErrScheduleNotFound) {
			return nil, apperrors.NewResourceNotFoundError("schedule not found")
		}
		return nil, err
	}

	s.logger.Info().
		Int64("social_server_id", server.ID).
		Str("email", server.Email).
		Msg("Social server enrolled")

	return s.toResponse(ctx, server), nil
}

// GetSocialServerByID retrieves one social server
func (s *enrollmentServiceImpl) GetSocialServerByID(ctx context.Context, id int64) (*dto.SocialServerResponse, error) {
	server, err := s.servers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSocialServerNotFound) {
			return nil, apperrors.NewResourceNotFoundError("social server not found")
		}
		return nil, err
	}

	return s.toResponse(ctx, server), nil
}

// GetAllSocialServers lists social servers with optional park and status filters
func (s *enrollmentServiceImpl) GetAllSocialServers(ctx context.Context, parkID *int64, status string, page, size int) (*dto.PagedResponse, error) {
	var statusFilter *models.Status
	if status != "" {
		st := models.Status(status)
		if !st.IsValid() {
			return nil, apperrors.NewBadRequestError("status must be ACTIVE or INACTIVE")
		}
		statusFilter = &st
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	servers, total, err := s.servers.List(ctx, parkID, statusFilter, int(offset), limit)
	if err != nil {
		return nil, fmt.Errorf("error listing social servers: %w", err)
	}

	parkNames, err := s.parkNames(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SocialServerResponse, 0, len(servers))
	for _, server := range servers {
		resp := mapSocialServer(server)
		resp.ParkName = parkNames[server.ParkID]
		items = append(items, *resp)
	}

	return &dto.PagedResponse{
		Items:      items,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, nil
}

// UpdateSocialServer updates a social server. Status and schedule changes
// move seats: an occupied seat is released when the server stops occupying
// one, a seat is reserved when it starts, and a schedule change does both.
// The row update and the seat movement land in one transaction.
func (s *enrollmentServiceImpl) UpdateSocialServer(ctx context.Context, id int64, req *dto.SocialServerRequest) (*dto.SocialServerResponse, error) {
	existing, err := s.servers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSocialServerNotFound) {
			return nil, apperrors.NewResourceNotFoundError("social server not found")
		}
		return nil, err
	}

	updated, err := s.buildSocialServer(ctx, req)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	if req.EnrollmentDate == "" {
		updated.EnrollmentDate = existing.EnrollmentDate
	}
	updated.PhotoPath = existing.PhotoPath

	delta := capacityDelta(existing.Status, updated.Status, existing.ScheduleID, updated.ScheduleID)

	if err := s.servers.UpdateWithDelta(ctx, updated, delta.ReleaseFrom, delta.ReserveTo); err != nil {
		if errors.Is(err, repositories.ErrScheduleNotFound) {
			return nil, apperrors.NewResourceNotFoundError("schedule not found")
		}
		return nil, err
	}

	s.logger.Info().
		Int64("social_server_id", updated.ID).
		Str("status", string(updated.Status)).
		Msg("Social server updated")

	return s.toResponse(ctx, updated), nil
}

// DeleteSocialServer removes a social server, releasing its seat when it
// occupied one.
func (s *enrollmentServiceImpl) DeleteSocialServer(ctx context.Context, id int64) error {
	if err := s.servers.DeleteWithRelease(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrSocialServerNotFound) {
			return apperrors.NewResourceNotFoundError("social server not found")
		}
		return err
	}

	s.logger.Info().Int64("social_server_id", id).Msg("Social server deleted")
	return nil
}

// buildSocialServer validates a request and maps it onto a model. The park
// must exist, and an assigned schedule must run at the server's park.
func (s *enrollmentServiceImpl) buildSocialServer(ctx context.Context, req *dto.SocialServerRequest) (*models.SocialServer, error) {
	if _, err := s.parks.GetByID(ctx, req.ParkID); err != nil {
		if errors.Is(err, repositories.ErrParkNotFound) {
			return nil, apperrors.NewResourceNotFoundError("park not found")
		}
		return nil, err
	}

	status := models.StatusActive
	if req.Status != "" {
		status = models.Status(req.Status)
		if !status.IsValid() {
			return nil, apperrors.NewBadRequestError("status must be ACTIVE or INACTIVE")
		}
	}

	serverType := models.ServerTypeSocialServer
	if req.ServerType != "" {
		serverType = models.ServerType(req.ServerType)
		if serverType != models.ServerTypeSocialServer && serverType != models.ServerTypeSocialIntern {
			return nil, apperrors.NewBadRequestError("serverType must be SOCIAL_SERVER or SOCIAL_INTERN")
		}
	}

	if req.ScheduleID != nil {
		scheduleParkID, err := s.schedules.GetParkID(ctx, *req.ScheduleID)
		if err != nil {
			if errors.Is(err, repositories.ErrScheduleNotFound) {
				return nil, apperrors.NewResourceNotFoundError("schedule not found")
			}
			return nil, err
		}
		if scheduleParkID != req.ParkID {
			return nil, apperrors.ErrInvalidAssociation
		}
	}

	enrollmentDate := time.Now()
	if req.EnrollmentDate != "" {
		parsed, err := helpers.ParseDate(req.EnrollmentDate)
		if err != nil {
			return nil, apperrors.NewBadRequestError(err.Error())
		}
		enrollmentDate = *parsed
	}

	startDate, err := helpers.ParseDate(req.StartDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	endDate, err := helpers.ParseDate(req.EndDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	birthDate, err := helpers.ParseDate(req.BirthDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	inductionDate, err := helpers.ParseDate(req.GeneralInductionDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	bloodType := models.BloodTypeUnknown
	if req.BloodType != "" {
		bloodType = models.BloodType(req.BloodType)
	}

	return &models.SocialServer{
		Email:                req.Email,
		Name:                 req.Name,
		ParkID:               req.ParkID,
		ScheduleID:           req.ScheduleID,
		School:               req.School,
		TotalHoursRequired:   req.TotalHours,
		EnrollmentDate:       enrollmentDate,
		StartDate:            startDate,
		EndDate:              endDate,
		Status:               status,
		Badge:                req.Badge,
		Vest:                 req.Vest,
		TutorName:            req.TutorName,
		TutorPhone:           req.TutorPhone,
		CellPhone:            req.CellPhone,
		BloodType:            bloodType,
		Allergy:              req.Allergy,
		BirthDate:            birthDate,
		Major:                req.Major,
		PeriodID:             req.PeriodID,
		ServerType:           serverType,
		GeneralInductionDate: inductionDate,
		AcceptanceLetterID:   req.AcceptanceLetterID,
		CompletionLetterID:   req.CompletionLetterID,
	}, nil
}

func (s *enrollmentServiceImpl) toResponse(ctx context.Context, server *models.SocialServer) *dto.SocialServerResponse {
	resp := mapSocialServer(server)
	if park, err := s.parks.GetByID(ctx, server.ParkID); err == nil {
		resp.ParkName = park.ParkName
	}
	return resp
}

func (s *enrollmentServiceImpl) parkNames(ctx context.Context) (map[int64]string, error) {
	parks, err := s.parks.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing parks: %w", err)
	}

	names := make(map[int64]string, len(parks))
	for _, park := range parks {
		names[park.ID] = park.ParkName
	}
	return names, nil
}

func mapSocialServer(server *models.SocialServer) *dto.SocialServerResponse {
	return &dto.SocialServerResponse{
		ID:                 server.ID,
		Email:              server.Email,
		Name:               server.Name,
		ParkID:             server.ParkID,
		ScheduleID:         server.ScheduleID,
		School:             server.School,
		TotalHoursRequired: server.TotalHoursRequired,
		Status:             string(server.Status),
	}
}
