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

// CatalogService defines the interface for program and schedule catalog operations
type CatalogService interface {
	CreateProgram(ctx context.Context, req *dto.ProgramRequest) (*dto.ProgramResponse, error)
	GetProgramByID(ctx context.Context, id int64) (*dto.ProgramResponse, error)
	GetAllPrograms(ctx context.Context) ([]dto.ProgramResponse, error)
	UpdateProgram(ctx context.Context, id int64, req *dto.ProgramRequest) (*dto.ProgramResponse, error)
	DeleteProgram(ctx context.Context, id int64) ([]string, error)
	AddSchedule(ctx context.Context, programID int64, req *dto.ScheduleRequest) (*dto.ScheduleInfo, error)
	UpdateSchedule(ctx context.Context, programID, scheduleID int64, req *dto.ScheduleRequest) (*dto.ScheduleInfo, error)
	DeleteSchedule(ctx context.Context, programID, scheduleID int64) ([]string, error)
	ResolveScheduleForAssociation(ctx context.Context, programID, parkID int64, days, startTime, endTime string, defaultCapacity int) (*models.Schedule, error)
}

// catalogServiceImpl implements CatalogService
type catalogServiceImpl struct {
	programs  ProgramStore
	schedules ScheduleStore
	parks     ParkStore
	ledger    *CapacityLedger
	logger    zerolog.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(programs ProgramStore, schedules ScheduleStore, parks ParkStore, ledger *CapacityLedger, logger zerolog.Logger) CatalogService {
	return &catalogServiceImpl{
		programs:  programs,
		schedules: schedules,
		parks:     parks,
		ledger:    ledger,
		logger:    logger,
	}
}

// CreateProgram creates a program with its initial park associations
func (s *catalogServiceImpl) CreateProgram(ctx context.Context, req *dto.ProgramRequest) (*dto.ProgramResponse, error) {
	for _, parkID := range req.ParkIDs {
		if _, err := s.parks.GetByID(ctx, parkID); err != nil {
			if errors.Is(err, repositories.ErrParkNotFound) {
				return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("park %d not found", parkID))
			}
			return nil, err
		}
	}

	program := &models.Program{Name: req.Name}
	if err := s.programs.Create(ctx, program, req.ParkIDs); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("program_id", program.ID).Str("name", program.Name).Msg("Program created")

	return s.buildProgramResponse(ctx, program)
}

// GetProgramByID retrieves a program with its parks, schedules and
// aggregated capacities
func (s *catalogServiceImpl) GetProgramByID(ctx context.Context, id int64) (*dto.ProgramResponse, error) {
	program, err := s.programs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProgramNotFound) {
			return nil, apperrors.NewResourceNotFoundError("program not found")
		}
		return nil, err
	}

	return s.buildProgramResponse(ctx, program)
}

// GetAllPrograms retrieves every program in aggregate view
func (s *catalogServiceImpl) GetAllPrograms(ctx context.Context) ([]dto.ProgramResponse, error) {
	programs, err := s.programs.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing programs: %w", err)
	}

	responses := make([]dto.ProgramResponse, 0, len(programs))
	for _, program := range programs {
		resp, err := s.buildProgramResponse(ctx, program)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}

	return responses, nil
}

// UpdateProgram renames a program and reconciles its park set: parks in
// the request that are missing get associated, parks removed from the
// request are detached together with their schedules, and servers on those
// schedules lose their assignment.
func (s *catalogServiceImpl) UpdateProgram(ctx context.Context, id int64, req *dto.ProgramRequest) (*dto.ProgramResponse, error) {
	program, err := s.programs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProgramNotFound) {
			return nil, apperrors.NewResourceNotFoundError("program not found")
		}
		return nil, err
	}

	if program.Name != req.Name {
		if err := s.programs.UpdateName(ctx, id, req.Name); err != nil {
			return nil, err
		}
		program.Name = req.Name
	}

	associations, err := s.programs.GetAssociations(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error listing program associations: %w", err)
	}

	current := make(map[int64]bool, len(associations))
	for _, assoc := range associations {
		current[assoc.ParkID] = true
	}
	desired := make(map[int64]bool, len(req.ParkIDs))
	for _, parkID := range req.ParkIDs {
		desired[parkID] = true
	}

	for parkID := range desired {
		if current[parkID] {
			continue
		}
		if _, err := s.parks.GetByID(ctx, parkID); err != nil {
			if errors.Is(err, repositories.ErrParkNotFound) {
				return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("park %d not found", parkID))
			}
			return nil, err
		}
		if _, err := s.programs.AddPark(ctx, id, parkID); err != nil {
			return nil, err
		}
	}

	for parkID := range current {
		if desired[parkID] {
			continue
		}
		affected, err := s.programs.RemoveParkWithDetach(ctx, id, parkID)
		if err != nil {
			return nil, err
		}
		if len(affected) > 0 {
			s.logger.Warn().
				Int64("program_id", id).
				Int64("park_id", parkID).
				Strs("affected_servers", affected).
				Msg("Social servers lost their schedule on park detach")
		}
	}

	return s.buildProgramResponse(ctx, program)
}

// DeleteProgram deletes a program with its associations and schedules and
// returns the names of the social servers that lost their schedule.
func (s *catalogServiceImpl) DeleteProgram(ctx context.Context, id int64) ([]string, error) {
	affected, err := s.programs.DeleteWithDetach(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProgramNotFound) {
			return nil, apperrors.NewResourceNotFoundError("program not found")
		}
		return nil, err
	}

	s.logger.Info().
		Int64("program_id", id).
		Int("affected_servers", len(affected)).
		Msg("Program deleted")

	return affected, nil
}

// AddSchedule creates a schedule under the association between a program
// and a park. The association must already exist.
func (s *catalogServiceImpl) AddSchedule(ctx context.Context, programID int64, req *dto.ScheduleRequest) (*dto.ScheduleInfo, error) {
	if err := validateSlot(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	association, err := s.programs.GetAssociation(ctx, programID, req.ParkID)
	if err != nil {
		if errors.Is(err, repositories.ErrAssociationNotFound) {
			return nil, apperrors.ErrInvalidAssociation
		}
		return nil, err
	}

	schedule := &models.Schedule{
		ProgramParkID:   association.ID,
		Days:            req.Days,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Capacity:        req.Capacity,
		CurrentCapacity: req.Capacity,
		Career:          req.Career,
		Notes:           req.Notes,
	}
	if err := s.schedules.Create(ctx, schedule); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("schedule_id", schedule.ID).
		Int64("program_id", programID).
		Int64("park_id", req.ParkID).
		Msg("Schedule created")

	return mapSchedule(schedule), nil
}

// UpdateSchedule updates a schedule's slot and capacity. A capacity change
// is a resize: the number of assigned seats is preserved, and shrinking
// below it fails.
func (s *catalogServiceImpl) UpdateSchedule(ctx context.Context, programID, scheduleID int64, req *dto.ScheduleRequest) (*dto.ScheduleInfo, error) {
	if err := validateSlot(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	schedule, err := s.scheduleOfProgram(ctx, programID, scheduleID)
	if err != nil {
		return nil, err
	}

	association, err := s.programs.GetAssociation(ctx, programID, req.ParkID)
	if err != nil {
		if errors.Is(err, repositories.ErrAssociationNotFound) {
			return nil, apperrors.ErrInvalidAssociation
		}
		return nil, err
	}
	if association.ID != schedule.ProgramParkID {
		return nil, apperrors.ErrInvalidAssociation
	}

	assigned := schedule.AssignedCount()
	detailsChanged := req.Days != schedule.Days ||
		req.StartTime != schedule.StartTime ||
		req.EndTime != schedule.EndTime ||
		req.Career != schedule.Career ||
		req.Notes != schedule.Notes
	resized := req.Capacity != schedule.Capacity

	schedule.Days = req.Days
	schedule.StartTime = req.StartTime
	schedule.EndTime = req.EndTime
	schedule.Career = req.Career
	schedule.Notes = req.Notes

	// Slot fields and capacity commit together: a resize rejected for
	// holding fewer seats than are assigned must not leave the new slot
	// behind.
	switch {
	case detailsChanged && resized:
		if err := s.schedules.UpdateWithResize(ctx, schedule, req.Capacity); err != nil {
			return nil, err
		}
	case resized:
		if err := s.ledger.Resize(ctx, scheduleID, req.Capacity); err != nil {
			return nil, err
		}
	case detailsChanged:
		if err := s.schedules.UpdateDetails(ctx, schedule); err != nil {
			return nil, err
		}
	}
	if resized {
		schedule.Capacity = req.Capacity
		schedule.CurrentCapacity = req.Capacity - assigned
	}

	s.logger.Info().Int64("schedule_id", scheduleID).Msg("Schedule updated")

	return mapSchedule(schedule), nil
}

// DeleteSchedule deletes a schedule of a program and returns the names of
// the social servers that lost their assignment.
func (s *catalogServiceImpl) DeleteSchedule(ctx context.Context, programID, scheduleID int64) ([]string, error) {
	if _, err := s.scheduleOfProgram(ctx, programID, scheduleID); err != nil {
		return nil, err
	}

	affected, err := s.schedules.DeleteWithDetach(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, repositories.ErrScheduleNotFound) {
			return nil, apperrors.NewResourceNotFoundError("schedule not found")
		}
		return nil, err
	}

	s.logger.Info().
		Int64("schedule_id", scheduleID).
		Int("affected_servers", len(affected)).
		Msg("Schedule deleted")

	return affected, nil
}

// ResolveScheduleForAssociation finds the schedule with an exact slot match
// under the program-park association, creating the association and the
// schedule when they do not exist yet. Resolving the same slot twice yields
// the same schedule.
func (s *catalogServiceImpl) ResolveScheduleForAssociation(ctx context.Context, programID, parkID int64, days, startTime, endTime string, defaultCapacity int) (*models.Schedule, error) {
	association, err := s.programs.GetAssociation(ctx, programID, parkID)
	if errors.Is(err, repositories.ErrAssociationNotFound) {
		association, err = s.programs.AddPark(ctx, programID, parkID)
		if errors.Is(err, apperrors.ErrDuplicateAssociation) {
			// Lost the race against a concurrent resolve; the association
			// exists now.
			association, err = s.programs.GetAssociation(ctx, programID, parkID)
		}
	}
	if err != nil {
		return nil, err
	}

	schedule, err := s.schedules.FindBySlot(ctx, association.ID, days, startTime, endTime)
	if err == nil {
		return schedule, nil
	}
	if !errors.Is(err, repositories.ErrScheduleNotFound) {
		return nil, err
	}

	schedule = &models.Schedule{
		ProgramParkID:   association.ID,
		Days:            days,
		StartTime:       startTime,
		EndTime:         endTime,
		Capacity:        defaultCapacity,
		CurrentCapacity: defaultCapacity,
	}
	err = s.schedules.Create(ctx, schedule)
	if errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		return s.schedules.FindBySlot(ctx, association.ID, days, startTime, endTime)
	}
	if err != nil {
		return nil, err
	}

	return schedule, nil
}

func (s *catalogServiceImpl) scheduleOfProgram(ctx context.Context, programID, scheduleID int64) (*models.Schedule, error) {
	schedule, err := s.schedules.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, repositories.ErrScheduleNotFound) {
			return nil, apperrors.NewResourceNotFoundError("schedule not found")
		}
		return nil, err
	}

	associations, err := s.programs.GetAssociations(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("error listing program associations: %w", err)
	}
	for _, assoc := range associations {
		if assoc.ID == schedule.ProgramParkID {
			return schedule, nil
		}
	}

	return nil, apperrors.ErrInvalidAssociation
}

func (s *catalogServiceImpl) buildProgramResponse(ctx context.Context, program *models.Program) (*dto.ProgramResponse, error) {
	associations, err := s.programs.GetAssociations(ctx, program.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing program associations: %w", err)
	}

	resp := &dto.ProgramResponse{
		ID:    program.ID,
		Name:  program.Name,
		Parks: make([]dto.ParkWithSchedules, 0, len(associations)),
	}

	for _, assoc := range associations {
		park, err := s.parks.GetByID(ctx, assoc.ParkID)
		if err != nil {
			return nil, err
		}

		schedules, err := s.schedules.GetByProgramPark(ctx, assoc.ID)
		if err != nil {
			return nil, err
		}

		parkView := dto.ParkWithSchedules{
			ID:           park.ID,
			ParkName:     park.ParkName,
			Abbreviation: park.Abbreviation,
			Schedules:    make([]dto.ScheduleInfo, 0, len(schedules)),
		}
		for _, schedule := range schedules {
			parkView.Schedules = append(parkView.Schedules, *mapSchedule(schedule))
			resp.TotalCapacity += schedule.Capacity
			resp.CurrentCapacity += schedule.CurrentCapacity
		}

		resp.Parks = append(resp.Parks, parkView)
	}

	return resp, nil
}

func mapSchedule(schedule *models.Schedule) *dto.ScheduleInfo {
	return &dto.ScheduleInfo{
		ID:              schedule.ID,
		Days:            schedule.Days,
		StartTime:       schedule.StartTime,
		EndTime:         schedule.EndTime,
		Capacity:        schedule.Capacity,
		CurrentCapacity: schedule.CurrentCapacity,
		Career:          schedule.Career,
		Notes:           schedule.Notes,
	}
}

func validateSlot(startTime, endTime string) error {
	if err := helpers.ValidateClock(startTime); err != nil {
		return apperrors.NewBadRequestError(err.Error())
	}
	if err := helpers.ValidateClock(endTime); err != nil {
		return apperrors.NewBadRequestError(err.Error())
	}
	if startTime >= endTime {
		return apperrors.NewBadRequestError("startTime must be before endTime")
	}
	return nil
}
