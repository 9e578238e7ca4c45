package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"sync"

	"github.com/mikelitos05/asistencias/internal/app/models"
	"github.com/mikelitos05/asistencias/internal/app/repositories"
	"github.com/mikelitos05/asistencias/internal/pkg/apperrors"
)

var errSaveFailed = errors.New("photo save failed")

// memStore is the in-memory database behind the per-interface test doubles
// below. Its compound operations keep the same atomicity the pgx
// repositories guarantee: either the row change and its seat movement both
// land, or neither does.
type memStore struct {
	mu sync.Mutex

	nextID       int64
	parks        map[int64]*models.Park
	programs     map[int64]*models.Program
	associations map[int64]*models.ProgramPark
	schedules    map[int64]*models.Schedule
	servers      map[int64]*models.SocialServer
	attendances  []*models.Attendance
	periods      map[int64]*models.Period
}

func newMemStore() *memStore {
	return &memStore{
		parks:        map[int64]*models.Park{},
		programs:     map[int64]*models.Program{},
		associations: map[int64]*models.ProgramPark{},
		schedules:    map[int64]*models.Schedule{},
		servers:      map[int64]*models.SocialServer{},
		periods:      map[int64]*models.Period{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

// --- fixture helpers ---

func (m *memStore) addPark(name, abbreviation string) *models.Park {
	m.mu.Lock()
	defer m.mu.Unlock()
	park := &models.Park{ID: m.id(), ParkName: name, Abbreviation: abbreviation}
	m.parks[park.ID] = park
	return park
}

func (m *memStore) addProgram(name string, parkIDs ...int64) *models.Program {
	m.mu.Lock()
	defer m.mu.Unlock()
	program := &models.Program{ID: m.id(), Name: name}
	m.programs[program.ID] = program
	for _, parkID := range parkIDs {
		pp := &models.ProgramPark{ID: m.id(), ProgramID: program.ID, ParkID: parkID}
		m.associations[pp.ID] = pp
	}
	return program
}

func (m *memStore) addSchedule(programParkID int64, days, start, end string, capacity int) *models.Schedule {
	m.mu.Lock()
	defer m.mu.Unlock()
	schedule := &models.Schedule{
		ID:              m.id(),
		ProgramParkID:   programParkID,
		Days:            days,
		StartTime:       start,
		EndTime:         end,
		Capacity:        capacity,
		CurrentCapacity: capacity,
	}
	m.schedules[schedule.ID] = schedule
	return schedule
}

func (m *memStore) associationOf(programID, parkID int64) *models.ProgramPark {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, pp := range m.associations {
		if pp.ProgramID == programID && pp.ParkID == parkID {
			return pp
		}
	}
	return nil
}

func (m *memStore) schedule(id int64) models.Schedule {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.schedules[id]
}

func (m *memStore) server(id int64) *models.SocialServer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.servers[id]; ok {
		copied := *s
		return &copied
	}
	return nil
}

// --- shared seat accounting, callers hold the lock ---

func (m *memStore) reserveLocked(scheduleID int64) error {
	schedule, ok := m.schedules[scheduleID]
	if !ok {
		return repositories.ErrScheduleNotFound
	}
	if schedule.CurrentCapacity <= 0 {
		return apperrors.ErrCapacityExhausted
	}
	schedule.CurrentCapacity--
	return nil
}

func (m *memStore) releaseLocked(scheduleID int64) (bool, error) {
	schedule, ok := m.schedules[scheduleID]
	if !ok {
		return false, repositories.ErrScheduleNotFound
	}
	if schedule.CurrentCapacity >= schedule.Capacity {
		return true, nil
	}
	schedule.CurrentCapacity++
	return false, nil
}

func (m *memStore) detachLocked(scheduleIDs map[int64]bool) []string {
	var names []string
	for _, server := range m.servers {
		if server.ScheduleID != nil && scheduleIDs[*server.ScheduleID] {
			server.ScheduleID = nil
			names = append(names, server.Name)
		}
	}
	return names
}

func (m *memStore) removeSchedulesLocked(associationIDs map[int64]bool) []string {
	scheduleIDs := map[int64]bool{}
	for id, schedule := range m.schedules {
		if associationIDs[schedule.ProgramParkID] {
			scheduleIDs[id] = true
		}
	}
	names := m.detachLocked(scheduleIDs)
	for id := range scheduleIDs {
		delete(m.schedules, id)
	}
	return names
}

// memSchedules implements ScheduleStore over a memStore.
type memSchedules struct{ db *memStore }

func (s memSchedules) ReserveSeat(ctx context.Context, scheduleID int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.db.reserveLocked(scheduleID)
}

func (s memSchedules) ReleaseSeat(ctx context.Context, scheduleID int64) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.db.releaseLocked(scheduleID)
}

func (s memSchedules) ResizeCapacity(ctx context.Context, scheduleID int64, newCapacity int) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	schedule, ok := s.db.schedules[scheduleID]
	if !ok {
		return repositories.ErrScheduleNotFound
	}
	assigned := schedule.Capacity - schedule.CurrentCapacity
	if newCapacity < assigned {
		return apperrors.ErrCapacityBelowAssigned
	}
	schedule.Capacity = newCapacity
	schedule.CurrentCapacity = newCapacity - assigned
	return nil
}

func (s memSchedules) TransferSeat(ctx context.Context, fromID, toID int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	clamped, err := s.db.releaseLocked(fromID)
	if err != nil {
		return err
	}
	if err := s.db.reserveLocked(toID); err != nil {
		if !clamped {
			s.db.schedules[fromID].CurrentCapacity--
		}
		return err
	}
	return nil
}

func (s memSchedules) Create(ctx context.Context, schedule *models.Schedule) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, existing := range s.db.schedules {
		if existing.ProgramParkID == schedule.ProgramParkID && existing.Days == schedule.Days &&
			existing.StartTime == schedule.StartTime && existing.EndTime == schedule.EndTime {
			return apperrors.ErrResourceAlreadyExists
		}
	}
	schedule.ID = s.db.id()
	copied := *schedule
	s.db.schedules[schedule.ID] = &copied
	return nil
}

func (s memSchedules) GetByID(ctx context.Context, id int64) (*models.Schedule, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	schedule, ok := s.db.schedules[id]
	if !ok {
		return nil, repositories.ErrScheduleNotFound
	}
	copied := *schedule
	return &copied, nil
}

func (s memSchedules) GetByProgramPark(ctx context.Context, programParkID int64) ([]*models.Schedule, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var result []*models.Schedule
	for _, schedule := range s.db.schedules {
		if schedule.ProgramParkID == programParkID {
			copied := *schedule
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (s memSchedules) FindBySlot(ctx context.Context, programParkID int64, days, startTime, endTime string) (*models.Schedule, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, schedule := range s.db.schedules {
		if schedule.ProgramParkID == programParkID && schedule.Days == days &&
			schedule.StartTime == startTime && schedule.EndTime == endTime {
			copied := *schedule
			return &copied, nil
		}
	}
	return nil, repositories.ErrScheduleNotFound
}

func (s memSchedules) GetParkID(ctx context.Context, scheduleID int64) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	schedule, ok := s.db.schedules[scheduleID]
	if !ok {
		return 0, repositories.ErrScheduleNotFound
	}
	pp, ok := s.db.associations[schedule.ProgramParkID]
	if !ok {
		return 0, repositories.ErrScheduleNotFound
	}
	return pp.ParkID, nil
}

func (s memSchedules) UpdateDetails(ctx context.Context, schedule *models.Schedule) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	existing, ok := s.db.schedules[schedule.ID]
	if !ok {
		return repositories.ErrScheduleNotFound
	}
	existing.Days = schedule.Days
	existing.StartTime = schedule.StartTime
	existing.EndTime = schedule.EndTime
	existing.Career = schedule.Career
	existing.Notes = schedule.Notes
	return nil
}

func (s memSchedules) UpdateWithResize(ctx context.Context, schedule *models.Schedule, newCapacity int) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	existing, ok := s.db.schedules[schedule.ID]
	if !ok {
		return repositories.ErrScheduleNotFound
	}
	// All-or-nothing: a rejected resize must leave the slot fields alone.
	assigned := existing.Capacity - existing.CurrentCapacity
	if newCapacity < assigned {
		return apperrors.ErrCapacityBelowAssigned
	}
	existing.Days = schedule.Days
	existing.StartTime = schedule.StartTime
	existing.EndTime = schedule.EndTime
	existing.Career = schedule.Career
	existing.Notes = schedule.Notes
	existing.Capacity = newCapacity
	existing.CurrentCapacity = newCapacity - assigned
	return nil
}

func (s memSchedules) DeleteWithDetach(ctx context.Context, scheduleID int64) ([]string, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.schedules[scheduleID]; !ok {
		return nil, repositories.ErrScheduleNotFound
	}
	names := s.db.detachLocked(map[int64]bool{scheduleID: true})
	delete(s.db.schedules, scheduleID)
	return names, nil
}

// memServers implements SocialServerStore over a memStore.
type memServers struct{ db *memStore }

func (s memServers) CreateWithSeat(ctx context.Context, server *models.SocialServer) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, existing := range s.db.servers {
		if existing.Email == server.Email {
			return apperrors.ErrDuplicateEmail
		}
	}
	if server.HoldsSeat() {
		if err := s.db.reserveLocked(*server.ScheduleID); err != nil {
			return err
		}
	}
	server.ID = s.db.id()
	copied := *server
	s.db.servers[server.ID] = &copied
	return nil
}

func (s memServers) GetByID(ctx context.Context, id int64) (*models.SocialServer, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	server, ok := s.db.servers[id]
	if !ok {
		return nil, repositories.ErrSocialServerNotFound
	}
	copied := *server
	return &copied, nil
}

func (s memServers) GetByEmail(ctx context.Context, email string) (*models.SocialServer, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, server := range s.db.servers {
		if server.Email == email {
			copied := *server
			return &copied, nil
		}
	}
	return nil, repositories.ErrSocialServerNotFound
}

func (s memServers) GetAll(ctx context.Context) ([]*models.SocialServer, error) {
	servers, _, err := s.List(ctx, nil, nil, 0, 0)
	return servers, err
}

func (s memServers) List(ctx context.Context, parkID *int64, status *models.Status, offset, limit int) ([]*models.SocialServer, int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var result []*models.SocialServer
	for _, server := range s.db.servers {
		if parkID != nil && server.ParkID != *parkID {
			continue
		}
		if status != nil && server.Status != *status {
			continue
		}
		copied := *server
		result = append(result, &copied)
	}
	return result, int64(len(result)), nil
}

func (s memServers) UpdateWithDelta(ctx context.Context, server *models.SocialServer, releaseFrom, reserveTo *int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	existing, ok := s.db.servers[server.ID]
	if !ok {
		return repositories.ErrSocialServerNotFound
	}
	for _, other := range s.db.servers {
		if other.ID != server.ID && other.Email == server.Email {
			return apperrors.ErrDuplicateEmail
		}
	}

	// Check the reservation before mutating anything so a failure leaves
	// the store untouched, like a rolled-back transaction.
	if reserveTo != nil {
		schedule, ok := s.db.schedules[*reserveTo]
		if !ok {
			return repositories.ErrScheduleNotFound
		}
		free := schedule.CurrentCapacity
		if releaseFrom != nil {
			if from, ok := s.db.schedules[*releaseFrom]; ok && from.CurrentCapacity < from.Capacity && *releaseFrom == *reserveTo {
				free++
			}
		}
		if free <= 0 {
			return apperrors.ErrCapacityExhausted
		}
	}

	if releaseFrom != nil {
		if _, err := s.db.releaseLocked(*releaseFrom); err != nil {
			return err
		}
	}
	if reserveTo != nil {
		if err := s.db.reserveLocked(*reserveTo); err != nil {
			return err
		}
	}

	copied := *server
	*existing = copied
	return nil
}

func (s memServers) DeleteWithRelease(ctx context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	server, ok := s.db.servers[id]
	if !ok {
		return repositories.ErrSocialServerNotFound
	}
	delete(s.db.servers, id)
	if server.HoldsSeat() {
		_, _ = s.db.releaseLocked(*server.ScheduleID)
	}
	return nil
}

// memAttendances implements AttendanceStore over a memStore.
type memAttendances struct{ db *memStore }

func (s memAttendances) Create(ctx context.Context, attendance *models.Attendance) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.servers[attendance.SocialServerID]; !ok {
		return repositories.ErrSocialServerNotFound
	}
	if attendance.Type == "" {
		attendance.Type = models.AttendanceCheckIn
		for i := len(s.db.attendances) - 1; i >= 0; i-- {
			if s.db.attendances[i].SocialServerID == attendance.SocialServerID {
				attendance.Type = s.db.attendances[i].Type.Opposite()
				break
			}
		}
	}
	attendance.ID = s.db.id()
	copied := *attendance
	s.db.attendances = append(s.db.attendances, &copied)
	return nil
}

func (s memAttendances) GetBySocialServer(ctx context.Context, socialServerID int64, offset, limit int) ([]*models.Attendance, int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var result []*models.Attendance
	for i := len(s.db.attendances) - 1; i >= 0; i-- {
		if s.db.attendances[i].SocialServerID == socialServerID {
			copied := *s.db.attendances[i]
			result = append(result, &copied)
		}
	}
	return result, int64(len(result)), nil
}

// memPrograms implements ProgramStore over a memStore.
type memPrograms struct{ db *memStore }

func (s memPrograms) Create(ctx context.Context, program *models.Program, parkIDs []int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, existing := range s.db.programs {
		if existing.Name == program.Name {
			return apperrors.ErrResourceAlreadyExists
		}
	}
	program.ID = s.db.id()
	copied := *program
	s.db.programs[program.ID] = &copied
	for _, parkID := range parkIDs {
		pp := &models.ProgramPark{ID: s.db.id(), ProgramID: program.ID, ParkID: parkID}
		s.db.associations[pp.ID] = pp
	}
	return nil
}

func (s memPrograms) GetByID(ctx context.Context, id int64) (*models.Program, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	program, ok := s.db.programs[id]
	if !ok {
		return nil, repositories.ErrProgramNotFound
	}
	copied := *program
	return &copied, nil
}

func (s memPrograms) GetByName(ctx context.Context, name string) (*models.Program, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, program := range s.db.programs {
		if program.Name == name {
			copied := *program
			return &copied, nil
		}
	}
	return nil, repositories.ErrProgramNotFound
}

func (s memPrograms) GetAll(ctx context.Context) ([]*models.Program, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var result []*models.Program
	for _, program := range s.db.programs {
		copied := *program
		result = append(result, &copied)
	}
	return result, nil
}

func (s memPrograms) UpdateName(ctx context.Context, id int64, name string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	program, ok := s.db.programs[id]
	if !ok {
		return repositories.ErrProgramNotFound
	}
	program.Name = name
	return nil
}

func (s memPrograms) GetAssociations(ctx context.Context, programID int64) ([]*models.ProgramPark, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var result []*models.ProgramPark
	for _, pp := range s.db.associations {
		if pp.ProgramID == programID {
			copied := *pp
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (s memPrograms) GetAssociation(ctx context.Context, programID, parkID int64) (*models.ProgramPark, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, pp := range s.db.associations {
		if pp.ProgramID == programID && pp.ParkID == parkID {
			copied := *pp
			return &copied, nil
		}
	}
	return nil, repositories.ErrAssociationNotFound
}

func (s memPrograms) AddPark(ctx context.Context, programID, parkID int64) (*models.ProgramPark, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, pp := range s.db.associations {
		if pp.ProgramID == programID && pp.ParkID == parkID {
			return nil, apperrors.ErrDuplicateAssociation
		}
	}
	pp := &models.ProgramPark{ID: s.db.id(), ProgramID: programID, ParkID: parkID}
	s.db.associations[pp.ID] = pp
	copied := *pp
	return &copied, nil
}

func (s memPrograms) RemoveParkWithDetach(ctx context.Context, programID, parkID int64) ([]string, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var association *models.ProgramPark
	for _, pp := range s.db.associations {
		if pp.ProgramID == programID && pp.ParkID == parkID {
			association = pp
			break
		}
	}
	if association == nil {
		return nil, repositories.ErrAssociationNotFound
	}
	names := s.db.removeSchedulesLocked(map[int64]bool{association.ID: true})
	delete(s.db.associations, association.ID)
	return names, nil
}

func (s memPrograms) DeleteWithDetach(ctx context.Context, programID int64) ([]string, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.programs[programID]; !ok {
		return nil, repositories.ErrProgramNotFound
	}
	associationIDs := map[int64]bool{}
	for id, pp := range s.db.associations {
		if pp.ProgramID == programID {
			associationIDs[id] = true
		}
	}
	names := s.db.removeSchedulesLocked(associationIDs)
	for id := range associationIDs {
		delete(s.db.associations, id)
	}
	delete(s.db.programs, programID)
	return names, nil
}

// memParks implements ParkStore over a memStore.
type memParks struct{ db *memStore }

func (s memParks) Create(ctx context.Context, park *models.Park) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, existing := range s.db.parks {
		if existing.ParkName == park.ParkName || existing.Abbreviation == park.Abbreviation {
			return apperrors.ErrDuplicatePark
		}
	}
	park.ID = s.db.id()
	copied := *park
	s.db.parks[park.ID] = &copied
	return nil
}

func (s memParks) GetByID(ctx context.Context, id int64) (*models.Park, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	park, ok := s.db.parks[id]
	if !ok {
		return nil, repositories.ErrParkNotFound
	}
	copied := *park
	return &copied, nil
}

func (s memParks) GetByAbbreviation(ctx context.Context, abbreviation string) (*models.Park, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, park := range s.db.parks {
		if strings.EqualFold(park.Abbreviation, abbreviation) {
			copied := *park
			return &copied, nil
		}
	}
	return nil, repositories.ErrParkNotFound
}

func (s memParks) GetAll(ctx context.Context) ([]*models.Park, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var result []*models.Park
	for _, park := range s.db.parks {
		copied := *park
		result = append(result, &copied)
	}
	return result, nil
}

func (s memParks) Update(ctx context.Context, park *models.Park) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	existing, ok := s.db.parks[park.ID]
	if !ok {
		return repositories.ErrParkNotFound
	}
	existing.ParkName = park.ParkName
	existing.Abbreviation = park.Abbreviation
	return nil
}

func (s memParks) Delete(ctx context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.parks[id]; !ok {
		return repositories.ErrParkNotFound
	}
	for _, server := range s.db.servers {
		if server.ParkID == id {
			return apperrors.ErrParkHasServers
		}
	}
	delete(s.db.parks, id)
	return nil
}

// memPeriods implements PeriodStore over a memStore.
type memPeriods struct{ db *memStore }

func (s memPeriods) Create(ctx context.Context, period *models.Period) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	period.ID = s.db.id()
	copied := *period
	s.db.periods[period.ID] = &copied
	return nil
}

func (s memPeriods) GetByID(ctx context.Context, id int64) (*models.Period, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	period, ok := s.db.periods[id]
	if !ok {
		return nil, repositories.ErrPeriodNotFound
	}
	copied := *period
	return &copied, nil
}

func (s memPeriods) GetAll(ctx context.Context) ([]*models.Period, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var result []*models.Period
	for _, period := range s.db.periods {
		copied := *period
		result = append(result, &copied)
	}
	return result, nil
}

// memPhotoStore is an in-memory filestorage.PhotoStorage double.
type memPhotoStore struct {
	mu       sync.Mutex
	saved    []string
	deleted  []string
	failSave bool
}

func (p *memPhotoStore) SavePhoto(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failSave {
		return "", errSaveFailed
	}
	path := "uploads/" + subPath + "/" + fileHeader.Filename
	p.saved = append(p.saved, path)
	return path, nil
}

func (p *memPhotoStore) DeletePhoto(photoPath string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleted = append(p.deleted, photoPath)
	return nil
}

func (p *memPhotoStore) FullPath(photoPath string) string {
	return photoPath
}
