package services

import (
	"context"

	"github.com/mikelitos05/asistencias/internal/app/models"
)

// The store interfaces below are the persistence surface the services
// depend on. The pgx repositories satisfy them; tests substitute in-memory
// implementations with the same transactional semantics.

// SeatStore performs atomic seat accounting on schedules.
type SeatStore interface {
	ReserveSeat(ctx context.Context, scheduleID int64) error
	ReleaseSeat(ctx context.Context, scheduleID int64) (clamped bool, err error)
	ResizeCapacity(ctx context.Context, scheduleID int64, newCapacity int) error
	TransferSeat(ctx context.Context, fromID, toID int64) error
}

// ScheduleStore persists schedules.
type ScheduleStore interface {
	SeatStore
	Create(ctx context.Context, schedule *models.Schedule) error
	GetByID(ctx context.Context, id int64) (*models.Schedule, error)
	GetByProgramPark(ctx context.Context, programParkID int64) ([]*models.Schedule, error)
	FindBySlot(ctx context.Context, programParkID int64, days, startTime, endTime string) (*models.Schedule, error)
	GetParkID(ctx context.Context, scheduleID int64) (int64, error)
	UpdateDetails(ctx context.Context, schedule *models.Schedule) error
	UpdateWithResize(ctx context.Context, schedule *models.Schedule, newCapacity int) error
	DeleteWithDetach(ctx context.Context, scheduleID int64) ([]string, error)
}

// SocialServerStore persists social servers. The compound mutations apply
// the row change and the implied seat change atomically.
type SocialServerStore interface {
	CreateWithSeat(ctx context.Context, server *models.SocialServer) error
	GetByID(ctx context.Context, id int64) (*models.SocialServer, error)
	GetByEmail(ctx context.Context, email string) (*models.SocialServer, error)
	GetAll(ctx context.Context) ([]*models.SocialServer, error)
	List(ctx context.Context, parkID *int64, status *models.Status, offset, limit int) ([]*models.SocialServer, int64, error)
	UpdateWithDelta(ctx context.Context, server *models.SocialServer, releaseFrom, reserveTo *int64) error
	DeleteWithRelease(ctx context.Context, id int64) error
}

// AttendanceStore persists attendance events. Create derives the event type
// by alternation when it is left empty, serializing per social server.
type AttendanceStore interface {
	Create(ctx context.Context, attendance *models.Attendance) error
	GetBySocialServer(ctx context.Context, socialServerID int64, offset, limit int) ([]*models.Attendance, int64, error)
}

// ProgramStore persists programs and their park associations.
type ProgramStore interface {
	Create(ctx context.Context, program *models.Program, parkIDs []int64) error
	GetByID(ctx context.Context, id int64) (*models.Program, error)
	GetByName(ctx context.Context, name string) (*models.Program, error)
	GetAll(ctx context.Context) ([]*models.Program, error)
	UpdateName(ctx context.Context, id int64, name string) error
	GetAssociations(ctx context.Context, programID int64) ([]*models.ProgramPark, error)
	GetAssociation(ctx context.Context, programID, parkID int64) (*models.ProgramPark, error)
	AddPark(ctx context.Context, programID, parkID int64) (*models.ProgramPark, error)
	RemoveParkWithDetach(ctx context.Context, programID, parkID int64) ([]string, error)
	DeleteWithDetach(ctx context.Context, programID int64) ([]string, error)
}

// ParkStore persists parks.
type ParkStore interface {
	Create(ctx context.Context, park *models.Park) error
	GetByID(ctx context.Context, id int64) (*models.Park, error)
	GetByAbbreviation(ctx context.Context, abbreviation string) (*models.Park, error)
	GetAll(ctx context.Context) ([]*models.Park, error)
	Update(ctx context.Context, park *models.Park) error
	Delete(ctx context.Context, id int64) error
}

// PeriodStore persists service periods.
type PeriodStore interface {
	Create(ctx context.Context, period *models.Period) error
	GetByID(ctx context.Context, id int64) (*models.Period, error)
	GetAll(ctx context.Context) ([]*models.Period, error)
}

// ConfigStore persists runtime settings.
type ConfigStore interface {
	GetValue(ctx context.Context, key string) (string, error)
	SetValue(ctx context.Context, key, value string) error
}

// UserStore persists administrative users.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
}
