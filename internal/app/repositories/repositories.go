package repositories

import (
	"github.com/mikelitos05/asistencias/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	ParkRepository         *ParkRepository
	ProgramRepository      *ProgramRepository
	ScheduleRepository     *ScheduleRepository
	SocialServerRepository *SocialServerRepository
	AttendanceRepository   *AttendanceRepository
	PeriodRepository       *PeriodRepository
	AppConfigRepository    *AppConfigRepository
	UserRepository         *UserRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		ParkRepository:         NewParkRepository(database),
		ProgramRepository:      NewProgramRepository(database),
		ScheduleRepository:     NewScheduleRepository(database),
		SocialServerRepository: NewSocialServerRepository(database),
		AttendanceRepository:   NewAttendanceRepository(database),
		PeriodRepository:       NewPeriodRepository(database),
		AppConfigRepository:    NewAppConfigRepository(database),
		UserRepository:         NewUserRepository(database),
	}
}
