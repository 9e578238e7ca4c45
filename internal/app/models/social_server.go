package models

import "time"

// SocialServer is a volunteer enrolled in a social-service program.
// ScheduleID is nil when the server holds no schedule, for example after
// its schedule was deleted; only ACTIVE servers with a schedule occupy a
// seat against that schedule's capacity.
type SocialServer struct {
	ID                   int64      `json:"id"`
	Email                string     `json:"email"`
	Name                 string     `json:"name"`
	ParkID               int64      `json:"parkId"`
	ScheduleID           *int64     `json:"scheduleId,omitempty"`
	School               string     `json:"school"`
	TotalHoursRequired   int        `json:"totalHoursRequired"`
	EnrollmentDate       time.Time  `json:"enrollmentDate"`
	StartDate            *time.Time `json:"startDate,omitempty"`
	EndDate              *time.Time `json:"endDate,omitempty"`
	Status               Status     `json:"status"`
	PhotoPath            string     `json:"photoPath,omitempty"`
	Badge                bool       `json:"badge"`
	Vest                 int        `json:"vest"` // vest number, -1 when none handed out
	TutorName            string     `json:"tutorName,omitempty"`
	TutorPhone           string     `json:"tutorPhone,omitempty"`
	CellPhone            string     `json:"cellPhone,omitempty"`
	BloodType            BloodType  `json:"bloodType,omitempty"`
	Allergy              string     `json:"allergy,omitempty"`
	BirthDate            *time.Time `json:"birthDate,omitempty"`
	Major                string     `json:"major,omitempty"`
	PeriodID             *int64     `json:"periodId,omitempty"`
	ServerType           ServerType `json:"serverType"`
	GeneralInductionDate *time.Time `json:"generalInductionDate,omitempty"`
	AcceptanceLetterID   string     `json:"acceptanceLetterId,omitempty"`
	CompletionLetterID   string     `json:"completionLetterId,omitempty"`
}

// HoldsSeat reports whether the server currently occupies a seat in a schedule.
func (s *SocialServer) HoldsSeat() bool {
	return s.Status == StatusActive && s.ScheduleID != nil
}
