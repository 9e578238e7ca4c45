package dto

// SocialServerRequest carries social server creation/update data.
// Dates use the "2006-01-02" layout. ScheduleID may be omitted for servers
// without an assigned schedule; Status defaults to ACTIVE on creation.
type SocialServerRequest struct {
	Email                string `json:"email" binding:"required,email,max=255"`
	Name                 string `json:"name" binding:"required,max=255"`
	ParkID               int64  `json:"parkId" binding:"required"`
	ScheduleID           *int64 `json:"scheduleId,omitempty"`
	School               string `json:"school" binding:"required,max=100"`
	TotalHours           int    `json:"totalHours" binding:"required,min=1,max=10000"`
	EnrollmentDate       string `json:"enrollmentDate,omitempty"`
	StartDate            string `json:"startDate,omitempty"`
	EndDate              string `json:"endDate,omitempty"`
	Status               string `json:"status,omitempty" example:"ACTIVE"`
	Badge                bool   `json:"badge"`
	Vest                 int    `json:"vest"`
	TutorName            string `json:"tutorName,omitempty"`
	TutorPhone           string `json:"tutorPhone,omitempty"`
	CellPhone            string `json:"cellPhone,omitempty"`
	BloodType            string `json:"bloodType,omitempty"`
	Allergy              string `json:"allergy,omitempty"`
	BirthDate            string `json:"birthDate,omitempty"`
	Major                string `json:"major,omitempty"`
	PeriodID             *int64 `json:"periodId,omitempty"`
	ServerType           string `json:"serverType,omitempty" example:"SOCIAL_SERVER"`
	GeneralInductionDate string `json:"generalInductionDate,omitempty"`
	AcceptanceLetterID   string `json:"acceptanceLetterId,omitempty"`
	CompletionLetterID   string `json:"completionLetterId,omitempty"`
}

// SocialServerResponse is the social server view returned by the API
type SocialServerResponse struct {
	ID                 int64  `json:"id"`
	Email              string `json:"email"`
	Name               string `json:"name"`
	ParkID             int64  `json:"parkId"`
	ParkName           string `json:"parkName,omitempty"`
	ScheduleID         *int64 `json:"scheduleId,omitempty"`
	School             string `json:"school"`
	TotalHoursRequired int    `json:"totalHoursRequired"`
	Status             string `json:"status"`
	Message            string `json:"message,omitempty"`
}
