package dto

// ProgramRequest carries program creation/update data. ParkIDs is the full
// set of parks the program should be associated with; on update, missing
// parks are detached (their schedules removed, dependent servers unassigned).
type ProgramRequest struct {
	Name    string  `json:"name" binding:"required,max=255" example:"Tu Parque Consentido"`
	ParkIDs []int64 `json:"parkIds" binding:"required,min=1"`
}

// ScheduleRequest carries schedule creation/update data under a program
type ScheduleRequest struct {
	ParkID    int64  `json:"parkId" binding:"required" example:"1"`
	Days      string `json:"days" binding:"required,max=50" example:"L-V"`
	StartTime string `json:"startTime" binding:"required" example:"15:00"`
	EndTime   string `json:"endTime" binding:"required" example:"19:00"`
	Capacity  int    `json:"capacity" binding:"required,min=1" example:"20"`
	Career    string `json:"career,omitempty" binding:"max=500"`
	Notes     string `json:"notes,omitempty"`
}

// ScheduleInfo is the schedule projection embedded in program responses
type ScheduleInfo struct {
	ID              int64  `json:"id"`
	Days            string `json:"days"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	Capacity        int    `json:"capacity"`
	CurrentCapacity int    `json:"currentCapacity"`
	Career          string `json:"career,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// ParkWithSchedules groups the schedules a program runs at one park
type ParkWithSchedules struct {
	ID           int64          `json:"id"`
	ParkName     string         `json:"parkName"`
	Abbreviation string         `json:"abbreviation"`
	Schedules    []ScheduleInfo `json:"schedules"`
}

// ProgramResponse is the aggregate program view. TotalCapacity and
// CurrentCapacity are sums over all schedules of the program.
type ProgramResponse struct {
	ID              int64               `json:"id"`
	Name            string              `json:"name"`
	Parks           []ParkWithSchedules `json:"parks"`
	TotalCapacity   int                 `json:"totalCapacity"`
	CurrentCapacity int                 `json:"currentCapacity"`
}

// AffectedServersResponse lists social servers whose schedule reference was
// cleared by a program or schedule deletion; they need reassignment.
type AffectedServersResponse struct {
	AffectedSocialServers []string `json:"affectedSocialServers"`
}
