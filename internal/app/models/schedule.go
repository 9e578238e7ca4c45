package models

// Schedule is a recurring time slot under a program-park association.
// Capacity is the seat ceiling fixed at creation or resize;
// CurrentCapacity is the number of seats still free. The invariant
// 0 <= CurrentCapacity <= Capacity holds at all times, and
// Capacity - CurrentCapacity equals the count of ACTIVE social servers
// holding a seat in the schedule.
type Schedule struct {
	ID              int64  `json:"id"`
	ProgramParkID   int64  `json:"programParkId"`
	Days            string `json:"days"`      // e.g. "L-V" or "S-D"
	StartTime       string `json:"startTime"` // "HH:MM", 24h
	EndTime         string `json:"endTime"`   // "HH:MM", 24h
	Capacity        int    `json:"capacity"`
	CurrentCapacity int    `json:"currentCapacity"`
	Career          string `json:"career,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// AssignedCount returns the number of seats currently taken.
func (s *Schedule) AssignedCount() int {
	return s.Capacity - s.CurrentCapacity
}
