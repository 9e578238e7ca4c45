package models

// Program represents a social-service initiative that runs at one or more parks
type Program struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProgramPark associates a program with a park. At most one association
// exists per (program, park) pair; schedules hang off the association.
type ProgramPark struct {
	ID        int64 `json:"id"`
	ProgramID int64 `json:"programId"`
	ParkID    int64 `json:"parkId"`
}
