package models

import "time"

// Period is a service term, e.g. "SEP-MAR 2025"
type Period struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}
