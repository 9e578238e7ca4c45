package models

import "time"

// Attendance is an immutable check-in/check-out event for a social server
// at a park. Rows are append-only; they are created by the attendance
// service and never updated.
type Attendance struct {
	ID             int64          `json:"id"`
	SocialServerID int64          `json:"socialServerId"`
	ParkID         int64          `json:"parkId"`
	Timestamp      time.Time      `json:"timestamp"`
	Type           AttendanceType `json:"type"`
	PhotoPath      string         `json:"photoPath"`
	Latitude       *float64       `json:"latitude,omitempty"`
	Longitude      *float64       `json:"longitude,omitempty"`
	Address        string         `json:"address,omitempty"`
}
