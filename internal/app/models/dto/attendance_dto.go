package dto

import "time"

// AttendanceRequest carries an attendance submission. It is bound from a
// multipart form; the photo file travels alongside these fields. Type is
// optional: when absent the service alternates from the last recorded event.
type AttendanceRequest struct {
	Email     string   `form:"email" binding:"required,email"`
	ParkID    int64    `form:"parkId" binding:"required"`
	Type      string   `form:"type,omitempty" example:"CHECK_IN"`
	Latitude  *float64 `form:"latitude,omitempty"`
	Longitude *float64 `form:"longitude,omitempty"`
	Address   string   `form:"address,omitempty" binding:"max=500"`
}

// AttendanceResponse confirms a recorded attendance event
type AttendanceResponse struct {
	ID               int64     `json:"id"`
	Email            string    `json:"email"`
	SocialServerName string    `json:"socialServerName"`
	ParkName         string    `json:"parkName"`
	Timestamp        time.Time `json:"timestamp"`
	Type             string    `json:"type"`
	Message          string    `json:"message"`
}
