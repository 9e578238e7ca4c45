package models

// RoleType defines the administrative user role type
type RoleType string

const (
	RoleSuperAdmin RoleType = "SUPER_ADMIN"
	RoleAdmin      RoleType = "ADMIN"
)

// Status defines the lifecycle status of a social server
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// IsValid reports whether the status is one of the known values.
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// AttendanceType defines the direction of an attendance event
type AttendanceType string

const (
	AttendanceCheckIn  AttendanceType = "CHECK_IN"
	AttendanceCheckOut AttendanceType = "CHECK_OUT"
)

// IsValid reports whether the attendance type is one of the known values.
func (t AttendanceType) IsValid() bool {
	return t == AttendanceCheckIn || t == AttendanceCheckOut
}

// Opposite returns the alternated attendance type. A CHECK_IN is always
// followed by a CHECK_OUT and vice versa.
func (t AttendanceType) Opposite() AttendanceType {
	if t == AttendanceCheckIn {
		return AttendanceCheckOut
	}
	return AttendanceCheckIn
}

// ServerType distinguishes social-service volunteers from social interns
type ServerType string

const (
	ServerTypeSocialServer ServerType = "SOCIAL_SERVER"
	ServerTypeSocialIntern ServerType = "SOCIAL_INTERN"
)

// BloodType is the declared blood type of a social server
type BloodType string

const (
	BloodTypeAPositive  BloodType = "A_POSITIVE"
	BloodTypeANegative  BloodType = "A_NEGATIVE"
	BloodTypeBPositive  BloodType = "B_POSITIVE"
	BloodTypeBNegative  BloodType = "B_NEGATIVE"
	BloodTypeABPositive BloodType = "AB_POSITIVE"
	BloodTypeABNegative BloodType = "AB_NEGATIVE"
	BloodTypeOPositive  BloodType = "O_POSITIVE"
	BloodTypeONegative  BloodType = "O_NEGATIVE"
	BloodTypeUnknown    BloodType = "UNKNOWN"
)
