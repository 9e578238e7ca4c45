package models

// User is an administrative account. Mutating operations on the catalog
// and enrollments require the ADMIN or SUPER_ADMIN role; user management
// itself is restricted to SUPER_ADMIN.
type User struct {
	ID       int64    `json:"id"`
	Email    string   `json:"email"`
	Password string   `json:"-"`
	Name     string   `json:"name"`
	RoleType RoleType `json:"roleType"`
	ParkID   *int64   `json:"parkId,omitempty"`
}
