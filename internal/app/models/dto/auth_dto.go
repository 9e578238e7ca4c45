package dto

// LoginRequest carries admin credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the authenticated user
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expiresIn"`
	User      UserResponse `json:"user"`
}

// UserRequest carries admin user creation data (SUPER_ADMIN only)
type UserRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required,max=255"`
	RoleType string `json:"roleType" binding:"required" example:"ADMIN"`
	ParkID   *int64 `json:"parkId,omitempty"`
}

// UserResponse is the admin user view returned by the API
type UserResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	RoleType string `json:"roleType"`
	ParkID   *int64 `json:"parkId,omitempty"`
}
