package auth

import "github.com/tablemaps/tablemaps-backend/internal/users"

// RegisterRequest captures the public self-registration payload. The role is
// always "user"; elevated roles are granted by an administrator.
type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,max=50"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
}

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateDetailsRequest carries the profile fields a user may change.
type UpdateDetailsRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,max=50"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// UpdatePasswordRequest carries a password rotation.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// AuthResponse contains the minted token and the authenticated user.
type AuthResponse struct {
	Token string         `json:"token"`
	User  *users.UserDTO `json:"user"`
}
