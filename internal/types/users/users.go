package users

import "time"

type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
}

// UserPatch is a partial account update applied by an admin; nil fields are
// left untouched.
type UserPatch struct {
	FullName *string `json:"full_name,omitempty"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=admin staff student"`
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}
