package handler

import "github.com/identitylab/user-api/internal/core/domain"

type signupRequest struct {
	Email                string `json:"email"                 validate:"required,email,max=200"`
	Name                 string `json:"name"                  validate:"required,max=200"`
	Password             string `json:"password"              validate:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,min=6"`
}

type signinRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateUserRequest struct {
	Email *string `json:"email,omitempty" validate:"omitempty,email,max=200"`
	Name  *string `json:"name,omitempty"  validate:"omitempty,min=1,max=200"`
}

// listUsersQuery binds GET /users query parameters. Patterns are matched as
// literal substrings by the repository.
type listUsersQuery struct {
	Email string `query:"email" validate:"omitempty,max=200"`
	Name  string `query:"name"  validate:"omitempty,max=200"`
	Role  string `query:"role"  validate:"omitempty,oneof=user admin"`
	Limit int64  `query:"limit" validate:"omitempty,min=1,max=200"`
	Page  int64  `query:"page"  validate:"omitempty,min=1"`
}

type signinResponse struct {
	Token string `json:"token"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type userListResponse struct {
	Users []*domain.User `json:"users"`
	Count int            `json:"count"`
}

type messageResponse struct {
	Message string `json:"message"`
}
