package ports

import (
	"context"

	"github.com/identitylab/user-api/internal/core/domain"
)

// SignupInput is the transient signup payload. PasswordConfirmation must
// equal Password before anything is persisted.
type SignupInput struct {
	Email                string
	Name                 string
	Password             string
	PasswordConfirmation string
}

type AuthService interface {
	// SignUp creates an account with role fixed to user.
	SignUp(ctx context.Context, in SignupInput) (*domain.User, error)

	// SignIn verifies credentials and returns a signed token carrying only
	// the user id.
	SignIn(ctx context.Context, email, password string) (string, error)
}
