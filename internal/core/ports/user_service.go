package ports

import (
	"context"

	"github.com/identitylab/user-api/internal/core/domain"
)

type UserService interface {
	// CreateAdmin creates an account with role admin. Callers are expected
	// to be admin-gated at the route level.
	CreateAdmin(ctx context.Context, in SignupInput) (*domain.User, error)

	GetUser(ctx context.Context, id string) (*domain.User, error)

	// UpdateUser applies profile changes to the record identified by id.
	// The actor must be an admin or the record's owner.
	UpdateUser(ctx context.Context, actor *domain.User, id string, update UserUpdate) (*domain.User, error)

	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context, filter UserFilter) ([]*domain.User, error)
}
