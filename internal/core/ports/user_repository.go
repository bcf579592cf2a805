package ports

import (
	"context"

	"github.com/identitylab/user-api/internal/core/domain"
)

// UserFilter narrows a listing to records whose field matches a pattern.
// Field is one of "email", "name", "role"; Pattern is treated as a literal
// substring by the repository, never as raw query syntax.
type UserFilter struct {
	Email string
	Name  string
	Role  string
	Limit int64
	Page  int64
}

// UserUpdate carries the mutable profile fields. Nil means "keep current".
// Role and password are deliberately absent: neither is updatable here.
type UserUpdate struct {
	Email *string
	Name  *string
}

// UserRepository defines the persistence contract for user records. It is the
// sole arbiter of email uniqueness: Create must reject the loser of a
// concurrent duplicate signup with domain.ErrEmailTaken.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindMany(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	Update(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id string) error

	// CheckCredentials looks up the account by email and compares the
	// password against the stored hash. Unknown email and wrong password
	// both return (nil, nil): callers cannot distinguish the two cases.
	CheckCredentials(ctx context.Context, email, password string) (*domain.User, error)
}
