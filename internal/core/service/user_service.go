package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/identitylab/user-api/internal/core/domain"
	"github.com/identitylab/user-api/internal/core/ports"
	"github.com/identitylab/user-api/internal/metrics"
)

// UserCache is a read-side cache for user records. Mutations must invalidate;
// the authorization path never reads from it.
type UserCache interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
	Invalidate(ctx context.Context, id string) error
}

// UserService implements the admin-facing user operations plus the
// owner-or-admin update path.
type UserService struct {
	repo     ports.UserRepository
	password ports.PasswordMatcher
	cache    UserCache
	log      zerolog.Logger
}

func NewUserService(repo ports.UserRepository, password ports.PasswordMatcher, cache UserCache, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, password: password, cache: cache, log: log}
}

// CreateAdmin creates an account with role admin. The route is admin-gated;
// the confirmation rule is the same as public signup.
func (s *UserService) CreateAdmin(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	user, err := createUser(ctx, s.repo, s.password, in, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	metrics.SignupsTotal.WithLabelValues(string(domain.RoleAdmin)).Inc()
	s.log.Info().Str("user_id", user.ID).Msg("admin user created")
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err != nil {
			s.log.Warn().Err(err).Str("user_id", id).Msg("cache read failed, falling back to store")
		} else if cached != nil {
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			return cached, nil
		} else {
			metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, user); err != nil {
			s.log.Warn().Err(err).Str("user_id", id).Msg("cache write failed")
		}
	}
	return user, nil
}

// UpdateUser applies profile changes. Admission: actor is admin, or actor
// owns the record. The rule lives here rather than in the route guard
// because it needs the target id, not static route metadata.
func (s *UserService) UpdateUser(ctx context.Context, actor *domain.User, id string, update ports.UserUpdate) (*domain.User, error) {
	if !actor.CanMutate(id) {
		metrics.AuthzDenialsTotal.WithLabelValues("ownership").Inc()
		return nil, domain.ErrForbidden
	}

	if update.Email != nil {
		normalized := normalizeEmail(*update.Email)
		update.Email = &normalized
	}

	user, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.log.Info().Str("user_id", id).Str("actor_id", actor.ID).Msg("user updated")
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) ListUsers(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	return s.repo.FindMany(ctx, filter)
}

func (s *UserService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("user_id", id).Msg("cache invalidation failed")
	}
}
