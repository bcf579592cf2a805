package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/identitylab/user-api/internal/core/domain"
	"github.com/identitylab/user-api/internal/core/ports"
	"github.com/identitylab/user-api/internal/metrics"
)

// AuthService implements signup and signin on top of the user repository and
// the token issuer.
type AuthService struct {
	repo     ports.UserRepository
	password ports.PasswordMatcher
	tokens   ports.TokenIssuer
	log      zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, password ports.PasswordMatcher, tokens ports.TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, password: password, tokens: tokens, log: log}
}

// SignUp registers a new account. The public flow always yields role user;
// a mismatched confirmation fails before the repository is touched.
func (s *AuthService) SignUp(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	user, err := createUser(ctx, s.repo, s.password, in, domain.RoleUser)
	if err != nil {
		return nil, err
	}

	metrics.SignupsTotal.WithLabelValues(string(domain.RoleUser)).Inc()
	s.log.Info().Str("user_id", user.ID).Msg("user signed up")
	return user, nil
}

// SignIn verifies credentials and returns a signed token. Unknown email and
// wrong password are indistinguishable: both surface ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		metrics.SigninsTotal.WithLabelValues("rejected").Inc()
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.CheckCredentials(ctx, normalizeEmail(email), password)
	if err != nil {
		return "", err
	}
	if user == nil {
		metrics.SigninsTotal.WithLabelValues("rejected").Inc()
		return "", domain.ErrInvalidCredentials
	}

	// The claim carries the id only. Role and email are re-resolved from
	// the store on every authorized request.
	token, err := s.tokens.Issue(ports.Claim{UserID: user.ID})
	if err != nil {
		return "", err
	}

	metrics.SigninsTotal.WithLabelValues("ok").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("user signed in")
	return token, nil
}

// createUser runs the shared creation path: confirmation check, hashing, and
// persistence with the role pinned by the caller.
func createUser(ctx context.Context, repo ports.UserRepository, password ports.PasswordMatcher, in ports.SignupInput, role domain.Role) (*domain.User, error) {
	if in.Password != in.PasswordConfirmation {
		return nil, domain.ErrPasswordMismatch
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        normalizeEmail(in.Email),
		Name:         in.Name,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return repo.Create(ctx, user)
}

// normalizeEmail lowercases so uniqueness and lookup are case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
