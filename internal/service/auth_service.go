package service

import (
	"context"
	"errors"
	"time"

	"courseapp/internal/model"
	"courseapp/internal/repository"
	"courseapp/internal/util"

	"github.com/rs/zerolog"
)

var (
	ErrPrincipalNotFound  = errors.New("account not found")
	ErrInvalidCredentials = errors.New("incorrect password")
)

// SignupInput carries validated signup fields into the credential store.
type SignupInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Session is what a successful signin hands back to the client.
type Session struct {
	Token     string
	FirstName string
}

// AuthService implements signup and signin for both principal kinds. The kind
// selects which signing secret the issued token is bound to.
type AuthService interface {
	Signup(ctx context.Context, kind model.PrincipalKind, in SignupInput) (string, error)
	Signin(ctx context.Context, kind model.PrincipalKind, email, password string) (*Session, error)
}

type authService struct {
	repo        repository.PrincipalRepository
	userSecret  string
	adminSecret string
	tokenTTL    time.Duration
	logger      zerolog.Logger
}

func NewAuthService(repo repository.PrincipalRepository, userSecret, adminSecret string, tokenTTL time.Duration, logger zerolog.Logger) AuthService {
	return &authService{
		repo:        repo,
		userSecret:  userSecret,
		adminSecret: adminSecret,
		tokenTTL:    tokenTTL,
		logger:      logger.With().Str("service", "AuthService").Logger(),
	}
}

func (s *authService) secretFor(kind model.PrincipalKind) string {
	if kind == model.KindAdmin {
		return s.adminSecret
	}
	return s.userSecret
}

// Signup hashes the password and creates the principal. A duplicate email
// within the kind surfaces as repository.ErrDuplicateEmail.
func (s *authService) Signup(ctx context.Context, kind model.PrincipalKind, in SignupInput) (string, error) {
	hash, err := util.HashPassword(in.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return "", err
	}

	p := &model.Principal{
		Kind:         kind,
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return "", err
	}
	return p.ID, nil
}

// Signin verifies credentials and issues a bearer token signed with the
// kind's secret.
func (s *authService) Signin(ctx context.Context, kind model.PrincipalKind, email, password string) (*Session, error) {
	p, err := s.repo.GetByEmail(ctx, kind, email)
	if err != nil {
		s.logger.Error().Err(err).Str("kind", string(kind)).Msg("Failed to look up principal")
		return nil, err
	}
	if p == nil {
		return nil, ErrPrincipalNotFound
	}
	if !util.CheckPassword(p.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(p.ID, s.secretFor(kind), s.tokenTTL)
	if err != nil {
		s.logger.Error().Err(err).Str("kind", string(kind)).Msg("Failed to issue token")
		return nil, err
	}
	return &Session{Token: token, FirstName: p.FirstName}, nil
}
