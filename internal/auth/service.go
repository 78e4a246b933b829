package auth

import (
	"context"
	"errors"

	"github.com/evops/catalog/internal/config"
	"github.com/evops/catalog/internal/database/users"
	"github.com/evops/catalog/internal/domain"
	apperrors "github.com/evops/catalog/internal/errors"
	"github.com/evops/catalog/internal/logger"
)

// UserRepository defines the storage operations the service relies on.
type UserRepository interface {
	GetPasswordHash(ctx context.Context, login domain.UserLogin) (domain.UserID, domain.UserPasswordHash, error)
	InsertOrReplaceRefreshToken(ctx context.Context, userID domain.UserID, fingerprint domain.RefreshTokenFingerprint) error
	RefreshTokenOwner(ctx context.Context, fingerprint domain.RefreshTokenFingerprint) (domain.UserID, error)
	SignUp(ctx context.Context, form domain.NewUserForm, fingerprint domain.RefreshTokenFingerprint) (domain.UserID, error)
}

var _ UserRepository = (*users.Repository)(nil)

// Session is what a successful sign-up, log-in or refresh hands back. The
// refresh token is only ever visible here.
type Session struct {
	UserID       domain.UserID
	RefreshToken string
}

// Service handles credential checks and refresh token rotation.
type Service struct {
	users  UserRepository
	config config.Auth
	log    *logger.Logger
}

// NewService creates a new authentication service.
func NewService(users UserRepository, cfg config.Auth, log *logger.Logger) *Service {
	return &Service{
		users:  users,
		config: cfg,
		log:    log.With("service", "AuthService"),
	}
}

// SignUp registers a user and issues their first refresh token.
func (s *Service) SignUp(ctx context.Context, login, displayName, password string) (Session, error) {
	l, err := domain.NewUserLogin(login)
	if err != nil {
		return Session{}, err
	}
	name, err := domain.NewUserDisplayName(displayName)
	if err != nil {
		return Session{}, err
	}
	hashed, err := HashPassword(password, s.config.BcryptCost)
	if errors.Is(err, ErrPasswordTooShort) || errors.Is(err, ErrPasswordTooLong) {
		return Session{}, apperrors.Validation("%s", err.Error())
	}
	if err != nil {
		return Session{}, apperrors.Internal(err)
	}
	hash, err := domain.NewUserPasswordHash(hashed)
	if err != nil {
		return Session{}, err
	}

	token, fingerprint, err := GenerateRefreshToken()
	if err != nil {
		return Session{}, apperrors.Internal(err)
	}

	id, err := s.users.SignUp(ctx, domain.NewUserForm{Login: l, DisplayName: name, PasswordHash: hash}, fingerprint)
	if err != nil {
		return Session{}, err
	}
	s.log.Info("User signed up", "user_id", id.String())
	return Session{UserID: id, RefreshToken: token}, nil
}

// LogIn checks the password and rotates the refresh token of the user.
func (s *Service) LogIn(ctx context.Context, login, password string) (Session, error) {
	l, err := domain.NewUserLogin(login)
	if err != nil {
		return Session{}, apperrors.Forbidden("wrong credentials")
	}
	id, hash, err := s.users.GetPasswordHash(ctx, l)
	if err != nil {
		return Session{}, err
	}
	if err := CheckPassword(password, hash.String()); err != nil {
		if !errors.Is(err, ErrInvalidPassword) {
			s.log.Warn("Password check failed", "user_id", id.String(), "error", err)
		}
		return Session{}, apperrors.Forbidden("wrong credentials")
	}

	return s.rotate(ctx, id)
}

// Refresh exchanges a live refresh token for a new one. The old token stops
// working.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	fingerprint, err := Fingerprint(refreshToken)
	if err != nil {
		return Session{}, apperrors.Internal(err)
	}
	id, err := s.users.RefreshTokenOwner(ctx, fingerprint)
	if err != nil {
		return Session{}, err
	}
	return s.rotate(ctx, id)
}

func (s *Service) rotate(ctx context.Context, id domain.UserID) (Session, error) {
	token, fingerprint, err := GenerateRefreshToken()
	if err != nil {
		return Session{}, apperrors.Internal(err)
	}
	if err := s.users.InsertOrReplaceRefreshToken(ctx, id, fingerprint); err != nil {
		return Session{}, err
	}
	s.log.Debug("Refresh token issued", "user_id", id.String())
	return Session{UserID: id, RefreshToken: token}, nil
}
