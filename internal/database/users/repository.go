// Package users provides storage operations for users and their refresh
// tokens.
//
// # Usage
//
//	repo := users.NewRepository(db, log)
//	id, err := repo.SignUp(ctx, form, fingerprint)
package users

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/evops/catalog/internal/database"
	"github.com/evops/catalog/internal/database/internal/restore"
	"github.com/evops/catalog/internal/domain"
	"github.com/evops/catalog/internal/entities"
	apperrors "github.com/evops/catalog/internal/errors"
	"github.com/evops/catalog/internal/logger"
)

// Repository handles all user database operations.
type Repository struct {
	db  *database.Database
	log *logger.Logger
}

// NewRepository creates a new users repository.
func NewRepository(db *database.Database, log *logger.Logger) *Repository {
	return &Repository{db: db, log: log.With("repo", "UserRepository")}
}

// Find retrieves a user by ID.
func (r *Repository) Find(ctx context.Context, id domain.UserID) (domain.User, error) {
	var row entities.User
	err := r.db.DB.WithContext(ctx).First(&row, "id = ?", id.UUID()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, apperrors.NotFound("no user with id %s", id)
	}
	if err != nil {
		return domain.User{}, database.Failure(r.log, "find user", err)
	}
	return restore.User(row), nil
}

// List returns every user ordered by ID.
func (r *Repository) List(ctx context.Context) ([]domain.User, error) {
	var rows []entities.User
	if err := r.db.DB.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, database.Failure(r.log, "list users", err)
	}
	users := make([]domain.User, len(rows))
	for i, row := range rows {
		users[i] = restore.User(row)
	}
	return users, nil
}

// Create inserts a new user. It is a single insert, so it runs without an
// explicit transaction.
func (r *Repository) Create(ctx context.Context, form domain.NewUserForm) (domain.UserID, error) {
	id := domain.NewUserID()
	if err := r.insertUser(r.db.DB.WithContext(ctx), id, form); err != nil {
		return domain.UserID{}, err
	}
	r.log.Debug("User created", "user_id", id.String(), "login", form.Login.String())
	return id, nil
}

func (r *Repository) insertUser(tx *gorm.DB, id domain.UserID, form domain.NewUserForm) error {
	row := entities.User{
		ID:           id.UUID(),
		Login:        form.Login.String(),
		DisplayName:  form.DisplayName.String(),
		PasswordHash: form.PasswordHash.String(),
	}
	err := database.Failure(r.log, "insert user", tx.Create(&row).Error)
	if apperrors.CodeOf(err) == apperrors.CodeAlreadyExists {
		return apperrors.Wrap(apperrors.CodeAlreadyExists, err, "user with login %q already exists", form.Login.String())
	}
	return err
}

// GetPasswordHash looks up the credentials stored for login. Every failure,
// including storage errors, is reported as wrong credentials so callers
// cannot tell a missing login from a broken database.
func (r *Repository) GetPasswordHash(ctx context.Context, login domain.UserLogin) (domain.UserID, domain.UserPasswordHash, error) {
	var row entities.User
	err := r.db.DB.WithContext(ctx).Select("id", "password_hash").First(&row, "login = ?", login.String()).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warn("Password hash lookup failed", "login", login.String(), "error", err)
		}
		return domain.UserID{}, domain.UserPasswordHash{}, apperrors.Forbidden("wrong credentials")
	}
	return domain.UserID(row.ID), restore.PasswordHash(row), nil
}

// InsertOrReplaceRefreshToken stores fingerprint as the only refresh token of
// userID, replacing any previous one.
func (r *Repository) InsertOrReplaceRefreshToken(ctx context.Context, userID domain.UserID, fingerprint domain.RefreshTokenFingerprint) error {
	if err := r.upsertRefreshToken(r.db.DB.WithContext(ctx), userID, fingerprint); err != nil {
		return err
	}
	r.log.Debug("Refresh token replaced", "user_id", userID.String())
	return nil
}

func (r *Repository) upsertRefreshToken(tx *gorm.DB, userID domain.UserID, fingerprint domain.RefreshTokenFingerprint) error {
	row := entities.RefreshToken{UserID: userID.UUID(), Fingerprint: fingerprint.Bytes()}
	err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"fingerprint"}),
	}).Create(&row).Error

	err = database.Failure(r.log, "upsert refresh token", err)
	if apperrors.CodeOf(err) == apperrors.CodeInvalidArgument {
		return apperrors.Wrap(apperrors.CodeNotFound, err, "no user with id %s", userID)
	}
	return err
}

// RefreshTokenOwner returns the user holding fingerprint.
func (r *Repository) RefreshTokenOwner(ctx context.Context, fingerprint domain.RefreshTokenFingerprint) (domain.UserID, error) {
	var row entities.RefreshToken
	err := r.db.DB.WithContext(ctx).Select("user_id").First(&row, "fingerprint = ?", fingerprint.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserID{}, apperrors.Unauthorized("invalid refresh token")
	}
	if err != nil {
		return domain.UserID{}, database.Failure(r.log, "find refresh token", err)
	}
	return domain.UserID(row.UserID), nil
}

// RefreshTokenFingerprintExists returns nil when fingerprint belongs to a
// live refresh token.
func (r *Repository) RefreshTokenFingerprintExists(ctx context.Context, fingerprint domain.RefreshTokenFingerprint) error {
	_, err := r.RefreshTokenOwner(ctx, fingerprint)
	return err
}

// SignUp creates the user together with their first refresh token. Either
// both rows are written or neither is.
func (r *Repository) SignUp(ctx context.Context, form domain.NewUserForm, fingerprint domain.RefreshTokenFingerprint) (domain.UserID, error) {
	id := domain.NewUserID()
	err := r.db.Transact(ctx, func(tx *gorm.DB) error {
		if err := r.insertUser(tx, id, form); err != nil {
			return err
		}
		return r.upsertRefreshToken(tx, id, fingerprint)
	})
	if err != nil {
		return domain.UserID{}, err
	}
	r.log.Debug("User signed up", "user_id", id.String(), "login", form.Login.String())
	return id, nil
}
