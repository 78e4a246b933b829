package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	apperrors "github.com/evops/catalog/internal/errors"
	"github.com/evops/catalog/internal/logger"
)

// Classify maps a storage error to the closest domain error kind. Domain
// errors pass through untouched, and anything unrecognised becomes an opaque
// internal error that still carries the cause.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		return domainErr
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.Wrap(apperrors.CodeNotFound, err, "record not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.Wrap(apperrors.CodeAlreadyExists, err, "record already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.Wrap(apperrors.CodeInvalidArgument, err, "referenced record does not exist")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return apperrors.Internal(err)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return apperrors.Wrap(apperrors.CodeAlreadyExists, err, "record already exists")
		case sqlite3.ErrConstraintForeignKey:
			return apperrors.Wrap(apperrors.CodeInvalidArgument, err, "referenced record does not exist")
		}
		switch sqliteErr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			return apperrors.Wrap(apperrors.CodeAlreadyExists, err, "conflicting concurrent write, retry")
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return apperrors.Wrap(apperrors.CodeAlreadyExists, err, "record already exists")
		case "23503": // foreign_key_violation
			return apperrors.Wrap(apperrors.CodeInvalidArgument, err, "referenced record does not exist")
		case "40001", "40P01", "55P03": // serialization, deadlock, lock_not_available
			return apperrors.Wrap(apperrors.CodeAlreadyExists, err, "conflicting concurrent write, retry")
		}
	}

	return apperrors.Internal(err)
}

// Failure classifies err and logs it when it turns out to be an unexpected
// storage failure. Expected kinds such as NotFound are returned silently.
func Failure(log *logger.Logger, op string, err error) error {
	classified := Classify(err)
	if apperrors.CodeOf(classified) == apperrors.CodeInternal {
		log.Error("storage failure", "op", op, "error", err)
	}
	return classified
}
