// Package tags provides storage operations for tags and their aliases.
//
// # Usage
//
//	repo := tags.NewRepository(db, log)
//	id, err := repo.Create(ctx, domain.NewTagForm{Name: name}, &ownerID)
package tags

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

// Repository handles all tag database operations.
type Repository struct {
	db  *database.Database
	log *logger.Logger
}

// NewRepository creates a new tags repository.
func NewRepository(db *database.Database, log *logger.Logger) *Repository {
	return &Repository{db: db, log: log.With("repo", "TagRepository")}
}

// Find retrieves a tag with its aliases.
func (r *Repository) Find(ctx context.Context, id domain.TagID) (domain.Tag, error) {
	db := r.db.DB.WithContext(ctx)

	var row entities.Tag
	err := db.First(&row, "id = ?", id.UUID()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Tag{}, apperrors.NotFound("no tag with id %s", id)
	}
	if err != nil {
		return domain.Tag{}, database.Failure(r.log, "find tag", err)
	}

	var aliases []entities.TagAlias
	if err := db.Where("tag_id = ?", row.ID).Order("alias ASC").Find(&aliases).Error; err != nil {
		return domain.Tag{}, database.Failure(r.log, "find tag aliases", err)
	}
	return restore.Tag(row, aliases), nil
}

// List returns up to limit tags with IDs strictly greater than lastID, in
// ascending ID order. A nil lastID starts from the beginning.
func (r *Repository) List(ctx context.Context, lastID *domain.TagID, limit domain.Limit) ([]domain.Tag, error) {
	db := r.db.DB.WithContext(ctx)

	query := db.Order("id ASC").Limit(limit.Int())
	if lastID != nil {
		query = query.Where("id > ?", lastID.UUID())
	}
	var rows []entities.Tag
	if err := query.Find(&rows).Error; err != nil {
		return nil, database.Failure(r.log, "list tags", err)
	}
	if len(rows) == 0 {
		return []domain.Tag{}, nil
	}

	ids := make([]any, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	var aliases []entities.TagAlias
	if err := db.Where("tag_id IN ?", ids).Order("tag_id ASC, alias ASC").Find(&aliases).Error; err != nil {
		return nil, database.Failure(r.log, "list tag aliases", err)
	}
	grouped := restore.GroupAliases(aliases)

	tags := make([]domain.Tag, len(rows))
	for i, row := range rows {
		tags[i] = restore.Tag(row, grouped[row.ID])
	}
	return tags, nil
}

// Create inserts a tag and its aliases in one transaction. ownerID is nil for
// system tags.
func (r *Repository) Create(ctx context.Context, form domain.NewTagForm, ownerID *domain.UserID) (domain.TagID, error) {
	id := domain.NewTagID()
	row := entities.Tag{ID: id.UUID(), Name: form.Name.String()}
	if ownerID != nil {
		owner := ownerID.UUID()
		row.OwnerID = &owner
	}

	err := r.db.Transact(ctx, func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			return err
		}
		if form.Aliases.Len() == 0 {
			return nil
		}
		aliases := make([]entities.TagAlias, 0, form.Aliases.Len())
		for _, alias := range form.Aliases.Items() {
			aliases = append(aliases, entities.TagAlias{TagID: row.ID, Alias: alias.String()})
		}
		return tx.Omit(clause.Associations).Create(&aliases).Error
	})

	err = database.Failure(r.log, "create tag", err)
	switch apperrors.CodeOf(err) {
	case "":
	case apperrors.CodeAlreadyExists:
		return domain.TagID{}, apperrors.Wrap(apperrors.CodeAlreadyExists, err, "tag %q already exists", form.Name.String())
	case apperrors.CodeInvalidArgument:
		return domain.TagID{}, apperrors.Wrap(apperrors.CodeInvalidArgument, err, "no user with id %s", ownerID)
	default:
		return domain.TagID{}, err
	}

	r.log.Debug("Tag created", "tag_id", id.String(), "name", form.Name.String())
	return id, nil
}

// Delete removes a tag owned by actingUserID, together with its aliases and
// every link to an event. Events that lose the tag get their modified_at
// bumped. System tags have no owner and cannot be deleted.
func (r *Repository) Delete(ctx context.Context, id domain.TagID, actingUserID domain.UserID) error {
	tag, err := r.Find(ctx, id)
	if err != nil {
		return err
	}
	if !tag.IsOwnedBy(actingUserID) {
		return apperrors.Forbidden("user %s cannot delete tag %s", actingUserID, id)
	}

	err = r.db.Transact(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id.UUID()).Delete(&entities.TagAlias{}).Error; err != nil {
			return err
		}
		linked := tx.Model(&entities.EventTag{}).Select("event_id").Where("tag_id = ?", id.UUID())
		if err := tx.Model(&entities.Event{}).Where("id IN (?)", linked).Update("modified_at", database.Now()).Error; err != nil {
			return err
		}
		if err := tx.Where("tag_id = ?", id.UUID()).Delete(&entities.EventTag{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id.UUID()).Delete(&entities.Tag{}).Error
	})
	if err != nil {
		return database.Failure(r.log, "delete tag", err)
	}

	r.log.Debug("Tag deleted", "tag_id", id.String())
	return nil
}
