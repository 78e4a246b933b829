// Package events provides storage operations for events, their ordered
// images and their tag links.
//
// Every mutation checks that the acting user is the author of the event
// before it writes anything. Mutations that touch more than one row run in a
// single transaction that first locks the event row.
//
// # Usage
//
//	repo := events.NewRepository(db, log)
//	event, err := repo.Create(ctx, form, authorID)
//	imageID, err := repo.ReserveImage(ctx, event.ID, authorID)
package events

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/evops/catalog/internal/database"
	"github.com/evops/catalog/internal/database/internal/restore"
	"github.com/evops/catalog/internal/domain"
	"github.com/evops/catalog/internal/entities"
	apperrors "github.com/evops/catalog/internal/errors"
	"github.com/evops/catalog/internal/logger"
)

// Repository handles all event database operations.
type Repository struct {
	db  *database.Database
	log *logger.Logger
}

// NewRepository creates a new events repository.
func NewRepository(db *database.Database, log *logger.Logger) *Repository {
	return &Repository{db: db, log: log.With("repo", "EventRepository")}
}

// Find retrieves a fully assembled event.
func (r *Repository) Find(ctx context.Context, id domain.EventID) (domain.Event, error) {
	event, err := r.findAssembled(r.db.DB.WithContext(ctx), id)
	if err != nil {
		return domain.Event{}, database.Failure(r.log, "find event", err)
	}
	return event, nil
}

func (r *Repository) findAssembled(db *gorm.DB, id domain.EventID) (domain.Event, error) {
	var row entities.Event
	err := db.Joins("Author").First(&row, "events.id = ?", id.UUID()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Event{}, apperrors.NotFound("no event with id %s", id)
	}
	if err != nil {
		return domain.Event{}, err
	}
	assembled, err := assemble(db, []entities.Event{row})
	if err != nil {
		return domain.Event{}, err
	}
	return assembled[0], nil
}

// Create inserts an event with its seeded images and tag links in one
// transaction and returns it fully assembled. Images get positions in the
// order their URLs are given.
func (r *Repository) Create(ctx context.Context, form domain.NewEventForm, authorID domain.UserID) (domain.Event, error) {
	id := domain.NewEventID()
	now := database.Now()

	var created domain.Event
	err := r.db.Transact(ctx, func(tx *gorm.DB) error {
		var author entities.User
		err := tx.Select("id").First(&author, "id = ?", authorID.UUID()).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.InvalidArgument("no user with id %s", authorID)
		}
		if err != nil {
			return err
		}
		if err := requireTags(tx, form.TagIDs.Items()); err != nil {
			return err
		}

		row := entities.Event{
			ID:             id.UUID(),
			AuthorID:       authorID.UUID(),
			Title:          form.Title.String(),
			Description:    form.Description.String(),
			WithAttendance: form.WithAttendance,
			CreatedAt:      now,
			ModifiedAt:     now,
		}
		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			return err
		}

		if form.ImageURLs.Len() > 0 {
			images := make([]entities.EventImage, 0, form.ImageURLs.Len())
			for i, u := range form.ImageURLs.Items() {
				url := u.String()
				images = append(images, entities.EventImage{
					ID:       domain.NewEventImageID().UUID(),
					EventID:  row.ID,
					Position: int16(i),
					URL:      &url,
				})
			}
			if err := tx.Omit(clause.Associations).Create(&images).Error; err != nil {
				return err
			}
		}

		if err := insertTagLinks(tx, row.ID, form.TagIDs.Items()); err != nil {
			return err
		}

		created, err = r.findAssembled(tx, id)
		return err
	})
	if err != nil {
		return domain.Event{}, database.Failure(r.log, "create event", err)
	}

	r.log.Debug("Event created", "event_id", id.String(), "author_id", authorID.String())
	return created, nil
}

// Update applies the fields present in form. An empty form writes nothing
// and leaves modified_at alone. Supplied tag IDs replace the current links.
func (r *Repository) Update(ctx context.Context, id domain.EventID, actingUserID domain.UserID, form domain.UpdateEventForm) error {
	if _, err := r.authorize(r.db.DB.WithContext(ctx), id, actingUserID); err != nil {
		return err
	}
	if form.IsEmpty() {
		return nil
	}

	err := r.db.Transact(ctx, func(tx *gorm.DB) error {
		if err := lockEvent(tx, id); err != nil {
			return err
		}

		updates := map[string]any{"modified_at": database.Now()}
		if form.Title != nil {
			updates["title"] = form.Title.String()
		}
		if form.Description != nil {
			updates["description"] = form.Description.String()
		}
		if form.WithAttendance != nil {
			updates["with_attendance"] = *form.WithAttendance
		}
		if err := tx.Model(&entities.Event{}).Where("id = ?", id.UUID()).Updates(updates).Error; err != nil {
			return err
		}

		if form.TagIDs == nil {
			return nil
		}
		tagIDs := form.TagIDs.Items()
		if err := requireTags(tx, tagIDs); err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id.UUID()).Delete(&entities.EventTag{}).Error; err != nil {
			return err
		}
		return insertTagLinks(tx, id.UUID(), tagIDs)
	})
	if err != nil {
		return database.Failure(r.log, "update event", err)
	}

	r.log.Debug("Event updated", "event_id", id.String())
	return nil
}

// Delete removes an event with its images and tag links. It returns the IDs
// of the removed images so the caller can drop the stored files.
func (r *Repository) Delete(ctx context.Context, id domain.EventID, actingUserID domain.UserID) (domain.EventImageIDs, error) {
	if _, err := r.authorize(r.db.DB.WithContext(ctx), id, actingUserID); err != nil {
		return domain.EventImageIDs{}, err
	}

	var images []entities.EventImage
	err := r.db.Transact(ctx, func(tx *gorm.DB) error {
		if err := lockEvent(tx, id); err != nil {
			return err
		}
		if err := tx.Select("id").Where("event_id = ?", id.UUID()).Order("position ASC").Find(&images).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id.UUID()).Delete(&entities.EventTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id.UUID()).Delete(&entities.EventImage{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id.UUID()).Delete(&entities.Event{}).Error
	})
	if err != nil {
		return domain.EventImageIDs{}, database.Failure(r.log, "delete event", err)
	}

	r.log.Debug("Event deleted", "event_id", id.String(), "images", len(images))
	return restore.ImageIDs(images), nil
}

// authorize loads the event row and checks that actingUserID wrote it.
func (r *Repository) authorize(db *gorm.DB, id domain.EventID, actingUserID domain.UserID) (entities.Event, error) {
	var row entities.Event
	err := db.First(&row, "id = ?", id.UUID()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return row, apperrors.NotFound("no event with id %s", id)
	}
	if err != nil {
		return row, database.Failure(r.log, "find event", err)
	}
	if row.AuthorID != actingUserID.UUID() {
		return row, apperrors.Forbidden("user %s is not the author of event %s", actingUserID, id)
	}
	return row, nil
}

// lockEvent takes a row lock on the event for the rest of the transaction.
// SQLite has no row locks and relies on the write lock taken at BEGIN.
func lockEvent(tx *gorm.DB, id domain.EventID) error {
	var row entities.Event
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&row, "id = ?", id.UUID()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("no event with id %s", id)
	}
	return err
}

// requireTags checks the tags one by one, in order, and reports the first
// one that does not exist.
func requireTags(tx *gorm.DB, ids []domain.TagID) error {
	for _, id := range ids {
		var count int64
		if err := tx.Model(&entities.Tag{}).Where("id = ?", id.UUID()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperrors.InvalidArgument("no tag with id %s", id)
		}
	}
	return nil
}

func insertTagLinks(tx *gorm.DB, eventID uuid.UUID, ids []domain.TagID) error {
	if len(ids) == 0 {
		return nil
	}
	links := make([]entities.EventTag, len(ids))
	for i, id := range ids {
		links[i] = entities.EventTag{EventID: eventID, TagID: id.UUID()}
	}
	return tx.Omit(clause.Associations).Create(&links).Error
}
