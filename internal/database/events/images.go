package events

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/evops/catalog/internal/database"
	"github.com/evops/catalog/internal/database/internal/restore"
	"github.com/evops/catalog/internal/domain"
	"github.com/evops/catalog/internal/entities"
	apperrors "github.com/evops/catalog/internal/errors"
)

// ReserveImage appends an empty image slot to the event and returns its ID.
// The slot takes the position after the current last image. An event that
// already holds domain.EventImagesMax images is rejected.
func (r *Repository) ReserveImage(ctx context.Context, eventID domain.EventID, actingUserID domain.UserID) (domain.EventImageID, error) {
	if _, err := r.authorize(r.db.DB.WithContext(ctx), eventID, actingUserID); err != nil {
		return domain.EventImageID{}, err
	}

	imageID := domain.NewEventImageID()
	var position int64
	err := r.db.Transact(ctx, func(tx *gorm.DB) error {
		if err := lockEvent(tx, eventID); err != nil {
			return err
		}

		err := tx.Model(&entities.EventImage{}).
			Select("COALESCE(MAX(position), -1)").
			Where("event_id = ?", eventID.UUID()).
			Row().Scan(&position)
		if err != nil {
			return err
		}
		position++
		if position >= domain.EventImagesMax {
			return apperrors.AlreadyExists("event %s already has %d images", eventID, domain.EventImagesMax)
		}

		image := entities.EventImage{ID: imageID.UUID(), EventID: eventID.UUID(), Position: int16(position)}
		if err := tx.Omit(clause.Associations).Create(&image).Error; err != nil {
			return err
		}
		return touch(tx, eventID)
	})
	if err != nil {
		return domain.EventImageID{}, database.Failure(r.log, "reserve image", err)
	}

	r.log.Debug("Image reserved", "event_id", eventID.String(), "image_id", imageID.String(), "position", position)
	return imageID, nil
}

// ReorderImages rearranges the images of an event so that order[i] ends up
// at position i. order must name exactly the images the event has.
func (r *Repository) ReorderImages(ctx context.Context, eventID domain.EventID, actingUserID domain.UserID, order domain.EventImageIDs) error {
	if _, err := r.authorize(r.db.DB.WithContext(ctx), eventID, actingUserID); err != nil {
		return err
	}

	err := r.db.Transact(ctx, func(tx *gorm.DB) error {
		if err := lockEvent(tx, eventID); err != nil {
			return err
		}

		var images []entities.EventImage
		if err := tx.Select("id").Where("event_id = ?", eventID.UUID()).Order("position ASC").Find(&images).Error; err != nil {
			return err
		}
		if !restore.ImageIDs(images).SameSet(order) {
			return apperrors.InvalidArgument("image ids do not match the images of event %s", eventID)
		}

		// Park every image above the valid range first so the
		// (event_id, position) index never sees two rows at one position.
		err := tx.Model(&entities.EventImage{}).
			Where("event_id = ?", eventID.UUID()).
			Update("position", gorm.Expr("position + ?", domain.EventImagesMax)).Error
		if err != nil {
			return err
		}
		for i, id := range order.Items() {
			err := tx.Model(&entities.EventImage{}).
				Where("id = ? AND event_id = ?", id.UUID(), eventID.UUID()).
				Update("position", i).Error
			if err != nil {
				return err
			}
		}
		return touch(tx, eventID)
	})
	if err != nil {
		return database.Failure(r.log, "reorder images", err)
	}

	r.log.Debug("Images reordered", "event_id", eventID.String(), "images", order.Len())
	return nil
}

func touch(tx *gorm.DB, eventID domain.EventID) error {
	return tx.Model(&entities.Event{}).Where("id = ?", eventID.UUID()).Update("modified_at", database.Now()).Error
}
