package events

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/evops/catalog/internal/database/internal/restore"
	"github.com/evops/catalog/internal/domain"
	"github.com/evops/catalog/internal/entities"
)

// taggedRow is one event_tags link joined with its tag.
type taggedRow struct {
	EventID uuid.UUID
	TagID   uuid.UUID
	Name    string
	OwnerID *uuid.UUID
}

// assemble loads images, tags and tag aliases for rows in three batched
// queries and returns the events in the order of rows. Every row must have
// its Author joined.
func assemble(db *gorm.DB, rows []entities.Event) ([]domain.Event, error) {
	if len(rows) == 0 {
		return []domain.Event{}, nil
	}

	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	var images []entities.EventImage
	err := db.Select("id", "event_id", "position").
		Where("event_id IN ?", ids).
		Order("event_id ASC, position ASC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	imagesByEvent := make(map[uuid.UUID][]entities.EventImage, len(rows))
	for _, img := range images {
		imagesByEvent[img.EventID] = append(imagesByEvent[img.EventID], img)
	}

	var links []taggedRow
	err = db.Table("event_tags").
		Select("event_tags.event_id, tags.id AS tag_id, tags.name, tags.owner_id").
		Joins("JOIN tags ON tags.id = event_tags.tag_id").
		Where("event_tags.event_id IN ?", ids).
		Order("event_tags.event_id ASC, tags.id ASC").
		Scan(&links).Error
	if err != nil {
		return nil, err
	}

	var aliasesByTag map[uuid.UUID][]entities.TagAlias
	if len(links) > 0 {
		tagIDs := make([]uuid.UUID, 0, len(links))
		seen := make(map[uuid.UUID]struct{}, len(links))
		for _, link := range links {
			if _, ok := seen[link.TagID]; !ok {
				seen[link.TagID] = struct{}{}
				tagIDs = append(tagIDs, link.TagID)
			}
		}
		var aliases []entities.TagAlias
		err = db.Where("tag_id IN ?", tagIDs).Order("tag_id ASC, alias ASC").Find(&aliases).Error
		if err != nil {
			return nil, err
		}
		aliasesByTag = restore.GroupAliases(aliases)
	}

	tagsByEvent := make(map[uuid.UUID][]domain.Tag, len(rows))
	for _, link := range links {
		tag := restore.Tag(entities.Tag{ID: link.TagID, Name: link.Name, OwnerID: link.OwnerID}, aliasesByTag[link.TagID])
		tagsByEvent[link.EventID] = append(tagsByEvent[link.EventID], tag)
	}

	events := make([]domain.Event, len(rows))
	for i, row := range rows {
		if row.Author == nil {
			return nil, fmt.Errorf("event %s loaded without its author", row.ID)
		}
		events[i] = restore.Event(row, *row.Author, imagesByEvent[row.ID], tagsByEvent[row.ID])
	}
	return events, nil
}
