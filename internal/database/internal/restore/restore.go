// Package restore turns stored rows back into domain entities. It owns the
// process-wide domain.Restorer, and the internal/ rule keeps it out of reach
// of everything outside the database packages.
package restore

import (
	"github.com/google/uuid"

	"github.com/evops/catalog/internal/domain"
	"github.com/evops/catalog/internal/entities"
)

var r = domain.ClaimRestorer()

func User(row entities.User) domain.User {
	return domain.User{
		ID:          domain.UserID(row.ID),
		Login:       r.UserLogin(row.Login),
		DisplayName: r.UserDisplayName(row.DisplayName),
	}
}

func PasswordHash(row entities.User) domain.UserPasswordHash {
	return r.UserPasswordHash(row.PasswordHash)
}

// Tag assembles a tag from its row and alias rows. Aliases keep the order
// they are given in.
func Tag(row entities.Tag, aliases []entities.TagAlias) domain.Tag {
	names := make([]string, 0, len(aliases))
	for _, a := range aliases {
		names = append(names, a.Alias)
	}
	tag := domain.Tag{
		ID:      domain.TagID(row.ID),
		Name:    r.TagName(row.Name),
		Aliases: r.TagAliases(names),
	}
	if row.OwnerID != nil {
		owner := domain.UserID(*row.OwnerID)
		tag.OwnerID = &owner
	}
	return tag
}

// GroupAliases indexes alias rows by tag id.
func GroupAliases(rows []entities.TagAlias) map[uuid.UUID][]entities.TagAlias {
	grouped := make(map[uuid.UUID][]entities.TagAlias)
	for _, row := range rows {
		grouped[row.TagID] = append(grouped[row.TagID], row)
	}
	return grouped
}

// Event assembles an event. images must already be sorted by position.
func Event(row entities.Event, author entities.User, images []entities.EventImage, tags []domain.Tag) domain.Event {
	return domain.Event{
		ID:             domain.EventID(row.ID),
		Author:         User(author),
		ImageIDs:       ImageIDs(images),
		Title:          r.EventTitle(row.Title),
		Description:    r.EventDescription(row.Description),
		Tags:           r.EventTags(tags),
		WithAttendance: row.WithAttendance,
		CreatedAt:      row.CreatedAt.UTC(),
		ModifiedAt:     row.ModifiedAt.UTC(),
	}
}

// ImageIDs converts image rows, already sorted by position, into the
// ordered id list.
func ImageIDs(images []entities.EventImage) domain.EventImageIDs {
	ids := make([]domain.EventImageID, len(images))
	for i, img := range images {
		ids[i] = domain.EventImageID(img.ID)
	}
	return r.EventImageIDs(ids)
}
