package restore

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/evops/catalog/internal/domain"
	"github.com/evops/catalog/internal/entities"
)

func TestTag(t *testing.T) {
	owner := uuid.Must(uuid.NewV7())
	row := entities.Tag{ID: uuid.Must(uuid.NewV7()), Name: "rust", OwnerID: &owner}
	aliases := []entities.TagAlias{{TagID: row.ID, Alias: "rs"}, {TagID: row.ID, Alias: "rustlang"}}

	tag := Tag(row, aliases)

	assert.Equal(t, domain.TagID(row.ID), tag.ID)
	assert.Equal(t, "rust", tag.Name.String())
	assert.True(t, tag.IsOwnedBy(domain.UserID(owner)))
	items := tag.Aliases.Items()
	assert.Len(t, items, 2)
	assert.Equal(t, "rs", items[0].String())
}

func TestTag_SystemTag(t *testing.T) {
	tag := Tag(entities.Tag{ID: uuid.Must(uuid.NewV7()), Name: "music"}, nil)
	assert.Nil(t, tag.OwnerID)
	assert.Zero(t, tag.Aliases.Len())
}

func TestGroupAliases(t *testing.T) {
	a, b := uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7())
	grouped := GroupAliases([]entities.TagAlias{{TagID: a, Alias: "x"}, {TagID: b, Alias: "y"}, {TagID: a, Alias: "z"}})
	assert.Len(t, grouped[a], 2)
	assert.Len(t, grouped[b], 1)
}

func TestEvent(t *testing.T) {
	author := entities.User{ID: uuid.Must(uuid.NewV7()), Login: "alice", DisplayName: "Alice"}
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	row := entities.Event{
		ID: uuid.Must(uuid.NewV7()), AuthorID: author.ID, Title: "Meetup", Description: "Monthly",
		WithAttendance: true, CreatedAt: created, ModifiedAt: created,
	}
	images := []entities.EventImage{{ID: uuid.Must(uuid.NewV7()), Position: 0}, {ID: uuid.Must(uuid.NewV7()), Position: 1}}

	ev := Event(row, author, images, nil)

	assert.Equal(t, "alice", ev.Author.Login.String())
	assert.Equal(t, "Meetup", ev.Title.String())
	assert.True(t, ev.WithAttendance)
	assert.Equal(t, []domain.EventImageID{domain.EventImageID(images[0].ID), domain.EventImageID(images[1].ID)}, ev.ImageIDs.Items())
	assert.Equal(t, time.UTC, ev.CreatedAt.Location())
	assert.True(t, created.Equal(ev.CreatedAt))
	assert.Zero(t, ev.Tags.Len())
}
