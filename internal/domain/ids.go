package domain

import (
	"github.com/google/uuid"

	apperrors "github.com/evops/catalog/internal/errors"
)

// Ids are UUIDv7 values, so ascending id order follows creation order and
// doubles as the pagination cursor.
type (
	UserID       uuid.UUID
	TagID        uuid.UUID
	EventID      uuid.UUID
	EventImageID uuid.UUID
)

func newV7() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

func parseUUID(kind, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.Validation("%s %q is not a valid id", kind, raw)
	}
	return id, nil
}

func NewUserID() UserID { return UserID(newV7()) }

func ParseUserID(raw string) (UserID, error) {
	id, err := parseUUID("user id", raw)
	return UserID(id), err
}

func (id UserID) UUID() uuid.UUID { return uuid.UUID(id) }
func (id UserID) String() string  { return uuid.UUID(id).String() }

func NewTagID() TagID { return TagID(newV7()) }

func ParseTagID(raw string) (TagID, error) {
	id, err := parseUUID("tag id", raw)
	return TagID(id), err
}

func (id TagID) UUID() uuid.UUID { return uuid.UUID(id) }
func (id TagID) String() string  { return uuid.UUID(id).String() }

func NewEventID() EventID { return EventID(newV7()) }

func ParseEventID(raw string) (EventID, error) {
	id, err := parseUUID("event id", raw)
	return EventID(id), err
}

func (id EventID) UUID() uuid.UUID { return uuid.UUID(id) }
func (id EventID) String() string  { return uuid.UUID(id).String() }

func NewEventImageID() EventImageID { return EventImageID(newV7()) }

func ParseEventImageID(raw string) (EventImageID, error) {
	id, err := parseUUID("event image id", raw)
	return EventImageID(id), err
}

func (id EventImageID) UUID() uuid.UUID { return uuid.UUID(id) }
func (id EventImageID) String() string  { return uuid.UUID(id).String() }
