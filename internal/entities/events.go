package entities

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID       uuid.UUID `gorm:"type:uuid;index;not null" json:"author_id"`
	Title          string    `gorm:"size:256;not null" json:"title"`
	Description    string    `gorm:"type:text;not null" json:"description"`
	WithAttendance bool      `gorm:"not null;default:false" json:"with_attendance"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	ModifiedAt     time.Time `gorm:"not null" json:"modified_at"`
	Author         *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:AuthorID;references:ID" json:"author,omitempty"`
}

func (Event) TableName() string {
	return "events"
}

type EventTag struct {
	EventID uuid.UUID `gorm:"type:uuid;primaryKey" json:"event_id"`
	TagID   uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"tag_id"`
	Event   *Event    `gorm:"constraint:OnDelete:CASCADE;foreignKey:EventID;references:ID" json:"-"`
	Tag     *Tag      `gorm:"constraint:OnDelete:CASCADE;foreignKey:TagID;references:ID" json:"-"`
}

func (EventTag) TableName() string {
	return "event_tags"
}

// EventImage is one slot in the ordered image list of an event. Positions are
// 0-based and unique per event. URL is set only for images seeded from links
// when the event was created.
type EventImage struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_images_event_position,priority:1" json:"event_id"`
	Position int16     `gorm:"not null;uniqueIndex:idx_event_images_event_position,priority:2" json:"position"`
	URL      *string   `gorm:"size:2048" json:"url,omitempty"`
	Event    *Event    `gorm:"constraint:OnDelete:CASCADE;foreignKey:EventID;references:ID" json:"-"`
}

func (EventImage) TableName() string {
	return "event_images"
}
