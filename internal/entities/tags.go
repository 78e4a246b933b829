package entities

import "github.com/google/uuid"

type Tag struct {
	ID      uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name    string     `gorm:"uniqueIndex;size:128;not null" json:"name"`
	OwnerID *uuid.UUID `gorm:"type:uuid;index" json:"owner_id,omitempty"` // nil for system tags
	Owner   *User      `gorm:"constraint:OnDelete:SET NULL;foreignKey:OwnerID;references:ID" json:"-"`
}

func (Tag) TableName() string {
	return "tags"
}

type TagAlias struct {
	TagID uuid.UUID `gorm:"type:uuid;primaryKey" json:"tag_id"`
	Alias string    `gorm:"primaryKey;size:128" json:"alias"`
	Tag   *Tag      `gorm:"constraint:OnDelete:CASCADE;foreignKey:TagID;references:ID" json:"-"`
}

func (TagAlias) TableName() string {
	return "tag_aliases"
}
