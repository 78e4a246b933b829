package entities

import "github.com/google/uuid"

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Login        string    `gorm:"uniqueIndex;size:32;not null" json:"login"` // stored lowercased
	DisplayName  string    `gorm:"size:256;not null" json:"display_name"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// RefreshToken keeps the fingerprint of the single live refresh token of a
// user. Issuing a new token replaces the row.
type RefreshToken struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Fingerprint []byte    `gorm:"uniqueIndex;not null" json:"-"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
