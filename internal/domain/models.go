package domain

import "time"

type User struct {
	ID          UserID
	Login       UserLogin
	DisplayName UserDisplayName
}

// Tag is a named label. OwnerID is nil for system tags, which nobody can
// delete.
type Tag struct {
	ID      TagID
	Name    TagName
	OwnerID *UserID
	Aliases TagAliases
}

// IsOwnedBy reports whether userID owns the tag.
func (t Tag) IsOwnedBy(userID UserID) bool {
	return t.OwnerID != nil && *t.OwnerID == userID
}

type Event struct {
	ID             EventID
	Author         User
	ImageIDs       EventImageIDs
	Title          EventTitle
	Description    EventDescription
	Tags           EventTags
	WithAttendance bool
	CreatedAt      time.Time
	ModifiedAt     time.Time
}

type NewUserForm struct {
	Login        UserLogin
	DisplayName  UserDisplayName
	PasswordHash UserPasswordHash
}

type NewTagForm struct {
	Name    TagName
	Aliases TagAliases
}

type NewEventForm struct {
	Title          EventTitle
	Description    EventDescription
	WithAttendance bool
	TagIDs         EventTagIDs
	ImageURLs      EventImageURLs
}

// UpdateEventForm carries a partial update. Nil fields are left untouched.
type UpdateEventForm struct {
	Title          *EventTitle
	Description    *EventDescription
	WithAttendance *bool
	TagIDs         *EventTagIDs
}

// IsEmpty reports whether applying the form would change nothing.
func (f UpdateEventForm) IsEmpty() bool {
	return f.Title == nil && f.Description == nil && f.WithAttendance == nil && f.TagIDs == nil
}
