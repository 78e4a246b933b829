package domain

import (
	"slices"

	apperrors "github.com/evops/catalog/internal/errors"
)

const (
	TagAliasesMax  = 16
	EventImagesMax = 10
	EventTagsMax   = 10
)

func checkUnique[T comparable](field string, items []T) error {
	seen := make(map[T]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			return apperrors.Validation("%s must not contain duplicates", field)
		}
		seen[item] = struct{}{}
	}
	return nil
}

// TagAliases is the set of alternative names of a tag.
type TagAliases struct{ items []TagAlias }

func NewTagAliases(aliases []TagAlias) (TagAliases, error) {
	if err := checkVar("tag aliases", aliases, "max=16"); err != nil {
		return TagAliases{}, err
	}
	if err := checkUnique("tag aliases", aliases); err != nil {
		return TagAliases{}, err
	}
	return TagAliases{items: slices.Clone(aliases)}, nil
}

func (a TagAliases) Items() []TagAlias { return slices.Clone(a.items) }
func (a TagAliases) Len() int          { return len(a.items) }

// EventImageURLs seeds the images of a new event, in display order.
type EventImageURLs struct{ items []EventImageURL }

func NewEventImageURLs(urls []EventImageURL) (EventImageURLs, error) {
	if err := checkVar("image urls", urls, "max=10"); err != nil {
		return EventImageURLs{}, err
	}
	return EventImageURLs{items: slices.Clone(urls)}, nil
}

func (u EventImageURLs) Items() []EventImageURL { return slices.Clone(u.items) }
func (u EventImageURLs) Len() int               { return len(u.items) }

// EventImageIDs lists the images of an event ordered by position.
type EventImageIDs struct{ items []EventImageID }

func NewEventImageIDs(ids []EventImageID) (EventImageIDs, error) {
	if err := checkVar("image ids", ids, "max=10"); err != nil {
		return EventImageIDs{}, err
	}
	if err := checkUnique("image ids", ids); err != nil {
		return EventImageIDs{}, err
	}
	return EventImageIDs{items: slices.Clone(ids)}, nil
}

func (ids EventImageIDs) Items() []EventImageID { return slices.Clone(ids.items) }
func (ids EventImageIDs) Len() int              { return len(ids.items) }

// SameSet reports whether both lists hold the same ids, ignoring order.
func (ids EventImageIDs) SameSet(other EventImageIDs) bool {
	if len(ids.items) != len(other.items) {
		return false
	}
	for _, id := range other.items {
		if !slices.Contains(ids.items, id) {
			return false
		}
	}
	return true
}

type EventTagIDs struct{ items []TagID }

func NewEventTagIDs(ids []TagID) (EventTagIDs, error) {
	if err := checkVar("tag ids", ids, "max=10"); err != nil {
		return EventTagIDs{}, err
	}
	if err := checkUnique("tag ids", ids); err != nil {
		return EventTagIDs{}, err
	}
	return EventTagIDs{items: slices.Clone(ids)}, nil
}

func (ids EventTagIDs) Items() []TagID { return slices.Clone(ids.items) }
func (ids EventTagIDs) Len() int       { return len(ids.items) }

// EventTags holds the tags attached to an event. It is only ever built
// from storage.
type EventTags struct{ items []Tag }

func (t EventTags) Items() []Tag { return slices.Clone(t.items) }
func (t EventTags) Len() int     { return len(t.items) }
