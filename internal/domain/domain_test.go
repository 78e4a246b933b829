package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/evops/catalog/internal/errors"
)

func TestNewUserLogin(t *testing.T) {
	login, err := NewUserLogin("  Alice.Smith_1 ")
	require.NoError(t, err)
	assert.Equal(t, "alice.smith_1", login.String())

	for _, raw := range []string{"", "ab", strings.Repeat("a", 33), "bad login", "ünï"} {
		_, err := NewUserLogin(raw)
		assert.True(t, apperrors.Is(err, apperrors.ErrValidation), "login %q", raw)
	}
}

func TestNewUserLogin_CaseInsensitive(t *testing.T) {
	a, err := NewUserLogin("Alice")
	require.NoError(t, err)
	b, err := NewUserLogin("ALICE")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBoundedStrings(t *testing.T) {
	tests := []struct {
		name string
		ctor func(string) error
		max  int
	}{
		{"display name", func(s string) error { _, err := NewUserDisplayName(s); return err }, UserDisplayNameMaxLen},
		{"tag name", func(s string) error { _, err := NewTagName(s); return err }, TagNameMaxLen},
		{"tag alias", func(s string) error { _, err := NewTagAlias(s); return err }, TagAliasMaxLen},
		{"event title", func(s string) error { _, err := NewEventTitle(s); return err }, EventTitleMaxLen},
		{"event description", func(s string) error { _, err := NewEventDescription(s); return err }, EventDescriptionMaxLen},
		{"search term", func(s string) error { _, err := NewSearchTerm(s); return err }, SearchTermMaxLen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, tt.ctor("ж"))
			assert.NoError(t, tt.ctor(strings.Repeat("ж", tt.max)))
			assert.True(t, apperrors.Is(tt.ctor(strings.Repeat("ж", tt.max+1)), apperrors.ErrValidation))
			assert.True(t, apperrors.Is(tt.ctor("   "), apperrors.ErrValidation))
		})
	}
}

func TestNewTagName_RejectsControlCharacters(t *testing.T) {
	_, err := NewTagName("go\x00lang")
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	desc, err := NewEventDescription("line one\nline two")
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", desc.String())
}

func TestNewRefreshTokenFingerprint(t *testing.T) {
	raw := make([]byte, RefreshTokenFingerprintLen)
	raw[0] = 7
	f, err := NewRefreshTokenFingerprint(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, f.Bytes())

	_, err = NewRefreshTokenFingerprint(raw[:31])
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestNewEventImageURL(t *testing.T) {
	_, err := NewEventImageURL("https://cdn.example.com/a.png")
	assert.NoError(t, err)

	_, err = NewEventImageURL("not a url")
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestLimit(t *testing.T) {
	l, err := NewLimit(LimitMax)
	require.NoError(t, err)
	assert.Equal(t, LimitMax, l.Int())

	_, err = NewLimit(0)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
	_, err = NewLimit(LimitMax + 1)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	assert.Equal(t, DefaultLimit, LimitOrDefault(-5).Int())
	assert.Equal(t, 7, LimitOrDefault(7).Int())
	assert.Equal(t, DefaultLimit, Limit{}.Int())
}

func TestCollections_Capacity(t *testing.T) {
	imageIDs := make([]EventImageID, EventImagesMax+1)
	for i := range imageIDs {
		imageIDs[i] = NewEventImageID()
	}
	_, err := NewEventImageIDs(imageIDs[:EventImagesMax])
	assert.NoError(t, err)
	_, err = NewEventImageIDs(imageIDs)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	tagIDs := make([]TagID, EventTagsMax+1)
	for i := range tagIDs {
		tagIDs[i] = NewTagID()
	}
	_, err = NewEventTagIDs(tagIDs)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	aliases := make([]TagAlias, TagAliasesMax+1)
	for i := range aliases {
		aliases[i] = TagAlias{value: strings.Repeat("a", i+1)}
	}
	_, err = NewTagAliases(aliases)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestCollections_Duplicates(t *testing.T) {
	id := NewTagID()
	_, err := NewEventTagIDs([]TagID{id, id})
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	a, _ := NewTagAlias("golang")
	_, err = NewTagAliases([]TagAlias{a, a})
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestEventImageIDs_SameSet(t *testing.T) {
	a, b, c := NewEventImageID(), NewEventImageID(), NewEventImageID()
	ab, _ := NewEventImageIDs([]EventImageID{a, b})
	ba, _ := NewEventImageIDs([]EventImageID{b, a})
	ac, _ := NewEventImageIDs([]EventImageID{a, c})
	abc, _ := NewEventImageIDs([]EventImageID{a, b, c})

	assert.True(t, ab.SameSet(ba))
	assert.False(t, ab.SameSet(ac))
	assert.False(t, ab.SameSet(abc))
}

func TestIDs_CreationOrder(t *testing.T) {
	first := NewEventID()
	second := NewEventID()
	assert.Less(t, first.String(), second.String())

	parsed, err := ParseEventID(first.String())
	require.NoError(t, err)
	assert.Equal(t, first, parsed)

	_, err = ParseTagID("nope")
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestUpdateEventForm_IsEmpty(t *testing.T) {
	assert.True(t, UpdateEventForm{}.IsEmpty())

	attend := true
	assert.False(t, UpdateEventForm{WithAttendance: &attend}.IsEmpty())

	empty := EventTagIDs{}
	assert.False(t, UpdateEventForm{TagIDs: &empty}.IsEmpty())
}

func TestTag_IsOwnedBy(t *testing.T) {
	owner := NewUserID()
	assert.True(t, Tag{OwnerID: &owner}.IsOwnedBy(owner))
	assert.False(t, Tag{OwnerID: &owner}.IsOwnedBy(NewUserID()))
	assert.False(t, Tag{}.IsOwnedBy(owner))
}

func TestClaimRestorer(t *testing.T) {
	restorerClaimed.Store(false)
	t.Cleanup(func() { restorerClaimed.Store(false) })

	r := ClaimRestorer()
	assert.Equal(t, "x", r.TagName("x").String())
	assert.Panics(t, func() { ClaimRestorer() })
	assert.Panics(t, func() { (&Restorer{}).TagName("x") })
}
