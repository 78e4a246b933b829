package domain

import (
	"strings"
)

const (
	UserLoginMinLen       = 3
	UserLoginMaxLen       = 32
	UserDisplayNameMaxLen = 64
	UserPasswordHashMax   = 255

	RefreshTokenFingerprintLen = 32

	TagNameMaxLen  = 32
	TagAliasMaxLen = 32

	EventTitleMaxLen       = 64
	EventDescriptionMaxLen = 4096
	EventImageURLMaxLen    = 2048

	SearchTermMaxLen = 64
)

// UserLogin is stored lowercased, which makes logins unique regardless of case.
type UserLogin struct{ value string }

func NewUserLogin(raw string) (UserLogin, error) {
	login := strings.ToLower(strings.TrimSpace(raw))
	if err := checkVar("login", login, "required,min=3,max=32,login"); err != nil {
		return UserLogin{}, err
	}
	return UserLogin{value: login}, nil
}

func (l UserLogin) String() string { return l.value }

type UserDisplayName struct{ value string }

func NewUserDisplayName(raw string) (UserDisplayName, error) {
	name := strings.TrimSpace(raw)
	if err := checkVar("display name", name, "required,max=64,nocontrol"); err != nil {
		return UserDisplayName{}, err
	}
	return UserDisplayName{value: name}, nil
}

func (n UserDisplayName) String() string { return n.value }

// UserPasswordHash holds an already hashed password (bcrypt output).
type UserPasswordHash struct{ value string }

func NewUserPasswordHash(hash string) (UserPasswordHash, error) {
	if err := checkVar("password hash", hash, "required,max=255"); err != nil {
		return UserPasswordHash{}, err
	}
	return UserPasswordHash{value: hash}, nil
}

func (h UserPasswordHash) String() string { return h.value }

// RefreshTokenFingerprint is the fixed size digest of a refresh token.
// The raw token is never persisted.
type RefreshTokenFingerprint struct{ value [RefreshTokenFingerprintLen]byte }

func NewRefreshTokenFingerprint(b []byte) (RefreshTokenFingerprint, error) {
	if err := checkVar("refresh token fingerprint", b, "len=32"); err != nil {
		return RefreshTokenFingerprint{}, err
	}
	var f RefreshTokenFingerprint
	copy(f.value[:], b)
	return f, nil
}

func (f RefreshTokenFingerprint) Bytes() []byte {
	out := make([]byte, RefreshTokenFingerprintLen)
	copy(out, f.value[:])
	return out
}

type TagName struct{ value string }

func NewTagName(raw string) (TagName, error) {
	name := strings.TrimSpace(raw)
	if err := checkVar("tag name", name, "required,max=32,nocontrol"); err != nil {
		return TagName{}, err
	}
	return TagName{value: name}, nil
}

func (n TagName) String() string { return n.value }

type TagAlias struct{ value string }

func NewTagAlias(raw string) (TagAlias, error) {
	alias := strings.TrimSpace(raw)
	if err := checkVar("tag alias", alias, "required,max=32,nocontrol"); err != nil {
		return TagAlias{}, err
	}
	return TagAlias{value: alias}, nil
}

func (a TagAlias) String() string { return a.value }

type EventTitle struct{ value string }

func NewEventTitle(raw string) (EventTitle, error) {
	title := strings.TrimSpace(raw)
	if err := checkVar("event title", title, "required,max=64,nocontrol"); err != nil {
		return EventTitle{}, err
	}
	return EventTitle{value: title}, nil
}

func (t EventTitle) String() string { return t.value }

// EventDescription may span several lines, so only the length is checked.
type EventDescription struct{ value string }

func NewEventDescription(raw string) (EventDescription, error) {
	desc := strings.TrimSpace(raw)
	if err := checkVar("event description", desc, "required,max=4096"); err != nil {
		return EventDescription{}, err
	}
	return EventDescription{value: desc}, nil
}

func (d EventDescription) String() string { return d.value }

type EventImageURL struct{ value string }

func NewEventImageURL(raw string) (EventImageURL, error) {
	u := strings.TrimSpace(raw)
	if err := checkVar("image url", u, "required,max=2048,http_url"); err != nil {
		return EventImageURL{}, err
	}
	return EventImageURL{value: u}, nil
}

func (u EventImageURL) String() string { return u.value }

// SearchTerm is matched case-insensitively against event titles and
// descriptions.
type SearchTerm struct{ value string }

func NewSearchTerm(raw string) (SearchTerm, error) {
	term := strings.TrimSpace(raw)
	if err := checkVar("search term", term, "required,max=64,nocontrol"); err != nil {
		return SearchTerm{}, err
	}
	return SearchTerm{value: term}, nil
}

func (s SearchTerm) String() string { return s.value }

const (
	LimitMin     = 1
	LimitMax     = 100
	DefaultLimit = 20
)

// Limit bounds the size of a listing page.
type Limit struct{ value int }

func NewLimit(n int) (Limit, error) {
	if err := checkVar("limit", n, "gte=1,lte=100"); err != nil {
		return Limit{}, err
	}
	return Limit{value: n}, nil
}

// LimitOrDefault returns a limit of n when n is in range and DefaultLimit otherwise.
func LimitOrDefault(n int) Limit {
	if l, err := NewLimit(n); err == nil {
		return l
	}
	return Limit{value: DefaultLimit}
}

// Int returns the page size. The zero Limit means DefaultLimit.
func (l Limit) Int() int {
	if l.value == 0 {
		return DefaultLimit
	}
	return l.value
}
