package domain

import (
	"sync/atomic"
)

var restorerClaimed atomic.Bool

// Restorer rebuilds value types from data that was validated before it was
// stored. Its methods skip validation, so feeding them anything that did not
// come out of storage breaks the invariants of the returned values.
//
// There is exactly one Restorer per process, handed out by ClaimRestorer.
type Restorer struct {
	sealed bool
}

// ClaimRestorer returns the process-wide Restorer. It panics when called a
// second time, so whoever claims it first owns trusted reconstruction.
func ClaimRestorer() *Restorer {
	if !restorerClaimed.CompareAndSwap(false, true) {
		panic("domain: restorer already claimed")
	}
	return &Restorer{sealed: true}
}

func (r *Restorer) check() {
	if r == nil || !r.sealed {
		panic("domain: restorer used without ClaimRestorer")
	}
}

func (r *Restorer) UserLogin(s string) UserLogin {
	r.check()
	return UserLogin{value: s}
}

func (r *Restorer) UserDisplayName(s string) UserDisplayName {
	r.check()
	return UserDisplayName{value: s}
}

func (r *Restorer) UserPasswordHash(s string) UserPasswordHash {
	r.check()
	return UserPasswordHash{value: s}
}

func (r *Restorer) TagName(s string) TagName {
	r.check()
	return TagName{value: s}
}

func (r *Restorer) TagAliases(aliases []string) TagAliases {
	r.check()
	items := make([]TagAlias, len(aliases))
	for i, a := range aliases {
		items[i] = TagAlias{value: a}
	}
	return TagAliases{items: items}
}

func (r *Restorer) EventTitle(s string) EventTitle {
	r.check()
	return EventTitle{value: s}
}

func (r *Restorer) EventDescription(s string) EventDescription {
	r.check()
	return EventDescription{value: s}
}

func (r *Restorer) EventImageIDs(ids []EventImageID) EventImageIDs {
	r.check()
	return EventImageIDs{items: ids}
}

func (r *Restorer) EventTags(tags []Tag) EventTags {
	r.check()
	return EventTags{items: tags}
}
