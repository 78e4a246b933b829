package database

import "time"

// Now is the timestamp source for created_at and modified_at. Values are
// truncated to microseconds so they survive a round trip through every
// supported backend unchanged.
func Now() time.Time {
	return now()
}

var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
