package config

const (
	// DefaultDatabasePath is the default path for the sqlite catalog database
	DefaultDatabasePath = "./catalog.db"

	// DefaultListLimit is the page size used when a listing has no explicit limit
	DefaultListLimit = 20
)
