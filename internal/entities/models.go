package entities

// All lists every row model in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&RefreshToken{},
		&Tag{},
		&TagAlias{},
		&Event{},
		&EventTag{},
		&EventImage{},
	}
}
