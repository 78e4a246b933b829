// Package database provides the data access layer for the catalog.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup (sqlite or postgres), migrations, Transact
//	├── errors.go        # Storage error classification
//	├── internal/restore # Row to domain entity assembly
//	├── users/           # Users, refresh tokens, sign-up
//	├── tags/            # Tags and aliases
//	└── events/          # Events, ordered images, tag links, listing
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase(cfg.Database, log)
//
//	// Create domain-specific repositories
//	tagsRepo := tags.NewRepository(db, log)
//	eventsRepo := events.NewRepository(db, log)
//
//	// Use repositories
//	tag, err := tagsRepo.Find(ctx, tagID)
//	page, err := eventsRepo.List(ctx, events.ListFilter{Limit: limit})
//
// # Errors
//
// Repositories return *errors.Error values. Storage failures go through
// Classify, so a unique violation surfaces as ALREADY_EXISTS and a foreign key
// violation as INVALID_ARGUMENT whichever backend is in use.
//
// # Transactions
//
// Operations that write more than one row run inside Transact. Reads and
// single inserts do not. On sqlite every transaction starts with BEGIN
// IMMEDIATE; on postgres event mutations lock the event row with
// SELECT ... FOR UPDATE.
package database
