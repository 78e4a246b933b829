// Package auth turns raw credentials into the values the storage layer
// keeps: bcrypt password hashes and BLAKE2b fingerprints of refresh tokens.
//
// # Configuration
//
//	AUTH_BCRYPT_COST=12  # bcrypt cost factor
//
// # Usage
//
//	svc := auth.NewService(users.NewRepository(db, log), cfg.Auth, log)
//	session, err := svc.LogIn(ctx, "alice", "correct horse battery")
//	session, err = svc.Refresh(ctx, session.RefreshToken)
//
// Each user holds a single refresh token. Logging in or refreshing replaces
// it, so an older token is rejected with an UNAUTHORIZED error.
package auth
