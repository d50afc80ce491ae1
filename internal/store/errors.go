package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same email or username already exists in
	// the database.
	ErrEmailAlreadyExists = errors.New("email or username already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrNoRefreshTokenWasFound is returned when a refresh-token lookup by
	// user id or token value produces an empty result set.
	ErrNoRefreshTokenWasFound = errors.New("no refresh token was found")

	// ErrNothingToUpdate is returned when a partial update carries no fields,
	// which would otherwise produce a malformed UPDATE statement.
	ErrNothingToUpdate = errors.New("no fields to update")

	// ErrOTPNotCached is returned by the OTP cache when the requested key is
	// absent, which covers both a never-issued and an expired challenge.
	ErrOTPNotCached = errors.New("otp entry is not cached")
)
