package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure categories every caller can branch on
// with errors.Is. Services wrap these with context via fmt.Errorf and %w.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness violation (name, username, email,
	// short id) or an already-existing membership.
	ErrConflict = errors.New("conflict")

	// ErrForbidden indicates the caller is not allowed to perform the
	// operation. It never reveals which permission was missing.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCredentials indicates a failed username/password check.
	// Wrong password and unknown user are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken indicates a token whose signature, payload or subject
	// claim could not be validated.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired indicates a well-formed token past its expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrAllocationExhausted indicates the short-id allocator ran out of
	// attempts; the identifier space is saturated.
	ErrAllocationExhausted = errors.New("short id allocation exhausted")

	// ErrStorageUnavailable indicates an object-storage call failed.
	ErrStorageUnavailable = errors.New("object storage unavailable")
)

// QuotaExceededError is returned when a build create would push a team past
// max_builds. It carries the counts so callers can surface an actionable
// retry-with-override hint.
type QuotaExceededError struct {
	CurrentBuilds int
	MaxBuilds     int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf(
		"build quota exceeded (%d/%d): retry with override_quota to evict the oldest build",
		e.CurrentBuilds, e.MaxBuilds,
	)
}
