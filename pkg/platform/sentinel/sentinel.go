package sentinel

import "errors"

// Infrastructure facts returned by stores, optionally wrapped. Services translate
// them into coded domain errors; handlers never see them directly.
//
//   - ErrNotFound: record does not exist
//   - ErrConflict: a unique identifier (email, phone, national ID) is already taken
//   - ErrExpired: session has passed its expiry
//   - ErrInvalidState: record is in the wrong state for the requested transition
//   - ErrUnavailable: backing service could not be reached
//
// Validation failures belong in pkg/domain-errors, not here.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrExpired      = errors.New("expired")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
