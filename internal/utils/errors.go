package utils

import "errors"

// Sentinel errors raised by the services and repositories. Handlers map these
// to HTTP responses with errors.Is; everything else is treated as an internal
// or upstream failure.
var (
	ErrEmergencyNotFound = errors.New("emergency not found")
	ErrAlreadyAssigned   = errors.New("emergency already assigned")
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailExists       = errors.New("email already registered")
	ErrUserInactive      = errors.New("user account is deactivated")
	ErrLocationNotFound  = errors.New("driver location not found")
	ErrStatsNotFound     = errors.New("driver stats not found")
	ErrStatsExist        = errors.New("driver stats already exist")
	ErrStoreUnavailable  = errors.New("record store unavailable")
)
