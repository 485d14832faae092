package services

import "errors"

// Shared service-level errors, mapped to HTTP statuses in the handler layer.
var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrValidationFailed = errors.New("validation failed")

	// Auth
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrEmailConflict      = errors.New("email address is already in use")
	ErrForbiddenOperation = errors.New("operation not allowed for the current user")

	// Entity lookups
	ErrUserNotFound        = errors.New("user not found")
	ErrTournamentNotFound  = errors.New("tournament not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrMatchNotFound       = errors.New("match record not found")

	// Tournament business rules
	ErrTournamentNameRequired            = errors.New("tournament name is required")
	ErrTournamentNameConflict            = errors.New("tournament name already exists")
	ErrTournamentInvalidFormat           = errors.New("tournament format must be elimination or league")
	ErrTournamentInvalidStatus           = errors.New("invalid tournament status provided")
	ErrTournamentInvalidStatusTransition = errors.New("invalid tournament status transition")
	ErrRegistrationNotOpen               = errors.New("tournament registration is not open")
	ErrTournamentFull                    = errors.New("tournament registration is full")
	ErrBracketNotFilled                  = errors.New("registered participants do not fill the bracket")

	// Match business rules
	ErrMatchSlotTaken     = errors.New("bracket slot already has a match record")
	ErrMatchNamesRequired = errors.New("both home and away names are required")

	// Infrastructure
	ErrLogoStorageUnavailable = errors.New("logo storage is not configured")
)
