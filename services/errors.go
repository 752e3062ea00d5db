package services

import "errors"

// Errors shared across services and the HTTP mapping layer.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed    = errors.New("validation failed")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidRatingScore  = errors.New("rating must be between 1 and 5")
	ErrEventNotRateable    = errors.New("event has not concluded yet")
	ErrNotEventParticipant = errors.New("both users must have attended the event")
	ErrSelfRating          = errors.New("a user cannot rate themselves")

	// Conflicts
	ErrUserEmailConflict = errors.New("email address is already in use")
	ErrUserPhoneConflict = errors.New("phone number is already in use")
	ErrAlreadyRequested  = errors.New("user already requested to join this event")
	ErrAlreadyRated      = errors.New("counterpart already rated for this event")

	// Authentication and authorization
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotEventOwner        = errors.New("user is not the owner of the event")

	// Entity-specific not-found errors
	ErrUserNotFound        = errors.New("user not found")
	ErrOwnerNotFound       = errors.New("owner not found")
	ErrSportNotFound       = errors.New("sport not found")
	ErrEventNotFound       = errors.New("event not found")
	ErrParticipantNotFound = errors.New("participant not found")
)
