package domain

import "errors"

// Validation errors (400)
var (
	ErrMissingFields     = errors.New("all required fields must be provided")
	ErrMissingIdentifier = errors.New("username or email is required")
	ErrInvalidInput      = errors.New("invalid input")
)

// Identity errors
var (
	ErrUserExists         = errors.New("user with email or username already exists") // 409
	ErrUserNotFound       = errors.New("user does not exist")                        // 404
	ErrInvalidCredentials = errors.New("invalid user credentials")                   // 401
	ErrInvalidSession     = errors.New("invalid or expired session")                 // 401
)

// Media errors
var (
	ErrMediaNotFound = errors.New("media object not found")
	ErrMediaNotOwned = errors.New("media object belongs to another user")
)
