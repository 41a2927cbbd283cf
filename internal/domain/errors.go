package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrPropertyNotFound    = errors.New("property not found")
	ErrPropertyOccupied    = errors.New("property already under contract")
	ErrEmptyContent        = errors.New("message content is empty")
	ErrRecipientNotAllowed = errors.New("recipient not allowed for sender role")
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailTaken          = errors.New("email already registered")
	ErrPasswordTooLong     = errors.New("password longer than 72 bytes")
	ErrPersist             = errors.New("persist failed")
)
