package domain

import "errors"

// Error values surfaced directly as the response envelope message.
var (
	ErrMissingFields      = errors.New("All fields are required")
	ErrInvalidRole        = errors.New("Invalid role")
	ErrNotImplemented     = errors.New("Coming soon..")
	ErrAlreadyRegistered  = errors.New("Account is already registered")
	ErrInvalidAccountData = errors.New("Invalid account data received")
	ErrNotFound           = errors.New("Account not found")
	ErrNotVerified        = errors.New("Account not verified")
	ErrDuplicateEmail     = errors.New("Duplicate email")
	ErrMissingID          = errors.New("Account Id required")
	ErrInvalidCredentials = errors.New("Incorrect email or password")
	ErrInvalidOTP         = errors.New("Invalid or expired OTP")
	ErrAlreadyVerified    = errors.New("Account already verified")
)
