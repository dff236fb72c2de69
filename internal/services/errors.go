// internal/services/errors.go
package services

import "errors"

// Sentinel errors the handlers map onto HTTP status codes. Anything else
// coming out of a service is treated as a storage failure and surfaced as a
// generic 500.
var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrInvalidShop      = errors.New("invalid shopId")
	ErrInvalidSender    = errors.New("invalid senderType")
	ErrEmptyMessage     = errors.New("message is required")

	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("no account for this email")
	ErrWeakPassword       = errors.New("new password too short")
)
