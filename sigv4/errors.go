package sigv4

import "errors"

// Signing errors.
var (
	// ErrMissingCredentials is returned when the access key ID or secret
	// access key is empty. A request is never partially signed.
	ErrMissingCredentials = errors.New("sigv4: missing access key id or secret access key")

	// ErrMissingHost is returned when the request to sign carries no host.
	ErrMissingHost = errors.New("sigv4: request host must not be empty")
)

// Presigning errors.
var (
	// ErrInvalidExpiry is returned when the presign expiry is outside the
	// accepted range of one second to seven days.
	ErrInvalidExpiry = errors.New("sigv4: presign expiry out of range")
)
