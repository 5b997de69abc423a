package common

import "errors"

// Sentinel errors shared between repositories, services, and the HTTP
// layer. Callers should match them with errors.Is.
var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal           = errors.New("internal error")
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrorForbidden          = errors.New("forbidden")

	// Token lifecycle errors, one per validation failure mode so the
	// HTTP layer can report a specific reason.
	ErrTokenMissing          = errors.New("missing token")
	ErrTokenMalformed        = errors.New("malformed token")
	ErrTokenSignatureInvalid = errors.New("invalid token signature")
	ErrTokenExpired          = errors.New("token expired")
)
