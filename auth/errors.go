package auth

import "errors"

// Verification failures. Callers treat every one of them as a single
// unauthenticated condition; the distinction exists for logging.
var (
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenMalformed   = errors.New("malformed token")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenNotYetValid = errors.New("token not yet valid")
	ErrIssuerMismatch   = errors.New("invalid token issuer")
	ErrAudienceMismatch = errors.New("invalid token audience")
	ErrWrongTokenType   = errors.New("not an access token")
	ErrMissingJTI       = errors.New("missing token jti")
)

// Refresh-token failures. All surface to the client as one "refresh invalid,
// re-login required" condition.
var (
	ErrRefreshNotFound = errors.New("refresh token not found")
	ErrRefreshRevoked  = errors.New("refresh token revoked")
	ErrRefreshExpired  = errors.New("refresh token expired")
)
