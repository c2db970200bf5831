package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/akhil-8601/JobNest/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTypeAccess is the claim value marking a signed token as a bearer
// access token. Refresh tokens are opaque strings and never carry it.
const TokenTypeAccess = "access"

// AccessClaims is the typed payload of an access token
type AccessClaims struct {
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
	TokenType string   `json:"typ"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim back into a user ID
func (c *AccessClaims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subject claim %q: %w", c.Subject, err)
	}
	return uint(id), nil
}

// TokenCodec signs and verifies access tokens. Verification is a pure
// function of the token, the clock and the configured secret/issuer/audience;
// it performs no I/O.
type TokenCodec struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// NewTokenCodec builds a codec from the injected auth configuration
func NewTokenCodec(cfg config.AuthConfig) *TokenCodec {
	return &TokenCodec{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      cfg.AccessTTL,
		now:      time.Now,
	}
}

// WithClock returns a copy of the codec using the given clock. Used by tests
// to step time past expiry.
func (tc *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	clone := *tc
	clone.now = now
	return &clone
}

// Issue creates a fresh, signed access token for the user. It returns the
// compact token string, its unique jti and the expiry as Unix seconds.
func (tc *TokenCodec) Issue(userID uint, email string, roles []string) (string, string, int64, error) {
	now := tc.now()
	jti := uuid.NewString()
	exp := now.Add(tc.ttl)

	claims := AccessClaims{
		Email:     email,
		Roles:     roles,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tc.issuer,
			Audience:  jwt.ClaimStrings{tc.audience},
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        jti,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tc.secret)
	if err != nil {
		return "", "", 0, fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, jti, exp.Unix(), nil
}

// Verify checks the signature and the standard time claims, then requires an
// exact match of the configured issuer and audience. Unknown signing methods
// are rejected before the signature is checked.
func (tc *TokenCodec) Verify(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tc.secret, nil
	}, jwt.WithTimeFunc(tc.now))
	if err != nil {
		return nil, mapJWTError(err)
	}

	if claims.Issuer != tc.issuer {
		return nil, ErrIssuerMismatch
	}
	if !containsAudience(claims.Audience, tc.audience) {
		return nil, ErrAudienceMismatch
	}

	return claims, nil
}

func containsAudience(aud jwt.ClaimStrings, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}

// mapJWTError collapses the library's error chain into our closed set of
// named failure kinds
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return ErrTokenNotYetValid
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	default:
		return ErrTokenMalformed
	}
}
