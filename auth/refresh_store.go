package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/akhil-8601/JobNest/models"
	"gorm.io/gorm"
)

// refreshTokenBytes is the entropy of a refresh-token plaintext. 64 random
// bytes, well above the 256-bit floor.
const refreshTokenBytes = 64

// ClientMeta is the optional client metadata recorded with a refresh token
type ClientMeta struct {
	UserAgent   string
	IPAddress   string
	DeviceLabel string
}

// RefreshTokenStore persists issued refresh tokens. The plaintext is returned
// to the caller exactly once at issuance; only its SHA-256 hash is stored.
type RefreshTokenStore struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// NewRefreshTokenStore creates a store issuing tokens valid for ttl
func NewRefreshTokenStore(db *gorm.DB, ttl time.Duration) *RefreshTokenStore {
	return &RefreshTokenStore{db: db, ttl: ttl, now: time.Now}
}

// WithTx returns a copy of the store bound to the given transaction
func (s *RefreshTokenStore) WithTx(tx *gorm.DB) *RefreshTokenStore {
	clone := *s
	clone.db = tx
	return &clone
}

// WithClock returns a copy of the store using the given clock
func (s *RefreshTokenStore) WithClock(now func() time.Time) *RefreshTokenStore {
	clone := *s
	clone.now = now
	return &clone
}

// HashToken returns the lowercase hex SHA-256 of a refresh-token plaintext
func HashToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// Issue generates a new refresh token for the user and persists its record.
// It returns the plaintext (this is the only time it exists server-side) and
// the stored record.
func (s *RefreshTokenStore) Issue(user *models.User, meta ClientMeta) (string, *models.RefreshToken, error) {
	plaintext, err := generateToken()
	if err != nil {
		return "", nil, err
	}

	now := s.now()
	record := &models.RefreshToken{
		UserID:      user.ID,
		TokenHash:   HashToken(plaintext),
		IssuedAt:    now,
		ExpiresAt:   now.Add(s.ttl),
		UserAgent:   meta.UserAgent,
		IPAddress:   meta.IPAddress,
		DeviceLabel: meta.DeviceLabel,
	}

	if err := s.db.Create(record).Error; err != nil {
		return "", nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return plaintext, record, nil
}

// Rotate marks the token revoked and returns its owner so the caller can
// issue a fresh pair. The transition is a conditional update on revoked_at
// being null: of any number of concurrent rotations of the same plaintext,
// exactly one succeeds and the rest fail with ErrRefreshRevoked.
func (s *RefreshTokenStore) Rotate(plaintext string) (*models.User, error) {
	record, err := s.lookup(plaintext)
	if err != nil {
		return nil, err
	}
	if record.RevokedAt != nil {
		return nil, ErrRefreshRevoked
	}
	now := s.now()
	if !now.Before(record.ExpiresAt) {
		return nil, ErrRefreshExpired
	}

	res := s.db.Model(&models.RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", record.ID).
		Update("revoked_at", now)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// lost the race to a concurrent rotation
		return nil, ErrRefreshRevoked
	}

	var user models.User
	if err := s.db.First(&user, record.UserID).Error; err != nil {
		return nil, fmt.Errorf("failed to load refresh token owner: %w", err)
	}
	return &user, nil
}

// Revoke marks the token revoked if it is still active. Unknown or already
// revoked tokens are a no-op: logout must never fail on a bad refresh token.
func (s *RefreshTokenStore) Revoke(plaintext string) error {
	record, err := s.lookup(plaintext)
	if err != nil {
		if errors.Is(err, ErrRefreshNotFound) {
			return nil
		}
		return err
	}
	if record.RevokedAt != nil {
		return nil
	}

	res := s.db.Model(&models.RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", record.ID).
		Update("revoked_at", s.now())
	if res.Error != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", res.Error)
	}
	return nil
}

func (s *RefreshTokenStore) lookup(plaintext string) (*models.RefreshToken, error) {
	var record models.RefreshToken
	err := s.db.Where("token_hash = ?", HashToken(plaintext)).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshNotFound
		}
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	return &record, nil
}

func generateToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
