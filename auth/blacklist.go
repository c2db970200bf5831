package auth

import (
	"fmt"
	"time"

	"github.com/akhil-8601/JobNest/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BlacklistStore is the append-only record of revoked access-token jtis.
// Every authenticated request must consult it after signature verification:
// a validly signed but blacklisted token is rejected.
type BlacklistStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewBlacklistStore creates a blacklist store on the given database handle
func NewBlacklistStore(db *gorm.DB) *BlacklistStore {
	return &BlacklistStore{db: db, now: time.Now}
}

// WithTx returns a copy of the store bound to the given transaction
func (s *BlacklistStore) WithTx(tx *gorm.DB) *BlacklistStore {
	clone := *s
	clone.db = tx
	return &clone
}

// IsRevoked reports whether a non-expired blacklist entry exists for the jti
func (s *BlacklistStore) IsRevoked(jti string) (bool, error) {
	var count int64
	err := s.db.Model(&models.BlacklistedToken{}).
		Where("jti = ? AND expires_at > ?", jti, s.now()).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist for jti: %w", err)
	}
	return count > 0, nil
}

// Add records a revoked jti. The jti is unique per issuance so a duplicate
// insert should never happen; if it does, the existing entry wins and the
// insert is a no-op rather than an error.
func (s *BlacklistStore) Add(userID uint, jti string, expiresAt time.Time, reason string) error {
	entry := models.BlacklistedToken{
		UserID:    userID,
		JTI:       jti,
		ExpiresAt: expiresAt,
		RevokedAt: s.now(),
		Reason:    reason,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "jti"}},
		DoNothing: true,
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}
