package models

import (
	"time"

	"gorm.io/gorm"
)

// BlacklistedToken records one revoked access-token jti. Entries are written
// once at revocation time and become irrelevant after ExpiresAt (the original
// token's own expiry), so they never need to be consulted past that point.
type BlacklistedToken struct {
	gorm.Model
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	JTI       string    `gorm:"size:36;uniqueIndex;not null" json:"jti"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	RevokedAt time.Time `gorm:"not null" json:"revoked_at"`
	Reason    string    `gorm:"size:255" json:"reason"`
}
