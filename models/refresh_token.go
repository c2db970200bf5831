package models

import (
	"time"

	"gorm.io/gorm"
)

// RefreshToken is the persisted record of one issued refresh token. Only the
// SHA-256 hash of the plaintext is stored. A record moves Active -> Revoked
// exactly once (rotation or logout) and is never deleted; expired rows are an
// audit trail and may be garbage-collected externally.
type RefreshToken struct {
	gorm.Model
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	TokenHash   string     `gorm:"size:64;uniqueIndex;not null" json:"-"`
	IssuedAt    time.Time  `gorm:"not null" json:"issued_at"`
	ExpiresAt   time.Time  `gorm:"not null" json:"expires_at"`
	RevokedAt   *time.Time `json:"revoked_at"`
	UserAgent   string     `gorm:"size:255" json:"user_agent"`
	IPAddress   string     `gorm:"size:45" json:"ip_address"`
	DeviceLabel string     `gorm:"size:100" json:"device_label"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

// Usable reports whether the token may still be rotated: not revoked and not
// past its expiry at the given instant.
func (rt *RefreshToken) Usable(now time.Time) bool {
	return rt.RevokedAt == nil && now.Before(rt.ExpiresAt)
}
