package models

import "gorm.io/gorm"

// Resume represents an uploaded resume file belonging to a candidate
type Resume struct {
	gorm.Model
	UserID      uint   `gorm:"not null" json:"user_id"`
	Filename    string `gorm:"not null" json:"filename"`
	StoragePath string `gorm:"not null" json:"-"`
	ContentType string `gorm:"default:application/pdf" json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	SHA256      string `gorm:"size:64" json:"sha256"`
	IsPrimary   bool   `gorm:"default:false" json:"is_primary"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
