package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Role names carried in access-token claims
const (
	RoleCandidate = "CANDIDATE"
	RoleHR        = "HR"
	RoleAdmin     = "ADMIN"
)

// User account statuses
const (
	UserStatusActive    = "ACTIVE"
	UserStatusSuspended = "SUSPENDED"
)

// RoleList is an ordered set of role names stored as a JSON column
type RoleList []string

// Value implements driver.Valuer
func (r RoleList) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner
func (r *RoleList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	case nil:
		*r = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into RoleList", value)
	}
}

// Has reports whether the list contains the given role
func (r RoleList) Has(role string) bool {
	for _, v := range r {
		if v == role {
			return true
		}
	}
	return false
}

// User represents an account in the system (candidate or HR)
type User struct {
	gorm.Model
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `json:"-"`
	Roles        RoleList  `gorm:"type:jsonb" json:"roles"`
	Status       string    `gorm:"default:ACTIVE" json:"status"`
	LastLoginAt  time.Time `json:"last_login_at"`

	CandidateProfile *CandidateProfile `json:"candidate_profile,omitempty" gorm:"foreignKey:UserID"`
	Resumes          []Resume          `json:"resumes,omitempty" gorm:"foreignKey:UserID"`
	Applications     []Application     `json:"applications,omitempty" gorm:"foreignKey:UserID"`
}

// CandidateProfile holds the optional candidate-facing profile fields
type CandidateProfile struct {
	gorm.Model
	UserID    uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	Headline  string `json:"headline"`
	Summary   string `gorm:"type:text" json:"summary"`
}
