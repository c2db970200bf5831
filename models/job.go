package models

import (
	"time"

	"gorm.io/gorm"
)

// Job work modes
const (
	WorkModeOnsite = "ONSITE"
	WorkModeHybrid = "HYBRID"
	WorkModeRemote = "REMOTE"
)

// Job employment types
const (
	JobTypeFullTime = "FULL_TIME"
	JobTypePartTime = "PART_TIME"
	JobTypeContract = "CONTRACT"
	JobTypeIntern   = "INTERN"
	JobTypeTemp     = "TEMP"
)

// Job statuses
const (
	JobStatusDraft     = "DRAFT"
	JobStatusPublished = "PUBLISHED"
	JobStatusClosed    = "CLOSED"
)

// Job represents a posted position
type Job struct {
	gorm.Model
	CompanyID    uint       `gorm:"not null" json:"company_id"`
	PostedByID   uint       `gorm:"not null" json:"posted_by_id"`
	Title        string     `gorm:"not null" json:"title"`
	Location     string     `json:"location"`
	WorkMode     string     `gorm:"default:ONSITE" json:"work_mode"`
	JobType      string     `gorm:"default:FULL_TIME" json:"job_type"`
	Description  string     `gorm:"type:text;not null" json:"description"`
	Requirements string     `gorm:"type:text" json:"requirements"`
	Status       string     `gorm:"default:DRAFT" json:"status"`
	PublishedAt  *time.Time `json:"published_at"`

	Company      Company       `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
	PostedBy     User          `json:"posted_by,omitempty" gorm:"foreignKey:PostedByID"`
	Applications []Application `json:"applications,omitempty" gorm:"foreignKey:JobID"`
}
