package models

import (
	"time"

	"gorm.io/gorm"
)

// Application statuses
const (
	ApplicationStatusSubmitted          = "SUBMITTED"
	ApplicationStatusInReview           = "IN_REVIEW"
	ApplicationStatusShortlisted        = "SHORTLISTED"
	ApplicationStatusInterviewScheduled = "INTERVIEW_SCHEDULED"
	ApplicationStatusAccepted           = "ACCEPTED"
	ApplicationStatusRejected           = "REJECTED"
	ApplicationStatusHired              = "HIRED"
	ApplicationStatusWithdrawn          = "WITHDRAWN"
)

// Application represents a candidate applying to a job with one resume
type Application struct {
	gorm.Model
	JobID       uint       `gorm:"not null;uniqueIndex:uq_job_candidate" json:"job_id"`
	UserID      uint       `gorm:"not null;uniqueIndex:uq_job_candidate" json:"user_id"`
	ResumeID    uint       `gorm:"not null" json:"resume_id"`
	Status      string     `gorm:"default:SUBMITTED" json:"status"`
	CoverLetter string     `gorm:"type:text" json:"cover_letter"`
	ReviewNote  string     `gorm:"type:text" json:"review_note"`
	ReviewedAt  *time.Time `json:"reviewed_at"`

	Job    Job    `json:"job,omitempty" gorm:"foreignKey:JobID"`
	User   User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Resume Resume `json:"resume,omitempty" gorm:"foreignKey:ResumeID"`
}

// ValidApplicationTransition reports whether an HR review may move an
// application from one status to another. WITHDRAWN is candidate-only and
// terminal statuses stay terminal.
func ValidApplicationTransition(from, to string) bool {
	switch from {
	case ApplicationStatusSubmitted:
		return to == ApplicationStatusInReview || to == ApplicationStatusRejected
	case ApplicationStatusInReview:
		return to == ApplicationStatusShortlisted || to == ApplicationStatusRejected
	case ApplicationStatusShortlisted:
		return to == ApplicationStatusInterviewScheduled || to == ApplicationStatusRejected
	case ApplicationStatusInterviewScheduled:
		return to == ApplicationStatusAccepted || to == ApplicationStatusRejected
	case ApplicationStatusAccepted:
		return to == ApplicationStatusHired || to == ApplicationStatusRejected
	default:
		return false
	}
}
