package models

import "gorm.io/gorm"

// Company membership roles
const (
	MemberRoleHR           = "HR"
	MemberRoleCompanyAdmin = "COMPANY_ADMIN"
)

// Company represents an employer posting jobs
type Company struct {
	gorm.Model
	Name     string `gorm:"not null" json:"name"`
	Website  string `json:"website"`
	Location string `json:"location"`

	Members []CompanyMember `json:"members,omitempty" gorm:"foreignKey:CompanyID"`
	Jobs    []Job           `json:"jobs,omitempty" gorm:"foreignKey:CompanyID"`
}

// CompanyMember links an HR user to a company
type CompanyMember struct {
	gorm.Model
	CompanyID uint   `gorm:"not null;uniqueIndex:uq_company_user" json:"company_id"`
	UserID    uint   `gorm:"not null;uniqueIndex:uq_company_user" json:"user_id"`
	Role      string `gorm:"default:HR" json:"role"`

	Company Company `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
