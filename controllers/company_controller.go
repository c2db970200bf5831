package controllers

import (
	"github.com/akhil-8601/JobNest/config"
	"github.com/akhil-8601/JobNest/middleware"
	"github.com/akhil-8601/JobNest/models"
	"github.com/akhil-8601/JobNest/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateCompanyRequest represents the company creation request body
type CreateCompanyRequest struct {
	Name     string `json:"name" binding:"required"`
	Website  string `json:"website"`
	Location string `json:"location"`
}

// isCompanyMember reports whether the user belongs to the company
func isCompanyMember(userID, companyID uint) bool {
	var count int64
	config.DB.Model(&models.CompanyMember{}).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		Count(&count)
	return count > 0
}

// CreateCompany registers a company and makes the calling HR user its admin
func CreateCompany(c *gin.Context) {
	utils.LogInfo("CreateCompany called")

	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Please login for access")
		return
	}

	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("CreateCompany - Invalid request: %v", err)
		utils.BadRequest(c, "Company name is required", err.Error())
		return
	}

	company := models.Company{
		Name:     utils.SanitizeString(req.Name),
		Website:  utils.SanitizeString(req.Website),
		Location: utils.SanitizeString(req.Location),
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&company).Error; err != nil {
			return err
		}
		member := models.CompanyMember{
			CompanyID: company.ID,
			UserID:    user.ID,
			Role:      models.MemberRoleCompanyAdmin,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		utils.LogError("CreateCompany - DB error: %v", err)
		utils.InternalServerError(c, "Failed to create company", nil)
		return
	}

	utils.LogInfo("Company created: %s by user %d", company.Name, user.ID)
	utils.Created(c, "Company created", company)
}

// GetMyCompanies lists the companies the calling user belongs to
func GetMyCompanies(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Please login for access")
		return
	}

	var memberships []models.CompanyMember
	err := config.DB.Where("user_id = ?", user.ID).Preload("Company").Find(&memberships).Error
	if err != nil {
		utils.LogError("GetMyCompanies - DB error: %v", err)
		utils.InternalServerError(c, "Failed to fetch companies", nil)
		return
	}

	utils.Success(c, "Companies retrieved", memberships)
}
