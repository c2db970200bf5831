package controllers

import (
	"errors"

	"github.com/akhil-8601/JobNest/config"
	"github.com/akhil-8601/JobNest/middleware"
	"github.com/akhil-8601/JobNest/models"
	"github.com/akhil-8601/JobNest/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UpdateProfileRequest represents the profile update request body
type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	Headline  string `json:"headline"`
	Summary   string `json:"summary"`
}

// GetMe returns the calling user's account details
func GetMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Please login for access")
		return
	}

	utils.Success(c, "User retrieved", gin.H{
		"id":            user.ID,
		"email":         user.Email,
		"roles":         user.Roles,
		"status":        user.Status,
		"last_login_at": user.LastLoginAt,
	})
}

// GetProfile returns the calling user's candidate profile
func GetProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Please login for access")
		return
	}

	var profile models.CandidateProfile
	err := config.DB.Where("user_id = ?", user.ID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Profile not found")
			return
		}
		utils.LogError("GetProfile - DB error: %v", err)
		utils.InternalServerError(c, "Failed to fetch profile", nil)
		return
	}

	utils.Success(c, "Profile retrieved", profile)
}

// UpdateProfile creates or updates the calling user's candidate profile
func UpdateProfile(c *gin.Context) {
	utils.LogInfo("UpdateProfile called")

	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Please login for access")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	var profile models.CandidateProfile
	err := config.DB.Where("user_id = ?", user.ID).First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.LogError("UpdateProfile - DB error: %v", err)
		utils.InternalServerError(c, "Failed to fetch profile", nil)
		return
	}

	profile.UserID = user.ID
	profile.FirstName = utils.SanitizeString(req.FirstName)
	profile.LastName = utils.SanitizeString(req.LastName)
	profile.Phone = utils.SanitizeString(req.Phone)
	profile.Location = utils.SanitizeString(req.Location)
	profile.Headline = utils.SanitizeString(req.Headline)
	profile.Summary = utils.SanitizeString(req.Summary)

	if err := config.DB.Save(&profile).Error; err != nil {
		utils.LogError("UpdateProfile - DB error: %v", err)
		utils.InternalServerError(c, "Failed to save profile", nil)
		return
	}

	utils.LogInfo("User %d updated profile", user.ID)
	utils.Success(c, "Profile updated", profile)
}
