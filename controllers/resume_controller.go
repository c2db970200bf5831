package controllers

import (
	"os"

	"github.com/akhil-8601/JobNest/config"
	"github.com/akhil-8601/JobNest/middleware"
	"github.com/akhil-8601/JobNest/models"
	"github.com/akhil-8601/JobNest/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UploadResume stores a resume file for the calling candidate
func UploadResume(c *gin.Context) {
	utils.LogInfo("UploadResume called")

	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Please login for access")
		return
	}

	file, err := c.FormFile("resume")
	if err != nil {
		utils.BadRequest(c, "Resume file is required", err.Error())
		return
	}

	storagePath, checksum, err := utils.SaveResumeFile(file, appConfig.UploadDir)
	if err != nil {
		utils.LogError("UploadResume - save failed: %v", err)
		if appErr := utils.GetAppError(err); appErr != nil {
			utils.Error(c, appErr.Code, appErr.Message, nil)
			return
		}
		utils.InternalServerError(c, "Failed to save resume", nil)
		return
	}

	var count int64
	config.DB.Model(&models.Resume{}).Where("user_id = ?", user.ID).Count(&count)

	resume := models.Resume{
		UserID:      user.ID,
		Filename:    file.Filename,
		StoragePath: storagePath,
		ContentType: "application/pdf",
		SizeBytes:   file.Size,
		SHA256:      checksum,
		IsPrimary:   count == 0, // first resume becomes the primary one
	}
	if err := config.DB.Create(&resume).Error; err != nil {
		utils.LogError("UploadResume - DB error: %v", err)
		utils.InternalServerError(c, "Failed to save resume", nil)
		return
	}

	utils.LogInfo("User %d uploaded resume %d", user.ID, resume.ID)
	utils.Created(c, "Resume uploaded", resume)
}

// ListResumes lists the calling candidate's resumes
func ListResumes(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Please login for access")
		return
	}

	var resumes []models.Resume
	if err := config.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&resumes).Error; err != nil {
		utils.LogError("ListResumes - DB error: %v", err)
		utils.InternalServerError(c, "Failed to fetch resumes", nil)
		return
	}

	utils.Success(c, "Resumes retrieved", resumes)
}

// SetPrimaryResume marks one resume as primary and unmarks the rest
func SetPrimaryResume(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Please login for access")
		return
	}

	var resume models.Resume
	err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).First(&resume).Error
	if err != nil {
		utils.NotFound(c, "Resume not found")
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Resume{}).Where("user_id = ?", user.ID).Update("is_primary", false).Error; err != nil {
			return err
		}
		return tx.Model(&resume).Update("is_primary", true).Error
	})
	if err != nil {
		utils.LogError("SetPrimaryResume - DB error: %v", err)
		utils.InternalServerError(c, "Failed to update resume", nil)
		return
	}

	resume.IsPrimary = true
	utils.Success(c, "Primary resume updated", resume)
}

// DeleteResume removes a resume unless an application still references it
func DeleteResume(c *gin.Context) {
	utils.LogInfo("DeleteResume called")

	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Please login for access")
		return
	}

	var resume models.Resume
	err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).First(&resume).Error
	if err != nil {
		utils.NotFound(c, "Resume not found")
		return
	}

	var inUse int64
	config.DB.Model(&models.Application{}).Where("resume_id = ?", resume.ID).Count(&inUse)
	if inUse > 0 {
		utils.Conflict(c, "Resume is attached to an application and cannot be deleted", nil)
		return
	}

	if err := config.DB.Delete(&resume).Error; err != nil {
		utils.LogError("DeleteResume - DB error: %v", err)
		utils.InternalServerError(c, "Failed to delete resume", nil)
		return
	}

	// stored file removal is best effort
	if err := os.Remove(resume.StoragePath); err != nil && !os.IsNotExist(err) {
		utils.LogError("DeleteResume - failed to remove file %s: %v", resume.StoragePath, err)
	}

	utils.LogInfo("User %d deleted resume %d", user.ID, resume.ID)
	utils.Success(c, "Resume deleted", nil)
}
