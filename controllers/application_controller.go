package controllers

import (
	"time"

	"github.com/akhil-8601/JobNest/config"
	"github.com/akhil-8601/JobNest/middleware"
	"github.com/akhil-8601/JobNest/models"
	"github.com/akhil-8601/JobNest/utils"
	"github.com/gin-gonic/gin"
)

// ApplyRequest represents the application request body
type ApplyRequest struct {
	ResumeID    uint   `json:"resume_id" binding:"required"`
	CoverLetter string `json:"cover_letter"`
}

// ApplyToJob submits a candidate application to a published job
func ApplyToJob(c *gin.Context) {
	utils.LogInfo("ApplyToJob called")

	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Please login for access")
		return
	}

	var job models.Job
	if err := config.DB.First(&job, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Job not found")
		return
	}
	if job.Status != models.JobStatusPublished {
		utils.BadRequest(c, "Job is not open for applications", nil)
		return
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("ApplyToJob - Invalid request: %v", err)
		utils.BadRequest(c, "resume_id is required", err.Error())
		return
	}

	// the resume must belong to the applicant
	var resume models.Resume
	if err := config.DB.Where("id = ? AND user_id = ?", req.ResumeID, user.ID).First(&resume).Error; err != nil {
		utils.LogError("ApplyToJob - Resume %d not found for user %d", req.ResumeID, user.ID)
		utils.NotFound(c, "Resume not found")
		return
	}

	var existing models.Application
	err := config.DB.Where("job_id = ? AND user_id = ?", job.ID, user.ID).First(&existing).Error
	if err == nil {
		utils.LogError("ApplyToJob - Duplicate application by user %d to job %d", user.ID, job.ID)
		utils.Conflict(c, "You have already applied to this job", nil)
		return
	}

	application := models.Application{
		JobID:       job.ID,
		UserID:      user.ID,
		ResumeID:    resume.ID,
		Status:      models.ApplicationStatusSubmitted,
		CoverLetter: req.CoverLetter,
	}
	if err := config.DB.Create(&application).Error; err != nil {
		utils.LogError("ApplyToJob - DB error: %v", err)
		utils.InternalServerError(c, "Failed to submit application", nil)
		return
	}

	utils.LogInfo("User %d applied to job %d", user.ID, job.ID)
	utils.Created(c, "Application submitted", application)
}

// ListMyApplications lists the calling candidate's applications
func ListMyApplications(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Please login for access")
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Application{}).Where("user_id = ?", user.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("ListMyApplications - DB error: %v", err)
		utils.InternalServerError(c, "Failed to fetch applications", nil)
		return
	}

	var applications []models.Application
	err := query.Preload("Job").Preload("Job.Company").
		Order("created_at DESC").
		Offset(pagination.Offset).
		Limit(pagination.Limit).
		Find(&applications).Error
	if err != nil {
		utils.LogError("ListMyApplications - DB error: %v", err)
		utils.InternalServerError(c, "Failed to fetch applications", nil)
		return
	}

	utils.SuccessWithPagination(c, "Applications retrieved", applications, total, pagination.Page, pagination.Limit)
}

// WithdrawApplication lets a candidate withdraw an application that has not
// reached a terminal status
func WithdrawApplication(c *gin.Context) {
	utils.LogInfo("WithdrawApplication called")

	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Please login for access")
		return
	}

	var application models.Application
	err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).First(&application).Error
	if err != nil {
		utils.NotFound(c, "Application not found")
		return
	}

	switch application.Status {
	case models.ApplicationStatusHired, models.ApplicationStatusRejected, models.ApplicationStatusWithdrawn:
		utils.BadRequest(c, "Application can no longer be withdrawn", nil)
		return
	}

	now := time.Now()
	application.Status = models.ApplicationStatusWithdrawn
	application.ReviewedAt = &now
	if err := config.DB.Save(&application).Error; err != nil {
		utils.LogError("WithdrawApplication - DB error: %v", err)
		utils.InternalServerError(c, "Failed to withdraw application", nil)
		return
	}

	utils.LogInfo("User %d withdrew application %d", user.ID, application.ID)
	utils.Success(c, "Application withdrawn", application)
}
