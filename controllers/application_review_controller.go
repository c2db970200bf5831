package controllers

import (
	"time"

	"github.com/akhil-8601/JobNest/config"
	"github.com/akhil-8601/JobNest/models"
	"github.com/akhil-8601/JobNest/utils"
	"github.com/gin-gonic/gin"
)

// UpdateApplicationStatusRequest represents the HR review request body
type UpdateApplicationStatusRequest struct {
	Status     string `json:"status" binding:"required"`
	ReviewNote string `json:"review_note"`
}

// ListJobApplications lists applications for a job owned by the caller's company
func ListJobApplications(c *gin.Context) {
	job, _ := loadOwnedJob(c)
	if job == nil {
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Application{}).Where("job_id = ?", job.ID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("ListJobApplications - DB error: %v", err)
		utils.InternalServerError(c, "Failed to fetch applications", nil)
		return
	}

	var applications []models.Application
	err := query.Preload("User").Preload("Resume").
		Order("created_at ASC").
		Offset(pagination.Offset).
		Limit(pagination.Limit).
		Find(&applications).Error
	if err != nil {
		utils.LogError("ListJobApplications - DB error: %v", err)
		utils.InternalServerError(c, "Failed to fetch applications", nil)
		return
	}

	utils.SuccessWithPagination(c, "Applications retrieved", applications, total, pagination.Page, pagination.Limit)
}

// UpdateApplicationStatus moves an application through the review pipeline
func UpdateApplicationStatus(c *gin.Context) {
	utils.LogInfo("UpdateApplicationStatus called")

	job, user := loadOwnedJob(c)
	if job == nil {
		return
	}

	var req UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "status is required", err.Error())
		return
	}

	var application models.Application
	err := config.DB.Preload("User").Preload("Job").
		Where("id = ? AND job_id = ?", c.Param("appId"), job.ID).
		First(&application).Error
	if err != nil {
		utils.NotFound(c, "Application not found")
		return
	}

	if !models.ValidApplicationTransition(application.Status, req.Status) {
		utils.LogError("Invalid transition %s -> %s on application %d", application.Status, req.Status, application.ID)
		utils.BadRequest(c, "Invalid status transition", gin.H{
			"from": application.Status,
			"to":   req.Status,
		})
		return
	}

	now := time.Now()
	application.Status = req.Status
	application.ReviewedAt = &now
	if req.ReviewNote != "" {
		application.ReviewNote = req.ReviewNote
	}
	if err := config.DB.Save(&application).Error; err != nil {
		utils.LogError("UpdateApplicationStatus - DB error: %v", err)
		utils.InternalServerError(c, "Failed to update application", nil)
		return
	}

	// notify the candidate, failures only logged
	go func(email, title, status string) {
		if err := utils.SendApplicationStatusEmail(email, title, status); err != nil {
			utils.LogError("Failed to send status email: %v", err)
		}
	}(application.User.Email, application.Job.Title, application.Status)

	utils.LogInfo("User %d moved application %d to %s", user.ID, application.ID, application.Status)
	utils.Success(c, "Application updated", application)
}
