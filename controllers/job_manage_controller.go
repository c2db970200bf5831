package controllers

import (
	"time"

	"github.com/akhil-8601/JobNest/config"
	"github.com/akhil-8601/JobNest/middleware"
	"github.com/akhil-8601/JobNest/models"
	"github.com/akhil-8601/JobNest/utils"
	"github.com/gin-gonic/gin"
)

// CreateJobRequest represents the job creation request body
type CreateJobRequest struct {
	CompanyID    uint   `json:"company_id" binding:"required"`
	Title        string `json:"title" binding:"required"`
	Location     string `json:"location"`
	WorkMode     string `json:"work_mode"`
	JobType      string `json:"job_type"`
	Description  string `json:"description" binding:"required"`
	Requirements string `json:"requirements"`
}

// UpdateJobRequest represents the job update request body
type UpdateJobRequest struct {
	Title        string `json:"title"`
	Location     string `json:"location"`
	WorkMode     string `json:"work_mode"`
	JobType      string `json:"job_type"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
}

var validWorkModes = map[string]bool{
	models.WorkModeOnsite: true,
	models.WorkModeHybrid: true,
	models.WorkModeRemote: true,
}

var validJobTypes = map[string]bool{
	models.JobTypeFullTime: true,
	models.JobTypePartTime: true,
	models.JobTypeContract: true,
	models.JobTypeIntern:   true,
	models.JobTypeTemp:     true,
}

// loadOwnedJob fetches a job and checks the caller belongs to its company.
// Writes the error response itself and returns nil on failure.
func loadOwnedJob(c *gin.Context) (*models.Job, *models.User) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Please login for access")
		return nil, nil
	}

	var job models.Job
	if err := config.DB.First(&job, c.Param("id")).Error; err != nil {
		utils.LogError("Job not found: %s", c.Param("id"))
		utils.NotFound(c, "Job not found")
		return nil, nil
	}

	if !isCompanyMember(user.ID, job.CompanyID) {
		utils.LogError("User %d is not a member of company %d", user.ID, job.CompanyID)
		utils.Forbidden(c, "Not a member of this company")
		return nil, nil
	}

	return &job, user
}

// CreateJob creates a draft job for a company the HR user belongs to
func CreateJob(c *gin.Context) {
	utils.LogInfo("CreateJob called")

	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Please login for access")
		return
	}

	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("CreateJob - Invalid request: %v", err)
		utils.BadRequest(c, "Invalid job details", err.Error())
		return
	}

	if !isCompanyMember(user.ID, req.CompanyID) {
		utils.LogError("CreateJob - User %d not a member of company %d", user.ID, req.CompanyID)
		utils.Forbidden(c, "Not a member of this company")
		return
	}

	workMode := req.WorkMode
	if workMode == "" {
		workMode = models.WorkModeOnsite
	}
	jobType := req.JobType
	if jobType == "" {
		jobType = models.JobTypeFullTime
	}
	if !validWorkModes[workMode] || !validJobTypes[jobType] {
		utils.BadRequest(c, "Invalid work mode or job type", nil)
		return
	}

	job := models.Job{
		CompanyID:    req.CompanyID,
		PostedByID:   user.ID,
		Title:        utils.SanitizeString(req.Title),
		Location:     utils.SanitizeString(req.Location),
		WorkMode:     workMode,
		JobType:      jobType,
		Description:  req.Description,
		Requirements: req.Requirements,
		Status:       models.JobStatusDraft,
	}
	if err := config.DB.Create(&job).Error; err != nil {
		utils.LogError("CreateJob - DB error: %v", err)
		utils.InternalServerError(c, "Failed to create job", nil)
		return
	}

	utils.LogInfo("Job created: %d (%s) by user %d", job.ID, job.Title, user.ID)
	utils.Created(c, "Job created", job)
}

// UpdateJob edits a job that has not been closed yet
func UpdateJob(c *gin.Context) {
	utils.LogInfo("UpdateJob called")

	job, user := loadOwnedJob(c)
	if job == nil {
		return
	}
	if job.Status == models.JobStatusClosed {
		utils.BadRequest(c, "Closed jobs cannot be edited", nil)
		return
	}

	var req UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("UpdateJob - Invalid request: %v", err)
		utils.BadRequest(c, "Invalid job details", err.Error())
		return
	}

	if req.Title != "" {
		job.Title = utils.SanitizeString(req.Title)
	}
	if req.Location != "" {
		job.Location = utils.SanitizeString(req.Location)
	}
	if req.WorkMode != "" {
		if !validWorkModes[req.WorkMode] {
			utils.BadRequest(c, "Invalid work mode", nil)
			return
		}
		job.WorkMode = req.WorkMode
	}
	if req.JobType != "" {
		if !validJobTypes[req.JobType] {
			utils.BadRequest(c, "Invalid job type", nil)
			return
		}
		job.JobType = req.JobType
	}
	if req.Description != "" {
		job.Description = req.Description
	}
	if req.Requirements != "" {
		job.Requirements = req.Requirements
	}

	if err := config.DB.Save(job).Error; err != nil {
		utils.LogError("UpdateJob - DB error: %v", err)
		utils.InternalServerError(c, "Failed to update job", nil)
		return
	}

	utils.LogInfo("Job %d updated by user %d", job.ID, user.ID)
	utils.Success(c, "Job updated", job)
}

// PublishJob moves a draft job to PUBLISHED
func PublishJob(c *gin.Context) {
	utils.LogInfo("PublishJob called")

	job, user := loadOwnedJob(c)
	if job == nil {
		return
	}
	if job.Status != models.JobStatusDraft {
		utils.BadRequest(c, "Only draft jobs can be published", nil)
		return
	}

	now := time.Now()
	job.Status = models.JobStatusPublished
	job.PublishedAt = &now
	if err := config.DB.Save(job).Error; err != nil {
		utils.LogError("PublishJob - DB error: %v", err)
		utils.InternalServerError(c, "Failed to publish job", nil)
		return
	}

	utils.LogInfo("Job %d published by user %d", job.ID, user.ID)
	utils.Success(c, "Job published", job)
}

// CloseJob moves a published job to CLOSED
func CloseJob(c *gin.Context) {
	utils.LogInfo("CloseJob called")

	job, user := loadOwnedJob(c)
	if job == nil {
		return
	}
	if job.Status != models.JobStatusPublished {
		utils.BadRequest(c, "Only published jobs can be closed", nil)
		return
	}

	job.Status = models.JobStatusClosed
	if err := config.DB.Save(job).Error; err != nil {
		utils.LogError("CloseJob - DB error: %v", err)
		utils.InternalServerError(c, "Failed to close job", nil)
		return
	}

	utils.LogInfo("Job %d closed by user %d", job.ID, user.ID)
	utils.Success(c, "Job closed", job)
}

// ListCompanyJobs lists all jobs (any status) for a company the caller
// belongs to
func ListCompanyJobs(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Please login for access")
		return
	}

	companyID := c.Param("id")
	var company models.Company
	if err := config.DB.First(&company, companyID).Error; err != nil {
		utils.NotFound(c, "Company not found")
		return
	}
	if !isCompanyMember(user.ID, company.ID) {
		utils.Forbidden(c, "Not a member of this company")
		return
	}

	var jobs []models.Job
	if err := config.DB.Where("company_id = ?", company.ID).Order("created_at DESC").Find(&jobs).Error; err != nil {
		utils.LogError("ListCompanyJobs - DB error: %v", err)
		utils.InternalServerError(c, "Failed to fetch jobs", nil)
		return
	}

	utils.Success(c, "Jobs retrieved", jobs)
}
