package controllers

import (
	"github.com/akhil-8601/JobNest/config"
	"github.com/akhil-8601/JobNest/middleware"
	"github.com/akhil-8601/JobNest/models"
	"github.com/akhil-8601/JobNest/utils"
	"github.com/gin-gonic/gin"
)

// ListJobs returns published jobs with pagination and basic filters
func ListJobs(c *gin.Context) {
	utils.LogInfo("ListJobs called")

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Job{}).
		Where("status = ?", models.JobStatusPublished).
		Preload("Company")

	if q := utils.SanitizeString(c.Query("q")); q != "" {
		query = query.Where("title LIKE ?", "%"+q+"%")
	}
	if workMode := c.Query("work_mode"); workMode != "" {
		query = query.Where("work_mode = ?", workMode)
	}
	if jobType := c.Query("job_type"); jobType != "" {
		query = query.Where("job_type = ?", jobType)
	}
	if location := utils.SanitizeString(c.Query("location")); location != "" {
		query = query.Where("location LIKE ?", "%"+location+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count jobs: %v", err)
		utils.InternalServerError(c, "Failed to fetch jobs", nil)
		return
	}

	var jobs []models.Job
	err := query.Order("published_at DESC").
		Offset(pagination.Offset).
		Limit(pagination.Limit).
		Find(&jobs).Error
	if err != nil {
		utils.LogError("Failed to fetch jobs: %v", err)
		utils.InternalServerError(c, "Failed to fetch jobs", nil)
		return
	}

	utils.SuccessWithPagination(c, "Jobs retrieved", jobs, total, pagination.Page, pagination.Limit)
}

// GetJobDetails returns a single job. Unpublished jobs are only visible to
// members of the owning company.
func GetJobDetails(c *gin.Context) {
	utils.LogInfo("GetJobDetails called")

	var job models.Job
	if err := config.DB.Preload("Company").First(&job, c.Param("id")).Error; err != nil {
		utils.LogError("Job not found: %s", c.Param("id"))
		utils.NotFound(c, "Job not found")
		return
	}

	if job.Status != models.JobStatusPublished {
		user, ok := middleware.CurrentUser(c)
		if !ok || !isCompanyMember(user.ID, job.CompanyID) {
			utils.NotFound(c, "Job not found")
			return
		}
	}

	utils.Success(c, "Job retrieved", job)
}
