package controllers

import (
	"fmt"
	"time"

	"github.com/akhil-8601/JobNest/config"
	"github.com/akhil-8601/JobNest/models"
	"github.com/akhil-8601/JobNest/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"
)

func loadApplicationsForExport(jobID uint) ([]models.Application, error) {
	var applications []models.Application
	err := config.DB.Preload("User").Preload("Resume").
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&applications).Error
	return applications, err
}

// HR: Download a job's applications as Excel
func DownloadApplicationsExcel(c *gin.Context) {
	job, user := loadOwnedJob(c)
	if job == nil {
		return
	}

	applications, err := loadApplicationsForExport(job.ID)
	if err != nil {
		utils.LogError("DownloadApplicationsExcel - DB error: %v", err)
		utils.InternalServerError(c, "Failed to fetch applications", nil)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Applications")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}
	utils.LogDebug("Created Excel sheet for job %d applications", job.ID)

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("JOBNEST - Applications Report")
	titleRow = sheet.AddRow()
	titleRow.AddCell().SetString("Job: " + job.Title)
	titleRow = sheet.AddRow()
	titleRow.AddCell().SetString("Generated: " + time.Now().Format("2006-01-02 15:04"))
	sheet.AddRow() // spacing

	headers := []string{"Application ID", "Candidate ID", "Candidate Email", "Applied At", "Status", "Resume", "Review Note"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	for _, app := range applications {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(app.ID))
		row.AddCell().SetInt(int(app.UserID))
		row.AddCell().SetString(app.User.Email)
		row.AddCell().SetString(app.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetString(app.Status)
		row.AddCell().SetString(app.Resume.Filename)
		row.AddCell().SetString(app.ReviewNote)
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=applications_job_%d.xlsx", job.ID))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("User %d exported Excel applications for job %d", user.ID, job.ID)
}

// HR: Download a job's applications as PDF
func DownloadApplicationsPDF(c *gin.Context) {
	job, user := loadOwnedJob(c)
	if job == nil {
		return
	}

	applications, err := loadApplicationsForExport(job.ID)
	if err != nil {
		utils.LogError("DownloadApplicationsPDF - DB error: %v", err)
		utils.InternalServerError(c, "Failed to fetch applications", nil)
		return
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, "JOBNEST - Applications Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "Job: "+job.Title)
	pdf.Ln(6)
	pdf.Cell(0, 8, "Generated: "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	headers := []string{"ID", "Candidate ID", "Email", "Applied At", "Status", "Resume"}
	colWidths := []float64{18, 28, 75, 38, 45, 60}
	pdf.SetFont("Arial", "B", 11)
	for i, h := range headers {
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(colWidths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	fill := false
	for _, app := range applications {
		pdf.SetFillColor(245, 245, 245)
		if fill {
			pdf.SetFillColor(230, 240, 255)
		}
		fill = !fill
		pdf.CellFormat(colWidths[0], 8, fmt.Sprintf("%d", app.ID), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[1], 8, fmt.Sprintf("%d", app.UserID), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[2], 8, app.User.Email, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[3], 8, app.CreatedAt.Format("2006-01-02 15:04"), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[4], 8, app.Status, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[5], 8, app.Resume.Filename, "1", 0, "L", fill, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total applications: %d", len(applications)))

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=applications_job_%d.pdf", job.ID))
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF file: %v", err)
		utils.InternalServerError(c, "Failed to write PDF file", err.Error())
		return
	}
	utils.LogInfo("User %d exported PDF applications for job %d", user.ID, job.ID)
}
