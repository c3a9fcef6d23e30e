package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edustack/campus-backend/internal/middleware"
	"github.com/edustack/campus-backend/internal/response"
	"github.com/edustack/campus-backend/internal/service"
)

// ReportHandler handles derived report endpoints.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// StudentPerformance godoc
// GET /api/v1/reports/performance/:student_id
// Per-subject averages and grade letters across all visible exams.
func (h *ReportHandler) StudentPerformance(c *gin.Context) {
	actor := middleware.GetActor(c)
	studentID, ok := parseIDParam(c, "student_id")
	if !ok {
		return
	}

	performance, err := h.reportService.StudentPerformance(c.Request.Context(), actor, studentID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"performance": performance})
}

// AssignmentStats godoc
// GET /api/v1/reports/assignments/:id/stats
func (h *ReportHandler) AssignmentStats(c *gin.Context) {
	actor := middleware.GetActor(c)
	assignmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	stats, err := h.reportService.AssignmentStats(c.Request.Context(), actor, assignmentID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

// SubmissionReport godoc
// GET /api/v1/reports/assignments/:id/submissions
func (h *ReportHandler) SubmissionReport(c *gin.Context) {
	actor := middleware.GetActor(c)
	assignmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rows, err := h.reportService.SubmissionReport(c.Request.Context(), actor, assignmentID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"report": rows})
}
