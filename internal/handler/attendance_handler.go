package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edustack/campus-backend/internal/middleware"
	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/response"
	"github.com/edustack/campus-backend/internal/service"
	"github.com/edustack/campus-backend/internal/validator"
)

// AttendanceHandler handles attendance endpoints.
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// List godoc
// GET /api/v1/attendance?student_id=&class_id=&from=&to=
func (h *AttendanceHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)

	studentID, ok := optionalUUIDQuery(c, "student_id")
	if !ok {
		return
	}
	classID, ok := optionalUUIDQuery(c, "class_id")
	if !ok {
		return
	}
	from, ok := optionalDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := optionalDateQuery(c, "to")
	if !ok {
		return
	}

	page, perPage, limit, offset := paginationParams(c)
	records, total, err := h.attendanceService.List(c.Request.Context(), actor, studentID, classID, from, to, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"records": records}, buildPagination(page, perPage, total))
}

// MarkBulk godoc
// POST /api/v1/attendance/bulk
// Marks a whole class roster in one call. Re-marking the same student, class,
// subject and date overwrites the previous status. Monthly summaries are
// recomputed in the same transaction.
func (h *AttendanceHandler) MarkBulk(c *gin.Context) {
	actor := middleware.GetActor(c)

	var req model.BulkAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.attendanceService.MarkBulk(c.Request.Context(), actor, &req); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"marked": len(req.Entries)})
}

// Summary godoc
// GET /api/v1/attendance/summary/:student_id?month=2026-04
func (h *AttendanceHandler) Summary(c *gin.Context) {
	actor := middleware.GetActor(c)
	studentID, ok := parseIDParam(c, "student_id")
	if !ok {
		return
	}

	month, err := time.Parse("2006-01", c.DefaultQuery("month", time.Now().UTC().Format("2006-01")))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	summary, err := h.attendanceService.Summary(c.Request.Context(), actor, studentID, month)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"summary": summary})
}

// ClassReport godoc
// GET /api/v1/attendance/report/:class_id?date=2026-04-01&subject_id=
// Lists every active student of the class with their status for the day,
// including students not yet marked.
func (h *AttendanceHandler) ClassReport(c *gin.Context) {
	actor := middleware.GetActor(c)
	classID, ok := parseIDParam(c, "class_id")
	if !ok {
		return
	}

	subjectID, ok := optionalUUIDQuery(c, "subject_id")
	if !ok {
		return
	}

	date, err := time.Parse("2006-01-02", c.DefaultQuery("date", time.Now().UTC().Format("2006-01-02")))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	rows, err := h.attendanceService.ClassReport(c.Request.Context(), actor, classID, subjectID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"report": rows})
}
