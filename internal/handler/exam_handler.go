package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edustack/campus-backend/internal/middleware"
	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/response"
	"github.com/edustack/campus-backend/internal/service"
	"github.com/edustack/campus-backend/internal/validator"
)

// ExamHandler handles exam and mark endpoints.
type ExamHandler struct {
	examService *service.ExamService
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(examService *service.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

// List godoc
// GET /api/v1/exams?class_id=&subject_id=
func (h *ExamHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)

	classID, ok := optionalUUIDQuery(c, "class_id")
	if !ok {
		return
	}
	subjectID, ok := optionalUUIDQuery(c, "subject_id")
	if !ok {
		return
	}

	page, perPage, limit, offset := paginationParams(c)
	exams, total, err := h.examService.List(c.Request.Context(), actor, classID, subjectID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"exams": exams}, buildPagination(page, perPage, total))
}

// Get godoc
// GET /api/v1/exams/:id
func (h *ExamHandler) Get(c *gin.Context) {
	actor := middleware.GetActor(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	exam, err := h.examService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// Create godoc
// POST /api/v1/exams
func (h *ExamHandler) Create(c *gin.Context) {
	actor := middleware.GetActor(c)

	var req model.CreateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exam, err := h.examService.Create(c.Request.Context(), actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"exam": exam})
}

// Update godoc
// PUT /api/v1/exams/:id
func (h *ExamHandler) Update(c *gin.Context) {
	actor := middleware.GetActor(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exam, err := h.examService.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// Delete godoc
// DELETE /api/v1/exams/:id
func (h *ExamHandler) Delete(c *gin.Context) {
	actor := middleware.GetActor(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.examService.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "exam deleted"})
}

// RecordMark godoc
// POST /api/v1/exams/:id/marks
// Records or overwrites a student's mark for the exam. Percentage and grade
// letter are derived server-side.
func (h *ExamHandler) RecordMark(c *gin.Context) {
	actor := middleware.GetActor(c)
	examID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.RecordMarkRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	mark, err := h.examService.RecordMark(c.Request.Context(), actor, examID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"mark": mark})
}

// ListMarks godoc
// GET /api/v1/exams/:id/marks
func (h *ExamHandler) ListMarks(c *gin.Context) {
	actor := middleware.GetActor(c)
	examID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	marks, err := h.examService.ListMarksByExam(c.Request.Context(), actor, examID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"marks": marks})
}

// StudentMarks godoc
// GET /api/v1/students/:id/marks
func (h *ExamHandler) StudentMarks(c *gin.Context) {
	actor := middleware.GetActor(c)
	studentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	marks, err := h.examService.ListMarksByStudent(c.Request.Context(), actor, studentID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"marks": marks})
}
