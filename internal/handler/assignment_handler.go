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

// AssignmentHandler handles assignment and submission endpoints.
type AssignmentHandler struct {
	assignmentService *service.AssignmentService
}

// NewAssignmentHandler creates a new AssignmentHandler.
func NewAssignmentHandler(assignmentService *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// List godoc
// GET /api/v1/assignments?subject_id=&status=
func (h *AssignmentHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)

	subjectID, ok := optionalUUIDQuery(c, "subject_id")
	if !ok {
		return
	}

	var status *model.AssignmentStatus
	if raw := c.Query("status"); raw != "" {
		s := model.AssignmentStatus(raw)
		status = &s
	}

	page, perPage, limit, offset := paginationParams(c)
	assignments, total, err := h.assignmentService.List(c.Request.Context(), actor, subjectID, status, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"assignments": assignments}, buildPagination(page, perPage, total))
}

// Get godoc
// GET /api/v1/assignments/:id
func (h *AssignmentHandler) Get(c *gin.Context) {
	actor := middleware.GetActor(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	assignment, err := h.assignmentService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"assignment": assignment})
}

// Create godoc
// POST /api/v1/assignments
func (h *AssignmentHandler) Create(c *gin.Context) {
	actor := middleware.GetActor(c)

	var req model.CreateAssignmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	assignment, err := h.assignmentService.Create(c.Request.Context(), actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"assignment": assignment})
}

// Update godoc
// PUT /api/v1/assignments/:id
func (h *AssignmentHandler) Update(c *gin.Context) {
	actor := middleware.GetActor(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateAssignmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	assignment, err := h.assignmentService.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"assignment": assignment})
}

// Submit godoc
// POST /api/v1/assignments/:id/submit
// Re-submitting before grading overwrites the previous attempt. Submissions
// after the due date are accepted but flagged late.
func (h *AssignmentHandler) Submit(c *gin.Context) {
	actor := middleware.GetActor(c)
	assignmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.SubmitAssignmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	submission, err := h.assignmentService.Submit(c.Request.Context(), actor, assignmentID, &req, time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"submission": submission})
}

// Grade godoc
// POST /api/v1/submissions/:id/grade
func (h *AssignmentHandler) Grade(c *gin.Context) {
	actor := middleware.GetActor(c)
	submissionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.GradeSubmissionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	submission, err := h.assignmentService.Grade(c.Request.Context(), actor, submissionID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"submission": submission})
}

// ListSubmissions godoc
// GET /api/v1/assignments/:id/submissions
func (h *AssignmentHandler) ListSubmissions(c *gin.Context) {
	actor := middleware.GetActor(c)
	assignmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	submissions, err := h.assignmentService.ListSubmissions(c.Request.Context(), actor, assignmentID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"submissions": submissions})
}

// MySubmission godoc
// GET /api/v1/assignments/:id/my-submission
func (h *AssignmentHandler) MySubmission(c *gin.Context) {
	actor := middleware.GetActor(c)
	assignmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	submission, err := h.assignmentService.MySubmission(c.Request.Context(), actor, assignmentID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"submission": submission})
}
