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

// BehaviorHandler handles behavior category and log endpoints.
type BehaviorHandler struct {
	behaviorService *service.BehaviorService
}

// NewBehaviorHandler creates a new BehaviorHandler.
func NewBehaviorHandler(behaviorService *service.BehaviorService) *BehaviorHandler {
	return &BehaviorHandler{behaviorService: behaviorService}
}

// ListCategories godoc
// GET /api/v1/behavior/categories
func (h *BehaviorHandler) ListCategories(c *gin.Context) {
	actor := middleware.GetActor(c)

	categories, err := h.behaviorService.ListCategories(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory godoc
// POST /api/v1/behavior/categories
func (h *BehaviorHandler) CreateCategory(c *gin.Context) {
	actor := middleware.GetActor(c)

	var req model.CreateBehaviorCategoryRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	category, err := h.behaviorService.CreateCategory(c.Request.Context(), actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"category": category})
}

// ListLogs godoc
// GET /api/v1/behavior/logs?student_id=
func (h *BehaviorHandler) ListLogs(c *gin.Context) {
	actor := middleware.GetActor(c)

	studentID, ok := optionalUUIDQuery(c, "student_id")
	if !ok {
		return
	}

	page, perPage, limit, offset := paginationParams(c)
	logs, total, err := h.behaviorService.ListLogs(c.Request.Context(), actor, studentID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"logs": logs}, buildPagination(page, perPage, total))
}

// GetLog godoc
// GET /api/v1/behavior/logs/:id
func (h *BehaviorHandler) GetLog(c *gin.Context) {
	actor := middleware.GetActor(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	log, err := h.behaviorService.GetLog(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"log": log})
}

// CreateLog godoc
// POST /api/v1/behavior/logs
func (h *BehaviorHandler) CreateLog(c *gin.Context) {
	actor := middleware.GetActor(c)

	var req model.CreateBehaviorLogRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	log, err := h.behaviorService.CreateLog(c.Request.Context(), actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"log": log})
}

// UpdateLog godoc
// PUT /api/v1/behavior/logs/:id
func (h *BehaviorHandler) UpdateLog(c *gin.Context) {
	actor := middleware.GetActor(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateBehaviorLogRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	log, err := h.behaviorService.UpdateLog(c.Request.Context(), actor, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"log": log})
}

// PointTotal godoc
// GET /api/v1/behavior/points/:student_id
func (h *BehaviorHandler) PointTotal(c *gin.Context) {
	actor := middleware.GetActor(c)
	studentID, ok := parseIDParam(c, "student_id")
	if !ok {
		return
	}

	total, err := h.behaviorService.PointTotal(c.Request.Context(), actor, studentID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"points": total})
}
