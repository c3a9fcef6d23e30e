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

// ClassHandler handles class and section management endpoints.
type ClassHandler struct {
	classService *service.ClassService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService *service.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// List godoc
// GET /api/v1/classes
func (h *ClassHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)
	page, perPage, limit, offset := paginationParams(c)

	classes, total, err := h.classService.List(c.Request.Context(), actor, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"classes": classes}, buildPagination(page, perPage, total))
}

// Get godoc
// GET /api/v1/classes/:id
func (h *ClassHandler) Get(c *gin.Context) {
	actor := middleware.GetActor(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	class, err := h.classService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class": class})
}

// Create godoc
// POST /api/v1/classes
func (h *ClassHandler) Create(c *gin.Context) {
	actor := middleware.GetActor(c)

	var req model.CreateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class, err := h.classService.Create(c.Request.Context(), actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"class": class})
}

// Update godoc
// PUT /api/v1/classes/:id
func (h *ClassHandler) Update(c *gin.Context) {
	actor := middleware.GetActor(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class, err := h.classService.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class": class})
}

// ListSections godoc
// GET /api/v1/classes/:id/sections
func (h *ClassHandler) ListSections(c *gin.Context) {
	actor := middleware.GetActor(c)
	classID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sections, err := h.classService.ListSections(c.Request.Context(), actor, classID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"sections": sections})
}

// CreateSection godoc
// POST /api/v1/classes/:id/sections
func (h *ClassHandler) CreateSection(c *gin.Context) {
	actor := middleware.GetActor(c)
	classID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.CreateSectionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	section, err := h.classService.CreateSection(c.Request.Context(), actor, classID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"section": section})
}

// UpdateSection godoc
// PUT /api/v1/sections/:id
func (h *ClassHandler) UpdateSection(c *gin.Context) {
	actor := middleware.GetActor(c)
	sectionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateSectionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	section, err := h.classService.UpdateSection(c.Request.Context(), actor, sectionID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"section": section})
}
