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

// ResourceHandler handles learning material endpoints.
type ResourceHandler struct {
	resourceService *service.ResourceService
}

// NewResourceHandler creates a new ResourceHandler.
func NewResourceHandler(resourceService *service.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

// List godoc
// GET /api/v1/resources
// Students and parents only see public material for their classes.
func (h *ResourceHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)

	subjectID, ok := optionalUUIDQuery(c, "subject_id")
	if !ok {
		return
	}
	classID, ok := optionalUUIDQuery(c, "class_id")
	if !ok {
		return
	}

	var resourceType *model.ResourceType
	if raw := c.Query("type"); raw != "" {
		t := model.ResourceType(raw)
		if !t.Valid() {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		resourceType = &t
	}

	page, perPage, limit, offset := paginationParams(c)
	resources, total, err := h.resourceService.List(c.Request.Context(), actor, subjectID, classID, resourceType, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"resources": resources}, buildPagination(page, perPage, total))
}

// Get godoc
// GET /api/v1/resources/:id
func (h *ResourceHandler) Get(c *gin.Context) {
	actor := middleware.GetActor(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	res, err := h.resourceService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"resource": res})
}

// Create godoc
// POST /api/v1/resources
func (h *ResourceHandler) Create(c *gin.Context) {
	actor := middleware.GetActor(c)

	var req model.CreateResourceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	res, err := h.resourceService.Create(c.Request.Context(), actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"resource": res})
}

// Update godoc
// PUT /api/v1/resources/:id
func (h *ResourceHandler) Update(c *gin.Context) {
	actor := middleware.GetActor(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateResourceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	res, err := h.resourceService.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"resource": res})
}

// Delete godoc
// DELETE /api/v1/resources/:id
func (h *ResourceHandler) Delete(c *gin.Context) {
	actor := middleware.GetActor(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.resourceService.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "resource deleted"})
}
