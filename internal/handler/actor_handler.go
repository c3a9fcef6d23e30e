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

// ActorHandler handles account management endpoints.
type ActorHandler struct {
	actorService *service.ActorService
}

// NewActorHandler creates a new ActorHandler.
func NewActorHandler(actorService *service.ActorService) *ActorHandler {
	return &ActorHandler{actorService: actorService}
}

// List godoc
// GET /api/v1/actors?role=TEACHER&page=1&per_page=20
func (h *ActorHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)

	var role *model.Role
	if raw := c.Query("role"); raw != "" {
		r := model.Role(raw)
		role = &r
	}

	page, perPage, limit, offset := paginationParams(c)
	actors, total, err := h.actorService.List(c.Request.Context(), actor, role, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"actors": actors}, buildPagination(page, perPage, total))
}

// Get godoc
// GET /api/v1/actors/:id
func (h *ActorHandler) Get(c *gin.Context) {
	actor := middleware.GetActor(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	target, err := h.actorService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"actor": target})
}

// Create godoc
// POST /api/v1/actors
func (h *ActorHandler) Create(c *gin.Context) {
	actor := middleware.GetActor(c)

	var req model.CreateActorRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	created, err := h.actorService.Create(c.Request.Context(), actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"actor": created})
}

// Update godoc
// PUT /api/v1/actors/:id
func (h *ActorHandler) Update(c *gin.Context) {
	actor := middleware.GetActor(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateActorRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	updated, err := h.actorService.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"actor": updated})
}

// Deactivate godoc
// DELETE /api/v1/actors/:id
// Soft-deletes the account and revokes its session.
func (h *ActorHandler) Deactivate(c *gin.Context) {
	actor := middleware.GetActor(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.actorService.Deactivate(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "actor deactivated"})
}
