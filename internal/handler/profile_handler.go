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

// ProfileHandler handles role profile management endpoints.
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// CreateTeacher godoc
// POST /api/v1/profiles/teachers
func (h *ProfileHandler) CreateTeacher(c *gin.Context) {
	actor := middleware.GetActor(c)

	var req model.CreateTeacherProfileRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	profile, err := h.profileService.CreateTeacher(c.Request.Context(), actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"profile": profile})
}

// UpdateTeacher godoc
// PUT /api/v1/profiles/teachers/:id
func (h *ProfileHandler) UpdateTeacher(c *gin.Context) {
	actor := middleware.GetActor(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateTeacherProfileRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	profile, err := h.profileService.UpdateTeacher(c.Request.Context(), actor, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profile": profile})
}

// CreateStudent godoc
// POST /api/v1/profiles/students
func (h *ProfileHandler) CreateStudent(c *gin.Context) {
	actor := middleware.GetActor(c)

	var req model.CreateStudentProfileRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	profile, err := h.profileService.CreateStudent(c.Request.Context(), actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"profile": profile})
}

// UpdateStudent godoc
// PUT /api/v1/profiles/students/:id
// Moving a student re-validates section membership and capacity.
func (h *ProfileHandler) UpdateStudent(c *gin.Context) {
	actor := middleware.GetActor(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateStudentProfileRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	profile, err := h.profileService.UpdateStudent(c.Request.Context(), actor, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profile": profile})
}

// CreateParent godoc
// POST /api/v1/profiles/parents
func (h *ProfileHandler) CreateParent(c *gin.Context) {
	actor := middleware.GetActor(c)

	var req model.CreateParentProfileRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	profile, err := h.profileService.CreateParent(c.Request.Context(), actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"profile": profile})
}

// CreatePrincipal godoc
// POST /api/v1/profiles/principals
func (h *ProfileHandler) CreatePrincipal(c *gin.Context) {
	actor := middleware.GetActor(c)

	var req model.CreatePrincipalProfileRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	profile, err := h.profileService.CreatePrincipal(c.Request.Context(), actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"profile": profile})
}
