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

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService  *service.AuthService
	actorService *service.ActorService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, actorService *service.ActorService) *AuthHandler {
	return &AuthHandler{authService: authService, actorService: actorService}
}

// Login godoc
// POST /api/v1/auth/login
// Validates email + password, returns JWT. A fresh login replaces any
// previous session for the same account.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Logout godoc
// POST /api/v1/auth/logout
// Invalidates the current session.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims.ActorID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the authenticated actor plus their resolved visibility context.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	actor := middleware.GetActor(c)
	if claims == nil || actor == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	target, err := h.actorService.GetByID(c.Request.Context(), actor, claims.ActorID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"actor": target,
		"context": gin.H{
			"role":       actor.Role,
			"school_id":  actor.SchoolID,
			"profile_id": actor.ProfileID,
		},
	})
}
