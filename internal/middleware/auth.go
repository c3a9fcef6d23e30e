package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/policy"
	"github.com/edustack/campus-backend/internal/repository"
	"github.com/edustack/campus-backend/internal/response"
	"github.com/edustack/campus-backend/internal/service"
)

const (
	// ContextKeyClaims is the Gin context key for JWT claims.
	ContextKeyClaims = "claims"
	// ContextKeyActor is the Gin context key for the resolved policy actor.
	ContextKeyActor = "actor"
)

// RequireAuth validates the bearer token, checks the session is still the
// active one, and resolves the actor's policy context for downstream
// handlers.
func RequireAuth(authSvc *service.AuthService, actorRepo *repository.ActorRepository, contextSvc *service.ContextService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := extractAndValidateClaims(c, authSvc)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}
		if err := authSvc.ValidateSession(c.Request.Context(), claims.ActorID, claims.ID); err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionInvalidated)
			return
		}

		actor, err := actorRepo.GetByID(c.Request.Context(), claims.ActorID)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}
		if !actor.IsActive {
			response.AbortFail(c, http.StatusForbidden, response.ErrAccountDisabled)
			return
		}

		pa, err := contextSvc.Resolve(c.Request.Context(), actor)
		if err != nil {
			response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Set(ContextKeyActor, pa)
		c.Next()
	}
}

// RequireRole restricts a route group to the given roles. Policy checks in
// the services remain the authority; this only short-circuits obvious cases.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		actor := GetActor(c)
		if actor == nil || !allowed[actor.Role] {
			response.AbortFail(c, http.StatusForbidden, response.ErrForbidden)
			return
		}
		c.Next()
	}
}

// GetActor retrieves the resolved policy actor from the Gin context.
func GetActor(c *gin.Context) *policy.Actor {
	val, exists := c.Get(ContextKeyActor)
	if !exists {
		return nil
	}
	actor, ok := val.(*policy.Actor)
	if !ok {
		return nil
	}
	return actor
}

// GetClaims retrieves the JWT claims from the Gin context.
func GetClaims(c *gin.Context) *service.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

func extractAndValidateClaims(c *gin.Context, authSvc *service.AuthService) (*service.Claims, error) {
	tokenStr := ""

	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			tokenStr = parts[1]
		}
	}

	// Fallback for WebSocket upgrades, which cannot send headers from
	// browser clients.
	if tokenStr == "" {
		tokenStr = c.Query("token")
	}

	if tokenStr == "" {
		return nil, service.ErrSessionInvalid
	}
	return authSvc.ValidateToken(tokenStr)
}
