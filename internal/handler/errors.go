package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/edustack/campus-backend/internal/repository"
	"github.com/edustack/campus-backend/internal/response"
	"github.com/edustack/campus-backend/internal/service"
)

// respondError translates domain sentinels into the response error taxonomy.
// Out-of-scope reads collapse into 404 so existence is never leaked across
// school boundaries.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrOutOfScope),
		errors.Is(err, pgx.ErrNoRows):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrCrossSchool):
		response.Fail(c, http.StatusBadRequest, response.ErrCrossSchoolRef)
	case errors.Is(err, service.ErrSectionMismatch):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrSectionMismatch)
	case errors.Is(err, service.ErrMarksOutOfRange):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrMarksOutOfRange)
	case errors.Is(err, service.ErrPaymentNotPositive):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrPaymentNotPositive)
	case errors.Is(err, service.ErrSectionFull), errors.Is(err, repository.ErrSectionFull):
		response.Fail(c, http.StatusConflict, response.ErrSectionFull)
	case errors.Is(err, service.ErrSubmissionGraded):
		response.Fail(c, http.StatusConflict, response.ErrSubmissionGraded)
	case errors.Is(err, service.ErrRecipientsInvalid):
		response.Fail(c, http.StatusBadRequest, response.ErrRecipientNotInScope)
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
	case errors.Is(err, service.ErrAccountInactive):
		response.Fail(c, http.StatusForbidden, response.ErrAccountDisabled)
	case errors.Is(err, repository.ErrSlotConflict):
		response.Fail(c, http.StatusConflict, response.ErrSlotConflict)
	case errors.Is(err, repository.ErrDuplicate):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, repository.ErrPaymentExceedsDue):
		response.Fail(c, http.StatusConflict, response.ErrPaymentExceedsDue)
	case errors.Is(err, repository.ErrFeeAlreadySettled):
		response.Fail(c, http.StatusConflict, response.ErrFeeAlreadySettled)
	default:
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
