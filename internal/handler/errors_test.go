package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/edustack/campus-backend/internal/repository"
	"github.com/edustack/campus-backend/internal/service"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err        error
		wantStatus int
	}{
		{service.ErrForbidden, http.StatusForbidden},
		{service.ErrNotFound, http.StatusNotFound},
		{service.ErrOutOfScope, http.StatusNotFound},
		{pgx.ErrNoRows, http.StatusNotFound},
		{fmt.Errorf("get exam: %w", service.ErrOutOfScope), http.StatusNotFound},
		{service.ErrCrossSchool, http.StatusBadRequest},
		{service.ErrSectionMismatch, http.StatusUnprocessableEntity},
		{service.ErrMarksOutOfRange, http.StatusUnprocessableEntity},
		{service.ErrPaymentNotPositive, http.StatusUnprocessableEntity},
		{service.ErrSectionFull, http.StatusConflict},
		{repository.ErrSectionFull, http.StatusConflict},
		{service.ErrSubmissionGraded, http.StatusConflict},
		{service.ErrRecipientsInvalid, http.StatusBadRequest},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrAccountInactive, http.StatusForbidden},
		{repository.ErrSlotConflict, http.StatusConflict},
		{repository.ErrDuplicate, http.StatusConflict},
		{repository.ErrPaymentExceedsDue, http.StatusConflict},
		{repository.ErrFeeAlreadySettled, http.StatusConflict},
		{&pgconn.PgError{Code: "23503"}, http.StatusConflict},
		{fmt.Errorf("something broke"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		respondError(c, tt.err)
		if rec.Code != tt.wantStatus {
			t.Errorf("respondError(%v): status %d, want %d", tt.err, rec.Code, tt.wantStatus)
		}
	}
}
