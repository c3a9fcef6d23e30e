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

// FeeHandler handles fee structure, record and payment endpoints.
type FeeHandler struct {
	feeService *service.FeeService
}

// NewFeeHandler creates a new FeeHandler.
func NewFeeHandler(feeService *service.FeeService) *FeeHandler {
	return &FeeHandler{feeService: feeService}
}

// CreateStructure godoc
// POST /api/v1/fees/structures
func (h *FeeHandler) CreateStructure(c *gin.Context) {
	actor := middleware.GetActor(c)

	var req model.CreateFeeStructureRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	structure, err := h.feeService.CreateStructure(c.Request.Context(), actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"structure": structure})
}

// ListStructures godoc
// GET /api/v1/fees/structures?academic_year=2026-2027
func (h *FeeHandler) ListStructures(c *gin.Context) {
	actor := middleware.GetActor(c)

	structures, err := h.feeService.ListStructures(c.Request.Context(), actor, c.Query("academic_year"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"structures": structures})
}

// CreateRecord godoc
// POST /api/v1/fees/records
func (h *FeeHandler) CreateRecord(c *gin.Context) {
	actor := middleware.GetActor(c)

	var req model.CreateFeeRecordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	record, err := h.feeService.CreateRecord(c.Request.Context(), actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"record": record})
}

// GetRecord godoc
// GET /api/v1/fees/records/:id
func (h *FeeHandler) GetRecord(c *gin.Context) {
	actor := middleware.GetActor(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	record, err := h.feeService.GetRecord(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"record": record})
}

// ListRecords godoc
// GET /api/v1/fees/records?student_id=&status=
func (h *FeeHandler) ListRecords(c *gin.Context) {
	actor := middleware.GetActor(c)

	studentID, ok := optionalUUIDQuery(c, "student_id")
	if !ok {
		return
	}

	var status *model.FeeStatus
	if raw := c.Query("status"); raw != "" {
		s := model.FeeStatus(raw)
		status = &s
	}

	page, perPage, limit, offset := paginationParams(c)
	records, total, err := h.feeService.ListRecords(c.Request.Context(), actor, studentID, status, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"records": records}, buildPagination(page, perPage, total))
}

// MakePayment godoc
// POST /api/v1/fees/records/:id/payments
// Applies a payment against the record under a row lock. Over-payment and
// payments against settled records are rejected.
func (h *FeeHandler) MakePayment(c *gin.Context) {
	actor := middleware.GetActor(c)
	recordID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.MakePaymentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	record, err := h.feeService.MakePayment(c.Request.Context(), actor, recordID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"record": record})
}

// OutstandingSummary godoc
// GET /api/v1/fees/outstanding/:student_id
func (h *FeeHandler) OutstandingSummary(c *gin.Context) {
	actor := middleware.GetActor(c)
	studentID, ok := parseIDParam(c, "student_id")
	if !ok {
		return
	}

	summary, err := h.feeService.OutstandingSummary(c.Request.Context(), actor, studentID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"summary": summary})
}
