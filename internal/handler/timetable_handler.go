package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edustack/campus-backend/internal/middleware"
	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/response"
	"github.com/edustack/campus-backend/internal/service"
	"github.com/edustack/campus-backend/internal/validator"
)

// TimetableHandler handles timetable slot endpoints.
type TimetableHandler struct {
	timetableService *service.TimetableService
}

// NewTimetableHandler creates a new TimetableHandler.
func NewTimetableHandler(timetableService *service.TimetableService) *TimetableHandler {
	return &TimetableHandler{timetableService: timetableService}
}

// List godoc
// GET /api/v1/timetable?class_id=&weekday=
func (h *TimetableHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)

	classID, ok := optionalUUIDQuery(c, "class_id")
	if !ok {
		return
	}

	var weekday *model.Weekday
	if raw := c.Query("weekday"); raw != "" {
		n, err := strconv.Atoi(raw)
		w := model.Weekday(n)
		if err != nil || !w.Valid() {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		weekday = &w
	}

	slots, err := h.timetableService.List(c.Request.Context(), actor, classID, weekday)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"slots": slots})
}

// MySchedule godoc
// GET /api/v1/timetable/my-schedule
// Returns the authenticated teacher's weekly schedule.
func (h *TimetableHandler) MySchedule(c *gin.Context) {
	actor := middleware.GetActor(c)

	slots, err := h.timetableService.TeacherSchedule(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"slots": slots})
}

// Create godoc
// POST /api/v1/timetable
func (h *TimetableHandler) Create(c *gin.Context) {
	actor := middleware.GetActor(c)

	var req model.CreateTimetableSlotRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	slot, err := h.timetableService.Create(c.Request.Context(), actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"slot": slot})
}

// Update godoc
// PUT /api/v1/timetable/:id
func (h *TimetableHandler) Update(c *gin.Context) {
	actor := middleware.GetActor(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateTimetableSlotRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	slot, err := h.timetableService.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"slot": slot})
}

// Delete godoc
// DELETE /api/v1/timetable/:id
func (h *TimetableHandler) Delete(c *gin.Context) {
	actor := middleware.GetActor(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.timetableService.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "slot deleted"})
}
