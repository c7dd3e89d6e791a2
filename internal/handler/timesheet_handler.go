package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matheusrsantos97-lgtm/VetFlow/internal/dto"
	"github.com/matheusrsantos97-lgtm/VetFlow/internal/models"
	"github.com/matheusrsantos97-lgtm/VetFlow/internal/service"
	"github.com/matheusrsantos97-lgtm/VetFlow/pkg/response"
)

type timesheetService interface {
	ListMonths(ctx context.Context, userID string) ([]dto.MonthSummary, error)
	GetMonth(ctx context.Context, userID, monthID string) (*dto.MonthDetail, error)
	CreateMonth(ctx context.Context, userID string, req dto.CreateMonthRequest) (*models.MonthRecord, error)
	DeleteMonth(ctx context.Context, userID, monthID string) error
	SetEntryTime(ctx context.Context, userID, monthID, shift, date string, req dto.SetTimeRequest) (*models.WorkDay, error)
	SetExitTime(ctx context.Context, userID, monthID, shift, date string, req dto.SetTimeRequest) (*models.WorkDay, error)
	ExportPDF(ctx context.Context, user models.UserInfo, monthID string) (*service.ExportResult, error)
	ExportCSV(ctx context.Context, user models.UserInfo, monthID string) (*service.ExportResult, error)
}

// TimesheetHandler exposes the month-sheet endpoints.
type TimesheetHandler struct {
	service timesheetService
}

// NewTimesheetHandler constructs the handler.
func NewTimesheetHandler(svc timesheetService) *TimesheetHandler {
	return &TimesheetHandler{service: svc}
}

// List godoc
// @Summary List month sheets
// @Tags Timesheets
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timesheets [get]
func (h *TimesheetHandler) List(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	months, err := h.service.ListMonths(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, months, map[string]interface{}{"total": len(months)})
}

// Create godoc
// @Summary Create month sheet
// @Description Add both shift sheets for a calendar month. month_index is zero-based.
// @Tags Timesheets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body dto.CreateMonthRequest true "Month"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /timesheets [post]
func (h *TimesheetHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.CreateMonthRequest
	if !bindJSON(c, &req, "invalid month payload") {
		return
	}
	month, err := h.service.CreateMonth(c.Request.Context(), user.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, month)
}

// Get godoc
// @Summary Get month sheet
// @Tags Timesheets
// @Security BearerAuth
// @Produce json
// @Param id path string true "Month ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /timesheets/{id} [get]
func (h *TimesheetHandler) Get(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	detail, err := h.service.GetMonth(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail)
}

// Delete godoc
// @Summary Delete month sheet
// @Tags Timesheets
// @Security BearerAuth
// @Param id path string true "Month ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /timesheets/{id} [delete]
func (h *TimesheetHandler) Delete(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	if err := h.service.DeleteMonth(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SetEntry godoc
// @Summary Set entry time
// @Tags Timesheets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Month ID"
// @Param sheet path string true "commercial or night"
// @Param date path string true "Day (YYYY-MM-DD)"
// @Param payload body dto.SetTimeRequest true "HH:MM or empty"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /timesheets/{id}/sheets/{sheet}/days/{date}/entry [put]
func (h *TimesheetHandler) SetEntry(c *gin.Context) {
	h.setTime(c, h.service.SetEntryTime)
}

// SetExit godoc
// @Summary Set exit time
// @Description An exit earlier than the entry counts as the next day.
// @Tags Timesheets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Month ID"
// @Param sheet path string true "commercial or night"
// @Param date path string true "Day (YYYY-MM-DD)"
// @Param payload body dto.SetTimeRequest true "HH:MM or empty"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /timesheets/{id}/sheets/{sheet}/days/{date}/exit [put]
func (h *TimesheetHandler) SetExit(c *gin.Context) {
	h.setTime(c, h.service.SetExitTime)
}

type timeSetter func(ctx context.Context, userID, monthID, shift, date string, req dto.SetTimeRequest) (*models.WorkDay, error)

func (h *TimesheetHandler) setTime(c *gin.Context, set timeSetter) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.SetTimeRequest
	if !bindJSON(c, &req, "invalid time payload") {
		return
	}
	day, err := set(c.Request.Context(), user.ID, c.Param("id"), c.Param("sheet"), c.Param("date"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, day)
}

// ExportPDF godoc
// @Summary Download hours report (PDF)
// @Tags Timesheets
// @Security BearerAuth
// @Produce application/pdf
// @Param id path string true "Month ID"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /timesheets/{id}/export/pdf [get]
func (h *TimesheetHandler) ExportPDF(c *gin.Context) {
	h.export(c, h.service.ExportPDF)
}

// ExportCSV godoc
// @Summary Download hours report (CSV)
// @Tags Timesheets
// @Security BearerAuth
// @Produce text/csv
// @Param id path string true "Month ID"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /timesheets/{id}/export/csv [get]
func (h *TimesheetHandler) ExportCSV(c *gin.Context) {
	h.export(c, h.service.ExportCSV)
}

func (h *TimesheetHandler) export(c *gin.Context, render func(ctx context.Context, user models.UserInfo, monthID string) (*service.ExportResult, error)) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	result, err := render(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.Filename, result.ContentType, result.Content)
}
