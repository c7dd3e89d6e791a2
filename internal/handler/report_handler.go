package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matheusrsantos97-lgtm/VetFlow/internal/dto"
	"github.com/matheusrsantos97-lgtm/VetFlow/internal/models"
	"github.com/matheusrsantos97-lgtm/VetFlow/pkg/response"
)

type reportService interface {
	Session(user models.UserInfo) models.ReportSession
	Reset(user models.UserInfo) models.ReportSession
	UpdatePatient(user models.UserInfo, req dto.UpdatePatientRequest) (models.ReportSession, error)
	UpdateClinical(user models.UserInfo, req dto.UpdateClinicalRequest) (models.ReportSession, error)
	SetReportType(user models.UserInfo, req dto.SetReportTypeRequest) (models.ReportSession, error)
	EditText(user models.UserInfo, req dto.EditTextRequest) (models.ReportSession, error)
	Generate(ctx context.Context, user models.UserInfo) (models.ReportSession, error)
	Refine(ctx context.Context, user models.UserInfo, req dto.RefineRequest) (models.ReportSession, error)
	ShareLink(user models.UserInfo) (string, error)
	Catalog() models.OptionCatalog
}

// ReportHandler exposes the clinical report draft endpoints.
type ReportHandler struct {
	service reportService
}

// NewReportHandler constructs the handler.
func NewReportHandler(svc reportService) *ReportHandler {
	return &ReportHandler{service: svc}
}

// Options godoc
// @Summary Clinical option catalog
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/options [get]
func (h *ReportHandler) Options(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Catalog())
}

// Session godoc
// @Summary Current report draft
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/session [get]
func (h *ReportHandler) Session(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, h.service.Session(user))
}

// Reset godoc
// @Summary Discard report draft
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/session [delete]
func (h *ReportHandler) Reset(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, h.service.Reset(user))
}

// UpdatePatient godoc
// @Summary Update patient block
// @Tags Reports
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body dto.UpdatePatientRequest true "Patient fields"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /reports/session/patient [put]
func (h *ReportHandler) UpdatePatient(c *gin.Context) {
	var req dto.UpdatePatientRequest
	h.update(c, &req, "invalid patient payload", func(user models.UserInfo) (models.ReportSession, error) {
		return h.service.UpdatePatient(user, req)
	})
}

// UpdateClinical godoc
// @Summary Update clinical observations
// @Description Choices, selections and toggles must use catalog labels. Unknown values reject the whole request.
// @Tags Reports
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body dto.UpdateClinicalRequest true "Clinical fields"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /reports/session/clinical [put]
func (h *ReportHandler) UpdateClinical(c *gin.Context) {
	var req dto.UpdateClinicalRequest
	h.update(c, &req, "invalid clinical payload", func(user models.UserInfo) (models.ReportSession, error) {
		return h.service.UpdateClinical(user, req)
	})
}

// SetReportType godoc
// @Summary Select report template
// @Tags Reports
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body dto.SetReportTypeRequest true "tutor or medical"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /reports/session/type [put]
func (h *ReportHandler) SetReportType(c *gin.Context) {
	var req dto.SetReportTypeRequest
	h.update(c, &req, "invalid report type payload", func(user models.UserInfo) (models.ReportSession, error) {
		return h.service.SetReportType(user, req)
	})
}

// EditText godoc
// @Summary Edit report text
// @Tags Reports
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body dto.EditTextRequest true "Text"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /reports/session/text [put]
func (h *ReportHandler) EditText(c *gin.Context) {
	var req dto.EditTextRequest
	h.update(c, &req, "invalid text payload", func(user models.UserInfo) (models.ReportSession, error) {
		return h.service.EditText(user, req)
	})
}

func (h *ReportHandler) update(c *gin.Context, req interface{}, message string, apply func(user models.UserInfo) (models.ReportSession, error)) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	if !bindJSON(c, req, message) {
		return
	}
	sess, err := apply(user)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sess)
}

// Generate godoc
// @Summary Generate report text
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /reports/generate [post]
func (h *ReportHandler) Generate(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	sess, err := h.service.Generate(c.Request.Context(), user)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sess)
}

// Refine godoc
// @Summary Refine report text
// @Tags Reports
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body dto.RefineRequest true "Instruction"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /reports/refine [post]
func (h *ReportHandler) Refine(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.RefineRequest
	if !bindJSON(c, &req, "invalid refine payload") {
		return
	}
	sess, err := h.service.Refine(c.Request.Context(), user, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sess)
}

// Share godoc
// @Summary WhatsApp share link
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /reports/share [get]
func (h *ReportHandler) Share(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	link, err := h.service.ShareLink(user)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.ShareLinkResponse{URL: link})
}
