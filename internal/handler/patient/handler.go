package patient

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/globalhospital/portal-api/internal/handler"
	"github.com/globalhospital/portal-api/internal/middleware"
	"github.com/globalhospital/portal-api/internal/model"
	patientService "github.com/globalhospital/portal-api/internal/service/patientprofile"
	"github.com/globalhospital/portal-api/pkg/metrics"
	"github.com/globalhospital/portal-api/pkg/report"
)

type Handler struct {
	service *patientService.Service
	metrics *metrics.Metrics
}

func NewHandler(service *patientService.Service, m *metrics.Metrics) *Handler {
	return &Handler{service: service, metrics: m}
}

func (h *Handler) GetProfile(c *gin.Context) {
	profile := middleware.CurrentProfile(c)
	if profile == nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	patientProfile, err := h.service.Get(c.Request.Context(), profile.ID)
	if errors.Is(err, patientService.ErrNoProfile) {
		c.JSON(http.StatusNotFound, handler.NewEmptyStateResponse("no patient profile yet"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(patientProfile))
}

func (h *Handler) SaveProfile(c *gin.Context) {
	profile := middleware.CurrentProfile(c)
	if profile == nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	var req model.SavePatientProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	patientProfile, err := h.service.Save(c.Request.Context(), profile.ID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(patientProfile))
}

func (h *Handler) ListPrescriptions(c *gin.Context) {
	profile := middleware.CurrentProfile(c)
	if profile == nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	prescriptions, err := h.service.Prescriptions(c.Request.Context(), profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(prescriptions))
}

// DownloadReport streams the patient treatment report PDF.
func (h *Handler) DownloadReport(c *gin.Context) {
	profile := middleware.CurrentProfile(c)
	if profile == nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	data, err := h.service.ReportData(c.Request.Context(), profile.ID)
	if errors.Is(err, patientService.ErrNoProfile) {
		c.JSON(http.StatusNotFound, handler.NewEmptyStateResponse("no patient profile yet"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	pdf, err := report.PatientReport(*data, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	h.metrics.ReportsGenerated.WithLabelValues("patient_report").Inc()

	filename := fmt.Sprintf("patient-report-%s.pdf", data.Profile.PatientID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients/me")
	{
		patients.GET("/profile", h.GetProfile)
		patients.PUT("/profile", h.SaveProfile)
		patients.GET("/prescriptions", h.ListPrescriptions)
		patients.GET("/report", h.DownloadReport)
	}
}
