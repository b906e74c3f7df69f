package appointment

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/globalhospital/portal-api/internal/handler"
	"github.com/globalhospital/portal-api/internal/middleware"
	"github.com/globalhospital/portal-api/internal/model"
	appointmentService "github.com/globalhospital/portal-api/internal/service/appointment"
	"github.com/globalhospital/portal-api/pkg/metrics"
	"github.com/globalhospital/portal-api/pkg/report"
)

type Handler struct {
	service *appointmentService.Service
	metrics *metrics.Metrics
}

func NewHandler(service *appointmentService.Service, m *metrics.Metrics) *Handler {
	return &Handler{service: service, metrics: m}
}

func (h *Handler) BookAppointment(c *gin.Context) {
	profile := middleware.CurrentProfile(c)
	if profile == nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("please login to book an appointment"))
		return
	}

	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	appointment, err := h.service.Book(c.Request.Context(), profile, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(appointment))
}

func (h *Handler) ListAppointments(c *gin.Context) {
	profile := middleware.CurrentProfile(c)
	if profile == nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	appointments, err := h.service.ListForPatient(c.Request.Context(), profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

// DownloadConfirmation streams the booking confirmation PDF.
func (h *Handler) DownloadConfirmation(c *gin.Context) {
	profile := middleware.CurrentProfile(c)
	if profile == nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	confirmation, err := h.service.Confirmation(c.Request.Context(), id, profile)
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("appointment not found"))
		return
	}

	pdf, err := report.BookingConfirmation(*confirmation, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	h.metrics.ReportsGenerated.WithLabelValues("booking_confirmation").Inc()

	filename := fmt.Sprintf("appointment-confirmation-%s.pdf", confirmation.BookingID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.BookAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id/confirmation", h.DownloadConfirmation)
	}
}
