package doctor

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/globalhospital/portal-api/internal/handler"
	"github.com/globalhospital/portal-api/internal/middleware"
	appointmentService "github.com/globalhospital/portal-api/internal/service/appointment"
	doctorService "github.com/globalhospital/portal-api/internal/service/doctor"
)

type Handler struct {
	service        *doctorService.Service
	appointmentSvc *appointmentService.Service
	previewLimit   int
}

func NewHandler(service *doctorService.Service, appointmentSvc *appointmentService.Service, previewLimit int) *Handler {
	return &Handler{
		service:        service,
		appointmentSvc: appointmentSvc,
		previewLimit:   previewLimit,
	}
}

// ListDoctors serves the home-page preview, capped at the configured
// limit.
func (h *Handler) ListDoctors(c *gin.Context) {
	limit := h.previewLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid limit"))
			return
		}
		limit = n
	}

	doctors, err := h.service.Preview(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

func (h *Handler) GetDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	doctor, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("doctor not found"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctor))
}

// MyAppointments lists the signed-in doctor's appointments.
func (h *Handler) MyAppointments(c *gin.Context) {
	profile := middleware.CurrentProfile(c)
	if profile == nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	appointments, err := h.appointmentSvc.ListForDoctor(c.Request.Context(), profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctors")
	{
		doctors.GET("", h.ListDoctors)
		doctors.GET("/:id", h.GetDoctor)
	}
}

// RegisterProtectedRoutes registers routes gated on the doctor role.
func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctors")
	{
		doctors.GET("/me/appointments", h.MyAppointments)
	}
}
