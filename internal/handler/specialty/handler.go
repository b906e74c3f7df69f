package specialty

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/globalhospital/portal-api/internal/handler"
	doctorService "github.com/globalhospital/portal-api/internal/service/doctor"
	specialtyService "github.com/globalhospital/portal-api/internal/service/specialty"
)

type Handler struct {
	service   *specialtyService.Service
	doctorSvc *doctorService.Service
}

func NewHandler(service *specialtyService.Service, doctorSvc *doctorService.Service) *Handler {
	return &Handler{service: service, doctorSvc: doctorSvc}
}

func (h *Handler) ListSpecialties(c *gin.Context) {
	specialties, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(specialties))
}

// ListDoctors serves the doctors of one specialty. An unknown id is an
// empty state, not an error.
func (h *Handler) ListDoctors(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid specialty ID"))
		return
	}

	doctors, err := h.doctorSvc.ListBySpecialty(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	specialties := r.Group("/specialties")
	{
		specialties.GET("", h.ListSpecialties)
		specialties.GET("/:id/doctors", h.ListDoctors)
	}
}
