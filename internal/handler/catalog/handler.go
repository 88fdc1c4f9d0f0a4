package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salusclinic/booking-api/internal/handler"
	"github.com/salusclinic/booking-api/internal/service/catalog"
	apperrors "github.com/salusclinic/booking-api/pkg/errors"
)

type Handler struct {
	svc *catalog.Service
}

func NewHandler(svc *catalog.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/servizi", h.ListServices)
	r.GET("/servizi/:id", h.GetService)
	r.GET("/specialisti", h.ListSpecialists)
	r.GET("/specialisti/:id", h.GetSpecialist)
}

func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.svc.ListServices(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(apperrors.MessageOf(err)))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(services))
}

func (h *Handler) GetService(c *gin.Context) {
	service, err := h.svc.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse(apperrors.MessageOf(err)))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(service))
}

func (h *Handler) ListSpecialists(c *gin.Context) {
	specialists, err := h.svc.ListSpecialists(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(apperrors.MessageOf(err)))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(specialists))
}

func (h *Handler) GetSpecialist(c *gin.Context) {
	specialist, err := h.svc.GetSpecialist(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse(apperrors.MessageOf(err)))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(specialist))
}
