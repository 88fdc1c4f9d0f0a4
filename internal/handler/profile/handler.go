package profile

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/salusclinic/booking-api/internal/handler"
	"github.com/salusclinic/booking-api/internal/middleware"
	"github.com/salusclinic/booking-api/internal/service/auth"
	"github.com/salusclinic/booking-api/internal/service/booking"
	apperrors "github.com/salusclinic/booking-api/pkg/errors"
)

type Handler struct {
	authSvc    *auth.Service
	bookingSvc *booking.Service
}

func NewHandler(authSvc *auth.Service, bookingSvc *booking.Service) *Handler {
	return &Handler{authSvc: authSvc, bookingSvc: bookingSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/profilo", h.Profile)
}

// Profile returns the signed-in user's profile and their appointments.
func (h *Handler) Profile(c *gin.Context) {
	userID, ok := c.Get(middleware.ContextUserID)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewRedirectResponse("accesso richiesto", "/login", "/profilo"))
		return
	}

	user, err := h.authSvc.Profile(c.Request.Context(), userID.(uuid.UUID))
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse(apperrors.MessageOf(err)))
		return
	}

	appts, err := h.bookingSvc.ListForPatient(c.Request.Context(), userID.(uuid.UUID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(apperrors.MessageOf(err)))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"profile":      user,
		"appointments": appts,
	}))
}
