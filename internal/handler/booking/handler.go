package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/salusclinic/booking-api/internal/handler"
	"github.com/salusclinic/booking-api/internal/middleware"
	"github.com/salusclinic/booking-api/internal/model"
	"github.com/salusclinic/booking-api/internal/service/booking"
	apperrors "github.com/salusclinic/booking-api/pkg/errors"
)

type Handler struct {
	svc *booking.Service
}

func NewHandler(svc *booking.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/prenota", h.Book)
}

// Book handles the booking form submission. The auth middleware has
// already rejected anonymous requests with a login redirect; here the
// selection context is checked (the form is unreachable without one)
// and the appointment is persisted.
func (h *Handler) Book(c *gin.Context) {
	patientID, ok := c.Get(middleware.ContextUserID)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewRedirectResponse("accesso richiesto", "/login", "/prenota"))
		return
	}

	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	// Landing on the form without a selected service or specialist
	// sends the client back to the home page.
	if req.Specialist == nil && req.Service == nil {
		c.JSON(http.StatusBadRequest, handler.NewRedirectResponse(
			"nessun servizio o specialista selezionato", "/", ""))
		return
	}

	appt, err := h.svc.Book(c.Request.Context(), patientID.(uuid.UUID), &req)
	if err != nil {
		if apperrors.CodeOf(err) == apperrors.CodeBookingPersistence {
			log.Error().Err(err).Msg("appointment write failed")
			c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(
				"si è verificato un errore durante la prenotazione, riprova più tardi"))
			return
		}
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(apperrors.MessageOf(err)))
		return
	}

	c.JSON(http.StatusCreated, &handler.Response{
		Status:   "success",
		Data:     appt,
		Redirect: "/profilo",
	})
}
