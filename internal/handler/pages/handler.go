package pages

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salusclinic/booking-api/internal/config"
	"github.com/salusclinic/booking-api/internal/handler"
	"github.com/salusclinic/booking-api/internal/model"
)

// Handler serves the static content pages: home, contacts, privacy,
// terms. The marketing copy lives client-side; these endpoints expose
// the data the pages need.
type Handler struct {
	clinic model.ClinicInfo
}

func NewHandler(cfg config.ClinicConfig) *Handler {
	return &Handler{
		clinic: model.ClinicInfo{
			Name:    cfg.Name,
			Address: cfg.Address,
			Phone:   cfg.Phone,
			Email:   cfg.Email,
			Hours:   cfg.Hours,
		},
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/", h.Home)
	r.GET("/contatti", h.Contacts)
	r.GET("/privacy", h.Privacy)
	r.GET("/termini", h.Terms)
}

func (h *Handler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"clinic":    h.clinic,
		"timeSlots": model.TimeSlots,
	}))
}

func (h *Handler) Contacts(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.clinic))
}

func (h *Handler) Privacy(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"document": "privacy-policy",
		"owner":    h.clinic.Name,
	}))
}

func (h *Handler) Terms(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"document": "termini-di-servizio",
		"owner":    h.clinic.Name,
	}))
}
