package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/salusclinic/booking-api/internal/handler"
	"github.com/salusclinic/booking-api/internal/model"
	"github.com/salusclinic/booking-api/internal/service/auth"
	apperrors "github.com/salusclinic/booking-api/pkg/errors"
)

type Handler struct {
	svc *auth.Service
}

func NewHandler(svc *auth.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/registrati", h.Register)
	r.POST("/login", h.Login)
	r.POST("/recupera-password", h.ResetPassword)
	r.POST("/reimposta-password", h.ConfirmReset)
	r.GET("/verifica-email", h.VerifyEmail)
	r.POST("/verifica-email/reinvia", h.ResendVerification)
}

func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.POST("/logout", h.Logout)
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	user, err := h.svc.Register(c.Request.Context(), &req)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("registration failed")
		c.JSON(statusFor(err), handler.NewErrorResponse(apperrors.MessageOf(err)))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(user))
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	tokens, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		log.Warn().Str("email", req.Email).Msg("login rejected")
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse(apperrors.MessageOf(err)))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(tokens))
}

func (h *Handler) Logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("missing authorization header"))
		return
	}

	if err := h.svc.Logout(c.Request.Context(), token); err != nil {
		c.JSON(statusFor(err), handler.NewErrorResponse(apperrors.MessageOf(err)))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse("disconnesso"))
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.svc.ResetPassword(c.Request.Context(), req.Email); err != nil {
		log.Error().Err(err).Msg("password reset failed")
		c.JSON(statusFor(err), handler.NewErrorResponse(apperrors.MessageOf(err)))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse("se l'email esiste, riceverai un link di recupero"))
}

func (h *Handler) ConfirmReset(c *gin.Context) {
	var req struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.svc.ConfirmReset(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(apperrors.MessageOf(err)))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse("password aggiornata"))
}

func (h *Handler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("token di verifica mancante"))
		return
	}

	if err := h.svc.VerifyEmail(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(apperrors.MessageOf(err)))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse("email verificata"))
}

func (h *Handler) ResendVerification(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.svc.ResendVerification(c.Request.Context(), req.Email); err != nil {
		c.JSON(statusFor(err), handler.NewErrorResponse(apperrors.MessageOf(err)))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse("email di verifica inviata"))
}

func bearerToken(c *gin.Context) string {
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func statusFor(err error) int {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeAuth:
		return http.StatusUnauthorized
	case apperrors.CodeRegistration, apperrors.CodeBadRequest, apperrors.CodeReset:
		return http.StatusBadRequest
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
