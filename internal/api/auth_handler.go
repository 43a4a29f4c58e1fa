package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/post-engagement-api/internal/models"
	"github.com/post-engagement-api/internal/service"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(services *service.Services, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		services: services,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

// Register handles POST /auth/register/:role where role is "user" or "author"
func (h *AuthHandler) Register(c *gin.Context) {
	segment := c.Param("role")
	role, ok := models.ParseRole(segment)
	if !ok || segment == string(models.RoleReader) {
		respondError(c, h.log, &service.Error{
			Kind:    service.KindNotFound,
			Message: "Unknown registration type.",
		})
		return
	}

	var req models.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}

	user, err := h.services.Auth.Register(c.Request.Context(), &req, role)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondOK(c, http.StatusCreated, user, fmt.Sprintf("Registered successfully as %s.", segment))
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}

	user, err := h.services.Auth.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondOK(c, http.StatusOK, user, "Logged in successfully.")
}
