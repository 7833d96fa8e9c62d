package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"elegantstore/internal/models"
	"elegantstore/internal/services"
)

// AuthHandler handles HTTP requests for admin account registration and login.
type AuthHandler struct {
	authService *services.AuthService
	log         zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         logger,
	}
}

// RegisterRoutes registers the account routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	user := router.Group("/user")
	user.Post("/", h.HandleRegister)
	user.Post("/login", h.HandleLogin)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister handles new admin account registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	user, token, err := h.authService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		return h.registerFailure(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"id":      user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"token":   token,
	})
}

func (h *AuthHandler) registerFailure(c *fiber.Ctx, err error) error {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": ve.Error(),
		})
	case errors.Is(err, models.ErrUserExists):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "User already exists.",
		})
	}
	h.log.Error().Err(err).Msg("failed to register user")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "Server Error",
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin handles admin login and issues a fresh token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return h.loginFailure(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"createdAt": user.CreatedAt,
		"token":     token,
	})
}

func (h *AuthHandler) loginFailure(c *fiber.Ctx, err error) error {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": ve.Error(),
		})
	case errors.Is(err, models.ErrUserNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "User does not exist.",
		})
	case errors.Is(err, models.ErrInvalidCredentials):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid email or password.",
		})
	}
	h.log.Error().Err(err).Msg("failed to log in user")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "Server Error",
	})
}
