package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"elegantstore/internal/models"
	"elegantstore/internal/services"
)

// ContactHandler handles HTTP requests for the contact form.
type ContactHandler struct {
	service *services.ContactService
	log     zerolog.Logger
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(service *services.ContactService, logger zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		log:     logger,
	}
}

// RegisterRoutes registers the contact routes. Submission is public; the
// message listing is admin-only via the supplied auth middleware.
func (h *ContactHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	contact := router.Group("/contact")
	contact.Post("/", h.HandleSubmit)
	contact.Get("/", auth, h.HandleList)
}

// HandleSubmit accepts a contact form submission.
func (h *ContactHandler) HandleSubmit(c *fiber.Ctx) error {
	var message models.ContactMessage
	if err := c.BodyParser(&message); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if err := h.service.Submit(&message); err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": ve.Error(),
			})
		}
		h.log.Error().Err(err).Msg("failed to submit contact message")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Server Error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Your message has been received. We will contact you shortly!",
		"contact": message,
	})
}

// HandleList returns all contact messages, newest first.
func (h *ContactHandler) HandleList(c *fiber.Ctx) error {
	messages, err := h.service.List()
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list contact messages")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Server Error",
		})
	}
	if messages == nil {
		messages = []models.ContactMessage{}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"messages": messages,
	})
}
