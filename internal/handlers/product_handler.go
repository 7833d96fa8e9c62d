package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"elegantstore/internal/models"
	"elegantstore/internal/services"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service *services.CatalogService
	log     zerolog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.CatalogService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     logger,
	}
}

// RegisterRoutes registers the product routes. Reads are public; mutations
// require a valid token via the supplied auth middleware.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	products := router.Group("/products")
	products.Get("/", h.HandleList)
	products.Get("/:id", h.HandleGetByID)
	products.Post("/", auth, h.HandleCreate)
	products.Put("/:id", auth, h.HandleUpdate)
	products.Delete("/:id", auth, h.HandleDelete)
}

// HandleList returns a filtered, sorted, paginated product listing.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	params := services.ListParams{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
		Limit:    c.QueryInt("limit", services.DefaultPageSize),
		Page:     c.QueryInt("page", 1),
	}

	page, err := h.service.List(params)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list products")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Server Error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":       true,
		"products":      page.Products,
		"totalProducts": page.TotalProducts,
		"numOfPages":    page.NumOfPages,
		"currentPage":   page.CurrentPage,
	})
}

// HandleGetByID returns a single product.
func (h *ProductHandler) HandleGetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	product, err := h.service.Get(id)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Product not found",
			})
		}
		h.log.Error().Err(err).Str("product_id", id).Msg("failed to get product")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Server Error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"product": product,
	})
}

// HandleCreate creates a new product.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	product, err := h.service.Create(input)
	if err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid data",
				"error":   ve.Error(),
			})
		}
		h.log.Error().Err(err).Msg("failed to create product")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Server Error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"product": product,
	})
}

// HandleUpdate applies a full or partial field replace to a product.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	id := c.Params("id")

	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	product, err := h.service.Update(id, input)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Product not found",
			})
		}
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid data",
				"error":   ve.Error(),
			})
		}
		h.log.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Server Error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"product": product,
	})
}

// HandleDelete permanently removes a product.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Product not found",
			})
		}
		h.log.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Server Error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Product deleted",
	})
}
