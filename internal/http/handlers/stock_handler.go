package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/saimonkat/supplement-store/internal/services"
)

type StockHandler struct {
	Catalog *services.CatalogService
}

// Check answers a JSON stock probe for one product.
func (h *StockHandler) Check(c *fiber.Ctx) error {
	productID := strings.TrimSpace(c.Query("productId"))
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing productId",
		})
	}

	p, err := h.Catalog.GetProduct(productID)
	if err != nil || p.ID == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown product",
		})
	}

	status := "OUT_OF_STOCK"
	if p.InStock {
		status = "IN_STOCK"
	}
	return c.JSON(fiber.Map{"status": status})
}
