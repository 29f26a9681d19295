package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/saimonkat/supplement-store/internal/log"
	"github.com/saimonkat/supplement-store/internal/services"
	"github.com/saimonkat/supplement-store/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil || p.ID == "" {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}

	var ingredients, benefits []string
	_ = json.Unmarshal([]byte(p.IngredientsJSON), &ingredients)
	_ = json.Unmarshal([]byte(p.BenefitsJSON), &benefits)

	return render(c, "product", fiber.Map{
		"P": p, "Ingredients": ingredients, "Benefits": benefits,
	})
}
