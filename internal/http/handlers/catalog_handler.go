package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/saimonkat/supplement-store/internal/domain"
	applog "github.com/saimonkat/supplement-store/internal/log"
	"github.com/saimonkat/supplement-store/internal/services"
	"github.com/saimonkat/supplement-store/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	best, err := h.Catalog.BestSellers(0) // default of 4
	if err != nil {
		applog.Error(c, "home.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the store"})
	}
	return render(c, "home", fiber.Map{"BestSellers": best, "Categories": domain.Categories})
}

// productQueryFromParams maps the catalog page's query string onto engine
// criteria, rejecting anything outside the known vocabulary.
func productQueryFromParams(c *fiber.Ctx) (domain.ProductQuery, string) {
	var q domain.ProductQuery
	var ok bool

	if q.Category, ok = validate.Category(c.Query("category")); !ok {
		return q, "category"
	}
	if q.MinPrice, ok = validate.Price(c.Query("min")); !ok {
		return q, "min"
	}
	if q.MaxPrice, ok = validate.Price(c.Query("max")); !ok {
		return q, "max"
	}
	if v := c.Query("instock"); v != "" {
		b := v == "1" || v == "true"
		q.InStock = &b
	}
	if v := c.Query("bestseller"); v != "" {
		b := v == "1" || v == "true"
		q.IsBestSeller = &b
	}
	if raw := strings.TrimSpace(c.Query("q")); raw != "" {
		s, ok := validate.Q(raw)
		if !ok {
			return q, "q"
		}
		q.Search = s
	}
	switch f := domain.ProductSortField(c.Query("sort")); f {
	case "", domain.SortByPrice, domain.SortByName, domain.SortByRating, domain.SortByCreatedAt:
		q.SortField = f
	default:
		return q, "sort"
	}
	switch d := domain.SortDirection(c.Query("dir")); d {
	case "", domain.Asc, domain.Desc:
		q.SortDir = d
	default:
		return q, "dir"
	}
	return q, ""
}

func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	q, badField := productQueryFromParams(c)
	if badField != "" {
		applog.Security(c, "validation.fail", map[string]any{"field": badField})
		return c.Status(fiber.StatusBadRequest).Render("products", fiber.Map{
			"Products": []any{}, "Count": 0, "Err": "Invalid filter",
			"Categories": domain.Categories,
		})
	}
	products, err := h.Catalog.Query(q)
	if err != nil {
		applog.Error(c, "products.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	return render(c, "products", fiber.Map{
		"Products": products, "Count": len(products), "Query": q,
		"Categories": domain.Categories,
	})
}

func (h *CatalogHandler) Category(c *fiber.Ctx) error {
	cat := c.Params("id")
	if !domain.ValidCategory(cat) {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Unknown category"})
	}
	products, err := h.Catalog.ByCategory(cat)
	if err != nil {
		applog.Error(c, "category.load", err, map[string]any{"category": cat})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load category"})
	}
	// sidebar merchandising uses a wider slice than the home page
	best, _ := h.Catalog.BestSellers(5)
	return render(c, "category", fiber.Map{
		"CategoryID": cat, "Products": products, "BestSellers": best,
	})
}
