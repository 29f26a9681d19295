package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "github.com/saimonkat/supplement-store/internal/log"
	"github.com/saimonkat/supplement-store/internal/pricing"
	"github.com/saimonkat/supplement-store/internal/services"
	"github.com/saimonkat/supplement-store/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // enable true behind TLS
		})
	}
	return sid
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	qty := validate.Qty(c.FormValue("qty"))

	if err := h.Cart.Add(sid, productID, qty); err != nil {
		applog.Error(c, "cart.add.fail", err, map[string]any{"product": productID})
		return c.Status(400).SendString("Could not add item to cart")
	}
	applog.Audit(c, "cart.add", map[string]any{"product": productID, "qty": qty})
	return c.Redirect("/cart")
}

func (h *CartHandler) Update(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	// zero, negative, or unparseable qty removes the line
	qty := validate.QtyOrZero(c.FormValue("qty"))
	if err := h.Cart.SetQuantity(sid, productID, qty); err != nil {
		applog.Error(c, "cart.update.fail", err, map[string]any{"product": productID})
		return c.Status(400).SendString("Could not update cart")
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	if err := h.Cart.Remove(sid, productID); err != nil {
		applog.Error(c, "cart.remove.fail", err, map[string]any{"product": productID})
		return c.Status(400).SendString("Could not update cart")
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if err := h.Cart.Clear(sid); err != nil {
		applog.Error(c, "cart.clear.fail", err, nil)
		return c.Status(400).SendString("Could not update cart")
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	cart := h.Cart.View(ensureSID(c))
	return render(c, "cart", fiber.Map{
		"Cart":      cart,
		"ItemCount": pricing.ItemCount(cart),
	})
}
