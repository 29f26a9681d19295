package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/saimonkat/supplement-store/internal/domain"
	applog "github.com/saimonkat/supplement-store/internal/log"
	"github.com/saimonkat/supplement-store/internal/repos"
	"github.com/saimonkat/supplement-store/internal/services"
	"github.com/saimonkat/supplement-store/internal/validate"
)

type OrderHandler struct {
	Cart  *services.CartService
	Order *services.OrderService
	Repo  *repos.OrderRepo
	Auth  *services.AuthService
}

func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	cart := h.Cart.View(ensureSID(c))
	if len(cart.Items) == 0 {
		return c.Redirect("/cart")
	}
	return render(c, "checkout", fiber.Map{"Cart": cart})
}

// customerFromForm validates the checkout contact and address fields,
// returning the offending field name on failure.
func customerFromForm(c *fiber.Ctx) (domain.Customer, string) {
	var cust domain.Customer
	var ok bool
	if cust.FirstName, ok = validate.NamePart(c.FormValue("firstName")); !ok {
		return cust, "firstName"
	}
	if cust.LastName, ok = validate.NamePart(c.FormValue("lastName")); !ok {
		return cust, "lastName"
	}
	if cust.Email, ok = validate.Email(c.FormValue("email")); !ok {
		return cust, "email"
	}
	if cust.Phone, ok = validate.Phone(c.FormValue("phone")); !ok {
		return cust, "phone"
	}
	if cust.Address.Street, ok = validate.Line(c.FormValue("street")); !ok {
		return cust, "street"
	}
	if cust.Address.City, ok = validate.Line(c.FormValue("city")); !ok {
		return cust, "city"
	}
	if cust.Address.State, ok = validate.Line(c.FormValue("state")); !ok {
		return cust, "state"
	}
	if cust.Address.ZipCode, ok = validate.Zip(c.FormValue("zip")); !ok {
		return cust, "zip"
	}
	if cust.Address.Country, ok = validate.Line(c.FormValue("country")); !ok {
		return cust, "country"
	}
	return cust, ""
}

func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)

	cust, badField := customerFromForm(c)
	if badField != "" {
		applog.Security(c, "validation.fail", map[string]any{"field": badField})
		return c.Status(fiber.StatusBadRequest).SendString("invalid " + badField)
	}

	order, err := h.Order.Place(sid, cust)
	if err != nil {
		if errors.Is(err, services.ErrCartEmpty) {
			return c.Redirect("/cart")
		}
		// business rule errors (e.g., out of stock) surface as 400
		applog.Security(c, "order.place.fail", map[string]any{"sid": sid, "error": err.Error()})
		return c.Status(fiber.StatusBadRequest).SendString("Could not place order. Please review your cart and try again.")
	}
	applog.Audit(c, "order.place", map[string]any{
		"order_id": order.ID,
		"total":    order.Total,
		"items":    len(order.Items),
	})

	return c.Redirect("/order/" + order.ID)
}

func (h *OrderHandler) View(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}

	o, ownerSID, err := h.Repo.Get(oid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}

	// Ownership check: session owner or admin; anyone else sees a 404.
	sid := c.Cookies("sid")
	var uRole string
	if h.Auth != nil && sid != "" {
		if u, err := h.Auth.CurrentUser(sid); err == nil && u != nil {
			uRole = u.Role
		}
	}
	if !(sid != "" && sid == ownerSID) && uRole != "ADMIN" {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": oid})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}

	return render(c, "order", fiber.Map{"Order": o})
}

// History lists orders for the current logged-in user.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	// If RequireUser is used, user is guaranteed; fallback to 404
	if u == nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Orders not available"})
	}
	orders, err := h.Repo.ListByUser(u.ID)
	if err != nil {
		applog.Error(c, "orders.history.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	// Fallback: show session orders if none linked to user (e.g., pre-login)
	if len(orders) == 0 {
		if sid := c.Cookies("sid"); sid != "" {
			if sessOrders, err := h.Repo.ListBySession(sid); err == nil && len(sessOrders) > 0 {
				orders = sessOrders
			}
		}
	}
	return render(c, "order_history", fiber.Map{"Orders": orders})
}
