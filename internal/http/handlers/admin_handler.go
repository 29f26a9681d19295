package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/saimonkat/supplement-store/internal/catalog"
	"github.com/saimonkat/supplement-store/internal/domain"
	applog "github.com/saimonkat/supplement-store/internal/log"
	"github.com/saimonkat/supplement-store/internal/repos"
	"github.com/saimonkat/supplement-store/internal/validate"
)

type AdminHandler struct {
	OrderRepo *repos.OrderRepo
	Prods     *repos.ProductRepo
	Users     *repos.UserRepo
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	orders, err := h.OrderRepo.ListAll()
	if err != nil {
		applog.Error(c, "admin.dashboard.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load dashboard"})
	}
	return render(c, "admin_dashboard", fiber.Map{"Stats": catalog.OrderStats(orders)})
}

// orderQueryFromParams maps the admin list's query string onto engine
// criteria.
func orderQueryFromParams(c *fiber.Ctx) (domain.OrderQuery, bool) {
	var q domain.OrderQuery
	var ok bool
	if q.Status, ok = validate.Status(c.Query("status")); !ok {
		return q, false
	}
	q.DateFrom = c.Query("from")
	q.DateTo = c.Query("to")
	if raw := c.Query("q"); raw != "" {
		if q.Search, ok = validate.Q(raw); !ok {
			return q, false
		}
	}
	switch f := domain.OrderSortField(c.Query("sort")); f {
	case domain.OrderSortByCreatedAt, domain.OrderSortByTotal, domain.OrderSortByStatus:
		q.SortField = f
	case "":
		q.SortField = domain.OrderSortByCreatedAt
	default:
		return q, false
	}
	switch d := domain.SortDirection(c.Query("dir")); d {
	case domain.Asc, domain.Desc:
		q.SortDir = d
	case "":
		q.SortDir = domain.Desc
	default:
		return q, false
	}
	return q, true
}

// GET /admin/orders
func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	q, ok := orderQueryFromParams(c)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"page": "admin_orders"})
		return c.Status(400).SendString("invalid filter")
	}
	orders, err := h.OrderRepo.ListAll()
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	orders = catalog.SortOrders(catalog.FilterOrders(orders, q), q.SortField, q.SortDir)
	return render(c, "admin_orders", fiber.Map{
		"Orders": orders, "Query": q, "Statuses": domain.OrderStatuses,
	})
}

// GET /admin/orders/:id
func (h *AdminHandler) OrderDetail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	o, _, err := h.OrderRepo.Get(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	return render(c, "admin_order", fiber.Map{"Order": o, "Statuses": domain.OrderStatuses})
}

// POST /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	status := c.FormValue("status")
	if !okID || !domain.ValidOrderStatus(status) {
		return c.Status(400).SendString("missing id or status")
	}
	if err := h.OrderRepo.UpdateStatus(id, domain.OrderStatus(status)); err != nil {
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order_id": id})
		return c.Status(400).SendString("could not update status")
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": status})
	return c.Redirect("/admin/orders")
}

// GET /admin/stock
func (h *AdminHandler) Stock(c *fiber.Ctx) error {
	products, err := h.Prods.ListAll()
	if err != nil {
		applog.Error(c, "admin.stock.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load stock"})
	}
	return render(c, "admin_stock", fiber.Map{"Products": products})
}

// POST /admin/stock
func (h *AdminHandler) UpdateStock(c *fiber.Ctx) error {
	pid, okID := validate.ID(c.FormValue("product_id"))
	inStock := c.FormValue("in_stock") == "1"
	if !okID {
		return c.Status(400).SendString("invalid input")
	}
	if err := h.Prods.SetStock(pid, inStock); err != nil {
		applog.Error(c, "admin.stock.save.fail", err, map[string]any{"product": pid})
		return c.Status(400).SendString("could not save stock")
	}
	applog.Audit(c, "admin.stock.save", map[string]any{"product": pid, "in_stock": inStock})
	return c.Redirect("/admin/stock")
}

// UsersPage lists users (excluding admin).
func (h *AdminHandler) UsersPage(c *fiber.Ctx) error {
	var users []struct {
		ID    string `db:"id"`
		Email string `db:"email"`
		Name  string `db:"name"`
		Role  string `db:"role"`
	}
	if err := h.Users.DB.Select(&users, `SELECT id,email,name,role FROM users WHERE role != 'ADMIN' ORDER BY email`); err != nil {
		applog.Error(c, "admin.users.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load users"})
	}
	return render(c, "admin_users", fiber.Map{"Users": users})
}

// DeleteUser deletes a user and related data, cancels their orders.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Users.DeleteUserCascade(id); err != nil {
		applog.Error(c, "admin.users.delete.fail", err, map[string]any{"user_id": id})
		return c.Status(400).SendString("could not delete user")
	}
	applog.Audit(c, "admin.users.delete", map[string]any{"user_id": id})
	return c.Redirect("/admin/users")
}
