package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/saimonkat/supplement-store/internal/domain"
	"github.com/saimonkat/supplement-store/internal/pricing"
	"github.com/saimonkat/supplement-store/internal/repos"
)

var ErrCartEmpty = errors.New("cart empty")

// OrderStore is the persistence collaborator for placed orders. OrderRepo is
// the SQLite implementation; tests may substitute their own.
type OrderStore interface {
	Create(sessionID string, o domain.Order) error
}

type OrderService struct {
	Carts  *repos.CartRepo
	Prods  *repos.ProductRepo
	Orders OrderStore
}

func NewOrderService(carts *repos.CartRepo, prods *repos.ProductRepo, orders OrderStore) *OrderService {
	return &OrderService{Carts: carts, Prods: prods, Orders: orders}
}

// Place snapshots the session cart into a pending order. Line prices are
// taken from the live catalog at this moment and recorded on the order,
// where they stay fixed; totals are recomputed server-side through the
// pricing engine and never trusted from the client. The cart is cleared on
// success.
func (s *OrderService) Place(sessionID string, cust domain.Customer) (domain.Order, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return domain.Order{}, err
	}
	lines, err := s.Carts.Lines(cartID)
	if err != nil {
		return domain.Order{}, err
	}
	if len(lines) == 0 {
		return domain.Order{}, ErrCartEmpty
	}

	cart := pricing.Clear()
	items := make([]domain.OrderItem, 0, len(lines))
	for _, ln := range lines {
		p, err := s.Prods.Get(ln.ProductID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("product %s: %w", ln.ProductID, err)
		}
		if !p.InStock {
			return domain.Order{}, fmt.Errorf("%s is out of stock", p.Name)
		}
		cart = pricing.AddItem(cart, p, ln.Qty)
		items = append(items, domain.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    ln.Qty,
			Price:       p.Price,
		})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	order := domain.Order{
		ID:        uuid.NewString(),
		Customer:  cust,
		Items:     items,
		Status:    domain.StatusPending,
		Subtotal:  cart.Subtotal,
		Shipping:  cart.Shipping,
		Tax:       cart.Tax,
		Total:     cart.Total,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Orders.Create(sessionID, order); err != nil {
		return domain.Order{}, err
	}
	_ = s.Carts.Clear(cartID)
	return order, nil
}
