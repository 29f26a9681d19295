package services

import (
	"github.com/saimonkat/supplement-store/internal/domain"
	"github.com/saimonkat/supplement-store/internal/pricing"
	"github.com/saimonkat/supplement-store/internal/repos"
)

// CartService persists the session cart and hands every totals computation
// to the pricing engine.
type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

func (s *CartService) Add(sessionID, productID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		return err
	}
	return s.Carts.AddItem(cartID, productID, qty, p.Price)
}

func (s *CartService) SetQuantity(sessionID, productID string, qty int) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.SetQuantity(cartID, productID, qty)
}

func (s *CartService) Remove(sessionID, productID string) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.RemoveItem(cartID, productID)
}

func (s *CartService) Clear(sessionID string) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.Clear(cartID)
}

// View hydrates the persisted lines into a cart with recomputed totals.
// Prices always come from the live catalog, never from what the row claims.
// A failed load falls back to the empty cart instead of surfacing a broken
// page; a line whose product vanished from the catalog is dropped.
func (s *CartService) View(sessionID string) domain.Cart {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return pricing.Clear()
	}
	lines, err := s.Carts.Lines(cartID)
	if err != nil {
		return pricing.Clear()
	}

	cart := pricing.Clear()
	for _, ln := range lines {
		p, err := s.Prods.Get(ln.ProductID)
		if err != nil {
			continue
		}
		cart = pricing.AddItem(cart, p, ln.Qty)
	}
	return cart
}
