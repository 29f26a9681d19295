// Package pricing is the cart engine: pure functions that maintain the
// invariant that a cart's subtotal/shipping/tax/total are always derived
// from its item lines. Every mutation returns a new cart with totals
// recomputed; no operation fails.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/saimonkat/supplement-store/internal/domain"
)

var (
	freeShippingOver = decimal.NewFromInt(50)
	flatShipping     = decimal.RequireFromString("9.99")
	taxRate          = decimal.RequireFromString("0.08")
)

// AddItem merges qty into an existing line for the product or appends a new
// line. Quantities below 1 are treated as 1.
func AddItem(cart domain.Cart, p domain.Product, qty int) domain.Cart {
	if qty < 1 {
		qty = 1
	}
	items := make([]domain.CartItem, len(cart.Items))
	copy(items, cart.Items)

	merged := false
	for i := range items {
		if items[i].Product.ID == p.ID {
			items[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, domain.CartItem{Product: p, Quantity: qty})
	}
	cart.Items = items
	return Recompute(cart)
}

// RemoveItem drops the line for productID. An absent id is a no-op apart
// from the recompute.
func RemoveItem(cart domain.Cart, productID string) domain.Cart {
	items := make([]domain.CartItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		if it.Product.ID != productID {
			items = append(items, it)
		}
	}
	cart.Items = items
	return Recompute(cart)
}

// UpdateQuantity replaces the line quantity for productID. A quantity of
// zero or less removes the line.
func UpdateQuantity(cart domain.Cart, productID string, qty int) domain.Cart {
	if qty <= 0 {
		return RemoveItem(cart, productID)
	}
	items := make([]domain.CartItem, len(cart.Items))
	copy(items, cart.Items)
	for i := range items {
		if items[i].Product.ID == productID {
			items[i].Quantity = qty
		}
	}
	cart.Items = items
	return Recompute(cart)
}

// Clear returns a fresh empty cart with all derived fields zero.
func Clear() domain.Cart {
	return domain.Cart{Items: []domain.CartItem{}}
}

// Recompute derives the four money fields from the item lines.
//
// The subtotal is summed exactly, then rounded half-up at the cent. The free
// shipping threshold is checked against the unrounded sum with a strict
// greater-than, so a subtotal of exactly 50.00 still pays shipping. Tax and
// total derive from the rounded subtotal.
func Recompute(cart domain.Cart) domain.Cart {
	sum := decimal.Zero
	for _, it := range cart.Items {
		line := decimal.NewFromFloat(it.Product.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		sum = sum.Add(line)
	}

	shipping := flatShipping
	if sum.GreaterThan(freeShippingOver) {
		shipping = decimal.Zero
	}

	subtotal := sum.Round(2)
	tax := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(shipping).Add(tax).Round(2)

	cart.Subtotal = subtotal.InexactFloat64()
	cart.Shipping = shipping.InexactFloat64()
	cart.Tax = tax.InexactFloat64()
	cart.Total = total.InexactFloat64()
	return cart
}

// ItemCount is the total unit count across all lines.
func ItemCount(cart domain.Cart) int {
	n := 0
	for _, it := range cart.Items {
		n += it.Quantity
	}
	return n
}

// Contains reports whether the cart has a line for productID.
func Contains(cart domain.Cart, productID string) bool {
	for _, it := range cart.Items {
		if it.Product.ID == productID {
			return true
		}
	}
	return false
}

// Quantity returns the line quantity for productID, or 0.
func Quantity(cart domain.Cart, productID string) int {
	for _, it := range cart.Items {
		if it.Product.ID == productID {
			return it.Quantity
		}
	}
	return 0
}
