package pricing

import "github.com/saimonkat/supplement-store/internal/domain"

// Command is a tagged cart mutation, so callers can funnel every change
// through a single transition function regardless of UI mechanism.
type Command interface{ isCommand() }

type Add struct {
	Product  domain.Product
	Quantity int
}

type Remove struct {
	ProductID string
}

type SetQuantity struct {
	ProductID string
	Quantity  int
}

type ClearAll struct{}

func (Add) isCommand()         {}
func (Remove) isCommand()      {}
func (SetQuantity) isCommand() {}
func (ClearAll) isCommand()    {}

// Apply is the pure transition function (cart, command) -> cart. Unknown
// commands return the cart unchanged.
func Apply(cart domain.Cart, cmd Command) domain.Cart {
	switch c := cmd.(type) {
	case Add:
		return AddItem(cart, c.Product, c.Quantity)
	case Remove:
		return RemoveItem(cart, c.ProductID)
	case SetQuantity:
		return UpdateQuantity(cart, c.ProductID, c.Quantity)
	case ClearAll:
		return Clear()
	default:
		return cart
	}
}
