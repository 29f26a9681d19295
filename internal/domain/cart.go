package domain

// CartItem pairs a product with a positive quantity. A cart holds at most
// one item per product id.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart is the working selection for one shopper session. The four money
// fields are derived from Items by the pricing engine and are never set
// independently.
type Cart struct {
	Items    []CartItem `json:"items"`
	Subtotal float64    `json:"subtotal"`
	Shipping float64    `json:"shipping"`
	Tax      float64    `json:"tax"`
	Total    float64    `json:"total"`
}
