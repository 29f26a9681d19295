package domain

// OrderStatus lifecycle vocabulary. Exactly these values; no others.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

func ValidOrderStatus(s string) bool {
	for _, st := range OrderStatuses {
		if string(st) == s {
			return true
		}
	}
	return false
}

type Address struct {
	Street  string `db:"street"`
	City    string `db:"city"`
	State   string `db:"state"`
	ZipCode string `db:"zip_code"`
	Country string `db:"country"`
}

type Customer struct {
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`
	Address   Address
}

// OrderItem records the unit price paid at checkout. The snapshot stays
// fixed even if the catalog price changes later.
type OrderItem struct {
	ProductID   string  `db:"product_id"`
	ProductName string  `db:"product_name"`
	Quantity    int     `db:"quantity"`
	Price       float64 `db:"price"`
}

// Order is an immutable snapshot of a cart plus customer details taken at
// checkout. Only Status and UpdatedAt may change afterwards.
type Order struct {
	ID        string
	Customer  Customer
	Items     []OrderItem
	Status    OrderStatus
	Subtotal  float64
	Shipping  float64
	Tax       float64
	Total     float64
	CreatedAt string // RFC3339
	UpdatedAt string
}

type OrderSortField string

const (
	OrderSortByCreatedAt OrderSortField = "createdAt"
	OrderSortByTotal     OrderSortField = "total"
	OrderSortByStatus    OrderSortField = "status"
)

// OrderQuery holds transient admin list criteria. Empty fields mean "no
// constraint"; the date range is inclusive on both ends.
type OrderQuery struct {
	Status    string
	DateFrom  string // RFC3339, inclusive
	DateTo    string // RFC3339, inclusive
	Search    string
	SortField OrderSortField
	SortDir   SortDirection
}
