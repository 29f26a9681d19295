package repos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/saimonkat/supplement-store/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

type orderRow struct {
	ID        string  `db:"id"`
	SessionID string  `db:"session_id"`
	FirstName string  `db:"first_name"`
	LastName  string  `db:"last_name"`
	Email     string  `db:"email"`
	Phone     string  `db:"phone"`
	Street    string  `db:"street"`
	City      string  `db:"city"`
	State     string  `db:"state"`
	ZipCode   string  `db:"zip_code"`
	Country   string  `db:"country"`
	Subtotal  float64 `db:"subtotal"`
	Shipping  float64 `db:"shipping"`
	Tax       float64 `db:"tax"`
	Total     float64 `db:"total"`
	Status    string  `db:"status"`
	CreatedAt string  `db:"created_at"`
	UpdatedAt string  `db:"updated_at"`
}

const orderCols = `
  id, COALESCE(session_id,'') AS session_id, first_name, last_name, email,
  COALESCE(phone,'') AS phone, COALESCE(street,'') AS street,
  COALESCE(city,'') AS city, COALESCE(state,'') AS state,
  COALESCE(zip_code,'') AS zip_code, COALESCE(country,'') AS country,
  subtotal, shipping, tax, total, status, created_at,
  COALESCE(updated_at,'') AS updated_at`

func (row orderRow) toDomain() domain.Order {
	return domain.Order{
		ID: row.ID,
		Customer: domain.Customer{
			FirstName: row.FirstName,
			LastName:  row.LastName,
			Email:     row.Email,
			Phone:     row.Phone,
			Address: domain.Address{
				Street:  row.Street,
				City:    row.City,
				State:   row.State,
				ZipCode: row.ZipCode,
				Country: row.Country,
			},
		},
		Status:    domain.OrderStatus(row.Status),
		Subtotal:  row.Subtotal,
		Shipping:  row.Shipping,
		Tax:       row.Tax,
		Total:     row.Total,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

// Create inserts the order header and every line item in one transaction.
// Line prices are the snapshot taken at checkout and never change.
func (r *OrderRepo) Create(sessionID string, o domain.Order) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders
	    (id, session_id, first_name, last_name, email, phone,
	     street, city, state, zip_code, country,
	     subtotal, shipping, tax, total, status, created_at, updated_at)
	  VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`, o.ID, sessionID, o.Customer.FirstName, o.Customer.LastName, o.Customer.Email,
		o.Customer.Phone, o.Customer.Address.Street, o.Customer.Address.City,
		o.Customer.Address.State, o.Customer.Address.ZipCode, o.Customer.Address.Country,
		o.Subtotal, o.Shipping, o.Tax, o.Total, string(o.Status),
		o.CreatedAt, o.UpdatedAt); err != nil {
		return err
	}

	for _, it := range o.Items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_id, product_name, qty, price)
		  VALUES(?, ?, ?, ?, ?)
		`, o.ID, it.ProductID, it.ProductName, it.Quantity, it.Price); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Get loads one order with its items; the second return value is the owning
// session id for the handler's ownership check.
func (r *OrderRepo) Get(orderID string) (domain.Order, string, error) {
	var row orderRow
	if err := r.db.Get(&row, `SELECT `+orderCols+` FROM orders WHERE id = ?`, orderID); err != nil {
		return domain.Order{}, "", err
	}
	o := row.toDomain()
	if err := r.db.Select(&o.Items, `
		SELECT product_id, product_name, qty AS quantity, price
		FROM order_items
		WHERE order_id = ?
		ORDER BY rowid
	`, orderID); err != nil {
		return domain.Order{}, "", err
	}
	return o, row.SessionID, nil
}

// ListAll returns every order with items attached, newest first. The admin
// page runs the query engine over the result.
func (r *OrderRepo) ListAll() ([]domain.Order, error) {
	var rows []orderRow
	if err := r.db.Select(&rows, `
		SELECT `+orderCols+` FROM orders ORDER BY datetime(created_at) DESC
	`); err != nil {
		return nil, err
	}

	type itemRow struct {
		OrderID string `db:"order_id"`
		domain.OrderItem
	}
	var items []itemRow
	if err := r.db.Select(&items, `
		SELECT order_id, product_id, product_name, qty AS quantity, price
		FROM order_items
		ORDER BY rowid
	`); err != nil {
		return nil, err
	}
	byOrder := map[string][]domain.OrderItem{}
	for _, it := range items {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it.OrderItem)
	}

	out := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		o := row.toDomain()
		o.Items = byOrder[row.ID]
		out = append(out, o)
	}
	return out, nil
}

// ListByUser returns orders for a given user via session linkage.
func (r *OrderRepo) ListByUser(userID string) ([]domain.Order, error) {
	var rows []orderRow
	err := r.db.Select(&rows, `
		SELECT `+orderCols+`
		FROM orders
		WHERE session_id IN (SELECT id FROM sessions WHERE user_id = ?)
		ORDER BY datetime(created_at) DESC
	`, userID)
	return toDomainAll(rows), err
}

// ListBySession returns orders tied to a session id (anon or pre-login).
func (r *OrderRepo) ListBySession(sessionID string) ([]domain.Order, error) {
	var rows []orderRow
	err := r.db.Select(&rows, `
		SELECT `+orderCols+` FROM orders
		WHERE session_id = ?
		ORDER BY datetime(created_at) DESC
	`, sessionID)
	return toDomainAll(rows), err
}

// UpdateStatus moves an order through its lifecycle; only status and
// updated_at ever change after creation.
func (r *OrderRepo) UpdateStatus(id string, status domain.OrderStatus) error {
	_, err := r.db.Exec(`
		UPDATE orders SET status = ?, updated_at = ? WHERE id = ?
	`, string(status), time.Now().UTC().Format(time.RFC3339), id)
	return err
}

func toDomainAll(rows []orderRow) []domain.Order {
	out := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
