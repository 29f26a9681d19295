package repos

import (
	"github.com/jmoiron/sqlx"

	"github.com/saimonkat/supplement-store/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, name, COALESCE(description,'') AS description, price, category,
  COALESCE(image,'') AS image, is_best_seller, in_stock, rating, review_count,
  COALESCE(weight,'') AS weight, servings,
  COALESCE(ingredients_json,'[]') AS ingredients_json,
  COALESCE(benefits_json,'[]') AS benefits_json,
  created_at`

// ListAll loads the full catalog in insertion order. The query engine does
// all filtering and sorting in memory.
func (r *ProductRepo) ListAll() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products ORDER BY rowid`)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

// SetStock flips the in-stock flag (admin stock page).
func (r *ProductRepo) SetStock(id string, inStock bool) error {
	_, err := r.db.Exec(`UPDATE products SET in_stock = ? WHERE id = ?`, inStock, id)
	return err
}
