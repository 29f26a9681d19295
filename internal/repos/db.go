package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline catalog if DB is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL CHECK (price >= 0),
  category TEXT NOT NULL CHECK (category IN (
    'protein','vitamins','minerals','amino-acids','pre-workout',
    'post-workout','weight-loss','muscle-gain','general-health')),
  image TEXT,
  is_best_seller INTEGER NOT NULL DEFAULT 0,
  in_stock INTEGER NOT NULL DEFAULT 1,
  rating NUMERIC NOT NULL DEFAULT 0 CHECK (rating >= 0 AND rating <= 5),
  review_count INTEGER NOT NULL DEFAULT 0,
  weight TEXT,
  servings INTEGER NOT NULL DEFAULT 0,
  ingredients_json TEXT,
  benefits_json TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_name       ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Carts
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS cart_items(
  cart_id    TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  price_at_add NUMERIC NOT NULL,
  created_at TEXT,
  updated_at TEXT,
  PRIMARY KEY (cart_id, product_id)
);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  session_id TEXT,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT,
  street TEXT,
  city TEXT,
  state TEXT,
  zip_code TEXT,
  country TEXT,
  subtotal NUMERIC NOT NULL,
  shipping NUMERIC NOT NULL,
  tax NUMERIC NOT NULL,
  total NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN (
    'pending','processing','shipped','delivered','cancelled')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);
CREATE INDEX IF NOT EXISTS idx_orders_status     ON orders(status);

CREATE TABLE IF NOT EXISTS order_items(
  order_id  TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id),
  product_name TEXT NOT NULL,
  qty INTEGER NOT NULL,
  price NUMERIC NOT NULL,
  PRIMARY KEY (order_id, product_id)
);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo catalog")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products
	  (id,name,description,price,category,image,is_best_seller,in_stock,rating,review_count,weight,servings,ingredients_json,benefits_json,created_at) VALUES
	  ('whey-gold','Gold Standard Whey','24g whey protein isolate blend per serving',54.99,'protein','products/whey-gold.jpg',1,1,4.8,2314,'2 lbs',29,
	   '["Whey Protein Isolate","Cocoa","Lecithin"]','["Muscle recovery","High protein"]','2024-01-10T09:00:00Z'),
	  ('creatine-mono','Creatine Monohydrate','Micronized creatine for strength and power',24.99,'muscle-gain','products/creatine-mono.jpg',1,1,4.7,1892,'500 g',100,
	   '["Creatine Monohydrate"]','["Strength","Power output"]','2024-02-01T09:00:00Z'),
	  ('multi-daily','Daily Multivitamin','Complete A-Z micronutrient formula',19.99,'vitamins','products/multi-daily.jpg',0,1,4.5,764,'90 tablets',90,
	   '["Vitamin A","Vitamin C","Vitamin D3","Zinc"]','["Immune support","Daily wellness"]','2024-01-22T09:00:00Z'),
	  ('bcaa-berry','BCAA 2:1:1 Berry','Branched-chain aminos for intra-workout recovery',29.99,'amino-acids','products/bcaa-berry.jpg',0,1,4.3,411,'300 g',30,
	   '["L-Leucine","L-Isoleucine","L-Valine"]','["Recovery","Endurance"]','2024-03-05T09:00:00Z'),
	  ('pre-surge','Pre-Workout Surge','Caffeinated pre-workout with beta-alanine',39.99,'pre-workout','products/pre-surge.jpg',1,0,4.6,987,'400 g',40,
	   '["Caffeine","Beta-Alanine","Citrulline Malate"]','["Energy","Focus","Pump"]','2024-02-18T09:00:00Z'),
	  ('omega-3','Omega-3 Fish Oil','1000mg EPA/DHA softgels',16.99,'general-health','products/omega-3.jpg',0,1,4.4,523,'120 softgels',120,
	   '["Fish Oil","EPA","DHA"]','["Heart health","Joint support"]','2024-01-30T09:00:00Z')`)

	return tx.Commit()
}

// seedUsers ensures shoppers and an admin exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-alice", "alice@supplements.test", "Alice", "USER", "Passw0rd!"),
		mk("u-bob", "bob@supplements.test", "Bob", "USER", "Passw0rd!"),
		mk("u-admin", "admin@supplements.test", "Admin", "ADMIN", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
