package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/andreworkgit/MELI-list-products/internal/models"
)

// Postgres-backed stores. Each record is kept as one JSONB document so the
// backend stays interchangeable with the file store: same snapshot semantics,
// same collection order (seq preserves insertion order).

const schema = `
CREATE TABLE IF NOT EXISTS products (
	seq BIGSERIAL,
	id  TEXT PRIMARY KEY,
	doc JSONB NOT NULL
);
CREATE TABLE IF NOT EXISTS discounts (
	seq BIGSERIAL,
	id  TEXT PRIMARY KEY,
	doc JSONB NOT NULL
);
`

// EnsureSchema creates the document tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

type ProductPG struct {
	db *sql.DB
}

var _ ProductStore = (*ProductPG)(nil)

func NewProductPG(db *sql.DB) *ProductPG {
	return &ProductPG{db: db}
}

func (r *ProductPG) ReadAll(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT doc FROM products ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var p models.Product
		if err := json.Unmarshal(doc, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// WriteAll replaces the whole collection in one transaction, mirroring the
// wholesale rewrite the file backend does.
func (r *ProductPG) WriteAll(ctx context.Context, products []models.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return err
	}
	for _, p := range products {
		doc, err := json.Marshal(p)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO products (id, doc) VALUES ($1, $2)`, p.ID, doc); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *ProductPG) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var doc []byte
	err := r.db.QueryRowContext(ctx, `SELECT doc FROM products WHERE id = $1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var p models.Product
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductPG) Create(ctx context.Context, p models.Product) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO products (id, doc) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`, p.ID, doc)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (r *ProductPG) Update(ctx context.Context, id string, upd models.ProductUpdate) (*models.Product, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var doc []byte
	err = tx.QueryRowContext(ctx, `SELECT doc FROM products WHERE id = $1 FOR UPDATE`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var p models.Product
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, err
	}
	merged := upd.Apply(p)

	out, err := json.Marshal(merged)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE products SET doc = $2 WHERE id = $1`, id, out); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &merged, nil
}

type DiscountPG struct {
	db *sql.DB
}

var _ DiscountStore = (*DiscountPG)(nil)

func NewDiscountPG(db *sql.DB) *DiscountPG {
	return &DiscountPG{db: db}
}

func (r *DiscountPG) ReadAll(ctx context.Context) ([]models.DiscountRule, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT doc FROM discounts ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := []models.DiscountRule{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var rule models.DiscountRule
		if err := json.Unmarshal(doc, &rule); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}
