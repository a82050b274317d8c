package repository

import (
	"context"
	"errors"

	"github.com/andreworkgit/MELI-list-products/internal/models"
)

var (
	ErrNotFound      = errors.New("product not found")
	ErrAlreadyExists = errors.New("product already exists")
)

// ProductStore is the persistence capability the catalog depends on. The
// whole collection is read and rewritten as a snapshot; GetByID/Create/Update
// are defined in terms of ReadAll/WriteAll so a backend only has to get the
// snapshot semantics right.
type ProductStore interface {
	ReadAll(ctx context.Context) ([]models.Product, error)
	WriteAll(ctx context.Context, products []models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, p models.Product) error
	Update(ctx context.Context, id string, upd models.ProductUpdate) (*models.Product, error)
}

// DiscountStore serves the discount rule collection. Rules are read-only in
// this service; collection order is preserved because the pricing engine
// applies rules in the order they are stored.
type DiscountStore interface {
	ReadAll(ctx context.Context) ([]models.DiscountRule, error)
}
