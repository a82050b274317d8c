package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/andreworkgit/MELI-list-products/internal/models"
	"github.com/andreworkgit/MELI-list-products/pkg/logger"
)

// ProductFile keeps the product collection as one JSON array on disk and
// rewrites the whole file on every mutation. A missing or unparsable file
// reads as an empty collection, never as an error. There is no cross-process
// locking: overlapping writers race and the last WriteAll wins.
type ProductFile struct {
	path string
}

var _ ProductStore = (*ProductFile)(nil)

func NewProductFile(dataDir string) *ProductFile {
	return &ProductFile{path: filepath.Join(dataDir, "products.json")}
}

func (s *ProductFile) ReadAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := readJSONFile(s.path, &products); err != nil {
		logger.Error().Err(err).Str("path", s.path).Msg("reading products")
		return []models.Product{}, nil
	}
	return products, nil
}

func (s *ProductFile) WriteAll(ctx context.Context, products []models.Product) error {
	if err := writeJSONFile(s.path, products); err != nil {
		logger.Error().Err(err).Str("path", s.path).Msg("writing products")
		return err
	}
	return nil
}

func (s *ProductFile) GetByID(ctx context.Context, id string) (*models.Product, error) {
	products, _ := s.ReadAll(ctx)
	for i := range products {
		if products[i].ID == id {
			p := products[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (s *ProductFile) Create(ctx context.Context, p models.Product) error {
	products, _ := s.ReadAll(ctx)
	for i := range products {
		if products[i].ID == p.ID {
			return ErrAlreadyExists
		}
	}
	return s.WriteAll(ctx, append(products, p))
}

func (s *ProductFile) Update(ctx context.Context, id string, upd models.ProductUpdate) (*models.Product, error) {
	products, _ := s.ReadAll(ctx)
	for i := range products {
		if products[i].ID != id {
			continue
		}
		merged := upd.Apply(products[i])
		products[i] = merged
		if err := s.WriteAll(ctx, products); err != nil {
			return nil, err
		}
		return &merged, nil
	}
	return nil, ErrNotFound
}

// DiscountFile serves the discount rule collection from a JSON file, in file
// order.
type DiscountFile struct {
	path string
}

var _ DiscountStore = (*DiscountFile)(nil)

func NewDiscountFile(dataDir string) *DiscountFile {
	return &DiscountFile{path: filepath.Join(dataDir, "discounts.json")}
}

func (s *DiscountFile) ReadAll(ctx context.Context) ([]models.DiscountRule, error) {
	var rules []models.DiscountRule
	if err := readJSONFile(s.path, &rules); err != nil {
		logger.Error().Err(err).Str("path", s.path).Msg("reading discounts")
		return []models.DiscountRule{}, nil
	}
	return rules, nil
}

func readJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeJSONFile writes to a temp file in the same directory and renames it
// over the target so readers never observe a half-written snapshot.
func writeJSONFile(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
