package service

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/andreworkgit/MELI-list-products/internal/models"
	"github.com/andreworkgit/MELI-list-products/internal/repository"
)

const defaultPageSize = 10

// Sort keys accepted by the listing endpoint.
const (
	SortByPrice  = "price"
	SortByRating = "rating"
	SortByDate   = "date"
)

// ListQuery carries the filter, sort and pagination parameters of one listing
// request. Nil numeric filters are unset; zero values are also treated as
// unset to stay compatible with how the API has always behaved.
type ListQuery struct {
	Category  string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	InStock   bool
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// ProductPage is one page of listing results. Total counts records after
// filtering, before pagination.
type ProductPage struct {
	Products   []models.Product
	Total      int
	Page       int
	TotalPages int
}

// CatalogService wires the stores into the catalog operations. Every request
// works on a fresh snapshot of the backing collections.
type CatalogService struct {
	products  repository.ProductStore
	discounts repository.DiscountStore
}

func NewCatalogService(products repository.ProductStore, discounts repository.DiscountStore) *CatalogService {
	return &CatalogService{products: products, discounts: discounts}
}

func (s *CatalogService) ListProducts(ctx context.Context, q ListQuery) (ProductPage, error) {
	products, err := s.products.ReadAll(ctx)
	if err != nil {
		return ProductPage{}, err
	}
	products = filterProducts(products, q)
	products = sortProducts(products, q.SortBy, q.SortOrder)
	return paginate(products, q.Page, q.Limit), nil
}

// GetProduct returns the product along with its pricing, recomputed from the
// current discount collection on every read.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, models.DiscountCalculation, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, models.DiscountCalculation{}, err
	}
	rules, err := s.discounts.ReadAll(ctx)
	if err != nil {
		return nil, models.DiscountCalculation{}, err
	}
	return p, CalculateDiscount(*p, rules), nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, p models.Product) error {
	return s.products.Create(ctx, p)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, upd models.ProductUpdate) (*models.Product, error) {
	return s.products.Update(ctx, id, upd)
}

// filterProducts AND-combines the optional conditions. A product with no
// reviews has an average rating of 0, so any positive minRating excludes it.
func filterProducts(products []models.Product, q ListQuery) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if isSet(q.MinPrice) && p.BasePrice < *q.MinPrice {
			continue
		}
		if isSet(q.MaxPrice) && p.BasePrice > *q.MaxPrice {
			continue
		}
		if isSet(q.MinRating) && p.AverageRating() < *q.MinRating {
			continue
		}
		if q.InStock && p.StockQuantity <= 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}

func isSet(v *float64) bool {
	return v != nil && *v != 0
}

// sortProducts orders a copy of the collection. The "date" key compares
// identifier strings: products carry no timestamp, and the id has always
// served as the ordering proxy, so that stays as is for compatibility.
func sortProducts(products []models.Product, sortBy, sortOrder string) []models.Product {
	sorted := make([]models.Product, len(products))
	copy(sorted, products)

	var less func(a, b models.Product) bool
	switch sortBy {
	case SortByPrice:
		less = func(a, b models.Product) bool { return listPrice(a) < listPrice(b) }
	case SortByRating:
		less = func(a, b models.Product) bool { return a.AverageRating() < b.AverageRating() }
	default:
		less = func(a, b models.Product) bool { return strings.Compare(a.ID, b.ID) < 0 }
	}

	asc := sortOrder == "asc"
	sort.SliceStable(sorted, func(i, j int) bool {
		if asc {
			return less(sorted[i], sorted[j])
		}
		return less(sorted[j], sorted[i])
	})
	return sorted
}

// listPrice is the sort key for the "price" ordering: the pre-set discounted
// price when one is present, otherwise the base price.
func listPrice(p models.Product) float64 {
	if p.DiscountedPrice != nil && *p.DiscountedPrice != 0 {
		return *p.DiscountedPrice
	}
	return p.BasePrice
}

// paginate slices out the requested 1-indexed page. Out-of-range pages yield
// an empty slice, not an error.
func paginate(products []models.Product, page, limit int) ProductPage {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	total := len(products)
	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return ProductPage{
		Products:   products[start:end],
		Total:      total,
		Page:       page,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
}
