package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/andreworkgit/MELI-list-products/internal/models"
	"github.com/andreworkgit/MELI-list-products/internal/repository"
	"github.com/andreworkgit/MELI-list-products/internal/service"
	"github.com/andreworkgit/MELI-list-products/pkg/logger"
)

// --- Request / Response DTOs ---

// apiResponse is the envelope every endpoint answers with.
type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// sellerRequest mirrors models.Seller with the one required field as a
// pointer so presence can be checked.
type sellerRequest struct {
	Name        *string `json:"name"`
	Rating      float64 `json:"rating"`
	Location    string  `json:"location"`
	Contact     string  `json:"contact"`
	TotalSales  *int    `json:"totalSales"`
	MemberSince string  `json:"memberSince"`
}

// CreateProductRequest is the full product payload. Required fields are
// pointers: absent means invalid, a wrong JSON type fails the decode.
type CreateProductRequest struct {
	ID                 *string             `json:"id"`
	Title              *string             `json:"title"`
	Description        *string             `json:"description"`
	Images             []string            `json:"images"`
	BasePrice          *float64            `json:"basePrice"`
	DiscountedPrice    *float64            `json:"discountedPrice"`
	DiscountPercentage *float64            `json:"discountPercentage"`
	Currency           *string             `json:"currency"`
	PaymentMethods     []string            `json:"paymentMethods"`
	Seller             *sellerRequest      `json:"seller"`
	Specifications     map[string]string   `json:"specifications"`
	Reviews            []models.Review     `json:"reviews"`
	StockQuantity      *int                `json:"stockQuantity"`
	ShippingInfo       models.ShippingInfo `json:"shippingInfo"`
	Category           string              `json:"category"`
	Condition          string              `json:"condition"`
	Warranty           string              `json:"warranty"`
	Tags               []string            `json:"tags"`
}

func (req *CreateProductRequest) valid() bool {
	return req.ID != nil &&
		req.Title != nil &&
		req.Description != nil &&
		req.Images != nil &&
		req.BasePrice != nil &&
		req.Currency != nil &&
		req.PaymentMethods != nil &&
		req.Seller != nil && req.Seller.Name != nil &&
		req.StockQuantity != nil && *req.StockQuantity >= 0
}

func (req *CreateProductRequest) toProduct() models.Product {
	specs := req.Specifications
	if specs == nil {
		specs = map[string]string{}
	}
	reviews := req.Reviews
	if reviews == nil {
		reviews = []models.Review{}
	}
	return models.Product{
		ID:                 *req.ID,
		Title:              *req.Title,
		Description:        *req.Description,
		Images:             req.Images,
		BasePrice:          *req.BasePrice,
		DiscountedPrice:    req.DiscountedPrice,
		DiscountPercentage: req.DiscountPercentage,
		Currency:           *req.Currency,
		PaymentMethods:     req.PaymentMethods,
		Seller: models.Seller{
			Name:        *req.Seller.Name,
			Rating:      req.Seller.Rating,
			Location:    req.Seller.Location,
			Contact:     req.Seller.Contact,
			TotalSales:  req.Seller.TotalSales,
			MemberSince: req.Seller.MemberSince,
		},
		Specifications: specs,
		Reviews:        reviews,
		StockQuantity:  *req.StockQuantity,
		ShippingInfo:   req.ShippingInfo,
		Category:       req.Category,
		Condition:      req.Condition,
		Warranty:       req.Warranty,
		Tags:           req.Tags,
	}
}

type listData struct {
	Products   []models.Product `json:"products"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
}

type detailData struct {
	Product models.Product             `json:"product"`
	Pricing models.DiscountCalculation `json:"pricing"`
}

// --- Handler struct & constructor ---

type ProductHandler struct {
	svc *service.CatalogService
}

func NewProductHandler(products repository.ProductStore, discounts repository.DiscountStore) *ProductHandler {
	return &ProductHandler{svc: service.NewCatalogService(products, discounts)}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, apiResponse{Success: false, Error: msg})
}

// parseFloatParam degrades malformed numbers to unset instead of failing the
// request.
func parseFloatParam(raw string) *float64 {
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseIntParam(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// --- Handlers ---

// ListProducts handles GET /products: filter, sort and paginate the catalog.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	qv := r.URL.Query()
	q := service.ListQuery{
		Category:  qv.Get("category"),
		MinPrice:  parseFloatParam(qv.Get("minPrice")),
		MaxPrice:  parseFloatParam(qv.Get("maxPrice")),
		MinRating: parseFloatParam(qv.Get("minRating")),
		InStock:   qv.Get("inStock") == "true",
		Page:      parseIntParam(qv.Get("page"), 1),
		Limit:     parseIntParam(qv.Get("limit"), 10),
		SortBy:    qv.Get("sortBy"),
		SortOrder: qv.Get("sortOrder"),
	}

	page, err := h.svc.ListProducts(r.Context(), q)
	if err != nil {
		logger.Error().Err(err).Msg("listing products")
		writeError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: listData{
		Products:   page.Products,
		Total:      page.Total,
		Page:       page.Page,
		TotalPages: page.TotalPages,
	}})
}

// CreateProduct handles POST /products.
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product data")
		return
	}
	if !req.valid() {
		writeError(w, http.StatusBadRequest, "Invalid product data")
		return
	}

	product := req.toProduct()
	if err := h.svc.CreateProduct(r.Context(), product); err != nil {
		// Duplicate ids and persistence failures both answer 409; the
		// caller cannot tell them apart and retrying is safe either way.
		logger.Warn().Err(err).Str("id", product.ID).Msg("creating product")
		writeError(w, http.StatusConflict, "Product with this ID already exists or failed to create")
		return
	}
	writeJSON(w, http.StatusCreated, apiResponse{
		Success: true,
		Data:    product,
		Message: "Product created successfully",
	})
}

// GetProduct handles GET /products/{id}: the product plus its pricing,
// recomputed from the current discount rules on every read.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "Product ID is required")
		return
	}

	product, pricing, err := h.svc.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		logger.Error().Err(err).Str("id", id).Msg("fetching product")
		writeError(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: detailData{
		Product: *product,
		Pricing: pricing,
	}})
}

// UpdateProduct handles PUT /products/{id}: shallow-merges the provided
// subset of fields over the stored record.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "Product ID is required")
		return
	}

	var upd models.ProductUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid update data")
		return
	}

	product, err := h.svc.UpdateProduct(r.Context(), id, upd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Product not found or failed to update")
			return
		}
		logger.Error().Err(err).Str("id", id).Msg("updating product")
		writeError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Data:    product,
		Message: "Product updated successfully",
	})
}
