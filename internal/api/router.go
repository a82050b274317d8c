package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andreworkgit/MELI-list-products/internal/api/handlers"
	"github.com/andreworkgit/MELI-list-products/internal/repository"
)

// NewRouter builds the HTTP router for the catalog service.
func NewRouter(products repository.ProductStore, discounts repository.DiscountStore) http.Handler {
	r := chi.NewRouter()

	productHandler := handlers.NewProductHandler(products, discounts)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", productHandler.ListProducts)
		r.Post("/", productHandler.CreateProduct)
		r.Get("/{id}", productHandler.GetProduct)
		r.Put("/{id}", productHandler.UpdateProduct)
	})

	// health
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
