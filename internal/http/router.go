package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(products *ProductHandler, carts *CartHandler, orders *OrderHandler, wishlists *WishlistHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(WithUser)

	r.Get("/health", health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", products.List)
		r.Get("/products/{productId}", products.Get)
		r.Get("/categories", products.ListCategories)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", carts.GetCart)
			r.Post("/", carts.AddItem)
			r.Delete("/", carts.Clear)
			r.Put("/{productId}", carts.UpdateQuantity)
			r.Delete("/{productId}", carts.RemoveItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orders.PlaceOrder)
			r.Get("/", orders.ListOrders)
			r.Get("/{orderId}", orders.GetOrder)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", wishlists.List)
			r.Post("/", wishlists.Add)
			r.Delete("/{productId}", wishlists.Remove)
		})
	})

	return r
}

func health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "storefront-api",
	})
}
