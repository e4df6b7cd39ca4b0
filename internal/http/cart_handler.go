package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Harsh10022004/amazon-clone/internal/cart"
)

type CartHandler struct {
	repo cart.Repository
}

func NewCartHandler(repo cart.Repository) *CartHandler {
	return &CartHandler{repo: repo}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.repo.GetCart(ctx, GetUserID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	writeData(w, http.StatusOK, c)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.ProductID == "" {
		writeError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	cartItemID, err := h.repo.AddItem(ctx, GetUserID(r.Context()), body.ProductID, body.Quantity)
	if err != nil {
		writeCartError(w, err, "failed to add item to cart")
		return
	}

	writeMessage(w, http.StatusCreated, "item added to cart", map[string]string{"cart_item_id": cartItemID})
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "missing productId")
		return
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.repo.UpdateQuantity(ctx, GetUserID(r.Context()), productID, body.Quantity); err != nil {
		writeCartError(w, err, "failed to update cart")
		return
	}

	writeMessage(w, http.StatusOK, "cart updated", nil)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "missing productId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.repo.RemoveItem(ctx, GetUserID(r.Context()), productID); err != nil {
		writeCartError(w, err, "failed to remove item from cart")
		return
	}

	writeMessage(w, http.StatusOK, "item removed from cart", nil)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.repo.Clear(ctx, GetUserID(r.Context())); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear cart")
		return
	}

	writeMessage(w, http.StatusOK, "cart cleared", nil)
}

func writeCartError(w http.ResponseWriter, err error, fallback string) {
	var stockErr *cart.StockError
	switch {
	case errors.Is(err, cart.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, cart.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "cart item not found")
	case errors.Is(err, cart.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, "quantity must be positive")
	case errors.As(err, &stockErr):
		writeError(w, http.StatusBadRequest, stockErr.Error())
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
