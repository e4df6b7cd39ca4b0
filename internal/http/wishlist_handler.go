package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Harsh10022004/amazon-clone/internal/wishlist"
)

type WishlistHandler struct {
	repo wishlist.Repository
}

func NewWishlistHandler(repo wishlist.Repository) *WishlistHandler {
	return &WishlistHandler{repo: repo}
}

func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	items, err := h.repo.List(ctx, GetUserID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load wishlist")
		return
	}

	writeData(w, http.StatusOK, items)
}

func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID string `json:"product_id"`
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

	itemID, err := h.repo.Add(ctx, GetUserID(r.Context()), body.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, wishlist.ErrProductNotFound):
			writeError(w, http.StatusNotFound, "product not found")
		case errors.Is(err, wishlist.ErrAlreadyInWishlist):
			writeError(w, http.StatusConflict, "product already in wishlist")
		default:
			writeError(w, http.StatusInternalServerError, "failed to add to wishlist")
		}
		return
	}

	writeMessage(w, http.StatusCreated, "added to wishlist", map[string]string{"wishlist_item_id": itemID})
}

func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "missing productId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.repo.Remove(ctx, GetUserID(r.Context()), productID); err != nil {
		if errors.Is(err, wishlist.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "item not found in wishlist")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to remove from wishlist")
		return
	}

	writeMessage(w, http.StatusOK, "removed from wishlist", nil)
}
