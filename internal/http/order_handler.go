package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Harsh10022004/amazon-clone/internal/order"
)

// OrderService is implemented by *order.Service.
type OrderService interface {
	PlaceOrder(ctx context.Context, userID, shippingAddress string) (*order.PlacedOrder, error)
	GetByID(ctx context.Context, userID, orderID string) (*order.Order, error)
	ListByUser(ctx context.Context, userID string) ([]order.Order, error)
}

type OrderHandler struct {
	svc OrderService
}

func NewOrderHandler(svc OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ShippingAddress string `json:"shipping_address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	body.ShippingAddress = strings.TrimSpace(body.ShippingAddress)
	if body.ShippingAddress == "" {
		writeError(w, http.StatusBadRequest, "shipping_address is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	placed, err := h.svc.PlaceOrder(ctx, GetUserID(r.Context()), body.ShippingAddress)
	if err != nil {
		var stockErr *order.InsufficientStockError
		switch {
		case errors.Is(err, order.ErrEmptyCart):
			writeError(w, http.StatusBadRequest, "cart is empty")
		case errors.As(err, &stockErr):
			writeError(w, http.StatusBadRequest, stockErr.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to place order")
		}
		return
	}

	writeMessage(w, http.StatusCreated, "order placed successfully", placed)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "missing orderId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.svc.GetByID(ctx, GetUserID(r.Context()), orderID)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load order")
		return
	}

	writeData(w, http.StatusOK, o)
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orders, err := h.svc.ListByUser(ctx, GetUserID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load orders")
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}

	writeData(w, http.StatusOK, orders)
}
