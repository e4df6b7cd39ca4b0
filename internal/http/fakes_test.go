package httpapi

import (
	"context"
	"net/http"

	"github.com/Harsh10022004/amazon-clone/internal/cart"
	"github.com/Harsh10022004/amazon-clone/internal/catalog"
	"github.com/Harsh10022004/amazon-clone/internal/order"
	"github.com/Harsh10022004/amazon-clone/internal/wishlist"
)

type fakeCatalog struct {
	listFunc       func(ctx context.Context, search, category string) ([]catalog.Product, error)
	getFunc        func(ctx context.Context, productID string) (*catalog.ProductDetail, error)
	categoriesFunc func(ctx context.Context) ([]catalog.Category, error)
}

func (f *fakeCatalog) List(ctx context.Context, search, category string) ([]catalog.Product, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx, search, category)
	}
	return nil, nil
}

func (f *fakeCatalog) GetByID(ctx context.Context, productID string) (*catalog.ProductDetail, error) {
	if f.getFunc != nil {
		return f.getFunc(ctx, productID)
	}
	return nil, catalog.ErrNotFound
}

func (f *fakeCatalog) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	if f.categoriesFunc != nil {
		return f.categoriesFunc(ctx)
	}
	return nil, nil
}

type fakeCart struct {
	getCartFunc        func(ctx context.Context, userID string) (*cart.Cart, error)
	addItemFunc        func(ctx context.Context, userID, productID string, quantity int) (string, error)
	updateQuantityFunc func(ctx context.Context, userID, productID string, quantity int) error
	removeItemFunc     func(ctx context.Context, userID, productID string) error
	clearFunc          func(ctx context.Context, userID string) error
}

func (f *fakeCart) GetCart(ctx context.Context, userID string) (*cart.Cart, error) {
	if f.getCartFunc != nil {
		return f.getCartFunc(ctx, userID)
	}
	return &cart.Cart{Items: []cart.Line{}}, nil
}

func (f *fakeCart) AddItem(ctx context.Context, userID, productID string, quantity int) (string, error) {
	if f.addItemFunc != nil {
		return f.addItemFunc(ctx, userID, productID, quantity)
	}
	return "line-1", nil
}

func (f *fakeCart) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	if f.updateQuantityFunc != nil {
		return f.updateQuantityFunc(ctx, userID, productID, quantity)
	}
	return nil
}

func (f *fakeCart) RemoveItem(ctx context.Context, userID, productID string) error {
	if f.removeItemFunc != nil {
		return f.removeItemFunc(ctx, userID, productID)
	}
	return nil
}

func (f *fakeCart) Clear(ctx context.Context, userID string) error {
	if f.clearFunc != nil {
		return f.clearFunc(ctx, userID)
	}
	return nil
}

type fakeOrderService struct {
	placeOrderFunc func(ctx context.Context, userID, shippingAddress string) (*order.PlacedOrder, error)
	getByIDFunc    func(ctx context.Context, userID, orderID string) (*order.Order, error)
	listByUserFunc func(ctx context.Context, userID string) ([]order.Order, error)
}

func (f *fakeOrderService) PlaceOrder(ctx context.Context, userID, shippingAddress string) (*order.PlacedOrder, error) {
	if f.placeOrderFunc != nil {
		return f.placeOrderFunc(ctx, userID, shippingAddress)
	}
	return &order.PlacedOrder{OrderID: "order-1", Status: order.StatusConfirmed}, nil
}

func (f *fakeOrderService) GetByID(ctx context.Context, userID, orderID string) (*order.Order, error) {
	if f.getByIDFunc != nil {
		return f.getByIDFunc(ctx, userID, orderID)
	}
	return nil, order.ErrNotFound
}

func (f *fakeOrderService) ListByUser(ctx context.Context, userID string) ([]order.Order, error) {
	if f.listByUserFunc != nil {
		return f.listByUserFunc(ctx, userID)
	}
	return nil, nil
}

type fakeWishlist struct {
	listFunc   func(ctx context.Context, userID string) ([]wishlist.Item, error)
	addFunc    func(ctx context.Context, userID, productID string) (string, error)
	removeFunc func(ctx context.Context, userID, productID string) error
}

func (f *fakeWishlist) List(ctx context.Context, userID string) ([]wishlist.Item, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx, userID)
	}
	return []wishlist.Item{}, nil
}

func (f *fakeWishlist) Add(ctx context.Context, userID, productID string) (string, error) {
	if f.addFunc != nil {
		return f.addFunc(ctx, userID, productID)
	}
	return "w1", nil
}

func (f *fakeWishlist) Remove(ctx context.Context, userID, productID string) error {
	if f.removeFunc != nil {
		return f.removeFunc(ctx, userID, productID)
	}
	return nil
}

// newTestRouter wires the full router around fakes so tests exercise routing,
// middleware, and handlers together.
func newTestRouter(c *fakeCatalog, ca *fakeCart, o *fakeOrderService, wl *fakeWishlist) http.Handler {
	if c == nil {
		c = &fakeCatalog{}
	}
	if ca == nil {
		ca = &fakeCart{}
	}
	if o == nil {
		o = &fakeOrderService{}
	}
	if wl == nil {
		wl = &fakeWishlist{}
	}
	return NewRouter(
		NewProductHandler(c),
		NewCartHandler(ca),
		NewOrderHandler(o),
		NewWishlistHandler(wl),
	)
}
