package order

import (
	"context"
	"log"
	"time"

	"github.com/Harsh10022004/amazon-clone/internal/events"
)

// Service wraps the repository and dispatches the post-commit confirmation.
type Service struct {
	repo     Repository
	notifier events.Notifier
	logger   *log.Logger
}

func NewService(repo Repository, notifier events.Notifier, logger *log.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

func (s *Service) PlaceOrder(ctx context.Context, userID, shippingAddress string) (*PlacedOrder, error) {
	placed, err := s.repo.PlaceOrder(ctx, userID, shippingAddress)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		conf := events.OrderConfirmation{
			OrderID:     placed.OrderID,
			UserID:      userID,
			TotalAmount: placed.TotalAmount,
			Timestamp:   time.Now().UTC(),
		}
		// The order is committed at this point; notification failures are
		// logged and never surfaced to the caller.
		go func() {
			notifyCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.notifier.OrderConfirmed(notifyCtx, conf); err != nil {
				s.logger.Printf("order confirmation for %s failed: %v", conf.OrderID, err)
			}
		}()
	}

	return placed, nil
}

func (s *Service) GetByID(ctx context.Context, userID, orderID string) (*Order, error) {
	return s.repo.GetByID(ctx, userID, orderID)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}
