package events

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"
)

// OrderConfirmation is the payload dispatched after an order commits.
type OrderConfirmation struct {
	OrderID     string          `json:"orderId"`
	UserID      string          `json:"userId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Timestamp   time.Time       `json:"timestamp"`
}

// Notifier delivers order confirmations. Delivery is best-effort: callers
// must not let a notifier error affect the order result.
type Notifier interface {
	OrderConfirmed(ctx context.Context, conf OrderConfirmation) error
}

// LogNotifier is the mock email channel used when no broker is configured.
type LogNotifier struct {
	logger *log.Logger
}

func NewLogNotifier(logger *log.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) OrderConfirmed(_ context.Context, conf OrderConfirmation) error {
	n.logger.Printf("notification: order %s confirmed for user %s, total %s",
		conf.OrderID, conf.UserID, conf.TotalAmount.StringFixed(2))
	return nil
}
