// Package order turns the current cart into a paid order.
package order

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"EduCom/internal/cart"
	"EduCom/internal/notify"
	"EduCom/pkg/kit"
)

const (
	DefaultLatency = 1200 * time.Millisecond

	msgPaid = "Thanh toán thành công!"
)

// Cart is the part of cart.Store checkout needs.
type Cart interface {
	CurrentUser() string
	Commit(ctx context.Context, fn func(userID string, items []cart.Item) error) error
}

type Options struct {
	Log      *zap.Logger
	Notifier notify.Notifier
	Metrics  *kit.Metrics
	Latency  time.Duration
	Now      func() time.Time
}

type Service struct {
	store    *Store
	cart     Cart
	log      *zap.Logger
	notifier notify.Notifier
	metrics  *kit.Metrics
	latency  time.Duration
	now      func() time.Time
}

func NewService(store *Store, c Cart, opts Options) *Service {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Nop{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		store:    store,
		cart:     c,
		log:      opts.Log,
		notifier: opts.Notifier,
		metrics:  opts.Metrics,
		latency:  opts.Latency,
		now:      opts.Now,
	}
}

// Checkout pays for the current cart. The cart is cleared and the order
// recorded as one step: if either write fails no order exists and the cart
// is kept.
func (s *Service) Checkout(ctx context.Context, method PaymentMethod) (Order, error) {
	if method == "" {
		method = Credit
	}
	if !method.valid() {
		return Order{}, ErrPaymentMethod
	}

	if err := kit.Wait(ctx, s.latency); err != nil {
		return Order{}, err
	}

	var o Order
	err := s.cart.Commit(ctx, func(userID string, items []cart.Item) error {
		if userID == "" {
			return ErrNoUser
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		total, err := calculateTotal(items)
		if err != nil {
			return err
		}

		o = Order{
			ID:        "o_" + uuid.NewString(),
			UserID:    userID,
			Items:     items,
			Total:     total,
			Payment:   method,
			Status:    StatusPaid,
			CreatedAt: s.now().UTC(),
		}
		return s.store.Create(ctx, o)
	})
	if err != nil {
		return Order{}, err
	}

	s.metrics.Mutation("order", "checkout")
	s.log.Info("checkout", zap.String("order_id", o.ID), zap.String("user_id", o.UserID), zap.Int64("total", o.Total))
	s.notifier.Notify(notify.Success, msgPaid)
	return o, nil
}

// Orders lists the current user's orders, newest first.
func (s *Service) Orders(ctx context.Context) ([]Order, error) {
	uid := s.cart.CurrentUser()
	if uid == "" {
		return nil, ErrNoUser
	}
	return s.store.List(ctx, uid)
}

// Order returns one of the current user's orders.
func (s *Service) Order(ctx context.Context, id string) (Order, bool, error) {
	uid := s.cart.CurrentUser()
	if uid == "" {
		return Order{}, false, ErrNoUser
	}
	return s.store.Get(ctx, uid, id)
}

func calculateTotal(items []cart.Item) (int64, error) {
	var total int64
	for _, it := range items {
		if it.Price < 0 || total > math.MaxInt64-it.Price {
			return 0, ErrTotalOverflow
		}
		total += it.Price
	}
	return total, nil
}
