// Package cart keeps the shopping cart of whoever is signed in. Each user's
// cart is stored under its own key and loaded when the session changes.
package cart

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"EduCom/internal/catalog"
	"EduCom/internal/kv"
	"EduCom/internal/notify"
	"EduCom/pkg/kit"
)

const (
	metricsStore = "cart"

	msgAdded        = "Đã thêm vào giỏ hàng!"
	msgAlreadyAdded = "Khóa học này đã có trong giỏ hàng!"
)

type Options struct {
	Log      *zap.Logger
	Notifier notify.Notifier
	Metrics  *kit.Metrics
	Now      func() time.Time
}

type Store struct {
	mu       sync.Mutex
	kv       kv.Store
	log      *zap.Logger
	notifier notify.Notifier
	metrics  *kit.Metrics
	now      func() time.Time

	current string
	items   []Item
}

func NewStore(store kv.Store, opts Options) *Store {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Nop{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		kv:       store,
		log:      opts.Log,
		notifier: opts.Notifier,
		metrics:  opts.Metrics,
		now:      opts.Now,
	}
}

// SetCurrentUser swaps in userID's saved cart. With no user the cart is
// empty. The previous user's cart is never written here.
func (s *Store) SetCurrentUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = userID
	s.items = nil
	if userID == "" {
		return nil
	}

	key := kv.CartKey(userID)
	var loaded items
	_, err := kv.GetJSON(ctx, s.kv, key, &loaded)
	switch {
	case errors.Is(err, kv.ErrCorrupt):
		s.log.Warn("discarding corrupt cart", zap.String("key", key), zap.Error(err))
		s.metrics.CorruptRecovered(key)
	case err != nil:
		return fmt.Errorf("load cart: %w", err)
	default:
		s.items = loaded
	}
	return nil
}

func (s *Store) CurrentUser() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Add appends p stamped with the current time. A product already in the
// cart is left alone and the user is told so.
func (s *Store) Add(ctx context.Context, p catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == "" {
		return nil
	}
	if s.indexOf(p.ID) >= 0 {
		s.notifier.Notify(notify.Warning, msgAlreadyAdded)
		return nil
	}

	next := append(cloneItems(s.items), Item{Product: p, AddedAt: s.now().UTC()})
	if err := s.replace(ctx, next, "add"); err != nil {
		return err
	}
	s.notifier.Notify(notify.Success, msgAdded)
	return nil
}

func (s *Store) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == "" {
		return nil
	}
	i := s.indexOf(productID)
	if i < 0 {
		return nil
	}

	next := slices.Delete(cloneItems(s.items), i, i+1)
	return s.replace(ctx, next, "remove")
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == "" {
		return nil
	}
	return s.replace(ctx, []Item{}, "clear")
}

// Commit hands the current user id and cart to fn and empties the cart if fn
// succeeds. fn runs under the cart lock, so the cart cannot change between
// reading it and clearing it. The emptied cart is written before fn runs and
// the saved cart is put back when fn fails, so fn never commits against a
// cart that could not be cleared.
func (s *Store) Commit(ctx context.Context, fn func(userID string, items []Item) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := cloneItems(s.items)
	if s.current == "" || len(prev) == 0 {
		return fn(s.current, prev)
	}

	key := kv.CartKey(s.current)
	if err := kv.SetJSON(ctx, s.kv, key, items{}); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	if err := fn(s.current, prev); err != nil {
		if rerr := kv.SetJSON(context.WithoutCancel(ctx), s.kv, key, items(prev)); rerr != nil {
			s.log.Error("restore cart after failed commit", zap.String("user_id", s.current), zap.Error(rerr))
			return errors.Join(err, fmt.Errorf("restore cart: %w", rerr))
		}
		return err
	}

	s.items = []Item{}
	s.metrics.Mutation(metricsStore, "commit")
	s.log.Debug("cart committed", zap.String("user_id", s.current), zap.Int("items", len(prev)))
	return nil
}

func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

func (s *Store) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(productID) >= 0
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Total is the sum of item prices.
func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, it := range s.items {
		total += it.Price
	}
	return total
}

func (s *Store) indexOf(productID string) int {
	return slices.IndexFunc(s.items, func(it Item) bool { return it.ID == productID })
}

// replace persists next and only then makes it the in-memory cart.
func (s *Store) replace(ctx context.Context, next []Item, op string) error {
	if err := kv.SetJSON(ctx, s.kv, kv.CartKey(s.current), items(next)); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	s.items = next
	s.metrics.Mutation(metricsStore, op)
	s.log.Debug("cart updated", zap.String("op", op), zap.String("user_id", s.current), zap.Int("items", len(next)))
	return nil
}
