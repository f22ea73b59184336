package order

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"EduCom/internal/kv"
	"EduCom/pkg/kit"
)

// Store keeps each user's orders under kv.OrdersKey.
type Store struct {
	kv      kv.Store
	log     *zap.Logger
	metrics *kit.Metrics
}

func NewStore(store kv.Store, log *zap.Logger, metrics *kit.Metrics) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{kv: store, log: log, metrics: metrics}
}

func (s *Store) Create(ctx context.Context, o Order) error {
	list, err := s.load(ctx, o.UserID)
	if err != nil {
		return err
	}

	list = append(list, o)
	if err := kv.SetJSON(ctx, s.kv, kv.OrdersKey(o.UserID), list); err != nil {
		return fmt.Errorf("persist orders: %w", err)
	}
	return nil
}

// List returns userID's orders, newest first.
func (s *Store) List(ctx context.Context, userID string) ([]Order, error) {
	list, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := slices.Clone([]Order(list))
	slices.Reverse(out)
	return out, nil
}

func (s *Store) Get(ctx context.Context, userID, id string) (Order, bool, error) {
	list, err := s.load(ctx, userID)
	if err != nil {
		return Order{}, false, err
	}
	for _, o := range list {
		if o.ID == id {
			return o, true, nil
		}
	}
	return Order{}, false, nil
}

func (s *Store) load(ctx context.Context, userID string) (history, error) {
	key := kv.OrdersKey(userID)

	var list history
	_, err := kv.GetJSON(ctx, s.kv, key, &list)
	switch {
	case errors.Is(err, kv.ErrCorrupt):
		s.log.Warn("discarding corrupt order history", zap.String("key", key), zap.Error(err))
		s.metrics.CorruptRecovered(key)
		return history{}, nil
	case err != nil:
		return nil, fmt.Errorf("load orders: %w", err)
	}
	return list, nil
}
