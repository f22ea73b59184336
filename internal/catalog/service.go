package catalog

import (
	"context"
	"time"

	"go.uber.org/zap"

	"EduCom/pkg/kit"
)

// Latency is the simulated round trip of each catalog call.
type Latency struct {
	List    time.Duration
	Get     time.Duration
	Search  time.Duration
	Filter  time.Duration
	Suggest time.Duration
}

func DefaultLatency() Latency {
	return Latency{
		List:    800 * time.Millisecond,
		Get:     500 * time.Millisecond,
		Search:  600 * time.Millisecond,
		Filter:  700 * time.Millisecond,
		Suggest: 1500 * time.Millisecond,
	}
}

// Activity exposes a user's favorites and view history to suggestions.
type Activity interface {
	FavoritesOf(userID string) []string
	HistoryOf(userID string) []string
}

// Service answers catalog queries the way the remote API would, including
// its delay. It never mutates the catalog.
type Service struct {
	store    Store
	activity Activity
	latency  Latency
	log      *zap.Logger
}

func NewService(store Store, activity Activity, latency Latency, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, activity: activity, latency: latency, log: log}
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	if err := kit.Wait(ctx, s.latency.List); err != nil {
		return nil, err
	}
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Product, bool, error) {
	if err := kit.Wait(ctx, s.latency.Get); err != nil {
		return Product{}, false, err
	}
	return s.store.Get(ctx, id)
}

func (s *Service) Search(ctx context.Context, query string) ([]Product, error) {
	if err := kit.Wait(ctx, s.latency.Search); err != nil {
		return nil, err
	}

	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return Search(all, query), nil
}

func (s *Service) Filter(ctx context.Context, f Filter) ([]Product, error) {
	if err := kit.Wait(ctx, s.latency.Filter); err != nil {
		return nil, err
	}

	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return Apply(all, f), nil
}

func (s *Service) Suggest(ctx context.Context, userID string) (Suggestion, error) {
	if err := kit.Wait(ctx, s.latency.Suggest); err != nil {
		return Suggestion{}, err
	}

	all, err := s.store.List(ctx)
	if err != nil {
		return Suggestion{}, err
	}

	var favorites, history []string
	if s.activity != nil && userID != "" {
		favorites = s.activity.FavoritesOf(userID)
		history = s.activity.HistoryOf(userID)
	}

	out := Suggest(all, favorites, history)
	s.log.Debug("suggestions", zap.String("user_id", userID), zap.Int("count", len(out.Products)))
	return out, nil
}

// Products returns the catalog without the simulated delay, for projecting ids
// the caller already holds.
func (s *Service) Products(ctx context.Context) ([]Product, error) {
	return s.store.List(ctx)
}

// Lookup is Get without the simulated delay.
func (s *Service) Lookup(ctx context.Context, id string) (Product, bool, error) {
	return s.store.Get(ctx, id)
}
