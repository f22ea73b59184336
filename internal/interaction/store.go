// Package interaction keeps per-user favorites and view history. All users'
// records live in one durable blob; the store only ever reads and writes the
// record of the current user.
package interaction

import (
	"context"
	"errors"
	"slices"
	"sync"

	"go.uber.org/zap"

	"EduCom/internal/catalog"
	"EduCom/internal/kv"
	"EduCom/pkg/kit"
)

const metricsStore = "interaction"

type Store struct {
	mu      sync.RWMutex
	kv      kv.Store
	log     *zap.Logger
	metrics *kit.Metrics

	data    map[string]Record
	current string
}

type Options struct {
	Log     *zap.Logger
	Metrics *kit.Metrics
}

// NewStore loads the persisted mapping once. A corrupt blob is replaced by an
// empty mapping and a corrupt user record is dropped on its own; only I/O
// failures are returned.
func NewStore(ctx context.Context, store kv.Store, opts Options) (*Store, error) {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	s := &Store{
		kv:      store,
		log:     opts.Log,
		metrics: opts.Metrics,
		data:    map[string]Record{},
	}

	var st appState
	_, err := kv.GetJSON(ctx, store, kv.KeyAppState, &st)
	switch {
	case errors.Is(err, kv.ErrCorrupt):
		s.log.Warn("discarding corrupt interaction state", zap.String("key", kv.KeyAppState), zap.Error(err))
		s.metrics.CorruptRecovered(kv.KeyAppState)
	case err != nil:
		return nil, err
	case st.UserData != nil:
		for uid, reason := range st.sanitize() {
			s.log.Warn("discarding corrupt interaction record",
				zap.String("key", kv.KeyAppState), zap.String("user_id", uid), zap.Error(reason))
			s.metrics.CorruptRecovered(kv.KeyAppState)
		}
		s.data = st.UserData
	}

	return s, nil
}

// SetCurrentUser re-scopes reads and writes to userID. An empty id means no
// user; other users' records are left untouched.
func (s *Store) SetCurrentUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = userID
	return nil
}

func (s *Store) CurrentUser() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// AddFavorite marks productID as a favorite. An empty id is ignored.
func (s *Store) AddFavorite(ctx context.Context, productID string) error {
	if productID == "" {
		return nil
	}
	return s.mutate(ctx, "add_favorite", func(r Record) (Record, bool) {
		if slices.Contains(r.Favorites, productID) {
			return r, false
		}
		r.Favorites = append(r.Favorites, productID)
		return r, true
	})
}

func (s *Store) RemoveFavorite(ctx context.Context, productID string) error {
	return s.mutate(ctx, "remove_favorite", func(r Record) (Record, bool) {
		i := slices.Index(r.Favorites, productID)
		if i < 0 {
			return r, false
		}
		r.Favorites = slices.Delete(r.Favorites, i, i+1)
		return r, true
	})
}

func (s *Store) IsFavorite(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == "" {
		return false
	}
	return slices.Contains(s.data[s.current].Favorites, productID)
}

// AddToHistory puts productID at the front of the current user's history,
// moving it there if it was already present. An empty id is ignored.
func (s *Store) AddToHistory(ctx context.Context, productID string) error {
	if productID == "" {
		return nil
	}
	return s.mutate(ctx, "add_history", func(r Record) (Record, bool) {
		if len(r.ViewHistory) > 0 && r.ViewHistory[0] == productID {
			return r, false
		}
		r.ViewHistory = pushFront(r.ViewHistory, productID)
		return r, true
	})
}

func (s *Store) ClearHistory(ctx context.Context) error {
	return s.mutate(ctx, "clear_history", func(r Record) (Record, bool) {
		if len(r.ViewHistory) == 0 {
			return r, false
		}
		r.ViewHistory = []string{}
		return r, true
	})
}

// Favorites returns the current user's favorite ids.
func (s *Store) Favorites() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recordOf(s.current).Favorites
}

// History returns the current user's view history, most recent first.
func (s *Store) History() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recordOf(s.current).ViewHistory
}

func (s *Store) FavoritesOf(userID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recordOf(userID).Favorites
}

func (s *Store) HistoryOf(userID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recordOf(userID).ViewHistory
}

func (s *Store) FavoriteProducts(products []catalog.Product) []catalog.Product {
	return catalog.Project(products, s.Favorites())
}

func (s *Store) HistoryProducts(products []catalog.Product) []catalog.Product {
	return catalog.Project(products, s.History())
}

// Snapshot copies the full user-id to record mapping.
func (s *Store) Snapshot() map[string]Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Record, len(s.data))
	for uid, r := range s.data {
		out[uid] = r.clone()
	}
	return out
}

func (s *Store) recordOf(userID string) Record {
	if userID == "" {
		return Record{}
	}
	return s.data[userID].clone()
}

// mutate applies fn to the current user's record and persists the whole
// mapping. Without a current user it does nothing. If the write fails the
// in-memory record is left as it was.
func (s *Store) mutate(ctx context.Context, op string, fn func(Record) (Record, bool)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == "" {
		return nil
	}

	prev, existed := s.data[s.current]
	next, changed := fn(prev.clone())
	if !changed {
		return nil
	}

	s.data[s.current] = next
	if err := s.persist(ctx); err != nil {
		if existed {
			s.data[s.current] = prev
		} else {
			delete(s.data, s.current)
		}
		return err
	}

	s.metrics.Mutation(metricsStore, op)
	s.log.Debug("interaction updated", zap.String("op", op), zap.String("user_id", s.current))
	return nil
}

func (s *Store) persist(ctx context.Context) error {
	return kv.SetJSON(ctx, s.kv, kv.KeyAppState, appState{
		Version:  stateVersion,
		UserData: s.data,
	})
}
