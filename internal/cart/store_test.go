package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EduCom/internal/catalog"
	"EduCom/internal/kv"
	"EduCom/internal/notify"
)

var fixedNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

type recorder struct {
	levels []notify.Level
}

func (r *recorder) Notify(level notify.Level, _ string) {
	r.levels = append(r.levels, level)
}

func product(t *testing.T, id string) catalog.Product {
	t.Helper()
	p, ok, err := catalog.NewMemStore().Get(context.Background(), id)
	require.NoError(t, err)
	require.True(t, ok)
	return p
}

func newStore(backing kv.Store, rec *recorder) *Store {
	opts := Options{Now: func() time.Time { return fixedNow }}
	if rec != nil {
		opts.Notifier = rec
	}
	return NewStore(backing, opts)
}

func TestAdd_NoUserIsNoOp(t *testing.T) {
	backing := kv.NewMemStore()
	s := newStore(backing, nil)

	require.NoError(t, s.Add(context.Background(), product(t, "1")))
	assert.Zero(t, s.Len())
	assert.Empty(t, backing.Keys())
}

func TestAdd_SameProductTwiceKeepsSize(t *testing.T) {
	rec := &recorder{}
	s := newStore(kv.NewMemStore(), rec)
	ctx := context.Background()
	require.NoError(t, s.SetCurrentUser(ctx, "u1"))

	require.NoError(t, s.Add(ctx, product(t, "1")))
	require.NoError(t, s.Add(ctx, product(t, "1")))

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, []notify.Level{notify.Success, notify.Warning}, rec.levels)
	assert.Equal(t, fixedNow, s.Items()[0].AddedAt)
}

func TestRemoveAndClear(t *testing.T) {
	s := newStore(kv.NewMemStore(), nil)
	ctx := context.Background()
	require.NoError(t, s.SetCurrentUser(ctx, "u1"))

	for _, id := range []string{"1", "5", "8"} {
		require.NoError(t, s.Add(ctx, product(t, id)))
	}
	require.NoError(t, s.Remove(ctx, "5"))
	require.NoError(t, s.Remove(ctx, "missing"))

	ids := make([]string, 0, s.Len())
	for _, it := range s.Items() {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"1", "8"}, ids)
	assert.True(t, s.Contains("8"))
	assert.False(t, s.Contains("5"))

	require.NoError(t, s.Clear(ctx))
	assert.Zero(t, s.Len())
}

func TestTotal(t *testing.T) {
	s := newStore(kv.NewMemStore(), nil)
	ctx := context.Background()
	require.NoError(t, s.SetCurrentUser(ctx, "u1"))
	assert.Zero(t, s.Total())

	require.NoError(t, s.Add(ctx, product(t, "1")))
	require.NoError(t, s.Add(ctx, product(t, "8")))
	assert.Equal(t, int64(899000+399000), s.Total())
}

func TestCartsArePerUser(t *testing.T) {
	backing := kv.NewMemStore()
	s := newStore(backing, nil)
	ctx := context.Background()

	require.NoError(t, s.SetCurrentUser(ctx, "alice"))
	require.NoError(t, s.Add(ctx, product(t, "2")))

	require.NoError(t, s.SetCurrentUser(ctx, "bob"))
	assert.Zero(t, s.Len())
	require.NoError(t, s.Add(ctx, product(t, "3")))
	require.NoError(t, s.Clear(ctx))

	require.NoError(t, s.SetCurrentUser(ctx, ""))
	assert.Zero(t, s.Len())

	require.NoError(t, s.SetCurrentUser(ctx, "alice"))
	require.Equal(t, 1, s.Len())
	assert.Equal(t, "2", s.Items()[0].ID)

	assert.Equal(t, []string{"cart_alice", "cart_bob"}, backing.Keys())
}

func TestPersistedFormat(t *testing.T) {
	backing := kv.NewMemStore()
	s := newStore(backing, nil)
	ctx := context.Background()
	require.NoError(t, s.SetCurrentUser(ctx, "u1"))
	require.NoError(t, s.Add(ctx, product(t, "8")))

	raw, ok, err := backing.Get(ctx, "cart_u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, string(raw), `"id":"8"`)
	assert.Contains(t, string(raw), `"price":399000`)
	assert.Contains(t, string(raw), `"addedAt":"2024-05-01T09:30:00Z"`)

	reloaded := newStore(backing, nil)
	require.NoError(t, reloaded.SetCurrentUser(ctx, "u1"))
	assert.Equal(t, s.Items(), reloaded.Items())
}

func TestCorruptCartStartsEmpty(t *testing.T) {
	backing := kv.NewMemStore()
	ctx := context.Background()
	require.NoError(t, backing.Set(ctx, "cart_u1", []byte(`[{"id":"1"},{"id":"1"}]`)))

	s := newStore(backing, nil)
	require.NoError(t, s.SetCurrentUser(ctx, "u1"))
	assert.Zero(t, s.Len())
}

type failingSet struct {
	*kv.MemStore
}

func (failingSet) Set(context.Context, string, []byte) error {
	return errors.New("quota exceeded")
}

func TestAdd_WriteFailureKeepsCart(t *testing.T) {
	s := newStore(failingSet{kv.NewMemStore()}, nil)
	ctx := context.Background()
	require.NoError(t, s.SetCurrentUser(ctx, "u1"))

	require.Error(t, s.Add(ctx, product(t, "1")))
	assert.Zero(t, s.Len())
}

func TestCommit(t *testing.T) {
	s := newStore(kv.NewMemStore(), nil)
	ctx := context.Background()
	require.NoError(t, s.SetCurrentUser(ctx, "u1"))
	require.NoError(t, s.Add(ctx, product(t, "1")))

	boom := errors.New("boom")
	err := s.Commit(ctx, func(string, []Item) error { return boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, s.Len())

	var gotUser string
	var gotItems []Item
	require.NoError(t, s.Commit(ctx, func(uid string, items []Item) error {
		gotUser, gotItems = uid, items
		return nil
	}))
	assert.Equal(t, "u1", gotUser)
	assert.Len(t, gotItems, 1)
	assert.Zero(t, s.Len())
}

func TestCommit_RestoresSavedCartWhenFnFails(t *testing.T) {
	backing := kv.NewMemStore()
	s := newStore(backing, nil)
	ctx := context.Background()
	require.NoError(t, s.SetCurrentUser(ctx, "u1"))
	require.NoError(t, s.Add(ctx, product(t, "1")))

	err := s.Commit(ctx, func(string, []Item) error { return errors.New("payment declined") })
	require.Error(t, err)

	reloaded := newStore(backing, nil)
	require.NoError(t, reloaded.SetCurrentUser(ctx, "u1"))
	assert.Equal(t, 1, reloaded.Len())
}

func TestCommit_ClearFailureSkipsFn(t *testing.T) {
	backing := kv.NewMemStore()
	s := newStore(backing, nil)
	ctx := context.Background()
	require.NoError(t, s.SetCurrentUser(ctx, "u1"))
	require.NoError(t, s.Add(ctx, product(t, "1")))

	s.kv = failingSet{backing}
	called := false
	err := s.Commit(ctx, func(string, []Item) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
	assert.Equal(t, 1, s.Len())
}
