package kv

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, prefix string) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	s, err := DialRedis(context.Background(), RedisOptions{Addr: srv.Addr(), Prefix: prefix})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, srv
}

func TestRedisStore_Contract(t *testing.T) {
	s, _ := newRedisStore(t, "educom:")
	testStoreContract(t, s)
}

func TestRedisStore_KeysArePrefixed(t *testing.T) {
	s, srv := newRedisStore(t, "educom:")
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyAppState, []byte(`{"userData":{}}`)))

	raw, err := srv.Get("educom:" + KeyAppState)
	require.NoError(t, err)
	require.Equal(t, `{"userData":{}}`, raw)
	require.False(t, srv.Exists(KeyAppState))
}

func TestRedisStore_PingFailsWhenServerGone(t *testing.T) {
	s, srv := newRedisStore(t, "")
	srv.Close()

	require.Error(t, s.Ping(context.Background()))
}
