//go:build integration
// +build integration

package kv

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPostgresStore_Contract(t *testing.T) {
	dsn := os.Getenv("E2E_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("E2E_POSTGRES_DSN not set")
	}
	ctx := context.Background()

	s, err := OpenPostgres(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Migrate(ctx))
	for _, k := range []string{KeyUser, CartKey("user1")} {
		require.NoError(t, s.Remove(ctx, k))
	}

	testStoreContract(t, s)
}
