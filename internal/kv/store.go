// Package kv is the durable key-value layer the state stores persist into.
// Values are opaque byte blobs; typed records are layered on top by GetJSON
// and SetJSON.
package kv

import (
	"context"
	"errors"
)

const (
	KeyUser            = "user"
	KeyRegisteredUsers = "registeredUsers"
	KeyAppState        = "appState"

	cartPrefix   = "cart_"
	ordersPrefix = "orders_"
)

var (
	ErrClosed  = errors.New("kv store closed")
	ErrCorrupt = errors.New("corrupt stored value")
)

func CartKey(userID string) string   { return cartPrefix + userID }
func OrdersKey(userID string) string { return ordersPrefix + userID }

// Store is a string-keyed blob store. Get reports a missing key as
// (nil, false, nil); Remove of a missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
