package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenMaker_RoundTrip(t *testing.T) {
	tm := NewTokenMaker("s3cret")

	tok, err := tm.New(Session{UserID: "user1", Email: "admin@example.com"}, time.Minute)
	require.NoError(t, err)

	c, err := tm.Parse(tok)
	require.NoError(t, err)
	require.Equal(t, "user1", c.UserID)
	require.Equal(t, "admin@example.com", c.Email)
	require.Equal(t, "educom", c.Issuer)
}

func TestTokenMaker_Rejects(t *testing.T) {
	tm := NewTokenMaker("s3cret")
	sess := Session{UserID: "user1"}

	other := NewTokenMaker("different")
	foreign, err := other.New(sess, time.Minute)
	require.NoError(t, err)
	_, err = tm.Parse(foreign)
	require.ErrorIs(t, err, ErrInvalidToken)

	expired := NewTokenMaker("s3cret")
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	old, err := expired.New(sess, time.Minute)
	require.NoError(t, err)
	_, err = tm.Parse(old)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = tm.Parse("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
