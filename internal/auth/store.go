package auth

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

// Session is the signed-in identity. It is persisted under kv.KeyUser while
// the user stays logged in.
type Session struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Profile is the registration form.
type Profile struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type ProfileUpdate struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// Observer is told the current user id whenever the session changes. An
// empty id means nobody is signed in.
type Observer interface {
	SetCurrentUser(ctx context.Context, userID string) error
}

const sessionVersion = 1

type sessionRecord struct {
	Version int `json:"version"`
	Session
}

func (r *sessionRecord) Validate() error {
	if r.Version > sessionVersion {
		return fmt.Errorf("unsupported version %d", r.Version)
	}
	if r.UserID == "" {
		return errors.New("session without user id")
	}
	return nil
}

// account is one entry of kv.KeyRegisteredUsers. Password is kept as typed
// unless hashing is enabled, in which case only PasswordHash is set.
type account struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Avatar       string   `json:"avatar"`
	Password     string   `json:"password,omitempty"`
	PasswordHash string   `json:"passwordHash,omitempty"`
	Favorites    []string `json:"favorites"`
	ViewHistory  []string `json:"viewHistory"`
}

type accounts []account

func (a accounts) Validate() error {
	seen := make(map[string]struct{}, len(a))
	for i, acc := range a {
		if acc.ID == "" {
			return fmt.Errorf("account %d: empty id", i)
		}
		if _, dup := seen[acc.ID]; dup {
			return fmt.Errorf("account %d: duplicate id %q", i, acc.ID)
		}
		seen[acc.ID] = struct{}{}

		if acc.Email == "" {
			return fmt.Errorf("account %s: empty email", acc.ID)
		}
		if acc.Password == "" && acc.PasswordHash == "" {
			return fmt.Errorf("account %s: no password", acc.ID)
		}
	}
	return nil
}
