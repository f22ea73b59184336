package interaction

import (
	"errors"
	"fmt"
	"slices"
)

// MaxHistory bounds a user's view history.
const MaxHistory = 10

const stateVersion = 1

// Record is one user's favorites set and most-recent-first view history.
type Record struct {
	Favorites   []string `json:"favorites"`
	ViewHistory []string `json:"viewHistory"`
}

func (r Record) clone() Record {
	return Record{
		Favorites:   slices.Clone(r.Favorites),
		ViewHistory: slices.Clone(r.ViewHistory),
	}
}

// appState is the single blob persisted under kv.KeyAppState.
type appState struct {
	Version  int               `json:"version"`
	UserData map[string]Record `json:"userData"`
}

func (s *appState) Validate() error {
	if s.Version > stateVersion {
		return fmt.Errorf("unsupported version %d", s.Version)
	}
	return nil
}

func (r Record) validate() error {
	if len(r.ViewHistory) > MaxHistory {
		return fmt.Errorf("history holds %d entries", len(r.ViewHistory))
	}
	if err := uniqueIDs(r.Favorites); err != nil {
		return fmt.Errorf("favorites: %w", err)
	}
	if err := uniqueIDs(r.ViewHistory); err != nil {
		return fmt.Errorf("history: %w", err)
	}
	return nil
}

// sanitize drops the records that fail validation and reports which user
// ids were dropped. The rest of the mapping is kept.
func (s *appState) sanitize() map[string]error {
	dropped := map[string]error{}
	for uid, rec := range s.UserData {
		err := rec.validate()
		if uid == "" {
			err = errors.New("empty user id")
		}
		if err != nil {
			dropped[uid] = err
			delete(s.UserData, uid)
		}
	}
	return dropped
}

func uniqueIDs(ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			return errors.New("empty product id")
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate product id %q", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// pushFront moves id to the head of history, dropping anything past
// MaxHistory.
func pushFront(history []string, id string) []string {
	out := make([]string, 0, MaxHistory)
	out = append(out, id)
	for _, h := range history {
		if len(out) == MaxHistory {
			break
		}
		if h != id {
			out = append(out, h)
		}
	}
	return out
}
