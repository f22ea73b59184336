package cart

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"EduCom/internal/catalog"
)

// Item is a snapshot of the product at the time it was added. The product
// fields are flattened into the stored JSON next to addedAt.
type Item struct {
	catalog.Product
	AddedAt time.Time `json:"addedAt"`
}

type items []Item

func (it items) Validate() error {
	seen := make(map[string]struct{}, len(it))
	for i, item := range it {
		if item.ID == "" {
			return fmt.Errorf("item %d: empty product id", i)
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("item %d: duplicate product id %q", i, item.ID)
		}
		seen[item.ID] = struct{}{}

		if item.Price < 0 {
			return errors.New("negative price")
		}
	}
	return nil
}

func cloneItems(in []Item) []Item {
	out := make([]Item, len(in))
	for i, it := range in {
		out[i] = it
		out[i].Tags = slices.Clone(it.Tags)
	}
	return out
}
