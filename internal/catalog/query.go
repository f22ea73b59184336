package catalog

import (
	"slices"
	"strings"
)

const SuggestionReason = "Dựa trên khóa học bạn đã xem và yêu thích"

const maxSuggestions = 4

// defaultCategories pad suggestions when history says too little.
var defaultCategories = []string{"Programming", "Data Science"}

type Filter struct {
	Category   string `json:"category,omitempty"`
	Level      string `json:"level,omitempty"`
	PriceRange string `json:"priceRange,omitempty"`
}

type Suggestion struct {
	Products []Product `json:"products"`
	Reason   string    `json:"reason"`
}

// Search matches query case-insensitively against name, description and
// category. An empty query matches everything.
func Search(products []Product, query string) []Product {
	q := strings.ToLower(query)

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}

// Apply keeps products matching every criterion that is set and not All.
// Unknown price ranges are ignored.
func Apply(products []Product, f Filter) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if applies(f.Category) && p.Category != f.Category {
			continue
		}
		if applies(f.Level) && string(p.Level) != f.Level {
			continue
		}
		if applies(f.PriceRange) && !InPriceRange(p.Price, f.PriceRange) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// InPriceRange reports whether price falls in the named bucket. Unknown
// buckets match everything.
func InPriceRange(price int64, bucket string) bool {
	switch bucket {
	case PriceUnder500K:
		return price < 500_000
	case Price500KTo1M:
		return price >= 500_000 && price <= 1_000_000
	case Price1MTo2M:
		return price > 1_000_000 && price <= 2_000_000
	case PriceOver2M:
		return price > 2_000_000
	default:
		return true
	}
}

func applies(criterion string) bool {
	return criterion != "" && criterion != All
}

// Suggest picks up to four products the user has not favorited: first those
// in categories from the view history, then the default categories, each in
// catalog order.
func Suggest(products []Product, favorites, history []string) Suggestion {
	byID := make(map[string]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var viewed []string
	for _, id := range history {
		if p, ok := byID[id]; ok && !slices.Contains(viewed, p.Category) {
			viewed = append(viewed, p.Category)
		}
	}

	picked := make([]Product, 0, maxSuggestions)
	seen := make(map[string]struct{}, maxSuggestions)
	take := func(categories []string) {
		for _, p := range products {
			if len(picked) == maxSuggestions {
				return
			}
			if _, dup := seen[p.ID]; dup || slices.Contains(favorites, p.ID) {
				continue
			}
			if slices.Contains(categories, p.Category) {
				picked = append(picked, p)
				seen[p.ID] = struct{}{}
			}
		}
	}

	take(viewed)
	take(defaultCategories)

	return Suggestion{Products: picked, Reason: SuggestionReason}
}

// Project returns the products whose ids are in ids, in catalog order.
// Unknown ids are dropped.
func Project(products []Product, ids []string) []Product {
	out := make([]Product, 0, len(ids))
	for _, p := range products {
		if slices.Contains(ids, p.ID) {
			out = append(out, p)
		}
	}
	return out
}
