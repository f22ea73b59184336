package catalog

import (
	"math"
	"strconv"
	"strings"
)

type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// Product is an immutable catalog entry. Prices are whole VND.
type Product struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Price           int64    `json:"price"`
	OriginalPrice   int64    `json:"originalPrice,omitempty"`
	Image           string   `json:"image"`
	Description     string   `json:"description"`
	LongDescription string   `json:"longDescription,omitempty"`
	Category        string   `json:"category"`
	Instructor      string   `json:"instructor,omitempty"`
	Duration        string   `json:"duration,omitempty"`
	Level           Level    `json:"level,omitempty"`
	Rating          float64  `json:"rating,omitempty"`
	ReviewCount     int      `json:"reviewCount,omitempty"`
	Tags            []string `json:"tags,omitempty"`
}

func (p Product) HasDiscount() bool {
	return p.OriginalPrice > p.Price
}

// DiscountPercent is the rounded saving relative to original, 0 when there
// is no valid original price.
func DiscountPercent(original, current int64) int {
	if original <= 0 {
		return 0
	}
	return int(math.Round(float64(original-current) / float64(original) * 100))
}

// FormatPrice renders a VND amount the vi-VN way: "1.299.000 ₫".
func FormatPrice(price int64) string {
	neg := price < 0
	if neg {
		price = -price
	}

	digits := strconv.FormatInt(price, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteString(" ₫")
	return b.String()
}
