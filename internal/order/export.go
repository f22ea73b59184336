package order

import (
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"EduCom/internal/catalog"
)

type csvRow struct {
	ID        string `csv:"order_id"`
	CreatedAt string `csv:"created_at"`
	Payment   string `csv:"payment_method"`
	Status    string `csv:"status"`
	Courses   string `csv:"courses"`
	Total     int64  `csv:"total"`
	Formatted string `csv:"total_formatted"`
}

// WriteCSV writes one row per order, course names joined with "; ".
func WriteCSV(w io.Writer, orders []Order) error {
	rows := make([]*csvRow, 0, len(orders))
	for _, o := range orders {
		names := make([]string, len(o.Items))
		for i, it := range o.Items {
			names[i] = it.Name
		}
		rows = append(rows, &csvRow{
			ID:        o.ID,
			CreatedAt: o.CreatedAt.UTC().Format(time.RFC3339),
			Payment:   o.Payment.Label(),
			Status:    o.Status,
			Courses:   strings.Join(names, "; "),
			Total:     o.Total,
			Formatted: catalog.FormatPrice(o.Total),
		})
	}
	return gocsv.Marshal(rows, w)
}
