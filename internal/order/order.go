package order

import (
	"errors"
	"fmt"
	"time"

	"EduCom/internal/cart"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrNoUser        = errors.New("no user signed in")
	ErrPaymentMethod = errors.New("unsupported payment method")
	ErrTotalOverflow = errors.New("total overflow")
)

const StatusPaid = "PAID"

type PaymentMethod string

const (
	Credit PaymentMethod = "credit"
	Momo   PaymentMethod = "momo"
	VNPay  PaymentMethod = "vnpay"
)

// PaymentMethods lists the accepted methods in display order.
var PaymentMethods = []PaymentMethod{Credit, Momo, VNPay}

func (m PaymentMethod) Label() string {
	switch m {
	case Credit:
		return "Thẻ tín dụng/ghi nợ"
	case Momo:
		return "Momo"
	case VNPay:
		return "VNPay"
	default:
		return ""
	}
}

func (m PaymentMethod) valid() bool {
	return m.Label() != ""
}

type Order struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	Items     []cart.Item   `json:"items"`
	Total     int64         `json:"total"`
	Payment   PaymentMethod `json:"paymentMethod"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

// history is the list stored under kv.OrdersKey, oldest first.
type history []Order

func (h history) Validate() error {
	for i, o := range h {
		if o.ID == "" || o.UserID == "" {
			return fmt.Errorf("order %d: missing id", i)
		}
		if o.Total < 0 {
			return fmt.Errorf("order %s: negative total", o.ID)
		}
	}
	return nil
}
