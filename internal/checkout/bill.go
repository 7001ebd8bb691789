package checkout

import (
	"fmt"
	"strings"
	"time"

	"github.com/fjod/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount as $x.xx.
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

type BillLine struct {
	Name  string `json:"name"`
	Qty   int    `json:"qty"`
	Total string `json:"total"`
}

// Bill is the printable receipt of an order.
type Bill struct {
	OrderID  string     `json:"order_id"`
	Date     string     `json:"date"`
	Lines    []BillLine `json:"lines"`
	Subtotal string     `json:"subtotal"`
	Total    string     `json:"total"`
}

func NewBill(o domain.Order) Bill {
	lines := make([]BillLine, len(o.Items))
	for i, it := range o.Items {
		lines[i] = BillLine{Name: it.Name, Qty: it.Qty, Total: FormatMoney(it.LineTotal())}
	}
	return Bill{
		OrderID:  o.ID,
		Date:     o.CreatedAt.Format(time.DateTime),
		Lines:    lines,
		Subtotal: FormatMoney(o.Subtotal),
		Total:    FormatMoney(o.Total),
	}
}

func (b Bill) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Order ID: %s\n", b.OrderID)
	fmt.Fprintf(&sb, "Date: %s\n", b.Date)
	for _, l := range b.Lines {
		fmt.Fprintf(&sb, "  %s x %d - %s\n", l.Name, l.Qty, l.Total)
	}
	fmt.Fprintf(&sb, "Subtotal: %s\n", b.Subtotal)
	fmt.Fprintf(&sb, "Total: %s\n", b.Total)
	return sb.String()
}
