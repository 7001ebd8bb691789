package report

import (
	"fmt"
	"time"

	"github.com/fjod/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// YearMonth identifies one calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// ParseYearMonth parses "2024-01".
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("%w: month %q must look like 2024-01", domain.ErrValidation, s)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

// CurrentYearMonth is the month the clock is in.
func CurrentYearMonth(now time.Time) YearMonth {
	return YearMonth{Year: now.Year(), Month: now.Month()}
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Contains uses t's own calendar fields, not a conversion to another zone.
func (ym YearMonth) Contains(t time.Time) bool {
	return t.Year() == ym.Year && t.Month() == ym.Month
}

type ItemCount struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

type Summary struct {
	Month      string          `json:"month"`
	OrderCount int             `json:"order_count"`
	TotalSales decimal.Decimal `json:"total_sales"`
	ItemCounts map[string]int  `json:"item_counts"`
	// Items lists ItemCounts in the order products were first sold.
	Items []ItemCount `json:"items"`
}

// Summarize aggregates the orders placed in ym. It never modifies orders.
func Summarize(orders []domain.Order, ym YearMonth) Summary {
	s := Summary{
		Month:      ym.String(),
		TotalSales: decimal.Zero,
		ItemCounts: map[string]int{},
		Items:      []ItemCount{},
	}
	for _, o := range orders {
		if !ym.Contains(o.CreatedAt) {
			continue
		}
		s.OrderCount++
		s.TotalSales = s.TotalSales.Add(o.Total)
		for _, it := range o.Items {
			if _, seen := s.ItemCounts[it.Name]; !seen {
				s.Items = append(s.Items, ItemCount{Name: it.Name})
			}
			s.ItemCounts[it.Name] += it.Qty
		}
	}
	for i := range s.Items {
		s.Items[i].Qty = s.ItemCounts[s.Items[i].Name]
	}
	return s
}
