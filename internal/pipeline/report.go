package pipeline

import (
	"log"

	"shopetl/internal/table"
)

// Summary aggregates the run for the closing report. Monetary figures come
// from the order-header table; the item count reflects the post-validation
// line items.
type Summary struct {
	Revenue  float64 // sum of order totals
	Shipping float64 // sum of shipping prices
	AvgOrder float64 // mean order total over orders with a numeric total
	Orders   int
	Items    int
	Products int
}

// summarize computes the aggregate statistics from the final tables.
// Non-numeric totals are excluded from sums and from the mean's denominator.
func summarize(orders, items, catalog *table.Table) Summary {
	s := Summary{
		Orders:   orders.Len(),
		Items:    items.Len(),
		Products: catalog.Len(),
	}
	numeric := 0
	for _, r := range orders.Rows {
		if v, ok := r.Float(colOrderTotal); ok {
			s.Revenue += v
			numeric++
		}
		if v, ok := r.Float(colShipping); ok {
			s.Shipping += v
		}
	}
	if numeric > 0 {
		s.AvgOrder = s.Revenue / float64(numeric)
	}
	return s
}

// logSummary prints the closing report to the console.
func logSummary(s Summary) {
	log.Printf("summary: total revenue:      %.2f", s.Revenue)
	log.Printf("summary: total shipping:     %.2f", s.Shipping)
	log.Printf("summary: average order:      %.2f", s.AvgOrder)
	log.Printf("summary: orders:             %d", s.Orders)
	log.Printf("summary: line items:         %d", s.Items)
	log.Printf("summary: catalog products:   %d", s.Products)
}
