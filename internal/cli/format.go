package cli

import (
	"fmt"
	"strings"

	"expenses/internal/core"
)

// FormatAmount renders an amount with two decimals behind the currency symbol.
// e.g., ("$", 12.5) -> "$12.50"
func FormatAmount(symbol string, amount float64) string {
	return fmt.Sprintf("%s%.2f", symbol, amount)
}

// FormatSummary renders one "name: total" line per category.
func FormatSummary(symbol string, totals []core.CategoryTotal) string {
	var b strings.Builder
	for _, t := range totals {
		fmt.Fprintf(&b, "%s: %s\n", t.Name, FormatAmount(symbol, t.Total))
	}
	return b.String()
}

// FormatCategories renders the "Categories:" header followed by one name per line.
func FormatCategories(cats []core.Category) string {
	var b strings.Builder
	b.WriteString("Categories:\n")
	for _, c := range cats {
		b.WriteString(c.Name)
		b.WriteByte('\n')
	}
	return b.String()
}
