package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// formatPct renders a decimal return for terminal output, e.g. 0.05 -> "5.00%".
func formatPct(v decimal.Decimal) string {
	return v.Mul(hundred).StringFixed(2) + "%"
}

func printSeparator() {
	fmt.Println("───────────────────────────────────────────────────────────")
}

func printHeader(title string) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  %s\n", title)
	printSeparator()
}

func printSuccess(message string) {
	fmt.Println()
	fmt.Printf("✅ %s\n", message)
}
