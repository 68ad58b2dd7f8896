// Package words spells out invoice totals in Indian-system currency words.
package words

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var ones = []string{
	"Zero", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}

func twoDigits(n int) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + ones[n%10]
}

// IntegerToWords spells n using Indian groupings (Hundred, Thousand, Lakh,
// Crore).
func IntegerToWords(n int) string {
	switch {
	case n < 100:
		return twoDigits(n)
	case n < 1000:
		return join(ones[n/100]+" Hundred", n%100)
	case n < 100_000:
		return join(IntegerToWords(n/1000)+" Thousand", n%1000)
	case n < 10_000_000:
		return join(IntegerToWords(n/100_000)+" Lakh", n%100_000)
	default:
		return join(IntegerToWords(n/10_000_000)+" Crore", n%10_000_000)
	}
}

func join(head string, rest int) string {
	if rest == 0 {
		return head
	}
	return head + " " + IntegerToWords(rest)
}

// Amount spells a currency amount, e.g. "Two Hundred Twenty Four Rupees and
// Twenty Paise Only". The amount is rounded to 2 decimals first.
func Amount(amount float64) string {
	value := decimal.NewFromFloat(amount).Round(2)
	prefix := ""
	if value.IsNegative() {
		prefix = "Minus "
		value = value.Abs()
	}
	rupees := int(value.IntPart())
	paise := int(value.Sub(value.Floor()).Mul(decimal.NewFromInt(100)).IntPart())

	text := prefix + fmt.Sprintf("%s Rupees", IntegerToWords(rupees))
	if paise > 0 {
		text += fmt.Sprintf(" and %s Paise", IntegerToWords(paise))
	}
	return text + " Only"
}
