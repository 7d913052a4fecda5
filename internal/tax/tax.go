// Package tax implements Rwanda EBM VAT arithmetic and category
// classification. The category letters are fixed by the VSDC receipt
// schema and must not change once printed on receipts.
package tax

import "math"

// Category is a VSDC tax category letter.
type Category string

const (
	// CategoryA covers VAT-exempt and zero-rated supplies (0%).
	CategoryA Category = "A"
	// CategoryB covers the standard 18% VAT band.
	CategoryB Category = "B"
	// CategoryC covers all other rates.
	CategoryC Category = "C"
	// CategoryD is reserved by the VSDC schema; never produced by
	// CategoryFor.
	CategoryD Category = "D"
)

// StandardRate is Rwanda's standard VAT rate in percent.
const StandardRate = 18.0

// Round2 rounds to two decimals, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// VATFromInclusive extracts the VAT portion of a tax-inclusive price.
// VAT = price * rate / (100 + rate).
func VATFromInclusive(price, rate float64) float64 {
	if rate == 0 {
		return 0
	}
	return Round2(price * rate / (100 + rate))
}

// VATFromExclusive computes VAT on top of a tax-exclusive price.
// VAT = price * rate / 100.
func VATFromExclusive(price, rate float64) float64 {
	if rate == 0 {
		return 0
	}
	return Round2(price * rate / 100)
}

// ExclusiveFromInclusive strips VAT from a tax-inclusive price.
func ExclusiveFromInclusive(price, rate float64) float64 {
	return Round2(price / (1 + rate/100))
}

// CategoryFor classifies a VAT rate into its VSDC category: 0 maps to A,
// 18 to B, everything else to C.
func CategoryFor(rate float64) Category {
	switch rate {
	case 0:
		return CategoryA
	case StandardRate:
		return CategoryB
	default:
		return CategoryC
	}
}
