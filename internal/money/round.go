package money

import "github.com/shopspring/decimal"

// Round2 rounds a currency value to 2 decimal places, half away from zero.
// Going through decimal.NewFromFloat recovers the shortest decimal
// representation of the float, so a value stored as 1.00499999999999989
// is seen as 1.005 and rounds up to 1.01 instead of truncating to 1.00.
// Every arithmetic step that produces a currency amount must pass through
// here, per line and again at each aggregate, so that implementations
// summing in different orders agree to the paisa.
func Round2(x float64) float64 {
	v, _ := decimal.NewFromFloat(x).Round(2).Float64()
	return v
}
