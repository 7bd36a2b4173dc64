// Package mathutil holds small numeric helpers that must not suffer from
// binary floating point representation artifacts.
package mathutil

import (
	"fmt"
	"math"

	"github.com/ZanzyTHEbar/jute-commons/jute/common"

	"github.com/shopspring/decimal"
)

// TruncateDecimals cuts value down to precision decimal places without rounding.
//
// The value is converted through its shortest decimal representation, so
// TruncateDecimals(0.94253, 2) is 0.94 and never 0.9399999. Positive values are
// floored at the cut digit and negative values are ceiled, which means the
// magnitude of the result is never larger than the magnitude of value:
//
//	TruncateDecimals(0.94253, 2)  = 0.94
//	TruncateDecimals(-99.8424, 1) = -99.8
//	TruncateDecimals(25.0, 2)     = 25
//
// A negative precision, NaN or an infinity returns an error wrapping
// common.ErrInvalidArgument.
func TruncateDecimals(value float64, precision int) (float64, error) {
	if precision < 0 {
		return 0, fmt.Errorf("%w: decimal precision cannot be negative (got %d)", common.ErrInvalidArgument, precision)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: cannot truncate non-finite value %v", common.ErrInvalidArgument, value)
	}

	places := int32(min(precision, math.MaxInt32))
	d := decimal.NewFromFloat(value)
	if value > 0 {
		d = d.RoundFloor(places)
	} else {
		d = d.RoundCeil(places)
	}

	result, _ := d.Float64()
	return result, nil
}

// MustTruncateDecimals is TruncateDecimals for callers with a known-good precision.
func MustTruncateDecimals(value float64, precision int) float64 {
	result, err := TruncateDecimals(value, precision)
	if err != nil {
		panic(err)
	}
	return result
}

// DecimalPlaces reports how many fractional digits the shortest decimal
// representation of value carries. Non-finite values report 0.
func DecimalPlaces(value float64) int {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	exp := decimal.NewFromFloat(value).Exponent()
	if exp >= 0 {
		return 0
	}
	return int(-exp)
}
