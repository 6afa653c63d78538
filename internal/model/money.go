package model

import (
	"fmt"
	"math"
	"strconv"
)

// Cents is a monetary amount in integer cents. All billing arithmetic runs on
// this type so repeated additions never accumulate floating-point drift.
//
// On the wire the value is a plain JSON number in currency units ("220.00"),
// matching what clients already send; the conversion to and from cents happens
// only at the JSON boundary.
type Cents int64

// CentsFromFloat converts a currency-unit amount to cents, rounding half away
// from zero.
func CentsFromFloat(v float64) Cents {
	return Cents(math.Round(v * 100))
}

// Float returns the amount in currency units.
func (c Cents) Float() float64 {
	return float64(c) / 100
}

func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(c.Float(), 'f', 2, 64)), nil
}

func (c *Cents) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid monetary amount %q: %w", string(data), err)
	}
	*c = CentsFromFloat(v)
	return nil
}
