// Package billing computes the checkout figures for a stay. It is pure
// arithmetic over integer cents; the percentage is carried as basis points so
// fractional service charges (12.5%) stay exact until the single final
// rounding.
package billing

import "hotel-occupancy-backend/internal/model"

// DefaultServiceChargePercentage applies when the caller does not specify one.
const DefaultServiceChargePercentage = 10.0

// Statement is the priced breakdown of a checkout.
type Statement struct {
	RoomRate                model.Cents `json:"roomRate"`
	TotalConsumption        model.Cents `json:"totalConsumption"`
	Subtotal                model.Cents `json:"subtotal"`
	ServiceChargePercentage float64     `json:"serviceChargePercentage"`
	ServiceCharge           model.Cents `json:"serviceCharge"`
	FinalPrice              model.Cents `json:"finalPrice"`
}

// Calculate prices a checkout: subtotal is the rate snapshot plus accrued
// consumption, the service charge is the given percentage of the subtotal
// rounded half up to the nearest cent, and the final price is their sum.
func Calculate(roomRate, totalConsumption model.Cents, serviceChargePercentage float64) Statement {
	subtotal := roomRate + totalConsumption
	bp := basisPoints(serviceChargePercentage)
	serviceCharge := model.Cents((int64(subtotal)*bp + 5000) / 10000)
	return Statement{
		RoomRate:                roomRate,
		TotalConsumption:        totalConsumption,
		Subtotal:                subtotal,
		ServiceChargePercentage: serviceChargePercentage,
		ServiceCharge:           serviceCharge,
		FinalPrice:              subtotal + serviceCharge,
	}
}

// basisPoints converts a percentage to integer basis points (10.0% -> 1000),
// rounding half up so 12.345% becomes 1235.
func basisPoints(pct float64) int64 {
	return int64(pct*100 + 0.5)
}
