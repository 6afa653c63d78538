package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hotel-occupancy-backend/internal/model"
)

func TestCalculate(t *testing.T) {
	testCases := []struct {
		name             string
		roomRate         model.Cents
		totalConsumption model.Cents
		pct              float64
		subtotal         model.Cents
		serviceCharge    model.Cents
		finalPrice       model.Cents
	}{
		{
			name:             "room 100.00 plus consumption 100.00 at 10 percent",
			roomRate:         10000,
			totalConsumption: 10000,
			pct:              10,
			subtotal:         20000,
			serviceCharge:    2000,
			finalPrice:       22000,
		},
		{
			name:             "zero consumption",
			roomRate:         15000,
			totalConsumption: 0,
			pct:              10,
			subtotal:         15000,
			serviceCharge:    1500,
			finalPrice:       16500,
		},
		{
			name:             "zero percentage",
			roomRate:         9999,
			totalConsumption: 1,
			pct:              0,
			subtotal:         10000,
			serviceCharge:    0,
			finalPrice:       10000,
		},
		{
			name:             "fractional percentage",
			roomRate:         10000,
			totalConsumption: 0,
			pct:              12.5,
			subtotal:         10000,
			serviceCharge:    1250,
			finalPrice:       11250,
		},
		{
			name:             "sub-cent charge rounds half up",
			roomRate:         5,
			totalConsumption: 0,
			pct:              10,
			subtotal:         5,
			serviceCharge:    1, // 0.5 cents rounds up
			finalPrice:       6,
		},
		{
			name:             "repeated small amounts stay exact",
			roomRate:         1,
			totalConsumption: 2,
			pct:              10,
			subtotal:         3,
			serviceCharge:    0, // 0.3 cents rounds down
			finalPrice:       3,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			st := Calculate(tc.roomRate, tc.totalConsumption, tc.pct)
			assert.Equal(t, tc.roomRate, st.RoomRate)
			assert.Equal(t, tc.totalConsumption, st.TotalConsumption)
			assert.Equal(t, tc.subtotal, st.Subtotal)
			assert.Equal(t, tc.serviceCharge, st.ServiceCharge)
			assert.Equal(t, tc.finalPrice, st.FinalPrice)
			assert.Equal(t, tc.pct, st.ServiceChargePercentage)
		})
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	a := Calculate(12345, 67890, 12.5)
	b := Calculate(12345, 67890, 12.5)
	assert.Equal(t, a, b)
}
